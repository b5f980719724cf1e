package repository

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/studio-elise/gallerybackend/models"
)

func TestCommentListByMediaOrderAndLimit(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "admin")
	gallery := seedGallery(t, db, user.ID, "Wedding", "wedding")
	media := seedMedia(t, db, gallery.ID, "img1.jpg", 0)
	repo := NewGormCommentRepository(db)

	for i := 1; i <= 3; i++ {
		comment := &models.Comment{
			MediaID:    media.ID,
			Content:    fmt.Sprintf("comment %d", i),
			AuthorName: "Guest",
		}
		require.NoError(t, repo.Create(comment))
	}

	comments, err := repo.ListByMedia(media.ID, 2)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "comment 3", comments[0].Content, "newest comment first")
	assert.Equal(t, "comment 2", comments[1].Content)
}

func TestCommentDelete(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "admin")
	gallery := seedGallery(t, db, user.ID, "Wedding", "wedding")
	media := seedMedia(t, db, gallery.ID, "img1.jpg", 0)
	repo := NewGormCommentRepository(db)

	comment := &models.Comment{MediaID: media.ID, Content: "hi", AuthorName: "Guest"}
	require.NoError(t, repo.Create(comment))

	require.NoError(t, repo.Delete(comment.ID))
	assert.ErrorIs(t, repo.Delete(comment.ID), gorm.ErrRecordNotFound)
}
