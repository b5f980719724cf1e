package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studio-elise/gallerybackend/models"
)

func TestAnalyticsSummary(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "admin")
	client := seedClient(t, db, "client@example.com")
	gallery := seedGallery(t, db, user.ID, "Wedding", "wedding")
	media := seedMedia(t, db, gallery.ID, "img1.jpg", 0)
	session := seedGuestSession(t, db, gallery.ID)
	repo := NewGormAnalyticsRepository(db)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Insert(&models.AnalyticsEvent{GalleryID: gallery.ID, EventType: models.EventView}))
	}
	single := models.DownloadKindSingle
	all := models.DownloadKindAll
	require.NoError(t, repo.Insert(&models.AnalyticsEvent{GalleryID: gallery.ID, EventType: models.EventDownload, MediaID: &media.ID, DownloadKind: &single}))
	require.NoError(t, repo.Insert(&models.AnalyticsEvent{GalleryID: gallery.ID, EventType: models.EventDownload, DownloadKind: &all}))
	require.NoError(t, repo.Insert(&models.AnalyticsEvent{GalleryID: gallery.ID, EventType: models.EventShare, GuestSessionID: &session.ID}))

	require.NoError(t, db.Create(&models.GalleryAccess{ClientID: client.ID, GalleryID: gallery.ID, Role: models.RoleViewer}).Error)
	require.NoError(t, db.Create(&models.Favorite{MediaID: media.ID, ClientID: &client.ID}).Error)
	require.NoError(t, db.Create(&models.Comment{MediaID: media.ID, Content: "hi", AuthorName: "Guest"}).Error)

	summary, err := repo.Summary(gallery.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), summary.ViewCount)
	assert.Equal(t, int64(2), summary.DownloadCount)
	assert.Equal(t, int64(1), summary.DownloadsByKind[models.DownloadKindSingle])
	assert.Equal(t, int64(1), summary.DownloadsByKind[models.DownloadKindAll])
	assert.Equal(t, int64(1), summary.ShareCount)
	assert.Equal(t, int64(1), summary.FavoriteCount)
	assert.Equal(t, int64(1), summary.CommentCount)
	assert.Equal(t, int64(1), summary.ClientCount)
	assert.Equal(t, int64(1), summary.GuestSessionCount)
}

func TestAnalyticsSummaryEmptyGallery(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "admin")
	gallery := seedGallery(t, db, user.ID, "Quiet", "quiet")
	repo := NewGormAnalyticsRepository(db)

	summary, err := repo.Summary(gallery.ID)
	require.NoError(t, err)
	assert.Zero(t, summary.ViewCount)
	assert.Zero(t, summary.DownloadCount)
	assert.Empty(t, summary.DownloadsByKind)
}

func TestAnalyticsDailyViews(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "admin")
	gallery := seedGallery(t, db, user.ID, "Wedding", "wedding")
	repo := NewGormAnalyticsRepository(db)

	for i := 0; i < 2; i++ {
		require.NoError(t, repo.Insert(&models.AnalyticsEvent{GalleryID: gallery.ID, EventType: models.EventView}))
	}
	require.NoError(t, repo.Insert(&models.AnalyticsEvent{GalleryID: gallery.ID, EventType: models.EventDownload}))

	series, err := repo.DailyViews(gallery.ID, 30)
	require.NoError(t, err)
	require.Len(t, series, 1, "all views land in today's bucket")
	assert.Equal(t, int64(2), series[0].Views, "downloads do not count as views")
}

func TestAnalyticsTopMedia(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "admin")
	client := seedClient(t, db, "client@example.com")
	gallery := seedGallery(t, db, user.ID, "Wedding", "wedding")
	mediaA := seedMedia(t, db, gallery.ID, "a.jpg", 0)
	mediaB := seedMedia(t, db, gallery.ID, "b.jpg", 1)
	session := seedGuestSession(t, db, gallery.ID)
	repo := NewGormAnalyticsRepository(db)

	require.NoError(t, db.Create(&models.Favorite{MediaID: mediaB.ID, ClientID: &client.ID}).Error)
	require.NoError(t, db.Create(&models.Favorite{MediaID: mediaB.ID, GuestSessionID: &session.ID}).Error)
	single := models.DownloadKindSingle
	require.NoError(t, repo.Insert(&models.AnalyticsEvent{GalleryID: gallery.ID, EventType: models.EventDownload, MediaID: &mediaB.ID, DownloadKind: &single}))

	entries, err := repo.TopMedia(gallery.ID, 5)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, mediaB.ID, entries[0].MediaID)
	assert.Equal(t, int64(2), entries[0].FavoriteCount)
	assert.Equal(t, int64(1), entries[0].DownloadCount)
	assert.Equal(t, mediaA.ID, entries[1].MediaID)

	capped, err := repo.TopMedia(gallery.ID, 1)
	require.NoError(t, err)
	require.Len(t, capped, 1)
	assert.Equal(t, mediaB.ID, capped[0].MediaID)
}
