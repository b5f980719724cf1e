package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studio-elise/gallerybackend/models"
)

func TestAdminLoginRejectsBothFailureModesIdentically(t *testing.T) {
	env := newTestEnv(t)
	env.seedAdmin(t, "elise")

	unknown := env.do(t, http.MethodPost, "/api/admin/login", map[string]string{"username": "nobody", "password": "password"}, reqOpts{})
	wrongPassword := env.do(t, http.MethodPost, "/api/admin/login", map[string]string{"username": "elise", "password": "wrong"}, reqOpts{})

	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, unknown.Body.String(), wrongPassword.Body.String(), "failure modes must be indistinguishable")
}

func TestAdminLoginIssuesUsableToken(t *testing.T) {
	env := newTestEnv(t)
	env.seedAdmin(t, "elise")

	rec := env.do(t, http.MethodPost, "/api/admin/login", map[string]string{"username": "elise", "password": "password"}, reqOpts{})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp AdminLoginResponse
	decodeBody(t, rec, &resp)
	require.NotEmpty(t, resp.Token)

	me := env.do(t, http.MethodGet, "/api/admin/me", nil, reqOpts{token: resp.Token})
	assert.Equal(t, http.StatusOK, me.Code)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/admin/galleries/", nil, reqOpts{})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateGalleryGeneratesSlugAndCode(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.seedAdmin(t, "admin")

	rec := env.do(t, http.MethodPost, "/api/admin/galleries/", map[string]interface{}{
		"title":       "Mariage Élise & Théo",
		"access_code": true,
	}, reqOpts{token: token})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Slug       string `json:"slug"`
		Status     string `json:"status"`
		AccessCode string `json:"access_code"`
	}
	decodeBody(t, rec, &resp)
	assert.Equal(t, "mariage-elise-theo", resp.Slug)
	assert.Equal(t, string(models.GalleryStatusDraft), resp.Status)
	assert.Len(t, resp.AccessCode, env.cfg.AccessCodeLength)
}

func TestOtherAdminsGalleryReadsAsNotFound(t *testing.T) {
	env := newTestEnv(t)
	owner, _ := env.seedAdmin(t, "owner")
	_, intruderToken := env.seedAdmin(t, "intruder")
	gallery := env.seedGallery(t, owner.ID, "Private", "private", galleryOpts{})

	rec := env.do(t, http.MethodGet, galleryPath(gallery.ID), nil, reqOpts{token: intruderToken})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodPut, galleryPath(gallery.ID)+"/status", map[string]string{"status": "ARCHIVED"}, reqOpts{token: intruderToken})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodDelete, galleryPath(gallery.ID), nil, reqOpts{token: intruderToken})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSetStatusValidation(t *testing.T) {
	env := newTestEnv(t)
	admin, token := env.seedAdmin(t, "admin")
	gallery := env.seedGallery(t, admin.ID, "Wedding", "wedding", galleryOpts{status: models.GalleryStatusDraft})

	rec := env.do(t, http.MethodPut, galleryPath(gallery.ID)+"/status", map[string]string{"status": "bogus"}, reqOpts{token: token})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPut, galleryPath(gallery.ID)+"/status", map[string]string{"status": "PUBLISHED"}, reqOpts{token: token})
	require.Equal(t, http.StatusOK, rec.Code)

	got, err := env.galleryRepo.GetByID(gallery.ID)
	require.NoError(t, err)
	assert.Equal(t, models.GalleryStatusPublished, got.Status)
}

func TestUpdateSortOrderValidation(t *testing.T) {
	env := newTestEnv(t)
	admin, token := env.seedAdmin(t, "admin")
	gallery := env.seedGallery(t, admin.ID, "Wedding", "wedding", galleryOpts{})

	rec := env.do(t, http.MethodPut, galleryPath(gallery.ID)+"/sort_order", map[string]string{"sort_order": "by_vibes"}, reqOpts{token: token})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPut, galleryPath(gallery.ID)+"/sort_order", map[string]string{"sort_order": "filename_nat"}, reqOpts{token: token})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListGalleryAccessRoster(t *testing.T) {
	env := newTestEnv(t)
	admin, token := env.seedAdmin(t, "admin")
	_, intruderToken := env.seedAdmin(t, "intruder")
	client, _ := env.seedClient(t, "client@example.com")
	gallery := env.seedGallery(t, admin.ID, "Wedding", "wedding", galleryOpts{})

	_, err := env.accessRepo.Upsert(client.ID, gallery.ID, models.RoleCollaborator)
	require.NoError(t, err)

	rec := env.do(t, http.MethodGet, galleryPath(gallery.ID)+"/access", nil, reqOpts{token: intruderToken})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodGet, galleryPath(gallery.ID)+"/access", nil, reqOpts{token: token})
	require.Equal(t, http.StatusOK, rec.Code)

	var roster []AccessRosterEntry
	decodeBody(t, rec, &roster)
	require.Len(t, roster, 1)
	assert.Equal(t, models.RoleCollaborator, roster[0].Role)
	assert.Equal(t, "client@example.com", roster[0].Client.Email)
	assert.NotContains(t, rec.Body.String(), "password_hash")
}

func TestGalleryAnalyticsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	admin, token := env.seedAdmin(t, "admin")
	gallery := env.seedGallery(t, admin.ID, "Wedding", "wedding", galleryOpts{})
	media := env.seedMedia(t, gallery.ID, "img1.jpg", 0)

	require.NoError(t, env.db.Create(&models.AnalyticsEvent{GalleryID: gallery.ID, EventType: models.EventView}).Error)
	require.NoError(t, env.db.Create(&models.AnalyticsEvent{GalleryID: gallery.ID, EventType: models.EventView}).Error)
	single := models.DownloadKindSingle
	require.NoError(t, env.db.Create(&models.AnalyticsEvent{GalleryID: gallery.ID, MediaID: &media.ID, EventType: models.EventDownload, DownloadKind: &single}).Error)

	rec := env.do(t, http.MethodGet, galleryPath(gallery.ID)+"/analytics", nil, reqOpts{token: token})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp GalleryAnalyticsResponse
	decodeBody(t, rec, &resp)
	require.NotNil(t, resp.Summary)
	assert.Equal(t, int64(2), resp.Summary.ViewCount)
	assert.Equal(t, int64(1), resp.Summary.DownloadCount)
	require.Len(t, resp.DailyViews, 1)
	assert.Equal(t, int64(2), resp.DailyViews[0].Views)
	require.Len(t, resp.TopMedia, 1)
	assert.Equal(t, media.ID, resp.TopMedia[0].MediaID)
}

func TestGrantAndRevokeAccess(t *testing.T) {
	env := newTestEnv(t)
	admin, token := env.seedAdmin(t, "admin")
	_, otherToken := env.seedAdmin(t, "other")
	client, _ := env.seedClient(t, "client@example.com")
	gallery := env.seedGallery(t, admin.ID, "Wedding", "wedding", galleryOpts{})

	clientPath := fmt.Sprintf("/api/admin/clients/%d", client.ID)

	rec := env.do(t, http.MethodPost, clientPath+"/access", map[string]interface{}{"gallery_id": gallery.ID, "role": "JANITOR"}, reqOpts{token: token})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// the grant is invisible to an admin who does not own the gallery
	rec = env.do(t, http.MethodPost, clientPath+"/access", map[string]interface{}{"gallery_id": gallery.ID, "role": "VIEWER"}, reqOpts{token: otherToken})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodPost, clientPath+"/access", map[string]interface{}{"gallery_id": gallery.ID, "role": "VIEWER"}, reqOpts{token: token})
	require.Equal(t, http.StatusOK, rec.Code)

	// re-granting upgrades the role in place
	rec = env.do(t, http.MethodPost, clientPath+"/access", map[string]interface{}{"gallery_id": gallery.ID, "role": "OWNER"}, reqOpts{token: token})
	require.Equal(t, http.StatusOK, rec.Code)
	var grant models.GalleryAccess
	decodeBody(t, rec, &grant)
	assert.Equal(t, models.RoleOwner, grant.Role)

	revokePath := fmt.Sprintf("%s/access/%d", clientPath, gallery.ID)
	rec = env.do(t, http.MethodDelete, revokePath, nil, reqOpts{token: token})
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// revoking an already-missing grant stays a no-op success
	rec = env.do(t, http.MethodDelete, revokePath, nil, reqOpts{token: token})
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
