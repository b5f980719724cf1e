package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/studio-elise/gallerybackend/auth"
	"github.com/studio-elise/gallerybackend/config"
	"github.com/studio-elise/gallerybackend/database"
	"github.com/studio-elise/gallerybackend/models"
	"github.com/studio-elise/gallerybackend/repository"
)

// testEnv wires the full router against an in-memory database, mirroring the
// production setup.
type testEnv struct {
	router      http.Handler
	db          *gorm.DB
	cfg         config.Config
	tokens      *auth.TokenManager
	galleryRepo repository.GalleryRepository
	accessRepo  repository.AccessRepository
	sessionRepo repository.GuestSessionRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.AutoMigrateModels(db))

	cfg := config.Config{
		JWTSecret:           "test-secret",
		TokenTTL:            time.Hour,
		GuestSessionTTL:     time.Hour,
		AccessCodeLength:    8,
		AnalyticsWindowDays: 30,
		CommentListLimit:    50,
	}
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	userRepo := repository.NewGormUserRepository(db)
	clientRepo := repository.NewGormClientRepository(db)
	galleryRepo := repository.NewGormGalleryRepository(db)
	accessRepo := repository.NewGormAccessRepository(db)
	sessionRepo := repository.NewGormGuestSessionRepository(db)
	mediaRepo := repository.NewGormMediaRepository(db)
	favoriteRepo := repository.NewGormFavoriteRepository(db)
	commentRepo := repository.NewGormCommentRepository(db)
	analyticsRepo := repository.NewGormAnalyticsRepository(db)

	adminAuthHandler := NewAdminAuthHandler(userRepo, tokens)
	adminClientHandler := NewAdminClientHandler(clientRepo, galleryRepo, accessRepo)
	adminGalleryHandler := NewAdminGalleryHandler(galleryRepo, accessRepo, analyticsRepo, cfg)
	adminMediaHandler := NewAdminMediaHandler(galleryRepo, mediaRepo)
	clientHandler := NewClientHandler(clientRepo, accessRepo, tokens)
	publicGalleryHandler := NewPublicGalleryHandler(galleryRepo, mediaRepo, accessRepo, sessionRepo, cfg)
	engagementHandler := NewEngagementHandler(galleryRepo, mediaRepo, accessRepo, favoriteRepo, commentRepo, userRepo, tokens, cfg)
	analyticsHandler := NewAnalyticsHandler(galleryRepo, mediaRepo, accessRepo, analyticsRepo)

	adminAuth := AdminAuthMiddleware(tokens, userRepo)
	clientAuth := ClientAuthMiddleware(tokens, clientRepo)
	actorResolver := ActorResolver(tokens, clientRepo, sessionRepo)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", adminAuthHandler.Login)
			r.Group(func(r chi.Router) {
				r.Use(adminAuth)
				r.Get("/me", adminAuthHandler.CurrentUser)
				r.Route("/clients", func(r chi.Router) {
					r.Post("/", adminClientHandler.CreateClient)
					r.Get("/", adminClientHandler.ListClients)
					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", adminClientHandler.GetClient)
						r.Put("/", adminClientHandler.UpdateClient)
						r.Delete("/", adminClientHandler.DeleteClient)
						r.Post("/access", adminClientHandler.GrantAccess)
						r.Delete("/access/{galleryID}", adminClientHandler.RevokeAccess)
					})
				})
				r.Route("/galleries", func(r chi.Router) {
					r.Post("/", adminGalleryHandler.CreateGallery)
					r.Get("/", adminGalleryHandler.ListGalleries)
					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", adminGalleryHandler.GetGallery)
						r.Put("/", adminGalleryHandler.UpdateGallery)
						r.Delete("/", adminGalleryHandler.DeleteGallery)
						r.Put("/status", adminGalleryHandler.SetStatus)
						r.Post("/access-code", adminGalleryHandler.RegenerateAccessCode)
						r.Put("/sort_order", adminGalleryHandler.UpdateSortOrder)
						r.Get("/access", adminGalleryHandler.ListAccess)
						r.Get("/analytics", adminGalleryHandler.GetAnalytics)
						r.Post("/media", adminMediaHandler.CreateMedia)
						r.Get("/media", adminMediaHandler.ListMedia)
					})
				})
				r.Route("/media/{id}", func(r chi.Router) {
					r.Put("/", adminMediaHandler.UpdateMedia)
					r.Delete("/", adminMediaHandler.DeleteMedia)
				})
			})
		})

		r.Route("/clients", func(r chi.Router) {
			r.Post("/login", clientHandler.Login)
			r.Post("/register", clientHandler.Register)
			r.Group(func(r chi.Router) {
				r.Use(clientAuth)
				r.Get("/me", clientHandler.Me)
				r.Put("/me", clientHandler.UpdateProfile)
				r.Get("/me/galleries", clientHandler.MyGalleries)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(actorResolver)
			r.Route("/galleries/{slug}", func(r chi.Router) {
				r.Get("/check-access", publicGalleryHandler.CheckAccess)
				r.Post("/verify-access", publicGalleryHandler.VerifyAccessCode)
				r.Get("/", publicGalleryHandler.GetBySlug)
				r.Get("/favorites", engagementHandler.ListGalleryFavorites)
				r.Post("/events", analyticsHandler.TrackEvent)
			})
			r.Route("/media/{id}", func(r chi.Router) {
				r.Post("/favorite", engagementHandler.ToggleFavorite)
				r.Get("/comments", engagementHandler.ListComments)
				r.Post("/comments", engagementHandler.CreateComment)
			})
			r.Post("/favorites/check", engagementHandler.CheckFavorites)
			r.Delete("/comments/{id}", engagementHandler.DeleteComment)
		})
	})

	return &testEnv{
		router:      r,
		db:          db,
		cfg:         cfg,
		tokens:      tokens,
		galleryRepo: galleryRepo,
		accessRepo:  accessRepo,
		sessionRepo: sessionRepo,
	}
}

type reqOpts struct {
	token   string
	session string
}

func (env *testEnv) do(t *testing.T, method, path string, body interface{}, opts reqOpts) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if opts.token != "" {
		req.Header.Set("Authorization", "Bearer "+opts.token)
	}
	if opts.session != "" {
		req.Header.Set(SessionHeader, opts.session)
	}

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func galleryPath(id uint) string {
	return fmt.Sprintf("/api/admin/galleries/%d", id)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func (env *testEnv) seedAdmin(t *testing.T, username string) (*models.User, string) {
	t.Helper()
	user := &models.User{Username: username}
	require.NoError(t, user.SetPassword("password"))
	require.NoError(t, env.db.Create(user).Error)
	token, _, err := env.tokens.IssueAdminToken(user.ID)
	require.NoError(t, err)
	return user, token
}

func (env *testEnv) seedClient(t *testing.T, email string) (*models.Client, string) {
	t.Helper()
	client := &models.Client{Email: email, Name: "Test Client"}
	require.NoError(t, client.SetPassword("password"))
	require.NoError(t, env.db.Create(client).Error)
	token, _, err := env.tokens.IssueClientToken(client.ID)
	require.NoError(t, err)
	return client, token
}

type galleryOpts struct {
	status     models.GalleryStatus
	accessCode string
	expiresAt  *time.Time
	flags      *models.Gallery
}

func (env *testEnv) seedGallery(t *testing.T, userID uint, title, slug string, opts galleryOpts) *models.Gallery {
	t.Helper()
	status := opts.status
	if status == "" {
		status = models.GalleryStatusPublished
	}
	gallery := &models.Gallery{
		Title:           title,
		Slug:            slug,
		Status:          status,
		ExpiresAt:       opts.expiresAt,
		SortOrder:       database.DefaultSortOrder,
		CreatedByUserID: userID,
		AllowDownload:   true,
		AllowFavorites:  true,
		AllowComments:   true,
		AllowSharing:    true,
	}
	if opts.accessCode != "" {
		code := opts.accessCode
		gallery.AccessCode = &code
	}
	if opts.flags != nil {
		gallery.AllowDownload = opts.flags.AllowDownload
		gallery.AllowFavorites = opts.flags.AllowFavorites
		gallery.AllowComments = opts.flags.AllowComments
		gallery.AllowSharing = opts.flags.AllowSharing
	}
	require.NoError(t, env.db.Create(gallery).Error)
	return gallery
}

func (env *testEnv) seedMedia(t *testing.T, galleryID uint, filename string, position int) *models.Media {
	t.Helper()
	media := &models.Media{
		GalleryID:   galleryID,
		Type:        models.MediaTypePhoto,
		Filename:    filename,
		OriginalURL: "https://cdn.example.com/" + filename,
		Position:    position,
	}
	require.NoError(t, env.db.Create(media).Error)
	return media
}

func (env *testEnv) seedGuestSession(t *testing.T, galleryID uint) *models.GuestSession {
	t.Helper()
	session := &models.GuestSession{GalleryID: galleryID, ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, env.db.Create(session).Error)
	return session
}
