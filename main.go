package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/studio-elise/gallerybackend/auth"
	"github.com/studio-elise/gallerybackend/config"
	"github.com/studio-elise/gallerybackend/database"
	"github.com/studio-elise/gallerybackend/handlers"
	"github.com/studio-elise/gallerybackend/logging"
	"github.com/studio-elise/gallerybackend/repository"
)

func main() {
	logger := logging.New()
	defer logger.Sync()

	if err := godotenv.Load(); err != nil {
		logger.Infof("no .env file found: %v", err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load configuration: %v", err)
	}

	db, err := database.InitGormDB(cfg.DatabasePath)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	if err := database.AutoMigrateModels(db); err != nil {
		logger.Fatalf("failed to migrate database: %v", err)
	}
	logger.Infof("using database: %s", cfg.DatabasePath)

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

	adminAuthHandler := handlers.NewAdminAuthHandler(userRepo, tokens)
	adminClientHandler := handlers.NewAdminClientHandler(clientRepo, galleryRepo, accessRepo)
	adminGalleryHandler := handlers.NewAdminGalleryHandler(galleryRepo, accessRepo, analyticsRepo, cfg)
	adminMediaHandler := handlers.NewAdminMediaHandler(galleryRepo, mediaRepo)
	clientHandler := handlers.NewClientHandler(clientRepo, accessRepo, tokens)
	publicGalleryHandler := handlers.NewPublicGalleryHandler(galleryRepo, mediaRepo, accessRepo, sessionRepo, cfg)
	engagementHandler := handlers.NewEngagementHandler(galleryRepo, mediaRepo, accessRepo, favoriteRepo, commentRepo, userRepo, tokens, cfg)
	analyticsHandler := handlers.NewAnalyticsHandler(galleryRepo, mediaRepo, accessRepo, analyticsRepo)

	adminAuth := handlers.AdminAuthMiddleware(tokens, userRepo)
	clientAuth := handlers.ClientAuthMiddleware(tokens, clientRepo)
	actorResolver := handlers.ActorResolver(tokens, clientRepo, sessionRepo)

	r := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", handlers.SessionHeader},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	})

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsHandler.Handler)

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

	addr := ":" + cfg.Port
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Infof("listening on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("server error: %v", err)
	}
}
