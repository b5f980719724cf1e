package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/studio-elise/gallerybackend/auth"
	"github.com/studio-elise/gallerybackend/models"
	"github.com/studio-elise/gallerybackend/repository"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const (
	// UserContextKey holds the authenticated admin user.
	UserContextKey ContextKey = "user"
	// ClientContextKey holds the authenticated client account.
	ClientContextKey ContextKey = "client"
	// ActorContextKey holds the resolved public-gallery actor (may be absent).
	ActorContextKey ContextKey = "actor"
)

// SessionHeader carries the guest session id on public-gallery requests.
const SessionHeader = "X-Gallery-Session"

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return parts[1]
}

// AdminAuthMiddleware verifies an admin bearer token and loads the user into
// the request context.
func AdminAuthMiddleware(tokens *auth.TokenManager, userRepo repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := bearerToken(r)
			if tokenString == "" {
				WriteAPIError(w, http.StatusUnauthorized, ErrCodeUnauthorized, "authorization header required")
				return
			}

			userID, err := tokens.VerifyAdminToken(tokenString)
			if err != nil {
				WriteAPIError(w, http.StatusUnauthorized, ErrCodeUnauthorized, "invalid token")
				return
			}

			user, err := userRepo.GetByID(userID)
			if err != nil {
				// the user may have been deleted after the token was issued
				WriteAPIError(w, http.StatusUnauthorized, ErrCodeUnauthorized, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), UserContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClientAuthMiddleware verifies a client bearer token and loads the client
// into the request context.
func ClientAuthMiddleware(tokens *auth.TokenManager, clientRepo repository.ClientRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := bearerToken(r)
			if tokenString == "" {
				WriteAPIError(w, http.StatusUnauthorized, ErrCodeUnauthorized, "authorization header required")
				return
			}

			clientID, err := tokens.VerifyClientToken(tokenString)
			if err != nil {
				WriteAPIError(w, http.StatusUnauthorized, ErrCodeUnauthorized, "invalid token")
				return
			}

			client, err := clientRepo.GetByID(clientID)
			if err != nil {
				WriteAPIError(w, http.StatusUnauthorized, ErrCodeUnauthorized, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), ClientContextKey, client)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ActorResolver resolves an optional actor on public-gallery routes: a
// client bearer token when present and valid, otherwise a guest session
// from the session header. Requests with neither proceed with no actor;
// handlers that need one reject later.
func ActorResolver(tokens *auth.TokenManager, clientRepo repository.ClientRepository, sessionRepo repository.GuestSessionRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var actor *Actor

			if tokenString := bearerToken(r); tokenString != "" {
				if clientID, err := tokens.VerifyClientToken(tokenString); err == nil {
					if client, err := clientRepo.GetByID(clientID); err == nil {
						actor = &Actor{Client: client}
					}
				}
			}

			if actor == nil {
				if sessionID := r.Header.Get(SessionHeader); sessionID != "" {
					if session, err := sessionRepo.GetByID(sessionID); err == nil && session.IsValid() {
						actor = &Actor{Session: session}
					}
				}
			}

			ctx := r.Context()
			if actor != nil {
				ctx = context.WithValue(ctx, ActorContextKey, actor)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// userFromContext returns the authenticated admin user set by
// AdminAuthMiddleware.
func userFromContext(r *http.Request) *models.User {
	user, _ := r.Context().Value(UserContextKey).(*models.User)
	return user
}

func clientFromContext(r *http.Request) *models.Client {
	client, _ := r.Context().Value(ClientContextKey).(*models.Client)
	return client
}

func actorFromContext(r *http.Request) *Actor {
	actor, _ := r.Context().Value(ActorContextKey).(*Actor)
	return actor
}
