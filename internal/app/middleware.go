package app

import (
	"errors"
	"net/http"

	"github.com/choretracker/choretracker/internal/config"
	"github.com/choretracker/choretracker/pkg/auth"
	"github.com/choretracker/choretracker/pkg/user"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Resolve the bearer token into a user in the request context.
	// Requests without a token pass through; handlers reject them when
	// they need an authenticated user.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := req.Context()

			if token := auth.BearerToken(req); token != "" {
				u, err := deps.AuthService.Authenticate(ctx, token)
				if err != nil {
					if errors.Is(err, auth.ErrInvalidToken) {
						log.Debug("rejected request with invalid bearer token")
						http.Error(w, "invalid or expired token", http.StatusUnauthorized)
						return
					}
					log.Errorf("failed to authenticate token: %v", err)
					http.Error(w, err.Error(), http.StatusInternalServerError)
					return
				}
				log.Debugf("authenticated user: %s", u.Uid)
				ctx = user.WithUser(ctx, u)
			}
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
}
