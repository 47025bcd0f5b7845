package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/farmvale/cryptofarm/internal/domain"
	"github.com/farmvale/cryptofarm/internal/handler"
	"github.com/farmvale/cryptofarm/internal/logger"
	"github.com/farmvale/cryptofarm/internal/repository"
)

// SessionMiddleware resolves the account behind the bearer token and stores it
// in the request context. Routes registered under it can assume an
// authenticated account; everything else keeps the bare context.
func SessionMiddleware(accounts repository.Account) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := logger.FromContext(r.Context())

			auth := r.Header.Get(HeaderAuthorization)
			if !strings.HasPrefix(auth, bearerPrefix) {
				log.Warn("Missing bearer token", "path", r.URL.Path)
				http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
				return
			}
			token := strings.TrimPrefix(auth, bearerPrefix)

			account, err := accounts.GetAccountByToken(r.Context(), token)
			if err != nil {
				if errors.Is(err, domain.ErrAccountNotFound) {
					log.Warn("Unknown session token", "path", r.URL.Path)
					http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
					return
				}
				log.Error("Session lookup failed", "error", err)
				http.Error(w, "Server error", http.StatusInternalServerError)
				return
			}

			ctx := handler.ContextWithAccount(r.Context(), account)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
