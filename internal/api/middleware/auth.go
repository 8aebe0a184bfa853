package middleware

import (
	"context"
	"net/http"

	"github.com/taskglow/taskglow/internal/api/apierr"
	"github.com/taskglow/taskglow/internal/model"
	"github.com/taskglow/taskglow/internal/services/session"
)

type contextKey string

const accountContextKey contextKey = "account"

// Auth creates authentication middleware. It resolves the current session
// (reconciling the snapshot as a side effect) and rejects requests when no
// account is logged in.
func Auth(sessions *session.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			account, err := sessions.Current(r.Context())
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), accountContextKey, account)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAccount returns the authenticated account from the request context
func GetAccount(ctx context.Context) *model.Account {
	account, _ := ctx.Value(accountContextKey).(*model.Account)
	return account
}

// MustGetAccount returns the authenticated account or panics
func MustGetAccount(ctx context.Context) *model.Account {
	account := GetAccount(ctx)
	if account == nil {
		panic("no account in context - auth middleware not applied?")
	}
	return account
}
