package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/cypresslabs/identity-server/internal/logger"
	"github.com/cypresslabs/identity-server/internal/model"
)

// TokenService resolves account IDs from bearer tokens.
type TokenService interface {
	Parse(token string) (uint64, error)
}

// AccountLookup loads the account behind a token subject.
type AccountLookup interface {
	GetByID(ctx context.Context, id uint64) (model.Account, error)
}

// Authenticate validates bearer tokens and injects the account into the
// request context. CORS preflight requests pass through unauthenticated.
type Authenticate struct {
	tokenService   TokenService
	accounts       AccountLookup
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokenService TokenService, accounts AccountLookup, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{
		tokenService:   tokenService,
		accounts:       accounts,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Handler wraps an HTTP handler with token authentication.
func (m *Authenticate) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			m.unauthorized(w, "no credential supplied")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		accountID, err := m.tokenService.Parse(tokenString)
		if err != nil {
			m.unauthorized(w, "invalid or expired token")
			return
		}

		account, err := m.accounts.GetByID(r.Context(), accountID)
		if err != nil {
			m.logger.Debug("Authenticate middleware: token subject lookup failed",
				"account_id", accountID,
				"error", err.Error())
			m.unauthorized(w, "account no longer exists")
			return
		}

		ctx := m.contextManager.SetAccountToContext(r.Context(), account)
		defer m.contextManager.ClearAccountFromContext(ctx)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Authenticate) unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)

	_ = json.NewEncoder(w).Encode(map[string]string{
		"code": "401",
		"info": message,
	})
}
