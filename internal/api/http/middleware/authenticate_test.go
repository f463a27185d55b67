package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cypresslabs/identity-server/internal/api/http/httpctx"
	"github.com/cypresslabs/identity-server/internal/mocks"
	"github.com/cypresslabs/identity-server/internal/model"
	"github.com/cypresslabs/identity-server/internal/testutil"
)

func TestAuthenticate_Handler(t *testing.T) {
	t.Parallel()

	account := model.Account{ID: 1001, Handle: "alice"}

	tests := []struct {
		name        string
		authHeader  string
		parseID     uint64
		parseErr    error
		lookupErr   error
		wantStatus  int
		wantInfo    string
		wantAccount bool
	}{
		{
			name:       "missing authorization header",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
			wantInfo:   "no credential supplied",
		},
		{
			name:       "invalid token",
			authHeader: "Bearer invalid",
			parseErr:   model.ErrInvalidToken,
			wantStatus: http.StatusUnauthorized,
			wantInfo:   "invalid or expired token",
		},
		{
			name:       "token subject no longer exists",
			authHeader: "Bearer valid",
			parseID:    1001,
			lookupErr:  model.ErrNotFound,
			wantStatus: http.StatusUnauthorized,
			wantInfo:   "account no longer exists",
		},
		{
			name:        "valid token",
			authHeader:  "Bearer valid",
			parseID:     1001,
			wantStatus:  http.StatusOK,
			wantAccount: true,
		},
		{
			name:        "token without bearer prefix",
			authHeader:  "valid",
			parseID:     1001,
			wantStatus:  http.StatusOK,
			wantAccount: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tokens := mocks.NewTokenManager(t)
			if tt.authHeader != "" {
				tokens.On("Parse", "valid").Return(tt.parseID, tt.parseErr).Maybe()
				tokens.On("Parse", "invalid").Return(uint64(0), tt.parseErr).Maybe()
			}

			accounts := mocks.NewAccountStore(t)
			if tt.parseErr == nil && tt.authHeader != "" {
				if tt.lookupErr != nil {
					accounts.On("GetByID", mock.Anything, tt.parseID).Return(model.Account{}, tt.lookupErr)
				} else {
					accounts.On("GetByID", mock.Anything, tt.parseID).Return(account, nil)
				}
			}

			cm := httpctx.NewManager()
			m := NewAuthenticate(tokens, accounts, cm, testutil.MakeNoopLogger())

			var gotAccount model.Account
			var gotOK bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotAccount, gotOK = cm.GetAccountFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/user/me", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			m.Handler(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantAccount {
				require.True(t, gotOK)
				assert.Equal(t, account, gotAccount)
			} else {
				assert.False(t, gotOK)
				assert.JSONEq(t, `{"code":"401","info":"`+tt.wantInfo+`"}`, rec.Body.String())
				assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			}
		})
	}
}

func TestAuthenticate_Handler_PreflightPassthrough(t *testing.T) {
	t.Parallel()

	tokens := mocks.NewTokenManager(t)
	accounts := mocks.NewAccountStore(t)
	m := NewAuthenticate(tokens, accounts, httpctx.NewManager(), testutil.MakeNoopLogger())

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/user/me", nil)
	rec := httptest.NewRecorder()

	m.Handler(next).ServeHTTP(rec, req)

	assert.True(t, called)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	tokens.AssertNotCalled(t, "Parse", mock.Anything)
}

func TestAuthenticate_Handler_ContextScope(t *testing.T) {
	t.Parallel()

	account := model.Account{ID: 1001}

	tokens := mocks.NewTokenManager(t)
	tokens.On("Parse", "valid").Return(uint64(1001), nil)

	accounts := mocks.NewAccountStore(t)
	accounts.On("GetByID", mock.Anything, uint64(1001)).Return(account, nil)

	cm := mocks.NewContextManager(t)
	cm.On("SetAccountToContext", mock.Anything, account).Return(context.Background())
	cm.On("ClearAccountFromContext", mock.Anything).Return(context.Background())

	m := NewAuthenticate(tokens, accounts, cm, testutil.MakeNoopLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/user/me", nil)
	req.Header.Set("Authorization", "Bearer valid")
	rec := httptest.NewRecorder()

	m.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})).ServeHTTP(rec, req)

	cm.AssertCalled(t, "ClearAccountFromContext", mock.Anything)
}
