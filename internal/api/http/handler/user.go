package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/cypresslabs/identity-server/internal/logger"
	"github.com/cypresslabs/identity-server/internal/model"
	"github.com/cypresslabs/identity-server/internal/service"
)

// UserService defines the account operations exposed over HTTP.
type UserService interface {
	SendCode(ctx context.Context, phone string) (string, error)
	Register(ctx context.Context, phone, code, password string) (model.Account, error)
	LoginByPassword(ctx context.Context, loginKey, password string) (model.Account, string, error)
	LoginByCode(ctx context.Context, phone, code string) (model.Account, string, error)
	GetInfo(ctx context.Context, id uint64) (model.Account, error)
	SetPassword(ctx context.Context, id uint64, password string) error
	SetPhone(ctx context.Context, id uint64, phone string) (model.Account, error)
	UpdateProfile(ctx context.Context, id uint64, patch service.ProfilePatch) (model.Account, error)
}

// User handles HTTP endpoints for account operations.
type User struct {
	service        UserService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewUser creates a new User handler.
func NewUser(service UserService, contextManager model.ContextManager, logger *logger.Logger) *User {
	return &User{
		service:        service,
		contextManager: contextManager,
		logger:         logger,
	}
}

// accountResponse is the public projection of an account. The id travels
// as a decimal string so JavaScript clients do not lose precision.
type accountResponse struct {
	ID          string `json:"id"`
	Phone       string `json:"phone"`
	Email       string `json:"email,omitempty"`
	Handle      string `json:"handle"`
	Age         int    `json:"age"`
	Gender      int    `json:"gender"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
	Bio         string `json:"bio,omitempty"`
	Signature   string `json:"signature,omitempty"`
	Status      int    `json:"status"`
	Role        int    `json:"role"`
	CreatedAt   string `json:"createdAt"`
	LastLoginAt string `json:"lastLoginAt"`
}

type loginResponse struct {
	Token string          `json:"token"`
	User  accountResponse `json:"user"`
}

func toAccountResponse(a model.Account) accountResponse {
	return accountResponse{
		ID:          strconv.FormatUint(a.ID, 10),
		Phone:       a.Phone,
		Email:       a.Email,
		Handle:      a.Handle,
		Age:         a.Age,
		Gender:      a.Gender,
		AvatarURL:   a.AvatarURL,
		Bio:         a.Bio,
		Signature:   a.Signature,
		Status:      a.Status,
		Role:        a.Role,
		CreatedAt:   a.CreatedAt.Format(time.RFC3339),
		LastLoginAt: a.LastLoginAt.Format(time.RFC3339),
	}
}

// SendCode issues a verification code for the phone.
func (h *User) SendCode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phone string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, "malformed request body", nil)
		return
	}
	if !model.ValidPhone(req.Phone) {
		writeJSON(w, http.StatusBadRequest, "invalid phone number", nil)
		return
	}

	if _, err := h.service.SendCode(r.Context(), req.Phone); err != nil {
		h.logger.Error("User handler: send code failed",
			"phone", req.Phone,
			"error", err.Error())
		writeError(w, err)
		return
	}

	writeOK(w, nil)
}

// Register creates an account from a verified phone.
func (h *User) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phone    string `json:"phone"`
		Code     string `json:"code"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, "malformed request body", nil)
		return
	}
	if !model.ValidPhone(req.Phone) {
		writeJSON(w, http.StatusBadRequest, "invalid phone number", nil)
		return
	}

	account, err := h.service.Register(r.Context(), req.Phone, req.Code, req.Password)
	if err != nil {
		h.logger.Error("User handler: registration failed",
			"phone", req.Phone,
			"error", err.Error())
		writeError(w, err)
		return
	}

	h.logger.Info("User handler: registration completed",
		"account_id", account.ID)

	writeOK(w, toAccountResponse(account))
}

// LoginByPassword authenticates with a phone, email or handle plus password.
func (h *User) LoginByPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Login    string `json:"login"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, "malformed request body", nil)
		return
	}

	account, token, err := h.service.LoginByPassword(r.Context(), req.Login, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeOK(w, loginResponse{Token: token, User: toAccountResponse(account)})
}

// LoginByCode authenticates with a phone and a verification code.
func (h *User) LoginByCode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phone string `json:"phone"`
		Code  string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, "malformed request body", nil)
		return
	}

	account, token, err := h.service.LoginByCode(r.Context(), req.Phone, req.Code)
	if err != nil {
		writeError(w, err)
		return
	}

	writeOK(w, loginResponse{Token: token, User: toAccountResponse(account)})
}

// Me returns the authenticated account's profile.
func (h *User) Me(w http.ResponseWriter, r *http.Request) {
	current, ok := h.contextManager.GetAccountFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, "no credential supplied", nil)
		return
	}

	account, err := h.service.GetInfo(r.Context(), current.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeOK(w, toAccountResponse(account))
}

// Update applies a partial profile update to the authenticated account.
func (h *User) Update(w http.ResponseWriter, r *http.Request) {
	current, ok := h.contextManager.GetAccountFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, "no credential supplied", nil)
		return
	}

	var req struct {
		ID        *string `json:"id"`
		Handle    *string `json:"handle"`
		Email     *string `json:"email"`
		Age       *int    `json:"age"`
		Gender    *int    `json:"gender"`
		AvatarURL *string `json:"avatarUrl"`
		Bio       *string `json:"bio"`
		Signature *string `json:"signature"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, "malformed request body", nil)
		return
	}

	patch := service.ProfilePatch{
		Handle:    req.Handle,
		Email:     req.Email,
		Age:       req.Age,
		Gender:    req.Gender,
		AvatarURL: req.AvatarURL,
		Bio:       req.Bio,
		Signature: req.Signature,
	}
	if req.ID != nil {
		id, err := strconv.ParseUint(*req.ID, 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, "invalid id", nil)
			return
		}
		patch.ID = &id
	}

	account, err := h.service.UpdateProfile(r.Context(), current.ID, patch)
	if err != nil {
		h.logger.Error("User handler: profile update failed",
			"account_id", current.ID,
			"error", err.Error())
		writeError(w, err)
		return
	}

	writeOK(w, toAccountResponse(account))
}

// SetPassword replaces the authenticated account's password.
func (h *User) SetPassword(w http.ResponseWriter, r *http.Request) {
	current, ok := h.contextManager.GetAccountFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, "no credential supplied", nil)
		return
	}

	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, "malformed request body", nil)
		return
	}

	if err := h.service.SetPassword(r.Context(), current.ID, req.Password); err != nil {
		writeError(w, err)
		return
	}

	writeOK(w, nil)
}

// SetPhone binds a new phone to the authenticated account.
func (h *User) SetPhone(w http.ResponseWriter, r *http.Request) {
	current, ok := h.contextManager.GetAccountFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, "no credential supplied", nil)
		return
	}

	var req struct {
		Phone string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, "malformed request body", nil)
		return
	}
	if !model.ValidPhone(req.Phone) {
		writeJSON(w, http.StatusBadRequest, "invalid phone number", nil)
		return
	}

	account, err := h.service.SetPhone(r.Context(), current.ID, req.Phone)
	if err != nil {
		writeError(w, err)
		return
	}

	writeOK(w, toAccountResponse(account))
}
