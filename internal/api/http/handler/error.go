package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/cypresslabs/identity-server/internal/model"
	"github.com/cypresslabs/identity-server/internal/service"
)

// response is the JSON envelope shared by every endpoint.
type response struct {
	Code string `json:"code"`
	Info string `json:"info"`
	Data any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, info string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(response{
		Code: strconv.Itoa(status),
		Info: info,
		Data: data,
	})
}

func writeOK(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, "success", data)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrCodeExpired):
		writeJSON(w, http.StatusBadRequest, "verification code expired", nil)
	case errors.Is(err, model.ErrCodeInvalid):
		writeJSON(w, http.StatusBadRequest, "incorrect verification code", nil)
	case errors.Is(err, service.ErrPasswordTooShort):
		writeJSON(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, model.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, "invalid credentials", nil)
	case errors.Is(err, model.ErrNotFound):
		writeJSON(w, http.StatusNotFound, "account not found", nil)
	case errors.Is(err, model.ErrConflict):
		writeJSON(w, http.StatusConflict, "already taken", nil)
	default:
		writeJSON(w, http.StatusInternalServerError, "internal server error", nil)
	}
}
