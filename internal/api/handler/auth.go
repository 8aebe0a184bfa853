package handler

import (
	"encoding/json"
	"net/http"

	"github.com/taskglow/taskglow/internal/api/middleware"
	"github.com/taskglow/taskglow/internal/api/request"
	"github.com/taskglow/taskglow/internal/api/response"
	"github.com/taskglow/taskglow/internal/model"
	"github.com/taskglow/taskglow/internal/services/credentials"
	"github.com/taskglow/taskglow/internal/services/session"
)

// AuthHandler handles authentication and account-recovery endpoints
type AuthHandler struct {
	credentials *credentials.Service
	sessions    *session.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(creds *credentials.Service, sessions *session.Service) *AuthHandler {
	return &AuthHandler{
		credentials: creds,
		sessions:    sessions,
	}
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}
	if req.Email == "" {
		WriteError(w, NewInvalidRequestError("email is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	account, err := h.credentials.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.AccountFromModel(account))
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Email == "" {
		WriteError(w, NewInvalidRequestError("email is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	account, err := h.sessions.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AccountFromModel(account))
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(r.Context()); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// GetMe handles GET /api/v1/auth/me
func (h *AuthHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	account := middleware.MustGetAccount(r.Context())
	response.JSON(w, http.StatusOK, response.AccountFromModel(account))
}

// ForgotPassword handles POST /api/v1/auth/forgot. The recovery flow checks
// the account exists before offering a reset.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req request.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Email == "" {
		WriteError(w, NewInvalidRequestError("email is required"))
		return
	}

	exists, err := h.credentials.AccountExists(r.Context(), req.Email)
	if err != nil {
		WriteError(w, err)
		return
	}
	if !exists {
		WriteError(w, model.ErrAccountNotFound)
		return
	}

	response.NoContent(w)
}

// ResetPassword handles POST /api/v1/auth/reset
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req request.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Email == "" {
		WriteError(w, NewInvalidRequestError("email is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	if err := h.credentials.ResetPassword(r.Context(), req.Email, req.Password); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// UpdateProfile handles PATCH /api/v1/profile
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	account := middleware.MustGetAccount(r.Context())

	var req request.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Name == nil && req.ProfileImage == nil {
		WriteError(w, NewInvalidRequestError("nothing to update"))
		return
	}

	updated, err := h.credentials.UpdateProfile(r.Context(), account.ID, model.ProfileUpdate{
		Name:         req.Name,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AccountFromModel(updated))
}
