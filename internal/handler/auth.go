package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/sakif/bible-study/internal/service"
)

// AuthHandler manages account registration and token issuance.
//
// HANDLER RESPONSIBILITIES:
//   - HandleRegister → create an account from name, email and password
//   - HandleLogin    → trade credentials for a bearer token
//   - HandleMe       → return the currently logged-in user's profile
//
// The handler only translates HTTP to service calls. Hashing, email
// normalisation and token signing all live in service.AuthService.
type AuthHandler struct {
	auth    *service.AuthService
	decoder *requestDecoder
	logger  *slog.Logger
}

func NewAuthHandler(auth *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:    auth,
		decoder: &requestDecoder{validate: newValidator()},
		logger:  logger,
	}
}

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// normalize lets " Ruth@Example.com " pass the email tag; the service
// stores the same normalized form.
func (req *registerRequest) normalize() {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = service.NormalizeEmail(req.Email)
}

// loginRequest does not check the email format: a malformed address is
// simply an unknown one and gets the same 401 as a wrong password.
type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse is the body returned by a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// HandleRegister creates a new account.
//
// HTTP: POST /api/auth/register
//
// Returns the stored user (without the password hash). A taken email is
// 400, a missing or malformed field is 422.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := h.decoder.decode(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	user, err := h.auth.Register(r.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// HandleLogin verifies credentials and issues a bearer token.
//
// HTTP: POST /api/auth/login
//
// Unknown email and wrong password produce the same 401 so the endpoint
// can't be used to discover which addresses are registered.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := h.decoder.decode(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	result, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{
		AccessToken: result.Token,
		TokenType:   "bearer",
	})
}

// HandleMe returns the profile of the authenticated user.
//
// HTTP: GET /api/auth/me (requires auth middleware)
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, user)
}
