package handlers

import (
	"net/http"

	"github.com/bombers-fc/club-manager/middleware"
	"github.com/bombers-fc/club-manager/services"
)

type AuthHandler struct {
	authService   services.AuthService
	authenticator *middleware.Authenticator
}

func NewAuthHandler(authService services.AuthService, authenticator *middleware.Authenticator) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		authenticator: authenticator,
	}
}

type loginInput struct {
	Password string `json:"password"`
}

// Login verifies the club password and sets the session cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input loginInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.authService.VerifyPassword(input.Password); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	token, err := h.authenticator.IssueToken()
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.authenticator.SessionTTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	if err := writeJSON(w, http.StatusOK, jsonResponse{"ok": true}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	if err := writeJSON(w, http.StatusOK, jsonResponse{"ok": true}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
