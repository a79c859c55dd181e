package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bombers-fc/club-manager/middleware"
	"github.com/bombers-fc/club-manager/services"
)

func newAuthHandler(t *testing.T, clubPassword string) *AuthHandler {
	t.Helper()
	authService, err := services.NewAuthService(clubPassword)
	if err != nil {
		t.Fatalf("NewAuthService() error = %v", err)
	}
	authenticator := middleware.NewAuthenticator("signing-secret", authService.Enabled())
	return NewAuthHandler(authService, authenticator)
}

func findCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func TestLoginSetsSessionCookie(t *testing.T) {
	handler := newAuthHandler(t, "club-secret")

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"password":"club-secret"}`))
	rec := httptest.NewRecorder()
	handler.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body: %s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	cookie := findCookie(t, rec, middleware.AuthCookieName)
	if cookie == nil {
		t.Fatal("session cookie not set")
	}
	if cookie.Value == "" {
		t.Error("session cookie is empty")
	}
	if !cookie.HttpOnly {
		t.Error("session cookie is not HttpOnly")
	}
	if cookie.MaxAge <= 0 {
		t.Errorf("session cookie MaxAge = %d, want positive", cookie.MaxAge)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	handler := newAuthHandler(t, "club-secret")

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"password":"wrong"}`))
	rec := httptest.NewRecorder()
	handler.Login(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if cookie := findCookie(t, rec, middleware.AuthCookieName); cookie != nil {
		t.Error("session cookie set despite failed login")
	}
}

func TestLoginRejectsMalformedBody(t *testing.T) {
	handler := newAuthHandler(t, "club-secret")

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`not json`))
	rec := httptest.NewRecorder()
	handler.Login(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestLogoutClearsSessionCookie(t *testing.T) {
	handler := newAuthHandler(t, "club-secret")

	rec := httptest.NewRecorder()
	handler.Logout(rec, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	cookie := findCookie(t, rec, middleware.AuthCookieName)
	if cookie == nil {
		t.Fatal("clearing cookie not set")
	}
	if cookie.MaxAge >= 0 {
		t.Errorf("clearing cookie MaxAge = %d, want negative", cookie.MaxAge)
	}
}
