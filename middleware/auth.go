package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// AuthCookieName is the session cookie set after a successful password login.
const AuthCookieName = "bombers_fc_auth"

const sessionTTL = 30 * 24 * time.Hour

// Authenticator issues and verifies the signed session tokens carried by the
// auth cookie. When disabled (no club password configured) every request
// passes through.
type Authenticator struct {
	secret  []byte
	enabled bool
}

func NewAuthenticator(secret string, enabled bool) *Authenticator {
	return &Authenticator{
		secret:  []byte(secret),
		enabled: enabled,
	}
}

func (a *Authenticator) Enabled() bool {
	return a.enabled
}

// IssueToken mints a signed session token valid for thirty days.
func (a *Authenticator) IssueToken() (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iat": now.Unix(),
		"exp": now.Add(sessionTTL).Unix(),
	})
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// SessionTTL is exposed so the handler can align the cookie Max-Age with the
// token expiry.
func (a *Authenticator) SessionTTL() time.Duration {
	return sessionTTL
}

func (a *Authenticator) verifyToken(tokenString string) error {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return err
	}
	if !token.Valid {
		return fmt.Errorf("invalid session token")
	}
	return nil
}

// Authenticate rejects requests that do not carry a valid session cookie.
func (a *Authenticator) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.enabled {
			next.ServeHTTP(w, r)
			return
		}

		cookie, err := r.Cookie(AuthCookieName)
		if err != nil || a.verifyToken(cookie.Value) != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"authentication required"}` + "\n"))
			return
		}

		next.ServeHTTP(w, r)
	})
}
