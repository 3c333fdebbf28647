package server

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// sessionCookieName carries the signed session id
	sessionCookieName = "travel_session"
	// googleStateCookieName tracks the in-flight Google sign-in
	googleStateCookieName = "google_auth_state"
)

type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// sessionIDFromCookie extracts and verifies the session id from the request
// cookie. A missing, tampered, or expired cookie reads as no session.
func (s *Server) sessionIDFromCookie(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}

	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.config.GetSessionSigningKey(), nil
	})
	if err != nil || !token.Valid || claims.SessionID == "" {
		return "", false
	}
	return claims.SessionID, true
}

// ensureSession returns the request's session id, minting a new one and
// setting the cookie if none exists yet.
func (s *Server) ensureSession(w http.ResponseWriter, r *http.Request) (string, error) {
	if sessionID, ok := s.sessionIDFromCookie(r); ok {
		return sessionID, nil
	}

	sessionID := uuid.New().String()
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.GetMaxSessionAge())),
		},
	})
	signed, err := token.SignedString(s.config.GetSessionSigningKey())
	if err != nil {
		return "", err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		Secure:   getScheme(r) == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.config.GetMaxSessionAge().Seconds()),
	})
	return sessionID, nil
}

// clearSessionCookie deletes the session cookie on logout.
func (s *Server) clearSessionCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   getScheme(r) == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// setGoogleStateCookie stores the CSRF state and pre-selected role for the
// duration of the Google redirect round trip.
func (s *Server) setGoogleStateCookie(w http.ResponseWriter, r *http.Request, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     googleStateCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   getScheme(r) == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   120, // just long enough for the redirect and consent screen
	})
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}

// safeNext accepts a post-login bounce-back target only if it is a local
// path, never an absolute URL to another host.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return ""
	}
	return next
}

// redirectSuccess issues a see-other redirect.
func redirectSuccess(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// redirectWithError redirects appending a user-facing error message.
func redirectWithError(w http.ResponseWriter, r *http.Request, path, errorMsg string) {
	separator := "?"
	if strings.Contains(path, "?") {
		separator = "&"
	}
	http.Redirect(w, r, path+separator+"error="+url.QueryEscape(errorMsg), http.StatusSeeOther)
}
