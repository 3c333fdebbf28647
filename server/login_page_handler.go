package server

import (
	"net/http"

	"github.com/jrsteele09/go-travel-booking/auth"
	"github.com/jrsteele09/go-travel-booking/roles"
	"github.com/rs/zerolog/log"
)

// LoginPageData contains data for rendering the login page
type LoginPageData struct {
	Error   string
	Success string
	Email   string // Preserve email on error
	Next    string // Remembered location to return to after login
}

// LoginPageUIHandler displays the login page (GET /login)
func (s *Server) LoginPageUIHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := LoginPageData{
			Error:   r.URL.Query().Get("error"),
			Success: r.URL.Query().Get("success"),
			Email:   r.URL.Query().Get("email"),
			Next:    safeNext(r.URL.Query().Get("next")),
		}
		s.renderTemplate(w, "login.html", data)
	}
}

// LoginSubmissionHandler processes the login form submission. A failed login
// re-renders the form in place with the error message; the browser never
// navigates away from the login view.
func (s *Server) LoginSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		email := r.FormValue("email")
		password := r.FormValue("password")
		next := safeNext(r.FormValue("next"))

		sessionID, err := s.ensureSession(w, r)
		if err != nil {
			log.Err(err).Msg("failed to establish session")
			http.Error(w, "500 - Internal Server Error", http.StatusInternalServerError)
			return
		}

		profile, err := s.auth.Login(r.Context(), sessionID, email, password)
		if err != nil {
			s.renderTemplate(w, "login.html", LoginPageData{
				Error: auth.Message(err),
				Email: email,
				Next:  next,
			})
			return
		}

		// A remembered location wins over the role's default dashboard, and
		// is consumed by this navigation.
		if next != "" {
			redirectSuccess(w, r, next)
			return
		}
		redirectSuccess(w, r, roles.DefaultDashboard(profile.Role))
	}
}

// LogoutHandler ends the platform session and clears the cookie.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sessionID, ok := s.sessionIDFromCookie(r); ok {
			if err := s.auth.Logout(r.Context(), sessionID); err != nil {
				log.Err(err).Msg("logout failed")
			}
		}
		s.clearSessionCookie(w, r)
		redirectSuccess(w, r, RouteLogin)
	}
}

// ForgotPasswordHandler sends a password reset email (POST /auth/forgot-password).
func (s *Server) ForgotPasswordHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		email := r.FormValue("email")

		if err := s.auth.ForgotPassword(r.Context(), email); err != nil {
			redirectWithError(w, r, RouteLogin, auth.Message(err))
			return
		}
		redirectSuccess(w, r, RouteLogin+"?success=Password+reset+email+sent.+Check+your+inbox.")
	}
}
