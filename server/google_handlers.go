package server

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-travel-booking/roles"
	"github.com/rs/zerolog/log"
)

// GoogleBeginHandler starts the Google sign-in flow (GET /auth/google). The
// optional role query parameter carries the role picked on the registration
// page; it only applies to a first-time identity.
func (s *Server) GoogleBeginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.google == nil {
			redirectWithError(w, r, RouteLogin, "Google sign-in is not available.")
			return
		}

		state := uuid.New().String()
		selectedRole := r.URL.Query().Get("role")
		s.setGoogleStateCookie(w, r, state+"|"+selectedRole)

		http.Redirect(w, r, s.google.AuthURL(state), http.StatusFound)
	}
}

// GoogleCallbackHandler completes the Google sign-in flow (GET /auth/google/callback).
func (s *Server) GoogleCallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.google == nil {
			redirectWithError(w, r, RouteLogin, "Google sign-in is not available.")
			return
		}

		cookie, err := r.Cookie(googleStateCookieName)
		if err != nil || cookie.Value == "" {
			redirectWithError(w, r, RouteLogin, "Sign-in session expired. Please try again.")
			return
		}
		state, selectedRole, _ := strings.Cut(cookie.Value, "|")
		if r.URL.Query().Get("state") != state {
			redirectWithError(w, r, RouteLogin, "Sign-in session expired. Please try again.")
			return
		}

		external, err := s.google.Complete(r.Context(), r.URL.Query().Get("code"))
		if err != nil {
			log.Err(err).Msg("google sign-in failed")
			redirectWithError(w, r, RouteLogin, "Google sign-in failed. Please try again.")
			return
		}

		sessionID, err := s.ensureSession(w, r)
		if err != nil {
			log.Err(err).Msg("failed to establish session")
			http.Error(w, "500 - Internal Server Error", http.StatusInternalServerError)
			return
		}

		profile, err := s.auth.FederatedLogin(r.Context(), sessionID, external, roles.RoleTag(selectedRole))
		if err != nil {
			log.Err(err).Msg("federated login failed")
			redirectWithError(w, r, RouteLogin, "Google sign-in failed. Please try again.")
			return
		}

		redirectSuccess(w, r, roles.DefaultDashboard(profile.Role))
	}
}
