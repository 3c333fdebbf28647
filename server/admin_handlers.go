package server

import (
	"net/http"

	"github.com/jrsteele09/go-travel-booking/profiles"
	"github.com/rs/zerolog/log"
)

// AdminUserStatusHandler sets a user's account status
// (POST /admin/users/{id}/status). Admins approve pending provider accounts
// and suspend misbehaving ones from here.
func (s *Server) AdminUserStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		uid := r.PathValue("id")
		status := profiles.Status(r.FormValue("status"))

		switch status {
		case profiles.StatusPending, profiles.StatusActive, profiles.StatusSuspended:
		default:
			redirectWithError(w, r, RouteAdminDashboard, "Unknown account status.")
			return
		}

		if err := s.profiles.SetStatus(r.Context(), uid, status); err != nil {
			log.Err(err).Str("uid", uid).Msg("status update failed")
			redirectWithError(w, r, RouteAdminDashboard, "Could not update the account status.")
			return
		}
		redirectSuccess(w, r, RouteAdminDashboard+"?success=Account+status+updated.")
	}
}
