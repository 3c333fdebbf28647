package server

import (
	"net/http"

	"github.com/jrsteele09/go-travel-booking/roles"
)

// IndexData renders the public landing page.
type IndexData struct {
	AppName string
}

// IndexHandler serves the landing page (GET /). A signed-in user with a
// settled role goes straight to their dashboard.
func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}

		snap := s.snapshotFor(r)
		if !snap.Loading && snap.Authenticated() && roles.Valid(snap.Role) {
			redirectSuccess(w, r, roles.DefaultDashboard(snap.Role))
			return
		}

		s.renderTemplate(w, "index.html", IndexData{AppName: s.config.GetAppName()})
	}
}
