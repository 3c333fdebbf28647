package server

import (
	"net/http"

	"github.com/jrsteele09/go-travel-booking/booking"
	"github.com/jrsteele09/go-travel-booking/profiles"
	"github.com/jrsteele09/go-travel-booking/session"
	"github.com/rs/zerolog/log"
)

// CustomerDashboardData renders the browse-and-book view. One panel per
// service category; Panel selects which one is open.
type CustomerDashboardData struct {
	Session    session.Snapshot
	Panel      booking.Category
	Categories []booking.Category
	Listings   []*booking.Listing
	Error      string
	Success    string
}

// CustomerDashboardUIHandler displays the customer dashboard
// (GET /customer-dashboard). The panel query parameter selects the open
// service category and defaults to flights.
func (s *Server) CustomerDashboardUIHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.renderCustomerDashboard(w, r, booking.Category(r.URL.Query().Get("panel")))
	}
}

// DeepLinkHandler serves the per-service browse paths such as /flights and
// /hotels. Each opens the customer dashboard on the matching panel.
func (s *Server) DeepLinkHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		panel, ok := deepLinks[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		s.renderCustomerDashboard(w, r, booking.Category(panel))
	}
}

func (s *Server) renderCustomerDashboard(w http.ResponseWriter, r *http.Request, panel booking.Category) {
	if !booking.ValidCategory(panel) {
		panel = booking.CategoryFlight
	}

	listings, err := s.booking.ListingsByCategory(r.Context(), panel)
	if err != nil {
		log.Err(err).Str("category", string(panel)).Msg("failed to load listings")
	}

	s.renderTemplate(w, "customer_dashboard.html", CustomerDashboardData{
		Session:    sessionFromContext(r.Context()),
		Panel:      panel,
		Categories: booking.Categories(),
		Listings:   listings,
		Error:      r.URL.Query().Get("error"),
		Success:    r.URL.Query().Get("success"),
	})
}

// ServiceDashboardData renders the provider view: own listings plus the
// bookings customers have made against them.
type ServiceDashboardData struct {
	Session    session.Snapshot
	Profile    *profiles.Profile
	Categories []booking.Category
	Listings   []*booking.Listing
	Bookings   []*booking.Booking
	Error      string
	Success    string
}

// ServiceDashboardUIHandler displays the provider dashboard (GET /service-dashboard)
func (s *Server) ServiceDashboardUIHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := sessionFromContext(r.Context())

		profile, err := s.profiles.Get(r.Context(), snap.UserID)
		if err != nil {
			log.Err(err).Str("uid", snap.UserID).Msg("failed to load provider profile")
		}
		listings, err := s.booking.ListingsByProvider(r.Context(), snap.UserID)
		if err != nil {
			log.Err(err).Str("uid", snap.UserID).Msg("failed to load provider listings")
		}
		bookings, err := s.booking.BookingsByProvider(r.Context(), snap.UserID)
		if err != nil {
			log.Err(err).Str("uid", snap.UserID).Msg("failed to load provider bookings")
		}

		s.renderTemplate(w, "service_dashboard.html", ServiceDashboardData{
			Session:    snap,
			Profile:    profile,
			Categories: booking.Categories(),
			Listings:   listings,
			Bookings:   bookings,
			Error:      r.URL.Query().Get("error"),
			Success:    r.URL.Query().Get("success"),
		})
	}
}

// AdminDashboardData renders the admin view over all user profiles.
type AdminDashboardData struct {
	Session  session.Snapshot
	Profiles []*profiles.Profile
	Error    string
	Success  string
}

// AdminDashboardUIHandler displays the admin dashboard (GET /admin-dashboard)
func (s *Server) AdminDashboardUIHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		allProfiles, err := s.profiles.List(r.Context())
		if err != nil {
			log.Err(err).Msg("failed to list profiles")
		}

		s.renderTemplate(w, "admin_dashboard.html", AdminDashboardData{
			Session:  sessionFromContext(r.Context()),
			Profiles: allProfiles,
			Error:    r.URL.Query().Get("error"),
			Success:  r.URL.Query().Get("success"),
		})
	}
}
