package server

import (
	"net/http"

	"github.com/jrsteele09/go-travel-booking/booking"
	apperrors "github.com/jrsteele09/go-travel-booking/internal/errors"
	"github.com/jrsteele09/go-travel-booking/session"
	"github.com/rs/zerolog/log"
)

// MyBookingsData renders the customer's booking history.
type MyBookingsData struct {
	Session  session.Snapshot
	Bookings []*booking.Booking
	Error    string
	Success  string
}

// MyBookingsUIHandler displays the customer's bookings (GET /my-bookings)
func (s *Server) MyBookingsUIHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := sessionFromContext(r.Context())

		bookings, err := s.booking.BookingsByCustomer(r.Context(), snap.UserID)
		if err != nil {
			log.Err(err).Str("uid", snap.UserID).Msg("failed to load bookings")
		}

		s.renderTemplate(w, "my_bookings.html", MyBookingsData{
			Session:  snap,
			Bookings: bookings,
			Error:    r.URL.Query().Get("error"),
			Success:  r.URL.Query().Get("success"),
		})
	}
}

// BookSubmissionHandler books a listing for the signed-in customer
// (POST /bookings).
func (s *Server) BookSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		snap := sessionFromContext(r.Context())
		listingID := r.FormValue("listingId")

		if _, err := s.booking.Book(r.Context(), snap.UserID, listingID); err != nil {
			log.Err(err).Str("listingID", listingID).Msg("booking failed")
			redirectWithError(w, r, RouteCustomerDashboard, bookingMessage(err))
			return
		}
		redirectSuccess(w, r, RouteMyBookings+"?success=Booking+confirmed.")
	}
}

// BookingCancelHandler cancels one of the customer's bookings
// (POST /bookings/{id}/cancel).
func (s *Server) BookingCancelHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := sessionFromContext(r.Context())
		bookingID := r.PathValue("id")

		if err := s.booking.Cancel(r.Context(), snap.UserID, bookingID); err != nil {
			log.Err(err).Str("bookingID", bookingID).Msg("cancel failed")
			redirectWithError(w, r, RouteMyBookings, bookingMessage(err))
			return
		}
		redirectSuccess(w, r, RouteMyBookings+"?success=Booking+cancelled.")
	}
}

// bookingMessage maps inventory errors to user-facing sentences.
func bookingMessage(err error) string {
	switch {
	case apperrors.Is(err, apperrors.ErrListingNotFound):
		return "That listing is no longer available."
	case apperrors.Is(err, apperrors.ErrBookingNotFound):
		return "Booking not found."
	case apperrors.Is(err, apperrors.ErrNotBookingOwner):
		return "You can only manage your own bookings."
	case apperrors.Is(err, apperrors.ErrAlreadyCancelled):
		return "That booking is already cancelled."
	default:
		return "Something went wrong. Please try again."
	}
}
