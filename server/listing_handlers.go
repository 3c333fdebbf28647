package server

import (
	"io"
	"net/http"
	"strconv"

	"github.com/jrsteele09/go-travel-booking/booking"
	apperrors "github.com/jrsteele09/go-travel-booking/internal/errors"
	"github.com/rs/zerolog/log"
)

// maxListingImageBytes caps listing image uploads at 5 MiB.
const maxListingImageBytes = 5 << 20

// ListingCreateHandler adds a listing for the signed-in provider
// (POST /listings).
func (s *Server) ListingCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		snap := sessionFromContext(r.Context())
		price, _ := strconv.ParseInt(r.FormValue("price"), 10, 64)

		in := booking.CreateListingInput{
			ProviderUID: snap.UserID,
			Category:    booking.Category(r.FormValue("category")),
			Title:       r.FormValue("title"),
			Location:    r.FormValue("location"),
			Description: r.FormValue("description"),
			Price:       price,
		}

		if _, err := s.booking.CreateListing(r.Context(), in); err != nil {
			log.Err(err).Msg("listing create failed")
			redirectWithError(w, r, RouteServiceDashboard, listingMessage(err))
			return
		}
		redirectSuccess(w, r, RouteServiceDashboard+"?success=Listing+added.")
	}
}

// ListingDeleteHandler removes one of the provider's listings
// (POST /listings/{id}/delete).
func (s *Server) ListingDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := sessionFromContext(r.Context())
		listingID := r.PathValue("id")

		if err := s.booking.DeleteListing(r.Context(), snap.UserID, listingID); err != nil {
			log.Err(err).Str("listingID", listingID).Msg("listing delete failed")
			redirectWithError(w, r, RouteServiceDashboard, listingMessage(err))
			return
		}
		redirectSuccess(w, r, RouteServiceDashboard+"?success=Listing+removed.")
	}
}

// ListingImageHandler attaches an uploaded image to one of the provider's
// listings (POST /listings/{id}/image).
func (s *Server) ListingImageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := sessionFromContext(r.Context())
		listingID := r.PathValue("id")

		if err := r.ParseMultipartForm(maxListingImageBytes); err != nil {
			redirectWithError(w, r, RouteServiceDashboard, "Image upload failed. The file may be too large.")
			return
		}
		file, _, err := r.FormFile("image")
		if err != nil {
			redirectWithError(w, r, RouteServiceDashboard, "Choose an image to upload.")
			return
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, maxListingImageBytes))
		if err != nil {
			redirectWithError(w, r, RouteServiceDashboard, "Image upload failed. Please try again.")
			return
		}

		if _, err := s.booking.AttachImage(r.Context(), snap.UserID, listingID, data); err != nil {
			log.Err(err).Str("listingID", listingID).Msg("image attach failed")
			redirectWithError(w, r, RouteServiceDashboard, listingMessage(err))
			return
		}
		redirectSuccess(w, r, RouteServiceDashboard+"?success=Image+uploaded.")
	}
}

// ProfileDeleteHandler deletes the signed-in provider's profile and account
// (POST /profile/delete).
func (s *Server) ProfileDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := sessionFromContext(r.Context())

		if err := s.auth.DeleteProfile(r.Context(), snap.UserID); err != nil {
			log.Err(err).Str("uid", snap.UserID).Msg("profile delete failed")
			redirectWithError(w, r, RouteServiceDashboard, "Could not delete your profile. Please try again.")
			return
		}

		if sessionID, ok := s.sessionIDFromCookie(r); ok {
			if err := s.auth.Logout(r.Context(), sessionID); err != nil {
				log.Err(err).Msg("logout after profile delete failed")
			}
		}
		s.clearSessionCookie(w, r)
		redirectSuccess(w, r, RouteLogin+"?success=Your+profile+has+been+deleted.")
	}
}

// listingMessage maps inventory errors to user-facing sentences.
func listingMessage(err error) string {
	switch {
	case apperrors.Is(err, apperrors.ErrInvalidCategory):
		return "Choose a valid service category."
	case apperrors.Is(err, apperrors.ErrInvalidInput):
		return "Title and a positive price are required."
	case apperrors.Is(err, apperrors.ErrListingNotFound):
		return "That listing no longer exists."
	case apperrors.Is(err, apperrors.ErrNotListingOwner):
		return "You can only manage your own listings."
	default:
		return "Something went wrong. Please try again."
	}
}
