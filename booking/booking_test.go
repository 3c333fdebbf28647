package booking_test

import (
	"context"
	"testing"
	"time"

	"github.com/jrsteele09/go-travel-booking/booking"
	apperrors "github.com/jrsteele09/go-travel-booking/internal/errors"
	"github.com/jrsteele09/go-travel-booking/platform/memplatform"
	"github.com/stretchr/testify/require"
)

const (
	providerUID = "provider-1"
	customerUID = "customer-1"
)

func setupService(t *testing.T) *booking.Service {
	t.Helper()

	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	nowTime := func() time.Time {
		tick++
		return now.Add(time.Duration(tick) * time.Minute)
	}

	service, err := booking.NewService(memplatform.NewDocuments(), memplatform.NewFiles(), booking.WithNowTime(nowTime))
	require.NoError(t, err)
	return service
}

func createListing(t *testing.T, s *booking.Service, category booking.Category, title string) *booking.Listing {
	t.Helper()

	listing, err := s.CreateListing(context.Background(), booking.CreateListingInput{
		ProviderUID: providerUID,
		Category:    category,
		Title:       title,
		Location:    "Chennai",
		Price:       450000,
	})
	require.NoError(t, err)
	return listing
}

func TestCreateListing(t *testing.T) {
	t.Run("created listings appear in their category, newest first", func(t *testing.T) {
		s := setupService(t)
		createListing(t, s, booking.CategoryHotel, "Sea View Suites")
		newest := createListing(t, s, booking.CategoryHotel, "Hilltop Lodge")
		createListing(t, s, booking.CategoryFlight, "MAA-DEL Morning")

		hotels, err := s.ListingsByCategory(context.Background(), booking.CategoryHotel)
		require.NoError(t, err)
		require.Len(t, hotels, 2)
		require.Equal(t, newest.ID, hotels[0].ID)
	})

	t.Run("invalid category rejected", func(t *testing.T) {
		s := setupService(t)
		_, err := s.CreateListing(context.Background(), booking.CreateListingInput{
			ProviderUID: providerUID, Category: "cruise", Title: "X", Price: 100,
		})
		require.ErrorIs(t, err, apperrors.ErrInvalidCategory)
	})

	t.Run("missing title rejected", func(t *testing.T) {
		s := setupService(t)
		_, err := s.CreateListing(context.Background(), booking.CreateListingInput{
			ProviderUID: providerUID, Category: booking.CategoryBus, Price: 100,
		})
		require.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}

func TestDeleteListing(t *testing.T) {
	s := setupService(t)
	listing := createListing(t, s, booking.CategoryTrain, "Chennai Express")

	t.Run("only the owner may delete", func(t *testing.T) {
		err := s.DeleteListing(context.Background(), "someone-else", listing.ID)
		require.ErrorIs(t, err, apperrors.ErrNotListingOwner)
	})

	t.Run("owner delete removes the listing", func(t *testing.T) {
		require.NoError(t, s.DeleteListing(context.Background(), providerUID, listing.ID))
		_, err := s.GetListing(context.Background(), listing.ID)
		require.ErrorIs(t, err, apperrors.ErrListingNotFound)
	})
}

func TestAttachImage(t *testing.T) {
	s := setupService(t)
	listing := createListing(t, s, booking.CategoryActivity, "Backwater Kayaking")

	url, err := s.AttachImage(context.Background(), providerUID, listing.ID, []byte{0xFF, 0xD8})
	require.NoError(t, err)
	require.NotEmpty(t, url)

	got, err := s.GetListing(context.Background(), listing.ID)
	require.NoError(t, err)
	require.Equal(t, url, got.ImageURL)

	_, err = s.AttachImage(context.Background(), "someone-else", listing.ID, []byte{0x00})
	require.ErrorIs(t, err, apperrors.ErrNotListingOwner)
}

func TestBookAndCancel(t *testing.T) {
	s := setupService(t)
	listing := createListing(t, s, booking.CategoryPackage, "Kerala Week")

	booked, err := s.Book(context.Background(), customerUID, listing.ID)
	require.NoError(t, err)
	require.Equal(t, booking.BookingConfirmed, booked.Status)
	require.Equal(t, listing.Price, booked.Price)
	require.Equal(t, providerUID, booked.ProviderUID)

	t.Run("customer and provider both see it", func(t *testing.T) {
		mine, err := s.BookingsByCustomer(context.Background(), customerUID)
		require.NoError(t, err)
		require.Len(t, mine, 1)

		theirs, err := s.BookingsByProvider(context.Background(), providerUID)
		require.NoError(t, err)
		require.Len(t, theirs, 1)
	})

	t.Run("booking survives listing deletion", func(t *testing.T) {
		require.NoError(t, s.DeleteListing(context.Background(), providerUID, listing.ID))
		mine, err := s.BookingsByCustomer(context.Background(), customerUID)
		require.NoError(t, err)
		require.Len(t, mine, 1)
		require.Equal(t, "Kerala Week", mine[0].Title)
	})

	t.Run("only the booking customer may cancel", func(t *testing.T) {
		err := s.Cancel(context.Background(), "someone-else", booked.ID)
		require.ErrorIs(t, err, apperrors.ErrNotBookingOwner)
	})

	t.Run("cancel is terminal", func(t *testing.T) {
		require.NoError(t, s.Cancel(context.Background(), customerUID, booked.ID))
		err := s.Cancel(context.Background(), customerUID, booked.ID)
		require.ErrorIs(t, err, apperrors.ErrAlreadyCancelled)

		mine, err := s.BookingsByCustomer(context.Background(), customerUID)
		require.NoError(t, err)
		require.Equal(t, booking.BookingCancelled, mine[0].Status)
	})

	t.Run("booking a missing listing fails", func(t *testing.T) {
		_, err := s.Book(context.Background(), customerUID, "no-such-listing")
		require.ErrorIs(t, err, apperrors.ErrListingNotFound)
	})
}
