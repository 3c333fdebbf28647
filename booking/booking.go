// Package booking holds the travel inventory: listings created by service
// providers and bookings made against them by customers. Both live in the
// platform document store, under listings/{id} and bookings/{id}.
package booking

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/jrsteele09/go-travel-booking/internal/errors"
	"github.com/jrsteele09/go-travel-booking/platform"
	"github.com/pkg/errors"
)

// Category is the service category a listing belongs to. One category per
// customer-dashboard panel.
type Category string

const (
	CategoryFlight   Category = "flight"
	CategoryHotel    Category = "hotel"
	CategoryTrain    Category = "train"
	CategoryBus      Category = "bus"
	CategoryPackage  Category = "package"
	CategoryActivity Category = "activity"
)

// Categories lists every category in display order.
func Categories() []Category {
	return []Category{
		CategoryFlight, CategoryHotel, CategoryTrain,
		CategoryBus, CategoryPackage, CategoryActivity,
	}
}

// ValidCategory reports membership of the closed category set.
func ValidCategory(c Category) bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Listing is a bookable item owned by a provider.
type Listing struct {
	ID          string
	ProviderUID string
	Category    Category
	Title       string
	Location    string
	Description string
	Price       int64 // smallest currency unit
	ImageURL    string
	CreatedAt   time.Time
}

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking records a customer booking a listing. Listing fields are copied in
// at booking time so the record survives listing deletion.
type Booking struct {
	ID          string
	ListingID   string
	CustomerUID string
	ProviderUID string
	Category    Category
	Title       string
	Price       int64
	Status      BookingStatus
	CreatedAt   time.Time
}

// Service is the inventory service over the document and file stores.
type Service struct {
	docs    platform.Documents
	files   platform.Files
	nowTime func() time.Time
}

// ServiceOption modifies a Service instance.
type ServiceOption func(*Service)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

func NewService(docs platform.Documents, files platform.Files, options ...ServiceOption) (*Service, error) {
	if docs == nil {
		return nil, errors.New("[booking.NewService] document store is required")
	}
	if files == nil {
		return nil, errors.New("[booking.NewService] file store is required")
	}

	s := &Service{docs: docs, files: files, nowTime: time.Now}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// CreateListingInput is the provider "add listing" form.
type CreateListingInput struct {
	ProviderUID string
	Category    Category
	Title       string
	Location    string
	Description string
	Price       int64
}

func (s *Service) CreateListing(ctx context.Context, in CreateListingInput) (*Listing, error) {
	if !ValidCategory(in.Category) {
		return nil, apperrors.ErrInvalidCategory
	}
	if in.ProviderUID == "" || in.Title == "" || in.Price <= 0 {
		return nil, apperrors.ErrInvalidInput
	}

	listing := &Listing{
		ID:          uuid.New().String(),
		ProviderUID: in.ProviderUID,
		Category:    in.Category,
		Title:       in.Title,
		Location:    in.Location,
		Description: in.Description,
		Price:       in.Price,
		CreatedAt:   s.nowTime(),
	}
	if err := s.docs.Write(ctx, listingPath(listing.ID), listingDoc(listing), false); err != nil {
		return nil, errors.Wrap(err, "[Service.CreateListing] docs.Write")
	}
	return listing, nil
}

// GetListing returns one listing by id.
func (s *Service) GetListing(ctx context.Context, id string) (*Listing, error) {
	doc, err := s.docs.Read(ctx, listingPath(id))
	if errors.Is(err, platform.ErrMissing) {
		return nil, apperrors.ErrListingNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "[Service.GetListing] docs.Read")
	}
	return listingFromDoc(id, doc), nil
}

// DeleteListing removes a listing the provider owns.
func (s *Service) DeleteListing(ctx context.Context, providerUID, id string) error {
	listing, err := s.GetListing(ctx, id)
	if err != nil {
		return err
	}
	if listing.ProviderUID != providerUID {
		return apperrors.ErrNotListingOwner
	}
	if err := s.docs.Delete(ctx, listingPath(id)); err != nil {
		return errors.Wrap(err, "[Service.DeleteListing] docs.Delete")
	}
	return nil
}

// AttachImage uploads a listing image to the file store and records the
// serving URL on the listing document.
func (s *Service) AttachImage(ctx context.Context, providerUID, id string, data []byte) (string, error) {
	listing, err := s.GetListing(ctx, id)
	if err != nil {
		return "", err
	}
	if listing.ProviderUID != providerUID {
		return "", apperrors.ErrNotListingOwner
	}

	url, err := s.files.Upload(ctx, "listings/"+id+"/image", data)
	if err != nil {
		return "", errors.Wrap(err, "[Service.AttachImage] files.Upload")
	}
	if err := s.docs.Write(ctx, listingPath(id), map[string]any{"imageUrl": url}, true); err != nil {
		return "", errors.Wrap(err, "[Service.AttachImage] docs.Write")
	}
	return url, nil
}

// ListingsByCategory returns a category's listings, newest first.
func (s *Service) ListingsByCategory(ctx context.Context, category Category) ([]*Listing, error) {
	return s.listings(ctx, func(l *Listing) bool { return l.Category == category })
}

// ListingsByProvider returns a provider's listings, newest first.
func (s *Service) ListingsByProvider(ctx context.Context, providerUID string) ([]*Listing, error) {
	return s.listings(ctx, func(l *Listing) bool { return l.ProviderUID == providerUID })
}

func (s *Service) listings(ctx context.Context, keep func(*Listing) bool) ([]*Listing, error) {
	docs, err := s.docs.List(ctx, "listings")
	if err != nil {
		return nil, errors.Wrap(err, "[Service.listings] docs.List")
	}

	out := make([]*Listing, 0, len(docs))
	for id, doc := range docs {
		if l := listingFromDoc(id, doc); keep(l) {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Book creates a confirmed booking of a listing for a customer.
func (s *Service) Book(ctx context.Context, customerUID, listingID string) (*Booking, error) {
	if customerUID == "" {
		return nil, apperrors.ErrInvalidInput
	}
	listing, err := s.GetListing(ctx, listingID)
	if err != nil {
		return nil, err
	}

	booking := &Booking{
		ID:          uuid.New().String(),
		ListingID:   listing.ID,
		CustomerUID: customerUID,
		ProviderUID: listing.ProviderUID,
		Category:    listing.Category,
		Title:       listing.Title,
		Price:       listing.Price,
		Status:      BookingConfirmed,
		CreatedAt:   s.nowTime(),
	}
	if err := s.docs.Write(ctx, bookingPath(booking.ID), bookingDoc(booking), false); err != nil {
		return nil, errors.Wrap(err, "[Service.Book] docs.Write")
	}
	return booking, nil
}

// Cancel sets a booking the customer owns to cancelled.
func (s *Service) Cancel(ctx context.Context, customerUID, bookingID string) error {
	doc, err := s.docs.Read(ctx, bookingPath(bookingID))
	if errors.Is(err, platform.ErrMissing) {
		return apperrors.ErrBookingNotFound
	}
	if err != nil {
		return errors.Wrap(err, "[Service.Cancel] docs.Read")
	}

	booking := bookingFromDoc(bookingID, doc)
	if booking.CustomerUID != customerUID {
		return apperrors.ErrNotBookingOwner
	}
	if booking.Status == BookingCancelled {
		return apperrors.ErrAlreadyCancelled
	}
	if err := s.docs.Write(ctx, bookingPath(bookingID), map[string]any{"status": string(BookingCancelled)}, true); err != nil {
		return errors.Wrap(err, "[Service.Cancel] docs.Write")
	}
	return nil
}

// BookingsByCustomer returns a customer's bookings, newest first.
func (s *Service) BookingsByCustomer(ctx context.Context, customerUID string) ([]*Booking, error) {
	return s.bookings(ctx, func(b *Booking) bool { return b.CustomerUID == customerUID })
}

// BookingsByProvider returns the bookings against a provider's listings,
// newest first.
func (s *Service) BookingsByProvider(ctx context.Context, providerUID string) ([]*Booking, error) {
	return s.bookings(ctx, func(b *Booking) bool { return b.ProviderUID == providerUID })
}

func (s *Service) bookings(ctx context.Context, keep func(*Booking) bool) ([]*Booking, error) {
	docs, err := s.docs.List(ctx, "bookings")
	if err != nil {
		return nil, errors.Wrap(err, "[Service.bookings] docs.List")
	}

	out := make([]*Booking, 0, len(docs))
	for id, doc := range docs {
		if b := bookingFromDoc(id, doc); keep(b) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func listingPath(id string) string { return "listings/" + id }
func bookingPath(id string) string { return "bookings/" + id }

func listingDoc(l *Listing) map[string]any {
	doc := map[string]any{
		"providerUid": l.ProviderUID,
		"category":    string(l.Category),
		"title":       l.Title,
		"location":    l.Location,
		"description": l.Description,
		"price":       l.Price,
		"createdAt":   l.CreatedAt.UTC().Format(time.RFC3339),
	}
	if l.ImageURL != "" {
		doc["imageUrl"] = l.ImageURL
	}
	return doc
}

func listingFromDoc(id string, doc map[string]any) *Listing {
	return &Listing{
		ID:          id,
		ProviderUID: stringField(doc, "providerUid"),
		Category:    Category(stringField(doc, "category")),
		Title:       stringField(doc, "title"),
		Location:    stringField(doc, "location"),
		Description: stringField(doc, "description"),
		Price:       intField(doc, "price"),
		ImageURL:    stringField(doc, "imageUrl"),
		CreatedAt:   timeField(doc, "createdAt"),
	}
}

func bookingDoc(b *Booking) map[string]any {
	return map[string]any{
		"listingId":   b.ListingID,
		"customerUid": b.CustomerUID,
		"providerUid": b.ProviderUID,
		"category":    string(b.Category),
		"title":       b.Title,
		"price":       b.Price,
		"status":      string(b.Status),
		"createdAt":   b.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func bookingFromDoc(id string, doc map[string]any) *Booking {
	return &Booking{
		ID:          id,
		ListingID:   stringField(doc, "listingId"),
		CustomerUID: stringField(doc, "customerUid"),
		ProviderUID: stringField(doc, "providerUid"),
		Category:    Category(stringField(doc, "category")),
		Title:       stringField(doc, "title"),
		Price:       intField(doc, "price"),
		Status:      BookingStatus(stringField(doc, "status")),
		CreatedAt:   timeField(doc, "createdAt"),
	}
}

func stringField(doc map[string]any, key string) string {
	if v, ok := doc[key].(string); ok {
		return v
	}
	return ""
}

func intField(doc map[string]any, key string) int64 {
	switch v := doc[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	}
	return 0
}

func timeField(doc map[string]any, key string) time.Time {
	raw, ok := doc[key].(string)
	if !ok {
		return time.Time{}
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}
	return ts
}
