// Package profiles owns the user profile document: the persisted record
// mapping a principal to its role and onboarding fields. The document lives at
// users/{uid} in the platform document store.
package profiles

import (
	"context"
	"fmt"
	"time"

	"github.com/jrsteele09/go-travel-booking/platform"
	"github.com/jrsteele09/go-travel-booking/roles"
	"github.com/pkg/errors"
)

// Status is the approval state of a profile. Admin accounts are created
// active; everyone else starts pending until an admin approves them.
type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
)

// Profile is the persisted user record.
type Profile struct {
	UID                 string
	Email               string
	Role                roles.RoleTag
	FirstName           string
	LastName            string
	Mobile              string
	CompanyName         string
	LicenseNumber       string
	HotelRegistrationID string
	VehicleFleetSize    int
	ProviderType        roles.ProviderType
	Status              Status
	RegisteredAt        time.Time
}

// PathFor returns the document path for a uid.
func PathFor(uid string) string {
	return "users/" + uid
}

// Repo reads and writes profile documents.
type Repo struct {
	docs platform.Documents
}

func NewRepo(docs platform.Documents) *Repo {
	return &Repo{docs: docs}
}

// Get returns the profile for uid, or platform.ErrMissing if none exists.
func (r *Repo) Get(ctx context.Context, uid string) (*Profile, error) {
	doc, err := r.docs.Read(ctx, PathFor(uid))
	if err != nil {
		return nil, err
	}
	return fromDoc(uid, doc), nil
}

// Put writes the full profile document.
func (r *Repo) Put(ctx context.Context, p *Profile) error {
	if p.UID == "" {
		return errors.New("[Repo.Put] profile uid is required")
	}
	return r.docs.Write(ctx, PathFor(p.UID), toDoc(p), false)
}

// SetStatus updates only the status field.
func (r *Repo) SetStatus(ctx context.Context, uid string, status Status) error {
	return r.docs.Write(ctx, PathFor(uid), map[string]any{"status": string(status)}, true)
}

// Delete removes the profile document. This is the only profile delete in the
// application, used by the provider "delete profile" action.
func (r *Repo) Delete(ctx context.Context, uid string) error {
	return r.docs.Delete(ctx, PathFor(uid))
}

// List returns every profile, keyed by uid.
func (r *Repo) List(ctx context.Context) ([]*Profile, error) {
	docs, err := r.docs.List(ctx, "users")
	if err != nil {
		return nil, errors.Wrap(err, "[Repo.List] docs.List")
	}
	out := make([]*Profile, 0, len(docs))
	for uid, doc := range docs {
		out = append(out, fromDoc(uid, doc))
	}
	return out, nil
}

func toDoc(p *Profile) map[string]any {
	doc := map[string]any{
		"email":        p.Email,
		"role":         string(p.Role),
		"status":       string(p.Status),
		"registeredAt": p.RegisteredAt.UTC().Format(time.RFC3339),
	}
	if p.FirstName != "" {
		doc["firstName"] = p.FirstName
	}
	if p.LastName != "" {
		doc["lastName"] = p.LastName
	}
	if p.Mobile != "" {
		doc["mobile"] = p.Mobile
	}
	if p.CompanyName != "" {
		doc["companyName"] = p.CompanyName
	}
	if p.LicenseNumber != "" {
		doc["licenseNumber"] = p.LicenseNumber
	}
	if p.HotelRegistrationID != "" {
		doc["hotelRegistrationId"] = p.HotelRegistrationID
	}
	if p.VehicleFleetSize > 0 {
		doc["vehicleFleetSize"] = p.VehicleFleetSize
	}
	if p.ProviderType != "" {
		doc["providerType"] = string(p.ProviderType)
	}
	return doc
}

func fromDoc(uid string, doc map[string]any) *Profile {
	p := &Profile{
		UID:                 uid,
		Email:               stringField(doc, "email"),
		Role:                roles.RoleTag(stringField(doc, "role")),
		FirstName:           stringField(doc, "firstName"),
		LastName:            stringField(doc, "lastName"),
		Mobile:              stringField(doc, "mobile"),
		CompanyName:         stringField(doc, "companyName"),
		LicenseNumber:       stringField(doc, "licenseNumber"),
		HotelRegistrationID: stringField(doc, "hotelRegistrationId"),
		ProviderType:        roles.ProviderType(stringField(doc, "providerType")),
		Status:              Status(stringField(doc, "status")),
	}
	switch v := doc["vehicleFleetSize"].(type) {
	case int:
		p.VehicleFleetSize = v
	case float64:
		p.VehicleFleetSize = int(v)
	}
	if raw := stringField(doc, "registeredAt"); raw != "" {
		if ts, err := time.Parse(time.RFC3339, raw); err == nil {
			p.RegisteredAt = ts
		}
	}
	return p
}

func stringField(doc map[string]any, key string) string {
	if v, ok := doc[key].(string); ok {
		return v
	}
	return ""
}

// FullName joins the name fields for display.
func (p *Profile) FullName() string {
	if p.FirstName == "" {
		return p.LastName
	}
	if p.LastName == "" {
		return p.FirstName
	}
	return fmt.Sprintf("%s %s", p.FirstName, p.LastName)
}
