package server

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log"
	"strings"

	"github.com/jrsteele09/go-travel-booking/platform"
	"github.com/jrsteele09/go-travel-booking/profiles"
	"github.com/jrsteele09/go-travel-booking/roles"
	"github.com/pkg/errors"
)

const defaultAdminUsername = "admin"

// BootstrapAdmin creates the administrator account on first start. Admin
// accounts cannot be created through registration, so a fresh deployment
// needs one seeded before anyone can approve providers. The generated
// password is printed once; it is never stored in clear anywhere.
func (s *Server) BootstrapAdmin(ctx context.Context) error {
	log.Printf("Bootstrap: checking administrator account...")

	adminEmail := generateEmailFromBaseURL(defaultAdminUsername, s.config.GetBaseURL())

	for _, profile := range s.mustListProfiles(ctx) {
		if profile.Role == roles.RoleAdmin {
			log.Printf("Bootstrap: administrator already exists")
			return nil
		}
	}

	password, err := generatePassword()
	if err != nil {
		return errors.Wrap(err, "[BootstrapAdmin] generate password")
	}

	uid, err := s.platform.Auth.CreateAccount(ctx, adminEmail, password)
	if errors.Is(err, platform.ErrEmailInUse) {
		log.Printf("Bootstrap: administrator credential already exists")
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "[BootstrapAdmin] create account")
	}

	err = s.profiles.Put(ctx, &profiles.Profile{
		UID:       uid,
		Email:     adminEmail,
		Role:      roles.RoleAdmin,
		FirstName: "System",
		LastName:  "Administrator",
		Status:    profiles.StatusActive,
	})
	if err != nil {
		return errors.Wrap(err, "[BootstrapAdmin] profile write")
	}

	log.Printf("Bootstrap complete: administrator created")
	log.Printf("   Email:    %s", adminEmail)
	log.Printf("   Password: %s", password)
	log.Printf("   SAVE THIS PASSWORD - it will not be displayed again!")
	return nil
}

func (s *Server) mustListProfiles(ctx context.Context) []*profiles.Profile {
	all, err := s.profiles.List(ctx)
	if err != nil {
		return nil
	}
	return all
}

// generateEmailFromBaseURL derives the admin address from the deployment's
// public host, e.g. admin@travel.example.com.
func generateEmailFromBaseURL(username, baseURL string) string {
	host := baseURL
	host = strings.TrimPrefix(host, "https://")
	host = strings.TrimPrefix(host, "http://")
	if i := strings.IndexAny(host, ":/"); i >= 0 {
		host = host[:i]
	}
	return fmt.Sprintf("%s@%s", username, host)
}

func generatePassword() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
