package auth

import (
	"context"
	"strings"
	"time"

	"github.com/jrsteele09/go-travel-booking/platform"
	"github.com/jrsteele09/go-travel-booking/profiles"
	"github.com/jrsteele09/go-travel-booking/roles"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// Service runs the login and registration flows against the auth platform and
// the profile store. Submissions are coalesced per form key, so a double
// submit issues a single platform call.
type Service struct {
	auth     platform.Auth
	profiles *profiles.Repo
	submits  singleflight.Group
	nowTime  func() time.Time // injectable for testing
}

// ServiceOption modifies a Service instance.
type ServiceOption func(*Service)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

func NewService(authPlatform platform.Auth, profileRepo *profiles.Repo, options ...ServiceOption) (*Service, error) {
	if authPlatform == nil {
		return nil, errors.New("[NewService] auth platform is required")
	}
	if profileRepo == nil {
		return nil, errors.New("[NewService] profile repo is required")
	}

	s := &Service{
		auth:     authPlatform,
		profiles: profileRepo,
		nowTime:  time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// RegisterInput is the customer registration form.
type RegisterInput struct {
	FirstName       string
	LastName        string
	Email           string
	Mobile          string
	Password        string
	ConfirmPassword string
}

// ProviderRegisterInput is the multi-step provider registration form: the
// base fields plus the chosen service category and its type-specific fields.
type ProviderRegisterInput struct {
	RegisterInput
	ProviderType        roles.ProviderType
	CompanyName         string
	LicenseNumber       string
	HotelRegistrationID string
	VehicleFleetSize    int
}

func (in RegisterInput) validate() FieldErrors {
	fe := FieldErrors{}
	if msg := ValidateName(in.FirstName); msg != "" {
		fe["firstName"] = msg
	}
	if msg := ValidateName(in.LastName); msg != "" {
		fe["lastName"] = msg
	}
	if msg := ValidateEmail(in.Email); msg != "" {
		fe["email"] = msg
	}
	if msg := ValidatePhone(in.Mobile, false); msg != "" {
		fe["mobile"] = msg
	}
	if msg := ValidatePasswords(in.Password, in.ConfirmPassword); msg != "" {
		fe["password"] = msg
	}
	return fe
}

func (in ProviderRegisterInput) validate() FieldErrors {
	fe := in.RegisterInput.validate()
	// Provider contact numbers use the stricter mobile-prefix rule.
	if msg := ValidatePhone(in.Mobile, true); msg != "" {
		fe["mobile"] = msg
	}
	if in.CompanyName == "" {
		fe["companyName"] = "Company name is required."
	}

	switch in.ProviderType {
	case roles.ProviderTypeGuide:
		if in.LicenseNumber == "" {
			fe["licenseNumber"] = "License number is required."
		}
	case roles.ProviderTypeHotel:
		if in.HotelRegistrationID == "" {
			fe["hotelRegistrationId"] = "Hotel registration ID is required."
		}
	case roles.ProviderTypeTransport:
		if in.LicenseNumber == "" {
			fe["licenseNumber"] = "License number is required."
		}
		if in.VehicleFleetSize < 1 {
			fe["vehicleFleetSize"] = "Fleet size must be at least 1."
		}
	default:
		fe["providerType"] = "Please select a service type."
	}
	return fe
}

// RegisterCustomer validates the form, creates the credential, and writes the
// role-tagged profile document. No platform call is made if validation fails.
func (s *Service) RegisterCustomer(ctx context.Context, in RegisterInput) (string, error) {
	if fe := in.validate(); len(fe) > 0 {
		return "", fe
	}
	return s.register(ctx, in.Email, in.Password, func(uid string) *profiles.Profile {
		return &profiles.Profile{
			UID:          uid,
			Email:        in.Email,
			Role:         roles.RoleCustomer,
			FirstName:    in.FirstName,
			LastName:     in.LastName,
			Mobile:       in.Mobile,
			Status:       profiles.StatusPending,
			RegisteredAt: s.nowTime(),
		}
	})
}

// RegisterProvider is the submit step of the multi-step provider flow.
func (s *Service) RegisterProvider(ctx context.Context, in ProviderRegisterInput) (string, error) {
	if fe := in.validate(); len(fe) > 0 {
		return "", fe
	}
	role, _ := roles.ForProviderType(in.ProviderType)
	return s.register(ctx, in.Email, in.Password, func(uid string) *profiles.Profile {
		return &profiles.Profile{
			UID:                 uid,
			Email:               in.Email,
			Role:                role,
			FirstName:           in.FirstName,
			LastName:            in.LastName,
			Mobile:              in.Mobile,
			CompanyName:         in.CompanyName,
			LicenseNumber:       in.LicenseNumber,
			HotelRegistrationID: in.HotelRegistrationID,
			VehicleFleetSize:    in.VehicleFleetSize,
			ProviderType:        in.ProviderType,
			Status:              profiles.StatusPending,
			RegisteredAt:        s.nowTime(),
		}
	})
}

// register creates the credential then the profile. If the profile write
// fails the just-created credential is deleted so no login exists without a
// profile. The delete is best effort, not transactional: if it also fails the
// orphan is logged and the original error still surfaces.
func (s *Service) register(ctx context.Context, email, password string, build func(uid string) *profiles.Profile) (string, error) {
	uid, err, _ := s.submits.Do("register:"+email, func() (interface{}, error) {
		uid, err := s.auth.CreateAccount(ctx, email, password)
		if err != nil {
			return "", errors.Wrap(err, "[Service.register] CreateAccount")
		}

		if err := s.profiles.Put(ctx, build(uid)); err != nil {
			if delErr := s.auth.DeleteAccount(ctx, uid); delErr != nil {
				log.Err(delErr).Str("uid", uid).Msg("compensating credential delete failed, orphan may persist")
			}
			return "", errors.Wrap(err, "[Service.register] profile write")
		}
		return uid, nil
	})
	if err != nil {
		return "", err
	}
	return uid.(string), nil
}

// Login authenticates the credential against the platform, binds it to the
// session, and reads the profile so the caller can navigate by role. A
// principal without a profile document gets the default customer role.
func (s *Service) Login(ctx context.Context, sessionID, email, password string) (*profiles.Profile, error) {
	fe := FieldErrors{}
	if msg := ValidateEmail(email); msg != "" {
		fe["email"] = msg
	}
	if password == "" {
		fe["password"] = "Password is required."
	}
	if len(fe) > 0 {
		return nil, fe
	}

	result, err, _ := s.submits.Do("login:"+sessionID, func() (interface{}, error) {
		principal, err := s.auth.Authenticate(ctx, sessionID, email, password)
		if err != nil {
			return nil, errors.Wrap(err, "[Service.Login] Authenticate")
		}

		profile, err := s.profiles.Get(ctx, principal.UID)
		if errors.Is(err, platform.ErrMissing) {
			return &profiles.Profile{UID: principal.UID, Email: principal.Email, Role: roles.RoleCustomer}, nil
		}
		if err != nil {
			return nil, errors.Wrap(err, "[Service.Login] profile read")
		}
		return profile, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*profiles.Profile), nil
}

// FederatedLogin completes a federated (Google) sign-in. A first-time
// identity gets a profile built from its display name and the role selected
// before the flow was invoked; an existing profile wins over the current UI
// selection.
func (s *Service) FederatedLogin(ctx context.Context, sessionID string, external platform.Principal, selectedRole roles.RoleTag) (*profiles.Profile, error) {
	principal, err := s.auth.FederatedSignIn(ctx, sessionID, external)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.FederatedLogin] FederatedSignIn")
	}

	profile, err := s.profiles.Get(ctx, principal.UID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, platform.ErrMissing) {
		return nil, errors.Wrap(err, "[Service.FederatedLogin] profile read")
	}

	if !roles.Valid(selectedRole) {
		selectedRole = roles.RoleCustomer
	}
	first, last := splitDisplayName(principal.DisplayName)
	profile = &profiles.Profile{
		UID:          principal.UID,
		Email:        principal.Email,
		Role:         selectedRole,
		FirstName:    first,
		LastName:     last,
		Status:       profiles.StatusPending,
		RegisteredAt: s.nowTime(),
	}
	if err := s.profiles.Put(ctx, profile); err != nil {
		return nil, errors.Wrap(err, "[Service.FederatedLogin] profile write")
	}
	return profile, nil
}

// ForgotPassword sends a reset email for whatever address was typed. An empty
// field is a local error and never reaches the platform.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	if email == "" {
		return FieldErrors{"email": "Enter your email address to reset your password."}
	}
	if err := s.auth.SendPasswordReset(ctx, email); err != nil {
		return errors.Wrap(err, "[Service.ForgotPassword] SendPasswordReset")
	}
	return nil
}

// Logout ends the platform session.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if err := s.auth.EndSession(ctx, sessionID); err != nil {
		return errors.Wrap(err, "[Service.Logout] EndSession")
	}
	return nil
}

// DeleteProfile removes the profile document and then the credential. This is
// the explicit provider "delete profile" action, the only profile delete in
// the application.
func (s *Service) DeleteProfile(ctx context.Context, uid string) error {
	if err := s.profiles.Delete(ctx, uid); err != nil {
		return errors.Wrap(err, "[Service.DeleteProfile] profile delete")
	}
	if err := s.auth.DeleteAccount(ctx, uid); err != nil {
		log.Err(err).Str("uid", uid).Msg("credential delete after profile delete failed")
	}
	return nil
}

// splitDisplayName parses a federated display name: first whitespace-delimited
// token is the first name, the remainder is the last name.
func splitDisplayName(displayName string) (first, last string) {
	fields := strings.Fields(displayName)
	if len(fields) == 0 {
		return "", ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}
