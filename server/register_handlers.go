package server

import (
	"net/http"
	"strconv"

	"github.com/jrsteele09/go-travel-booking/auth"
	"github.com/jrsteele09/go-travel-booking/roles"
	"github.com/rs/zerolog/log"
)

// RegisterPageData contains data for rendering the registration forms.
type RegisterPageData struct {
	Error        string
	FieldErrors  auth.FieldErrors
	Form         map[string]string
	ProviderType roles.ProviderType
}

// RegisterPageHandler displays the customer registration page (GET /register)
func (s *Server) RegisterPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.renderTemplate(w, "register.html", RegisterPageData{
			Error: r.URL.Query().Get("error"),
			Form:  map[string]string{},
		})
	}
}

// RegisterSubmissionHandler processes the customer registration form. On
// success the user is sent to the login page to sign in with the new account.
func (s *Server) RegisterSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		in := auth.RegisterInput{
			FirstName:       r.FormValue("firstName"),
			LastName:        r.FormValue("lastName"),
			Email:           r.FormValue("email"),
			Mobile:          r.FormValue("mobile"),
			Password:        r.FormValue("password"),
			ConfirmPassword: r.FormValue("confirmPassword"),
		}

		if _, err := s.auth.RegisterCustomer(r.Context(), in); err != nil {
			s.renderRegisterError(w, "register.html", err, registerFormValues(r), "")
			return
		}
		redirectSuccess(w, r, RouteLogin+"?success=Registration+successful.+Please+sign+in.")
	}
}

// SelectProviderRolePageHandler is step one of the provider flow: pick which
// kind of service the provider offers (GET /select-provider-role).
func (s *Server) SelectProviderRolePageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.renderTemplate(w, "select_provider_role.html", nil)
	}
}

// ProviderRegisterPageHandler is step two: the registration form with the
// type-specific fields for the chosen provider type (GET /register/provider?type=).
func (s *Server) ProviderRegisterPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		providerType := roles.ProviderType(r.URL.Query().Get("type"))
		if _, ok := roles.ForProviderType(providerType); !ok {
			redirectSuccess(w, r, RouteSelectProviderRole)
			return
		}
		s.renderTemplate(w, "register_provider.html", RegisterPageData{
			Error:        r.URL.Query().Get("error"),
			Form:         map[string]string{},
			ProviderType: providerType,
		})
	}
}

// ProviderRegisterSubmissionHandler processes the provider registration form.
func (s *Server) ProviderRegisterSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		fleetSize, _ := strconv.Atoi(r.FormValue("vehicleFleetSize"))
		in := auth.ProviderRegisterInput{
			RegisterInput: auth.RegisterInput{
				FirstName:       r.FormValue("firstName"),
				LastName:        r.FormValue("lastName"),
				Email:           r.FormValue("email"),
				Mobile:          r.FormValue("mobile"),
				Password:        r.FormValue("password"),
				ConfirmPassword: r.FormValue("confirmPassword"),
			},
			ProviderType:        roles.ProviderType(r.FormValue("providerType")),
			CompanyName:         r.FormValue("companyName"),
			LicenseNumber:       r.FormValue("licenseNumber"),
			HotelRegistrationID: r.FormValue("hotelRegistrationId"),
			VehicleFleetSize:    fleetSize,
		}

		if _, err := s.auth.RegisterProvider(r.Context(), in); err != nil {
			s.renderRegisterError(w, "register_provider.html", err, registerFormValues(r), in.ProviderType)
			return
		}
		redirectSuccess(w, r, RouteLogin+"?success=Registration+successful.+Please+sign+in.")
	}
}

// renderRegisterError re-renders a registration form with field errors and
// the submitted values preserved. Passwords are never echoed back.
func (s *Server) renderRegisterError(w http.ResponseWriter, template string, err error, form map[string]string, providerType roles.ProviderType) {
	data := RegisterPageData{
		Form:         form,
		ProviderType: providerType,
	}
	if fe, ok := err.(auth.FieldErrors); ok {
		data.FieldErrors = fe
	} else {
		log.Err(err).Msg("registration failed")
		data.Error = auth.Message(err)
	}
	s.renderTemplate(w, template, data)
}

func registerFormValues(r *http.Request) map[string]string {
	form := map[string]string{}
	for _, field := range []string{
		"firstName", "lastName", "email", "mobile",
		"companyName", "licenseNumber", "hotelRegistrationId", "vehicleFleetSize",
	} {
		form[field] = r.FormValue(field)
	}
	return form
}
