package server

import "github.com/jrsteele09/go-travel-booking/roles"

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Auth Routes - Login & Logout
	RouteLogin          = "/login"
	RouteAuthLogin      = "/auth/login"
	RouteAuthLogout     = "/auth/logout"
	RouteForgotPassword = "/auth/forgot-password"

	// Auth Routes - Registration
	RouteRegister             = "/register"
	RouteAuthRegister         = "/auth/register"
	RouteSelectProviderRole   = "/select-provider-role"
	RouteRegisterProvider     = "/register/provider"
	RouteAuthRegisterProvider = "/auth/register/provider"

	// Auth Routes - Federated (Google)
	RouteGoogleBegin    = "/auth/google"
	RouteGoogleCallback = "/auth/google/callback"

	// Dashboards
	RouteCustomerDashboard = "/customer-dashboard"
	RouteServiceDashboard  = "/service-dashboard"
	RouteAdminDashboard    = "/admin-dashboard"

	// Customer Routes
	RouteMyBookings    = "/my-bookings"
	RouteBookings      = "/bookings"
	RouteBookingCancel = "/bookings/{id}/cancel"

	// Provider Routes
	RouteListings      = "/listings"
	RouteListingDelete = "/listings/{id}/delete"
	RouteListingImage  = "/listings/{id}/image"
	RouteProfileDelete = "/profile/delete"

	// Admin Routes
	RouteAdminUserStatus = "/admin/users/{id}/status"
)

// deepLinks maps the per-service browse paths onto the customer dashboard
// panel they open.
var deepLinks = map[string]string{
	"/flights":    "flight",
	"/hotels":     "hotel",
	"/trains":     "train",
	"/buses":      "bus",
	"/packages":   "package",
	"/activities": "activity",
}

var (
	customerOnly = []roles.Bucket{roles.BucketCustomer}
	providerOnly = []roles.Bucket{roles.BucketProvider}
	adminOnly    = []roles.Bucket{roles.BucketAdmin}
)
