package roles

// RoleTag classifies a user's permitted dashboard area.
// The set is closed: anything else read from a profile document is treated as
// unknown and routed to the landing page.
type RoleTag string

const (
	RoleCustomer RoleTag = "customer"

	// Provider roles. RoleServiceProvider is the coarse bucket used by
	// routes that don't care which service category a provider registered
	// for; the sub-variants record the category chosen at registration.
	RoleServiceProvider   RoleTag = "service_provider"
	RoleGuideProvider     RoleTag = "guide_provider"
	RoleHotelProvider     RoleTag = "hotel_provider"
	RoleTransportProvider RoleTag = "transport_provider"

	RoleAdmin RoleTag = "admin"
)

// Bucket is the coarse routing bucket a RoleTag collapses into.
type Bucket string

const (
	BucketCustomer Bucket = "customer"
	BucketProvider Bucket = "provider"
	BucketAdmin    Bucket = "admin"
	BucketUnknown  Bucket = "unknown"
)

// Coarsen collapses a RoleTag into its routing bucket. Route definitions list
// buckets, so the four provider variants never need enumerating at call sites.
func Coarsen(role RoleTag) Bucket {
	switch role {
	case RoleCustomer:
		return BucketCustomer
	case RoleServiceProvider, RoleGuideProvider, RoleHotelProvider, RoleTransportProvider:
		return BucketProvider
	case RoleAdmin:
		return BucketAdmin
	}
	return BucketUnknown
}

// Valid reports whether the tag is a member of the closed set.
func Valid(role RoleTag) bool {
	return Coarsen(role) != BucketUnknown
}

// DefaultDashboard returns the landing route for a role after login, and the
// redirect target when a role is denied a route it requested.
func DefaultDashboard(role RoleTag) string {
	switch Coarsen(role) {
	case BucketCustomer:
		return "/customer-dashboard"
	case BucketProvider:
		return "/service-dashboard"
	case BucketAdmin:
		return "/admin-dashboard"
	}
	return "/"
}

// ProviderType is the service category chosen during provider registration.
type ProviderType string

const (
	ProviderTypeGuide     ProviderType = "guide"
	ProviderTypeHotel     ProviderType = "hotel"
	ProviderTypeTransport ProviderType = "transport"
)

// ForProviderType maps a registration category to its RoleTag sub-variant.
func ForProviderType(pt ProviderType) (RoleTag, bool) {
	switch pt {
	case ProviderTypeGuide:
		return RoleGuideProvider, true
	case ProviderTypeHotel:
		return RoleHotelProvider, true
	case ProviderTypeTransport:
		return RoleTransportProvider, true
	}
	return "", false
}
