package server_test

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/jrsteele09/go-travel-booking/internal/config"
	"github.com/jrsteele09/go-travel-booking/platform"
	"github.com/jrsteele09/go-travel-booking/platform/memplatform"
	"github.com/jrsteele09/go-travel-booking/profiles"
	"github.com/jrsteele09/go-travel-booking/roles"
	"github.com/jrsteele09/go-travel-booking/server"
	"github.com/stretchr/testify/require"
)

// testFixture holds a running server over the in-memory platform plus an
// HTTP client with a cookie jar that does not follow redirects, so every
// navigation step can be asserted individually.
type testFixture struct {
	t        *testing.T
	ts       *httptest.Server
	client   *http.Client
	platform platform.Client
	profiles *profiles.Repo
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	client := memplatform.New()

	// Synchronous role resolution keeps navigation deterministic under test.
	srv, err := server.New(config.New(), client, server.WithSessionScheduler(func(fn func()) { fn() }))
	require.NoError(t, err)
	t.Cleanup(srv.Close)

	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &testFixture{
		t:  t,
		ts: ts,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		platform: client,
		profiles: profiles.NewRepo(client.Documents),
	}
}

func (f *testFixture) get(path string) *http.Response {
	f.t.Helper()
	resp, err := f.client.Get(f.ts.URL + path)
	require.NoError(f.t, err)
	f.t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (f *testFixture) postForm(path string, form url.Values) *http.Response {
	f.t.Helper()
	resp, err := f.client.PostForm(f.ts.URL+path, form)
	require.NoError(f.t, err)
	f.t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (f *testFixture) body(resp *http.Response) string {
	f.t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(f.t, err)
	return string(data)
}

// seedUser creates a credential and profile directly on the platform.
func (f *testFixture) seedUser(email, password string, role roles.RoleTag) string {
	f.t.Helper()
	uid, err := f.platform.Auth.CreateAccount(context.Background(), email, password)
	require.NoError(f.t, err)
	err = f.profiles.Put(context.Background(), &profiles.Profile{
		UID:    uid,
		Email:  email,
		Role:   role,
		Status: profiles.StatusActive,
	})
	require.NoError(f.t, err)
	return uid
}

// login signs the fixture's client in and asserts the landing redirect.
func (f *testFixture) login(email, password, wantLocation string) {
	f.t.Helper()
	resp := f.postForm(server.RouteAuthLogin, url.Values{
		"email":    {email},
		"password": {password},
	})
	require.Equal(f.t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(f.t, wantLocation, resp.Header.Get("Location"))
}

func TestCustomerRegistrationAndLogin(t *testing.T) {
	f := setupTestFixture(t)

	resp := f.postForm(server.RouteAuthRegister, url.Values{
		"firstName":       {"Asha"},
		"lastName":        {"Perera"},
		"email":           {"a@b.com"},
		"mobile":          {"0771234567"},
		"password":        {"secret1"},
		"confirmPassword": {"secret1"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.True(t, strings.HasPrefix(resp.Header.Get("Location"), server.RouteLogin))

	f.login("a@b.com", "secret1", server.RouteCustomerDashboard)

	dash := f.get(server.RouteCustomerDashboard)
	require.Equal(t, http.StatusOK, dash.StatusCode)
	require.Contains(t, f.body(dash), "a@b.com")
}

func TestLoginWrongPasswordStaysOnForm(t *testing.T) {
	f := setupTestFixture(t)
	f.seedUser("a@b.com", "secret1", roles.RoleCustomer)

	resp := f.postForm(server.RouteAuthLogin, url.Values{
		"email":    {"a@b.com"},
		"password": {"wrong-password"},
	})

	// A failed login re-renders the form; the browser never navigates away.
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := f.body(resp)
	require.Contains(t, body, "Invalid email or password.")
	require.Contains(t, body, `value="a@b.com"`)
}

func TestAdminRedirectedOffCustomerDashboard(t *testing.T) {
	f := setupTestFixture(t)
	f.seedUser("admin@example.com", "admin-pass", roles.RoleAdmin)
	f.login("admin@example.com", "admin-pass", server.RouteAdminDashboard)

	resp := f.get(server.RouteCustomerDashboard)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, server.RouteAdminDashboard, resp.Header.Get("Location"))
}

func TestUnauthenticatedBounceBack(t *testing.T) {
	f := setupTestFixture(t)
	f.seedUser("a@b.com", "secret1", roles.RoleCustomer)

	resp := f.get(server.RouteMyBookings)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, server.RouteLogin+"?next=%2Fmy-bookings", resp.Header.Get("Location"))

	// Signing in returns to the remembered location, not the dashboard.
	loginResp := f.postForm(server.RouteAuthLogin, url.Values{
		"email":    {"a@b.com"},
		"password": {"secret1"},
		"next":     {server.RouteMyBookings},
	})
	require.Equal(t, http.StatusSeeOther, loginResp.StatusCode)
	require.Equal(t, server.RouteMyBookings, loginResp.Header.Get("Location"))

	// The remembered location was consumed: the next login lands on the
	// role's default dashboard again.
	f.get(server.RouteAuthLogout)
	f.login("a@b.com", "secret1", server.RouteCustomerDashboard)
}

func TestAuthPagesRedirectSignedInUsers(t *testing.T) {
	f := setupTestFixture(t)
	f.seedUser("a@b.com", "secret1", roles.RoleCustomer)
	f.login("a@b.com", "secret1", server.RouteCustomerDashboard)

	for _, path := range []string{server.RouteLogin, server.RouteRegister, server.RouteSelectProviderRole} {
		resp := f.get(path)
		require.Equal(t, http.StatusSeeOther, resp.StatusCode, "path %s", path)
		require.Equal(t, server.RouteCustomerDashboard, resp.Header.Get("Location"), "path %s", path)
	}
}

func TestProviderListingAndCustomerBooking(t *testing.T) {
	f := setupTestFixture(t)
	f.seedUser("hotel@example.com", "hotel-pass", roles.RoleHotelProvider)
	f.seedUser("guest@example.com", "guest-pass", roles.RoleCustomer)

	f.login("hotel@example.com", "hotel-pass", server.RouteServiceDashboard)
	resp := f.postForm(server.RouteListings, url.Values{
		"category":    {"hotel"},
		"title":       {"Sea View Suite"},
		"location":    {"Galle"},
		"description": {"Two nights, breakfast included"},
		"price":       {"25000"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.True(t, strings.HasPrefix(resp.Header.Get("Location"), server.RouteServiceDashboard))
	f.get(server.RouteAuthLogout)

	f.login("guest@example.com", "guest-pass", server.RouteCustomerDashboard)
	dash := f.get(server.RouteCustomerDashboard + "?panel=hotel")
	body := f.body(dash)
	require.Contains(t, body, "Sea View Suite")

	listingID := extractListingID(t, body)
	bookResp := f.postForm(server.RouteBookings, url.Values{"listingId": {listingID}})
	require.Equal(t, http.StatusSeeOther, bookResp.StatusCode)
	require.True(t, strings.HasPrefix(bookResp.Header.Get("Location"), server.RouteMyBookings))

	bookings := f.get(server.RouteMyBookings)
	require.Contains(t, f.body(bookings), "Sea View Suite")
}

func TestAdminActivatesProvider(t *testing.T) {
	f := setupTestFixture(t)
	uid := f.seedUser("hotel@example.com", "hotel-pass", roles.RoleHotelProvider)
	require.NoError(t, f.profiles.SetStatus(context.Background(), uid, profiles.StatusPending))
	f.seedUser("admin@example.com", "admin-pass", roles.RoleAdmin)

	f.login("admin@example.com", "admin-pass", server.RouteAdminDashboard)
	resp := f.postForm("/admin/users/"+uid+"/status", url.Values{"status": {"active"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	profile, err := f.profiles.Get(context.Background(), uid)
	require.NoError(t, err)
	require.Equal(t, profiles.StatusActive, profile.Status)
}

func TestDeepLinksOpenDashboardPanels(t *testing.T) {
	f := setupTestFixture(t)
	f.seedUser("a@b.com", "secret1", roles.RoleCustomer)
	f.login("a@b.com", "secret1", server.RouteCustomerDashboard)

	resp := f.get("/hotels")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, f.body(resp), "hotel listings")
}

// extractListingID pulls the hidden listingId field out of the rendered
// dashboard.
func extractListingID(t *testing.T, body string) string {
	t.Helper()
	marker := `name="listingId" value="`
	i := strings.Index(body, marker)
	require.GreaterOrEqual(t, i, 0, "no booking form in page")
	rest := body[i+len(marker):]
	end := strings.IndexByte(rest, '"')
	require.Greater(t, end, 0)
	return rest[:end]
}
