package profiles_test

import (
	"context"
	"testing"
	"time"

	"github.com/jrsteele09/go-travel-booking/platform"
	"github.com/jrsteele09/go-travel-booking/platform/memplatform"
	"github.com/jrsteele09/go-travel-booking/profiles"
	"github.com/jrsteele09/go-travel-booking/roles"
	"github.com/stretchr/testify/require"
)

func TestResolver_Resolve(t *testing.T) {
	ctx := context.Background()
	docs := memplatform.NewDocuments()
	repo := profiles.NewRepo(docs)
	resolver := profiles.NewResolver(repo)

	t.Run("stored role returned verbatim", func(t *testing.T) {
		require.NoError(t, repo.Put(ctx, &profiles.Profile{
			UID:          "uid-1",
			Email:        "hotel@example.com",
			Role:         roles.RoleHotelProvider,
			Status:       profiles.StatusPending,
			RegisteredAt: time.Now(),
		}))

		role, err := resolver.Resolve(ctx, "uid-1")
		require.NoError(t, err)
		require.Equal(t, roles.RoleHotelProvider, role)
	})

	t.Run("missing document defaults to customer", func(t *testing.T) {
		role, err := resolver.Resolve(ctx, "nobody")
		require.NoError(t, err)
		require.Equal(t, roles.RoleCustomer, role)
	})

	t.Run("missing role field defaults to customer", func(t *testing.T) {
		require.NoError(t, docs.Write(ctx, profiles.PathFor("uid-2"), map[string]any{
			"email": "bare@example.com",
		}, false))

		role, err := resolver.Resolve(ctx, "uid-2")
		require.NoError(t, err)
		require.Equal(t, roles.RoleCustomer, role)
	})

	t.Run("transport failure propagates", func(t *testing.T) {
		docs.FailReads(profiles.PathFor("uid-3"), platform.ErrUnavailable)
		defer docs.FailReads(profiles.PathFor("uid-3"), nil)

		_, err := resolver.Resolve(ctx, "uid-3")
		require.Error(t, err)
		require.ErrorIs(t, err, platform.ErrUnavailable)
	})
}

func TestRepo_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := profiles.NewRepo(memplatform.NewDocuments())

	registered := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	in := &profiles.Profile{
		UID:              "uid-lot",
		Email:            "fleet@example.com",
		Role:             roles.RoleTransportProvider,
		FirstName:        "Asha",
		LastName:         "Rao",
		Mobile:           "9876543210",
		CompanyName:      "Rao Travels",
		LicenseNumber:    "TN-0042",
		VehicleFleetSize: 12,
		ProviderType:     roles.ProviderTypeTransport,
		Status:           profiles.StatusPending,
		RegisteredAt:     registered,
	}
	require.NoError(t, repo.Put(ctx, in))

	out, err := repo.Get(ctx, "uid-lot")
	require.NoError(t, err)
	require.Equal(t, in.Email, out.Email)
	require.Equal(t, in.Role, out.Role)
	require.Equal(t, in.VehicleFleetSize, out.VehicleFleetSize)
	require.Equal(t, in.ProviderType, out.ProviderType)
	require.Equal(t, registered, out.RegisteredAt)
	require.Equal(t, "Asha Rao", out.FullName())
}

func TestRepo_SetStatusMerges(t *testing.T) {
	ctx := context.Background()
	repo := profiles.NewRepo(memplatform.NewDocuments())

	require.NoError(t, repo.Put(ctx, &profiles.Profile{
		UID:          "uid-s",
		Email:        "s@example.com",
		Role:         roles.RoleCustomer,
		Status:       profiles.StatusPending,
		RegisteredAt: time.Now(),
	}))
	require.NoError(t, repo.SetStatus(ctx, "uid-s", profiles.StatusActive))

	out, err := repo.Get(ctx, "uid-s")
	require.NoError(t, err)
	require.Equal(t, profiles.StatusActive, out.Status)
	require.Equal(t, "s@example.com", out.Email)
}

func TestRepo_Delete(t *testing.T) {
	ctx := context.Background()
	repo := profiles.NewRepo(memplatform.NewDocuments())

	require.NoError(t, repo.Put(ctx, &profiles.Profile{
		UID: "uid-d", Email: "d@example.com", Role: roles.RoleGuideProvider,
		Status: profiles.StatusActive, RegisteredAt: time.Now(),
	}))
	require.NoError(t, repo.Delete(ctx, "uid-d"))

	_, err := repo.Get(ctx, "uid-d")
	require.ErrorIs(t, err, platform.ErrMissing)
}
