package profiles

import (
	"context"

	"github.com/jrsteele09/go-travel-booking/platform"
	"github.com/jrsteele09/go-travel-booking/roles"
	"github.com/pkg/errors"
)

// Resolver maps a user id to its stored role.
type Resolver struct {
	repo *Repo
}

func NewResolver(repo *Repo) *Resolver {
	return &Resolver{repo: repo}
}

// Resolve returns the role stored on the profile document. A missing document
// is not an error: the default role is customer. Transport and permission
// failures propagate; the caller must treat those as "role unknown" rather
// than guessing.
func (r *Resolver) Resolve(ctx context.Context, uid string) (roles.RoleTag, error) {
	profile, err := r.repo.Get(ctx, uid)
	if errors.Is(err, platform.ErrMissing) {
		return roles.RoleCustomer, nil
	}
	if err != nil {
		return "", errors.Wrap(err, "[Resolver.Resolve] repo.Get")
	}
	if profile.Role == "" {
		return roles.RoleCustomer, nil
	}
	return profile.Role, nil
}
