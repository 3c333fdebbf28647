// Package googleauth runs the Google OIDC authorization-code flow that feeds
// the federated sign-in path. It only proves the external identity; binding
// it to a session and profile is the auth service's job.
package googleauth

import (
	"context"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/jrsteele09/go-travel-booking/platform"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

// Config identifies this application to the identity provider.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Issuer       string // defaults to Google's issuer
}

// Flow is a ready-to-use OIDC code flow.
type Flow struct {
	oauthConfig *oauth2.Config
	verifier    *oidc.IDTokenVerifier
}

func New(ctx context.Context, cfg Config) (*Flow, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, errors.New("[googleauth.New] client id and secret are required")
	}
	issuer := cfg.Issuer
	if issuer == "" {
		issuer = "https://accounts.google.com"
	}

	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, errors.Wrap(err, "[googleauth.New] oidc.NewProvider")
	}

	return &Flow{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     provider.Endpoint(),
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
		verifier: provider.Verifier(&oidc.Config{ClientID: cfg.ClientID}),
	}, nil
}

// AuthURL returns the provider URL to send the user to. state is echoed back
// on the callback for CSRF validation.
func (f *Flow) AuthURL(state string) string {
	return f.oauthConfig.AuthCodeURL(state)
}

// Complete exchanges the callback code and verifies the ID token, returning
// the externally-proven identity.
func (f *Flow) Complete(ctx context.Context, code string) (platform.Principal, error) {
	token, err := f.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return platform.Principal{}, errors.Wrap(err, "[Flow.Complete] code exchange")
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return platform.Principal{}, errors.New("[Flow.Complete] no id_token in token response")
	}

	idToken, err := f.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return platform.Principal{}, errors.Wrap(err, "[Flow.Complete] id token verify")
	}

	var claims struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return platform.Principal{}, errors.Wrap(err, "[Flow.Complete] claims decode")
	}
	if claims.Email == "" {
		return platform.Principal{}, errors.New("[Flow.Complete] id token carries no email")
	}

	return platform.Principal{Email: claims.Email, DisplayName: claims.Name}, nil
}
