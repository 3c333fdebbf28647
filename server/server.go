package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-travel-booking/auth"
	"github.com/jrsteele09/go-travel-booking/booking"
	"github.com/jrsteele09/go-travel-booking/internal/config"
	"github.com/jrsteele09/go-travel-booking/platform"
	"github.com/jrsteele09/go-travel-booking/platform/googleauth"
	"github.com/jrsteele09/go-travel-booking/profiles"
	"github.com/jrsteele09/go-travel-booking/session"
	"github.com/rs/zerolog/log"
)

type Server struct {
	env    string // Environment (e.g., "development", "production")
	mux    *http.ServeMux
	routes []string
	config config.Config

	platform  platform.Client
	profiles  *profiles.Repo
	auth      *auth.Service
	booking   *booking.Service
	sessions  *session.Store
	watcher   *session.Watcher
	scheduler func(func())     // overrides the watcher's resolve scheduling
	google    *googleauth.Flow // nil when Google sign-in is not configured
}

// Option modifies a Server instance.
type Option func(*Server)

// WithSessionScheduler overrides how role resolution is scheduled after a
// session event (primarily for testing).
func WithSessionScheduler(schedule func(func())) Option {
	return func(s *Server) {
		s.scheduler = schedule
	}
}

func New(cfg config.Config, client platform.Client, options ...Option) (*Server, error) {
	profileRepo := profiles.NewRepo(client.Documents)

	authService, err := auth.NewService(client.Auth, profileRepo)
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create auth service: %w", err)
	}

	bookingService, err := booking.NewService(client.Documents, client.Files)
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create booking service: %w", err)
	}

	s := &Server{
		mux:      http.NewServeMux(),
		config:   cfg,
		platform: client,
		profiles: profileRepo,
		auth:     authService,
		booking:  bookingService,
		sessions: session.NewStore(),
	}
	s.env = cfg.GetEnv()
	for _, opt := range options {
		opt(s)
	}

	// The watcher is the session store's single writer; it lives for the
	// whole server lifetime and is stopped in Close.
	var watcherOpts []session.WatcherOption
	if s.scheduler != nil {
		watcherOpts = append(watcherOpts, session.WithScheduler(s.scheduler))
	}
	s.watcher = session.NewWatcher(s.sessions, profiles.NewResolver(profileRepo), watcherOpts...)
	s.watcher.Start(context.Background(), client.Auth)

	if cfg.GetGoogleClientID() != "" {
		flow, err := googleauth.New(context.Background(), googleauth.Config{
			ClientID:     cfg.GetGoogleClientID(),
			ClientSecret: cfg.GetGoogleClientSecret(),
			RedirectURL:  cfg.GetBaseURL() + RouteGoogleCallback,
			Issuer:       cfg.GetGoogleIssuer(),
		})
		if err != nil {
			return nil, fmt.Errorf("[Server New] failed to configure Google sign-in: %w", err)
		}
		s.google = flow
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

// Close unsubscribes the session watcher.
func (s *Server) Close() {
	s.watcher.Stop()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)
		if len(parts) > 1 {
			log.Info().Str("method", parts[0]).Str("path", parts[1]).Msg("route")
		} else {
			log.Info().Str("path", parts[0]).Msg("route")
		}
	}
}
