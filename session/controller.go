package session

import (
	"context"
	"sync"

	"github.com/jrsteele09/go-admin-session/credentials"
	"github.com/jrsteele09/go-admin-session/internal/config"
	"github.com/jrsteele09/go-admin-session/navigation"
	"github.com/jrsteele09/go-admin-session/notify"
	"github.com/jrsteele09/go-admin-session/tabs"
	"github.com/jrsteele09/go-admin-session/transport"
	"github.com/jrsteele09/go-admin-session/users"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Metrics receives session lifecycle events. *metrics.Session implements it.
type Metrics interface {
	ObserveLogin(result string)
	ObserveReset()
	SetLoggedIn(loggedIn bool)
}

type nopMetrics struct{}

func (nopMetrics) ObserveLogin(string) {}
func (nopMetrics) ObserveReset()       {}
func (nopMetrics) SetLoggedIn(bool)    {}

// Deps holds the collaborators a Controller drives.
type Deps struct {
	Transport transport.Transport // Backend login and profile calls
	Store     credentials.Store   // Persisted token pair and identity marker
	Navigator navigation.Navigator
	Tabs      tabs.Collaborator
	Routes    config.RouteConfig // Auth route mode and static super role
}

// Controller holds the session of the signed in user. It is safe for
// concurrent use; logins themselves are not serialised.
type Controller struct {
	deps     Deps
	logger   zerolog.Logger
	notifier notify.Notifier
	metrics  Metrics

	mu       sync.RWMutex
	token    string
	userInfo users.UserInfo
	loading  bool
}

// Option defines a function type to modify the Controller instance.
type Option func(*Controller)

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

func WithNotifier(notifier notify.Notifier) Option {
	return func(c *Controller) {
		c.notifier = notifier
	}
}

func WithMetrics(m Metrics) Option {
	return func(c *Controller) {
		c.metrics = m
	}
}

// New returns a Controller seeded with the token found in the store, if any.
// The token is not trusted until InitUserInfo has loaded a profile with it.
func New(ctx context.Context, deps Deps, options ...Option) (*Controller, error) {
	if deps.Transport == nil {
		return nil, errors.New("[session.New] Transport is required")
	}
	if deps.Store == nil {
		return nil, errors.New("[session.New] Store is required")
	}
	if deps.Navigator == nil {
		return nil, errors.New("[session.New] Navigator is required")
	}
	if deps.Tabs == nil {
		return nil, errors.New("[session.New] Tabs is required")
	}
	if deps.Routes == nil {
		return nil, errors.New("[session.New] Routes is required")
	}

	c := &Controller{
		deps:     deps,
		logger:   log.Logger.With().Str("component", "session").Logger(),
		notifier: notify.Nop{},
		metrics:  nopMetrics{},
	}
	for _, opt := range options {
		opt(c)
	}

	tok, _, err := deps.Store.Get(ctx, credentials.KeyToken)
	if err != nil {
		return nil, errors.Wrap(err, "[session.New] reading persisted token")
	}
	c.token = tok
	c.metrics.SetLoggedIn(tok != "")

	return c, nil
}

// Token returns the bearer token, empty when signed out.
func (c *Controller) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.token
}

// UserInfo returns a copy of the current profile.
func (c *Controller) UserInfo() users.UserInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.userInfo.Clone()
}

func (c *Controller) IsLogin() bool {
	return c.Token() != ""
}

// IsStaticSuper reports whether routes are static and the user holds the
// configured super role.
func (c *Controller) IsStaticSuper() bool {
	if c.deps.Routes.GetAuthRouteMode() != config.AuthRouteModeStatic {
		return false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.userInfo.HasRole(c.deps.Routes.GetStaticSuperRole())
}

// LoginLoading reports whether a login is in flight.
func (c *Controller) LoginLoading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.loading
}

func (c *Controller) setLoading(loading bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.loading = loading
}

// mergeProfile folds a fetched profile into the current one. A profile for a
// different user replaces the old one outright. Callers hold c.mu.
func (c *Controller) mergeProfile(fetched users.UserInfo) users.UserInfo {
	if c.userInfo.UserID != "" && fetched.UserID != "" && c.userInfo.UserID != fetched.UserID {
		return fetched.Clone()
	}
	return c.userInfo.Merge(fetched)
}
