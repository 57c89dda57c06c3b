package navigation

import (
	"context"
	"sync"

	"github.com/jrsteele09/go-admin-session/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Route is the page the console is showing.
type Route struct {
	Path     string
	Constant bool // Reachable without a session
}

// Navigator moves the console between the login page and the rest of the app.
type Navigator interface {
	RedirectToLogin(ctx context.Context) error
	RedirectFromLogin(ctx context.Context, redirect bool) error
	CurrentRoute() Route
}

var _ Navigator = (*Router)(nil)

// Router is an in-memory Navigator. Leaving a page for the login page
// remembers it so a later RedirectFromLogin(true) can return there.
type Router struct {
	mu       sync.RWMutex
	current  string
	pending  string
	constant config.ConstantRoutes
	login    string
	home     string
	logger   zerolog.Logger
}

// RouterOption defines a function type to modify the Router instance.
type RouterOption func(*Router)

func WithLogger(logger zerolog.Logger) RouterOption {
	return func(r *Router) {
		r.logger = logger
	}
}

// NewRouter starts at start, or at the home route when start is empty.
func NewRouter(cfg config.RouteConfig, start string, options ...RouterOption) *Router {
	r := &Router{
		constant: cfg.GetConstantRoutes(),
		login:    cfg.GetLoginRoute(),
		home:     cfg.GetHomeRoute(),
		logger:   log.Logger,
	}
	if start == "" {
		start = r.home
	}
	r.current = start

	for _, opt := range options {
		opt(r)
	}
	return r
}

// Navigate moves to path.
func (r *Router) Navigate(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.current = path
}

func (r *Router) CurrentRoute() Route {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return Route{Path: r.current, Constant: r.constant.IsConstant(r.current)}
}

// PendingRedirect returns the page RedirectFromLogin(true) would go back to.
func (r *Router) PendingRedirect() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.pending
}

func (r *Router) RedirectToLogin(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current == r.login {
		return nil
	}
	if !r.constant.IsConstant(r.current) {
		r.pending = r.current
	}
	r.logger.Debug().Str("from", r.current).Str("to", r.login).Msg("redirect to login")
	r.current = r.login
	return nil
}

func (r *Router) RedirectFromLogin(ctx context.Context, redirect bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	target := r.home
	if redirect && r.pending != "" {
		target = r.pending
	}
	r.pending = ""
	r.logger.Debug().Str("from", r.current).Str("to", target).Bool("redirect", redirect).Msg("redirect from login")
	r.current = target
	return nil
}
