package session_test

import (
	"context"
	"sync"
	"testing"

	"github.com/jrsteele09/go-admin-session/credentials"
	"github.com/jrsteele09/go-admin-session/credentials/repofake"
	"github.com/jrsteele09/go-admin-session/internal/config"
	"github.com/jrsteele09/go-admin-session/metrics"
	"github.com/jrsteele09/go-admin-session/navigation"
	"github.com/jrsteele09/go-admin-session/session"
	"github.com/jrsteele09/go-admin-session/transport/transportfake"
	"github.com/jrsteele09/go-admin-session/users"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

var _ session.Metrics = (*metrics.Session)(nil)

var alice = users.UserInfo{
	UserID:   "U1",
	UserName: "alice",
	Roles:    []string{"R_ADMIN"},
	Buttons:  []string{"B_CODE1"},
}

type testRoutes struct {
	mode string
}

func (r testRoutes) GetAuthRouteMode() string { return r.mode }
func (testRoutes) GetStaticSuperRole() string { return "R_SUPER" }
func (testRoutes) GetConstantRoutes() config.ConstantRoutes {
	return config.NewConstantRoutes("/login", "/404")
}
func (testRoutes) GetLoginRoute() string { return "/login" }
func (testRoutes) GetHomeRoute() string  { return "/home" }

type fakeTabs struct {
	mu      sync.Mutex
	cached  int
	cleared int
}

func (f *fakeTabs) CacheTabs(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.cached++
	return nil
}

func (f *fakeTabs) ClearTabs(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.cleared++
	return nil
}

func (f *fakeTabs) clearCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.cleared
}

type notification struct {
	title, content string
}

type fakeNotifier struct {
	mu        sync.Mutex
	errors    []string
	successes []notification
}

func (n *fakeNotifier) Error(_ context.Context, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.errors = append(n.errors, message)
}

func (n *fakeNotifier) Success(_ context.Context, title, content string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.successes = append(n.successes, notification{title: title, content: content})
}

type fakeMetrics struct {
	mu       sync.Mutex
	results  []string
	resets   int
	loggedIn bool
}

func (m *fakeMetrics) ObserveLogin(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.results = append(m.results, result)
}

func (m *fakeMetrics) ObserveReset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.resets++
}

func (m *fakeMetrics) SetLoggedIn(loggedIn bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.loggedIn = loggedIn
}

type testFixture struct {
	store     *repofake.FakeCredentialRepo
	transport *transportfake.FakeTransport
	router    *navigation.Router
	tabs      *fakeTabs
	notifier  *fakeNotifier
	metrics   *fakeMetrics
	routes    testRoutes
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	routes := testRoutes{mode: config.AuthRouteModeStatic}
	return &testFixture{
		store:     repofake.NewFakeCredentialRepo(),
		transport: transportfake.NewFakeTransport(),
		router:    navigation.NewRouter(routes, "/orders", navigation.WithLogger(zerolog.Nop())),
		tabs:      &fakeTabs{},
		notifier:  &fakeNotifier{},
		metrics:   &fakeMetrics{},
		routes:    routes,
	}
}

// controller builds the Controller from the fixture's current state, so
// anything seeded in the store beforehand is seen by New.
func (f *testFixture) controller(t *testing.T, options ...session.Option) *session.Controller {
	t.Helper()

	c, err := session.New(context.Background(), session.Deps{
		Transport: f.transport,
		Store:     f.store,
		Navigator: f.router,
		Tabs:      f.tabs,
		Routes:    f.routes,
	}, append([]session.Option{
		session.WithLogger(zerolog.Nop()),
		session.WithNotifier(f.notifier),
		session.WithMetrics(f.metrics),
	}, options...)...)
	require.NoError(t, err)
	return c
}

func (f *testFixture) stored(t *testing.T, key credentials.Key) (string, bool) {
	t.Helper()

	v, ok, err := f.store.Get(context.Background(), key)
	require.NoError(t, err)
	return v, ok
}
