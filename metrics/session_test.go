package metrics_test

import (
	"strings"
	"testing"

	"github.com/jrsteele09/go-admin-session/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestSessionMetrics(t *testing.T) {
	m := metrics.NewSession()
	registry := prometheus.NewRegistry()
	require.NoError(t, m.Register(registry))

	m.ObserveLogin(metrics.ResultSuccess)
	m.ObserveLogin(metrics.ResultAuthentication)
	m.ObserveLogin(metrics.ResultAuthentication)
	m.ObserveReset()
	m.SetLoggedIn(true)

	require.Equal(t, 2, testutil.CollectAndCount(registry, "admin_console_logins_total"))

	const want = `
# HELP admin_console_logged_in 1 while the console holds an authenticated session
# TYPE admin_console_logged_in gauge
admin_console_logged_in 1
# HELP admin_console_logins_total Total number of login attempts by result
# TYPE admin_console_logins_total counter
admin_console_logins_total{result="authentication_failed"} 2
admin_console_logins_total{result="success"} 1
# HELP admin_console_session_resets_total Total number of session resets
# TYPE admin_console_session_resets_total counter
admin_console_session_resets_total 1
`
	require.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(want)))

	m.SetLoggedIn(false)
	require.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(`
# HELP admin_console_logged_in 1 while the console holds an authenticated session
# TYPE admin_console_logged_in gauge
admin_console_logged_in 0
`), "admin_console_logged_in"))
}

func TestSessionMetrics_RegisterTwice(t *testing.T) {
	m := metrics.NewSession()
	registry := prometheus.NewRegistry()
	require.NoError(t, m.Register(registry))
	require.Error(t, m.Register(registry))
}
