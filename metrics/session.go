package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Login results, one per error kind of the session controller.
const (
	ResultSuccess          = "success"
	ResultAuthentication   = "authentication_failed"
	ResultProfileFetch     = "profile_fetch_failed"
	ResultTransientFailure = "transient_failure"
)

// Session holds the session lifecycle metrics.
type Session struct {
	logins   *prometheus.CounterVec
	resets   prometheus.Counter
	loggedIn prometheus.Gauge
}

// NewSession creates unregistered session metrics.
func NewSession() *Session {
	return &Session{
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "admin_console_logins_total",
			Help: "Total number of login attempts by result",
		}, []string{"result"}),
		resets: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "admin_console_session_resets_total",
			Help: "Total number of session resets",
		}),
		loggedIn: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "admin_console_logged_in",
			Help: "1 while the console holds an authenticated session",
		}),
	}
}

// Register registers all session metrics with the provided registry
func (s *Session) Register(registry prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{s.logins, s.resets, s.loggedIn} {
		if err := registry.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) ObserveLogin(result string) {
	s.logins.WithLabelValues(result).Inc()
}

func (s *Session) ObserveReset() {
	s.resets.Inc()
}

func (s *Session) SetLoggedIn(loggedIn bool) {
	if loggedIn {
		s.loggedIn.Set(1)
		return
	}
	s.loggedIn.Set(0)
}
