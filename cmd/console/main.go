package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-admin-session/credentials"
	"github.com/jrsteele09/go-admin-session/internal/config"
	"github.com/jrsteele09/go-admin-session/metrics"
	"github.com/jrsteele09/go-admin-session/navigation"
	"github.com/jrsteele09/go-admin-session/notify"
	"github.com/jrsteele09/go-admin-session/session"
	"github.com/jrsteele09/go-admin-session/tabs"
	"github.com/jrsteele09/go-admin-session/transport"
	"github.com/jrsteele09/go-admin-session/transport/httpapi"
	"github.com/jrsteele09/go-admin-session/transport/oidcapi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/rs/zerolog"
)

const usage = `usage: console [-metrics] [-quiet] <command> [flags]

commands:
  login       -u <user> [-p <password>] [-redirect]
  login-code  -phone <phone> -code <code> [-redirect]
  send-code   -phone <phone>
  whoami
  logout
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", session.UserMessage(err))
		os.Exit(1)
	}
}

func run(args []string) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	global := flag.NewFlagSet("console", flag.ContinueOnError)
	global.Usage = func() { fmt.Fprint(global.Output(), usage) }
	dumpMetrics := global.Bool("metrics", false, "print session metrics on exit")
	quiet := global.Bool("quiet", false, "do not print the banner")
	if err := global.Parse(args); err != nil {
		return err
	}
	if global.NArg() == 0 {
		global.Usage()
		return errors.New("no command given")
	}

	c := config.New()
	logger := newLogger(c)
	if !*quiet {
		displayAppname(c.GetAppName())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := credentials.Open(c)
	if err != nil {
		return fmt.Errorf("credentials.Open: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error().Err(err).Msg("closing credential store")
		}
	}()

	backend, err := newTransport(ctx, c, store, logger)
	if err != nil {
		return err
	}

	openTabs := tabs.NewStore(store)
	if err := openTabs.Restore(ctx); err != nil {
		logger.Warn().Err(err).Msg("discarding cached tabs")
	}

	registry := prometheus.NewRegistry()
	sessionMetrics := metrics.NewSession()
	if err := sessionMetrics.Register(registry); err != nil {
		return fmt.Errorf("registering metrics: %w", err)
	}
	if *dumpMetrics {
		defer writeMetrics(os.Stderr, registry, logger)
	}

	controller, err := session.New(ctx, session.Deps{
		Transport: backend,
		Store:     store,
		Navigator: navigation.NewRouter(c, "", navigation.WithLogger(logger)),
		Tabs:      openTabs,
		Routes:    c,
	},
		session.WithLogger(logger.With().Str("component", "session").Logger()),
		session.WithNotifier(notify.NewLogNotifier(logger)),
		session.WithMetrics(sessionMetrics),
	)
	if err != nil {
		return err
	}
	if err := controller.InitUserInfo(ctx); err != nil {
		logger.Warn().Err(err).Msg("restoring session")
	}

	cmd := &commands{
		controller: controller,
		transport:  backend,
		in:         os.Stdin,
		out:        os.Stdout,
	}
	return cmd.dispatch(ctx, global.Arg(0), global.Args()[1:])
}

func newLogger(c config.EnvConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(c.GetLogLevel())
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Str("env", c.GetEnv()).
		Logger()
}

func newTransport(ctx context.Context, c config.Config, store credentials.Store, logger zerolog.Logger) (transport.Transport, error) {
	tokens := credentials.NewTokenSource(store)

	switch c.GetTransport() {
	case config.TransportHTTP:
		return httpapi.New(c, tokens, httpapi.WithLogger(logger)), nil
	case config.TransportOIDC:
		client, err := oidcapi.New(ctx, c, tokens, oidcapi.WithLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("oidcapi.New: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown transport %q", c.GetTransport())
	}
}

func writeMetrics(w io.Writer, registry prometheus.Gatherer, logger zerolog.Logger) {
	families, err := registry.Gather()
	if err != nil {
		logger.Error().Err(err).Msg("gathering metrics")
		return
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			logger.Error().Err(err).Msg("writing metrics")
			return
		}
	}
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
