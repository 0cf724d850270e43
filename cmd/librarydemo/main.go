// Command librarydemo replays a scripted session against the library manager: books and e-books are
// added, cloned shallow and deep, lent, sorted and listed. Output is styled for the terminal, or
// JSON with -json.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/AntonStoeckl/library-catalog-go/config"
	"github.com/AntonStoeckl/library-catalog-go/journal"
	"github.com/AntonStoeckl/library-catalog-go/journal/oteladapters"
	"github.com/AntonStoeckl/library-catalog-go/journal/promadapter"
	"github.com/AntonStoeckl/library-catalog-go/library"
)

const serviceName = "library-catalog-demo"

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := config.Load(".env", ".env.local")
	if err != nil {
		return err
	}

	cfg, err = parseFlags(cfg, args)
	if err != nil {
		return err
	}

	logger := config.NewLogger(cfg, stderr)

	obs, err := newObservability(cfg, logger)
	if err != nil {
		return err
	}
	defer obs.shutdown(ctx)

	var contextualLogger journal.ContextualLogger = logger
	if obs.contextualLogger != nil {
		contextualLogger = obs.contextualLogger
	}

	managerOptions := []library.Option{
		library.WithContextualLogger(contextualLogger),
		library.WithPolicy(cfg.Policy()),
		library.WithJournal(journal.New(journal.WithLogger(logger), journal.WithMetrics(obs.metricsCollector))),
	}

	if obs.metricsCollector != nil {
		managerOptions = append(managerOptions, library.WithMetrics(obs.metricsCollector))
	}

	if obs.tracingCollector != nil {
		managerOptions = append(managerOptions, library.WithTracing(obs.tracingCollector))
	}

	steps := runScenario(ctx, library.NewManager(managerOptions...))

	if cfg.ShowJSON {
		return renderJSON(stdout, steps)
	}

	renderText(stdout, steps)
	renderMetricNames(stdout, obs.metricNames())

	return nil
}

func parseFlags(cfg config.Config, args []string) (config.Config, error) {
	fs := flag.NewFlagSet("librarydemo", flag.ContinueOnError)

	var (
		showJSON       = fs.Bool("json", cfg.ShowJSON, "Print the session as JSON")
		logLevel       = fs.String("log-level", cfg.LogLevel.String(), "Log level (debug, info, warn, error)")
		logFormat      = fs.String("log-format", cfg.LogFormat, "Log format (text, json)")
		allowReserved  = fs.Bool("allow-checkout-from-reserved", cfg.AllowCheckoutFromReserved, "Let checkout fulfil a reservation")
		metricsBackend = fs.String("metrics", cfg.MetricsBackend, "Metrics backend (none, prometheus, otel)")
	)

	if err := fs.Parse(args); err != nil {
		return config.Config{}, err
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(*logLevel)); err != nil {
		return config.Config{}, fmt.Errorf("%w: log level %q", config.ErrInvalidConfig, *logLevel)
	}

	cfg.ShowJSON = *showJSON
	cfg.LogFormat = *logFormat
	cfg.AllowCheckoutFromReserved = *allowReserved
	cfg.MetricsBackend = *metricsBackend

	return cfg, cfg.Validate()
}

type observability struct {
	metricsCollector journal.MetricsCollector
	tracingCollector journal.TracingCollector
	contextualLogger journal.ContextualLogger
	registry         *prometheus.Registry
	shutdown         func(context.Context)
}

func newObservability(cfg config.Config, logger *slog.Logger) (observability, error) {
	noShutdown := func(context.Context) {}

	switch cfg.MetricsBackend {
	case config.MetricsBackendPrometheus:
		registry := prometheus.NewRegistry()

		return observability{
			metricsCollector: promadapter.NewMetricsCollector(registry),
			registry:         registry,
			shutdown:         noShutdown,
		}, nil

	case config.MetricsBackendOTel:
		meterProvider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(sdkmetric.NewManualReader()))
		tracerProvider := sdktrace.NewTracerProvider()

		return observability{
			metricsCollector: oteladapters.NewMetricsCollector(meterProvider.Meter(serviceName)),
			tracingCollector: oteladapters.NewTracingCollector(tracerProvider.Tracer(serviceName)),
			contextualLogger: oteladapters.NewSlogBridgeLoggerWithHandler(logger.Handler()),
			shutdown: func(ctx context.Context) {
				if err := tracerProvider.Shutdown(ctx); err != nil {
					logger.WarnContext(ctx, "tracer provider shutdown failed", "error", err.Error())
				}
				if err := meterProvider.Shutdown(ctx); err != nil {
					logger.WarnContext(ctx, "meter provider shutdown failed", "error", err.Error())
				}
			},
		}, nil

	default:
		return observability{shutdown: noShutdown}, nil
	}
}

func (o observability) metricNames() []string {
	if o.registry == nil {
		return nil
	}

	families, err := o.registry.Gather()
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(families))
	for _, family := range families {
		names = append(names, family.GetName())
	}

	return names
}
