package forecast

import (
	"log/slog"
	"time"

	// Packages
	meteo "github.com/mutablelogic/go-meteo"
	openmeteo "github.com/mutablelogic/go-meteo/pkg/openmeteo"
	trace "go.opentelemetry.io/otel/trace"
)

/////////////////////////////////////////////////////////////////////////////////
// TYPES

type Opt func(*opts) error

type opts struct {
	timeout time.Duration
	tracer  trace.Tracer
	logger  *slog.Logger
}

/////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func applyOpts(fn ...Opt) (*opts, error) {
	o := &opts{
		timeout: openmeteo.DefaultTimeout,
		logger:  slog.Default(),
	}
	for _, opt := range fn {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

/////////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithTimeout sets the deadline for each individual request to Open-Meteo
func WithTimeout(v time.Duration) Opt {
	return func(o *opts) error {
		if v <= 0 {
			return meteo.ErrBadParameter.With("timeout must be positive")
		}
		o.timeout = v
		return nil
	}
}

// WithTracer sets the OpenTelemetry tracer, which can be nil
func WithTracer(v trace.Tracer) Opt {
	return func(o *opts) error {
		o.tracer = v
		return nil
	}
}

// WithLogger sets the logger for resolution attempts
func WithLogger(v *slog.Logger) Opt {
	return func(o *opts) error {
		if v == nil {
			return meteo.ErrBadParameter.With("logger cannot be nil")
		}
		o.logger = v
		return nil
	}
}
