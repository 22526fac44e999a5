package forecast

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	meteo "github.com/mutablelogic/go-meteo"
	openmeteo "github.com/mutablelogic/go-meteo/pkg/openmeteo"
	place "github.com/mutablelogic/go-meteo/pkg/place"
	attribute "go.opentelemetry.io/otel/attribute"
	trace "go.opentelemetry.io/otel/trace"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Geocoder searches for a place by name
type Geocoder interface {
	Geocode(ctx context.Context, req *openmeteo.GeocodeRequest) (*openmeteo.GeocodeResponse, error)
}

// Resolver turns free text into a location, trying each candidate query
// in turn until the geocoder returns a result
type Resolver struct {
	geocoder Geocoder
	timeout  time.Duration
	tracer   trace.Tracer
	logger   *slog.Logger
}

// NotFoundError is returned when no candidate query matched. It wraps
// ErrNotFound.
type NotFoundError struct {
	Place string   `json:"place"`
	Tried []string `json:"tried"`
}

type outcome int

const (
	outcomeEmpty outcome = iota
	outcomeHit
	outcomeFailed
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func NewResolver(geocoder Geocoder, opts ...Opt) (*Resolver, error) {
	if geocoder == nil {
		return nil, meteo.ErrBadParameter.With("geocoder is required")
	}
	o, err := applyOpts(opts...)
	if err != nil {
		return nil, err
	}
	return &Resolver{
		geocoder: geocoder,
		timeout:  o.timeout,
		tracer:   o.tracer,
		logger:   o.logger,
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Resolve returns the location for the text, which is used verbatim as the
// display name when it is a coordinate pair. A coordinate pair never
// reaches the geocoder. Otherwise candidates are queried one at a time
// and the first hit wins; a failed request ends resolution immediately.
func (r *Resolver) Resolve(ctx context.Context, text, lang string) (result *Location, err error) {
	ctx, endSpan := otel.StartSpan(r.tracer, ctx, "Resolve",
		attribute.String("place", text),
		attribute.String("lang", lang),
	)
	defer func() { endSpan(err) }()

	normalized := place.Normalize(text)
	if normalized == "" {
		return nil, meteo.ErrBadParameter.With("place is required")
	}

	// Coordinates short-circuit
	if lat, lon, ok := place.ParseLatLon(normalized); ok {
		name := text
		location := &Location{Name: &name, Latitude: lat, Longitude: lon}
		if err := validationError(validate.Struct(location)); err != nil {
			return nil, err
		}
		r.logger.DebugContext(ctx, "resolved coordinates", "place", text, "latitude", lat, "longitude", lon)
		return location, nil
	}

	// Sequential fallback
	candidates := place.Candidates(normalized)
	tried := make([]string, 0, len(candidates))
	for _, query := range candidates {
		tried = append(tried, query)
		location, outcome, err := r.lookup(ctx, query, lang)
		switch outcome {
		case outcomeFailed:
			r.logger.WarnContext(ctx, "geocode failed", "query", query, "error", err)
			return nil, err
		case outcomeHit:
			r.logger.DebugContext(ctx, "geocode hit", "query", query, "latitude", location.Latitude, "longitude", location.Longitude)
			return location, nil
		default:
			r.logger.DebugContext(ctx, "geocode empty", "query", query)
		}
	}

	return nil, &NotFoundError{Place: text, Tried: tried}
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// lookup performs a single geocoding request under its own deadline
func (r *Resolver) lookup(ctx context.Context, query, lang string) (*Location, outcome, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	response, err := r.geocoder.Geocode(ctx, &openmeteo.GeocodeRequest{
		Name:     query,
		Count:    1,
		Language: lang,
	})
	if err != nil {
		return nil, outcomeFailed, requestError(ctx, err, "geocode %q", query)
	}
	if response == nil || len(response.Results) == 0 {
		return nil, outcomeEmpty, nil
	}

	first := response.Results[0]
	if first.Latitude == nil || first.Longitude == nil {
		return nil, outcomeFailed, meteo.ErrUnexpectedResponse.Withf("geocode %q: result has no coordinates", query)
	}
	return &Location{
		Name:      first.Name,
		Country:   first.Country,
		Admin1:    first.Admin1,
		Latitude:  *first.Latitude,
		Longitude: *first.Longitude,
	}, outcomeHit, nil
}

// requestError wraps a failed request. A deadline or cancellation is
// always wrapped as well, whatever the transport returned.
func requestError(ctx context.Context, err error, format string, args ...any) error {
	prefix := fmt.Sprintf(format, args...)
	if cause := ctx.Err(); cause != nil && !errors.Is(err, cause) {
		return fmt.Errorf("%s: %w: %w", prefix, err, cause)
	}
	return fmt.Errorf("%s: %w", prefix, err)
}

///////////////////////////////////////////////////////////////////////////////
// ERRORS

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no location found for %q (tried: %s)", e.Place, strings.Join(e.Tried, ", "))
}

func (e *NotFoundError) Unwrap() error {
	return meteo.ErrNotFound
}
