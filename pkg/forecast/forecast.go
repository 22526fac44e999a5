/*
forecast implements the get_weather_forecast tool, which resolves free
text to a location and returns a compact daily forecast for it.
https://open-meteo.com/en/docs
*/
package forecast

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	otel "github.com/mutablelogic/go-client/pkg/otel"
	meteo "github.com/mutablelogic/go-meteo"
	tool "github.com/mutablelogic/go-meteo/pkg/tool"
	attribute "go.opentelemetry.io/otel/attribute"
	trace "go.opentelemetry.io/otel/trace"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Tool resolves a place and returns its forecast
type Tool struct {
	resolver *Resolver
	fetcher  *Fetcher
	tracer   trace.Tracer
	logger   *slog.Logger
}

// Request is the tool input. Absent fields take their default values.
type Request struct {
	Place string `json:"place" jsonschema:"City or place name, or a 'lat,lon' pair, e.g. 'Copenhagen, DK' or '55.676,12.568'"`
	Days  Count  `json:"days,omitempty" jsonschema:"Number of forecast days"`
	Units Units  `json:"units,omitempty" jsonschema:"Temperature unit, C for Celsius or F for Fahrenheit"`
	Lang  string `json:"lang,omitempty" jsonschema:"Language code for place names, e.g. en or da"`
}

// Count is an integer argument which is also accepted as an integral
// number such as 3.0, or as a numeric string such as "3"
type Count int

var _ tool.Tool = (*Tool)(nil)
var _ tool.Hinter = (*Tool)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	Name        = "get_weather_forecast"
	description = "Get a daily weather forecast (1-16 days) for a place using Open-Meteo. " +
		"The place can be a name such as 'Copenhagen, DK' or a 'lat,lon' coordinate pair."
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New returns the forecast tool. The Open-Meteo client implements both
// the geocoder and the forecaster.
func New(geocoder Geocoder, forecaster Forecaster, opts ...Opt) (*Tool, error) {
	o, err := applyOpts(opts...)
	if err != nil {
		return nil, err
	}
	resolver, err := NewResolver(geocoder, opts...)
	if err != nil {
		return nil, err
	}
	fetcher, err := NewFetcher(forecaster, opts...)
	if err != nil {
		return nil, err
	}
	return &Tool{
		resolver: resolver,
		fetcher:  fetcher,
		tracer:   o.tracer,
		logger:   o.logger,
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (*Tool) Name() string {
	return Name
}

func (*Tool) Description() string {
	return description
}

func (*Tool) Hints() tool.Hints {
	return tool.Hints{
		Title:      "Weather forecast",
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	}
}

// Schema returns the input schema with ranges, enumerations and defaults
func (*Tool) Schema() (*jsonschema.Schema, error) {
	schema, err := jsonschema.For[Request](nil)
	if err != nil {
		return nil, err
	}
	if p, ok := schema.Properties["days"]; ok {
		p.Type = ""
		p.Types = []string{"integer", "string"}
		p.Minimum = ptr(float64(MinDays))
		p.Maximum = ptr(float64(MaxDays))
		p.Default = mustMarshal(DefaultDays)
	}
	if p, ok := schema.Properties["units"]; ok {
		p.Enum = []any{string(Celsius), string(Fahrenheit)}
		p.Default = mustMarshal(DefaultUnits)
	}
	if p, ok := schema.Properties["lang"]; ok {
		p.MinLength = ptr(MinLanguage)
		p.MaxLength = ptr(MaxLanguage)
		p.Default = mustMarshal(DefaultLanguage)
	}
	return schema, nil
}

// Run decodes the input, applying defaults for absent fields, and returns
// a *Result
func (t *Tool) Run(ctx context.Context, input json.RawMessage) (any, error) {
	req := Request{
		Days:  Count(DefaultDays),
		Units: DefaultUnits,
		Lang:  DefaultLanguage,
	}
	if len(input) > 0 {
		if err := json.Unmarshal(input, &req); err != nil {
			return nil, meteo.ErrBadParameter.Withf("invalid input: %v", err)
		}
	}
	return t.Forecast(ctx, req.Place, Options{
		Days:     int(req.Days),
		Units:    req.Units,
		Language: req.Lang,
	})
}

// Forecast validates the options, resolves the place and fetches the
// forecast. No request is made when the options are invalid.
func (t *Tool) Forecast(ctx context.Context, text string, opts Options) (result *Result, err error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	ctx, endSpan := otel.StartSpan(t.tracer, ctx, "Forecast",
		attribute.String("place", text),
		attribute.Int("days", opts.Days),
		attribute.String("units", string(opts.Units)),
	)
	defer func() { endSpan(err) }()

	location, err := t.resolver.Resolve(ctx, text, opts.Language)
	if err != nil {
		return nil, err
	}
	forecast, err := t.fetcher.Fetch(ctx, *location, opts)
	if err != nil {
		return nil, err
	}
	location.Timezone = forecast.Timezone

	t.logger.InfoContext(ctx, "forecast", "place", text, "latitude", location.Latitude, "longitude", location.Longitude, "days", len(forecast.Daily))

	return &Result{
		Query:    text,
		Location: *location,
		Units:    forecast.Units,
		Daily:    forecast.Daily,
	}, nil
}

// Resolve returns the location for the text without fetching a forecast
func (t *Tool) Resolve(ctx context.Context, text, lang string) (*Location, error) {
	if err := (Options{Days: DefaultDays, Units: DefaultUnits, Language: lang}).Validate(); err != nil {
		return nil, err
	}
	return t.resolver.Resolve(ctx, text, lang)
}

// UnmarshalJSON decodes a number or numeric string with no fractional part
func (c *Count) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return err
	}
	value, err := number.Float64()
	if err != nil {
		return err
	}
	if value != math.Trunc(value) || math.Abs(value) > math.MaxInt32 {
		return fmt.Errorf("%s is not an integer", number)
	}
	*c = Count(value)
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func ptr[T any](v T) *T {
	return &v
}

func mustMarshal(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}
