package forecast

import (
	"context"
	"time"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	meteo "github.com/mutablelogic/go-meteo"
	openmeteo "github.com/mutablelogic/go-meteo/pkg/openmeteo"
	attribute "go.opentelemetry.io/otel/attribute"
	trace "go.opentelemetry.io/otel/trace"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Forecaster returns the raw daily forecast for a coordinate
type Forecaster interface {
	Forecast(ctx context.Context, req *openmeteo.ForecastRequest) (*openmeteo.ForecastResponse, error)
}

// Fetcher requests a daily forecast and reshapes the parallel arrays
// into one record per day
type Fetcher struct {
	forecaster Forecaster
	timeout    time.Duration
	tracer     trace.Tracer
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func NewFetcher(forecaster Forecaster, opts ...Opt) (*Fetcher, error) {
	if forecaster == nil {
		return nil, meteo.ErrBadParameter.With("forecaster is required")
	}
	o, err := applyOpts(opts...)
	if err != nil {
		return nil, err
	}
	return &Fetcher{
		forecaster: forecaster,
		timeout:    o.timeout,
		tracer:     o.tracer,
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Fetch returns the forecast for a location. The options are expected to
// have been validated.
func (f *Fetcher) Fetch(ctx context.Context, location Location, opts Options) (result *Forecast, err error) {
	ctx, endSpan := otel.StartSpan(f.tracer, ctx, "Fetch",
		attribute.Float64("latitude", location.Latitude),
		attribute.Float64("longitude", location.Longitude),
		attribute.Int("days", opts.Days),
	)
	defer func() { endSpan(err) }()

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	response, err := f.forecaster.Forecast(ctx, &openmeteo.ForecastRequest{
		Latitude:        location.Latitude,
		Longitude:       location.Longitude,
		Days:            opts.Days,
		TemperatureUnit: opts.Units.TemperatureUnit(),
	})
	if err != nil {
		return nil, requestError(ctx, err, "forecast")
	} else if response == nil {
		return nil, meteo.ErrUnexpectedResponse.With("empty forecast response")
	}

	days, err := reshape(response.Daily)
	if err != nil {
		return nil, err
	}
	units := response.DailyUnits
	if units == nil {
		units = map[string]string{}
	}

	return &Forecast{
		Timezone: response.Timezone,
		Units:    units,
		Daily:    days,
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// reshape zips the daily arrays by index. Every array must be present and
// as long as the dates array.
func reshape(daily *openmeteo.Daily) ([]Day, error) {
	if daily == nil {
		return nil, meteo.ErrUnexpectedResponse.With("missing daily forecast")
	} else if daily.Time == nil {
		return nil, meteo.ErrUnexpectedResponse.Withf("missing daily %q", "time")
	}

	n := len(daily.Time)
	for _, field := range []struct {
		name    string
		present bool
		length  int
	}{
		{openmeteo.DailyWeatherCode, daily.WeatherCode != nil, len(daily.WeatherCode)},
		{openmeteo.DailyTemperatureMax, daily.TemperatureMax != nil, len(daily.TemperatureMax)},
		{openmeteo.DailyTemperatureMin, daily.TemperatureMin != nil, len(daily.TemperatureMin)},
		{openmeteo.DailyPrecipitationSum, daily.PrecipitationSum != nil, len(daily.PrecipitationSum)},
	} {
		if !field.present {
			return nil, meteo.ErrUnexpectedResponse.Withf("missing daily %q", field.name)
		} else if field.length != n {
			return nil, meteo.ErrUnexpectedResponse.Withf("daily %q has %d values, expected %d", field.name, field.length, n)
		}
	}

	days := make([]Day, n)
	for i := range days {
		days[i] = Day{
			Date:             daily.Time[i],
			TempMax:          daily.TemperatureMax[i],
			TempMin:          daily.TemperatureMin[i],
			PrecipitationSum: daily.PrecipitationSum[i],
			WeatherCode:      daily.WeatherCode[i],
		}
	}
	return days, nil
}
