/*
openmeteo implements an API client for the Open-Meteo geocoding and
forecast APIs.
https://open-meteo.com/en/docs
https://open-meteo.com/en/docs/geocoding-api
*/
package openmeteo

import (
	"context"
	"time"

	// Packages
	client "github.com/mutablelogic/go-client"
	meteo "github.com/mutablelogic/go-meteo"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Client holds one HTTP client per Open-Meteo host
type Client struct {
	geocoding *client.Client
	forecast  *client.Client
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	GeocodingEndpoint = "https://geocoding-api.open-meteo.com/v1"
	ForecastEndpoint  = "https://api.open-meteo.com/v1"

	// Timeout applied to every request unless overridden
	DefaultTimeout = 10 * time.Second
)

const (
	pathSearch   = "search"
	pathForecast = "forecast"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a client for the public Open-Meteo endpoints
func New(opts ...client.ClientOpt) (*Client, error) {
	return NewWithEndpoints(GeocodingEndpoint, ForecastEndpoint, opts...)
}

// NewWithEndpoints creates a client for the given geocoding and forecast
// endpoints, which is useful for self-hosted instances and tests.
func NewWithEndpoints(geocoding, forecast string, opts ...client.ClientOpt) (*Client, error) {
	if geocoding == "" || forecast == "" {
		return nil, meteo.ErrBadParameter.With("missing endpoint")
	}

	// Default timeout first, so callers can override it
	defaults := []client.ClientOpt{client.OptTimeout(DefaultTimeout)}

	self := new(Client)
	if c, err := client.New(append(append(defaults, opts...), client.OptEndpoint(geocoding))...); err != nil {
		return nil, err
	} else {
		self.geocoding = c
	}
	if c, err := client.New(append(append(defaults, opts...), client.OptEndpoint(forecast))...); err != nil {
		return nil, err
	} else {
		self.forecast = c
	}

	// Return success
	return self, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Geocode searches for a place name. The language is sent both as a query
// parameter and as the preferred response language.
func (c *Client) Geocode(ctx context.Context, req *GeocodeRequest) (*GeocodeResponse, error) {
	var response GeocodeResponse
	if req == nil || req.Name == "" {
		return nil, meteo.ErrBadParameter.With("name is required")
	}

	opts := []client.RequestOpt{
		client.OptPath(pathSearch),
		client.OptQuery(req.Values()),
	}
	if req.Language != "" {
		opts = append(opts, client.OptReqHeader("Accept-Language", req.Language))
	}

	// Request -> Response
	if err := c.geocoding.DoWithContext(ctx, nil, &response, opts...); err != nil {
		return nil, err
	}

	return &response, nil
}

// Forecast returns the daily forecast for a coordinate
func (c *Client) Forecast(ctx context.Context, req *ForecastRequest) (*ForecastResponse, error) {
	var response ForecastResponse
	if req == nil {
		return nil, meteo.ErrBadParameter.With("missing request")
	}

	// Request -> Response
	if err := c.forecast.DoWithContext(ctx, nil, &response, client.OptPath(pathForecast), client.OptQuery(req.Values())); err != nil {
		return nil, err
	}

	return &response, nil
}
