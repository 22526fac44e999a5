// Package meteo serves a weather forecast tool over the Model Context
// Protocol. A place name is resolved to coordinates with the Open-Meteo
// geocoding service and the daily forecast is reshaped into a list of days.
//
// The packages under pkg/ are:
//
//   - place: normalises free text and derives geocoding candidates
//   - openmeteo: a client for the geocoding and forecast endpoints
//   - forecast: the get_weather_forecast tool
//   - tool: a toolkit of named tools with JSON schemas
//   - mcp: serves a toolkit over MCP, and a client to call it
//   - httphandler: HTTP routes for the MCP endpoint and a REST forecast
//   - openai: a minimal Responses API client used by the demo
//   - version: build information
//
// The errors returned by these packages wrap the Err codes defined here.
package meteo

import (
	"fmt"
)

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	ErrSuccess Err = iota

	// No location matched the place, or no tool has the name
	ErrNotFound

	// Invalid tool input, always rejected before any request is made
	ErrBadParameter

	ErrNotImplemented
	ErrInternalServerError

	// An upstream response was missing data or malformed
	ErrUnexpectedResponse
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Err is an error code. Errors returned from this module wrap one of
// these codes, so callers test them with errors.Is.
type Err int

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (e Err) Error() string {
	switch e {
	case ErrSuccess:
		return "success"
	case ErrNotFound:
		return "not found"
	case ErrBadParameter:
		return "bad parameter"
	case ErrNotImplemented:
		return "not implemented"
	case ErrInternalServerError:
		return "internal server error"
	case ErrUnexpectedResponse:
		return "unexpected response"
	}
	return fmt.Sprintf("error code %d", int(e))
}

func (e Err) With(args ...any) error {
	return fmt.Errorf("%w: %s", e, fmt.Sprint(args...))
}

func (e Err) Withf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", e, fmt.Sprintf(format, args...))
}
