package httphandler

import (
	"context"
	"net/http"

	// Packages
	forecast "github.com/mutablelogic/go-meteo/pkg/forecast"
	version "github.com/mutablelogic/go-meteo/pkg/version"
	httprequest "github.com/mutablelogic/go-server/pkg/httprequest"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Forecaster runs a forecast for a place
type Forecaster interface {
	Forecast(ctx context.Context, place string, opts forecast.Options) (*forecast.Result, error)
}

// ForecastRequest is the query for /api/forecast. Absent values take
// their defaults.
type ForecastRequest struct {
	Place string  `json:"place"`
	Days  *int    `json:"days,omitempty"`
	Units *string `json:"units,omitempty"`
	Lang  *string `json:"lang,omitempty"`
}

type health struct {
	Status string `json:"status"`
}

///////////////////////////////////////////////////////////////////////////////
// HANDLER FUNCTIONS

// Path: /healthz
func HealthHandler() (string, http.HandlerFunc) {
	return "/healthz", func(w http.ResponseWriter, r *http.Request) {
		_ = httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), health{Status: "ok"})
	}
}

// Path: /version
func VersionHandler(name string) (string, http.HandlerFunc) {
	return "/version", func(w http.ResponseWriter, r *http.Request) {
		_ = httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), version.Get(name))
	}
}

// Path: /api/forecast
func ForecastHandler(forecaster Forecaster) (string, http.HandlerFunc) {
	return "/api/forecast", func(w http.ResponseWriter, r *http.Request) {
		var req ForecastRequest
		if err := httprequest.Query(r.URL.Query(), &req); err != nil {
			_ = httpresponse.Error(w, httpresponse.ErrBadRequest.With(err))
			return
		}
		resp, err := forecaster.Forecast(r.Context(), req.Place, req.Options())
		if err != nil {
			_ = httpresponse.Error(w, httpErr(err))
			return
		}
		_ = httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), resp)
	}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Options applies defaults for absent values
func (req ForecastRequest) Options() forecast.Options {
	opts := forecast.DefaultOptions()
	if req.Days != nil {
		opts.Days = *req.Days
	}
	if req.Units != nil {
		opts.Units = forecast.Units(*req.Units)
	}
	if req.Lang != nil {
		opts.Language = *req.Lang
	}
	return opts
}
