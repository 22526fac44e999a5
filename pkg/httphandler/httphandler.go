package httphandler

import (
	"errors"
	"log/slog"
	"net/http"

	// Packages
	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"
	meteo "github.com/mutablelogic/go-meteo"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Config holds the handlers mounted on the router
type Config struct {
	Name       string       // Executable name, reported by /version
	Path       string       // MCP endpoint path, defaults to /mcp
	MCP        http.Handler // MCP streamable HTTP handler
	Forecaster Forecaster   // Serves /api/forecast when set
	Logger     *slog.Logger
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	DefaultPath = "/mcp"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New returns a router with request logging and panic recovery, serving
// the MCP endpoint with and without a trailing slash
func New(config Config) (http.Handler, error) {
	if config.MCP == nil {
		return nil, meteo.ErrBadParameter.With("missing MCP handler")
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	path := types.NormalisePath(config.Path)
	if path == "" || path == "/" {
		path = DefaultPath
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(RequestLogger(config.Logger))
	router.Use(middleware.Recoverer)

	// Register handlers
	router.Get(HealthHandler())
	router.Get(VersionHandler(config.Name))
	if config.Forecaster != nil {
		router.Get(ForecastHandler(config.Forecaster))
	}
	router.Handle(path, config.MCP)
	router.Handle(path+"/", config.MCP)

	// Return success
	return router, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// httpErr converts a meteo.Err to an httpresponse.Err, preserving the
// original error message. Anything else is an upstream failure.
func httpErr(err error) error {
	var meteoErr meteo.Err
	if !errors.As(err, &meteoErr) {
		return httpresponse.Err(http.StatusBadGateway).With(err)
	}
	switch meteoErr {
	case meteo.ErrNotFound:
		return httpresponse.ErrNotFound.With(err)
	case meteo.ErrBadParameter:
		return httpresponse.ErrBadRequest.With(err)
	case meteo.ErrUnexpectedResponse:
		return httpresponse.Err(http.StatusBadGateway).With(err)
	default:
		return httpresponse.ErrInternalError.With(err)
	}
}
