package main

import (
	"net/http"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	httphandler "github.com/mutablelogic/go-meteo/pkg/httphandler"
	version "github.com/mutablelogic/go-meteo/pkg/version"
	httpserver "github.com/mutablelogic/go-server/pkg/httpserver"
	attribute "go.opentelemetry.io/otel/attribute"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type ServeCmd struct {
	Addr string `name:"addr" env:"METEO_ADDR" default:"${addr}" help:"Listen address"`
	Path string `name:"path" env:"METEO_PATH" default:"${path}" help:"MCP endpoint path"`
}

type StdioCmd struct{}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	defaultAddr = "127.0.0.1:8000"
	defaultPath = httphandler.DefaultPath
)

////////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *ServeCmd) Run(ctx *Globals) error {
	// Create the HTTP router
	router, err := cmd.Router(ctx)
	if err != nil {
		return err
	}

	// Create the server
	httpserver, err := httpserver.New(cmd.Addr, nil)
	if err != nil {
		return err
	}
	httpserver.Router().Handle("/", router)

	// Run the server until the context is done
	ctx.logger.Info("started", "name", ctx.execName, "version", version.Version(), "addr", cmd.Addr, "path", cmd.Path)
	if err := httpserver.Run(ctx.ctx); err != nil {
		return err
	}

	// Return success
	ctx.logger.Info("stopped", "name", ctx.execName)
	return nil
}

// Router returns the handler for the MCP endpoint and the REST routes
func (cmd *ServeCmd) Router(ctx *Globals) (http.Handler, error) {
	server, weather, err := ctx.Server()
	if err != nil {
		return nil, err
	}
	return httphandler.New(httphandler.Config{
		Name:       ctx.execName,
		Path:       cmd.Path,
		MCP:        server.Handler(),
		Forecaster: weather,
		Logger:     ctx.logger,
	})
}

func (cmd *StdioCmd) Run(ctx *Globals) (err error) {
	server, _, err := ctx.Server()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "StdioCommand",
		attribute.String("version", version.Version()),
	)
	defer func() { endSpan(err) }()

	ctx.logger.Debug("serving on stdio", "name", ctx.execName)
	return server.RunStdio(parent)
}
