package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	// Packages
	client "github.com/mutablelogic/go-client"
	forecast "github.com/mutablelogic/go-meteo/pkg/forecast"
	mcp "github.com/mutablelogic/go-meteo/pkg/mcp"
	openmeteo "github.com/mutablelogic/go-meteo/pkg/openmeteo"
	tool "github.com/mutablelogic/go-meteo/pkg/tool"
	version "github.com/mutablelogic/go-meteo/pkg/version"
	otel "go.opentelemetry.io/otel"
	attribute "go.opentelemetry.io/otel/attribute"
	otlptracehttp "go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	resource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	serverName = "Weather Server"
)

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Tool returns the forecast tool backed by the configured Open-Meteo
// endpoints
func (g *Globals) Tool() (*forecast.Tool, error) {
	api, err := openmeteo.NewWithEndpoints(g.OpenMeteo.Geocoding, g.OpenMeteo.Forecast, g.clientOpts()...)
	if err != nil {
		return nil, err
	}
	opts := []forecast.Opt{
		forecast.WithTracer(g.tracer),
		forecast.WithLogger(g.logger),
	}
	if g.OpenMeteo.Timeout > 0 {
		opts = append(opts, forecast.WithTimeout(g.OpenMeteo.Timeout))
	}
	return forecast.New(api, api, opts...)
}

// Server returns the MCP server with the forecast tool registered, and
// the tool itself
func (g *Globals) Server() (*mcp.Server, *forecast.Tool, error) {
	weather, err := g.Tool()
	if err != nil {
		return nil, nil, err
	}
	toolkit, err := tool.NewToolkit(weather)
	if err != nil {
		return nil, nil, err
	}
	server, err := mcp.New(serverName, version.Version(), mcp.WithToolKit(toolkit), mcp.WithLogger(g.logger))
	if err != nil {
		return nil, nil, err
	}
	return server, weather, nil
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (g *Globals) clientOpts() []client.ClientOpt {
	opts := []client.ClientOpt{
		client.OptUserAgent(version.UserAgent(g.execName)),
	}
	if g.Verbose {
		opts = append(opts, client.OptTrace(os.Stderr, g.Debug))
	}
	if g.tracer != nil {
		opts = append(opts, client.OptTracer(g.tracer))
	}
	if g.OpenMeteo.Timeout > 0 {
		opts = append(opts, client.OptTimeout(g.OpenMeteo.Timeout))
	}
	return opts
}

// startTracing installs an OTLP exporter when an endpoint is set, and
// returns a function which flushes and stops it
func (g *Globals) startTracing(ctx context.Context) (func(), error) {
	if g.OTel.Endpoint == "" {
		return func() {}, nil
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(g.OTel.Endpoint))
	if err != nil {
		return nil, err
	}
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", g.execName),
			attribute.String("service.version", version.Version()),
		)),
	)
	otel.SetTracerProvider(provider)
	g.tracer = provider.Tracer(g.execName)

	return func() {
		if err := provider.Shutdown(context.Background()); err != nil && !errors.Is(err, context.Canceled) {
			g.logger.Error("tracing shutdown", "error", err)
		}
	}, nil
}

func newLogger(w io.Writer, format string, debug bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if debug {
		opts.Level = slog.LevelDebug
	}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
