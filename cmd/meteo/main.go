package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	// Packages
	kong "github.com/alecthomas/kong"
	godotenv "github.com/joho/godotenv"
	openmeteo "github.com/mutablelogic/go-meteo/pkg/openmeteo"
	trace "go.opentelemetry.io/otel/trace"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type Globals struct {
	// Debugging
	Debug     bool   `name:"debug" help:"Enable debug logging"`
	Verbose   bool   `name:"verbose" help:"Trace requests to Open-Meteo"`
	LogFormat string `name:"log-format" env:"METEO_LOG_FORMAT" enum:"text,json" default:"text" help:"Log format (text, json)"`

	// Open-Meteo
	OpenMeteo struct {
		Geocoding string        `name:"geocoding" env:"METEO_GEOCODING_ENDPOINT" default:"${geocoding}" help:"Geocoding API endpoint"`
		Forecast  string        `name:"forecast" env:"METEO_FORECAST_ENDPOINT" default:"${forecast}" help:"Forecast API endpoint"`
		Timeout   time.Duration `name:"timeout" env:"METEO_TIMEOUT" default:"${timeout}" help:"Timeout for each request"`
	} `embed:"" prefix:"openmeteo."`

	// Tracing
	OTel struct {
		Endpoint string `name:"endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT" help:"OTLP/HTTP endpoint for traces"`
	} `embed:"" prefix:"otel."`

	// Context
	ctx      context.Context
	execName string
	logger   *slog.Logger
	tracer   trace.Tracer
}

type CLI struct {
	Globals

	// Server
	Serve ServeCmd `cmd:"" help:"Run the MCP server over HTTP" group:"SERVER"`
	Stdio StdioCmd `cmd:"" help:"Run the MCP server over standard input and output" group:"SERVER"`

	// Forecast
	Forecast ForecastCmd `cmd:"" help:"Get a daily forecast for a place" group:"FORECAST"`
	Resolve  ResolveCmd  `cmd:"" help:"Resolve a place to a location" group:"FORECAST"`

	// Client
	Tools ListToolsCmd `cmd:"" help:"List tools on a running MCP server" group:"CLIENT"`
	Call  CallToolCmd  `cmd:"" help:"Call the forecast tool on a running MCP server" group:"CLIENT"`

	Version VersionCmd `cmd:"" help:"Print version information"`
}

////////////////////////////////////////////////////////////////////////////////
// MAIN

func main() {
	// Environment from .env, when present
	_ = godotenv.Load()

	// Create a cli parser
	cli := CLI{}
	cmd := kong.Parse(&cli,
		kong.Name(execName()),
		kong.Description("Weather forecast MCP server"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{
			"geocoding": openmeteo.GeocodingEndpoint,
			"forecast":  openmeteo.ForecastEndpoint,
			"timeout":   openmeteo.DefaultTimeout.String(),
			"addr":      defaultAddr,
			"path":      defaultPath,
		},
	)

	// Create a context
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	cli.Globals.ctx = ctx
	cli.Globals.execName = execName()

	// Logs go to stderr, stdout carries the stdio transport
	cli.Globals.logger = newLogger(os.Stderr, cli.LogFormat, cli.Debug)
	slog.SetDefault(cli.Globals.logger)

	// Tracing
	shutdown, err := cli.Globals.startTracing(ctx)
	cmd.FatalIfErrorf(err)

	// Run the command
	err = cmd.Run(&cli.Globals)
	shutdown()
	cmd.FatalIfErrorf(err)
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func execName() string {
	// The name of the executable
	name, err := os.Executable()
	if err != nil {
		panic(err)
	} else {
		return filepath.Base(name)
	}
}
