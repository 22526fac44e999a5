package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	// Packages
	kong "github.com/alecthomas/kong"
	godotenv "github.com/joho/godotenv"
	client "github.com/mutablelogic/go-client"
	forecast "github.com/mutablelogic/go-meteo/pkg/forecast"
	openai "github.com/mutablelogic/go-meteo/pkg/openai"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type CLI struct {
	// Debugging
	Debug   bool `name:"debug" help:"Print the full response"`
	Verbose bool `name:"verbose" help:"Trace requests to OpenAI"`

	// OpenAI
	OpenAIKey string `name:"openai-api-key" env:"OPENAI_API_KEY" required:"" help:"OpenAI API key"`
	Model     string `name:"model" env:"OPENAI_MODEL" default:"${model}" help:"OpenAI model"`

	// MCP server, which must be reachable from OpenAI
	ServerURL string `name:"server-url" env:"MCP_SERVER_URL" required:"" help:"Public base URL of the MCP server"`
	Path      string `name:"path" env:"MCP_PATH" default:"/mcp" help:"MCP endpoint path"`

	// Prompt
	Place string `arg:"" optional:"" default:"Copenhagen, DK" help:"Place to ask about"`
	Days  int    `name:"days" default:"3" help:"Number of forecast days"`
	Units string `name:"units" enum:"C,F" default:"C" help:"Temperature unit"`
	Lang  string `name:"lang" default:"en" help:"Language for place names"`
}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	serverLabel = "weather_server"
)

////////////////////////////////////////////////////////////////////////////////
// MAIN

func main() {
	_ = godotenv.Load()

	cli := CLI{}
	cmd := kong.Parse(&cli,
		kong.Name(execName()),
		kong.Description("Ask an OpenAI model for a forecast through the weather MCP server"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{
			"model": openai.DefaultModel,
		},
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cmd.FatalIfErrorf(cli.Run(ctx))
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (cli *CLI) Run(ctx context.Context) error {
	opts := []client.ClientOpt{}
	if cli.Debug || cli.Verbose {
		opts = append(opts, client.OptTrace(os.Stderr, cli.Verbose))
	}
	openaiClient, err := openai.New(cli.OpenAIKey, opts...)
	if err != nil {
		return err
	}

	response, err := openaiClient.Respond(ctx, cli.Model, prompt(cli.Place, cli.Days, cli.Units, cli.Lang),
		openai.WithMCPServer(serverLabel, serverURL(cli.ServerURL, cli.Path), forecast.Name),
	)
	if err != nil {
		return err
	}

	if cli.Debug {
		fmt.Fprintln(os.Stderr, response)
	}
	fmt.Println(response.OutputText())
	return nil
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// serverURL joins the base URL and path with a trailing slash
func serverURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.Trim(path, "/") + "/"
}

func prompt(place string, days int, units, lang string) string {
	return fmt.Sprintf("Use the %s tool for '%s', days=%d, units='%s', lang='%s'. Return a concise summary.", forecast.Name, place, days, units, lang)
}

func execName() string {
	name, err := os.Executable()
	if err != nil {
		panic(err)
	}
	return filepath.Base(name)
}
