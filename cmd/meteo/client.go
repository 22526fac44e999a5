package main

import (
	"fmt"
	"strings"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	forecast "github.com/mutablelogic/go-meteo/pkg/forecast"
	mcp "github.com/mutablelogic/go-meteo/pkg/mcp"
	version "github.com/mutablelogic/go-meteo/pkg/version"
	attribute "go.opentelemetry.io/otel/attribute"
	errgroup "golang.org/x/sync/errgroup"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type Remote struct {
	URL  string `name:"url" env:"MCP_SERVER_URL" default:"http://${addr}" help:"MCP server base URL"`
	Path string `name:"path" env:"MCP_PATH" default:"${path}" help:"MCP endpoint path"`
}

type ListToolsCmd struct {
	Remote
	Output
}

type CallToolCmd struct {
	Remote
	Places []string `arg:"" help:"Place names, or 'lat,lon' pairs"`
	Days   *int     `name:"days" short:"d" help:"Number of forecast days (1-16)"`
	Units  string   `name:"units" short:"u" help:"Temperature unit (C, F)"`
	Lang   string   `name:"lang" short:"l" help:"Language for place names"`
}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

// Maximum number of calls in flight
const maxCalls = 4

////////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *ListToolsCmd) Run(ctx *Globals) (err error) {
	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "ListToolsCommand",
		attribute.String("url", cmd.Endpoint()),
	)
	defer func() { endSpan(err) }()

	client, err := mcp.Dial(parent, cmd.Endpoint(), ctx.execName, version.Version(), nil)
	if err != nil {
		return err
	}
	defer client.Close()

	tools, err := client.ListTools(parent)
	if err != nil {
		return err
	}
	return cmd.Print(tools)
}

// Run calls the tool once per place, a few at a time, and prints the
// results in argument order. Only the arguments which were set are sent,
// so the server applies its own defaults.
func (cmd *CallToolCmd) Run(ctx *Globals) (err error) {
	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "CallToolCommand",
		attribute.String("url", cmd.Endpoint()),
		attribute.StringSlice("places", cmd.Places),
	)
	defer func() { endSpan(err) }()

	client, err := mcp.Dial(parent, cmd.Endpoint(), ctx.execName, version.Version(), nil)
	if err != nil {
		return err
	}
	defer client.Close()

	results := make([]string, len(cmd.Places))
	group, groupctx := errgroup.WithContext(parent)
	group.SetLimit(maxCalls)
	for i, place := range cmd.Places {
		group.Go(func() error {
			result, err := client.CallTool(groupctx, forecast.Name, cmd.Arguments(place))
			if err != nil {
				return fmt.Errorf("%q: %w", place, err)
			}
			if result.IsError {
				return fmt.Errorf("%s %q: %s", forecast.Name, place, mcp.Text(result))
			}
			results[i] = mcp.Text(result)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	for _, result := range results {
		fmt.Println(result)
	}
	return nil
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Endpoint joins the base URL and the endpoint path
func (r Remote) Endpoint() string {
	return strings.TrimRight(r.URL, "/") + "/" + strings.Trim(r.Path, "/")
}

// Arguments returns the tool arguments for a place
func (cmd *CallToolCmd) Arguments(place string) map[string]any {
	args := map[string]any{"place": place}
	if cmd.Days != nil {
		args["days"] = *cmd.Days
	}
	if cmd.Units != "" {
		args["units"] = strings.ToUpper(cmd.Units)
	}
	if cmd.Lang != "" {
		args["lang"] = cmd.Lang
	}
	return args
}
