// Implements an MCP server which exposes a toolkit over the streamable
// HTTP and stdio transports:
// https://modelcontextprotocol.io/specification/2025-06-18/basic/transports
package mcp

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	// Packages
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	meteo "github.com/mutablelogic/go-meteo"
	tool "github.com/mutablelogic/go-meteo/pkg/tool"
)

///////////////////////////////////////////////////////////////////////
// TYPES

type Server struct {
	name    string
	version string
	toolkit *tool.Toolkit
	logger  *slog.Logger
	server  *sdk.Server
}

///////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Create a new MCP server with the given name and version. Every tool in
// the toolkit is registered when the server is created.
func New(name, version string, opts ...Opt) (*Server, error) {
	self := &Server{
		name:    name,
		version: version,
		logger:  slog.Default(),
	}
	if err := self.apply(opts...); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, meteo.ErrBadParameter.With("missing server name")
	}

	self.server = sdk.NewServer(&sdk.Implementation{
		Name:    name,
		Version: version,
	}, nil)

	if self.toolkit != nil {
		for _, t := range self.toolkit.Tools() {
			if err := self.register(t); err != nil {
				return nil, err
			}
		}
	}

	// Return success
	return self, nil
}

///////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Handler returns a stateless streamable HTTP handler, which should be
// mounted at the MCP path
func (server *Server) Handler() http.Handler {
	return sdk.NewStreamableHTTPHandler(func(*http.Request) *sdk.Server {
		return server.server
	}, &sdk.StreamableHTTPOptions{
		Stateless: true,
	})
}

// RunStdio serves a single session on standard input and output, and
// runs in the foreground until the client disconnects or the context
// is done
func (server *Server) RunStdio(ctx context.Context) error {
	return server.server.Run(ctx, &sdk.StdioTransport{})
}

// Connect serves a single session on the given transport
func (server *Server) Connect(ctx context.Context, transport sdk.Transport) (*sdk.ServerSession, error) {
	return server.server.Connect(ctx, transport, nil)
}

///////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (server *Server) register(t tool.Tool) error {
	schema, err := t.Schema()
	if err != nil {
		return meteo.ErrBadParameter.Withf("tool %q: %v", t.Name(), err)
	} else if schema == nil {
		return meteo.ErrBadParameter.Withf("tool %q: missing schema", t.Name())
	}

	hints := tool.HintsFor(t)
	server.server.AddTool(&sdk.Tool{
		Name:        t.Name(),
		Description: t.Description(),
		InputSchema: schema,
		Annotations: &sdk.ToolAnnotations{
			Title:          hints.Title,
			ReadOnlyHint:   hints.ReadOnly,
			IdempotentHint: hints.Idempotent,
			OpenWorldHint:  &hints.OpenWorld,
		},
	}, server.handle(t.Name()))

	return nil
}

// handle runs the tool through the toolkit, so input is validated against
// the schema. Tool errors are returned as error results rather than
// protocol errors, so the model can see them.
func (server *Server) handle(name string) sdk.ToolHandler {
	return func(ctx context.Context, req *sdk.CallToolRequest) (*sdk.CallToolResult, error) {
		var input json.RawMessage
		if req.Params != nil {
			input = req.Params.Arguments
		}

		result, err := server.toolkit.Run(ctx, name, input)
		if err != nil {
			server.logger.WarnContext(ctx, "tool call failed", "tool", name, "error", err)
			return errorResult(err), nil
		}

		data, err := json.Marshal(result)
		if err != nil {
			return errorResult(err), nil
		}
		server.logger.DebugContext(ctx, "tool call", "tool", name, "bytes", len(data))

		response := &sdk.CallToolResult{
			Content: []sdk.Content{&sdk.TextContent{Text: string(data)}},
		}
		if len(data) > 0 && data[0] == '{' {
			response.StructuredContent = json.RawMessage(data)
		}
		return response, nil
	}
}

func errorResult(err error) *sdk.CallToolResult {
	return &sdk.CallToolResult{
		Content: []sdk.Content{&sdk.TextContent{Text: err.Error()}},
		IsError: true,
	}
}
