package mcp

import (
	"context"
	"net/http"

	// Packages
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	meteo "github.com/mutablelogic/go-meteo"
)

///////////////////////////////////////////////////////////////////////
// TYPES

// Client is a session with a remote MCP server
type Client struct {
	session *sdk.ClientSession
}

///////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Dial connects to a streamable HTTP endpoint. The http client may be nil.
func Dial(ctx context.Context, endpoint string, name, version string, client *http.Client) (*Client, error) {
	if endpoint == "" {
		return nil, meteo.ErrBadParameter.With("missing endpoint")
	}
	return Connect(ctx, &sdk.StreamableClientTransport{
		Endpoint:   endpoint,
		HTTPClient: client,
	}, name, version)
}

// Connect starts a session over any transport
func Connect(ctx context.Context, transport sdk.Transport, name, version string) (*Client, error) {
	session, err := sdk.NewClient(&sdk.Implementation{
		Name:    name,
		Version: version,
	}, nil).Connect(ctx, transport, nil)
	if err != nil {
		return nil, err
	}
	return &Client{session: session}, nil
}

// Close ends the session
func (c *Client) Close() error {
	return c.session.Close()
}

///////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ListTools returns every tool, following pagination cursors
func (c *Client) ListTools(ctx context.Context) ([]*sdk.Tool, error) {
	var result []*sdk.Tool
	params := &sdk.ListToolsParams{}
	for {
		response, err := c.session.ListTools(ctx, params)
		if err != nil {
			return nil, err
		}
		result = append(result, response.Tools...)
		if response.NextCursor == "" {
			return result, nil
		}
		params.Cursor = response.NextCursor
	}
}

// CallTool calls a tool by name. A tool which fails returns a result
// with IsError set, not an error.
func (c *Client) CallTool(ctx context.Context, name string, args any) (*sdk.CallToolResult, error) {
	return c.session.CallTool(ctx, &sdk.CallToolParams{
		Name:      name,
		Arguments: args,
	})
}

// Text concatenates the text content of a result
func Text(result *sdk.CallToolResult) string {
	var text string
	for _, content := range result.Content {
		if v, ok := content.(*sdk.TextContent); ok {
			text += v.Text
		}
	}
	return text
}
