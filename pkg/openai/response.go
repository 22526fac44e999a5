package openai

import (
	"context"
	"encoding/json"
	"strings"

	// Packages
	client "github.com/mutablelogic/go-client"
	meteo "github.com/mutablelogic/go-meteo"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Tool is a hosted tool definition. Only remote MCP servers are used here.
type Tool struct {
	Type            string   `json:"type"`
	ServerLabel     string   `json:"server_label,omitempty"`
	ServerURL       string   `json:"server_url,omitempty"`
	AllowedTools    []string `json:"allowed_tools,omitempty"`
	RequireApproval string   `json:"require_approval,omitempty"`
}

// Response from the Responses API
type Response struct {
	Id        string          `json:"id"`
	Object    string          `json:"object"`
	CreatedAt uint64          `json:"created_at"`
	Model     string          `json:"model"`
	Status    string          `json:"status"`
	Output    []Item          `json:"output"`
	Usage     *Usage          `json:"usage,omitempty"`
	Error     json.RawMessage `json:"error,omitempty"`
}

// Item is one element of the response output: a message, an MCP tool
// listing or an MCP tool call
type Item struct {
	Id          string          `json:"id"`
	Type        string          `json:"type"`
	Status      string          `json:"status,omitempty"`
	Role        string          `json:"role,omitempty"`
	Content     []Content       `json:"content,omitempty"`
	ServerLabel string          `json:"server_label,omitempty"`
	Name        string          `json:"name,omitempty"`
	Arguments   string          `json:"arguments,omitempty"`
	Result      *string         `json:"output,omitempty"`
	Error       json.RawMessage `json:"error,omitempty"`
}

type Content struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type Usage struct {
	InputTokens  uint64 `json:"input_tokens"`
	OutputTokens uint64 `json:"output_tokens"`
	TotalTokens  uint64 `json:"total_tokens"`
}

type reqResponse struct {
	Model        string `json:"model"`
	Input        string `json:"input"`
	Instructions string `json:"instructions,omitempty"`
	Tools        []Tool `json:"tools,omitempty"`
	User         string `json:"user,omitempty"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	ItemTypeMessage  = "message"
	ItemTypeMCPCall  = "mcp_call"
	ItemTypeMCPList  = "mcp_list_tools"
	ContentTypeText  = "output_text"
	StatusCompleted  = "completed"
	StatusIncomplete = "incomplete"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Respond sends a single prompt and returns the response. The model
// defaults to DefaultModel when empty.
func (c *Client) Respond(ctx context.Context, model, input string, opts ...Opt) (*Response, error) {
	if input == "" {
		return nil, meteo.ErrBadParameter.With("missing input")
	}
	if model == "" {
		model = DefaultModel
	}

	body := reqResponse{
		Model: model,
		Input: input,
	}
	for _, opt := range opts {
		if err := opt(&body); err != nil {
			return nil, err
		}
	}

	// Request
	req, err := client.NewJSONRequest(body)
	if err != nil {
		return nil, err
	}

	// Response
	var response Response
	if err := c.DoWithContext(ctx, req, &response, client.OptPath("responses")); err != nil {
		return nil, err
	}

	// Return success
	return &response, nil
}

// OutputText concatenates the text of every output message
func (r *Response) OutputText() string {
	var parts []string
	for _, item := range r.Output {
		if item.Type != ItemTypeMessage {
			continue
		}
		for _, content := range item.Content {
			if content.Type == ContentTypeText {
				parts = append(parts, content.Text)
			}
		}
	}
	return strings.Join(parts, "")
}

// ToolCalls returns the MCP tool calls made while producing the response
func (r *Response) ToolCalls() []Item {
	var result []Item
	for _, item := range r.Output {
		if item.Type == ItemTypeMCPCall {
			result = append(result, item)
		}
	}
	return result
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (r Response) String() string {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(data)
}
