package openai

import (
	// Packages
	meteo "github.com/mutablelogic/go-meteo"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Opt func(*reqResponse) error

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	ToolTypeMCP          = "mcp"
	RequireApprovalNever = "never"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// System or developer instructions for the model
func WithInstructions(v string) Opt {
	return func(r *reqResponse) error {
		r.Instructions = v
		return nil
	}
}

// Allow the model to call tools on a remote MCP server, without approval.
// When no tools are named, every tool on the server is allowed.
func WithMCPServer(label, url string, tools ...string) Opt {
	return func(r *reqResponse) error {
		if label == "" || url == "" {
			return meteo.ErrBadParameter.With("mcp server requires a label and url")
		}
		r.Tools = append(r.Tools, Tool{
			Type:            ToolTypeMCP,
			ServerLabel:     label,
			ServerURL:       url,
			AllowedTools:    tools,
			RequireApproval: RequireApprovalNever,
		})
		return nil
	}
}

// A unique identifier representing your end-user
func WithUser(v string) Opt {
	return func(r *reqResponse) error {
		r.User = v
		return nil
	}
}
