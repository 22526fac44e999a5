/*
openai implements a client for the OpenAI Responses API, which lets a
model call tools on a remote MCP server
https://platform.openai.com/docs/api-reference/responses
*/
package openai

import (
	// Packages
	client "github.com/mutablelogic/go-client"
	meteo "github.com/mutablelogic/go-meteo"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Client struct {
	*client.Client
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	endPoint     = "https://api.openai.com/v1"
	DefaultModel = "gpt-5"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Create a new client
func New(ApiKey string, opts ...client.ClientOpt) (*Client, error) {
	return NewWithEndpoint(endPoint, ApiKey, opts...)
}

// Create a new client for a compatible endpoint
func NewWithEndpoint(endpoint, ApiKey string, opts ...client.ClientOpt) (*Client, error) {
	if ApiKey == "" {
		return nil, meteo.ErrBadParameter.With("missing api key")
	}

	// Create client
	opts = append(opts, client.OptEndpoint(endpoint))
	opts = append(opts, client.OptReqToken(client.Token{
		Scheme: client.Bearer,
		Value:  ApiKey,
	}))
	client, err := client.New(opts...)
	if err != nil {
		return nil, err
	}

	// Return the client
	return &Client{client}, nil
}
