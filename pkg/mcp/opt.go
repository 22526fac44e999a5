package mcp

import (
	"log/slog"

	// Packages
	meteo "github.com/mutablelogic/go-meteo"
	tool "github.com/mutablelogic/go-meteo/pkg/tool"
)

/////////////////////////////////////////////////////////////////////////////////
// TYPES

type Opt func(*Server) error

/////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func (server *Server) apply(opts ...Opt) error {
	for _, opt := range opts {
		if err := opt(server); err != nil {
			return err
		}
	}
	return nil
}

/////////////////////////////////////////////////////////////////////////////////
// OPTIONS

func WithToolKit(v *tool.Toolkit) Opt {
	return func(server *Server) error {
		server.toolkit = v
		return nil
	}
}

func WithLogger(v *slog.Logger) Opt {
	return func(server *Server) error {
		if v == nil {
			return meteo.ErrBadParameter.With("logger cannot be nil")
		}
		server.logger = v
		return nil
	}
}
