package main

import (
	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	forecast "github.com/mutablelogic/go-meteo/pkg/forecast"
	attribute "go.opentelemetry.io/otel/attribute"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type ForecastCmd struct {
	Place string `arg:"" help:"Place name, or a 'lat,lon' pair"`
	Days  int    `name:"days" short:"d" default:"3" help:"Number of forecast days (1-16)"`
	Units string `name:"units" short:"u" enum:"C,F" default:"C" help:"Temperature unit (C, F)"`
	Lang  string `name:"lang" short:"l" default:"en" help:"Language for place names"`
	Output
}

type ResolveCmd struct {
	Place string `arg:"" help:"Place name, or a 'lat,lon' pair"`
	Lang  string `name:"lang" short:"l" default:"en" help:"Language for place names"`
	Output
}

////////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *ForecastCmd) Run(ctx *Globals) (err error) {
	weather, err := ctx.Tool()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "ForecastCommand",
		attribute.String("place", cmd.Place),
	)
	defer func() { endSpan(err) }()

	result, err := weather.Forecast(parent, cmd.Place, forecast.Options{
		Days:     cmd.Days,
		Units:    forecast.Units(cmd.Units),
		Language: cmd.Lang,
	})
	if err != nil {
		return err
	}

	return cmd.Print(result)
}

func (cmd *ResolveCmd) Run(ctx *Globals) (err error) {
	weather, err := ctx.Tool()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "ResolveCommand",
		attribute.String("place", cmd.Place),
	)
	defer func() { endSpan(err) }()

	location, err := weather.Resolve(parent, cmd.Place, cmd.Lang)
	if err != nil {
		return err
	}

	return cmd.Print(location)
}
