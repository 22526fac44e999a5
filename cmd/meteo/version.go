package main

import (
	"fmt"

	// Packages
	version "github.com/mutablelogic/go-meteo/pkg/version"
)

type VersionCmd struct{}

func (cmd *VersionCmd) Run(ctx *Globals) error {
	fmt.Println(string(version.JSON(ctx.execName)))
	return nil
}
