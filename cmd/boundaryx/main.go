package main

import (
	"github.com/projectdiscovery/gologger"

	"github.com/boundaryx/boundaryx/internal/runner"
)

func main() {
	opts := runner.ParseFlags()
	if err := runner.Run(opts); err != nil {
		gologger.Fatal().Msgf("boundaryx: %s", err)
	}
}
