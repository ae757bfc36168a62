// Command suse streams wire-form events from stdin (or a file) into a
// compiled summary selector and logs its running aggregates, the way
// cmd/alterx/main.go wires alterx's internal/runner into the alterx
// library.
package main

import (
	"github.com/projectdiscovery/gologger"

	"github.com/coregx/suse/internal/runner"
)

func main() {
	options := runner.ParseFlags()

	r, err := runner.New(options)
	if err != nil {
		gologger.Fatal().Msgf("%s\n", err)
	}

	if err := r.Run(); err != nil {
		gologger.Fatal().Msgf("%s\n", err)
	}
}
