package runner

import "github.com/projectdiscovery/gologger"

var banner = (`
 ____  _   _ ____  _____
/ ___|| | | / ___|| ____|
\___ \| | | \___ \|  _|
 ___) | |_| |___) | |___
|____/ \___/|____/|_____|
`)

var version = "v0.0.1"

// showBanner prints the startup banner, following
// projectdiscovery-alterx's internal/runner/banner.go.
func showBanner() {
	gologger.Print().Msgf("%s\n", banner)
	gologger.Print().Msgf("\t\tsuse %s\n\n", version)
}
