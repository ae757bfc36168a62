package runner

import (
	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/levels"
)

// Options holds the parsed command-line configuration for cmd/suse,
// following projectdiscovery-alterx/internal/runner's ParseFlags
// pattern.
type Options struct {
	Pattern     string
	Semiring    string
	Eviction    string
	InputFile   string
	SummarySize int
	Window      int
	TTL         int
	HasTTL      bool
	Verbose     bool
	Silent      bool
}

// ParseFlags parses the process' command-line flags into an Options
// value, grouped the way alterx groups "input"/"output"/"config".
func ParseFlags() *Options {
	opts := &Options{}
	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription(`Bounded, incrementally-maintained summary of a pattern matched against an event stream.`)

	flagSet.CreateGroup("input", "Input",
		flagSet.StringVarP(&opts.Pattern, "pattern", "p", "", "regex pattern to match against the event stream (required)"),
		flagSet.StringVarP(&opts.InputFile, "file", "f", "", "file of wire-form events to read (default stdin)"),
	)

	flagSet.CreateGroup("summary", "Summary",
		flagSet.StringVarP(&opts.Semiring, "semiring", "k", "count", "aggregate kind: count, sum, or product"),
		flagSet.IntVarP(&opts.SummarySize, "summary-size", "c", 1024, "maximum number of retained events"),
		flagSet.IntVarP(&opts.Window, "window", "w", 60, "sliding time window size"),
		flagSet.IntVarP(&opts.TTL, "ttl", "t", -1, "discard events older than this age (default: no TTL)"),
		flagSet.StringVarP(&opts.Eviction, "eviction", "e", "never", "full-cache policy: fifo or never"),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.BoolVarP(&opts.Verbose, "verbose", "v", false, "display verbose output"),
		flagSet.BoolVar(&opts.Silent, "silent", false, "display results only"),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("could not read flags: %s\n", err)
	}

	if opts.Silent {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelSilent)
	} else if opts.Verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}
	showBanner()

	if opts.Pattern == "" {
		gologger.Fatal().Msgf("a --pattern is required\n")
	}
	if opts.TTL >= 0 {
		opts.HasTTL = true
	}

	return opts
}
