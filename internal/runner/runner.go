package runner

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/projectdiscovery/gologger"

	"github.com/coregx/suse/counter"
	"github.com/coregx/suse/event"
	"github.com/coregx/suse/eviction"
	"github.com/coregx/suse/selector"
)

// Runner streams wire-form events from an input source into a compiled
// selector and reports its running aggregates, the library-consuming
// counterpart to alterx's internal/runner.Runner.
type Runner struct {
	options  *Options
	strategy eviction.Strategy
}

// New constructs a Runner from parsed Options.
func New(options *Options) (*Runner, error) {
	strategy, err := resolveEviction(options.Eviction)
	if err != nil {
		return nil, err
	}
	return &Runner{options: options, strategy: strategy}, nil
}

func resolveEviction(name string) (eviction.Strategy, error) {
	switch name {
	case "fifo":
		return eviction.FIFO, nil
	case "never", "":
		return eviction.Never, nil
	default:
		return nil, fmt.Errorf("runner: unknown eviction strategy %q", name)
	}
}

func (r *Runner) ttl() *uint64 {
	if !r.options.HasTTL {
		return nil
	}
	ttl := uint64(r.options.TTL)
	return &ttl
}

// Run reads events line-by-line and feeds them into the selector chosen
// by options.Semiring, logging each running aggregate.
func (r *Runner) Run() error {
	input, closeFn, err := r.openInput()
	if err != nil {
		return err
	}
	defer closeFn()

	ops := counter.Int64Ops{}
	switch r.options.Semiring {
	case "count", "":
		return r.runCount(ops, input)
	case "sum":
		return r.runSum(ops, input)
	case "product":
		return r.runProduct(ops, input)
	default:
		return fmt.Errorf("runner: unknown semiring %q", r.options.Semiring)
	}
}

func (r *Runner) openInput() (io.Reader, func(), error) {
	if r.options.InputFile == "" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(r.options.InputFile)
	if err != nil {
		return nil, nil, fmt.Errorf("runner: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func (r *Runner) runCount(ops counter.Int64Ops, input io.Reader) error {
	s, err := selector.NewCountSelector[int64](ops, r.options.Pattern, r.options.SummarySize, uint64(r.options.Window), r.ttl())
	if err != nil {
		return fmt.Errorf("runner: %w", err)
	}
	return r.scan(input, func(e event.Event) error {
		if err := s.ProcessEventWith(e, r.strategy); err != nil {
			return err
		}
		gologger.Info().Msgf("complete=%d partial=%d", s.NumberOfContainedCompleteMatches(), s.NumberOfContainedPartialMatches())
		return nil
	})
}

func (r *Runner) runSum(ops counter.Int64Ops, input io.Reader) error {
	s, err := selector.NewSumSelector[int64](ops, r.options.Pattern, r.options.SummarySize, uint64(r.options.Window), r.ttl())
	if err != nil {
		return fmt.Errorf("runner: %w", err)
	}
	return r.scan(input, func(e event.Event) error {
		if err := s.ProcessEventWith(e, r.strategy); err != nil {
			return err
		}
		gologger.Info().Msgf("complete=%d sum=%d", s.NumberOfContainedCompleteMatches(), s.SumOfContainedCompleteMatches())
		return nil
	})
}

func (r *Runner) runProduct(ops counter.Int64Ops, input io.Reader) error {
	s, err := selector.NewProductSelector[int64](ops, r.options.Pattern, r.options.SummarySize, uint64(r.options.Window), r.ttl())
	if err != nil {
		return fmt.Errorf("runner: %w", err)
	}
	return r.scan(input, func(e event.Event) error {
		if err := s.ProcessEventWith(e, r.strategy); err != nil {
			return err
		}
		gologger.Info().Msgf("complete=%d product=%d geomean=%.6f",
			s.NumberOfContainedCompleteMatches(), s.ProdOfContainedCompleteMatches(), s.GeometricMeanOfContainedCompleteMatches())
		return nil
	})
}

func (r *Runner) scan(input io.Reader, process func(event.Event) error) error {
	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		e, err := event.ParseLine(line)
		if err != nil {
			gologger.Error().Msgf("skipping malformed line %q: %v", line, err)
			continue
		}
		if err := process(e); err != nil {
			return fmt.Errorf("runner: %w", err)
		}
	}
	return scanner.Err()
}
