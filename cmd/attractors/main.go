// Command attractors enumerates the attractors of a Boolean network's
// asynchronous state-transition graph, via Xie–Beerel (§4.6) optionally
// preceded by ITGR preprocessing (§4.7).
package main

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"os"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/katalvlaran/boolscc/attractor"
	"github.com/katalvlaran/boolscc/bnparse"
	"github.com/katalvlaran/boolscc/cmd/internal/cliutil"
	"github.com/katalvlaran/boolscc/logutil"
	"github.com/katalvlaran/boolscc/step"
	"github.com/katalvlaran/boolscc/symbolic"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "attractors:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var verbose cliutil.VerboseValue
	var algorithm string
	var count int
	var noConstProp bool

	app := &cli.App{
		Name:      "attractors",
		Usage:     "enumerate attractors of a Boolean network",
		ArgsUsage: "file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "algorithm",
				Usage:       "xie-beerel or itgr-xie-beerel",
				Value:       "xie-beerel",
				Destination: &algorithm,
			},
			&cli.IntFlag{
				Name:        "count",
				Usage:       "stop after N items (0 = enumerate all)",
				Destination: &count,
			},
			&cli.BoolFlag{
				Name:        "no-constant-propagation",
				Usage:       "skip pre-analysis constant inlining",
				Destination: &noConstProp,
			},
			cliutil.VerboseFlag(&verbose),
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errors.New("expected exactly one positional argument: file")
			}
			logger, err := logutil.NewFromFlag(os.Stderr, verbose.Level(), verbose.Present())
			if err != nil {
				return err
			}

			useITGR, err := parseAttractorAlgorithm(algorithm)
			if err != nil {
				return err
			}

			g, active, err := loadNetwork(c.Args().Get(0), !noConstProp)
			if err != nil {
				return err
			}
			logger.Info().Int("variables", g.VariableCount()).Int("active", len(active)).Msg("network loaded")

			cfg := symbolic.AttractorConfig{Graph: g, ActiveVariables: active}
			universe := g.MkUnitColoredVertices()
			ctx := context.Background()

			if useITGR {
				cfg, universe, err = reduceWithITGR(ctx, logger, cfg, universe)
				if err != nil {
					return err
				}
			}

			gen := attractor.New(cfg, universe)
			return enumerate(ctx, logger, gen, count)
		},
	}
	return app.Run(args)
}

func parseAttractorAlgorithm(s string) (useITGR bool, err error) {
	switch s {
	case "xie-beerel":
		return false, nil
	case "itgr-xie-beerel":
		return true, nil
	default:
		return false, fmt.Errorf("attractors: unknown --algorithm value %q", s)
	}
}

// reduceWithITGR drives ITGR to completion and returns the narrowed
// AttractorConfig/universe the Xie–Beerel generator should run over.
func reduceWithITGR(ctx context.Context, logger zerolog.Logger, cfg symbolic.AttractorConfig, universe symbolic.SCV) (symbolic.AttractorConfig, symbolic.SCV, error) {
	comp := attractor.NewITGR(cfg, universe)
	r := comp.Compute(ctx)
	if r.IsCancelled() {
		return cfg, nil, &step.CancelledError{Reason: r.Reason()}
	}
	result := r.Value()
	logger.Info().Int("retained_vars", len(result.ActiveVars)).Msg("ITGR preprocessing complete")
	reduced := symbolic.AttractorConfig{
		Graph:           cfg.Graph.Restrict(result.Remaining),
		ActiveVariables: result.ActiveVars,
		MaxSymbolicSize: cfg.MaxSymbolicSize,
	}
	return reduced, result.Remaining, nil
}

// loadNetwork parses file as a Boolean-network textual description and
// compiles it to a graph plus its active variable set.
func loadNetwork(path string, propagateConstants bool) (symbolic.Graph, []symbolic.VariableId, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("attractors: %w", err)
	}
	defer f.Close()

	net, err := bnparse.Parse(f)
	if err != nil {
		return nil, nil, fmt.Errorf("attractors: %w", err)
	}
	g, active, err := net.Compile(propagateConstants)
	if err != nil {
		return nil, nil, fmt.Errorf("attractors: %w", err)
	}
	return g, active, nil
}

// attractorGenerator is the shape attractor.New produces.
type attractorGenerator interface {
	Next(ctx context.Context) (symbolic.SCV, bool, error)
}

// enumerate drives gen, printing one "Item #k: N elements" line per
// emitted item and a trailing summary, per §6's output format.
func enumerate(ctx context.Context, logger zerolog.Logger, gen attractorGenerator, count int) error {
	k := 0
	for count == 0 || k < count {
		item, ok, err := gen.Next(ctx)
		if err != nil {
			var cancelled *step.CancelledError
			if errors.As(err, &cancelled) {
				logger.Warn().Str("reason", cancelled.Reason).Msg("computation cancelled")
			}
			return err
		}
		if !ok {
			break
		}
		k++
		fmt.Printf("Item #%d: %s elements\n", k, cardinality(item))
	}
	fmt.Printf("enumerated %d item(s)\n", k)
	return nil
}

func cardinality(s symbolic.SCV) string {
	if s == nil {
		return big.NewInt(0).String()
	}
	return s.Cardinality().String()
}
