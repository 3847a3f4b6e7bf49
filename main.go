package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"minimax/engine"
	"minimax/experiments"
	"minimax/game"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type config struct {
	LogLevel string `long:"log-level" description:"Minimum level of logged events" choice:"debug" choice:"info" choice:"warn" choice:"error" default:"info"`
	Pretty   bool   `long:"pretty" description:"Print human friendly logs instead of JSON"`
	Metrics  bool   `long:"metrics" description:"Report comparison, visit and cutoff counts"`

	Experiment struct {
		Trees int    `long:"trees" description:"Random trees to search in the pruning experiment, 0 to skip" default:"0"`
		Seed  uint64 `long:"seed" description:"Seed for the random trees" default:"1"`
	} `group:"Experiment" namespace:"experiment"`
}

const depth = 3

var sequence = []int{12, 4, 56, 19, 8, 23, 89, 5}

const tree = "[[[3,5],[6,9]],[[1,2],[0,-1]]]"

func main() {
	cfg, err := parseConfig(os.Args[1:])
	if err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
	setupLogger(cfg)

	if err := run(cfg, sequence, []byte(tree), os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("demonstration failed")
	}
}

func parseConfig(args []string) (config, error) {
	var cfg config
	_, err := flags.NewParser(&cfg, flags.Default).ParseArgs(args)
	return cfg, err
}

// run executes the demonstration on seq and the JSON tree, writing the
// results to out.
func run(cfg config, seq []int, treeJSON []byte, out io.Writer) error {
	t, err := game.Parse(treeJSON)
	if err != nil {
		return fmt.Errorf("failed to parse game tree: %w", err)
	}

	options := []engine.Option{}
	if cfg.Metrics {
		options = append(options, engine.WithMetrics())
	}

	report, err := engine.NewDemo(seq, t, depth, options...).Run()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Minimum: %d, Maximum: %d\n", report.Min, report.Max)
	fmt.Fprintf(out, "Minimax value: %v\n", report.Value)
	if cfg.Metrics {
		fmt.Fprintf(out, "Selection: %d comparisons in %s\n", report.Selection.Comparisons, report.Selection.Duration)
		fmt.Fprintf(out, "Search: %d visits, %d cutoffs in %s\n", report.Search.Visits, report.Search.Cutoffs, report.Search.Duration)
	}

	if cfg.Experiment.Trees > 0 {
		result, err := experiments.RunPruningExperiment(experiments.Config{
			Trees:     cfg.Experiment.Trees,
			Height:    5,
			Branching: 4,
			Seed:      cfg.Experiment.Seed,
		})
		if err != nil {
			return fmt.Errorf("pruning experiment failed: %w", err)
		}
		fmt.Fprintf(out, "Pruning: %d of %d visits over %d trees (%.1f%% avoided)\n",
			result.PrunedVisits, result.FullVisits, result.Trees, result.Savings()*100)
	}
	return nil
}

func setupLogger(cfg config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}
