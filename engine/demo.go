package engine

import (
	"fmt"

	"minimax/game"
	"minimax/metrics"
	"minimax/searcher"
	"minimax/selector"

	"github.com/rs/zerolog/log"
)

type Option func(d *Demo)

type Demo struct {
	sequence   []int
	tree       game.Tree
	depth      int
	maximizing bool
	selection  metrics.Collector
	search     metrics.Collector
}

func WithMetrics() Option {
	return func(d *Demo) {
		d.selection = metrics.NewCollector()
		d.search = metrics.NewCollector()
	}
}

// WithMinimizingFirst starts the tree search on a minimizing ply.
func WithMinimizingFirst() Option {
	return func(d *Demo) {
		d.maximizing = false
	}
}

// NewDemo returns an engine that selects the minimum and maximum of sequence
// and evaluates tree depth plies deep.
func NewDemo(sequence []int, tree game.Tree, depth int, options ...Option) *Demo {
	d := &Demo{ // Default values
		sequence:   sequence,
		tree:       tree,
		depth:      depth,
		maximizing: true,
		selection:  metrics.NewDummyCollector(),
		search:     metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(d)
	}
	return d
}

func (d *Demo) Run() (Report, error) {
	var report Report

	log.Info().Msgf("selecting min and max of %d elements", len(d.sequence))
	d.selection.Start()
	lo, hi, err := selector.MinMax(d.sequence, 0, len(d.sequence)-1, selector.WithMetrics(d.selection))
	if err != nil {
		return report, fmt.Errorf("failed to select min and max: %w", err)
	}
	report.Min, report.Max = lo, hi
	report.Selection = d.selection.Complete()
	log.Debug().Msgf("selection done with %d comparisons", report.Selection.Comparisons)

	log.Info().Msgf("evaluating game tree of %d nodes to depth %d", game.Size(d.tree), d.depth)
	ab := searcher.NewAlphaBeta(searcher.WithMetrics(d.search))
	value, metric, err := ab.Search(d.tree, d.depth, d.maximizing)
	if err != nil {
		return report, fmt.Errorf("failed to evaluate game tree: %w", err)
	}
	report.Value = value
	report.Search = metric
	log.Debug().Msgf("search done with %d visits and %d cutoffs", metric.Visits, metric.Cutoffs)

	return report, nil
}
