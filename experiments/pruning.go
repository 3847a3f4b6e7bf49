package experiments

import (
	"errors"
	"fmt"

	"minimax/game"
	"minimax/metrics"
	"minimax/searcher"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

var ErrValueMismatch = errors.New("pruned and plain search disagree")

type Config struct {
	Trees     int // Random trees to search
	Height    int
	Branching int // Maximum children per branch
	Seed      uint64
}

type Result struct {
	Trees        int
	PrunedVisits int
	FullVisits   int
	Cutoffs      int
}

// Savings is the fraction of node visits avoided by pruning.
func (r Result) Savings() float64 {
	if r.FullVisits == 0 {
		return 0
	}
	return 1 - float64(r.PrunedVisits)/float64(r.FullVisits)
}

// RunPruningExperiment searches random trees with and without pruning and
// tallies the visits of both.
func RunPruningExperiment(cfg Config) (Result, error) {
	if cfg.Trees <= 0 || cfg.Height <= 0 || cfg.Branching <= 0 {
		return Result{}, fmt.Errorf("invalid experiment config %+v", cfg)
	}

	r := rand.New(rand.NewSource(cfg.Seed))
	pruned := searcher.NewAlphaBeta(searcher.WithMetrics(metrics.NewCollector()))
	full := searcher.NewAlphaBeta(searcher.WithMetrics(metrics.NewCollector()), searcher.WithoutPruning())

	log.Info().Msgf("starting pruning experiment with config %+v...", cfg)

	result := Result{Trees: cfg.Trees}
	for i := 0; i < cfg.Trees; i++ {
		tree := RandomTree(r, cfg.Height, cfg.Branching)
		maximizing := i%2 == 0 // Alternate the starting player

		prunedValue, prunedMetric, err := pruned.Search(tree, cfg.Height, maximizing)
		if err != nil {
			return result, fmt.Errorf("failed to search tree %d: %w", i+1, err)
		}
		fullValue, fullMetric, err := full.Search(tree, cfg.Height, maximizing)
		if err != nil {
			return result, fmt.Errorf("failed to search tree %d: %w", i+1, err)
		}
		if prunedValue != fullValue {
			return result, fmt.Errorf("%w: tree %d got %v, want %v", ErrValueMismatch, i+1, prunedValue, fullValue)
		}

		result.PrunedVisits += prunedMetric.Visits
		result.FullVisits += fullMetric.Visits
		result.Cutoffs += prunedMetric.Cutoffs
		log.Debug().Msgf("tree %d of %d: value %v, %d of %d nodes visited", i+1, cfg.Trees, prunedValue, prunedMetric.Visits, fullMetric.Visits)
	}

	log.Info().Msgf("completed pruning experiment: %.1f%% of visits avoided", result.Savings()*100)
	return result, nil
}

// RandomTree returns a tree exactly height plies deep whose branches have
// between 1 and branching children and whose leaves lie in [-100, 100].
func RandomTree(r *rand.Rand, height, branching int) game.Tree {
	if height == 0 {
		return game.Leaf(r.Intn(201) - 100)
	}
	children := make(game.Branch, 1+r.Intn(branching))
	for i := range children {
		children[i] = RandomTree(r, height-1, branching)
	}
	return children
}
