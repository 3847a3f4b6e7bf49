package searcher

import (
	"fmt"
	"math"

	"minimax/game"
	"minimax/metrics"

	"github.com/rs/zerolog/log"
)

type Option func(a *AlphaBeta)

type AlphaBeta struct {
	prune   bool
	metrics metrics.Collector
}

// WithMetrics records node visits and cutoffs on c.
func WithMetrics(c metrics.Collector) Option {
	return func(a *AlphaBeta) {
		if c != nil {
			a.metrics = c
		}
	}
}

// WithoutPruning visits every child, turning the search into plain minimax.
func WithoutPruning() Option {
	return func(a *AlphaBeta) {
		a.prune = false
	}
}

func NewAlphaBeta(options ...Option) *AlphaBeta {
	a := &AlphaBeta{ // Default values
		prune:   true,
		metrics: metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(a)
	}
	return a
}

// Evaluate returns the minimax value of node searched depth plies deep with
// alpha-beta pruning.
func Evaluate(node game.Tree, depth int, alpha, beta float64, maximizing bool) (float64, error) {
	return NewAlphaBeta().Evaluate(node, depth, alpha, beta, maximizing)
}

// Minimax returns the value of node without pruning any branch.
func Minimax(node game.Tree, depth int, maximizing bool) (float64, error) {
	return NewAlphaBeta(WithoutPruning()).Evaluate(node, depth, NegInf, PosInf, maximizing)
}

// Search evaluates node over the full window and reports the work done.
func (a *AlphaBeta) Search(node game.Tree, depth int, maximizing bool) (float64, metrics.SearchMetric, error) {
	a.metrics.Start()
	value, err := a.Evaluate(node, depth, NegInf, PosInf, maximizing)
	metric := a.metrics.Complete()
	return value, metric, err
}

// Evaluate searches node with the window (alpha, beta). A leaf yields its own
// value at any remaining depth. Bounds need not satisfy alpha <= beta.
//
// The whole tree is checked before the search starts, so a malformed node or
// a branch beyond the depth limit fails the same way whether or not pruning
// would have reached it.
func (a *AlphaBeta) Evaluate(node game.Tree, depth int, alpha, beta float64, maximizing bool) (float64, error) {
	if depth < 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidDepth, depth)
	}
	if err := game.Validate(node); err != nil {
		return 0, err
	}
	// No static evaluation: only leaves carry values
	if height := game.Height(node); height > depth {
		return 0, fmt.Errorf("%w: tree of height %d has branches without value at depth limit %d", game.ErrInvalidTreeShape, height, depth)
	}
	return a.evaluate(node, depth, alpha, beta, maximizing), nil
}

func (a *AlphaBeta) evaluate(node game.Tree, depth int, alpha, beta float64, maximizing bool) float64 {
	a.metrics.AddVisit()

	children, ok := node.(game.Branch)
	if !ok {
		return float64(node.(game.Leaf))
	}

	best := PosInf
	if maximizing {
		best = NegInf
	}
	for i, child := range children {
		v := a.evaluate(child, depth-1, alpha, beta, !maximizing)

		if maximizing {
			best = math.Max(best, v)
			alpha = math.Max(alpha, v)
		} else {
			best = math.Min(best, v)
			beta = math.Min(beta, v)
		}

		if a.prune && beta <= alpha {
			if remaining := len(children) - i - 1; remaining > 0 {
				a.metrics.AddCutoff()
				log.Debug().Msgf("pruning %d children at depth %d (alpha=%v beta=%v)", remaining, depth, alpha, beta)
			}
			break
		}
	}
	return best
}
