package engine

import "minimax/metrics"

type Engine interface {
	// Run executes every algorithm once and reports the results
	Run() (Report, error)
}

type Report struct {
	Min   int
	Max   int
	Value float64 // Minimax value of the game tree
	// Only populated when metrics are enabled
	Selection metrics.SearchMetric
	Search    metrics.SearchMetric
}
