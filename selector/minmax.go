// Package selector finds the minimum and maximum of a sequence in one
// divide-and-conquer pass.
package selector

import (
	"errors"
	"fmt"

	"minimax/metrics"

	"golang.org/x/exp/constraints"
)

var ErrInvalidRange = errors.New("invalid range")

type Option func(s *selector)

type selector struct {
	split   func(left, right int) int
	metrics metrics.Collector
}

// WithSplit overrides the midpoint used to divide [left, right]. The returned
// index must lie in [left, right-1].
func WithSplit(split func(left, right int) int) Option {
	return func(s *selector) {
		if split != nil {
			s.split = split
		}
	}
}

// WithMetrics records every element comparison on c.
func WithMetrics(c metrics.Collector) Option {
	return func(s *selector) {
		if c != nil {
			s.metrics = c
		}
	}
}

func midpoint(left, right int) int {
	return (left + right) / 2
}

// MinMax returns the smallest and largest elements of seq[left..right]
// (inclusive). It uses about 3n/2 comparisons for n elements.
func MinMax[T constraints.Ordered](seq []T, left, right int, options ...Option) (T, T, error) {
	s := &selector{ // Default values
		split:   midpoint,
		metrics: metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(s)
	}

	var zero T
	if len(seq) == 0 {
		return zero, zero, fmt.Errorf("%w: empty sequence", ErrInvalidRange)
	}
	if left > right || left < 0 || right >= len(seq) {
		return zero, zero, fmt.Errorf("%w: [%d, %d] in sequence of length %d", ErrInvalidRange, left, right, len(seq))
	}

	return minMax(s, seq, left, right)
}

func minMax[T constraints.Ordered](s *selector, seq []T, left, right int) (T, T, error) {
	if left == right {
		return seq[left], seq[left], nil
	}

	if right == left+1 {
		s.metrics.AddComparison()
		if seq[left] < seq[right] {
			return seq[left], seq[right], nil
		}
		return seq[right], seq[left], nil
	}

	mid := s.split(left, right)
	if mid < left || mid >= right {
		var zero T
		return zero, zero, fmt.Errorf("%w: split point %d outside [%d, %d)", ErrInvalidRange, mid, left, right)
	}

	min1, max1, err := minMax(s, seq, left, mid)
	if err != nil {
		return min1, max1, err
	}
	min2, max2, err := minMax(s, seq, mid+1, right)
	if err != nil {
		return min2, max2, err
	}

	s.metrics.AddComparison()
	lo := min1
	if min2 < min1 {
		lo = min2
	}
	s.metrics.AddComparison()
	hi := max1
	if max2 > max1 {
		hi = max2
	}
	return lo, hi, nil
}
