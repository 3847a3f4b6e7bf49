package metrics

import (
	"sync/atomic"
	"time"
)

// SearchMetric summarizes the work done by one run of an algorithm.
type SearchMetric struct {
	Duration    time.Duration
	Comparisons int
	Visits      int // Game tree nodes entered
	Cutoffs     int // Branches abandoned by alpha-beta pruning
}

type Collector interface {
	Start()
	AddComparison()
	AddVisit()
	AddCutoff()
	Complete() SearchMetric
}

type collector struct {
	startTime   time.Time
	comparisons atomic.Int32
	visits      atomic.Int32
	cutoffs     atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

// Start resets the counters so a collector can be reused across runs.
func (m *collector) Start() {
	m.startTime = time.Now()
	m.comparisons.Store(0)
	m.visits.Store(0)
	m.cutoffs.Store(0)
}

func (m *collector) AddComparison() {
	m.comparisons.Add(1)
}

func (m *collector) AddVisit() {
	m.visits.Add(1)
}

func (m *collector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Duration:    time.Since(m.startTime),
		Comparisons: int(m.comparisons.Load()),
		Visits:      int(m.visits.Load()),
		Cutoffs:     int(m.cutoffs.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start()                 {}
func (m *dummyCollector) AddComparison()         {}
func (m *dummyCollector) AddVisit()              {}
func (m *dummyCollector) AddCutoff()             {}
func (m *dummyCollector) Complete() SearchMetric { return SearchMetric{} }
