package debug

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Profiler collects named timing measurements.
type Profiler struct {
	mu           sync.Mutex
	measurements map[string]*Measurement
	maxSamples   int
}

// Measurement holds timing statistics for a profiled section.
type Measurement struct {
	Name  string
	Count uint64
	Total time.Duration
	Min   time.Duration
	Max   time.Duration
	Last  time.Duration

	recent []time.Duration // ring of the last maxSamples timings
	next   int
}

// NewProfiler creates a profiler that keeps the last maxSamples timings of
// each section for percentile estimates.
func NewProfiler(maxSamples int) *Profiler {
	if maxSamples < 1 {
		maxSamples = 1
	}
	return &Profiler{
		measurements: make(map[string]*Measurement),
		maxSamples:   maxSamples,
	}
}

// Start begins timing a named section. Call the returned func to stop.
func (p *Profiler) Start(name string) func() {
	start := time.Now()
	return func() {
		p.Record(name, time.Since(start))
	}
}

// Record stores one timing for name.
func (p *Profiler) Record(name string, elapsed time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	m, exists := p.measurements[name]
	if !exists {
		m = &Measurement{
			Name:   name,
			Min:    elapsed,
			Max:    elapsed,
			recent: make([]time.Duration, 0, p.maxSamples),
		}
		p.measurements[name] = m
	}

	m.Count++
	m.Total += elapsed
	m.Last = elapsed
	if elapsed < m.Min {
		m.Min = elapsed
	}
	if elapsed > m.Max {
		m.Max = elapsed
	}

	if len(m.recent) < p.maxSamples {
		m.recent = append(m.recent, elapsed)
	} else {
		m.recent[m.next] = elapsed
		m.next = (m.next + 1) % p.maxSamples
	}
}

// Measurement returns a copy of the measurement for name.
func (p *Profiler) Measurement(name string) (Measurement, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	m, exists := p.measurements[name]
	if !exists {
		return Measurement{}, false
	}
	c := *m
	c.recent = append([]time.Duration(nil), m.recent...)
	return c, true
}

// Reset clears all measurements.
func (p *Profiler) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.measurements = make(map[string]*Measurement)
}

// Report formats every measurement, sorted by name.
func (p *Profiler) Report() string {
	p.mu.Lock()
	names := make([]string, 0, len(p.measurements))
	for name := range p.measurements {
		names = append(names, name)
	}
	p.mu.Unlock()

	if len(names) == 0 {
		return "No measurements recorded"
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		m, _ := p.Measurement(name)
		fmt.Fprintf(&sb, "%s: count=%d avg=%v min=%v max=%v p95=%v\n",
			name, m.Count, m.Average(), m.Min, m.Max, m.Percentile(95))
	}
	return sb.String()
}

// Average returns the mean time for this measurement.
func (m Measurement) Average() time.Duration {
	if m.Count == 0 {
		return 0
	}
	return m.Total / time.Duration(m.Count)
}

// Percentile estimates the p-th percentile (0..100) from recent timings.
func (m Measurement) Percentile(p float64) time.Duration {
	if len(m.recent) == 0 {
		return 0
	}
	sorted := append([]time.Duration(nil), m.recent...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	index := int(float64(len(sorted)-1) * p / 100.0)
	return sorted[index]
}

// BlockProfiler times audio blocks against the wall-clock time the same
// block would take to play back.
type BlockProfiler struct {
	*Profiler
	sampleRate float64
}

const blockSection = "ProcessBlock"

// NewBlockProfiler creates a profiler for blocks rendered at sampleRate.
func NewBlockProfiler(sampleRate float64) *BlockProfiler {
	return &BlockProfiler{
		Profiler:   NewProfiler(1000),
		sampleRate: sampleRate,
	}
}

// StartBlock begins timing a block of frames. Call the returned func when
// the block is done.
func (b *BlockProfiler) StartBlock() func() {
	return b.Start(blockSection)
}

// Load returns the average processing time of a block of frames as a
// percentage of its playback duration.
func (b *BlockProfiler) Load(frames int) float64 {
	m, ok := b.Measurement(blockSection)
	if !ok || m.Count == 0 || frames <= 0 || b.sampleRate <= 0 {
		return 0
	}
	budget := time.Duration(float64(frames) / b.sampleRate * float64(time.Second))
	if budget <= 0 {
		return 0
	}
	return float64(m.Average()) / float64(budget) * 100.0
}
