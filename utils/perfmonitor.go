package utils

import (
	"sync"
	"time"
)

// PerfStats is a snapshot of scraping performance over the rolling window
type PerfStats struct {
	AvgTime            time.Duration
	MinTime            time.Duration
	MaxTime            time.Duration
	SuccessRate        float64
	TotalRequests      int
	SuccessfulRequests int
	RequestsPerMinute  float64
}

// PerfMonitor tracks page-scrape durations and outcomes over a rolling window
type PerfMonitor struct {
	mu         sync.Mutex
	windowSize int
	durations  []time.Duration
	successes  []bool
	startTime  time.Time
	total      int
	successful int
}

// NewPerfMonitor creates a monitor keeping the last windowSize samples
func NewPerfMonitor(windowSize int) *PerfMonitor {
	if windowSize <= 0 {
		windowSize = 100
	}
	return &PerfMonitor{
		windowSize: windowSize,
		startTime:  time.Now(),
	}
}

// Record adds one scrape outcome
func (m *PerfMonitor) Record(duration time.Duration, success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.durations = append(m.durations, duration)
	m.successes = append(m.successes, success)
	if len(m.durations) > m.windowSize {
		m.durations = m.durations[1:]
		m.successes = m.successes[1:]
	}

	m.total++
	if success {
		m.successful++
	}
}

// Stats computes statistics for the current window
func (m *PerfMonitor) Stats() PerfStats {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.durations) == 0 {
		return PerfStats{}
	}

	var sum time.Duration
	minDur := m.durations[0]
	maxDur := m.durations[0]
	for _, d := range m.durations {
		sum += d
		if d < minDur {
			minDur = d
		}
		if d > maxDur {
			maxDur = d
		}
	}

	succeeded := 0
	for _, ok := range m.successes {
		if ok {
			succeeded++
		}
	}

	elapsedMin := time.Since(m.startTime).Minutes()
	if elapsedMin < 1 {
		elapsedMin = 1
	}

	return PerfStats{
		AvgTime:            sum / time.Duration(len(m.durations)),
		MinTime:            minDur,
		MaxTime:            maxDur,
		SuccessRate:        float64(succeeded) / float64(len(m.successes)),
		TotalRequests:      m.total,
		SuccessfulRequests: m.successful,
		RequestsPerMinute:  float64(m.total) / elapsedMin,
	}
}

// Reset clears all recorded samples and counters
func (m *PerfMonitor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.durations = nil
	m.successes = nil
	m.startTime = time.Now()
	m.total = 0
	m.successful = 0
}
