package pipeline

import (
	"sync"
	"time"
)

// DefaultLatencyWindow is how many inference durations are averaged
// before the window is reported and cleared.
const DefaultLatencyWindow = 100

// LatencyTracker keeps a bounded rolling window of inference durations.
// When the window fills, the arithmetic mean is handed to the OnAverage
// callback and the window is cleared. It is goroutine-safe, though in
// practice only the inference loop records into it.
type LatencyTracker struct {
	mu        sync.Mutex
	window    int
	samples   []time.Duration
	lastAvg   time.Duration
	onAverage func(avg time.Duration, window int)
}

// NewLatencyTracker creates a tracker with the given window size.
// A window of 0 or less falls back to DefaultLatencyWindow.
func NewLatencyTracker(window int, onAverage func(avg time.Duration, window int)) *LatencyTracker {
	if window <= 0 {
		window = DefaultLatencyWindow
	}
	return &LatencyTracker{
		window:    window,
		samples:   make([]time.Duration, 0, window),
		onAverage: onAverage,
	}
}

// Record adds one duration. On the sample that fills the window the
// average is computed, reported, and the window reset.
func (t *LatencyTracker) Record(d time.Duration) {
	t.mu.Lock()

	t.samples = append(t.samples, d)
	if len(t.samples) < t.window {
		t.mu.Unlock()
		return
	}

	var sum time.Duration
	for _, s := range t.samples {
		sum += s
	}
	avg := sum / time.Duration(len(t.samples))
	t.lastAvg = avg
	t.samples = t.samples[:0]
	fn := t.onAverage
	t.mu.Unlock()

	if fn != nil {
		fn(avg, t.window)
	}
}

// LastAverage returns the most recently completed window average, or 0
// if no window has filled yet.
func (t *LatencyTracker) LastAverage() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastAvg
}

// Pending returns how many samples are in the current window.
func (t *LatencyTracker) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.samples)
}
