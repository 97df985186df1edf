// Package pipeline wires the latest-frame slot to a classifier and
// publishes top-k predictions to a sink.
package pipeline

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/edgevision/go-camclass/internal/log"
	"github.com/edgevision/go-camclass/pkg/classify"
	"github.com/edgevision/go-camclass/pkg/debug"
	"github.com/edgevision/go-camclass/pkg/frame"
)

// State is the inference loop lifecycle state.
type State int32

// Loop states.
const (
	StateIdle State = iota
	StateLoading
	StateRunning
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Loader constructs the classifier when the loop starts. Loading is the
// expensive part (reading model weights), so it happens inside Run rather
// than at wiring time.
type Loader func() (classify.Classifier, error)

// Options tunes the inference loop.
type Options struct {
	Interval      time.Duration // Pause between iterations (default 50ms)
	TopK          int           // How many predictions to publish (default 3)
	Less          classify.Less // Ordering for top-k selection (default ByProbability)
	LatencyWindow int           // Samples per latency average (default 100)
}

// Stats is a snapshot of the loop's counters.
type Stats struct {
	State       string        `json:"state"`
	Inferences  uint64        `json:"inferences"`
	Failures    uint64        `json:"failures"`
	Skips       uint64        `json:"skips"`
	LastLatency time.Duration `json:"last_latency_ns"`
	AvgLatency  time.Duration `json:"avg_latency_ns"`
}

// Loop repeatedly classifies the newest available frame and publishes
// the results.
//
// Each iteration reads the slot, classifies if a frame is present,
// publishes the top-k on success, and sleeps a fixed interval regardless
// of how long inference took. A failed inference is dropped and the
// previous sink value stands. There is no timeout on the classify call
// itself; a hung model stalls the loop.
type Loop struct {
	slot    *frame.Slot
	sink    *Sink
	load    Loader
	opts    Options
	latency *LatencyTracker

	state       atomic.Int32
	inferences  atomic.Uint64
	failures    atomic.Uint64
	skips       atomic.Uint64
	lastLatency atomic.Int64
}

// NewLoop creates an idle loop. Run starts it.
func NewLoop(slot *frame.Slot, sink *Sink, load Loader, opts Options) *Loop {
	if opts.Interval <= 0 {
		opts.Interval = 50 * time.Millisecond
	}
	if opts.TopK <= 0 {
		opts.TopK = 3
	}
	if opts.Less == nil {
		opts.Less = classify.ByProbability
	}

	l := &Loop{
		slot: slot,
		sink: sink,
		load: load,
		opts: opts,
	}
	l.latency = NewLatencyTracker(opts.LatencyWindow, func(avg time.Duration, window int) {
		log.Info("inference latency", "avg", avg.Round(time.Microsecond).String(), "window", window)
	})
	l.state.Store(int32(StateIdle))
	return l
}

// State returns the current lifecycle state.
func (l *Loop) State() State {
	return State(l.state.Load())
}

// Stats returns a snapshot of the loop counters.
func (l *Loop) Stats() Stats {
	return Stats{
		State:       l.State().String(),
		Inferences:  l.inferences.Load(),
		Failures:    l.failures.Load(),
		Skips:       l.skips.Load(),
		LastLatency: time.Duration(l.lastLatency.Load()),
		AvgLatency:  l.latency.LastAverage(),
	}
}

// Run loads the classifier and iterates until ctx is cancelled. A load
// failure is returned immediately, before any iteration; the caller
// decides fatality. Cancellation is cooperative: it is observed at the
// top of each iteration, and an in-flight classify call is never
// interrupted.
func (l *Loop) Run(ctx context.Context) error {
	l.state.Store(int32(StateLoading))

	classifier, err := l.load()
	if err != nil {
		l.state.Store(int32(StateStopped))
		return fmt.Errorf("load model: %w", err)
	}
	defer classifier.Close()

	l.state.Store(int32(StateRunning))
	defer l.state.Store(int32(StateStopped))
	log.Info("inference loop running", "interval", l.opts.Interval.String(), "top_k", l.opts.TopK)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		l.iterate(classifier)

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(l.opts.Interval):
		}
	}
}

// iterate performs one classify-and-publish cycle.
func (l *Loop) iterate(classifier classify.Classifier) {
	f := l.slot.Latest()
	if f == nil {
		// No frame yet: not an error, just nothing to do.
		l.skips.Add(1)
		return
	}

	start := time.Now()
	preds, err := classifier.Classify(f.Data)
	elapsed := time.Since(start)

	if err != nil {
		// No publish; the previous sink value stands.
		l.failures.Add(1)
		debug.VisionLog("⚠️  inference failed: %v\n", err)
		return
	}

	l.sink.Publish(preds.TopK(l.opts.TopK, l.opts.Less))
	l.inferences.Add(1)
	l.lastLatency.Store(int64(elapsed))
	l.latency.Record(elapsed)
}
