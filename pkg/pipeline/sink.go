package pipeline

import (
	"sync"
	"time"

	"github.com/edgevision/go-camclass/pkg/classify"
)

// Sink holds the most recent prediction set for the display layer.
//
// Publish is last-write-wins: there is no history. Subscribers are
// notified from one dedicated delivery goroutine through a capacity-1
// overwrite channel, so a slow subscriber never blocks the inference
// loop and only ever observes the newest set.
type Sink struct {
	mu        sync.RWMutex
	current   classify.Predictions
	updatedAt time.Time
	subs      []func(classify.Predictions)
	closed    bool

	notify chan classify.Predictions
	done   chan struct{}
}

// NewSink creates a sink and starts its delivery goroutine.
func NewSink() *Sink {
	s := &Sink{
		notify: make(chan classify.Predictions, 1),
		done:   make(chan struct{}),
	}
	go s.deliver()
	return s
}

// Publish replaces the current prediction set and schedules delivery.
// Never blocks: an undelivered previous set is overwritten.
func (s *Sink) Publish(preds classify.Predictions) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.current = preds
	s.updatedAt = time.Now()
	s.mu.Unlock()

	select {
	case s.notify <- preds:
	default:
		// Drain the stale set, then offer the new one.
		select {
		case <-s.notify:
		default:
		}
		select {
		case s.notify <- preds:
		default:
		}
	}
}

// Current returns the latest published set, or nil if none yet.
func (s *Sink) Current() classify.Predictions {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// UpdatedAt returns when the current set was published.
func (s *Sink) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updatedAt
}

// Subscribe registers an observer invoked on the delivery goroutine for
// each published set. Register subscribers before publishing starts.
func (s *Sink) Subscribe(fn func(classify.Predictions)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Close stops the delivery goroutine. Publish becomes a no-op.
func (s *Sink) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()
	close(s.done)
}

func (s *Sink) deliver() {
	for {
		select {
		case <-s.done:
			return
		case preds := <-s.notify:
			s.mu.RLock()
			subs := s.subs
			s.mu.RUnlock()
			for _, fn := range subs {
				fn(preds)
			}
		}
	}
}
