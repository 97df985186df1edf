package frame

import "sync"

// Slot is a single-item mailbox with overwrite semantics.
//
// The capture side calls Write for every frame; the inference side calls
// Latest whenever it is ready for one. Writes never block and never queue:
// a frame that was written but never read is simply replaced, and the drop
// counters record it. Latest is non-destructive, so a slow reader sees the
// newest frame, not a backlog.
type Slot struct {
	mu    sync.RWMutex
	frame *Frame
	read  bool // true once the current frame has been observed

	consecutiveDrops uint64 // streak of frames overwritten unread
	totalDrops       uint64 // lifetime overwritten-unread count
}

// NewSlot creates an empty slot.
func NewSlot() *Slot {
	return &Slot{}
}

// Write replaces the held frame. It never blocks on a reader.
func (s *Slot) Write(f *Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.frame != nil && !s.read {
		s.consecutiveDrops++
		s.totalDrops++
	}
	s.frame = f
	s.read = false
}

// Latest returns the most recently written frame, or nil if no frame has
// been written yet. The frame is not removed; repeated calls return the
// same frame until the next Write.
func (s *Slot) Latest() *Frame {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.frame == nil {
		return nil
	}
	if !s.read {
		s.read = true
		s.consecutiveDrops = 0
	}
	return s.frame
}

// Peek returns the most recently written frame, or nil, without
// touching drop accounting. For observer reads (preview snapshots);
// the consuming path uses Latest so the drop streak reflects whether
// the consumer is keeping up.
func (s *Slot) Peek() *Frame {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frame
}

// Drops returns the current unread-overwrite streak and the lifetime total.
func (s *Slot) Drops() (consecutive, total uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.consecutiveDrops, s.totalDrops
}
