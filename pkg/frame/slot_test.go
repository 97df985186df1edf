package frame

import (
	"sync"
	"testing"
	"time"
)

func newFrame(seq uint64) *Frame {
	return &Frame{
		Data:       []byte{0xff, 0xd8, byte(seq)},
		Width:      640,
		Height:     480,
		Seq:        seq,
		CapturedAt: time.Now(),
	}
}

func TestSlot_EmptyReturnsNil(t *testing.T) {
	s := NewSlot()
	if got := s.Latest(); got != nil {
		t.Errorf("Expected nil from empty slot, got seq %d", got.Seq)
	}
}

func TestSlot_LatestReturnsNewest(t *testing.T) {
	s := NewSlot()
	s.Write(newFrame(1))
	s.Write(newFrame(2))
	s.Write(newFrame(3))

	got := s.Latest()
	if got == nil {
		t.Fatal("Expected a frame, got nil")
	}
	if got.Seq != 3 {
		t.Errorf("Expected seq 3, got %d", got.Seq)
	}
}

func TestSlot_ReadIsNonDestructive(t *testing.T) {
	s := NewSlot()
	s.Write(newFrame(7))

	first := s.Latest()
	second := s.Latest()
	if first == nil || second == nil {
		t.Fatal("Expected frames from repeated reads")
	}
	if first.Seq != second.Seq {
		t.Errorf("Repeated reads returned different frames: %d vs %d", first.Seq, second.Seq)
	}
}

func TestSlot_CountsOverwrittenUnreadFrames(t *testing.T) {
	s := NewSlot()

	// Three writes, no reads in between: frames 1 and 2 are dropped.
	s.Write(newFrame(1))
	s.Write(newFrame(2))
	s.Write(newFrame(3))

	consecutive, total := s.Drops()
	if consecutive != 2 {
		t.Errorf("Expected 2 consecutive drops, got %d", consecutive)
	}
	if total != 2 {
		t.Errorf("Expected 2 total drops, got %d", total)
	}

	// A read resets the streak but not the total.
	s.Latest()
	s.Write(newFrame(4))
	consecutive, total = s.Drops()
	if consecutive != 0 {
		t.Errorf("Expected streak reset after read, got %d", consecutive)
	}
	if total != 2 {
		t.Errorf("Expected total unchanged after read, got %d", total)
	}
}

func TestSlot_PeekDoesNotTouchDropAccounting(t *testing.T) {
	s := NewSlot()
	s.Write(newFrame(1))

	// An observer peeking must not mark the frame read: the next
	// overwrite still counts as a drop.
	if f := s.Peek(); f == nil || f.Seq != 1 {
		t.Fatalf("Peek returned %v, want frame 1", f)
	}
	s.Write(newFrame(2))

	consecutive, total := s.Drops()
	if consecutive != 1 || total != 1 {
		t.Errorf("Expected 1/1 drops after peeked overwrite, got %d/%d", consecutive, total)
	}

	// A consuming read still resets the streak.
	s.Latest()
	s.Write(newFrame(3))
	if consecutive, _ := s.Drops(); consecutive != 0 {
		t.Errorf("Expected streak reset after Latest, got %d", consecutive)
	}
}

func TestSlot_PeekEmptyReturnsNil(t *testing.T) {
	s := NewSlot()
	if got := s.Peek(); got != nil {
		t.Errorf("Expected nil from empty slot, got seq %d", got.Seq)
	}
}

func TestSlot_ConcurrentWriteAndRead(t *testing.T) {
	s := NewSlot()

	var wg sync.WaitGroup
	stop := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		for seq := uint64(1); ; seq++ {
			select {
			case <-stop:
				return
			default:
				s.Write(newFrame(seq))
			}
		}
	}()

	// Readers must only ever see monotonically non-decreasing sequence
	// numbers: a read never returns a frame older than a completed write.
	var lastSeq uint64
	for i := 0; i < 10000; i++ {
		if f := s.Latest(); f != nil {
			if f.Seq < lastSeq {
				t.Fatalf("Read went backwards: %d after %d", f.Seq, lastSeq)
			}
			lastSeq = f.Seq
		}
	}

	close(stop)
	wg.Wait()

	if lastSeq == 0 {
		t.Error("Expected at least one frame to be observed")
	}
}
