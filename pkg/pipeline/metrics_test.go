package pipeline

import (
	"testing"
	"time"
)

func TestLatencyTracker_AverageOnFullWindow(t *testing.T) {
	var gotAvg time.Duration
	var gotWindow int
	calls := 0

	tracker := NewLatencyTracker(4, func(avg time.Duration, window int) {
		gotAvg = avg
		gotWindow = window
		calls++
	})

	tracker.Record(10 * time.Millisecond)
	tracker.Record(20 * time.Millisecond)
	tracker.Record(30 * time.Millisecond)
	if calls != 0 {
		t.Fatalf("Average reported before window filled (%d calls)", calls)
	}

	tracker.Record(40 * time.Millisecond)
	if calls != 1 {
		t.Fatalf("Expected exactly 1 average report, got %d", calls)
	}
	if gotAvg != 25*time.Millisecond {
		t.Errorf("Expected average 25ms, got %v", gotAvg)
	}
	if gotWindow != 4 {
		t.Errorf("Expected window 4, got %d", gotWindow)
	}
}

func TestLatencyTracker_WindowClearsAfterAverage(t *testing.T) {
	tracker := NewLatencyTracker(2, nil)

	tracker.Record(time.Millisecond)
	tracker.Record(time.Millisecond)
	if got := tracker.Pending(); got != 0 {
		t.Errorf("Expected empty window after average, got %d pending", got)
	}

	tracker.Record(time.Millisecond)
	if got := tracker.Pending(); got != 1 {
		t.Errorf("Expected 1 pending sample in new window, got %d", got)
	}
}

func TestLatencyTracker_WindowNeverExceedsSize(t *testing.T) {
	const window = 5
	tracker := NewLatencyTracker(window, nil)

	for i := 0; i < window*10; i++ {
		tracker.Record(time.Millisecond)
		if got := tracker.Pending(); got >= window {
			t.Fatalf("Pending reached %d, window is %d", got, window)
		}
	}
}

func TestLatencyTracker_LastAverage(t *testing.T) {
	tracker := NewLatencyTracker(2, nil)

	if got := tracker.LastAverage(); got != 0 {
		t.Errorf("Expected zero average before any window, got %v", got)
	}

	tracker.Record(10 * time.Millisecond)
	tracker.Record(30 * time.Millisecond)
	if got := tracker.LastAverage(); got != 20*time.Millisecond {
		t.Errorf("Expected 20ms, got %v", got)
	}
}
