package camera

import "testing"

// A running source has a live capture goroutine, so Apply must never
// touch the device handle itself; it parks the config for the capture
// goroutine instead. The source here has no device at all, so any
// direct device access in Apply would crash the test.
func TestApply_WhileRunningParksConfig(t *testing.T) {
	s := &Source{running: true, quality: 85}

	cfg := DefaultConfig()
	cfg.Framerate = 15
	cfg.Quality = 60
	if err := s.Apply(cfg); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if s.quality != 60 {
		t.Errorf("Expected quality 60 after Apply, got %d", s.quality)
	}

	got, ok := s.takePending()
	if !ok {
		t.Fatal("Expected a parked config")
	}
	if got.Framerate != 15 {
		t.Errorf("Expected parked framerate 15, got %d", got.Framerate)
	}

	// Parked config is consumed exactly once.
	if _, ok := s.takePending(); ok {
		t.Error("Expected no parked config after take")
	}
}

func TestApply_LatestConfigWins(t *testing.T) {
	s := &Source{running: true}

	first := DefaultConfig()
	first.Framerate = 10
	second := DefaultConfig()
	second.Framerate = 24

	if err := s.Apply(first); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if err := s.Apply(second); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	got, ok := s.takePending()
	if !ok {
		t.Fatal("Expected a parked config")
	}
	if got.Framerate != 24 {
		t.Errorf("Expected newest config to win, got framerate %d", got.Framerate)
	}
}

func TestApply_RejectsInvalidConfig(t *testing.T) {
	s := &Source{running: true}

	cfg := DefaultConfig()
	cfg.Quality = 0
	if err := s.Apply(cfg); err == nil {
		t.Error("Expected error for invalid config")
	}
	if _, ok := s.takePending(); ok {
		t.Error("Invalid config must not be parked")
	}
}
