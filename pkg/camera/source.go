package camera

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gocv.io/x/gocv"

	"github.com/edgevision/go-camclass/internal/log"
	"github.com/edgevision/go-camclass/pkg/debug"
	"github.com/edgevision/go-camclass/pkg/frame"
)

// Source captures frames from a webcam device and hands each one to the
// registered callback as it arrives. It produces an infinite stream for
// the life of the process; a stopped source is recreated, not restarted.
//
// The callback runs on the capture goroutine and must not block: the
// intended consumer is a frame.Slot, whose Write never does.
//
// The underlying capture handle is not thread-safe. Once Run has
// started, only the capture goroutine touches the device: runtime
// config updates are parked and applied between reads.
type Source struct {
	device int
	webcam *gocv.VideoCapture
	mat    gocv.Mat // Reused capture target

	mu      sync.Mutex
	quality int
	pending *Config // Config parked for the capture goroutine
	running bool

	seq uint64

	// OnFrame receives every captured frame. Set before calling Run.
	OnFrame func(*frame.Frame)
}

// Open opens the capture device and applies the initial configuration.
func Open(device int, cfg Config) (*Source, error) {
	webcam, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, fmt.Errorf("open capture device %d: %w", device, err)
	}

	s := &Source{
		device:  device,
		webcam:  webcam,
		mat:     gocv.NewMat(),
		quality: cfg.Quality,
	}
	if err := s.Apply(cfg); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// Apply pushes a configuration to the device. Wire this to
// Manager.OnConfigChange for runtime updates.
//
// Before Run starts the config goes straight to the device. After that
// it is parked and the capture goroutine applies it between reads, so
// no Set ever interleaves with a Read on the capture handle.
func (s *Source) Apply(cfg Config) error {
	if errs := cfg.Validate(); len(errs) > 0 {
		return fmt.Errorf("invalid camera config: %v", errs)
	}

	s.mu.Lock()
	s.quality = cfg.Quality
	if s.running {
		s.pending = &cfg
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	s.applyToDevice(cfg)
	return nil
}

// applyToDevice pushes settings to the capture handle. Called from the
// capture goroutine once Run has started.
func (s *Source) applyToDevice(cfg Config) {
	s.webcam.Set(gocv.VideoCaptureFrameWidth, float64(cfg.Width))
	s.webcam.Set(gocv.VideoCaptureFrameHeight, float64(cfg.Height))
	s.webcam.Set(gocv.VideoCaptureFPS, float64(cfg.Framerate))
	if cfg.Brightness != 0 {
		s.webcam.Set(gocv.VideoCaptureBrightness, cfg.Brightness)
	}
	if cfg.Contrast != 0 {
		s.webcam.Set(gocv.VideoCaptureContrast, cfg.Contrast)
	}
	if cfg.Saturation != 0 {
		s.webcam.Set(gocv.VideoCaptureSaturation, cfg.Saturation)
	}
	if cfg.Exposure != 0 {
		s.webcam.Set(gocv.VideoCaptureExposure, cfg.Exposure)
	}
	if cfg.Gain != 0 {
		s.webcam.Set(gocv.VideoCaptureGain, cfg.Gain)
	}

	log.Debug("camera config applied", "device", s.device,
		"width", cfg.Width, "height", cfg.Height, "fps", cfg.Framerate)
}

// takePending returns and clears the parked config, if any.
func (s *Source) takePending() (Config, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return Config{}, false
	}
	cfg := *s.pending
	s.pending = nil
	return cfg, true
}

// Run captures frames until ctx is cancelled. It may be called once.
func (s *Source) Run(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("source already started")
	}
	s.running = true
	s.mu.Unlock()

	log.Info("camera capture running", "device", s.device)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if cfg, ok := s.takePending(); ok {
			s.applyToDevice(cfg)
		}

		if ok := s.webcam.Read(&s.mat); !ok || s.mat.Empty() {
			// Device hiccup. Back off briefly and retry.
			debug.Log("camera read failed on device %d, retrying\n", s.device)
			time.Sleep(10 * time.Millisecond)
			continue
		}

		s.mu.Lock()
		quality := s.quality
		s.mu.Unlock()

		buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, s.mat,
			[]int{gocv.IMWriteJpegQuality, quality})
		if err != nil {
			continue
		}

		s.seq++
		f := &frame.Frame{
			Data:       append([]byte(nil), buf.GetBytes()...),
			Width:      s.mat.Cols(),
			Height:     s.mat.Rows(),
			Seq:        s.seq,
			CapturedAt: time.Now(),
		}
		buf.Close()

		if s.OnFrame != nil {
			s.OnFrame(f)
		}
	}
}

// Close releases the device and the capture buffer. Only call after
// Run has returned.
func (s *Source) Close() error {
	s.mat.Close()
	return s.webcam.Close()
}
