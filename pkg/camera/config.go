// Package camera provides webcam capture and runtime-configurable
// camera settings for camclass.
package camera

// Config holds all camera configuration parameters.
// These can be modified via the camera API at runtime.
type Config struct {
	// === Resolution ===
	Width     int `json:"width"`     // Frame width in pixels
	Height    int `json:"height"`    // Frame height in pixels
	Framerate int `json:"framerate"` // Target FPS
	Quality   int `json:"quality"`   // JPEG quality 1-100

	// === Image Controls ===
	// All -1.0 to 1.0 style controls are passed straight to the
	// capture backend; 0 means "leave at driver default".
	Brightness float64 `json:"brightness"` // -1.0 to +1.0
	Contrast   float64 `json:"contrast"`   // -1.0 to +1.0
	Saturation float64 `json:"saturation"` // -1.0 to +1.0

	// Exposure is manual exposure; 0 for auto.
	Exposure float64 `json:"exposure"`

	// Gain is manual sensor gain; 0 for auto.
	Gain float64 `json:"gain"`
}

// Capture limits enforced by Validate.
const (
	MaxWidth  = 4096
	MaxHeight = 2160
	MaxFPS    = 120
	MaxGain   = 16.0
)

// DefaultConfig returns the recommended configuration: VGA at 30 fps,
// which keeps JPEG encode and preview streaming cheap.
func DefaultConfig() Config {
	return Config{
		Width:     640,
		Height:    480,
		Framerate: 30,
		Quality:   85,
	}
}

// Validate checks if the config values are within valid ranges.
// Returns a list of validation errors, or nil if valid.
func (c *Config) Validate() []string {
	var errors []string

	if c.Width < 160 || c.Width > MaxWidth {
		errors = append(errors, "width must be between 160 and 4096")
	}
	if c.Height < 120 || c.Height > MaxHeight {
		errors = append(errors, "height must be between 120 and 2160")
	}
	if c.Framerate < 1 || c.Framerate > MaxFPS {
		errors = append(errors, "framerate must be between 1 and 120")
	}
	if c.Quality < 1 || c.Quality > 100 {
		errors = append(errors, "quality must be between 1 and 100")
	}
	if c.Brightness < -1.0 || c.Brightness > 1.0 {
		errors = append(errors, "brightness must be between -1.0 and 1.0")
	}
	if c.Contrast < -1.0 || c.Contrast > 1.0 {
		errors = append(errors, "contrast must be between -1.0 and 1.0")
	}
	if c.Saturation < -1.0 || c.Saturation > 1.0 {
		errors = append(errors, "saturation must be between -1.0 and 1.0")
	}
	if c.Gain != 0 && (c.Gain < 1.0 || c.Gain > MaxGain) {
		errors = append(errors, "gain must be 0 (auto) or between 1.0 and 16.0")
	}

	return errors
}
