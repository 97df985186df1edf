// Package frame defines the captured camera frame and the single-slot
// mailbox that decouples the capture rate from the inference rate.
package frame

import "time"

// Frame is one captured camera image, JPEG-encoded.
// A Frame is immutable once produced.
type Frame struct {
	Data       []byte    // JPEG bytes
	Width      int       // Source width in pixels
	Height     int       // Source height in pixels
	Seq        uint64    // Monotonic capture sequence number
	CapturedAt time.Time // Capture timestamp
}
