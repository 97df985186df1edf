// Package config provides environment-based configuration helpers for
// camclass commands. Flags take precedence over environment variables;
// both fall back to the defaults below.
package config

import (
	"os"
	"strconv"
	"time"
)

// Defaults for the camclass runtime.
const (
	DefaultHTTPPort      = "8420"
	DefaultCameraDevice  = 0
	DefaultModelPath     = "models/squeezenet.onnx"
	DefaultLabelsPath    = "models/labels.txt"
	DefaultTickInterval  = 50 * time.Millisecond
	DefaultLatencyWindow = 100
)

// HTTPPort returns the dashboard port from CAMCLASS_PORT or the default.
func HTTPPort() string {
	if port := os.Getenv("CAMCLASS_PORT"); port != "" {
		return port
	}
	return DefaultHTTPPort
}

// CameraDevice returns the capture device index from CAMCLASS_DEVICE.
// Falls back to device 0 (the first webcam).
func CameraDevice() int {
	if dev := os.Getenv("CAMCLASS_DEVICE"); dev != "" {
		if n, err := strconv.Atoi(dev); err == nil && n >= 0 {
			return n
		}
	}
	return DefaultCameraDevice
}

// ModelPath returns the classifier model path from CAMCLASS_MODEL.
func ModelPath() string {
	if path := os.Getenv("CAMCLASS_MODEL"); path != "" {
		return path
	}
	return DefaultModelPath
}

// LabelsPath returns the labels file path from CAMCLASS_LABELS.
func LabelsPath() string {
	if path := os.Getenv("CAMCLASS_LABELS"); path != "" {
		return path
	}
	return DefaultLabelsPath
}

// LogLevel returns the log level from CAMCLASS_LOG_LEVEL or "info".
func LogLevel() string {
	if lvl := os.Getenv("CAMCLASS_LOG_LEVEL"); lvl != "" {
		return lvl
	}
	return "info"
}
