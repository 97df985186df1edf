// Package classify provides on-device image classification backends
package classify

// Prediction is one label with its predicted probability.
type Prediction struct {
	Label string  `json:"label"`
	Prob  float64 `json:"prob"` // 0-1
}

// Predictions is the output of one classification call.
type Predictions []Prediction

// Less orders two predictions. Used for top-k selection.
type Less func(a, b Prediction) bool

// ByProbability is the default ordering: probability descending, equal
// probabilities ordered by label so results are deterministic.
func ByProbability(a, b Prediction) bool {
	if a.Prob != b.Prob {
		return a.Prob > b.Prob
	}
	return a.Label < b.Label
}

// Classifier is the interface for classification backends
type Classifier interface {
	// Classify runs the model on a JPEG image and returns all label
	// probabilities, unordered
	Classify(jpeg []byte) (Predictions, error)

	// Close releases resources
	Close() error
}

// Config holds classifier configuration
type Config struct {
	ModelPath   string  // Path to ONNX model
	LabelsPath  string  // Path to labels file (one label per line)
	InputWidth  int     // Model input width
	InputHeight int     // Model input height
	Scale       float64 // Pixel scale factor for blob creation
	SwapRB      bool    // Swap red/blue channels (BGR models)
	Softmax     bool    // Apply softmax to raw model scores
}

// DefaultConfig returns production defaults for SqueezeNet
func DefaultConfig() Config {
	return Config{
		ModelPath:   "models/squeezenet.onnx",
		LabelsPath:  "models/labels.txt",
		InputWidth:  256,
		InputHeight: 256,
		Scale:       1.0 / 255.0,
		SwapRB:      true,
		Softmax:     true,
	}
}
