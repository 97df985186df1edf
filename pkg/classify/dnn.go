package classify

import (
	"fmt"
	"image"
	"math"
	"os"
	"sync"

	"gocv.io/x/gocv"

	"github.com/edgevision/go-camclass/pkg/debug"
)

// DNNClassifier runs a pre-trained classification network via OpenCV's
// DNN module. It supports ONNX models (SqueezeNet, MobileNet, etc.) whose
// output is one score per class.
//
// The decode and input Mats are allocated once and reused for every call,
// so steady-state classification does no per-frame image allocation. The
// mutex serializes calls; only one classification may touch the buffers
// at a time.
type DNNClassifier struct {
	net    gocv.Net
	labels []string
	config Config

	mu      sync.Mutex // Protects inference and the reused buffers
	decoded gocv.Mat   // Reused JPEG decode target
	input   gocv.Mat   // Reused fixed-size model input

	inputSize image.Point
}

// NewDNN loads the model and labels and prepares the reusable buffers.
// A load failure here is terminal for the caller; there is no retry.
func NewDNN(cfg Config) (*DNNClassifier, error) {
	if _, err := os.Stat(cfg.ModelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("model file not found: %s", cfg.ModelPath)
	}

	labels, err := LoadLabels(cfg.LabelsPath)
	if err != nil {
		return nil, fmt.Errorf("load labels: %w", err)
	}

	net := gocv.ReadNet(cfg.ModelPath, "")
	if net.Empty() {
		return nil, fmt.Errorf("failed to load model from %s", cfg.ModelPath)
	}

	net.SetPreferableBackend(gocv.NetBackendDefault)
	net.SetPreferableTarget(gocv.NetTargetCPU)

	return &DNNClassifier{
		net:       net,
		labels:    labels,
		config:    cfg,
		decoded:   gocv.NewMat(),
		input:     gocv.NewMat(),
		inputSize: image.Pt(cfg.InputWidth, cfg.InputHeight),
	}, nil
}

// Classify runs the network on a JPEG image and returns the probability
// for every label, unordered.
func (c *DNNClassifier) Classify(jpeg []byte) (Predictions, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := gocv.IMDecodeIntoMat(jpeg, gocv.IMReadColor, &c.decoded); err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	if c.decoded.Empty() {
		return nil, fmt.Errorf("empty image")
	}

	// Render into the fixed-size input buffer
	gocv.Resize(c.decoded, &c.input, c.inputSize, 0, 0, gocv.InterpolationLinear)

	blob := gocv.BlobFromImage(c.input, c.config.Scale, c.inputSize,
		gocv.NewScalar(0, 0, 0, 0), c.config.SwapRB, false)
	defer blob.Close()

	c.net.SetInput(blob, "")

	output := c.net.Forward("")
	defer output.Close()

	// Output is one row of per-class scores
	scores := make([]float32, output.Total())
	for i := range scores {
		scores[i] = output.GetFloatAt(0, i)
	}
	if len(scores) != len(c.labels) {
		return nil, fmt.Errorf("model produced %d scores for %d labels", len(scores), len(c.labels))
	}

	if c.config.Softmax {
		softmax(scores)
	}

	preds := make(Predictions, len(scores))
	for i, s := range scores {
		preds[i] = Prediction{Label: c.labels[i], Prob: float64(s)}
	}

	debug.VisionLog("🔎 classified %d classes\n", len(preds))

	return preds, nil
}

// Labels returns the label set the model was loaded with.
func (c *DNNClassifier) Labels() []string {
	return c.labels
}

// Close releases the network and the reused buffers.
func (c *DNNClassifier) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.decoded.Close()
	c.input.Close()
	return c.net.Close()
}

// softmax normalizes raw scores into probabilities in place.
func softmax(scores []float32) {
	max := scores[0]
	for _, s := range scores[1:] {
		if s > max {
			max = s
		}
	}

	var sum float64
	for i, s := range scores {
		e := math.Exp(float64(s - max))
		scores[i] = float32(e)
		sum += e
	}
	for i := range scores {
		scores[i] = float32(float64(scores[i]) / sum)
	}
}
