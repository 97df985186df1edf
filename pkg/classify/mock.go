package classify

import "sync"

// Mock implements Classifier for testing.
type Mock struct {
	// ClassifyFunc is called when Classify is invoked. When nil, the
	// canned Result/Err pair is returned instead.
	ClassifyFunc func(jpeg []byte) (Predictions, error)

	// CloseFunc is called when Close is invoked.
	CloseFunc func() error

	// Result and Err are the canned Classify return values.
	Result Predictions
	Err    error

	mu    sync.Mutex
	calls int
}

// NewMock creates a mock that always returns the given predictions.
func NewMock(result Predictions) *Mock {
	return &Mock{Result: result}
}

// Classify returns the canned result or delegates to ClassifyFunc.
func (m *Mock) Classify(jpeg []byte) (Predictions, error) {
	m.mu.Lock()
	m.calls++
	fn := m.ClassifyFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(jpeg)
	}
	return m.Result, m.Err
}

// Close delegates to CloseFunc when set.
func (m *Mock) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// Calls returns how many times Classify was invoked.
func (m *Mock) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
