package classify

import "sort"

// TopK returns the k highest-ranked predictions under less, best first.
// The receiver is not modified. A nil less falls back to ByProbability.
func (p Predictions) TopK(k int, less Less) Predictions {
	if less == nil {
		less = ByProbability
	}

	out := make(Predictions, len(p))
	copy(out, p)
	sort.SliceStable(out, func(i, j int) bool {
		return less(out[i], out[j])
	})

	if k < len(out) {
		out = out[:k]
	}
	return out
}
