package classify

import "testing"

func TestTopK_SortsByProbabilityDescending(t *testing.T) {
	preds := Predictions{
		{Label: "dog", Prob: 0.2},
		{Label: "cat", Prob: 0.7},
		{Label: "bird", Prob: 0.1},
	}

	top := preds.TopK(3, nil)

	want := []string{"cat", "dog", "bird"}
	wantProbs := []float64{0.7, 0.2, 0.1}
	if len(top) != 3 {
		t.Fatalf("Expected 3 predictions, got %d", len(top))
	}
	for i := range top {
		if top[i].Label != want[i] || top[i].Prob != wantProbs[i] {
			t.Errorf("Position %d: expected (%s, %v), got (%s, %v)",
				i, want[i], wantProbs[i], top[i].Label, top[i].Prob)
		}
	}
}

func TestTopK_TruncatesToK(t *testing.T) {
	preds := Predictions{
		{Label: "a", Prob: 0.4},
		{Label: "b", Prob: 0.3},
		{Label: "c", Prob: 0.2},
		{Label: "d", Prob: 0.1},
	}

	top := preds.TopK(3, nil)
	if len(top) != 3 {
		t.Errorf("Expected 3 predictions, got %d", len(top))
	}
	if top[len(top)-1].Label != "c" {
		t.Errorf("Expected lowest kept label c, got %s", top[len(top)-1].Label)
	}
}

func TestTopK_FewerThanK(t *testing.T) {
	preds := Predictions{{Label: "only", Prob: 1.0}}

	top := preds.TopK(3, nil)
	if len(top) != 1 {
		t.Errorf("Expected 1 prediction, got %d", len(top))
	}
}

func TestTopK_TieBreaksByLabel(t *testing.T) {
	preds := Predictions{
		{Label: "zebra", Prob: 0.5},
		{Label: "ant", Prob: 0.5},
	}

	top := preds.TopK(2, nil)
	if top[0].Label != "ant" || top[1].Label != "zebra" {
		t.Errorf("Expected ties ordered by label, got %s then %s", top[0].Label, top[1].Label)
	}
}

func TestTopK_CustomComparator(t *testing.T) {
	preds := Predictions{
		{Label: "zebra", Prob: 0.5},
		{Label: "ant", Prob: 0.5},
	}

	// Reverse tie-break: label descending.
	byLabelDesc := func(a, b Prediction) bool {
		if a.Prob != b.Prob {
			return a.Prob > b.Prob
		}
		return a.Label > b.Label
	}

	top := preds.TopK(2, byLabelDesc)
	if top[0].Label != "zebra" {
		t.Errorf("Expected custom comparator to win ties, got %s first", top[0].Label)
	}
}

func TestTopK_DoesNotMutateInput(t *testing.T) {
	preds := Predictions{
		{Label: "b", Prob: 0.1},
		{Label: "a", Prob: 0.9},
	}

	preds.TopK(1, nil)
	if preds[0].Label != "b" {
		t.Error("TopK mutated its receiver")
	}
}
