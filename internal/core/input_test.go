package core

import "testing"

func TestInputFrameActions(t *testing.T) {
	f := NewInputFrame()
	if f.Has(ActionConfirm) {
		t.Error("new frame should be empty")
	}

	f.Set(ActionConfirm)
	f.Click(3, 4)
	if !f.Has(ActionConfirm) {
		t.Error("expected Confirm to be set")
	}
	if len(f.Clicks) != 1 || f.Clicks[0] != (Point{X: 3, Y: 4}) {
		t.Errorf("unexpected clicks %v", f.Clicks)
	}

	clone := f.Clone()
	f.Clear()
	if f.Has(ActionConfirm) || len(f.Clicks) != 0 {
		t.Error("Clear should drop actions and clicks")
	}
	if !clone.Has(ActionConfirm) || len(clone.Clicks) != 1 {
		t.Error("clone should be independent of the original")
	}
}

func TestZeroInputFrame(t *testing.T) {
	var f InputFrame
	if f.Has(ActionHint) {
		t.Error("zero frame should report no actions")
	}
	f.Set(ActionHint)
	if !f.Has(ActionHint) {
		t.Error("Set on zero frame should allocate")
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		action Action
		want   string
	}{
		{ActionConfirm, "Confirm"},
		{ActionHint, "Hint"},
		{ActionNext, "Next"},
		{Action(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.action.String(); got != tt.want {
			t.Errorf("Action(%d).String() = %q, want %q", tt.action, got, tt.want)
		}
	}
}
