package nullsink

import (
	"image"
	"testing"
)

func TestSink_DiscardsEverything(t *testing.T) {
	sink := New()

	if sink.Enabled() {
		t.Error("expected Enabled to return false")
	}
	if err := sink.SaveScheduleJSON([]byte("{}")); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := sink.SaveRoutesJSON(3, []byte("[]")); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := sink.SaveScheduleChart(image.NewRGBA(image.Rect(0, 0, 1, 1))); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := sink.SaveContactSheet(image.NewRGBA(image.Rect(0, 0, 1, 1))); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
