package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestSpinnerMessage(t *testing.T) {
	tests := []struct {
		formats []string
		scale   float64
		want    string
	}{
		{[]string{"png"}, 2, "Rasterising PNG at 2x"},
		{[]string{"png"}, 1.5, "Rasterising PNG at 1.5x"},
		{[]string{"pdf"}, 2, "Typesetting PDF"},
		{[]string{"svg", "png", "pdf"}, 3, "Rasterising PNG at 3x, typesetting PDF"},
		{[]string{"svg"}, 2, "Encoding SVG"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.formats, ","), func(t *testing.T) {
			if got := spinnerMessage(tt.formats, tt.scale); got != tt.want {
				t.Errorf("spinnerMessage(%v, %v) = %q, want %q", tt.formats, tt.scale, got, tt.want)
			}
		})
	}
}

func TestSpinnerDrawsAndClears(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(context.Background(), &buf, "Typesetting PDF")
	s.Start()
	time.Sleep(2 * spinnerInterval)
	s.Stop()

	out := buf.String()
	if !strings.Contains(out, "Typesetting PDF") {
		t.Errorf("spinner never drew its message: %q", out)
	}
	if !strings.HasSuffix(out, "\r") {
		t.Errorf("spinner should end by clearing the line: %q", out)
	}
	if s.Interrupted() {
		t.Error("Interrupted() = true after a plain Stop")
	}
}

func TestSpinnerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var buf bytes.Buffer
	s := newSpinner(ctx, &buf, "Rasterising PNG at 2x")
	s.Start()
	cancel()

	select {
	case <-s.stopped:
	case <-time.After(time.Second):
		t.Fatal("spinner kept running after cancellation")
	}
	if !s.Interrupted() {
		t.Error("Interrupted() = false after cancellation")
	}
	s.Stop()
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(context.Background(), &buf, "Typesetting PDF")
	s.Start()
	s.Stop()
	s.Stop()
}
