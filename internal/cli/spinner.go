package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/baseline/pkg/chart/draw"
	"github.com/matzehuels/baseline/pkg/pipeline"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// spinner animates one status line while raster output renders. It stops
// by itself when ctx is cancelled; Stop clears the line and may be called
// any number of times.
type spinner struct {
	ctx     context.Context
	w       io.Writer
	message string

	once    sync.Once
	quit    chan struct{}
	stopped chan struct{}
}

func newSpinner(ctx context.Context, w io.Writer, message string) *spinner {
	return &spinner{
		ctx:     ctx,
		w:       w,
		message: message,
		quit:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

func (s *spinner) Start() {
	go func() {
		defer close(s.stopped)
		defer s.clear()

		tick := time.NewTicker(spinnerInterval)
		defer tick.Stop()
		for i := 0; ; i++ {
			frame := spinnerFrames[i%len(spinnerFrames)]
			fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
			select {
			case <-s.ctx.Done():
				return
			case <-s.quit:
				return
			case <-tick.C:
			}
		}
	}()
}

// Stop ends the animation and waits for the line to be cleared.
func (s *spinner) Stop() {
	s.once.Do(func() { close(s.quit) })
	<-s.stopped
}

// Interrupted reports whether the render was cancelled under the spinner.
func (s *spinner) Interrupted() bool {
	return s.ctx.Err() != nil
}

func (s *spinner) clear() {
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", len(s.message)+2))
}

// spinnerMessage describes the raster work for formats, e.g.
// "Rasterising PNG at 2x, typesetting PDF". SVG is encoded too fast to
// mention.
func spinnerMessage(formats []string, scale float64) string {
	var steps []string
	for _, f := range formats {
		switch f {
		case pipeline.FormatPNG:
			steps = append(steps, "rasterising PNG at "+draw.FormatNumber(scale)+"x")
		case pipeline.FormatPDF:
			steps = append(steps, "typesetting PDF")
		}
	}
	if len(steps) == 0 {
		return "Encoding SVG"
	}
	msg := strings.Join(steps, ", ")
	return strings.ToUpper(msg[:1]) + msg[1:]
}
