package engine

import (
	"context"
	"fmt"
	"time"

	"raycaster/internal/graphics"
	"raycaster/internal/logger"

	"github.com/sirupsen/logrus"
)

// Clock reports monotonic time in seconds
type Clock interface {
	Seconds() float64
}

// SystemClock is a Clock backed by the monotonic wall clock
type SystemClock struct {
	start time.Time
}

// NewSystemClock starts a clock at zero
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

// Seconds since the clock was created
func (c *SystemClock) Seconds() float64 {
	return time.Since(c.start).Seconds()
}

// InputSource reports the intents held for the next frame. quit ends the loop.
type InputSource interface {
	Poll() (in Intents, quit bool)
}

// Presenter shows a finished frame. The framebuffer is reused after Present
// returns.
type Presenter interface {
	Present(fb *graphics.Framebuffer) error
}

// Run steps frames until ctx is cancelled, the input asks to quit or the
// presenter fails. Cancellation is only observed between frames.
func (fl *FrameLoop) Run(ctx context.Context, input InputSource, clock Clock, presenter Presenter) error {
	logger.Log.WithFields(logrus.Fields{
		"width":   fl.fb.Width(),
		"height":  fl.fb.Height(),
		"sprites": len(fl.scene.Sprites),
	}).Info("[FrameLoop] starting")

	frames := 0
	previous := clock.Seconds()
	for {
		select {
		case <-ctx.Done():
			logger.Log.WithField("frames", frames).Info("[FrameLoop] stopped: context done")
			return nil
		default:
		}

		in, quit := input.Poll()
		if quit {
			logger.Log.WithField("frames", frames).Info("[FrameLoop] stopped: quit requested")
			return nil
		}

		now := clock.Seconds()
		elapsed := now - previous
		previous = now

		fb := fl.Step(in, elapsed)
		if err := presenter.Present(fb); err != nil {
			return fmt.Errorf("present frame %d: %w", frames, err)
		}
		frames++
	}
}
