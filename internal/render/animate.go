package render

import (
	"sync/atomic"
	"time"
)

const (
	// AnimationFrames matches the original 24-frame bar growth.
	AnimationFrames = 24

	// frameInterval approximates a display refresh tick.
	frameInterval = 16 * time.Millisecond
)

// Animator drives a fixed-frame progression from 0 to 1. Each Start
// bumps a generation counter; an in-flight progression checks the
// counter before every frame and stops silently once superseded, so
// two animations never interleave on the same surface.
type Animator struct {
	Frames   int
	Interval time.Duration
	gen      atomic.Uint64
}

func NewAnimator() *Animator {
	return &Animator{Frames: AnimationFrames, Interval: frameInterval}
}

// Start launches a new progression and returns its generation. The
// render callback receives the progress fraction for each frame, the
// last one always exactly 1 unless superseded first.
func (a *Animator) Start(render func(progress float64)) uint64 {
	gen := a.gen.Add(1)
	frames := a.Frames
	if frames <= 0 {
		frames = AnimationFrames
	}
	interval := a.Interval
	if interval <= 0 {
		interval = frameInterval
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for frame := 1; frame <= frames; frame++ {
			<-ticker.C
			if a.gen.Load() != gen {
				return
			}
			render(float64(frame) / float64(frames))
		}
	}()
	return gen
}
