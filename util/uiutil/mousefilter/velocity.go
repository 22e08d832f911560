package mousefilter

import (
	"image"
	"time"
)

// Samples older than this are dropped; the estimate is the average
// velocity over what remains.
const velocityWindow = 100 * time.Millisecond

type velocitySample struct {
	p image.Point
	t time.Time
}

// VelocityTracker estimates pointer velocity from timestamped samples
// over a trailing time window. Zero value is ready to use.
type VelocityTracker struct {
	samples []velocitySample
}

func (vt *VelocityTracker) Add(p image.Point, t time.Time) {
	vt.samples = append(vt.samples, velocitySample{p, t})
	// prune the window from the front
	i := 0
	for ; i < len(vt.samples); i++ {
		if t.Sub(vt.samples[i].t) <= velocityWindow {
			break
		}
	}
	if i > 0 {
		vt.samples = append(vt.samples[:0], vt.samples[i:]...)
	}
}

// Velocity returns the average velocity in px/second over the window.
// Needs at least two samples, otherwise reports zero.
func (vt *VelocityTracker) Velocity() (vx, vy float64) {
	n := len(vt.samples)
	if n < 2 {
		return 0, 0
	}
	first, last := vt.samples[0], vt.samples[n-1]
	dt := last.t.Sub(first.t).Seconds()
	if dt <= 0 {
		return 0, 0
	}
	vx = float64(last.p.X-first.p.X) / dt
	vy = float64(last.p.Y-first.p.Y) / dt
	return vx, vy
}

func (vt *VelocityTracker) Reset() {
	vt.samples = vt.samples[:0]
}
