package ui

import (
	"time"

	"github.com/jpolvora/drawer/util/mathutil"
)

// Base motion constants in density independent pixels (per second for
// the velocities, per second squared for the acceleration). Scaled
// once at construction.
const (
	baseTapDistance     = 6.0
	baseTapVelocity     = 100.0
	baseMinorVelocity   = 150.0
	baseMajorVelocity   = 200.0
	baseMaxAcceleration = 2000.0
	baseVelocityUnits   = 1000.0
)

const frameInterval = time.Second / 60

// Thresholds hold the scaled motion constants, derived once from the
// scale factor and immutable afterwards.
type Thresholds struct {
	Tap             float64 // px, max rest displacement for a tap
	TapVelocity     float64 // px/s, release speed ceiling for a tap
	MinorVelocity   float64 // px/s, cross axis velocity cap
	MajorVelocity   float64 // px/s, decisive fling velocity
	MaxAcceleration float64 // px/s², animation acceleration magnitude
	VelocityUnits   float64 // estimator output scaling (ms per unit)
}

func NewThresholds(scale float64) Thresholds {
	if scale <= 0 {
		scale = 1
	}
	round := func(v float64) float64 { return float64(int(v*scale + 0.5)) }
	return Thresholds{
		Tap:             round(baseTapDistance),
		TapVelocity:     round(baseTapVelocity),
		MinorVelocity:   round(baseMinorVelocity),
		MajorVelocity:   round(baseMajorVelocity),
		MaxAcceleration: round(baseMaxAcceleration),
		VelocityUnits:   round(baseVelocityUnits),
	}
}

//----------

// track maps raw axis coordinates of the handle leading edge into the
// normalized motion frame: q is the distance travelled from the closed
// boundary toward open (q ∈ [0,span]) and positive velocity opens. The
// four gravities reduce to this one frame.
type track struct {
	closedRaw, openRaw int
}

func newTrack(lo, hi int, g Gravity) track {
	if g.openAtMax() {
		return track{closedRaw: lo, openRaw: hi}
	}
	return track{closedRaw: hi, openRaw: lo}
}

func (tk track) dir() float64 {
	if tk.openRaw >= tk.closedRaw {
		return 1
	}
	return -1
}

func (tk track) span() float64 {
	return float64(tk.openRaw-tk.closedRaw) * tk.dir()
}

func (tk track) lo() int {
	if tk.closedRaw < tk.openRaw {
		return tk.closedRaw
	}
	return tk.openRaw
}

func (tk track) hi() int {
	if tk.closedRaw > tk.openRaw {
		return tk.closedRaw
	}
	return tk.openRaw
}

func (tk track) norm(raw float64) float64 {
	return (raw - float64(tk.closedRaw)) * tk.dir()
}

func (tk track) raw(q float64) float64 {
	return float64(tk.closedRaw) + q*tk.dir()
}

func (tk track) normVel(v float64) float64 {
	return v * tk.dir()
}

//----------

type tickResult int

const (
	tickContinue tickResult = iota
	tickOpened
	tickClosed
)

// motion is the constant acceleration animator, in the normalized
// frame. Closed-form kinematics stepped at wall clock intervals, not a
// general integrator.
type motion struct {
	q        float64 // px from closed toward open
	vel      float64 // px/s
	accel    float64 // px/s²
	lastStep time.Time
	deadline time.Time
}

func (m *motion) start(now time.Time) {
	m.lastStep = now
	m.deadline = now.Add(frameInterval)
}

// tick advances the kinematics to now and reports whether a resting
// boundary was crossed. On tickContinue the next deadline is armed;
// re-scheduling is the caller's job.
func (m *motion) tick(now time.Time, span float64) tickResult {
	t := now.Sub(m.lastStep).Seconds()
	m.q += m.vel*t + 0.5*m.accel*t*t
	m.vel += m.accel * t
	m.lastStep = now

	if m.q <= 0 {
		return tickClosed
	}
	if m.q >= span {
		return tickOpened
	}
	m.deadline = m.deadline.Add(frameInterval)
	return tickContinue
}

// seed sets velocity and acceleration for an animation toward open or
// closed. A seed velocity fighting the acceleration is zeroed so a
// contrary release can't cause overshoot oscillation.
func (m *motion) seed(toOpen bool, vel float64, th *Thresholds) {
	vel = mathutil.LimitFloat64(vel, -th.MaxAcceleration, th.MaxAcceleration)
	if toOpen {
		m.accel = th.MaxAcceleration
		if vel < 0 {
			vel = 0
		}
	} else {
		m.accel = -th.MaxAcceleration
		if vel > 0 {
			vel = 0
		}
	}
	m.vel = vel
}

// flingToOpen decides the animation target for a release at position q
// with normalized velocity vel. One formula serves all gravities and
// both rest states; only the "moved past the close point" test differs
// between them.
func flingToOpen(expanded bool, q, vel, span, handleExtent float64, th *Thresholds) bool {
	var pastClose bool
	if expanded {
		pastClose = q < span-handleExtent
	} else {
		pastClose = q < span/2
	}
	towardClosed := vel < -th.MajorVelocity || (pastClose && vel < th.MajorVelocity)
	return !towardClosed
}
