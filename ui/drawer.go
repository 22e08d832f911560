package ui

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"time"

	"github.com/jpolvora/drawer/util/evreg"
	"github.com/jpolvora/drawer/util/imageutil"
	"github.com/jpolvora/drawer/util/mathutil"
	"github.com/jpolvora/drawer/util/uiutil/event"
	"github.com/jpolvora/drawer/util/uiutil/mousefilter"
	"github.com/jpolvora/drawer/util/uiutil/widget"
)

// Drawer EvReg event ids.
const (
	DrawerOpenedEventId = iota
	DrawerClosedEventId
	DrawerScrollStartedEventId
	DrawerScrollEndedEventId
)

type DrawerOpenedEvent struct{}
type DrawerClosedEvent struct{}
type DrawerScrollStartedEvent struct{}
type DrawerScrollEndedEvent struct{}

// Context is what the drawer needs from the host UI: the drawing
// buffer and delayed callbacks delivered on the UI goroutine.
type Context interface {
	widget.ImageContext
	ScheduleAt(t time.Time, f func())
}

// DrawerConf is fixed at construction.
type DrawerConf struct {
	Gravity        Gravity
	TopOffset      int // px inset at the open boundary
	BottomOffset   int // px inset at the closed boundary
	AllowSingleTap bool
	AnimateOnClick bool
	Scale          float64 // density-like factor for the thresholds, 0 means 1
	PlaySound      func()  // tap confirmation, optional
}

// Drawer is a panel attached to a container edge, opened and closed by
// dragging or flinging its handle along one axis. All state is mutated
// on the UI goroutine only, from input events and scheduled animation
// steps.
type Drawer struct {
	widget.ENode
	EvReg *evreg.Register

	Background color.Color

	ctx     Context
	conf    DrawerConf
	th      Thresholds
	handle  *DrawerHandle
	content widget.Node

	expanded  bool
	tracking  bool
	animating bool
	locked    bool
	inScroll  bool

	tk           track
	handleExtent int
	handleSize   image.Point
	touchOffset  int
	vt           mousefilter.VelocityTracker

	mo      motion
	animSeq int // invalidates stale scheduled steps

	cache  *image.RGBA // content snapshot, owned between session start and settle
	damage image.Rectangle

	now func() time.Time
}

func NewDrawer(ctx Context, conf *DrawerConf, handle *DrawerHandle, content widget.Node) *Drawer {
	if handle == nil || content == nil || widget.Node(handle) == content {
		panic("drawer: handle and content must be two distinct nodes")
	}
	d := &Drawer{
		ctx:     ctx,
		conf:    *conf,
		th:      NewThresholds(conf.Scale),
		handle:  handle,
		content: content,
		EvReg:   evreg.NewRegister(),
		now:     time.Now,
	}
	// handle after content: drawn on top, first claim on input
	d.Append(content, handle)
	return d
}

func (d *Drawer) Handle() *DrawerHandle  { return d.handle }
func (d *Drawer) Content() widget.Node   { return d.content }
func (d *Drawer) Thresholds() Thresholds { return d.th }

func (d *Drawer) IsOpened() bool { return d.expanded }
func (d *Drawer) IsMoving() bool { return d.tracking || d.animating }
func (d *Drawer) Locked() bool { return d.locked }
func (d *Drawer) Unlock()      { d.locked = false }

// Lock swallows all pointer input. An in-flight drag or animation ends
// where it stands and the content snapshot is released.
func (d *Drawer) Lock() {
	d.locked = true
	if d.IsMoving() {
		d.endSessionForCommand()
		d.emitScrollEnded()
	}
	d.cache = nil
}

//----------

func (d *Drawer) Layout() {
	b := d.Bounds
	if b.Dx() <= 0 || b.Dy() <= 0 {
		panic("drawer: layout without dimensions")
	}
	if d.tracking || d.animating {
		// geometry is owned by the gesture/animation until it settles
		return
	}

	d.handleSize = d.handle.Measure(b.Size())
	size := b.Dx()
	d.handleExtent = d.handleSize.X
	if d.conf.Gravity.Vertical() {
		size = b.Dy()
		d.handleExtent = d.handleSize.Y
	}
	lo := d.conf.TopOffset
	hi := size - d.handleExtent + d.conf.BottomOffset
	d.tk = newTrack(lo, hi, d.conf.Gravity)

	rest := d.tk.closedRaw
	if d.expanded {
		rest = d.tk.openRaw
	}
	hr := d.handleRect(rest)
	if !d.handle.Bounds.Eq(hr) {
		d.handle.Bounds = hr
		d.handle.MarkNeedsPaint()
	}
	cr := d.contentRectAt(d.handleRect(d.tk.openRaw))
	ce := d.content.Embed()
	if !ce.Bounds.Eq(cr) {
		ce.Bounds = cr
		ce.MarkNeedsPaint()
	}
	d.cache = nil // snapshot is stale after a geometry change
}

// handleRect is the handle bounds for a raw track position, centered
// on the cross axis.
func (d *Drawer) handleRect(raw int) image.Rectangle {
	b := d.Bounds
	if d.conf.Gravity.Vertical() {
		x0 := b.Min.X + (b.Dx()-d.handleSize.X)/2
		y0 := b.Min.Y + raw
		return image.Rect(x0, y0, x0+d.handleSize.X, y0+d.handleExtent)
	}
	y0 := b.Min.Y + (b.Dy()-d.handleSize.Y)/2
	x0 := b.Min.X + raw
	return image.Rect(x0, y0, x0+d.handleExtent, y0+d.handleSize.Y)
}

// contentRectAt anchors the content to a handle position: the content
// trails the handle on its closed side, at full cross axis width.
func (d *Drawer) contentRectAt(hr image.Rectangle) image.Rectangle {
	b := d.Bounds
	if d.conf.Gravity.Vertical() {
		ce := b.Dy() - d.handleExtent - d.conf.TopOffset
		if d.conf.Gravity.openAtMax() {
			return image.Rect(b.Min.X, hr.Min.Y-ce, b.Max.X, hr.Min.Y)
		}
		return image.Rect(b.Min.X, hr.Max.Y, b.Max.X, hr.Max.Y+ce)
	}
	ce := b.Dx() - d.handleExtent - d.conf.TopOffset
	if d.conf.Gravity.openAtMax() {
		return image.Rect(hr.Min.X-ce, b.Min.Y, hr.Min.X, b.Max.Y)
	}
	return image.Rect(hr.Max.X, b.Min.Y, hr.Max.X+ce, b.Max.Y)
}

func (d *Drawer) axisCoord(p image.Point) int {
	if d.conf.Gravity.Vertical() {
		return p.Y
	}
	return p.X
}

func (d *Drawer) handleRaw() int {
	return d.axisCoord(d.handle.Bounds.Min) - d.axisCoord(d.Bounds.Min)
}

func (d *Drawer) currentQ() float64 {
	return d.tk.norm(float64(d.handleRaw()))
}

//----------

func (d *Drawer) OnInputEvent(ev0 interface{}, p image.Point) event.Handle {
	switch ev := ev0.(type) {
	case *event.MouseDown:
		if ev.Button != event.ButtonLeft || !p.In(d.handle.Bounds) {
			return event.NotHandled
		}
		if d.locked {
			// consumed so layers below don't react, but no state change
			return event.Handled
		}
		d.beginDrag(ev)
		return event.Handled
	case *event.MouseMove:
		if !d.tracking {
			return event.NotHandled
		}
		if d.locked {
			return event.Handled
		}
		d.updateDrag(ev)
		return event.Handled
	case *event.MouseUp:
		if !d.tracking {
			return event.NotHandled
		}
		if d.locked {
			return event.Handled
		}
		d.endDrag(ev)
		return event.Handled
	}
	return event.NotHandled
}

func (d *Drawer) beginDrag(ev *event.MouseDown) {
	d.emitScrollStarted()
	d.captureContent()
	d.cancelAnimation()
	d.tracking = true
	d.handle.SetPressed(true)
	d.touchOffset = d.axisCoord(ev.Point) - d.axisCoord(d.handle.Bounds.Min)
	d.vt.Reset()
	d.vt.Add(ev.Point, ev.Time)
}

func (d *Drawer) updateDrag(ev *event.MouseMove) {
	d.vt.Add(ev.Point, ev.Time)
	raw := d.axisCoord(ev.Point) - d.axisCoord(d.Bounds.Min) - d.touchOffset
	d.moveHandleTo(raw)
}

func (d *Drawer) endDrag(ev *event.MouseUp) {
	d.vt.Add(ev.Point, ev.Time)
	vx, vy := d.vt.Velocity()
	f := d.th.VelocityUnits / 1000
	vx, vy = vx*f, vy*f

	primary, cross := vx, vy
	if d.conf.Gravity.Vertical() {
		primary, cross = vy, vx
	}
	velN := d.tk.normVel(primary)
	cross = math.Abs(cross)
	if cross > d.th.MinorVelocity {
		cross = d.th.MinorVelocity
	}
	speed := math.Hypot(velN, cross)
	if velN < 0 {
		speed = -speed
	}

	q := d.currentQ()
	distFromRest := q
	if d.expanded {
		distFromRest = d.tk.span() - q
	}

	d.handle.SetPressed(false)
	d.stopTracking()

	tap := math.Abs(speed) < d.th.TapVelocity && distFromRest < d.th.Tap
	if tap && d.conf.AllowSingleTap {
		if d.conf.PlaySound != nil {
			d.conf.PlaySound()
		}
		d.performFling(speed, true, !d.expanded)
	} else {
		d.performFling(speed, false, false)
	}
}

func (d *Drawer) stopTracking() {
	d.tracking = false
	d.vt.Reset()
}

//----------

// performFling starts the settle animation. A forced fling carries its
// target explicitly; otherwise the release velocity and position
// decide.
func (d *Drawer) performFling(vel float64, forced, forcedOpen bool) {
	q := d.currentQ()
	toOpen := forcedOpen
	if !forced {
		toOpen = flingToOpen(d.expanded, q, vel, d.tk.span(), float64(d.handleExtent), &d.th)
	}
	d.mo = motion{q: q}
	d.mo.seed(toOpen, vel, &d.th)
	d.mo.start(d.now())
	d.animating = true
	d.animSeq++
	d.scheduleStep()
}

func (d *Drawer) scheduleStep() {
	seq := d.animSeq
	d.ctx.ScheduleAt(d.mo.deadline, func() { d.onAnimStep(seq) })
}

func (d *Drawer) onAnimStep(seq int) {
	if !d.animating || seq != d.animSeq {
		return // stale step, that session is over
	}
	switch d.mo.tick(d.now(), d.tk.span()) {
	case tickClosed:
		d.animating = false
		d.closeDrawer()
	case tickOpened:
		d.animating = false
		d.openDrawer()
	default:
		d.moveHandleTo(int(math.Round(d.tk.raw(d.mo.q))))
		d.scheduleStep()
	}
}

func (d *Drawer) cancelAnimation() {
	if d.animating {
		d.animating = false
		d.animSeq++
	}
}

//----------

// moveHandleTo clamp-moves the handle to a raw track position and
// accumulates the minimal damage: both handle rects plus the content
// strips they anchor.
func (d *Drawer) moveHandleTo(raw int) {
	raw = mathutil.LimitInt(raw, d.tk.lo(), d.tk.hi())
	old := d.handle.Bounds
	hr := d.handleRect(raw)
	if hr.Eq(old) {
		return
	}
	d.handle.Bounds = hr
	u := old.Union(hr)
	u = u.Union(d.contentRectAt(old).Intersect(d.Bounds))
	u = u.Union(d.contentRectAt(hr).Intersect(d.Bounds))
	d.addDamage(u)
}

// snapHandle rests the handle exactly at a boundary; rest snaps
// repaint the whole drawer.
func (d *Drawer) snapHandle(open bool) {
	rest := d.tk.closedRaw
	if open {
		rest = d.tk.openRaw
	}
	d.handle.Bounds = d.handleRect(rest)
	d.addDamage(d.Bounds)
}

func (d *Drawer) addDamage(r image.Rectangle) {
	d.damage = d.damage.Union(r.Intersect(d.Bounds))
	d.MarkNeedsPaint()
}

//----------

func (d *Drawer) openDrawer() {
	d.snapHandle(true)
	changed := !d.expanded
	d.expanded = true
	d.MarkNeedsLayoutAndPaint()
	if changed {
		d.EvReg.RunCallbacks(DrawerOpenedEventId, &DrawerOpenedEvent{})
	}
	d.emitScrollEnded()
}

func (d *Drawer) closeDrawer() {
	d.snapHandle(false)
	changed := d.expanded
	d.expanded = false
	d.cache = nil // reclaim the snapshot pixels
	d.MarkNeedsLayoutAndPaint()
	if changed {
		d.EvReg.RunCallbacks(DrawerClosedEventId, &DrawerClosedEvent{})
	}
	d.emitScrollEnded()
}

func (d *Drawer) emitScrollStarted() {
	if d.inScroll {
		return
	}
	d.inScroll = true
	d.EvReg.RunCallbacks(DrawerScrollStartedEventId, &DrawerScrollStartedEvent{})
}

func (d *Drawer) emitScrollEnded() {
	if !d.inScroll {
		return
	}
	d.inScroll = false
	d.EvReg.RunCallbacks(DrawerScrollEndedEventId, &DrawerScrollEndedEvent{})
}

//----------

// Open snaps the drawer fully open. Listeners fire only on an actual
// state change.
func (d *Drawer) Open() {
	d.endSessionForCommand()
	d.openDrawer()
}

func (d *Drawer) Close() {
	d.endSessionForCommand()
	d.closeDrawer()
}

func (d *Drawer) Toggle() {
	if d.expanded {
		d.Close()
	} else {
		d.Open()
	}
}

func (d *Drawer) endSessionForCommand() {
	d.cancelAnimation()
	if d.tracking {
		d.handle.SetPressed(false)
		d.stopTracking()
	}
}

func (d *Drawer) AnimateOpen()  { d.animateTo(true) }
func (d *Drawer) AnimateClose() { d.animateTo(false) }

func (d *Drawer) AnimateToggle() {
	if d.expanded {
		d.AnimateClose()
	} else {
		d.AnimateOpen()
	}
}

func (d *Drawer) animateTo(open bool) {
	if d.locked {
		return
	}
	if open == d.expanded && !d.tracking && !d.animating {
		return
	}
	d.emitScrollStarted()
	d.captureContent()
	d.endSessionForCommand()
	vel := d.th.MaxAcceleration
	if !open {
		vel = -vel
	}
	d.performFling(vel, true, open)
}

// Click toggles the drawer from a handle click, honoring the
// animate-on-click setting.
func (d *Drawer) Click() {
	if d.locked {
		return
	}
	if d.conf.AnimateOnClick {
		d.AnimateToggle()
	} else {
		d.Toggle()
	}
}

//----------

// captureContent snapshots the content as drawn at its open position.
// The main buffer doubles as scratch: the content is painted there,
// copied out, and a repaint is marked so the scratch pixels never
// reach the window (puts happen only after the paint pass).
func (d *Drawer) captureContent() {
	if d.animating {
		return // snapshot still valid mid session
	}
	ce := d.content.Embed()
	ce.Bounds = d.contentRectAt(d.handleRect(d.tk.openRaw))
	d.content.LayoutTree()
	d.content.PaintTree()
	cb := ce.Bounds
	cache := image.NewRGBA(cb)
	draw.Draw(cache, cb, d.ctx.Image(), cb.Min, draw.Src)
	d.cache = cache
	d.MarkNeedsPaint()
}

func (d *Drawer) Paint() {
	img := d.ctx.Image()
	if d.Background != nil {
		imageutil.FillRectangle(img, d.Bounds, d.Background)
	}
	if (d.tracking || d.animating) && d.cache != nil {
		// overlay the snapshot following the handle
		cr := d.contentRectAt(d.handle.Bounds)
		ir := cr.Intersect(d.Bounds)
		if !ir.Empty() {
			sp := d.cache.Bounds().Min.Add(ir.Min.Sub(cr.Min))
			draw.Draw(img, ir, d.cache, sp, draw.Src)
		}
	}
}

func (d *Drawer) ChildsPaintTree() {
	if d.expanded && !d.tracking && !d.animating {
		d.content.PaintTree()
	} else {
		// hidden content must not hold the tree hostage with its marks
		d.content.Embed().ClearTreePaintMarks()
	}
	d.handle.PaintTree()
}

// PaintMarked reports only the accumulated damage instead of the full
// bounds, so puts during motion stay small.
func (d *Drawer) PaintMarked() image.Rectangle {
	if !d.expanded || d.tracking || d.animating {
		d.content.Embed().ClearTreePaintMarks()
	}
	if d.HasAnyMarks(widget.MarkNeedsPaint) {
		d.PaintTree()
		r := d.damage
		d.damage = image.Rectangle{}
		if r.Empty() {
			return d.Bounds
		}
		return r
	}
	return d.ENode.PaintMarked()
}
