package ui

import (
	"image"
	"image/color"
	"image/draw"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/jpolvora/drawer/util/uiutil/event"
	"github.com/jpolvora/drawer/util/uiutil/widget"
)

type testClock struct {
	t time.Time
}

func (c *testClock) Now() time.Time { return c.t }

type scheduledStep struct {
	t time.Time
	f func()
}

type stubContext struct {
	img   draw.Image
	steps []scheduledStep
}

func (c *stubContext) Image() draw.Image { return c.img }
func (c *stubContext) ScheduleAt(t time.Time, f func()) {
	c.steps = append(c.steps, scheduledStep{t, f})
}

// runSteps delivers scheduled callbacks in order, advancing the clock
// to each deadline.
func (c *stubContext) runSteps(t *testing.T, clk *testClock) int {
	n := 0
	for len(c.steps) > 0 {
		s := c.steps[0]
		c.steps = c.steps[1:]
		if s.t.After(clk.t) {
			clk.t = s.t
		}
		s.f()
		n++
		if n > 10000 {
			t.Fatal("animation not converging")
		}
	}
	return n
}

type listenerCounts struct {
	opened, closed, scrollStarted, scrollEnded int
}

func newTestDrawer(t *testing.T, conf *DrawerConf) (*Drawer, *stubContext, *testClock, *listenerCounts) {
	ctx := &stubContext{img: image.NewRGBA(image.Rect(0, 0, 200, 500))}
	h := NewDrawerHandle(ctx)
	h.Size = image.Point{48, 50}
	content := widget.NewRectangle(ctx)
	content.Color = color.RGBA{0, 0, 200, 255}
	d := NewDrawer(ctx, conf, h, content)
	d.SetWrapperForRoot(d)
	d.Bounds = ctx.img.Bounds()
	d.LayoutTree()

	clk := &testClock{t: time.Unix(1000, 0)}
	d.now = clk.Now

	lc := &listenerCounts{}
	d.EvReg.Add(DrawerOpenedEventId, func(interface{}) { lc.opened++ })
	d.EvReg.Add(DrawerClosedEventId, func(interface{}) { lc.closed++ })
	d.EvReg.Add(DrawerScrollStartedEventId, func(interface{}) { lc.scrollStarted++ })
	d.EvReg.Add(DrawerScrollEndedEventId, func(interface{}) { lc.scrollEnded++ })
	return d, ctx, clk, lc
}

func (d *Drawer) feedDown(clk *testClock, p image.Point) event.Handle {
	ev := &event.MouseDown{Point: p, Button: event.ButtonLeft, Time: clk.t}
	return d.OnInputEvent(ev, p)
}
func (d *Drawer) feedMove(clk *testClock, p image.Point) event.Handle {
	ev := &event.MouseMove{Point: p, Buttons: event.MouseButtons(event.ButtonLeft), Time: clk.t}
	return d.OnInputEvent(ev, p)
}
func (d *Drawer) feedUp(clk *testClock, p image.Point) event.Handle {
	ev := &event.MouseUp{Point: p, Button: event.ButtonLeft, Time: clk.t}
	return d.OnInputEvent(ev, p)
}

//----------

func TestDragFlingSession(t *testing.T) {
	// top gravity: closed handle rests at y=0, opens downward
	d, ctx, clk, lc := newTestDrawer(t, &DrawerConf{Gravity: GravityTop})

	if h := d.feedDown(clk, image.Point{100, 25}); h != event.Handled {
		t.Fatal("down not claimed")
	}
	if !d.tracking || d.animating {
		t.Fatalf("after down: tracking=%v animating=%v", d.tracking, d.animating)
	}

	// fast downward drag, ~2000 px/s
	clk.t = clk.t.Add(40 * time.Millisecond)
	d.feedMove(clk, image.Point{100, 105})
	clk.t = clk.t.Add(40 * time.Millisecond)
	d.feedMove(clk, image.Point{100, 185})
	clk.t = clk.t.Add(10 * time.Millisecond)
	d.feedUp(clk, image.Point{100, 205})

	if d.tracking || !d.animating {
		t.Fatalf("after up: tracking=%v animating=%v", d.tracking, d.animating)
	}
	if lc.scrollEnded != 0 {
		t.Fatal("scroll ended before the fling animation concluded")
	}

	ctx.runSteps(t, clk)

	if !d.IsOpened() || d.IsMoving() {
		t.Fatalf("not settled open: %v", spew.Sdump(d.handle.Bounds))
	}
	if d.handle.Bounds.Min.Y != 450 {
		t.Fatalf("handle not at open boundary: %v", d.handle.Bounds)
	}
	if lc.opened != 1 || lc.scrollStarted != 1 || lc.scrollEnded != 1 || lc.closed != 0 {
		t.Fatalf("listener counts: %+v", *lc)
	}
}

func TestTapVsFling(t *testing.T) {
	sounds := 0
	conf := &DrawerConf{
		Gravity:        GravityTop,
		AllowSingleTap: true,
		Scale:          1,
		PlaySound:      func() { sounds++ },
	}

	// 3px at ~30px/s: a tap, toggles open with the confirmation sound
	d, ctx, clk, _ := newTestDrawer(t, conf)
	d.feedDown(clk, image.Point{100, 25})
	clk.t = clk.t.Add(100 * time.Millisecond)
	d.feedMove(clk, image.Point{100, 28})
	clk.t = clk.t.Add(10 * time.Millisecond)
	d.feedUp(clk, image.Point{100, 28})
	ctx.runSteps(t, clk)
	if sounds != 1 {
		t.Fatalf("tap sound: %d", sounds)
	}
	if !d.IsOpened() {
		t.Fatal("tap did not toggle open")
	}

	// 40px at ~50px/s: too far for a tap; the weak fling snaps back
	sounds = 0
	d, ctx, clk, _ = newTestDrawer(t, conf)
	d.feedDown(clk, image.Point{100, 25})
	clk.t = clk.t.Add(400 * time.Millisecond)
	d.feedMove(clk, image.Point{100, 45})
	clk.t = clk.t.Add(400 * time.Millisecond)
	d.feedMove(clk, image.Point{100, 65})
	clk.t = clk.t.Add(10 * time.Millisecond)
	d.feedUp(clk, image.Point{100, 65})
	ctx.runSteps(t, clk)
	if sounds != 0 {
		t.Fatalf("fling sound: %d", sounds)
	}
	if d.IsOpened() {
		t.Fatal("weak fling should have snapped back closed")
	}

	// 40px at ~300px/s: a decisive fling, opens without the sound
	sounds = 0
	d, ctx, clk, _ = newTestDrawer(t, conf)
	d.feedDown(clk, image.Point{100, 25})
	clk.t = clk.t.Add(66 * time.Millisecond)
	d.feedMove(clk, image.Point{100, 45})
	clk.t = clk.t.Add(66 * time.Millisecond)
	d.feedMove(clk, image.Point{100, 65})
	clk.t = clk.t.Add(10 * time.Millisecond)
	d.feedUp(clk, image.Point{100, 68})
	ctx.runSteps(t, clk)
	if sounds != 0 {
		t.Fatalf("fling sound: %d", sounds)
	}
	if !d.IsOpened() {
		t.Fatal("fling did not open")
	}
}

func TestBoundaryClamp(t *testing.T) {
	d, _, clk, _ := newTestDrawer(t, &DrawerConf{Gravity: GravityTop})

	d.feedDown(clk, image.Point{100, 25})
	clk.t = clk.t.Add(10 * time.Millisecond)
	d.feedMove(clk, image.Point{100, 9999})
	if d.handle.Bounds.Min.Y != 450 {
		t.Fatalf("high clamp: %v", d.handle.Bounds)
	}
	clk.t = clk.t.Add(10 * time.Millisecond)
	d.feedMove(clk, image.Point{100, -9999})
	if d.handle.Bounds.Min.Y != 0 {
		t.Fatalf("low clamp: %v", d.handle.Bounds)
	}
}

func TestOpenCloseIdempotent(t *testing.T) {
	d, _, _, lc := newTestDrawer(t, &DrawerConf{Gravity: GravityTop})

	hb := d.handle.Bounds
	d.Close() // already closed
	if lc.closed != 0 || !d.handle.Bounds.Eq(hb) {
		t.Fatalf("close when closed: %+v %v", *lc, d.handle.Bounds)
	}

	d.Open()
	if lc.opened != 1 || !d.IsOpened() {
		t.Fatalf("open: %+v", *lc)
	}
	hb = d.handle.Bounds
	d.Open()
	if lc.opened != 1 || !d.handle.Bounds.Eq(hb) {
		t.Fatalf("open when open: %+v", *lc)
	}

	d.Close()
	d.Close()
	if lc.closed != 1 || d.IsOpened() {
		t.Fatalf("close: %+v", *lc)
	}
}

func TestLockSuppressesMutation(t *testing.T) {
	d, ctx, clk, lc := newTestDrawer(t, &DrawerConf{Gravity: GravityTop, AllowSingleTap: true})
	d.Lock()

	hb := d.handle.Bounds
	if h := d.feedDown(clk, image.Point{100, 25}); h != event.Handled {
		t.Fatal("locked drawer must still consume the event")
	}
	clk.t = clk.t.Add(20 * time.Millisecond)
	d.feedMove(clk, image.Point{100, 200})
	clk.t = clk.t.Add(20 * time.Millisecond)
	d.feedUp(clk, image.Point{100, 300})
	ctx.runSteps(t, clk)

	if d.tracking || d.animating || d.IsOpened() || !d.handle.Bounds.Eq(hb) {
		t.Fatalf("locked state mutated: %v", spew.Sdump(d.handle.Bounds))
	}
	if *lc != (listenerCounts{}) {
		t.Fatalf("locked listeners: %+v", *lc)
	}

	d.Unlock()
	d.feedDown(clk, image.Point{100, 25})
	if !d.tracking {
		t.Fatal("unlock did not restore input")
	}
}

func TestLockMidDragFreezesGesture(t *testing.T) {
	d, ctx, clk, lc := newTestDrawer(t, &DrawerConf{Gravity: GravityTop})

	d.feedDown(clk, image.Point{100, 25})
	clk.t = clk.t.Add(20 * time.Millisecond)
	d.feedMove(clk, image.Point{100, 150})
	hb := d.handle.Bounds

	d.Lock()
	if d.tracking || d.animating {
		t.Fatalf("lock left session running: tracking=%v animating=%v", d.tracking, d.animating)
	}
	if d.cache != nil {
		t.Fatal("snapshot not released on lock")
	}
	if lc.scrollStarted != 1 || lc.scrollEnded != 1 {
		t.Fatalf("scroll session not closed on lock: %+v", *lc)
	}

	// the rest of the gesture must not move anything
	clk.t = clk.t.Add(20 * time.Millisecond)
	d.feedMove(clk, image.Point{100, 350})
	clk.t = clk.t.Add(20 * time.Millisecond)
	d.feedUp(clk, image.Point{100, 400})
	ctx.runSteps(t, clk)

	if !d.handle.Bounds.Eq(hb) {
		t.Fatalf("locked drawer moved: %v -> %v", hb, d.handle.Bounds)
	}
	if d.IsOpened() || d.IsMoving() || lc.opened != 0 {
		t.Fatalf("locked drawer kept going: %+v", *lc)
	}
}

func TestStateExclusivity(t *testing.T) {
	d, ctx, clk, _ := newTestDrawer(t, &DrawerConf{Gravity: GravityTop})

	check := func(when string) {
		if d.tracking && d.animating {
			t.Fatalf("%s: tracking and animating both true", when)
		}
	}

	d.feedDown(clk, image.Point{100, 25})
	check("down")
	clk.t = clk.t.Add(20 * time.Millisecond)
	d.feedMove(clk, image.Point{100, 225})
	check("move")
	clk.t = clk.t.Add(20 * time.Millisecond)
	d.feedUp(clk, image.Point{100, 245})
	check("up")
	d.AnimateClose()
	check("animate close during animation")
	ctx.runSteps(t, clk)
	check("settled")
	if d.IsMoving() {
		t.Fatal("still moving")
	}
}

func TestAnimateCommandSession(t *testing.T) {
	d, ctx, clk, lc := newTestDrawer(t, &DrawerConf{Gravity: GravityTop})

	d.AnimateOpen()
	if !d.animating {
		t.Fatal("not animating")
	}
	ctx.runSteps(t, clk)
	if !d.IsOpened() || lc.opened != 1 || lc.scrollStarted != 1 || lc.scrollEnded != 1 {
		t.Fatalf("animate open: %+v", *lc)
	}

	// no-op when already at the target
	d.AnimateOpen()
	if d.animating {
		t.Fatal("animate open when open should be a no-op")
	}

	d.AnimateClose()
	ctx.runSteps(t, clk)
	if d.IsOpened() || lc.closed != 1 || lc.scrollStarted != 2 || lc.scrollEnded != 2 {
		t.Fatalf("animate close: %+v", *lc)
	}
}

func TestSnapshotLifecycle(t *testing.T) {
	d, ctx, clk, _ := newTestDrawer(t, &DrawerConf{Gravity: GravityTop})

	d.feedDown(clk, image.Point{100, 25})
	if d.cache == nil {
		t.Fatal("no content snapshot after drag start")
	}
	// the snapshot holds the content as painted at its open position
	if !d.cache.Bounds().Eq(d.content.Embed().Bounds) {
		t.Fatalf("snapshot bounds: %v vs %v", d.cache.Bounds(), d.content.Embed().Bounds)
	}

	// fast fling down, then let it settle open: snapshot kept while open
	clk.t = clk.t.Add(30 * time.Millisecond)
	d.feedMove(clk, image.Point{100, 145})
	clk.t = clk.t.Add(10 * time.Millisecond)
	d.feedUp(clk, image.Point{100, 185})
	ctx.runSteps(t, clk)
	if !d.IsOpened() {
		t.Fatal("did not open")
	}

	// closing settles and discards the snapshot
	d.AnimateClose()
	ctx.runSteps(t, clk)
	if d.IsOpened() {
		t.Fatal("did not close")
	}
	if d.cache != nil {
		t.Fatal("snapshot not discarded on close")
	}
}

func TestGrabDuringAnimationContinuesSession(t *testing.T) {
	d, ctx, clk, lc := newTestDrawer(t, &DrawerConf{Gravity: GravityTop})

	d.AnimateOpen()
	// advance a few frames mid flight
	for i := 0; i < 4 && len(ctx.steps) > 0; i++ {
		s := ctx.steps[0]
		ctx.steps = ctx.steps[1:]
		clk.t = s.t
		s.f()
	}
	if !d.animating {
		t.Fatal("expected to still be animating")
	}

	// grab the moving handle: same scroll session continues
	p := d.handle.Bounds.Min.Add(image.Point{10, 10})
	d.feedDown(clk, p)
	if !d.tracking || d.animating {
		t.Fatalf("grab: tracking=%v animating=%v", d.tracking, d.animating)
	}
	clk.t = clk.t.Add(20 * time.Millisecond)
	d.feedUp(clk, p)
	ctx.runSteps(t, clk)

	if d.IsMoving() {
		t.Fatal("still moving after settle")
	}
	if lc.scrollStarted != 1 || lc.scrollEnded != 1 {
		t.Fatalf("scroll session split: %+v", *lc)
	}
}
