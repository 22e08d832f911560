package uiutil

import (
	"image"
	"image/draw"
	"log"
	"time"

	"github.com/jpolvora/drawer/driver"
	"github.com/jpolvora/drawer/util/uiutil/event"
	"github.com/jpolvora/drawer/util/uiutil/widget"
)

type BasicUI struct {
	// DrawFrameRate is read by the move filter goroutine; set it
	// before EventLoop and leave it alone afterwards.
	DrawFrameRate int // frames per second
	RootNode      widget.Node
	Win           driver.Window

	events chan interface{}
	ae     *widget.ApplyEvent
}

func NewBasicUI(winName string, root widget.Node) (*BasicUI, error) {
	win, err := driver.NewWindow()
	if err != nil {
		return nil, err
	}
	win.SetWindowName(winName)

	ui := &BasicUI{
		DrawFrameRate: 60,
		RootNode:      root,
		Win:           win,
		events:        make(chan interface{}, 64),
		ae:            widget.NewApplyEvent(),
	}
	root.Embed().SetWrapperForRoot(root)

	// window event loop with mouse move pacing in between
	events2 := make(chan interface{}, cap(ui.events))
	go ui.Win.EventLoop(events2)
	go MouseMoveFilterLoop(events2, ui.events, &ui.DrawFrameRate)

	return ui, nil
}

func (ui *BasicUI) Close() {
	ui.Win.Close()
}

// EventLoop runs the single UI goroutine. All widget access happens
// here; other goroutines must go through RunOnUIThread.
func (ui *BasicUI) EventLoop() {
	for ev := range ui.events {
		if ui.HandleEvent(ev) {
			return
		}
		ui.paintMarked()
	}
}

// Returns true on close.
func (ui *BasicUI) HandleEvent(ev interface{}) bool {
	switch t := ev.(type) {
	case *event.WindowClose:
		return true
	case *event.WindowResize:
		ui.resizeImage(t.Rect)
	case *event.WindowExpose:
		ui.RootNode.Embed().MarkNeedsPaint()
	case *event.WindowInput:
		ui.ae.Apply(ui.RootNode, t.Event, t.Point)
	case *UIRunFuncEvent:
		t.Func()
	case error:
		log.Println(t)
	default:
		log.Printf("unhandled event: %#v", ev)
	}
	return false
}

func (ui *BasicUI) resizeImage(r image.Rectangle) {
	if err := ui.Win.ResizeImage(r); err != nil {
		log.Println(err)
		return
	}
	en := ui.RootNode.Embed()
	if !en.Bounds.Eq(r) {
		en.Bounds = r
		ui.RootNode.LayoutTree()
		en.MarkNeedsPaint()
	}
}

func (ui *BasicUI) paintMarked() {
	if ui.RootNode.Embed().Bounds.Empty() {
		return // nothing to lay out before the first resize
	}
	ui.RootNode.LayoutMarked()
	r := ui.RootNode.PaintMarked()
	if !r.Empty() {
		if err := ui.Win.PutImage(r); err != nil {
			log.Println(err)
		}
	}
}

func (ui *BasicUI) Image() draw.Image {
	return ui.Win.Image()
}

func (ui *BasicUI) RunOnUIThread(f func()) {
	ui.events <- &UIRunFuncEvent{f}
}

// ScheduleAt runs f on the UI goroutine at time t. Used by animations
// to pace their frame steps.
func (ui *BasicUI) ScheduleAt(t time.Time, f func()) {
	d := time.Until(t)
	if d < 0 {
		d = 0
	}
	time.AfterFunc(d, func() {
		ui.RunOnUIThread(f)
	})
}

type UIRunFuncEvent struct {
	Func func()
}
