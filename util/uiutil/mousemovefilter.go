package uiutil

import (
	"github.com/jpolvora/drawer/util/uiutil/event"
	"github.com/jpolvora/drawer/util/uiutil/mousefilter"
)

// MouseMoveFilterLoop paces pointer move events coming from the window
// into the UI loop, sending at most *fps moves per second.
func MouseMoveFilterLoop(in <-chan interface{}, out chan<- interface{}, fps *int) {
	isMoveEv := func(ev interface{}) bool {
		wi, ok := ev.(*event.WindowInput)
		if !ok {
			return false
		}
		_, ok = wi.Event.(*event.MouseMove)
		return ok
	}
	movef := mousefilter.NewMoveFilter(out, fps, isMoveEv)
	for ev := range in {
		movef.Filter(ev)
	}
}
