package xdriver

import (
	"image"
	"time"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/jpolvora/drawer/util/uiutil/event"
)

// The server timestamps are relative to an unknown origin; events carry
// the local clock instead so the velocity estimator can use them
// directly.

func buttonPress(ev *xproto.ButtonPressEvent) interface{} {
	p := image.Point{int(ev.EventX), int(ev.EventY)}
	ev2 := &event.MouseDown{
		Point:   p,
		Button:  translateButton(ev.Detail),
		Buttons: translateState(ev.State),
		Time:    time.Now(),
	}
	return &event.WindowInput{Point: p, Event: ev2}
}

func buttonRelease(ev *xproto.ButtonReleaseEvent) interface{} {
	p := image.Point{int(ev.EventX), int(ev.EventY)}
	ev2 := &event.MouseUp{
		Point:   p,
		Button:  translateButton(ev.Detail),
		Buttons: translateState(ev.State),
		Time:    time.Now(),
	}
	return &event.WindowInput{Point: p, Event: ev2}
}

func motionNotify(ev *xproto.MotionNotifyEvent) interface{} {
	p := image.Point{int(ev.EventX), int(ev.EventY)}
	ev2 := &event.MouseMove{
		Point:   p,
		Buttons: translateState(ev.State),
		Time:    time.Now(),
	}
	return &event.WindowInput{Point: p, Event: ev2}
}

func translateButton(b xproto.Button) event.MouseButton {
	switch b {
	case 1:
		return event.ButtonLeft
	case 2:
		return event.ButtonMiddle
	case 3:
		return event.ButtonRight
	case 4:
		return event.ButtonWheelUp
	case 5:
		return event.ButtonWheelDown
	}
	return event.ButtonNone
}

func translateState(s uint16) event.MouseButtons {
	var b event.MouseButtons
	if s&xproto.ButtonMask1 > 0 {
		b |= event.MouseButtons(event.ButtonLeft)
	}
	if s&xproto.ButtonMask2 > 0 {
		b |= event.MouseButtons(event.ButtonMiddle)
	}
	if s&xproto.ButtonMask3 > 0 {
		b |= event.MouseButtons(event.ButtonRight)
	}
	if s&xproto.ButtonMask4 > 0 {
		b |= event.MouseButtons(event.ButtonWheelUp)
	}
	if s&xproto.ButtonMask5 > 0 {
		b |= event.MouseButtons(event.ButtonWheelDown)
	}
	return b
}
