package event

import (
	"image"
	"time"
)

//----------

type WindowClose struct{}
type WindowResize struct {
	Rect image.Rectangle
}
type WindowExpose struct {
	Rect image.Rectangle
}
type WindowInput struct {
	Point image.Point
	Event interface{}
}

//----------

type Handle bool

const (
	NotHandled Handle = false
	Handled           = true
)

//----------

// Pointer events carry the wall clock time of the device event; the
// velocity estimator needs it to be consistent across an event burst.

type MouseDown struct {
	Point   image.Point
	Button  MouseButton
	Buttons MouseButtons
	Time    time.Time
}
type MouseUp struct {
	Point   image.Point
	Button  MouseButton
	Buttons MouseButtons
	Time    time.Time
}
type MouseMove struct {
	Point   image.Point
	Buttons MouseButtons
	Time    time.Time
}

//----------

type MouseButton int32

const (
	ButtonNone MouseButton = iota
	ButtonLeft MouseButton = 1 << (iota - 1)
	ButtonMiddle
	ButtonRight
	ButtonWheelUp
	ButtonWheelDown
)

type MouseButtons int32

func (mb MouseButtons) Has(b MouseButton) bool {
	return int32(mb)&int32(b) > 0
}
func (mb MouseButtons) Is(b MouseButton) bool {
	return int32(mb) == int32(b)
}
