package driver

import (
	"image"
	"image/draw"

	"github.com/jpolvora/drawer/driver/xdriver"
)

// Window is the display surface the UI draws into.
type Window interface {
	Image() draw.Image
	PutImage(image.Rectangle) error
	ResizeImage(image.Rectangle) error
	SetWindowName(string)
	EventLoop(events chan<- interface{})
	Close() error
}

func NewWindow() (Window, error) {
	return xdriver.NewWindow()
}
