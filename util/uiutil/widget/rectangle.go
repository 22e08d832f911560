package widget

import (
	"image"
	"image/color"

	"github.com/jpolvora/drawer/util/imageutil"
)

// Rectangle is a colored leaf widget, mostly for backgrounds and tests.
type Rectangle struct {
	ENode
	Size  image.Point
	Color color.Color
	ctx   ImageContext
}

func NewRectangle(ctx ImageContext) *Rectangle {
	return &Rectangle{ctx: ctx}
}

func (r *Rectangle) Measure(hint image.Point) image.Point {
	m := r.Size
	if m.X > hint.X {
		m.X = hint.X
	}
	if m.Y > hint.Y {
		m.Y = hint.Y
	}
	return m
}

func (r *Rectangle) Paint() {
	if r.Color == nil {
		return
	}
	imageutil.FillRectangle(r.ctx.Image(), r.Bounds, r.Color)
}
