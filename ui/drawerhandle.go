package ui

import (
	"image"
	"image/color"

	"github.com/jpolvora/drawer/util/fontutil"
	"github.com/jpolvora/drawer/util/imageutil"
	"github.com/jpolvora/drawer/util/uiutil/widget"
)

// DrawerHandle is the draggable affordance. It only draws itself; the
// parent drawer makes all the gesture decisions.
type DrawerHandle struct {
	widget.ENode
	Size       image.Point
	Label      string
	Color      color.Color
	PressColor color.Color
	LabelColor color.Color

	ctx     widget.ImageContext
	pressed bool
}

func NewDrawerHandle(ctx widget.ImageContext) *DrawerHandle {
	return &DrawerHandle{
		ctx:        ctx,
		Size:       image.Point{48, 48},
		Color:      color.RGBA{90, 90, 90, 255},
		PressColor: color.RGBA{130, 130, 130, 255},
		LabelColor: color.White,
	}
}

func (h *DrawerHandle) Measure(hint image.Point) image.Point {
	m := h.Size
	if m.X > hint.X {
		m.X = hint.X
	}
	if m.Y > hint.Y {
		m.Y = hint.Y
	}
	return m
}

func (h *DrawerHandle) SetPressed(v bool) {
	if h.pressed != v {
		h.pressed = v
		h.MarkNeedsPaint()
	}
}

func (h *DrawerHandle) Paint() {
	img := h.ctx.Image()
	c := h.Color
	if h.pressed && h.PressColor != nil {
		c = h.PressColor
	}
	imageutil.FillRectangle(img, h.Bounds, c)
	if h.Label != "" {
		ss := fontutil.StringSize(h.Label)
		p := image.Point{
			h.Bounds.Min.X + (h.Bounds.Dx()-ss.X)/2,
			h.Bounds.Min.Y + (h.Bounds.Dy()-ss.Y)/2 + fontutil.StringAscent(),
		}
		fontutil.DrawString(img, p, h.LabelColor, h.Label)
	}
}
