package imageutil

import (
	"image"
	"image/color"
	"image/draw"
)

// BGRA is an RGBA image with the red/blue channels swapped, matching
// the byte order expected by the X server for 24/32 depth ZPixmap puts.
type BGRA struct {
	image.RGBA
}

func NewBGRA(r image.Rectangle) *BGRA {
	return &BGRA{*image.NewRGBA(r)}
}

func (img *BGRA) Set(x, y int, c color.Color) {
	img.SetRGBA(x, y, color.RGBAModel.Convert(c).(color.RGBA))
}

func (img *BGRA) SetRGBA(x, y int, c color.RGBA) {
	c.R, c.B = c.B, c.R
	img.RGBA.SetRGBA(x, y, c)
}

func (img *BGRA) At(x, y int) color.Color {
	c := img.RGBA.RGBAAt(x, y)
	c.R, c.B = c.B, c.R
	return c
}

func (img *BGRA) SubImage(r image.Rectangle) draw.Image {
	u := img.RGBA.SubImage(r).(*image.RGBA)
	return &BGRA{*u}
}
