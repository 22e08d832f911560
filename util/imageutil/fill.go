package imageutil

import (
	"image"
	"image/color"
	"image/draw"
)

func FillRectangle(img draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(img, r.Intersect(img.Bounds()), image.NewUniform(c), image.Point{}, draw.Src)
}
