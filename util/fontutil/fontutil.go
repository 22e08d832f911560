package fontutil

import (
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/math/fixed"
)

var defFace struct {
	sync.Once
	face font.Face
}

// DefaultFace returns a process-wide truetype face (gomedium, 14pt).
func DefaultFace() font.Face {
	defFace.Do(func() {
		f, err := truetype.Parse(gomedium.TTF)
		if err != nil {
			panic(err) // shipped font data, can't fail
		}
		opt := &truetype.Options{Size: 14, DPI: 72, Hinting: font.HintingFull}
		defFace.face = truetype.NewFace(f, opt)
	})
	return defFace.face
}

// DrawString draws s with the default face, with the baseline at p.
func DrawString(img draw.Image, p image.Point, c color.Color, s string) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: DefaultFace(),
		Dot:  fixed.P(p.X, p.Y),
	}
	d.DrawString(s)
}

// StringSize measures s with the default face.
func StringSize(s string) image.Point {
	adv := font.MeasureString(DefaultFace(), s)
	m := DefaultFace().Metrics()
	return image.Point{adv.Ceil(), (m.Ascent + m.Descent).Ceil()}
}

// StringAscent is the default face's baseline ascent.
func StringAscent() int {
	return DefaultFace().Metrics().Ascent.Ceil()
}
