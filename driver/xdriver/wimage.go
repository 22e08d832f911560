package xdriver

import (
	"fmt"
	"image"
	"image/draw"
	"sync"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/jpolvora/drawer/util/imageutil"
)

// WImage is the window backing image, sent with ZPixmap puts.
type WImage struct {
	conn   *xgb.Conn
	window xproto.Window
	screen *xproto.ScreenInfo
	gctx   xproto.Gcontext
	img    *imageutil.BGRA
}

func NewWImage(conn *xgb.Conn, window xproto.Window, screen *xproto.ScreenInfo, gctx xproto.Gcontext) *WImage {
	return &WImage{conn: conn, window: window, screen: screen, gctx: gctx, img: imageutil.NewBGRA(image.Rect(0, 0, 1, 1))}
}

func (wi *WImage) Image() draw.Image {
	return wi.img
}

func (wi *WImage) Resize(r image.Rectangle) error {
	wi.img = imageutil.NewBGRA(r)
	return nil
}

func (wi *WImage) PutImage(r image.Rectangle) error {
	r = r.Intersect(wi.img.Bounds())
	if r.Empty() {
		return nil
	}

	// X max data length = (2^16) * 4, need to send it in chunks
	putImgReqSize := 28
	maxReqSize := (1 << 16) * 4
	maxSize := (maxReqSize - putImgReqSize) / 4
	if r.Dx() > maxSize {
		return fmt.Errorf("wimage: dx>max, %v>%v", r.Dx(), maxSize)
	}

	xsize := r.Dx()
	ysize := maxSize / xsize
	chunk := image.Point{xsize, ysize}

	getData := func(minY int) (int, int, int, int, []byte) {
		h := chunk.Y
		if h2 := r.Max.Y - minY; h2 < h {
			h = h2
		}
		data := make([]uint8, chunk.X*h*4)
		for y := 0; y < h; y++ {
			i := y * chunk.X * 4
			j := wi.img.PixOffset(r.Min.X, minY+y)
			copy(data[i:i+chunk.X*4], wi.img.Pix[j:])
		}
		return r.Min.X, minY, chunk.X, h, data
	}

	send := func(x, y, w, h int, data []byte) {
		_ = xproto.PutImage( // unchecked (errors surface in the ev loop)
			wi.conn,
			xproto.ImageFormatZPixmap,
			xproto.Drawable(wi.window),
			wi.gctx,
			uint16(w), uint16(h),
			int16(x), int16(y),
			0, // left pad, must be 0 for ZPixmap format
			wi.screen.RootDepth,
			data)
	}

	wg := sync.WaitGroup{}
	for minY := r.Min.Y; minY < r.Max.Y; minY += chunk.Y {
		wg.Add(1)
		go func(minY int) {
			defer wg.Done()
			send(getData(minY))
		}(minY)
	}
	wg.Wait()

	return nil
}
