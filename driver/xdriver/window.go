package xdriver

import (
	"fmt"
	"image"
	"image/draw"
	"log"
	"sync"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/jpolvora/drawer/util/uiutil/event"
)

type Window struct {
	XUtil  *xgbutil.XUtil
	Conn   *xgb.Conn
	Window xproto.Window
	Screen *xproto.ScreenInfo
	GCtx   xproto.Gcontext

	wimg      *WImage
	delWinAtm xproto.Atom
	closeOnce sync.Once
}

func NewWindow() (*Window, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("x conn: %w", err)
	}
	win := &Window{XUtil: xu, Conn: xu.Conn()}
	if err := win.initialize(); err != nil {
		win.Conn.Close()
		return nil, fmt.Errorf("win init: %w", err)
	}
	return win, nil
}

func (win *Window) initialize() error {
	win.Screen = win.XUtil.Screen()

	window, err := xproto.NewWindowId(win.Conn)
	if err != nil {
		return err
	}
	win.Window = window

	var evMask uint32 = 0 |
		xproto.EventMaskStructureNotify |
		xproto.EventMaskExposure |
		xproto.EventMaskPointerMotion |
		xproto.EventMaskButtonPress |
		xproto.EventMaskButtonRelease |
		0
	// mask/values order is defined by the protocol
	mask := uint32(xproto.CwEventMask)
	values := []uint32{evMask}

	_ = xproto.CreateWindow(
		win.Conn,
		win.Screen.RootDepth,
		win.Window,
		win.Screen.Root,
		0, 0, 500, 500,
		0, // border width
		xproto.WindowClassInputOutput,
		win.Screen.RootVisual,
		mask, values)

	_ = xproto.MapWindow(win.Conn, window)

	// graphical context
	gCtx, err := xproto.NewGcontextId(win.Conn)
	if err != nil {
		return err
	}
	win.GCtx = gCtx
	c2 := xproto.CreateGCChecked(win.Conn, win.GCtx, xproto.Drawable(win.Window), 0, nil)
	if err := c2.Check(); err != nil {
		return err
	}

	win.wimg = NewWImage(win.Conn, win.Window, win.Screen, win.GCtx)
	if err := win.wimg.Resize(image.Rect(0, 0, 1, 1)); err != nil {
		return err
	}

	// receive a client message instead of being killed on window close
	atm, err := xprop.Atm(win.XUtil, "WM_DELETE_WINDOW")
	if err != nil {
		return err
	}
	win.delWinAtm = atm
	if err := icccm.WmProtocolsSet(win.XUtil, win.Window, []string{"WM_DELETE_WINDOW"}); err != nil {
		return err
	}

	return nil
}

func (win *Window) Close() error {
	win.closeOnce.Do(func() {
		win.Conn.Close()
	})
	return nil
}

func (win *Window) SetWindowName(str string) {
	if err := ewmh.WmNameSet(win.XUtil, win.Window, str); err != nil {
		log.Printf("set window name: %v", err)
	}
}

func (win *Window) EventLoop(events chan<- interface{}) {
	for {
		ev, xerr := win.Conn.WaitForEvent()
		if ev == nil && xerr == nil {
			events <- &event.WindowClose{}
			return
		}
		if xerr != nil {
			events <- error(xerr)
		}
		if ev != nil {
			win.handleEvent(ev, events)
		}
	}
}

func (win *Window) handleEvent(ev xgb.Event, events chan<- interface{}) {
	switch t := ev.(type) {
	case xproto.ConfigureNotifyEvent: // window structure (position,size,...)
		w, h := int(t.Width), int(t.Height)
		events <- &event.WindowResize{Rect: image.Rect(0, 0, w, h)}
	case xproto.ExposeEvent: // region needs paint
		w, h := int(t.Width), int(t.Height)
		events <- &event.WindowExpose{Rect: image.Rect(0, 0, w, h)}
	case xproto.MapNotifyEvent: // window mapped (created)
	case xproto.ReparentNotifyEvent:
	case xproto.ButtonPressEvent:
		events <- buttonPress(&t)
	case xproto.ButtonReleaseEvent:
		events <- buttonRelease(&t)
	case xproto.MotionNotifyEvent:
		events <- motionNotify(&t)
	case xproto.ClientMessageEvent:
		if t.Format == 32 && xproto.Atom(t.Data.Data32[0]) == win.delWinAtm {
			events <- &event.WindowClose{}
		}
	default:
		log.Printf("unhandled event: %#v", ev)
	}
}

func (win *Window) Image() draw.Image {
	return win.wimg.Image()
}
func (win *Window) PutImage(r image.Rectangle) error {
	return win.wimg.PutImage(r)
}
func (win *Window) ResizeImage(r image.Rectangle) error {
	if !r.Eq(win.Image().Bounds()) {
		return win.wimg.Resize(r)
	}
	return nil
}
