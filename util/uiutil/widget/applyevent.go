package widget

import (
	"image"

	"github.com/jpolvora/drawer/util/uiutil/event"
)

// ApplyEvent routes input events into the node tree. The node that
// handles a mouse down becomes the pointer grab: following moves and
// the release go straight to it even outside its bounds (a drag can
// leave the widget).
type ApplyEvent struct {
	grab Node
}

func NewApplyEvent() *ApplyEvent {
	return &ApplyEvent{}
}

func (ae *ApplyEvent) Apply(root Node, ev interface{}, p image.Point) {
	switch ev.(type) {
	case *event.MouseDown:
		if ae.grab == nil {
			ae.grab = ae.depthFirstEv(root, ev, p)
		}
	case *event.MouseMove:
		if ae.grab != nil {
			ae.grab.OnInputEvent(ev, p)
		} else {
			ae.depthFirstEv(root, ev, p)
		}
	case *event.MouseUp:
		if ae.grab != nil {
			ae.grab.OnInputEvent(ev, p)
			ae.grab = nil
		} else {
			ae.depthFirstEv(root, ev, p)
		}
	default:
		ae.depthFirstEv(root, ev, p)
	}
}

// Depth first, reverse child order: later childs draw over earlier
// ones and get first claim. Returns the handling node, if any.
func (ae *ApplyEvent) depthFirstEv(node Node, ev interface{}, p image.Point) Node {
	if !p.In(node.Embed().Bounds) {
		return nil
	}
	var h Node
	node.Embed().IterateWrappersReverse(func(c Node) bool {
		h = ae.depthFirstEv(c, ev, p)
		return h == nil // continue while not handled
	})
	if h == nil {
		if node.OnInputEvent(ev, p) == event.Handled {
			h = node
		}
	}
	return h
}
