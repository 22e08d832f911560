package widget

import (
	"image"

	"github.com/jpolvora/drawer/util/uiutil/event"
)

type Node interface {
	fullNode() // keep EmbedNode from being assigned directly to a Node

	Embed() *EmbedNode
	Append(n ...Node)

	Measure(hint image.Point) image.Point

	LayoutMarked()
	LayoutTree()
	Layout() // set childs bounds, don't call childs layout

	PaintMarked() image.Rectangle
	PaintTree()
	Paint()
	ChildsPaintTree()

	OnInputEvent(ev interface{}, p image.Point) event.Handle
}

//----------

// The node other widgets should embed.
type ENode struct {
	EmbedNode
}

func (ENode) fullNode() {}

//----------

type EmbedNode struct {
	Bounds  image.Rectangle
	Wrapper Node
	Parent  *EmbedNode

	marks  Marks
	childs []*EmbedNode
}

func (en *EmbedNode) Embed() *EmbedNode {
	return en
}

// Only the root node needs to set the wrapper explicitly; Append sets
// it for childs.
func (en *EmbedNode) SetWrapperForRoot(n Node) {
	en.Wrapper = n
}

func (en *EmbedNode) Append(nodes ...Node) {
	for _, n := range nodes {
		ne := n.Embed()
		if ne == en {
			panic("appending node to itself")
		}
		if ne.Parent != nil {
			panic("node already has a parent")
		}
		ne.Parent = en
		ne.Wrapper = n
		en.childs = append(en.childs, ne)
	}
	en.MarkNeedsLayoutAndPaint()
}

func (en *EmbedNode) RemoveAll() {
	for _, c := range en.childs {
		c.Parent = nil
	}
	en.childs = nil
	en.MarkNeedsLayoutAndPaint()
}

func (en *EmbedNode) ChildsLen() int {
	return len(en.childs)
}

func (en *EmbedNode) IterateWrappers(f func(Node) bool) {
	for _, c := range en.childs {
		if !f(c.Wrapper) {
			break
		}
	}
}

func (en *EmbedNode) IterateWrappersReverse(f func(Node) bool) {
	for i := len(en.childs) - 1; i >= 0; i-- {
		if !f(en.childs[i].Wrapper) {
			break
		}
	}
}

//----------

func (en *EmbedNode) HasAnyMarks(m Marks) bool {
	return en.marks.HasAny(m)
}

func (en *EmbedNode) MarkNeedsLayout() {
	en.markUp(MarkNeedsLayout)
}
func (en *EmbedNode) MarkNeedsPaint() {
	en.markUp(MarkNeedsPaint)
}
func (en *EmbedNode) MarkNeedsLayoutAndPaint() {
	en.markUp(MarkNeedsLayout | MarkNeedsPaint)
}

func (en *EmbedNode) markUp(m Marks) {
	old := en.marks
	en.marks.Add(m)
	changed := en.marks ^ old
	if en.Parent == nil || changed == 0 {
		return
	}
	var u Marks
	if changed.HasAny(MarkNeedsPaint | MarkChildNeedsPaint) {
		u.Add(MarkChildNeedsPaint)
	}
	if changed.HasAny(MarkNeedsLayout | MarkChildNeedsLayout) {
		u.Add(MarkChildNeedsLayout)
	}
	en.Parent.markUp(u)
}

// ClearTreePaintMarks drops paint marks in the whole subtree. Used by
// containers that skip painting a hidden child.
func (en *EmbedNode) ClearTreePaintMarks() {
	en.marks.Remove(MarkNeedsPaint | MarkChildNeedsPaint)
	for _, c := range en.childs {
		c.ClearTreePaintMarks()
	}
}

//----------

func (en *EmbedNode) Measure(hint image.Point) image.Point {
	var max image.Point
	en.IterateWrappers(func(c Node) bool {
		m := c.Measure(hint)
		if m.X > max.X {
			max.X = m.X
		}
		if m.Y > max.Y {
			max.Y = m.Y
		}
		return true
	})
	return max
}

//----------

func (en *EmbedNode) LayoutMarked() {
	if en.HasAnyMarks(MarkNeedsLayout) {
		en.Wrapper.LayoutTree()
	} else if en.HasAnyMarks(MarkChildNeedsLayout) {
		en.marks.Remove(MarkChildNeedsLayout)
		en.IterateWrappers(func(c Node) bool {
			c.LayoutMarked()
			return true
		})
	}
}

func (en *EmbedNode) LayoutTree() {
	en.marks.Remove(MarkNeedsLayout | MarkChildNeedsLayout)
	en.Wrapper.Layout()
	en.IterateWrappers(func(c Node) bool {
		c.LayoutTree()
		return true
	})
}

// Default layout: childs fill the node bounds.
func (en *EmbedNode) Layout() {
	for _, c := range en.childs {
		cb := c.Bounds
		c.Bounds = en.Bounds
		if !c.Bounds.Eq(cb) {
			c.MarkNeedsPaint()
		}
	}
}

//----------

func (en *EmbedNode) PaintMarked() image.Rectangle {
	u := image.Rectangle{}
	if en.HasAnyMarks(MarkNeedsPaint) {
		en.Wrapper.PaintTree()
		u = u.Union(en.Bounds)
	} else if en.HasAnyMarks(MarkChildNeedsPaint) {
		en.marks.Remove(MarkChildNeedsPaint)
		en.IterateWrappers(func(c Node) bool {
			u = u.Union(c.PaintMarked())
			return true
		})
	}
	return u
}

func (en *EmbedNode) PaintTree() {
	en.marks.Remove(MarkNeedsPaint | MarkChildNeedsPaint)
	en.Wrapper.Paint()
	en.Wrapper.ChildsPaintTree()
}

func (en *EmbedNode) Paint() {
}

func (en *EmbedNode) ChildsPaintTree() {
	en.IterateWrappers(func(c Node) bool {
		c.PaintTree()
		return true
	})
}

//----------

func (en *EmbedNode) OnInputEvent(ev interface{}, p image.Point) event.Handle {
	return event.NotHandled
}

//----------

type Marks uint8

func (m *Marks) Add(u Marks)        { *m |= u }
func (m *Marks) Remove(u Marks)     { *m &^= u }
func (m Marks) HasAny(u Marks) bool { return m&u > 0 }

const (
	MarkNeedsPaint Marks = 1 << iota
	MarkNeedsLayout
	MarkChildNeedsPaint
	MarkChildNeedsLayout
)
