package widget

import (
	"image"
	"testing"

	"github.com/jpolvora/drawer/util/uiutil/event"
)

type recNode struct {
	ENode
	name    string
	handle  event.Handle
	applied *[]string
}

func (n *recNode) OnInputEvent(ev interface{}, p image.Point) event.Handle {
	*n.applied = append(*n.applied, n.name)
	return n.handle
}

func TestMarkBubbling(t *testing.T) {
	a := &ENode{}
	b := &ENode{}
	c := &ENode{}
	a.SetWrapperForRoot(a)
	a.Append(b)
	b.Append(c)

	// appends leave pending marks, clear for the test
	a.marks = 0
	b.Embed().marks = 0
	c.Embed().marks = 0

	c.MarkNeedsPaint()
	if !c.Embed().HasAnyMarks(MarkNeedsPaint) {
		t.Fatal("child not marked")
	}
	if !b.Embed().HasAnyMarks(MarkChildNeedsPaint) {
		t.Fatal("mid node missing child mark")
	}
	if !a.HasAnyMarks(MarkChildNeedsPaint) {
		t.Fatal("root missing child mark")
	}
	if a.HasAnyMarks(MarkNeedsPaint) {
		t.Fatal("root should not need paint itself")
	}
}

func TestPaintMarkedDamage(t *testing.T) {
	a := &ENode{}
	b := &ENode{}
	c := &ENode{}
	a.SetWrapperForRoot(a)
	a.Append(b, c)
	a.Bounds = image.Rect(0, 0, 100, 100)
	a.LayoutTree()

	b.Embed().Bounds = image.Rect(0, 0, 50, 100)
	c.Embed().Bounds = image.Rect(50, 0, 100, 100)
	a.marks = 0
	b.Embed().marks = 0
	c.Embed().marks = 0

	c.MarkNeedsPaint()
	u := a.PaintMarked()
	if !u.Eq(c.Embed().Bounds) {
		t.Fatalf("damage %v, want %v", u, c.Embed().Bounds)
	}
	if u2 := a.PaintMarked(); !u2.Empty() {
		t.Fatalf("second pass should be clean, got %v", u2)
	}
}

func TestDispatchReverseOrderAndGrab(t *testing.T) {
	applied := []string{}
	root := &recNode{name: "root", applied: &applied}
	first := &recNode{name: "first", applied: &applied}
	second := &recNode{name: "second", handle: event.Handled, applied: &applied}
	root.SetWrapperForRoot(root)
	root.Append(first, second)
	root.Bounds = image.Rect(0, 0, 10, 10)
	first.Embed().Bounds = root.Bounds
	second.Embed().Bounds = root.Bounds

	ae := NewApplyEvent()
	p := image.Point{5, 5}
	ae.Apply(root, &event.MouseDown{Point: p}, p)

	// later child gets first claim and handles; first child never sees it
	if len(applied) != 1 || applied[0] != "second" {
		t.Fatalf("down dispatch: %v", applied)
	}

	// moves go to the grab even outside any bounds
	applied = applied[:0]
	out := image.Point{500, 500}
	ae.Apply(root, &event.MouseMove{Point: out}, out)
	ae.Apply(root, &event.MouseUp{Point: out}, out)
	if len(applied) != 2 || applied[0] != "second" || applied[1] != "second" {
		t.Fatalf("grab dispatch: %v", applied)
	}

	// grab released after up
	applied = applied[:0]
	ae.Apply(root, &event.MouseMove{Point: out}, out)
	if len(applied) != 0 {
		t.Fatalf("stale grab: %v", applied)
	}
}
