package ui

import "fmt"

// Gravity names the container edge the closed handle rests against.
// It is fixed at construction and determines the active axis and the
// sign convention for "toward open".
type Gravity int

const (
	GravityRight Gravity = iota
	GravityBottom
	GravityLeft
	GravityTop
)

func (g Gravity) Vertical() bool {
	return g == GravityTop || g == GravityBottom
}

// openAtMax reports whether the open resting boundary sits at the high
// axis coordinate (the drawer slides toward increasing x/y to open).
func (g Gravity) openAtMax() bool {
	return g == GravityTop || g == GravityLeft
}

func (g Gravity) String() string {
	switch g {
	case GravityRight:
		return "right"
	case GravityBottom:
		return "bottom"
	case GravityLeft:
		return "left"
	case GravityTop:
		return "top"
	}
	return fmt.Sprintf("gravity(%d)", int(g))
}

func ParseGravity(s string) (Gravity, error) {
	switch s {
	case "right":
		return GravityRight, nil
	case "bottom":
		return GravityBottom, nil
	case "left":
		return GravityLeft, nil
	case "top":
		return GravityTop, nil
	}
	return 0, fmt.Errorf("unknown gravity: %q", s)
}
