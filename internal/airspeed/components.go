package airspeed

import "fmt"

// BaseKind tells whether the along-track component opposes or aids travel.
type BaseKind int

const (
	Headwind BaseKind = iota + 1
	Tailwind
)

func (k BaseKind) String() string {
	switch k {
	case Headwind:
		return "Headwind"
	case Tailwind:
		return "Tailwind"
	}
	return "Unknown"
}

// CrossKind tells which side the across-track component pushes from.
type CrossKind int

const (
	LeftCross CrossKind = iota + 1
	RightCross
)

func (k CrossKind) String() string {
	switch k {
	case LeftCross:
		return "Left crosswind"
	case RightCross:
		return "Right crosswind"
	}
	return "Unknown"
}

// BaseComponent is the along-track part of a wind. Magnitude is never
// negative; the direction is carried by Kind.
type BaseComponent struct {
	Kind      BaseKind
	Magnitude float64
}

// Signed returns the component as a scalar, headwind positive.
func (c BaseComponent) Signed() float64 {
	if c.Kind == Tailwind {
		return -c.Magnitude
	}
	return c.Magnitude
}

func (c BaseComponent) String() string {
	return fmt.Sprintf("%s %.2f", c.Kind, c.Magnitude)
}

// CrossComponent is the across-track part of a wind.
type CrossComponent struct {
	Kind      CrossKind
	Magnitude float64
}

// Signed returns the component as a scalar, right crosswind positive.
func (c CrossComponent) Signed() float64 {
	if c.Kind == LeftCross {
		return -c.Magnitude
	}
	return c.Magnitude
}

func (c CrossComponent) String() string {
	return fmt.Sprintf("%s %.2f", c.Kind, c.Magnitude)
}

// WindComponents is the result of resolving a wind against a heading.
type WindComponents struct {
	Base  BaseComponent
	Cross CrossComponent
}

func (w WindComponents) String() string {
	return fmt.Sprintf("%s, %s", w.Base, w.Cross)
}
