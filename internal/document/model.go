package document

import (
	"fmt"
	"math"
)

// Point is a mutable position on the canvas. Shapes hold Points by reference,
// so two shapes holding the same *Point move together.
type Point struct {
	X float64
	Y float64
}

func NewPoint(x, y float64) *Point {
	return &Point{X: x, Y: y}
}

// Set moves the point to (x, y).
func (p *Point) Set(x, y float64) {
	p.X = x
	p.Y = y
}

// Translate moves the point by (dx, dy).
func (p *Point) Translate(dx, dy float64) {
	p.X += dx
	p.Y += dy
}

// Within reports whether the point lies within radius of (x, y).
func (p *Point) Within(x, y, radius float64) bool {
	dx := p.X - x
	dy := p.Y - y
	return dx*dx+dy*dy <= radius*radius
}

func (p *Point) Copy(shared Shared) *Point {
	if p == nil {
		return nil
	}
	if c, ok := lookup(shared, p); ok {
		return c
	}
	c := &Point{X: p.X, Y: p.Y}
	shared[p] = c
	return c
}

func (p *Point) Clone(shared Shared) Entity { return p.Copy(shared) }

// Color is an ARGB color with 8 bits per channel.
type Color struct {
	A uint8
	R uint8
	G uint8
	B uint8
}

// ARGB builds a Color from its channels, alpha first.
func ARGB(a, r, g, b uint8) Color {
	return Color{A: a, R: r, G: g, B: b}
}

// Hex renders the color as #rrggbbaa.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// Brush is what a shape is filled with, or a pen strokes with.
// Implemented by *SolidColorBrush and *LinearGradientBrush only.
type Brush interface {
	Entity
	isBrush()
}

// CopyBrush deep-copies b through shared. A nil brush stays nil.
func CopyBrush(b Brush, shared Shared) Brush {
	switch b := b.(type) {
	case *SolidColorBrush:
		if b == nil {
			return nil
		}
		return b.Copy(shared)
	case *LinearGradientBrush:
		if b == nil {
			return nil
		}
		return b.Copy(shared)
	default:
		return nil
	}
}

type SolidColorBrush struct {
	Color Color
}

func NewSolidColorBrush(c Color) *SolidColorBrush {
	return &SolidColorBrush{Color: c}
}

func (*SolidColorBrush) isBrush() {}

func (b *SolidColorBrush) Copy(shared Shared) *SolidColorBrush {
	if b == nil {
		return nil
	}
	if c, ok := lookup(shared, b); ok {
		return c
	}
	c := &SolidColorBrush{Color: b.Color}
	shared[b] = c
	return c
}

func (b *SolidColorBrush) Clone(shared Shared) Entity { return b.Copy(shared) }

// SpreadMethod decides how a gradient paints outside its start/end range.
type SpreadMethod int

const (
	SpreadPad SpreadMethod = iota
	SpreadReflect
	SpreadRepeat
)

var spreadMethodNames = []string{"Pad", "Reflect", "Repeat"}

func (s SpreadMethod) String() string { return enumName(spreadMethodNames, int(s)) }

func ParseSpreadMethod(s string) (SpreadMethod, error) {
	i, err := parseEnum("spread method", spreadMethodNames, s)
	return SpreadMethod(i), err
}

// RelativeUnit tells whether a RelativePoint is in canvas units or is a
// fraction of the painted shape's bounds.
type RelativeUnit int

const (
	UnitAbsolute RelativeUnit = iota
	UnitRelative
)

var relativeUnitNames = []string{"Absolute", "Relative"}

func (u RelativeUnit) String() string { return enumName(relativeUnitNames, int(u)) }

func ParseRelativeUnit(s string) (RelativeUnit, error) {
	i, err := parseEnum("relative unit", relativeUnitNames, s)
	return RelativeUnit(i), err
}

type RelativePoint struct {
	X    float64
	Y    float64
	Unit RelativeUnit
}

// Resolve maps the point into canvas units against the given bounds.
func (p RelativePoint) Resolve(bounds Rect) (float64, float64) {
	if p.Unit == UnitAbsolute {
		return p.X, p.Y
	}
	return bounds.X + p.X*bounds.Width, bounds.Y + p.Y*bounds.Height
}

type GradientStop struct {
	Color  Color
	Offset float64
}

// LinearGradientBrush interpolates GradientStops, in slice order, along the
// line from StartPoint to EndPoint. Renderers expect ascending offsets.
type LinearGradientBrush struct {
	GradientStops []GradientStop
	SpreadMethod  SpreadMethod
	StartPoint    RelativePoint
	EndPoint      RelativePoint
}

func (*LinearGradientBrush) isBrush() {}

func (b *LinearGradientBrush) Copy(shared Shared) *LinearGradientBrush {
	if b == nil {
		return nil
	}
	if c, ok := lookup(shared, b); ok {
		return c
	}
	c := &LinearGradientBrush{
		GradientStops: append([]GradientStop(nil), b.GradientStops...),
		SpreadMethod:  b.SpreadMethod,
		StartPoint:    b.StartPoint,
		EndPoint:      b.EndPoint,
	}
	shared[b] = c
	return c
}

func (b *LinearGradientBrush) Clone(shared Shared) Entity { return b.Copy(shared) }

// DashStyle is an on/off dash pattern in multiples of the pen thickness.
type DashStyle struct {
	Dashes []float64
	Offset float64
}

func (d *DashStyle) Copy(shared Shared) *DashStyle {
	if d == nil {
		return nil
	}
	if c, ok := lookup(shared, d); ok {
		return c
	}
	c := &DashStyle{
		Dashes: append([]float64(nil), d.Dashes...),
		Offset: d.Offset,
	}
	shared[d] = c
	return c
}

func (d *DashStyle) Clone(shared Shared) Entity { return d.Copy(shared) }

type Pen struct {
	Brush     Brush
	Thickness float64
	DashStyle *DashStyle
}

func NewPen(brush Brush, thickness float64) *Pen {
	return &Pen{Brush: brush, Thickness: thickness}
}

func (p *Pen) Copy(shared Shared) *Pen {
	if p == nil {
		return nil
	}
	if c, ok := lookup(shared, p); ok {
		return c
	}
	c := &Pen{Thickness: p.Thickness}
	shared[p] = c
	c.Brush = CopyBrush(p.Brush, shared)
	c.DashStyle = p.DashStyle.Copy(shared)
	return c
}

func (p *Pen) Clone(shared Shared) Entity { return p.Copy(shared) }

// Rect is an axis-aligned bounding box.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Contains checks if a point is inside the rect.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
}

// IsEmpty checks if the rect has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Inflate grows the rect by d on every side.
func (r Rect) Inflate(d float64) Rect {
	return Rect{X: r.X - d, Y: r.Y - d, Width: r.Width + 2*d, Height: r.Height + 2*d}
}

// BoundsOf returns the box spanned by points. A single point yields an empty
// rect at its position.
func BoundsOf(points []*Point) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

func enumName(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return fmt.Sprintf("Unknown(%d)", i)
	}
	return names[i]
}

func parseEnum(kind string, names []string, s string) (int, error) {
	for i, n := range names {
		if n == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q", kind, s)
}
