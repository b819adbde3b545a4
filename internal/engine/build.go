package engine

import (
	"github.com/simpledraw/simpledraw/internal/document"
)

// kappa places cubic control points so four curves approximate an ellipse.
// k = 4 * (sqrt(2) - 1) / 3
const kappa = 0.5522847498

// PathCommand represents a single path segment for rendering.
// Format matches Canvas2D: ["M", x, y], ["L", x, y], ["C", x1, y1, x2, y2, x, y],
// ["Q", cx, cy, x, y], ["Z"].
type PathCommand []any

// ShapePath generates canvas-space path commands for a shape. Shapes with a
// missing point produce no path.
func ShapePath(s document.Shape) []PathCommand {
	for _, p := range s.Points() {
		if p == nil {
			return nil
		}
	}
	switch s := s.(type) {
	case *document.LineShape:
		return []PathCommand{
			{"M", s.Start.X, s.Start.Y},
			{"L", s.End.X, s.End.Y},
		}
	case *document.CubicBezierShape:
		return []PathCommand{
			{"M", s.Start.X, s.Start.Y},
			{"C", s.Point1.X, s.Point1.Y, s.Point2.X, s.Point2.Y, s.Point3.X, s.Point3.Y},
		}
	case *document.QuadraticBezierShape:
		return []PathCommand{
			{"M", s.Start.X, s.Start.Y},
			{"Q", s.Control.X, s.Control.Y, s.End.X, s.End.Y},
		}
	case *document.RectangleShape:
		return rectPath(boxOf(s.TopLeft, s.BottomRight), s.RadiusX, s.RadiusY)
	case *document.EllipseShape:
		return ellipsePath(boxOf(s.TopLeft, s.BottomRight))
	case *document.PathShape:
		return figurePath(s)
	default:
		return nil
	}
}

// boxOf normalizes two opposite corners into a rect.
func boxOf(a, b *document.Point) document.Rect {
	return document.BoundsOf([]*document.Point{a, b})
}

// rectPath generates path commands for a rectangle, rounding the corners
// when both radii are positive.
func rectPath(r document.Rect, rx, ry float64) []PathCommand {
	x0, y0 := r.X, r.Y
	x1, y1 := r.X+r.Width, r.Y+r.Height
	if rx <= 0 || ry <= 0 {
		return []PathCommand{
			{"M", x0, y0},
			{"L", x1, y0},
			{"L", x1, y1},
			{"L", x0, y1},
			{"Z"},
		}
	}
	rx = min(rx, r.Width/2)
	ry = min(ry, r.Height/2)
	kx, ky := rx*kappa, ry*kappa
	return []PathCommand{
		{"M", x0 + rx, y0},
		{"L", x1 - rx, y0},
		{"C", x1 - rx + kx, y0, x1, y0 + ry - ky, x1, y0 + ry},
		{"L", x1, y1 - ry},
		{"C", x1, y1 - ry + ky, x1 - rx + kx, y1, x1 - rx, y1},
		{"L", x0 + rx, y1},
		{"C", x0 + rx - kx, y1, x0, y1 - ry + ky, x0, y1 - ry},
		{"L", x0, y0 + ry},
		{"C", x0, y0 + ry - ky, x0 + rx - kx, y0, x0 + rx, y0},
		{"Z"},
	}
}

// ellipsePath generates path commands for the ellipse inscribed in r using
// four bezier curves.
func ellipsePath(r document.Rect) []PathCommand {
	rx, ry := r.Width/2, r.Height/2
	cx, cy := r.X+rx, r.Y+ry
	kx, ky := rx*kappa, ry*kappa

	return []PathCommand{
		{"M", cx + rx, cy},
		{"C", cx + rx, cy + ky, cx + kx, cy + ry, cx, cy + ry},
		{"C", cx - kx, cy + ry, cx - rx, cy + ky, cx - rx, cy},
		{"C", cx - rx, cy - ky, cx - kx, cy - ry, cx, cy - ry},
		{"C", cx + kx, cy - ry, cx + rx, cy - ky, cx + rx, cy},
		{"Z"},
	}
}

// figurePath chains the segments of a path shape. A segment that does not
// start where the previous one ended begins a new subpath.
func figurePath(p *document.PathShape) []PathCommand {
	var out []PathCommand
	var pen *document.Point
	for _, seg := range p.Segments {
		points := seg.Points()
		if len(points) == 0 || points[0] == nil {
			continue
		}
		if start := points[0]; pen == nil || (start != pen && (start.X != pen.X || start.Y != pen.Y)) {
			out = append(out, PathCommand{"M", start.X, start.Y})
		}
		switch s := seg.(type) {
		case *document.LineShape:
			out = append(out, PathCommand{"L", s.End.X, s.End.Y})
			pen = s.End
		case *document.CubicBezierShape:
			out = append(out, PathCommand{"C", s.Point1.X, s.Point1.Y, s.Point2.X, s.Point2.Y, s.Point3.X, s.Point3.Y})
			pen = s.Point3
		case *document.QuadraticBezierShape:
			out = append(out, PathCommand{"Q", s.Control.X, s.Control.Y, s.End.X, s.End.Y})
			pen = s.End
		default:
			pen = nil
		}
	}
	if p.IsClosed && len(out) > 0 {
		out = append(out, PathCommand{"Z"})
	}
	return out
}
