package codec

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/simpledraw/simpledraw/internal/document"
	"github.com/simpledraw/simpledraw/internal/tools"
)

type colorJSON struct {
	A uint8 `json:"a"`
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

type gradientStopJSON struct {
	Color  colorJSON `json:"color"`
	Offset float64   `json:"offset"`
}

type relativePointJSON struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Unit string  `json:"unit"`
}

func toColorJSON(c document.Color) colorJSON {
	return colorJSON{A: c.A, R: c.R, G: c.G, B: c.B}
}

func (c colorJSON) color() document.Color {
	return document.ARGB(c.A, c.R, c.G, c.B)
}

// encoder turns an entity graph into ordered objects. The first failure is
// kept in err and stops further work.
type encoder struct {
	ids  map[document.Entity]string
	next int
	err  error
}

func newEncoder() *encoder {
	return &encoder{ids: make(map[document.Entity]string)}
}

func (e *encoder) entity(v document.Entity) any {
	if e.err != nil {
		return nil
	}
	if id, ok := e.ids[v]; ok {
		return object{{keyRef, id}}
	}
	name, ok := typeName(v)
	if !ok {
		e.err = fmt.Errorf("%w: %T", ErrUnknownType, v)
		return nil
	}
	e.next++
	id := strconv.Itoa(e.next)
	e.ids[v] = id
	return e.members(object{{keyID, id}, {keyType, name}}, v)
}

// isNil reports whether v is unset, including a nil pointer held in an
// interface field such as Brush or Tool.
func isNil(v document.Entity) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// optional appends key only when v is set.
func optional[T document.Entity](e *encoder, o object, key string, v T) object {
	if isNil(v) {
		return o
	}
	return append(o, member{key, e.entity(v)})
}

func encodeList[T document.Entity](e *encoder, key string, list []T) []any {
	out := make([]any, 0, len(list))
	for i, v := range list {
		if isNil(v) {
			if e.err == nil {
				e.err = fmt.Errorf("%s[%d]: %w: nil entry", key, i, ErrTypeMismatch)
			}
			return nil
		}
		out = append(out, e.entity(v))
	}
	return out
}

func (e *encoder) members(o object, v document.Entity) object {
	switch v := v.(type) {
	case *document.Canvas:
		o = append(o,
			member{"width", v.Width},
			member{"height", v.Height},
			member{"items", encodeList(e, "items", v.Items)},
			member{"tools", encodeList(e, "tools", v.Tools)},
		)
		o = optional(e, o, "tool", v.Tool)
	case *document.Point:
		o = append(o, member{"x", v.X}, member{"y", v.Y})
	case *document.SolidColorBrush:
		o = append(o, member{"color", toColorJSON(v.Color)})
	case *document.LinearGradientBrush:
		stops := make([]gradientStopJSON, 0, len(v.GradientStops))
		for _, s := range v.GradientStops {
			stops = append(stops, gradientStopJSON{Color: toColorJSON(s.Color), Offset: s.Offset})
		}
		o = append(o,
			member{"gradientStops", stops},
			member{"spreadMethod", v.SpreadMethod.String()},
			member{"startPoint", relativePointJSON{v.StartPoint.X, v.StartPoint.Y, v.StartPoint.Unit.String()}},
			member{"endPoint", relativePointJSON{v.EndPoint.X, v.EndPoint.Y, v.EndPoint.Unit.String()}},
		)
	case *document.DashStyle:
		o = append(o,
			member{"dashes", append([]float64{}, v.Dashes...)},
			member{"offset", v.Offset},
		)
	case *document.Pen:
		o = optional(e, o, "brush", v.Brush)
		o = append(o, member{"thickness", v.Thickness})
		o = optional(e, o, "dashStyle", v.DashStyle)
	case *document.LineShape:
		o = e.shapeBase(o, &v.ShapeBase)
		o = optional(e, o, "start", v.Start)
		o = optional(e, o, "end", v.End)
	case *document.CubicBezierShape:
		o = e.shapeBase(o, &v.ShapeBase)
		o = optional(e, o, "start", v.Start)
		o = optional(e, o, "point1", v.Point1)
		o = optional(e, o, "point2", v.Point2)
		o = optional(e, o, "point3", v.Point3)
	case *document.QuadraticBezierShape:
		o = e.shapeBase(o, &v.ShapeBase)
		o = optional(e, o, "start", v.Start)
		o = optional(e, o, "control", v.Control)
		o = optional(e, o, "end", v.End)
	case *document.PathShape:
		o = e.shapeBase(o, &v.ShapeBase)
		o = append(o,
			member{"segments", encodeList(e, "segments", v.Segments)},
			member{"isClosed", v.IsClosed},
			member{"fillRule", v.FillRule.String()},
		)
	case *document.RectangleShape:
		o = e.shapeBase(o, &v.ShapeBase)
		o = optional(e, o, "topLeft", v.TopLeft)
		o = optional(e, o, "bottomRight", v.BottomRight)
		o = append(o, member{"radiusX", v.RadiusX}, member{"radiusY", v.RadiusY})
	case *document.EllipseShape:
		o = e.shapeBase(o, &v.ShapeBase)
		o = optional(e, o, "topLeft", v.TopLeft)
		o = optional(e, o, "bottomRight", v.BottomRight)
	case *tools.NoneTool:
	case *tools.SelectionTool:
		o = append(o, member{"hitRadius", v.HitRadius})
	case *tools.LineTool:
		o = e.settings(o, &v.ShapeSettings)
	case *tools.CubicBezierTool:
		o = e.settings(o, &v.ShapeSettings)
	case *tools.QuadraticBezierTool:
		o = e.settings(o, &v.ShapeSettings)
	case *tools.PathTool:
		o = e.settings(o, &v.ShapeSettings)
		o = append(o,
			member{"fillRule", v.FillRule.String()},
			member{"isClosed", v.IsClosed},
			member{"mode", v.Mode.String()},
			member{"previousMode", v.PreviousMode.String()},
		)
	case *tools.RectangleTool:
		o = e.settings(o, &v.ShapeSettings)
		o = append(o, member{"radiusX", v.RadiusX}, member{"radiusY", v.RadiusY})
	case *tools.EllipseTool:
		o = e.settings(o, &v.ShapeSettings)
	}
	return o
}

func (e *encoder) shapeBase(o object, b *document.ShapeBase) object {
	o = append(o, member{"isStroked", b.IsStroked}, member{"isFilled", b.IsFilled})
	o = optional(e, o, "brush", b.Brush)
	return optional(e, o, "pen", b.Pen)
}

func (e *encoder) settings(o object, s *tools.ShapeSettings) object {
	o = optional(e, o, "brush", s.Brush)
	o = optional(e, o, "pen", s.Pen)
	return append(o,
		member{"isStroked", s.IsStroked},
		member{"isFilled", s.IsFilled},
		member{"hitRadius", s.HitRadius},
		member{"tryToConnect", s.TryToConnect},
	)
}
