package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/simpledraw/simpledraw/internal/document"
	"github.com/simpledraw/simpledraw/internal/tools"
)

type fields map[string]json.RawMessage

// decoder rebuilds an entity graph. Each object is registered under its $id
// before its members are decoded, and members are visited in the order the
// encoder writes them, so every valid $ref points backwards.
type decoder struct {
	objs map[string]document.Entity
	err  error
}

func newDecoder() *decoder {
	return &decoder{objs: make(map[string]document.Entity)}
}

func isNull(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func (d *decoder) entity(raw json.RawMessage) (document.Entity, error) {
	if isNull(raw) {
		return nil, nil
	}
	var f fields
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	if ref, ok := f[keyRef]; ok {
		var id string
		if err := json.Unmarshal(ref, &id); err != nil {
			return nil, fmt.Errorf("%s: %w", keyRef, err)
		}
		v, ok := d.objs[id]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnresolvedRef, id)
		}
		return v, nil
	}
	rawID, ok := f[keyID]
	if !ok {
		return nil, ErrMissingID
	}
	var id, name string
	if err := json.Unmarshal(rawID, &id); err != nil {
		return nil, fmt.Errorf("%s: %w", keyID, err)
	}
	if err := json.Unmarshal(f[keyType], &name); err != nil {
		return nil, fmt.Errorf("%s: %w", keyType, err)
	}
	v, ok := newEntity(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}
	if _, dup := d.objs[id]; dup {
		return nil, fmt.Errorf("duplicate %s %q", keyID, id)
	}
	d.objs[id] = v
	d.members(f, v)
	if d.err != nil {
		return nil, d.err
	}
	return v, nil
}

func decodeAs[T document.Entity](d *decoder, raw json.RawMessage) (T, error) {
	var zero T
	v, err := d.entity(raw)
	if err != nil || v == nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: unexpected %T", ErrTypeMismatch, v)
	}
	return t, nil
}

// get decodes an optional entity member.
func get[T document.Entity](d *decoder, f fields, key string) T {
	var zero T
	if d.err != nil {
		return zero
	}
	raw, ok := f[key]
	if !ok {
		return zero
	}
	v, err := decodeAs[T](d, raw)
	if err != nil {
		d.err = fmt.Errorf("%s: %w", key, err)
		return zero
	}
	return v
}

func getList[T document.Entity](d *decoder, f fields, key string) []T {
	if d.err != nil {
		return nil
	}
	var raws []json.RawMessage
	d.value(f, key, &raws)
	var out []T
	for i, raw := range raws {
		if isNull(raw) {
			d.err = fmt.Errorf("%s[%d]: %w: null entry", key, i, ErrTypeMismatch)
			return nil
		}
		v, err := decodeAs[T](d, raw)
		if err != nil {
			d.err = fmt.Errorf("%s[%d]: %w", key, i, err)
			return nil
		}
		out = append(out, v)
	}
	return out
}

func getEnum[E any](d *decoder, f fields, key string, parse func(string) (E, error)) E {
	var zero E
	var s string
	d.value(f, key, &s)
	if d.err != nil || s == "" {
		return zero
	}
	v, err := parse(s)
	if err != nil {
		d.err = fmt.Errorf("%s: %w", key, err)
		return zero
	}
	return v
}

// value decodes a plain member into dst. Missing members leave dst alone.
func (d *decoder) value(f fields, key string, dst any) {
	if d.err != nil {
		return
	}
	raw, ok := f[key]
	if !ok {
		return
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		d.err = fmt.Errorf("%s: %w", key, err)
	}
}

func (d *decoder) relativePoint(f fields, key string) document.RelativePoint {
	var rp relativePointJSON
	d.value(f, key, &rp)
	if d.err != nil {
		return document.RelativePoint{}
	}
	p := document.RelativePoint{X: rp.X, Y: rp.Y}
	if rp.Unit != "" {
		unit, err := document.ParseRelativeUnit(rp.Unit)
		if err != nil {
			d.err = fmt.Errorf("%s: %w", key, err)
		}
		p.Unit = unit
	}
	return p
}

func (d *decoder) members(f fields, v document.Entity) {
	switch v := v.(type) {
	case *document.Canvas:
		d.value(f, "width", &v.Width)
		d.value(f, "height", &v.Height)
		v.Items = getList[document.Entity](d, f, "items")
		v.Tools = getList[document.Tool](d, f, "tools")
		v.Tool = get[document.Tool](d, f, "tool")
		if d.err == nil && v.Tool != nil && !slices.Contains(v.Tools, v.Tool) {
			d.err = fmt.Errorf("tool: %w: %s is not a registered tool", ErrTypeMismatch, v.Tool.Name())
		}
	case *document.Point:
		d.value(f, "x", &v.X)
		d.value(f, "y", &v.Y)
	case *document.SolidColorBrush:
		var c colorJSON
		d.value(f, "color", &c)
		v.Color = c.color()
	case *document.LinearGradientBrush:
		var stops []gradientStopJSON
		d.value(f, "gradientStops", &stops)
		for _, s := range stops {
			v.GradientStops = append(v.GradientStops, document.GradientStop{Color: s.Color.color(), Offset: s.Offset})
		}
		v.SpreadMethod = getEnum(d, f, "spreadMethod", document.ParseSpreadMethod)
		v.StartPoint = d.relativePoint(f, "startPoint")
		v.EndPoint = d.relativePoint(f, "endPoint")
	case *document.DashStyle:
		d.value(f, "dashes", &v.Dashes)
		d.value(f, "offset", &v.Offset)
	case *document.Pen:
		v.Brush = get[document.Brush](d, f, "brush")
		d.value(f, "thickness", &v.Thickness)
		v.DashStyle = get[*document.DashStyle](d, f, "dashStyle")
	case *document.LineShape:
		d.shapeBase(f, &v.ShapeBase)
		v.Start = get[*document.Point](d, f, "start")
		v.End = get[*document.Point](d, f, "end")
	case *document.CubicBezierShape:
		d.shapeBase(f, &v.ShapeBase)
		v.Start = get[*document.Point](d, f, "start")
		v.Point1 = get[*document.Point](d, f, "point1")
		v.Point2 = get[*document.Point](d, f, "point2")
		v.Point3 = get[*document.Point](d, f, "point3")
	case *document.QuadraticBezierShape:
		d.shapeBase(f, &v.ShapeBase)
		v.Start = get[*document.Point](d, f, "start")
		v.Control = get[*document.Point](d, f, "control")
		v.End = get[*document.Point](d, f, "end")
	case *document.PathShape:
		d.shapeBase(f, &v.ShapeBase)
		v.Segments = getList[document.Shape](d, f, "segments")
		d.value(f, "isClosed", &v.IsClosed)
		v.FillRule = getEnum(d, f, "fillRule", document.ParseFillRule)
	case *document.RectangleShape:
		d.shapeBase(f, &v.ShapeBase)
		v.TopLeft = get[*document.Point](d, f, "topLeft")
		v.BottomRight = get[*document.Point](d, f, "bottomRight")
		d.value(f, "radiusX", &v.RadiusX)
		d.value(f, "radiusY", &v.RadiusY)
	case *document.EllipseShape:
		d.shapeBase(f, &v.ShapeBase)
		v.TopLeft = get[*document.Point](d, f, "topLeft")
		v.BottomRight = get[*document.Point](d, f, "bottomRight")
	case *tools.NoneTool:
	case *tools.SelectionTool:
		d.value(f, "hitRadius", &v.HitRadius)
	case *tools.LineTool:
		v.ShapeSettings = d.settings(f)
	case *tools.CubicBezierTool:
		v.ShapeSettings = d.settings(f)
	case *tools.QuadraticBezierTool:
		v.ShapeSettings = d.settings(f)
	case *tools.PathTool:
		v.ShapeSettings = d.settings(f)
		v.FillRule = getEnum(d, f, "fillRule", document.ParseFillRule)
		d.value(f, "isClosed", &v.IsClosed)
		v.Mode = getEnum(d, f, "mode", tools.ParsePathMode)
		v.PreviousMode = getEnum(d, f, "previousMode", tools.ParsePathMode)
	case *tools.RectangleTool:
		v.ShapeSettings = d.settings(f)
		d.value(f, "radiusX", &v.RadiusX)
		d.value(f, "radiusY", &v.RadiusY)
	case *tools.EllipseTool:
		v.ShapeSettings = d.settings(f)
	}
}

func (d *decoder) shapeBase(f fields, b *document.ShapeBase) {
	d.value(f, "isStroked", &b.IsStroked)
	d.value(f, "isFilled", &b.IsFilled)
	b.Brush = get[document.Brush](d, f, "brush")
	b.Pen = get[*document.Pen](d, f, "pen")
}

func (d *decoder) settings(f fields) tools.ShapeSettings {
	s := tools.ShapeSettings{
		Brush: get[document.Brush](d, f, "brush"),
		Pen:   get[*document.Pen](d, f, "pen"),
	}
	d.value(f, "isStroked", &s.IsStroked)
	d.value(f, "isFilled", &s.IsFilled)
	d.value(f, "hitRadius", &s.HitRadius)
	d.value(f, "tryToConnect", &s.TryToConnect)
	return s
}
