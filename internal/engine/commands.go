package engine

import (
	"encoding/json"

	"github.com/simpledraw/simpledraw/internal/document"
)

// handleRadius is the on-screen radius of point handles.
const handleRadius = 4.0

// DrawCommand represents a single drawing operation for the frontend to execute.
// The frontend receives a list of these and executes them on a Canvas2D context.
type DrawCommand struct {
	Op          string        `json:"op"`                    // "path" or "point"
	Transform   []float64     `json:"transform,omitempty"`   // [a, b, c, d, e, f] view matrix
	Path        []PathCommand `json:"path,omitempty"`        // Path data for "path" ops
	Fill        string        `json:"fill,omitempty"`        // Fill color, #rrggbbaa
	Gradient    *Gradient     `json:"gradient,omitempty"`    // Linear gradient fill
	FillRule    string        `json:"fillRule,omitempty"`    // "evenodd" or "nonzero"
	Stroke      string        `json:"stroke,omitempty"`      // Stroke color, #rrggbbaa
	StrokeWidth float64       `json:"strokeWidth,omitempty"` // Stroke width
	Dash        []float64     `json:"dash,omitempty"`        // Dash lengths in canvas units
	DashOffset  float64       `json:"dashOffset,omitempty"`
	X           float64       `json:"x,omitempty"` // Center for "point" ops
	Y           float64       `json:"y,omitempty"`
	Radius      float64       `json:"radius,omitempty"`
	Preview     bool          `json:"preview,omitempty"` // In-progress or selection overlay
}

// Gradient is a linear gradient resolved to canvas coordinates.
type Gradient struct {
	X0     float64        `json:"x0"`
	Y0     float64        `json:"y0"`
	X1     float64        `json:"x1"`
	Y1     float64        `json:"y1"`
	Spread string         `json:"spread"`
	Stops  []GradientStop `json:"stops"`
}

type GradientStop struct {
	Offset float64 `json:"offset"`
	Color  string  `json:"color"`
}

// handleSource is a tool that highlights committed points, such as the
// selection tool.
type handleSource interface {
	Handles() []*document.Point
}

// CompileDrawCommands generates a draw command buffer for a canvas.
// Commands are in painter's order: items back to front, decorators, then
// the active tool's handles.
func CompileDrawCommands(c *document.Canvas, view Matrix2D) []DrawCommand {
	if c == nil {
		return nil
	}

	var commands []DrawCommand
	for _, item := range c.Items {
		compileEntity(item, view, false, &commands)
	}
	for _, d := range c.Decorators {
		compileEntity(d, view, true, &commands)
	}
	if hs, ok := c.Tool.(handleSource); ok {
		for _, p := range hs.Handles() {
			compileEntity(p, view, true, &commands)
		}
	}
	return commands
}

func compileEntity(e document.Entity, view Matrix2D, preview bool, commands *[]DrawCommand) {
	switch e := e.(type) {
	case *document.Point:
		*commands = append(*commands, DrawCommand{
			Op:        "point",
			Transform: view.ToSlice(),
			X:         e.X,
			Y:         e.Y,
			Radius:    handleRadius / view.ScaleFactor(),
			Preview:   preview,
		})
	case document.Shape:
		path := ShapePath(e)
		if len(path) == 0 {
			return
		}
		cmd := DrawCommand{
			Op:        "path",
			Transform: view.ToSlice(),
			Path:      path,
			Preview:   preview,
		}
		paint(&cmd, e)
		*commands = append(*commands, cmd)
	}
}

// paint resolves the shape's brush and pen into command styles.
func paint(cmd *DrawCommand, s document.Shape) {
	base := s.Base()
	if base.IsFilled && base.Brush != nil {
		switch b := base.Brush.(type) {
		case *document.SolidColorBrush:
			cmd.Fill = b.Color.Hex()
		case *document.LinearGradientBrush:
			cmd.Gradient = resolveGradient(b, document.BoundsOf(document.DistinctPoints(s)))
		}
		if p, ok := s.(*document.PathShape); ok {
			cmd.FillRule = fillRuleName(p.FillRule)
		}
	}
	if base.IsStroked && base.Pen != nil {
		cmd.Stroke = brushColor(base.Pen.Brush)
		cmd.StrokeWidth = base.Pen.Thickness
		if d := base.Pen.DashStyle; d != nil && len(d.Dashes) > 0 {
			cmd.Dash = make([]float64, len(d.Dashes))
			for i, v := range d.Dashes {
				cmd.Dash[i] = v * base.Pen.Thickness
			}
			cmd.DashOffset = d.Offset * base.Pen.Thickness
		}
	}
}

func resolveGradient(b *document.LinearGradientBrush, bounds document.Rect) *Gradient {
	g := &Gradient{Spread: b.SpreadMethod.String()}
	g.X0, g.Y0 = b.StartPoint.Resolve(bounds)
	g.X1, g.Y1 = b.EndPoint.Resolve(bounds)
	for _, s := range b.GradientStops {
		g.Stops = append(g.Stops, GradientStop{Offset: s.Offset, Color: s.Color.Hex()})
	}
	return g
}

// brushColor flattens a brush to one color. Gradients use their first stop.
func brushColor(b document.Brush) string {
	switch b := b.(type) {
	case *document.SolidColorBrush:
		return b.Color.Hex()
	case *document.LinearGradientBrush:
		if len(b.GradientStops) > 0 {
			return b.GradientStops[0].Color.Hex()
		}
	}
	return ""
}

func fillRuleName(r document.FillRule) string {
	if r == document.FillNonZero {
		return "nonzero"
	}
	return "evenodd"
}

// DrawCommandsToJSON serializes draw commands to JSON.
func DrawCommandsToJSON(commands []DrawCommand) (string, error) {
	if commands == nil {
		return "[]", nil
	}
	data, err := json.Marshal(commands)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}
