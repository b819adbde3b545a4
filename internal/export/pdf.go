package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/simpledraw/simpledraw/internal/document"
	"github.com/simpledraw/simpledraw/internal/engine"
)

// PDF renders the committed items of c onto a single page the size of the
// canvas, one canvas unit per point.
func PDF(w io.Writer, c *document.Canvas) error {
	width, height := c.Width, c.Height
	if width <= 0 || height <= 0 {
		return fmt.Errorf("export pdf: invalid canvas size %gx%g", width, height)
	}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	for _, item := range c.Items {
		if s, ok := item.(document.Shape); ok {
			drawShape(pdf, s)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("export pdf: %w", err)
	}
	return nil
}

func drawShape(pdf *gofpdf.Fpdf, s document.Shape) {
	path := engine.ShapePath(s)
	if len(path) == 0 {
		return
	}
	base := s.Base()
	bounds := document.BoundsOf(document.DistinctPoints(s))

	fill := base.IsFilled && base.Brush != nil
	stroke := base.IsStroked && base.Pen != nil

	if gradient, ok := base.Brush.(*document.LinearGradientBrush); ok && fill {
		fillGradient(pdf, s, gradient, bounds)
		fill = false
	}
	if !fill && !stroke {
		return
	}

	style := ""
	alpha := 1.0
	if fill {
		style += "F"
		alpha = setFill(pdf, base.Brush)
	}
	if stroke {
		style += "D"
		alpha = min(alpha, setPen(pdf, base.Pen))
	}
	if p, ok := s.(*document.PathShape); ok && fill && p.FillRule == document.FillEvenOdd {
		style += "*"
	}

	pdf.SetAlpha(alpha, "Normal")
	drawPrimitive(pdf, s, path, style)
	pdf.SetAlpha(1, "Normal")
	pdf.SetDashPattern(nil, 0)
}

// drawPrimitive uses gofpdf's own shapes where they exist and falls back to
// the generic path otherwise.
func drawPrimitive(pdf *gofpdf.Fpdf, s document.Shape, path []engine.PathCommand, style string) {
	switch s := s.(type) {
	case *document.LineShape:
		pdf.Line(s.Start.X, s.Start.Y, s.End.X, s.End.Y)
		return
	case *document.RectangleShape:
		r := document.BoundsOf([]*document.Point{s.TopLeft, s.BottomRight})
		if s.RadiusX <= 0 || s.RadiusY <= 0 {
			pdf.Rect(r.X, r.Y, r.Width, r.Height, style)
			return
		}
		if s.RadiusX == s.RadiusY {
			pdf.RoundedRect(r.X, r.Y, r.Width, r.Height, min(s.RadiusX, r.Width/2, r.Height/2), "1234", style)
			return
		}
	case *document.EllipseShape:
		r := document.BoundsOf([]*document.Point{s.TopLeft, s.BottomRight})
		pdf.Ellipse(r.X+r.Width/2, r.Y+r.Height/2, r.Width/2, r.Height/2, 0, style)
		return
	}
	tracePath(pdf, path)
	pdf.DrawPath(style)
}

func tracePath(pdf *gofpdf.Fpdf, path []engine.PathCommand) {
	for _, cmd := range path {
		op, _ := cmd[0].(string)
		args := make([]float64, 0, len(cmd)-1)
		for _, v := range cmd[1:] {
			f, _ := v.(float64)
			args = append(args, f)
		}
		switch {
		case op == "M" && len(args) == 2:
			pdf.MoveTo(args[0], args[1])
		case op == "L" && len(args) == 2:
			pdf.LineTo(args[0], args[1])
		case op == "C" && len(args) == 6:
			pdf.CurveBezierCubicTo(args[0], args[1], args[2], args[3], args[4], args[5])
		case op == "Q" && len(args) == 4:
			pdf.CurveTo(args[0], args[1], args[2], args[3])
		case op == "Z":
			pdf.ClosePath()
		}
	}
}

// setFill applies a solid brush and returns its opacity.
func setFill(pdf *gofpdf.Fpdf, b document.Brush) float64 {
	c := brushColor(b)
	pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
	return float64(c.A) / 255
}

// setPen applies stroke color, width and dashes and returns the opacity.
func setPen(pdf *gofpdf.Fpdf, p *document.Pen) float64 {
	c := brushColor(p.Brush)
	pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
	pdf.SetLineWidth(p.Thickness)
	if d := p.DashStyle; d != nil && len(d.Dashes) > 0 {
		dashes := make([]float64, len(d.Dashes))
		for i, v := range d.Dashes {
			dashes[i] = v * p.Thickness
		}
		pdf.SetDashPattern(dashes, d.Offset*p.Thickness)
	}
	return float64(c.A) / 255
}

// fillGradient paints the gradient over the shape's bounds, clipped to the
// shape where gofpdf can clip to it.
func fillGradient(pdf *gofpdf.Fpdf, s document.Shape, g *document.LinearGradientBrush, bounds document.Rect) {
	if len(g.GradientStops) == 0 || bounds.IsEmpty() {
		return
	}
	from := g.GradientStops[0].Color
	to := g.GradientStops[len(g.GradientStops)-1].Color

	x0, y0 := g.StartPoint.Resolve(bounds)
	x1, y1 := g.EndPoint.Resolve(bounds)
	// gofpdf wants the gradient vector relative to the painted rect.
	rx0, ry0 := (x0-bounds.X)/bounds.Width, (y0-bounds.Y)/bounds.Height
	rx1, ry1 := (x1-bounds.X)/bounds.Width, (y1-bounds.Y)/bounds.Height

	switch s := s.(type) {
	case *document.EllipseShape:
		pdf.ClipEllipse(bounds.X+bounds.Width/2, bounds.Y+bounds.Height/2, bounds.Width/2, bounds.Height/2, false)
	case *document.RectangleShape:
		pdf.ClipRoundedRect(bounds.X, bounds.Y, bounds.Width, bounds.Height, min(s.RadiusX, s.RadiusY), false)
	default:
		pdf.ClipRect(bounds.X, bounds.Y, bounds.Width, bounds.Height, false)
	}
	pdf.LinearGradient(bounds.X, bounds.Y, bounds.Width, bounds.Height,
		int(from.R), int(from.G), int(from.B),
		int(to.R), int(to.G), int(to.B),
		rx0, ry0, rx1, ry1)
	pdf.ClipEnd()
}

// brushColor flattens a brush to one color. Gradients use their first stop.
func brushColor(b document.Brush) document.Color {
	switch b := b.(type) {
	case *document.SolidColorBrush:
		return b.Color
	case *document.LinearGradientBrush:
		if len(b.GradientStops) > 0 {
			return b.GradientStops[0].Color
		}
	}
	return document.ARGB(255, 0, 0, 0)
}
