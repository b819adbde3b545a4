package tools

import "github.com/simpledraw/simpledraw/internal/document"

const (
	DefaultWidth     = 840
	DefaultHeight    = 600
	DefaultHitRadius = 6
	defaultThickness = 2
	defaultRadius    = 4
)

// CreateDefault returns the starting document of a new drawing: the full tool
// registry with black strokes and the selection tool active.
func CreateDefault() *document.Canvas {
	c := document.NewCanvas(DefaultWidth, DefaultHeight)
	c.Tools = []document.Tool{
		&NoneTool{},
		&SelectionTool{HitRadius: DefaultHitRadius},
		&LineTool{ShapeSettings: defaultSettings(false, false)},
		&CubicBezierTool{ShapeSettings: defaultSettings(true, false)},
		&QuadraticBezierTool{ShapeSettings: defaultSettings(true, false)},
		&PathTool{
			ShapeSettings: defaultSettings(true, true),
			FillRule:      document.FillEvenOdd,
			IsClosed:      true,
			Mode:          PathModeLine,
			PreviousMode:  PathModeLine,
		},
		&RectangleTool{
			ShapeSettings: defaultSettings(true, true),
			RadiusX:       defaultRadius,
			RadiusY:       defaultRadius,
		},
		&EllipseTool{ShapeSettings: defaultSettings(true, true)},
	}
	c.Tool = c.Tools[1]
	return c
}

func defaultSettings(withBrush, filled bool) ShapeSettings {
	black := document.ARGB(255, 0, 0, 0)
	s := ShapeSettings{
		Pen:          document.NewPen(document.NewSolidColorBrush(black), defaultThickness),
		IsStroked:    true,
		IsFilled:     filled,
		HitRadius:    DefaultHitRadius,
		TryToConnect: true,
	}
	if withBrush {
		s.Brush = document.NewSolidColorBrush(black)
	}
	return s
}
