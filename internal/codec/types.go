package codec

import (
	"github.com/simpledraw/simpledraw/internal/document"
	"github.com/simpledraw/simpledraw/internal/tools"
)

const (
	typeCanvas               = "Canvas"
	typePoint                = "Point"
	typeSolidColorBrush      = "SolidColorBrush"
	typeLinearGradientBrush  = "LinearGradientBrush"
	typeDashStyle            = "DashStyle"
	typePen                  = "Pen"
	typeLineShape            = "LineShape"
	typeCubicBezierShape     = "CubicBezierShape"
	typeQuadraticBezierShape = "QuadraticBezierShape"
	typePathShape            = "PathShape"
	typeRectangleShape       = "RectangleShape"
	typeEllipseShape         = "EllipseShape"
	typeNoneTool             = "NoneTool"
	typeSelectionTool        = "SelectionTool"
	typeLineTool             = "LineTool"
	typeCubicBezierTool      = "CubicBezierTool"
	typeQuadraticBezierTool  = "QuadraticBezierTool"
	typePathTool             = "PathTool"
	typeRectangleTool        = "RectangleTool"
	typeEllipseTool          = "EllipseTool"
)

func typeName(e document.Entity) (string, bool) {
	switch e.(type) {
	case *document.Canvas:
		return typeCanvas, true
	case *document.Point:
		return typePoint, true
	case *document.SolidColorBrush:
		return typeSolidColorBrush, true
	case *document.LinearGradientBrush:
		return typeLinearGradientBrush, true
	case *document.DashStyle:
		return typeDashStyle, true
	case *document.Pen:
		return typePen, true
	case *document.LineShape:
		return typeLineShape, true
	case *document.CubicBezierShape:
		return typeCubicBezierShape, true
	case *document.QuadraticBezierShape:
		return typeQuadraticBezierShape, true
	case *document.PathShape:
		return typePathShape, true
	case *document.RectangleShape:
		return typeRectangleShape, true
	case *document.EllipseShape:
		return typeEllipseShape, true
	case *tools.NoneTool:
		return typeNoneTool, true
	case *tools.SelectionTool:
		return typeSelectionTool, true
	case *tools.LineTool:
		return typeLineTool, true
	case *tools.CubicBezierTool:
		return typeCubicBezierTool, true
	case *tools.QuadraticBezierTool:
		return typeQuadraticBezierTool, true
	case *tools.PathTool:
		return typePathTool, true
	case *tools.RectangleTool:
		return typeRectangleTool, true
	case *tools.EllipseTool:
		return typeEllipseTool, true
	default:
		return "", false
	}
}

// newEntity allocates the zero value for a $type.
func newEntity(name string) (document.Entity, bool) {
	switch name {
	case typeCanvas:
		return &document.Canvas{}, true
	case typePoint:
		return &document.Point{}, true
	case typeSolidColorBrush:
		return &document.SolidColorBrush{}, true
	case typeLinearGradientBrush:
		return &document.LinearGradientBrush{}, true
	case typeDashStyle:
		return &document.DashStyle{}, true
	case typePen:
		return &document.Pen{}, true
	case typeLineShape:
		return &document.LineShape{}, true
	case typeCubicBezierShape:
		return &document.CubicBezierShape{}, true
	case typeQuadraticBezierShape:
		return &document.QuadraticBezierShape{}, true
	case typePathShape:
		return &document.PathShape{}, true
	case typeRectangleShape:
		return &document.RectangleShape{}, true
	case typeEllipseShape:
		return &document.EllipseShape{}, true
	case typeNoneTool:
		return &tools.NoneTool{}, true
	case typeSelectionTool:
		return &tools.SelectionTool{}, true
	case typeLineTool:
		return &tools.LineTool{}, true
	case typeCubicBezierTool:
		return &tools.CubicBezierTool{}, true
	case typeQuadraticBezierTool:
		return &tools.QuadraticBezierTool{}, true
	case typePathTool:
		return &tools.PathTool{}, true
	case typeRectangleTool:
		return &tools.RectangleTool{}, true
	case typeEllipseTool:
		return &tools.EllipseTool{}, true
	default:
		return nil, false
	}
}
