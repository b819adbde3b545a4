package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simpledraw/simpledraw/internal/document"
)

func drawRectangle(t *testing.T) (*document.Canvas, *document.RectangleShape) {
	t.Helper()
	c := canvasWith(t, NameRectangle)
	press(c, 10, 10)
	press(c, 60, 40)
	c.SetTool(c.ToolByName(NameSelection))
	return c, c.Items[0].(*document.RectangleShape)
}

// assertDisjoint fails when any entity is both committed and a decorator.
func assertDisjoint(t *testing.T, c *document.Canvas) {
	t.Helper()
	for _, d := range c.Decorators {
		assert.NotContains(t, c.Items, d, "entity %p is in both Items and Decorators", d)
	}
}

func TestSelectionDragsPoint(t *testing.T) {
	c, r := drawRectangle(t)
	sel := c.Tool.(*SelectionTool)

	press(c, 11, 11)
	assert.Same(t, r.TopLeft, sel.Selected())
	assert.Equal(t, []*document.Point{r.TopLeft}, sel.Handles())
	assert.Empty(t, c.Decorators)

	c.Moved(21, 26, document.PointerLeft, 0)
	assert.Equal(t, document.Point{X: 20, Y: 25}, *r.TopLeft)
	assert.Equal(t, document.Point{X: 60, Y: 40}, *r.BottomRight)

	c.Released(21, 26, document.PointerLeft, 0)
	c.Moved(40, 40, document.PointerNone, 0)
	assert.Equal(t, document.Point{X: 20, Y: 25}, *r.TopLeft)
	assert.Same(t, r.TopLeft, sel.Selected())
}

func TestSelectionDragsShape(t *testing.T) {
	c, r := drawRectangle(t)
	sel := c.Tool.(*SelectionTool)

	press(c, 35, 25)
	assert.Same(t, r, sel.Selected())
	assert.Len(t, sel.Handles(), 2)
	assert.Empty(t, c.Decorators)

	c.Moved(45, 30, document.PointerLeft, 0)
	assert.Equal(t, document.Point{X: 20, Y: 15}, *r.TopLeft)
	assert.Equal(t, document.Point{X: 70, Y: 45}, *r.BottomRight)
}

func TestSelectionRightPressReverts(t *testing.T) {
	c, r := drawRectangle(t)

	press(c, 35, 25)
	c.Moved(135, 125, document.PointerLeft, 0)
	c.Pressed(135, 125, document.PointerRight, 0)

	assert.Equal(t, document.Point{X: 10, Y: 10}, *r.TopLeft)
	assert.Equal(t, document.Point{X: 60, Y: 40}, *r.BottomRight)
}

func TestSelectionMissClears(t *testing.T) {
	c, _ := drawRectangle(t)
	sel := c.Tool.(*SelectionTool)

	press(c, 35, 25)
	c.Released(35, 25, document.PointerLeft, 0)
	press(c, 500, 500)

	assert.Nil(t, sel.Selected())
	assert.Empty(t, sel.Handles())
	assert.Empty(t, c.Decorators)
}

func TestSelectionStandalonePointStaysCommitted(t *testing.T) {
	c := CreateDefault()
	p := document.NewPoint(20, 20)
	c.AddItem(p)

	press(c, 21, 21)
	sel := c.Tool.(*SelectionTool)
	assert.Same(t, p, sel.Selected())
	assertDisjoint(t, c)

	c.Released(21, 21, document.PointerLeft, 0)
	assertDisjoint(t, c)
	assert.Equal(t, []document.Entity{p}, c.Items)
	assert.Equal(t, []*document.Point{p}, sel.Handles())
}

func TestSelectionSharedPointMovesBothShapes(t *testing.T) {
	c := canvasWith(t, NameLine)
	press(c, 0, 0)
	press(c, 100, 0)
	press(c, 100, 0)
	press(c, 100, 100)
	require.Len(t, c.Items, 2)

	c.SetTool(c.ToolByName(NameSelection))
	press(c, 100, 0)
	c.Moved(110, 10, document.PointerNone, 0)

	first := c.Items[0].(*document.LineShape)
	second := c.Items[1].(*document.LineShape)
	assert.Equal(t, document.Point{X: 110, Y: 10}, *first.End)
	assert.Same(t, first.End, second.Start)
}

func TestSelectionCancelDeselects(t *testing.T) {
	c, _ := drawRectangle(t)
	press(c, 35, 25)
	c.SetTool(c.ToolByName(NameNone))

	assert.Nil(t, c.ToolByName(NameSelection).(*SelectionTool).Selected())
	assert.Empty(t, c.Decorators)
}
