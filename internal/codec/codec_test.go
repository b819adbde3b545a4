package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simpledraw/simpledraw/internal/document"
	"github.com/simpledraw/simpledraw/internal/tools"
)

// sampleCanvas draws two lines joined at a shared point and a rectangle
// painted with a gradient used as both fill and stroke.
func sampleCanvas() *document.Canvas {
	c := tools.CreateDefault()
	joint := document.NewPoint(100, 0)
	c.AddItem(&document.LineShape{Start: document.NewPoint(0, 0), End: joint})
	c.AddItem(&document.LineShape{Start: joint, End: document.NewPoint(100, 100)})

	gradient := &document.LinearGradientBrush{
		GradientStops: []document.GradientStop{
			{Color: document.ARGB(255, 255, 0, 0), Offset: 0},
			{Color: document.ARGB(128, 0, 0, 255), Offset: 1},
		},
		SpreadMethod: document.SpreadRepeat,
		StartPoint:   document.RelativePoint{X: 0, Y: 0, Unit: document.UnitRelative},
		EndPoint:     document.RelativePoint{X: 1, Y: 0, Unit: document.UnitRelative},
	}
	c.AddItem(&document.RectangleShape{
		ShapeBase: document.ShapeBase{
			IsFilled:  true,
			IsStroked: true,
			Brush:     gradient,
			Pen:       &document.Pen{Brush: gradient, Thickness: 3, DashStyle: &document.DashStyle{Dashes: []float64{4, 2}, Offset: 1}},
		},
		TopLeft:     document.NewPoint(10, 10),
		BottomRight: document.NewPoint(60, 40),
		RadiusX:     4,
		RadiusY:     2,
	})
	c.AddItem(&document.PathShape{
		ShapeBase: document.ShapeBase{IsStroked: true},
		Segments: []document.Shape{
			&document.CubicBezierShape{Start: joint, Point1: document.NewPoint(1, 2), Point2: document.NewPoint(3, 4), Point3: document.NewPoint(5, 6)},
		},
		IsClosed: true,
		FillRule: document.FillNonZero,
	})
	c.SetTool(c.ToolByName(tools.NamePath))
	return c
}

func TestRoundTripPreservesSharing(t *testing.T) {
	src := sampleCanvas()
	data, err := Marshal(src)
	require.NoError(t, err)

	got, err := Unmarshal(data)
	require.NoError(t, err)

	if diff := cmp.Diff(src.Items, got.Items); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}

	first := got.Items[0].(*document.LineShape)
	second := got.Items[1].(*document.LineShape)
	rect := got.Items[2].(*document.RectangleShape)
	path := got.Items[3].(*document.PathShape)
	assert.Same(t, first.End, second.Start)
	assert.Same(t, first.End, path.First())
	assert.Same(t, rect.Brush, rect.Pen.Brush)

	require.Len(t, got.Tools, len(src.Tools))
	assert.Same(t, got.ToolByName(tools.NamePath), got.Tool)
	pathTool := got.Tool.(*tools.PathTool)
	assert.True(t, pathTool.IsClosed)
	assert.Equal(t, tools.PathModeLine, pathTool.Mode)
	assert.Equal(t, float64(tools.DefaultHitRadius), pathTool.HitRadius)
}

func TestReencodeIsByteIdentical(t *testing.T) {
	data, err := Marshal(sampleCanvas())
	require.NoError(t, err)

	got, err := Unmarshal(data)
	require.NoError(t, err)
	again, err := Marshal(got)
	require.NoError(t, err)

	assert.Equal(t, string(data), string(again))
}

func TestEncodeWritesRefsForRepeats(t *testing.T) {
	p := document.NewPoint(1, 2)
	c := document.NewCanvas(10, 10)
	c.AddItem(&document.LineShape{Start: p, End: p})

	data, err := Marshal(c)
	require.NoError(t, err)

	var doc struct {
		ID    string `json:"$id"`
		Type  string `json:"$type"`
		Items []struct {
			Start map[string]any `json:"start"`
			End   map[string]any `json:"end"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "1", doc.ID)
	assert.Equal(t, "Canvas", doc.Type)
	require.Len(t, doc.Items, 1)
	assert.Equal(t, "Point", doc.Items[0].Start["$type"])
	assert.Equal(t, doc.Items[0].Start["$id"], doc.Items[0].End["$ref"])

	got, err := Unmarshal(data)
	require.NoError(t, err)
	line := got.Items[0].(*document.LineShape)
	assert.Same(t, line.Start, line.End)
}

func TestEncodeDecodeStreams(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sampleCanvas()))
	assert.True(t, bytes.HasSuffix(buf.Bytes(), []byte("}\n")))

	got, err := Decode(&buf)
	require.NoError(t, err)
	assert.Len(t, got.Items, 4)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{
			name: "unknown type",
			in:   `{"$id":"1","$type":"Canvas","items":[{"$id":"2","$type":"Spline"}]}`,
			want: ErrUnknownType,
		},
		{
			name: "unresolved ref",
			in:   `{"$id":"1","$type":"Canvas","items":[{"$ref":"7"}]}`,
			want: ErrUnresolvedRef,
		},
		{
			name: "missing id",
			in:   `{"$type":"Canvas"}`,
			want: ErrMissingID,
		},
		{
			name: "root is not a canvas",
			in:   `{"$id":"1","$type":"Point","x":1,"y":2}`,
			want: ErrTypeMismatch,
		},
		{
			name: "point where a pen belongs",
			in:   `{"$id":"1","$type":"Canvas","items":[{"$id":"2","$type":"LineShape","pen":{"$id":"3","$type":"Point"}}]}`,
			want: ErrTypeMismatch,
		},
		{
			name: "null item",
			in:   `{"$id":"1","$type":"Canvas","items":[null]}`,
			want: ErrTypeMismatch,
		},
		{
			name: "null tool",
			in:   `{"$id":"1","$type":"Canvas","items":[],"tools":[null]}`,
			want: ErrTypeMismatch,
		},
		{
			name: "null segment",
			in:   `{"$id":"1","$type":"Canvas","items":[{"$id":"2","$type":"PathShape","segments":[null]}]}`,
			want: ErrTypeMismatch,
		},
		{
			name: "active tool outside the registry",
			in:   `{"$id":"1","$type":"Canvas","tools":[{"$id":"2","$type":"NoneTool"}],"tool":{"$id":"3","$type":"NoneTool"}}`,
			want: ErrTypeMismatch,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tt.in))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestDecodeActiveToolByReference(t *testing.T) {
	c, err := Unmarshal([]byte(`{"$id":"1","$type":"Canvas","tools":[{"$id":"2","$type":"NoneTool"}],"tool":{"$ref":"2"}}`))
	require.NoError(t, err)
	require.Len(t, c.Tools, 1)
	assert.Same(t, c.Tools[0], c.Tool)
}

func TestEncodeSkipsTypedNilBrush(t *testing.T) {
	c := document.NewCanvas(100, 100)
	c.AddItem(&document.LineShape{
		ShapeBase: document.ShapeBase{Brush: (*document.SolidColorBrush)(nil)},
		Start:     document.NewPoint(0, 0),
		End:       document.NewPoint(10, 10),
	})

	data, err := Marshal(c)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"brush"`)

	back, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Nil(t, back.Items[0].(*document.LineShape).Brush)
}

func TestEncodeRejectsNilEntries(t *testing.T) {
	c := document.NewCanvas(100, 100)
	c.Items = []document.Entity{(*document.Point)(nil)}

	_, err := Marshal(c)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTypeMismatch), "got %v", err)
}

func TestDecodeRejectsMalformed(t *testing.T) {
	for _, in := range []string{``, `[]`, `null`, `{"$id":"1","$type":"Canvas","width":"wide"}`} {
		_, err := Unmarshal([]byte(in))
		assert.Error(t, err, in)
	}
}

func TestDecodeEmptyCanvas(t *testing.T) {
	c, err := Unmarshal([]byte(`{"$id":"1","$type":"Canvas","width":300,"height":200}`))
	require.NoError(t, err)
	assert.Equal(t, 300.0, c.Width)
	assert.Empty(t, c.Items)
	assert.Nil(t, c.Tool)
}
