package collab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeInbound(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{name: "press", in: `{"type":"pointer.pressed","payload":{"x":1,"y":2,"button":"left"}}`},
		{name: "hover", in: `{"type":"pointer.moved","payload":{"x":1,"y":2}}`},
		{name: "tool", in: `{"type":"tool.set","payload":{"name":"Line"}}`},
		{name: "cancel", in: `{"type":"tool.cancel"}`},
		{name: "save", in: `{"type":"doc.save"}`},
		{name: "not json", in: `{`, wantErr: true},
		{name: "unknown type", in: `{"type":"shape.rotate"}`, wantErr: true},
		{name: "server only type", in: `{"type":"doc.sync"}`, wantErr: true},
		{name: "bad button", in: `{"type":"pointer.pressed","payload":{"x":1,"y":2,"button":"thumb"}}`, wantErr: true},
		{name: "pointer without payload", in: `{"type":"pointer.released"}`, wantErr: true},
		{name: "tool without name", in: `{"type":"tool.set","payload":{}}`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := decodeInbound([]byte(tt.in))
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, msg)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, msg.Type)
		})
	}
}

func TestDecodeInboundUnknownType(t *testing.T) {
	_, err := decodeInbound([]byte(`{"type":"presence.join"}`))
	assert.ErrorIs(t, err, ErrUnknownMessage)
}
