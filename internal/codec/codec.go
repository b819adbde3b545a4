// Package codec serializes a document.Canvas to JSON while preserving object
// identity. Every entity is written once with a "$id"; later occurrences are
// written as {"$ref": id}. Ids are assigned in traversal order, so the same
// graph always encodes to the same bytes.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/simpledraw/simpledraw/internal/document"
)

var (
	ErrUnknownType   = errors.New("unknown $type")
	ErrUnresolvedRef = errors.New("unresolved $ref")
	ErrTypeMismatch  = errors.New("entity type mismatch")
	ErrMissingID     = errors.New("missing $id")
)

const (
	keyID   = "$id"
	keyType = "$type"
	keyRef  = "$ref"
)

// Marshal encodes c and everything reachable from it.
func Marshal(c *document.Canvas) ([]byte, error) {
	if c == nil {
		return nil, errors.New("marshal canvas: nil canvas")
	}
	enc := newEncoder()
	root := enc.entity(c)
	if enc.err != nil {
		return nil, fmt.Errorf("marshal canvas: %w", enc.err)
	}
	data, err := json.Marshal(root)
	if err != nil {
		return nil, fmt.Errorf("marshal canvas: %w", err)
	}
	return data, nil
}

// Unmarshal rebuilds a canvas graph. Shared references in the input decode
// to shared pointers.
func Unmarshal(data []byte) (*document.Canvas, error) {
	dec := newDecoder()
	c, err := decodeAs[*document.Canvas](dec, data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal canvas: %w", err)
	}
	if c == nil {
		return nil, fmt.Errorf("unmarshal canvas: %w: null document", ErrTypeMismatch)
	}
	return c, nil
}

// Encode writes the indented encoding of c to w.
func Encode(w io.Writer, c *document.Canvas) error {
	data, err := Marshal(c)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return fmt.Errorf("indent canvas: %w", err)
	}
	buf.WriteByte('\n')
	_, err = buf.WriteTo(w)
	return err
}

// Decode reads a canvas from r.
func Decode(r io.Reader) (*document.Canvas, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read canvas: %w", err)
	}
	return Unmarshal(data)
}

type member struct {
	key   string
	value any
}

// object is a JSON object that keeps its members in insertion order.
type object []member

func (o object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(m.key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(m.value)
		if err != nil {
			return nil, fmt.Errorf("member %s: %w", m.key, err)
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
