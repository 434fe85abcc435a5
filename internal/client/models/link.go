package models

import (
	"encoding/json"
	"errors"
)

// LinkData is the opaque handshake returned by the linking endpoint. It is
// handed to the caller exactly as received.
type LinkData struct {
	raw json.RawMessage
}

// NewLinkData wraps a raw JSON payload.
func NewLinkData(raw []byte) *LinkData {
	return &LinkData{raw: append(json.RawMessage(nil), raw...)}
}

// Bytes returns the payload as received.
func (l *LinkData) Bytes() []byte {
	if l == nil {
		return nil
	}
	return append([]byte(nil), l.raw...)
}

// Decode unmarshals the payload into v.
func (l *LinkData) Decode(v any) error {
	if l == nil || len(l.raw) == 0 {
		return errors.New("empty link data")
	}
	return json.Unmarshal(l.raw, v)
}

func (l *LinkData) UnmarshalJSON(b []byte) error {
	l.raw = append(l.raw[:0], b...)
	return nil
}

func (l LinkData) MarshalJSON() ([]byte, error) {
	if len(l.raw) == 0 {
		return []byte("null"), nil
	}
	return l.raw, nil
}
