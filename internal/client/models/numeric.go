package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// NumericString holds a value the service may send either as a JSON string
// or as a bare JSON number. The literal text is kept as received so that it
// round-trips unchanged; it is always re-encoded as a JSON string.
type NumericString string

// UnmarshalJSON accepts "12", 12, 12.5 and null.
func (n *NumericString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = NumericString(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return fmt.Errorf("numeric string: %w", err)
	}
	*n = NumericString(num.String())
	return nil
}

// MarshalJSON encodes the value as a JSON string.
func (n NumericString) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(n))
}

// String returns the literal text.
func (n NumericString) String() string { return string(n) }

// Int64 parses the value as a base-10 integer.
func (n NumericString) Int64() (int64, error) {
	return strconv.ParseInt(string(n), 10, 64)
}
