package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// PlayCount holds the upstream playCount value as it was sent. The API mixes
// JSON numbers and numeric strings for this field, so the raw text is kept and
// nothing is coerced here; formatting belongs to the display layer.
type PlayCount struct {
	Raw    string // number literal or string contents; empty when absent
	Quoted bool   // true when the upstream sent a JSON string
}

// IsZero reports whether the field was absent or null. encoding/json uses it for omitzero.
func (p PlayCount) IsZero() bool { return p.Raw == "" && !p.Quoted }

// Float parses the count as a number. ok is false for absent or non-numeric values.
func (p PlayCount) Float() (v float64, ok bool) {
	if p.Raw == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(p.Raw, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func (p PlayCount) String() string { return p.Raw }

// UnmarshalJSON accepts a number, a string or null.
func (p *PlayCount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*p = PlayCount{}
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = PlayCount{Raw: s, Quoted: true}
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("playCount: expected number or string, got %s", data)
		}
		*p = PlayCount{Raw: n.String()}
		return nil
	}
}

// MarshalJSON writes the value back in the form it arrived in.
func (p PlayCount) MarshalJSON() ([]byte, error) {
	if p.Quoted {
		return json.Marshal(p.Raw)
	}
	if p.Raw == "" {
		return []byte("null"), nil
	}
	return []byte(p.Raw), nil
}
