package premium

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var errNull = errors.New("cannot convert null to a number")

// Value holds a request field exactly as it arrived on the wire. A nil *Value
// means the field was absent or null.
type Value struct {
	raw json.RawMessage
}

// UnmarshalJSON keeps the raw bytes; conversion is deferred until the value is
// actually needed so that validation can run in a fixed order first.
func (v *Value) UnmarshalJSON(data []byte) error {
	v.raw = append(v.raw[:0], data...)
	return nil
}

// Flag reports whether the value reads as boolean true: either the JSON
// literal true or a string equal to "true" in any letter case. Everything
// else, including an absent value, reads as false.
func (v *Value) Flag() bool {
	if v == nil || v.isNull() {
		return false
	}

	if string(v.raw) == "true" {
		return true
	}

	s, ok := v.text()
	return ok && strings.ToLower(s) == "true"
}

// Float32 converts the value to a model feature. Numbers, booleans and
// numeric strings are accepted. Magnitudes beyond float32 range become ±Inf.
func (v *Value) Float32() (float32, error) {
	if v == nil || v.isNull() {
		return 0, errNull
	}

	lit := string(v.raw)
	switch lit {
	case "true":
		return 1, nil
	case "false":
		return 0, nil
	}

	if s, ok := v.text(); ok {
		f, err := parseFloat32(strings.TrimSpace(s))
		if err != nil {
			return 0, fmt.Errorf("cannot convert %q to a number", s)
		}
		return f, nil
	}

	f, err := parseFloat32(lit)
	if err != nil {
		return 0, fmt.Errorf("cannot convert %s to a number", lit)
	}

	return f, nil
}

// parseFloat32 keeps the ±Inf that ParseFloat returns for out of range input.
func parseFloat32(s string) (float32, error) {
	f, err := strconv.ParseFloat(s, 32)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, err
	}
	return float32(f), nil
}

func (v *Value) text() (string, bool) {
	if len(v.raw) == 0 || v.raw[0] != '"' {
		return "", false
	}

	var s string
	if err := json.Unmarshal(v.raw, &s); err != nil {
		return "", false
	}

	return s, true
}

func (v *Value) isNull() bool {
	return len(v.raw) == 0 || string(v.raw) == "null"
}

// Request is the body of POST /predict. Every field is optional at the
// decoding stage; presence is checked by the Encoder.
type Request struct {
	Age      *Value `json:"age"`
	BMI      *Value `json:"bmi"`
	IsSmoker *Value `json:"isSmoker"`
	Region   *Value `json:"region"`
	Children *Value `json:"children"`
	Gender   *Value `json:"gender"`
}

// DecodeRequest reads a single JSON object from r.
func DecodeRequest(r io.Reader) (Request, error) {
	var body json.RawMessage
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return Request{}, fmt.Errorf("decode request body: %w", err)
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Request{}, ErrNotObject
	}

	var req Request
	if err := json.Unmarshal(trimmed, &req); err != nil {
		return Request{}, fmt.Errorf("decode request body: %w", err)
	}

	return req, nil
}
