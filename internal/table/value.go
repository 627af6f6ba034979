// Package table implements the wide-column data engine: the nested
// Table/ColumnFamily/Column/Cell/Value model, its mutation semantics and
// its optional per-column row-key index.
package table

import (
	"encoding/gob"
	"fmt"
	"strconv"
	"strings"
	"time"
)

func init() {
	gob.Register(int64(0))
	gob.Register(float64(0))
	gob.Register(true)
	gob.Register("")
}

// Value is an immutable (timestamp, payload) pair. Payload is one of
// int64, float64, bool or string; a list payload is stringified at
// construction rather than retained as a sequence.
type Value struct {
	Timestamp float64
	Payload   interface{}
}

func unixNow() float64 {
	return float64(time.Now().UnixNano()) / 1e9
}

// NewValue captures the current timestamp and stores payload, coercing a
// string-slice payload to its string rendering.
func NewValue(payload interface{}) Value {
	if list, ok := payload.([]string); ok {
		payload = stringifyList(list)
	}
	if n, ok := payload.(int); ok {
		payload = int64(n)
	}
	return Value{Timestamp: unixNow(), Payload: payload}
}

func stringifyList(xs []string) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = "'" + x + "'"
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// String renders the payload for display.
func (v Value) String() string {
	return fmt.Sprint(v.Payload)
}

// Coerce converts a raw flag/JSON-leaf string into a typed Value using the
// rule shared by put, insertOrUpdateRow and insert_many: an all-digit
// string becomes int64, a single-decimal-point numeric string becomes
// float64, "true"/"false" (any case) becomes bool, anything else is kept
// as a string.
func Coerce(raw string) Value {
	switch {
	case isAllDigits(raw):
		n, err := strconv.ParseInt(raw, 10, 64)
		if err == nil {
			return NewValue(n)
		}
	case isFloatLike(raw):
		f, err := strconv.ParseFloat(raw, 64)
		if err == nil {
			return NewValue(f)
		}
	case strings.EqualFold(raw, "true"):
		return NewValue(true)
	case strings.EqualFold(raw, "false"):
		return NewValue(false)
	}
	return NewValue(raw)
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isFloatLike(s string) bool {
	if !strings.Contains(s, ".") {
		return false
	}
	reduced := strings.Replace(s, ".", "", 1)
	return isAllDigits(reduced)
}
