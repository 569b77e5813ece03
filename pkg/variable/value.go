package variable

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Value is the tagged union raw bindings are converted into before
// formatting. Only the types declared in this package implement it.
type Value interface {
	// String returns the plain string form used for pass-through rendering.
	String() string
	isValue()
}

// TextValue is a string binding.
type TextValue string

// NumberValue is any numeric binding.
type NumberValue float64

// DateValue is a calendar date or timestamp.
type DateValue time.Time

// BoolValue is a boolean binding.
type BoolValue bool

// TableValue is a sequence of row records.
type TableValue []map[string]any

// NullValue represents an absent binding.
type NullValue struct{}

func (TextValue) isValue()   {}
func (NumberValue) isValue() {}
func (DateValue) isValue()   {}
func (BoolValue) isValue()   {}
func (TableValue) isValue()  {}
func (NullValue) isValue()   {}

func (v TextValue) String() string { return string(v) }

func (v NumberValue) String() string {
	return strconv.FormatFloat(float64(v), 'f', -1, 64)
}

func (v DateValue) String() string {
	t := time.Time(v)
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format(time.RFC3339)
}

func (v BoolValue) String() string { return strconv.FormatBool(bool(v)) }

func (v TableValue) String() string {
	data, err := json.Marshal([]map[string]any(v))
	if err != nil {
		return ""
	}
	return string(data)
}

func (NullValue) String() string { return "" }

// FromAny converts an untyped boundary value into a Value. Unknown shapes
// fall back to their fmt representation as text.
func FromAny(raw any) Value {
	switch v := raw.(type) {
	case nil:
		return NullValue{}
	case Value:
		return v
	case string:
		return TextValue(v)
	case []byte:
		return TextValue(string(v))
	case bool:
		return BoolValue(v)
	case int:
		return NumberValue(v)
	case int8:
		return NumberValue(v)
	case int16:
		return NumberValue(v)
	case int32:
		return NumberValue(v)
	case int64:
		return NumberValue(v)
	case uint:
		return NumberValue(v)
	case uint8:
		return NumberValue(v)
	case uint16:
		return NumberValue(v)
	case uint32:
		return NumberValue(v)
	case uint64:
		return NumberValue(v)
	case float32:
		return NumberValue(v)
	case float64:
		return NumberValue(v)
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return NumberValue(f)
		}
		return TextValue(v.String())
	case time.Time:
		return DateValue(v)
	case *time.Time:
		if v == nil {
			return NullValue{}
		}
		return DateValue(*v)
	case []map[string]any:
		return TableValue(v)
	case []map[string]string:
		rows := make([]map[string]any, 0, len(v))
		for _, row := range v {
			converted := make(map[string]any, len(row))
			for key, cell := range row {
				converted[key] = cell
			}
			rows = append(rows, converted)
		}
		return TableValue(rows)
	case []any:
		if rows, ok := rowsFromSlice(v); ok {
			return TableValue(rows)
		}
		return TextValue(fmt.Sprint(v))
	case fmt.Stringer:
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return NullValue{}
		}
		return TextValue(v.String())
	default:
		return TextValue(fmt.Sprint(v))
	}
}

func rowsFromSlice(items []any) ([]map[string]any, bool) {
	rows := make([]map[string]any, 0, len(items))
	for _, item := range items {
		switch row := item.(type) {
		case map[string]any:
			rows = append(rows, row)
		case map[string]string:
			converted := make(map[string]any, len(row))
			for key, cell := range row {
				converted[key] = cell
			}
			rows = append(rows, converted)
		default:
			return nil, false
		}
	}
	return rows, true
}

// AsNumber coerces v into a float. Text is trimmed and may carry grouping
// commas or a leading currency symbol.
func AsNumber(v Value) (float64, bool) {
	switch val := v.(type) {
	case NumberValue:
		return float64(val), true
	case BoolValue:
		if val {
			return 1, true
		}
		return 0, true
	case TextValue:
		cleaned := strings.TrimSpace(string(val))
		cleaned = strings.TrimPrefix(cleaned, "฿")
		cleaned = strings.TrimPrefix(cleaned, "$")
		cleaned = strings.ReplaceAll(cleaned, ",", "")
		cleaned = strings.TrimSpace(cleaned)
		if cleaned == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// AsDate coerces v into a time. Text is parsed with dateparse, which accepts
// ISO dates, RFC3339 timestamps and the common numeric layouts.
func AsDate(v Value) (time.Time, bool) {
	switch val := v.(type) {
	case DateValue:
		return time.Time(val), true
	case TextValue:
		trimmed := strings.TrimSpace(string(val))
		if trimmed == "" {
			return time.Time{}, false
		}
		t, err := dateparse.ParseAny(trimmed)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	default:
		return time.Time{}, false
	}
}

// Truthy decides the boolean reading of v. Strings that strconv.ParseBool
// understands ("false", "0", "true", ...) follow it; any other non-empty
// string is true.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case BoolValue:
		return bool(val)
	case NumberValue:
		return val != 0
	case TextValue:
		trimmed := strings.TrimSpace(string(val))
		if trimmed == "" {
			return false
		}
		if b, err := strconv.ParseBool(trimmed); err == nil {
			return b
		}
		return true
	case DateValue:
		return !time.Time(val).IsZero()
	case TableValue:
		return len(val) > 0
	default:
		return false
	}
}

// AsTable coerces v into rows. Text holding a JSON array of objects is
// decoded.
func AsTable(v Value) (TableValue, bool) {
	switch val := v.(type) {
	case TableValue:
		return val, true
	case TextValue:
		trimmed := strings.TrimSpace(string(val))
		if !strings.HasPrefix(trimmed, "[") {
			return nil, false
		}
		var rows []map[string]any
		if err := json.Unmarshal([]byte(trimmed), &rows); err != nil {
			return nil, false
		}
		return TableValue(rows), true
	default:
		return nil, false
	}
}
