package variable

import (
	"fmt"
	"html"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-doctemplate/pkg/locale"
	"github.com/goliatone/go-doctemplate/pkg/model"
)

// SampleImage is a 1x1 transparent PNG used as preview payload for image and
// signature variables.
const SampleImage = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mP8/5+hHgAHggJ/PchI7wAAAABJRU5ErkJggg=="

// SampleCode is the preview payload for barcode and qrcode variables.
const SampleCode = "1234567890"

func builtinKinds() []Kind {
	return []Kind{
		{
			Type:   model.VariableTypeText,
			Format: formatText,
			Coerce: coerceText,
			Sample: func(label string, _ time.Time) any { return "ตัวอย่าง" + label },
		},
		{
			Type: model.VariableTypeNumber,
			Format: func(f *locale.Formatter, v Value) string {
				n, _ := AsNumber(v)
				return f.Number(n)
			},
			Coerce: coerceNumber,
			Sample: func(string, time.Time) any { return 123 },
		},
		{
			Type: model.VariableTypeCurrency,
			Format: func(f *locale.Formatter, v Value) string {
				n, _ := AsNumber(v)
				return f.Currency(n)
			},
			Coerce: coerceNumber,
			Sample: func(string, time.Time) any { return 1000.00 },
		},
		{
			Type: model.VariableTypeDate,
			Format: func(f *locale.Formatter, v Value) string {
				if t, ok := AsDate(v); ok {
					return f.LongDate(t)
				}
				return v.String()
			},
			Coerce: func(v Value) (Value, error) {
				t, ok := AsDate(v)
				if !ok {
					return nil, fmt.Errorf("%w: %q is not a date", ErrNotCoercible, v.String())
				}
				return DateValue(t), nil
			},
			Sample: func(_ string, now time.Time) any { return now.Format("2006-01-02") },
		},
		{
			Type: model.VariableTypeBoolean,
			Format: func(f *locale.Formatter, v Value) string {
				return f.Bool(Truthy(v))
			},
			Coerce: func(v Value) (Value, error) { return BoolValue(Truthy(v)), nil },
			Sample: func(string, time.Time) any { return true },
		},
		opaqueKind(model.VariableTypeImage, SampleImage),
		opaqueKind(model.VariableTypeSignature, SampleImage),
		opaqueKind(model.VariableTypeBarcode, SampleCode),
		opaqueKind(model.VariableTypeQRCode, SampleCode),
		{
			Type:   model.VariableTypeTable,
			Format: formatTable,
			Coerce: func(v Value) (Value, error) {
				rows, ok := AsTable(v)
				if !ok {
					return nil, fmt.Errorf("%w: expected a list of rows", ErrNotCoercible)
				}
				return rows, nil
			},
			Sample: func(string, time.Time) any {
				return []map[string]any{
					{"column1": "แถว 1 คอลัมน์ 1", "column2": "แถว 1 คอลัมน์ 2"},
					{"column1": "แถว 2 คอลัมน์ 1", "column2": "แถว 2 คอลัมน์ 2"},
				}
			},
		},
	}
}

// opaqueKind passes string payloads (data URIs, codes) through unchanged.
func opaqueKind(t model.VariableType, sample string) Kind {
	return Kind{
		Type: t,
		Format: func(_ *locale.Formatter, v Value) string {
			return v.String()
		},
		Coerce: func(v Value) (Value, error) {
			return TextValue(v.String()), nil
		},
		Sample: func(string, time.Time) any { return sample },
	}
}

func formatText(f *locale.Formatter, v Value) string {
	switch val := v.(type) {
	case DateValue:
		return f.LongDate(time.Time(val))
	case TableValue:
		return formatTable(f, val)
	default:
		return v.String()
	}
}

func coerceText(v Value) (Value, error) {
	return TextValue(v.String()), nil
}

func coerceNumber(v Value) (Value, error) {
	n, ok := AsNumber(v)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a number", ErrNotCoercible, v.String())
	}
	return NumberValue(n), nil
}

// formatTable renders rows as an HTML table. Columns follow first appearance
// with each row's keys taken in sorted order; cell text is escaped.
func formatTable(_ *locale.Formatter, v Value) string {
	rows, ok := AsTable(v)
	if !ok {
		return v.String()
	}
	if len(rows) == 0 {
		return ""
	}

	var columns []string
	seen := make(map[string]struct{})
	for _, row := range rows {
		keys := make([]string, 0, len(row))
		for key := range row {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			columns = append(columns, key)
		}
	}

	var b strings.Builder
	b.WriteString("<table><thead><tr>")
	for _, column := range columns {
		b.WriteString("<th>")
		b.WriteString(html.EscapeString(column))
		b.WriteString("</th>")
	}
	b.WriteString("</tr></thead><tbody>")
	for _, row := range rows {
		b.WriteString("<tr>")
		for _, column := range columns {
			b.WriteString("<td>")
			if cell, ok := row[column]; ok && cell != nil {
				b.WriteString(html.EscapeString(FromAny(cell).String()))
			}
			b.WriteString("</td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table>")
	return b.String()
}
