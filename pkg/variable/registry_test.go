package variable

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-doctemplate/pkg/locale"
	"github.com/goliatone/go-doctemplate/pkg/model"
)

func fixedClock() time.Time {
	return time.Date(2026, time.October, 18, 9, 30, 0, 0, time.UTC)
}

func TestRegistry_BuiltinsCoverClosedSet(t *testing.T) {
	reg := NewRegistry()
	for _, typ := range model.VariableTypes() {
		if !reg.Has(typ) {
			t.Fatalf("expected builtin kind for %q", typ)
		}
	}
	if got := len(reg.Types()); got != len(model.VariableTypes()) {
		t.Fatalf("expected %d kinds, got %d", len(model.VariableTypes()), got)
	}
}

func TestRegistry_RegisterDuplicate(t *testing.T) {
	reg := NewRegistry()
	err := reg.Register(Kind{Type: model.VariableTypeText, Format: formatText})
	if err == nil || !strings.Contains(err.Error(), "already registered") {
		t.Fatalf("expected duplicate registration error, got %v", err)
	}

	custom := model.VariableType("percent")
	if err := reg.Register(Kind{
		Type: custom,
		Format: func(f *locale.Formatter, v Value) string {
			n, _ := AsNumber(v)
			return f.Number(n) + "%"
		},
	}); err != nil {
		t.Fatalf("register custom kind: %v", err)
	}
	if got := reg.Format(custom, 12.5); got != "12.5%" {
		t.Fatalf("custom format = %q", got)
	}
}

func TestRegistry_Format(t *testing.T) {
	reg := NewRegistry()
	date := time.Date(2026, time.October, 18, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		typ    model.VariableType
		raw    any
		expect string
	}{
		{name: "currency grouped", typ: model.VariableTypeCurrency, raw: 1000, expect: "฿1,000.00"},
		{name: "currency from text", typ: model.VariableTypeCurrency, raw: "2,500.5", expect: "฿2,500.50"},
		{name: "currency non numeric", typ: model.VariableTypeCurrency, raw: "abc", expect: "฿0.00"},
		{name: "currency empty", typ: model.VariableTypeCurrency, raw: "", expect: "฿0.00"},
		{name: "number grouped", typ: model.VariableTypeNumber, raw: 1234567, expect: "1,234,567"},
		{name: "number decimals", typ: model.VariableTypeNumber, raw: 12.25, expect: "12.25"},
		{name: "number non numeric", typ: model.VariableTypeNumber, raw: "n/a", expect: "0"},
		{name: "date from time", typ: model.VariableTypeDate, raw: date, expect: "18 ตุลาคม 2569"},
		{name: "date from iso", typ: model.VariableTypeDate, raw: "2026-10-18", expect: "18 ตุลาคม 2569"},
		{name: "date unparseable", typ: model.VariableTypeDate, raw: "next week", expect: "next week"},
		{name: "boolean true", typ: model.VariableTypeBoolean, raw: true, expect: "ใช่"},
		{name: "boolean false text", typ: model.VariableTypeBoolean, raw: "false", expect: "ไม่ใช่"},
		{name: "boolean non empty text", typ: model.VariableTypeBoolean, raw: "yes please", expect: "ใช่"},
		{name: "boolean zero", typ: model.VariableTypeBoolean, raw: 0, expect: "ไม่ใช่"},
		{name: "text passthrough", typ: model.VariableTypeText, raw: "สมชาย", expect: "สมชาย"},
		{name: "text of date", typ: model.VariableTypeText, raw: date, expect: "18 ตุลาคม 2569"},
		{name: "text of number", typ: model.VariableTypeText, raw: 42.5, expect: "42.5"},
		{name: "image opaque", typ: model.VariableTypeImage, raw: SampleImage, expect: SampleImage},
		{name: "qrcode opaque", typ: model.VariableTypeQRCode, raw: "ABC-1", expect: "ABC-1"},
		{name: "unknown type", typ: model.VariableType("mystery"), raw: 7, expect: "7"},
		{name: "nil value text", typ: model.VariableTypeText, raw: nil, expect: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := reg.Format(tc.typ, tc.raw); got != tc.expect {
				t.Fatalf("Format(%s, %#v) = %q, want %q", tc.typ, tc.raw, got, tc.expect)
			}
		})
	}
}

func TestRegistry_FormatTable(t *testing.T) {
	reg := NewRegistry()
	got := reg.Format(model.VariableTypeTable, []map[string]any{
		{"item": "<pipe>", "qty": 2},
		{"item": "tile", "note": "cracked"},
	})
	want := "<table><thead><tr><th>item</th><th>qty</th><th>note</th></tr></thead><tbody>" +
		"<tr><td>&lt;pipe&gt;</td><td>2</td><td></td></tr>" +
		"<tr><td>tile</td><td></td><td>cracked</td></tr>" +
		"</tbody></table>"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("table mismatch (-want +got):\n%s", diff)
	}

	fromJSON := reg.Format(model.VariableTypeTable, `[{"a":"1"}]`)
	if !strings.Contains(fromJSON, "<td>1</td>") {
		t.Fatalf("expected JSON rows to render, got %q", fromJSON)
	}
}

func TestRegistry_Coerce(t *testing.T) {
	reg := NewRegistry()

	if v, err := reg.Coerce(model.VariableTypeCurrency, "1,500"); err != nil || v != NumberValue(1500) {
		t.Fatalf("expected 1500, got %v (%v)", v, err)
	}
	if _, err := reg.Coerce(model.VariableTypeNumber, "ten"); !errors.Is(err, ErrNotCoercible) {
		t.Fatalf("expected ErrNotCoercible, got %v", err)
	}
	if _, err := reg.Coerce(model.VariableTypeDate, "not a date"); !errors.Is(err, ErrNotCoercible) {
		t.Fatalf("expected ErrNotCoercible for date, got %v", err)
	}
	if v, err := reg.Coerce(model.VariableTypeBoolean, "0"); err != nil || v != BoolValue(false) {
		t.Fatalf("expected false, got %v (%v)", v, err)
	}
	if _, err := reg.Coerce(model.VariableType("mystery"), "x"); err == nil {
		t.Fatalf("expected unknown type error")
	}
}

func TestRegistry_Sample(t *testing.T) {
	reg := NewRegistry(WithClock(fixedClock))

	cases := []struct {
		typ    model.VariableType
		expect any
	}{
		{model.VariableTypeText, "ตัวอย่างชื่อลูกค้า"},
		{model.VariableTypeNumber, 123},
		{model.VariableTypeCurrency, 1000.00},
		{model.VariableTypeDate, "2026-10-18"},
		{model.VariableTypeBoolean, true},
		{model.VariableTypeImage, SampleImage},
		{model.VariableTypeSignature, SampleImage},
		{model.VariableTypeBarcode, SampleCode},
		{model.VariableTypeQRCode, SampleCode},
	}
	for _, tc := range cases {
		if diff := cmp.Diff(tc.expect, reg.Sample(tc.typ, "ชื่อลูกค้า")); diff != "" {
			t.Fatalf("sample %s mismatch (-want +got):\n%s", tc.typ, diff)
		}
	}

	rows, ok := reg.Sample(model.VariableTypeTable, "rows").([]map[string]any)
	if !ok || len(rows) != 2 || len(rows[0]) != 2 {
		t.Fatalf("expected two rows with two columns, got %#v", rows)
	}
	if reg.Sample(model.VariableType("mystery"), "x") != "" {
		t.Fatalf("expected empty sample for unknown type")
	}
}

func TestFromAny(t *testing.T) {
	date := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	var nilTime *time.Time

	cases := []struct {
		name   string
		raw    any
		expect Value
	}{
		{"nil", nil, NullValue{}},
		{"string", "x", TextValue("x")},
		{"int64", int64(5), NumberValue(5)},
		{"bool", true, BoolValue(true)},
		{"nil time pointer", nilTime, NullValue{}},
		{"slice of maps", []any{map[string]any{"a": 1}}, TableValue{{"a": 1}}},
		{"string rows", []map[string]string{{"a": "b"}}, TableValue{{"a": "b"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.expect, FromAny(tc.raw)); diff != "" {
				t.Fatalf("FromAny mismatch (-want +got):\n%s", diff)
			}
		})
	}

	got, ok := FromAny(date).(DateValue)
	if !ok || !time.Time(got).Equal(date) {
		t.Fatalf("expected DateValue for time.Time, got %#v", FromAny(date))
	}
}
