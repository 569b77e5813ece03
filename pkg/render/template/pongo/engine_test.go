package pongo_test

import (
	"embed"
	"io"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-doctemplate/pkg/render/template/pongo"
	"github.com/goliatone/go-doctemplate/pkg/testsupport"
)

//go:embed testdata/layouts/*
var testLayouts embed.FS

func newEngine(t *testing.T, options ...pongo.Option) *pongo.Engine {
	t.Helper()
	layouts, err := fs.Sub(testLayouts, "testdata/layouts")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}
	engine, err := pongo.New(layouts, options...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngine_RenderLayoutWithGlobals(t *testing.T) {
	engine := newEngine(t, pongo.WithGlobals(map[string]any{"printedLabel": "พิมพ์เมื่อ"}))

	data := map[string]any{"title": "  ใบเสร็จรับเงิน ", "printDate": "18 ตุลาคม 2569"}
	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderLayout("header", data, w)
	})

	want := testsupport.MustReadGolden(t, filepath.Join("testdata", "header.golden"), result)
	if diff := cmp.Diff(want, result); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, written); diff != "" {
		t.Fatalf("writer mismatch (-want +got):\n%s", diff)
	}

	// cached layout picks up globals changed after the first render
	engine.SetGlobals(map[string]any{"printedLabel": "Printed"})
	result, err := engine.RenderLayout("header.tpl", data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if diff := cmp.Diff("ใบเสร็จรับเงิน | Printed 18 ตุลาคม 2569\n", result); diff != "" {
		t.Fatalf("globals mismatch (-want +got):\n%s", diff)
	}
}

func TestEngine_RenderDataOverridesGlobals(t *testing.T) {
	engine := newEngine(t, pongo.WithGlobals(map[string]any{"printedLabel": "global", "title": "global"}))

	got, err := engine.RenderLayout("header", map[string]any{"title": "local", "printDate": "today"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if diff := cmp.Diff("local | global today\n", got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestEngine_StructDataUsesJSONTags(t *testing.T) {
	engine := newEngine(t, pongo.WithExtension("html"))

	type page struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	got, err := engine.RenderLayout("page", page{Title: "สัญญา", Body: "<p>ข้อ 1</p>"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if diff := cmp.Diff("<h1>สัญญา</h1>\n<p>ข้อ 1</p>\n", got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestEngine_RenderString(t *testing.T) {
	engine := newEngine(t)

	tests := []struct {
		name    string
		source  string
		data    any
		want    string
		wantErr bool
	}{
		{name: "escapes values", source: "{{ v }}", data: map[string]any{"v": "<b>"}, want: "&lt;b&gt;"},
		{name: "trim filter", source: "[{{ v|trim }}]", data: map[string]any{"v": "  x  "}, want: "[x]"},
		{name: "nil data", source: "static", data: nil, want: "static"},
		{name: "syntax error", source: "{% if %}", wantErr: true},
		{name: "non object data", source: "{{ v }}", data: []string{"a"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.RenderString(tt.source, tt.data)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEngine_Errors(t *testing.T) {
	if _, err := pongo.New(nil); err == nil {
		t.Fatal("expected error without layouts")
	}
	if _, err := newEngine(t).RenderLayout("missing", nil); err == nil {
		t.Fatal("expected error for missing layout")
	}
}
