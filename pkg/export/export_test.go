package export_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-doctemplate/pkg/export"
	"github.com/goliatone/go-doctemplate/pkg/model"
	"github.com/goliatone/go-doctemplate/pkg/render"
	"github.com/goliatone/go-doctemplate/pkg/testsupport"
)

func renderedContract(t *testing.T) (model.RenderedDocument, model.TemplateDefinition) {
	t.Helper()
	def := model.TemplateDefinition{
		ID:       "c1",
		Name:     "สัญญาจ้าง",
		Category: model.CategoryContract,
		Body:     `<h1 style="color:red" onclick="x()">สัญญา</h1><p>ผู้ว่าจ้าง {{name}}</p><script>alert(1)</script>`,
		Variables: []model.VariableDefinition{
			{Name: "name", Label: "ชื่อ", Type: model.VariableTypeText},
		},
		Settings: &model.Settings{
			PageSize:    model.PageSizeA4,
			Orientation: model.OrientationLandscape,
			Margins:     model.Margins{Top: 10, Right: 15, Bottom: 10, Left: 15.5},
			FontSize:    14,
			FontFamily:  "Sarabun",
			Watermark:   &model.Watermark{Enabled: true, Text: "ฉบับร่าง", Opacity: 0.2, Rotation: -45},
		},
	}
	doc := render.New().Render(def, model.NewRenderContext(map[string]any{"name": "สมชาย & ภรรยา"}))
	return doc, def
}

func TestRegistry(t *testing.T) {
	reg, err := export.NewDefaultRegistry()
	if err != nil {
		t.Fatalf("default registry: %v", err)
	}
	if diff := cmp.Diff([]string{"html", "json", "markdown", "text"}, reg.List()); diff != "" {
		t.Fatalf("formats mismatch (-want +got):\n%s", diff)
	}

	for format, want := range map[string]string{"HTML": "html", " txt ": "text", "htm": "html", "json": "json", "md": "markdown"} {
		exporter, err := reg.Get(format)
		if err != nil {
			t.Fatalf("get %q: %v", format, err)
		}
		if exporter.Name() != want {
			t.Fatalf("get %q resolved to %q, want %q", format, exporter.Name(), want)
		}
	}

	if _, err := reg.Get("pdf"); err == nil || !strings.Contains(err.Error(), "available: html, json, markdown, text") {
		t.Fatalf("unexpected error %v", err)
	}
	if err := reg.Register(export.NewText()); err == nil {
		t.Fatal("expected duplicate registration error")
	}
	if err := reg.Register(nil); err == nil {
		t.Fatal("expected nil exporter error")
	}
	if err := reg.Alias("txt", "json"); err == nil {
		t.Fatal("expected taken alias error")
	}
	if err := reg.Alias("doc", "pdf"); err == nil {
		t.Fatal("expected unknown target error")
	}
}

func TestHTMLExporter(t *testing.T) {
	exporter, err := export.NewHTML(export.WithClock(testsupport.Clock))
	if err != nil {
		t.Fatalf("new html: %v", err)
	}
	doc, def := renderedContract(t)

	out, err := exporter.Export(context.Background(), doc, def)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	page := string(out)

	for _, want := range []string{
		"<!DOCTYPE html>",
		`<html lang="th">`,
		"<title>สัญญาจ้าง</title>",
		"size: A4 landscape;",
		"margin: 10mm 15mm 10mm 15.5mm;",
		"font-size: 14pt;",
		"สัญญา | พิมพ์เมื่อ 18 ตุลาคม 2569",
		"ฉบับร่าง",
		"opacity: 0.2;",
		"rotate(-45deg)",
		"<h1>สัญญา</h1>",
		"ลงชื่อ ผู้ทำสัญญา",
		"สมชาย &amp; ภรรยา",
	} {
		if !strings.Contains(page, want) {
			t.Fatalf("page missing %q:\n%s", want, page)
		}
	}
	for _, banned := range []string{"<script", "onclick", "color:red"} {
		if strings.Contains(page, banned) {
			t.Fatalf("page still contains %q", banned)
		}
	}
	if exporter.ContentType() != "text/html; charset=utf-8" {
		t.Fatalf("unexpected content type %q", exporter.ContentType())
	}
}

func TestHTMLExporter_CancelledContext(t *testing.T) {
	exporter, err := export.NewHTML()
	if err != nil {
		t.Fatalf("new html: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := exporter.Export(ctx, model.RenderedDocument{}, model.TemplateDefinition{}); err == nil {
		t.Fatal("expected context error")
	}
}

func TestTextExporter(t *testing.T) {
	doc, def := renderedContract(t)
	out, err := export.NewText().Export(context.Background(), doc, def)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	want := []string{
		"สัญญา",
		"ผู้ว่าจ้าง สมชาย & ภรรยา",
		"ลงชื่อ ผู้ทำสัญญา",
		"(...............................)",
		"ลงชื่อ พยาน",
		"(...............................)",
	}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Fatalf("text mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONExporter(t *testing.T) {
	doc := model.RenderedDocument{Body: "hello {{who}}", Category: model.CategoryMemo, Unresolved: []string{"who"}}
	def := model.TemplateDefinition{ID: "m1", Name: "memo", Category: model.CategoryMemo, CreatedAt: time.Now()}

	out, err := export.NewJSON().Export(context.Background(), doc, def)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	var decoded struct {
		Template struct {
			ID       string         `json:"id"`
			Settings model.Settings `json:"settings"`
		} `json:"template"`
		Document model.RenderedDocument `json:"document"`
	}
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Template.ID != "m1" || decoded.Template.Settings.PageSize != model.PageSizeA4 {
		t.Fatalf("unexpected template metadata %#v", decoded.Template)
	}
	if diff := cmp.Diff(doc, decoded.Document); diff != "" {
		t.Fatalf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestMarkdownExporter(t *testing.T) {
	doc, def := renderedContract(t)
	out, err := export.NewMarkdown().Export(context.Background(), doc, def)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	got := string(out)

	if !strings.HasPrefix(got, "# สัญญาจ้าง\n\n") {
		t.Fatalf("missing title heading:\n%s", got)
	}
	for _, want := range []string{"# สัญญา\n", "ผู้ว่าจ้าง สมชาย & ภรรยา", "ลงชื่อ พยาน"} {
		if !strings.Contains(got, want) {
			t.Fatalf("markdown missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "alert(1)") || strings.Contains(got, "<p>") {
		t.Fatalf("markup leaked into markdown:\n%s", got)
	}
}

func TestMarkdownExporter_Table(t *testing.T) {
	doc := model.RenderedDocument{
		Body:     "<table><thead><tr><th>รายการ</th><th>ราคา</th></tr></thead><tbody><tr><td>ปูน</td><td>100</td></tr></tbody></table>",
		Category: model.CategoryQuotation,
	}
	out, err := export.NewMarkdown().Export(context.Background(), doc, model.TemplateDefinition{})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	for _, want := range []string{"| รายการ | ราคา |", "| ปูน | 100 |"} {
		if !strings.Contains(string(out), want) {
			t.Fatalf("table row %q missing:\n%s", want, out)
		}
	}
}

func TestSanitizeBody_KeepsDataImages(t *testing.T) {
	got := export.SanitizeBody(`<img src="data:image/png;base64,iVBORw0KGgo=" alt="logo"><a href="javascript:x()">x</a>`)
	if !strings.Contains(got, `src="data:image/png;base64,iVBORw0KGgo="`) {
		t.Fatalf("data image dropped: %q", got)
	}
	if strings.Contains(got, "javascript:") {
		t.Fatalf("javascript url kept: %q", got)
	}
}
