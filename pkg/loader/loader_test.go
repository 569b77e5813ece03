package loader_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-doctemplate/pkg/loader"
	"github.com/goliatone/go-doctemplate/pkg/model"
	"github.com/goliatone/go-doctemplate/pkg/validation"
)

func TestLoadFS_SingleAndList(t *testing.T) {
	store, err := loader.LoadFS(os.DirFS(filepath.Join("testdata", "basic")))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	var ids []string
	for _, def := range store.Templates() {
		ids = append(ids, def.ID)
	}
	if diff := cmp.Diff([]string{"greeting", "invoice", "quotation"}, ids); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}

	greeting, ok := store.Template("greeting")
	if !ok {
		t.Fatal("greeting not loaded")
	}
	if greeting.Name != "ทักทาย" || greeting.Category != model.CategoryMemo {
		t.Fatalf("defaults not applied: name=%q category=%q", greeting.Name, greeting.Category)
	}
	if greeting.Variables[1].Type != model.VariableTypeCurrency {
		t.Fatalf("variable type not normalised: %q", greeting.Variables[1].Type)
	}
	if greeting.Settings == nil || greeting.Settings.PageSize != model.PageSizeA4 {
		t.Fatalf("expected default settings, got %#v", greeting.Settings)
	}
	if store.Source("greeting") != "greeting.json" {
		t.Fatalf("unexpected source %q", store.Source("greeting"))
	}

	invoice, _ := store.Template("invoice")
	if invoice.Settings.PageSize != model.PageSizeLetter || invoice.Settings.FontSize != 12 {
		t.Fatalf("settings not merged with defaults: %#v", invoice.Settings)
	}
}

func TestLoadFS_Decorators(t *testing.T) {
	tag := model.DecoratorFunc(func(def *model.TemplateDefinition) error {
		def.Tags = append(def.Tags, "imported")
		return nil
	})
	store, err := loader.LoadFS(os.DirFS(filepath.Join("testdata", "basic")), loader.WithDecorators(tag))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	for _, def := range store.Templates() {
		if diff := cmp.Diff([]string{"imported"}, def.Tags); diff != "" {
			t.Fatalf("%s tags mismatch (-want +got):\n%s", def.ID, diff)
		}
	}
}

func TestLoadFS_Errors(t *testing.T) {
	tests := []struct {
		dir  string
		want string
	}{
		{dir: "duplicate", want: `duplicate template "same"`},
		{dir: "invalid", want: "invalid JSON or YAML"},
	}
	for _, tt := range tests {
		t.Run(tt.dir, func(t *testing.T) {
			_, err := loader.LoadFS(os.DirFS(filepath.Join("testdata", tt.dir)))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadFS_NilFS(t *testing.T) {
	store, err := loader.LoadFS(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !store.Empty() {
		t.Fatal("expected empty store")
	}
}

func TestBuiltin_TemplatesAreValid(t *testing.T) {
	store, err := loader.Builtin()
	if err != nil {
		t.Fatalf("load builtin: %v", err)
	}
	if store.Len() != 3 {
		t.Fatalf("expected 3 builtin templates, got %d", store.Len())
	}

	want := map[string]model.Category{
		"builtin-contract":   model.CategoryContract,
		"builtin-receipt":    model.CategoryReceipt,
		"builtin-completion": model.CategoryCompletion,
	}
	for id, category := range want {
		def, ok := store.Template(id)
		if !ok {
			t.Fatalf("builtin %q missing", id)
		}
		if def.Category != category {
			t.Fatalf("%s category = %q, want %q", id, def.Category, category)
		}
		if result := validation.Validate(def); !result.Valid {
			t.Fatalf("%s failed validation: %v", id, result.Issues)
		}
	}

	contract, _ := store.Template("builtin-contract")
	if len(contract.Variables) != 19 {
		t.Fatalf("contract declares %d variables, want 19", len(contract.Variables))
	}
}

func TestLoadPath(t *testing.T) {
	store, err := loader.LoadPath(filepath.Join("testdata", "basic", "pack.yaml"))
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	if store.Len() != 2 {
		t.Fatalf("expected only the file's 2 templates, got %d", store.Len())
	}

	store, err = loader.LoadPath(filepath.Join("testdata", "basic"))
	if err != nil {
		t.Fatalf("load dir: %v", err)
	}
	if store.Len() != 3 {
		t.Fatalf("expected 3 templates from directory, got %d", store.Len())
	}

	if _, err := loader.LoadPath(filepath.Join("testdata", "basic", "README.txt")); err == nil {
		t.Fatal("expected error for non template file")
	}
	if _, err := loader.LoadPath(filepath.Join("testdata", "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
