package catalog_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-doctemplate/pkg/catalog"
	"github.com/goliatone/go-doctemplate/pkg/loader"
	"github.com/goliatone/go-doctemplate/pkg/model"
	"github.com/goliatone/go-doctemplate/pkg/storage"
	"github.com/goliatone/go-doctemplate/pkg/validation"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func newCatalog(t *testing.T) (*catalog.Catalog, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, time.October, 18, 8, 0, 0, 0, time.UTC)}
	seq := 0
	c := catalog.New(
		storage.NewMemory[model.TemplateDefinition](),
		catalog.WithClock(clock.Now),
		catalog.WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("tpl-%d", seq)
		}),
	)
	return c, clock
}

func template(name string, category model.Category, active bool) model.TemplateDefinition {
	return model.TemplateDefinition{
		Name:     name,
		Category: category,
		Body:     "{{value}}",
		IsActive: active,
		Variables: []model.VariableDefinition{
			{Name: "value", Label: "ค่า", Type: model.VariableTypeText},
		},
	}
}

func TestCatalog_CreateAndUpdate(t *testing.T) {
	ctx := context.Background()
	c, clock := newCatalog(t)

	created, err := c.Create(ctx, template("สัญญาจ้าง", model.CategoryContract, true))
	require.NoError(t, err)
	require.Equal(t, "tpl-1", created.ID)
	require.Equal(t, clock.now, created.CreatedAt)
	require.Equal(t, clock.now, created.UpdatedAt)
	require.NotNil(t, created.Settings, "defaults should be applied")

	clock.now = clock.now.Add(time.Hour)
	created.Description = "แก้ไขแล้ว"
	updated, err := c.Update(ctx, created)
	require.NoError(t, err)
	require.Equal(t, created.CreatedAt, updated.CreatedAt)
	require.Equal(t, clock.now, updated.UpdatedAt)

	got, err := c.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "แก้ไขแล้ว", got.Description)

	_, err = c.Create(ctx, got)
	require.Error(t, err, "creating an existing id must fail")
}

func TestCatalog_RejectsInvalidTemplates(t *testing.T) {
	ctx := context.Background()
	c, _ := newCatalog(t)

	def := template("x", "", true)
	def.Variables = append(def.Variables, model.VariableDefinition{Name: "Value", Label: "ซ้ำ", Type: model.VariableTypeText})

	_, err := c.Create(ctx, def)
	require.ErrorIs(t, err, catalog.ErrInvalidTemplate)

	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	codes := map[string]string{}
	for _, issue := range verr.Issues {
		codes[issue.Path] = issue.Code
	}
	require.Equal(t, validation.CodeLength, codes["name"])
	require.Equal(t, validation.CodeRequired, codes["category"])
	require.Equal(t, validation.CodeDuplicate, codes["variables[1].name"])

	all, err := c.List(ctx)
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestCatalog_UpdateMissing(t *testing.T) {
	c, _ := newCatalog(t)
	def := template("ไม่มี", model.CategoryMemo, true)
	def.ID = "nope"
	_, err := c.Update(context.Background(), def)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCatalog_Queries(t *testing.T) {
	ctx := context.Background()
	c, _ := newCatalog(t)

	defs := []model.TemplateDefinition{
		template("สัญญาจ้างช่าง", model.CategoryContract, true),
		template("สัญญาเช่า", model.CategoryContract, false),
		template("ใบเสร็จรับเงิน", model.CategoryReceipt, true),
		template("Invoice EN", model.CategoryInvoice, true),
		template("บันทึก", model.CategoryMemo, false),
	}
	defs[3].Description = "Monthly BILLING"
	for _, def := range defs {
		_, err := c.Create(ctx, def)
		require.NoError(t, err)
	}

	names := func(list []model.TemplateDefinition) []string {
		out := make([]string, 0, len(list))
		for _, def := range list {
			out = append(out, def.Name)
		}
		return out
	}

	found, err := c.Search(ctx, "สัญญา")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"สัญญาจ้างช่าง", "สัญญาเช่า"}, names(found))

	found, err = c.Search(ctx, "billing")
	require.NoError(t, err)
	require.Equal(t, []string{"Invoice EN"}, names(found))

	found, err = c.Search(ctx, "RECEIPT")
	require.NoError(t, err)
	require.Equal(t, []string{"ใบเสร็จรับเงิน"}, names(found))

	found, err = c.Search(ctx, "   ")
	require.NoError(t, err)
	require.Len(t, found, 5)

	found, err = c.ByCategory(ctx, model.CategoryContract)
	require.NoError(t, err)
	require.Equal(t, []string{"สัญญาจ้างช่าง"}, names(found))

	found, err = c.Active(ctx)
	require.NoError(t, err)
	require.Len(t, found, 3)

	stats, err := c.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, 5, stats.Total)
	require.Equal(t, 3, stats.Active)
	require.Equal(t, 2, stats.Inactive)
	require.Equal(t, catalog.CategoryCount{Category: model.CategoryContract, Count: 2}, stats.TopCategories[0])
	require.Len(t, stats.TopCategories, 4)
}

func TestCatalog_StatsKeepsTopFive(t *testing.T) {
	ctx := context.Background()
	c, _ := newCatalog(t)
	for _, category := range model.Categories() {
		_, err := c.Create(ctx, template("แม่แบบ "+string(category), category, true))
		require.NoError(t, err)
	}
	stats, err := c.Stats(ctx)
	require.NoError(t, err)
	require.Len(t, stats.TopCategories, 5)
	require.Equal(t, model.CategoryCompletion, stats.TopCategories[0].Category)
}

func TestCatalog_SetActiveAndDelete(t *testing.T) {
	ctx := context.Background()
	c, _ := newCatalog(t)
	created, err := c.Create(ctx, template("บันทึก", model.CategoryMemo, true))
	require.NoError(t, err)

	toggled, err := c.SetActive(ctx, created.ID, false)
	require.NoError(t, err)
	require.False(t, toggled.IsActive)

	require.NoError(t, c.Delete(ctx, created.ID))
	require.ErrorIs(t, c.Delete(ctx, created.ID), storage.ErrNotFound)
}

func TestCatalog_SeedBuiltins(t *testing.T) {
	ctx := context.Background()
	c, _ := newCatalog(t)
	store, err := loader.Builtin()
	require.NoError(t, err)

	added, err := c.Seed(ctx, store.Templates())
	require.NoError(t, err)
	require.Equal(t, 3, added)

	added, err = c.Seed(ctx, store.Templates())
	require.NoError(t, err)
	require.Zero(t, added)

	contract, err := c.Get(ctx, "builtin-contract")
	require.NoError(t, err)
	require.True(t, contract.IsActive)
}
