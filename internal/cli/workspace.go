package cli

import (
	"context"
	"fmt"
	"strings"

	doctemplate "github.com/goliatone/go-doctemplate"
	"github.com/goliatone/go-doctemplate/pkg/catalog"
	"github.com/goliatone/go-doctemplate/pkg/loader"
	"github.com/goliatone/go-doctemplate/pkg/locale"
	"github.com/goliatone/go-doctemplate/pkg/model"
	"github.com/goliatone/go-doctemplate/pkg/records"
	"github.com/goliatone/go-doctemplate/pkg/storage"
)

// Collection names inside the sqlite records table.
const (
	collectionTemplates   = "templates"
	collectionCustomers   = "customers"
	collectionContractors = "contractors"
	collectionContracts   = "contracts"
)

// workspace bundles the engine with the catalog and record repositories the
// commands operate on.
type workspace struct {
	engine      *doctemplate.Engine
	catalog     *catalog.Catalog
	customers   storage.Repository[records.Customer]
	contractors storage.Repository[records.Contractor]
	contracts   storage.Repository[records.Contract]
	close       func() error
}

// openWorkspace builds the engine from config and opens the catalog. Built-in
// templates are seeded on every start; definitions from the templates
// directory overwrite stored ones with the same id.
func (a *app) openWorkspace(ctx context.Context) (*workspace, error) {
	loc, err := locale.Lookup(a.v.GetString(keyLocale))
	if err != nil {
		return nil, err
	}

	ws := &workspace{
		engine: doctemplate.New(
			doctemplate.WithLogger(a.logger),
			doctemplate.WithLocale(loc),
		),
		close: func() error { return nil },
	}

	var templates storage.Repository[model.TemplateDefinition]
	if path := strings.TrimSpace(a.v.GetString(keyDB)); path != "" {
		db, err := storage.Open(ctx, path)
		if err != nil {
			return nil, err
		}
		templates = storage.NewSQLite[model.TemplateDefinition](db, collectionTemplates)
		ws.customers = storage.NewSQLite[records.Customer](db, collectionCustomers)
		ws.contractors = storage.NewSQLite[records.Contractor](db, collectionContractors)
		ws.contracts = storage.NewSQLite[records.Contract](db, collectionContracts)
		ws.close = db.Close
		a.logger.Debug().Str("db", path).Msg("sqlite catalog opened")
	} else {
		templates = storage.NewMemory[model.TemplateDefinition]()
		ws.customers = storage.NewMemory[records.Customer]()
		ws.contractors = storage.NewMemory[records.Contractor]()
		ws.contracts = storage.NewMemory[records.Contract]()
	}
	ws.catalog = catalog.New(templates)

	builtin, err := loader.Builtin()
	if err != nil {
		_ = ws.close()
		return nil, err
	}
	added, err := ws.catalog.Seed(ctx, builtin.Templates())
	if err != nil {
		_ = ws.close()
		return nil, fmt.Errorf("failed to seed built-in templates: %w", err)
	}
	a.logger.Debug().Int("added", added).Msg("built-in templates seeded")

	if dir := strings.TrimSpace(a.v.GetString(keyTemplates)); dir != "" {
		if _, err := ws.importTemplates(ctx, dir); err != nil {
			_ = ws.close()
			return nil, err
		}
		a.logger.Debug().Str("dir", dir).Msg("template directory loaded")
	}
	return ws, nil
}

// importTemplates saves every definition found at path into the catalog.
func (ws *workspace) importTemplates(ctx context.Context, path string) ([]model.TemplateDefinition, error) {
	store, err := loader.LoadPath(path)
	if err != nil {
		return nil, err
	}
	saved := make([]model.TemplateDefinition, 0, store.Len())
	for _, def := range store.Templates() {
		stored, err := ws.catalog.Save(ctx, def)
		if err != nil {
			return saved, fmt.Errorf("failed to import %q from %s: %w", def.ID, store.Source(def.ID), err)
		}
		saved = append(saved, stored)
	}
	return saved, nil
}

// resolveTemplate accepts a catalog id or a path to a definition file.
func (ws *workspace) resolveTemplate(ctx context.Context, ref string) (model.TemplateDefinition, error) {
	def, err := ws.catalog.Get(ctx, ref)
	if err == nil {
		return def, nil
	}
	store, loadErr := loader.LoadPath(ref)
	if loadErr != nil {
		return model.TemplateDefinition{}, fmt.Errorf("template %q not found in catalog and not loadable as a file: %w", ref, err)
	}
	defs := store.Templates()
	if len(defs) != 1 {
		return model.TemplateDefinition{}, fmt.Errorf("%s holds %d templates, expected exactly one", ref, len(defs))
	}
	return defs[0], nil
}

// projectContract loads a contract with its parties and projects them.
func (ws *workspace) projectContract(ctx context.Context, id string) (model.RenderContext, records.Contract, error) {
	contract, err := ws.contracts.Get(ctx, id)
	if err != nil {
		return model.RenderContext{}, records.Contract{}, fmt.Errorf("failed to load contract %q: %w", id, err)
	}

	var customer *records.Customer
	if contract.CustomerID != "" {
		c, err := ws.customers.Get(ctx, contract.CustomerID)
		if err != nil {
			return model.RenderContext{}, contract, fmt.Errorf("failed to load customer %q: %w", contract.CustomerID, err)
		}
		customer = &c
	}

	var contractor *records.Contractor
	if contract.ContractorID != "" {
		c, err := ws.contractors.Get(ctx, contract.ContractorID)
		if err != nil {
			return model.RenderContext{}, contract, fmt.Errorf("failed to load contractor %q: %w", contract.ContractorID, err)
		}
		contractor = &c
	}

	return ws.engine.Project(&contract, customer, contractor), contract, nil
}
