package console

import (
	"context"

	"github.com/urbanexpress/storefront/internal/catalog"
)

var categoryCommands = group{
	"list": {
		summary: "list all categories",
		run: func(_ context.Context, app *App, _ *input) (any, error) {
			return app.Storefront.Catalog.Categories(), nil
		},
	},
	"active": {
		summary: "list active categories",
		run: func(_ context.Context, app *App, _ *input) (any, error) {
			return app.Storefront.Catalog.ActiveCategories(), nil
		},
	},
	"add": {
		summary: "add a category from -data",
		flags:   []string{"data"},
		run: func(_ context.Context, app *App, in *input) (any, error) {
			var payload catalog.CategoryInput
			if err := decode(in, &payload); err != nil {
				return nil, err
			}
			return map[string]any{"id": app.Storefront.Catalog.AddCategory(payload)}, nil
		},
	},
	"update": {
		summary: "patch category -id with -data",
		flags:   []string{"id", "data"},
		run: func(_ context.Context, app *App, in *input) (any, error) {
			id, err := requireID(in)
			if err != nil {
				return nil, err
			}
			var patch catalog.CategoryPatch
			if err := decode(in, &patch); err != nil {
				return nil, err
			}
			if !app.Storefront.Catalog.UpdateCategory(id, patch) {
				return nil, notFound("category", id)
			}
			return map[string]any{"id": id, "updated": true}, nil
		},
	},
}

var unitCommands = group{
	"list": {
		summary: "list all units",
		run: func(_ context.Context, app *App, _ *input) (any, error) {
			return app.Storefront.Catalog.Units(), nil
		},
	},
	"add": {
		summary: "add a unit from -data",
		flags:   []string{"data"},
		run: func(_ context.Context, app *App, in *input) (any, error) {
			var payload catalog.UnitInput
			if err := decode(in, &payload); err != nil {
				return nil, err
			}
			return map[string]any{"id": app.Storefront.Catalog.AddUnit(payload)}, nil
		},
	},
	"update": {
		summary: "patch unit -id with -data",
		flags:   []string{"id", "data"},
		run: func(_ context.Context, app *App, in *input) (any, error) {
			id, err := requireID(in)
			if err != nil {
				return nil, err
			}
			var patch catalog.UnitPatch
			if err := decode(in, &patch); err != nil {
				return nil, err
			}
			if !app.Storefront.Catalog.UpdateUnit(id, patch) {
				return nil, notFound("unit", id)
			}
			return map[string]any{"id": id, "updated": true}, nil
		},
	},
}

var productCommands = group{
	"list": {
		summary: "list all products",
		run: func(_ context.Context, app *App, _ *input) (any, error) {
			return app.Storefront.Catalog.Products(), nil
		},
	},
	"get": {
		summary: "show product -id",
		flags:   []string{"id"},
		run: func(_ context.Context, app *App, in *input) (any, error) {
			id, err := requireID(in)
			if err != nil {
				return nil, err
			}
			product, ok := app.Storefront.Catalog.Product(id)
			if !ok {
				return nil, notFound("product", id)
			}
			return product, nil
		},
	},
	"add": {
		summary: "add a product from -data",
		flags:   []string{"data"},
		run: func(_ context.Context, app *App, in *input) (any, error) {
			var payload catalog.ProductInput
			if err := decode(in, &payload); err != nil {
				return nil, err
			}
			return map[string]any{"id": app.Storefront.Catalog.AddProduct(payload)}, nil
		},
	},
	"update": {
		summary: "patch product -id with -data",
		flags:   []string{"id", "data"},
		run: func(_ context.Context, app *App, in *input) (any, error) {
			id, err := requireID(in)
			if err != nil {
				return nil, err
			}
			var patch catalog.ProductPatch
			if err := decode(in, &patch); err != nil {
				return nil, err
			}
			if !app.Storefront.Catalog.UpdateProduct(id, patch) {
				return nil, notFound("product", id)
			}
			return map[string]any{"id": id, "updated": true}, nil
		},
	},
	"deactivate": {
		summary: "hide product -id from the storefront",
		flags:   []string{"id"},
		run: func(_ context.Context, app *App, in *input) (any, error) {
			id, err := requireID(in)
			if err != nil {
				return nil, err
			}
			if !app.Storefront.Catalog.DeactivateProduct(id) {
				return nil, notFound("product", id)
			}
			return map[string]any{"id": id, "isActive": false}, nil
		},
	},
}
