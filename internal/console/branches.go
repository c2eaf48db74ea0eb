package console

import (
	"context"
	"time"

	"github.com/urbanexpress/storefront/internal/branches"
)

var branchCommands = group{
	"list": {
		summary: "list all branches",
		run: func(_ context.Context, app *App, _ *input) (any, error) {
			return app.Storefront.Branches.Branches(), nil
		},
	},
	"get": {
		summary: "show branch -id",
		flags:   []string{"id"},
		run: func(_ context.Context, app *App, in *input) (any, error) {
			id, err := requireID(in)
			if err != nil {
				return nil, err
			}
			branch, ok := app.Storefront.Branches.Branch(id)
			if !ok {
				return nil, notFound("branch", id)
			}
			return branch, nil
		},
	},
	"add": {
		summary: "add a branch from -data",
		flags:   []string{"data"},
		run: func(_ context.Context, app *App, in *input) (any, error) {
			var payload branches.BranchInput
			if err := decode(in, &payload); err != nil {
				return nil, err
			}
			return map[string]any{"id": app.Storefront.Branches.AddBranch(payload)}, nil
		},
	},
	"update": {
		summary: "patch branch -id with -data",
		flags:   []string{"id", "data"},
		run: func(_ context.Context, app *App, in *input) (any, error) {
			id, err := requireID(in)
			if err != nil {
				return nil, err
			}
			var patch branches.BranchPatch
			if err := decode(in, &patch); err != nil {
				return nil, err
			}
			if !app.Storefront.Branches.UpdateBranch(id, patch) {
				return nil, notFound("branch", id)
			}
			return map[string]any{"id": id, "updated": true}, nil
		},
	},
	"delete": {
		summary: "delete branch -id",
		flags:   []string{"id"},
		run: func(_ context.Context, app *App, in *input) (any, error) {
			id, err := requireID(in)
			if err != nil {
				return nil, err
			}
			if !app.Storefront.Branches.DeleteBranch(id) {
				return nil, notFound("branch", id)
			}
			return map[string]any{"id": id, "deleted": true}, nil
		},
	},
	"hours": {
		summary: "report whether branch -id is open now (local time)",
		flags:   []string{"id"},
		run: func(_ context.Context, app *App, in *input) (any, error) {
			id, err := requireID(in)
			if err != nil {
				return nil, err
			}
			branch, ok := app.Storefront.Branches.Branch(id)
			if !ok {
				return nil, notFound("branch", id)
			}
			now := app.Storefront.Now().In(time.Local)
			return map[string]any{
				"id":           branch.ID,
				"at":           now.Format("15:04"),
				"pickupOpen":   branch.IsActive && branch.PickupService.IsOpenAt(now),
				"deliveryOpen": branch.IsActive && branch.DeliveryService.IsOpenAt(now),
			}, nil
		},
	},
}
