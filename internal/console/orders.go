package console

import (
	"context"
	"fmt"

	"github.com/urbanexpress/storefront/internal/orders"
	"github.com/urbanexpress/storefront/pkg/enums"
	pkgerrors "github.com/urbanexpress/storefront/pkg/errors"
	"github.com/urbanexpress/storefront/pkg/types"
	"github.com/urbanexpress/storefront/pkg/validators"
)

var orderCommands = group{
	"list": {
		summary: "list orders, optionally for -branch",
		flags:   []string{"branch"},
		run: func(_ context.Context, app *App, in *input) (any, error) {
			if in.branch != "" {
				return app.Storefront.Orders.OrdersByBranch(types.ID(in.branch)), nil
			}
			return app.Storefront.Orders.Orders(), nil
		},
	},
	"get": {
		summary: "show order -id",
		flags:   []string{"id"},
		run: func(_ context.Context, app *App, in *input) (any, error) {
			id, err := requireID(in)
			if err != nil {
				return nil, err
			}
			order, ok := app.Storefront.Orders.Order(id)
			if !ok {
				return nil, notFound("order", id)
			}
			return order, nil
		},
	},
	"add": {
		summary: "create a pending order from -data",
		flags:   []string{"data"},
		run: func(_ context.Context, app *App, in *input) (any, error) {
			var payload orders.Input
			if err := decode(in, &payload); err != nil {
				return nil, err
			}
			if _, ok := app.Storefront.Branches.Branch(payload.BranchID); !ok {
				return nil, notFound("branch", payload.BranchID)
			}
			cleanCustomer(&payload.Customer)
			payload.Notes = validators.SanitizeString(payload.Notes, maxNotesLen)
			id := app.Storefront.Orders.AddOrder(payload)
			order, _ := app.Storefront.Orders.Order(id)
			return order, nil
		},
	},
	"update": {
		summary: "patch order -id with -data",
		flags:   []string{"id", "data"},
		run: func(_ context.Context, app *App, in *input) (any, error) {
			id, err := requireID(in)
			if err != nil {
				return nil, err
			}
			var patch orders.Patch
			if err := decode(in, &patch); err != nil {
				return nil, err
			}
			if patch.Customer != nil {
				cleanCustomer(patch.Customer)
			}
			if patch.Notes != nil {
				notes := validators.SanitizeString(*patch.Notes, maxNotesLen)
				patch.Notes = &notes
			}
			if !app.Storefront.Orders.UpdateOrder(id, patch) {
				return nil, notFound("order", id)
			}
			order, _ := app.Storefront.Orders.Order(id)
			return order, nil
		},
	},
	"status": {
		summary: "set order -id to -status",
		flags:   []string{"id", "status"},
		run: func(_ context.Context, app *App, in *input) (any, error) {
			id, err := requireID(in)
			if err != nil {
				return nil, err
			}
			status, err := enums.ParseOrderStatus(in.status)
			if err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid -status")
			}
			if !app.Storefront.Orders.UpdateOrderStatus(id, status) {
				return nil, notFound("order", id)
			}
			return map[string]any{"id": id, "status": status}, nil
		},
	},
	"assign": {
		summary: "assign branch staff -staff of -type (pickup|delivery) to order -id",
		flags:   []string{"id", "type", "staff", "eta"},
		run: runAssign,
	},
	"cancel": {
		summary: "cancel order -id within the grace period",
		flags:   []string{"id"},
		run: func(_ context.Context, app *App, in *input) (any, error) {
			id, err := requireID(in)
			if err != nil {
				return nil, err
			}
			if err := app.Storefront.CancelOrder(id); err != nil {
				return nil, err
			}
			return map[string]any{"id": id, "status": enums.OrderStatusCancelled}, nil
		},
	},
	"share": {
		summary: "print the WhatsApp link for order -id to -phone",
		flags:   []string{"id", "phone"},
		run: func(_ context.Context, app *App, in *input) (any, error) {
			id, err := requireID(in)
			if err != nil {
				return nil, err
			}
			phone := in.phone
			if phone == "" {
				phone = app.WhatsAppPhone
			}
			if err := requireFlag(phone, "phone"); err != nil {
				return nil, err
			}
			link, err := app.Storefront.ShareOrder(id, phone)
			if err != nil {
				return nil, err
			}
			return map[string]any{"id": id, "url": link}, nil
		},
	},
}

func runAssign(_ context.Context, app *App, in *input) (any, error) {
	id, err := requireID(in)
	if err != nil {
		return nil, err
	}
	staffType := enums.StaffType(in.staffType)
	if !staffType.IsValid() {
		return nil, usageError(fmt.Sprintf("-type must be %s or %s", enums.StaffTypePickup, enums.StaffTypeDelivery))
	}
	if err := requireFlag(in.staff, "staff"); err != nil {
		return nil, err
	}

	order, ok := app.Storefront.Orders.Order(id)
	if !ok {
		return nil, notFound("order", id)
	}
	branch, ok := app.Storefront.Branches.Branch(order.BranchID)
	if !ok {
		return nil, notFound("branch", order.BranchID)
	}
	member, ok := branch.FindStaff(types.ID(in.staff))
	if !ok {
		return nil, notFound("staff member", types.ID(in.staff))
	}

	app.Storefront.Orders.AssignStaffToOrder(id, staffType, orders.StaffAssignment{
		ID:            member.ID,
		Name:          member.Name,
		Phone:         member.Phone,
		EstimatedTime: in.eta,
	})
	order, _ = app.Storefront.Orders.Order(id)
	return order, nil
}

// cleanCustomer trims and caps the free-text customer fields.
func cleanCustomer(c *orders.Customer) {
	c.Name = validators.SanitizeString(c.Name, maxNameLen)
	c.Phone = validators.SanitizeString(c.Phone, maxPhoneLen)
	c.Address = validators.SanitizeString(c.Address, maxNotesLen)
}
