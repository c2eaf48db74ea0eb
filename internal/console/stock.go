package console

import (
	"context"

	"github.com/urbanexpress/storefront/internal/notifications"
	"github.com/urbanexpress/storefront/internal/stock"
	"github.com/urbanexpress/storefront/pkg/types"
)

var stockCommands = group{
	"list": {
		summary: "list all stock levels",
		run: func(_ context.Context, app *App, _ *input) (any, error) {
			return app.Storefront.Stock.Snapshot(), nil
		},
	},
	"get": {
		summary: "show stock of -product in -unit at -branch",
		flags:   []string{"branch", "product", "unit"},
		run: func(_ context.Context, app *App, in *input) (any, error) {
			if err := requireStockFlags(in); err != nil {
				return nil, err
			}
			b, p, u := types.ID(in.branch), types.ID(in.product), types.ID(in.unit)
			return map[string]any{
				"key":      stock.Key(b, p, u),
				"quantity": app.Storefront.Stock.GetStock(b, p, u),
			}, nil
		},
	},
	"set": {
		summary: "set stock of -product in -unit at -branch to -quantity",
		flags:   []string{"branch", "product", "unit", "quantity"},
		run: func(_ context.Context, app *App, in *input) (any, error) {
			if err := requireStockFlags(in); err != nil {
				return nil, err
			}
			quantity, err := parseDecimal(in.quantity, "quantity")
			if err != nil {
				return nil, err
			}
			b, p, u := types.ID(in.branch), types.ID(in.product), types.ID(in.unit)
			return map[string]any{
				"key":      stock.Key(b, p, u),
				"quantity": app.Storefront.Stock.UpdateStock(b, p, u, quantity),
			}, nil
		},
	},
}

func requireStockFlags(in *input) error {
	for flagName, value := range map[string]string{"branch": in.branch, "product": in.product, "unit": in.unit} {
		if err := requireFlag(value, flagName); err != nil {
			return err
		}
	}
	return nil
}

var notificationCommands = group{
	"list": {
		summary: "list notifications, newest first",
		run: func(_ context.Context, app *App, _ *input) (any, error) {
			return app.Storefront.Notifications.Notifications(), nil
		},
	},
	"unread": {
		summary: "count unread notifications",
		run: func(_ context.Context, app *App, _ *input) (any, error) {
			return map[string]any{"unread": app.Storefront.Notifications.UnreadCount()}, nil
		},
	},
	"add": {
		summary: "add a notification from -data",
		flags:   []string{"data"},
		run: func(_ context.Context, app *App, in *input) (any, error) {
			var payload notifications.Input
			if err := decode(in, &payload); err != nil {
				return nil, err
			}
			return map[string]any{"id": app.Storefront.Notifications.AddNotification(payload)}, nil
		},
	},
	"read": {
		summary: "mark notification -id as read",
		flags:   []string{"id"},
		run: func(_ context.Context, app *App, in *input) (any, error) {
			id, err := requireID(in)
			if err != nil {
				return nil, err
			}
			if !app.Storefront.Notifications.MarkNotificationAsRead(id) {
				return nil, notFound("notification", id)
			}
			return map[string]any{"id": id, "isRead": true}, nil
		},
	},
	"read-all": {
		summary: "mark every notification as read",
		run: func(_ context.Context, app *App, _ *input) (any, error) {
			return map[string]any{"marked": app.Storefront.Notifications.MarkAllRead()}, nil
		},
	},
}
