package console

import (
	"context"
	"fmt"

	"github.com/urbanexpress/storefront/internal/deliveryfee"
	"github.com/urbanexpress/storefront/internal/scrolling"
	"github.com/urbanexpress/storefront/pkg/enums"
	pkgerrors "github.com/urbanexpress/storefront/pkg/errors"
)

var feeCommands = group{
	"tiers": {
		summary: "list delivery-fee tiers",
		run: func(_ context.Context, app *App, _ *input) (any, error) {
			return app.Storefront.DeliveryFees.Tiers(), nil
		},
	},
	"calc": {
		summary: "delivery fee for order -amount",
		flags:   []string{"amount"},
		run: func(_ context.Context, app *App, in *input) (any, error) {
			amount, err := parseDecimal(in.amount, "amount")
			if err != nil {
				return nil, err
			}
			return map[string]any{"amount": amount, "fee": app.Storefront.DeliveryFees.Fee(amount)}, nil
		},
	},
	"describe": {
		summary: "display text of the fee for order -amount in -lang",
		flags:   []string{"amount", "lang"},
		run: func(_ context.Context, app *App, in *input) (any, error) {
			amount, err := parseDecimal(in.amount, "amount")
			if err != nil {
				return nil, err
			}
			lang := enums.ParseLanguage(in.lang)
			text := deliveryfee.DeliveryFeeDescription(amount, app.Storefront.DeliveryFees.Tiers(), lang)
			return map[string]any{"amount": amount, "language": lang, "description": text}, nil
		},
	},
	"add-tier": {
		summary: "append a tier from -data",
		flags:   []string{"data"},
		run: func(_ context.Context, app *App, in *input) (any, error) {
			var tier deliveryfee.Tier
			if err := decode(in, &tier); err != nil {
				return nil, err
			}
			for i, existing := range app.Storefront.DeliveryFees.Tiers() {
				if existing.MinAmount.Equal(tier.MinAmount) {
					return nil, pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("tier %d already starts at %s", i, tier.MinAmount))
				}
			}
			app.Storefront.DeliveryFees.AddTier(tier)
			return app.Storefront.DeliveryFees.Tiers(), nil
		},
	},
	"update-tier": {
		summary: "patch tier at -index with -data",
		flags:   []string{"index", "data"},
		run: func(_ context.Context, app *App, in *input) (any, error) {
			var patch deliveryfee.TierPatch
			if err := decode(in, &patch); err != nil {
				return nil, err
			}
			if !app.Storefront.DeliveryFees.UpdateTier(in.index, patch) {
				return nil, tierIndexError(in.index)
			}
			return app.Storefront.DeliveryFees.Tiers(), nil
		},
	},
	"remove-tier": {
		summary: "remove tier at -index",
		flags:   []string{"index"},
		run: func(_ context.Context, app *App, in *input) (any, error) {
			if !app.Storefront.DeliveryFees.RemoveTier(in.index) {
				return nil, tierIndexError(in.index)
			}
			return app.Storefront.DeliveryFees.Tiers(), nil
		},
	},
	"reset": {
		summary: "restore the default tiers",
		run: func(_ context.Context, app *App, _ *input) (any, error) {
			app.Storefront.DeliveryFees.ResetToDefault()
			return app.Storefront.DeliveryFees.Tiers(), nil
		},
	},
}

func tierIndexError(index int) error {
	return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("no tier at index %d", index))
}

var scrollingCommands = group{
	"list": {
		summary: "list scrolling banner slots",
		run: func(_ context.Context, app *App, _ *input) (any, error) {
			return app.Storefront.Scrolling.Slots(), nil
		},
	},
	"active": {
		summary: "active banner texts in -lang",
		flags:   []string{"lang"},
		run: func(_ context.Context, app *App, in *input) (any, error) {
			return app.Storefront.Scrolling.ActiveContent(enums.ParseLanguage(in.lang)), nil
		},
	},
	"update": {
		summary: "patch slot -id with -data",
		flags:   []string{"id", "data"},
		run: func(_ context.Context, app *App, in *input) (any, error) {
			id, err := requireID(in)
			if err != nil {
				return nil, err
			}
			var patch scrolling.SlotPatch
			if err := decode(in, &patch); err != nil {
				return nil, err
			}
			if !app.Storefront.Scrolling.UpdateContent(id, patch) {
				return nil, notFound("slot", id)
			}
			return app.Storefront.Scrolling.Slots(), nil
		},
	},
	"toggle": {
		summary: "flip slot -id active flag",
		flags:   []string{"id"},
		run: func(_ context.Context, app *App, in *input) (any, error) {
			id, err := requireID(in)
			if err != nil {
				return nil, err
			}
			if !app.Storefront.Scrolling.ToggleActive(id) {
				return nil, notFound("slot", id)
			}
			return app.Storefront.Scrolling.Slots(), nil
		},
	},
	"reset": {
		summary: "restore the default slots",
		run: func(_ context.Context, app *App, _ *input) (any, error) {
			app.Storefront.Scrolling.ResetToDefaults()
			return app.Storefront.Scrolling.Slots(), nil
		},
	},
}

var cancellationCommands = group{
	"show": {
		summary: "show cancellation settings",
		run: func(_ context.Context, app *App, _ *input) (any, error) {
			return app.Storefront.Cancellation.Settings(), nil
		},
	},
	"set-time": {
		summary: "set the grace period to -seconds",
		flags:   []string{"seconds"},
		run: func(_ context.Context, app *App, in *input) (any, error) {
			if in.seconds <= 0 {
				return nil, usageError("-seconds must be positive")
			}
			app.Storefront.Cancellation.SetCancellationTime(in.seconds)
			return app.Storefront.Cancellation.Settings(), nil
		},
	},
	"preset": {
		summary: "set the grace period to a named -preset",
		flags:   []string{"preset"},
		run: func(_ context.Context, app *App, in *input) (any, error) {
			if !app.Storefront.Cancellation.SetPresetTime(in.preset) {
				return nil, usageError(fmt.Sprintf("unknown preset %q", in.preset))
			}
			return app.Storefront.Cancellation.Settings(), nil
		},
	},
	"enable": {
		summary: "allow order cancellation",
		run: func(_ context.Context, app *App, _ *input) (any, error) {
			app.Storefront.Cancellation.ToggleCancellation(true)
			return app.Storefront.Cancellation.Settings(), nil
		},
	},
	"disable": {
		summary: "refuse order cancellation",
		run: func(_ context.Context, app *App, _ *input) (any, error) {
			app.Storefront.Cancellation.ToggleCancellation(false)
			return app.Storefront.Cancellation.Settings(), nil
		},
	},
	"reset": {
		summary: "restore default cancellation settings",
		run: func(_ context.Context, app *App, _ *input) (any, error) {
			app.Storefront.Cancellation.ResetToDefaults()
			return app.Storefront.Cancellation.Settings(), nil
		},
	},
}

var userCommands = group{
	"show": {
		summary: "show the signed-in user",
		run: func(_ context.Context, app *App, _ *input) (any, error) {
			current := app.Storefront.User.Current()
			return map[string]any{"user": current, "displayName": current.DisplayName()}, nil
		},
	},
	"login": {
		summary: "sign in as -name with -phone",
		flags:   []string{"name", "phone"},
		run: func(_ context.Context, app *App, in *input) (any, error) {
			if err := requireFlag(in.phone, "phone"); err != nil {
				return nil, err
			}
			app.Storefront.User.SetUser(in.name, in.phone)
			return app.Storefront.User.Current(), nil
		},
	},
	"name": {
		summary: "change the stored -name",
		flags:   []string{"name"},
		run: func(_ context.Context, app *App, in *input) (any, error) {
			app.Storefront.User.UpdateName(in.name)
			return app.Storefront.User.Current(), nil
		},
	},
	"phone": {
		summary: "change the stored -phone",
		flags:   []string{"phone"},
		run: func(_ context.Context, app *App, in *input) (any, error) {
			app.Storefront.User.UpdatePhone(in.phone)
			return app.Storefront.User.Current(), nil
		},
	},
	"logout": {
		summary: "forget the signed-in user",
		run: func(_ context.Context, app *App, _ *input) (any, error) {
			app.Storefront.User.Logout()
			return app.Storefront.User.Current(), nil
		},
	},
}
