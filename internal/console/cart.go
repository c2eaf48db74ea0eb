package console

import (
	"context"

	"github.com/urbanexpress/storefront/internal/cart"
	"github.com/urbanexpress/storefront/internal/orders"
	"github.com/urbanexpress/storefront/internal/storefront"
	"github.com/urbanexpress/storefront/pkg/enums"
	"github.com/urbanexpress/storefront/pkg/types"
	"github.com/urbanexpress/storefront/pkg/validators"
)

// cartLine references a catalog product by id.
type cartLine struct {
	ProductID types.ID `json:"productId" validate:"required"`
	Quantity  int      `json:"quantity" validate:"min=1"`
}

type quotePayload struct {
	Lines []cartLine      `json:"lines" validate:"min=1,dive"`
	Type  enums.OrderType `json:"type" validate:"omitempty,oneof=delivery pickup"`
}

type placePayload struct {
	BranchID      types.ID            `json:"branchId" validate:"required"`
	Customer      *orders.Customer    `json:"customer"`
	Lines         []cartLine          `json:"lines" validate:"min=1,dive"`
	Type          enums.OrderType     `json:"type" validate:"required,oneof=delivery pickup"`
	PaymentMethod enums.PaymentMethod `json:"paymentMethod" validate:"required,oneof=cash card"`
	Notes         string              `json:"notes"`
}

var cartCommands = group{
	"quote": {
		summary: "price catalog -data lines with delivery fees",
		flags:   []string{"data", "lang"},
		run: func(_ context.Context, app *App, in *input) (any, error) {
			var payload quotePayload
			if err := decode(in, &payload); err != nil {
				return nil, err
			}
			if err := fillCart(app.Storefront, payload.Lines); err != nil {
				return nil, err
			}
			orderType := payload.Type
			if orderType == "" {
				orderType = enums.OrderTypeDelivery
			}
			return map[string]any{
				"items":    app.Storefront.Cart.Items(),
				"count":    app.Storefront.Cart.Count(),
				"checkout": app.Storefront.CartCheckout(orderType, enums.ParseLanguage(in.lang)),
			}, nil
		},
	},
	"place": {
		summary: "place an order for catalog -data lines",
		flags:   []string{"data"},
		run: func(_ context.Context, app *App, in *input) (any, error) {
			var payload placePayload
			if err := decode(in, &payload); err != nil {
				return nil, err
			}
			if err := fillCart(app.Storefront, payload.Lines); err != nil {
				return nil, err
			}
			placed := storefront.PlaceOrderInput{
				BranchID:      payload.BranchID,
				Type:          payload.Type,
				PaymentMethod: payload.PaymentMethod,
				Notes:         validators.SanitizeString(payload.Notes, maxNotesLen),
			}
			if payload.Customer != nil {
				placed.Customer = *payload.Customer
				cleanCustomer(&placed.Customer)
			}
			id, err := app.Storefront.PlaceOrder(placed)
			if err != nil {
				return nil, err
			}
			order, _ := app.Storefront.Orders.Order(id)
			return order, nil
		},
	},
}

// fillCart replaces the session cart with the given catalog lines.
func fillCart(sf *storefront.Storefront, lines []cartLine) error {
	sf.Cart.Clear()
	for _, line := range lines {
		product, ok := sf.Catalog.Product(line.ProductID)
		if !ok || !product.IsActive {
			return notFound("product", line.ProductID)
		}
		sf.Cart.AddItem(cart.FromProduct(product), line.Quantity)
	}
	return nil
}
