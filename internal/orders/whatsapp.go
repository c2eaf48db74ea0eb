package orders

import (
	"fmt"
	"net/url"
	"strings"

	pkgerrors "github.com/urbanexpress/storefront/pkg/errors"
	"github.com/urbanexpress/storefront/pkg/validators"
)

const (
	whatsAppBaseURL = "https://wa.me/"
	shareTimeLayout = "1/2/2006, 3:04:05 PM"
)

// ShareMessage renders the plain-text order summary sent over WhatsApp.
func ShareMessage(order Order) string {
	address := order.Customer.Address
	if strings.TrimSpace(address) == "" {
		address = "N/A"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "*New Order #%s*\n\n", order.OrderNumber)
	fmt.Fprintf(&b, "*Customer:* %s\n", order.Customer.Name)
	fmt.Fprintf(&b, "*Phone:* %s\n", order.Customer.Phone)
	fmt.Fprintf(&b, "*Type:* %s\n", order.Type.Label())
	fmt.Fprintf(&b, "*Address:* %s\n\n", address)
	b.WriteString("*Items:*\n")
	for _, item := range order.Items {
		fmt.Fprintf(&b, "• %s - %d x %s SAR\n", item.DisplayName(), item.Quantity, item.Price.String())
	}
	fmt.Fprintf(&b, "\n*Total:* %s SAR\n", order.Total.String())
	fmt.Fprintf(&b, "*Payment:* %s\n\n", order.PaymentMethod)
	fmt.Fprintf(&b, "*Order Time:* %s", order.CreatedAt.Format(shareTimeLayout))
	return b.String()
}

// ShareOrderToWhatsApp returns the wa.me deep link that opens a chat with
// phone pre-filled with the order summary.
func ShareOrderToWhatsApp(order Order, phone string) (string, error) {
	digits := validators.DigitsOnly(phone)
	if digits == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "whatsapp phone must contain digits")
	}
	text := strings.ReplaceAll(url.QueryEscape(ShareMessage(order)), "+", "%20")
	return whatsAppBaseURL + digits + "?text=" + text, nil
}
