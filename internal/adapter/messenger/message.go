package messenger

import (
	"fmt"
	"strings"

	"github.com/karibbean/cart-service/internal/core/domain"
)

const orderDateLayout = "01/02/2006"

// orderMessage renders the order as the WhatsApp text message.
func orderMessage(storeName string, o domain.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*NEW ORDER - %s*\n\n", storeName)

	b.WriteString("*Customer Information:*\n")
	fmt.Fprintf(&b, "Name: %s\n", o.Customer.Name)
	fmt.Fprintf(&b, "Email: %s\n", o.Customer.Email)
	fmt.Fprintf(&b, "Phone: %s\n", o.Customer.Phone)
	fmt.Fprintf(&b, "Address: %s\n", o.Customer.Address)
	fmt.Fprintf(&b, "Payment Method: %s\n\n", o.Customer.PaymentMethod)

	b.WriteString("*Order Details:*\n")
	for _, l := range o.Lines {
		fmt.Fprintf(&b, "- %s x %d - $%s\n",
			l.Product.Name, l.Quantity, l.Subtotal().StringFixed(2),
		)
	}

	fmt.Fprintf(&b, "\n*Order Total: $%s*\n", o.Total.StringFixed(2))
	fmt.Fprintf(&b, "Order Date: %s\n", o.PlacedAt.Format(orderDateLayout))

	if o.Customer.Notes != "" {
		fmt.Fprintf(&b, "\n*Customer Notes:*\n%s\n", o.Customer.Notes)
	}

	fmt.Fprintf(&b,
		"\n_This order was placed through the %s website._", storeName,
	)
	return b.String()
}

// orderItemLines renders the per-line summary used in the email template.
func orderItemLines(o domain.Order) string {
	lines := make([]string, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, fmt.Sprintf("%s - Qty: %d - $%s",
			l.Product.Name, l.Quantity, l.Subtotal().StringFixed(2),
		))
	}
	return strings.Join(lines, "\n")
}
