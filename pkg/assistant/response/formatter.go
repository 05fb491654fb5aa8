// Package response renders executor outcomes as chat replies.
package response

import (
	"fmt"
	"strings"

	"stylista-be/pkg/assistant/action"
	"stylista-be/pkg/assistant/executor"
	"stylista-be/pkg/assistant/vocabulary"
)

const (
	MissingProductIDText = "I can check stock for you, but I need the product ID. You can find it on the product page or in a previous search result."
	NoIdentityText       = "I can't look up order history without knowing who you are. Please sign in with a shopper account and ask again."
	NotFoundText         = "I couldn't find a product with that ID. Please double-check the number and try again."
	FailedText           = "Sorry, I'm having trouble reaching the catalog right now. Please try again in a moment."
	NoActionText         = "I'm your fashion shopping assistant. Ask me to find products (\"jeans under $50\"), show what's trending, recommend a style, check stock or look up your orders."
	NoOrdersText         = "I couldn't find any orders in that period."
)

type Formatter struct {
	vocab *vocabulary.Vocabulary
}

func NewFormatter(vocab *vocabulary.Vocabulary) *Formatter {
	return &Formatter{vocab: vocab}
}

func (f *Formatter) Format(out executor.Outcome) string {
	switch out.Status {
	case executor.StatusMissingParameter:
		return MissingProductIDText
	case executor.StatusNoIdentity:
		return NoIdentityText
	case executor.StatusNotFound:
		return NotFoundText
	case executor.StatusFailed:
		return FailedText
	case executor.StatusNoAction:
		return NoActionText
	}

	if out.Product != nil {
		return f.FormatInventory(*out.Product)
	}
	if out.Command != nil && out.Command.Kind() == action.KindOrderHistory {
		return f.FormatOrders(out.Title, out.Orders)
	}
	return f.FormatProducts(out.Title, out.Products)
}

// FormatProducts lists products one block per item. An empty list gets the
// suggestion message.
func (f *Formatter) FormatProducts(title string, products []executor.Product) string {
	if len(products) == 0 {
		return f.noMatches()
	}
	if title == "" {
		title = "Here are some products I found"
	}

	var b strings.Builder
	b.WriteString(title)
	b.WriteString(":\n")
	for i, p := range products {
		fmt.Fprintf(&b, "\n%d. %s\n", i+1, p.Name)
		fmt.Fprintf(&b, "   Brand: %s | Category: %s\n", orDash(p.Brand), orDash(p.Category))
		fmt.Fprintf(&b, "   Price: $%.2f | %s\n", p.Price, AvailabilityText(p.Availability))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (f *Formatter) FormatInventory(p executor.Product) string {
	return fmt.Sprintf("%s (%s, ID %d): %s. Price: $%.2f", p.Name, orDash(p.Brand), p.ID, AvailabilityText(p.Availability), p.Price)
}

func (f *Formatter) FormatOrders(title string, orders []executor.OrderLine) string {
	if len(orders) == 0 {
		return NoOrdersText
	}
	var b strings.Builder
	b.WriteString(title)
	b.WriteString(":\n")
	for i, o := range orders {
		fmt.Fprintf(&b, "\n%d. %s (%s) - $%.2f, %s on %s", i+1, o.Product.Name, orDash(o.Product.Brand),
			o.SalePrice, strings.ToLower(orDash(o.Status)), o.CreatedAt.Format("Jan 2, 2006"))
	}
	return b.String()
}

func (f *Formatter) noMatches() string {
	return "Sorry, I couldn't find any products matching your criteria. Try browsing one of these popular categories: " +
		strings.Join(f.vocab.PopularCategories, ", ") + "."
}

// AvailabilityText is the shopper-facing stock line.
func AvailabilityText(a executor.Availability) string {
	switch a.Tier {
	case executor.TierInStock:
		return "In stock"
	case executor.TierLowStock:
		return fmt.Sprintf("Only %d left", a.Count)
	default:
		return "Out of stock"
	}
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
