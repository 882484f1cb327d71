package pricing

import "strings"

// Shipping tiers in EGP. Cairo and Alexandria are served by the local fleet,
// everything else goes through the national courier.
const (
	ShippingLocal    = 70
	ShippingNational = 100
)

// ShippingCost returns the flat shipping fee for a destination city.
// The match is case-insensitive and whitespace-tolerant. Unknown or empty
// cities fall into the national tier rather than failing: address presence is
// validated at request binding, not here.
func ShippingCost(city string) float64 {
	switch strings.ToLower(strings.TrimSpace(city)) {
	case "cairo", "alexandria":
		return ShippingLocal
	default:
		return ShippingNational
	}
}

// LineItem is a quantity/unit-price pair as captured at order time.
type LineItem struct {
	Quantity  int
	UnitPrice float64
}

// Quote is the result of an order total calculation.
type Quote struct {
	Subtotal     float64 `json:"subtotal"`
	ShippingCost float64 `json:"shippingCost"`
	Total        float64 `json:"total"`
}

// OrderTotal computes subtotal and total for a set of line items plus a
// shipping fee. The item list must be non-empty and every quantity and unit
// price must be positive.
func OrderTotal(items []LineItem, shippingCost float64) (Quote, error) {
	if len(items) == 0 {
		return Quote{}, ErrEmptyOrder
	}
	var subtotal float64
	for _, it := range items {
		if it.Quantity <= 0 {
			return Quote{}, ErrInvalidQuantity
		}
		if it.UnitPrice <= 0 {
			return Quote{}, ErrInvalidPrice
		}
		subtotal += float64(it.Quantity) * it.UnitPrice
	}
	return Quote{
		Subtotal:     subtotal,
		ShippingCost: shippingCost,
		Total:        subtotal + shippingCost,
	}, nil
}
