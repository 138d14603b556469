package cart

import "github.com/shopspring/decimal"

// Line is one product entry in a cart. Lines are keyed by ProductID; adding
// a product that is already present merges into the existing line instead of
// appending a duplicate.
type Line struct {
	ProductID int64           `json:"product_id"`
	Title     string          `json:"title"`
	UnitPrice decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	ImageURL  string          `json:"product_image,omitempty"`
}

// Subtotal is the line's display price. The checkout payload never carries
// it; the backend reprices every item at order time.
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart holds a session's pending purchase. The checkout token, when set,
// identifies one checkout attempt for this exact cart contents; any mutation
// clears it.
type Cart struct {
	Lines         []Line `json:"lines"`
	CheckoutToken string `json:"checkout_token,omitempty"`
}

// Count is the badge number: distinct products, not total quantity.
func (c Cart) Count() int {
	return len(c.Lines)
}

func (c Cart) Empty() bool {
	return len(c.Lines) == 0
}

// Total sums line subtotals. Each subtotal is computed once from the same
// multiplication used for display, so the total always equals the sum of
// what the lines show.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

func (c Cart) find(productID int64) int {
	for i, line := range c.Lines {
		if line.ProductID == productID {
			return i
		}
	}
	return -1
}
