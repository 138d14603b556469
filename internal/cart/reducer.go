package cart

// Reducer operations return a new Cart value; callers persist the result as
// a whole. Every mutation clears the checkout token so a stale token can
// never be replayed against different contents.

// Add merges the item into the cart. If the product is already present only
// its quantity grows; the title, price, and image stay at the values captured
// when the line was first added. Otherwise a new line is appended.
func Add(c Cart, item Line) Cart {
	if item.Quantity < 1 {
		item.Quantity = 1
	}

	next := c.clone()
	if i := next.find(item.ProductID); i >= 0 {
		next.Lines[i].Quantity += item.Quantity
	} else {
		next.Lines = append(next.Lines, item)
	}
	next.CheckoutToken = ""
	return next
}

// SetQuantity replaces the quantity of an existing line. Quantities below
// one and unknown products leave the cart unchanged; removal is explicit via
// Remove.
func SetQuantity(c Cart, productID int64, quantity int) Cart {
	if quantity < 1 {
		return c
	}
	i := c.find(productID)
	if i < 0 {
		return c
	}

	next := c.clone()
	next.Lines[i].Quantity = quantity
	next.CheckoutToken = ""
	return next
}

// Remove drops the line for the product. Unknown products leave the cart
// unchanged.
func Remove(c Cart, productID int64) Cart {
	i := c.find(productID)
	if i < 0 {
		return c
	}

	next := Cart{Lines: make([]Line, 0, len(c.Lines)-1)}
	next.Lines = append(next.Lines, c.Lines[:i]...)
	next.Lines = append(next.Lines, c.Lines[i+1:]...)
	return next
}

func (c Cart) clone() Cart {
	next := Cart{CheckoutToken: c.CheckoutToken}
	if len(c.Lines) > 0 {
		next.Lines = make([]Line, len(c.Lines))
		copy(next.Lines, c.Lines)
	}
	return next
}
