package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(productID int64, price string, quantity int) Line {
	return Line{
		ProductID: productID,
		Title:     "product",
		UnitPrice: decimal.RequireFromString(price),
		Quantity:  quantity,
	}
}

func TestAdd_AppendsNewLine(t *testing.T) {
	t.Parallel()

	c := Add(Cart{}, line(1, "99.99", 1))

	require.Len(t, c.Lines, 1)
	assert.Equal(t, 1, c.Lines[0].Quantity)
	assert.Equal(t, 1, c.Count())
}

func TestAdd_MergesExistingLine(t *testing.T) {
	t.Parallel()

	c := Add(Cart{}, line(1, "50.00", 2))
	c = Add(c, line(1, "50.00", 3))

	require.Len(t, c.Lines, 1, "same product must merge, not duplicate")
	assert.Equal(t, 5, c.Lines[0].Quantity)
	assert.Equal(t, 1, c.Count(), "badge counts lines, not quantity")
}

func TestAdd_DefaultsQuantityToOne(t *testing.T) {
	t.Parallel()

	c := Add(Cart{}, line(1, "10.00", 0))

	require.Len(t, c.Lines, 1)
	assert.Equal(t, 1, c.Lines[0].Quantity)
}

func TestAdd_KeepsAddTimeSnapshot(t *testing.T) {
	t.Parallel()

	c := Add(Cart{}, Line{ProductID: 1, Title: "first title", UnitPrice: decimal.RequireFromString("100.00"), Quantity: 1})
	c = Add(c, Line{ProductID: 1, Title: "repriced title", UnitPrice: decimal.RequireFromString("120.00"), Quantity: 1})

	require.Len(t, c.Lines, 1)
	assert.Equal(t, "first title", c.Lines[0].Title)
	assert.True(t, c.Lines[0].UnitPrice.Equal(decimal.RequireFromString("100.00")),
		"unit price stays at the add-time snapshot")
	assert.Equal(t, 2, c.Lines[0].Quantity)
}

func TestSetQuantity(t *testing.T) {
	t.Parallel()

	base := Add(Cart{}, line(1, "100.00", 2))

	t.Run("updates existing line", func(t *testing.T) {
		t.Parallel()
		c := SetQuantity(base, 1, 3)
		assert.Equal(t, 3, c.Lines[0].Quantity)
		assert.True(t, c.Total().Equal(decimal.RequireFromString("300.00")))
	})

	t.Run("below one is a no-op", func(t *testing.T) {
		t.Parallel()
		c := SetQuantity(base, 1, 0)
		assert.Equal(t, 2, c.Lines[0].Quantity)
	})

	t.Run("unknown product is a no-op", func(t *testing.T) {
		t.Parallel()
		c := SetQuantity(base, 99, 5)
		assert.Equal(t, base, c)
	})

	t.Run("does not mutate the input", func(t *testing.T) {
		t.Parallel()
		_ = SetQuantity(base, 1, 9)
		assert.Equal(t, 2, base.Lines[0].Quantity)
	})
}

func TestRemove(t *testing.T) {
	t.Parallel()

	base := Add(Add(Cart{}, line(1, "10.00", 1)), line(2, "20.00", 1))

	t.Run("drops the line", func(t *testing.T) {
		t.Parallel()
		c := Remove(base, 1)
		require.Len(t, c.Lines, 1)
		assert.Equal(t, int64(2), c.Lines[0].ProductID)
	})

	t.Run("unknown product is a no-op", func(t *testing.T) {
		t.Parallel()
		c := Remove(base, 99)
		assert.Equal(t, base, c)
	})
}

func TestMutationsClearCheckoutToken(t *testing.T) {
	t.Parallel()

	base := Add(Cart{}, line(1, "10.00", 1))
	base.CheckoutToken = "attempt-1"

	assert.Empty(t, Add(base, line(2, "5.00", 1)).CheckoutToken)
	assert.Empty(t, SetQuantity(base, 1, 4).CheckoutToken)
	assert.Empty(t, Remove(base, 1).CheckoutToken)
}

func TestTotal_OrderIndependent(t *testing.T) {
	t.Parallel()

	forward := Cart{Lines: []Line{line(1, "19.99", 3), line(2, "5.01", 2), line(3, "0.50", 7)}}
	reversed := Cart{Lines: []Line{line(3, "0.50", 7), line(2, "5.01", 2), line(1, "19.99", 3)}}

	assert.True(t, forward.Total().Equal(reversed.Total()))
	assert.True(t, forward.Total().Equal(decimal.RequireFromString("73.49")))
}

func TestTotal_MatchesSubtotals(t *testing.T) {
	t.Parallel()

	c := Cart{Lines: []Line{line(1, "0.10", 3), line(2, "1.05", 2)}}

	sum := decimal.Zero
	for _, l := range c.Lines {
		sum = sum.Add(l.Subtotal())
	}
	assert.True(t, c.Total().Equal(sum))
}
