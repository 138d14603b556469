package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodec_RoundTrip(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		cart Cart
	}{
		{"empty", Cart{}},
		{"single line", Add(Cart{}, line(1, "19.99", 2))},
		{"several lines with token", func() Cart {
			c := Add(Add(Cart{}, line(1, "19.99", 2)), line(2, "0.05", 9))
			c.CheckoutToken = "attempt-7"
			return c
		}()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			raw, err := Encode(tc.cart)
			require.NoError(t, err)

			decoded, err := Decode(raw)
			require.NoError(t, err)

			assert.Equal(t, tc.cart.CheckoutToken, decoded.CheckoutToken)
			require.Equal(t, len(tc.cart.Lines), len(decoded.Lines))
			for i := range tc.cart.Lines {
				assert.True(t, tc.cart.Lines[i].UnitPrice.Equal(decoded.Lines[i].UnitPrice),
					"price must survive the round trip exactly")
				assert.Equal(t, tc.cart.Lines[i].Quantity, decoded.Lines[i].Quantity)
			}
			assert.True(t, tc.cart.Total().Equal(decoded.Total()))
		})
	}
}

func TestDecode_RejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := Decode("{not json")
	assert.Error(t, err)
}

func TestDecode_RejectsUnknownSchema(t *testing.T) {
	t.Parallel()

	_, err := Decode(`{"schema_version": 2, "lines": []}`)
	assert.Error(t, err)
}

func TestEncode_PriceIsQuotedString(t *testing.T) {
	t.Parallel()

	raw, err := Encode(Add(Cart{}, line(1, "19.99", 1)))
	require.NoError(t, err)
	assert.Contains(t, raw, `"price":"19.99"`)
}

func TestFractionalPricesSurviveManyTrips(t *testing.T) {
	t.Parallel()

	c := Cart{Lines: []Line{line(1, "0.1", 1), line(2, "0.2", 1)}}
	for i := 0; i < 5; i++ {
		raw, err := Encode(c)
		require.NoError(t, err)
		c, err = Decode(raw)
		require.NoError(t, err)
	}
	assert.True(t, c.Total().Equal(decimal.RequireFromString("0.3")))
}
