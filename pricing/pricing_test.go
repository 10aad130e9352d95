package pricing

import (
	"math"
	"testing"

	"github.com/Kariqs/prostore-api/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(id uint, price string, qty int) models.CartItem {
	return models.CartItem{ProductID: id, Price: decimal.RequireFromString(price), Quantity: qty}
}

func assertPrices(t *testing.T, p Prices, items, shipping, tax, total string) {
	t.Helper()
	assert.Equal(t, items, p.ItemsPrice.String(), "itemsPrice")
	assert.Equal(t, shipping, p.ShippingPrice.String(), "shippingPrice")
	assert.Equal(t, tax, p.TaxPrice.String(), "taxPrice")
	assert.Equal(t, total, p.TotalPrice.String(), "totalPrice")
}

func TestCalculate(t *testing.T) {
	t.Run("empty cart", func(t *testing.T) {
		assertPrices(t, Calculate(nil), "0.00", "0.00", "0.00", "0.00")
	})

	t.Run("half cent line rounds up", func(t *testing.T) {
		p := Calculate([]models.CartItem{item(1, "50.005", 2)})
		assertPrices(t, p, "100.01", "100.00", "15.00", "215.01")
	})

	t.Run("below free shipping threshold", func(t *testing.T) {
		p := Calculate([]models.CartItem{item(1, "19.99", 2), item(2, "10.00", 1)})
		assertPrices(t, p, "49.98", "0.00", "7.50", "57.48")
	})

	t.Run("threshold is inclusive", func(t *testing.T) {
		p := Calculate([]models.CartItem{item(1, "25.00", 4)})
		assertPrices(t, p, "100.00", "100.00", "15.00", "215.00")
	})

	t.Run("just under threshold", func(t *testing.T) {
		p := Calculate([]models.CartItem{item(1, "99.99", 1)})
		assertPrices(t, p, "99.99", "0.00", "15.00", "114.99")
	})
}

func TestCalculateIgnoresItemOrder(t *testing.T) {
	a := []models.CartItem{item(1, "12.34", 3), item(2, "0.99", 7), item(3, "250.50", 1)}
	b := []models.CartItem{a[2], a[0], a[1]}

	pa, pb := Calculate(a), Calculate(b)
	assertPrices(t, pb, pa.ItemsPrice.String(), pa.ShippingPrice.String(), pa.TaxPrice.String(), pa.TotalPrice.String())
}

func TestCalculateTotalIsSumOfParts(t *testing.T) {
	p := Calculate([]models.CartItem{item(1, "33.33", 3), item(2, "7.77", 2)})

	sum := p.ItemsPrice.Add(p.TaxPrice.Decimal).Add(p.ShippingPrice.Decimal)
	assert.True(t, sum.Equal(p.TotalPrice.Decimal), "total %s != %s", p.TotalPrice, sum)
}

func TestRound2(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"float half cent", 1.005, "1.01"},
		{"float", 15.0015, "15"},
		{"string", "2.675", "2.68"},
		{"string with spaces", " 3.14159 ", "3.14"},
		{"int", 7, "7"},
		{"int64", int64(42), "42"},
		{"int8", int8(-3), "-3"},
		{"int16", int16(300), "300"},
		{"uint", uint(5), "5"},
		{"uint8", uint8(255), "255"},
		{"uint16", uint16(1000), "1000"},
		{"uint32", uint32(70000), "70000"},
		{"uint64", uint64(math.MaxUint64), "18446744073709551615"},
		{"float32", float32(2.5), "2.5"},
		{"decimal", decimal.RequireFromString("0.125"), "0.13"},
		{"money", models.MustMoney("9.999"), "10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Round2(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestRound2InvalidValue(t *testing.T) {
	for _, in := range []any{
		nil, true, []int{1}, "abc", "",
		math.NaN(), math.Inf(1), math.Inf(-1), float32(math.Inf(1)),
	} {
		_, err := Round2(in)
		assert.ErrorIs(t, err, ErrInvalidValue, "input %#v", in)
	}
}
