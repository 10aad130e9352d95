// Package pricing derives cart totals from cart lines.
package pricing

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Kariqs/prostore-api/models"
	"github.com/shopspring/decimal"
)

var ErrInvalidValue = errors.New("invalid value")

var (
	freeShippingBelow = decimal.NewFromInt(100)
	flatShipping      = decimal.NewFromInt(100)
	taxRate           = decimal.RequireFromString("0.15")
)

type Prices struct {
	ItemsPrice    models.Money `json:"itemsPrice"`
	ShippingPrice models.Money `json:"shippingPrice"`
	TaxPrice      models.Money `json:"taxPrice"`
	TotalPrice    models.Money `json:"totalPrice"`
}

// Calculate returns the four cart prices for items. Order of items does not
// affect the result.
func Calculate(items []models.CartItem) Prices {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	itemsPrice := round2(sum)
	shippingPrice := round2(flatShipping)
	if itemsPrice.LessThan(freeShippingBelow) {
		shippingPrice = decimal.Zero
	}
	taxPrice := round2(taxRate.Mul(itemsPrice))
	totalPrice := round2(itemsPrice.Add(taxPrice).Add(shippingPrice))

	return Prices{
		ItemsPrice:    models.NewMoney(itemsPrice),
		ShippingPrice: models.NewMoney(shippingPrice),
		TaxPrice:      models.NewMoney(taxPrice),
		TotalPrice:    models.NewMoney(totalPrice),
	}
}

// Round2 rounds a number or numeric string to two decimal places, half away
// from zero.
func Round2(v any) (decimal.Decimal, error) {
	switch n := v.(type) {
	case decimal.Decimal:
		return round2(n), nil
	case models.Money:
		return round2(n.Decimal), nil
	case int:
		return decimal.NewFromInt(int64(n)), nil
	case int8:
		return decimal.NewFromInt(int64(n)), nil
	case int16:
		return decimal.NewFromInt(int64(n)), nil
	case int32:
		return decimal.NewFromInt32(n), nil
	case int64:
		return decimal.NewFromInt(n), nil
	case uint:
		return decimal.NewFromUint64(uint64(n)), nil
	case uint8:
		return decimal.NewFromUint64(uint64(n)), nil
	case uint16:
		return decimal.NewFromUint64(uint64(n)), nil
	case uint32:
		return decimal.NewFromUint64(uint64(n)), nil
	case uint64:
		return decimal.NewFromUint64(n), nil
	case float32:
		if !finite(float64(n)) {
			return decimal.Zero, fmt.Errorf("%w: %v", ErrInvalidValue, n)
		}
		return round2(decimal.NewFromFloat32(n)), nil
	case float64:
		if !finite(n) {
			return decimal.Zero, fmt.Errorf("%w: %v", ErrInvalidValue, n)
		}
		return round2(decimal.NewFromFloat(n)), nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidValue, n)
		}
		return round2(d), nil
	default:
		return decimal.Zero, fmt.Errorf("%w: %T", ErrInvalidValue, v)
	}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
