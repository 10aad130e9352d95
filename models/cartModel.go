package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CartItem struct {
	ProductID uint            `json:"productId" binding:"required"`
	Name      string          `json:"name"`
	Slug      string          `json:"slug"`
	Image     string          `json:"image"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity" binding:"required,min=1"`
}

// Cart belongs to a user or, before sign in, to an anonymous session.
// ItemsPrice, ShippingPrice, TaxPrice and TotalPrice are derived from Items
// and only ever written together.
type Cart struct {
	gorm.Model
	UserID        *uint                         `json:"userId" gorm:"index"`
	SessionCartID *string                       `json:"sessionCartId" gorm:"size:36;uniqueIndex"`
	Items         datatypes.JSONSlice[CartItem] `json:"items"`
	ItemsPrice    Money                         `json:"itemsPrice" gorm:"type:decimal(12,2);not null"`
	ShippingPrice Money                         `json:"shippingPrice" gorm:"type:decimal(12,2);not null"`
	TaxPrice      Money                         `json:"taxPrice" gorm:"type:decimal(12,2);not null"`
	TotalPrice    Money                         `json:"totalPrice" gorm:"type:decimal(12,2);not null"`
}

func (c *Cart) FindItem(productID uint) (int, bool) {
	for i, item := range c.Items {
		if item.ProductID == productID {
			return i, true
		}
	}
	return -1, false
}
