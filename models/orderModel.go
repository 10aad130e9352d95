package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PaymentResult struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	EmailAddress string `json:"email_address"`
	PricePaid    string `json:"pricePaid"`
}

type Order struct {
	gorm.Model
	UserID          uint                                `json:"userId" gorm:"index"`
	ShippingAddress datatypes.JSONType[ShippingAddress] `json:"shippingAddress"`
	PaymentMethod   string                              `json:"paymentMethod"`
	PaymentResult   datatypes.JSONType[PaymentResult]   `json:"paymentResult"`
	ItemsPrice      Money                               `json:"itemsPrice" gorm:"type:decimal(12,2);not null"`
	ShippingPrice   Money                               `json:"shippingPrice" gorm:"type:decimal(12,2);not null"`
	TaxPrice        Money                               `json:"taxPrice" gorm:"type:decimal(12,2);not null"`
	TotalPrice      Money                               `json:"totalPrice" gorm:"type:decimal(12,2);not null"`
	IsPaid          bool                                `json:"isPaid"`
	PaidAt          *time.Time                          `json:"paidAt"`
	IsDelivered     bool                                `json:"isDelivered"`
	DeliveredAt     *time.Time                          `json:"deliveredAt"`
	OrderItems      []OrderItem                         `json:"orderItems" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

type OrderItem struct {
	gorm.Model
	OrderID   uint   `json:"orderId"`
	ProductID uint   `json:"productId"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Image     string `json:"image"`
	Price     Money  `json:"price" gorm:"type:decimal(12,2);not null"`
	Quantity  int    `json:"quantity"`
}
