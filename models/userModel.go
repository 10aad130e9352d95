package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	PaymentMethodPayPal         = "PayPal"
	PaymentMethodStripe         = "Stripe"
	PaymentMethodCashOnDelivery = "CashOnDelivery"
	DefaultPaymentMethod        = PaymentMethodPayPal
)

var PaymentMethods = []string{PaymentMethodPayPal, PaymentMethodStripe, PaymentMethodCashOnDelivery}

type ShippingAddress struct {
	FullName      string `json:"fullName" binding:"required,min=3"`
	StreetAddress string `json:"streetAddress" binding:"required,min=3"`
	City          string `json:"city" binding:"required,min=3"`
	PostalCode    string `json:"postalCode" binding:"required,min=3"`
	Country       string `json:"country" binding:"required,min=3"`
}

func (a ShippingAddress) IsZero() bool {
	return a == ShippingAddress{}
}

type User struct {
	gorm.Model
	Name          string                              `json:"name"`
	Email         string                              `json:"email" gorm:"size:191;uniqueIndex"`
	Password      string                              `json:"-"`
	Role          string                              `json:"role" gorm:"default:user"`
	Address       datatypes.JSONType[ShippingAddress] `json:"address"`
	PaymentMethod string                              `json:"paymentMethod"`
}

type SignInForm struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type SignUpForm struct {
	Name            string `json:"name" binding:"required,min=3"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password"`
}

type PaymentMethodForm struct {
	Type string `json:"type" binding:"required,oneof=PayPal Stripe CashOnDelivery"`
}

type ProfileForm struct {
	Name  string `json:"name" binding:"required,min=3"`
	Email string `json:"email" binding:"omitempty,email"`
}
