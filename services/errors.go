package services

import "errors"

var (
	ErrCartSessionMissing   = errors.New("cart session not found")
	ErrCartNotFound         = errors.New("cart not found")
	ErrItemNotInCart        = errors.New("item not in cart")
	ErrProductNotFound      = errors.New("product not found")
	ErrOutOfStock           = errors.New("product not in stock")
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrCartEmpty            = errors.New("your cart is empty")
	ErrAddressMissing       = errors.New("no shipping address")
	ErrPaymentMethodMissing = errors.New("no payment method")
	ErrOrderNotFound        = errors.New("order not found")
	ErrOrderAlreadyPaid     = errors.New("order is already paid")
	ErrPaymentMismatch      = errors.New("payment does not match order")
	ErrPaymentNotCompleted  = errors.New("error in paypal payment")
	ErrUploadsDisabled      = errors.New("image uploads are not configured")
)
