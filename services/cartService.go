package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Kariqs/prostore-api/models"
	"github.com/Kariqs/prostore-api/pricing"
	"github.com/Kariqs/prostore-api/repositories"
	"go.uber.org/zap"
)

type CartService struct {
	carts    repositories.CartRepository
	products repositories.ProductRepository
	log      *zap.Logger
}

func NewCartService(carts repositories.CartRepository, products repositories.ProductRepository, log *zap.Logger) *CartService {
	return &CartService{carts: carts, products: products, log: log}
}

// CartUpdate describes the outcome of adding a product to a cart.
type CartUpdate struct {
	Cart    *models.Cart
	Product *models.Product
	// Existing is true when the product was already in the cart and its
	// quantity was increased.
	Existing bool
}

// GetMyCart returns the signed in user's cart, or the session cart for an
// anonymous visitor. It returns nil, nil when there is no cart yet.
func (s *CartService) GetMyCart(ctx context.Context, sessionCartID string, userID uint) (*models.Cart, error) {
	if sessionCartID == "" {
		return nil, ErrCartSessionMissing
	}

	key := repositories.SessionKey(sessionCartID)
	if userID != 0 {
		key = repositories.UserKey(userID)
	}

	cart, err := s.carts.FindCartByKey(ctx, key)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding cart: %w", err)
	}
	return cart, nil
}

func (s *CartService) AddItemToCart(ctx context.Context, sessionCartID string, userID uint, item models.CartItem) (*CartUpdate, error) {
	cart, err := s.GetMyCart(ctx, sessionCartID, userID)
	if err != nil {
		return nil, err
	}

	product, err := s.findProduct(ctx, item.ProductID)
	if err != nil {
		return nil, err
	}

	item.Name = product.Name
	item.Slug = product.Slug
	item.Image = product.ImageURL()
	item.Price = product.Price.Decimal
	if item.Quantity < 1 {
		item.Quantity = 1
	}

	update := &CartUpdate{Product: product}
	if cart == nil {
		if product.Stock < 1 {
			return nil, ErrOutOfStock
		}
		cart = newCart(sessionCartID, userID)
		cart.Items = append(cart.Items, item)
	} else if i, ok := cart.FindItem(item.ProductID); ok {
		if product.Stock < cart.Items[i].Quantity+1 {
			return nil, ErrOutOfStock
		}
		cart.Items[i].Quantity++
		update.Existing = true
	} else {
		if product.Stock < 1 {
			return nil, ErrOutOfStock
		}
		cart.Items = append(cart.Items, item)
	}

	reprice(cart)
	if err := s.carts.SaveCart(ctx, cart); err != nil {
		return nil, fmt.Errorf("saving cart: %w", err)
	}

	update.Cart = cart
	return update, nil
}

// RemoveItemFromCart takes one unit of the product out of the cart, dropping
// the line when its last unit goes.
func (s *CartService) RemoveItemFromCart(ctx context.Context, sessionCartID string, userID uint, productID uint) (*CartUpdate, error) {
	cart, err := s.GetMyCart(ctx, sessionCartID, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}

	product, err := s.findProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	i, ok := cart.FindItem(productID)
	if !ok {
		return nil, ErrItemNotInCart
	}
	if cart.Items[i].Quantity <= 1 {
		cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
	} else {
		cart.Items[i].Quantity--
	}

	reprice(cart)
	if err := s.carts.SaveCart(ctx, cart); err != nil {
		return nil, fmt.Errorf("saving cart: %w", err)
	}
	return &CartUpdate{Cart: cart, Product: product, Existing: true}, nil
}

// MergeSessionCart hands the anonymous session cart to a user who just signed
// in. A user who already owns a cart keeps it and the session cart is
// dropped.
func (s *CartService) MergeSessionCart(ctx context.Context, sessionCartID string, userID uint) error {
	if sessionCartID == "" {
		return nil
	}

	sessionCart, err := s.carts.FindCartByKey(ctx, repositories.SessionKey(sessionCartID))
	if errors.Is(err, repositories.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("finding session cart: %w", err)
	}
	if sessionCart.UserID != nil {
		// already claimed, possibly by another account
		return nil
	}

	_, err = s.carts.FindCartByKey(ctx, repositories.UserKey(userID))
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		sessionCart.UserID = &userID
		sessionCart.SessionCartID = nil
		if err := s.carts.SaveCart(ctx, sessionCart); err != nil {
			return fmt.Errorf("assigning session cart: %w", err)
		}
		s.log.Debug("Session cart assigned to user", zap.Uint("cartId", sessionCart.ID), zap.Uint("userId", userID))
	case err != nil:
		return fmt.Errorf("finding user cart: %w", err)
	default:
		if err := s.carts.DeleteCart(ctx, sessionCart); err != nil {
			return fmt.Errorf("deleting session cart: %w", err)
		}
		s.log.Debug("Session cart discarded", zap.Uint("cartId", sessionCart.ID), zap.Uint("userId", userID))
	}
	return nil
}

// OnSignIn lets the cart merge run as an AuthService sign-in hook.
func (s *CartService) OnSignIn(ctx context.Context, sessionCartID string, user *models.User) error {
	return s.MergeSessionCart(ctx, sessionCartID, user.ID)
}

func (s *CartService) findProduct(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.products.FindProduct(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding product: %w", err)
	}
	return product, nil
}

func newCart(sessionCartID string, userID uint) *models.Cart {
	cart := &models.Cart{}
	if userID != 0 {
		cart.UserID = &userID
	} else {
		cart.SessionCartID = &sessionCartID
	}
	return cart
}

func reprice(cart *models.Cart) {
	p := pricing.Calculate(cart.Items)
	cart.ItemsPrice = p.ItemsPrice
	cart.ShippingPrice = p.ShippingPrice
	cart.TaxPrice = p.TaxPrice
	cart.TotalPrice = p.TotalPrice
}
