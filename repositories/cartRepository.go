package repositories

import (
	"context"

	"github.com/Kariqs/prostore-api/models"
	"gorm.io/gorm"
)

// CartKey selects a cart by owner. UserID takes precedence over
// SessionCartID when both are set.
type CartKey struct {
	UserID        uint
	SessionCartID string
}

func UserKey(userID uint) CartKey {
	return CartKey{UserID: userID}
}

func SessionKey(sessionCartID string) CartKey {
	return CartKey{SessionCartID: sessionCartID}
}

func (k CartKey) IsZero() bool {
	return k.UserID == 0 && k.SessionCartID == ""
}

type CartRepository interface {
	FindCartByKey(ctx context.Context, key CartKey) (*models.Cart, error)
	SaveCart(ctx context.Context, cart *models.Cart) error
	DeleteCart(ctx context.Context, cart *models.Cart) error
}

type GormCartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

func (r *GormCartRepository) FindCartByKey(ctx context.Context, key CartKey) (*models.Cart, error) {
	if key.IsZero() {
		return nil, ErrNotFound
	}

	query := r.db.WithContext(ctx)
	if key.UserID != 0 {
		query = query.Where("user_id = ?", key.UserID)
	} else {
		query = query.Where("session_cart_id = ?", key.SessionCartID)
	}

	var cart models.Cart
	if err := query.First(&cart).Error; err != nil {
		return nil, translate(err)
	}
	return &cart, nil
}

func (r *GormCartRepository) SaveCart(ctx context.Context, cart *models.Cart) error {
	return r.db.WithContext(ctx).Save(cart).Error
}

// DeleteCart removes the cart row for good so its session id can be issued
// to a new cart.
func (r *GormCartRepository) DeleteCart(ctx context.Context, cart *models.Cart) error {
	return r.db.WithContext(ctx).Unscoped().Delete(cart).Error
}
