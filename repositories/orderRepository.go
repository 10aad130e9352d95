package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/Kariqs/prostore-api/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrInsufficientStock = errors.New("insufficient stock")

type OrderRepository interface {
	CreateFromCart(ctx context.Context, order *models.Order, cart *models.Cart) error
	FindOrder(ctx context.Context, id uint) (*models.Order, error)
	SavePaymentResult(ctx context.Context, id uint, result models.PaymentResult) error
	MarkPaid(ctx context.Context, id uint, result models.PaymentResult) (*models.Order, error)
	MarkDelivered(ctx context.Context, id uint) error
	ListOrders(ctx context.Context, userID uint, page, limit int) ([]models.Order, int64, error)
}

type GormOrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// CreateFromCart inserts the order with its items and removes the cart it
// was built from in a single transaction.
func (r *GormOrderRepository) CreateFromCart(ctx context.Context, order *models.Order, cart *models.Cart) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(cart).Error
	})
}

func (r *GormOrderRepository) FindOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).Preload("OrderItems").First(&order, id).Error; err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (r *GormOrderRepository) SavePaymentResult(ctx context.Context, id uint, result models.PaymentResult) error {
	res := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", id).
		Update("payment_result", datatypes.NewJSONType(result))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkPaid records the payment and takes the ordered quantities out of stock.
func (r *GormOrderRepository) MarkPaid(ctx context.Context, id uint, result models.PaymentResult) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("OrderItems").First(&order, id).Error; err != nil {
			return translate(err)
		}

		for _, item := range order.OrderItems {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				Update("stock", gorm.Expr("stock - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrInsufficientStock
			}
		}

		now := time.Now()
		order.IsPaid = true
		order.PaidAt = &now
		order.PaymentResult = datatypes.NewJSONType(result)
		return tx.Model(&models.Order{}).Where("id = ?", order.ID).Updates(map[string]any{
			"is_paid":        true,
			"paid_at":        now,
			"payment_result": order.PaymentResult,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormOrderRepository) MarkDelivered(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND is_paid = ?", id, true).
		Updates(map[string]any{"is_delivered": true, "delivered_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListOrders pages through orders, newest first. A zero userID lists every
// order.
func (r *GormOrderRepository) ListOrders(ctx context.Context, userID uint, page, limit int) ([]models.Order, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 15
	}

	byUser := func(db *gorm.DB) *gorm.DB {
		if userID != 0 {
			return db.Where("user_id = ?", userID)
		}
		return db
	}

	db := r.db.WithContext(ctx)
	var count int64
	if err := db.Model(&models.Order{}).Scopes(byUser).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	err := db.Preload("OrderItems").
		Scopes(byUser).
		Order("created_at desc").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&orders).Error
	return orders, count, err
}
