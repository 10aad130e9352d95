package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Kariqs/prostore-api/events"
	"github.com/Kariqs/prostore-api/models"
	"github.com/Kariqs/prostore-api/payments"
	"github.com/Kariqs/prostore-api/repositories"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type PaymentGateway interface {
	CreateOrder(ctx context.Context, amount string) (string, error)
	CaptureOrder(ctx context.Context, paypalOrderID string) (*payments.Capture, error)
}

type Mailer interface {
	SendOrderConfirmation(user *models.User, order *models.Order) error
}

// PaidHook runs after an order is paid and its stock has been taken.
type PaidHook func(ctx context.Context, order *models.Order)

type OrderService struct {
	orders   repositories.OrderRepository
	carts    *CartService
	users    *UserService
	payments PaymentGateway
	events   events.Publisher
	mailer   Mailer
	onPaid   []PaidHook
	log      *zap.Logger
}

func NewOrderService(
	orders repositories.OrderRepository,
	carts *CartService,
	users *UserService,
	gateway PaymentGateway,
	publisher events.Publisher,
	mailer Mailer,
	log *zap.Logger,
) *OrderService {
	return &OrderService{
		orders:   orders,
		carts:    carts,
		users:    users,
		payments: gateway,
		events:   publisher,
		mailer:   mailer,
		log:      log,
	}
}

func (s *OrderService) OnPaid(hook PaidHook) {
	s.onPaid = append(s.onPaid, hook)
}

// PlaceOrder turns the user's cart into an order and empties the cart.
func (s *OrderService) PlaceOrder(ctx context.Context, sessionCartID string, userID uint) (*models.Order, error) {
	cart, err := s.carts.GetMyCart(ctx, sessionCartID, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, ErrCartEmpty
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	address := user.Address.Data()
	if address.IsZero() {
		return nil, ErrAddressMissing
	}
	if user.PaymentMethod == "" {
		return nil, ErrPaymentMethodMissing
	}

	order := &models.Order{
		UserID:          user.ID,
		ShippingAddress: datatypes.NewJSONType(address),
		PaymentMethod:   user.PaymentMethod,
		ItemsPrice:      cart.ItemsPrice,
		ShippingPrice:   cart.ShippingPrice,
		TaxPrice:        cart.TaxPrice,
		TotalPrice:      cart.TotalPrice,
	}
	for _, item := range cart.Items {
		order.OrderItems = append(order.OrderItems, models.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Slug:      item.Slug,
			Image:     item.Image,
			Price:     models.NewMoney(item.Price),
			Quantity:  item.Quantity,
		})
	}

	if err := s.orders.CreateFromCart(ctx, order, cart); err != nil {
		return nil, fmt.Errorf("creating order: %w", err)
	}

	s.publish(ctx, events.OrderPlaced, order)
	if err := s.mailer.SendOrderConfirmation(user, order); err != nil {
		s.log.Warn("Sending order confirmation failed", zap.Uint("orderId", order.ID), zap.Error(err))
	}
	return order, nil
}

// GetOrderByID returns an order visible to the caller: its owner, or an
// admin.
func (s *OrderService) GetOrderByID(ctx context.Context, id, userID uint, isAdmin bool) (*models.Order, error) {
	order, err := s.orders.FindOrder(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding order: %w", err)
	}
	if order.UserID != userID && !isAdmin {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *OrderService) CreatePayPalOrder(ctx context.Context, id, userID uint) (string, error) {
	order, err := s.GetOrderByID(ctx, id, userID, false)
	if err != nil {
		return "", err
	}
	if order.IsPaid {
		return "", ErrOrderAlreadyPaid
	}

	paypalOrderID, err := s.payments.CreateOrder(ctx, order.TotalPrice.String())
	if err != nil {
		return "", err
	}

	err = s.orders.SavePaymentResult(ctx, order.ID, models.PaymentResult{
		ID:        paypalOrderID,
		PricePaid: "0",
	})
	if err != nil {
		return "", fmt.Errorf("saving payment result: %w", err)
	}
	return paypalOrderID, nil
}

// ApprovePayPalOrder captures the PayPal payment and marks the order paid.
func (s *OrderService) ApprovePayPalOrder(ctx context.Context, id, userID uint, paypalOrderID string) (*models.Order, error) {
	order, err := s.GetOrderByID(ctx, id, userID, false)
	if err != nil {
		return nil, err
	}
	if order.IsPaid {
		return nil, ErrOrderAlreadyPaid
	}
	if order.PaymentResult.Data().ID != paypalOrderID {
		return nil, ErrPaymentMismatch
	}

	capture, err := s.payments.CaptureOrder(ctx, paypalOrderID)
	if err != nil {
		return nil, err
	}
	if capture.ID != paypalOrderID || capture.Status != "COMPLETED" {
		return nil, ErrPaymentNotCompleted
	}

	paid, err := s.orders.MarkPaid(ctx, order.ID, models.PaymentResult{
		ID:           capture.ID,
		Status:       capture.Status,
		EmailAddress: capture.EmailAddress,
		PricePaid:    capture.Amount,
	})
	if errors.Is(err, repositories.ErrInsufficientStock) {
		return nil, ErrOutOfStock
	}
	if err != nil {
		return nil, fmt.Errorf("marking order paid: %w", err)
	}

	for _, hook := range s.onPaid {
		hook(ctx, paid)
	}
	s.publish(ctx, events.OrderPaid, paid)
	return paid, nil
}

func (s *OrderService) MarkDelivered(ctx context.Context, id uint) error {
	err := s.orders.MarkDelivered(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrOrderNotFound
	}
	return err
}

// ListOrders pages through the user's orders, or every order when userID is
// zero.
func (s *OrderService) ListOrders(ctx context.Context, userID uint, page, limit int) ([]models.Order, int64, error) {
	return s.orders.ListOrders(ctx, userID, page, limit)
}

func (s *OrderService) publish(ctx context.Context, eventType string, order *models.Order) {
	err := s.events.Publish(ctx, eventType, map[string]any{
		"orderId":    order.ID,
		"userId":     order.UserID,
		"totalPrice": order.TotalPrice,
		"isPaid":     order.IsPaid,
	})
	if err != nil {
		s.log.Warn("Publishing event failed", zap.String("type", eventType), zap.Uint("orderId", order.ID), zap.Error(err))
	}
}
