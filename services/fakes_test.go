package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Kariqs/prostore-api/models"
	"github.com/Kariqs/prostore-api/repositories"
	"gorm.io/datatypes"
)

// memCarts is an in-memory CartRepository. Stored carts are deep copies so
// tests observe only what was saved.
type memCarts struct {
	mu     sync.Mutex
	nextID uint
	carts  map[uint]models.Cart

	findErr   error
	saveErr   error
	deleteErr error
}

func newMemCarts() *memCarts {
	return &memCarts{nextID: 1, carts: map[uint]models.Cart{}}
}

func clone(c models.Cart) models.Cart {
	raw, _ := json.Marshal(c.Items)
	c.Items = nil
	_ = json.Unmarshal(raw, &c.Items)
	if c.UserID != nil {
		id := *c.UserID
		c.UserID = &id
	}
	if c.SessionCartID != nil {
		sid := *c.SessionCartID
		c.SessionCartID = &sid
	}
	return c
}

func (m *memCarts) FindCartByKey(_ context.Context, key repositories.CartKey) (*models.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	for _, c := range m.carts {
		if key.UserID != 0 {
			if c.UserID != nil && *c.UserID == key.UserID {
				cc := clone(c)
				return &cc, nil
			}
			continue
		}
		if key.SessionCartID != "" && c.SessionCartID != nil && *c.SessionCartID == key.SessionCartID {
			cc := clone(c)
			return &cc, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memCarts) SaveCart(_ context.Context, cart *models.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	if cart.ID == 0 {
		cart.ID = m.nextID
		m.nextID++
	}
	m.carts[cart.ID] = clone(*cart)
	return nil
}

func (m *memCarts) DeleteCart(_ context.Context, cart *models.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.carts, cart.ID)
	return nil
}

func (m *memCarts) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.carts)
}

type memProducts struct {
	products map[uint]*models.Product
}

func (m *memProducts) FindProduct(_ context.Context, id uint) (*models.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

var errBoom = errors.New("boom")

type memUsers struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]*models.User
}

func newMemUsers() *memUsers {
	return &memUsers{nextID: 1, users: map[uint]*models.User{}}
}

func (m *memUsers) FindUserByID(_ context.Context, id uint) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memUsers) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return errDuplicateEmail
		}
	}
	user.ID = m.nextID
	m.nextID++
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *memUsers) UpdateUser(_ context.Context, id uint, fields map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return repositories.ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "name":
			u.Name = v.(string)
		case "payment_method":
			u.PaymentMethod = v.(string)
		case "address":
			u.Address = v.(datatypes.JSONType[models.ShippingAddress])
		}
	}
	return nil
}

var errDuplicateEmail = errors.New("duplicate email")

type fakeTokens struct{}

func (fakeTokens) Issue(user *models.User) (string, time.Time, error) {
	return fmt.Sprintf("token-%d", user.ID), time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), nil
}

type recordedEvent struct {
	Type    string
	Payload any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []recordedEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, eventType string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{Type: eventType, Payload: payload})
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}
