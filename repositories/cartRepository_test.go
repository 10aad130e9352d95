package repositories_test

import (
	"context"
	"testing"

	"github.com/Kariqs/prostore-api/models"
	"github.com/Kariqs/prostore-api/pricing"
	"github.com/Kariqs/prostore-api/repositories"
	"github.com/Kariqs/prostore-api/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCart(sessionID string, items ...models.CartItem) *models.Cart {
	p := pricing.Calculate(items)
	return &models.Cart{
		SessionCartID: &sessionID,
		Items:         items,
		ItemsPrice:    p.ItemsPrice,
		ShippingPrice: p.ShippingPrice,
		TaxPrice:      p.TaxPrice,
		TotalPrice:    p.TotalPrice,
	}
}

func TestCartRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewCartRepository(testutil.NewDB(t))

	cart := newCart("sess-1",
		models.CartItem{ProductID: 1, Name: "Polo", Price: decimal.RequireFromString("50.005"), Quantity: 2},
		models.CartItem{ProductID: 2, Name: "Jeans", Price: decimal.RequireFromString("25.00"), Quantity: 1},
	)
	require.NoError(t, repo.SaveCart(ctx, cart))

	got, err := repo.FindCartByKey(ctx, repositories.SessionKey("sess-1"))
	require.NoError(t, err)

	require.Len(t, got.Items, 2)
	assert.Equal(t, uint(1), got.Items[0].ProductID)
	assert.Equal(t, "50.005", got.Items[0].Price.String())
	assert.Equal(t, uint(2), got.Items[1].ProductID)
	assert.Equal(t, cart.ItemsPrice.String(), got.ItemsPrice.String())
	assert.Equal(t, cart.ShippingPrice.String(), got.ShippingPrice.String())
	assert.Equal(t, cart.TaxPrice.String(), got.TaxPrice.String())
	assert.Equal(t, cart.TotalPrice.String(), got.TotalPrice.String())
	assert.Nil(t, got.UserID)
}

func TestCartRepositoryUserKeyWins(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewCartRepository(testutil.NewDB(t))

	userID := uint(7)
	owned := newCart("sess-owned")
	owned.UserID = &userID
	require.NoError(t, repo.SaveCart(ctx, owned))
	require.NoError(t, repo.SaveCart(ctx, newCart("sess-anon")))

	got, err := repo.FindCartByKey(ctx, repositories.CartKey{UserID: userID, SessionCartID: "sess-anon"})
	require.NoError(t, err)
	assert.Equal(t, owned.ID, got.ID)
}

func TestCartRepositoryNotFound(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewCartRepository(testutil.NewDB(t))

	_, err := repo.FindCartByKey(ctx, repositories.SessionKey("missing"))
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	_, err = repo.FindCartByKey(ctx, repositories.CartKey{})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestCartRepositoryDeleteFreesSessionID(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewCartRepository(testutil.NewDB(t))

	cart := newCart("sess-1")
	require.NoError(t, repo.SaveCart(ctx, cart))
	require.NoError(t, repo.DeleteCart(ctx, cart))

	_, err := repo.FindCartByKey(ctx, repositories.SessionKey("sess-1"))
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	require.NoError(t, repo.SaveCart(ctx, newCart("sess-1")))
}
