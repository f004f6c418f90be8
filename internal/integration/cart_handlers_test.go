package tests

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/Skotchmaster/cloudmart/internal/events"
	"github.com/Skotchmaster/cloudmart/internal/models"
)

func TestGetCartEmpty(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSONRequest(http.MethodGet, "/api/v1/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, decode[[]models.CartItem](t, rec))
}

func TestAddToCartTwiceOverwrites(t *testing.T) {
	env := newTestEnv(t)

	require.Equal(t, "Added to cart", addItem(t, env, "1", 2))
	require.Equal(t, "Updated quantity", addItem(t, env, "1", 7))

	rec := env.doJSONRequest(http.MethodGet, "/api/v1/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	items := decode[[]models.CartItem](t, rec)
	require.Len(t, items, 1)
	require.Equal(t, testUser, items[0].UserID)
	require.Equal(t, "1", items[0].ProductID)
	require.Equal(t, 7, items[0].Quantity)

	sent := env.Pub.all()
	require.Len(t, sent, 2)
	require.Equal(t, events.TopicCart, sent[0].Topic)
	require.Equal(t, testUser, sent[0].Key)
}

func TestAddToCartDefaultsQuantity(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSONRequest(http.MethodPost, "/api/v1/cart/items", map[string]any{"product_id": "2"})
	require.Equal(t, http.StatusOK, rec.Code)

	items := decode[[]models.CartItem](t, env.doJSONRequest(http.MethodGet, "/api/v1/cart", nil))
	require.Len(t, items, 1)
	require.Equal(t, 1, items[0].Quantity)
}

func TestAddToCartRejectsBadInput(t *testing.T) {
	env := newTestEnv(t)

	cases := []map[string]any{
		{"product_id": "1", "quantity": 0},
		{"product_id": "1", "quantity": -2},
		{"quantity": 1},
	}
	for _, body := range cases {
		rec := env.doJSONRequest(http.MethodPost, "/api/v1/cart/items", body)
		require.Equal(t, http.StatusBadRequest, rec.Code, body)
	}

	rec := env.doJSONRequest(http.MethodPost, "/api/v1/cart/items", "not an object")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	require.Empty(t, decode[[]models.CartItem](t, env.doJSONRequest(http.MethodGet, "/api/v1/cart", nil)))
}

func TestRemoveFromCart(t *testing.T) {
	env := newTestEnv(t)

	addItem(t, env, "1", 1)
	addItem(t, env, "3", 2)

	rec := env.doJSONRequest(http.MethodDelete, "/api/v1/cart/items/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Removed from cart", decode[map[string]string](t, rec)["message"])

	items := decode[[]models.CartItem](t, env.doJSONRequest(http.MethodGet, "/api/v1/cart", nil))
	require.Len(t, items, 1)
	require.Equal(t, "3", items[0].ProductID)
}

func TestRemoveAbsentItemIsNoop(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSONRequest(http.MethodDelete, "/api/v1/cart/items/42", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Removed from cart", decode[map[string]string](t, rec)["message"])
	require.Empty(t, env.Pub.all())
}

func TestConcurrentAddsProduceOneRow(t *testing.T) {
	env := newTestEnv(t)

	g, _ := errgroup.WithContext(context.Background())
	for i := 1; i <= 8; i++ {
		i := i
		g.Go(func() error {
			rec := env.doJSONRequest(http.MethodPost, "/api/v1/cart/items", map[string]any{
				"product_id": "2",
				"quantity":   i,
			})
			if rec.Code != http.StatusOK {
				return unexpectedStatus(rec.Code)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	items := decode[[]models.CartItem](t, env.doJSONRequest(http.MethodGet, "/api/v1/cart", nil))
	require.Len(t, items, 1)
}

func TestDegradedCartWritesAreUnavailable(t *testing.T) {
	env := newDegradedEnv(t)

	rec := env.doJSONRequest(http.MethodGet, "/api/v1/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, decode[[]models.CartItem](t, rec))

	rec = env.doJSONRequest(http.MethodPost, "/api/v1/cart/items", map[string]any{"product_id": "1", "quantity": 1})
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = env.doJSONRequest(http.MethodDelete, "/api/v1/cart/items/1", nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
