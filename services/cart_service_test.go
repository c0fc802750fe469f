package services

import (
	"testing"
	"time"

	"poshak-shop/models"
	"poshak-shop/repositories"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCart(t *testing.T) (*CartService, *repositories.LocalStore) {
	t.Helper()
	store := newTestStore(t)
	return NewCartService(store, zap.NewNop()), store
}

func TestCartAddMergesSameVariant(t *testing.T) {
	cart, _ := newTestCart(t)

	require.NoError(t, cart.Add(models.CartLine{ProductID: "p1", Name: "পাঞ্জাবি", Price: 500, Quantity: 2, Color: "নীল", Size: "M"}))
	require.NoError(t, cart.Add(models.CartLine{ProductID: "p1", Name: "পাঞ্জাবি", Price: 500, Quantity: 3, Color: "নীল", Size: "M"}))

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
}

func TestCartAddKeepsDistinctVariantsApart(t *testing.T) {
	cart, _ := newTestCart(t)

	require.NoError(t, cart.Add(models.CartLine{ProductID: "p1", Price: 500, Quantity: 1, Color: "নীল", Size: "M"}))
	require.NoError(t, cart.Add(models.CartLine{ProductID: "p1", Price: 500, Quantity: 1, Color: "নীল", Size: "L"}))
	require.NoError(t, cart.Add(models.CartLine{ProductID: "p1", Price: 500, Quantity: 1, Color: "লাল", Size: "M"}))

	assert.Len(t, cart.Lines(), 3)
	assert.Equal(t, 3, cart.TotalQuantity())
}

func TestCartAddValidation(t *testing.T) {
	cart, _ := newTestCart(t)

	assert.ErrorIs(t, cart.Add(models.CartLine{Quantity: 1}), ErrUnknownProduct)
	assert.ErrorIs(t, cart.Add(models.CartLine{ProductID: "p1", Quantity: 11}), ErrQuantityRange)
	assert.ErrorIs(t, cart.Add(models.CartLine{ProductID: "p1", Quantity: -1}), ErrQuantityRange)

	require.NoError(t, cart.Add(models.CartLine{ProductID: "p1", Price: 100}))
	assert.Equal(t, 1, cart.Lines()[0].Quantity, "zero quantity defaults to one")
}

func TestCartAddRejectsMergePastLimit(t *testing.T) {
	cart, _ := newTestCart(t)

	require.NoError(t, cart.Add(models.CartLine{ProductID: "p1", Price: 100, Quantity: 8}))
	assert.ErrorIs(t, cart.Add(models.CartLine{ProductID: "p1", Price: 100, Quantity: 3}), ErrQuantityLimit)

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 8, lines[0].Quantity, "rejected merge must not change the line")
}

func TestCartSetQuantity(t *testing.T) {
	cart, _ := newTestCart(t)
	require.NoError(t, cart.Add(models.CartLine{ProductID: "p1", Price: 100, Quantity: 2}))

	assert.ErrorIs(t, cart.SetQuantity(0, 0), ErrQuantityRange)
	assert.ErrorIs(t, cart.SetQuantity(0, 11), ErrQuantityRange)
	assert.ErrorIs(t, cart.SetQuantity(5, 3), ErrCartIndex)

	require.NoError(t, cart.SetQuantity(0, 10))
	assert.Equal(t, 10, cart.Lines()[0].Quantity)
}

func TestCartIncrementDecrementBoundaries(t *testing.T) {
	cart, _ := newTestCart(t)
	require.NoError(t, cart.Add(models.CartLine{ProductID: "p1", Price: 100, Quantity: 9}))

	require.NoError(t, cart.Increment(0))
	assert.Equal(t, 10, cart.Lines()[0].Quantity)
	assert.ErrorIs(t, cart.Increment(0), ErrQuantityLimit)

	require.NoError(t, cart.SetQuantity(0, 1))
	require.NoError(t, cart.Decrement(0))
	assert.Empty(t, cart.Lines(), "decrementing a single-unit line removes it")

	assert.ErrorIs(t, cart.Increment(0), ErrCartIndex)
	assert.ErrorIs(t, cart.Decrement(0), ErrCartIndex)
}

func TestCartRemoveAndClear(t *testing.T) {
	cart, store := newTestCart(t)
	require.NoError(t, cart.Add(models.CartLine{ProductID: "p1", Price: 100, Quantity: 1}))
	require.NoError(t, cart.Add(models.CartLine{ProductID: "p2", Price: 200, Quantity: 1}))

	assert.ErrorIs(t, cart.Remove(9), ErrCartIndex)
	require.NoError(t, cart.Remove(0))

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "p2", lines[0].ProductID)

	cart.Clear()
	assert.True(t, cart.IsEmpty())
	assert.Empty(t, store.LoadCart(), "clear must reach the persisted cart")
}

func TestCartTotals(t *testing.T) {
	cart, _ := newTestCart(t)
	require.NoError(t, cart.Add(models.CartLine{ProductID: "p1", Price: 500, Quantity: 2}))
	require.NoError(t, cart.Add(models.CartLine{ProductID: "p2", Price: 300, Quantity: 1}))

	assert.Equal(t, 3, cart.TotalQuantity())
	assert.Equal(t, 1300, cart.Subtotal())
	assert.Equal(t, 1380, cart.TotalWith(80))

	items := cart.OrderItems()
	require.Len(t, items, 2)
	assert.Equal(t, "p1", items[0].ProductID)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestCartPersistsEveryMutation(t *testing.T) {
	cart, store := newTestCart(t)

	require.NoError(t, cart.Add(models.CartLine{ProductID: "p1", Price: 500, Quantity: 2}))
	require.Len(t, store.LoadCart(), 1)

	require.NoError(t, cart.SetQuantity(0, 5))
	assert.Equal(t, 5, store.LoadCart()[0].Quantity)

	require.NoError(t, cart.Remove(0))
	assert.Empty(t, store.LoadCart())
}

func TestCartLoadSanitizes(t *testing.T) {
	cart, store := newTestCart(t)
	store.SaveCart([]models.CartLine{
		{ProductID: "p1", Quantity: 25},
		{ProductID: "", Quantity: 2},
		{ProductID: "p2", Quantity: 0},
	})

	cart.Load()

	lines := cart.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, 10, lines[0].Quantity, "oversized quantity clamps to the cap")
	assert.Equal(t, 1, lines[1].Quantity, "zero quantity clamps to the floor")
}

func TestCartReconcile(t *testing.T) {
	catalog := []models.Product{
		{ID: "p1", Name: "নতুন নাম", Price: 550, Images: []string{"new.jpg"}},
	}

	t.Run("drops vanished products and persists", func(t *testing.T) {
		cart, store := newTestCart(t)
		require.NoError(t, cart.Add(models.CartLine{ProductID: "p1", Name: "পুরনো নাম", Price: 500, Quantity: 2}))
		require.NoError(t, cart.Add(models.CartLine{ProductID: "gone", Name: "তুলে নেওয়া", Price: 900, Quantity: 1}))

		cart.Reconcile(catalog)

		want := []models.CartLine{{ProductID: "p1", Name: "নতুন নাম", Price: 550, Image: "new.jpg", Quantity: 2}}
		ignoreAdded := cmpopts.IgnoreFields(models.CartLine{}, "AddedAt")
		if diff := cmp.Diff(want, cart.Lines(), ignoreAdded); diff != "" {
			t.Errorf("reconciled cart mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff(want, store.LoadCart(), ignoreAdded); diff != "" {
			t.Errorf("persisted cart mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("refreshes fields without rewriting the file", func(t *testing.T) {
		cart, store := newTestCart(t)
		require.NoError(t, cart.Add(models.CartLine{ProductID: "p1", Name: "পুরনো নাম", Price: 500, Quantity: 2}))

		cart.Reconcile(catalog)

		lines := cart.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, "নতুন নাম", lines[0].Name)
		assert.Equal(t, 550, lines[0].Price)
		assert.Equal(t, "পুরনো নাম", store.LoadCart()[0].Name,
			"no line dropped, so the persisted cart stays as written")
	})

	t.Run("empty catalog is a no-op", func(t *testing.T) {
		cart, _ := newTestCart(t)
		require.NoError(t, cart.Add(models.CartLine{ProductID: "p1", Price: 500, Quantity: 2}))

		cart.Reconcile(nil)

		assert.Len(t, cart.Lines(), 1)
	})
}

func TestCartReloadFromStorage(t *testing.T) {
	cart, store := newTestCart(t)
	require.NoError(t, cart.Add(models.CartLine{ProductID: "p1", Price: 500, Quantity: 2}))

	var changed int
	cart.OnChange(func() { changed++ })

	cart.ReloadFromStorage()
	assert.Equal(t, 0, changed, "identical content must not notify")

	store.SaveCart([]models.CartLine{
		{ProductID: "p2", Name: "শাড়ি", Price: 2200, Quantity: 1, AddedAt: time.Now()},
	})
	cart.ReloadFromStorage()

	assert.Equal(t, 1, changed)
	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "p2", lines[0].ProductID)
}
