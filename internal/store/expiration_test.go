package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"smartchef/internal/models"
)

func newTestExpirationStore(t *testing.T) *ExpirationStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "expiration_data.json")
	store := NewExpirationStore(path, zap.NewNop())
	store.now = func() time.Time {
		return time.Date(2025, 6, 15, 14, 30, 0, 0, time.Local)
	}
	return store
}

func dateOffset(store *ExpirationStore, days int) string {
	y, m, d := store.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, days).Format(dateLayout)
}

func TestAddItemRoundTripsDate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expiration_data.json")
	store := NewExpirationStore(path, zap.NewNop())

	item, err := store.AddItem("milk", "2025-07-01", "1L", "Dairy")
	require.NoError(t, err)
	assert.Equal(t, 1, item.ID)
	assert.Equal(t, "2025-07-01", item.ExpiryDate)

	reopened := NewExpirationStore(path, zap.NewNop())
	items := reopened.ListItems()
	require.Len(t, items, 1)
	assert.Equal(t, "2025-07-01", items[0].ExpiryDate)
	assert.Equal(t, "milk", items[0].Name)
}

func TestAddItemRejectsBadInput(t *testing.T) {
	store := newTestExpirationStore(t)

	_, err := store.AddItem("", "2025-07-01", "", "")
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = store.AddItem("milk", "not-a-date", "", "")
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = store.AddItem("milk", "", "", "")
	assert.ErrorIs(t, err, ErrInvalidDate)

	assert.Empty(t, store.ListItems(), "rejected items must not be persisted")
}

func TestRemoveItemNonexistentIsNoOp(t *testing.T) {
	store := newTestExpirationStore(t)

	_, err := store.AddItem("eggs", "2025-07-01", "12", "Dairy")
	require.NoError(t, err)

	require.NoError(t, store.RemoveItem(99))
	items := store.ListItems()
	require.Len(t, items, 1)
	assert.Equal(t, "eggs", items[0].Name)
}

func TestRemoveItemFiltersById(t *testing.T) {
	store := newTestExpirationStore(t)

	_, err := store.AddItem("eggs", "2025-07-01", "", "")
	require.NoError(t, err)
	_, err = store.AddItem("milk", "2025-07-02", "", "")
	require.NoError(t, err)

	require.NoError(t, store.RemoveItem(1))
	items := store.ListItems()
	require.Len(t, items, 1)
	assert.Equal(t, "milk", items[0].Name)
}

func TestUpdateItem(t *testing.T) {
	store := newTestExpirationStore(t)

	_, err := store.AddItem("yoghurt", "2025-07-01", "500g", "Dairy")
	require.NoError(t, err)

	quantity := "250g"
	expiry := "2025-07-10"
	require.NoError(t, store.UpdateItem(1, models.ItemUpdate{Quantity: &quantity, ExpiryDate: &expiry}))

	items := store.ListItems()
	require.Len(t, items, 1)
	assert.Equal(t, "250g", items[0].Quantity)
	assert.Equal(t, "2025-07-10", items[0].ExpiryDate)
	assert.Equal(t, "yoghurt", items[0].Name, "untouched fields keep their values")

	bad := "next tuesday"
	assert.ErrorIs(t, store.UpdateItem(1, models.ItemUpdate{ExpiryDate: &bad}), ErrInvalidDate)
	assert.ErrorIs(t, store.UpdateItem(42, models.ItemUpdate{Quantity: &quantity}), ErrItemNotFound)
}

func TestExpiringWithinIncludesToday(t *testing.T) {
	store := newTestExpirationStore(t)

	_, err := store.AddItem("spinach", dateOffset(store, 0), "", "Vegetables")
	require.NoError(t, err)

	expiring := store.ExpiringWithin(7)
	require.Len(t, expiring, 1)
	assert.Equal(t, 0, expiring[0].DaysLeft)

	assert.Empty(t, store.Expired(), "an item expiring today is not yet expired")
}

func TestExpiredExcludedFromExpiring(t *testing.T) {
	store := newTestExpirationStore(t)

	_, err := store.AddItem("cream", dateOffset(store, -1), "", "Dairy")
	require.NoError(t, err)

	expired := store.Expired()
	require.Len(t, expired, 1)
	assert.Equal(t, 1, expired[0].DaysExpired)

	assert.Empty(t, store.ExpiringWithin(30))
}

func TestExpiringSortedAscending(t *testing.T) {
	store := newTestExpirationStore(t)

	for _, offset := range []int{5, 1, 3} {
		_, err := store.AddItem("item", dateOffset(store, offset), "", "")
		require.NoError(t, err)
	}

	expiring := store.ExpiringWithin(7)
	require.Len(t, expiring, 3)
	assert.Equal(t, []int{1, 3, 5}, []int{expiring[0].DaysLeft, expiring[1].DaysLeft, expiring[2].DaysLeft})
}

func TestExpiredSortedMostOverdueFirst(t *testing.T) {
	store := newTestExpirationStore(t)

	for _, offset := range []int{-2, -10, -5} {
		_, err := store.AddItem("item", dateOffset(store, offset), "", "")
		require.NoError(t, err)
	}

	expired := store.Expired()
	require.Len(t, expired, 3)
	assert.Equal(t, []int{10, 5, 2}, []int{expired[0].DaysExpired, expired[1].DaysExpired, expired[2].DaysExpired})
}

func TestQueriesSkipUnparsableDates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expiration_data.json")
	doc := `{
  "version": 1,
  "items": [
    {"id": 1, "name": "mystery", "expiry_date": "soon", "quantity": "", "category": "", "added_date": "2025-06-01"},
    {"id": 2, "name": "butter", "expiry_date": "2025-06-10", "quantity": "", "category": "", "added_date": "2025-06-01"}
  ],
  "notifications": []
}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	store := NewExpirationStore(path, zap.NewNop())
	store.now = func() time.Time {
		return time.Date(2025, 6, 15, 9, 0, 0, 0, time.Local)
	}

	expired := store.Expired()
	require.Len(t, expired, 1)
	assert.Equal(t, "butter", expired[0].Name)
	assert.Equal(t, 5, expired[0].DaysExpired)
}

func TestItemIDsGrowWithCount(t *testing.T) {
	store := newTestExpirationStore(t)

	first, err := store.AddItem("a", "2025-08-01", "", "")
	require.NoError(t, err)
	second, err := store.AddItem("b", "2025-08-01", "", "")
	require.NoError(t, err)

	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID)

	// Removal does not free ids for the next append.
	require.NoError(t, store.RemoveItem(second.ID))
	third, err := store.AddItem("c", "2025-08-01", "", "")
	require.NoError(t, err)
	assert.Equal(t, 2, third.ID)
}
