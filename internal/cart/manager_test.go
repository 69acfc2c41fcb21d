package cart

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_IsolatesUsers(t *testing.T) {
	manager := NewManager()
	product := testProduct(100, 60)
	alice := uuid.New()
	bob := uuid.New()

	manager.Add(alice, testItem(product, "M", "Black", 2))
	manager.Add(bob, testItem(product, "M", "Black", 5))

	assert.Equal(t, 2, manager.Snapshot(alice).TotalItems)
	assert.Equal(t, 5, manager.Snapshot(bob).TotalItems)
}

func TestManager_SnapshotOfUnknownUserIsEmpty(t *testing.T) {
	manager := NewManager()
	snapshot := manager.Snapshot(uuid.New())
	assert.Empty(t, snapshot.Lines)
	assert.Equal(t, 0, snapshot.TotalItems)
}

func TestManager_RemoveAll(t *testing.T) {
	manager := NewManager()
	tee := testProduct(100, 60)
	hoodie := testProduct(250, 150)
	userID := uuid.New()

	manager.Add(userID, testItem(tee, "M", "Black", 2))
	manager.Add(userID, testItem(tee, "L", "Black", 1))
	manager.Add(userID, testItem(hoodie, "L", "Navy", 1))

	manager.RemoveAll(userID, []Key{
		NewKey(tee.ID, "M", "Black"),
		NewKey(hoodie.ID, "L", "Navy"),
	})

	snapshot := manager.Snapshot(userID)
	require.Len(t, snapshot.Lines, 1)
	assert.Equal(t, "L", snapshot.Lines[0].Variant.Size)
}

func TestManager_SessionRevokedClearsCart(t *testing.T) {
	manager := NewManager()
	product := testProduct(100, 60)
	userID := uuid.New()

	manager.Add(userID, testItem(product, "M", "Black", 2))
	manager.SessionRevoked(userID)

	assert.Empty(t, manager.Snapshot(userID).Lines)
}

func TestManager_ConcurrentAdds(t *testing.T) {
	manager := NewManager()
	product := testProduct(100, 60)
	userID := uuid.New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			manager.Add(userID, testItem(product, "M", "Black", 1))
		}()
	}
	wg.Wait()

	snapshot := manager.Snapshot(userID)
	require.Len(t, snapshot.Lines, 1)
	assert.Equal(t, 50, snapshot.TotalItems)
}

func TestManager_SnapshotTotalsMatchLines(t *testing.T) {
	manager := NewManager()
	tee := testProduct(100, 60)
	hoodie := testProduct(250, 150)
	userID := uuid.New()

	manager.Add(userID, testItem(tee, "M", "Black", 2))
	manager.Add(userID, testItem(hoodie, "L", "Navy", 1))

	snapshot := manager.Snapshot(userID)
	amount := 0.0
	cost := 0.0
	count := 0
	for _, line := range snapshot.Lines {
		amount += line.Product.SellingPrice * float64(line.Quantity)
		cost += line.Product.CostPrice * float64(line.Quantity)
		count += line.Quantity
	}
	assert.Equal(t, amount, snapshot.TotalAmount)
	assert.Equal(t, cost, snapshot.TotalCost)
	assert.Equal(t, amount-cost, snapshot.TotalProfit)
	assert.Equal(t, count, snapshot.TotalItems)
}
