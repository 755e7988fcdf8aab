package domain

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func redM(id int, price float64) LineItem {
	return LineItem{ProductID: id, Title: "A", Price: price, SelectedColor: "red", SelectedSize: "M"}
}

func TestCartStore_AddMergesSameVariant(t *testing.T) {
	store := NewCartStore()

	store.Add(redM(1, 10), 1)
	items := store.Add(redM(1, 10), 1)

	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Qty)
}

func TestCartStore_AddKeepsVariantsApart(t *testing.T) {
	store := NewCartStore()

	store.Add(redM(1, 10), 1)
	blue := redM(1, 10)
	blue.SelectedColor = "blue"
	store.Add(blue, 1)
	items := store.Add(LineItem{ProductID: 1, Price: 10}, 1)

	require.Len(t, items, 3)
	assert.Equal(t, "red", items[0].SelectedColor)
	assert.Equal(t, "blue", items[1].SelectedColor)
	assert.Equal(t, "", items[2].SelectedColor)
}

func TestCartStore_AddRequestedQuantity(t *testing.T) {
	store := NewCartStore()

	items := store.Add(redM(1, 10), 3)
	assert.Equal(t, 3, items[0].Qty)

	items = store.Add(redM(1, 10), 0)
	assert.Equal(t, 4, items[0].Qty, "non-positive quantity counts as one")
}

func TestCartStore_RemoveDeletesAtOne(t *testing.T) {
	store := NewCartStore()
	store.Add(redM(1, 10), 2)

	items := store.Remove(redM(1, 10).Key())
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Qty)

	items = store.Remove(redM(1, 10).Key())
	assert.Empty(t, items)
}

func TestCartStore_RemoveAbsentIsNoop(t *testing.T) {
	store := NewCartStore()
	store.Add(redM(1, 10), 1)

	calls := 0
	store.Subscribe(func([]LineItem) { calls++ })

	items := store.Remove(LineKey{ProductID: 99})
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Qty)
	assert.Zero(t, calls)
}

func TestCartStore_SnapshotIsACopy(t *testing.T) {
	store := NewCartStore()
	store.Add(redM(1, 10), 1)

	snap := store.Snapshot()
	snap[0].Qty = 42

	assert.Equal(t, 1, store.Snapshot()[0].Qty)
}

func TestCartStore_SubscribersNotifiedBeforeReturn(t *testing.T) {
	store := NewCartStore()

	var seen [][]LineItem
	unsubscribe := store.Subscribe(func(items []LineItem) {
		seen = append(seen, items)
	})

	store.Add(redM(1, 10), 1)
	require.Len(t, seen, 1)
	assert.Equal(t, 1, seen[0][0].Qty)

	store.Remove(redM(1, 10).Key())
	require.Len(t, seen, 2)
	assert.Empty(t, seen[1])

	unsubscribe()
	store.Add(redM(1, 10), 1)
	assert.Len(t, seen, 2)
}

func TestCartStore_ClearEmptiesAndNotifies(t *testing.T) {
	store := NewCartStore()
	store.Add(redM(1, 10), 1)

	var last []LineItem
	store.Subscribe(func(items []LineItem) { last = items })

	assert.Empty(t, store.Clear())
	assert.NotNil(t, last)
	assert.Empty(t, last)
}

func TestCartStore_ReplayTotalsMatchNetChanges(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	store := NewCartStore()
	keys := []LineItem{redM(1, 10), redM(2, 5), {ProductID: 3, Price: 1.5}}
	net := map[LineKey]int{}

	for i := 0; i < 500; i++ {
		item := keys[rng.Intn(len(keys))]
		if rng.Intn(2) == 0 {
			qty := 1 + rng.Intn(3)
			store.Add(item, qty)
			net[item.Key()] += qty
		} else {
			store.Remove(item.Key())
			if net[item.Key()] > 0 {
				net[item.Key()]--
			}
		}

		want := 0
		for _, q := range net {
			want += q
		}
		items := store.Snapshot()
		for _, it := range items {
			require.GreaterOrEqual(t, it.Qty, 1)
		}
		require.Equal(t, want, Summarize(items, DefaultShippingFee).TotalItems)
	}
}

func TestCartStore_ConcurrentAdds(t *testing.T) {
	store := NewCartStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Add(redM(1, 10), 1)
		}()
	}
	wg.Wait()

	items := store.Snapshot()
	require.Len(t, items, 1)
	assert.Equal(t, 50, items[0].Qty)
}
