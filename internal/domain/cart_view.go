package domain

import (
	"sync"

	"github.com/shopspring/decimal"
)

// CartRendering is what the cart page displays
type CartRendering struct {
	Items   []LineItem
	Summary Summary
}

// CartView keeps a rendering of a cart store current. It re-derives totals
// on every store notification.
type CartView struct {
	store       *CartStore
	shipping    decimal.Decimal
	unsubscribe func()

	mu        sync.RWMutex
	rendering CartRendering
}

// NewCartView subscribes a view to store
func NewCartView(store *CartStore, shipping decimal.Decimal) *CartView {
	v := &CartView{
		store:    store,
		shipping: shipping,
	}
	v.render(store.Snapshot())
	v.unsubscribe = store.Subscribe(v.render)
	return v
}

func (v *CartView) render(items []LineItem) {
	r := CartRendering{
		Items:   items,
		Summary: Summarize(items, v.shipping),
	}

	v.mu.Lock()
	v.rendering = r
	v.mu.Unlock()
}

// Render returns the latest rendering
func (v *CartView) Render() CartRendering {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return CartRendering{
		Items:   cloneItems(v.rendering.Items),
		Summary: v.rendering.Summary,
	}
}

// Increment adds one more unit of an existing line. Unknown keys are ignored.
func (v *CartView) Increment(key LineKey) []LineItem {
	item, ok := v.store.Find(key)
	if !ok {
		return v.store.Snapshot()
	}
	return v.store.Add(item, 1)
}

// Decrement removes one unit of a line
func (v *CartView) Decrement(key LineKey) []LineItem {
	return v.store.Remove(key)
}

// Close detaches the view from its store
func (v *CartView) Close() {
	if v.unsubscribe != nil {
		v.unsubscribe()
	}
}
