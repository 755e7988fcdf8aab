package domain

import "sync"

// CartStore holds the ordered line items of one session's cart. It is the
// only component that mutates cart state; every mutation returns the new
// snapshot and notifies subscribers before returning.
type CartStore struct {
	mu    sync.Mutex
	items []LineItem

	// notifyMu keeps deliveries in mutation order. Subscribers must not
	// mutate the store they are subscribed to.
	notifyMu    sync.Mutex
	subscribers []subscriber
	nextSubID   uint64
}

type subscriber struct {
	id uint64
	fn func([]LineItem)
}

// NewCartStore creates an empty cart store
func NewCartStore() *CartStore {
	return &CartStore{}
}

// Add merges item into the cart. If a line with the same product and variant
// exists its quantity grows by qty, otherwise the item is appended with
// Qty = qty. A qty below 1 counts as 1. Items are accepted as-is.
func (s *CartStore) Add(item LineItem, qty int) []LineItem {
	if qty < 1 {
		qty = 1
	}

	s.mu.Lock()
	key := item.Key()
	if i := s.indexOf(key); i >= 0 {
		s.items[i].Qty += qty
	} else {
		item.Qty = qty
		s.items = append(s.items, item)
	}
	return s.publishLocked()
}

// Remove decrements the matching line by one and deletes it when it reaches
// zero. Removing an absent key is a no-op.
func (s *CartStore) Remove(key LineKey) []LineItem {
	s.mu.Lock()
	i := s.indexOf(key)
	if i < 0 {
		snap := s.copyLocked()
		s.mu.Unlock()
		return snap
	}

	s.items[i].Qty--
	if s.items[i].Qty < 1 {
		s.items = append(s.items[:i], s.items[i+1:]...)
	}
	return s.publishLocked()
}

// Clear empties the cart
func (s *CartStore) Clear() []LineItem {
	s.mu.Lock()
	s.items = nil
	return s.publishLocked()
}

// Snapshot returns a copy of the current line items in insertion order
func (s *CartStore) Snapshot() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyLocked()
}

// Find returns the line with the given key
func (s *CartStore) Find(key LineKey) (LineItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(key); i >= 0 {
		return s.items[i], true
	}
	return LineItem{}, false
}

// Subscribe registers fn to receive every new snapshot. The returned func
// removes the subscription.
func (s *CartStore) Subscribe(fn func([]LineItem)) func() {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.nextSubID++
	id := s.nextSubID
	s.subscribers = append(s.subscribers, subscriber{id: id, fn: fn})

	return func() {
		s.notifyMu.Lock()
		defer s.notifyMu.Unlock()
		for i, sub := range s.subscribers {
			if sub.id == id {
				s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
				return
			}
		}
	}
}

// publishLocked must be called with mu held; it releases mu.
func (s *CartStore) publishLocked() []LineItem {
	snap := s.copyLocked()
	s.notifyMu.Lock()
	s.mu.Unlock()
	defer s.notifyMu.Unlock()

	for _, sub := range s.subscribers {
		sub.fn(cloneItems(snap))
	}
	return snap
}

func (s *CartStore) indexOf(key LineKey) int {
	for i := range s.items {
		if s.items[i].Key() == key {
			return i
		}
	}
	return -1
}

func (s *CartStore) copyLocked() []LineItem {
	return cloneItems(s.items)
}

func cloneItems(items []LineItem) []LineItem {
	out := make([]LineItem, len(items))
	copy(out, items)
	return out
}
