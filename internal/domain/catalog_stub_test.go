package domain

import (
	"context"
	"sync"
)

type stubCatalog struct {
	mu         sync.Mutex
	products   map[int]*Product
	ordered    []*Product
	categories map[string][]*Product
	productErr error
	similarErr error

	// gates, when set, block GetProduct for an id until the channel is closed
	gates        map[int]chan struct{}
	similarGates map[string]chan struct{}
	similarCalls []string
}

func newStubCatalog(products ...*Product) *stubCatalog {
	c := &stubCatalog{
		products:   make(map[int]*Product),
		categories: make(map[string][]*Product),
		gates:      make(map[int]chan struct{}),

		similarGates: make(map[string]chan struct{}),
	}
	for _, p := range products {
		c.products[p.ID] = p
		c.ordered = append(c.ordered, p)
		c.categories[p.Category] = append(c.categories[p.Category], p)
	}
	return c
}

func (c *stubCatalog) gate(id int) chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch := make(chan struct{})
	c.gates[id] = ch
	return ch
}

// gateSimilar blocks ListByCategory for category until the channel is closed
func (c *stubCatalog) gateSimilar(category string) chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch := make(chan struct{})
	c.similarGates[category] = ch
	return ch
}

func (c *stubCatalog) GetProduct(ctx context.Context, id int) (*Product, error) {
	c.mu.Lock()
	gate := c.gates[id]
	c.mu.Unlock()
	if gate != nil {
		<-gate
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.productErr != nil {
		return nil, c.productErr
	}
	p, ok := c.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (c *stubCatalog) ListByCategory(ctx context.Context, category string) ([]*Product, error) {
	c.mu.Lock()
	c.similarCalls = append(c.similarCalls, category)
	gate := c.similarGates[category]
	c.mu.Unlock()
	if gate != nil {
		<-gate
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.similarErr != nil {
		return nil, c.similarErr
	}
	return c.categories[category], nil
}

func (c *stubCatalog) ListProducts(ctx context.Context) ([]*Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*Product(nil), c.ordered...), nil
}

func (c *stubCatalog) similarCallCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.similarCalls)
}

func testProduct(id int, category string, price float64) *Product {
	return &Product{
		ID:       id,
		Title:    "Product " + string(rune('A'+id-1)),
		Price:    price,
		Image:    "https://example.test/img.png",
		Category: category,
		Rating:   Rating{Rate: 3.9, Count: 120},
	}
}
