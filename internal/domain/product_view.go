package domain

import (
	"context"
	"fmt"
	"sync"
)

// ViewState is the state of the primary product on a product view
type ViewState string

const (
	ViewLoading ViewState = "loading"
	ViewLoaded  ViewState = "loaded"
	ViewError   ViewState = "error"
)

// SimilarState is the state of the same-category panel
type SimilarState string

const (
	SimilarLoading SimilarState = "loading"
	SimilarLoaded  SimilarState = "loaded"
	SimilarEmpty   SimilarState = "empty"
)

// SimilarDisplayLimit caps how many same-category products are shown
const SimilarDisplayLimit = 4

// Notice messages raised by the product view
const (
	msgProductLoadFailed = "Failed to load product details"
	msgSimilarLoadFailed = "Failed to load similar products"
	msgSelectVariant     = "Please select color and size"
)

// ProductViewSnapshot is a read-only copy of a product view
type ProductViewSnapshot struct {
	ProductID     int
	State         ViewState
	Product       *Product
	SimilarState  SimilarState
	Similar       []*Product
	Selection     Selection
	SuggestedSize string
	InStock       bool
	Quantity      int
}

// ProductView drives one product page: it loads the product, then its
// same-category peers, and tracks the variant selection and quantity.
//
// Every navigation bumps a generation tag. Fetch results carrying an older
// tag are discarded, so a slow response for a product the user has already
// left never overwrites the current one.
type ProductView struct {
	catalog  CatalogClient
	notifier Notifier

	mu           sync.Mutex
	generation   uint64
	productID    int
	state        ViewState
	product      *Product
	similarState SimilarState
	similar      []*Product
	selection    Selection
	quantity     int

	// settled is closed once the latest navigation has no fetch in flight
	settled chan struct{}
}

// NewProductView creates a view in the loading state
func NewProductView(catalog CatalogClient, notifier Notifier) *ProductView {
	settled := make(chan struct{})
	close(settled)

	return &ProductView{
		catalog:      catalog,
		notifier:     notifier,
		state:        ViewLoading,
		similarState: SimilarLoading,
		selection:    DefaultSelection(),
		quantity:     1,
		settled:      settled,
	}
}

// Navigate switches the view to productID and loads it. The primary fetch
// runs synchronously; on success the same-category fetch is started in the
// background and is not cancelled when ctx is.
func (v *ProductView) Navigate(ctx context.Context, productID int) (ProductViewSnapshot, error) {
	v.mu.Lock()
	v.generation++
	gen := v.generation
	done := make(chan struct{})
	v.settled = done
	v.productID = productID
	v.state = ViewLoading
	v.product = nil
	v.similarState = SimilarLoading
	v.similar = nil
	v.selection = DefaultSelection()
	v.quantity = 1
	v.mu.Unlock()

	product, err := v.catalog.GetProduct(ctx, productID)

	v.mu.Lock()
	if gen != v.generation {
		v.mu.Unlock()
		close(done)
		return v.Snapshot(), nil
	}

	if err != nil {
		v.state = ViewError
		v.similarState = SimilarEmpty
		v.mu.Unlock()
		v.notifier.Notify(ctx, NewNotice(NoticeError, msgProductLoadFailed))
		close(done)
		return v.Snapshot(), err
	}

	v.state = ViewLoaded
	v.product = product
	v.mu.Unlock()

	go v.loadSimilar(context.WithoutCancel(ctx), gen, product.Category, done)

	return v.Snapshot(), nil
}

func (v *ProductView) loadSimilar(ctx context.Context, gen uint64, category string, done chan struct{}) {
	defer close(done)

	similar, err := v.catalog.ListByCategory(ctx, category)

	v.mu.Lock()
	if gen != v.generation {
		v.mu.Unlock()
		return
	}

	if err != nil {
		v.similarState = SimilarEmpty
		v.similar = nil
		v.mu.Unlock()
		v.notifier.Notify(ctx, NewNotice(NoticeError, msgSimilarLoadFailed))
		return
	}

	v.similarState = SimilarLoaded
	v.similar = similar
	v.mu.Unlock()
}

// Wait blocks until the latest navigation has settled. A navigation started
// while waiting is waited for as well.
func (v *ProductView) Wait() {
	for {
		v.mu.Lock()
		settled := v.settled
		v.mu.Unlock()

		<-settled

		v.mu.Lock()
		current := v.settled == settled
		v.mu.Unlock()
		if current {
			return
		}
	}
}

// Select applies a color and a size change together. A nil field is left
// as is and an empty one clears it. Both values are checked before either is
// applied, so a rejected change leaves the selection untouched. The chosen
// size is kept when the color changes, and unavailable sizes may be selected.
func (v *ProductView) Select(colorID, size *string) (ProductViewSnapshot, error) {
	if colorID != nil && *colorID != "" && !KnownColor(*colorID) {
		return v.Snapshot(), ErrUnknownVariant
	}
	if size != nil && *size != "" && !KnownSize(*size) {
		return v.Snapshot(), ErrUnknownVariant
	}

	v.mu.Lock()
	if colorID != nil {
		v.selection.ColorID = *colorID
	}
	if size != nil {
		v.selection.Size = *size
	}
	v.mu.Unlock()

	return v.Snapshot(), nil
}

// SelectColor changes the color only
func (v *ProductView) SelectColor(colorID string) (ProductViewSnapshot, error) {
	return v.Select(&colorID, nil)
}

// SelectSize changes the size only
func (v *ProductView) SelectSize(size string) (ProductViewSnapshot, error) {
	return v.Select(nil, &size)
}

// IncrementQuantity raises the quantity by one. It is disabled while the
// selection is out of stock.
func (v *ProductView) IncrementQuantity() (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !IsInStock(v.selection) {
		return v.quantity, ErrOutOfStock
	}
	v.quantity++
	return v.quantity, nil
}

// DecrementQuantity lowers the quantity by one, never below 1. It is
// disabled while the selection is out of stock.
func (v *ProductView) DecrementQuantity() (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !IsInStock(v.selection) {
		return v.quantity, ErrOutOfStock
	}
	if v.quantity > 1 {
		v.quantity--
	}
	return v.quantity, nil
}

// AddToCart adds the loaded product in the selected variant and quantity to
// store. An incomplete selection raises an error notice and leaves the cart
// untouched.
func (v *ProductView) AddToCart(ctx context.Context, store *CartStore) ([]LineItem, error) {
	v.mu.Lock()
	if v.state != ViewLoaded || v.product == nil {
		v.mu.Unlock()
		return store.Snapshot(), ErrProductNotLoaded
	}
	product := *v.product
	sel := v.selection
	qty := v.quantity
	v.mu.Unlock()

	if !sel.Complete() {
		v.notifier.Notify(ctx, NewNotice(NoticeError, msgSelectVariant))
		return store.Snapshot(), ErrInvalidSelection
	}
	if !IsInStock(sel) {
		return store.Snapshot(), ErrOutOfStock
	}

	items := store.Add(NewLineItem(&product, sel), qty)

	v.notifier.Notify(ctx, NewNotice(NoticeSuccess,
		fmt.Sprintf("Added %d %s (%s, %s) to cart!", qty, product.Title, sel.ColorID, sel.Size),
	))

	return items, nil
}

// Snapshot returns a copy of the current view state
func (v *ProductView) Snapshot() ProductViewSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	snap := ProductViewSnapshot{
		ProductID:     v.productID,
		State:         v.state,
		SimilarState:  v.similarState,
		Selection:     v.selection,
		SuggestedSize: FirstAvailableSize(v.selection.ColorID),
		InStock:       IsInStock(v.selection),
		Quantity:      v.quantity,
	}

	if v.product != nil {
		p := *v.product
		snap.Product = &p
	}

	limit := len(v.similar)
	if limit > SimilarDisplayLimit {
		limit = SimilarDisplayLimit
	}
	snap.Similar = make([]*Product, 0, limit)
	for _, s := range v.similar[:limit] {
		p := *s
		snap.Similar = append(snap.Similar, &p)
	}

	return snap
}
