package domain

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func navigated(t *testing.T, catalog *stubCatalog, id int) (*ProductView, *NoticeFeed) {
	t.Helper()
	feed := NewNoticeFeed()
	view := NewProductView(catalog, feed)
	_, err := view.Navigate(context.Background(), id)
	require.NoError(t, err)
	view.Wait()
	return view, feed
}

func TestProductView_InitialState(t *testing.T) {
	view := NewProductView(newStubCatalog(), NewNoticeFeed())
	snap := view.Snapshot()

	assert.Equal(t, ViewLoading, snap.State)
	assert.Equal(t, 1, snap.Quantity)
	assert.Equal(t, DefaultSelection(), snap.Selection)
	assert.NotNil(t, snap.Similar)
}

func TestProductView_LoadsProductThenSimilar(t *testing.T) {
	catalog := newStubCatalog(
		testProduct(1, "jewelery", 10),
		testProduct(2, "jewelery", 20),
		testProduct(3, "electronics", 30),
	)

	view, feed := navigated(t, catalog, 1)
	snap := view.Snapshot()

	assert.Equal(t, ViewLoaded, snap.State)
	require.NotNil(t, snap.Product)
	assert.Equal(t, 1, snap.Product.ID)
	assert.Equal(t, SimilarLoaded, snap.SimilarState)
	assert.Len(t, snap.Similar, 2)
	assert.Equal(t, []string{"jewelery"}, catalog.similarCalls)
	assert.Zero(t, feed.Len())
}

func TestProductView_SimilarCappedForDisplay(t *testing.T) {
	var products []*Product
	for i := 1; i <= 6; i++ {
		products = append(products, testProduct(i, "clothing", 5))
	}
	view, _ := navigated(t, newStubCatalog(products...), 1)

	assert.Len(t, view.Snapshot().Similar, SimilarDisplayLimit)
}

func TestProductView_PrimaryFailureSkipsSimilar(t *testing.T) {
	catalog := newStubCatalog()
	feed := NewNoticeFeed()
	view := NewProductView(catalog, feed)

	snap, err := view.Navigate(context.Background(), 42)
	view.Wait()

	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Equal(t, ViewError, snap.State)
	assert.Zero(t, catalog.similarCallCount())

	notices := feed.Drain()
	require.Len(t, notices, 1)
	assert.Equal(t, NoticeError, notices[0].Kind)
	assert.Equal(t, "Failed to load product details", notices[0].Message)
}

func TestProductView_SimilarFailureKeepsProduct(t *testing.T) {
	catalog := newStubCatalog(testProduct(1, "jewelery", 10))
	catalog.similarErr = ErrFetchFailed

	view, feed := navigated(t, catalog, 1)
	snap := view.Snapshot()

	assert.Equal(t, ViewLoaded, snap.State)
	assert.NotNil(t, snap.Product)
	assert.Equal(t, SimilarEmpty, snap.SimilarState)
	assert.Empty(t, snap.Similar)

	notices := feed.Drain()
	require.Len(t, notices, 1)
	assert.Equal(t, "Failed to load similar products", notices[0].Message)
}

func TestProductView_DiscardsSupersededResponse(t *testing.T) {
	catalog := newStubCatalog(
		testProduct(1, "jewelery", 10),
		testProduct(2, "electronics", 20),
	)
	gate := catalog.gate(1)
	view := NewProductView(catalog, NewNoticeFeed())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = view.Navigate(context.Background(), 1)
	}()

	// Wait until the first navigation has registered before superseding it.
	require.Eventually(t, func() bool { return view.Snapshot().ProductID == 1 }, timeout, tick)

	_, err := view.Navigate(context.Background(), 2)
	require.NoError(t, err)

	close(gate)
	wg.Wait()
	view.Wait()

	snap := view.Snapshot()
	assert.Equal(t, 2, snap.ProductID)
	require.NotNil(t, snap.Product)
	assert.Equal(t, 2, snap.Product.ID)
	assert.Equal(t, []string{"electronics"}, catalog.similarCalls)
}

func TestProductView_DiscardsSupersededSimilar(t *testing.T) {
	catalog := newStubCatalog(
		testProduct(1, "jewelery", 10),
		testProduct(2, "electronics", 20),
		testProduct(3, "jewelery", 30),
		testProduct(4, "electronics", 40),
	)
	gate := catalog.gateSimilar("jewelery")
	feed := NewNoticeFeed()
	view := NewProductView(catalog, feed)

	_, err := view.Navigate(context.Background(), 1)
	require.NoError(t, err)

	view.mu.Lock()
	superseded := view.settled
	view.mu.Unlock()

	_, err = view.Navigate(context.Background(), 2)
	require.NoError(t, err)
	view.Wait()

	// Let product 1's peers arrive late and wait for them to be handled.
	close(gate)
	<-superseded

	snap := view.Snapshot()
	assert.Equal(t, 2, snap.ProductID)
	assert.Equal(t, SimilarLoaded, snap.SimilarState)
	require.Len(t, snap.Similar, 2)
	assert.Equal(t, 2, snap.Similar[0].ID)
	assert.Equal(t, 4, snap.Similar[1].ID)
	assert.Zero(t, feed.Len())
}

func TestProductView_ConcurrentNavigateAndWait(t *testing.T) {
	catalog := newStubCatalog(
		testProduct(1, "jewelery", 10),
		testProduct(2, "electronics", 20),
	)
	view := NewProductView(catalog, NewNoticeFeed())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_, err := view.Navigate(context.Background(), id)
				assert.NoError(t, err)
				view.Wait()
			}
		}(i%2 + 1)
	}
	wg.Wait()
	view.Wait()

	snap := view.Snapshot()
	assert.Equal(t, ViewLoaded, snap.State)
	assert.Equal(t, SimilarLoaded, snap.SimilarState)
	require.NotNil(t, snap.Product)
	assert.Equal(t, snap.ProductID, snap.Product.ID)
}

func TestProductView_RejectedSelectChangesNothing(t *testing.T) {
	view, _ := navigated(t, newStubCatalog(testProduct(1, "c", 10)), 1)

	color, size := "white", "ZZ"
	_, err := view.Select(&color, &size)
	assert.ErrorIs(t, err, ErrUnknownVariant)
	assert.Equal(t, DefaultSelection(), view.Snapshot().Selection)

	size = "L"
	snap, err := view.Select(&color, &size)
	require.NoError(t, err)
	assert.Equal(t, Selection{ColorID: "white", Size: "L"}, snap.Selection)
	assert.True(t, snap.InStock)
}

func TestProductView_ColorChangeKeepsSize(t *testing.T) {
	view, _ := navigated(t, newStubCatalog(testProduct(1, "c", 10)), 1)

	_, err := view.SelectSize("L")
	require.NoError(t, err)
	snap, err := view.SelectColor("white")
	require.NoError(t, err)
	assert.True(t, snap.InStock)

	snap, err = view.SelectColor("blue")
	require.NoError(t, err)
	assert.Equal(t, "L", snap.Selection.Size)
	assert.False(t, snap.InStock)
	assert.Equal(t, "S", snap.SuggestedSize)
}

func TestProductView_RejectsUnknownVariant(t *testing.T) {
	view := NewProductView(newStubCatalog(), NewNoticeFeed())

	_, err := view.SelectColor("purple")
	assert.ErrorIs(t, err, ErrUnknownVariant)
	_, err = view.SelectSize("XXXL")
	assert.ErrorIs(t, err, ErrUnknownVariant)
	assert.Equal(t, DefaultSelection(), view.Snapshot().Selection)
}

func TestProductView_QuantityStepper(t *testing.T) {
	view, _ := navigated(t, newStubCatalog(testProduct(1, "c", 10)), 1)

	// default black/XS is out of stock
	_, err := view.IncrementQuantity()
	assert.ErrorIs(t, err, ErrOutOfStock)

	_, _ = view.SelectSize("M")
	qty, err := view.DecrementQuantity()
	require.NoError(t, err)
	assert.Equal(t, 1, qty, "clamped at one")

	for i := 0; i < 3; i++ {
		qty, err = view.IncrementQuantity()
		require.NoError(t, err)
	}
	assert.Equal(t, 4, qty)

	_, _ = view.SelectSize("XL")
	qty, err = view.DecrementQuantity()
	assert.ErrorIs(t, err, ErrOutOfStock)
	assert.Equal(t, 4, qty)
}

func TestProductView_AddToCart(t *testing.T) {
	view, feed := navigated(t, newStubCatalog(testProduct(1, "c", 10)), 1)
	store := NewCartStore()

	_, _ = view.SelectColor("red")
	_, _ = view.SelectSize("M")
	_, _ = view.IncrementQuantity()

	items, err := view.AddToCart(context.Background(), store)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, LineItem{
		ProductID:     1,
		Title:         "Product A",
		Price:         10,
		Image:         "https://example.test/img.png",
		Qty:           2,
		SelectedColor: "red",
		SelectedSize:  "M",
	}, items[0])

	notices := feed.Drain()
	require.Len(t, notices, 1)
	assert.Equal(t, NoticeSuccess, notices[0].Kind)
	assert.Equal(t, "Added 2 Product A (red, M) to cart!", notices[0].Message)
}

func TestProductView_AddToCartIncompleteSelection(t *testing.T) {
	view, feed := navigated(t, newStubCatalog(testProduct(1, "c", 10)), 1)
	store := NewCartStore()

	_, _ = view.SelectSize("")
	items, err := view.AddToCart(context.Background(), store)

	assert.ErrorIs(t, err, ErrInvalidSelection)
	assert.Empty(t, items)
	assert.Empty(t, store.Snapshot())

	notices := feed.Drain()
	require.Len(t, notices, 1)
	assert.Equal(t, NoticeError, notices[0].Kind)
	assert.Equal(t, "Please select color and size", notices[0].Message)
}

func TestProductView_AddToCartOutOfStock(t *testing.T) {
	view, feed := navigated(t, newStubCatalog(testProduct(1, "c", 10)), 1)
	store := NewCartStore()

	_, err := view.AddToCart(context.Background(), store)

	assert.ErrorIs(t, err, ErrOutOfStock)
	assert.Empty(t, store.Snapshot())
	assert.Zero(t, feed.Len())
}

func TestProductView_AddToCartBeforeLoad(t *testing.T) {
	view := NewProductView(newStubCatalog(), NewNoticeFeed())

	_, err := view.AddToCart(context.Background(), NewCartStore())
	assert.ErrorIs(t, err, ErrProductNotLoaded)
}

func TestProductView_NavigateResetsSelection(t *testing.T) {
	catalog := newStubCatalog(testProduct(1, "c", 10), testProduct(2, "c", 20))
	view, _ := navigated(t, catalog, 1)

	_, _ = view.SelectColor("green")
	_, _ = view.SelectSize("L")
	_, _ = view.IncrementQuantity()

	snap, err := view.Navigate(context.Background(), 2)
	require.NoError(t, err)
	view.Wait()

	assert.Equal(t, DefaultSelection(), snap.Selection)
	assert.Equal(t, 1, snap.Quantity)
}
