package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-faster/errors"
	"github.com/mrops-br/storefront-api/internal/domain"
	"github.com/mrops-br/storefront-api/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

const backpack = `{"id":1,"title":"Fjallraven Backpack","price":109.95,"description":"Your perfect pack","category":"men's clothing","image":"https://fakestoreapi.com/img/81fPKd-2AYL._AC_SL1500_.jpg","rating":{"rate":3.9,"count":120}}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return NewClient(&config.CatalogConfig{BaseURL: srv.URL}, noop.NewTracerProvider().Tracer("test"), logger)
}

func TestGetProduct(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, backpack)
	})

	p, err := client.GetProduct(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, &domain.Product{
		ID:          1,
		Title:       "Fjallraven Backpack",
		Price:       109.95,
		Image:       "https://fakestoreapi.com/img/81fPKd-2AYL._AC_SL1500_.jpg",
		Category:    "men's clothing",
		Description: "Your perfect pack",
		Rating:      domain.Rating{Rate: 3.9, Count: 120},
	}, p)
}

func TestGetProduct_NotFound(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"empty body", func(w http.ResponseWriter, r *http.Request) {}},
		{"null body", func(w http.ResponseWriter, r *http.Request) { fmt.Fprint(w, "null") }},
		{"404", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNotFound) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.handler)

			_, err := client.GetProduct(context.Background(), 999)
			assert.True(t, errors.Is(err, domain.ErrProductNotFound), "got %v", err)
		})
	}
}

func TestGetProduct_FetchFailed(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusInternalServerError) }},
		{"bad json", func(w http.ResponseWriter, r *http.Request) { fmt.Fprint(w, "{not json") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.handler)

			_, err := client.GetProduct(context.Background(), 1)
			assert.True(t, errors.Is(err, domain.ErrFetchFailed), "got %v", err)
		})
	}
}

func TestGetProduct_TransportError(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	client := NewClient(&config.CatalogConfig{BaseURL: "http://127.0.0.1:1"}, noop.NewTracerProvider().Tracer("test"), logger)

	_, err := client.GetProduct(context.Background(), 1)
	assert.True(t, errors.Is(err, domain.ErrFetchFailed), "got %v", err)
}

func TestListByCategory(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/category/men's clothing", r.URL.Path)
		fmt.Fprintf(w, "[%s,%s]", backpack, backpack)
	})

	products, err := client.ListByCategory(context.Background(), "men's clothing")
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestListByCategory_FailureIsFetchFailed(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.ListByCategory(context.Background(), "nope")
	assert.True(t, errors.Is(err, domain.ErrFetchFailed), "got %v", err)
}

func TestListProducts_EmptyBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
	})

	products, err := client.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestGetProduct_KeepsCause(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, backpack)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.GetProduct(ctx, 1)
	assert.True(t, errors.Is(err, domain.ErrFetchFailed), "got %v", err)
	assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
}

func TestListProducts_DecodeErrorKeepsCause(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":1}`)
	})

	_, err := client.ListProducts(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrFetchFailed), "got %v", err)

	var typeErr *json.UnmarshalTypeError
	assert.True(t, errors.As(err, &typeErr), "got %v", err)
}

func TestListByCategory_NotFoundIsNotProductNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.ListByCategory(context.Background(), "nope")
	assert.False(t, errors.Is(err, domain.ErrProductNotFound), "got %v", err)
}
