package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linstore/linstore-api/internal/model"
	"github.com/linstore/linstore-api/internal/repository"
)

// memBasketStore implements BasketStore over a slice, with the same
// no-duplicate contract the unique key enforces in MySQL.
type memBasketStore struct {
	basket model.Basket
	items  []model.BasketItem
	nextID uint64
}

func newMemBasketStore(userID uint64) *memBasketStore {
	return &memBasketStore{basket: model.Basket{ID: 1, UserID: userID}, nextID: 1}
}

func (s *memBasketStore) GetByUser(_ context.Context, userID uint64) (model.Basket, error) {
	if userID != s.basket.UserID {
		return model.Basket{}, repository.ErrNotFound
	}
	return s.basket, nil
}

func (s *memBasketStore) Items(_ context.Context, userID uint64) ([]model.BasketItem, error) {
	if userID != s.basket.UserID {
		return nil, nil
	}
	return append([]model.BasketItem(nil), s.items...), nil
}

func (s *memBasketStore) Contains(_ context.Context, _ uint64, productID uint64, color string) (bool, error) {
	for _, it := range s.items {
		if it.ProductID == productID && it.Color == color {
			return true, nil
		}
	}
	return false, nil
}

func (s *memBasketStore) Add(ctx context.Context, userID, productID uint64, color, selectedImg string) error {
	if present, _ := s.Contains(ctx, userID, productID, color); present {
		return repository.ErrDuplicateItem
	}
	s.items = append(s.items, model.BasketItem{
		ID: s.nextID, BasketID: s.basket.ID,
		ProductID: productID, Color: color, SelectedImg: selectedImg,
	})
	s.nextID++
	return nil
}

func (s *memBasketStore) Remove(_ context.Context, _ uint64, productID uint64, color string) (int64, error) {
	var kept []model.BasketItem
	var removed int64
	for _, it := range s.items {
		if it.ProductID == productID && it.Color == color {
			removed++
			continue
		}
		kept = append(kept, it)
	}
	s.items = kept
	return removed, nil
}

// memProductStore implements ProductStore over a map.
type memProductStore struct {
	products map[uint64]model.Product
}

func (s *memProductStore) GetByID(_ context.Context, id uint64) (model.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return model.Product{}, repository.ErrNotFound
	}
	return p, nil
}

func (s *memProductStore) ListByIDs(_ context.Context, ids []uint64) (map[uint64]model.Product, error) {
	out := make(map[uint64]model.Product, len(ids))
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func newBasketTestServer(s *memBasketStore, p *memProductStore) *echo.Echo {
	h := NewBasketHandler(s, p)
	e := echo.New()
	ident := withIdentity(1, "User")
	e.GET("/basket/basketUser", h.Get, ident)
	e.POST("/basket/basketUser", h.Set, ident)
	e.POST("/basket/dropBasketUser", h.Drop, ident)
	return e
}

func getJSON(e *echo.Echo, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestBasketDuplicateAddKeepsSingleEntry(t *testing.T) {
	store := newMemBasketStore(1)
	products := &memProductStore{products: map[uint64]model.Product{
		11: {ID: 11, Name: "boot", Price: 100},
	}}
	e := newBasketTestServer(store, products)

	rec := postJSON(e, "/basket/basketUser", `{"selectedProduct":11,"selectedColor":"red"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "product added")

	rec = postJSON(e, "/basket/basketUser", `{"selectedProduct":11,"selectedColor":"red"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "already in the basket")

	rec = getJSON(e, "/basket/basketUser")
	require.Equal(t, http.StatusOK, rec.Code)
	var entries []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "red", entries[0]["selectedColor"])
	assert.Equal(t, "none", entries[0]["selectedImg"])
}

func TestBasketDropAbsentPairLeavesBasketUnchanged(t *testing.T) {
	store := newMemBasketStore(1)
	products := &memProductStore{products: map[uint64]model.Product{
		11: {ID: 11, Name: "boot", Price: 100},
	}}
	e := newBasketTestServer(store, products)

	rec := postJSON(e, "/basket/basketUser", `{"selectedProduct":11,"selectedColor":"red"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	// A color never added: still a 200 that returns the product.
	rec = postJSON(e, "/basket/dropBasketUser", `{"selectedProduct":11,"selectedColor":"blue"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"boot"`)

	require.Len(t, store.items, 1)
	assert.Equal(t, "red", store.items[0].Color)
}

func TestBasketAddDropRoundTrip(t *testing.T) {
	store := newMemBasketStore(1)
	products := &memProductStore{products: map[uint64]model.Product{
		11: {ID: 11, Name: "boot", Price: 100},
	}}
	e := newBasketTestServer(store, products)

	rec := getJSON(e, "/basket/basketUser")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = postJSON(e, "/basket/basketUser", `{"selectedProduct":11,"selectedColor":"red","selectedImg":"front.jpg"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = getJSON(e, "/basket/basketUser")
	var entries []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "front.jpg", entries[0]["selectedImg"])

	rec = postJSON(e, "/basket/dropBasketUser", `{"selectedProduct":11,"selectedColor":"red"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = getJSON(e, "/basket/basketUser")
	assert.JSONEq(t, `[]`, rec.Body.String())
}
