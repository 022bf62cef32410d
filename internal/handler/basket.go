package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/linstore/linstore-api/internal/middleware"
	"github.com/linstore/linstore-api/internal/model"
	"github.com/linstore/linstore-api/internal/repository"
	"github.com/linstore/linstore-api/internal/utils"
)

// BasketStore is the persistence surface the basket endpoints need.
// *repository.BasketRepo satisfies it; tests exercise the endpoints with an
// in-memory implementation.
type BasketStore interface {
	GetByUser(ctx context.Context, userID uint64) (model.Basket, error)
	Items(ctx context.Context, userID uint64) ([]model.BasketItem, error)
	Contains(ctx context.Context, userID, productID uint64, color string) (bool, error)
	Add(ctx context.Context, userID, productID uint64, color, selectedImg string) error
	Remove(ctx context.Context, userID, productID uint64, color string) (int64, error)
}

// ProductStore is the catalog read surface needed for the basket join.
// *repository.ProductRepo satisfies it.
type ProductStore interface {
	GetByID(ctx context.Context, id uint64) (model.Product, error)
	ListByIDs(ctx context.Context, ids []uint64) (map[uint64]model.Product, error)
}

// BasketHandler serves the authenticated user's basket: the joined view and
// the add/remove mutations.
type BasketHandler struct {
	Baskets  BasketStore
	Products ProductStore
}

func NewBasketHandler(b BasketStore, p ProductStore) *BasketHandler {
	return &BasketHandler{Baskets: b, Products: p}
}

type basketMutationReq struct {
	SelectedProduct uint64 `json:"selectedProduct"`
	SelectedColor   string `json:"selectedColor"`
	SelectedImg     string `json:"selectedImg"`
}

// basketEntry is one row of the joined basket view: the catalog product
// plus the variant the user picked. A product added in three colors
// produces three entries.
type basketEntry struct {
	model.Product
	SelectedColor string `json:"selectedColor"`
	SelectedImg   string `json:"selectedImg"`
}

// Get returns the basket joined against the product catalog, fanned out to
// one entry per selected color. Items whose product has since been retired
// from the catalog are skipped.
func (h *BasketHandler) Get(c echo.Context) error {
	id, err := middleware.CurrentIdentity(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Baskets.GetByUser(ctx, id.UserID); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "basket not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	items, err := h.Baskets.Items(ctx, id.UserID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	ids := make([]uint64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	products, err := h.Products.ListByIDs(ctx, ids)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	entries := make([]basketEntry, 0, len(items))
	for _, it := range items {
		p, ok := products[it.ProductID]
		if !ok {
			continue
		}
		entries = append(entries, basketEntry{
			Product:       p,
			SelectedColor: it.Color,
			SelectedImg:   it.SelectedImg,
		})
	}
	return c.JSON(http.StatusOK, entries)
}

// Set adds a (product, color, image) selection. Adding an already-present
// pair is a friendly no-op so double-clicks in the storefront do not grow
// the basket.
func (h *BasketHandler) Set(c echo.Context) error {
	id, err := middleware.CurrentIdentity(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req basketMutationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	color := utils.SanitizeText(req.SelectedColor)
	if req.SelectedProduct == 0 || color == "" {
		return c.JSON(http.StatusForbidden, echo.Map{"error": echo.Map{
			"title": "invalid data",
			"data":  "the submitted values are not allowed",
		}})
	}
	img := utils.SanitizeText(req.SelectedImg)
	if img == "" {
		img = "none"
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Products.GetByID(ctx, req.SelectedProduct); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "this product does not exist"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	present, err := h.Baskets.Contains(ctx, id.UserID, req.SelectedProduct, color)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if present {
		return c.JSON(http.StatusOK, "this product is already in the basket")
	}

	if err := h.Baskets.Add(ctx, id.UserID, req.SelectedProduct, color, img); err != nil {
		// A concurrent identical add can slip past the check above; the
		// unique key catches it and the outcome is the same no-op.
		if err == repository.ErrDuplicateItem {
			return c.JSON(http.StatusOK, "this product is already in the basket")
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, "product added to the basket")
}

// Drop removes every matching (product, color) entry and returns the
// product either way, so the storefront can keep rendering the card it
// just removed.
func (h *BasketHandler) Drop(c echo.Context) error {
	id, err := middleware.CurrentIdentity(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req basketMutationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	color := utils.SanitizeText(req.SelectedColor)
	if req.SelectedProduct == 0 || color == "" {
		return c.JSON(http.StatusForbidden, echo.Map{"error": echo.Map{
			"title": "invalid data",
			"data":  "the submitted values are not allowed",
		}})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Products.GetByID(ctx, req.SelectedProduct)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "this product does not exist"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	if _, err := h.Baskets.Remove(ctx, id.UserID, req.SelectedProduct, color); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, p)
}
