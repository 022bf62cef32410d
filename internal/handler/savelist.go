package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/linstore/linstore-api/internal/middleware"
	"github.com/linstore/linstore-api/internal/model"
	"github.com/linstore/linstore-api/internal/repository"
)

// SaveListHandler serves the authenticated user's saved items.
type SaveListHandler struct {
	SaveLists *repository.SaveListRepo
	Products  *repository.ProductRepo
}

func NewSaveListHandler(s *repository.SaveListRepo, p *repository.ProductRepo) *SaveListHandler {
	return &SaveListHandler{SaveLists: s, Products: p}
}

type saveListReq struct {
	ProductID uint64 `json:"productId"`
}

// Get returns the saved products joined against the catalog, in the order
// they were saved.
func (h *SaveListHandler) Get(c echo.Context) error {
	id, err := middleware.CurrentIdentity(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ids, err := h.SaveLists.ProductIDs(ctx, id.UserID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	products, err := h.Products.ListByIDs(ctx, ids)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]model.Product, 0, len(ids))
	for _, pid := range ids {
		if p, ok := products[pid]; ok {
			out = append(out, p)
		}
	}
	return c.JSON(http.StatusOK, out)
}

// Check reports whether one product is saved, for rendering the bookmark
// toggle on a product page.
func (h *SaveListHandler) Check(c echo.Context) error {
	id, err := middleware.CurrentIdentity(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || productID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	saved, err := h.SaveLists.Contains(ctx, id.UserID, productID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"saved": saved})
}

// Add bookmarks a product; saving it twice is a friendly no-op.
func (h *SaveListHandler) Add(c echo.Context) error {
	id, err := middleware.CurrentIdentity(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req saveListReq
	if err := c.Bind(&req); err != nil || req.ProductID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "productId is required"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Products.GetByID(ctx, req.ProductID); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "this product does not exist"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if err := h.SaveLists.Add(ctx, id.UserID, req.ProductID); err != nil {
		if err == repository.ErrDuplicateItem {
			return c.JSON(http.StatusOK, "this product is already saved")
		}
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "save list not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, "product saved")
}

// Remove deletes a bookmark; removing an absent one still answers ok.
func (h *SaveListHandler) Remove(c echo.Context) error {
	id, err := middleware.CurrentIdentity(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || productID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.SaveLists.Remove(ctx, id.UserID, productID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, "ok")
}
