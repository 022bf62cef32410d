package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/linstore/linstore-api/internal/middleware"
	"github.com/linstore/linstore-api/internal/model"
	"github.com/linstore/linstore-api/internal/repository"
)

// OldViewsHandler serves the authenticated user's recently-viewed products.
type OldViewsHandler struct {
	OldViews *repository.OldViewsRepo
	Products *repository.ProductRepo
}

func NewOldViewsHandler(o *repository.OldViewsRepo, p *repository.ProductRepo) *OldViewsHandler {
	return &OldViewsHandler{OldViews: o, Products: p}
}

type oldViewsAddReq struct {
	ProductID uint64 `json:"productId"`
}
type oldViewsReplaceReq struct {
	ProductIDs []uint64 `json:"productIds"`
}

// Get returns the recently-viewed products, newest first.
func (h *OldViewsHandler) Get(c echo.Context) error {
	id, err := middleware.CurrentIdentity(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ids, err := h.OldViews.ProductIDs(ctx, id.UserID)
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

// Add records a product view. Viewing a listed product refreshes its
// position; the list is capped so old entries fall off.
func (h *OldViewsHandler) Add(c echo.Context) error {
	id, err := middleware.CurrentIdentity(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req oldViewsAddReq
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
	if err := h.OldViews.RecordView(ctx, id.UserID, req.ProductID); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "history not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, "ok")
}

// Replace swaps the whole history, used when the storefront merges a guest
// session's local history into the account after login.
func (h *OldViewsHandler) Replace(c echo.Context) error {
	id, err := middleware.CurrentIdentity(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req oldViewsReplaceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.OldViews.Replace(ctx, id.UserID, req.ProductIDs); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "history not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, "ok")
}
