package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/linstore/linstore-api/internal/repository"
	"github.com/linstore/linstore-api/internal/utils"
)

// CatalogHandler serves the public catalog lookups (filter payload, brands,
// types, quick search) and the admin-only brand/type creation.
type CatalogHandler struct {
	Catalog  *repository.CatalogRepo
	Products *repository.ProductRepo
}

func NewCatalogHandler(cat *repository.CatalogRepo, p *repository.ProductRepo) *CatalogHandler {
	return &CatalogHandler{Catalog: cat, Products: p}
}

type nameReq struct {
	Name string `json:"name"`
}

// Filter returns brands and types in one payload for the storefront's
// filter sidebar.
func (h *CatalogHandler) Filter(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	brands, err := h.Catalog.Brands(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	types, err := h.Catalog.Types(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"brands": brands, "types": types})
}

// Brands lists every brand.
func (h *CatalogHandler) Brands(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	brands, err := h.Catalog.Brands(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, brands)
}

// Brand returns one brand by id.
func (h *CatalogHandler) Brand(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid brand id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Catalog.BrandByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "brand not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, b)
}

// CreateBrand adds a brand; Admin only (enforced by route middleware).
func (h *CatalogHandler) CreateBrand(c echo.Context) error {
	var req nameReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	name := utils.SanitizeText(req.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Catalog.CreateBrand(ctx, name)
	if err != nil {
		if err == repository.ErrDuplicateItem {
			return c.JSON(http.StatusConflict, echo.Map{"error": "brand already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, b)
}

// Types lists every product type.
func (h *CatalogHandler) Types(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	types, err := h.Catalog.Types(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, types)
}

// Type returns one product type by id.
func (h *CatalogHandler) Type(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid type id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t, err := h.Catalog.TypeByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "type not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, t)
}

// CreateType adds a product type; Admin only (enforced by route middleware).
func (h *CatalogHandler) CreateType(c echo.Context) error {
	var req nameReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	name := utils.SanitizeText(req.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t, err := h.Catalog.CreateType(ctx, name)
	if err != nil {
		if err == repository.ErrDuplicateItem {
			return c.JSON(http.StatusConflict, echo.Map{"error": "type already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, t)
}

// ShortSearch answers the storefront's quick search box with a short list
// of name matches.
func (h *CatalogHandler) ShortSearch(c echo.Context) error {
	name := utils.SanitizeText(c.QueryParam("name"))
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name query is required"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	products, err := h.Products.SearchByName(ctx, name, 10)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, products)
}
