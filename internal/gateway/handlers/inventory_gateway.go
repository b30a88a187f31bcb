package handlers

import (
	"context"
	"net/http"
	"time"

	"sarisari-pos/internal/catalog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ListProductsQuery struct {
	SearchTerm string `form:"search"`
	Category   string `form:"category"`
	LowStock   bool   `form:"low_stock"`
}

type CategoryRequest struct {
	Name string `json:"name" form:"name" binding:"required"`
}

type catalogMeta struct {
	Total              int       `json:"total"`
	LoadedAt           time.Time `json:"loaded_at"`
	ProductsStale      bool      `json:"products_stale"`
	CategoriesFallback bool      `json:"categories_fallback"`
}

func metaOf(s catalog.Snapshot, total int) catalogMeta {
	return catalogMeta{
		Total:              total,
		LoadedAt:           s.LoadedAt,
		ProductsStale:      s.ProductsStale,
		CategoriesFallback: s.CategoriesFallback,
	}
}

// --- Product Handlers ---

func (h *TerminalHTTPHandler) ListProducts(c *gin.Context) {
	var query ListProductsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid query parameters"))
		return
	}

	snap := h.catalog.Snapshot()
	products := catalog.Filter(snap.Products, query.SearchTerm, query.Category)
	if query.LowStock {
		products = catalog.LowStock(products)
	}

	c.JSON(http.StatusOK, successWithMetaResponse("Products retrieved successfully", products, metaOf(snap, len(products))))
}

func (h *TerminalHTTPHandler) GetProduct(c *gin.Context) {
	p, ok := h.catalog.Product(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, errorResponse("Product not found"))
		return
	}
	c.JSON(http.StatusOK, successResponse("Product retrieved successfully", p))
}

func (h *TerminalHTTPHandler) CreateProduct(c *gin.Context) {
	var req catalog.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format: "+err.Error()))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	if err := h.catalog.CreateProduct(ctx, req); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, successResponse("Product created successfully", nil))
}

func (h *TerminalHTTPHandler) UpdateProduct(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.catalog.Product(id); !ok {
		c.JSON(http.StatusNotFound, errorResponse("Product not found"))
		return
	}

	var req catalog.ProductUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format: "+err.Error()))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	if err := h.catalog.UpdateProduct(ctx, id, req); err != nil {
		h.handleError(c, err)
		return
	}
	p, _ := h.catalog.Product(id)
	c.JSON(http.StatusOK, successResponse("Product updated successfully", p))
}

func (h *TerminalHTTPHandler) RefreshCatalog(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	err := h.catalog.Refresh(ctx)
	snap := h.catalog.Snapshot()
	if err != nil {
		// the snapshot still holds whatever could be loaded
		h.log.Warn("catalog refresh incomplete", zap.Error(err))
		c.JSON(http.StatusOK, successWithMetaResponse("Catalog refreshed with fallbacks: "+err.Error(), nil, metaOf(snap, len(snap.Products))))
		return
	}
	c.JSON(http.StatusOK, successWithMetaResponse("Catalog refreshed successfully", nil, metaOf(snap, len(snap.Products))))
}

// --- Category Handlers ---

// ListCategories returns the resolved category tiles, "All" first.
func (h *TerminalHTTPHandler) ListCategories(c *gin.Context) {
	snap := h.catalog.Snapshot()
	tiles := h.resolver.Tiles(snap.Categories, snap.Products)
	c.JSON(http.StatusOK, successWithMetaResponse("Categories retrieved successfully", tiles, metaOf(snap, len(snap.Products))))
}

// AddCategory accepts JSON or a multipart form with an optional "image" file.
func (h *TerminalHTTPHandler) AddCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Category name required"))
		return
	}

	var image *catalog.Image
	if fh, err := c.FormFile("image"); err == nil {
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse("Unreadable image upload"))
			return
		}
		defer f.Close()
		image = &catalog.Image{Filename: fh.Filename, Content: f}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	created, err := h.catalog.AddCategory(ctx, req.Name, image)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, successResponse("Category created successfully", created))
}

func (h *TerminalHTTPHandler) DeleteCategory(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	if err := h.catalog.DeleteCategory(ctx, c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse("Category deleted successfully", nil))
}
