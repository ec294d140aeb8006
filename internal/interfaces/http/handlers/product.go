// internal/interfaces/http/handlers/product.go
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/giftflare-backend/internal/domain/catalog"
	"github.com/your-org/giftflare-backend/internal/domain/product"
)

// ProductSource is the catalog the handlers read products from
type ProductSource interface {
	Products(ctx context.Context) []product.Product
	Product(ctx context.Context, id string) (product.Product, error)
}

// ProductListRequest holds the shop page filters
type ProductListRequest struct {
	Query    string `form:"q"`
	Category string `form:"category"`
	Price    string `form:"price"`
	Sort     string `form:"sort"`
}

// ProductHandler handles product endpoints
type ProductHandler struct {
	products ProductSource
}

// NewProductHandler creates a new product handler
func NewProductHandler(products ProductSource) *ProductHandler {
	return &ProductHandler{products: products}
}

// GetProducts handles GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	var req ProductListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid query parameters",
			"details": err.Error(),
		})
		return
	}

	priceRange, err := catalog.ParsePriceRange(req.Price)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	criteria := catalog.Criteria{
		Query:    req.Query,
		Category: req.Category,
		Price:    priceRange,
		Sort:     catalog.ParseSortKey(req.Sort),
	}

	products := catalog.Filter(h.products.Products(c.Request.Context()), criteria)

	c.JSON(http.StatusOK, gin.H{
		"message": "Products retrieved successfully",
		"data": gin.H{
			"products": products,
			"count":    len(products),
			"sort":     criteria.Sort,
		},
	})
}

// GetProductOptions handles GET /products/options
func (h *ProductHandler) GetProductOptions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Product options retrieved successfully",
		"data": gin.H{
			"categories":   catalog.Categories(),
			"price_ranges": catalog.PriceRanges(),
			"sort_options": catalog.SortOptions(),
		},
	})
}

// GetProduct handles GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	p, ok := lookupApprovedProduct(c, h.products, c.Param("id"))
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product retrieved successfully",
		"data":    p,
	})
}

// lookupApprovedProduct writes a 404 when the product is unknown or not approved
func lookupApprovedProduct(c *gin.Context, products ProductSource, id string) (product.Product, bool) {
	p, err := products.Product(c.Request.Context(), id)
	if err != nil || !p.IsApproved() {
		if err != nil && !errors.Is(err, product.ErrNotFound) {
			_ = c.Error(err)
		}
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
		})
		return product.Product{}, false
	}
	return p, true
}
