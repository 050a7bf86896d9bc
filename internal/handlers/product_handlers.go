package handlers

import (
	"net/http"
	"strconv"

	"github.com/01moynul/grocery-storefront/internal/catalog"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// SearchProducts is the handler for GET /v1/products
// Query: q, category, brand, min_price, max_price, sort, page, per_page
func (h *Handlers) SearchProducts(c *gin.Context) {
	// 1. --- Parse Filters ---
	f := catalog.Filter{
		Query:      c.Query("q"),
		CategoryID: queryInt64(c, "category"),
		BrandID:    queryInt64(c, "brand"),
		MinPrice:   queryFloat(c, "min_price"),
		MaxPrice:   queryFloat(c, "max_price"),
		Sort:       c.Query("sort"),
	}
	page, _ := strconv.Atoi(c.Query("page"))
	perPage, _ := strconv.Atoi(c.Query("per_page"))

	// 2. --- Fetch Catalog ---
	products, err := h.Catalog.Products(c.Request.Context())
	if err != nil {
		h.Log.WithError(err).Error("catalog products failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Could not load products"})
		return
	}

	// 3. --- Filter & Paginate ---
	c.JSON(http.StatusOK, catalog.Paginate(catalog.Apply(products, f), page, perPage))
}

// GetProduct is the handler for GET /v1/products/:id
func (h *Handlers) GetProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	product, err := h.Catalog.Product(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		h.Log.WithError(err).WithField("product_id", id).Error("catalog product failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Could not load product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

func queryInt64(c *gin.Context, key string) int64 {
	v, _ := strconv.ParseInt(c.Query(key), 10, 64)
	return v
}

func queryFloat(c *gin.Context, key string) float64 {
	v, _ := strconv.ParseFloat(c.Query(key), 64)
	return v
}
