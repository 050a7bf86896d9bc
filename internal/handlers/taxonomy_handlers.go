package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetAllCategories is the handler for GET /v1/categories
func (h *Handlers) GetAllCategories(c *gin.Context) {
	categories, err := h.Catalog.Categories(c.Request.Context())
	if err != nil {
		h.Log.WithError(err).Error("catalog categories failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Could not load categories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// GetAllBrands is the handler for GET /v1/brands
func (h *Handlers) GetAllBrands(c *gin.Context) {
	brands, err := h.Catalog.Brands(c.Request.Context())
	if err != nil {
		h.Log.WithError(err).Error("catalog brands failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Could not load brands"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"brands": brands})
}

// GetTrending is the handler for GET /v1/trending
func (h *Handlers) GetTrending(c *gin.Context) {
	trending, err := h.Catalog.Trending(c.Request.Context())
	if err != nil {
		h.Log.WithError(err).Error("catalog trending failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Could not load trending products"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"trending": trending})
}

// GetSiteSettings is the handler for GET /v1/site
func (h *Handlers) GetSiteSettings(c *gin.Context) {
	settings, err := h.Catalog.SiteSettings(c.Request.Context())
	if err != nil {
		h.Log.WithError(err).Error("catalog site settings failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Could not load site settings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"site": settings})
}
