package routes

import (
	"net/http"
	"time"

	"github.com/01moynul/grocery-storefront/internal/handlers"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CORSMiddleware lets the storefront UI at origin call the API from the browser.
func CORSMiddleware(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		// Preflight: the browser only needs the headers above.
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// RequestLogger writes one logrus entry per request.
func RequestLogger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := log.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.FullPath(),
			"status":  c.Writer.Status(),
			"latency": time.Since(start),
			"client":  c.ClientIP(),
		})
		switch {
		case c.Writer.Status() >= 500:
			entry.Error("request failed")
		case c.Writer.Status() >= 400:
			entry.Warn("request rejected")
		default:
			entry.Info("request served")
		}
	}
}

func SetupRouter(h *handlers.Handlers, corsOrigin string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(h.Log.WithField("component", "http")))

	// --- APPLY THE CORS GUARD ---
	router.Use(CORSMiddleware(corsOrigin))

	v1 := router.Group("/v1")
	{
		// --- Ping Route ---
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong!"})
		})

		// --- Catalog Routes ---
		v1.GET("/products", h.SearchProducts)
		v1.GET("/products/:id", h.GetProduct)
		v1.GET("/categories", h.GetAllCategories)
		v1.GET("/brands", h.GetAllBrands)
		v1.GET("/trending", h.GetTrending)
		v1.GET("/site", h.GetSiteSettings)

		// --- Cart Routes ---
		v1.GET("/cart", h.GetCart)
		v1.POST("/cart/items", h.AddToCart)
		v1.DELETE("/cart/items/:id", h.DeleteCartItem)
		v1.DELETE("/cart", h.ClearCart)

		// --- Checkout ---
		v1.POST("/checkout", h.PlaceOrder)

		// --- Notifications ---
		v1.GET("/notifications", h.GetMyNotifications)
	}

	return router
}
