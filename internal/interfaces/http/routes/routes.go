// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/giftflare-backend/internal/interfaces/http/handlers"
)

// Handlers groups the endpoint handlers
type Handlers struct {
	Products *handlers.ProductHandler
	Cart     *handlers.CartHandler
	Hamper   *handlers.HamperHandler
	Checkout *handlers.CheckoutHandler
	Location *handlers.LocationHandler
}

// SetupRoutes registers every API route. Shopper routes run behind the
// session middleware; the catalog is public.
func SetupRoutes(rg *gin.RouterGroup, h Handlers, sessionMiddleware gin.HandlerFunc) {
	SetupProductRoutes(rg, h.Products)

	shopper := rg.Group("")
	shopper.Use(sessionMiddleware)
	{
		SetupCartRoutes(shopper, h.Cart)
		SetupHamperRoutes(shopper, h.Hamper)
		SetupCheckoutRoutes(shopper, h.Checkout)
		SetupLocationRoutes(shopper, h.Location)
	}
}

// SetupProductRoutes sets up product related routes
func SetupProductRoutes(rg *gin.RouterGroup, productHandler *handlers.ProductHandler) {
	products := rg.Group("/products")
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/options", productHandler.GetProductOptions)
		products.GET("/:id", productHandler.GetProduct)
	}
}

// SetupCartRoutes sets up cart related routes
func SetupCartRoutes(rg *gin.RouterGroup, cartHandler *handlers.CartHandler) {
	cart := rg.Group("/cart")
	{
		cart.GET("", cartHandler.GetCart)
		cart.DELETE("", cartHandler.ClearCart)
		cart.GET("/count", cartHandler.GetCartCount)
		cart.PUT("/visibility", cartHandler.SetVisibility)
		cart.POST("/items", cartHandler.AddToCart)
		cart.PUT("/items/:id", cartHandler.UpdateQuantity)
		cart.PATCH("/items/:id", cartHandler.UpdateCartItem)
		cart.DELETE("/items/:id", cartHandler.RemoveFromCart)
	}
}

// SetupHamperRoutes sets up hamper builder routes
func SetupHamperRoutes(rg *gin.RouterGroup, hamperHandler *handlers.HamperHandler) {
	hamper := rg.Group("/hamper")
	{
		hamper.GET("", hamperHandler.GetHamper)
		hamper.DELETE("", hamperHandler.Cancel)
		hamper.POST("/items", hamperHandler.AddItem)
		hamper.PUT("/items/:productId", hamperHandler.SetQuantity)
		hamper.DELETE("/items/:productId", hamperHandler.RemoveItem)
		hamper.PUT("/details", hamperHandler.SetDetails)
		hamper.POST("/commit", hamperHandler.Commit)
	}
}

// SetupCheckoutRoutes sets up checkout related routes
func SetupCheckoutRoutes(rg *gin.RouterGroup, checkoutHandler *handlers.CheckoutHandler) {
	checkout := rg.Group("/checkout")
	{
		checkout.GET("/summary", checkoutHandler.GetSummary)
		checkout.POST("", checkoutHandler.PlaceOrder)
	}
}

// SetupLocationRoutes sets up city preference routes
func SetupLocationRoutes(rg *gin.RouterGroup, locationHandler *handlers.LocationHandler) {
	location := rg.Group("/location")
	{
		location.GET("/city", locationHandler.GetCity)
		location.PUT("/city", locationHandler.SetCity)
	}
}
