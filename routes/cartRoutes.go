package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/quillas/bakery-api/controllers"
	"github.com/quillas/bakery-api/middlewares"
)

func CartRoutes(server *gin.Engine) {
	cart := server.Group("/", middlewares.RequireAuth())
	{
		cart.POST("/add_to_cart/:productId", controllers.AddToCart)
		cart.GET("/cart", controllers.ViewCart)
		cart.POST("/update_quantity/:itemId", controllers.UpdateQuantity)
		cart.POST("/remove_from_cart/:itemId", controllers.RemoveFromCart)
		cart.POST("/delivery_options", controllers.SetDeliveryOptions)
		cart.GET("/checkout", controllers.GetCheckout)
		cart.POST("/checkout", controllers.Checkout)
	}
}
