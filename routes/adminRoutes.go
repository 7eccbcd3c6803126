package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/quillas/bakery-api/controllers"
	"github.com/quillas/bakery-api/middlewares"
)

func AdminRoutes(server *gin.Engine) {
	admin := server.Group("/", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		admin.GET("/admin_dashboard", controllers.GetAdminDashboard)
		admin.GET("/manage_orders", controllers.GetOrders)
		admin.POST("/update_order_status", controllers.UpdateOrderStatus)
		admin.GET("/manage_products", controllers.GetManagedProducts)
		admin.POST("/add_product", controllers.AddProduct)
		admin.POST("/edit_product/:id", controllers.EditProduct)
		admin.POST("/delete_product/:id", controllers.DeleteProduct)
		admin.POST("/product-images", controllers.UploadProductImages)
		admin.POST("/categories", controllers.CreateCategory)
		admin.GET("/categories", controllers.GetCategories)
		admin.GET("/reports", controllers.GetReports)
	}
}
