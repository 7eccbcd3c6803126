package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/quillas/bakery-api/controllers"
	"github.com/quillas/bakery-api/middlewares"
)

func MenuRoutes(server *gin.Engine) {
	menu := server.Group("/menu", middlewares.RequireAuth())
	{
		menu.GET("", controllers.GetMenu)
		menu.GET("/:id", controllers.GetMenuItem)
	}
}
