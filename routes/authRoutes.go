package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/quillas/bakery-api/controllers"
)

func AuthRoutes(server *gin.Engine) {
	server.POST("/register", controllers.Signup)
	server.POST("/login", controllers.Login)
}
