package initializers

import (
	"log"

	"github.com/quillas/bakery-api/models"
)

func SyncDatabase() {
	DB.AutoMigrate(&models.User{}, &models.Customer{}, &models.Category{}, &models.Product{}, &models.ProductImage{}, &models.Order{}, &models.OrderItem{})
	log.Println("Database synced successfully.")
}
