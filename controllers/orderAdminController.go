package controllers

import (
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/quillas/bakery-api/initializers"
	"github.com/quillas/bakery-api/models"
	"gorm.io/gorm"
)

// GetAdminDashboard returns the headline counts for the staff landing page.
func GetAdminDashboard(ctx *gin.Context) {
	var totalOrders, undeliveredOrders, totalProducts int64

	if result := initializers.DB.Model(&models.Order{}).Count(&totalOrders); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to count orders", result.Error)
		return
	}
	if result := initializers.DB.Model(&models.Order{}).Where("is_delivered = ?", false).Count(&undeliveredOrders); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to count undelivered orders", result.Error)
		return
	}
	if result := initializers.DB.Model(&models.Product{}).Count(&totalProducts); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to count products", result.Error)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"totalOrders":       totalOrders,
		"undeliveredOrders": undeliveredOrders,
		"totalProducts":     totalProducts,
	})
}

// GetOrders lists every order regardless of owner or status.
func GetOrders(ctx *gin.Context) {
	var orders []models.Order

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "15"))
	offset := (page - 1) * limit

	sortOrder := ctx.DefaultQuery("sort", "desc")
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}

	query := initializers.DB.Preload("OrderItems")

	if search := ctx.Query("search"); search != "" {
		query = query.Where("reference LIKE ?", "%"+search+"%")
	}

	query = query.Order("created_at " + sortOrder)

	result := query.Limit(limit).Offset(offset).Find(&orders)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch orders", result.Error)
		return
	}

	var count int64
	countQuery := initializers.DB.Model(&models.Order{})
	if search := ctx.Query("search"); search != "" {
		countQuery = countQuery.Where("reference LIKE ?", "%"+search+"%")
	}
	countQuery.Count(&count)

	previousPage := page - 1
	nextPage := page + 1
	totalPages := math.Ceil(float64(count) / float64(limit))

	ctx.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"metadata": gin.H{
			"total":        count,
			"currentPage":  page,
			"limit":        limit,
			"hasPrevPage":  previousPage > 0,
			"hasNextPage":  int(totalPages) > page,
			"previousPage": previousPage,
			"nextPage":     nextPage,
		},
	})
}

// UpdateOrderStatus sets the delivered flag from the posted status. Only the
// literal "delivered" marks an order delivered; any other value clears the
// flag, which puts the order back in the customer's cart.
func UpdateOrderStatus(ctx *gin.Context) {
	var orderStatusData struct {
		OrderID   int    `json:"orderId" binding:"required"`
		NewStatus string `json:"newStatus" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&orderStatusData); err != nil {
		log.Println(err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse request body")
		return
	}

	var order models.Order
	if err := initializers.DB.First(&order, orderStatusData.OrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		} else {
			log.Println(err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	delivered := orderStatusData.NewStatus == "delivered"
	updates := map[string]interface{}{"is_delivered": delivered}
	if delivered {
		updates["cart_owner_id"] = nil
	} else {
		// A reverted order becomes the customer's cart again, which the
		// unique cart_owner_id index refuses if they already have one.
		updates["cart_owner_id"] = order.CustomerID
	}
	if result := initializers.DB.Model(&order).Updates(updates); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			sendErrorResponse(ctx, http.StatusConflict, "Customer already has an active order")
			return
		}
		log.Println(result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update order status")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Order status updated successfully.",
	})
}
