package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/quillas/bakery-api/initializers"
	"github.com/quillas/bakery-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const reportDateLayout = "2006-01-02"

type topProduct struct {
	ProductID int    `json:"productId"`
	Name      string `json:"name"`
	Count     int64  `json:"count"`
}

// parseReportRange reads the optional start_date/end_date query params.
// Both bounds are inclusive.
func parseReportRange(ctx *gin.Context) (start, end time.Time, hasStart, hasEnd bool, err error) {
	if raw := ctx.Query("start_date"); raw != "" {
		start, err = time.Parse(reportDateLayout, raw)
		if err != nil {
			return
		}
		hasStart = true
	}
	if raw := ctx.Query("end_date"); raw != "" {
		end, err = time.Parse(reportDateLayout, raw)
		if err != nil {
			return
		}
		hasEnd = true
	}
	return
}

func scopeOrdersByDate(query *gorm.DB, start, end time.Time, hasStart, hasEnd bool) *gorm.DB {
	if hasStart {
		query = query.Where("orders.created_at >= ?", start)
	}
	if hasEnd {
		query = query.Where("orders.created_at < ?", end.AddDate(0, 0, 1))
	}
	return query
}

// GetReports computes order count, revenue and the five most ordered
// products, optionally scoped to a date range. Revenue is the sum of
// price times quantity over the order items in range.
func GetReports(ctx *gin.Context) {
	start, end, hasStart, hasEnd, err := parseReportRange(ctx)
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD", err)
		return
	}

	var totalOrders int64
	ordersQuery := scopeOrdersByDate(initializers.DB.Model(&models.Order{}), start, end, hasStart, hasEnd)
	if result := ordersQuery.Count(&totalOrders); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to count orders", result.Error)
		return
	}

	itemsQuery := initializers.DB.Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.deleted_at IS NULL")
	itemsQuery = scopeOrdersByDate(itemsQuery, start, end, hasStart, hasEnd)

	var items []models.OrderItem
	if result := itemsQuery.Find(&items); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch order items", result.Error)
		return
	}

	totalRevenue := decimal.Zero
	for _, item := range items {
		totalRevenue = totalRevenue.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	// Item names are add-time snapshots, so ranking groups on product_id
	// alone and takes one name per product.
	topQuery := initializers.DB.Model(&models.OrderItem{}).
		Select("order_items.product_id as product_id, MAX(order_items.name) as name, COUNT(*) as count").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.deleted_at IS NULL")
	topQuery = scopeOrdersByDate(topQuery, start, end, hasStart, hasEnd)

	var topProducts []topProduct
	result := topQuery.
		Group("order_items.product_id").
		Order("count DESC").
		Limit(5).
		Scan(&topProducts)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to compute top products", result.Error)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"totalOrders":  totalOrders,
		"totalRevenue": totalRevenue,
		"topProducts":  topProducts,
	})
}
