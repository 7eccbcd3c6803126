package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/quillas/bakery-api/initializers"
	"github.com/quillas/bakery-api/models"
	"github.com/quillas/bakery-api/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	msgProductNotFound  = "Product not found"
	msgCartItemNotFound = "Cart item not found"
	msgNoActiveOrder    = "You have no active order"
	msgInvalidQuantity  = "Quantity must be at least 1"
)

// currentCustomer resolves the customer profile of the authenticated caller.
func currentCustomer(ctx *gin.Context) (models.Customer, error) {
	userClaims, exists := ctx.Get("user")
	if !exists {
		return models.Customer{}, errors.New("user not found in context")
	}

	claims := userClaims.(jwt.MapClaims)
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return models.Customer{}, errors.New("user_id claim missing")
	}

	var customer models.Customer
	result := initializers.DB.Where("user_id = ?", int(userID)).First(&customer)
	return customer, result.Error
}

// activeOrder returns the customer's undelivered order. With create set, a
// missing order is created with its cart_owner_id stamped; the unique index
// on that column makes the loser of two racing creates fail with
// gorm.ErrDuplicatedKey. Callers retry in a fresh transaction, whose
// snapshot includes the winner's row.
func activeOrder(tx *gorm.DB, customerID int, create bool) (models.Order, error) {
	var order models.Order
	if !create {
		err := tx.Where("customer_id = ? AND is_delivered = ?", customerID, false).First(&order).Error
		return order, err
	}

	owner := customerID
	err := tx.Where("customer_id = ? AND is_delivered = ?", customerID, false).
		Attrs(models.Order{CustomerID: customerID, CartOwnerID: &owner, DeliveryOption: models.DeliveryOptionPickup}).
		FirstOrCreate(&order).Error
	return order, err
}

func cartTotal(items []models.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// AddToCart puts a product into the caller's active order, creating the
// order on first use. Re-adding a product accumulates its quantity; the
// item price stays the snapshot taken on the first add.
func AddToCart(ctx *gin.Context) {
	customer, err := currentCustomer(ctx)
	if err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "No customer profile for this account")
		return
	}

	productId, err := strconv.Atoi(ctx.Param("productId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid product ID")
		return
	}

	quantity := 1
	if ctx.Request.ContentLength > 0 {
		var body struct {
			Quantity int `json:"quantity"`
		}
		if err := ctx.ShouldBindJSON(&body); err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
			return
		}
		quantity = body.Quantity
	}
	if quantity < 1 {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidQuantity)
		return
	}

	var product models.Product
	if err := initializers.DB.First(&product, productId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgProductNotFound)
		} else {
			log.Println("Database error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	var item models.OrderItem
	addItem := func(tx *gorm.DB) error {
		order, err := activeOrder(tx, int(customer.ID), true)
		if err != nil {
			return err
		}

		err = tx.Where("order_id = ? AND product_id = ?", order.ID, product.ID).First(&item).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			item = models.OrderItem{
				OrderID:   int(order.ID),
				ProductID: int(product.ID),
				Name:      product.Name,
				Quantity:  quantity,
				Price:     product.Price,
			}
			return tx.Create(&item).Error
		}
		if err != nil {
			return err
		}

		item.Quantity += quantity
		return tx.Save(&item).Error
	}

	err = initializers.DB.Transaction(addItem)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost the cart-creation race; the retry finds the winner's order.
		err = initializers.DB.Transaction(addItem)
	}
	if err != nil {
		log.Println("Add to cart error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": product.Name + " added to cart",
		"item":    item,
	})
}

// ViewCart returns the active order with its items, or an empty cart when
// the customer has none.
func ViewCart(ctx *gin.Context) {
	customer, err := currentCustomer(ctx)
	if err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "No customer profile for this account")
		return
	}

	var order models.Order
	result := initializers.DB.
		Where("customer_id = ? AND is_delivered = ?", customer.ID, false).
		Preload("OrderItems").
		First(&order)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			sendJSONResponse(ctx, http.StatusOK, gin.H{"order": nil, "total": decimal.Zero})
			return
		}
		log.Println("Database error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"order": order,
		"total": cartTotal(order.OrderItems),
	})
}

// findOwnedCartItem loads an order item constrained to the caller's active
// order. Anything else is reported as not found.
func findOwnedCartItem(customerID, itemId int) (models.OrderItem, error) {
	var item models.OrderItem
	err := initializers.DB.
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("order_items.id = ? AND orders.customer_id = ? AND orders.is_delivered = ? AND orders.deleted_at IS NULL", itemId, customerID, false).
		First(&item).Error
	return item, err
}

// UpdateQuantity overwrites an item's quantity. Unlike AddToCart there is no
// accumulation.
func UpdateQuantity(ctx *gin.Context) {
	customer, err := currentCustomer(ctx)
	if err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "No customer profile for this account")
		return
	}

	itemId, err := strconv.Atoi(ctx.Param("itemId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid item ID")
		return
	}

	var body struct {
		Quantity int `json:"quantity" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	if body.Quantity < 1 {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidQuantity)
		return
	}

	item, err := findOwnedCartItem(int(customer.ID), itemId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgCartItemNotFound)
		} else {
			log.Println("Database error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	item.Quantity = body.Quantity
	if err := initializers.DB.Save(&item).Error; err != nil {
		log.Println("Update quantity error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": fmt.Sprintf("Updated %s quantity to %d", item.Name, item.Quantity),
		"item":    item,
	})
}

// RemoveFromCart deletes an item from the active order.
func RemoveFromCart(ctx *gin.Context) {
	customer, err := currentCustomer(ctx)
	if err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "No customer profile for this account")
		return
	}

	itemId, err := strconv.Atoi(ctx.Param("itemId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid item ID")
		return
	}

	item, err := findOwnedCartItem(int(customer.ID), itemId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgCartItemNotFound)
		} else {
			log.Println("Database error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	if err := initializers.DB.Delete(&item).Error; err != nil {
		log.Println("Remove from cart error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Removed " + item.Name + " from cart"})
}

// SetDeliveryOptions records the delivery preference and any special
// requests on the active order.
func SetDeliveryOptions(ctx *gin.Context) {
	customer, err := currentCustomer(ctx)
	if err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "No customer profile for this account")
		return
	}

	var body struct {
		DeliveryOption  string `json:"deliveryOption" binding:"required"`
		SpecialRequests string `json:"specialRequests"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	if body.DeliveryOption != models.DeliveryOptionPickup && body.DeliveryOption != models.DeliveryOptionDelivery {
		sendErrorResponse(ctx, http.StatusBadRequest, "Delivery option must be pickup or delivery")
		return
	}

	order, err := activeOrder(initializers.DB, int(customer.ID), false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgNoActiveOrder)
		} else {
			log.Println("Database error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	order.DeliveryOption = body.DeliveryOption
	order.SpecialRequests = body.SpecialRequests
	if err := initializers.DB.Save(&order).Error; err != nil {
		log.Println("Delivery option update error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Delivery options saved", "order": order})
}

// GetCheckout returns the order summary shown before confirming.
func GetCheckout(ctx *gin.Context) {
	customer, err := currentCustomer(ctx)
	if err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "No customer profile for this account")
		return
	}

	var order models.Order
	result := initializers.DB.
		Where("customer_id = ? AND is_delivered = ?", customer.ID, false).
		Preload("OrderItems").
		First(&order)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgNoActiveOrder)
		} else {
			log.Println("Database error:", result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"order": order,
		"total": cartTotal(order.OrderItems),
	})
}

// Checkout finalizes the active order. After this the order no longer acts
// as the customer's cart and a later AddToCart starts a fresh one.
func Checkout(ctx *gin.Context) {
	customer, err := currentCustomer(ctx)
	if err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "No customer profile for this account")
		return
	}

	var order models.Order
	result := initializers.DB.
		Where("customer_id = ? AND is_delivered = ?", customer.ID, false).
		Preload("OrderItems").
		First(&order)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgNoActiveOrder)
		} else {
			log.Println("Database error:", result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	reference, err := utils.GenerateCode(6)
	if err != nil {
		log.Println("Reference generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	order.IsDelivered = true
	order.CartOwnerID = nil
	order.Reference = "QB-" + strings.ToUpper(reference)
	if err := initializers.DB.Save(&order).Error; err != nil {
		log.Println("Checkout error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	total := cartTotal(order.OrderItems)

	if os.Getenv("FROM_EMAIL") != "" {
		go func(customer models.Customer, order models.Order) {
			if err := sendOrderConfirmationEmail(customer, order); err != nil {
				log.Printf("Failed to send confirmation email for order %d: %v", order.ID, err)
			}
		}(customer, order)
	}

	go func(customer models.Customer, order models.Order, total decimal.Decimal) {
		message := fmt.Sprintf("Quillas Bakery: order %s confirmed, total %s.", order.Reference, total.StringFixed(2))
		if err := utils.SendSMS(customer.Phone, message); err != nil {
			log.Printf("Failed to send confirmation SMS for order %d: %v", order.ID, err)
		}
	}(customer, order, total)

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": "Order has been placed successfully",
		"order":   order,
		"total":   total,
	})
}

func sendOrderConfirmationEmail(customer models.Customer, order models.Order) error {
	var user models.User
	if err := initializers.DB.First(&user, customer.UserID).Error; err != nil {
		return err
	}

	emailData := utils.EmailData{
		Name:           customer.FirstName,
		Message:        "Your order has been placed. We will let you know when it is on its way.",
		OrderReference: order.Reference,
		LogoURL:        "https://www.quillasbakery.com/images/logo.jpg",
	}

	templatePath := filepath.Join("templates", "order_confirmation.html")
	return utils.SendEmail(user.Email, "Your Quillas Bakery order "+order.Reference, emailData, templatePath)
}
