package controllers

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func GetHome(ctx *gin.Context) {
	// Authenticated callers go straight to the menu.
	authHeader := ctx.GetHeader("Authorization")
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString != "" && tokenString != authHeader {
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err == nil && token.Valid {
			ctx.Redirect(http.StatusFound, "/menu")
			return
		}
	}

	message := `Welcome to the Quillas Bakery API ❤️.

The following are the endpoints for this API:

AUTH
- POST "/register" - Create an account with a customer profile
- POST "/login" - Access your account

MENU & CART
- GET "/menu" - List bakery products
- GET "/menu/{id}" - Get a product by ID
- POST "/add_to_cart/{productId}" - Add a product to your cart
- GET "/cart" - View your cart
- POST "/update_quantity/{itemId}" - Change an item quantity
- POST "/remove_from_cart/{itemId}" - Remove an item
- POST "/delivery_options" - Choose pickup or delivery
- GET/POST "/checkout" - Review and place your order

ADMIN (staff only)
- GET "/admin_dashboard" - Headline counts
- GET "/manage_orders" - List all orders
- POST "/update_order_status" - Mark orders delivered
- GET "/manage_products" - List products
- POST "/add_product" - Create a product
- POST "/edit_product/{id}" - Update a product
- POST "/delete_product/{id}" - Delete a product
- POST "/product-images" - Upload product images
- GET/POST "/categories" - Manage categories
- GET "/reports" - Sales report with optional start_date/end_date`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
