package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/quillas/bakery-api/models"
)

func TestProductAdministration(t *testing.T) {
	router, testDB := setupTestRouter(t)

	staff, _ := seedAccount(t, testDB, "baker", "admin")
	staffToken := authToken(t, staff)

	category := models.Category{Name: "Breads"}
	testDB.Create(&category)

	t.Run("Creates a product", func(t *testing.T) {
		body := map[string]interface{}{
			"code":        "RYE-01",
			"name":        "Rye Loaf",
			"description": "Dark rye, long ferment",
			"price":       "4.80",
			"categoryId":  category.ID,
		}
		recorder := performRequest(router, http.MethodPost, "/add_product", staffToken, body)
		assert.Equal(t, http.StatusCreated, recorder.Code)

		var product models.Product
		testDB.Where("code = ?", "RYE-01").First(&product)
		assert.Equal(t, "Rye Loaf", product.Name)
		assert.True(t, product.Price.Equal(decimal.NewFromFloat(4.80)))
	})

	t.Run("Rejects a duplicate code", func(t *testing.T) {
		body := map[string]interface{}{
			"code":        "RYE-01",
			"name":        "Another Rye",
			"description": "Duplicate code",
			"price":       "4.80",
			"categoryId":  category.ID,
		}
		recorder := performRequest(router, http.MethodPost, "/add_product", staffToken, body)
		assert.Equal(t, http.StatusConflict, recorder.Code)
	})

	t.Run("Rejects a non-positive price", func(t *testing.T) {
		body := map[string]interface{}{
			"code":        "FRE-01",
			"name":        "Free Bread",
			"description": "Should not exist",
			"price":       "0",
			"categoryId":  category.ID,
		}
		recorder := performRequest(router, http.MethodPost, "/add_product", staffToken, body)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("Edits an existing product", func(t *testing.T) {
		var product models.Product
		testDB.Where("code = ?", "RYE-01").First(&product)

		body := map[string]interface{}{"price": "5.20", "name": "Rye Loaf Large"}
		recorder := performRequest(router, http.MethodPost, fmt.Sprintf("/edit_product/%d", product.ID), staffToken, body)
		assert.Equal(t, http.StatusOK, recorder.Code)

		var updated models.Product
		testDB.First(&updated, product.ID)
		assert.Equal(t, "Rye Loaf Large", updated.Name)
		assert.True(t, updated.Price.Equal(decimal.NewFromFloat(5.20)))
	})

	t.Run("Editing an unknown product returns 404", func(t *testing.T) {
		recorder := performRequest(router, http.MethodPost, "/edit_product/99999", staffToken, map[string]interface{}{"name": "Ghost"})
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("Deleting a product removes dependent order items", func(t *testing.T) {
		user, customer := seedAccount(t, testDB, "ivan", "user")
		userToken := authToken(t, user)

		doomed := seedProduct(t, testDB, "DOO-01", "Doomed Danish", 2.00)
		recorder := performRequest(router, http.MethodPost, fmt.Sprintf("/add_to_cart/%d", doomed.ID), userToken, map[string]int{"quantity": 2})
		assert.Equal(t, http.StatusOK, recorder.Code)

		recorder = performRequest(router, http.MethodPost, fmt.Sprintf("/delete_product/%d", doomed.ID), staffToken, nil)
		assert.Equal(t, http.StatusOK, recorder.Code)

		var productCount, itemCount int64
		testDB.Model(&models.Product{}).Where("id = ?", doomed.ID).Count(&productCount)
		testDB.Model(&models.OrderItem{}).Where("product_id = ?", doomed.ID).Count(&itemCount)
		assert.Equal(t, int64(0), productCount)
		assert.Equal(t, int64(0), itemCount)

		// The customer's order survives, just without the item.
		var orderCount int64
		testDB.Model(&models.Order{}).Where("customer_id = ?", customer.ID).Count(&orderCount)
		assert.Equal(t, int64(1), orderCount)
	})

	t.Run("Denies non-staff callers regardless of authentication", func(t *testing.T) {
		user, _ := seedAccount(t, testDB, "judy", "user")
		userToken := authToken(t, user)

		recorder := performRequest(router, http.MethodGet, "/manage_products", userToken, nil)
		assert.Equal(t, http.StatusForbidden, recorder.Code)

		recorder = performRequest(router, http.MethodGet, "/manage_products", "", nil)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("Lists products for staff", func(t *testing.T) {
		recorder := performRequest(router, http.MethodGet, "/manage_products", staffToken, nil)
		assert.Equal(t, http.StatusOK, recorder.Code)

		var response struct {
			Products []models.Product `json:"products"`
		}
		decodeBody(t, recorder, &response)
		assert.NotEmpty(t, response.Products)
	})

	t.Run("Manages categories", func(t *testing.T) {
		recorder := performRequest(router, http.MethodPost, "/categories", staffToken, map[string]string{"name": "Cakes"})
		assert.Equal(t, http.StatusCreated, recorder.Code)

		recorder = performRequest(router, http.MethodGet, "/categories", staffToken, nil)
		assert.Equal(t, http.StatusOK, recorder.Code)

		var response struct {
			Categories []models.Category `json:"categories"`
		}
		decodeBody(t, recorder, &response)
		assert.NotEmpty(t, response.Categories)
	})
}
