package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/quillas/bakery-api/initializers"
	"github.com/quillas/bakery-api/models"
	"github.com/quillas/bakery-api/routes"
)

const testJWTSecret = "test-secret-key"

func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)
	os.Setenv("JWT_SECRET", testJWTSecret)

	// A named in-memory database so every test starts from a clean schema
	// while gorm's connection pool still sees the same data.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect test database: %v", err)
	}

	err = testDB.AutoMigrate(&models.User{}, &models.Customer{}, &models.Category{}, &models.Product{}, &models.ProductImage{}, &models.Order{}, &models.OrderItem{})
	if err != nil {
		t.Fatalf("failed to auto-migrate models: %v", err)
	}

	originalDB := initializers.DB
	initializers.SetTestDB(testDB)
	t.Cleanup(func() {
		initializers.SetTestDB(originalDB)
	})

	router := gin.New()
	router.Use(gin.Recovery())
	routes.DefaultRoutes(router)
	routes.AuthRoutes(router)
	routes.MenuRoutes(router)
	routes.CartRoutes(router)
	routes.AdminRoutes(router)

	return router, testDB
}

func seedAccount(t *testing.T, db *gorm.DB, username, role string) (models.User, models.Customer) {
	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Phone:    "0700000000",
		Password: "not-a-real-hash",
		Role:     role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	customer := models.Customer{
		UserID:    int(user.ID),
		FirstName: "Test",
		LastName:  username,
		Phone:     "0700000000",
		Address:   "12 Baker Street",
	}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("failed to seed customer: %v", err)
	}

	return user, customer
}

func authToken(t *testing.T, user models.User) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"email":    user.Email,
		"username": user.Username,
		"role":     user.Role,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return signed
}

func seedProduct(t *testing.T, db *gorm.DB, code, name string, price float64) models.Product {
	category := models.Category{Name: "Pastries-" + code}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}

	product := models.Product{
		Code:        code,
		Name:        name,
		Description: "A test bake",
		Price:       decimal.NewFromFloat(price),
		CategoryID:  int(category.ID),
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}
	return product
}

func performRequest(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		encoded, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(encoded)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder, out interface{}) {
	if err := json.Unmarshal(recorder.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to decode response %q: %v", recorder.Body.String(), err)
	}
}
