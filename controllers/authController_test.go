package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/quillas/bakery-api/models"
)

func TestRegistration(t *testing.T) {
	router, testDB := setupTestRouter(t)

	signupBody := map[string]string{
		"username":  "lucia",
		"email":     "lucia@example.com",
		"password":  "sourdough42",
		"firstName": "Lucia",
		"lastName":  "Quilla",
		"phone":     "0711111111",
		"address":   "3 Flour Lane",
	}

	t.Run("Creates the account and its customer profile together", func(t *testing.T) {
		recorder := performRequest(router, http.MethodPost, "/register", "", signupBody)
		assert.Equal(t, http.StatusCreated, recorder.Code)

		var user models.User
		assert.NoError(t, testDB.Where("username = ?", "lucia").First(&user).Error)
		assert.Equal(t, "user", user.Role)
		assert.NotEqual(t, "sourdough42", user.Password)

		var customer models.Customer
		assert.NoError(t, testDB.Where("user_id = ?", user.ID).First(&customer).Error)
		assert.Equal(t, "Lucia", customer.FirstName)
		assert.Equal(t, "3 Flour Lane", customer.Address)
	})

	t.Run("Rejects a duplicate account", func(t *testing.T) {
		recorder := performRequest(router, http.MethodPost, "/register", "", signupBody)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("Rejects a taken email under a new username", func(t *testing.T) {
		body := map[string]string{}
		for key, value := range signupBody {
			body[key] = value
		}
		body["username"] = "lucia-two"

		recorder := performRequest(router, http.MethodPost, "/register", "", body)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("The email column itself is unique", func(t *testing.T) {
		duplicate := models.User{
			Username: "lucia-three",
			Email:    "lucia@example.com",
			Password: "not-a-real-hash",
			Role:     "user",
		}
		assert.ErrorIs(t, testDB.Create(&duplicate).Error, gorm.ErrDuplicatedKey)
	})

	t.Run("Rejects missing profile fields", func(t *testing.T) {
		recorder := performRequest(router, http.MethodPost, "/register", "", map[string]string{
			"username": "nobody",
			"email":    "nobody@example.com",
			"password": "password123",
		})
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestLogin(t *testing.T) {
	router, _ := setupTestRouter(t)

	performRequest(router, http.MethodPost, "/register", "", map[string]string{
		"username":  "marco",
		"email":     "marco@example.com",
		"password":  "ciabatta99",
		"firstName": "Marco",
		"lastName":  "Quilla",
		"phone":     "0722222222",
		"address":   "4 Flour Lane",
	})

	t.Run("Issues a token for valid credentials", func(t *testing.T) {
		recorder := performRequest(router, http.MethodPost, "/login", "", map[string]string{
			"identifier": "marco",
			"password":   "ciabatta99",
		})
		assert.Equal(t, http.StatusOK, recorder.Code)

		var response map[string]string
		decodeBody(t, recorder, &response)
		assert.NotEmpty(t, response["token"])
	})

	t.Run("Accepts the email as identifier", func(t *testing.T) {
		recorder := performRequest(router, http.MethodPost, "/login", "", map[string]string{
			"identifier": "marco@example.com",
			"password":   "ciabatta99",
		})
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("Rejects a wrong password", func(t *testing.T) {
		recorder := performRequest(router, http.MethodPost, "/login", "", map[string]string{
			"identifier": "marco",
			"password":   "focaccia00",
		})
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestHome(t *testing.T) {
	router, testDB := setupTestRouter(t)

	t.Run("Anonymous callers get the landing page", func(t *testing.T) {
		recorder := performRequest(router, http.MethodGet, "/", "", nil)
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("Authenticated callers are redirected to the menu", func(t *testing.T) {
		user, _ := seedAccount(t, testDB, "nina", "user")
		recorder := performRequest(router, http.MethodGet, "/", authToken(t, user), nil)
		assert.Equal(t, http.StatusFound, recorder.Code)
		assert.Equal(t, "/menu", recorder.Header().Get("Location"))
	})
}
