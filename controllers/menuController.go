package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/quillas/bakery-api/initializers"
	"github.com/quillas/bakery-api/models"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const menuCacheKey = "menu:products"

// clearMenuCache drops the cached product list. Called by catalog admin
// writes; a nil client or a failed delete just means the next read rebuilds.
func clearMenuCache(ctx *gin.Context) {
	if initializers.Redis == nil {
		return
	}
	if err := initializers.Redis.Del(ctx, menuCacheKey).Err(); err != nil {
		log.Println("Failed to clear menu cache:", err)
	}
}

func menuFromCache(ctx *gin.Context) ([]models.Product, bool) {
	if initializers.Redis == nil {
		return nil, false
	}

	cached, err := initializers.Redis.ZRange(ctx, menuCacheKey, 0, -1).Result()
	if err != nil || len(cached) == 0 {
		return nil, false
	}

	products := make([]models.Product, 0, len(cached))
	for _, entry := range cached {
		var product models.Product
		if err := json.Unmarshal([]byte(entry), &product); err != nil {
			log.Println("Failed to decode cached product:", err)
			return nil, false
		}
		products = append(products, product)
	}
	return products, true
}

func storeMenuInCache(ctx *gin.Context, products []models.Product) {
	if initializers.Redis == nil {
		return
	}

	initializers.Redis.Del(ctx, menuCacheKey)
	for _, product := range products {
		encoded, err := json.Marshal(product)
		if err != nil {
			log.Println("Failed to encode product for cache:", err)
			continue
		}
		if err := initializers.Redis.ZAdd(ctx, menuCacheKey, redis.Z{
			Score:  float64(product.ID),
			Member: encoded,
		}).Err(); err != nil {
			log.Println("Failed to cache product:", err)
		}
	}
}

// GetMenu lists the product catalog. Reads come from the Redis cache when
// one is configured and fall back to the database otherwise.
func GetMenu(ctx *gin.Context) {
	products, fromCache := menuFromCache(ctx)
	if !fromCache {
		result := initializers.DB.Preload("Category").Preload("Images").Find(&products)
		if result.Error != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch menu", result.Error)
			return
		}
		storeMenuInCache(ctx, products)
	}

	ctx.JSON(http.StatusOK, gin.H{
		"products": products,
		"metadata": gin.H{
			"total":  len(products),
			"cached": fromCache,
		},
	})
}

// GetMenuItem returns a single product.
func GetMenuItem(ctx *gin.Context) {
	productId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid product ID", err)
		return
	}

	var product models.Product
	result := initializers.DB.Preload("Category").Preload("Images").First(&product, productId)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, msgProductNotFound, nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve product", result.Error)
		}
		return
	}

	ctx.JSON(http.StatusOK, product)
}
