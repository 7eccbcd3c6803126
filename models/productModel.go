package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Category struct {
	gorm.Model
	Name string `json:"name" binding:"required"`
}

type ProductImage struct {
	gorm.Model
	Url       string `json:"url" binding:"required"`
	ProductID int    `json:"productId" binding:"required"`
}

type Product struct {
	gorm.Model
	Code        string          `json:"code" gorm:"uniqueIndex" binding:"required"`
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2)" binding:"required"`
	CategoryID  int             `json:"categoryId" binding:"required"`
	Category    Category        `json:"category" binding:"-"`
	Allergens   datatypes.JSON  `json:"allergens"`
	Images      []ProductImage  `json:"images" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}
