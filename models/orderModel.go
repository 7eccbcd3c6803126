package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	DeliveryOptionPickup   = "pickup"
	DeliveryOptionDelivery = "delivery"
)

// Order with IsDelivered=false is the customer's cart. Checkout flips the
// flag, which is the only transition a customer can trigger.
//
// CartOwnerID mirrors CustomerID while the order is the cart and goes NULL
// on delivery. The unique index over it is what guarantees at most one
// active order per customer; unique indexes skip NULLs on MySQL and SQLite
// alike, so delivered orders never collide.
type Order struct {
	gorm.Model
	CustomerID      int         `json:"customerId"`
	CartOwnerID     *int        `json:"-" gorm:"uniqueIndex"`
	DeliveryOption  string      `json:"deliveryOption"`
	SpecialRequests string      `json:"specialRequests"`
	IsDelivered     bool        `json:"isDelivered" gorm:"default:false"`
	Reference       string      `json:"reference"`
	OrderItems      []OrderItem `json:"orderItems" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

type OrderItem struct {
	gorm.Model
	OrderID   int             `json:"orderId"`
	ProductID int             `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
}
