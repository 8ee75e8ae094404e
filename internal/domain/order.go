package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPendingApproval OrderStatus = "pending_approval"
	OrderStatusPrepared        OrderStatus = "prepared"
	OrderStatusCompleted       OrderStatus = "completed"
	OrderStatusCancelled       OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPendingApproval, OrderStatusPrepared, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Cancellable reports whether an order in this status may still move to
// cancelled. Completed orders are final; cancelling twice is rejected so
// stock is never restored twice.
func (s OrderStatus) Cancellable() bool {
	return s != OrderStatusCompleted && s != OrderStatusCancelled
}

// Order is a purchase by a gym member. TotalAmount is computed at creation
// and never updated; Items are created atomically with the order and never
// individually added or removed afterwards.
type Order struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	GymID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"gymId"`
	UserID      uuid.UUID         `gorm:"type:uuid;not null;index" json:"userId"`
	OrderNumber string            `gorm:"size:32;not null;uniqueIndex" json:"orderNumber"`
	TotalAmount decimal.Decimal   `gorm:"type:decimal(12,2);not null" json:"totalAmount"`
	Status      OrderStatus       `gorm:"size:30;not null;default:'pending_approval';index" json:"status"`
	Metadata    datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	Items       []OrderItem       `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt    `gorm:"index" json:"-"`
}

func (Order) TableName() string { return "orders" }

// OrderItem snapshots the product price at creation time, so later price
// edits never affect existing orders.
type OrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"orderId"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index" json:"productId"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unitPrice"`
	CreatedAt time.Time       `json:"createdAt"`
}

func (OrderItem) TableName() string { return "order_items" }

// OrderCounter is the per-gym-per-day sequence behind order numbers. The
// row is locked and incremented inside the order-creation transaction, so
// concurrent creations cannot mint the same number.
type OrderCounter struct {
	GymID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Day       string    `gorm:"size:8;primaryKey"`
	LastValue int       `gorm:"not null;default:0"`
	UpdatedAt time.Time
}

func (OrderCounter) TableName() string { return "order_counters" }

// FormatOrderNumber renders ORD-YYYYMMDD-NNNNN.
func FormatOrderNumber(day string, seq int) string {
	return fmt.Sprintf("ORD-%s-%05d", day, seq)
}

// OrderDay renders the date segment of an order number.
func OrderDay(t time.Time) string {
	return t.UTC().Format("20060102")
}

// OrderStats is the aggregate view over a gym's orders. Revenue sums
// TotalAmount over completed orders only.
type OrderStats struct {
	TotalOrders    int64                 `json:"totalOrders"`
	CountsByStatus map[OrderStatus]int64 `json:"countsByStatus"`
	Revenue        decimal.Decimal       `json:"revenue"`
}
