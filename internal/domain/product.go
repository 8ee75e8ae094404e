package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductCategory groups products inside a gym's shop.
type ProductCategory struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	GymID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"gymId"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ProductCategory) TableName() string { return "product_categories" }

// Product is a stocked, priced item sold by a gym. Price uses fixed-point
// decimal; stock decrements and restorations run only inside the order
// lifecycle transactions.
type Product struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	GymID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"gymId"`
	CategoryID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"categoryId"`
	Name          string          `gorm:"size:255;not null" json:"name"`
	Description   string          `gorm:"type:text" json:"description,omitempty"`
	Price         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	StockQuantity int             `gorm:"not null;default:0" json:"stockQuantity"`
	IsActive      bool            `gorm:"not null;default:true" json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Product) TableName() string { return "products" }
