package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusOpen      = "open"
	StatusConverted = "converted"
)

type Cart struct {
	ID        string    `gorm:"type:char(36);primaryKey"`
	UserID    *string   `gorm:"type:char(36);index:ix_carts_user_id"`
	Status    string    `gorm:"type:varchar(16);not null;default:'open'"`
	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null"`

	Items []CartItem `gorm:"foreignKey:CartID"`
}

func (Cart) TableName() string { return "carts" }

// CartItem carries the resolved unit price and the line total
// (unit_price * quantity) computed when the item is added or its quantity
// changes. Checkout only sums TotalPrice, never recomputes it.
type CartItem struct {
	ID         string          `gorm:"type:char(36);primaryKey"`
	CartID     string          `gorm:"type:char(36);not null;index:ix_cart_items_cart_id"`
	VariantID  string          `gorm:"type:char(36);not null;index:ix_cart_items_variant_id"`
	Quantity   int             `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt  time.Time       `gorm:"type:datetime(3);not null"`
	UpdatedAt  time.Time       `gorm:"type:datetime(3);not null"`
}

func (CartItem) TableName() string { return "cart_items" }
