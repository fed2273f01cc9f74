package products

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type Product struct {
	ID            string  `gorm:"type:char(36);primaryKey" json:"id"`
	CategoryID    string  `gorm:"type:char(36);not null;index:ix_products_category_id" json:"category_id"`
	SubcategoryID *string `gorm:"type:char(36);index:ix_products_subcategory_id" json:"subcategory_id,omitempty"`
	Name          string  `gorm:"type:varchar(255);not null" json:"name"`
	Slug          string  `gorm:"type:varchar(255);not null;uniqueIndex:ux_products_slug" json:"slug"`
	Description   string  `gorm:"type:text" json:"description"`
	Status        string  `gorm:"type:varchar(16);not null;default:'active'" json:"status"`

	CreatedAt time.Time `gorm:"type:datetime(3);not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null" json:"updated_at"`

	Variants []Variant `gorm:"foreignKey:ProductID" json:"variants,omitempty"`
	Images   []Image   `gorm:"foreignKey:ProductID" json:"images,omitempty"`
}

func (Product) TableName() string { return "products" }

type Image struct {
	ID         string    `gorm:"type:char(36);primaryKey" json:"id"`
	ProductID  string    `gorm:"type:char(36);not null;index:ix_product_images_product_id" json:"product_id"`
	StorageKey string    `gorm:"type:varchar(255);not null" json:"-"`
	URL        string    `gorm:"type:varchar(512);not null" json:"url"`
	Position   int       `gorm:"not null;default:0" json:"position"`
	CreatedAt  time.Time `gorm:"type:datetime(3);not null" json:"created_at"`
}

func (Image) TableName() string { return "product_images" }

// Variant is one printable configuration of a product: a size, paper,
// print and cut combination with its own SKU and stock.
type Variant struct {
	ID          string         `gorm:"type:char(36);primaryKey" json:"id"`
	ProductID   string         `gorm:"type:char(36);not null;index:ix_product_variants_product_id" json:"product_id"`
	SKU         string         `gorm:"type:varchar(64);not null;uniqueIndex:ux_product_variants_sku" json:"sku"`
	SizeID      *string        `gorm:"type:char(36)" json:"size_id,omitempty"`
	PaperTypeID *string        `gorm:"type:char(36)" json:"paper_type_id,omitempty"`
	PrintTypeID *string        `gorm:"type:char(36)" json:"print_type_id,omitempty"`
	CutTypeID   *string        `gorm:"type:char(36)" json:"cut_type_id,omitempty"`
	Options     datatypes.JSON `gorm:"column:options_json" json:"options,omitempty"`
	Stock       int            `gorm:"not null;default:0" json:"stock"`
	Active      bool           `gorm:"not null;default:1" json:"active"`

	CreatedAt time.Time `gorm:"type:datetime(3);not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null" json:"updated_at"`

	Prices []VariantPrice `gorm:"foreignKey:VariantID" json:"prices,omitempty"`
}

func (Variant) TableName() string { return "product_variants" }

// VariantPrice is one quantity tier: the unit price applied once the
// ordered quantity reaches MinQty.
type VariantPrice struct {
	ID        string          `gorm:"type:char(36);primaryKey" json:"id"`
	VariantID string          `gorm:"type:char(36);not null;index:ix_variant_prices_variant_id" json:"variant_id"`
	MinQty    int             `gorm:"column:min_qty;not null;default:1" json:"min_qty"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	Active    bool            `gorm:"not null;default:1" json:"active"`

	CreatedAt time.Time `gorm:"type:datetime(3);not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null" json:"updated_at"`
}

func (VariantPrice) TableName() string { return "variant_prices" }

const (
	DiscountPercent = "percent"
	DiscountFlat    = "flat"
)

type Discount struct {
	ID        string          `gorm:"type:char(36);primaryKey" json:"id"`
	ProductID string          `gorm:"type:char(36);not null;index:ix_discounts_product_id" json:"product_id"`
	Kind      string          `gorm:"type:varchar(16);not null" json:"kind"` // percent|flat
	Value     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"value"`
	StartsAt  *time.Time      `gorm:"type:datetime(3)" json:"starts_at,omitempty"`
	EndsAt    *time.Time      `gorm:"type:datetime(3)" json:"ends_at,omitempty"`
	Active    bool            `gorm:"not null;default:1" json:"active"`

	CreatedAt time.Time `gorm:"type:datetime(3);not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null" json:"updated_at"`
}

func (Discount) TableName() string { return "discounts" }

// InWindow reports whether the discount applies at the given instant.
func (d Discount) InWindow(at time.Time) bool {
	if !d.Active {
		return false
	}
	if d.StartsAt != nil && at.Before(*d.StartsAt) {
		return false
	}
	if d.EndsAt != nil && at.After(*d.EndsAt) {
		return false
	}
	return true
}
