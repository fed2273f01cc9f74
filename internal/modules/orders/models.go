package orders

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Order statuses. The printing workflow: an order is created at checkout,
// moves to file_review once the customer's design files are in, and from
// approval on follows production through to delivery.
const (
	StatusCreated    = "created"
	StatusFileReview = "file_review"
	StatusApproved   = "approved"
	StatusPrinting   = "printing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusRejected   = "rejected"
	StatusCancelled  = "cancelled"
)

type Order struct {
	ID         string  `gorm:"type:char(36);primaryKey"`
	UserID     *string `gorm:"type:char(36);index:ix_orders_user_id"`
	GuestEmail *string `gorm:"type:varchar(255)"`
	Status     string  `gorm:"type:varchar(32);not null;default:'created'"`

	Address datatypes.JSON `gorm:"column:address_json"`

	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	GST            decimal.Decimal `gorm:"column:gst;type:decimal(12,2);not null"`
	DeliveryCharge decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Total          decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	IdempotencyKey *string `gorm:"type:varchar(64);uniqueIndex:ux_orders_idem_key"`

	ApprovedAt *time.Time `gorm:"type:datetime(3)"`
	CreatedAt  time.Time  `gorm:"type:datetime(3);not null"`
	UpdatedAt  time.Time  `gorm:"type:datetime(3);not null"`
}

func (Order) TableName() string { return "orders" }

// OrderItem snapshots everything needed to print and bill the line even if
// the catalog changes afterwards.
type OrderItem struct {
	ID          string         `gorm:"type:char(36);primaryKey"`
	OrderID     string         `gorm:"type:char(36);not null;index:ix_order_items_order_id"`
	VariantID   string         `gorm:"type:char(36);not null;index:ix_order_items_variant_id"`
	ProductName string         `gorm:"type:varchar(255);not null"`
	SKU         string         `gorm:"type:varchar(64);not null"`
	Options     datatypes.JSON `gorm:"column:options_json"`

	Quantity   int             `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (OrderItem) TableName() string { return "order_items" }

type OrderEvent struct {
	ID          string    `gorm:"type:char(36);primaryKey"`
	OrderID     string    `gorm:"type:char(36);not null;index:ix_order_events_order_id"`
	ActorUserID string    `gorm:"type:char(36);not null"`
	Action      string    `gorm:"type:varchar(32);not null"`
	FromStatus  string    `gorm:"type:varchar(32);not null"`
	ToStatus    string    `gorm:"type:varchar(32);not null"`
	Note        *string   `gorm:"type:varchar(512)"`
	CreatedAt   time.Time `gorm:"type:datetime(3);not null"`
}

func (OrderEvent) TableName() string { return "order_events" }

// Design file review states.
const (
	FilePending  = "pending"
	FileApproved = "approved"
	FileRejected = "rejected"
)

// DesignFile is a customer-uploaded print-ready artwork attached to one
// order item, reviewed by an admin before production.
type DesignFile struct {
	ID          string `gorm:"type:char(36);primaryKey"`
	OrderID     string `gorm:"type:char(36);not null;index:ix_design_files_order_id"`
	OrderItemID string `gorm:"type:char(36);not null;index:ix_design_files_order_item_id"`

	StorageKey  string `gorm:"type:varchar(255);not null"`
	URL         string `gorm:"type:varchar(512);not null"`
	Filename    string `gorm:"type:varchar(255);not null"`
	ContentType string `gorm:"type:varchar(128);not null"`
	SizeBytes   int64  `gorm:"not null"`

	ReviewStatus string     `gorm:"type:varchar(16);not null;default:'pending'"`
	ReviewNote   *string    `gorm:"type:varchar(512)"`
	ReviewedBy   *string    `gorm:"type:char(36)"`
	ReviewedAt   *time.Time `gorm:"type:datetime(3)"`

	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (DesignFile) TableName() string { return "design_files" }

type Invoice struct {
	ID      string `gorm:"type:char(36);primaryKey"`
	OrderID string `gorm:"type:char(36);not null;uniqueIndex:ux_invoices_order_id"`
	Number  string `gorm:"type:varchar(32);not null;uniqueIndex:ux_invoices_number"`

	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	GST            decimal.Decimal `gorm:"column:gst;type:decimal(12,2);not null"`
	DeliveryCharge decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Total          decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	IssuedAt  time.Time `gorm:"type:datetime(3);not null"`
	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (Invoice) TableName() string { return "invoices" }
