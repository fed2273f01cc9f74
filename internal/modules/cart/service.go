package cart

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"chhapai.in/app/internal/modules/pricing"
	"chhapai.in/app/pkg/view"
)

type Service struct {
	db   *gorm.DB
	repo *Repo
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, repo: NewRepo(db)}
}

func (s *Service) Repo() *Repo { return s.repo }

type cartRow struct {
	VariantID  string          `gorm:"column:variant_id"`
	Qty        int             `gorm:"column:qty"`
	UnitPrice  decimal.Decimal `gorm:"column:unit_price"`
	TotalPrice decimal.Decimal `gorm:"column:total_price"`

	ProductName string `gorm:"column:product_name"`
	ProductSlug string `gorm:"column:product_slug"`
	SKU         string `gorm:"column:sku"`
}

const cartRowsQuery = `
SELECT
  ci.variant_id  AS variant_id,
  ci.quantity    AS qty,
  ci.unit_price  AS unit_price,
  ci.total_price AS total_price,
  p.name         AS product_name,
  p.slug         AS product_slug,
  v.sku          AS sku
FROM cart_items ci
JOIN product_variants v ON v.id = ci.variant_id
JOIN products p ON p.id = v.product_id
WHERE ci.cart_id = ?
ORDER BY ci.created_at ASC;
`

// BuildCartPage joins the cart's items with their products and runs the
// totals through the price aggregator.
func (s *Service) BuildCartPage(ctx context.Context, cartID string) (view.CartPage, error) {
	var rows []cartRow
	if cartID != "" {
		if err := s.db.WithContext(ctx).Raw(cartRowsQuery, cartID).Scan(&rows).Error; err != nil {
			return view.CartPage{}, err
		}
	}

	items := make([]pricing.LineItem, 0, len(rows))
	vm := view.CartPage{Items: make([]view.CartItem, 0, len(rows))}
	for _, r := range rows {
		if r.Qty <= 0 {
			continue
		}
		items = append(items, pricing.LineItem{
			UnitPrice:  r.UnitPrice,
			Quantity:   r.Qty,
			TotalPrice: r.TotalPrice,
		})
		vm.Items = append(vm.Items, view.CartItem{
			VariantID:   r.VariantID,
			ProductName: r.ProductName,
			ProductSlug: r.ProductSlug,
			SKU:         r.SKU,
			Quantity:    r.Qty,
			UnitPrice:   r.UnitPrice,
			TotalPrice:  r.TotalPrice,
			UnitLabel:   view.Money(r.UnitPrice),
			TotalLabel:  view.Money(r.TotalPrice),
		})
		vm.Count += r.Qty
	}

	totals, err := pricing.Aggregate(items)
	if err != nil {
		return view.CartPage{}, err
	}

	vm.Subtotal = totals.Subtotal
	vm.GST = totals.GST
	vm.DeliveryCharge = totals.DeliveryCharge
	vm.Total = totals.Total
	vm.SubtotalLabel = view.Money(totals.Subtotal)
	vm.GSTLabel = view.Money(totals.GST)
	vm.DeliveryLabel = view.Money(totals.DeliveryCharge)
	vm.TotalLabel = view.Money(totals.Total)

	return vm, nil
}
