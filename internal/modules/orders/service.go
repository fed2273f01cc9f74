package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"chhapai.in/app/internal/mailer"
	"chhapai.in/app/internal/modules/cart"
	"chhapai.in/app/internal/modules/checkout"
	"chhapai.in/app/internal/modules/pricing"
	"chhapai.in/app/pkg/view"
)

type Service struct {
	db     *gorm.DB
	log    *slog.Logger
	mailer mailer.Service

	fromName  string
	fromEmail string
}

func NewService(db *gorm.DB, log *slog.Logger, m mailer.Service, fromName, fromEmail string) *Service {
	return &Service{db: db, log: log, mailer: m, fromName: fromName, fromEmail: fromEmail}
}

// Address is the validated delivery address snapshotted onto the order.
type Address struct {
	FullName   string `json:"full_name"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Phone      string `json:"phone"`
}

type CreateInput struct {
	CartID         string
	UserID         *string
	GuestEmail     *string
	Address        Address
	IdempotencyKey string
}

type itemSnapshot struct {
	VariantID   string          `gorm:"column:variant_id"`
	Qty         int             `gorm:"column:qty"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price"`
	TotalPrice  decimal.Decimal `gorm:"column:total_price"`
	ProductName string          `gorm:"column:product_name"`
	SKU         string          `gorm:"column:sku"`
	Options     json.RawMessage `gorm:"column:options_json"`
}

// CreateFromCart converts an open cart into an order inside one
// transaction: snapshot items, aggregate totals, deduct stock, clear the
// cart, record the created event. A repeated submit with the same
// idempotency key returns the already-created order.
func (s *Service) CreateFromCart(ctx context.Context, in CreateInput) (Order, error) {
	if existing, ok, err := NewRepo(s.db).ByIdempotencyKey(ctx, in.IdempotencyKey, in.UserID, in.GuestEmail); err != nil {
		return Order{}, err
	} else if ok {
		return existing, nil
	}

	addrJSON, err := json.Marshal(in.Address)
	if err != nil {
		return Order{}, err
	}

	var created Order
	err = checkout.WithTxRetry(ctx, s.db, 3, func(tx *gorm.DB) error {
		var snaps []itemSnapshot
		const q = `
SELECT
  ci.variant_id   AS variant_id,
  ci.quantity     AS qty,
  ci.unit_price   AS unit_price,
  ci.total_price  AS total_price,
  p.name          AS product_name,
  v.sku           AS sku,
  v.options_json  AS options_json
FROM cart_items ci
JOIN product_variants v ON v.id = ci.variant_id
JOIN products p ON p.id = v.product_id
WHERE ci.cart_id = ?
ORDER BY ci.created_at ASC;
`
		if err := tx.WithContext(ctx).Raw(q, in.CartID).Scan(&snaps).Error; err != nil {
			return err
		}
		if len(snaps) == 0 {
			return ErrCartEmpty
		}

		lines := make([]pricing.LineItem, len(snaps))
		stock := make([]checkout.StockLine, len(snaps))
		for i, sn := range snaps {
			lines[i] = pricing.LineItem{
				UnitPrice:  sn.UnitPrice,
				Quantity:   sn.Qty,
				TotalPrice: sn.TotalPrice,
			}
			stock[i] = checkout.StockLine{VariantID: sn.VariantID, Qty: sn.Qty}
		}

		totals, err := pricing.Aggregate(lines)
		if err != nil {
			return err
		}

		if err := checkout.DeductStockInTx(ctx, tx, stock); err != nil {
			return err
		}

		now := time.Now()
		var idem *string
		if in.IdempotencyKey != "" {
			k := in.IdempotencyKey
			idem = &k
		}
		o := Order{
			ID:             uuid.NewString(),
			UserID:         in.UserID,
			GuestEmail:     in.GuestEmail,
			Status:         StatusCreated,
			Address:        addrJSON,
			Subtotal:       totals.Subtotal,
			GST:            totals.GST,
			DeliveryCharge: totals.DeliveryCharge,
			Total:          totals.Total,
			IdempotencyKey: idem,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := tx.WithContext(ctx).Create(&o).Error; err != nil {
			// the key's unique index fires when another submitter
			// already used it; replay only matches the same owner
			if isDuplicateKey(err) {
				return ErrIdempotencyKeyInUse
			}
			return err
		}

		for _, sn := range snaps {
			item := OrderItem{
				ID:          uuid.NewString(),
				OrderID:     o.ID,
				VariantID:   sn.VariantID,
				ProductName: sn.ProductName,
				SKU:         sn.SKU,
				Options:     []byte(sn.Options),
				Quantity:    sn.Qty,
				UnitPrice:   sn.UnitPrice,
				TotalPrice:  sn.TotalPrice,
				CreatedAt:   now,
			}
			if err := tx.WithContext(ctx).Create(&item).Error; err != nil {
				return err
			}
		}

		if err := cart.NewRepo(s.db).MarkConverted(ctx, tx, in.CartID); err != nil {
			return err
		}
		if err := tx.WithContext(ctx).Where("cart_id = ?", in.CartID).Delete(&cart.CartItem{}).Error; err != nil {
			return err
		}

		actor := "system"
		if in.UserID != nil {
			actor = *in.UserID
		}
		ev := OrderEvent{
			ID:          uuid.NewString(),
			OrderID:     o.ID,
			ActorUserID: actor,
			Action:      "create",
			FromStatus:  "",
			ToStatus:    StatusCreated,
			CreatedAt:   now,
		}
		if err := tx.WithContext(ctx).Create(&ev).Error; err != nil {
			return err
		}

		created = o
		return nil
	})
	if err != nil {
		return Order{}, err
	}

	s.sendConfirmation(ctx, created, in)
	return created, nil
}

// AttachFile records an uploaded design file against an order item and,
// on the first upload, moves the order from created to file_review.
func (s *Service) AttachFile(ctx context.Context, orderID, orderItemID string, f DesignFile) (DesignFile, error) {
	now := time.Now()
	f.ID = uuid.NewString()
	f.OrderID = orderID
	f.OrderItemID = orderItemID
	f.ReviewStatus = FilePending
	f.CreatedAt = now
	f.UpdatedAt = now

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var o Order
		if err := tx.WithContext(ctx).First(&o, "id = ?", orderID).Error; err != nil {
			return ErrNotFound
		}
		if o.Status != StatusCreated && o.Status != StatusFileReview {
			return ErrNotActionable
		}

		var n int64
		if err := tx.WithContext(ctx).Model(&OrderItem{}).
			Where("id = ? AND order_id = ?", orderItemID, orderID).
			Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}

		if err := tx.WithContext(ctx).Create(&f).Error; err != nil {
			return err
		}

		if o.Status == StatusCreated {
			to, err := NextStatus(o.Status, ActionSubmitFiles)
			if err != nil {
				return err
			}
			if err := tx.WithContext(ctx).Model(&Order{}).
				Where("id = ? AND status = ?", o.ID, o.Status).
				Updates(map[string]any{"status": to, "updated_at": now}).Error; err != nil {
				return err
			}
			ev := OrderEvent{
				ID:          uuid.NewString(),
				OrderID:     o.ID,
				ActorUserID: "system",
				Action:      ActionSubmitFiles,
				FromStatus:  o.Status,
				ToStatus:    to,
				CreatedAt:   now,
			}
			if err := tx.WithContext(ctx).Create(&ev).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return DesignFile{}, err
	}
	return f, nil
}

func (s *Service) sendConfirmation(ctx context.Context, o Order, in CreateInput) {
	if s.mailer == nil {
		return
	}
	to := ""
	if in.GuestEmail != nil {
		to = *in.GuestEmail
	}
	if to == "" && in.UserID != nil {
		_ = s.db.WithContext(ctx).Table("users").Select("email").Where("id = ?", *in.UserID).Scan(&to).Error
	}
	if to == "" {
		return
	}

	e := mailer.Email{
		FromName: s.fromName,
		From:     s.fromEmail,
		To:       []string{to},
		Subject:  fmt.Sprintf("Order %s received", shortID(o.ID)),
		TextBody: fmt.Sprintf(
			"Thanks for your order!\n\nOrder: %s\nSubtotal: %s\nGST: %s\nDelivery: %s\nTotal: %s\n\nUpload your design files to start production.\n",
			o.ID, view.Money(o.Subtotal), view.Money(o.GST), view.Money(o.DeliveryCharge), view.Money(o.Total),
		),
	}
	if err := s.mailer.Send(ctx, e); err != nil {
		s.log.Warn("order confirmation email failed", "order_id", o.ID, "err", err)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
