package orders

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AdminService struct {
	db *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService { return &AdminService{db: db} }

type TransitionInput struct {
	OrderID     string
	ActorUserID string
	Action      string
	Note        string
}

// Transition applies one admin action to an order under a row lock, with
// an optimistic status guard against concurrent admins. Approval requires
// every uploaded design file to be approved and issues the invoice.
func (s *AdminService) Transition(ctx context.Context, in TransitionInput) error {
	if in.OrderID == "" || in.ActorUserID == "" || in.Action == "" {
		return ErrNotActionable
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var o Order
		if err := tx.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&o, "id = ?", in.OrderID).Error; err != nil {
			return ErrNotFound
		}

		from := o.Status
		to, err := NextStatus(from, in.Action)
		if err != nil {
			return err
		}

		if in.Action == ActionApprove {
			if err := allFilesApproved(ctx, tx, o.ID); err != nil {
				return err
			}
		}

		now := time.Now()
		updates := map[string]any{
			"status":     to,
			"updated_at": now,
		}
		if to == StatusApproved && o.ApprovedAt == nil {
			updates["approved_at"] = now
		}

		res := tx.WithContext(ctx).
			Model(&Order{}).
			Where("id = ? AND status = ?", o.ID, from).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvalidTransition
		}

		if to == StatusApproved {
			if err := issueInvoiceInTx(ctx, tx, o, now); err != nil {
				return err
			}
		}

		var notePtr *string
		if n := strings.TrimSpace(in.Note); n != "" {
			notePtr = &n
		}
		ev := OrderEvent{
			ID:          uuid.NewString(),
			OrderID:     o.ID,
			ActorUserID: in.ActorUserID,
			Action:      in.Action,
			FromStatus:  from,
			ToStatus:    to,
			Note:        notePtr,
			CreatedAt:   now,
		}
		return tx.WithContext(ctx).Create(&ev).Error
	})
}

func allFilesApproved(ctx context.Context, tx *gorm.DB, orderID string) error {
	var total, approved int64
	if err := tx.WithContext(ctx).Model(&DesignFile{}).
		Where("order_id = ?", orderID).Count(&total).Error; err != nil {
		return err
	}
	if err := tx.WithContext(ctx).Model(&DesignFile{}).
		Where("order_id = ? AND review_status = ?", orderID, FileApproved).Count(&approved).Error; err != nil {
		return err
	}
	if total == 0 || approved != total {
		return ErrFilesNotApproved
	}
	return nil
}

// issueInvoiceInTx numbers invoices per calendar year: CHH-2026-0001.
// The MAX read locks the year's slice of the number index, so a second
// approval in flight blocks until this one commits and then sees the
// new high-water mark.
func issueInvoiceInTx(ctx context.Context, tx *gorm.DB, o Order, now time.Time) error {
	year := now.Year()
	var last string
	if err := tx.WithContext(ctx).Raw(
		"SELECT COALESCE(MAX(number), '') FROM invoices WHERE number LIKE ? FOR UPDATE",
		fmt.Sprintf("CHH-%d-%%", year),
	).Scan(&last).Error; err != nil {
		return err
	}

	inv := Invoice{
		ID:             uuid.NewString(),
		OrderID:        o.ID,
		Number:         nextInvoiceNumber(year, last),
		Subtotal:       o.Subtotal,
		GST:            o.GST,
		DeliveryCharge: o.DeliveryCharge,
		Total:          o.Total,
		IssuedAt:       now,
		CreatedAt:      now,
	}
	return tx.WithContext(ctx).Create(&inv).Error
}

// nextInvoiceNumber advances the CHH-<year>-NNNN sequence from the
// highest number issued so far; "" starts the year at 0001.
func nextInvoiceNumber(year int, last string) string {
	seq := 0
	if i := strings.LastIndex(last, "-"); i >= 0 {
		if n, err := strconv.Atoi(last[i+1:]); err == nil {
			seq = n
		}
	}
	return fmt.Sprintf("CHH-%d-%04d", year, seq+1)
}

type ReviewFileInput struct {
	FileID     string
	ReviewerID string
	Approve    bool
	Note       string
}

// ReviewFile records an admin verdict on one design file. The verdict
// lands on the design_files row and on the order's event trail in the
// same transaction.
func (s *AdminService) ReviewFile(ctx context.Context, in ReviewFileInput) error {
	if in.FileID == "" || in.ReviewerID == "" {
		return ErrNotActionable
	}

	status := FileRejected
	if in.Approve {
		status = FileApproved
	}
	now := time.Now()

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var f DesignFile
		if err := tx.WithContext(ctx).First(&f, "id = ?", in.FileID).Error; err != nil {
			return ErrNotFound
		}
		var o Order
		if err := tx.WithContext(ctx).Select("status").First(&o, "id = ?", f.OrderID).Error; err != nil {
			return err
		}

		updates := map[string]any{
			"review_status": status,
			"reviewed_by":   in.ReviewerID,
			"reviewed_at":   now,
			"updated_at":    now,
		}
		if n := strings.TrimSpace(in.Note); n != "" {
			updates["review_note"] = n
		}
		if err := tx.WithContext(ctx).Model(&DesignFile{}).
			Where("id = ?", f.ID).
			Updates(updates).Error; err != nil {
			return err
		}

		ev := fileReviewEvent(f, in, o.Status, now)
		return tx.WithContext(ctx).Create(&ev).Error
	})
}

// fileReviewEvent builds the audit event for one review verdict. The
// order's status is unchanged by a verdict, so from and to match.
func fileReviewEvent(f DesignFile, in ReviewFileInput, orderStatus string, now time.Time) OrderEvent {
	verdict := FileRejected
	if in.Approve {
		verdict = FileApproved
	}
	note := verdict + " " + f.Filename
	if n := strings.TrimSpace(in.Note); n != "" {
		note += ": " + n
	}
	return OrderEvent{
		ID:          uuid.NewString(),
		OrderID:     f.OrderID,
		ActorUserID: in.ReviewerID,
		Action:      ActionReviewFile,
		FromStatus:  orderStatus,
		ToStatus:    orderStatus,
		Note:        &note,
		CreatedAt:   now,
	}
}

func (s *AdminService) ListInvoices(ctx context.Context, page, size int) ([]Invoice, int64, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 200 {
		size = 50
	}
	var total int64
	if err := s.db.WithContext(ctx).Model(&Invoice{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var items []Invoice
	err := s.db.WithContext(ctx).
		Order("issued_at DESC").
		Limit(size).
		Offset((page - 1) * size).
		Find(&items).Error
	return items, total, err
}

func (s *AdminService) GetInvoice(ctx context.Context, id string) (Invoice, error) {
	var inv Invoice
	err := s.db.WithContext(ctx).
		Where("id = ? OR order_id = ? OR number = ?", id, id, id).
		First(&inv).Error
	if err != nil {
		return Invoice{}, ErrNotFound
	}
	return inv, nil
}
