package orders

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

// DB returns the underlying connection for callers that need ad-hoc queries.
func (r *Repo) DB() *gorm.DB { return r.db }

type ListByUserParams struct {
	UserID   string
	Page     int
	PageSize int
	Status   string // optional filter
}

type ListByUserItem struct {
	Order Order
	Count int
}

type ListByUserResult struct {
	Items []ListByUserItem
	Total int64
}

func (r *Repo) ListByUser(ctx context.Context, in ListByUserParams) (ListByUserResult, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	size := in.PageSize
	if size < 1 || size > 100 {
		size = 20
	}
	status := strings.TrimSpace(in.Status)

	q := r.db.WithContext(ctx).Model(&Order{}).Where("user_id = ?", in.UserID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return ListByUserResult{}, err
	}

	var list []Order
	if err := q.
		Order("created_at DESC").
		Limit(size).
		Offset((page - 1) * size).
		Find(&list).Error; err != nil {
		return ListByUserResult{}, err
	}

	items := make([]ListByUserItem, len(list))
	for i, o := range list {
		var count int64
		if err := r.db.WithContext(ctx).Model(&OrderItem{}).Where("order_id = ?", o.ID).Count(&count).Error; err != nil {
			count = 0
		}
		items[i] = ListByUserItem{Order: o, Count: int(count)}
	}

	return ListByUserResult{Items: items, Total: total}, nil
}

func (r *Repo) Get(ctx context.Context, id string) (Order, error) {
	var o Order
	err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Order{}, ErrNotFound
	}
	return o, err
}

func (r *Repo) GetWithItems(ctx context.Context, id string) (Order, []OrderItem, error) {
	o, err := r.Get(ctx, id)
	if err != nil {
		return Order{}, nil, err
	}
	var items []OrderItem
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&items, "order_id = ?", id).Error; err != nil {
		return Order{}, nil, err
	}
	return o, items, nil
}

func (r *Repo) Events(ctx context.Context, orderID string) ([]OrderEvent, error) {
	var ev []OrderEvent
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&ev, "order_id = ?", orderID).Error
	return ev, err
}

func (r *Repo) FilesForOrder(ctx context.Context, orderID string) ([]DesignFile, error) {
	var files []DesignFile
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&files, "order_id = ?", orderID).Error
	return files, err
}

// ByIdempotencyKey finds a previously created order for a retried
// submit. The match is scoped to the submitter: a key only replays for
// the user (or guest email) that first used it.
func (r *Repo) ByIdempotencyKey(ctx context.Context, key string, userID, guestEmail *string) (Order, bool, error) {
	if key == "" {
		return Order{}, false, nil
	}
	cond, args := ownerScope(userID, guestEmail)
	var o Order
	err := r.db.WithContext(ctx).
		Where("idempotency_key = ?", key).
		Where(cond, args...).
		First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Order{}, false, nil
	}
	if err != nil {
		return Order{}, false, err
	}
	return o, true, nil
}

func ownerScope(userID, guestEmail *string) (string, []any) {
	switch {
	case userID != nil:
		return "user_id = ?", []any{*userID}
	case guestEmail != nil:
		return "user_id IS NULL AND guest_email = ?", []any{*guestEmail}
	default:
		return "user_id IS NULL AND guest_email IS NULL", nil
	}
}
