package cart

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

func (r *Repo) GetOrCreateUserCart(ctx context.Context, userID string) (Cart, error) {
	var c Cart
	err := r.db.WithContext(ctx).
		Where(Cart{UserID: &userID, Status: StatusOpen}).
		Attrs(Cart{ID: uuid.NewString(), CreatedAt: time.Now(), UpdatedAt: time.Now()}).
		FirstOrCreate(&c).Error
	return c, err
}

func (r *Repo) GetOrCreateGuestCart(ctx context.Context, cartID string) (Cart, error) {
	if cartID != "" {
		var c Cart
		err := r.db.WithContext(ctx).First(&c, "id = ? AND status = ?", cartID, StatusOpen).Error
		if err == nil {
			return c, nil
		}
	}
	c := Cart{ID: uuid.NewString(), Status: StatusOpen, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	err := r.db.WithContext(ctx).Create(&c).Error
	return c, err
}

func (r *Repo) Get(ctx context.Context, cartID string) (Cart, error) {
	var c Cart
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		First(&c, "id = ?", cartID).Error
	return c, err
}

// UpsertItem adds the variant to the cart or replaces its quantity/pricing
// when already present. unit and total arrive resolved by the caller.
func (r *Repo) UpsertItem(ctx context.Context, cartID, variantID string, qty int, unit, total decimal.Decimal) error {
	now := time.Now()
	item := CartItem{
		ID:         uuid.NewString(),
		CartID:     cartID,
		VariantID:  variantID,
		Quantity:   qty,
		UnitPrice:  unit,
		TotalPrice: total,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cart_id"}, {Name: "variant_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity", "unit_price", "total_price", "updated_at"}),
		}).
		Create(&item).Error
}

func (r *Repo) UpdateItemQty(ctx context.Context, cartID, variantID string, qty int, unit, total decimal.Decimal) error {
	if qty <= 0 {
		return r.RemoveItem(ctx, cartID, variantID)
	}
	return r.db.WithContext(ctx).Model(&CartItem{}).
		Where("cart_id = ? AND variant_id = ?", cartID, variantID).
		Updates(map[string]any{
			"quantity":    qty,
			"unit_price":  unit,
			"total_price": total,
			"updated_at":  time.Now(),
		}).Error
}

func (r *Repo) RemoveItem(ctx context.Context, cartID, variantID string) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ? AND variant_id = ?", cartID, variantID).
		Delete(&CartItem{}).Error
}

func (r *Repo) Clear(ctx context.Context, cartID string) error {
	return r.db.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&CartItem{}).Error
}

func (r *Repo) MarkConverted(ctx context.Context, tx *gorm.DB, cartID string) error {
	db := tx
	if db == nil {
		db = r.db
	}
	return db.WithContext(ctx).Model(&Cart{}).
		Where("id = ?", cartID).
		Updates(map[string]any{"status": StatusConverted, "updated_at": time.Now()}).Error
}
