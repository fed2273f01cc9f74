package products

import (
	"context"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"chhapai.in/app/internal/shared/slug"
)

var (
	ErrNotFound  = errors.New("products: not found")
	ErrDuplicate = errors.New("products: duplicate entry")
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

type ListParams struct {
	CategoryID    string
	SubcategoryID string
	OnlyActive    bool
}

func (r *Repo) List(ctx context.Context, in ListParams) ([]Product, error) {
	q := r.db.WithContext(ctx).Model(&Product{}).Order("updated_at DESC")
	if in.OnlyActive {
		q = q.Where("status = ?", StatusActive)
	}
	if in.CategoryID != "" {
		q = q.Where("category_id = ?", in.CategoryID)
	}
	if in.SubcategoryID != "" {
		q = q.Where("subcategory_id = ?", in.SubcategoryID)
	}
	var items []Product
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Repo) Get(ctx context.Context, id string) (Product, error) {
	var p Product
	err := r.db.WithContext(ctx).
		Preload("Variants", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Variants.Prices", func(db *gorm.DB) *gorm.DB { return db.Order("min_qty ASC") }).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Product{}, ErrNotFound
	}
	return p, err
}

func (r *Repo) GetBySlug(ctx context.Context, s string) (Product, error) {
	var p Product
	err := r.db.WithContext(ctx).
		Where("slug = ? AND status = ?", s, StatusActive).
		Preload("Variants", "active = ?", true).
		Preload("Variants.Prices", "active = ?", true).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Product{}, ErrNotFound
	}
	return p, err
}

func (r *Repo) Create(ctx context.Context, categoryID string, subcategoryID *string, name, desc string) (Product, error) {
	now := time.Now()
	p := Product{
		ID:            uuid.NewString(),
		CategoryID:    categoryID,
		SubcategoryID: subcategoryID,
		Name:          name,
		Slug:          slug.FromName(name),
		Description:   desc,
		Status:        StatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return Product{}, dupOr(err)
	}
	return p, nil
}

func (r *Repo) Update(ctx context.Context, id string, updates map[string]any) error {
	updates["updated_at"] = time.Now()
	res := r.db.WithContext(ctx).Model(&Product{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return dupOr(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&Product{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) SetStatus(ctx context.Context, id, status string) error {
	return r.Update(ctx, id, map[string]any{"status": status})
}

func (r *Repo) AddVariant(ctx context.Context, productID, sku string, sizeID, paperTypeID, printTypeID, cutTypeID *string, options datatypes.JSON, stock int) (Variant, error) {
	now := time.Now()
	v := Variant{
		ID:          uuid.NewString(),
		ProductID:   productID,
		SKU:         sku,
		SizeID:      sizeID,
		PaperTypeID: paperTypeID,
		PrintTypeID: printTypeID,
		CutTypeID:   cutTypeID,
		Options:     options,
		Stock:       stock,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := r.db.WithContext(ctx).Create(&v).Error; err != nil {
		return Variant{}, dupOr(err)
	}
	return v, nil
}

func (r *Repo) GetVariant(ctx context.Context, variantID string) (Variant, error) {
	var v Variant
	err := r.db.WithContext(ctx).
		Preload("Prices", "active = ?", true).
		First(&v, "id = ?", variantID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Variant{}, ErrNotFound
	}
	return v, err
}

func (r *Repo) UpdateVariant(ctx context.Context, productID, variantID string, updates map[string]any) error {
	updates["updated_at"] = time.Now()
	res := r.db.WithContext(ctx).Model(&Variant{}).
		Where("id = ? AND product_id = ?", variantID, productID).
		Updates(updates)
	if res.Error != nil {
		return dupOr(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) DeleteVariant(ctx context.Context, productID, variantID string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND product_id = ?", variantID, productID).
		Delete(&Variant{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) SetVariantActive(ctx context.Context, productID, variantID string, active bool) error {
	return r.UpdateVariant(ctx, productID, variantID, map[string]any{"active": active})
}

func (r *Repo) AddVariantPrice(ctx context.Context, variantID string, minQty int, unitPrice decimal.Decimal) (VariantPrice, error) {
	now := time.Now()
	vp := VariantPrice{
		ID:        uuid.NewString(),
		VariantID: variantID,
		MinQty:    minQty,
		UnitPrice: unitPrice,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.db.WithContext(ctx).Create(&vp).Error; err != nil {
		return VariantPrice{}, dupOr(err)
	}
	return vp, nil
}

func (r *Repo) UpdateVariantPrice(ctx context.Context, id string, updates map[string]any) error {
	updates["updated_at"] = time.Now()
	res := r.db.WithContext(ctx).Model(&VariantPrice{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) DeleteVariantPrice(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&VariantPrice{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) AddImage(ctx context.Context, productID, storageKey, url string, position int) (Image, error) {
	im := Image{
		ID:         uuid.NewString(),
		ProductID:  productID,
		StorageKey: storageKey,
		URL:        url,
		Position:   position,
		CreatedAt:  time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(&im).Error; err != nil {
		return Image{}, err
	}
	return im, nil
}

func (r *Repo) AddDiscount(ctx context.Context, d *Discount) error {
	return dupOr(r.db.WithContext(ctx).Create(d).Error)
}

func (r *Repo) ListDiscounts(ctx context.Context, productID string) ([]Discount, error) {
	var items []Discount
	q := r.db.WithContext(ctx).Model(&Discount{}).Order("created_at DESC")
	if productID != "" {
		q = q.Where("product_id = ?", productID)
	}
	err := q.Find(&items).Error
	return items, err
}

func (r *Repo) UpdateDiscount(ctx context.Context, id string, updates map[string]any) error {
	updates["updated_at"] = time.Now()
	res := r.db.WithContext(ctx).Model(&Discount{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) DeleteDiscount(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&Discount{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ActiveDiscount returns the product's applicable discount right now,
// preferring the most recently created one when several overlap.
func (r *Repo) ActiveDiscount(ctx context.Context, productID string, at time.Time) (Discount, bool, error) {
	var items []Discount
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND active = ?", productID, true).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return Discount{}, false, err
	}
	for _, d := range items {
		if d.InWindow(at) {
			return d, true, nil
		}
	}
	return Discount{}, false, nil
}

func dupOr(err error) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == 1062 {
		return ErrDuplicate
	}
	return err
}
