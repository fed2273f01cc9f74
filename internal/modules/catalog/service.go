package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"chhapai.in/app/internal/shared/slug"
)

// Service wires the per-entity repos and owns the slugged create paths.
type Service struct {
	db *gorm.DB

	Categories    *Repo[Category]
	Subcategories *Repo[Subcategory]
	Sizes         *Repo[Size]
	PaperTypes    *Repo[PaperType]
	PrintTypes    *Repo[PrintType]
	CutTypes      *Repo[CutType]
}

func NewService(db *gorm.DB) *Service {
	return &Service{
		db:            db,
		Categories:    NewRepo[Category](db),
		Subcategories: NewRepo[Subcategory](db),
		Sizes:         NewRepo[Size](db),
		PaperTypes:    NewRepo[PaperType](db),
		PrintTypes:    NewRepo[PrintType](db),
		CutTypes:      NewRepo[CutType](db),
	}
}

func (s *Service) CreateCategory(ctx context.Context, name, description string, position int) (Category, error) {
	now := time.Now()
	c := Category{
		ID:          uuid.NewString(),
		Name:        name,
		Slug:        slug.FromName(name),
		Description: description,
		Position:    position,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Categories.Create(ctx, &c); err != nil {
		return Category{}, err
	}
	return c, nil
}

func (s *Service) CreateSubcategory(ctx context.Context, categoryID, name, description string, position int) (Subcategory, error) {
	if _, err := s.Categories.Get(ctx, categoryID); err != nil {
		return Subcategory{}, err
	}
	now := time.Now()
	sc := Subcategory{
		ID:          uuid.NewString(),
		CategoryID:  categoryID,
		Name:        name,
		Slug:        slug.FromName(name),
		Description: description,
		Position:    position,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Subcategories.Create(ctx, &sc); err != nil {
		return Subcategory{}, err
	}
	return sc, nil
}

// SubcategoriesOf lists a category's subcategories in display order.
// Feeds the expanded sub-view under a category row.
func (s *Service) SubcategoriesOf(ctx context.Context, categoryID string, onlyActive bool) ([]Subcategory, error) {
	var items []Subcategory
	q := s.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("position ASC, name ASC")
	if onlyActive {
		q = q.Where("active = ?", true)
	}
	if err := q.Find(&items).Error; err != nil {
		return nil, translate(err)
	}
	return items, nil
}

// ListCategories returns categories in storefront display order.
func (s *Service) ListCategories(ctx context.Context, onlyActive bool) ([]Category, error) {
	var items []Category
	q := s.db.WithContext(ctx).Order("position ASC, name ASC")
	if onlyActive {
		q = q.Where("active = ?", true)
	}
	if err := q.Find(&items).Error; err != nil {
		return nil, translate(err)
	}
	return items, nil
}
