package catalog

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Repo is a generic repository over one catalog entity. Every catalog
// entity shares the same shape of access: list, get, create, update,
// delete, activate/deactivate.
type Repo[T any] struct{ db *gorm.DB }

func NewRepo[T any](db *gorm.DB) *Repo[T] { return &Repo[T]{db: db} }

type ListParams struct {
	OnlyActive bool
}

func (r *Repo[T]) List(ctx context.Context, in ListParams) ([]T, error) {
	var items []T
	q := r.db.WithContext(ctx).Model(new(T)).Order("name ASC")
	if in.OnlyActive {
		q = q.Where("active = ?", true)
	}
	if err := q.Find(&items).Error; err != nil {
		return nil, translate(err)
	}
	return items, nil
}

func (r *Repo[T]) Get(ctx context.Context, id string) (T, error) {
	var item T
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		var zero T
		return zero, translate(err)
	}
	return item, nil
}

func (r *Repo[T]) Create(ctx context.Context, item *T) error {
	return translate(r.db.WithContext(ctx).Create(item).Error)
}

func (r *Repo[T]) Update(ctx context.Context, id string, updates map[string]any) error {
	updates["updated_at"] = time.Now()
	res := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo[T]) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetActive flips the activate/deactivate toggle. Idempotent: toggling to
// the current state is not an error.
func (r *Repo[T]) SetActive(ctx context.Context, id string, active bool) error {
	res := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).
		Updates(map[string]any{"active": active, "updated_at": time.Now()})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		// MySQL reports 0 affected rows for a no-op update; distinguish
		// a missing row from an unchanged one.
		var n int64
		if err := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Count(&n).Error; err != nil {
			return translate(err)
		}
		if n == 0 {
			return ErrNotFound
		}
	}
	return nil
}
