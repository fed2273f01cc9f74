package orders

import (
	"context"
	"strings"
)

type AdminListParams struct {
	Q        string
	Status   string
	Page     int
	PageSize int
}

type AdminListItem struct {
	Order Order
	Count int
}

type AdminListResult struct {
	Items []AdminListItem
	Total int64
}

func (r *Repo) AdminList(ctx context.Context, in AdminListParams) (AdminListResult, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	size := in.PageSize
	if size < 1 || size > 200 {
		size = 50
	}

	q := strings.TrimSpace(in.Q)
	status := strings.TrimSpace(in.Status)

	base := r.db.WithContext(ctx).Model(&Order{})
	if status != "" {
		base = base.Where("status = ?", status)
	}
	if q != "" {
		like := "%" + q + "%"
		base = base.Where("(id LIKE ? OR guest_email LIKE ?)", like, like)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return AdminListResult{}, err
	}

	var list []Order
	if err := base.
		Order("created_at DESC").
		Limit(size).
		Offset((page - 1) * size).
		Find(&list).Error; err != nil {
		return AdminListResult{}, err
	}

	items := make([]AdminListItem, len(list))
	for i, o := range list {
		var count int64
		if err := r.db.WithContext(ctx).Model(&OrderItem{}).Where("order_id = ?", o.ID).Count(&count).Error; err != nil {
			count = 0
		}
		items[i] = AdminListItem{Order: o, Count: int(count)}
	}

	return AdminListResult{Items: items, Total: total}, nil
}

func (r *Repo) AdminGetDetail(ctx context.Context, orderID string) (Order, []OrderItem, []OrderEvent, error) {
	o, items, err := r.GetWithItems(ctx, orderID)
	if err != nil {
		return Order{}, nil, nil, err
	}
	ev, err := r.Events(ctx, orderID)
	if err != nil {
		return Order{}, nil, nil, err
	}
	return o, items, ev, nil
}

type FileListParams struct {
	Status string
	Page   int
	Size   int
}

type FileListRow struct {
	File        DesignFile
	ProductName string
}

// AdminListFiles is the review queue: uploaded design files joined with
// the product they are for, oldest first.
func (r *Repo) AdminListFiles(ctx context.Context, in FileListParams) ([]FileListRow, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	size := in.Size
	if size < 1 || size > 200 {
		size = 50
	}

	q := r.db.WithContext(ctx).
		Table("design_files AS f").
		Select("f.*, oi.product_name AS product_name").
		Joins("JOIN order_items oi ON oi.id = f.order_item_id").
		Order("f.created_at ASC").
		Limit(size).
		Offset((page - 1) * size)
	if s := strings.TrimSpace(in.Status); s != "" {
		q = q.Where("f.review_status = ?", s)
	}

	type flat struct {
		DesignFile
		ProductName string `gorm:"column:product_name"`
	}
	var rows []flat
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]FileListRow, len(rows))
	for i, row := range rows {
		out[i] = FileListRow{File: row.DesignFile, ProductName: row.ProductName}
	}
	return out, nil
}
