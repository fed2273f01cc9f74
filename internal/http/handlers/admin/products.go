package admin

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"chhapai.in/app/internal/http/middleware"
	"chhapai.in/app/internal/http/validation"
	"chhapai.in/app/internal/modules/products"
	"chhapai.in/app/internal/shared/apperr"
	"chhapai.in/app/pkg/tabular"
	"chhapai.in/app/pkg/view"
)

// ProductsHandler is the admin surface for products, variants, tier
// prices and discounts.
type ProductsHandler struct {
	DB       *gorm.DB
	Products *products.Repo
}

func NewProductsHandler(db *gorm.DB, repo *products.Repo) *ProductsHandler {
	return &ProductsHandler{DB: db, Products: repo}
}

func productColumns() []tabular.Column[view.ProductRow] {
	return []tabular.Column[view.ProductRow]{
		{ID: "name", Header: "Name", Accessor: func(r view.ProductRow) any { return r.Name }},
		{ID: "category", Header: "Category", Accessor: func(r view.ProductRow) any { return r.Category }},
		{ID: "status", Header: "Status", Accessor: func(r view.ProductRow) any { return r.Status }},
		{ID: "variants", Header: "Variants", Accessor: func(r view.ProductRow) any { return r.VariantCount }},
		{
			ID: "min_price", Header: "From",
			Accessor: func(r view.ProductRow) any { return r.MinPrice },
			Cell:     func(r view.ProductRow) string { return r.MinPriceLbl },
		},
	}
}

type productListRow struct {
	ID           string          `gorm:"column:id"`
	Name         string          `gorm:"column:name"`
	Slug         string          `gorm:"column:slug"`
	Category     string          `gorm:"column:category"`
	Status       string          `gorm:"column:status"`
	VariantCount int             `gorm:"column:variant_count"`
	MinPrice     decimal.Decimal `gorm:"column:min_price"`
}

const productListQuery = `
SELECT
  p.id, p.name, p.slug, p.status,
  c.name AS category,
  COUNT(DISTINCT v.id) AS variant_count,
  COALESCE(MIN(vp.unit_price), 0) AS min_price
FROM products p
JOIN categories c ON c.id = p.category_id
LEFT JOIN product_variants v ON v.product_id = p.id
LEFT JOIN variant_prices vp ON vp.variant_id = v.id AND vp.active = 1
GROUP BY p.id, p.name, p.slug, p.status, c.name
ORDER BY p.updated_at DESC;
`

// List handles GET /admin/products?q=&sort=&dir=.
func (h *ProductsHandler) List(c *gin.Context) {
	var raw []productListRow
	if err := h.DB.WithContext(c.Request.Context()).Raw(productListQuery).Scan(&raw).Error; err != nil {
		middleware.Fail(c, err)
		return
	}

	rows := make([]view.ProductRow, 0, len(raw))
	for _, r := range raw {
		mp, _ := r.MinPrice.Float64()
		rows = append(rows, view.ProductRow{
			ID:           r.ID,
			Name:         r.Name,
			Slug:         r.Slug,
			Category:     r.Category,
			Status:       r.Status,
			VariantCount: r.VariantCount,
			MinPrice:     mp,
			MinPriceLbl:  view.Money(r.MinPrice),
		})
	}

	tbl := tabular.New(productColumns(), func(r view.ProductRow) string { return r.ID })
	tbl.SetGlobalFilter(c.Query("q"))
	if col := c.Query("sort"); col != "" {
		dir := tabular.DirectionAsc
		if c.Query("dir") == "desc" {
			dir = tabular.DirectionDesc
		}
		tbl.SetSort(col, dir)
	}

	page := view.AdminTablePage[view.ProductRow]{
		Rows:  tbl.VisibleRows(rows),
		Query: tbl.GlobalFilter(),
	}
	if s, ok := tbl.Sort(); ok {
		page.SortBy = s.ColumnID
		page.SortDir = string(s.Direction)
	}
	if len(page.Rows) == 0 {
		page.Empty = "No products match."
	}
	c.JSON(http.StatusOK, page)
}

type productReq struct {
	CategoryID    string  `json:"category_id" binding:"required,uuid"`
	SubcategoryID *string `json:"subcategory_id" binding:"omitempty,uuid"`
	Name          string  `json:"name" binding:"required,max=255"`
	Description   string  `json:"description" binding:"omitempty,max=10000"`
}

// Create handles POST /admin/products.
func (h *ProductsHandler) Create(c *gin.Context) {
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Check the highlighted fields.", validation.FromBindError(err, &req)))
		return
	}
	p, err := h.Products.Create(c.Request.Context(), req.CategoryID, req.SubcategoryID, req.Name, req.Description)
	if err != nil {
		middleware.Fail(c, productErr(err))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"product": p})
}

// Get handles GET /admin/products/:id with variants, prices and images.
func (h *ProductsHandler) Get(c *gin.Context) {
	p, err := h.Products.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.Fail(c, productErr(err))
		return
	}
	discounts, err := h.Products.ListDiscounts(c.Request.Context(), p.ID)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": p, "discounts": discounts})
}

type productPatch struct {
	CategoryID    *string `json:"category_id" binding:"omitempty,uuid"`
	SubcategoryID *string `json:"subcategory_id" binding:"omitempty,uuid"`
	Name          *string `json:"name" binding:"omitempty,max=255"`
	Description   *string `json:"description" binding:"omitempty,max=10000"`
	Status        *string `json:"status" binding:"omitempty,oneof=active inactive"`
}

// Update handles PATCH /admin/products/:id.
func (h *ProductsHandler) Update(c *gin.Context) {
	var req productPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Check the highlighted fields.", validation.FromBindError(err, &req)))
		return
	}
	upd := map[string]any{}
	if req.CategoryID != nil {
		upd["category_id"] = *req.CategoryID
	}
	if req.SubcategoryID != nil {
		upd["subcategory_id"] = *req.SubcategoryID
	}
	if req.Name != nil {
		upd["name"] = *req.Name
	}
	if req.Description != nil {
		upd["description"] = *req.Description
	}
	if req.Status != nil {
		upd["status"] = *req.Status
	}
	if len(upd) == 0 {
		middleware.Fail(c, apperr.InvalidErr("Nothing to update.", nil))
		return
	}
	if err := h.Products.Update(c.Request.Context(), c.Param("id"), upd); err != nil {
		middleware.Fail(c, productErr(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Delete handles DELETE /admin/products/:id.
func (h *ProductsHandler) Delete(c *gin.Context) {
	if err := h.Products.Delete(c.Request.Context(), c.Param("id")); err != nil {
		middleware.Fail(c, productErr(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// SetStatus serves POST /:id/activate and /:id/deactivate.
func (h *ProductsHandler) SetStatus(status string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h.Products.SetStatus(c.Request.Context(), c.Param("id"), status); err != nil {
			middleware.Fail(c, productErr(err))
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

type variantReq struct {
	SKU         string          `json:"sku" binding:"required,max=64"`
	SizeID      *string         `json:"size_id" binding:"omitempty,uuid"`
	PaperTypeID *string         `json:"paper_type_id" binding:"omitempty,uuid"`
	PrintTypeID *string         `json:"print_type_id" binding:"omitempty,uuid"`
	CutTypeID   *string         `json:"cut_type_id" binding:"omitempty,uuid"`
	Options     map[string]any  `json:"options"`
	Stock       int             `json:"stock" binding:"omitempty,gte=0"`
	Prices      []tierPriceBody `json:"prices" binding:"omitempty,dive"`
}

type tierPriceBody struct {
	MinQty    int             `json:"min_qty" binding:"required,gte=1"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
}

// AddVariant handles POST /admin/products/:id/variants. Tier prices may
// be supplied inline.
func (h *ProductsHandler) AddVariant(c *gin.Context) {
	var req variantReq
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Check the highlighted fields.", validation.FromBindError(err, &req)))
		return
	}

	var opts datatypes.JSON
	if len(req.Options) > 0 {
		b, err := json.Marshal(req.Options)
		if err != nil {
			middleware.Fail(c, apperr.InvalidErr("Options must be a JSON object.", nil))
			return
		}
		opts = datatypes.JSON(b)
	}

	v, err := h.Products.AddVariant(c.Request.Context(), c.Param("id"), req.SKU,
		req.SizeID, req.PaperTypeID, req.PrintTypeID, req.CutTypeID, opts, req.Stock)
	if err != nil {
		middleware.Fail(c, productErr(err))
		return
	}

	for _, p := range req.Prices {
		if p.UnitPrice.IsNegative() {
			middleware.Fail(c, apperr.InvalidErr("Unit price cannot be negative.", nil))
			return
		}
		if _, err := h.Products.AddVariantPrice(c.Request.Context(), v.ID, p.MinQty, p.UnitPrice); err != nil {
			middleware.Fail(c, productErr(err))
			return
		}
	}

	c.JSON(http.StatusCreated, gin.H{"variant": v})
}

type variantPatch struct {
	SKU         *string `json:"sku" binding:"omitempty,max=64"`
	SizeID      *string `json:"size_id" binding:"omitempty,uuid"`
	PaperTypeID *string `json:"paper_type_id" binding:"omitempty,uuid"`
	PrintTypeID *string `json:"print_type_id" binding:"omitempty,uuid"`
	CutTypeID   *string `json:"cut_type_id" binding:"omitempty,uuid"`
	Stock       *int    `json:"stock" binding:"omitempty,gte=0"`
	Active      *bool   `json:"active"`
}

// UpdateVariant handles PATCH /admin/products/:id/variants/:vid.
func (h *ProductsHandler) UpdateVariant(c *gin.Context) {
	var req variantPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Check the highlighted fields.", validation.FromBindError(err, &req)))
		return
	}
	upd := map[string]any{}
	if req.SKU != nil {
		upd["sku"] = *req.SKU
	}
	if req.SizeID != nil {
		upd["size_id"] = *req.SizeID
	}
	if req.PaperTypeID != nil {
		upd["paper_type_id"] = *req.PaperTypeID
	}
	if req.PrintTypeID != nil {
		upd["print_type_id"] = *req.PrintTypeID
	}
	if req.CutTypeID != nil {
		upd["cut_type_id"] = *req.CutTypeID
	}
	if req.Stock != nil {
		upd["stock"] = *req.Stock
	}
	if req.Active != nil {
		upd["active"] = *req.Active
	}
	if len(upd) == 0 {
		middleware.Fail(c, apperr.InvalidErr("Nothing to update.", nil))
		return
	}
	if err := h.Products.UpdateVariant(c.Request.Context(), c.Param("id"), c.Param("vid"), upd); err != nil {
		middleware.Fail(c, productErr(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// DeleteVariant handles DELETE /admin/products/:id/variants/:vid.
func (h *ProductsHandler) DeleteVariant(c *gin.Context) {
	if err := h.Products.DeleteVariant(c.Request.Context(), c.Param("id"), c.Param("vid")); err != nil {
		middleware.Fail(c, productErr(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// AddVariantPrice handles POST /admin/products/:id/variants/:vid/prices.
func (h *ProductsHandler) AddVariantPrice(c *gin.Context) {
	var req tierPriceBody
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Check the highlighted fields.", validation.FromBindError(err, &req)))
		return
	}
	if req.UnitPrice.IsNegative() {
		middleware.Fail(c, apperr.InvalidErr("Unit price cannot be negative.", nil))
		return
	}
	vp, err := h.Products.AddVariantPrice(c.Request.Context(), c.Param("vid"), req.MinQty, req.UnitPrice)
	if err != nil {
		middleware.Fail(c, productErr(err))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"price": vp})
}

// DeleteVariantPrice handles DELETE /admin/variant-prices/:id.
func (h *ProductsHandler) DeleteVariantPrice(c *gin.Context) {
	if err := h.Products.DeleteVariantPrice(c.Request.Context(), c.Param("id")); err != nil {
		middleware.Fail(c, productErr(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type discountReq struct {
	Kind     string          `json:"kind" binding:"required,oneof=percent flat"`
	Value    decimal.Decimal `json:"value" binding:"required"`
	StartsAt *time.Time      `json:"starts_at"`
	EndsAt   *time.Time      `json:"ends_at"`
}

// AddDiscount handles POST /admin/products/:id/discounts.
func (h *ProductsHandler) AddDiscount(c *gin.Context) {
	var req discountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Check the highlighted fields.", validation.FromBindError(err, &req)))
		return
	}
	if req.Value.IsNegative() {
		middleware.Fail(c, apperr.InvalidErr("Discount value cannot be negative.", nil))
		return
	}
	if req.Kind == products.DiscountPercent && req.Value.GreaterThan(decimal.NewFromInt(100)) {
		middleware.Fail(c, apperr.InvalidErr("Percent discount cannot exceed 100.", nil))
		return
	}
	if req.StartsAt != nil && req.EndsAt != nil && req.EndsAt.Before(*req.StartsAt) {
		middleware.Fail(c, apperr.InvalidErr("Discount window ends before it starts.", nil))
		return
	}

	now := time.Now()
	d := products.Discount{
		ID:        uuid.NewString(),
		ProductID: c.Param("id"),
		Kind:      req.Kind,
		Value:     req.Value,
		StartsAt:  req.StartsAt,
		EndsAt:    req.EndsAt,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.Products.AddDiscount(c.Request.Context(), &d); err != nil {
		middleware.Fail(c, productErr(err))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"discount": d})
}

// DeleteDiscount handles DELETE /admin/discounts/:id.
func (h *ProductsHandler) DeleteDiscount(c *gin.Context) {
	if err := h.Products.DeleteDiscount(c.Request.Context(), c.Param("id")); err != nil {
		middleware.Fail(c, productErr(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func productErr(err error) error {
	switch err {
	case products.ErrNotFound:
		return apperr.NotFoundErr("Not found.")
	case products.ErrDuplicate:
		return apperr.ConflictErr("An entry with that identifier already exists.")
	}
	return err
}
