package admin

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"chhapai.in/app/internal/http/middleware"
	"chhapai.in/app/internal/http/validation"
	"chhapai.in/app/internal/modules/catalog"
	"chhapai.in/app/internal/shared/apperr"
	"chhapai.in/app/pkg/tabular"
	"chhapai.in/app/pkg/view"
)

// CategoriesHandler manages categories and their subcategories. The list
// endpoint runs through the tabular table state: sortable columns, a
// global filter, and row expansion that inlines each expanded category's
// subcategories.
type CategoriesHandler struct {
	Catalog *catalog.Service
}

func NewCategoriesHandler(svc *catalog.Service) *CategoriesHandler {
	return &CategoriesHandler{Catalog: svc}
}

func categoryColumns() []tabular.Column[view.CategoryRow] {
	return []tabular.Column[view.CategoryRow]{
		{ID: "name", Header: "Name", Accessor: func(r view.CategoryRow) any { return r.Name }},
		{ID: "slug", Header: "Slug", Accessor: func(r view.CategoryRow) any { return r.Slug }},
		{ID: "position", Header: "Position", Accessor: func(r view.CategoryRow) any { return r.Position }},
		{ID: "active", Header: "Active", Accessor: func(r view.CategoryRow) any { return r.Active }},
	}
}

// List handles GET /admin/categories?q=&sort=&dir=&expanded=a,b.
func (h *CategoriesHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	cats, err := h.Catalog.ListCategories(ctx, false)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	rows := make([]view.CategoryRow, 0, len(cats))
	for _, cat := range cats {
		rows = append(rows, view.CategoryRow{
			ID:       cat.ID,
			Name:     cat.Name,
			Slug:     cat.Slug,
			Active:   cat.Active,
			Position: cat.Position,
		})
	}

	tbl := tabular.New(categoryColumns(), func(r view.CategoryRow) string { return r.ID })
	tbl.SetGlobalFilter(c.Query("q"))
	if col := c.Query("sort"); col != "" {
		dir := tabular.DirectionAsc
		if c.Query("dir") == "desc" {
			dir = tabular.DirectionDesc
		}
		tbl.SetSort(col, dir)
	}
	for _, id := range strings.Split(c.Query("expanded"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			tbl.Expand(id)
		}
	}

	visible := tbl.VisibleRows(rows)
	for i := range visible {
		if !tbl.Expanded(visible[i].ID) {
			continue
		}
		subs, err := h.Catalog.SubcategoriesOf(ctx, visible[i].ID, false)
		if err != nil {
			middleware.Fail(c, err)
			return
		}
		for _, s := range subs {
			visible[i].Subcategories = append(visible[i].Subcategories, view.SubcategoryRow{
				ID: s.ID, Name: s.Name, Slug: s.Slug, Active: s.Active,
			})
		}
	}

	page := view.AdminTablePage[view.CategoryRow]{
		Rows:     visible,
		Query:    tbl.GlobalFilter(),
		Expanded: tbl.ExpandedIDs(),
	}
	if s, ok := tbl.Sort(); ok {
		page.SortBy = s.ColumnID
		page.SortDir = string(s.Direction)
	}
	if len(visible) == 0 {
		page.Empty = "No categories match."
	}
	c.JSON(http.StatusOK, page)
}

type categoryReq struct {
	Name        string `json:"name" binding:"required,max=120"`
	Description string `json:"description" binding:"omitempty,max=2000"`
	Position    int    `json:"position" binding:"omitempty,gte=0"`
}

// Create handles POST /admin/categories.
func (h *CategoriesHandler) Create(c *gin.Context) {
	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Check the highlighted fields.", validation.FromBindError(err, &req)))
		return
	}
	cat, err := h.Catalog.CreateCategory(c.Request.Context(), req.Name, req.Description, req.Position)
	if err != nil {
		middleware.Fail(c, attrErr(err))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"category": cat})
}

type categoryPatch struct {
	Name        *string `json:"name" binding:"omitempty,max=120"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	Position    *int    `json:"position" binding:"omitempty,gte=0"`
}

// Update handles PATCH /admin/categories/:id.
func (h *CategoriesHandler) Update(c *gin.Context) {
	var req categoryPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Check the highlighted fields.", validation.FromBindError(err, &req)))
		return
	}
	upd := map[string]any{}
	if req.Name != nil {
		upd["name"] = *req.Name
	}
	if req.Description != nil {
		upd["description"] = *req.Description
	}
	if req.Position != nil {
		upd["position"] = *req.Position
	}
	if len(upd) == 0 {
		middleware.Fail(c, apperr.InvalidErr("Nothing to update.", nil))
		return
	}
	if err := h.Catalog.Categories.Update(c.Request.Context(), c.Param("id"), upd); err != nil {
		middleware.Fail(c, attrErr(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Delete handles DELETE /admin/categories/:id. Refuses while products or
// subcategories still reference the category.
func (h *CategoriesHandler) Delete(c *gin.Context) {
	if err := h.Catalog.Categories.Delete(c.Request.Context(), c.Param("id")); err != nil {
		middleware.Fail(c, attrErr(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// SetActive serves both POST /:id/activate and /:id/deactivate.
func (h *CategoriesHandler) SetActive(active bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h.Catalog.Categories.SetActive(c.Request.Context(), c.Param("id"), active); err != nil {
			middleware.Fail(c, attrErr(err))
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

type subcategoryReq struct {
	Name        string `json:"name" binding:"required,max=120"`
	Description string `json:"description" binding:"omitempty,max=2000"`
	Position    int    `json:"position" binding:"omitempty,gte=0"`
}

// CreateSubcategory handles POST /admin/categories/:id/subcategories.
func (h *CategoriesHandler) CreateSubcategory(c *gin.Context) {
	var req subcategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Check the highlighted fields.", validation.FromBindError(err, &req)))
		return
	}
	sc, err := h.Catalog.CreateSubcategory(c.Request.Context(), c.Param("id"), req.Name, req.Description, req.Position)
	if err != nil {
		middleware.Fail(c, attrErr(err))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"subcategory": sc})
}

// UpdateSubcategory handles PATCH /admin/subcategories/:id.
func (h *CategoriesHandler) UpdateSubcategory(c *gin.Context) {
	var req categoryPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Check the highlighted fields.", validation.FromBindError(err, &req)))
		return
	}
	upd := map[string]any{}
	if req.Name != nil {
		upd["name"] = *req.Name
	}
	if req.Description != nil {
		upd["description"] = *req.Description
	}
	if req.Position != nil {
		upd["position"] = *req.Position
	}
	if len(upd) == 0 {
		middleware.Fail(c, apperr.InvalidErr("Nothing to update.", nil))
		return
	}
	if err := h.Catalog.Subcategories.Update(c.Request.Context(), c.Param("id"), upd); err != nil {
		middleware.Fail(c, attrErr(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// DeleteSubcategory handles DELETE /admin/subcategories/:id.
func (h *CategoriesHandler) DeleteSubcategory(c *gin.Context) {
	if err := h.Catalog.Subcategories.Delete(c.Request.Context(), c.Param("id")); err != nil {
		middleware.Fail(c, attrErr(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// SetSubcategoryActive serves activate/deactivate for subcategories.
func (h *CategoriesHandler) SetSubcategoryActive(active bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h.Catalog.Subcategories.SetActive(c.Request.Context(), c.Param("id"), active); err != nil {
			middleware.Fail(c, attrErr(err))
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
