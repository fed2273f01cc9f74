package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"chhapai.in/app/internal/http/middleware"
	"chhapai.in/app/internal/modules/catalog"
	"chhapai.in/app/internal/modules/products"
	"chhapai.in/app/pkg/view"
)

// CatalogHandler serves the public storefront reads: categories with
// their subcategories, print attributes, and the product listing.
type CatalogHandler struct {
	DB          *gorm.DB
	Catalog     *catalog.Service
	ProductRepo *products.Repo
}

func NewCatalogHandler(db *gorm.DB, cs *catalog.Service, pr *products.Repo) *CatalogHandler {
	return &CatalogHandler{DB: db, Catalog: cs, ProductRepo: pr}
}

// Categories handles GET /categories - active categories with their
// active subcategories nested.
func (h *CatalogHandler) Categories(c *gin.Context) {
	cats, err := h.Catalog.ListCategories(c.Request.Context(), true)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	rows := make([]view.CategoryRow, 0, len(cats))
	for _, cat := range cats {
		subs, err := h.Catalog.SubcategoriesOf(c.Request.Context(), cat.ID, true)
		if err != nil {
			middleware.Fail(c, err)
			return
		}
		row := view.CategoryRow{
			ID:       cat.ID,
			Name:     cat.Name,
			Slug:     cat.Slug,
			Active:   cat.Active,
			Position: cat.Position,
		}
		for _, s := range subs {
			row.Subcategories = append(row.Subcategories, view.SubcategoryRow{
				ID: s.ID, Name: s.Name, Slug: s.Slug, Active: s.Active,
			})
		}
		rows = append(rows, row)
	}

	c.JSON(http.StatusOK, gin.H{"categories": rows})
}

// Attributes handles GET /attributes - all active print attributes in
// one payload so the storefront can populate its variant pickers.
func (h *CatalogHandler) Attributes(c *gin.Context) {
	ctx := c.Request.Context()
	params := catalog.ListParams{OnlyActive: true}

	sizes, err := catalog.NewRepo[catalog.Size](h.DB).List(ctx, params)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	papers, err := catalog.NewRepo[catalog.PaperType](h.DB).List(ctx, params)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	prints, err := catalog.NewRepo[catalog.PrintType](h.DB).List(ctx, params)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	cuts, err := catalog.NewRepo[catalog.CutType](h.DB).List(ctx, params)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sizes":       sizes,
		"paper_types": papers,
		"print_types": prints,
		"cut_types":   cuts,
	})
}

// Products handles GET /products - active products, optionally filtered
// by category or subcategory.
func (h *CatalogHandler) Products(c *gin.Context) {
	list, err := h.ProductRepo.List(c.Request.Context(), products.ListParams{
		CategoryID:    c.Query("category_id"),
		SubcategoryID: c.Query("subcategory_id"),
		OnlyActive:    true,
	})
	if err != nil {
		middleware.Fail(c, domainErr(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": list})
}

// ProductBySlug handles GET /products/:slug - one product with its
// variants, tier prices and the currently running discount.
func (h *CatalogHandler) ProductBySlug(c *gin.Context) {
	p, err := h.ProductRepo.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		middleware.Fail(c, domainErr(err))
		return
	}

	d, ok, err := h.ProductRepo.ActiveDiscount(c.Request.Context(), p.ID, time.Now())
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	out := gin.H{"product": p}
	if ok {
		out["discount"] = d
	}
	c.JSON(http.StatusOK, out)
}
