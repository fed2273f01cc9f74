package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"chhapai.in/app/internal/http/cartcookie"
	"chhapai.in/app/internal/http/middleware"
	"chhapai.in/app/internal/http/validation"
	"chhapai.in/app/internal/modules/cart"
	"chhapai.in/app/internal/modules/products"
	"chhapai.in/app/internal/shared/apperr"
)

// CartHandler serves the cart resource for both signed-in users and
// guests. Guests get a signed cookie pointing at a server-side cart row;
// prices are resolved server-side on every mutation so a stale client
// can never pin an old price.
type CartHandler struct {
	DB       *gorm.DB
	CK       *cartcookie.Codec
	CartSvc  *cart.Service
	Products *products.Repo
}

func NewCartHandler(db *gorm.DB, ck *cartcookie.Codec, svc *cart.Service, pr *products.Repo) *CartHandler {
	return &CartHandler{DB: db, CK: ck, CartSvc: svc, Products: pr}
}

// resolveCart finds (or creates) the caller's open cart.
func (h *CartHandler) resolveCart(c *gin.Context, create bool) (cart.Cart, error) {
	ctx := c.Request.Context()
	repo := h.CartSvc.Repo()

	if u, ok := middleware.CurrentUser(c); ok {
		return repo.GetOrCreateUserCart(ctx, u.ID)
	}

	cookieID, _ := h.CK.GetCartID(c)
	if cookieID == "" && !create {
		return cart.Cart{}, nil
	}
	ct, err := repo.GetOrCreateGuestCart(ctx, cookieID)
	if err != nil {
		return cart.Cart{}, err
	}
	if ct.ID != cookieID {
		h.CK.Set(c, ct.ID)
	}
	return ct, nil
}

// Get handles GET /cart.
func (h *CartHandler) Get(c *gin.Context) {
	ct, err := h.resolveCart(c, false)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	page, err := h.CartSvc.BuildCartPage(c.Request.Context(), ct.ID)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

type cartItemReq struct {
	VariantID string `json:"variant_id" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,gte=1,lte=10000"`
}

// Add handles POST /cart/items.
func (h *CartHandler) Add(c *gin.Context) {
	var req cartItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Check the highlighted fields.", validation.FromBindError(err, &req)))
		return
	}
	ctx := c.Request.Context()

	v, err := h.Products.GetVariant(ctx, req.VariantID)
	if err != nil {
		middleware.Fail(c, domainErr(err))
		return
	}
	if !v.Active {
		middleware.Fail(c, apperr.InvalidErr("That variant is no longer available.", nil))
		return
	}

	unit, err := h.Products.EffectiveUnitPrice(ctx, v, req.Quantity, time.Now())
	if err != nil {
		middleware.Fail(c, domainErr(err))
		return
	}

	ct, err := h.resolveCart(c, true)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	total := unit.Mul(decimalFromInt(req.Quantity))
	if err := h.CartSvc.Repo().UpsertItem(ctx, ct.ID, req.VariantID, req.Quantity, unit, total); err != nil {
		middleware.Fail(c, err)
		return
	}

	page, err := h.CartSvc.BuildCartPage(ctx, ct.ID)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

type cartQtyReq struct {
	Quantity int `json:"quantity" binding:"gte=0,lte=10000"`
}

// UpdateItem handles PATCH /cart/items/:variant_id. Quantity zero
// removes the line.
func (h *CartHandler) UpdateItem(c *gin.Context) {
	var req cartQtyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Check the highlighted fields.", validation.FromBindError(err, &req)))
		return
	}
	ctx := c.Request.Context()
	variantID := c.Param("variant_id")

	ct, err := h.resolveCart(c, false)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	if ct.ID == "" {
		middleware.Fail(c, apperr.NotFoundErr("Cart is empty."))
		return
	}

	if req.Quantity == 0 {
		if err := h.CartSvc.Repo().RemoveItem(ctx, ct.ID, variantID); err != nil {
			middleware.Fail(c, err)
			return
		}
	} else {
		v, err := h.Products.GetVariant(ctx, variantID)
		if err != nil {
			middleware.Fail(c, domainErr(err))
			return
		}
		unit, err := h.Products.EffectiveUnitPrice(ctx, v, req.Quantity, time.Now())
		if err != nil {
			middleware.Fail(c, domainErr(err))
			return
		}
		total := unit.Mul(decimalFromInt(req.Quantity))
		if err := h.CartSvc.Repo().UpdateItemQty(ctx, ct.ID, variantID, req.Quantity, unit, total); err != nil {
			middleware.Fail(c, err)
			return
		}
	}

	page, err := h.CartSvc.BuildCartPage(ctx, ct.ID)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// RemoveItem handles DELETE /cart/items/:variant_id.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	ct, err := h.resolveCart(c, false)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	if ct.ID != "" {
		if err := h.CartSvc.Repo().RemoveItem(c.Request.Context(), ct.ID, c.Param("variant_id")); err != nil {
			middleware.Fail(c, err)
			return
		}
	}
	page, err := h.CartSvc.BuildCartPage(c.Request.Context(), ct.ID)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Clear handles DELETE /cart.
func (h *CartHandler) Clear(c *gin.Context) {
	ct, err := h.resolveCart(c, false)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	if ct.ID != "" {
		if err := h.CartSvc.Repo().Clear(c.Request.Context(), ct.ID); err != nil {
			middleware.Fail(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
