package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"chhapai.in/app/internal/http/cartcookie"
	"chhapai.in/app/internal/http/middleware"
	"chhapai.in/app/internal/http/validation"
	"chhapai.in/app/internal/modules/cart"
	"chhapai.in/app/internal/modules/checkout"
	"chhapai.in/app/internal/modules/orders"
	"chhapai.in/app/internal/shared/apperr"
)

type CheckoutHandler struct {
	DB     *gorm.DB
	CK     *cartcookie.Codec
	Cart   *cart.Service
	Orders *orders.Service
}

func NewCheckoutHandler(db *gorm.DB, ck *cartcookie.Codec, cs *cart.Service, os *orders.Service) *CheckoutHandler {
	return &CheckoutHandler{DB: db, CK: ck, Cart: cs, Orders: os}
}

type addressReq struct {
	FullName   string `json:"full_name" binding:"required,max=200"`
	Line1      string `json:"line1" binding:"required,max=255"`
	Line2      string `json:"line2" binding:"omitempty,max=255"`
	City       string `json:"city" binding:"required,max=120"`
	State      string `json:"state" binding:"required,max=120"`
	PostalCode string `json:"postal_code" binding:"required,min=6,max=6"`
	Phone      string `json:"phone" binding:"required,min=10,max=15"`
}

type checkoutReq struct {
	Address        addressReq `json:"address" binding:"required"`
	GuestEmail     string     `json:"guest_email" binding:"omitempty,email"`
	IdempotencyKey string     `json:"idempotency_key" binding:"required,min=8,max=64"`
}

// Create handles POST /checkout: converts the caller's open cart into an
// order. Guests must supply an email for the confirmation.
func (h *CheckoutHandler) Create(c *gin.Context) {
	var req checkoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Check the highlighted fields.", validation.FromBindError(err, &req)))
		return
	}

	in := orders.CreateInput{
		Address: orders.Address{
			FullName:   req.Address.FullName,
			Line1:      req.Address.Line1,
			Line2:      req.Address.Line2,
			City:       req.Address.City,
			State:      req.Address.State,
			PostalCode: req.Address.PostalCode,
			Phone:      req.Address.Phone,
		},
		IdempotencyKey: req.IdempotencyKey,
	}

	if u, ok := middleware.CurrentUser(c); ok {
		userCart, err := h.Cart.Repo().GetOrCreateUserCart(c.Request.Context(), u.ID)
		if err != nil {
			middleware.Fail(c, err)
			return
		}
		in.CartID = userCart.ID
		in.UserID = &u.ID
	} else {
		if req.GuestEmail == "" {
			middleware.Fail(c, apperr.InvalidErr("Check the highlighted fields.",
				map[string]string{"guest_email": "This field is required."}))
			return
		}
		cookieID, ok := h.CK.GetCartID(c)
		if !ok {
			middleware.Fail(c, apperr.InvalidErr("Your cart is empty.", nil))
			return
		}
		in.CartID = cookieID
		in.GuestEmail = &req.GuestEmail
	}

	o, err := h.Orders.CreateFromCart(c.Request.Context(), in)
	if err != nil {
		var oos *checkout.OutOfStockError
		if errors.As(err, &oos) {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"error":      "Some items are out of stock.",
				"request_id": middleware.GetRequestID(c),
				"items":      outOfStockJSON(oos),
			})
			return
		}
		middleware.Fail(c, domainErr(err))
		return
	}

	// guest cart is gone after conversion
	if _, ok := middleware.CurrentUser(c); !ok {
		h.CK.Clear(c)
	}

	c.JSON(http.StatusCreated, gin.H{"order": orderSummaryJSON(o)})
}

func orderSummaryJSON(o orders.Order) gin.H {
	return gin.H{
		"id":              o.ID,
		"status":          o.Status,
		"subtotal":        o.Subtotal,
		"gst":             o.GST,
		"delivery_charge": o.DeliveryCharge,
		"total":           o.Total,
		"created_at":      o.CreatedAt,
	}
}

func outOfStockJSON(e *checkout.OutOfStockError) []gin.H {
	out := make([]gin.H, 0, len(e.Items))
	for _, it := range e.Items {
		out = append(out, gin.H{
			"variant_id": it.VariantID,
			"requested":  it.Requested,
			"available":  it.Available,
		})
	}
	return out
}
