package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"chhapai.in/app/internal/modules/catalog"
	"chhapai.in/app/internal/modules/orders"
	"chhapai.in/app/internal/modules/products"
	"chhapai.in/app/internal/shared/apperr"
)

func decimalFromInt(n int) decimal.Decimal { return decimal.NewFromInt(int64(n)) }

func intQuery(c *gin.Context, key string, def int) int {
	v := c.Query(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// domainErr maps module sentinel errors onto the apperr taxonomy so the
// error middleware picks the right status. Unknown errors pass through
// and surface as 500.
func domainErr(err error) error {
	switch {
	case errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, products.ErrNotFound),
		errors.Is(err, orders.ErrNotFound):
		return apperr.NotFoundErr("Not found.")
	case errors.Is(err, catalog.ErrDuplicate),
		errors.Is(err, products.ErrDuplicate):
		return apperr.ConflictErr("An entry with that name already exists.")
	case errors.Is(err, catalog.ErrInUse):
		return apperr.ConflictErr("Cannot delete: still referenced by other records.")
	case errors.Is(err, products.ErrNoPrice):
		return apperr.InvalidErr("No price is configured for that quantity.", nil)
	case errors.Is(err, orders.ErrCartEmpty):
		return apperr.InvalidErr("Your cart is empty.", nil)
	case errors.Is(err, orders.ErrInvalidTransition),
		errors.Is(err, orders.ErrNotActionable):
		return apperr.ConflictErr("That action is not allowed in the order's current state.")
	case errors.Is(err, orders.ErrFilesNotApproved):
		return apperr.ConflictErr("All design files must be approved first.")
	case errors.Is(err, orders.ErrIdempotencyKeyInUse):
		return apperr.ConflictErr("That idempotency key was already used.")
	default:
		return err
	}
}
