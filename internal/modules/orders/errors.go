package orders

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

var (
	ErrCartEmpty           = errors.New("orders: cart is empty")
	ErrNotFound            = errors.New("orders: not found")
	ErrInvalidTransition   = errors.New("orders: invalid status transition")
	ErrNotActionable       = errors.New("orders: not actionable")
	ErrFilesNotApproved    = errors.New("orders: design files not all approved")
	ErrIdempotencyKeyInUse = errors.New("orders: idempotency key already used")
)

// 1062: duplicate key.
func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
