package catalog

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("catalog: not found")
	ErrDuplicate = errors.New("catalog: duplicate entry")
	ErrInUse     = errors.New("catalog: entity still referenced")
)

// translate maps driver-level failures onto the package's error set.
// 1062: duplicate key, 1451: row is referenced by a foreign key.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case 1062:
			return ErrDuplicate
		case 1451:
			return ErrInUse
		}
	}
	return err
}
