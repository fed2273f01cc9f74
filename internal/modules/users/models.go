package users

import "time"

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

type User struct {
	ID           string  `gorm:"type:char(36);primaryKey"`
	Email        string  `gorm:"type:varchar(255);not null;uniqueIndex:ux_users_email"`
	PasswordHash string  `gorm:"type:varchar(100);not null"`
	Role         string  `gorm:"type:varchar(16);not null;default:'customer'"`
	FirstName    *string `gorm:"type:varchar(100)"`
	LastName     *string `gorm:"type:varchar(100)"`
	Phone        *string `gorm:"type:varchar(32)"`

	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (User) TableName() string { return "users" }
