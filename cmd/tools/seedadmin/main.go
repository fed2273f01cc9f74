package main

import (
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"chhapai.in/app/internal/modules/users"
)

// Creates (or promotes) the admin account named by ADMIN_EMAIL /
// ADMIN_PASSWORD. Run once after createtable.
func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DB_DSN")
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if dsn == "" || email == "" || password == "" {
		log.Fatal("DB_DSN, ADMIN_EMAIL and ADMIN_PASSWORD are required")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	var existing users.User
	err = db.First(&existing, "email = ?", email).Error
	if err == nil {
		if existing.Role == users.RoleAdmin {
			log.Printf("✓ %s is already an admin", email)
			return
		}
		if err := db.Model(&users.User{}).Where("id = ?", existing.ID).
			Update("role", users.RoleAdmin).Error; err != nil {
			log.Fatalf("Failed to promote user: %v", err)
		}
		log.Printf("✓ promoted %s to admin", email)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	now := time.Now()
	u := users.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         users.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := db.Create(&u).Error; err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}
	log.Printf("✓ admin %s created", email)
}
