package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"log/slog"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	apphttp "chhapai.in/app/internal/http"
	"chhapai.in/app/internal/mailer"
	"chhapai.in/app/internal/storage"
)

func main() {
	// Load .env file (ignore error if not found - prod uses real env vars)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN environment variable is required")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	cookieSecret := os.Getenv("COOKIE_SECRET")
	if cookieSecret == "" {
		log.Fatal("COOKIE_SECRET environment variable is required")
	}

	store, err := storage.FromEnv(context.Background())
	if err != nil {
		log.Fatalf("storage init failed: %v", err)
	}
	logger.Info("storage ready", "driver", store.Driver)

	cfg := apphttp.Config{
		SessionCookie: envOr("SESSION_COOKIE", "chhapai_session"),
		SessionTTL:    envDuration("SESSION_TTL", 30*24*time.Hour),
		CartCookie:    envOr("CART_COOKIE", "chhapai_cart"),
		CartSecret:    []byte(cookieSecret),
		SecureCookies: os.Getenv("SECURE_COOKIES") == "true",
		Store:         store.Storage,
		Mailer:        buildMailer(logger),
		FromName:      envOr("MAIL_FROM_NAME", "Chhapai"),
		FromEmail:     envOr("MAIL_FROM_EMAIL", "orders@chhapai.in"),
	}

	r := apphttp.NewRouter(logger, db, cfg)

	srv := &http.Server{
		Addr:         envOr("ADDR", ":8080"),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	logger.Info("listening", "addr", srv.Addr)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}

// buildMailer wires SMTP if configured, otherwise a mock that only logs.
func buildMailer(logger *slog.Logger) mailer.Service {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		logger.Warn("SMTP_HOST not set, order confirmations are logged only")
		return mailer.NewMock()
	}
	m, err := mailer.NewSMTP(mailer.SMTPConfig{
		Host:     host,
		Port:     envInt("SMTP_PORT", 587),
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
	})
	if err != nil {
		log.Fatalf("mailer init failed: %v", err)
	}
	return m
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
