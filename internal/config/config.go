package config

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mushroomery/shop/internal/models"
)

type Config struct {
	DatabaseURL  string
	JWTSecret    []byte
	Port         string
	KafkaBrokers []string
	ESURL        string
	ESUser       string
	ESPassword   string
	LogLevel     string
}

// Load reads the environment, falling back to the historical defaults.
// DATABASE_URL, JWT and PORT keep their insecure fallbacks on purpose:
// the service must come up on a bare developer machine.
func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	return &Config{
		DatabaseURL:  envDefault("DATABASE_URL", "postgres://localhost/mushroom_website_db?sslmode=disable"),
		JWTSecret:    []byte(envDefault("JWT", "secret")),
		Port:         envDefault("PORT", "3000"),
		KafkaBrokers: csv(os.Getenv("KAFKA_BROKERS")),
		ESURL:        os.Getenv("ES_URL"),
		ESUser:       os.Getenv("ES_USER"),
		ESPassword:   os.Getenv("ES_PASSWORD"),
		LogLevel:     envDefault("LOG_LEVEL", "info"),
	}
}

func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func csv(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func configurePool(sqlDB *sql.DB) {
	const (
		maxOpenConns    = 20
		maxIdleConns    = 10
		connMaxLifetime = 30 * time.Minute
		connMaxIdleTime = 5 * time.Minute
	)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)
}

func InitDB(ctx context.Context, dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sql.DB handle: %w", err)
	}
	configurePool(sqlDB)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.Cart{}, &models.CartItem{}); err != nil {
		return nil, fmt.Errorf("db migrate: %w", err)
	}
	return db, nil
}
