package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	StorageDriver string // sqlite, redis or memory
	SQLitePath    string
	RedisAddr     string
	RedisPassword string

	AdminEmail    string
	AdminPassword string

	DeliveryFee float64
	TaxRate     float64
	PromoCode   string
	PromoRate   float64
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment defaults")
	}

	return &Config{
		Port:          getEnv("PORT", "3000"),
		StorageDriver: getEnv("STORAGE_DRIVER", "sqlite"),
		SQLitePath:    getEnv("SQLITE_PATH", "savoria.db"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@restaurant.com"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),
		DeliveryFee:   getEnvFloat("DELIVERY_FEE", 0.5),
		TaxRate:       getEnvFloat("TAX_RATE", 0.08),
		PromoCode:     getEnv("PROMO_CODE", "SAVE20"),
		PromoRate:     getEnvFloat("PROMO_RATE", 0.2),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("Invalid %s=%q, using default %v", key, v, fallback)
		return fallback
	}
	return f
}
