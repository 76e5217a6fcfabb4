package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string

	AppPort string
	AppEnv  string

	JWTSecret  string
	CORSOrigin string

	// Outbound notification functions (message channel + email).
	NotifyBaseURL string
	NotifyAPIKey  string

	CartStorageDir string
	CartCacheSize  int

	RealtimeChannel string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:          os.Getenv("DB_HOST"),
		DBUser:          os.Getenv("DB_USER"),
		DBPassword:      os.Getenv("DB_PASSWORD"),
		DBName:          os.Getenv("DB_NAME"),
		DBPort:          os.Getenv("DB_PORT"),
		DBSSLMode:       getEnv("DB_SSLMODE", "disable"),
		AppPort:         getEnv("APP_PORT", "8080"),
		AppEnv:          os.Getenv("APP_ENV"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		CORSOrigin:      getEnv("CORS_ORIGIN", "http://localhost:3000"),
		NotifyBaseURL:   os.Getenv("NOTIFY_BASE_URL"),
		NotifyAPIKey:    os.Getenv("NOTIFY_API_KEY"),
		CartStorageDir:  getEnv("CART_STORAGE_DIR", "./data/carts"),
		CartCacheSize:   getEnvInt("CART_CACHE_SIZE", 1024),
		RealtimeChannel: getEnv("REALTIME_CHANNEL", "bakery_changes"),
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}
