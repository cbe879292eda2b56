// file: internals/configs/config.go
package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

/* =======================
   APP CONFIG
   Dibangun sekali di main lalu dioper eksplisit — tanpa global ambient.
======================= */

type AppConfig struct {
	Port string

	// Database
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	DBSSLMode  string

	// Migrations (golang-migrate). Kosong = pakai AutoMigrate fallback.
	RunSQLMigrations bool
	MigrationsDir    string

	// JWT
	JWTSecret      string
	AccessTokenTTL time.Duration

	// OpenAI (AI collection agent)
	OpenAIAPIKey string
	OpenAIModel  string

	// Rate limit untuk endpoint AI (request per menit)
	AIRequestsPerMinute int
}

func Load() *AppConfig {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
	} else {
		log.Println("✅ .env file berhasil dimuat")
	}

	cfg := &AppConfig{
		Port:                GetEnv("PORT", "8000"),
		DBUser:              GetEnv("DB_USER", "mattilda"),
		DBPassword:          GetEnv("DB_PASSWORD", ""),
		DBHost:              GetEnv("DB_HOST", "localhost"),
		DBPort:              GetEnv("DB_PORT", "5432"),
		DBName:              GetEnv("DB_NAME", "mattilda_db"),
		DBSSLMode:           GetEnv("DB_SSLMODE", "disable"),
		RunSQLMigrations:    boolEnv("MIGRATIONS", false),
		MigrationsDir:       GetEnv("MIGRATIONS_DIR", "internals/databases/migrations"),
		JWTSecret:           GetEnv("JWT_SECRET"),
		AccessTokenTTL:      time.Duration(intEnv("ACCESS_TOKEN_EXPIRE_MINUTES", 30)) * time.Minute,
		OpenAIAPIKey:        GetEnv("OPENAI_API_KEY"),
		OpenAIModel:         GetEnv("OPENAI_MODEL", "gpt-4o"),
		AIRequestsPerMinute: intEnv("AI_REQUESTS_PER_MINUTE", 10),
	}

	if cfg.JWTSecret == "" {
		log.Println("❌ JWT_SECRET belum diset!")
	}
	if cfg.OpenAIAPIKey == "" {
		log.Println("⚠️ OPENAI_API_KEY kosong — AI agent jalan dengan rule-based fallback")
	}

	return cfg
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func intEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func boolEnv(key string, def bool) bool {
	switch os.Getenv(key) {
	case "1", "true", "yes":
		return true
	case "0", "false", "no":
		return false
	}
	return def
}
