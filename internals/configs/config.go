package configs

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	JWTSecret      string
	ClientURL      string
	SendgridAPIKey string
	MailFrom       string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ .env file tidak ditemukan, menggunakan ENV dari sistem")
		}
	}

	JWTSecret = GetEnv("JWT_SECRET")
	ClientURL = GetEnv("CLIENT_URL", "http://localhost:5173")
	SendgridAPIKey = GetEnv("SENDGRID_API_KEY")
	MailFrom = GetEnv("MAIL_FROM", "no-reply@trainingku.app")

	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET belum diset!")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

// IsProduction reports whether the process runs with production settings.
func IsProduction() bool {
	return GetEnv("APP_ENV") == "production" || os.Getenv("RAILWAY_ENVIRONMENT") != ""
}
