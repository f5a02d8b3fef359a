package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	JwtSecret      string
	DbHost         string
	DbPort         string
	DbUser         string
	DbPassword     string
	DbName         string
	ServerPort     string
	Issuer         string
	AdminUsername  string
	AdminPassword  string
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	MinioBucket    string
)

func LoadConfig() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	JwtSecret = getEnv("JWT_SECRET", "defaultsecret")
	DbHost = getEnv("DB_HOST", "localhost")
	DbPort = getEnv("DB_PORT", "5432")
	DbUser = getEnv("DB_USER", "postgres")
	DbPassword = getEnv("DB_PASSWORD", "password")
	DbName = getEnv("DB_NAME", "appeals")
	ServerPort = getEnv("SERVER_PORT", "8080")
	Issuer = getEnv("ISSUER", "appeal-service")
	AdminUsername = getEnv("ADMIN_USERNAME", "admin1")
	AdminPassword = getEnv("ADMIN_PASSWORD", "admin123")

	MinioEndpoint = getEnv("MINIO_ENDPOINT", "localhost:9000")
	MinioAccessKey = getEnv("MINIO_ACCESS_KEY", "minio")
	MinioSecretKey = getEnv("MINIO_SECRET_KEY", "minio123")
	MinioBucket = getEnv("MINIO_BUCKET", "appeal-uploads")
	MinioUseSSL, _ = strconv.ParseBool(getEnv("MINIO_USE_SSL", "false"))
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
