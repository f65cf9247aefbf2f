// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// API holds runtime configuration for the metadata service.
type API struct {
	DatabaseURL string
	Port        string
	AppEnv      string

	// Base URL of the internal media proxy service.
	MediaAPIURL string

	MaxImageSize      int64
	AllowedImageTypes []string
	MaxPerPage        int
	MaxTextLength     int
	MaxFileNameLength int
}

// Media holds runtime configuration for the media proxy service.
type Media struct {
	Port   string
	AppEnv string

	// Object storage (S3-compatible: MinIO locally, any S3 endpoint in production)
	StorageEndpoint  string
	StorageAccessKey string
	StorageSecretKey string
	StorageBucket    string
	StorageUseSSL    bool

	PresignedURLExpiryHours int
	UploadPartSize          uint64
}

// LoadAPI reads metadata-service configuration from a .env file (if present)
// and environment variables.
func LoadAPI() *API {
	loadDotenv()

	return &API{
		DatabaseURL: databaseURL(),
		Port:        getEnv("PORT", "8080"),
		AppEnv:      getEnv("APP_ENV", "development"),

		MediaAPIURL: getEnv("MEDIA_API_URL", "http://media:8081"),

		MaxImageSize:      getEnvInt64("MAX_IMAGE_SIZE", 8*1024*1024),
		AllowedImageTypes: splitList(getEnv("ALLOWED_IMAGE_TYPES", "png,jpeg,gif,apng,webp")),
		MaxPerPage:        getEnvInt("PAGINATION_MAX_PER_PAGE", 50),
		MaxTextLength:     getEnvInt("MAX_MEMES_TEXT_LENGTH", 256),
		MaxFileNameLength: getEnvInt("MAX_FILE_NAME_LENGTH", 36),
	}
}

// LoadMedia reads media-service configuration from a .env file (if present)
// and environment variables.
func LoadMedia() *Media {
	loadDotenv()

	return &Media{
		Port:   getEnv("PORT", "8081"),
		AppEnv: getEnv("APP_ENV", "development"),

		StorageEndpoint:  getEnv("MINIO_URL", "localhost:9000"),
		StorageAccessKey: getEnv("MINIO_ROOT_USER", "minioadmin"),
		StorageSecretKey: getEnv("MINIO_ROOT_PASSWORD", "minioadmin"),
		StorageBucket:    getEnv("MINIO_BUCKET_NAME", "memes-storage"),
		StorageUseSSL:    getEnv("MINIO_USE_SSL", "false") == "true",

		PresignedURLExpiryHours: getEnvInt("MINIO_PRESIGNED_URL_EXPIRED_HOURS", 7*24),
		UploadPartSize:          uint64(getEnvInt64("MINIO_UPLOAD_PART_SIZE", 10*1024*1024)),
	}
}

// IsProduction returns true when the app is running in production mode.
func (c *API) IsProduction() bool {
	return c.AppEnv == "production"
}

// IsProduction returns true when the app is running in production mode.
func (c *Media) IsProduction() bool {
	return c.AppEnv == "production"
}

// databaseURL builds the connection string from DATABASE_URL when set,
// otherwise from the individual POSTGRES_* variables.
func databaseURL() string {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		return v
	}

	user := getEnv("POSTGRES_USER", "postgres_user")
	password := getEnv("POSTGRES_PASSWORD", "postgres_password")
	host := getEnv("POSTGRES_HOST", "db")
	port := getEnv("POSTGRES_PORT", "5432")
	name := getEnv("POSTGRES_DB", "postgres_db")

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		user, password, host, port, name)
}

func loadDotenv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, reading from environment")
	}
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
	if err != nil {
		log.Printf("config: invalid %s=%q, using default %d", key, v, fallback)
		return fallback
	}
	return n
}

func getEnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Printf("config: invalid %s=%q, using default %d", key, v, fallback)
		return fallback
	}
	return n
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
