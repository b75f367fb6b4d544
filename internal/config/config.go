package config

import (
	"os"
	"strings"
	"time"
)

// Storage backends accepted in STORAGE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
)

type Config struct {
	Port                 string
	Environment          string // ENV: production, development, etc.
	StorageBackend       string
	DataDir              string // file backend only
	MongoURI             string
	PostgresURI          string
	RedisURI             string
	EncryptionKey        string // base64 32 bytes; wins over EncryptionPassphrase
	EncryptionPassphrase string
	EncryptionSalt       string
	AllowedOrigins       []string // CORS: from ALLOWED_ORIGINS or FRONTEND_URL
	CloudinaryName       string
	CloudinaryAPIKey     string
	CloudinaryAPISecret  string
	CloudinaryFolder     string
	Timezone             string // IANA zone that defines a local calendar day; empty = system zone
}

func Load() *Config {
	env := strings.ToLower(strings.TrimSpace(getEnv("ENV", "development")))

	allowedOrigins := parseOrigins(getEnv("ALLOWED_ORIGINS", ""))
	if len(allowedOrigins) == 0 {
		for _, u := range []string{getEnv("FRONTEND_URL", "http://localhost:8081"), getEnv("FRONTEND_URL_2", "")} {
			u = strings.TrimSpace(u)
			if u != "" {
				allowedOrigins = append(allowedOrigins, u)
			}
		}
	}

	return &Config{
		Port:                 getEnv("PORT", "8080"),
		Environment:          env,
		StorageBackend:       strings.ToLower(strings.TrimSpace(getEnv("STORAGE_BACKEND", BackendFile))),
		DataDir:              getEnv("DATA_DIR", "./data"),
		MongoURI:             getEnv("MONGODB_URI", getEnv("MONGO_URI", "mongodb://localhost:27017/voice_journal")),
		PostgresURI:          getEnv("POSTGRES_URI", "postgres://localhost:5432/voice_journal?sslmode=disable"),
		RedisURI:             getEnv("REDIS_URI", "redis://localhost:6379/0"),
		EncryptionKey:        getEnv("ENCRYPTION_KEY", ""),
		EncryptionPassphrase: getEnv("ENCRYPTION_PASSPHRASE", ""),
		EncryptionSalt:       getEnv("ENCRYPTION_SALT", "voice-journal"),
		AllowedOrigins:       allowedOrigins,
		CloudinaryName:       getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:     getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret:  getEnv("CLOUDINARY_API_SECRET", ""),
		CloudinaryFolder:     getEnv("CLOUDINARY_FOLDER", "voice-journal"),
		Timezone:             getEnv("TIMEZONE", ""),
	}
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return strings.ToLower(strings.TrimSpace(c.Environment)) == "production"
}

// HasCloudinary reports whether all Cloudinary credentials are present.
func (c *Config) HasCloudinary() bool {
	return c.CloudinaryName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

// Location resolves TIMEZONE. An empty value means the system zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
