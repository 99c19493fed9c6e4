package config

import (
	"os"
	"strconv"
)

// Config runtime configuration, resolved from environment variables
type Config struct {
	Env  string
	Port string

	Mongo MongoConfig
	Redis RedisConfig
	Auth  AuthConfig
	App   AppConfig
	Baidu BaiduConfig
}

// MongoConfig document store connection settings
type MongoConfig struct {
	URI      string
	Database string
}

// RedisConfig cache connection settings
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	PoolSize int
}

// AuthConfig fixed admin account and token signing settings
type AuthConfig struct {
	User      string
	Password  string
	JWTSecret string
}

// AppConfig application-level settings
type AppConfig struct {
	Site  string // canonical site URL used for SEO pings
	Limit int    // hard cap on page size for all listings
}

// BaiduConfig SEO push credentials
type BaiduConfig struct {
	Token string
}

// Load resolves configuration from the environment
func Load() *Config {
	return &Config{
		Env:  getEnv("APP_ENV", "local"),
		Port: getEnv("PORT", "8090"),
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGO_DATABASE", "onektips"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			PoolSize: getEnvInt("REDIS_POOL_SIZE", 10),
		},
		Auth: AuthConfig{
			User:      getEnv("AUTH_USER", "admin"),
			Password:  getEnv("AUTH_PASSWORD", ""),
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
		App: AppConfig{
			Site:  getEnv("SITE_URL", "https://www.1ktips.com"),
			Limit: getEnvInt("PAGE_LIMIT", 16),
		},
		Baidu: BaiduConfig{
			Token: getEnv("BAIDU_TOKEN", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
