package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort int
	Database   DatabaseConfig
	Session    SessionConfig
	Retention  RetentionConfig

	// AdminSecret promotes an account to admin when supplied verbatim on
	// signup or profile update. Empty disables promotion entirely.
	AdminSecret string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	UseSSL   bool
}

type SessionConfig struct {
	// Secret signs the session id cookie. Required in production.
	Secret       string
	CookieSecure bool
	SameSite     string
}

// RetentionConfig bounds the row count of the two content tables. Oldest
// rows beyond a ceiling are trimmed after each insert.
type RetentionConfig struct {
	MaxUsers int
	MaxPosts int
}

func LoadConfig() Config {
	if os.Getenv("ENV") == "dev" {
		godotenv.Load()
	}

	dbConfig := DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnvInt("DB_PORT", 5432),
		User:     getEnv("DB_USER", "club"),
		Password: getEnv("DB_PASSWORD", "password"),
		DBName:   getEnv("DB_NAME", "club_db"),
		UseSSL:   getEnvBool("DB_SSL", false),
	}

	return Config{
		ServerPort:  getEnvInt("SERVER_PORT", 8080),
		Database:    dbConfig,
		AdminSecret: getEnv("ADMIN_SECRET", ""),
		Session: SessionConfig{
			Secret:       getEnv("SESSION_SECRET", ""),
			CookieSecure: getEnvBool("SESSION_COOKIE_SECURE", false),
			SameSite:     getEnv("SESSION_COOKIE_SAME_SITE", "lax"),
		},
		Retention: RetentionConfig{
			MaxUsers: getEnvInt("RETAIN_USERS", 50),
			MaxPosts: getEnvInt("RETAIN_POSTS", 200),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		var value int
		fmt.Sscanf(valueStr, "%d", &value)
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		return value == "1" || value == "true" || value == "yes"
	}
	return defaultValue
}
