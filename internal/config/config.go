package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type Config struct {
	Port         string
	MongoURI     string
	DatabaseName string
	JWTSecret    string
	Origin       string
	Timeout      time.Duration
	SMTP         SMTPConfig
}

func LoadConfig() Config {
	err := godotenv.Load()
	if err != nil {
		if os.IsNotExist(err) {
			// .env file not found, proceed with environment values
		} else {
			panic("Error loading .env file")
		}
	}
	return Config{
		Port:         getEnv("PORT", "8000"),
		MongoURI:     getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		DatabaseName: getEnv("DATABASE_NAME", "mentorconnect"),
		JWTSecret:    getEnv("JWT_SECRET", ""),
		Origin:       getEnv("ORIGIN", "http://localhost:3000"),
		Timeout:      10 * time.Second,
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:     getEnvInt("SMTP_PORT", 587),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "no-reply@mentorconnect.app"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
