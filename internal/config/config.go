package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config carries everything read from the environment at startup. It is
// loaded once in main and handed to constructors explicitly; nothing else
// in the tree reads os.Getenv.
type Config struct {
	Port     string
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Token    TokenConfig
}

type DatabaseConfig struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     string
	SSLMode  string
}

type RedisConfig struct {
	Addr string
}

type KafkaConfig struct {
	Broker string
}

// TokenConfig parameterizes JWT issuance and verification.
type TokenConfig struct {
	Secret    string
	Issuer    string
	Audience  string
	ExpiresIn time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		Port: getEnv("PORT", "3000"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
			Port:     getEnv("DB_PORT", "5432"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr: getEnv("REDIS_ADDR", "localhost:6379"),
		},
		Kafka: KafkaConfig{
			Broker: os.Getenv("KAFKA_BROKER"),
		},
		Token: TokenConfig{
			Secret:    os.Getenv("JWT_SECRET"),
			Issuer:    getEnv("JWT_ISSUER", "go-leave"),
			Audience:  getEnv("JWT_AUDIENCE", "go-leave"),
			ExpiresIn: time.Duration(getEnvInt("JWT_EXPIRES_IN_MINUTES", 60)) * time.Minute,
		},
	}

	if cfg.Token.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.Database.Name == "" {
		return nil, fmt.Errorf("DB_NAME is required")
	}

	return cfg, nil
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
		return fallback
	}
	return n
}
