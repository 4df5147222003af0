package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	CORS     CORSConfig
	Model    ModelConfig
	Uploads  UploadConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port int
}

type DatabaseConfig struct {
	// Driver selects the gorm driver: "sqlite" (default) or "postgres".
	Driver string
	// Path is the sqlite database file.
	Path string

	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins string
}

type ModelConfig struct {
	// CachePath is where the trained soil ensemble is persisted.
	CachePath string
	// Seed drives synthetic data generation and training.
	Seed int64
	// Samples is the synthetic dataset size.
	Samples int
	// Trees is the ensemble size.
	Trees int
}

type UploadConfig struct {
	Dir            string
	MaxBytes       int64
	RetentionHours int
}

type LogConfig struct {
	Mode string
}

func (d DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

func LoadConfig() (*Config, error) {
	serverPort, err := getIntEnv("SERVER_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	dbPort, err := getIntEnv("DB_PORT", 5432)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	redisPort, err := getIntEnv("REDIS_PORT", 6379)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_PORT: %w", err)
	}

	redisDB, err := getIntEnv("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	modelSeed, err := getIntEnv("MODEL_SEED", 42)
	if err != nil {
		return nil, fmt.Errorf("invalid MODEL_SEED: %w", err)
	}

	modelSamples, err := getIntEnv("MODEL_SAMPLES", 2000)
	if err != nil {
		return nil, fmt.Errorf("invalid MODEL_SAMPLES: %w", err)
	}

	modelTrees, err := getIntEnv("MODEL_TREES", 100)
	if err != nil {
		return nil, fmt.Errorf("invalid MODEL_TREES: %w", err)
	}

	uploadMaxMB, err := getIntEnv("UPLOAD_MAX_MB", 10)
	if err != nil {
		return nil, fmt.Errorf("invalid UPLOAD_MAX_MB: %w", err)
	}

	uploadRetention, err := getIntEnv("UPLOAD_RETENTION_HOURS", 24)
	if err != nil {
		return nil, fmt.Errorf("invalid UPLOAD_RETENTION_HOURS: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: serverPort,
		},
		Database: DatabaseConfig{
			Driver:   getEnv("DB_DRIVER", "sqlite"),
			Path:     getEnv("DB_PATH", "agriculture.db"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("DB_USER", "agro"),
			Password: getEnv("DB_PASSWORD", "agro_dev_password"),
			Name:     getEnv("DB_NAME", "agro"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     redisPort,
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Model: ModelConfig{
			CachePath: getEnv("MODEL_CACHE_PATH", "ml_models/soil_model.gob"),
			Seed:      int64(modelSeed),
			Samples:   modelSamples,
			Trees:     modelTrees,
		},
		Uploads: UploadConfig{
			Dir:            getEnv("UPLOAD_DIR", "uploads"),
			MaxBytes:       int64(uploadMaxMB) * 1024 * 1024,
			RetentionHours: uploadRetention,
		},
		Log: LogConfig{
			Mode: getEnv("LOG_MODE", "dev"),
		},
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getIntEnv(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}
