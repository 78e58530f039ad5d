package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server   ServerConfig
	MinIO    MinIOConfig
	Render   RenderConfig
	LogLevel string
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// MinIOConfig holds the object-store connection settings.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

// RenderConfig bounds the resources a single render job may consume.
type RenderConfig struct {
	// MaxAssetSize caps every HTTP body the pipeline reads, template included.
	MaxAssetSize   int64
	MaxRedirects   int
	WorkerPoolSize int64
	PresignExpiry  time.Duration
	TypesetterPath string
}

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8018")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_ENVIRONMENT", "development")
	viper.SetDefault("MINIO_BUCKET", "paperpress")
	viper.SetDefault("MAX_ASSET_SIZE", 10*1024*1024)
	viper.SetDefault("MAX_REDIRECTS", 10)
	viper.SetDefault("WORKER_POOL_SIZE", 3)
	viper.SetDefault("PRESIGN_EXPIRY_HOURS", 72)
	viper.SetDefault("XELATEX_PATH", "xelatex")

	cfg := &Config{
		Server: ServerConfig{
			Port:         viper.GetString("SERVER_PORT"),
			Host:         viper.GetString("SERVER_HOST"),
			Environment:  viper.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		MinIO: MinIOConfig{
			Endpoint:  viper.GetString("MINIO_ENDPOINT"),
			AccessKey: viper.GetString("MINIO_ACCESS_KEY"),
			SecretKey: viper.GetString("MINIO_SECRET_KEY"),
			UseSSL:    viper.GetBool("MINIO_USE_SSL"),
			Bucket:    viper.GetString("MINIO_BUCKET"),
		},
		Render: RenderConfig{
			MaxAssetSize:   viper.GetInt64("MAX_ASSET_SIZE"),
			MaxRedirects:   viper.GetInt("MAX_REDIRECTS"),
			WorkerPoolSize: viper.GetInt64("WORKER_POOL_SIZE"),
			PresignExpiry:  time.Duration(viper.GetInt("PRESIGN_EXPIRY_HOURS")) * time.Hour,
			TypesetterPath: viper.GetString("XELATEX_PATH"),
		},
		LogLevel: viper.GetString("LOG_LEVEL"),
	}

	return cfg, nil
}
