package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type EnvType string

const (
	EnvDevelopment EnvType = "development"
	EnvProduction  EnvType = "production"
)

const (
	defaultMaxImageSize = 10 << 20 // 10 MiB
	defaultUploadDir    = "uploads"
	defaultTokenExpiry  = 60 // minutes
)

// S3Config holds credentials and addressing for the remote image store.
// Only required when EnvType is production.
type S3Config struct {
	Region          string
	Bucket          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// Config is built once at startup and injected into every constructor.
// Nothing below internal/config reads environment variables directly.
type Config struct {
	DBURI             string
	EnvType           EnvType
	MaxImageSize      int64
	UploadDir         string
	ImageStoreBaseURL string
	JWTSecret         string
	TokenExpiry       time.Duration
	S3                S3Config
}

// Load reads the process environment into a Config, validating required
// variables. Call godotenv.Load first if a .env file should be honored.
func Load() (*Config, error) {
	cfg := &Config{
		DBURI:             os.Getenv("DB_URI"),
		EnvType:           EnvType(os.Getenv("ENV_TYPE")),
		UploadDir:         os.Getenv("UPLOAD_DIR"),
		ImageStoreBaseURL: os.Getenv("IMAGE_STORE_BASE_URL"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		MaxImageSize:      defaultMaxImageSize,
		TokenExpiry:       defaultTokenExpiry * time.Minute,
		S3: S3Config{
			Region:          os.Getenv("S3_REGION"),
			Bucket:          os.Getenv("S3_BUCKET"),
			Endpoint:        os.Getenv("S3_ENDPOINT"),
			AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		},
	}

	var missing []string
	if cfg.DBURI == "" {
		missing = append(missing, "DB_URI")
	}
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing env variables: %v", missing)
	}

	switch cfg.EnvType {
	case EnvDevelopment, EnvProduction:
	case "":
		cfg.EnvType = EnvDevelopment
	default:
		return nil, fmt.Errorf("%q is not a valid ENV_TYPE", cfg.EnvType)
	}

	if cfg.EnvType == EnvProduction && cfg.S3.Bucket == "" {
		return nil, fmt.Errorf("missing env variables: [S3_BUCKET]")
	}

	if cfg.UploadDir == "" {
		cfg.UploadDir = defaultUploadDir
	}

	if v := os.Getenv("MAX_IMAGE_SIZE"); v != "" {
		size, err := strconv.ParseInt(v, 10, 64)
		if err != nil || size <= 0 {
			return nil, fmt.Errorf("invalid MAX_IMAGE_SIZE %q", v)
		}
		cfg.MaxImageSize = size
	}

	if v := os.Getenv("AUTH_TOKEN_EXPIRE_MINUTES"); v != "" {
		minutes, err := strconv.Atoi(v)
		if err != nil || minutes <= 0 {
			return nil, fmt.Errorf("invalid AUTH_TOKEN_EXPIRE_MINUTES %q", v)
		}
		cfg.TokenExpiry = time.Duration(minutes) * time.Minute
	}

	return cfg, nil
}
