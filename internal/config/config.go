package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	env_utils "github.com/Betocasasa/projecthub-backend/internal/util/env"
	"github.com/Betocasasa/projecthub-backend/internal/util/logger"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

var log = logger.GetLogger()

const (
	StorageDriverLocal = "local"
	StorageDriverS3    = "s3"
)

type EnvVariables struct {
	IsTesting       bool
	DatabaseDsn     string            `env:"DATABASE_DSN"         required:"true"`
	EnvMode         env_utils.EnvMode `env:"ENV_MODE"             required:"true"`
	BackendRootPath string            `env:"BACKEND_ROOT_PATH"    required:"true"`
	// cache
	ValkeyHost     string `env:"VALKEY_HOST"          required:"true"`
	ValkeyPort     string `env:"VALKEY_PORT"          required:"true"`
	ValkeyUsername string `env:"VALKEY_USERNAME"      required:"false"`
	ValkeyPassword string `env:"VALKEY_PASSWORD"      required:"false"`
	ValkeyIsSsl    bool   `env:"VALKEY_IS_SSL"        required:"true"`
	// attachment storage
	StorageDriver     string `env:"STORAGE_DRIVER"        required:"false"`
	StorageLocalDir   string `env:"STORAGE_LOCAL_DIR"     required:"false"`
	S3Bucket          string `env:"S3_BUCKET"             required:"false"`
	S3Region          string `env:"S3_REGION"             required:"false"`
	S3Endpoint        string `env:"S3_ENDPOINT"           required:"false"`
	S3AccessKeyID     string `env:"S3_ACCESS_KEY_ID"      required:"false"`
	S3SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"  required:"false"`
	S3PublicBaseURL   string `env:"S3_PUBLIC_BASE_URL"    required:"false"`
}

var (
	env  EnvVariables
	once sync.Once
)

func GetEnv() EnvVariables {
	once.Do(loadEnvVariables)
	return env
}

func loadEnvVariables() {
	// Get current working directory
	cwd, err := os.Getwd()
	if err != nil {
		log.Warn("could not get current working directory", "error", err)
		cwd = "."
	}

	backendRoot := cwd
	for {
		if _, err := os.Stat(filepath.Join(backendRoot, "go.mod")); err == nil {
			break
		}

		parent := filepath.Dir(backendRoot)
		if parent == backendRoot {
			break
		}

		backendRoot = parent
	}

	env.BackendRootPath = backendRoot

	envPaths := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(backendRoot, ".env"),
	}

	var loaded bool
	for _, path := range envPaths {
		log.Info("Trying to load .env", "path", path)
		if err := godotenv.Load(path); err == nil {
			log.Info("Successfully loaded .env", "path", path)
			loaded = true
			break
		}
	}

	if !loaded {
		log.Error("Error loading .env file: could not find .env in any location")
		os.Exit(1)
	}

	err = cleanenv.ReadEnv(&env)
	if err != nil {
		log.Error("Configuration could not be loaded", "error", err)
		os.Exit(1)
	}

	for _, arg := range os.Args {
		if strings.Contains(arg, "test") {
			env.IsTesting = true
			break
		}
	}

	if env.DatabaseDsn == "" {
		log.Error("DATABASE_DSN is empty")
		os.Exit(1)
	}

	if env.EnvMode == "" {
		log.Error("ENV_MODE is empty")
		os.Exit(1)
	}
	if env.EnvMode != "development" && env.EnvMode != "production" {
		log.Error("ENV_MODE is invalid", "mode", env.EnvMode)
		os.Exit(1)
	}
	log.Info("ENV_MODE loaded", "mode", env.EnvMode)

	// Valkey
	if env.ValkeyHost == "" {
		log.Error("VALKEY_HOST is empty")
		os.Exit(1)
	}
	if env.ValkeyPort == "" {
		log.Error("VALKEY_PORT is empty")
		os.Exit(1)
	}

	// Attachment storage
	if env.StorageDriver == "" {
		env.StorageDriver = StorageDriverLocal
	}
	switch env.StorageDriver {
	case StorageDriverLocal:
		if env.StorageLocalDir == "" {
			env.StorageLocalDir = filepath.Join(backendRoot, "uploads")
		}
	case StorageDriverS3:
		if env.S3Bucket == "" {
			log.Error("S3_BUCKET is empty while STORAGE_DRIVER=s3")
			os.Exit(1)
		}
		if env.S3Region == "" {
			log.Error("S3_REGION is empty while STORAGE_DRIVER=s3")
			os.Exit(1)
		}
		if env.S3AccessKeyID == "" || env.S3SecretAccessKey == "" {
			log.Error("S3 credentials are empty while STORAGE_DRIVER=s3")
			os.Exit(1)
		}
	default:
		log.Error("STORAGE_DRIVER is invalid", "driver", env.StorageDriver)
		os.Exit(1)
	}

	log.Info("Environment variables loaded successfully!")
}
