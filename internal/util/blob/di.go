package blob_storage

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/Betocasasa/projecthub-backend/internal/config"
	"github.com/Betocasasa/projecthub-backend/internal/util/logger"
)

var (
	storageInstance Storage
	once            sync.Once
)

// GetBlobStorage returns the configured attachment storage backend. Local disk
// is the default, S3 is opted into via STORAGE_DRIVER=s3.
func GetBlobStorage() Storage {
	once.Do(initBlobStorage)
	return storageInstance
}

func initBlobStorage() {
	env := config.GetEnv()
	log := logger.GetLogger()

	if env.StorageDriver == config.StorageDriverS3 {
		s3Storage, err := NewS3Storage(context.Background(), S3Config{
			Endpoint:        env.S3Endpoint,
			Region:          env.S3Region,
			Bucket:          env.S3Bucket,
			AccessKeyID:     env.S3AccessKeyID,
			SecretAccessKey: env.S3SecretAccessKey,
			PublicBaseURL:   env.S3PublicBaseURL,
		})
		if err != nil {
			log.Error("failed to initialize S3 storage", "error", err)
			panic(err)
		}

		storageInstance = s3Storage
		return
	}

	localDir := env.StorageLocalDir
	if localDir == "" {
		localDir = filepath.Join(env.BackendRootPath, "attachments-data")
	}

	localStorage, err := NewLocalStorage(localDir)
	if err != nil {
		log.Error("failed to initialize local storage", "error", err)
		panic(err)
	}

	storageInstance = localStorage
}
