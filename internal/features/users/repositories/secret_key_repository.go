package users_repositories

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"

	users_models "github.com/Betocasasa/projecthub-backend/internal/features/users/models"
	"github.com/Betocasasa/projecthub-backend/internal/storage"

	"gorm.io/gorm"
)

// SecretKeyRepository manages the token signing secret. The secret is generated
// once on first use and persisted so tokens survive restarts.
type SecretKeyRepository struct {
	mu     sync.Mutex
	cached string
}

func (r *SecretKeyRepository) GetSecretKey() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cached != "" {
		return r.cached, nil
	}

	var secretKey users_models.SecretKey
	err := storage.GetDb().First(&secretKey).Error
	if err == nil {
		r.cached = secretKey.Secret
		return r.cached, nil
	}

	if err != gorm.ErrRecordNotFound {
		return "", fmt.Errorf("failed to load secret key: %w", err)
	}

	secretBytes := make([]byte, 32)
	if _, err := rand.Read(secretBytes); err != nil {
		return "", fmt.Errorf("failed to generate secret key: %w", err)
	}

	secretKey = users_models.SecretKey{Secret: hex.EncodeToString(secretBytes)}
	if err := storage.GetDb().Create(&secretKey).Error; err != nil {
		return "", fmt.Errorf("failed to persist secret key: %w", err)
	}

	r.cached = secretKey.Secret

	return r.cached, nil
}
