package downdetect

import (
	"fmt"

	"github.com/Betocasasa/projecthub-backend/internal/storage"
	cache_utils "github.com/Betocasasa/projecthub-backend/internal/util/cache"
)

type DowndetectService struct{}

// IsAvailable reports whether every backing service the API depends on is
// reachable. Used by the readiness endpoint.
func (s *DowndetectService) IsAvailable() error {
	if err := s.CheckDatabase(); err != nil {
		return fmt.Errorf("database check failed: %w", err)
	}

	if err := s.CheckCache(); err != nil {
		return fmt.Errorf("cache check failed: %w", err)
	}

	return nil
}

func (s *DowndetectService) CheckDatabase() error {
	return storage.GetDb().Exec("SELECT 1").Error
}

func (s *DowndetectService) CheckCache() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("cache connection test panicked: %v", r)
		}
	}()

	cache_utils.TestCacheConnection()
	return nil
}
