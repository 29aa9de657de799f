package users_repositories

import (
	user_models "github.com/Betocasasa/projecthub-backend/internal/features/users/models"
	"github.com/Betocasasa/projecthub-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WorkspaceSettingsRepository struct{}

func (r *WorkspaceSettingsRepository) GetSettings() (*user_models.WorkspaceSettings, error) {
	var settings user_models.WorkspaceSettings

	if err := storage.GetDb().First(&settings).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			// Create default settings if none exist
			defaultSettings := &user_models.WorkspaceSettings{
				ID:                           uuid.New(),
				IsAllowExternalRegistrations: true,
				IsAllowMemberInvitations:     true,
				IsMemberAllowedToCreateTeams: true,
				MessageRetentionDays:         0,
			}

			if createErr := storage.GetDb().Create(defaultSettings).Error; createErr != nil {
				return nil, createErr
			}

			return defaultSettings, nil
		}
		return nil, err
	}

	return &settings, nil
}

func (r *WorkspaceSettingsRepository) UpdateSettings(settings *user_models.WorkspaceSettings) error {
	existingSettings, err := r.GetSettings()
	if err != nil {
		return err
	}

	settings.ID = existingSettings.ID

	return storage.GetDb().Save(settings).Error
}
