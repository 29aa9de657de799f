package users_services

import (
	"errors"
	"fmt"

	users_interfaces "github.com/Betocasasa/projecthub-backend/internal/features/users/interfaces"
	users_models "github.com/Betocasasa/projecthub-backend/internal/features/users/models"
	users_repositories "github.com/Betocasasa/projecthub-backend/internal/features/users/repositories"
)

type SettingsService struct {
	settingsRepository *users_repositories.WorkspaceSettingsRepository
	auditLogWriter     users_interfaces.AuditLogWriter
}

func (s *SettingsService) SetAuditLogWriter(writer users_interfaces.AuditLogWriter) {
	s.auditLogWriter = writer
}

func (s *SettingsService) GetSettings() (*users_models.WorkspaceSettings, error) {
	return s.settingsRepository.GetSettings()
}

func (s *SettingsService) UpdateSettings(
	request users_models.WorkspaceSettings,
	updatedBy *users_models.User,
) (*users_models.WorkspaceSettings, error) {
	if !updatedBy.CanUpdateSettings() {
		return nil, errors.New("insufficient permissions to update settings")
	}

	if request.MessageRetentionDays < 0 {
		return nil, errors.New("message retention days cannot be negative")
	}

	existingSettings, err := s.settingsRepository.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to get current settings: %w", err)
	}

	auditLogMessages := []string{}

	if request.IsAllowExternalRegistrations != existingSettings.IsAllowExternalRegistrations {
		auditLogMessages = append(
			auditLogMessages,
			fmt.Sprintf(
				"isAllowExternalRegistrations: %t -> %t",
				existingSettings.IsAllowExternalRegistrations,
				request.IsAllowExternalRegistrations,
			),
		)
		existingSettings.IsAllowExternalRegistrations = request.IsAllowExternalRegistrations
	}

	if request.IsAllowMemberInvitations != existingSettings.IsAllowMemberInvitations {
		auditLogMessages = append(
			auditLogMessages,
			fmt.Sprintf(
				"isAllowMemberInvitations: %t -> %t",
				existingSettings.IsAllowMemberInvitations,
				request.IsAllowMemberInvitations,
			),
		)
		existingSettings.IsAllowMemberInvitations = request.IsAllowMemberInvitations
	}

	if request.IsMemberAllowedToCreateTeams != existingSettings.IsMemberAllowedToCreateTeams {
		existingSettings.IsMemberAllowedToCreateTeams = request.IsMemberAllowedToCreateTeams
	}

	if request.MessageRetentionDays != existingSettings.MessageRetentionDays {
		auditLogMessages = append(
			auditLogMessages,
			fmt.Sprintf(
				"messageRetentionDays: %d -> %d",
				existingSettings.MessageRetentionDays,
				request.MessageRetentionDays,
			),
		)
		existingSettings.MessageRetentionDays = request.MessageRetentionDays
	}

	if err := s.settingsRepository.UpdateSettings(existingSettings); err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}

	for _, message := range auditLogMessages {
		s.auditLogWriter.WriteAuditLog(
			message,
			&updatedBy.ID,
			nil,
		)
	}

	return existingSettings, nil
}
