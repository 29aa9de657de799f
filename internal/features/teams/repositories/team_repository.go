package teams_repositories

import (
	"time"

	teams_models "github.com/Betocasasa/projecthub-backend/internal/features/teams/models"
	"github.com/Betocasasa/projecthub-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TeamRepository struct{}

func (r *TeamRepository) CreateTeam(team *teams_models.Team) error {
	if team.ID == uuid.Nil {
		team.ID = uuid.New()
	}
	if team.CreatedAt.IsZero() {
		team.CreatedAt = time.Now().UTC()
	}

	return storage.GetDb().Create(team).Error
}

func (r *TeamRepository) GetTeamByID(teamID uuid.UUID) (*teams_models.Team, error) {
	var team teams_models.Team

	if err := storage.GetDb().Where("id = ?", teamID).First(&team).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}

		return nil, err
	}

	return &team, nil
}

func (r *TeamRepository) UpdateTeam(team *teams_models.Team) error {
	return storage.GetDb().Save(team).Error
}

func (r *TeamRepository) DeleteTeam(teamID uuid.UUID) error {
	return storage.GetDb().Delete(&teams_models.Team{}, teamID).Error
}

func (r *TeamRepository) GetAllTeams() ([]*teams_models.Team, error) {
	var teams []*teams_models.Team

	err := storage.GetDb().Order("created_at DESC").Find(&teams).Error

	return teams, err
}
