package db

import (
	"time"

	"github.com/terraincognita07/datepick/internal/models"
	"gorm.io/gorm"
)

type SessionRepository struct {
	database *gorm.DB
}

func NewSessionRepository(database *gorm.DB) *SessionRepository {
	return &SessionRepository{database: database}
}

func (repo *SessionRepository) Create(session *models.PickerSession) error {
	return repo.database.Create(session).Error
}

func (repo *SessionRepository) FindByID(id string) (models.PickerSession, bool, error) {
	session := models.PickerSession{}
	result := repo.database.Where("id = ?", id).Limit(1).Find(&session)
	if result.Error != nil {
		return models.PickerSession{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.PickerSession{}, false, nil
	}
	return session, true, nil
}

func (repo *SessionRepository) Save(session *models.PickerSession) error {
	return repo.database.Save(session).Error
}

// DeleteOlderThan removes sessions not touched since cutoff and reports how
// many were deleted.
func (repo *SessionRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result := repo.database.Where("updated_at < ?", cutoff).Delete(&models.PickerSession{})
	return result.RowsAffected, result.Error
}

func (repo *SessionRepository) Count() (int64, error) {
	var count int64
	if err := repo.database.Model(&models.PickerSession{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
