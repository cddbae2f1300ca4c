package repository

import (
	"soft_skill_backend/internal/model"

	"gorm.io/gorm"
)

type TrackingLogRepository struct {
	DB *gorm.DB
}

func NewTrackingLogRepository(db *gorm.DB) *TrackingLogRepository {
	return &TrackingLogRepository{DB: db}
}

func (r *TrackingLogRepository) Create(log *model.TrackingLog) error {
	return r.DB.Create(log).Error
}

func (r *TrackingLogRepository) FindBySession(token string) ([]model.TrackingLog, error) {
	var logs []model.TrackingLog
	err := r.DB.Where("practice_session_id = ?", token).Order("id").Find(&logs).Error
	return logs, err
}
