package repository

import (
	"errors"

	"soft_skill_backend/internal/model"
	"soft_skill_backend/internal/util"

	"gorm.io/gorm"
)

// SoftSkillRepository 技能/情景目录的只读查询
type SoftSkillRepository struct {
	DB *gorm.DB
}

func NewSoftSkillRepository(db *gorm.DB) *SoftSkillRepository {
	return &SoftSkillRepository{DB: db}
}

func (r *SoftSkillRepository) FindActiveSkills() ([]model.SoftSkill, error) {
	var skills []model.SoftSkill
	err := r.DB.Where("is_active = ?", true).Order("id").Find(&skills).Error
	return skills, err
}

func (r *SoftSkillRepository) FindSkillByID(id uint) (*model.SoftSkill, error) {
	var skill model.SoftSkill
	err := r.DB.First(&skill, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSkillNotFound
	}
	if err != nil {
		return nil, err
	}
	if !skill.IsActive {
		return nil, util.ErrSkillNotFound
	}
	return &skill, nil
}

func (r *SoftSkillRepository) FindScenarioByID(id uint) (*model.SoftSkillScenario, error) {
	var scenario model.SoftSkillScenario
	err := r.DB.First(&scenario, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrScenarioNotFound
	}
	if err != nil {
		return nil, err
	}
	if !scenario.IsActive {
		return nil, util.ErrScenarioNotFound
	}
	return &scenario, nil
}

func (r *SoftSkillRepository) FindScenariosBySkill(skillID uint, popularOnly bool) ([]model.SoftSkillScenario, error) {
	q := r.DB.Where("soft_skill_id = ? AND is_active = ?", skillID, true)
	if popularOnly {
		q = q.Where("is_popular = ?", true)
	}
	var scenarios []model.SoftSkillScenario
	err := q.Order("id").Find(&scenarios).Error
	return scenarios, err
}
