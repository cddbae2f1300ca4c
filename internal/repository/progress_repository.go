package repository

import (
	"errors"

	"soft_skill_backend/internal/model"
	"soft_skill_backend/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// FindForUpdate 在事务内加行锁读取，序列化同一 (user, skill) 的重算。
// sqlite 不支持 FOR UPDATE（事务本身已持库级写锁），只对 mysql 加锁子句。
func (r *ProgressRepository) FindForUpdate(tx *gorm.DB, userID string, skillID uint) (*model.SkillProgress, error) {
	q := tx.Where("user_id = ? AND soft_skill_id = ?", userID, skillID)
	if tx.Dialector.Name() == "mysql" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var p model.SkillProgress
	err := q.First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProgressRepository) Save(tx *gorm.DB, progress *model.SkillProgress) error {
	return tx.Save(progress).Error
}

func (r *ProgressRepository) FindByUser(userID string) ([]model.SkillProgress, error) {
	var rows []model.SkillProgress
	err := r.DB.Where("user_id = ?", userID).Order("soft_skill_id").Find(&rows).Error
	return rows, err
}

func (r *ProgressRepository) FindByUserAndSkill(userID string, skillID uint) (*model.SkillProgress, error) {
	var p model.SkillProgress
	err := r.DB.Where("user_id = ? AND soft_skill_id = ?", userID, skillID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrProgressNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
