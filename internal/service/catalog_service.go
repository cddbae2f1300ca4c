package service

import (
	"errors"

	"soft_skill_backend/internal/model"
	"soft_skill_backend/internal/repository"
	"soft_skill_backend/internal/util"
)

// CatalogService 技能/情景目录读取，可选叠加某用户的进度概览
type CatalogService struct {
	SkillRepo    *repository.SoftSkillRepository
	ProgressRepo *repository.ProgressRepository
}

func NewCatalogService(skillRepo *repository.SoftSkillRepository, progressRepo *repository.ProgressRepository) *CatalogService {
	return &CatalogService{
		SkillRepo:    skillRepo,
		ProgressRepo: progressRepo,
	}
}

type SoftSkillView struct {
	model.SoftSkill
	ProgressPercentage float64 `json:"progressPercentage"`
	TotalPoints        float64 `json:"totalPoints"`
}

func (s *CatalogService) ListSkills(userID string) ([]SoftSkillView, error) {
	skills, err := s.SkillRepo.FindActiveSkills()
	if err != nil {
		return nil, err
	}

	progressBySkill := map[uint]model.SkillProgress{}
	if userID != "" {
		rows, err := s.ProgressRepo.FindByUser(userID)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			progressBySkill[row.SoftSkillID] = row
		}
	}

	views := make([]SoftSkillView, 0, len(skills))
	for _, skill := range skills {
		v := SoftSkillView{SoftSkill: skill}
		if p, ok := progressBySkill[skill.ID]; ok {
			v.ProgressPercentage = p.ProgressPercentage
			v.TotalPoints = p.TotalPoints
		}
		views = append(views, v)
	}
	return views, nil
}

func (s *CatalogService) GetSkill(id uint, userID string) (*SoftSkillView, error) {
	skill, err := s.SkillRepo.FindSkillByID(id)
	if err != nil {
		return nil, err
	}

	view := &SoftSkillView{SoftSkill: *skill}
	if userID != "" {
		p, err := s.ProgressRepo.FindByUserAndSkill(userID, id)
		if err != nil && !errors.Is(err, util.ErrProgressNotFound) {
			return nil, err
		}
		if p != nil {
			view.ProgressPercentage = p.ProgressPercentage
			view.TotalPoints = p.TotalPoints
		}
	}
	return view, nil
}

func (s *CatalogService) ListScenarios(skillID uint, popularOnly bool) ([]model.SoftSkillScenario, error) {
	// 先确认技能存在且可用，再取情景
	if _, err := s.SkillRepo.FindSkillByID(skillID); err != nil {
		return nil, err
	}
	return s.SkillRepo.FindScenariosBySkill(skillID, popularOnly)
}
