package service

import (
	"encoding/json"
	"time"

	"soft_skill_backend/internal/model"
	"soft_skill_backend/internal/repository"
	"soft_skill_backend/internal/scoring"
	"soft_skill_backend/internal/util"

	"gorm.io/gorm"
)

// ProgressService 进度聚合器。进度行是物化视图：每次重算都从已完成会话
// 全量推导，从不做增量计数，保证与历史记录永不漂移。
type ProgressService struct {
	ProgressRepo *repository.ProgressRepository
	PracticeRepo *repository.PracticeRepository
	SkillRepo    *repository.SoftSkillRepository
	DB           *gorm.DB
}

func NewProgressService(progressRepo *repository.ProgressRepository, practiceRepo *repository.PracticeRepository, skillRepo *repository.SoftSkillRepository, db *gorm.DB) *ProgressService {
	return &ProgressService{
		ProgressRepo: progressRepo,
		PracticeRepo: practiceRepo,
		SkillRepo:    skillRepo,
		DB:           db,
	}
}

// RecomputeTx 在调用方事务内重算 (user, skill) 的进度行并写回。
// 进度行通过行锁串行化，避免两次完成交错导致的丢失更新。
func (s *ProgressService) RecomputeTx(tx *gorm.DB, userID string, skillID uint) (*model.SkillProgress, error) {
	progress, err := s.ProgressRepo.FindForUpdate(tx, userID, skillID)
	if err != nil {
		return nil, err
	}
	if progress == nil {
		progress = &model.SkillProgress{UserID: userID, SoftSkillID: skillID}
	}

	sessions, err := s.PracticeRepo.FindByUserAndSkill(tx, userID, skillID)
	if err != nil {
		return nil, err
	}

	var completed []model.PracticeSession
	for _, p := range sessions {
		if p.Status == model.PracticeStatusCompleted {
			completed = append(completed, p)
		}
	}

	progress.TotalPractices = len(sessions)
	progress.CompletedPractices = len(completed)
	progress.ProgressPercentage = scoring.ProgressPercentage(len(completed))

	var totalPoints, scoreSum float64
	var scoreCount int
	var bestClarity, bestEmpathy, bestAssertiveness, bestListening, bestConfidence *int
	var firstAt, lastAt *time.Time

	maxInt := func(cur *int, v *int) *int {
		if v == nil {
			return cur
		}
		if cur == nil || *v > *cur {
			val := *v
			return &val
		}
		return cur
	}

	for i := range completed {
		p := &completed[i]
		totalPoints += p.PointsEarned
		if p.OverallScore != nil {
			scoreSum += *p.OverallScore
			scoreCount++
		}
		bestClarity = maxInt(bestClarity, p.ClarityScore)
		bestEmpathy = maxInt(bestEmpathy, p.EmpathyScore)
		bestAssertiveness = maxInt(bestAssertiveness, p.AssertivenessScore)
		bestListening = maxInt(bestListening, p.ListeningScore)
		bestConfidence = maxInt(bestConfidence, p.ConfidenceScore)
		if p.CompletedAt != nil && (lastAt == nil || p.CompletedAt.After(*lastAt)) {
			t := *p.CompletedAt
			lastAt = &t
		}
	}

	for i := range sessions {
		p := &sessions[i]
		if firstAt == nil || p.StartedAt.Before(*firstAt) {
			t := p.StartedAt
			firstAt = &t
		}
	}

	progress.TotalPoints = totalPoints
	if scoreCount > 0 {
		avg := scoreSum / float64(scoreCount)
		progress.AverageScore = &avg
	} else {
		progress.AverageScore = nil
	}
	progress.BestClarityScore = bestClarity
	progress.BestEmpathyScore = bestEmpathy
	progress.BestAssertivenessScore = bestAssertiveness
	progress.BestListeningScore = bestListening
	progress.BestConfidenceScore = bestConfidence
	progress.FirstPracticeAt = firstAt
	progress.LastPracticeAt = lastAt

	if err := s.ProgressRepo.Save(tx, progress); err != nil {
		return nil, err
	}
	return progress, nil
}

// Recompute 独立入口：自带事务的重算（用于线下修正后的重建）
func (s *ProgressService) Recompute(userID string, skillID uint) (*model.SkillProgress, error) {
	var result *model.SkillProgress
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		p, err := s.RecomputeTx(tx, userID, skillID)
		if err != nil {
			return err
		}
		result = p
		return nil
	})
	return result, err
}

type SkillProgressDetail struct {
	SoftSkill model.SoftSkill     `json:"softSkill"`
	Metrics   model.SkillProgress `json:"metrics"`
}

type UserProgressSummary struct {
	UserID                  string                `json:"userId"`
	TotalPoints             float64               `json:"totalPoints"`
	TotalCompletedPractices int                   `json:"totalCompletedPractices"`
	SkillsProgress          []SkillProgressDetail `json:"skillsProgress"`
	ImprovementAreas        []string              `json:"improvementAreas"`
}

// GetUserProgress 用户全量进度汇总。没有任何已完成练习时返回 ErrProgressNotFound，
// 这是刻意选择的策略（而非返回全零记录），测试里有显式断言。
func (s *ProgressService) GetUserProgress(userID string) (*UserProgressSummary, error) {
	rows, err := s.ProgressRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}

	summary := &UserProgressSummary{
		UserID:           userID,
		ImprovementAreas: []string{},
	}

	for _, row := range rows {
		summary.TotalPoints += row.TotalPoints
		summary.TotalCompletedPractices += row.CompletedPractices

		skill, err := s.SkillRepo.FindSkillByID(row.SoftSkillID)
		if err != nil {
			// 技能被下线不影响历史进度的展示
			skill = &model.SoftSkill{BaseModel: model.BaseModel{ID: row.SoftSkillID}}
		}
		summary.SkillsProgress = append(summary.SkillsProgress, SkillProgressDetail{
			SoftSkill: *skill,
			Metrics:   row,
		})
	}

	if summary.TotalCompletedPractices == 0 {
		return nil, util.ErrProgressNotFound
	}

	summary.ImprovementAreas = s.recentImprovementAreas(userID)
	return summary, nil
}

func (s *ProgressService) GetSkillProgress(userID string, skillID uint) (*SkillProgressDetail, error) {
	row, err := s.ProgressRepo.FindByUserAndSkill(userID, skillID)
	if err != nil {
		return nil, err
	}
	if row.CompletedPractices == 0 {
		return nil, util.ErrProgressNotFound
	}

	skill, err := s.SkillRepo.FindSkillByID(skillID)
	if err != nil {
		skill = &model.SoftSkill{BaseModel: model.BaseModel{ID: skillID}}
	}
	return &SkillProgressDetail{SoftSkill: *skill, Metrics: *row}, nil
}

// recentImprovementAreas 汇总近30天反馈中的待提升方向，去重后最多取5条
func (s *ProgressService) recentImprovementAreas(userID string) []string {
	since := time.Now().AddDate(0, 0, -30)
	feedbacks, err := s.PracticeRepo.FindRecentFeedback(userID, since, 10)
	if err != nil {
		return []string{}
	}

	seen := make(map[string]bool)
	areas := []string{}
	for _, f := range feedbacks {
		var list []string
		if err := json.Unmarshal([]byte(f.ImprovementAreas), &list); err != nil {
			continue
		}
		for _, a := range list {
			if seen[a] {
				continue
			}
			seen[a] = true
			areas = append(areas, a)
			if len(areas) >= 5 {
				return areas
			}
		}
	}
	return areas
}
