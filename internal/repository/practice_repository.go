package repository

import (
	"errors"
	"time"

	"soft_skill_backend/internal/model"
	"soft_skill_backend/internal/util"

	"gorm.io/gorm"
)

type PracticeRepository struct {
	DB *gorm.DB
}

func NewPracticeRepository(db *gorm.DB) *PracticeRepository {
	return &PracticeRepository{DB: db}
}

func (r *PracticeRepository) Create(session *model.PracticeSession) error {
	return r.DB.Create(session).Error
}

func (r *PracticeRepository) FindBySessionID(token string) (*model.PracticeSession, error) {
	var s model.PracticeSession
	err := r.DB.Where("session_id = ?", token).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// CompletionUpdate 完成态一次性写入的字段集合
type CompletionUpdate struct {
	UserInput          string
	DurationSeconds    int
	ClarityScore       int
	EmpathyScore       int
	AssertivenessScore int
	ListeningScore     int
	ConfidenceScore    int
	OverallScore       float64
	PointsEarned       float64
	CompletedAt        time.Time
}

// CompletePending 带状态守卫的完成迁移：只在仍为 pending 时生效。
// 并发提交同一令牌时恰好一个 RowsAffected=1，其余返回 ErrSessionCompleted。
func (r *PracticeRepository) CompletePending(tx *gorm.DB, token string, upd CompletionUpdate) error {
	res := tx.Model(&model.PracticeSession{}).
		Where("session_id = ? AND status = ?", token, model.PracticeStatusPending).
		Updates(map[string]interface{}{
			"status":              model.PracticeStatusCompleted,
			"user_input":          upd.UserInput,
			"duration_seconds":    upd.DurationSeconds,
			"clarity_score":       upd.ClarityScore,
			"empathy_score":       upd.EmpathyScore,
			"assertiveness_score": upd.AssertivenessScore,
			"listening_score":     upd.ListeningScore,
			"confidence_score":    upd.ConfidenceScore,
			"overall_score":       upd.OverallScore,
			"points_earned":       upd.PointsEarned,
			"completed_at":        upd.CompletedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return util.ErrSessionCompleted
	}
	return nil
}

func (r *PracticeRepository) CreateFeedback(tx *gorm.DB, feedback *model.PracticeFeedback) error {
	return tx.Create(feedback).Error
}

func (r *PracticeRepository) FindFeedbackByPracticeID(practiceID uint) (*model.PracticeFeedback, error) {
	var f model.PracticeFeedback
	err := r.DB.Where("practice_id = ?", practiceID).First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *PracticeRepository) FindByUserAndSkill(tx *gorm.DB, userID string, skillID uint) ([]model.PracticeSession, error) {
	var sessions []model.PracticeSession
	err := tx.Where("user_id = ? AND soft_skill_id = ?", userID, skillID).Find(&sessions).Error
	return sessions, err
}

// FindRecentFeedback 取用户近期已完成练习的反馈，用于汇总待提升方向
func (r *PracticeRepository) FindRecentFeedback(userID string, since time.Time, limit int) ([]model.PracticeFeedback, error) {
	var feedbacks []model.PracticeFeedback
	err := r.DB.
		Joins("JOIN practice_tracking ON practice_tracking.id = feedback_practice.practice_id").
		Where("practice_tracking.user_id = ? AND practice_tracking.completed_at >= ?", userID, since).
		Order("practice_tracking.completed_at DESC").
		Limit(limit).
		Find(&feedbacks).Error
	return feedbacks, err
}
