package model

import "time"

// SkillProgress (user, skill) 维度的进度物化视图。
// 它不是独立事实源：每次会话完成后由已完成练习全量重算，可随时重建。
// swagger:model SkillProgress
type SkillProgress struct {
	BaseModel
	UserID      string `gorm:"size:100;uniqueIndex:idx_progress_user_skill" json:"userId"`
	SoftSkillID uint   `gorm:"uniqueIndex:idx_progress_user_skill;type:bigint unsigned;not null" json:"softSkillId"`

	TotalPractices     int      `gorm:"default:0" json:"totalPractices"`
	CompletedPractices int      `gorm:"default:0" json:"completedPractices"`
	AverageScore       *float64 `json:"averageScore,omitempty"`
	ProgressPercentage float64  `gorm:"default:0" json:"progressPercentage"`
	TotalPoints        float64  `gorm:"default:0" json:"totalPoints"`

	BestClarityScore       *int `json:"bestClarityScore,omitempty"`
	BestEmpathyScore       *int `json:"bestEmpathyScore,omitempty"`
	BestAssertivenessScore *int `json:"bestAssertivenessScore,omitempty"`
	BestListeningScore     *int `json:"bestListeningScore,omitempty"`
	BestConfidenceScore    *int `json:"bestConfidenceScore,omitempty"`

	FirstPracticeAt *time.Time `json:"firstPracticeAt,omitempty"`
	LastPracticeAt  *time.Time `json:"lastPracticeAt,omitempty"`
}

func (SkillProgress) TableName() string {
	return "soft_skill_progress"
}
