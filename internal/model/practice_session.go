package model

import "time"

type PracticeStatus string

const (
	// pending -> completed，只允许这一种迁移且只发生一次
	PracticeStatusPending   PracticeStatus = "pending"
	PracticeStatusCompleted PracticeStatus = "completed"
)

// PracticeSession 一次练习会话。pending 阶段仅有会话标识与起始时间，
// completed 阶段才会写入提交文本、用时、评分与积分（指针字段在 pending 时为空）。
// swagger:model PracticeSession
type PracticeSession struct {
	BaseModel
	SessionID   string         `gorm:"size:36;uniqueIndex;not null" json:"sessionId"`
	UserID      string         `gorm:"size:100;index:idx_user_skill" json:"userId"`
	SoftSkillID uint           `gorm:"index:idx_user_skill;type:bigint unsigned;not null" json:"softSkillId"`
	ScenarioID  uint           `gorm:"index;type:bigint unsigned;not null" json:"scenarioId"`
	Status      PracticeStatus `gorm:"size:20;index;default:pending" json:"status"`
	StartedAt   time.Time      `json:"startedAt"`

	UserInput       *string    `gorm:"type:text" json:"userInput,omitempty"`
	DurationSeconds *int       `json:"durationSeconds,omitempty"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`

	ClarityScore       *int     `json:"clarityScore,omitempty"`
	EmpathyScore       *int     `json:"empathyScore,omitempty"`
	AssertivenessScore *int     `json:"assertivenessScore,omitempty"`
	ListeningScore     *int     `json:"listeningScore,omitempty"`
	ConfidenceScore    *int     `json:"confidenceScore,omitempty"`
	OverallScore       *float64 `json:"overallScore,omitempty"`
	PointsEarned       float64  `gorm:"default:0" json:"pointsEarned"`
}

func (PracticeSession) TableName() string {
	return "practice_tracking"
}
