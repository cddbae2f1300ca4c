package model

// PracticeFeedback 与已完成练习一一对应的反馈记录，创建后不可变
// swagger:model PracticeFeedback
type PracticeFeedback struct {
	BaseModel
	PracticeID uint `gorm:"uniqueIndex;type:bigint unsigned;not null" json:"practiceId"`

	OverallFeedback       string `gorm:"size:2000;not null" json:"overallFeedback"`
	ClarityFeedback       string `gorm:"size:500" json:"clarityFeedback,omitempty"`
	EmpathyFeedback       string `gorm:"size:500" json:"empathyFeedback,omitempty"`
	AssertivenessFeedback string `gorm:"size:500" json:"assertivenessFeedback,omitempty"`
	ListeningFeedback     string `gorm:"size:500" json:"listeningFeedback,omitempty"`
	ConfidenceFeedback    string `gorm:"size:500" json:"confidenceFeedback,omitempty"`

	// 待提升方向，JSON 数组字符串
	ImprovementAreas string `gorm:"type:json" json:"improvementAreas"`

	ModelUsed      string `gorm:"size:100" json:"modelUsed"`
	ResponseTimeMs *int   `json:"responseTimeMs,omitempty"`
}

func (PracticeFeedback) TableName() string {
	return "feedback_practice"
}
