package model

const (
	EventPracticeStarted   = "practice_started"
	EventPracticeCompleted = "practice_completed"
	EventProgressUpdated   = "progress_updated"
)

// TrackingLog 练习生命周期的最小事件留痕
type TrackingLog struct {
	BaseModel
	UserID            string `gorm:"size:100;index" json:"userId"`
	PracticeSessionID string `gorm:"size:36;index" json:"practiceSessionId"`
	EventType         string `gorm:"size:50" json:"eventType"`
	EventData         string `gorm:"type:json" json:"eventData"`
}

func (TrackingLog) TableName() string {
	return "tracking_logs"
}
