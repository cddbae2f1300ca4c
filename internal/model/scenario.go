package model

// SoftSkillScenario 练习情景，隶属于某个软技能
// swagger:model SoftSkillScenario
type SoftSkillScenario struct {
	BaseModel
	SoftSkillID      uint   `gorm:"index;type:bigint unsigned;not null" json:"softSkillId"`
	Title            string `gorm:"size:200;not null" json:"title"`
	Description      string `gorm:"size:1000" json:"description"`
	DifficultyLevel  int    `gorm:"default:1" json:"difficultyLevel"` // 1=入门 5=专家
	EstimatedMinutes int    `gorm:"default:10" json:"estimatedMinutes"`
	IsPopular        bool   `gorm:"default:false" json:"isPopular"`
	IsActive         bool   `gorm:"default:true" json:"isActive"`
}

func (SoftSkillScenario) TableName() string {
	return "soft_skill_scenarios"
}
