package model

type SoftSkillCategory string

const (
	CategoryCommunication         SoftSkillCategory = "communication"
	CategoryLeadership            SoftSkillCategory = "leadership"
	CategoryProblemSolving        SoftSkillCategory = "problem_solving"
	CategoryEmotionalIntelligence SoftSkillCategory = "emotional_intelligence"
	CategoryTeamwork              SoftSkillCategory = "teamwork"
)

// SoftSkill 软技能目录（只读参考数据，由种子数据创建）
// swagger:model SoftSkill
type SoftSkill struct {
	BaseModel
	Name        string            `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string            `gorm:"size:500" json:"description"`
	Category    SoftSkillCategory `gorm:"size:50;index" json:"category"`
	IconName    string            `gorm:"size:50" json:"iconName"`
	ColorTheme  string            `gorm:"size:20" json:"colorTheme"`
	IsActive    bool              `gorm:"default:true" json:"isActive"`
}

func (SoftSkill) TableName() string {
	return "soft_skills"
}
