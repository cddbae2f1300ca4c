package database

import (
	"fmt"
	"log"

	"soft_skill_backend/internal/config"
	"soft_skill_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	SeedCatalog(db)

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.SoftSkill{},
		&model.SoftSkillScenario{},
		&model.PracticeSession{},
		&model.PracticeFeedback{},
		&model.SkillProgress{},
		&model.TrackingLog{},
	)
}

// SeedCatalog 技能与情景为只读目录数据，库里为空时写入默认目录
func SeedCatalog(db *gorm.DB) {
	var count int64
	db.Model(&model.SoftSkill{}).Count(&count)
	if count > 0 {
		return
	}

	type seedScenario struct {
		Title            string
		Description      string
		DifficultyLevel  int
		EstimatedMinutes int
		IsPopular        bool
	}

	seeds := []struct {
		Skill     model.SoftSkill
		Scenarios []seedScenario
	}{
		{
			Skill: model.SoftSkill{
				Name:        "冲突化解",
				Description: "学会分析复杂局面，寻找务实且有创造性的解决办法。",
				Category:    model.CategoryProblemSolving,
				IconName:    "conflict_resolution",
				ColorTheme:  "cyan",
				IsActive:    true,
			},
			Scenarios: []seedScenario{
				{
					Title:            "同事间的分歧",
					Description:      "你的两位同事因为项目方案的取舍争执不下，气氛越来越僵。作为同组成员，你会怎么介入？",
					DifficultyLevel:  3,
					EstimatedMinutes: 15,
					IsPopular:        true,
				},
				{
					Title:            "客户的强烈不满",
					Description:      "一位重要客户对交付延期非常不满，在会议上情绪激动。你需要当场回应并稳住局面。",
					DifficultyLevel:  4,
					EstimatedMinutes: 20,
				},
			},
		},
		{
			Skill: model.SoftSkill{
				Name:        "批判性思维",
				Description: "提升逻辑分析信息并做出明智决策的能力。",
				Category:    model.CategoryProblemSolving,
				IconName:    "critical_thinking",
				ColorTheme:  "purple",
				IsActive:    true,
			},
			Scenarios: []seedScenario{
				{
					Title:            "数据矛盾的报告",
					Description:      "两份报告对同一业务指标给出了相反的结论。向领导汇报前，你会如何判断该采信哪一份？",
					DifficultyLevel:  3,
					EstimatedMinutes: 15,
				},
			},
		},
		{
			Skill: model.SoftSkill{
				Name:        "同理心",
				Description: "通过真诚的关注与支持，增强理解他人情绪和立场的能力。",
				Category:    model.CategoryEmotionalIntelligence,
				IconName:    "empathy",
				ColorTheme:  "red",
				IsActive:    true,
			},
			Scenarios: []seedScenario{
				{
					Title:            "情绪低落的队友",
					Description:      "队友最近状态明显下滑，交付质量下降，似乎有心事。你想找他聊聊，第一句话怎么说？",
					DifficultyLevel:  2,
					EstimatedMinutes: 10,
					IsPopular:        true,
				},
			},
		},
		{
			Skill: model.SoftSkill{
				Name:        "沟通表达",
				Description: "在不同场合清晰、有效地表达自己的想法。",
				Category:    model.CategoryCommunication,
				IconName:    "communication",
				ColorTheme:  "blue",
				IsActive:    true,
			},
			Scenarios: []seedScenario{
				{
					Title:            "向非技术听众讲方案",
					Description:      "你需要向完全不懂技术的管理层解释一次系统故障的原因与补救计划，时间只有五分钟。",
					DifficultyLevel:  3,
					EstimatedMinutes: 10,
					IsPopular:        true,
				},
			},
		},
		{
			Skill: model.SoftSkill{
				Name:        "领导力",
				Description: "培养带领和激励团队达成共同目标的能力。",
				Category:    model.CategoryLeadership,
				IconName:    "leadership",
				ColorTheme:  "green",
				IsActive:    true,
			},
			Scenarios: []seedScenario{
				{
					Title:            "接手士气低迷的团队",
					Description:      "你刚被任命为一个连续两个季度未达标团队的负责人，第一次全员会议你准备说什么？",
					DifficultyLevel:  4,
					EstimatedMinutes: 20,
				},
			},
		},
		{
			Skill: model.SoftSkill{
				Name:        "团队协作",
				Description: "学会与他人高效协作，达成共同目标。",
				Category:    model.CategoryTeamwork,
				IconName:    "teamwork",
				ColorTheme:  "orange",
				IsActive:    true,
			},
			Scenarios: []seedScenario{
				{
					Title:            "跨部门资源争抢",
					Description:      "两个部门都需要你们组的支持，但人手只够支撑一边。你要在协调会上提出分配方案。",
					DifficultyLevel:  3,
					EstimatedMinutes: 15,
				},
			},
		},
	}

	for _, s := range seeds {
		skill := s.Skill
		if err := db.Create(&skill).Error; err != nil {
			log.Printf("seed skill %q failed: %v", skill.Name, err)
			continue
		}
		for _, sc := range s.Scenarios {
			scenario := model.SoftSkillScenario{
				SoftSkillID:      skill.ID,
				Title:            sc.Title,
				Description:      sc.Description,
				DifficultyLevel:  sc.DifficultyLevel,
				EstimatedMinutes: sc.EstimatedMinutes,
				IsPopular:        sc.IsPopular,
				IsActive:         true,
			}
			if err := db.Create(&scenario).Error; err != nil {
				log.Printf("seed scenario %q failed: %v", sc.Title, err)
			}
		}
	}

	log.Println("Catalog seed completed")
}
