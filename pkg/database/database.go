package database

import (
	"career_agent_backend/internal/config"
	"career_agent_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/datatypes"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
			cfg.User,
			cfg.Password,
			cfg.Host,
			cfg.Port,
			cfg.DBName,
			cfg.Charset,
			cfg.ParseTime,
		)
		dialector = mysql.Open(dsn)
	default:
		path := cfg.Path
		if path == "" {
			path = "career_agent.db"
		}
		dialector = sqlite.Open(path)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.UserProfile{},
		&model.ChatSession{},
		&model.Job{},
		&model.LearningPath{},
		&model.SkillTest{},
		&model.TestResult{},
		&model.ResumeReview{},
		&model.Activity{},
	)
	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	if err := Seed(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Seed 填充默认数据：单行用户档案、默认会话、示例职位。
// 幂等，只在对应表为空时写入。
func Seed(db *gorm.DB) error {
	var profileCount int64
	db.Model(&model.UserProfile{}).Count(&profileCount)
	if profileCount == 0 {
		profile := &model.UserProfile{
			Name:      "Alex Johnson",
			Email:     "alex.johnson@example.com",
			Role:      "Senior Frontend Developer",
			Location:  "San Francisco, CA",
			SalaryMin: "$120,000",
			SalaryMax: "$160,000",
			Skills:    datatypes.NewJSONSlice([]string{"React", "TypeScript", "Node.js", "Tailwind CSS"}),
			Preferences: datatypes.JSONMap{
				model.PrefPreferredLocation: "Remote",
				model.PrefPreferredRole:     "Frontend Developer",
				model.PrefLearnedSkills:     []interface{}{},
			},
		}
		if err := db.Create(profile).Error; err != nil {
			return err
		}
	}

	var sessionCount int64
	db.Model(&model.ChatSession{}).Count(&sessionCount)
	if sessionCount == 0 {
		session := &model.ChatSession{
			ID:       model.ShortID(),
			Title:    "Welcome Chat",
			Messages: datatypes.NewJSONSlice([]model.ChatMessage{}),
			IsActive: true,
		}
		if err := db.Create(session).Error; err != nil {
			return err
		}
	}

	var jobCount int64
	db.Model(&model.Job{}).Count(&jobCount)
	if jobCount == 0 {
		sampleJobs := []model.Job{
			{
				ID:           "1",
				Title:        "Senior Frontend Engineer",
				Company:      "TechCorp",
				Description:  "We are looking for an experienced Frontend Engineer to join our team.",
				Requirements: datatypes.NewJSONSlice([]string{"React", "TypeScript", "Node.js"}),
				Location:     "Remote",
				SalaryRange:  "₹120,000 - ₹160,000",
				Status:       model.JobStatusSaved,
			},
			{
				ID:           "2",
				Title:        "Full Stack Developer",
				Company:      "StartupInc",
				Description:  "Join a fast-paced startup building the future of AI.",
				Requirements: datatypes.NewJSONSlice([]string{"Python", "React", "FastAPI"}),
				Location:     "San Francisco, CA",
				SalaryRange:  "₹140,000 - ₹180,000",
				Status:       model.JobStatusSaved,
			},
			{
				ID:           "3",
				Title:        "Product Designer",
				Company:      "DesignStudio",
				Description:  "Looking for a creative Product Designer with UI/UX skills.",
				Requirements: datatypes.NewJSONSlice([]string{"Figma", "Adobe XD", "HTML/CSS"}),
				Location:     "New York, NY",
				SalaryRange:  "₹100,000 - ₹140,000",
				Status:       model.JobStatusSaved,
			},
		}
		for _, job := range sampleJobs {
			if err := db.Create(&job).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
