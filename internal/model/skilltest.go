package model

import (
	"time"

	"gorm.io/datatypes"
)

// TestQuestion 单选题。不校验选项数量或正确答案是否在选项内，
// LLM返回什么存什么，调用方需要容忍畸形题目。
type TestQuestion struct {
	ID            int      `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

// SkillTest 技能测试，创建后不可变
// swagger:model SkillTest
type SkillTest struct {
	ID            string                            `gorm:"primaryKey;type:varchar(36)" json:"id"`
	SkillName     string                            `gorm:"size:100;index" json:"skill_name"`
	Difficulty    string                            `gorm:"size:50" json:"difficulty"`
	Questions     datatypes.JSONSlice[TestQuestion] `gorm:"type:json" json:"questions"`
	JobRelatedIDs datatypes.JSONSlice[string]       `gorm:"type:json" json:"job_related_ids"`
	CreatedAt     time.Time                         `json:"created_at"`
}

func (SkillTest) TableName() string {
	return "skill_tests"
}

// AnswerFeedback 每道题的判分反馈
type AnswerFeedback struct {
	QuestionID    string `json:"question_id"`
	Question      string `json:"question"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
	Explanation   string `json:"explanation"`
}

// TestResult 测试结果，追加写；同一测试可以有多条结果
// swagger:model TestResult
type TestResult struct {
	ID               uint                                `gorm:"primaryKey;autoIncrement" json:"id"`
	TestID           string                              `gorm:"index;type:varchar(36)" json:"test_id"`
	Score            int                                 `json:"score"`
	TotalQuestions   int                                 `json:"total_questions"`
	Answers          datatypes.JSONMap                   `gorm:"type:json" json:"answers"`
	Feedback         datatypes.JSONSlice[AnswerFeedback] `gorm:"type:json" json:"feedback"`
	TimeTakenSeconds int                                 `json:"time_taken_seconds"`
	TakenAt          time.Time                           `json:"taken_at"`
}

func (TestResult) TableName() string {
	return "test_results"
}
