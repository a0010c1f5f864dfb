package service

import (
	"career_agent_backend/internal/model"
	"career_agent_backend/internal/repository"
	"career_agent_backend/pkg/logger"
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// MockTest 即席生成的练习测验（不入库），响应数据直接回给前端
type MockTest struct {
	Topic     string               `json:"topic"`
	Questions []model.TestQuestion `json:"questions"`
}

// TestEvaluation 测验判分结果
type TestEvaluation struct {
	Score      int                    `json:"score"`
	Total      int                    `json:"total"`
	Percentage float64                `json:"percentage"`
	Feedback   []model.AnswerFeedback `json:"feedback"`
}

// LearningService 学习路径生成与测验判分
type LearningService struct {
	AI       *AIService
	Paths    *repository.LearningPathRepository
	Tests    *repository.SkillTestRepository
	Activity *repository.ActivityRepository
}

func NewLearningService(ai *AIService, paths *repository.LearningPathRepository, tests *repository.SkillTestRepository, activity *repository.ActivityRepository) *LearningService {
	return &LearningService{AI: ai, Paths: paths, Tests: tests, Activity: activity}
}

type generatedPath struct {
	Skill            string            `json:"skill"`
	DurationWeeks    int               `json:"duration_weeks"`
	Prerequisites    []string          `json:"prerequisites"`
	Milestones       []model.Milestone `json:"milestones"`
	PracticeProjects []string          `json:"practice_projects"`
	InterviewTips    []string          `json:"interview_tips"`
	Message          string            `json:"message"`
}

// CreateLearningPath 为某技能生成学习路径并入库。jobs 给模型提供
// 岗位上下文，生成失败时退到最小的"Getting Started"路径。
func (s *LearningService) CreateLearningPath(ctx context.Context, skill string, jobs []model.Job) (*model.LearningPath, error) {
	jobContext := ""
	if len(jobs) > 0 {
		limit := len(jobs)
		if limit > 3 {
			limit = 3
		}
		titles := make([]string, 0, limit)
		for _, job := range jobs[:limit] {
			titles = append(titles, job.Title)
		}
		jobContext = "\nThis skill is required for: " + strings.Join(titles, ", ")
	}

	prompt := fmt.Sprintf(`Create a comprehensive learning path for learning: %s
%s

Include:
1. Prerequisites (if any)
2. Core concepts to master
3. Learning resources (official docs, popular courses)
4. Practice projects
5. Interview preparation tips

Return JSON format:
{
    "skill": %q,
    "duration_weeks": 4,
    "prerequisites": ["Skill1", "Skill2"],
    "milestones": [
        {
            "week": 1,
            "title": "Fundamentals",
            "topics": ["Topic1", "Topic2"],
            "resources": [{"name": "Resource", "url": "https://..."}]
        }
    ],
    "practice_projects": ["Project1", "Project2"],
    "interview_tips": ["Tip1", "Tip2"]
}`, skill, jobContext, skill)

	var gen generatedPath
	if err := s.AI.GenerateJSON(ctx, "", prompt, &gen); err != nil {
		logger.Log.Warn("learning path generation failed, using fallback", zap.String("skill", skill), zap.Error(err))
		gen = generatedPath{
			Skill:         skill,
			DurationWeeks: 4,
			Milestones: []model.Milestone{
				{Week: 1, Title: "Getting Started", Topics: []string{fmt.Sprintf("Learn %s basics", skill)}},
			},
		}
	}
	if gen.Skill == "" {
		gen.Skill = skill
	}
	if gen.DurationWeeks <= 0 {
		gen.DurationWeeks = 4
	}

	jobIDs := make([]string, 0, len(jobs))
	for _, job := range jobs {
		jobIDs = append(jobIDs, job.ID)
	}

	path := &model.LearningPath{
		Skill:            gen.Skill,
		DurationWeeks:    gen.DurationWeeks,
		Prerequisites:    datatypes.NewJSONSlice(gen.Prerequisites),
		Milestones:       datatypes.NewJSONSlice(gen.Milestones),
		PracticeProjects: datatypes.NewJSONSlice(gen.PracticeProjects),
		InterviewTips:    datatypes.NewJSONSlice(gen.InterviewTips),
		Message:          gen.Message,
		AutoGenerated:    true,
		CreatedFromJobs:  datatypes.NewJSONSlice(jobIDs),
		CreatedAt:        time.Now(),
	}
	if err := s.Paths.Create(path); err != nil {
		return nil, err
	}
	return path, nil
}

// SaveAdvicePath 把技能差距分析的结果存成一条学习路径记录
func (s *LearningService) SaveAdvicePath(advice *SkillGapAdvice, role string) error {
	skill := role
	if len(advice.MissingSkills) > 0 {
		skill = advice.MissingSkills[0]
	}
	path := &model.LearningPath{
		Skill:         skill,
		DurationWeeks: 4,
		Prerequisites: datatypes.NewJSONSlice(advice.MissingSkills),
		Message:       advice.Message,
		CreatedAt:     time.Now(),
	}
	return s.Paths.Create(path)
}

// GenerateMockTest 即席生成一套练习测验，不入库
func (s *LearningService) GenerateMockTest(ctx context.Context, topic, difficulty string) (*MockTest, error) {
	prompt := fmt.Sprintf(`Create a multiple-choice mock test for: %s
Difficulty: %s
Number of questions: 5

Return JSON format:
{
    "topic": %q,
    "questions": [
        {
            "id": 1,
            "question": "Question text...",
            "options": ["Option A", "Option B", "Option C", "Option D"],
            "correct_answer": "Option A",
            "explanation": "Why this is correct..."
        }
    ]
}`, topic, difficulty, topic)

	var test MockTest
	if err := s.AI.GenerateJSON(ctx, "", prompt, &test); err != nil {
		return nil, err
	}
	if test.Topic == "" {
		test.Topic = topic
	}
	return &test, nil
}

// EvaluateTest 按题号精确比对答案判分，结果连同活动记录一起落库。
// 没有题目的测验得分按0处理。
func (s *LearningService) EvaluateTest(testID string, answers map[string]string, timeTakenSeconds int) (*TestEvaluation, error) {
	test, err := s.Tests.Get(testID)
	if err != nil {
		return nil, err
	}

	score := 0
	feedback := make([]model.AnswerFeedback, 0, len(test.Questions))
	for _, q := range test.Questions {
		qid := strconv.Itoa(q.ID)
		userAnswer := answers[qid]
		isCorrect := userAnswer == q.CorrectAnswer
		if isCorrect {
			score++
		}
		feedback = append(feedback, model.AnswerFeedback{
			QuestionID:    qid,
			Question:      q.Question,
			UserAnswer:    userAnswer,
			CorrectAnswer: q.CorrectAnswer,
			IsCorrect:     isCorrect,
			Explanation:   q.Explanation,
		})
	}

	total := len(test.Questions)
	percentage := 0.0
	if total > 0 {
		percentage = math.Round(float64(score)/float64(total)*100*100) / 100
	}

	answerMap := datatypes.JSONMap{}
	for k, v := range answers {
		answerMap[k] = v
	}
	result := &model.TestResult{
		TestID:           testID,
		Score:            score,
		TotalQuestions:   total,
		Answers:          answerMap,
		Feedback:         datatypes.NewJSONSlice(feedback),
		TimeTakenSeconds: timeTakenSeconds,
		TakenAt:          time.Now(),
	}
	if err := s.Tests.SaveResult(result); err != nil {
		return nil, err
	}
	if err := s.Activity.Log(model.ActivityTestTaken, map[string]interface{}{
		"test_id": testID,
		"score":   score,
		"total":   total,
	}); err != nil {
		logger.Log.Warn("failed to log test activity", zap.Error(err))
	}

	return &TestEvaluation{Score: score, Total: total, Percentage: percentage, Feedback: feedback}, nil
}
