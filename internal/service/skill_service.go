package service

import (
	"career_agent_backend/internal/model"
	"career_agent_backend/internal/repository"
	"career_agent_backend/pkg/logger"
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// SkillRecommendation 技能差距分析里的单条学习建议
type SkillRecommendation struct {
	Skill    string `json:"skill"`
	Resource string `json:"resource"`
	Type     string `json:"type"`
}

// SkillGapAdvice 技能差距分析的完整结果
type SkillGapAdvice struct {
	MissingSkills   []string              `json:"missing_skills"`
	Recommendations []SkillRecommendation `json:"recommendations"`
	Message         string                `json:"message"`
}

// SkillService 技能差距分析和技能测验生成
type SkillService struct {
	AI       *AIService
	Profiles *repository.ProfileRepository
	Tests    *repository.SkillTestRepository
}

func NewSkillService(ai *AIService, profiles *repository.ProfileRepository, tests *repository.SkillTestRepository) *SkillService {
	return &SkillService{AI: ai, Profiles: profiles, Tests: tests}
}

// GenerateQuestions 为指定技能生成5道选择题。模型失败时退回
// 一道占位题，保证测验总是可用。
func (s *SkillService) GenerateQuestions(ctx context.Context, skill, difficulty string) []model.TestQuestion {
	prompt := fmt.Sprintf(`Create 5 multiple-choice questions to test knowledge of: %s
Difficulty: %s

Include a mix of:
- Conceptual questions
- Practical application questions
- Best practices

Return JSON format (array of questions):
[
    {
        "id": 1,
        "question": "What is...?",
        "options": ["Option A", "Option B", "Option C", "Option D"],
        "correct_answer": "Option A",
        "explanation": "Detailed explanation..."
    }
]`, skill, difficulty)

	var questions []model.TestQuestion
	if err := s.AI.GenerateJSON(ctx, "", prompt, &questions); err != nil || len(questions) == 0 {
		logger.Log.Warn("test generation failed, using placeholder", zap.String("skill", skill), zap.Error(err))
		return []model.TestQuestion{
			{
				ID:            1,
				Question:      fmt.Sprintf("What is the primary use of %s?", skill),
				Options:       []string{"Web Development", "Data Analysis", "System Administration", "All of the above"},
				CorrectAnswer: "All of the above",
				Explanation:   fmt.Sprintf("%s is a versatile technology.", skill),
			},
		}
	}
	return questions
}

// CreateTest 生成并保存一套技能测验，jobIDs 关联要求该技能的职位
func (s *SkillService) CreateTest(ctx context.Context, skill, difficulty string, jobIDs []string) (*model.SkillTest, error) {
	questions := s.GenerateQuestions(ctx, skill, difficulty)
	test := &model.SkillTest{
		ID:            model.ShortID(),
		SkillName:     skill,
		Difficulty:    difficulty,
		Questions:     questions,
		JobRelatedIDs: jobIDs,
	}
	if err := s.Tests.Create(test); err != nil {
		return nil, err
	}
	return test, nil
}

// AnalyzeGap 分析当前技能与目标角色的差距。推荐出的技能会记入
// learned_skills 账本，下次分析不再重复推荐。
func (s *SkillService) AnalyzeGap(ctx context.Context, currentSkills []string, desiredRole string) *SkillGapAdvice {
	var learned []string
	if profile, err := s.Profiles.Get(); err == nil {
		learned = profile.LearnedSkills()
	}

	known := map[string]bool{}
	allSkills := []string{}
	for _, sk := range append(append([]string{}, currentSkills...), learned...) {
		if !known[sk] {
			known[sk] = true
			allSkills = append(allSkills, sk)
		}
	}

	currentDesc := "Nothing specified"
	if len(allSkills) > 0 {
		currentDesc = strings.Join(allSkills, ", ")
	}
	learnedDesc := "Just starting"
	if len(learned) > 0 {
		learnedDesc = strings.Join(learned, ", ")
	}

	prompt := fmt.Sprintf(`Act as a career coach.
User wants to be a: %s
User currently knows: %s
User has been learning: %s

Identify 3 critical missing skills for this role that the user hasn't learned yet.
For each skill, provide a specific learning resource URL (official docs or popular tutorials).

Return JSON format:
{
    "missing_skills": ["Skill1", "Skill2"],
    "recommendations": [
        {"skill": "Skill1", "resource": "url", "type": "Documentation"},
        {"skill": "Skill2", "resource": "url", "type": "Course"}
    ],
    "message": "Encouraging advice..."
}`, desiredRole, currentDesc, learnedDesc)

	var advice SkillGapAdvice
	if err := s.AI.GenerateJSON(ctx, "", prompt, &advice); err != nil {
		logger.Log.Warn("skill gap analysis failed, using fallback advice", zap.Error(err))
		return &SkillGapAdvice{
			MissingSkills: []string{"Python", "React"},
			Recommendations: []SkillRecommendation{
				{Skill: "Python", Resource: "https://docs.python.org", Type: "Documentation"},
			},
			Message: "Keep learning!",
		}
	}

	for _, rec := range advice.Recommendations {
		if err := s.Profiles.AddLearnedSkill(rec.Skill); err != nil {
			logger.Log.Warn("failed to record learned skill", zap.String("skill", rec.Skill), zap.Error(err))
		}
	}
	return &advice
}

// DeriveGaps 求职位要求与用户技能的差集，结果按字典序排列
// 保证每次推导顺序一致
func DeriveGaps(jobs []model.Job, userSkills []string) []string {
	have := map[string]bool{}
	for _, sk := range userSkills {
		have[sk] = true
	}

	seen := map[string]bool{}
	var gaps []string
	for _, job := range jobs {
		for _, req := range job.Requirements {
			if !have[req] && !seen[req] {
				seen[req] = true
				gaps = append(gaps, req)
			}
		}
	}
	sort.Strings(gaps)
	return gaps
}
