package service

import (
	"career_agent_backend/internal/model"
	"career_agent_backend/internal/repository"
	"career_agent_backend/internal/util"
	"context"
	"errors"
	"testing"

	"gorm.io/datatypes"
)

func newLearningFixture(t *testing.T, ai *AIService) (*LearningService, *repository.SkillTestRepository) {
	t.Helper()
	db := newTestDB(t)
	paths := repository.NewLearningPathRepository(db)
	tests := repository.NewSkillTestRepository(db)
	activity := repository.NewActivityRepository(db)
	return NewLearningService(ai, paths, tests, activity), tests
}

func seedTest(t *testing.T, tests *repository.SkillTestRepository, questions []model.TestQuestion) string {
	t.Helper()
	st := &model.SkillTest{
		ID:        model.ShortID(),
		SkillName: "Go",
		Questions: datatypes.NewJSONSlice(questions),
	}
	if err := tests.Create(st); err != nil {
		t.Fatalf("seed test: %v", err)
	}
	return st.ID
}

func TestEvaluateTestScoring(t *testing.T) {
	ai := newFakeAI(func(system, prompt string) (string, error) { return "", errors.New("unused") })
	svc, tests := newLearningFixture(t, ai)

	id := seedTest(t, tests, []model.TestQuestion{
		{ID: 1, Question: "Q1", CorrectAnswer: "A", Explanation: "e1"},
		{ID: 2, Question: "Q2", CorrectAnswer: "B", Explanation: "e2"},
		{ID: 3, Question: "Q3", CorrectAnswer: "C", Explanation: "e3"},
	})

	result, err := svc.EvaluateTest(id, map[string]string{"1": "A", "2": "B", "3": "D"}, 42)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if result.Score != 2 || result.Total != 3 {
		t.Errorf("score = %d/%d, want 2/3", result.Score, result.Total)
	}
	if result.Percentage != 66.67 {
		t.Errorf("percentage = %v, want 66.67", result.Percentage)
	}
	if len(result.Feedback) != 3 {
		t.Fatalf("feedback entries = %d", len(result.Feedback))
	}
	if result.Feedback[2].IsCorrect || !result.Feedback[0].IsCorrect {
		t.Errorf("feedback correctness flags wrong: %+v", result.Feedback)
	}
}

func TestEvaluateTestAllCorrect(t *testing.T) {
	ai := newFakeAI(func(system, prompt string) (string, error) { return "", errors.New("unused") })
	svc, tests := newLearningFixture(t, ai)

	id := seedTest(t, tests, []model.TestQuestion{
		{ID: 1, CorrectAnswer: "A"},
		{ID: 2, CorrectAnswer: "B"},
	})

	result, err := svc.EvaluateTest(id, map[string]string{"1": "A", "2": "B"}, 0)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if result.Percentage != 100 {
		t.Errorf("percentage = %v, want 100", result.Percentage)
	}
}

func TestEvaluateTestNoQuestions(t *testing.T) {
	ai := newFakeAI(func(system, prompt string) (string, error) { return "", errors.New("unused") })
	svc, tests := newLearningFixture(t, ai)

	id := seedTest(t, tests, nil)

	result, err := svc.EvaluateTest(id, map[string]string{}, 0)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if result.Score != 0 || result.Total != 0 || result.Percentage != 0 {
		t.Errorf("empty test should score zero, got %+v", result)
	}
}

func TestEvaluateTestUnknownID(t *testing.T) {
	ai := newFakeAI(func(system, prompt string) (string, error) { return "", errors.New("unused") })
	svc, _ := newLearningFixture(t, ai)

	if _, err := svc.EvaluateTest("missing", nil, 0); !errors.Is(err, util.ErrTestNotFound) {
		t.Errorf("err = %v, want ErrTestNotFound", err)
	}
}

func TestEvaluateTestPersistsResult(t *testing.T) {
	ai := newFakeAI(func(system, prompt string) (string, error) { return "", errors.New("unused") })
	svc, tests := newLearningFixture(t, ai)

	id := seedTest(t, tests, []model.TestQuestion{{ID: 1, CorrectAnswer: "A"}})
	if _, err := svc.EvaluateTest(id, map[string]string{"1": "A"}, 30); err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	results, err := tests.Results(id)
	if err != nil {
		t.Fatalf("results: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("stored results = %d, want 1", len(results))
	}
	if results[0].Score != 1 || results[0].TimeTakenSeconds != 30 {
		t.Errorf("stored result = %+v", results[0])
	}
}

func TestCreateLearningPathFallback(t *testing.T) {
	ai := newFakeAI(func(system, prompt string) (string, error) { return "", errors.New("model down") })
	db := newTestDB(t)
	paths := repository.NewLearningPathRepository(db)
	tests := repository.NewSkillTestRepository(db)
	activity := repository.NewActivityRepository(db)
	svc := NewLearningService(ai, paths, tests, activity)

	path, err := svc.CreateLearningPath(context.Background(), "Terraform", nil)
	if err != nil {
		t.Fatalf("create path: %v", err)
	}
	if path.Skill != "Terraform" || path.DurationWeeks != 4 {
		t.Errorf("fallback path = %+v", path)
	}
	if len(path.Milestones) != 1 || path.Milestones[0].Title != "Getting Started" {
		t.Errorf("fallback milestone = %+v", path.Milestones)
	}
	if !path.AutoGenerated {
		t.Error("path should be marked auto generated")
	}
}
