package service

import (
	"career_agent_backend/internal/repository"
	"context"
	"errors"
	"testing"
)

func extractionAI(keywordsJSON string) *AIService {
	return newFakeAI(func(system, prompt string) (string, error) {
		return keywordsJSON, nil
	})
}

func TestCatalogFallbackKeywordAndLocation(t *testing.T) {
	db := newTestDB(t)
	profiles := repository.NewProfileRepository(db)
	ai := extractionAI(`{"keywords": ["python"], "location": "hyderabad"}`)

	svc := NewJobSearchService(ai, nil, profiles, false, 10)
	jobs, keywords := svc.Search(context.Background(), "Find python jobs in hyderabad")

	if len(keywords) != 1 || keywords[0] != "python" {
		t.Fatalf("keywords = %v, want [python]", keywords)
	}
	// 关键词命中 {1,2,5,6,8}，城市命中 {1,4,6,9}，并集共7条
	if len(jobs) != 7 {
		t.Fatalf("got %d jobs, want 7", len(jobs))
	}
	// 城市命中的排最前，按ID降序
	wantOrder := []string{"9", "6", "4", "1", "8", "5", "2"}
	for i, want := range wantOrder {
		if jobs[i].ID != want {
			t.Errorf("jobs[%d].ID = %s, want %s", i, jobs[i].ID, want)
		}
	}
	for _, job := range jobs[:4] {
		if job.Location != "Hyderabad" {
			t.Errorf("job %s location = %s, want Hyderabad", job.ID, job.Location)
		}
	}
}

func TestCatalogFallbackLocationOnlyTier(t *testing.T) {
	db := newTestDB(t)
	profiles := repository.NewProfileRepository(db)
	// 关键词一个都不命中，只靠城市+2加分入选
	ai := extractionAI(`{"keywords": ["cobol"], "location": "pune"}`)

	svc := NewJobSearchService(ai, nil, profiles, false, 10)
	jobs, _ := svc.Search(context.Background(), "cobol jobs in pune")

	if len(jobs) != 1 || jobs[0].ID != "7" {
		t.Fatalf("expected the single Pune job, got %v", jobs)
	}
}

func TestCatalogFallbackFirstThree(t *testing.T) {
	db := newTestDB(t)
	profiles := repository.NewProfileRepository(db)
	ai := extractionAI(`{"keywords": ["cobol"], "location": "Atlantis"}`)

	svc := NewJobSearchService(ai, nil, profiles, false, 10)
	jobs, _ := svc.Search(context.Background(), "cobol jobs in Atlantis")

	if len(jobs) != 3 {
		t.Fatalf("got %d jobs, want catalog first 3", len(jobs))
	}
	if jobs[0].ID != "1" || jobs[1].ID != "2" || jobs[2].ID != "3" {
		t.Errorf("unexpected fallback jobs: %s, %s, %s", jobs[0].ID, jobs[1].ID, jobs[2].ID)
	}
}

func TestExtractionFailureUsesWholeQuery(t *testing.T) {
	db := newTestDB(t)
	profiles := repository.NewProfileRepository(db)
	ai := newFakeAI(func(system, prompt string) (string, error) {
		return "", errors.New("model unavailable")
	})

	svc := NewJobSearchService(ai, nil, profiles, false, 10)
	_, keywords := svc.Search(context.Background(), "python backend")

	if len(keywords) != 1 || keywords[0] != "python backend" {
		t.Fatalf("keywords = %v, want the raw query", keywords)
	}
}

func TestWebJobsHyphenSplitAndRequirements(t *testing.T) {
	db := newTestDB(t)
	profiles := repository.NewProfileRepository(db)
	ai := extractionAI(`{"keywords": ["Go"], "location": "Berlin"}`)
	searcher := &fakeSearcher{results: []SearchResult{
		{Title: "Senior Go Engineer - Acme Corp", URL: "https://example.com/1", Snippet: "build services"},
		{Title: "Plain Title", URL: "", Snippet: ""},
	}}

	svc := NewJobSearchService(ai, searcher, profiles, true, 10)
	jobs, _ := svc.Search(context.Background(), "go jobs in berlin")

	if len(jobs) != 2 {
		t.Fatalf("got %d jobs, want 2", len(jobs))
	}
	if jobs[0].ID != "web-0" || jobs[1].ID != "web-1" {
		t.Errorf("synthetic ids wrong: %s, %s", jobs[0].ID, jobs[1].ID)
	}
	if jobs[0].Title != "Senior Go Engineer" || jobs[0].Company != "Acme Corp" {
		t.Errorf("hyphen split wrong: title=%q company=%q", jobs[0].Title, jobs[0].Company)
	}
	if jobs[1].Company != "Unknown Company" {
		t.Errorf("company without hyphen = %q", jobs[1].Company)
	}
	if len(jobs[0].Requirements) != 1 || jobs[0].Requirements[0] != "Go" {
		t.Errorf("requirements should mirror keywords, got %v", jobs[0].Requirements)
	}
	if jobs[1].ApplicationDetails["link"] != "#" {
		t.Errorf("missing url should fall back to #, got %v", jobs[1].ApplicationDetails["link"])
	}
}

func TestSearchPersistsPreferredLocation(t *testing.T) {
	db := newTestDB(t)
	profiles := repository.NewProfileRepository(db)
	ai := extractionAI(`{"keywords": ["python"], "location": "Chennai"}`)

	svc := NewJobSearchService(ai, nil, profiles, false, 10)
	svc.Search(context.Background(), "python jobs in chennai")

	profile, err := profiles.Get()
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if profile.PreferredLocation() != "Chennai" {
		t.Errorf("preferred location = %q, want Chennai", profile.PreferredLocation())
	}
}
