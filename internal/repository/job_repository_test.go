package repository

import (
	"career_agent_backend/internal/model"
	"career_agent_backend/internal/util"
	"errors"
	"testing"
	"time"
)

func TestAddJobsDedup(t *testing.T) {
	repo := NewJobRepository(newTestDB(t))

	batch := []model.Job{
		{ID: "1", Title: "Duplicate of seed", Company: "X"},
		{ID: "10", Title: "Go Developer", Company: "Acme"},
		{ID: "11", Title: "SRE", Company: "Acme"},
	}
	added, err := repo.AddJobs(batch)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if added != 2 {
		t.Errorf("added = %d, want 2", added)
	}

	total, _ := repo.CountAll()
	if total != 5 { // 3个种子 + 2个新增
		t.Errorf("total = %d, want 5", total)
	}

	// 再次入库同一批不产生新行
	added, err = repo.AddJobs(batch)
	if err != nil {
		t.Fatalf("re-add: %v", err)
	}
	if added != 0 {
		t.Errorf("re-added = %d, want 0", added)
	}

	job, err := repo.Get("10")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if job.Status != model.JobStatusSaved {
		t.Errorf("status = %q, want default %q", job.Status, model.JobStatusSaved)
	}
}

func TestMarkApplied(t *testing.T) {
	repo := NewJobRepository(newTestDB(t))

	job, err := repo.MarkApplied("1", "https://example.com/apply", "sent via portal")
	if err != nil {
		t.Fatalf("mark applied: %v", err)
	}
	if job.Status != model.JobStatusApplied {
		t.Errorf("status = %q", job.Status)
	}
	if job.ApplicationDetails[model.AppDetailLink] != "https://example.com/apply" {
		t.Errorf("link = %v", job.ApplicationDetails[model.AppDetailLink])
	}
	if job.ApplicationDetails[model.AppDetailAppliedDate] != time.Now().Format("2006-01-02") {
		t.Errorf("applied_date = %v", job.ApplicationDetails[model.AppDetailAppliedDate])
	}

	applied, _ := repo.CountApplied()
	if applied != 1 {
		t.Errorf("applied count = %d, want 1", applied)
	}

	if _, err := repo.MarkApplied("missing", "", ""); !errors.Is(err, util.ErrJobNotFound) {
		t.Errorf("err = %v, want ErrJobNotFound", err)
	}
}

func TestUpdateApplicationStatusRequiresApplied(t *testing.T) {
	repo := NewJobRepository(newTestDB(t))

	if _, err := repo.UpdateApplicationStatus("2", "Interview", ""); !errors.Is(err, util.ErrJobNotApplied) {
		t.Errorf("err = %v, want ErrJobNotApplied", err)
	}

	if _, err := repo.MarkApplied("2", "", ""); err != nil {
		t.Fatalf("mark applied: %v", err)
	}
	job, err := repo.UpdateApplicationStatus("2", "Interview", "phone screen on Friday")
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if job.Status != "Interview" {
		t.Errorf("status = %q", job.Status)
	}
	if job.ApplicationDetails[model.AppDetailStatus] != "Interview" {
		t.Errorf("details status = %v", job.ApplicationDetails[model.AppDetailStatus])
	}
	if job.ApplicationDetails[model.AppDetailNotes] != "phone screen on Friday" {
		t.Errorf("notes = %v", job.ApplicationDetails[model.AppDetailNotes])
	}
}

func TestAppliedByDay(t *testing.T) {
	repo := NewJobRepository(newTestDB(t))

	if _, err := repo.MarkApplied("1", "", ""); err != nil {
		t.Fatalf("mark applied: %v", err)
	}
	if _, err := repo.MarkApplied("3", "", ""); err != nil {
		t.Fatalf("mark applied: %v", err)
	}

	buckets, err := repo.AppliedByDay(7)
	if err != nil {
		t.Fatalf("applied by day: %v", err)
	}
	if len(buckets) != 7 {
		t.Fatalf("buckets = %d, want 7", len(buckets))
	}
	today := time.Now().Format("2006-01-02")
	if buckets[today] != 2 {
		t.Errorf("today's bucket = %d, want 2", buckets[today])
	}
	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	if buckets[yesterday] != 0 {
		t.Errorf("yesterday's bucket = %d, want 0", buckets[yesterday])
	}
}

func TestRecentTitles(t *testing.T) {
	repo := NewJobRepository(newTestDB(t))

	titles, err := repo.RecentTitles(2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(titles) != 2 {
		t.Errorf("titles = %d, want 2", len(titles))
	}
}
