package repository

import (
	"career_agent_backend/internal/model"
	"career_agent_backend/internal/util"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type JobRepository struct {
	DB *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{DB: db}
}

// AddJobs 批量入库，按 ID 去重，返回实际新增数量
func (r *JobRepository) AddJobs(jobs []model.Job) (int, error) {
	added := 0
	for i := range jobs {
		var count int64
		if err := r.DB.Model(&model.Job{}).Where("id = ?", jobs[i].ID).Count(&count).Error; err != nil {
			return added, err
		}
		if count > 0 {
			continue
		}
		if jobs[i].Status == "" {
			jobs[i].Status = model.JobStatusSaved
		}
		if err := r.DB.Create(&jobs[i]).Error; err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}

func (r *JobRepository) List() ([]model.Job, error) {
	var jobs []model.Job
	err := r.DB.Order("id").Find(&jobs).Error
	return jobs, err
}

func (r *JobRepository) Get(id string) (*model.Job, error) {
	var job model.Job
	err := r.DB.Where("id = ?", id).First(&job).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrJobNotFound
	}
	return &job, err
}

// MarkApplied 记录投递：状态置为 Applied 并写入投递详情
func (r *JobRepository) MarkApplied(id, link, notes string) (*model.Job, error) {
	job, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	details := datatypes.JSONMap{
		model.AppDetailLink:        link,
		model.AppDetailAppliedDate: time.Now().Format("2006-01-02"),
		model.AppDetailStatus:      model.JobStatusApplied,
		model.AppDetailNotes:       notes,
	}
	err = r.DB.Model(job).Updates(map[string]interface{}{
		"status":              model.JobStatusApplied,
		"application_details": details,
	}).Error
	if err != nil {
		return nil, err
	}
	job.Status = model.JobStatusApplied
	job.ApplicationDetails = details
	return job, nil
}

// UpdateApplicationStatus 更新已投递职位的状态；未投递过的职位拒绝更新
func (r *JobRepository) UpdateApplicationStatus(id, status, notes string) (*model.Job, error) {
	job, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	if len(job.ApplicationDetails) == 0 {
		return nil, util.ErrJobNotApplied
	}
	job.ApplicationDetails[model.AppDetailStatus] = status
	if notes != "" {
		job.ApplicationDetails[model.AppDetailNotes] = notes
	}
	err = r.DB.Model(job).Updates(map[string]interface{}{
		"status":              status,
		"application_details": job.ApplicationDetails,
	}).Error
	if err != nil {
		return nil, err
	}
	job.Status = status
	return job, nil
}

func (r *JobRepository) CountAll() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Job{}).Count(&count).Error
	return count, err
}

func (r *JobRepository) CountApplied() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Job{}).Where("status = ?", model.JobStatusApplied).Count(&count).Error
	return count, err
}

// AppliedByDay 统计最近 days 天每天的投递数，applied_date 解析失败的记录跳过
func (r *JobRepository) AppliedByDay(days int) (map[string]int, error) {
	var jobs []model.Job
	if err := r.DB.Where("status = ?", model.JobStatusApplied).Find(&jobs).Error; err != nil {
		return nil, err
	}

	buckets := map[string]int{}
	today := time.Now()
	for i := days - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i).Format("2006-01-02")
		buckets[day] = 0
	}
	for _, job := range jobs {
		raw, ok := job.ApplicationDetails[model.AppDetailAppliedDate].(string)
		if !ok {
			continue
		}
		if _, err := time.Parse("2006-01-02", raw); err != nil {
			continue
		}
		if _, inWindow := buckets[raw]; inWindow {
			buckets[raw]++
		}
	}
	return buckets, nil
}

// RecentTitles 返回最新入库的 n 个职位标题
func (r *JobRepository) RecentTitles(n int) ([]string, error) {
	var jobs []model.Job
	if err := r.DB.Order("created_at desc").Limit(n).Find(&jobs).Error; err != nil {
		return nil, err
	}
	titles := make([]string, 0, len(jobs))
	for _, job := range jobs {
		titles = append(titles, job.Title)
	}
	return titles, nil
}
