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
	"gorm.io/datatypes"
)

// catalogJobs 内置职位目录，网页搜索不可用时的兜底数据源
var catalogJobs = []model.Job{
	{
		ID: "1", Title: "Senior Python Developer", Company: "TechCorp India",
		Description:  "We are looking for an experienced Python developer to join our backend team in Hyderabad.",
		Requirements: datatypes.NewJSONSlice([]string{"Python", "FastAPI", "SQL", "AWS"}),
		Location:     "Hyderabad", SalaryRange: "₹20L - ₹30L", Status: model.JobStatusSaved,
	},
	{
		ID: "2", Title: "Python Backend Engineer", Company: "DataSoft Solutions",
		Description:  "Build scalable backend systems with Python and Django.",
		Requirements: datatypes.NewJSONSlice([]string{"Python", "Django", "PostgreSQL", "Redis"}),
		Location:     "Bangalore", SalaryRange: "₹18L - ₹25L", Status: model.JobStatusSaved,
	},
	{
		ID: "3", Title: "Frontend Engineer", Company: "CreativeSolutions",
		Description:  "Build beautiful user interfaces with React in our Mumbai office.",
		Requirements: datatypes.NewJSONSlice([]string{"React", "JavaScript", "CSS", "Tailwind"}),
		Location:     "Mumbai", SalaryRange: "₹15L - ₹22L", Status: model.JobStatusSaved,
	},
	{
		ID: "4", Title: "React Developer", Company: "WebWorks India",
		Description:  "Join our frontend team to create amazing web experiences.",
		Requirements: datatypes.NewJSONSlice([]string{"React", "TypeScript", "Redux", "Next.js"}),
		Location:     "Hyderabad", SalaryRange: "₹12L - ₹18L", Status: model.JobStatusSaved,
	},
	{
		ID: "5", Title: "Data Scientist", Company: "DataGenius Analytics",
		Description:  "Analyze large datasets and build ML models for our Bangalore office.",
		Requirements: datatypes.NewJSONSlice([]string{"Python", "Pandas", "Scikit-learn", "SQL"}),
		Location:     "Bangalore", SalaryRange: "₹25L - ₹35L", Status: model.JobStatusSaved,
	},
	{
		ID: "6", Title: "ML Engineer", Company: "AI Innovations",
		Description:  "Work on cutting-edge machine learning projects.",
		Requirements: datatypes.NewJSONSlice([]string{"Python", "TensorFlow", "PyTorch", "MLOps"}),
		Location:     "Hyderabad", SalaryRange: "₹22L - ₹32L", Status: model.JobStatusSaved,
	},
	{
		ID: "7", Title: "DevOps Engineer", Company: "CloudSystems India",
		Description:  "Manage our cloud infrastructure and CI/CD pipelines.",
		Requirements: datatypes.NewJSONSlice([]string{"AWS", "Docker", "Kubernetes", "Terraform"}),
		Location:     "Pune", SalaryRange: "₹20L - ₹28L", Status: model.JobStatusSaved,
	},
	{
		ID: "8", Title: "Site Reliability Engineer", Company: "ScaleOps",
		Description:  "Ensure reliability and performance of our production systems.",
		Requirements: datatypes.NewJSONSlice([]string{"Linux", "Python", "Kubernetes", "Monitoring"}),
		Location:     "Bangalore", SalaryRange: "₹24L - ₹34L", Status: model.JobStatusSaved,
	},
	{
		ID: "9", Title: "Java Full Stack Developer", Company: "Enterprise Solutions Ltd",
		Description:  "Develop enterprise applications using Java and Spring Boot.",
		Requirements: datatypes.NewJSONSlice([]string{"Java", "Spring Boot", "MySQL", "Angular"}),
		Location:     "Hyderabad", SalaryRange: "₹16L - ₹24L", Status: model.JobStatusSaved,
	},
}

// JobSearchService 职位搜索：模型抽取检索参数 → 网页搜索 → 目录兜底
type JobSearchService struct {
	AI            *AIService
	Searcher      WebSearcher
	Profiles      *repository.ProfileRepository
	SearchEnabled bool
	MaxResults    int
}

func NewJobSearchService(ai *AIService, searcher WebSearcher, profiles *repository.ProfileRepository, searchEnabled bool, maxResults int) *JobSearchService {
	if maxResults <= 0 {
		maxResults = 10
	}
	return &JobSearchService{AI: ai, Searcher: searcher, Profiles: profiles, SearchEnabled: searchEnabled, MaxResults: maxResults}
}

type searchParams struct {
	Keywords []string `json:"keywords"`
	Location string   `json:"location"`
}

// extractParams 用模型从自然语言里抽取关键词和城市，失败时
// 整条查询当作唯一关键词
func (s *JobSearchService) extractParams(ctx context.Context, query string) ([]string, string) {
	prompt := fmt.Sprintf(`Extract job search parameters from this query: %q

Return JSON with:
- "keywords": list of technical skills/job titles
- "location": city name if mentioned (null if not specified)

Example: "Find Python jobs in Hyderabad" -> {"keywords": ["Python"], "location": "Hyderabad"}`, query)

	var params searchParams
	if err := s.AI.GenerateJSON(ctx, "", prompt, &params); err != nil {
		logger.Log.Warn("search parameter extraction failed", zap.Error(err))
		return []string{query}, ""
	}
	if len(params.Keywords) == 0 {
		params.Keywords = []string{query}
	}
	return params.Keywords, params.Location
}

// Search 执行整条搜索流水线。搜索本身不返回错误：任何一级失败
// 都降级到下一级数据源。
func (s *JobSearchService) Search(ctx context.Context, query string) ([]model.Job, []string) {
	keywords, location := s.extractParams(ctx, query)

	// 没提城市时用画像里的偏好城市；提了新城市就记住它
	profile, err := s.Profiles.Get()
	if location == "" && err == nil && profile != nil {
		location = profile.PreferredLocation()
	}
	if location != "" {
		if err := s.Profiles.SetPreference(model.PrefPreferredLocation, location); err != nil {
			logger.Log.Warn("failed to persist preferred location", zap.Error(err))
		}
	}

	searchQuery := strings.Join(keywords, " ") + " jobs"
	if location != "" {
		searchQuery += " in " + location
	}
	logger.Log.Info("job search", zap.String("query", searchQuery))

	if s.SearchEnabled && s.Searcher != nil {
		results, err := s.Searcher.Search(ctx, searchQuery, s.MaxResults)
		if err != nil {
			logger.Log.Warn("web search failed, falling back to catalog", zap.Error(err))
		} else if len(results) > 0 {
			return s.jobsFromWeb(results, keywords, location), keywords
		}
	}

	return s.catalogFallback(keywords, location), keywords
}

// jobsFromWeb 把搜索结果转成职位记录。标题里带连字符时按最后
// 一段猜公司名，检索关键词直接当作职位要求。
func (s *JobSearchService) jobsFromWeb(results []SearchResult, keywords []string, location string) []model.Job {
	jobs := make([]model.Job, 0, len(results))
	for i, r := range results {
		title := r.Title
		if title == "" {
			title = "Job Opening"
		}
		company := "Unknown Company"
		if strings.Contains(title, "-") {
			parts := strings.Split(title, "-")
			company = strings.TrimSpace(parts[len(parts)-1])
			title = strings.TrimSpace(strings.Join(parts[:len(parts)-1], "-"))
		}

		loc := location
		if loc == "" {
			loc = "Remote/Unknown"
		}
		link := r.URL
		if link == "" {
			link = "#"
		}

		jobs = append(jobs, model.Job{
			ID:                 fmt.Sprintf("web-%d", i),
			Title:              title,
			Company:            company,
			Description:        r.Snippet,
			Requirements:       datatypes.NewJSONSlice(keywords),
			Location:           loc,
			SalaryRange:        "Not specified",
			Status:             model.JobStatusSaved,
			ApplicationDetails: datatypes.JSONMap{model.AppDetailLink: link},
		})
	}
	return jobs
}

// catalogFallback 在内置目录里按关键词和城市打分筛选。
// 关键词命中+1，城市命中+2；有城市时按（城市命中, ID）降序。
// 全都不命中时退到城市过滤，再退到目录前3条。
func (s *JobSearchService) catalogFallback(keywords []string, location string) []model.Job {
	lowerLoc := strings.ToLower(location)

	var matched []model.Job
	for _, job := range catalogJobs {
		jobText := strings.ToLower(job.Title + " " + job.Description + " " + strings.Join(job.Requirements, " "))

		score := 0
		for _, kw := range keywords {
			if strings.Contains(jobText, strings.ToLower(kw)) {
				score++
			}
		}
		if location != "" && strings.Contains(strings.ToLower(job.Location), lowerLoc) {
			score += 2
		}
		if score > 0 {
			matched = append(matched, job)
		}
	}

	if location != "" {
		sort.SliceStable(matched, func(i, j int) bool {
			li := strings.Contains(strings.ToLower(matched[i].Location), lowerLoc)
			lj := strings.Contains(strings.ToLower(matched[j].Location), lowerLoc)
			if li != lj {
				return li
			}
			return matched[i].ID > matched[j].ID
		})
	}

	if len(matched) == 0 {
		if location != "" {
			for _, job := range catalogJobs {
				if strings.Contains(strings.ToLower(job.Location), lowerLoc) {
					matched = append(matched, job)
				}
			}
		}
		if len(matched) == 0 {
			matched = append(matched, catalogJobs[:3]...)
		}
	}
	return matched
}
