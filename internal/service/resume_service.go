package service

import (
	"bytes"
	"career_agent_backend/internal/model"
	"career_agent_backend/internal/repository"
	"career_agent_backend/internal/util"
	"career_agent_backend/pkg/logger"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// ResumeService 简历评审：提取文本 → 模型打分 → 归档原件
type ResumeService struct {
	AI      *AIService
	Reviews *repository.ResumeRepository
	Storage *StorageService
}

func NewResumeService(ai *AIService, reviews *repository.ResumeRepository, storage *StorageService) *ResumeService {
	return &ResumeService{AI: ai, Reviews: reviews, Storage: storage}
}

type reviewOutput struct {
	Score    int      `json:"score"`
	Feedback []string `json:"feedback"`
}

// Review 用模型评审简历文本。模型失败时给确定的兜底评分，
// 评审永远有结果。
func (s *ResumeService) Review(ctx context.Context, resumeText string) *model.ResumeReview {
	prompt := fmt.Sprintf(`Act as an expert resume reviewer.
Review the following resume text:
%q

Provide a score out of 100.
Provide 3-5 specific, actionable bullet points of feedback.

Return JSON format:
{
    "score": 85,
    "feedback": ["Point 1", "Point 2"]
}`, resumeText)

	var out reviewOutput
	if err := s.AI.GenerateJSON(ctx, "", prompt, &out); err != nil {
		logger.Log.Warn("resume review failed, using fallback score", zap.Error(err))
		return &model.ResumeReview{
			Score:     50,
			Feedback:  datatypes.NewJSONSlice([]string{"Could not analyze resume. Please try again."}),
			CreatedAt: time.Now(),
		}
	}
	if len(out.Feedback) == 0 {
		out.Feedback = []string{"Add more details."}
	}
	if out.Score == 0 {
		out.Score = 70
	}
	return &model.ResumeReview{
		Score:     out.Score,
		Feedback:  datatypes.NewJSONSlice(out.Feedback),
		CreatedAt: time.Now(),
	}
}

// ExtractText 从上传内容里取出纯文本。PDF走解析器逐页提取，
// 其他格式按UTF-8文本处理。
func (s *ResumeService) ExtractText(filename string, content []byte) (string, error) {
	if strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
		if err != nil {
			return "", fmt.Errorf("pdf parse: %w", err)
		}
		var buf bytes.Buffer
		plain, err := reader.GetPlainText()
		if err != nil {
			return "", fmt.Errorf("pdf text extraction: %w", err)
		}
		if _, err := buf.ReadFrom(plain); err != nil {
			return "", err
		}
		text := buf.String()
		if strings.TrimSpace(text) == "" {
			return "", util.ErrEmptyResume
		}
		return text, nil
	}

	text := string(content)
	if strings.TrimSpace(text) == "" {
		return "", util.ErrEmptyResume
	}
	return text, nil
}

// ReviewUpload 处理上传的简历文件：提取文本、评审、归档原件、落库
func (s *ResumeService) ReviewUpload(ctx context.Context, filename string, content []byte, contentType string) (*model.ResumeReview, error) {
	text, err := s.ExtractText(filename, content)
	if err != nil {
		return nil, err
	}

	review := s.Review(ctx, text)

	// 原件归档失败不阻塞评审结果
	archiveName := fmt.Sprintf("resumes/%d_%s", time.Now().Unix(), filename)
	if url, err := s.Storage.Upload(ctx, archiveName, bytes.NewReader(content), int64(len(content)), contentType); err != nil {
		logger.Log.Warn("resume archive failed", zap.Error(err))
	} else {
		review.FileURL = url
	}

	if err := s.Reviews.Create(review); err != nil {
		return nil, err
	}
	return review, nil
}

// SaveReview 直接保存一条评审记录（聊天路径进来的文本评审）
func (s *ResumeService) SaveReview(review *model.ResumeReview) error {
	return s.Reviews.Create(review)
}
