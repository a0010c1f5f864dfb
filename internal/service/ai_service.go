package service

import (
	"bytes"
	"career_agent_backend/internal/config"
	"career_agent_backend/internal/util"
	"career_agent_backend/pkg/logger"
	"career_agent_backend/pkg/monitoring"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// CompletionClient 抽象模型补全调用，测试里用假实现替换真实HTTP客户端
type CompletionClient interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// OpenAICompatClient 调用OpenAI兼容的 /chat/completions 接口
type OpenAICompatClient struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

func NewOpenAICompatClient(cfg *config.AIConfig) *OpenAICompatClient {
	return &OpenAICompatClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		client:  &http.Client{Timeout: cfg.AITimeout()},
	}
}

type chatCompletionRequest struct {
	Model    string                  `json:"model"`
	Messages []chatCompletionMessage `json:"messages"`
}

type chatCompletionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatCompletionMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (c *OpenAICompatClient) Complete(ctx context.Context, system, prompt string) (string, error) {
	messages := []chatCompletionMessage{}
	if system != "" {
		messages = append(messages, chatCompletionMessage{Role: "system", Content: system})
	}
	messages = append(messages, chatCompletionMessage{Role: "user", Content: prompt})

	body, err := json.Marshal(chatCompletionRequest{Model: c.model, Messages: messages})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion service returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var parsed chatCompletionResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("invalid completion response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("completion service error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("completion response has no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

// AIService 是所有模型调用的统一入口，带超时和指标上报。
// 对话走 Chat，结构化输出走 GenerateJSON。
type AIService struct {
	Client  CompletionClient
	Timeout time.Duration
}

func NewAIService(cfg *config.AIConfig) *AIService {
	return &AIService{
		Client:  NewOpenAICompatClient(cfg),
		Timeout: cfg.AITimeout(),
	}
}

func (s *AIService) Chat(ctx context.Context, system, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	reply, err := s.Client.Complete(ctx, system, prompt)
	if err != nil {
		monitoring.CompletionCalls.WithLabelValues("chat", "error").Inc()
		logger.Log.Error("completion call failed", zap.Error(err))
		return "", err
	}
	monitoring.CompletionCalls.WithLabelValues("chat", "ok").Inc()
	return strings.TrimSpace(reply), nil
}

// GenerateJSON 要求模型输出JSON并解析到 out。模型经常把JSON包在
// markdown代码块里，解析前先剥掉围栏。
func (s *AIService) GenerateJSON(ctx context.Context, system, prompt string, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	reply, err := s.Client.Complete(ctx, system, prompt)
	if err != nil {
		monitoring.CompletionCalls.WithLabelValues("json", "error").Inc()
		logger.Log.Error("completion call failed", zap.Error(err))
		return err
	}

	cleaned := util.StripCodeFences(reply)
	if err := json.Unmarshal([]byte(cleaned), out); err != nil {
		monitoring.CompletionCalls.WithLabelValues("json", "error").Inc()
		snippet := cleaned
		if len(snippet) > 200 {
			snippet = snippet[:200]
		}
		logger.Log.Warn("completion returned malformed json",
			zap.Error(err),
			zap.String("raw", snippet))
		return fmt.Errorf("completion returned malformed json: %w", err)
	}
	monitoring.CompletionCalls.WithLabelValues("json", "ok").Inc()
	return nil
}
