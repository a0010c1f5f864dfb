package service

import (
	"career_agent_backend/internal/model"
	"career_agent_backend/internal/repository"
	"context"
	"fmt"
	"time"
)

// ChatService 会话管理和通用对话回复
type ChatService struct {
	AI       *AIService
	Sessions *repository.SessionRepository
}

func NewChatService(ai *AIService, sessions *repository.SessionRepository) *ChatService {
	return &ChatService{AI: ai, Sessions: sessions}
}

func (s *ChatService) CreateSession() (*model.ChatSession, error) {
	return s.Sessions.Create("")
}

func (s *ChatService) ListSessions() ([]model.ChatSession, error) {
	return s.Sessions.List()
}

func (s *ChatService) ActiveSession() (*model.ChatSession, error) {
	return s.Sessions.Active()
}

func (s *ChatService) ActivateSession(id string) (*model.ChatSession, error) {
	if err := s.Sessions.Switch(id); err != nil {
		return nil, err
	}
	return s.Sessions.Get(id)
}

func (s *ChatService) DeleteSession(id string) error {
	return s.Sessions.Delete(id)
}

// History 返回当前会话的全部消息
func (s *ChatService) History() ([]model.ChatMessage, error) {
	session, err := s.Sessions.Active()
	if err != nil {
		return nil, err
	}
	return session.Messages, nil
}

// AddUserMessage 把用户消息追加到当前会话并返回会话
func (s *ChatService) AddUserMessage(content string) (*model.ChatSession, error) {
	session, err := s.Sessions.Active()
	if err != nil {
		return nil, err
	}
	return s.Sessions.AppendMessage(session.ID, model.ChatMessage{
		Role:      model.RoleUser,
		Content:   content,
		Timestamp: time.Now(),
	})
}

// AddAgentMessage 把某个处理器的回复追加到指定会话
func (s *ChatService) AddAgentMessage(sessionID, agentName, content string) error {
	_, err := s.Sessions.AppendMessage(sessionID, model.ChatMessage{
		Role:      model.RoleAgent,
		Content:   content,
		AgentName: agentName,
		Timestamp: time.Now(),
	})
	return err
}

// GeneralReply 通用对话回复，模型不可用时退到固定的引导语
func (s *ChatService) GeneralReply(ctx context.Context, message string) string {
	prompt := fmt.Sprintf(`User said: %q

Respond as a helpful AI career assistant. Be friendly and guide them on what you can help with:
- Finding jobs
- Skill development and learning paths
- Resume reviews
- Mock tests and skill assessments

Keep response concise (2-3 sentences).`, message)

	reply, err := s.AI.Chat(ctx, "", prompt)
	if err != nil || reply == "" {
		return "Hi! I can help you find jobs, develop skills, review your resume, or take skill tests. What would you like to do?"
	}
	return reply
}
