package model

import (
	"time"

	"gorm.io/datatypes"
)

// 消息角色
const (
	RoleUser  = "user"
	RoleAgent = "agent"
)

// DefaultSessionTitle 新会话的初始标题，首条用户消息会覆盖它
const DefaultSessionTitle = "New Chat"

// ChatMessage 会话内的一条消息，按顺序内嵌存储在会话行中
type ChatMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	AgentName string    `json:"agent_name,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatSession 聊天会话，消息以JSON列表内嵌（追加写）
// swagger:model ChatSession
type ChatSession struct {
	ID        string                           `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Title     string                           `gorm:"size:255" json:"title"`
	Messages  datatypes.JSONSlice[ChatMessage] `gorm:"type:json" json:"messages"`
	IsActive  bool                             `gorm:"default:false;index" json:"isActive"`
	CreatedAt time.Time                        `json:"createdAt"`
	UpdatedAt time.Time                        `json:"updatedAt"`
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}
