package repository

import (
	"career_agent_backend/internal/model"
	"career_agent_backend/internal/util"
	"errors"
	"strings"
	"testing"
	"time"
)

func userMsg(content string) model.ChatMessage {
	return model.ChatMessage{Role: model.RoleUser, Content: content, Timestamp: time.Now()}
}

func agentMsg(content string) model.ChatMessage {
	return model.ChatMessage{Role: model.RoleAgent, Content: content, AgentName: "Chat", Timestamp: time.Now()}
}

func TestCreateSessionBecomesActive(t *testing.T) {
	repo := NewSessionRepository(newTestDB(t))

	created, err := repo.Create("")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Title != model.DefaultSessionTitle {
		t.Errorf("title = %q", created.Title)
	}

	active, err := repo.Active()
	if err != nil {
		t.Fatalf("active: %v", err)
	}
	if active.ID != created.ID {
		t.Errorf("active = %s, want the new session %s", active.ID, created.ID)
	}

	// 种子的Welcome Chat不再是当前会话
	sessions, _ := repo.List()
	activeCount := 0
	for _, s := range sessions {
		if s.IsActive {
			activeCount++
		}
	}
	if activeCount != 1 {
		t.Errorf("active sessions = %d, want exactly 1", activeCount)
	}
}

func TestAppendMessageRetitleFirstUserMessage(t *testing.T) {
	repo := NewSessionRepository(newTestDB(t))
	session, _ := repo.Create("")

	updated, err := repo.AppendMessage(session.ID, userMsg("Find me remote golang jobs please"))
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if updated.Title != "Find me remote golang jobs please" {
		t.Errorf("title = %q", updated.Title)
	}
}

func TestAppendMessageRetitleAfterWelcome(t *testing.T) {
	repo := NewSessionRepository(newTestDB(t))
	session, _ := repo.Create("")

	// 欢迎语在前，第二条的用户消息仍然触发改标题
	if _, err := repo.AppendMessage(session.ID, agentMsg("Welcome!")); err != nil {
		t.Fatalf("append welcome: %v", err)
	}
	updated, err := repo.AppendMessage(session.ID, userMsg("help with my resume"))
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if updated.Title != "help with my resume" {
		t.Errorf("title = %q", updated.Title)
	}
}

func TestAppendMessageLongTitleTruncated(t *testing.T) {
	repo := NewSessionRepository(newTestDB(t))
	session, _ := repo.Create("")

	long := strings.Repeat("x", 80)
	updated, _ := repo.AppendMessage(session.ID, userMsg(long))
	if updated.Title != strings.Repeat("x", 50)+"..." {
		t.Errorf("title = %q", updated.Title)
	}
}

func TestAppendMessageKeepsCustomTitle(t *testing.T) {
	repo := NewSessionRepository(newTestDB(t))
	session, _ := repo.Create("")

	repo.AppendMessage(session.ID, userMsg("first"))
	updated, _ := repo.AppendMessage(session.ID, userMsg("second"))
	if updated.Title != "first" {
		t.Errorf("later messages must not retitle, got %q", updated.Title)
	}
}

func TestAppendMessageUnknownSession(t *testing.T) {
	repo := NewSessionRepository(newTestDB(t))
	if _, err := repo.AppendMessage("missing", userMsg("hi")); !errors.Is(err, util.ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestDeleteLastSessionRefused(t *testing.T) {
	repo := NewSessionRepository(newTestDB(t))

	// 只有种子的Welcome Chat
	sessions, _ := repo.List()
	if len(sessions) != 1 {
		t.Fatalf("expected single seeded session, got %d", len(sessions))
	}
	if err := repo.Delete(sessions[0].ID); !errors.Is(err, util.ErrLastSession) {
		t.Errorf("err = %v, want ErrLastSession", err)
	}
}

func TestDeleteActiveSessionMovesPointer(t *testing.T) {
	repo := NewSessionRepository(newTestDB(t))
	second, _ := repo.Create("")

	if err := repo.Delete(second.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	active, err := repo.Active()
	if err != nil {
		t.Fatalf("active: %v", err)
	}
	if active.ID == second.ID {
		t.Error("deleted session still active")
	}
	if active.Title != "Welcome Chat" {
		t.Errorf("pointer should move to remaining session, got %q", active.Title)
	}
}

func TestSwitchSession(t *testing.T) {
	repo := NewSessionRepository(newTestDB(t))
	sessions, _ := repo.List()
	welcome := sessions[0]
	repo.Create("")

	if err := repo.Switch(welcome.ID); err != nil {
		t.Fatalf("switch: %v", err)
	}
	active, _ := repo.Active()
	if active.ID != welcome.ID {
		t.Errorf("active = %s, want %s", active.ID, welcome.ID)
	}

	if err := repo.Switch("missing"); !errors.Is(err, util.ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
}
