package repository

import (
	"career_agent_backend/internal/model"
	"career_agent_backend/internal/util"
	"errors"
	"sync"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SessionRepository 管理聊天会话和“当前会话”指针。
// 指针切换和消息追加都在同一把锁内完成，并发的聊天请求
// 对同一会话是last-writer-wins（标题更新也是）。
type SessionRepository struct {
	DB *gorm.DB
	mu sync.Mutex
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) Create(title string) (*model.ChatSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if title == "" {
		title = model.DefaultSessionTitle
	}
	session := &model.ChatSession{
		ID:       model.ShortID(),
		Title:    title,
		Messages: datatypes.NewJSONSlice([]model.ChatMessage{}),
		IsActive: true,
	}

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.ChatSession{}).Where("is_active = ?", true).Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Create(session).Error
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// Active 返回当前会话。指针丢失时回落到最近更新的会话，
// 一个会话都没有时新建一个，保证至少存在一个会话。
func (r *SessionRepository) Active() (*model.ChatSession, error) {
	r.mu.Lock()
	var session model.ChatSession
	err := r.DB.Where("is_active = ?", true).First(&session).Error
	if err == nil {
		r.mu.Unlock()
		return &session, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		r.mu.Unlock()
		return nil, err
	}

	err = r.DB.Order("updated_at desc").First(&session).Error
	if err == nil {
		err = r.DB.Model(&model.ChatSession{}).Where("id = ?", session.ID).Update("is_active", true).Error
		session.IsActive = true
		r.mu.Unlock()
		return &session, err
	}
	r.mu.Unlock()
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return r.Create("")
}

func (r *SessionRepository) Get(id string) (*model.ChatSession, error) {
	var session model.ChatSession
	err := r.DB.Where("id = ?", id).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSessionNotFound
	}
	return &session, err
}

func (r *SessionRepository) List() ([]model.ChatSession, error) {
	var sessions []model.ChatSession
	err := r.DB.Order("updated_at desc").Find(&sessions).Error
	return sessions, err
}

func (r *SessionRepository) Switch(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	if err := r.DB.Model(&model.ChatSession{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return util.ErrSessionNotFound
	}

	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.ChatSession{}).Where("is_active = ?", true).Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Model(&model.ChatSession{}).Where("id = ?", id).Update("is_active", true).Error
	})
}

// Delete 删除会话；只剩一个会话时拒绝删除
func (r *SessionRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var total int64
	if err := r.DB.Model(&model.ChatSession{}).Count(&total).Error; err != nil {
		return err
	}
	if total <= 1 {
		return util.ErrLastSession
	}

	var session model.ChatSession
	if err := r.DB.Where("id = ?", id).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrSessionNotFound
		}
		return err
	}

	if err := r.DB.Delete(&model.ChatSession{}, "id = ?", id).Error; err != nil {
		return err
	}

	// 删掉的是当前会话时，把指针挪到最近的会话上
	if session.IsActive {
		var next model.ChatSession
		if err := r.DB.Order("updated_at desc").First(&next).Error; err != nil {
			return err
		}
		return r.DB.Model(&model.ChatSession{}).Where("id = ?", next.ID).Update("is_active", true).Error
	}
	return nil
}

// AppendMessage 把一条消息追加到指定会话，并按规则自动改标题：
// 首条用户消息（或欢迎语之后的第二条）把标题改成内容的50字符截断。
func (r *SessionRepository) AppendMessage(sessionID string, msg model.ChatMessage) (*model.ChatSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var session model.ChatSession
	if err := r.DB.Where("id = ?", sessionID).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSessionNotFound
		}
		return nil, err
	}

	session.Messages = append(session.Messages, msg)

	if msg.Role == model.RoleUser {
		if len(session.Messages) == 1 {
			session.Title = util.TruncateTitle(msg.Content)
		} else if len(session.Messages) == 2 && session.Title == model.DefaultSessionTitle {
			session.Title = util.TruncateTitle(msg.Content)
		}
	}

	err := r.DB.Model(&model.ChatSession{}).Where("id = ?", sessionID).
		Updates(map[string]interface{}{
			"messages": session.Messages,
			"title":    session.Title,
		}).Error
	return &session, err
}
