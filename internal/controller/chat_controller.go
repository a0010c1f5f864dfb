package controller

import (
	"career_agent_backend/internal/service"
	"career_agent_backend/internal/util"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ChatController struct {
	Orchestrator *service.OrchestratorService
	ChatService  *service.ChatService
}

func NewChatController(orchestrator *service.OrchestratorService, chatService *service.ChatService) *ChatController {
	return &ChatController{Orchestrator: orchestrator, ChatService: chatService}
}

// ChatRequest 聊天请求
type ChatRequest struct {
	Message string                 `json:"message" binding:"required"`
	Context map[string]interface{} `json:"context"`
}

// @Summary 发送聊天消息
// @Description 处理用户消息：路由到职位搜索、技能建议、简历评审、测验生成或通用对话
// @Tags 聊天
// @Accept json
// @Produce json
// @Param request body ChatRequest true "用户消息"
// @Success 200 {object} service.AgentResult
// @Router /api/chat [post]
func (c *ChatController) Chat(ctx *gin.Context) {
	var req ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Orchestrator.ProcessMessage(ctx.Request.Context(), req.Message, req.Context)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// @Summary 获取当前会话历史
// @Description 返回当前激活会话的全部消息
// @Tags 聊天
// @Produce json
// @Success 200 {array} model.ChatMessage
// @Router /api/chat/history [get]
func (c *ChatController) History(ctx *gin.Context) {
	messages, err := c.ChatService.History()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, messages)
}

// @Summary 列出所有会话
// @Tags 聊天
// @Produce json
// @Success 200 {array} model.ChatSession
// @Router /api/chat/sessions [get]
func (c *ChatController) ListSessions(ctx *gin.Context) {
	sessions, err := c.ChatService.ListSessions()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, sessions)
}

// @Summary 新建会话
// @Description 新建会话并把它设为当前会话
// @Tags 聊天
// @Produce json
// @Success 200 {object} model.ChatSession
// @Router /api/chat/sessions [post]
func (c *ChatController) CreateSession(ctx *gin.Context) {
	session, err := c.ChatService.CreateSession()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, session)
}

// @Summary 切换当前会话
// @Tags 聊天
// @Produce json
// @Param session_id path string true "会话ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/chat/sessions/{session_id}/activate [put]
func (c *ChatController) ActivateSession(ctx *gin.Context) {
	session, err := c.ChatService.ActivateSession(ctx.Param("session_id"))
	if err != nil {
		if errors.Is(err, util.ErrSessionNotFound) {
			util.Error(ctx, http.StatusNotFound, "Session not found")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "activated", "session": session})
}

// @Summary 删除会话
// @Description 删除指定会话，最后一个会话不可删除
// @Tags 聊天
// @Produce json
// @Param session_id path string true "会话ID"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/chat/sessions/{session_id} [delete]
func (c *ChatController) DeleteSession(ctx *gin.Context) {
	err := c.ChatService.DeleteSession(ctx.Param("session_id"))
	if err != nil {
		if errors.Is(err, util.ErrLastSession) || errors.Is(err, util.ErrSessionNotFound) {
			util.BadRequest(ctx, "Cannot delete last session or session not found")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
