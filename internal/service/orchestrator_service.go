package service

import (
	"career_agent_backend/internal/model"
	"career_agent_backend/internal/repository"
	"career_agent_backend/pkg/logger"
	"career_agent_backend/pkg/monitoring"
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// 可路由的处理器名
const (
	AgentJobSearch      = "JobSearch"
	AgentSkillAdvisor   = "SkillAdvisor"
	AgentResumeReviewer = "ResumeReviewer"
	AgentLearningAgent  = "LearningAgent"
	AgentChat           = "Chat"
)

// AgentResult 一次消息处理的统一响应信封
type AgentResult struct {
	Agent              string      `json:"agent"`
	Response           string      `json:"response"`
	Data               interface{} `json:"data"`
	Reasoning          string      `json:"reasoning"`
	NeedsClarification bool        `json:"needs_clarification,omitempty"`
	JobsFound          int         `json:"jobs_found"`
}

// routingDecision 路由模型的输出
type routingDecision struct {
	Agent              string   `json:"agent"`
	Reasoning          string   `json:"reasoning"`
	NeedsClarification bool     `json:"needs_clarification"`
	MissingInfo        []string `json:"missing_info"`
}

// OrchestratorService 把用户消息路由到各处理器并组装响应。
// 处理永远产出一个结果：路由失败降级到Chat，处理器内部的
// 外部调用失败各自兜底。
type OrchestratorService struct {
	AI        *AIService
	Chat      *ChatService
	JobSearch *JobSearchService
	Skill     *SkillService
	Learning  *LearningService
	Resume    *ResumeService
	Jobs      *repository.JobRepository
	Profiles  *repository.ProfileRepository
	Activity  *repository.ActivityRepository
}

func NewOrchestratorService(
	ai *AIService,
	chat *ChatService,
	jobSearch *JobSearchService,
	skill *SkillService,
	learning *LearningService,
	resume *ResumeService,
	jobs *repository.JobRepository,
	profiles *repository.ProfileRepository,
	activity *repository.ActivityRepository,
) *OrchestratorService {
	return &OrchestratorService{
		AI:        ai,
		Chat:      chat,
		JobSearch: jobSearch,
		Skill:     skill,
		Learning:  learning,
		Resume:    resume,
		Jobs:      jobs,
		Profiles:  profiles,
		Activity:  activity,
	}
}

// ProcessMessage 处理一条用户消息：先入会话，再路由，最后把
// 处理器回复也写回会话。每轮恰好产生两条消息。
func (s *OrchestratorService) ProcessMessage(ctx context.Context, message string, extra map[string]interface{}) (*AgentResult, error) {
	session, err := s.Chat.AddUserMessage(message)
	if err != nil {
		return nil, err
	}

	profile, _ := s.Profiles.Get()
	decision := s.route(ctx, message, session, profile)

	var result *AgentResult
	switch decision.Agent {
	case AgentJobSearch:
		result = s.handleJobSearch(ctx, message, session.ID, decision, profile)
		if result != nil {
			return result, nil // 澄清分支已自己写回了会话
		}
		result = s.runJobSearch(ctx, message, decision, profile)
	case AgentSkillAdvisor:
		result = s.handleSkillAdvisor(ctx, message, decision, profile)
	case AgentResumeReviewer:
		result = s.handleResumeReview(ctx, message, extra, decision)
	case AgentLearningAgent:
		result = s.handleLearningAgent(ctx, message, decision)
	default:
		result = &AgentResult{
			Agent:     AgentChat,
			Response:  s.Chat.GeneralReply(ctx, message),
			Reasoning: decision.Reasoning,
		}
	}

	if err := s.Chat.AddAgentMessage(session.ID, result.Agent, result.Response); err != nil {
		logger.Log.Error("failed to persist agent reply", zap.Error(err))
	}
	return result, nil
}

// route 构造路由提示词并解析决策，任何失败都降级到Chat
func (s *OrchestratorService) route(ctx context.Context, message string, session *model.ChatSession, profile *model.UserProfile) routingDecision {
	historyLines := []string{}
	messages := session.Messages
	start := 0
	if len(messages) > 5 {
		start = len(messages) - 5
	}
	for _, msg := range messages[start:] {
		historyLines = append(historyLines, fmt.Sprintf("%s: %s", msg.Role, msg.Content))
	}

	location := "Not specified"
	skillsDesc := "Not specified"
	if profile != nil {
		if profile.Location != "" {
			location = profile.Location
		}
		if len(profile.Skills) > 0 {
			skillsDesc = strings.Join(profile.Skills, ", ")
		}
	}

	prompt := fmt.Sprintf(`You are an Orchestrator Agent. Route the user's request.

Chat History:
%s

User Message: %q
User Profile Location: %s
User Skills: %s

Available Agents:
1. JobSearch: Finding jobs, job hunting, career opportunities.
2. SkillAdvisor: Advice on skills, learning paths, career guidance.
3. ResumeReviewer: Resume feedback and analysis.
4. LearningAgent: Creating mock tests, quizzes, skill assessments.
5. Chat: General conversation, greetings, questions, asking for clarification.

Return JSON:
{
    "agent": "JobSearch" | "SkillAdvisor" | "ResumeReviewer" | "LearningAgent" | "Chat",
    "reasoning": "...",
    "needs_clarification": true/false,
    "missing_info": ["location", "job_role", "experience_level"] (if needs_clarification is true)
}`, strings.Join(historyLines, "\n"), message, location, skillsDesc)

	var decision routingDecision
	if err := s.AI.GenerateJSON(ctx, "", prompt, &decision); err != nil {
		monitoring.RoutingFallbacks.Inc()
		logger.Log.Warn("routing failed, falling back to chat", zap.Error(err))
		return routingDecision{Agent: AgentChat, Reasoning: "Error in routing"}
	}
	if decision.Agent == "" {
		decision.Agent = AgentChat
	}
	if decision.Reasoning == "" {
		decision.Reasoning = "Defaulting to chat"
	}
	return decision
}

// handleJobSearch 只处理澄清短路分支；不需要澄清时返回nil，
// 由调用方继续走完整搜索
func (s *OrchestratorService) handleJobSearch(ctx context.Context, message, sessionID string, decision routingDecision, profile *model.UserProfile) *AgentResult {
	if !decision.NeedsClarification || len(decision.MissingInfo) == 0 {
		return nil
	}

	clarificationPrompt := fmt.Sprintf(`The user wants to search for jobs: %q

We need more information: %s

Create a friendly, conversational response asking for the missing information.
Be specific and helpful. For example:
- If missing location: "I'd love to help you find jobs! What location are you looking for?"
- If missing job role: "What type of position are you interested in?"
- If missing experience: "How many years of experience do you have?"

Return just the question text, no JSON.`, message, strings.Join(decision.MissingInfo, ", "))

	question, err := s.AI.Chat(ctx, "", clarificationPrompt)
	if err != nil || question == "" {
		question = fmt.Sprintf("I'd love to help! Could you tell me more about: %s?", strings.Join(decision.MissingInfo, ", "))
	}

	if err := s.Chat.AddAgentMessage(sessionID, AgentChat, question); err != nil {
		logger.Log.Error("failed to persist clarification reply", zap.Error(err))
	}
	return &AgentResult{
		Agent:              AgentChat,
		Response:           question,
		Reasoning:          "Asking for clarification",
		NeedsClarification: true,
	}
}

// runJobSearch 搜索 → 入库 → 技能差距 → 自动生成学习路径和测验。
// 每个技能的生成各自隔离，单个失败不影响其余流程。
func (s *OrchestratorService) runJobSearch(ctx context.Context, message string, decision routingDecision, profile *model.UserProfile) *AgentResult {
	jobs, _ := s.JobSearch.Search(ctx, message)

	if _, err := s.Jobs.AddJobs(jobs); err != nil {
		logger.Log.Error("failed to store jobs", zap.Error(err))
	}
	if err := s.Activity.Log(model.ActivityJobSearch, map[string]interface{}{
		"query":         message,
		"results_count": len(jobs),
	}); err != nil {
		logger.Log.Warn("failed to log search activity", zap.Error(err))
	}

	var userSkills []string
	if profile != nil {
		userSkills = profile.Skills
	}
	gaps := DeriveGaps(jobs, userSkills)

	pathGaps := gaps
	if len(pathGaps) > 3 {
		pathGaps = pathGaps[:3]
	}
	for _, skill := range pathGaps {
		if _, err := s.Learning.CreateLearningPath(ctx, skill, jobs); err != nil {
			logger.Log.Warn("failed to create learning path", zap.String("skill", skill), zap.Error(err))
			continue
		}
		if err := s.Activity.Log(model.ActivityLearningStarted, map[string]interface{}{
			"skill":          skill,
			"auto_generated": true,
		}); err != nil {
			logger.Log.Warn("failed to log learning activity", zap.Error(err))
		}
	}

	testGaps := gaps
	if len(testGaps) > 2 {
		testGaps = testGaps[:2]
	}
	for _, skill := range testGaps {
		var jobIDs []string
		for _, job := range jobs {
			if job.RequiresSkill(skill) {
				jobIDs = append(jobIDs, job.ID)
			}
		}
		if _, err := s.Skill.CreateTest(ctx, skill, "intermediate", jobIDs); err != nil {
			logger.Log.Warn("failed to create skill test", zap.String("skill", skill), zap.Error(err))
		}
	}

	locationMsg := ""
	if current, err := s.Profiles.Get(); err == nil {
		if loc := current.PreferredLocation(); loc != "" {
			locationMsg = " in " + loc
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🎯 I've found %d real job opportunities%s!\n\n", len(jobs), locationMsg)
	b.WriteString("✨ These are live positions from company websites. Click 'Apply Now' to go directly to the company's job portal.\n\n")
	if len(gaps) > 0 {
		fmt.Fprintf(&b, "📚 I've also created learning paths for: %s\n", strings.Join(pathGaps, ", "))
		fmt.Fprintf(&b, "✅ Skill tests are ready for: %s\n\n", strings.Join(testGaps, ", "))
	}
	b.WriteString("💼 Go to the Job Board to view all opportunities and apply directly on company websites!")

	return &AgentResult{
		Agent:     AgentJobSearch,
		Response:  b.String(),
		Data:      jobs,
		Reasoning: decision.Reasoning,
		JobsFound: len(jobs),
	}
}

func (s *OrchestratorService) handleSkillAdvisor(ctx context.Context, message string, decision routingDecision, profile *model.UserProfile) *AgentResult {
	role := "software developer"
	lower := strings.ToLower(message)
	if strings.Contains(lower, "data") {
		role = "data scientist"
	}
	if strings.Contains(lower, "frontend") {
		role = "frontend developer"
	}
	if strings.Contains(lower, "backend") {
		role = "backend developer"
	}

	if err := s.Profiles.SetPreference(model.PrefPreferredRole, role); err != nil {
		logger.Log.Warn("failed to persist preferred role", zap.Error(err))
	}

	var skills []string
	if profile != nil {
		skills = profile.Skills
	}
	advice := s.Skill.AnalyzeGap(ctx, skills, role)

	if err := s.Learning.SaveAdvicePath(advice, role); err != nil {
		logger.Log.Warn("failed to store advice path", zap.Error(err))
	}
	if err := s.Activity.Log(model.ActivitySkillAdvice, map[string]interface{}{"role": role}); err != nil {
		logger.Log.Warn("failed to log advice activity", zap.Error(err))
	}

	response := advice.Message
	if response == "" {
		response = "Advice generated. Check Learning Hub for your personalized path."
	}
	return &AgentResult{
		Agent:     AgentSkillAdvisor,
		Response:  response,
		Data:      advice,
		Reasoning: decision.Reasoning,
	}
}

func (s *OrchestratorService) handleResumeReview(ctx context.Context, message string, extra map[string]interface{}, decision routingDecision) *AgentResult {
	resumeText := message
	if extra != nil {
		if text, ok := extra["resume_text"].(string); ok && text != "" {
			resumeText = text
		}
	}

	review := s.Resume.Review(ctx, resumeText)
	if err := s.Resume.SaveReview(review); err != nil {
		logger.Log.Error("failed to store resume review", zap.Error(err))
	}
	if err := s.Activity.Log(model.ActivityResumeReview, map[string]interface{}{"score": review.Score}); err != nil {
		logger.Log.Warn("failed to log review activity", zap.Error(err))
	}

	return &AgentResult{
		Agent:     AgentResumeReviewer,
		Response:  fmt.Sprintf("📄 Resume reviewed! Score: %d/100.\n\nCheck the Resume page for detailed feedback.", review.Score),
		Data:      review,
		Reasoning: decision.Reasoning,
	}
}

func (s *OrchestratorService) handleLearningAgent(ctx context.Context, message string, decision routingDecision) *AgentResult {
	topic := "General"
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "python"):
		topic = "Python"
	case strings.Contains(lower, "react"):
		topic = "React"
	case strings.Contains(lower, "javascript"):
		topic = "JavaScript"
	}

	var data interface{}
	test, err := s.Learning.GenerateMockTest(ctx, topic, "Intermediate")
	if err != nil {
		data = map[string]interface{}{"error": "Failed to generate test", "topic": topic}
	} else {
		data = test
	}

	return &AgentResult{
		Agent:     AgentLearningAgent,
		Response:  fmt.Sprintf("📝 I've generated a %s mock test for you! Check the Learning Hub to take it.", topic),
		Data:      data,
		Reasoning: decision.Reasoning,
	}
}
