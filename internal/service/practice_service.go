package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"soft_skill_backend/internal/model"
	"soft_skill_backend/internal/repository"
	"soft_skill_backend/internal/scoring"
	"soft_skill_backend/internal/util"
	"soft_skill_backend/pkg/logger"
	"soft_skill_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PracticeService 练习会话状态机：pending -> completed，且只迁移一次。
// 提交失败（反馈生成器故障）不落任何状态，会话保持 pending 可重试。
type PracticeService struct {
	PracticeRepo *repository.PracticeRepository
	SkillRepo    *repository.SoftSkillRepository
	LogRepo      *repository.TrackingLogRepository
	Progress     *ProgressService
	Feedback     FeedbackGenerator
	Events       *EventService
	DB           *gorm.DB
}

func NewPracticeService(
	practiceRepo *repository.PracticeRepository,
	skillRepo *repository.SoftSkillRepository,
	logRepo *repository.TrackingLogRepository,
	progress *ProgressService,
	feedback FeedbackGenerator,
	events *EventService,
	db *gorm.DB,
) *PracticeService {
	return &PracticeService{
		PracticeRepo: practiceRepo,
		SkillRepo:    skillRepo,
		LogRepo:      logRepo,
		Progress:     progress,
		Feedback:     feedback,
		Events:       events,
		DB:           db,
	}
}

type PracticeStartRequest struct {
	UserID      string `json:"userId" binding:"required"`
	SoftSkillID uint   `json:"softSkillId" binding:"required"`
	ScenarioID  uint   `json:"scenarioId" binding:"required"`
}

type PracticeSessionResponse struct {
	SessionID string                  `json:"sessionId"`
	UserID    string                  `json:"userId"`
	SoftSkill model.SoftSkill         `json:"softSkill"`
	Scenario  model.SoftSkillScenario `json:"scenario"`
	Status    model.PracticeStatus    `json:"status"`
	StartedAt time.Time               `json:"startedAt"`
}

type PracticeSubmitRequest struct {
	SessionID       string `json:"sessionId" binding:"required"`
	UserInput       string `json:"userInput" binding:"required"`
	DurationSeconds int    `json:"durationSeconds"`
}

// PracticeResultResponse 会话结果。pending 阶段指针字段为空，只带状态。
type PracticeResultResponse struct {
	SessionID       string                  `json:"sessionId"`
	Status          model.PracticeStatus    `json:"status"`
	Scores          *PracticeScores         `json:"scores,omitempty"`
	Feedback        *PracticeFeedbackDetail `json:"feedback,omitempty"`
	PointsEarned    float64                 `json:"pointsEarned"`
	DurationSeconds int                     `json:"durationSeconds"`
	CompletedAt     *time.Time              `json:"completedAt,omitempty"`
}

type PracticeScores struct {
	Clarity       int     `json:"clarityScore"`
	Empathy       int     `json:"empathyScore"`
	Assertiveness int     `json:"assertivenessScore"`
	Listening     int     `json:"listeningScore"`
	Confidence    int     `json:"confidenceScore"`
	Overall       float64 `json:"overallScore"`
}

type PracticeFeedbackDetail struct {
	OverallFeedback       string   `json:"overallFeedback"`
	ClarityFeedback       string   `json:"clarityFeedback,omitempty"`
	EmpathyFeedback       string   `json:"empathyFeedback,omitempty"`
	AssertivenessFeedback string   `json:"assertivenessFeedback,omitempty"`
	ListeningFeedback     string   `json:"listeningFeedback,omitempty"`
	ConfidenceFeedback    string   `json:"confidenceFeedback,omitempty"`
	ImprovementAreas      []string `json:"improvementAreas"`
}

// StartPractice 校验技能与情景后创建 pending 会话。
// 失败时不留下任何会话记录。
func (s *PracticeService) StartPractice(ctx context.Context, req PracticeStartRequest) (*PracticeSessionResponse, error) {
	skill, err := s.SkillRepo.FindSkillByID(req.SoftSkillID)
	if err != nil {
		return nil, err
	}

	scenario, err := s.SkillRepo.FindScenarioByID(req.ScenarioID)
	if err != nil {
		return nil, err
	}
	if scenario.SoftSkillID != skill.ID {
		return nil, util.ErrScenarioNotFound
	}

	session := &model.PracticeSession{
		SessionID:   model.GenerateSessionID(),
		UserID:      req.UserID,
		SoftSkillID: skill.ID,
		ScenarioID:  scenario.ID,
		Status:      model.PracticeStatusPending,
		StartedAt:   time.Now().UTC(),
	}
	if err := s.PracticeRepo.Create(session); err != nil {
		return nil, err
	}

	s.logEvent(req.UserID, session.SessionID, model.EventPracticeStarted, map[string]interface{}{
		"soft_skill_id": skill.ID,
		"scenario_id":   scenario.ID,
	})
	s.Events.PublishPracticeStarted(ctx, req.UserID, session.SessionID, skill.ID, scenario.ID)

	logger.Log.Info("Practice session started",
		zap.String("sessionId", session.SessionID),
		zap.String("userId", req.UserID),
		zap.Uint("skillId", skill.ID))

	return &PracticeSessionResponse{
		SessionID: session.SessionID,
		UserID:    session.UserID,
		SoftSkill: *skill,
		Scenario:  *scenario,
		Status:    session.Status,
		StartedAt: session.StartedAt,
	}, nil
}

// SubmitPractice 完成提交。外部反馈先行，拿到权威评分后才开事务落库：
// 守卫更新 + 反馈记录 + 进度重算 原子完成，网关失败不产生任何残留状态。
func (s *PracticeService) SubmitPractice(ctx context.Context, req PracticeSubmitRequest) (*PracticeResultResponse, error) {
	if strings.TrimSpace(req.UserInput) == "" {
		return nil, util.ErrEmptyResponse
	}
	if req.DurationSeconds < 0 {
		return nil, util.ErrInvalidDuration
	}

	session, err := s.PracticeRepo.FindBySessionID(req.SessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != model.PracticeStatusPending {
		return nil, util.ErrSessionCompleted
	}

	skill, err := s.SkillRepo.FindSkillByID(session.SoftSkillID)
	if err != nil {
		return nil, err
	}
	scenario, err := s.SkillRepo.FindScenarioByID(session.ScenarioID)
	if err != nil {
		return nil, err
	}

	feedback, err := s.Feedback.Generate(ctx, FeedbackRequest{
		SkillName:      skill.Name,
		ScenarioPrompt: scenario.Description,
		UserResponse:   req.UserInput,
		DraftScores:    draftScores(req.UserInput),
	})
	if err != nil {
		// 会话保持 pending，同一令牌可重试
		logger.Log.Warn("Feedback generation failed, session left pending",
			zap.String("sessionId", req.SessionID), zap.Error(err))
		return nil, err
	}

	overall := feedback.Scores.Overall()
	points := scoring.PointsEarned(overall)
	completedAt := time.Now().UTC()

	areasJSON, err := json.Marshal(feedback.ImprovementAreas)
	if err != nil {
		areasJSON = []byte("[]")
	}

	var previousProgress float64
	var newProgress *model.SkillProgress

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.PracticeRepo.CompletePending(tx, req.SessionID, repository.CompletionUpdate{
			UserInput:          req.UserInput,
			DurationSeconds:    req.DurationSeconds,
			ClarityScore:       feedback.Scores.Clarity,
			EmpathyScore:       feedback.Scores.Empathy,
			AssertivenessScore: feedback.Scores.Assertiveness,
			ListeningScore:     feedback.Scores.Listening,
			ConfidenceScore:    feedback.Scores.Confidence,
			OverallScore:       overall,
			PointsEarned:       points,
			CompletedAt:        completedAt,
		}); err != nil {
			return err
		}

		if err := s.PracticeRepo.CreateFeedback(tx, &model.PracticeFeedback{
			PracticeID:            session.ID,
			OverallFeedback:       feedback.OverallFeedback,
			ClarityFeedback:       feedback.ClarityFeedback,
			EmpathyFeedback:       feedback.EmpathyFeedback,
			AssertivenessFeedback: feedback.AssertivenessFeedback,
			ListeningFeedback:     feedback.ListeningFeedback,
			ConfidenceFeedback:    feedback.ConfidenceFeedback,
			ImprovementAreas:      string(areasJSON),
			ModelUsed:             feedback.ModelUsed,
			ResponseTimeMs:        feedback.ResponseTimeMs,
		}); err != nil {
			return err
		}

		prev, err := s.Progress.ProgressRepo.FindForUpdate(tx, session.UserID, session.SoftSkillID)
		if err != nil {
			return err
		}
		if prev != nil {
			previousProgress = prev.ProgressPercentage
		}

		newProgress, err = s.Progress.RecomputeTx(tx, session.UserID, session.SoftSkillID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logEvent(session.UserID, session.SessionID, model.EventPracticeCompleted, map[string]interface{}{
		"overall_score":    overall,
		"points_earned":    points,
		"duration_seconds": req.DurationSeconds,
	})
	s.Events.PublishPracticeCompleted(ctx, session.UserID, session.SessionID, session.SoftSkillID, session.ScenarioID, overall, points, req.DurationSeconds)
	s.Events.PublishProgressUpdated(ctx, session.UserID, session.SoftSkillID, previousProgress, newProgress.ProgressPercentage, points)
	monitoring.PracticeCompletions.WithLabelValues(skill.Name).Inc()

	logger.Log.Info("Practice session completed",
		zap.String("sessionId", session.SessionID),
		zap.Float64("overall", overall),
		zap.Float64("points", points))

	return &PracticeResultResponse{
		SessionID: session.SessionID,
		Status:    model.PracticeStatusCompleted,
		Scores: &PracticeScores{
			Clarity:       feedback.Scores.Clarity,
			Empathy:       feedback.Scores.Empathy,
			Assertiveness: feedback.Scores.Assertiveness,
			Listening:     feedback.Scores.Listening,
			Confidence:    feedback.Scores.Confidence,
			Overall:       overall,
		},
		Feedback: &PracticeFeedbackDetail{
			OverallFeedback:       feedback.OverallFeedback,
			ClarityFeedback:       feedback.ClarityFeedback,
			EmpathyFeedback:       feedback.EmpathyFeedback,
			AssertivenessFeedback: feedback.AssertivenessFeedback,
			ListeningFeedback:     feedback.ListeningFeedback,
			ConfidenceFeedback:    feedback.ConfidenceFeedback,
			ImprovementAreas:      feedback.ImprovementAreas,
		},
		PointsEarned:    points,
		DurationSeconds: req.DurationSeconds,
		CompletedAt:     &completedAt,
	}, nil
}

// GetPracticeResult 按会话令牌读取当前结果。pending 只有状态，
// completed 附带评分、积分与完整反馈记录。
func (s *PracticeService) GetPracticeResult(sessionID string) (*PracticeResultResponse, error) {
	session, err := s.PracticeRepo.FindBySessionID(sessionID)
	if err != nil {
		return nil, err
	}

	resp := &PracticeResultResponse{
		SessionID: session.SessionID,
		Status:    session.Status,
	}
	if session.Status != model.PracticeStatusCompleted {
		return resp, nil
	}

	resp.PointsEarned = session.PointsEarned
	resp.CompletedAt = session.CompletedAt
	if session.DurationSeconds != nil {
		resp.DurationSeconds = *session.DurationSeconds
	}
	resp.Scores = &PracticeScores{
		Clarity:       derefInt(session.ClarityScore),
		Empathy:       derefInt(session.EmpathyScore),
		Assertiveness: derefInt(session.AssertivenessScore),
		Listening:     derefInt(session.ListeningScore),
		Confidence:    derefInt(session.ConfidenceScore),
		Overall:       derefFloat(session.OverallScore),
	}

	// 完成迁移与反馈写入同一事务，completed 会话必有反馈记录
	feedback, err := s.PracticeRepo.FindFeedbackByPracticeID(session.ID)
	if err != nil {
		return nil, err
	}
	areas := []string{}
	if err := json.Unmarshal([]byte(feedback.ImprovementAreas), &areas); err != nil {
		areas = []string{}
	}
	resp.Feedback = &PracticeFeedbackDetail{
		OverallFeedback:       feedback.OverallFeedback,
		ClarityFeedback:       feedback.ClarityFeedback,
		EmpathyFeedback:       feedback.EmpathyFeedback,
		AssertivenessFeedback: feedback.AssertivenessFeedback,
		ListeningFeedback:     feedback.ListeningFeedback,
		ConfidenceFeedback:    feedback.ConfidenceFeedback,
		ImprovementAreas:      areas,
	}
	return resp, nil
}

// GetPracticeEvents 会话的事件留痕，按写入顺序返回
func (s *PracticeService) GetPracticeEvents(sessionID string) ([]model.TrackingLog, error) {
	if _, err := s.PracticeRepo.FindBySessionID(sessionID); err != nil {
		return nil, err
	}
	return s.LogRepo.FindBySession(sessionID)
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func derefFloat(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// draftScores 发给生成器的占位参考分。确定性启发式，便于请求可复现；
// 最终评分以生成器返回为准。
func draftScores(userInput string) scoring.DimensionScores {
	base := 3
	s := scoring.DimensionScores{
		Clarity:       base,
		Empathy:       base,
		Assertiveness: base,
		Listening:     base,
		Confidence:    base,
	}

	if len(strings.Fields(userInput)) > 20 {
		s.Clarity++
	}
	lower := strings.ToLower(userInput)
	if strings.Contains(lower, "understand") || strings.Contains(userInput, "理解") {
		s.Empathy++
	}
	if strings.Contains(userInput, "I ") || strings.Contains(userInput, "我") {
		s.Assertiveness++
	}
	if strings.ContainsAny(userInput, "?？") {
		s.Listening++
	}
	return s
}

// logEvent 留痕失败只告警，不打断主流程
func (s *PracticeService) logEvent(userID, sessionID, eventType string, data map[string]interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		payload = []byte("{}")
	}
	if err := s.LogRepo.Create(&model.TrackingLog{
		UserID:            userID,
		PracticeSessionID: sessionID,
		EventType:         eventType,
		EventData:         string(payload),
	}); err != nil {
		logger.Log.Warn("Failed to write tracking log",
			zap.String("sessionId", sessionID), zap.Error(err))
	}
}
