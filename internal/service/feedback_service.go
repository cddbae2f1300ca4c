package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"soft_skill_backend/internal/config"
	"soft_skill_backend/internal/scoring"
	"soft_skill_backend/internal/util"
	"soft_skill_backend/pkg/monitoring"
)

// FeedbackRequest 发往外部反馈生成器的上下文。DraftScores 只是占位参考，
// 生成器返回的评分才是权威结果。
type FeedbackRequest struct {
	SkillName      string
	ScenarioPrompt string
	UserResponse   string
	DraftScores    scoring.DimensionScores
}

type FeedbackResult struct {
	Scores scoring.DimensionScores

	OverallFeedback       string
	ClarityFeedback       string
	EmpathyFeedback       string
	AssertivenessFeedback string
	ListeningFeedback     string
	ConfidenceFeedback    string
	ImprovementAreas      []string

	ModelUsed      string
	ResponseTimeMs *int
}

// FeedbackGenerator 反馈生成能力接口：生产实现走 HTTP，测试用确定性假实现
type FeedbackGenerator interface {
	Generate(ctx context.Context, req FeedbackRequest) (*FeedbackResult, error)
}

type FeedbackService struct {
	mu     sync.RWMutex
	config config.FeedbackConfig
	client *http.Client
}

func NewFeedbackService(cfg config.FeedbackConfig) *FeedbackService {
	return &FeedbackService{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// UpdateConfig 配置热更新入口：替换网关地址、语言风格与超时。
// 进行中的请求继续使用旧客户端，不被打断。
func (s *FeedbackService) UpdateConfig(cfg config.FeedbackConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = cfg
	s.client = &http.Client{Timeout: cfg.Timeout}
}

type feedbackWireRequest struct {
	SoftSkill     string                  `json:"soft_skill"`
	Scenario      string                  `json:"scenario"`
	UserResponse  string                  `json:"user_response"`
	Scores        feedbackWireScores      `json:"scores"`
	Language      string                  `json:"language"`
	FeedbackStyle string                  `json:"feedback_style"`
}

type feedbackWireScores struct {
	Clarity       int `json:"clarity_score"`
	Empathy       int `json:"empathy_score"`
	Assertiveness int `json:"assertiveness_score"`
	Listening     int `json:"listening_score"`
	Confidence    int `json:"confidence_score"`
}

type feedbackWireResponse struct {
	ClarityScore       *int `json:"clarity_score"`
	EmpathyScore       *int `json:"empathy_score"`
	AssertivenessScore *int `json:"assertiveness_score"`
	ListeningScore     *int `json:"listening_score"`
	ConfidenceScore    *int `json:"confidence_score"`

	OverallFeedback       string   `json:"overall_feedback"`
	ClarityFeedback       string   `json:"clarity_feedback"`
	EmpathyFeedback       string   `json:"empathy_feedback"`
	AssertivenessFeedback string   `json:"assertiveness_feedback"`
	ListeningFeedback     string   `json:"listening_feedback"`
	ConfidenceFeedback    string   `json:"confidence_feedback"`
	ImprovementAreas      []string `json:"improvement_areas"`

	ModelUsed      string `json:"model_used"`
	ResponseTimeMs *int   `json:"response_time_ms"`
}

// Generate 调用外部生成器。不可达/超时/非2xx 归类为 ErrFeedbackUnavailable，
// 响应缺字段或评分越界归类为 ErrFeedbackInvalid；任何失败都不伪造评分。
func (s *FeedbackService) Generate(ctx context.Context, req FeedbackRequest) (*FeedbackResult, error) {
	s.mu.RLock()
	cfg := s.config
	client := s.client
	s.mu.RUnlock()

	payload := feedbackWireRequest{
		SoftSkill:    req.SkillName,
		Scenario:     req.ScenarioPrompt,
		UserResponse: req.UserResponse,
		Scores: feedbackWireScores{
			Clarity:       req.DraftScores.Clarity,
			Empathy:       req.DraftScores.Empathy,
			Assertiveness: req.DraftScores.Assertiveness,
			Listening:     req.DraftScores.Listening,
			Confidence:    req.DraftScores.Confidence,
		},
		Language:      cfg.Language,
		FeedbackStyle: cfg.Style,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.BaseURL+"/generate-feedback", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := client.Do(httpReq)
	monitoring.FeedbackLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrFeedbackUnavailable, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", util.ErrFeedbackUnavailable, resp.StatusCode)
	}

	var wire feedbackWireResponse
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrFeedbackInvalid, err)
	}

	if wire.ClarityScore == nil || wire.EmpathyScore == nil || wire.AssertivenessScore == nil ||
		wire.ListeningScore == nil || wire.ConfidenceScore == nil {
		return nil, fmt.Errorf("%w: missing dimension scores", util.ErrFeedbackInvalid)
	}
	if wire.OverallFeedback == "" {
		return nil, fmt.Errorf("%w: missing overall feedback", util.ErrFeedbackInvalid)
	}

	scores := scoring.DimensionScores{
		Clarity:       *wire.ClarityScore,
		Empathy:       *wire.EmpathyScore,
		Assertiveness: *wire.AssertivenessScore,
		Listening:     *wire.ListeningScore,
		Confidence:    *wire.ConfidenceScore,
	}
	// 越界评分直接判非法，不做截断：截断等于伪造，会污染积分与进度
	if err := scores.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrFeedbackInvalid, err)
	}

	result := &FeedbackResult{
		Scores:                scores,
		OverallFeedback:       wire.OverallFeedback,
		ClarityFeedback:       wire.ClarityFeedback,
		EmpathyFeedback:       wire.EmpathyFeedback,
		AssertivenessFeedback: wire.AssertivenessFeedback,
		ListeningFeedback:     wire.ListeningFeedback,
		ConfidenceFeedback:    wire.ConfidenceFeedback,
		ImprovementAreas:      wire.ImprovementAreas,
		ModelUsed:             wire.ModelUsed,
		ResponseTimeMs:        wire.ResponseTimeMs,
	}
	if result.ModelUsed == "" {
		result.ModelUsed = "unknown"
	}
	if result.ImprovementAreas == nil {
		result.ImprovementAreas = []string{}
	}
	return result, nil
}
