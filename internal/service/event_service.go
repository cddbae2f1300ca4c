package service

import (
	"context"
	"encoding/json"
	"time"

	"soft_skill_backend/internal/config"
	"soft_skill_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// EventService 通过 Redis 发布练习生命周期事件。
// 纯尽力而为：发布失败只记日志，绝不影响练习主流程。
type EventService struct {
	rdb     *redis.Client
	channel string
	enabled bool
}

func NewEventService(rdb *redis.Client, cfg config.EventBusConfig) *EventService {
	return &EventService{
		rdb:     rdb,
		channel: cfg.Channel,
		enabled: cfg.Enabled && rdb != nil,
	}
}

type practiceEvent struct {
	EventType   string                 `json:"event_type"`
	UserID      string                 `json:"user_id"`
	SessionID   string                 `json:"session_id,omitempty"`
	SoftSkillID uint                   `json:"soft_skill_id"`
	ScenarioID  uint                   `json:"scenario_id,omitempty"`
	Timestamp   time.Time              `json:"timestamp"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

func (s *EventService) PublishPracticeStarted(ctx context.Context, userID, sessionID string, skillID, scenarioID uint) {
	s.publish(ctx, "practice.started", practiceEvent{
		EventType:   "practice_started",
		UserID:      userID,
		SessionID:   sessionID,
		SoftSkillID: skillID,
		ScenarioID:  scenarioID,
		Timestamp:   time.Now().UTC(),
	})
}

func (s *EventService) PublishPracticeCompleted(ctx context.Context, userID, sessionID string, skillID, scenarioID uint, overall, points float64, durationSeconds int) {
	s.publish(ctx, "practice.completed", practiceEvent{
		EventType:   "practice_completed",
		UserID:      userID,
		SessionID:   sessionID,
		SoftSkillID: skillID,
		ScenarioID:  scenarioID,
		Timestamp:   time.Now().UTC(),
		Metadata: map[string]interface{}{
			"overall_score":    overall,
			"points_earned":    points,
			"duration_seconds": durationSeconds,
		},
	})
}

func (s *EventService) PublishProgressUpdated(ctx context.Context, userID string, skillID uint, previousProgress, newProgress, points float64) {
	s.publish(ctx, "progress.updated", practiceEvent{
		EventType:   "progress_updated",
		UserID:      userID,
		SoftSkillID: skillID,
		Timestamp:   time.Now().UTC(),
		Metadata: map[string]interface{}{
			"previous_progress": previousProgress,
			"new_progress":      newProgress,
			"points_earned":     points,
		},
	})
}

func (s *EventService) publish(ctx context.Context, topic string, event practiceEvent) {
	if !s.enabled {
		return
	}

	payload, err := json.Marshal(map[string]interface{}{
		"topic":     topic,
		"event":     event,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		logger.Log.Warn("Failed to marshal event", zap.String("topic", topic), zap.Error(err))
		return
	}

	if err := s.rdb.Publish(ctx, s.channel, payload).Err(); err != nil {
		logger.Log.Warn("Failed to publish event", zap.String("topic", topic), zap.Error(err))
		return
	}

	logger.Log.Debug("Event published", zap.String("topic", topic))
}
