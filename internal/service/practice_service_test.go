package service

import (
	"context"
	"errors"
	"testing"

	"soft_skill_backend/internal/config"
	"soft_skill_backend/internal/model"
	"soft_skill_backend/internal/repository"
	"soft_skill_backend/internal/scoring"
	"soft_skill_backend/internal/util"
	"soft_skill_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	logger.Log = zap.NewNop()
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	// :memory: 下多连接各自是独立库，收敛到单连接
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&model.SoftSkill{},
		&model.SoftSkillScenario{},
		&model.PracticeSession{},
		&model.PracticeFeedback{},
		&model.SkillProgress{},
		&model.TrackingLog{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// fakeGenerator 确定性反馈生成器，隔离网络依赖
type fakeGenerator struct {
	result *FeedbackResult
	err    error
	calls  int
}

func (f *fakeGenerator) Generate(ctx context.Context, req FeedbackRequest) (*FeedbackResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func goodFeedback() *FeedbackResult {
	return &FeedbackResult{
		Scores:           scoring.DimensionScores{Clarity: 4, Empathy: 3, Assertiveness: 4, Listening: 3, Confidence: 4},
		OverallFeedback:  "整体表现不错，先倾听再表态的思路很好。",
		ClarityFeedback:  "表达基本清晰。",
		ImprovementAreas: []string{"多用开放式提问"},
		ModelUsed:        "test-model",
	}
}

type testEnv struct {
	db       *gorm.DB
	practice *PracticeService
	progress *ProgressService
	skill    model.SoftSkill
	scenario model.SoftSkillScenario
}

func newTestEnv(t *testing.T, gen FeedbackGenerator) *testEnv {
	t.Helper()

	db := newTestDB(t)

	skill := model.SoftSkill{Name: "冲突化解", Description: "test", Category: model.CategoryProblemSolving, IsActive: true}
	if err := db.Create(&skill).Error; err != nil {
		t.Fatalf("seed skill: %v", err)
	}
	scenario := model.SoftSkillScenario{SoftSkillID: skill.ID, Title: "同事间的分歧", Description: "两位同事争执不下", DifficultyLevel: 3, EstimatedMinutes: 15, IsActive: true}
	if err := db.Create(&scenario).Error; err != nil {
		t.Fatalf("seed scenario: %v", err)
	}

	skillRepo := repository.NewSoftSkillRepository(db)
	practiceRepo := repository.NewPracticeRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	trackingRepo := repository.NewTrackingLogRepository(db)

	events := NewEventService(nil, config.EventBusConfig{Enabled: false})
	progress := NewProgressService(progressRepo, practiceRepo, skillRepo, db)
	practice := NewPracticeService(practiceRepo, skillRepo, trackingRepo, progress, gen, events, db)

	return &testEnv{
		db:       db,
		practice: practice,
		progress: progress,
		skill:    skill,
		scenario: scenario,
	}
}

func TestStartPractice_CreatesPendingSession(t *testing.T) {
	env := newTestEnv(t, &fakeGenerator{result: goodFeedback()})

	resp, err := env.practice.StartPractice(context.Background(), PracticeStartRequest{
		UserID:      "u1",
		SoftSkillID: env.skill.ID,
		ScenarioID:  env.scenario.ID,
	})
	if err != nil {
		t.Fatalf("StartPractice() error = %v", err)
	}
	if resp.SessionID == "" {
		t.Error("SessionID is empty")
	}
	if resp.Status != model.PracticeStatusPending {
		t.Errorf("Status = %q, want %q", resp.Status, model.PracticeStatusPending)
	}

	var stored model.PracticeSession
	if err := env.db.Where("session_id = ?", resp.SessionID).First(&stored).Error; err != nil {
		t.Fatalf("session not persisted: %v", err)
	}
	if stored.UserInput != nil || stored.CompletedAt != nil || stored.DurationSeconds != nil {
		t.Error("pending session must not carry completion fields")
	}
}

func TestStartPractice_TokensAreUnique(t *testing.T) {
	env := newTestEnv(t, &fakeGenerator{result: goodFeedback()})

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		resp, err := env.practice.StartPractice(context.Background(), PracticeStartRequest{
			UserID: "u1", SoftSkillID: env.skill.ID, ScenarioID: env.scenario.ID,
		})
		if err != nil {
			t.Fatalf("StartPractice() error = %v", err)
		}
		if seen[resp.SessionID] {
			t.Fatalf("duplicate session token %q", resp.SessionID)
		}
		seen[resp.SessionID] = true
	}
}

func TestStartPractice_UnknownSkill(t *testing.T) {
	env := newTestEnv(t, &fakeGenerator{result: goodFeedback()})

	_, err := env.practice.StartPractice(context.Background(), PracticeStartRequest{
		UserID: "u1", SoftSkillID: 9999, ScenarioID: env.scenario.ID,
	})
	if !errors.Is(err, util.ErrSkillNotFound) {
		t.Errorf("error = %v, want ErrSkillNotFound", err)
	}

	var count int64
	env.db.Model(&model.PracticeSession{}).Count(&count)
	if count != 0 {
		t.Errorf("sessions created = %d, want 0", count)
	}
}

func TestStartPractice_ScenarioFromOtherSkill(t *testing.T) {
	env := newTestEnv(t, &fakeGenerator{result: goodFeedback()})

	other := model.SoftSkill{Name: "同理心", Category: model.CategoryEmotionalIntelligence, IsActive: true}
	if err := env.db.Create(&other).Error; err != nil {
		t.Fatalf("seed skill: %v", err)
	}

	_, err := env.practice.StartPractice(context.Background(), PracticeStartRequest{
		UserID: "u1", SoftSkillID: other.ID, ScenarioID: env.scenario.ID,
	})
	if !errors.Is(err, util.ErrScenarioNotFound) {
		t.Errorf("error = %v, want ErrScenarioNotFound", err)
	}
}

func TestSubmitPractice_CompletesSession(t *testing.T) {
	env := newTestEnv(t, &fakeGenerator{result: goodFeedback()})

	started, err := env.practice.StartPractice(context.Background(), PracticeStartRequest{
		UserID: "u1", SoftSkillID: env.skill.ID, ScenarioID: env.scenario.ID,
	})
	if err != nil {
		t.Fatalf("StartPractice() error = %v", err)
	}

	result, err := env.practice.SubmitPractice(context.Background(), PracticeSubmitRequest{
		SessionID:       started.SessionID,
		UserInput:       "I would listen first...",
		DurationSeconds: 180,
	})
	if err != nil {
		t.Fatalf("SubmitPractice() error = %v", err)
	}

	if result.Status != model.PracticeStatusCompleted {
		t.Errorf("Status = %q, want completed", result.Status)
	}
	if result.Scores.Overall != 3.6 {
		t.Errorf("Overall = %v, want 3.6", result.Scores.Overall)
	}
	if result.PointsEarned != 12.0 {
		t.Errorf("PointsEarned = %v, want 12.0", result.PointsEarned)
	}

	var stored model.PracticeSession
	if err := env.db.Where("session_id = ?", started.SessionID).First(&stored).Error; err != nil {
		t.Fatalf("load session: %v", err)
	}
	if stored.Status != model.PracticeStatusCompleted {
		t.Errorf("stored status = %q, want completed", stored.Status)
	}
	if stored.CompletedAt == nil || stored.UserInput == nil || stored.DurationSeconds == nil {
		t.Error("completed session missing completion fields")
	}
	if stored.OverallScore == nil || *stored.OverallScore != 3.6 {
		t.Errorf("stored overall = %v, want 3.6", stored.OverallScore)
	}

	var feedback model.PracticeFeedback
	if err := env.db.Where("practice_id = ?", stored.ID).First(&feedback).Error; err != nil {
		t.Fatalf("feedback not persisted: %v", err)
	}
	if feedback.OverallFeedback == "" {
		t.Error("feedback text empty")
	}

	var progress model.SkillProgress
	if err := env.db.Where("user_id = ? AND soft_skill_id = ?", "u1", env.skill.ID).First(&progress).Error; err != nil {
		t.Fatalf("progress not recomputed: %v", err)
	}
	if progress.CompletedPractices != 1 {
		t.Errorf("CompletedPractices = %d, want 1", progress.CompletedPractices)
	}
	if progress.ProgressPercentage != 10.0 {
		t.Errorf("ProgressPercentage = %v, want 10.0", progress.ProgressPercentage)
	}
	if progress.TotalPoints != 12.0 {
		t.Errorf("TotalPoints = %v, want 12.0", progress.TotalPoints)
	}
}

func TestSubmitPractice_UnknownToken(t *testing.T) {
	gen := &fakeGenerator{result: goodFeedback()}
	env := newTestEnv(t, gen)

	_, err := env.practice.SubmitPractice(context.Background(), PracticeSubmitRequest{
		SessionID: "no-such-token", UserInput: "hello", DurationSeconds: 10,
	})
	if !errors.Is(err, util.ErrSessionNotFound) {
		t.Errorf("error = %v, want ErrSessionNotFound", err)
	}
	if gen.calls != 0 {
		t.Errorf("generator calls = %d, want 0", gen.calls)
	}
}

func TestSubmitPractice_DoubleSubmit(t *testing.T) {
	env := newTestEnv(t, &fakeGenerator{result: goodFeedback()})

	started, _ := env.practice.StartPractice(context.Background(), PracticeStartRequest{
		UserID: "u1", SoftSkillID: env.skill.ID, ScenarioID: env.scenario.ID,
	})

	if _, err := env.practice.SubmitPractice(context.Background(), PracticeSubmitRequest{
		SessionID: started.SessionID, UserInput: "first answer", DurationSeconds: 60,
	}); err != nil {
		t.Fatalf("first submit error = %v", err)
	}

	_, err := env.practice.SubmitPractice(context.Background(), PracticeSubmitRequest{
		SessionID: started.SessionID, UserInput: "second answer", DurationSeconds: 60,
	})
	if !errors.Is(err, util.ErrSessionCompleted) {
		t.Errorf("second submit error = %v, want ErrSessionCompleted", err)
	}

	// 反馈记录保持不变，只有一条
	var count int64
	env.db.Model(&model.PracticeFeedback{}).Count(&count)
	if count != 1 {
		t.Errorf("feedback records = %d, want 1", count)
	}
	var stored model.PracticeSession
	env.db.Where("session_id = ?", started.SessionID).First(&stored)
	if stored.UserInput == nil || *stored.UserInput != "first answer" {
		t.Errorf("stored input = %v, want first answer preserved", stored.UserInput)
	}
}

// gatedGenerator 阻塞到显式放行，用于制造两个提交同时越过 pending 预检的时序
type gatedGenerator struct {
	entered chan struct{}
	release chan struct{}
	result  *FeedbackResult
}

func (g *gatedGenerator) Generate(ctx context.Context, req FeedbackRequest) (*FeedbackResult, error) {
	g.entered <- struct{}{}
	<-g.release
	return g.result, nil
}

func TestSubmitPractice_ConcurrentSameToken(t *testing.T) {
	gen := &gatedGenerator{
		entered: make(chan struct{}, 2),
		release: make(chan struct{}),
		result:  goodFeedback(),
	}
	env := newTestEnv(t, gen)

	started, err := env.practice.StartPractice(context.Background(), PracticeStartRequest{
		UserID: "u1", SoftSkillID: env.skill.ID, ScenarioID: env.scenario.ID,
	})
	if err != nil {
		t.Fatalf("StartPractice() error = %v", err)
	}

	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := env.practice.SubmitPractice(context.Background(), PracticeSubmitRequest{
				SessionID: started.SessionID, UserInput: "racing answer", DurationSeconds: 60,
			})
			errs <- err
		}()
	}

	// 两个提交都通过了状态预检、卡在生成器里，再同时放行
	<-gen.entered
	<-gen.entered
	close(gen.release)

	var succeeded, conflicted int
	for i := 0; i < 2; i++ {
		switch err := <-errs; {
		case err == nil:
			succeeded++
		case errors.Is(err, util.ErrSessionCompleted):
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 || conflicted != 1 {
		t.Errorf("succeeded = %d, conflicted = %d, want exactly one of each", succeeded, conflicted)
	}

	var stored model.PracticeSession
	if err := env.db.Where("session_id = ?", started.SessionID).First(&stored).Error; err != nil {
		t.Fatalf("load session: %v", err)
	}
	if stored.Status != model.PracticeStatusCompleted {
		t.Errorf("status = %q, want completed", stored.Status)
	}

	var feedbackCount int64
	env.db.Model(&model.PracticeFeedback{}).Count(&feedbackCount)
	if feedbackCount != 1 {
		t.Errorf("feedback records = %d, want 1", feedbackCount)
	}

	var progress model.SkillProgress
	if err := env.db.Where("user_id = ? AND soft_skill_id = ?", "u1", env.skill.ID).First(&progress).Error; err != nil {
		t.Fatalf("load progress: %v", err)
	}
	if progress.CompletedPractices != 1 {
		t.Errorf("CompletedPractices = %d, want 1", progress.CompletedPractices)
	}
}

func TestSubmitPractice_GatewayFailureLeavesPending(t *testing.T) {
	gen := &fakeGenerator{err: util.ErrFeedbackUnavailable}
	env := newTestEnv(t, gen)

	started, _ := env.practice.StartPractice(context.Background(), PracticeStartRequest{
		UserID: "u1", SoftSkillID: env.skill.ID, ScenarioID: env.scenario.ID,
	})

	_, err := env.practice.SubmitPractice(context.Background(), PracticeSubmitRequest{
		SessionID: started.SessionID, UserInput: "my answer", DurationSeconds: 30,
	})
	if !errors.Is(err, util.ErrFeedbackUnavailable) {
		t.Fatalf("error = %v, want ErrFeedbackUnavailable", err)
	}

	var stored model.PracticeSession
	env.db.Where("session_id = ?", started.SessionID).First(&stored)
	if stored.Status != model.PracticeStatusPending {
		t.Errorf("status = %q, want pending after gateway failure", stored.Status)
	}
	var count int64
	env.db.Model(&model.PracticeFeedback{}).Count(&count)
	if count != 0 {
		t.Errorf("feedback records = %d, want 0", count)
	}

	// 网关恢复后同一令牌重试成功
	gen.err = nil
	gen.result = goodFeedback()
	result, err := env.practice.SubmitPractice(context.Background(), PracticeSubmitRequest{
		SessionID: started.SessionID, UserInput: "my answer", DurationSeconds: 30,
	})
	if err != nil {
		t.Fatalf("retry submit error = %v", err)
	}
	if result.Status != model.PracticeStatusCompleted {
		t.Errorf("retry status = %q, want completed", result.Status)
	}
}

func TestSubmitPractice_ValidatesInput(t *testing.T) {
	env := newTestEnv(t, &fakeGenerator{result: goodFeedback()})

	started, _ := env.practice.StartPractice(context.Background(), PracticeStartRequest{
		UserID: "u1", SoftSkillID: env.skill.ID, ScenarioID: env.scenario.ID,
	})

	if _, err := env.practice.SubmitPractice(context.Background(), PracticeSubmitRequest{
		SessionID: started.SessionID, UserInput: "   ", DurationSeconds: 30,
	}); !errors.Is(err, util.ErrEmptyResponse) {
		t.Errorf("blank input error = %v, want ErrEmptyResponse", err)
	}

	if _, err := env.practice.SubmitPractice(context.Background(), PracticeSubmitRequest{
		SessionID: started.SessionID, UserInput: "answer", DurationSeconds: -5,
	}); !errors.Is(err, util.ErrInvalidDuration) {
		t.Errorf("negative duration error = %v, want ErrInvalidDuration", err)
	}
}

func TestDraftScores_Deterministic(t *testing.T) {
	a := draftScores("I would listen first and ask: what do you need?")
	b := draftScores("I would listen first and ask: what do you need?")
	if a != b {
		t.Errorf("draftScores not deterministic: %+v vs %+v", a, b)
	}
	if err := a.Validate(); err != nil {
		t.Errorf("draft scores out of range: %v", err)
	}
}

func TestGetPracticeResult_Pending(t *testing.T) {
	env := newTestEnv(t, &fakeGenerator{result: goodFeedback()})

	started, err := env.practice.StartPractice(context.Background(), PracticeStartRequest{
		UserID: "u1", SoftSkillID: env.skill.ID, ScenarioID: env.scenario.ID,
	})
	if err != nil {
		t.Fatalf("StartPractice() error = %v", err)
	}

	result, err := env.practice.GetPracticeResult(started.SessionID)
	if err != nil {
		t.Fatalf("GetPracticeResult() error = %v", err)
	}
	if result.Status != model.PracticeStatusPending {
		t.Errorf("Status = %q, want pending", result.Status)
	}
	if result.Scores != nil || result.Feedback != nil || result.CompletedAt != nil {
		t.Error("pending result must not carry scores, feedback or completion time")
	}
}

func TestGetPracticeResult_Completed(t *testing.T) {
	env := newTestEnv(t, &fakeGenerator{result: goodFeedback()})

	started, _ := env.practice.StartPractice(context.Background(), PracticeStartRequest{
		UserID: "u1", SoftSkillID: env.skill.ID, ScenarioID: env.scenario.ID,
	})
	if _, err := env.practice.SubmitPractice(context.Background(), PracticeSubmitRequest{
		SessionID: started.SessionID, UserInput: "my answer", DurationSeconds: 90,
	}); err != nil {
		t.Fatalf("SubmitPractice() error = %v", err)
	}

	result, err := env.practice.GetPracticeResult(started.SessionID)
	if err != nil {
		t.Fatalf("GetPracticeResult() error = %v", err)
	}
	if result.Status != model.PracticeStatusCompleted {
		t.Errorf("Status = %q, want completed", result.Status)
	}
	if result.Scores == nil || result.Scores.Overall != 3.6 {
		t.Errorf("Scores = %+v, want overall 3.6", result.Scores)
	}
	if result.PointsEarned != 12.0 {
		t.Errorf("PointsEarned = %v, want 12.0", result.PointsEarned)
	}
	if result.DurationSeconds != 90 {
		t.Errorf("DurationSeconds = %d, want 90", result.DurationSeconds)
	}
	if result.CompletedAt == nil {
		t.Error("CompletedAt not set")
	}
	if result.Feedback == nil || result.Feedback.OverallFeedback == "" {
		t.Errorf("Feedback = %+v, want persisted feedback text", result.Feedback)
	}
	if result.Feedback != nil && len(result.Feedback.ImprovementAreas) != 1 {
		t.Errorf("ImprovementAreas = %v, want the stored area", result.Feedback.ImprovementAreas)
	}
}

func TestGetPracticeResult_UnknownToken(t *testing.T) {
	env := newTestEnv(t, &fakeGenerator{result: goodFeedback()})

	_, err := env.practice.GetPracticeResult("no-such-token")
	if !errors.Is(err, util.ErrSessionNotFound) {
		t.Errorf("error = %v, want ErrSessionNotFound", err)
	}
}

func TestGetPracticeEvents(t *testing.T) {
	env := newTestEnv(t, &fakeGenerator{result: goodFeedback()})

	started, _ := env.practice.StartPractice(context.Background(), PracticeStartRequest{
		UserID: "u1", SoftSkillID: env.skill.ID, ScenarioID: env.scenario.ID,
	})
	if _, err := env.practice.SubmitPractice(context.Background(), PracticeSubmitRequest{
		SessionID: started.SessionID, UserInput: "my answer", DurationSeconds: 60,
	}); err != nil {
		t.Fatalf("SubmitPractice() error = %v", err)
	}

	logs, err := env.practice.GetPracticeEvents(started.SessionID)
	if err != nil {
		t.Fatalf("GetPracticeEvents() error = %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("events = %d, want 2", len(logs))
	}
	if logs[0].EventType != model.EventPracticeStarted || logs[1].EventType != model.EventPracticeCompleted {
		t.Errorf("event order = %q, %q", logs[0].EventType, logs[1].EventType)
	}

	if _, err := env.practice.GetPracticeEvents("no-such-token"); !errors.Is(err, util.ErrSessionNotFound) {
		t.Errorf("unknown token error = %v, want ErrSessionNotFound", err)
	}
}
