// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	jobqueue "github.com/okian/ascent/internal/adapters/mq/queue"
	workerpool "github.com/okian/ascent/internal/adapters/mq/worker"
	repository "github.com/okian/ascent/internal/adapters/repository"
	"github.com/okian/ascent/internal/ai/advice"
	"github.com/okian/ascent/internal/domain/arbitrage"
	"github.com/okian/ascent/internal/domain/dedupe"
	"github.com/okian/ascent/internal/domain/model"
	"github.com/okian/ascent/internal/domain/synergy"
	"github.com/okian/ascent/internal/domain/types"
	"github.com/okian/ascent/pkg/logger"
	"github.com/okian/ascent/pkg/metrics"
)

const anonymousPlayer = "anonymous"

// Archiver persists finished game sessions.
type Archiver interface {
	RecordSession(ctx context.Context, rec model.GameRecord) error
	Close() error
}

// session is one live game, owned by a single engine. The mutex serializes
// attempts because the engine itself is not safe for concurrent use.
type session struct {
	mu sync.Mutex

	id       string
	playerID string
	mode     arbitrage.Mode
	engine   *arbitrage.Engine

	totalScore float64
	bestScore  float64
	completed  bool
}

// analysisEntry tracks one submitted resume analysis through its lifecycle.
type analysisEntry struct {
	report types.AnalysisReport
}

// Service implements the API dependencies for the career assistant core:
// game sessions, the hall of fame, and resume synergy analyses.
type Service struct {
	mu sync.RWMutex

	// Core components
	fame     repository.Store
	deduper  dedupe.Deduper
	jobQueue jobqueue.Queue
	pool     *workerpool.Pool
	scorer   *synergy.Scorer
	adviser  advice.Service
	archive  Archiver

	// Session and analysis state
	sessions  map[string]*session
	active    int // sessions not yet completed
	analyses  map[string]*analysisEntry
	requestTo map[string]string // request ID -> analysis ID

	// Configuration
	workerCount int
	queueSize   int
	dedupeSize  int
	teamCount   int
	engineOpts  []arbitrage.Option

	// State
	started bool

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		sessions:    make(map[string]*session),
		analyses:    make(map[string]*analysisEntry),
		requestTo:   make(map[string]string),
		workerCount: 0, // pool scales with CPU count
		queueSize:   1024,
		dedupeSize:  100_000,
		teamCount:   3,
		adviser:     advice.NoopService{},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.logger.Info(ctx, "starting ascent service...")

	s.fame = repository.NewTreapStore()
	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.jobQueue = jobqueue.NewInMemoryQueue(
		jobqueue.WithCapacity(s.queueSize),
	)
	if s.scorer == nil {
		s.scorer = synergy.New()
	}

	s.pool = workerpool.NewPool(s.workerCount, s.jobQueue, s, s)
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "ascent service started",
		logger.Int("workers", s.pool.Size()),
		logger.Int("queueSize", s.queueSize),
		logger.Int("teamCount", s.teamCount),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping ascent service...")

	if s.pool != nil {
		_ = s.pool.Shutdown(ctx)
	}

	if s.archive != nil {
		if err := s.archive.Close(); err != nil {
			s.logger.Error(ctx, "error closing archive", logger.Error(err))
		}
	}

	s.started = false
	s.logger.Info(ctx, "ascent service stopped")
}

// StartGame opens a new game session for playerID in the given mode and
// issues the first pattern.
func (s *Service) StartGame(ctx context.Context, playerID, mode string) (types.GameStart, error) {
	parsed, err := arbitrage.ParseMode(mode)
	if err != nil {
		return types.GameStart{}, err
	}

	if strings.TrimSpace(playerID) == "" {
		playerID = anonymousPlayer
	}

	engine := arbitrage.New(s.engineOpts...)
	pattern, err := engine.StartGame(parsed)
	if err != nil {
		return types.GameStart{}, err
	}

	sess := &session{
		id:       uuid.NewString(),
		playerID: playerID,
		mode:     parsed,
		engine:   engine,
	}

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.active++
	active := s.active
	s.mu.Unlock()

	metrics.RecordSessionStarted(string(parsed))
	metrics.UpdateActiveSessions(active)

	s.logger.Info(ctx, "game started",
		logger.String("sessionID", sess.id),
		logger.String("playerID", playerID),
		logger.String("mode", string(parsed)),
	)

	return types.GameStart{
		SessionID: sess.id,
		Mode:      string(parsed),
		Pattern:   pattern,
		Remaining: engine.Remaining(),
	}, nil
}

// Attempt checks input against the session's current pattern. A correct
// attempt scores, feeds the hall of fame, and issues the next pattern; an
// incorrect one leaves the session unchanged so the pattern can be retried.
func (s *Service) Attempt(ctx context.Context, sessionID, input string) (types.AttemptResult, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return types.AttemptResult{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.completed {
		return types.AttemptResult{}, ErrSessionCompleted
	}

	metrics.RecordPatternChecked()

	correct, score := sess.engine.CheckPattern(input)
	result := types.AttemptResult{
		Correct: correct,
		Score:   score,
	}

	if correct {
		metrics.RecordPatternMatch(string(sess.mode))

		sess.totalScore += score
		if score > sess.bestScore {
			sess.bestScore = score
		}

		if _, err := s.fame.UpdateBest(ctx, string(sess.mode), sess.playerID, score); err != nil {
			s.logger.Error(ctx, "hall of fame update failed", logger.Error(err))
		} else {
			metrics.UpdateFamePlayers(s.fame.Count(ctx))
		}

		next, ok := sess.engine.NextPattern()
		if ok {
			result.NextPattern = next
		} else {
			sess.completed = true
			result.Completed = true
			s.finishSession(ctx, sess)
		}
	}

	result.State = toProgressState(sess.engine.State())
	return result, nil
}

// finishSession archives a completed game and updates session gauges.
// Called with the session lock held.
func (s *Service) finishSession(ctx context.Context, sess *session) {
	metrics.RecordSessionFinished(string(sess.mode))

	s.mu.Lock()
	s.active--
	active := s.active
	archive := s.archive
	s.mu.Unlock()
	metrics.UpdateActiveSessions(active)

	if archive == nil {
		return
	}

	state := sess.engine.State()
	rec := model.GameRecord{
		SessionID:         sess.id,
		PlayerID:          sess.playerID,
		Mode:              string(sess.mode),
		PatternsCompleted: state.PatternsCompleted,
		BestScore:         sess.bestScore,
		TotalScore:        sess.totalScore,
		FinishedAt:        time.Now().UTC(),
	}
	if err := archive.RecordSession(ctx, rec); err != nil {
		s.logger.Error(ctx, "failed to archive session",
			logger.String("sessionID", sess.id),
			logger.Error(err),
		)
	}
}

// SessionLeaderboard returns the session engine's per-mode top scores.
func (s *Service) SessionLeaderboard(ctx context.Context, sessionID string) (map[string][]float64, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	out := make(map[string][]float64)
	for mode, scores := range sess.engine.Leaderboard() {
		out[string(mode)] = scores
	}
	return out, nil
}

// Visualize renders the presentation wave for a pattern sequence using the
// session's current state.
func (s *Service) Visualize(ctx context.Context, sessionID, sequence string) (arbitrage.Visualization, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return arbitrage.Visualization{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	return sess.engine.Visualize(sequence), nil
}

// HallOfFame returns the top cross-session entries for a mode.
func (s *Service) HallOfFame(ctx context.Context, mode string, limit int) ([]types.Entry, error) {
	parsed, err := arbitrage.ParseMode(mode)
	if err != nil {
		return nil, err
	}

	entries, err := s.fame.TopN(ctx, string(parsed), limit)
	if err != nil {
		return nil, err
	}

	out := make([]types.Entry, len(entries))
	for i, entry := range entries {
		out[i] = types.Entry{
			Rank:     entry.Rank,
			PlayerID: entry.PlayerID,
			Score:    entry.Score,
		}
	}
	return out, nil
}

// AnalyzeResume runs a synchronous synergy analysis of resumeText against
// freshly generated team profiles. A non-positive teamCount falls back to
// the configured default.
func (s *Service) AnalyzeResume(ctx context.Context, resumeText string, teamCount int) (types.AnalysisReport, error) {
	if teamCount < 1 {
		teamCount = s.teamCount
	}

	candidate := s.scorer.ExtractCandidateSkills(resumeText)
	teams := s.scorer.GenerateTeamProfiles(synergy.FeatureCount(), teamCount)

	scores, err := s.scorer.Scores(candidate, teams)
	if err != nil {
		return types.AnalysisReport{}, err
	}
	messages, err := s.scorer.Analyze(candidate, teams)
	if err != nil {
		return types.AnalysisReport{}, err
	}

	tiers := make([]string, len(scores))
	for i, score := range scores {
		tiers[i] = synergy.QuickTier(score)
	}

	report := types.AnalysisReport{
		Status:    types.AnalysisComplete,
		Candidate: candidate,
		Teams:     teams,
		Scores:    scores,
		Messages:  messages,
		Tiers:     tiers,
	}

	if adviceText, err := s.adviser.TeamFitAdvice(ctx, resumeText, messages); err != nil {
		// Advice is best effort; the analysis stands without it.
		s.logger.Warn(ctx, "advice generation failed", logger.Error(err))
	} else {
		report.Advice = adviceText
	}

	return report, nil
}

// SubmitAnalysis queues a resume analysis for asynchronous processing.
// requestID is the caller's idempotency key: resubmitting it returns the
// original analysis ID with duplicate set.
func (s *Service) SubmitAnalysis(ctx context.Context, requestID, resumeText string) (string, bool, error) {
	if s.deduper.SeenAndRecord(ctx, requestID) {
		metrics.RecordAnalysisDuplicate()
		s.mu.RLock()
		analysisID := s.requestTo[requestID]
		s.mu.RUnlock()
		return analysisID, true, nil
	}

	analysisID := uuid.NewString()

	s.mu.Lock()
	s.analyses[analysisID] = &analysisEntry{
		report: types.AnalysisReport{
			AnalysisID: analysisID,
			RequestID:  requestID,
			Status:     types.AnalysisPending,
		},
	}
	s.requestTo[requestID] = analysisID
	s.mu.Unlock()

	job := model.AnalysisJob{
		AnalysisID: analysisID,
		RequestID:  requestID,
		ResumeText: resumeText,
		TeamCount:  s.teamCount,
	}
	if !s.jobQueue.Enqueue(ctx, job) {
		// Roll back so the caller can retry with the same request ID.
		s.deduper.Unrecord(ctx, requestID)
		s.mu.Lock()
		delete(s.analyses, analysisID)
		delete(s.requestTo, requestID)
		s.mu.Unlock()
		return "", false, ErrQueueFull
	}

	metrics.RecordAnalysisSubmitted()
	return analysisID, false, nil
}

// Analysis returns the current report for an analysis ID.
func (s *Service) Analysis(ctx context.Context, analysisID string) (types.AnalysisReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.analyses[analysisID]
	if !ok {
		return types.AnalysisReport{}, ErrAnalysisNotFound
	}
	return entry.report, nil
}

// Analyze implements the worker pool's analyzer over a queued job.
func (s *Service) Analyze(ctx context.Context, job model.AnalysisJob) (types.AnalysisReport, error) {
	report, err := s.AnalyzeResume(ctx, job.ResumeText, job.TeamCount)
	if err != nil {
		return types.AnalysisReport{}, err
	}

	report.AnalysisID = job.AnalysisID
	report.RequestID = job.RequestID
	return report, nil
}

// Complete implements the worker pool's sink: it publishes the finished
// report for readers.
func (s *Service) Complete(ctx context.Context, report types.AnalysisReport) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.analyses[report.AnalysisID]
	if !ok {
		// Report for an unknown analysis, likely rolled back. Drop it.
		return
	}
	entry.report = report
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":    s.started,
		"queueSize":  s.queueSize,
		"dedupeSize": s.dedupeSize,
		"teamCount":  s.teamCount,
	}

	if s.started {
		stats["workerCount"] = s.pool.Size()
		stats["queueLength"] = s.jobQueue.Len(ctx)
		stats["activeSessions"] = s.active
		stats["totalSessions"] = len(s.sessions)
		stats["famePlayers"] = s.fame.Count(ctx)
		stats["analyses"] = len(s.analyses)
	}

	return stats
}

// session looks up a live session by ID.
func (s *Service) session(id string) (*session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

func toProgressState(state arbitrage.State) types.ProgressState {
	return types.ProgressState{
		PatternsCompleted:    state.PatternsCompleted,
		NeuralResonance:      state.NeuralResonance,
		QuantumCoherence:     state.QuantumCoherence,
		RealityStability:     state.RealityStability,
		TimeCompressionRatio: state.TimeCompressionRatio,
		ExperienceDepth:      state.ExperienceDepth,
	}
}
