package services

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	"faceguard.io/application/liveness"
	"faceguard.io/entities"
	"faceguard.io/infrastructure/logger"
)

var (
	ErrSessionNotFound = errors.New("liveness session not found")
	ErrSessionBusy     = errors.New("liveness session is processing another frame")
	ErrNoDetector      = errors.New("face detection is not available")
)

// SnapshotStore persists session snapshots between requests.
type SnapshotStore interface {
	Save(ctx context.Context, session entities.LivenessSession, ttl time.Duration) error
	// Load returns nil, nil when the session is unknown.
	Load(ctx context.Context, id string) (*entities.LivenessSession, error)
	Delete(ctx context.Context, id string) error
}

// AuditSink records verdict transitions.
type AuditSink interface {
	LogDecision(ctx context.Context, entry entities.DecisionAuditEntry) error
}

// ImageEngine runs encoded frames through detection and one session's pipeline.
type ImageEngine interface {
	Process(ctx context.Context, payload []byte) (entities.FrameResult, error)
	Close()
}

// ImageEngineFactory builds the image engine of a session on its first frame.
// It returns ErrNoDetector when the detection models are not loaded.
type ImageEngineFactory func(session *liveness.Session) (ImageEngine, error)

// ScoreFrame carries externally computed per-frame signals.
type ScoreFrame struct {
	FacePresent       bool
	FaceWidth         int
	RawScore          float64
	QualityAdjustment float64
}

type Options struct {
	IdleTTL     time.Duration
	SnapshotTTL time.Duration
	Snapshots   SnapshotStore
	Audit       AuditSink
	Images      ImageEngineFactory
	// ConfigFor resolves a policy name; defaults to liveness.EngineConfigForPolicy.
	ConfigFor func(policy string) (liveness.EngineConfig, error)
}

type sessionEntry struct {
	mu       sync.Mutex
	session  *liveness.Session
	record   entities.LivenessSession
	engine   ImageEngine
	lastSeen time.Time
	closed   bool
}

// Registry owns every live session. Frames for one session are serialised by
// a per-session lock that is never waited on: a second concurrent frame gets
// ErrSessionBusy.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry
	opts     Options
	now      func() time.Time
}

func NewRegistry(opts Options) *Registry {
	if opts.ConfigFor == nil {
		opts.ConfigFor = liveness.EngineConfigForPolicy
	}
	if opts.IdleTTL <= 0 {
		opts.IdleTTL = 10 * time.Minute
	}
	if opts.SnapshotTTL <= 0 {
		opts.SnapshotTTL = 3 * opts.IdleTTL
	}
	return &Registry{
		sessions: map[string]*sessionEntry{},
		opts:     opts,
		now:      time.Now,
	}
}

func (r *Registry) Create(ctx context.Context, policy string) (entities.LivenessSession, error) {
	cfg, err := r.opts.ConfigFor(policy)
	if err != nil {
		return entities.LivenessSession{}, err
	}
	session := liveness.NewSession(cfg)
	record := *entities.LivenessSession{Policy: cfg.Policy}.ParseModel().(*entities.LivenessSession)
	record.Smoother, record.Decision = session.Snapshot()

	entry := &sessionEntry{session: session, record: record, lastSeen: r.now()}
	r.mu.Lock()
	r.sessions[record.ID] = entry
	r.mu.Unlock()

	r.saveSnapshot(ctx, record)
	logger.Info("liveness session created", logger.LoggerOptions{
		Key:  "session",
		Data: map[string]any{"id": record.ID, "policy": record.Policy},
	})
	return record, nil
}

func (r *Registry) Get(ctx context.Context, id string) (entities.LivenessSession, error) {
	entry, err := r.acquire(ctx, id)
	if err != nil {
		return entities.LivenessSession{}, err
	}
	defer entry.mu.Unlock()
	return entry.record, nil
}

// SubmitScores drives the engine with signals computed by the caller.
func (r *Registry) SubmitScores(ctx context.Context, id string, frame ScoreFrame) (entities.FrameResult, error) {
	entry, err := r.acquire(ctx, id)
	if err != nil {
		return entities.FrameResult{}, err
	}
	defer entry.mu.Unlock()

	var result entities.FrameResult
	switch {
	case !frame.FacePresent:
		result = entry.session.FaceMissing()
	case frame.FaceWidth <= 0:
		result = entry.session.FaceTooSmall()
	default:
		face := entities.FaceObservation{Box: image.Rect(0, 0, frame.FaceWidth, frame.FaceWidth)}
		result = entry.session.ObserveFace(face, frame.RawScore, frame.QualityAdjustment)
	}
	r.commit(ctx, entry, result)
	return result, nil
}

// SubmitImage decodes the frame, runs detection and the full pipeline.
func (r *Registry) SubmitImage(ctx context.Context, id string, payload []byte) (entities.FrameResult, error) {
	entry, err := r.acquire(ctx, id)
	if err != nil {
		return entities.FrameResult{}, err
	}
	defer entry.mu.Unlock()

	if entry.engine == nil {
		if r.opts.Images == nil {
			return entities.FrameResult{}, ErrNoDetector
		}
		engine, err := r.opts.Images(entry.session)
		if err != nil {
			return entities.FrameResult{}, err
		}
		entry.engine = engine
	}

	result, err := entry.engine.Process(ctx, payload)
	if err != nil {
		return entities.FrameResult{}, err
	}
	r.commit(ctx, entry, result)
	return result, nil
}

func (r *Registry) Reset(ctx context.Context, id string) (entities.FrameResult, error) {
	entry, err := r.acquire(ctx, id)
	if err != nil {
		return entities.FrameResult{}, err
	}
	defer entry.mu.Unlock()

	result := entry.session.Reset()
	r.commit(ctx, entry, result)
	return result, nil
}

func (r *Registry) Delete(ctx context.Context, id string) error {
	entry, err := r.acquire(ctx, id)
	if err != nil {
		return err
	}
	defer entry.mu.Unlock()

	// the snapshot goes first, while entry.mu still turns concurrent frames
	// away; otherwise a frame could restore and re-save it.
	if r.opts.Snapshots != nil {
		if err := r.opts.Snapshots.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete session %s: %w", id, err)
		}
	}
	r.drop(id, entry)
	logger.Info("liveness session deleted", logger.LoggerOptions{Key: "id", Data: id})
	return nil
}

// EvictIdle drops in-memory sessions not touched for IdleTTL. Their snapshots
// stay in the store until it expires them, so an evicted session can resume.
func (r *Registry) EvictIdle() int {
	cutoff := r.now().Add(-r.opts.IdleTTL)

	r.mu.Lock()
	candidates := map[string]*sessionEntry{}
	for id, entry := range r.sessions {
		candidates[id] = entry
	}
	r.mu.Unlock()

	evicted := 0
	for id, entry := range candidates {
		if !entry.mu.TryLock() {
			continue
		}
		if !entry.closed && entry.lastSeen.Before(cutoff) {
			r.drop(id, entry)
			evicted++
		}
		entry.mu.Unlock()
	}
	if evicted > 0 {
		logger.Info("evicted idle liveness sessions", logger.LoggerOptions{Key: "count", Data: evicted})
	}
	return evicted
}

// RunJanitor evicts idle sessions every interval until ctx is done.
func (r *Registry) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.EvictIdle()
		}
	}
}

// Close releases every session's resources.
func (r *Registry) Close() {
	r.mu.Lock()
	entries := r.sessions
	r.sessions = map[string]*sessionEntry{}
	r.mu.Unlock()

	for _, entry := range entries {
		entry.mu.Lock()
		entry.closed = true
		if entry.engine != nil {
			entry.engine.Close()
			entry.engine = nil
		}
		entry.mu.Unlock()
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// acquire returns the locked entry for id, restoring it from the snapshot
// store when it is not in memory.
func (r *Registry) acquire(ctx context.Context, id string) (*sessionEntry, error) {
	r.mu.Lock()
	entry, ok := r.sessions[id]
	r.mu.Unlock()

	if !ok {
		restored, err := r.restore(ctx, id)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		if existing, found := r.sessions[id]; found {
			entry = existing
		} else {
			r.sessions[id] = restored
			entry = restored
		}
		r.mu.Unlock()
	}

	if !entry.mu.TryLock() {
		return nil, ErrSessionBusy
	}
	if entry.closed {
		entry.mu.Unlock()
		return nil, ErrSessionNotFound
	}
	entry.lastSeen = r.now()
	return entry, nil
}

func (r *Registry) restore(ctx context.Context, id string) (*sessionEntry, error) {
	if r.opts.Snapshots == nil {
		return nil, ErrSessionNotFound
	}
	record, err := r.opts.Snapshots.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("restore session %s: %w", id, err)
	}
	if record == nil {
		return nil, ErrSessionNotFound
	}
	cfg, err := r.opts.ConfigFor(record.Policy)
	if err != nil {
		return nil, fmt.Errorf("restore session %s: %w", id, err)
	}
	session := liveness.NewSession(cfg)
	session.Restore(record.Smoother, record.Decision)

	logger.Info("liveness session restored from snapshot", logger.LoggerOptions{Key: "id", Data: id})
	return &sessionEntry{session: session, record: *record, lastSeen: r.now()}, nil
}

// drop removes entry from the map and releases its engine. The caller holds
// entry.mu.
func (r *Registry) drop(id string, entry *sessionEntry) {
	r.mu.Lock()
	if r.sessions[id] == entry {
		delete(r.sessions, id)
	}
	r.mu.Unlock()

	entry.closed = true
	if entry.engine != nil {
		entry.engine.Close()
		entry.engine = nil
	}
}

// commit records a processed frame on the entry, persists the snapshot and
// audits verdict transitions. The caller holds entry.mu.
func (r *Registry) commit(ctx context.Context, entry *sessionEntry, result entities.FrameResult) {
	previous := entities.VerdictUncertain
	if entry.record.LastResult != nil {
		previous = entry.record.LastResult.Verdict
	}

	entry.record.FramesProcessed++
	entry.record.Smoother, entry.record.Decision = entry.session.Snapshot()
	entry.record.LastResult = &result
	entry.record.UpdatedAt = r.now()

	logger.Debug("liveness frame processed", logger.LoggerOptions{
		Key: "frame",
		Data: map[string]any{
			"session":  entry.record.ID,
			"index":    entry.record.FramesProcessed,
			"verdict":  result.Verdict,
			"tag":      result.DebugTag,
			"final":    result.FinalScore,
			"smoothed": result.SmoothedScore,
		},
	})

	r.saveSnapshot(ctx, entry.record)

	if result.Verdict == previous {
		return
	}
	logger.Info("liveness verdict changed", logger.LoggerOptions{
		Key: "transition",
		Data: map[string]any{
			"session": entry.record.ID,
			"from":    previous,
			"to":      result.Verdict,
			"tag":     result.DebugTag,
		},
	})
	if r.opts.Audit == nil {
		return
	}
	err := r.opts.Audit.LogDecision(ctx, entities.DecisionAuditEntry{
		SessionID:             entry.record.ID,
		FrameIndex:            entry.record.FramesProcessed,
		PreviousVerdict:       previous,
		Verdict:               result.Verdict,
		DebugTag:              result.DebugTag,
		RawScore:              result.RawScore,
		FinalScore:            result.FinalScore,
		QualityAdjustment:     result.QualityAdjustment,
		RealConsecutive:       result.RealConsecutive,
		SpoofConsecutive:      result.SpoofConsecutive,
		ConfidenceAccumulator: result.ConfidenceAccumulator,
	})
	if err != nil {
		logger.Warning("failed to audit verdict transition", logger.LoggerOptions{Key: "error", Data: err.Error()})
	}
}

func (r *Registry) saveSnapshot(ctx context.Context, record entities.LivenessSession) {
	if r.opts.Snapshots == nil {
		return
	}
	if err := r.opts.Snapshots.Save(ctx, record, r.opts.SnapshotTTL); err != nil {
		logger.Warning("failed to persist session snapshot", logger.LoggerOptions{Key: "error", Data: err.Error()})
	}
}
