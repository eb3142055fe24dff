package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"faceguard.io/application/constants"
	"faceguard.io/entities"
)

func snapshotKey(id string) string {
	return fmt.Sprintf("%s-%s", constants.SESSION_SNAPSHOT_KEY_PREFIX, id)
}

// SessionSnapshotRepository keeps liveness session snapshots in redis as JSON.
type SessionSnapshotRepository struct {
	redis RedisRepository
}

func NewSessionSnapshotRepository() *SessionSnapshotRepository {
	return &SessionSnapshotRepository{}
}

func (r *SessionSnapshotRepository) Save(ctx context.Context, session entities.LivenessSession, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session snapshot: %w", err)
	}
	if err := r.redis.CreateEntry(ctx, snapshotKey(session.ID), payload, ttl); err != nil {
		return fmt.Errorf("save session snapshot: %w", err)
	}
	return nil
}

// Load returns nil, nil when no snapshot exists for id.
func (r *SessionSnapshotRepository) Load(ctx context.Context, id string) (*entities.LivenessSession, error) {
	payload, err := r.redis.FindOneByteArray(ctx, snapshotKey(id))
	if err != nil {
		return nil, fmt.Errorf("load session snapshot: %w", err)
	}
	if payload == nil {
		return nil, nil
	}
	var session entities.LivenessSession
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("decode session snapshot: %w", err)
	}
	return &session, nil
}

func (r *SessionSnapshotRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.redis.DeleteOne(ctx, snapshotKey(id)); err != nil {
		return fmt.Errorf("delete session snapshot: %w", err)
	}
	return nil
}
