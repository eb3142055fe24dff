package cache

import (
	"context"
	"time"

	"faceguard.io/entities"
	gocache "github.com/patrickmn/go-cache"
)

// MemorySnapshotRepository is the in-process snapshot store used when redis
// is not configured. Snapshots do not survive a restart.
type MemorySnapshotRepository struct {
	store *gocache.Cache
}

func NewMemorySnapshotRepository(defaultTTL time.Duration) *MemorySnapshotRepository {
	return &MemorySnapshotRepository{
		store: gocache.New(defaultTTL, defaultTTL),
	}
}

func (r *MemorySnapshotRepository) Save(_ context.Context, session entities.LivenessSession, ttl time.Duration) error {
	r.store.Set(snapshotKey(session.ID), session, ttl)
	return nil
}

func (r *MemorySnapshotRepository) Load(_ context.Context, id string) (*entities.LivenessSession, error) {
	value, found := r.store.Get(snapshotKey(id))
	if !found {
		return nil, nil
	}
	session := value.(entities.LivenessSession)
	return &session, nil
}

func (r *MemorySnapshotRepository) Delete(_ context.Context, id string) error {
	r.store.Delete(snapshotKey(id))
	return nil
}
