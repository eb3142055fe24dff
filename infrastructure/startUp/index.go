package startup

import (
	"context"
	"time"

	"faceguard.io/application/liveness"
	livenessService "faceguard.io/application/services/liveness"
	"faceguard.io/infrastructure/biometric"
	"faceguard.io/infrastructure/database"
	cacheConnection "faceguard.io/infrastructure/database/connection/cache"
	"faceguard.io/infrastructure/database/connection/datastore"
	"faceguard.io/infrastructure/database/repository/audit"
	"faceguard.io/infrastructure/database/repository/cache"
	"faceguard.io/infrastructure/env"
	"faceguard.io/infrastructure/logger"
)

var stopJanitor context.CancelFunc

// Used to start services such as loggers, databases, models, etc.
func StartServices() {
	logger.InitializeLogger()
	if err := database.SetUpDatabase(); err != nil {
		logger.Error("failed to set up storage", logger.LoggerOptions{Key: "error", Data: err.Error()})
		panic(err)
	}
	biometric.InitialiseBiometricService()

	idleTTL := env.GetDuration("SESSION_IDLE_TTL", 10*time.Minute)
	opts := livenessService.Options{
		IdleTTL:     idleTTL,
		SnapshotTTL: env.GetDuration("SESSION_SNAPSHOT_TTL", 3*idleTTL),
		ConfigFor:   env.LoadEngineConfig,
		Images:      imageEngineFactory,
	}
	if cacheConnection.Client != nil {
		opts.Snapshots = cache.NewSessionSnapshotRepository()
	} else {
		opts.Snapshots = cache.NewMemorySnapshotRepository(opts.SnapshotTTL)
	}
	if datastore.DB != nil {
		auditRepo, err := audit.NewRepository(datastore.DB)
		if err != nil {
			logger.Error("failed to prepare decision audit log", logger.LoggerOptions{Key: "error", Data: err.Error()})
			panic(err)
		}
		opts.Audit = auditRepo
	}
	livenessService.SessionRegistry = livenessService.NewRegistry(opts)

	var ctx context.Context
	ctx, stopJanitor = context.WithCancel(context.Background())
	go livenessService.SessionRegistry.RunJanitor(ctx, env.GetDuration("SESSION_JANITOR_INTERVAL", time.Minute))
}

func imageEngineFactory(session *liveness.Session) (livenessService.ImageEngine, error) {
	if !biometric.Detector.IsHealthy() {
		return nil, livenessService.ErrNoDetector
	}
	return biometric.NewSessionEngine(session, biometric.Detector, biometric.Classifier), nil
}

// Used to clean up after services that have been shutdown.
func CleanUpServices() {
	if stopJanitor != nil {
		stopJanitor()
	}
	if livenessService.SessionRegistry != nil {
		livenessService.SessionRegistry.Close()
	}
	biometric.CloseBiometricService()
	database.CloseDatabase()
	logger.Sync()
}
