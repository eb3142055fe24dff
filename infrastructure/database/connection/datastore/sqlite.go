package datastore

import (
	"database/sql"
	"fmt"

	"faceguard.io/infrastructure/env"
	"faceguard.io/infrastructure/logger"
	_ "modernc.org/sqlite"
)

var (
	DB *sql.DB
)

// ConnectToDatabase opens the audit database at AUDIT_DB_PATH. An empty path
// disables auditing.
func ConnectToDatabase() error {
	path := env.GetString("AUDIT_DB_PATH", "faceguard-audit.db")
	if path == "" {
		logger.Info("AUDIT_DB_PATH empty, decision audit disabled")
		return nil
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open audit db: %w", err)
	}
	// sqlite allows a single writer
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("ping audit db: %w", err)
	}
	DB = db
	logger.Info("audit database ready", logger.LoggerOptions{
		Key:  "path",
		Data: path,
	})
	return nil
}

func DisconnectDatabase() {
	if DB != nil {
		DB.Close()
		DB = nil
	}
}
