package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"faceguard.io/entities"
)

const schema = `
CREATE TABLE IF NOT EXISTS decision_audit (
    id                     TEXT PRIMARY KEY,
    session_id             TEXT NOT NULL,
    frame_index            INTEGER NOT NULL,
    previous_verdict       TEXT NOT NULL,
    verdict                TEXT NOT NULL,
    debug_tag              TEXT NOT NULL,
    raw_score              REAL NOT NULL,
    final_score            REAL NOT NULL,
    quality_adjustment     REAL NOT NULL,
    real_consecutive       INTEGER NOT NULL,
    spoof_consecutive      INTEGER NOT NULL,
    confidence_accumulator REAL NOT NULL,
    created_at             TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_decision_audit_session ON decision_audit(session_id, frame_index);
`

// Repository writes verdict transitions to the decision_audit table.
type Repository struct {
	db *sql.DB
}

// NewRepository creates the table if needed.
func NewRepository(db *sql.DB) (*Repository, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("audit schema: %w", err)
	}
	return &Repository{db: db}, nil
}

func (r *Repository) LogDecision(ctx context.Context, entry entities.DecisionAuditEntry) error {
	row := entry.ParseModel().(*entities.DecisionAuditEntry)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO decision_audit (id, session_id, frame_index, previous_verdict, verdict, debug_tag,
		 raw_score, final_score, quality_adjustment, real_consecutive, spoof_consecutive,
		 confidence_accumulator, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		row.ID, row.SessionID, row.FrameIndex, string(row.PreviousVerdict), string(row.Verdict), string(row.DebugTag),
		row.RawScore, row.FinalScore, row.QualityAdjustment, row.RealConsecutive, row.SpoofConsecutive,
		row.ConfidenceAccumulator, row.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("log decision: %w", err)
	}
	return nil
}

// FindBySession returns the transitions of one session in frame order.
func (r *Repository) FindBySession(ctx context.Context, sessionID string) ([]entities.DecisionAuditEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, session_id, frame_index, previous_verdict, verdict, debug_tag, raw_score, final_score,
		 quality_adjustment, real_consecutive, spoof_consecutive, confidence_accumulator, created_at
		 FROM decision_audit WHERE session_id = ? ORDER BY frame_index ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("query decisions: %w", err)
	}
	defer rows.Close()

	var entries []entities.DecisionAuditEntry
	for rows.Next() {
		var (
			e                          entities.DecisionAuditEntry
			previous, verdict, tag, ts string
		)
		if err := rows.Scan(&e.ID, &e.SessionID, &e.FrameIndex, &previous, &verdict, &tag,
			&e.RawScore, &e.FinalScore, &e.QualityAdjustment, &e.RealConsecutive, &e.SpoofConsecutive,
			&e.ConfidenceAccumulator, &ts); err != nil {
			return nil, fmt.Errorf("scan decision: %w", err)
		}
		e.PreviousVerdict = entities.Verdict(previous)
		e.Verdict = entities.Verdict(verdict)
		e.DebugTag = entities.DebugTag(tag)
		if e.CreatedAt, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			return nil, fmt.Errorf("parse decision time: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
