// Package calllog persists per-call audit records. Rows hold flow metadata
// only: states, intent labels, end reasons and offer figures. Customer
// utterances, phone numbers and verification answers are never written.
package calllog

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const createCallsTableSQL = `
CREATE TABLE IF NOT EXISTS calls (
	session_id TEXT PRIMARY KEY,
	started_at_utc TEXT NOT NULL,
	ended_at_utc TEXT NOT NULL,
	end_reason TEXT NOT NULL,
	final_state TEXT NOT NULL,
	verified INTEGER NOT NULL,
	dispatch_count INTEGER NOT NULL,
	offer_version INTEGER NOT NULL,
	amount REAL NOT NULL,
	term_months INTEGER NOT NULL,
	turns INTEGER NOT NULL
)`

const createCallEventsTableSQL = `
CREATE TABLE IF NOT EXISTS call_events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at_utc TEXT NOT NULL,
	session_id TEXT NOT NULL,
	turn_idx INTEGER NOT NULL,
	state TEXT NOT NULL,
	intent TEXT NOT NULL,
	next_state TEXT NOT NULL
)`

const createCallEventsIndexSQL = `
CREATE INDEX IF NOT EXISTS idx_call_events_session ON call_events(session_id)`

const insertCallSQL = `
INSERT INTO calls (
	session_id,
	started_at_utc,
	ended_at_utc,
	end_reason,
	final_state,
	verified,
	dispatch_count,
	offer_version,
	amount,
	term_months,
	turns
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(session_id) DO UPDATE SET
	ended_at_utc = excluded.ended_at_utc,
	end_reason = excluded.end_reason,
	final_state = excluded.final_state,
	verified = excluded.verified,
	dispatch_count = excluded.dispatch_count,
	offer_version = excluded.offer_version,
	amount = excluded.amount,
	term_months = excluded.term_months,
	turns = excluded.turns`

const insertCallEventSQL = `
INSERT INTO call_events (created_at_utc, session_id, turn_idx, state, intent, next_state)
VALUES (?, ?, ?, ?, ?, ?)`

// Event is one classified turn: the state it arrived in, the intent label it
// resolved to and the state it moved the call into.
type Event struct {
	SessionID string
	TurnIndex int
	State     string
	Intent    string
	NextState string
}

// Outcome is the final row for one call.
type Outcome struct {
	SessionID     string
	StartedAtUTC  string
	EndedAtUTC    string
	EndReason     string
	FinalState    string
	Verified      bool
	DispatchCount int
	OfferVersion  int
	Amount        float64
	TermMonths    int
	Turns         int
}

// Store is a minimal wrapper for writing calls and call_events.
type Store struct {
	db *sql.DB
}

func Open(dbPath string) (*Store, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("db path is required")
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := ensureSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// RecordEvent logs one classified-turn transition.
func (s *Store) RecordEvent(ev Event) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("call log store is not initialized")
	}
	if _, err := s.db.Exec(
		insertCallEventSQL,
		time.Now().UTC().Format(time.RFC3339),
		strings.TrimSpace(ev.SessionID),
		ev.TurnIndex,
		ev.State,
		ev.Intent,
		ev.NextState,
	); err != nil {
		return fmt.Errorf("insert call event: %w", err)
	}
	return nil
}

// RecordOutcome upserts the final call row. Called once at hangup, but
// upserting makes a crash-then-reconnect overwrite harmless.
func (s *Store) RecordOutcome(out Outcome) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("call log store is not initialized")
	}
	if strings.TrimSpace(out.EndedAtUTC) == "" {
		out.EndedAtUTC = time.Now().UTC().Format(time.RFC3339)
	}
	if _, err := s.db.Exec(
		insertCallSQL,
		strings.TrimSpace(out.SessionID),
		out.StartedAtUTC,
		out.EndedAtUTC,
		out.EndReason,
		out.FinalState,
		boolToInt(out.Verified),
		out.DispatchCount,
		out.OfferVersion,
		out.Amount,
		out.TermMonths,
		out.Turns,
	); err != nil {
		return fmt.Errorf("insert call outcome: %w", err)
	}
	return nil
}

func ensureSchema(db *sql.DB) error {
	if _, err := db.Exec(createCallsTableSQL); err != nil {
		return fmt.Errorf("create calls table: %w", err)
	}
	if _, err := db.Exec(createCallEventsTableSQL); err != nil {
		return fmt.Errorf("create call_events table: %w", err)
	}
	if _, err := db.Exec(createCallEventsIndexSQL); err != nil {
		return fmt.Errorf("create call_events index: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
