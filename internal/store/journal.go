package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/soyeahso/llmsession/internal/eventlog"
)

// SessionSummary describes one journaled session.
type SessionSummary struct {
	ID        string        `json:"id"`
	Mode      eventlog.Mode `json:"mode"`
	Events    int           `json:"events"`
	FirstSeen time.Time     `json:"firstSeen"`
	LastSeen  time.Time     `json:"lastSeen"`
}

// Journal is an eventlog.Sink that archives every event it receives. It
// keeps log records only; conversation history is never restored from it.
type Journal struct {
	db *DB
}

// NewJournal creates a journal using the given database.
func NewJournal(db *DB) *Journal {
	return &Journal{db: db}
}

const eventColumns = `session_id, kind, mode, timestamp, user_message, model, response,
	input_tokens, output_tokens, latency_seconds, error`

// Log stores e. A failed insert is logged and dropped; the caller never
// sees it.
func (j *Journal) Log(e eventlog.Event) {
	if err := j.insert(e); err != nil {
		j.db.log.Error().Err(err).
			Str("session_id", e.SessionID).
			Str("event", string(e.Kind)).
			Msg("failed to journal event")
	}
}

func (j *Journal) insert(e eventlog.Event) error {
	ts := formatTime(e.Timestamp)

	tx, err := j.db.sql.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO sessions (id, mode, first_seen, last_seen, event_count)
		 VALUES (?, ?, ?, ?, 1)
		 ON CONFLICT(id) DO UPDATE SET
		   last_seen = excluded.last_seen,
		   event_count = event_count + 1`,
		e.SessionID, string(e.Mode), ts, ts,
	); err != nil {
		return fmt.Errorf("upserting session: %w", err)
	}

	if _, err := tx.Exec(
		`INSERT INTO events (`+eventColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.SessionID, string(e.Kind), string(e.Mode), ts,
		e.UserMessage, e.Model, e.Response,
		nullInt(e.InputTokens), nullInt(e.OutputTokens),
		e.LatencySeconds, e.Error,
	); err != nil {
		return fmt.Errorf("inserting event: %w", err)
	}

	return tx.Commit()
}

// Session returns the events of a session in emission order, or nil if
// the session is unknown.
func (j *Journal) Session(id string) ([]eventlog.Event, error) {
	rows, err := j.db.sql.Query(
		`SELECT `+eventColumns+` FROM events WHERE session_id = ? ORDER BY id`, id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

// Sessions lists journaled sessions, most recently active first.
func (j *Journal) Sessions() ([]SessionSummary, error) {
	rows, err := j.db.sql.Query(
		`SELECT id, mode, event_count, first_seen, last_seen
		 FROM sessions ORDER BY last_seen DESC, id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SessionSummary
	for rows.Next() {
		var s SessionSummary
		var mode, first, last string
		if err := rows.Scan(&s.ID, &mode, &s.Events, &first, &last); err != nil {
			return nil, err
		}
		s.Mode = eventlog.Mode(mode)
		s.FirstSeen = parseTime(first)
		s.LastSeen = parseTime(last)
		out = append(out, s)
	}
	return out, rows.Err()
}

// Search finds events whose user message, response or error text matches
// the FTS5 query. Results are ranked by relevance. Limit of 0 defaults to 20.
func (j *Journal) Search(query string, limit int) ([]eventlog.Event, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := j.db.sql.Query(
		`SELECT e.session_id, e.kind, e.mode, e.timestamp, e.user_message, e.model, e.response,
		        e.input_tokens, e.output_tokens, e.latency_seconds, e.error
		 FROM events_fts
		 JOIN events e ON e.id = events_fts.rowid
		 WHERE events_fts MATCH ?
		 ORDER BY rank
		 LIMIT ?`,
		query, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

// DeleteSession removes a session and all of its events.
func (j *Journal) DeleteSession(id string) error {
	tx, err := j.db.sql.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM events WHERE session_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

func scanEvents(rows *sql.Rows) ([]eventlog.Event, error) {
	var events []eventlog.Event
	for rows.Next() {
		var e eventlog.Event
		var kind, mode, ts string
		var in, out sql.NullInt64

		if err := rows.Scan(
			&e.SessionID, &kind, &mode, &ts,
			&e.UserMessage, &e.Model, &e.Response,
			&in, &out, &e.LatencySeconds, &e.Error,
		); err != nil {
			return nil, err
		}

		e.Kind = eventlog.Kind(kind)
		e.Mode = eventlog.Mode(mode)
		e.Timestamp = parseTime(ts)
		e.InputTokens = intPtr(in)
		e.OutputTokens = intPtr(out)
		events = append(events, e)
	}
	return events, rows.Err()
}

// timeLayout is fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(timeLayout, s)
	return t
}

func nullInt(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}
