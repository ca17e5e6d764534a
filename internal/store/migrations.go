package store

// migration represents a single schema migration.
type migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations is the ordered list of all schema migrations.
var migrations = []migration{
	{
		Version: 1,
		Name:    "create sessions and events",
		SQL: `
			CREATE TABLE sessions (
				id           TEXT PRIMARY KEY,
				mode         TEXT NOT NULL,
				first_seen   TEXT NOT NULL,
				last_seen    TEXT NOT NULL,
				event_count  INTEGER NOT NULL DEFAULT 0
			);

			CREATE INDEX idx_sessions_last_seen ON sessions (last_seen);

			CREATE TABLE events (
				id               INTEGER PRIMARY KEY AUTOINCREMENT,
				session_id       TEXT NOT NULL,
				kind             TEXT NOT NULL,
				mode             TEXT NOT NULL,
				timestamp        TEXT NOT NULL,
				user_message     TEXT NOT NULL DEFAULT '',
				model            TEXT NOT NULL DEFAULT '',
				response         TEXT NOT NULL DEFAULT '',
				input_tokens     INTEGER,
				output_tokens    INTEGER,
				latency_seconds  REAL NOT NULL DEFAULT 0,
				error            TEXT NOT NULL DEFAULT '',
				FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE
			);

			CREATE INDEX idx_events_session ON events (session_id, id);
			CREATE INDEX idx_events_kind ON events (kind);
		`,
	},
	{
		Version: 2,
		Name:    "create event text search with FTS5",
		SQL: `
			CREATE VIRTUAL TABLE events_fts USING fts5(
				user_message,
				response,
				error,
				content='events',
				content_rowid='id'
			);

			CREATE TRIGGER events_ai AFTER INSERT ON events BEGIN
				INSERT INTO events_fts(rowid, user_message, response, error)
				VALUES (new.id, new.user_message, new.response, new.error);
			END;

			CREATE TRIGGER events_ad AFTER DELETE ON events BEGIN
				INSERT INTO events_fts(events_fts, rowid, user_message, response, error)
				VALUES ('delete', old.id, old.user_message, old.response, old.error);
			END;
		`,
	},
}
