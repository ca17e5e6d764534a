package store

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/soyeahso/llmsession/internal/eventlog"
	"github.com/soyeahso/llmsession/internal/llm"
	"github.com/soyeahso/llmsession/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	log := logging.New(nil, "silent")
	db, err := Open(":memory:", log)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

var t0 = time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)

func startEvent(session string, mode eventlog.Mode, msg string, at time.Time) eventlog.Event {
	return eventlog.Event{
		Kind:        eventlog.KindStart,
		SessionID:   session,
		Timestamp:   at,
		Mode:        mode,
		UserMessage: msg,
		Model:       "gpt-4.1-nano",
	}
}

func successEvent(session string, mode eventlog.Mode, resp string, at time.Time) eventlog.Event {
	return eventlog.Event{
		Kind:           eventlog.KindSuccess,
		SessionID:      session,
		Timestamp:      at,
		Mode:           mode,
		Response:       resp,
		InputTokens:    llm.Tokens(12),
		OutputTokens:   llm.Tokens(6),
		LatencySeconds: 0.25,
	}
}

// --- DB/Migration tests ---

func TestOpen_InMemory(t *testing.T) {
	db := testDB(t)
	assert.NotNil(t, db)
	assert.NotNil(t, db.SQL())
}

func TestOpen_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "journal.db")
	db, err := Open(path, logging.New(nil, "silent"))
	require.NoError(t, err)

	NewJournal(db).Log(startEvent("s1", eventlog.ModeStateless, "hi", t0))
	require.NoError(t, db.Close())

	db2, err := Open(path, logging.New(nil, "silent"))
	require.NoError(t, err)
	defer db2.Close()

	events, err := NewJournal(db2).Session("s1")
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestMigrations_Applied(t *testing.T) {
	db := testDB(t)

	var count int
	err := db.sql.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, len(migrations), count)

	v, err := db.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, migrations[len(migrations)-1].Version, v)
}

func TestMigrations_Idempotent(t *testing.T) {
	db := testDB(t)

	// Running migrate again should be a no-op
	err := db.migrate()
	require.NoError(t, err)

	var count int
	err = db.sql.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, len(migrations), count)
}

func TestSchema_TablesExist(t *testing.T) {
	db := testDB(t)

	tables := []string{"sessions", "events", "events_fts"}
	for _, table := range tables {
		var name string
		err := db.sql.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

// --- Journal tests ---

func TestJournal_SessionRoundTrip(t *testing.T) {
	j := NewJournal(testDB(t))

	j.Log(startEvent("s1", eventlog.ModeStateful, "My name is Sunil.", t0))
	j.Log(successEvent("s1", eventlog.ModeStateful, "Nice to meet you, Sunil.", t0.Add(250*time.Millisecond)))

	events, err := j.Session("s1")
	require.NoError(t, err)
	require.Len(t, events, 2)

	start := events[0]
	assert.Equal(t, eventlog.KindStart, start.Kind)
	assert.Equal(t, eventlog.ModeStateful, start.Mode)
	assert.Equal(t, "My name is Sunil.", start.UserMessage)
	assert.Equal(t, "gpt-4.1-nano", start.Model)
	assert.True(t, t0.Equal(start.Timestamp))
	assert.Nil(t, start.InputTokens)

	done := events[1]
	assert.Equal(t, eventlog.KindSuccess, done.Kind)
	assert.Equal(t, "Nice to meet you, Sunil.", done.Response)
	require.NotNil(t, done.InputTokens)
	assert.Equal(t, 12, *done.InputTokens)
	assert.Equal(t, 6, *done.OutputTokens)
	assert.InDelta(t, 0.25, done.LatencySeconds, 1e-9)
	assert.True(t, t0.Add(250*time.Millisecond).Equal(done.Timestamp))
}

func TestJournal_ErrorEvent(t *testing.T) {
	j := NewJournal(testDB(t))

	j.Log(eventlog.Event{
		Kind:           eventlog.KindError,
		SessionID:      "s1",
		Timestamp:      t0,
		Mode:           eventlog.ModeStateless,
		Error:          "openai: 429 rate_limited",
		LatencySeconds: 0.1,
	})

	events, err := j.Session("s1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, eventlog.KindError, events[0].Kind)
	assert.Equal(t, "openai: 429 rate_limited", events[0].Error)
	assert.Nil(t, events[0].InputTokens)
	assert.Nil(t, events[0].OutputTokens)
}

func TestJournal_SessionUnknown(t *testing.T) {
	j := NewJournal(testDB(t))

	events, err := j.Session("nonexistent")
	require.NoError(t, err)
	assert.Nil(t, events)
}

func TestJournal_SessionsKeepSeparate(t *testing.T) {
	j := NewJournal(testDB(t))

	j.Log(startEvent("a", eventlog.ModeStateless, "one", t0))
	j.Log(startEvent("b", eventlog.ModeStateful, "two", t0.Add(time.Second)))
	j.Log(successEvent("a", eventlog.ModeStateless, "r", t0.Add(2*time.Second)))

	a, err := j.Session("a")
	require.NoError(t, err)
	assert.Len(t, a, 2)

	b, err := j.Session("b")
	require.NoError(t, err)
	assert.Len(t, b, 1)
}

func TestJournal_Sessions(t *testing.T) {
	j := NewJournal(testDB(t))

	j.Log(startEvent("a", eventlog.ModeStateless, "one", t0))
	j.Log(successEvent("a", eventlog.ModeStateless, "r", t0.Add(500*time.Millisecond)))
	j.Log(startEvent("b", eventlog.ModeStateful, "two", t0.Add(time.Second)))

	sessions, err := j.Sessions()
	require.NoError(t, err)
	require.Len(t, sessions, 2)

	// Most recently active first.
	assert.Equal(t, "b", sessions[0].ID)
	assert.Equal(t, eventlog.ModeStateful, sessions[0].Mode)
	assert.Equal(t, 1, sessions[0].Events)

	assert.Equal(t, "a", sessions[1].ID)
	assert.Equal(t, 2, sessions[1].Events)
	assert.True(t, t0.Equal(sessions[1].FirstSeen))
	assert.True(t, t0.Add(500*time.Millisecond).Equal(sessions[1].LastSeen))
}

func TestJournal_Sessions_Empty(t *testing.T) {
	j := NewJournal(testDB(t))

	sessions, err := j.Sessions()
	require.NoError(t, err)
	assert.Nil(t, sessions)
}

func TestJournal_Search(t *testing.T) {
	j := NewJournal(testDB(t))

	j.Log(startEvent("a", eventlog.ModeStateless, "My name is Sunil.", t0))
	j.Log(successEvent("a", eventlog.ModeStateless, "Nice to meet you, Sunil.", t0))
	j.Log(startEvent("b", eventlog.ModeStateless, "What is the weather", t0))

	results, err := j.Search("sunil", 10)
	require.NoError(t, err)
	assert.Len(t, results, 2)

	results, err = j.Search("weather", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "b", results[0].SessionID)
}

func TestJournal_Search_NoResults(t *testing.T) {
	j := NewJournal(testDB(t))
	j.Log(startEvent("a", eventlog.ModeStateless, "hello", t0))

	results, err := j.Search("xyzzy", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestJournal_DeleteSession(t *testing.T) {
	j := NewJournal(testDB(t))

	j.Log(startEvent("a", eventlog.ModeStateless, "unique xyzzy", t0))
	j.Log(startEvent("b", eventlog.ModeStateless, "other", t0))

	require.NoError(t, j.DeleteSession("a"))

	events, err := j.Session("a")
	require.NoError(t, err)
	assert.Empty(t, events)

	results, err := j.Search("xyzzy", 10)
	require.NoError(t, err)
	assert.Empty(t, results)

	sessions, err := j.Sessions()
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "b", sessions[0].ID)
}

func TestJournal_LogFailureIsSwallowed(t *testing.T) {
	var buf bytes.Buffer
	db, err := Open(":memory:", logging.New(&buf, "error"))
	require.NoError(t, err)
	j := NewJournal(db)
	require.NoError(t, db.Close())

	assert.NotPanics(t, func() {
		j.Log(startEvent("a", eventlog.ModeStateless, "hi", t0))
	})
	assert.Contains(t, buf.String(), "failed to journal event")
}

func TestJournal_IsSink(t *testing.T) {
	var _ eventlog.Sink = (*Journal)(nil)
}
