package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/mwantia/commands/history"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore persists entries in a single table ordered by an autoincrement
// sequence. The dbPath can be ":memory:" for an in-memory database.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	// Every pooled connection to ":memory:" would see its own database
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, err
	}

	store := &SQLiteStore{
		db: db,
	}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

func (ss *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS command_history (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		command TEXT NOT NULL,
		tokens TEXT NOT NULL,
		actor TEXT,
		time INTEGER NOT NULL,
		error TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_command_history_command ON command_history(command);
	`

	_, err := ss.db.Exec(schema)
	return err
}

// Returns the identifier name defined for this store
func (*SQLiteStore) Name() string {
	return "sqlite"
}

func (ss *SQLiteStore) Open(ctx context.Context) error {
	return ss.db.PingContext(ctx)
}

func (ss *SQLiteStore) Close(ctx context.Context) error {
	return ss.db.Close()
}

func (ss *SQLiteStore) Append(ctx context.Context, entry history.Entry) error {
	tokens, err := json.Marshal(entry.Tokens)
	if err != nil {
		return err
	}

	_, err = ss.db.ExecContext(ctx, `
		INSERT INTO command_history (id, command, tokens, actor, time, error)
		VALUES (?, ?, ?, ?, ?, ?)
	`, entry.ID.String(), entry.Command, string(tokens),
		nullString(entry.Actor), entry.Time.UnixNano(), nullString(entry.Error))

	return err
}

func (ss *SQLiteStore) List(ctx context.Context, prefix string, limit int) ([]history.Entry, error) {
	prefix = strings.ToLower(prefix)
	if limit <= 0 {
		limit = -1
	}

	rows, err := ss.db.QueryContext(ctx, `
		SELECT id, command, tokens, actor, time, error
		FROM command_history
		WHERE substr(command, 1, length(?)) = ?
		ORDER BY seq DESC
		LIMIT ?
	`, prefix, prefix, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]history.Entry, 0)
	for rows.Next() {
		var id, tokens string
		var actor, errText sql.NullString
		var nanos int64

		entry := history.Entry{}
		if err := rows.Scan(&id, &entry.Command, &tokens, &actor, &nanos, &errText); err != nil {
			return nil, err
		}

		if entry.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("invalid entry id %q: %w", id, err)
		}
		if err := json.Unmarshal([]byte(tokens), &entry.Tokens); err != nil {
			return nil, err
		}

		entry.Actor = actor.String
		entry.Error = errText.String
		entry.Time = time.Unix(0, nanos).UTC()

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
