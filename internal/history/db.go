package history

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/analyze"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no saved analysis has the requested id.
var ErrNotFound = errors.New("analysis not found")

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA busy_timeout = 5000;

CREATE TABLE IF NOT EXISTS analyses (
    id             INTEGER PRIMARY KEY AUTOINCREMENT,
    title          TEXT NOT NULL,
    source_path    TEXT NOT NULL DEFAULT '',
    created_at     TEXT NOT NULL,
    start_date     TEXT NOT NULL DEFAULT '',
    end_date       TEXT NOT NULL DEFAULT '',
    total_messages INTEGER NOT NULL DEFAULT 0,
    participants   TEXT NOT NULL DEFAULT '',
    stats_json     TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS analyses_created ON analyses(created_at);

CREATE VIRTUAL TABLE IF NOT EXISTS analyses_fts USING fts5(
    title,
    participants,
    content=analyses,
    content_rowid=id,
    tokenize='unicode61'
);

-- triggers to keep FTS in sync
CREATE TRIGGER IF NOT EXISTS analyses_ai AFTER INSERT ON analyses BEGIN
    INSERT INTO analyses_fts(rowid, title, participants) VALUES (new.id, new.title, new.participants);
END;

CREATE TRIGGER IF NOT EXISTS analyses_ad AFTER DELETE ON analyses BEGIN
    INSERT INTO analyses_fts(analyses_fts, rowid, title, participants) VALUES('delete', old.id, old.title, old.participants);
END;

CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT);
`

// schemaVersion is bumped whenever the stored stats JSON changes shape.
const schemaVersion = "1"

const timeLayout = "2006-01-02T15:04:05Z"

type DB struct {
	db  *sql.DB
	now func() time.Time
}

func Open(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	if _, err := db.Exec("INSERT OR IGNORE INTO meta (key, value) VALUES ('schema_version', ?)", schemaVersion); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema version: %w", err)
	}

	return &DB{db: db, now: time.Now}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

// SchemaVersion reports the version recorded when the file was created.
func (d *DB) SchemaVersion() (string, error) {
	var ver string
	err := d.db.QueryRow("SELECT value FROM meta WHERE key = 'schema_version'").Scan(&ver)
	return ver, err
}

type Entry struct {
	ID            int64
	Title         string
	SourcePath    string
	CreatedAt     time.Time
	StartDate     string
	EndDate       string
	TotalMessages int
	Participants  []string
	Stats         *analyze.ChatStats // set by Get only
}

// Save stores a finished analysis and returns its id.
func (d *DB) Save(title, sourcePath string, stats *analyze.ChatStats) (int64, error) {
	if stats == nil {
		return 0, errors.New("save analysis: nil stats")
	}
	body, err := json.Marshal(stats)
	if err != nil {
		return 0, fmt.Errorf("encode stats: %w", err)
	}

	tx, err := d.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO analyses (title, source_path, created_at, start_date, end_date, total_messages, participants, stats_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		title,
		sourcePath,
		d.now().UTC().Format(timeLayout),
		stats.StartDate,
		stats.EndDate,
		stats.TotalMessages,
		strings.Join(stats.Participants(), "\n"),
		string(body),
	)
	if err != nil {
		return 0, fmt.Errorf("insert analysis: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return id, tx.Commit()
}

type Options struct {
	Since time.Time // zero = no filter
	Limit int
}

// List returns saved analyses, newest first.
func (d *DB) List(opts Options) ([]Entry, error) {
	if opts.Limit <= 0 {
		opts.Limit = 50
	}
	var conditions []string
	var args []interface{}
	if !opts.Since.IsZero() {
		conditions = append(conditions, "created_at >= ?")
		args = append(args, opts.Since.UTC().Format(timeLayout))
	}
	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}
	args = append(args, opts.Limit)

	rows, err := d.db.Query(fmt.Sprintf(`
		SELECT id, title, source_path, created_at, start_date, end_date, total_messages, participants
		FROM analyses
		%s
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, where), args...)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Get loads one analysis including its full stats.
func (d *DB) Get(id int64) (*Entry, error) {
	row := d.db.QueryRow(`
		SELECT id, title, source_path, created_at, start_date, end_date, total_messages, participants, stats_json
		FROM analyses WHERE id = ?`, id)

	var e Entry
	var created, participants, body string
	err := row.Scan(&e.ID, &e.Title, &e.SourcePath, &created, &e.StartDate, &e.EndDate, &e.TotalMessages, &participants, &body)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("get analysis %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get analysis %d: %w", id, err)
	}
	e.CreatedAt, _ = time.Parse(timeLayout, created)
	e.Participants = splitParticipants(participants)

	var stats analyze.ChatStats
	if err := json.Unmarshal([]byte(body), &stats); err != nil {
		return nil, fmt.Errorf("decode stats for analysis %d: %w", id, err)
	}
	e.Stats = &stats
	return &e, nil
}

func (d *DB) Delete(id int64) error {
	res, err := d.db.Exec("DELETE FROM analyses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete analysis %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("delete analysis %d: %w", id, ErrNotFound)
	}
	return nil
}

func (d *DB) Count() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM analyses").Scan(&n)
	return n, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(r rowScanner, extra ...any) (Entry, error) {
	var e Entry
	var created, participants string
	dest := append([]any{&e.ID, &e.Title, &e.SourcePath, &created, &e.StartDate, &e.EndDate, &e.TotalMessages, &participants}, extra...)
	if err := r.Scan(dest...); err != nil {
		return e, err
	}
	e.CreatedAt, _ = time.Parse(timeLayout, created)
	e.Participants = splitParticipants(participants)
	return e, nil
}

func splitParticipants(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
