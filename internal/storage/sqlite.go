package storage

import (
	"database/sql"
	"encoding/json"
	"time"

	_ "modernc.org/sqlite" // CGO-free SQLite driver
)

// DB records export history in a local SQLite file.
type DB struct {
	conn *sql.DB
}

// OpenSQLite opens (and creates if missing) a SQLite DB at path.
func OpenSQLite(path string) (*DB, error) {
	// Pragmas via DSN keep it portable with the modernc driver.
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	c, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	return &DB{conn: c}, nil
}

func (db *DB) Close() error { return db.conn.Close() }

// CreateSchema ensures the exports table exists.
func (db *DB) CreateSchema() error {
	_, err := db.conn.Exec(`
CREATE TABLE IF NOT EXISTS exports (
  id            TEXT PRIMARY KEY,
  created_at    TEXT NOT NULL,   -- RFC3339
  provider      TEXT NOT NULL,
  organization  TEXT NOT NULL,
  standard_id   TEXT NOT NULL,
  standard_name TEXT,
  tool_uuid     TEXT,
  languages     TEXT,            -- JSON array; empty = all
  rule_count    INTEGER NOT NULL,
  output_path   TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_exports_org ON exports(provider, organization);
`)
	return err
}

// Export is one recorded conversion run.
type Export struct {
	ID           string
	CreatedAt    time.Time
	Provider     string
	Organization string
	StandardID   string
	StandardName string
	ToolUUID     string
	Languages    []string
	RuleCount    int
	OutputPath   string
}

// SaveExport inserts one history row.
func (db *DB) SaveExport(e Export) error {
	langs, err := json.Marshal(e.Languages)
	if err != nil {
		return err
	}
	_, err = db.conn.Exec(`
INSERT INTO exports (id, created_at, provider, organization, standard_id, standard_name, tool_uuid, languages, rule_count, output_path)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.CreatedAt.UTC().Format(time.RFC3339), e.Provider, e.Organization,
		e.StandardID, e.StandardName, e.ToolUUID, string(langs), e.RuleCount, e.OutputPath)
	return err
}

// ListExports returns recorded runs, newest first, at most limit rows
// (limit <= 0 means no cap).
func (db *DB) ListExports(limit int) ([]Export, error) {
	q := `
SELECT id, created_at, provider, organization, standard_id, standard_name, tool_uuid, languages, rule_count, output_path
FROM exports ORDER BY created_at DESC, id DESC`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = db.conn.Query(q+" LIMIT ?", limit)
	} else {
		rows, err = db.conn.Query(q)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Export
	for rows.Next() {
		var e Export
		var created, langs string
		if err := rows.Scan(&e.ID, &created, &e.Provider, &e.Organization,
			&e.StandardID, &e.StandardName, &e.ToolUUID, &langs, &e.RuleCount, &e.OutputPath); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, created); err == nil {
			e.CreatedAt = t
		}
		if langs != "" {
			_ = json.Unmarshal([]byte(langs), &e.Languages)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
