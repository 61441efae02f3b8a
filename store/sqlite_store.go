package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/soocke/countdown-go/domain/countdown"
)

// SQLiteStore keeps the timer record as the single row of a SQLite table.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	s := &SQLiteStore{db: db}
	if err := s.initTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init timer tables: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initTables() error {
	_, err := s.db.Exec(`
        CREATE TABLE IF NOT EXISTS timer_record (
            id INTEGER PRIMARY KEY CHECK (id = 1),
            status TEXT NOT NULL,
            due_unix_nano INTEGER,
            pause_anchor_unix_nano INTEGER,
            configured_ns INTEGER NOT NULL,
            sound_id INTEGER,
            updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
        )
    `)
	return err
}

// Save upserts the record.
func (s *SQLiteStore) Save(r countdown.Record) error {
	st := toStored(r)
	_, err := s.db.Exec(`
        INSERT INTO timer_record (id, status, due_unix_nano, pause_anchor_unix_nano, configured_ns, sound_id, updated_at)
        VALUES (1, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
        ON CONFLICT(id) DO UPDATE SET
            status = excluded.status,
            due_unix_nano = excluded.due_unix_nano,
            pause_anchor_unix_nano = excluded.pause_anchor_unix_nano,
            configured_ns = excluded.configured_ns,
            sound_id = excluded.sound_id,
            updated_at = excluded.updated_at
    `, st.Status, nullInt64(st.DueUnixNano), nullInt64(st.AnchorUnixNano), st.ConfiguredNanos, nullInt(st.SoundID))
	return err
}

// Load reads the record; an empty table reports false.
func (s *SQLiteStore) Load() (countdown.Record, bool, error) {
	var (
		st          storedRecord
		due, anchor sql.NullInt64
		sound       sql.NullInt64
	)
	err := s.db.QueryRow(`
        SELECT status, due_unix_nano, pause_anchor_unix_nano, configured_ns, sound_id
        FROM timer_record WHERE id = 1
    `).Scan(&st.Status, &due, &anchor, &st.ConfiguredNanos, &sound)
	if errors.Is(err, sql.ErrNoRows) {
		return countdown.Record{}, false, nil
	}
	if err != nil {
		return countdown.Record{}, false, err
	}
	if due.Valid {
		st.DueUnixNano = &due.Int64
	}
	if anchor.Valid {
		st.AnchorUnixNano = &anchor.Int64
	}
	if sound.Valid {
		id := int(sound.Int64)
		st.SoundID = &id
	}
	rec, err := st.record()
	if err != nil {
		return countdown.Record{}, false, err
	}
	return rec, true, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }

func nullInt64(p *int64) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *p, Valid: true}
}

func nullInt(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

var _ countdown.Store = (*SQLiteStore)(nil)
