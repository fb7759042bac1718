// Package db persists build records in a SQLite database.
package db

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/hroncok/ansible-bender/pkg/build"
)

// ErrBuildNotFound is returned when no build record matches the query.
var ErrBuildNotFound = errors.New("build record not found")

const timeFmt = time.RFC3339Nano

// Store wraps the SQLite connection holding build records.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and ensures the schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrap(err, "creating database directory")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, errors.Wrap(err, "setting pragma")
		}
	}

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS builds (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			base_image   TEXT NOT NULL,
			target_image TEXT NOT NULL,
			state        TEXT NOT NULL,
			image_id     TEXT NOT NULL DEFAULT '',
			started_at   TEXT NOT NULL,
			finished_at  TEXT NOT NULL DEFAULT '',
			spec         TEXT NOT NULL,
			logs         TEXT NOT NULL DEFAULT ''
		)
	`)
	return errors.Wrap(err, "ensuring schema")
}

// Create inserts a new build record and fills in its assigned ID.
func (s *Store) Create(b *build.Build) error {
	spec, err := json.Marshal(b)
	if err != nil {
		return errors.Wrap(err, "encoding build record")
	}

	res, err := s.db.Exec(`
		INSERT INTO builds (base_image, target_image, state, image_id, started_at, finished_at, spec)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		b.BaseImage, b.TargetImage, string(b.State), b.ImageID,
		formatTime(b.StartTime), formatTime(b.FinishTime), string(spec),
	)
	if err != nil {
		return errors.Wrap(err, "inserting build record")
	}

	b.ID, err = res.LastInsertId()
	return errors.Wrap(err, "reading build record id")
}

// Update rewrites the record of an existing build.
func (s *Store) Update(b *build.Build) error {
	spec, err := json.Marshal(b)
	if err != nil {
		return errors.Wrap(err, "encoding build record")
	}

	res, err := s.db.Exec(`
		UPDATE builds
		SET base_image = ?, target_image = ?, state = ?, image_id = ?, started_at = ?, finished_at = ?, spec = ?
		WHERE id = ?`,
		b.BaseImage, b.TargetImage, string(b.State), b.ImageID,
		formatTime(b.StartTime), formatTime(b.FinishTime), string(spec), b.ID,
	)
	if err != nil {
		return errors.Wrap(err, "updating build record")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrBuildNotFound
	}
	return nil
}

// Get returns the build record with the given ID.
func (s *Store) Get(id int64) (*build.Build, error) {
	row := s.db.QueryRow(`SELECT id, state, image_id, started_at, finished_at, spec FROM builds WHERE id = ?`, id)
	return scanBuild(row)
}

// Latest returns the most recent build record, if any.
func (s *Store) Latest() (*build.Build, error) {
	row := s.db.QueryRow(`SELECT id, state, image_id, started_at, finished_at, spec FROM builds ORDER BY id DESC LIMIT 1`)
	return scanBuild(row)
}

// List returns all build records, newest first.
func (s *Store) List() ([]*build.Build, error) {
	rows, err := s.db.Query(`SELECT id, state, image_id, started_at, finished_at, spec FROM builds ORDER BY id DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "listing build records")
	}
	defer rows.Close()

	var builds []*build.Build
	for rows.Next() {
		b, err := scanBuild(rows)
		if err != nil {
			return nil, err
		}
		builds = append(builds, b)
	}

	return builds, rows.Err()
}

// SetLogs stores the provisioning output of a build.
func (s *Store) SetLogs(id int64, logs string) error {
	res, err := s.db.Exec(`UPDATE builds SET logs = ? WHERE id = ?`, logs, id)
	if err != nil {
		return errors.Wrap(err, "storing build logs")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrBuildNotFound
	}
	return nil
}

// Logs returns the stored provisioning output of a build.
func (s *Store) Logs(id int64) (string, error) {
	var logs string
	err := s.db.QueryRow(`SELECT logs FROM builds WHERE id = ?`, id).Scan(&logs)
	if err == sql.ErrNoRows {
		return "", ErrBuildNotFound
	}
	return logs, errors.Wrap(err, "reading build logs")
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanBuild(row scanner) (*build.Build, error) {
	var (
		id                    int64
		state, imageID, spec  string
		startedAt, finishedAt string
	)

	err := row.Scan(&id, &state, &imageID, &startedAt, &finishedAt, &spec)
	if err == sql.ErrNoRows {
		return nil, ErrBuildNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "scanning build record")
	}

	var b build.Build
	if err := json.Unmarshal([]byte(spec), &b); err != nil {
		return nil, errors.Wrap(err, "decoding build record")
	}

	// columns win over the encoded spec: they are updated together, but the
	// columns are what queries are answered from
	b.ID = id
	b.State = build.State(state)
	b.ImageID = imageID
	b.StartTime = parseTime(startedAt)
	b.FinishTime = parseTime(finishedAt)

	return &b, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timeFmt)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(timeFmt, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
