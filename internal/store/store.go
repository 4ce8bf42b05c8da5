// Package store is the persistence gateway: a named-collection document
// store holding the objectives and tasks collections as whole JSON arrays.
// Every mutation re-serializes the entire collection (single-writer
// read-modify-write, no row-level updates) and notifies subscribers so
// other views can re-read. Backed by SQLite locally; the API server can
// point it at Postgres instead.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/planward/planward/internal/logger"
	"github.com/planward/planward/internal/model"
)

// Collection names
const (
	CollectionObjectives = "objectives"
	CollectionTasks      = "tasks"
)

// Store owns the persisted collections behind a load/save/subscribe API
type Store struct {
	db     *sql.DB
	driver string

	mu      sync.Mutex
	subs    map[int]func(collection string)
	nextSub int
}

// DefaultPath returns the default database path (~/.planward/planward.db)
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".planward", "planward.db"), nil
}

// Open opens or creates the SQLite database at path
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return OpenDSN("sqlite", path)
}

// OpenDefault opens the store at the default path
func OpenDefault() (*Store, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return Open(path)
}

// OpenDSN opens the store on an explicit driver ("sqlite" or "postgres")
func OpenDSN(driver, dsn string) (*Store, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Store{
		db:     db,
		driver: driver,
		subs:   make(map[int]func(string)),
	}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return s, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS collections (
    name TEXT PRIMARY KEY,
    data TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`)
	return err
}

// rebind converts ?-style placeholders for drivers that use numbered ones
func (s *Store) rebind(query string) string {
	if s.driver != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// load reads one collection's raw JSON; a missing row is an empty collection
func (s *Store) load(name string) ([]byte, error) {
	var data string
	err := s.db.QueryRow(s.rebind(`SELECT data FROM collections WHERE name = ?`), name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(data), nil
}

const upsertCollection = `
INSERT INTO collections (name, data, updated_at) VALUES (?, ?, ?)
ON CONFLICT (name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`

func (s *Store) save(name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", name, err)
	}

	_, err = s.db.Exec(s.rebind(upsertCollection),
		name, string(data), time.Now().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}

	s.notify(name)
	return nil
}

// Tasks loads the task collection. Read failures never propagate: a storage
// error yields an empty slice, a corrupt payload yields the sample dataset,
// both logged. Accounting must not block the user on a bad read.
func (s *Store) Tasks() []model.Task {
	data, err := s.load(CollectionTasks)
	if err != nil {
		logger.Error("Failed to read tasks collection", logger.F("error", err))
		return nil
	}
	if data == nil {
		return nil
	}
	var tasks []model.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		logger.Error("Tasks collection is malformed, using sample data", logger.F("error", err))
		_, sample := Sample(time.Now())
		return sample
	}
	return tasks
}

// Objectives loads the objective collection with the same degradation
// policy as Tasks.
func (s *Store) Objectives() []model.Objective {
	data, err := s.load(CollectionObjectives)
	if err != nil {
		logger.Error("Failed to read objectives collection", logger.F("error", err))
		return nil
	}
	if data == nil {
		return nil
	}
	var objectives []model.Objective
	if err := json.Unmarshal(data, &objectives); err != nil {
		logger.Error("Objectives collection is malformed, using sample data", logger.F("error", err))
		sample, _ := Sample(time.Now())
		return sample
	}
	return objectives
}

// ReplaceTasks writes the full task collection
func (s *Store) ReplaceTasks(tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	return s.save(CollectionTasks, tasks)
}

// ReplaceObjectives writes the full objective collection
func (s *Store) ReplaceObjectives(objectives []model.Objective) error {
	if objectives == nil {
		objectives = []model.Objective{}
	}
	return s.save(CollectionObjectives, objectives)
}

// ReplaceAll writes both collections in one transaction: either both land
// or neither does, so a failed write can never leave an objective without
// its tasks or the other way around.
func (s *Store) ReplaceAll(objectives []model.Objective, tasks []model.Task) error {
	if objectives == nil {
		objectives = []model.Objective{}
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	objData, err := json.Marshal(objectives)
	if err != nil {
		return fmt.Errorf("failed to serialize objectives: %w", err)
	}
	taskData, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("failed to serialize tasks: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	now := time.Now().Format(time.RFC3339)
	upsert := s.rebind(upsertCollection)
	if _, err := tx.Exec(upsert, CollectionObjectives, string(objData), now); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to write objectives: %w", err)
	}
	if _, err := tx.Exec(upsert, CollectionTasks, string(taskData), now); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to write tasks: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	s.notify(CollectionObjectives)
	s.notify(CollectionTasks)
	return nil
}

// Subscribe registers a change listener called with the collection name
// after every successful write. The returned function unsubscribes.
// Notification is advisory: listeners re-read, last write wins.
func (s *Store) Subscribe(fn func(collection string)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) notify(collection string) {
	s.mu.Lock()
	fns := make([]func(string), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(collection)
	}
}
