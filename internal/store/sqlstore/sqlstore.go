package sqlstore

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// DBType represents the type of database
type DBType string

const (
	SQLite   DBType = "sqlite3"
	Postgres DBType = "postgres"
)

// SQLStore implements the store.Blob interface for SQL databases
type SQLStore struct {
	db     *sql.DB
	dbType DBType
}

// New creates a new SQLStore with the given driver and connection string
func New(driver, connStr string) (*SQLStore, error) {
	db, err := sql.Open(driver, connStr)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	store := &SQLStore{
		db:     db,
		dbType: DBType(driver),
	}

	if err := store.initSchema(); err != nil {
		return nil, err
	}

	return store, nil
}

// rebind converts ? placeholders to $1, $2, etc. for PostgreSQL
func (s *SQLStore) rebind(query string) string {
	if s.dbType == SQLite {
		return query
	}
	var result strings.Builder
	argNum := 1
	for _, c := range query {
		if c == '?' {
			result.WriteString(fmt.Sprintf("$%d", argNum))
			argNum++
		} else {
			result.WriteRune(c)
		}
	}
	return result.String()
}

func (s *SQLStore) initSchema() error {
	var createBlobsTable string

	if s.dbType == Postgres {
		createBlobsTable = `
		CREATE TABLE IF NOT EXISTS blobs (
			key TEXT PRIMARY KEY,
			data TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL
		);`
	} else {
		createBlobsTable = `
		CREATE TABLE IF NOT EXISTS blobs (
			key TEXT PRIMARY KEY,
			data TEXT NOT NULL,
			updated_at DATETIME NOT NULL
		);`
	}

	_, err := s.db.Exec(createBlobsTable)
	return err
}

// Get returns the blob stored under key.
func (s *SQLStore) Get(key string) (string, bool, error) {
	var data string
	err := s.db.QueryRow(s.rebind("SELECT data FROM blobs WHERE key = ?"), key).Scan(&data)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return data, true, nil
}

// Put stores data under key, replacing any previous value.
func (s *SQLStore) Put(key, data string) error {
	var query string
	if s.dbType == Postgres {
		query = `INSERT INTO blobs (key, data, updated_at) VALUES (?, ?, ?)
			ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`
	} else {
		query = `INSERT INTO blobs (key, data, updated_at) VALUES (?, ?, ?)
			ON CONFLICT (key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`
	}
	_, err := s.db.Exec(s.rebind(query), key, data, time.Now())
	return err
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
