package eeprom

import (
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore is a Store that keeps written bytes in an SQLite database.
//
// Only bytes that were ever written have a row; everything else reads as
// ErasedByte.
type SQLiteStore struct {
	db   *sql.DB
	mu   sync.Mutex
	size int
}

// OpenSQLiteStore opens the database at dbPath and prepares the schema.
// Use ":memory:" for an in-memory database.
func OpenSQLiteStore(dbPath string, size int) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps ":memory:" databases alive across calls.
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		PRAGMA journal_mode = WAL;
		PRAGMA synchronous = FULL;
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to configure database: %w", err)
	}

	s := &SQLiteStore{db: db, size: size}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS cells (
		addr INTEGER PRIMARY KEY,
		val INTEGER NOT NULL
	);
	`)
	return err
}

// ReadBlock implements Store.
func (s *SQLiteStore) ReadBlock(dst []byte, addr Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := checkRange(addr, len(dst), s.size); err != nil {
		return err
	}
	erase(dst)
	if len(dst) == 0 {
		return nil
	}

	rows, err := s.db.Query(
		`SELECT addr, val FROM cells WHERE addr >= ? AND addr < ?`,
		int(addr), int(addr)+len(dst),
	)
	if err != nil {
		return fmt.Errorf("failed to read block: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a, v int
		if err := rows.Scan(&a, &v); err != nil {
			return fmt.Errorf("failed to scan cell: %w", err)
		}
		dst[a-int(addr)] = byte(v)
	}
	return rows.Err()
}

// WriteBlock implements Store. The block is written in one transaction.
func (s *SQLiteStore) WriteBlock(src []byte, addr Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := checkRange(addr, len(src), s.size); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	stmt, err := tx.Prepare(`
		INSERT INTO cells (addr, val) VALUES (?, ?)
		ON CONFLICT(addr) DO UPDATE SET val = excluded.val
	`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare write: %w", err)
	}
	defer stmt.Close()

	for i, b := range src {
		if _, err := stmt.Exec(int(addr)+i, int(b)); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to write cell %d: %w", int(addr)+i, err)
		}
	}
	return tx.Commit()
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Compile-time interface satisfaction check.
var _ Store = (*SQLiteStore)(nil)
