package main

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"mitosis-arcade/internal/scores"
)

// SQLiteStore keeps the list in a SQLite table. Rank is the row order.
type SQLiteStore struct {
	conn *sql.DB
}

// OpenSQLiteStore opens (or creates) the database at path
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// WAL lets GET readers proceed while a POST rewrites the table
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	s := &SQLiteStore{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS highscores (
		rank INTEGER PRIMARY KEY,
		score INTEGER NOT NULL,
		time REAL NOT NULL
	);
	`
	if _, err := s.conn.Exec(schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Load returns the stored list in rank order
func (s *SQLiteStore) Load() ([]scores.Record, error) {
	rows, err := s.conn.Query("SELECT score, time FROM highscores ORDER BY rank")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []scores.Record
	for rows.Next() {
		var r scores.Record
		if err := rows.Scan(&r.Score, &r.Time); err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// Save replaces every row with records in one transaction
func (s *SQLiteStore) Save(records []scores.Record) error {
	tx, err := s.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM highscores"); err != nil {
		return err
	}
	stmt, err := tx.Prepare("INSERT INTO highscores (rank, score, time) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, r := range records {
		if _, err := stmt.Exec(i, r.Score, r.Time); err != nil {
			return err
		}
	}
	return tx.Commit()
}
