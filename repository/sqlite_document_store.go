package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"helix/models"

	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS guild_documents (
	collection TEXT NOT NULL,
	guild_id TEXT NOT NULL,
	body TEXT NOT NULL,
	updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now')),
	PRIMARY KEY (collection, guild_id)
)`

// SQLiteDB is an open SQLite database holding every collection in one table
type SQLiteDB struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and ensures the schema exists
func OpenSQLite(path string) (*SQLiteDB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	cleanPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	dsn := cleanPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteDB{db: db}, nil
}

// Close closes the database
func (d *SQLiteDB) Close() error {
	if d == nil || d.db == nil {
		return nil
	}
	return d.db.Close()
}

// Collection returns a store for one named collection
func (d *SQLiteDB) Collection(name string) *SQLiteDocumentStore {
	return &SQLiteDocumentStore{db: d.db, collection: name}
}

// SQLiteDocumentStore keeps one collection as rows of guild_documents
type SQLiteDocumentStore struct {
	db         *sql.DB
	collection string
}

func (s *SQLiteDocumentStore) Get(ctx context.Context, guildID string) (json.RawMessage, bool, error) {
	var body string
	err := s.db.QueryRowContext(ctx,
		`SELECT body FROM guild_documents WHERE collection = ? AND guild_id = ?`,
		s.collection, guildID,
	).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get %s document for guild %s: %w", s.collection, guildID, err)
	}
	return json.RawMessage(body), true, nil
}

func (s *SQLiteDocumentStore) Put(ctx context.Context, guildID string, value json.RawMessage) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO guild_documents (collection, guild_id, body)
		VALUES (?, ?, ?)
		ON CONFLICT (collection, guild_id)
		DO UPDATE SET body = excluded.body, updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')
	`, s.collection, guildID, string(value))
	if err != nil {
		return fmt.Errorf("failed to put %s document for guild %s: %w", s.collection, guildID, err)
	}

	log.WithFields(log.Fields{
		"collection": s.collection,
		"guild_id":   guildID,
	}).Debug("Document row upserted")
	return nil
}

func (s *SQLiteDocumentStore) Load(ctx context.Context) (models.Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT guild_id, body FROM guild_documents WHERE collection = ? ORDER BY guild_id`,
		s.collection,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s documents: %w", s.collection, err)
	}
	defer rows.Close()

	doc := models.Document{}
	for rows.Next() {
		var guildID, body string
		if err := rows.Scan(&guildID, &body); err != nil {
			return nil, fmt.Errorf("failed to scan %s document: %w", s.collection, err)
		}
		doc[guildID] = json.RawMessage(body)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s documents: %w", s.collection, err)
	}
	return doc, nil
}

func (s *SQLiteDocumentStore) Save(ctx context.Context, doc models.Document) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM guild_documents WHERE collection = ?`, s.collection); err != nil {
		return fmt.Errorf("failed to clear %s documents: %w", s.collection, err)
	}
	for guildID, body := range doc {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO guild_documents (collection, guild_id, body) VALUES (?, ?, ?)`,
			s.collection, guildID, string(body),
		); err != nil {
			return fmt.Errorf("failed to insert %s document for guild %s: %w", s.collection, guildID, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
