package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"helix/database"
	"helix/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	log "github.com/sirupsen/logrus"
)

// queryable is satisfied by both the pool and a transaction
type queryable interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresDocumentStore keeps one collection as rows of guild_documents, one JSONB body per guild
type PostgresDocumentStore struct {
	db         *database.DB
	q          queryable
	collection string
}

// NewPostgresDocumentStore creates a store for collection
func NewPostgresDocumentStore(db *database.DB, collection string) *PostgresDocumentStore {
	return &PostgresDocumentStore{db: db, q: db.Pool, collection: collection}
}

// newPostgresDocumentStoreWithTx creates a store whose reads and writes run inside tx
func newPostgresDocumentStoreWithTx(db *database.DB, tx pgx.Tx, collection string) *PostgresDocumentStore {
	return &PostgresDocumentStore{db: db, q: tx, collection: collection}
}

// Get returns one guild's body
func (s *PostgresDocumentStore) Get(ctx context.Context, guildID string) (json.RawMessage, bool, error) {
	query := `
		SELECT body
		FROM guild_documents
		WHERE collection = $1 AND guild_id = $2
	`

	var body []byte
	err := s.q.QueryRow(ctx, query, s.collection, guildID).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get %s document for guild %s: %w", s.collection, guildID, err)
	}

	return json.RawMessage(body), true, nil
}

// Put upserts one guild's body
func (s *PostgresDocumentStore) Put(ctx context.Context, guildID string, value json.RawMessage) error {
	query := `
		INSERT INTO guild_documents (collection, guild_id, body)
		VALUES ($1, $2, $3::jsonb)
		ON CONFLICT (collection, guild_id)
		DO UPDATE SET body = EXCLUDED.body, updated_at = NOW()
	`

	if _, err := s.q.Exec(ctx, query, s.collection, guildID, string(value)); err != nil {
		return fmt.Errorf("failed to put %s document for guild %s: %w", s.collection, guildID, err)
	}

	log.WithFields(log.Fields{
		"collection": s.collection,
		"guild_id":   guildID,
	}).Debug("Document row upserted")
	return nil
}

// Load returns every guild's body in the collection
func (s *PostgresDocumentStore) Load(ctx context.Context) (models.Document, error) {
	query := `
		SELECT guild_id, body
		FROM guild_documents
		WHERE collection = $1
		ORDER BY guild_id
	`

	rows, err := s.q.Query(ctx, query, s.collection)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s documents: %w", s.collection, err)
	}
	defer rows.Close()

	doc := models.Document{}
	for rows.Next() {
		var guildID string
		var body []byte
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

// Save replaces the whole collection in one transaction
func (s *PostgresDocumentStore) Save(ctx context.Context, doc models.Document) error {
	return s.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		txStore := newPostgresDocumentStoreWithTx(s.db, tx, s.collection)

		if err := txStore.clear(ctx); err != nil {
			return err
		}
		for guildID, body := range doc {
			if err := txStore.Put(ctx, guildID, body); err != nil {
				return err
			}
		}
		return nil
	})
}

// clear deletes every row of the collection
func (s *PostgresDocumentStore) clear(ctx context.Context) error {
	if _, err := s.q.Exec(ctx, `DELETE FROM guild_documents WHERE collection = $1`, s.collection); err != nil {
		return fmt.Errorf("failed to clear %s documents: %w", s.collection, err)
	}
	return nil
}
