package repository

import (
	"context"
	"encoding/json"
	"sync"

	"helix/models"
)

// MemoryDocumentStore keeps one collection in memory. It backs STORAGE_BACKEND=memory and
// counts writes so tests can assert when a save happened.
type MemoryDocumentStore struct {
	mu     sync.Mutex
	doc    models.Document
	writes int
}

// NewMemoryDocumentStore creates an empty in-memory store
func NewMemoryDocumentStore() *MemoryDocumentStore {
	return &MemoryDocumentStore{doc: models.Document{}}
}

func (s *MemoryDocumentStore) Get(ctx context.Context, guildID string) (json.RawMessage, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.doc[guildID]
	if !ok {
		return nil, false, nil
	}
	return append(json.RawMessage(nil), value...), true, nil
}

func (s *MemoryDocumentStore) Put(ctx context.Context, guildID string, value json.RawMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc[guildID] = append(json.RawMessage(nil), value...)
	s.writes++
	return nil
}

func (s *MemoryDocumentStore) Load(ctx context.Context) (models.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return copyDocument(s.doc), nil
}

func (s *MemoryDocumentStore) Save(ctx context.Context, doc models.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc = copyDocument(doc)
	s.writes++
	return nil
}

// Writes returns how many Put and Save calls have succeeded
func (s *MemoryDocumentStore) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

func copyDocument(doc models.Document) models.Document {
	out := make(models.Document, len(doc))
	for k, v := range doc {
		out[k] = append(json.RawMessage(nil), v...)
	}
	return out
}
