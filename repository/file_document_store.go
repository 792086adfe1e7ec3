package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"helix/models"

	log "github.com/sirupsen/logrus"
)

// FileDocumentStore keeps one collection in a single JSON file.
// All guilds share the file, so every read-modify-write holds the store mutex.
type FileDocumentStore struct {
	path string
	mu   sync.Mutex
}

// NewFileDocumentStore creates a store backed by the file at path
func NewFileDocumentStore(path string) *FileDocumentStore {
	return &FileDocumentStore{path: path}
}

// Path returns the backing file path
func (s *FileDocumentStore) Path() string {
	return s.path
}

// Get returns one guild's entry. A missing file reads as an empty document and is not created.
func (s *FileDocumentStore) Get(ctx context.Context, guildID string) (json.RawMessage, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, _, err := s.read()
	if err != nil {
		return nil, false, err
	}
	value, ok := doc[guildID]
	return value, ok, nil
}

// Put replaces one guild's entry and rewrites the file
func (s *FileDocumentStore) Put(ctx context.Context, guildID string, value json.RawMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, _, err := s.read()
	if err != nil {
		return err
	}
	doc[guildID] = value
	return s.write(doc)
}

// Load returns the whole document, creating the file as {} when it does not exist
func (s *FileDocumentStore) Load(ctx context.Context) (models.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, exists, err := s.read()
	if err != nil {
		return nil, err
	}
	if !exists {
		log.WithField("path", s.path).Debug("Creating empty document")
		if err := s.write(doc); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// Save rewrites the whole document
func (s *FileDocumentStore) Save(ctx context.Context, doc models.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if doc == nil {
		doc = models.Document{}
	}
	return s.write(doc)
}

// read parses the file. The bool result is false when the file does not exist.
func (s *FileDocumentStore) read() (models.Document, bool, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return models.Document{}, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, true, fmt.Errorf("failed to parse %s: %w", s.path, err)
	}
	if doc == nil {
		doc = models.Document{}
	}
	return doc, true, nil
}

// write replaces the file through a temp file and rename so readers never see a partial document
func (s *FileDocumentStore) write(doc models.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", s.path, err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", s.path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}

	log.WithFields(log.Fields{
		"path":   s.path,
		"guilds": len(doc),
	}).Debug("Document saved")
	return nil
}
