package repository

import (
	"path/filepath"

	"helix/database"
	"helix/service"
)

// Collection names, shared by every backend
const (
	CollectionConfig    = "config"
	CollectionTeams     = "teams"
	CollectionRingRoles = "ringroles"
)

// Stores groups the document stores a unit of work hands out
type Stores struct {
	GuildConfigs service.DocumentStore
	Teams        service.DocumentStore
	RingRoles    service.DocumentStore
}

// NewFileStores creates file stores for every collection: config.json, teams.json and ringroles.json in dataDir
func NewFileStores(dataDir string) Stores {
	return Stores{
		GuildConfigs: NewFileDocumentStore(filepath.Join(dataDir, CollectionConfig+".json")),
		Teams:        NewFileDocumentStore(filepath.Join(dataDir, CollectionTeams+".json")),
		RingRoles:    NewFileDocumentStore(filepath.Join(dataDir, CollectionRingRoles+".json")),
	}
}

// NewSQLiteStores creates SQLite stores for every collection
func NewSQLiteStores(db *SQLiteDB) Stores {
	return Stores{
		GuildConfigs: db.Collection(CollectionConfig),
		Teams:        db.Collection(CollectionTeams),
		RingRoles:    db.Collection(CollectionRingRoles),
	}
}

// NewPostgresStores creates PostgreSQL stores for every collection
func NewPostgresStores(db *database.DB) Stores {
	return Stores{
		GuildConfigs: NewPostgresDocumentStore(db, CollectionConfig),
		Teams:        NewPostgresDocumentStore(db, CollectionTeams),
		RingRoles:    NewPostgresDocumentStore(db, CollectionRingRoles),
	}
}

// NewMemoryStores creates in-memory stores for every collection
func NewMemoryStores() Stores {
	return Stores{
		GuildConfigs: NewMemoryDocumentStore(),
		Teams:        NewMemoryDocumentStore(),
		RingRoles:    NewMemoryDocumentStore(),
	}
}
