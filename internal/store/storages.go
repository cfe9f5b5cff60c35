package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
)

// Storages bundles the repositories used by the service layer.
type Storages struct {
	VaultRepository       VaultRepository
	EntryRepository       EntryRepository
	LegacyEntryRepository LegacyEntryRepository

	db *DB
}

// NewStorages opens the backend selected by cfg.DSN. SQL backends are
// migrated before use; "memory://" yields a [MemoryStorage].
func NewStorages(ctx context.Context, cfg config.DB, log *logger.Logger) (*Storages, error) {
	if strings.HasPrefix(cfg.DSN, "memory://") {
		log.Warn().Str("func", "NewStorages").Msg("using in-memory storage, data is lost on restart")
		return NewMemoryStorages(NewMemoryStorage()), nil
	}

	db, err := Open(ctx, cfg.DSN, log)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error migrating database: %w", err)
	}

	return NewSQLStorages(db, log), nil
}

// NewSQLStorages wires the SQL repositories over an open connection.
func NewSQLStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		VaultRepository:       NewVaultRepository(db, log),
		EntryRepository:       NewEntryRepository(db, log),
		LegacyEntryRepository: NewLegacyEntryRepository(db, log),
		db:                    db,
	}
}

// NewMemoryStorages exposes one [MemoryStorage] through every repository.
func NewMemoryStorages(m *MemoryStorage) *Storages {
	return &Storages{
		VaultRepository:       m,
		EntryRepository:       m,
		LegacyEntryRepository: m,
	}
}

// Ping checks the SQL connection. The memory backend is always healthy.
func (s *Storages) Ping(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	return s.db.PingContext(ctx)
}

func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
