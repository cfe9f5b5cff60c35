package store

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-pass-vault/models"
)

type vaultKey struct {
	userID  string
	vaultID string
}

// MemoryStorage keeps vaults, entries and legacy records in process memory.
// It implements [VaultRepository], [EntryRepository] and
// [LegacyEntryRepository]; a single lock makes multi-record operations such
// as [MemoryStorage.DeleteVault] atomic.
type MemoryStorage struct {
	mu      sync.RWMutex
	vaults  map[vaultKey]models.Vault
	entries map[vaultKey]map[string]models.VaultEntry
	legacy  map[string]map[string]models.LegacyEntry
	now     func() time.Time
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		vaults:  make(map[vaultKey]models.Vault),
		entries: make(map[vaultKey]map[string]models.VaultEntry),
		legacy:  make(map[string]map[string]models.LegacyEntry),
		now:     time.Now,
	}
}

func (m *MemoryStorage) GetVault(_ context.Context, userID, vaultID string) (models.Vault, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.vaults[vaultKey{userID, vaultID}]
	if !ok {
		return models.Vault{}, ErrNotFound
	}
	return v, nil
}

func (m *MemoryStorage) CreateVault(_ context.Context, vault models.Vault) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.insertVault(vault)
}

func (m *MemoryStorage) EnsureVault(_ context.Context, vault models.Vault) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.vaults[vaultKey{vault.UserID, vault.ID}]; ok {
		return nil
	}
	return m.insertVault(vault)
}

// insertVault enforces the same keys as the SQL schema. Callers hold mu.
func (m *MemoryStorage) insertVault(vault models.Vault) error {
	key := vaultKey{vault.UserID, vault.ID}
	if _, ok := m.vaults[key]; ok {
		return ErrVaultNameTaken
	}
	for k, v := range m.vaults {
		if k.userID == vault.UserID && v.NameKey == vault.NameKey {
			return ErrVaultNameTaken
		}
	}

	m.vaults[key] = vault
	return nil
}

func (m *MemoryStorage) ListVaults(_ context.Context, userID string) ([]models.Vault, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	vaults := make([]models.Vault, 0, 4)
	for k, v := range m.vaults {
		if k.userID != userID {
			continue
		}
		v.EntryCount = len(m.entries[k])
		vaults = append(vaults, v)
	}

	slices.SortFunc(vaults, func(a, b models.Vault) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})

	return vaults, nil
}

func (m *MemoryStorage) DeleteVault(_ context.Context, userID, vaultID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := vaultKey{userID, vaultID}
	if _, ok := m.vaults[key]; !ok {
		return ErrNotFound
	}

	delete(m.entries, key)
	delete(m.vaults, key)
	return nil
}

func (m *MemoryStorage) UpsertEntry(_ context.Context, entry models.VaultEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := vaultKey{entry.UserID, entry.VaultID}
	bucket, ok := m.entries[key]
	if !ok {
		bucket = make(map[string]models.VaultEntry)
		m.entries[key] = bucket
	}

	if existing, ok := bucket[entry.ID]; ok {
		entry.CreatedAt = existing.CreatedAt
	}
	bucket[entry.ID] = entry

	m.touch(key, entry.UpdatedAt)
	return nil
}

func (m *MemoryStorage) ListEntries(_ context.Context, userID, vaultID string) ([]models.VaultEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	bucket := m.entries[vaultKey{userID, vaultID}]
	entries := make([]models.VaultEntry, 0, len(bucket))
	for _, e := range bucket {
		entries = append(entries, e)
	}

	slices.SortFunc(entries, func(a, b models.VaultEntry) int {
		return strings.Compare(a.ID, b.ID)
	})

	return entries, nil
}

func (m *MemoryStorage) DeleteEntry(_ context.Context, userID, vaultID, entryID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := vaultKey{userID, vaultID}
	if _, ok := m.entries[key][entryID]; !ok {
		return ErrNotFound
	}

	delete(m.entries[key], entryID)
	m.touch(key, m.now())
	return nil
}

// touch refreshes a vault's UpdatedAt. Callers hold mu.
func (m *MemoryStorage) touch(key vaultKey, at time.Time) {
	if v, ok := m.vaults[key]; ok {
		v.UpdatedAt = at
		m.vaults[key] = v
	}
}

func (m *MemoryStorage) ListLegacyEntries(_ context.Context, userID string) ([]models.LegacyEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var entries []models.LegacyEntry
	for _, e := range m.legacy[userID] {
		entries = append(entries, e)
	}

	slices.SortFunc(entries, func(a, b models.LegacyEntry) int {
		return strings.Compare(a.ID, b.ID)
	})

	return entries, nil
}

func (m *MemoryStorage) DeleteLegacyEntry(_ context.Context, userID, entryID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.legacy[userID][entryID]; !ok {
		return ErrNotFound
	}

	delete(m.legacy[userID], entryID)
	if len(m.legacy[userID]) == 0 {
		delete(m.legacy, userID)
	}
	return nil
}

func (m *MemoryStorage) ListLegacyUsers(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	users := make([]string, 0, len(m.legacy))
	for userID := range m.legacy {
		users = append(users, userID)
	}
	slices.Sort(users)

	return users, nil
}

// PutLegacyEntry stores a record in the pre-vault layout. It exists to seed
// the memory backend; the SQL backends receive legacy rows from outside.
func (m *MemoryStorage) PutLegacyEntry(entry models.LegacyEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	bucket, ok := m.legacy[entry.UserID]
	if !ok {
		bucket = make(map[string]models.LegacyEntry)
		m.legacy[entry.UserID] = bucket
	}
	bucket[entry.ID] = entry
}
