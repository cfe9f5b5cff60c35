package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pass-vault/models"
)

func TestMemoryStorage_VaultLifecycle(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStorage()
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	def := models.Vault{ID: models.DefaultVaultID, UserID: "alice", Name: "Default", NameKey: "default", CreatedAt: t0, UpdatedAt: t0}
	work := models.Vault{ID: "w", UserID: "alice", Name: "Work", NameKey: "work", CreatedAt: t0.Add(time.Minute), UpdatedAt: t0}

	require.NoError(t, m.EnsureVault(ctx, def))
	require.NoError(t, m.EnsureVault(ctx, def))
	require.NoError(t, m.CreateVault(ctx, work))

	assert.ErrorIs(t, m.CreateVault(ctx, models.Vault{ID: "w2", UserID: "alice", Name: "WORK", NameKey: "work"}), ErrVaultNameTaken)
	assert.NoError(t, m.CreateVault(ctx, models.Vault{ID: "w3", UserID: "bob", Name: "Work", NameKey: "work"}))

	got, err := m.GetVault(ctx, "alice", "w")
	require.NoError(t, err)
	assert.Equal(t, "Work", got.Name)

	_, err = m.GetVault(ctx, "bob", "w")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.UpsertEntry(ctx, models.VaultEntry{ID: "github", VaultID: "w", UserID: "alice", CreatedAt: t0, UpdatedAt: t0}))

	vaults, err := m.ListVaults(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, vaults, 2)
	assert.Equal(t, models.DefaultVaultID, vaults[0].ID)
	assert.Equal(t, "w", vaults[1].ID)
	assert.Equal(t, 1, vaults[1].EntryCount)

	require.NoError(t, m.DeleteVault(ctx, "alice", "w"))
	assert.ErrorIs(t, m.DeleteVault(ctx, "alice", "w"), ErrNotFound)

	entries, err := m.ListEntries(ctx, "alice", "w")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestMemoryStorage_ListVaultsTiesOrderedByID(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStorage()
	at := time.Now()

	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, m.CreateVault(ctx, models.Vault{ID: id, UserID: "u", NameKey: id, CreatedAt: at}))
	}

	vaults, err := m.ListVaults(ctx, "u")
	require.NoError(t, err)
	require.Len(t, vaults, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{vaults[0].ID, vaults[1].ID, vaults[2].ID})
}

func TestMemoryStorage_UpsertPreservesCreatedAtAndTouchesVault(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStorage()
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Hour)

	require.NoError(t, m.EnsureVault(ctx, models.Vault{ID: "default", UserID: "alice", NameKey: "default", CreatedAt: t0, UpdatedAt: t0}))
	require.NoError(t, m.UpsertEntry(ctx, models.VaultEntry{ID: "github", VaultID: "default", UserID: "alice", Username: "old", CreatedAt: t0, UpdatedAt: t0}))
	require.NoError(t, m.UpsertEntry(ctx, models.VaultEntry{ID: "github", VaultID: "default", UserID: "alice", Username: "new", CreatedAt: t1, UpdatedAt: t1}))

	entries, err := m.ListEntries(ctx, "alice", "default")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "new", entries[0].Username)
	assert.Equal(t, t0, entries[0].CreatedAt)
	assert.Equal(t, t1, entries[0].UpdatedAt)

	v, err := m.GetVault(ctx, "alice", "default")
	require.NoError(t, err)
	assert.Equal(t, t1, v.UpdatedAt)
}

func TestMemoryStorage_DeleteEntry(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStorage()
	later := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return later }

	require.NoError(t, m.EnsureVault(ctx, models.Vault{ID: "default", UserID: "alice", NameKey: "default"}))
	require.NoError(t, m.UpsertEntry(ctx, models.VaultEntry{ID: "github", VaultID: "default", UserID: "alice"}))

	require.NoError(t, m.DeleteEntry(ctx, "alice", "default", "github"))
	assert.ErrorIs(t, m.DeleteEntry(ctx, "alice", "default", "github"), ErrNotFound)
	assert.ErrorIs(t, m.DeleteEntry(ctx, "alice", "other", "github"), ErrNotFound)

	v, err := m.GetVault(ctx, "alice", "default")
	require.NoError(t, err)
	assert.Equal(t, later, v.UpdatedAt)
}

func TestMemoryStorage_Legacy(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStorage()

	m.PutLegacyEntry(models.LegacyEntry{UserID: "bob", ID: "mail"})
	m.PutLegacyEntry(models.LegacyEntry{UserID: "alice", ID: "github"})
	m.PutLegacyEntry(models.LegacyEntry{UserID: "alice", ID: "bank"})

	users, err := m.ListLegacyUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, users)

	entries, err := m.ListLegacyEntries(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "bank", entries[0].ID)

	require.NoError(t, m.DeleteLegacyEntry(ctx, "bob", "mail"))
	assert.ErrorIs(t, m.DeleteLegacyEntry(ctx, "bob", "mail"), ErrNotFound)

	users, err = m.ListLegacyUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, users)
}

func TestMemoryStorage_ConcurrentEnsureVault(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStorage()

	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, m.EnsureVault(ctx, models.Vault{ID: "default", UserID: "alice", NameKey: "default"}))
		}()
	}
	wg.Wait()

	vaults, err := m.ListVaults(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, vaults, 1)
}

func TestStorages_Memory(t *testing.T) {
	s := NewMemoryStorages(NewMemoryStorage())

	assert.NoError(t, s.Ping(context.Background()))
	assert.NoError(t, s.Close())
	assert.Same(t, s.VaultRepository, s.EntryRepository)
}
