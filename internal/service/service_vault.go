package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/store"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/models"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
)

const defaultFetchConcurrency = 4

type vaultService struct {
	vaults  store.VaultRepository
	entries store.EntryRepository
	cipher  crypto.CipherService

	// fetchConcurrency bounds parallel decrypts within one FetchEntries call.
	fetchConcurrency int

	now   func() time.Time
	newID func() string

	logger *logger.Logger
}

// NewVaultService constructs a VaultService over the given repositories.
// cfg.FetchConcurrency below 1 falls back to 4.
func NewVaultService(vaults store.VaultRepository, entries store.EntryRepository, cipher crypto.CipherService, cfg config.App, logger *logger.Logger) VaultService {
	concurrency := cfg.FetchConcurrency
	if concurrency < 1 {
		concurrency = defaultFetchConcurrency
	}

	return &vaultService{
		vaults:           vaults,
		entries:          entries,
		cipher:           cipher,
		fetchConcurrency: concurrency,
		now:              func() time.Time { return time.Now().UTC() },
		newID:            utils.NewRandomID,
		logger:           logger,
	}
}

// nameKey is the case-folded vault name on which uniqueness is enforced.
func nameKey(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// normalizePlatform turns a platform name into an entry id.
func normalizePlatform(platform string) string {
	return strings.ToLower(strings.TrimSpace(platform))
}

func (v *vaultService) ResolveOrCreateDefaultVault(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", ErrInvalidDataProvided
	}

	now := v.now()
	vault := models.Vault{
		ID:        models.DefaultVaultID,
		UserID:    userID,
		Name:      models.DefaultVaultName,
		NameKey:   nameKey(models.DefaultVaultName),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := v.vaults.EnsureVault(ctx, vault); err != nil {
		logger.FromContext(ctx).Err(err).Msg("default vault creation failed")
		return "", storageError("ensure default vault", err)
	}

	return models.DefaultVaultID, nil
}

// resolveVault maps an optional vault id to an existing vault. Empty and
// "default" resolve to the default vault, which is created on demand.
func (v *vaultService) resolveVault(ctx context.Context, userID, vaultID string) (string, error) {
	if userID == "" {
		return "", ErrInvalidDataProvided
	}

	vaultID = strings.TrimSpace(vaultID)
	if vaultID == "" || vaultID == models.DefaultVaultID {
		return v.ResolveOrCreateDefaultVault(ctx, userID)
	}

	if _, err := v.vaults.GetVault(ctx, userID, vaultID); err != nil {
		return "", storageError("get vault", err)
	}

	return vaultID, nil
}

// SaveEntry encrypts req.Password under req.MasterPassword and upserts it.
// The master password is never checked against earlier writes: a mismatch
// only shows up later as a per-entry decrypt failure.
func (v *vaultService) SaveEntry(ctx context.Context, req models.SaveEntryRequest) (models.VaultEntry, error) {
	log := logger.FromContext(ctx)

	platform := normalizePlatform(req.Platform)
	username := strings.TrimSpace(req.Username)
	if platform == "" || username == "" || req.Password == "" || req.MasterPassword == "" {
		log.Error().Str("platform", platform).Msg("invalid entry data provided")
		return models.VaultEntry{}, ErrInvalidDataProvided
	}

	vaultID, err := v.resolveVault(ctx, req.UserID, req.VaultID)
	if err != nil {
		return models.VaultEntry{}, err
	}

	blob, err := v.cipher.Encrypt(req.Password, req.MasterPassword)
	if err != nil {
		log.Err(err).Msg("entry encryption failed")
		return models.VaultEntry{}, fmt.Errorf("encrypt entry: %w", err)
	}

	now := v.now()
	entry := models.VaultEntry{
		ID:                platform,
		VaultID:           vaultID,
		UserID:            req.UserID,
		Username:          username,
		EncryptedPassword: blob,
		URL:               strings.TrimSpace(req.URL),
		Notes:             req.Notes,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err = v.entries.UpsertEntry(ctx, entry); err != nil {
		log.Err(err).Str("vault_id", vaultID).Str("platform", platform).Msg("entry upsert failed")
		return models.VaultEntry{}, storageError("save entry", err)
	}

	stored, err := v.storedEntry(ctx, entry)
	if err != nil {
		log.Err(err).Str("vault_id", vaultID).Str("platform", platform).Msg("saved entry reload failed")
		return models.VaultEntry{}, storageError("reload entry", err)
	}

	log.Info().Str("vault_id", vaultID).Str("platform", platform).Msg("entry saved")
	return stored, nil
}

// storedEntry re-reads a just-written entry so that an update reports the
// original CreatedAt kept by the repository.
func (v *vaultService) storedEntry(ctx context.Context, entry models.VaultEntry) (models.VaultEntry, error) {
	entries, err := v.entries.ListEntries(ctx, entry.UserID, entry.VaultID)
	if err != nil {
		return models.VaultEntry{}, err
	}
	for _, e := range entries {
		if e.ID == entry.ID {
			return e, nil
		}
	}
	return models.VaultEntry{}, store.ErrNotFound
}

func (v *vaultService) FetchEntries(ctx context.Context, userID, vaultID, masterPassword string) ([]models.FetchedEntry, error) {
	log := logger.FromContext(ctx)

	if masterPassword == "" {
		return nil, ErrInvalidDataProvided
	}

	vaultID, err := v.resolveVault(ctx, userID, vaultID)
	if err != nil {
		return nil, err
	}

	entries, err := v.entries.ListEntries(ctx, userID, vaultID)
	if err != nil {
		log.Err(err).Str("vault_id", vaultID).Msg("entries listing failed")
		return nil, storageError("list entries", err)
	}

	fetched := make([]models.FetchedEntry, len(entries))

	var g errgroup.Group
	g.SetLimit(v.fetchConcurrency)
	for i, entry := range entries {
		g.Go(func() error {
			fetched[i] = v.decryptEntry(ctx, entry, masterPassword)
			return nil
		})
	}
	_ = g.Wait()

	log.Info().Str("vault_id", vaultID).Int("count", len(fetched)).Msg("entries fetched")
	return fetched, nil
}

// decryptEntry never fails: decrypt errors are reported in the result.
func (v *vaultService) decryptEntry(ctx context.Context, entry models.VaultEntry, masterPassword string) models.FetchedEntry {
	fetched := models.FetchedEntry{
		ID:        entry.ID,
		Platform:  entry.ID,
		Username:  entry.Username,
		URL:       entry.URL,
		Notes:     entry.Notes,
		CreatedAt: entry.CreatedAt,
		UpdatedAt: entry.UpdatedAt,
	}

	if err := ctx.Err(); err != nil {
		msg := err.Error()
		fetched.Error = &msg
		return fetched
	}

	plaintext, err := v.cipher.Decrypt(entry.EncryptedPassword, masterPassword)
	if err != nil {
		msg := models.IncorrectMasterPasswordMsg
		fetched.Error = &msg
		return fetched
	}

	fetched.Password = &plaintext
	return fetched
}

func (v *vaultService) DeleteEntry(ctx context.Context, userID, vaultID, platform string) error {
	log := logger.FromContext(ctx)

	platform = normalizePlatform(platform)
	if platform == "" {
		return ErrInvalidDataProvided
	}

	vaultID, err := v.resolveVault(ctx, userID, vaultID)
	if err != nil {
		return err
	}

	if err = v.entries.DeleteEntry(ctx, userID, vaultID, platform); err != nil {
		return storageError("delete entry", err)
	}

	log.Info().Str("vault_id", vaultID).Str("platform", platform).Msg("entry deleted")
	return nil
}

// CreateVault creates a named vault with a random id. The default vault is
// ensured first so that its name takes part in the uniqueness check.
func (v *vaultService) CreateVault(ctx context.Context, userID, name, description string) (models.Vault, error) {
	log := logger.FromContext(ctx)

	name = strings.TrimSpace(name)
	if name == "" {
		return models.Vault{}, ErrInvalidDataProvided
	}
	if _, err := v.ResolveOrCreateDefaultVault(ctx, userID); err != nil {
		return models.Vault{}, err
	}

	now := v.now()
	vault := models.Vault{
		ID:          v.newID(),
		UserID:      userID,
		Name:        name,
		NameKey:     nameKey(name),
		Description: strings.TrimSpace(description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := v.vaults.CreateVault(ctx, vault); err != nil {
		log.Err(err).Str("name", name).Msg("vault creation failed")
		return models.Vault{}, storageError("create vault", err)
	}

	log.Info().Str("vault_id", vault.ID).Msg("vault created")
	return vault, nil
}

func (v *vaultService) ListVaults(ctx context.Context, userID string) ([]models.Vault, error) {
	if _, err := v.ResolveOrCreateDefaultVault(ctx, userID); err != nil {
		return nil, err
	}

	vaults, err := v.vaults.ListVaults(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("vault listing failed")
		return nil, storageError("list vaults", err)
	}

	return vaults, nil
}

// DeleteVault removes a vault together with its entries. The default vault
// is protected.
func (v *vaultService) DeleteVault(ctx context.Context, userID, vaultID string) error {
	log := logger.FromContext(ctx)

	vaultID = strings.TrimSpace(vaultID)
	if userID == "" || vaultID == "" {
		return ErrInvalidDataProvided
	}
	if vaultID == models.DefaultVaultID {
		return ErrProtectedResource
	}

	if err := v.vaults.DeleteVault(ctx, userID, vaultID); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Err(err).Str("vault_id", vaultID).Msg("vault deletion failed")
		}
		return storageError("delete vault", err)
	}

	log.Info().Str("vault_id", vaultID).Msg("vault deleted")
	return nil
}

// storageError translates repository errors into the service taxonomy.
func storageError(op string, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case errors.Is(err, store.ErrVaultNameTaken):
		return fmt.Errorf("%s: %w", op, ErrDuplicateName)
	default:
		return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
	}
}
