package contentmanager

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"go-reusable-content/internal/loader"
	"go-reusable-content/internal/model"
	"go-reusable-content/internal/setuppath"
	"go-reusable-content/internal/storage"

	"github.com/google/uuid"
)

// ErrNilInfo is reported by Ensure for nil entries.
var ErrNilInfo = errors.New("nil reusable content info")

// Manager keeps the reusable content list in line with the declared entries
// and their HTML source files. Writes are serialized so the HTTP server can
// share one Manager between requests.
type Manager struct {
	mu     sync.Mutex
	store  storage.DataStore
	loader *loader.HTMLLoader
	logger *slog.Logger
	now    func() time.Time
}

// NewManager creates a new Manager instance.
func NewManager(store storage.DataStore, htmlLoader *loader.HTMLLoader, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Manager{
		store:  store,
		loader: htmlLoader,
		logger: logger,
		now:    time.Now,
	}
}

// Ensure creates or updates one list entry per info, matched by title.
//
// New entries get their Content from the source file when one is set, or from
// info.Content otherwise. Existing entries always take the new Category and
// flags; their Content is only replaced when IsAutomaticUpdate is true, so a
// frozen copy keeps whatever authors did to it.
//
// Inline content (no FileName) goes through the loader's sanitizer like file
// content does. A failing or nil entry does not stop the others; all failures
// are returned joined.
func (m *Manager) Ensure(infos ...*model.ReusableContentInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var errs []error
	for i, info := range infos {
		if info == nil {
			m.logger.Error("Skipping nil reusable content", "index", i)
			errs = append(errs, fmt.Errorf("ensure entry %d: %w", i, ErrNilInfo))
			continue
		}
		if err := m.ensureOne(info); err != nil {
			m.logger.Error("Failed to ensure reusable content", "title", info.Title, "error", err)
			errs = append(errs, fmt.Errorf("ensure %q: %w", info.Title, err))
		}
	}
	return errors.Join(errs...)
}

func (m *Manager) ensureOne(info *model.ReusableContentInfo) error {
	if info.Title == "" {
		return storage.ErrEmptyTitle
	}

	existing, err := m.store.LoadContent(info.Title)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("loading existing entry failed: %w", err)
	}
	isNew := existing == nil

	if (isNew || info.IsAutomaticUpdate) && info.FileName != "" {
		if err := m.loader.Load(info); err != nil {
			return err
		}
	} else if info.FileName == "" {
		info.Content = m.loader.Sanitize(info.Content)
	}

	now := m.now()
	if isNew {
		record := &model.ContentRecord{
			ID:          uuid.New().String(),
			Info:        *info,
			CreatedAt:   now,
			LastUpdated: now,
		}
		if err := m.store.SaveContent(record); err != nil {
			return fmt.Errorf("saving new entry failed: %w", err)
		}
		m.logger.Info("Created reusable content", "title", info.Title, "id", record.ID, "automaticUpdate", info.IsAutomaticUpdate)
		return nil
	}

	content := existing.Info.Content
	if info.IsAutomaticUpdate {
		content = info.Content
	}
	existing.Info = *info
	existing.Info.Content = content
	existing.LastUpdated = now

	if err := m.store.SaveContent(existing); err != nil {
		return fmt.Errorf("saving updated entry failed: %w", err)
	}
	m.logger.Info("Updated reusable content", "title", info.Title, "id", existing.ID, "contentReplaced", info.IsAutomaticUpdate)
	return nil
}

// Sync reloads every automatic-update entry from its source file and saves the
// ones whose content changed. It returns how many entries were updated.
// Failures are logged and returned joined; they don't stop the sync.
func (m *Manager) Sync() (updated int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	records, err := m.store.ReadAll()
	if err != nil {
		return 0, fmt.Errorf("reading reusable content failed: %w", err)
	}

	var errs []error
	for _, record := range records {
		if !record.Info.IsAutomaticUpdate || record.Info.FileName == "" {
			continue
		}

		info := record.Info
		if err := m.loader.Load(&info); err != nil {
			m.logger.Error("Failed to reload reusable content", "title", record.Title(), "error", err)
			errs = append(errs, fmt.Errorf("sync %q: %w", record.Title(), err))
			continue
		}
		if info.Content == record.Info.Content {
			m.logger.Debug("Reusable content unchanged", "title", record.Title())
			continue
		}

		record.Info.Content = info.Content
		record.LastUpdated = m.now()
		if err := m.store.SaveContent(record); err != nil {
			m.logger.Error("Failed to save synced reusable content", "title", record.Title(), "error", err)
			errs = append(errs, fmt.Errorf("sync %q: %w", record.Title(), err))
			continue
		}
		updated++
	}

	m.logger.Info("Sync complete", "updated", updated, "failures", len(errs))
	return updated, errors.Join(errs...)
}

// Get returns the entry stored under title.
func (m *Manager) Get(title string) (*model.ContentRecord, error) {
	return m.store.LoadContent(title)
}

// Titles returns all titles in the list.
func (m *Manager) Titles() ([]string, error) {
	return m.store.GetAllTitles()
}

// List returns every entry, sorted by title.
func (m *Manager) List() ([]*model.ContentRecord, error) {
	return m.store.ReadAll()
}

// RibbonEntries returns the entries shown in the ribbon dropdown, sorted by title.
func (m *Manager) RibbonEntries() ([]*model.ContentRecord, error) {
	records, err := m.store.ReadAll()
	if err != nil {
		return nil, err
	}
	visible := make([]*model.ContentRecord, 0, len(records))
	for _, r := range records {
		if r.Info.IsShowInRibbon {
			visible = append(visible, r)
		}
	}
	return visible, nil
}

// HTMLFilePath resolves the source file path of a stored entry.
func (m *Manager) HTMLFilePath(title string) (string, error) {
	record, err := m.store.LoadContent(title)
	if err != nil {
		return "", err
	}
	path, err := record.Info.HTMLFilePath(m.loader.Resolver())
	if err != nil {
		return "", err
	}
	if err := setuppath.CheckInLayouts(m.loader.Resolver(), path); err != nil {
		return "", err
	}
	return path, nil
}

// Delete removes an entry from the list. The source file is left alone.
func (m *Manager) Delete(title string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logger.Info("Deleting reusable content", "title", title)
	if err := m.store.DeleteContent(title); err != nil {
		m.logger.Error("Failed to delete reusable content", "title", title, "error", err)
		return fmt.Errorf("deleting %q failed: %w", title, err)
	}
	return nil
}
