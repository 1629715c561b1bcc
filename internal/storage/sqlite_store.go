package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"go-reusable-content/internal/model"
	"go-reusable-content/pkg/fsutils"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS reusable_content (
	title               TEXT PRIMARY KEY,
	id                  TEXT NOT NULL,
	category            TEXT NOT NULL DEFAULT '',
	is_automatic_update INTEGER NOT NULL DEFAULT 0,
	is_show_in_ribbon   INTEGER NOT NULL DEFAULT 0,
	content             TEXT NOT NULL DEFAULT '',
	file_name           TEXT NOT NULL DEFAULT '',
	folder_in_layouts   TEXT NOT NULL DEFAULT '',
	created_at          INTEGER NOT NULL,
	last_updated        INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_reusable_content_ribbon ON reusable_content(is_show_in_ribbon);
`

const selectColumns = `title, id, category, is_automatic_update, is_show_in_ribbon, content,
	file_name, folder_in_layouts, created_at, last_updated`

// SQLiteStore implements DataStore on a single SQLite table keyed by title.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// OpenSQLiteStore opens (or creates) content.db inside dir.
func OpenSQLiteStore(dir string) (*SQLiteStore, error) {
	if err := fsutils.CreateDir(dir); err != nil {
		return nil, fmt.Errorf("failed to create storage directory '%s': %w", dir, err)
	}
	dbPath := filepath.Join(dir, "content.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return newSQLiteStore(db, dbPath)
}

// OpenSQLiteStoreInMemory opens a private in-memory store (for testing).
func OpenSQLiteStoreInMemory() (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, err
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	return newSQLiteStore(db, ":memory:")
}

func newSQLiteStore(db *sql.DB, path string) (*SQLiteStore, error) {
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &SQLiteStore{db: db, path: path}, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// GetBasePath returns the database file path.
func (s *SQLiteStore) GetBasePath() string {
	return s.path
}

// SaveContent upserts the record by title.
func (s *SQLiteStore) SaveContent(record *model.ContentRecord) error {
	if record.Title() == "" {
		return ErrEmptyTitle
	}
	info := record.Info
	_, err := s.db.Exec(`
		INSERT INTO reusable_content (`+selectColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(title) DO UPDATE SET
			id = excluded.id,
			category = excluded.category,
			is_automatic_update = excluded.is_automatic_update,
			is_show_in_ribbon = excluded.is_show_in_ribbon,
			content = excluded.content,
			file_name = excluded.file_name,
			folder_in_layouts = excluded.folder_in_layouts,
			created_at = excluded.created_at,
			last_updated = excluded.last_updated`,
		info.Title, record.ID, info.Category, boolToInt(info.IsAutomaticUpdate), boolToInt(info.IsShowInRibbon),
		info.Content, info.FileName, info.FolderInLayouts,
		record.CreatedAt.UnixNano(), record.LastUpdated.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to save reusable content %q: %w", info.Title, err)
	}
	return nil
}

// LoadContent retrieves the record stored under title.
func (s *SQLiteStore) LoadContent(title string) (*model.ContentRecord, error) {
	if title == "" {
		return nil, ErrEmptyTitle
	}
	row := s.db.QueryRow(`SELECT `+selectColumns+` FROM reusable_content WHERE title = ?`, title)
	record, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("reusable content %q: %w", title, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load reusable content %q: %w", title, err)
	}
	return record, nil
}

// GetAllTitles returns every stored title in order.
func (s *SQLiteStore) GetAllTitles() ([]string, error) {
	rows, err := s.db.Query(`SELECT title FROM reusable_content ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("failed to query titles: %w", err)
	}
	defer rows.Close()

	titles := []string{}
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, fmt.Errorf("failed to scan title: %w", err)
		}
		titles = append(titles, title)
	}
	return titles, rows.Err()
}

// DeleteContent removes the record for title, if any.
func (s *SQLiteStore) DeleteContent(title string) error {
	if title == "" {
		return ErrEmptyTitle
	}
	if _, err := s.db.Exec(`DELETE FROM reusable_content WHERE title = ?`, title); err != nil {
		return fmt.Errorf("failed to delete reusable content %q: %w", title, err)
	}
	return nil
}

// ReadAll loads every record, ordered by title.
func (s *SQLiteStore) ReadAll() ([]*model.ContentRecord, error) {
	rows, err := s.db.Query(`SELECT ` + selectColumns + ` FROM reusable_content ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("failed to query reusable content: %w", err)
	}
	defer rows.Close()

	records := []*model.ContentRecord{}
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reusable content: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*model.ContentRecord, error) {
	var (
		record               model.ContentRecord
		autoUpdate, inRibbon int
		created, updated     int64
	)
	info := &record.Info
	err := row.Scan(&info.Title, &record.ID, &info.Category, &autoUpdate, &inRibbon, &info.Content,
		&info.FileName, &info.FolderInLayouts, &created, &updated)
	if err != nil {
		return nil, err
	}
	info.IsAutomaticUpdate = autoUpdate != 0
	info.IsShowInRibbon = inRibbon != 0
	record.CreatedAt = time.Unix(0, created)
	record.LastUpdated = time.Unix(0, updated)
	return &record, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
