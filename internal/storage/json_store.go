package storage

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go-reusable-content/internal/model"
	"go-reusable-content/pkg/fsutils"

	"github.com/gosimple/slug"
)

// JSONStore implements DataStore with one JSON file per record.
// File names are derived from the title, the title itself lives inside the file.
type JSONStore struct {
	// BasePath is the directory where record files (*.json) are stored.
	BasePath string
}

// NewJSONStore creates a JSONStore, creating the base directory if needed.
func NewJSONStore(basePath string) (*JSONStore, error) {
	if err := fsutils.CreateDir(basePath); err != nil {
		return nil, fmt.Errorf("failed to create storage directory '%s': %w", basePath, err)
	}
	return &JSONStore{BasePath: basePath}, nil
}

// GetBasePath returns the base path of the JSON store.
func (js *JSONStore) GetBasePath() string {
	return js.BasePath
}

// fileNameFor maps a title to its file name. The slug keeps names readable and
// the hash suffix keeps titles that slug the same way ("Footer", "footer!") apart.
func fileNameFor(title string) string {
	sum := sha1.Sum([]byte(title))
	s := slug.Make(title)
	if s == "" {
		s = "content"
	}
	return s + "-" + hex.EncodeToString(sum[:4]) + ".json"
}

func (js *JSONStore) pathFor(title string) string {
	return filepath.Join(js.BasePath, fileNameFor(title))
}

// SaveContent writes the record to its JSON file, replacing any previous version.
func (js *JSONStore) SaveContent(record *model.ContentRecord) error {
	if record.Title() == "" {
		return ErrEmptyTitle
	}
	filePath := js.pathFor(record.Title())

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal reusable content %q: %w", record.Title(), err)
	}

	if err := fsutils.WriteFileAtomic(filePath, data); err != nil {
		return fmt.Errorf("failed to write reusable content file %s: %w", filePath, err)
	}
	return nil
}

// LoadContent reads the record stored for title.
func (js *JSONStore) LoadContent(title string) (*model.ContentRecord, error) {
	if title == "" {
		return nil, ErrEmptyTitle
	}
	filePath := js.pathFor(title)

	record, err := readRecord(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("reusable content %q: %w", title, ErrNotFound)
		}
		return nil, err
	}
	// A hash collision would surface here as a different title.
	if record.Title() != title {
		return nil, fmt.Errorf("reusable content %q: %w", title, ErrNotFound)
	}
	return record, nil
}

func readRecord(filePath string) (*model.ContentRecord, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	var record model.ContentRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal reusable content from %s: %w", filePath, err)
	}
	return &record, nil
}

// GetAllTitles scans the base directory for record files.
func (js *JSONStore) GetAllTitles() ([]string, error) {
	records, err := js.ReadAll()
	if err != nil {
		return nil, err
	}
	titles := make([]string, 0, len(records))
	for _, r := range records {
		titles = append(titles, r.Title())
	}
	return titles, nil
}

// DeleteContent removes the record file for title. Missing files are ignored.
func (js *JSONStore) DeleteContent(title string) error {
	if title == "" {
		return ErrEmptyTitle
	}
	filePath := js.pathFor(title)

	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete reusable content file %s: %w", filePath, err)
	}
	return nil
}

// ReadAll loads every record file in the base directory.
func (js *JSONStore) ReadAll() ([]*model.ContentRecord, error) {
	entries, err := os.ReadDir(js.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []*model.ContentRecord{}, nil
		}
		return nil, fmt.Errorf("failed to read storage directory %s: %w", js.BasePath, err)
	}

	records := make([]*model.ContentRecord, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		record, err := readRecord(filepath.Join(js.BasePath, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to load %s during ReadAll: %w", entry.Name(), err)
		}
		records = append(records, record)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Title() < records[j].Title()
	})
	return records, nil
}
