package storage

import (
	"errors"

	"go-reusable-content/internal/model"
)

var (
	// ErrNotFound is wrapped by LoadContent when no record has the requested title.
	ErrNotFound = errors.New("reusable content not found")
	// ErrEmptyTitle is returned when a record is saved or looked up without a title.
	ErrEmptyTitle = errors.New("reusable content title cannot be empty")
)

// DataStore is the reusable content list. Records are keyed by title.
type DataStore interface {
	// SaveContent creates or replaces the record with the same title.
	SaveContent(record *model.ContentRecord) error

	// LoadContent retrieves a record by title.
	LoadContent(title string) (*model.ContentRecord, error)

	// GetAllTitles returns the titles of all stored records, sorted.
	GetAllTitles() ([]string, error)

	// DeleteContent removes a record. Deleting a missing title is not an error.
	DeleteContent(title string) error

	// ReadAll retrieves every record, sorted by title.
	ReadAll() ([]*model.ContentRecord, error)

	// GetBasePath returns where the store keeps its data.
	GetBasePath() string
}
