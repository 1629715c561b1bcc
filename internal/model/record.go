package model

import "time"

// ContentRecord is a reusable content entry as stored in the content list.
type ContentRecord struct {
	ID          string              `json:"id"` // Generated once, stable across updates
	Info        ReusableContentInfo `json:"info"`
	CreatedAt   time.Time           `json:"createdAt"`
	LastUpdated time.Time           `json:"lastUpdated"`
}

// Title returns the key the record is stored under.
func (r *ContentRecord) Title() string {
	return r.Info.Title
}
