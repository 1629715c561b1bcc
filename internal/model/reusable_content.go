package model

import (
	"fmt"

	"go-reusable-content/internal/setuppath"
)

// layoutsPathFormat is the hive-relative location of a Layouts file. The
// separators are the platform's, not the host's.
const layoutsPathFormat = `TEMPLATE\LAYOUTS\%s\%s`

// ReusableContentInfo describes one Reusable Content entry and, optionally, the
// HTML file in the Layouts hive its content is read from.
//
// The usual pattern is to fill FileName and FolderInLayouts so a loader can read
// the HTML file and fill Content with it. No field is validated.
type ReusableContentInfo struct {
	Title             string `json:"title"`                     // Key of the entry in the reusable content list
	Category          string `json:"category,omitempty"`        // Choice value in the list
	IsAutomaticUpdate bool   `json:"isAutomaticUpdate"`         // Re-synced from the source (true) or a frozen copy (false)
	IsShowInRibbon    bool   `json:"isShowInRibbon"`            // Listed in the ribbon dropdown
	Content           string `json:"content,omitempty"`         // HTML body, filled by a loader
	FileName          string `json:"fileName,omitempty"`        // e.g. "footer.html"
	FolderInLayouts   string `json:"folderInLayouts,omitempty"` // e.g. "GSoft.Dynamite"
}

// NewReusableContentInfo creates an entry with only its title set.
func NewReusableContentInfo(title string) *ReusableContentInfo {
	return &ReusableContentInfo{Title: title}
}

// NewReusableContentInfoWithFile creates an entry backed by an HTML file in the Layouts hive.
func NewReusableContentInfoWithFile(title, category string, isAutomaticUpdate, isShowInRibbon bool, fileName, folderInLayouts string) *ReusableContentInfo {
	info := NewReusableContentInfo(title)
	info.Category = category
	info.IsAutomaticUpdate = isAutomaticUpdate
	info.IsShowInRibbon = isShowInRibbon
	info.FileName = fileName
	info.FolderInLayouts = folderInLayouts
	return info
}

// RelativeHTMLPath returns TEMPLATE\LAYOUTS\<FolderInLayouts>\<FileName>.
func (i *ReusableContentInfo) RelativeHTMLPath() string {
	return fmt.Sprintf(layoutsPathFormat, i.FolderInLayouts, i.FileName)
}

// HTMLFilePath resolves the HTML file's absolute path in the version 15 hive.
// It is recomputed on every call. Resolver errors are returned as is.
func (i *ReusableContentInfo) HTMLFilePath(resolver setuppath.Resolver) (string, error) {
	return resolver.Resolve(i.RelativeHTMLPath(), setuppath.SharePointMajorVersion)
}
