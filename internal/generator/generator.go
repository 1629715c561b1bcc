package generator

import (
	"errors"
	"fmt"
	"html/template"
	"path/filepath"
	"strings"

	"go-reusable-content/internal/model"
	"go-reusable-content/internal/setuppath"
	"go-reusable-content/pkg/fsutils"

	"github.com/gosimple/slug"
)

// ErrNoFileName is returned when scaffolding an entry that has no FileName.
var ErrNoFileName = errors.New("reusable content has no file name to scaffold")

// defaultSourceHTML is written to new source files. Authors replace it.
var defaultSourceHTML = template.Must(template.New("source").Parse(`<div class="reusable-content {{ .Class }}" data-category="{{ .Category }}">
    <p>Placeholder content for {{ .Title }}</p>
</div>
`))

type sourceData struct {
	Title    string
	Category string
	Class    string
}

// ScaffoldSourceFile creates the HTML source file of info in the Layouts hive,
// together with its folder. An existing file is never overwritten.
// It returns the file path and whether a file was created.
func ScaffoldSourceFile(info *model.ReusableContentInfo, resolver setuppath.Resolver) (string, bool, error) {
	if info.FileName == "" {
		return "", false, fmt.Errorf("%q: %w", info.Title, ErrNoFileName)
	}

	path, err := info.HTMLFilePath(resolver)
	if err != nil {
		return "", false, fmt.Errorf("resolving source path for %q failed: %w", info.Title, err)
	}
	if err := setuppath.CheckInLayouts(resolver, path); err != nil {
		return "", false, fmt.Errorf("scaffolding %q refused: %w", info.Title, err)
	}
	if fsutils.FileExists(path) {
		return path, false, nil
	}

	if err := fsutils.CreateDir(filepath.Dir(path)); err != nil {
		return "", false, fmt.Errorf("failed to create folder for %s: %w", path, err)
	}

	var b strings.Builder
	data := sourceData{Title: info.Title, Category: info.Category, Class: slug.Make(info.Title)}
	if err := defaultSourceHTML.Execute(&b, data); err != nil {
		return "", false, fmt.Errorf("failed to render placeholder for %q: %w", info.Title, err)
	}

	if err := fsutils.WriteToFile(path, []byte(b.String())); err != nil {
		return "", false, fmt.Errorf("failed to create source file %s: %w", path, err)
	}
	return path, true, nil
}
