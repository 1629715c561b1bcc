package setuppath

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// SharePointMajorVersion is the platform generation whose hive the Layouts
// files live under (the "15" hive).
const SharePointMajorVersion = 15

var (
	// ErrHiveNotFound means the versioned hive directory is missing under the install root.
	ErrHiveNotFound = errors.New("versioned setup hive not found")
	// ErrInvalidVersion is returned for a non-positive major version.
	ErrInvalidVersion = errors.New("invalid platform major version")
	// ErrOutsideLayouts means a resolved file path escapes the Layouts folder.
	ErrOutsideLayouts = errors.New("path is outside the Layouts folder")
)

// LayoutsRelativePath is the hive-relative Layouts folder.
const LayoutsRelativePath = `TEMPLATE\LAYOUTS`

// Resolver maps a path relative to the setup hive (e.g. TEMPLATE\LAYOUTS\x\y.html)
// and a platform major version to an absolute file-system path.
type Resolver interface {
	Resolve(relativePath string, majorVersion int) (string, error)
}

// ResolverFunc lets an ordinary function act as a Resolver.
type ResolverFunc func(relativePath string, majorVersion int) (string, error)

// Resolve calls f(relativePath, majorVersion).
func (f ResolverFunc) Resolve(relativePath string, majorVersion int) (string, error) {
	return f(relativePath, majorVersion)
}

// HiveResolver resolves paths against an installation root laid out the way
// the platform does it: <Root>/<majorVersion>/<relative path>.
type HiveResolver struct {
	// Root is the directory that contains one sub-directory per major version
	// (".../Web Server Extensions" on a real farm).
	Root string
}

// NewHiveResolver creates a HiveResolver rooted at root.
func NewHiveResolver(root string) *HiveResolver {
	return &HiveResolver{Root: root}
}

// Resolve maps relativePath onto the hive of the given major version. The
// target file itself does not have to exist; only the hive does. Segments are
// not cleaned, so ".." can leave the hive: code that opens the result checks it
// with CheckInLayouts first.
func (h *HiveResolver) Resolve(relativePath string, majorVersion int) (string, error) {
	if majorVersion <= 0 {
		return "", fmt.Errorf("%w: %d", ErrInvalidVersion, majorVersion)
	}

	hive := filepath.Join(h.Root, strconv.Itoa(majorVersion))
	info, err := os.Stat(hive)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrHiveNotFound, hive)
		}
		return "", fmt.Errorf("failed to stat hive %s: %w", hive, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", ErrHiveNotFound, hive)
	}

	abs, err := filepath.Abs(hive)
	if err != nil {
		return "", fmt.Errorf("failed to make hive path %s absolute: %w", hive, err)
	}

	// Platform paths use backslashes; keep empty segments so an unset folder
	// or file name still produces a (degenerate) path rather than an error.
	segments := strings.Split(relativePath, `\`)
	return abs + string(filepath.Separator) + strings.Join(segments, string(filepath.Separator)), nil
}

// CheckInLayouts returns ErrOutsideLayouts unless path, once cleaned, names
// something strictly below the version 15 Layouts folder as resolved by r.
func CheckInLayouts(r Resolver, path string) error {
	layouts, err := r.Resolve(LayoutsRelativePath, SharePointMajorVersion)
	if err != nil {
		return err
	}

	rel, err := filepath.Rel(filepath.Clean(layouts), filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("%w: %s", ErrOutsideLayouts, path)
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return fmt.Errorf("%w: %s", ErrOutsideLayouts, path)
	}
	return nil
}
