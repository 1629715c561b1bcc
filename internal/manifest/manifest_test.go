package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"go-reusable-content/internal/model"
)

const sampleManifest = `
contents:
  - title: Footer
    category: General
    automaticUpdate: true
    showInRibbon: false
    fileName: footer.html
    folder: GSoft.Dynamite
  - title: Empty Title
`

func TestParse(t *testing.T) {
	m, err := Parse(strings.NewReader(sampleManifest))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	want := []*model.ReusableContentInfo{
		model.NewReusableContentInfoWithFile("Footer", "General", true, false, "footer.html", "GSoft.Dynamite"),
		model.NewReusableContentInfo("Empty Title"),
	}
	if got := m.Infos(); !reflect.DeepEqual(got, want) {
		t.Errorf("Infos() = %+v, want %+v", got, want)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"Unknown key", "contents:\n  - title: Footer\n    fileNmae: footer.html\n"},
		{"Wrong type", "contents:\n  - title: Footer\n    showInRibbon: sometimes\n"},
		{"Not a list", "contents: footer\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tt.input)); err == nil {
				t.Errorf("Parse(%q) succeeded, expected error", tt.input)
			}
		})
	}
}

func TestParse_Empty(t *testing.T) {
	m, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Parse(\"\") failed: %v", err)
	}
	if len(m.Infos()) != 0 {
		t.Errorf("Infos() on empty manifest returned %d entries", len(m.Infos()))
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reusable-content.yaml")
	if err := os.WriteFile(path, []byte(sampleManifest), 0644); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(m.Contents) != 2 || m.Contents[0].Folder != "GSoft.Dynamite" {
		t.Errorf("Load() = %+v", m)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want not-exist", err)
	}
}
