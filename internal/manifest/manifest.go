// Package manifest reads the YAML file that declares which reusable content
// entries a site should have.
//
//	contents:
//	  - title: Footer
//	    category: General
//	    automaticUpdate: true
//	    showInRibbon: false
//	    fileName: footer.html
//	    folder: GSoft.Dynamite
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"go-reusable-content/internal/model"

	"gopkg.in/yaml.v3"
)

// Entry is one declared reusable content entry.
type Entry struct {
	Title           string `yaml:"title"`
	Category        string `yaml:"category"`
	AutomaticUpdate bool   `yaml:"automaticUpdate"`
	ShowInRibbon    bool   `yaml:"showInRibbon"`
	FileName        string `yaml:"fileName"`
	Folder          string `yaml:"folder"`
}

// Manifest is the top-level document.
type Manifest struct {
	Contents []Entry `yaml:"contents"`
}

// Parse decodes a manifest. Unknown keys are rejected so typos don't silently
// turn into default values.
func Parse(r io.Reader) (*Manifest, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return &Manifest{}, nil
		}
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}
	return Parse(bytes.NewReader(data))
}

// Infos converts the entries, in order, to ReusableContentInfo values.
func (m *Manifest) Infos() []*model.ReusableContentInfo {
	infos := make([]*model.ReusableContentInfo, 0, len(m.Contents))
	for _, e := range m.Contents {
		infos = append(infos, model.NewReusableContentInfoWithFile(e.Title, e.Category, e.AutomaticUpdate, e.ShowInRibbon, e.FileName, e.Folder))
	}
	return infos
}
