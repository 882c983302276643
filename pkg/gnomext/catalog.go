// Package gnomext installs GNOME Shell extensions from the
// extensions.gnome.org catalog: look up the extension, negotiate a version
// compatible with the running shell, download the archive, extract it into
// the per-user extensions directory, and enable it.
package gnomext

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Extension is one entry of the curated extension set.
type Extension struct {
	// UUID is the stable identifier and install directory name,
	// e.g. "blur-my-shell@aunetx".
	UUID string `yaml:"uuid"`

	// Search is the name used to query the catalog.
	Search string `yaml:"search"`
}

// Catalog is the curated extension list shipped with the binary.
type Catalog struct {
	Extensions []Extension `yaml:"extensions"`
}

// LoadCatalog parses the embedded extension catalog.
func LoadCatalog() (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(catalogYAML, &c); err != nil {
		return nil, fmt.Errorf("failed to parse extension catalog: %w", err)
	}
	return &c, nil
}
