// Package catalogfile loads the stage catalog from a YAML file:
//
//	stages:
//	  - Queued
//	  - Die-cutting
//	  - Transport
package catalogfile

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"production/internal/core/domain/model/stage"

	"gopkg.in/yaml.v3"
)

type document struct {
	Stages []string `yaml:"stages"`
}

// Parse decodes a catalog from YAML bytes.
func Parse(data []byte) (stage.Catalog, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return stage.Catalog{}, fmt.Errorf("catalog: payload is empty")
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return stage.Catalog{}, fmt.Errorf("catalog: decode: %w", err)
	}

	return stage.NewCatalog(doc.Stages...)
}

// LoadReader reads a catalog from r.
func LoadReader(r io.Reader) (stage.Catalog, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return stage.Catalog{}, fmt.Errorf("catalog: read: %w", err)
	}
	return Parse(content)
}

// LoadFile reads the catalog at path. An empty path yields the default
// print-shop catalog.
func LoadFile(path string) (stage.Catalog, error) {
	if path == "" {
		return stage.DefaultCatalog(), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return stage.Catalog{}, fmt.Errorf("catalog: read %s: %w", path, err)
	}

	catalog, err := Parse(content)
	if err != nil {
		return stage.Catalog{}, fmt.Errorf("catalog: %s: %w", path, err)
	}
	return catalog, nil
}
