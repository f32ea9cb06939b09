// Package input imports style configuration written for the CSS build tool.
package input

import (
	"context"
	"fmt"
	"os"

	"github.com/jmylchreest/stylekit/internal/config"
)

// Adapter reads a configuration from an external source.
type Adapter interface {
	// Name returns the adapter name (e.g. "tailwind-json").
	Name() string

	// Import reads the source and returns the equivalent configuration.
	Import(ctx context.Context) (*config.Config, error)
}

// FileAdapter imports a tool-native JSON document from disk.
type FileAdapter struct {
	path string
}

// NewFileAdapter creates an adapter for the JSON document at path.
func NewFileAdapter(path string) *FileAdapter {
	return &FileAdapter{path: path}
}

// Name returns "tailwind-json".
func (a *FileAdapter) Name() string {
	return "tailwind-json"
}

// Import reads and parses the document.
func (a *FileAdapter) Import(ctx context.Context) (*config.Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(a.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", a.path, err)
	}
	cfg, err := ParseTailwindJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", a.path, err)
	}
	return cfg, nil
}
