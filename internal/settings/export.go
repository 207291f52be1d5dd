package settings

import (
	"errors"
	"fmt"
	"io"

	"github.com/studiowebux/launcher/internal/types"
	"gopkg.in/yaml.v3"
)

// ExportYAML writes the current settings as YAML
func (s *Store) ExportYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s.Settings()); err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	return enc.Close()
}

// ImportYAML overlays a YAML document on the current settings.
// Keys absent from the document keep their current value.
func (s *Store) ImportYAML(r io.Reader) error {
	return s.commit(func(current types.Settings) (types.Settings, error) {
		next := current
		if err := yaml.NewDecoder(r).Decode(&next); err != nil && !errors.Is(err, io.EOF) {
			return current, fmt.Errorf("failed to decode settings: %w", err)
		}
		return next, nil
	})
}
