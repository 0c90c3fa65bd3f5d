package assets

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnknownManifestFormat is returned for manifest files that are not YAML, TOML or JSON.
var ErrUnknownManifestFormat = errors.New("assets: unknown manifest format")

// Manifest formats.
const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
	FormatJSON = "json"
)

// Manifest is a named set of batches.
type Manifest struct {
	Name        string  `json:"name" yaml:"name" toml:"name"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Assets      Batches `json:"assets" yaml:"assets" toml:"assets"`
}

// ManifestFormat picks a format from a file name's extension.
func ManifestFormat(filename string) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownManifestFormat, filename)
}

// ParseManifest decodes data in the given format and validates it.
func ParseManifest(data []byte, format string) (*Manifest, error) {
	var m Manifest
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &m)
	case FormatTOML:
		err = toml.Unmarshal(data, &m)
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&m)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownManifestFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s manifest: %w", format, err)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks that every item has an id and url, that ids are unique per
// kind and that material types name one of DefaultFactories.
func (m *Manifest) Validate() error {
	check := func(kind Kind, items []Item) error {
		seen := make(map[string]struct{}, len(items))
		for i, it := range items {
			if it.ID == "" || it.URL == "" {
				return fmt.Errorf("manifest %q: %s item %d needs id and url", m.Name, kind, i)
			}
			if _, dup := seen[it.ID]; dup {
				return fmt.Errorf("manifest %q: duplicate %s id %q", m.Name, kind, it.ID)
			}
			seen[it.ID] = struct{}{}
		}
		return nil
	}

	a := m.Assets
	for _, c := range []struct {
		kind  Kind
		items []Item
	}{
		{KindTexture, a.Textures},
		{KindGLTF, itemsOf(a.GLTFModels)},
		{KindAnimation, a.FBXSkeletonAnimations},
		{KindFBX, itemsOf(a.FBXModels)},
		{KindAudio, a.Audio},
	} {
		if err := check(c.kind, c.items); err != nil {
			return err
		}
	}

	defaults := DefaultFactories()
	if err := checkMaterialTypes(KindGLTF, a.GLTFModels, defaults); err != nil {
		return fmt.Errorf("manifest %q: %w", m.Name, err)
	}
	if err := checkMaterialTypes(KindFBX, a.FBXModels, defaults); err != nil {
		return fmt.Errorf("manifest %q: %w", m.Name, err)
	}
	return nil
}
