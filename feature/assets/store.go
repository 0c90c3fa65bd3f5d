package assets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrManifestNotFound is returned when no manifest has the requested name.
var ErrManifestNotFound = errors.New("assets: manifest not found")

// ManifestEntry is one stored manifest item.
type ManifestEntry struct {
	ID          uint   `gorm:"primaryKey"`
	Manifest    string `gorm:"column:manifest;size:128;index:idx_manifest_position,priority:1"`
	Description string `gorm:"column:description;size:255"`
	Kind        string `gorm:"column:kind;size:16"`
	Position    int    `gorm:"column:position;index:idx_manifest_position,priority:2"`
	AssetID     string `gorm:"column:asset_id;size:128"`
	URL         string `gorm:"column:url;size:1024"`
	// Materials is the JSON-encoded material configuration of model items.
	Materials string `gorm:"column:materials;type:text"`
}

// TableName overrides the GORM table name.
func (ManifestEntry) TableName() string {
	return "asset_manifest_entries"
}

// ManifestColumns lists the columns the store relies on.
var ManifestColumns = []string{"id", "manifest", "description", "kind", "position", "asset_id", "url", "materials"}

// storedMaterials is the JSON shape of ManifestEntry.Materials.
type storedMaterials struct {
	Material  *MaterialConfig  `json:"material,omitempty"`
	Materials []MaterialConfig `json:"materials,omitempty"`
}

// ManifestStore persists manifests with GORM.
type ManifestStore struct {
	db *gorm.DB
}

// NewManifestStore creates a store on db.
func NewManifestStore(db *gorm.DB) *ManifestStore {
	return &ManifestStore{db: db}
}

// Migrate creates or updates the entries table.
func (s *ManifestStore) Migrate() error {
	return s.db.AutoMigrate(&ManifestEntry{})
}

// Save replaces the stored manifest of the same name.
func (s *ManifestStore) Save(ctx context.Context, m *Manifest) error {
	entries, err := toEntries(m)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("manifest = ?", m.Name).Delete(&ManifestEntry{}).Error; err != nil {
			return fmt.Errorf("failed to clear manifest %s: %w", m.Name, err)
		}
		if len(entries) == 0 {
			return nil
		}
		if err := tx.Create(&entries).Error; err != nil {
			return fmt.Errorf("failed to store manifest %s: %w", m.Name, err)
		}
		return nil
	})
}

// Load rebuilds the manifest called name.
func (s *ManifestStore) Load(ctx context.Context, name string) (*Manifest, error) {
	var entries []ManifestEntry
	err := s.db.WithContext(ctx).
		Where("manifest = ?", name).
		Order("kind").Order("position").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load manifest %s: %w", name, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrManifestNotFound, name)
	}
	return fromEntries(name, entries)
}

// List returns the names of all stored manifests.
func (s *ManifestStore) List(ctx context.Context) ([]string, error) {
	var names []string
	err := s.db.WithContext(ctx).Model(&ManifestEntry{}).
		Distinct("manifest").Order("manifest").
		Pluck("manifest", &names).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list manifests: %w", err)
	}
	return names, nil
}

// Delete removes the manifest called name.
func (s *ManifestStore) Delete(ctx context.Context, name string) error {
	res := s.db.WithContext(ctx).Where("manifest = ?", name).Delete(&ManifestEntry{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete manifest %s: %w", name, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrManifestNotFound, name)
	}
	return nil
}

func toEntries(m *Manifest) ([]ManifestEntry, error) {
	var entries []ManifestEntry
	add := func(kind Kind, pos int, item Item, mats *storedMaterials) error {
		e := ManifestEntry{
			Manifest:    m.Name,
			Description: m.Description,
			Kind:        string(kind),
			Position:    pos,
			AssetID:     item.ID,
			URL:         item.URL,
		}
		if mats != nil && (mats.Material != nil || len(mats.Materials) > 0) {
			raw, err := json.Marshal(mats)
			if err != nil {
				return fmt.Errorf("failed to encode materials of %s: %w", item.ID, err)
			}
			e.Materials = string(raw)
		}
		entries = append(entries, e)
		return nil
	}

	a := m.Assets
	for i, it := range a.Textures {
		if err := add(KindTexture, i, it, nil); err != nil {
			return nil, err
		}
	}
	for i, it := range a.GLTFModels {
		if err := add(KindGLTF, i, it.Item, &storedMaterials{it.Material, it.Materials}); err != nil {
			return nil, err
		}
	}
	for i, it := range a.FBXSkeletonAnimations {
		if err := add(KindAnimation, i, it, nil); err != nil {
			return nil, err
		}
	}
	for i, it := range a.FBXModels {
		if err := add(KindFBX, i, it.Item, &storedMaterials{it.Material, it.Materials}); err != nil {
			return nil, err
		}
	}
	for i, it := range a.Audio {
		if err := add(KindAudio, i, it, nil); err != nil {
			return nil, err
		}
	}
	return entries, nil
}

func fromEntries(name string, entries []ManifestEntry) (*Manifest, error) {
	m := &Manifest{Name: name}
	for _, e := range entries {
		m.Description = e.Description
		item := Item{ID: e.AssetID, URL: e.URL}

		model := func() (ModelItem, error) {
			mi := ModelItem{Item: item}
			if e.Materials == "" {
				return mi, nil
			}
			var mats storedMaterials
			if err := json.Unmarshal([]byte(e.Materials), &mats); err != nil {
				return mi, fmt.Errorf("failed to decode materials of %s: %w", e.AssetID, err)
			}
			mi.Material, mi.Materials = mats.Material, mats.Materials
			return mi, nil
		}

		switch Kind(e.Kind) {
		case KindTexture:
			m.Assets.Textures = append(m.Assets.Textures, item)
		case KindAnimation:
			m.Assets.FBXSkeletonAnimations = append(m.Assets.FBXSkeletonAnimations, item)
		case KindAudio:
			m.Assets.Audio = append(m.Assets.Audio, item)
		case KindGLTF:
			mi, err := model()
			if err != nil {
				return nil, err
			}
			m.Assets.GLTFModels = append(m.Assets.GLTFModels, mi)
		case KindFBX:
			mi, err := model()
			if err != nil {
				return nil, err
			}
			m.Assets.FBXModels = append(m.Assets.FBXModels, mi)
		default:
			return nil, fmt.Errorf("manifest %s: unknown kind %q", name, e.Kind)
		}
	}
	return m, nil
}
