package integrity

import (
	"context"
	"errors"
	"fmt"

	"scene-toolkit/core/storage"
	"scene-toolkit/feature/assets"
	"scene-toolkit/feature/integrity/checks"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNoStorage is returned by bucket checks when no storage client is configured.
var ErrNoStorage = errors.New("integrity: storage unavailable")

// Service handles integrity checks.
type Service struct {
	client  storage.Client
	bucket  string
	logger  *zap.Logger
	db      *gorm.DB
	store   *assets.ManifestStore
	files   afero.Fs
	baseDir string
}

// NewService creates a new integrity service. client, db and files may be nil;
// the checks that need them then report an error or skip.
func NewService(client storage.Client, bucket string, logger *zap.Logger, db *gorm.DB, files afero.Fs, baseDir string) *Service {
	s := &Service{
		client:  client,
		bucket:  bucket,
		logger:  logger,
		db:      db,
		files:   files,
		baseDir: baseDir,
	}
	if db != nil {
		s.store = assets.NewManifestStore(db)
	}
	return s
}

// CheckStructure returns a list of missing folders.
func (s *Service) CheckStructure(ctx context.Context) ([]string, error) {
	if s.client == nil {
		return nil, ErrNoStorage
	}
	return checks.CheckStructure(ctx, s.client, s.bucket)
}

// FixStructure creates the missing folders.
func (s *Service) FixStructure(ctx context.Context, missing []string) error {
	if s.client == nil {
		return ErrNoStorage
	}
	return checks.FixStructure(ctx, s.client, s.bucket, s.logger, missing)
}

// CheckManifest verifies the sources of a manifest.
func (s *Service) CheckManifest(ctx context.Context, m *assets.Manifest) (*checks.ManifestReport, error) {
	return checks.CheckManifest(ctx, s.locations(), m)
}

// CheckStoredManifest verifies the sources of the stored manifest called name.
func (s *Service) CheckStoredManifest(ctx context.Context, name string) (*checks.ManifestReport, error) {
	if s.store == nil {
		return nil, assets.ErrNoStore
	}
	m, err := s.store.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	return s.CheckManifest(ctx, m)
}

// CheckStoredManifests verifies every stored manifest.
func (s *Service) CheckStoredManifests(ctx context.Context) ([]*checks.ManifestReport, error) {
	if s.store == nil {
		return nil, assets.ErrNoStore
	}
	names, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	reports := make([]*checks.ManifestReport, 0, len(names))
	for _, name := range names {
		report, err := s.CheckStoredManifest(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to check manifest %s: %w", name, err)
		}
		if !report.OK() {
			s.logger.Warn("Manifest has missing sources",
				zap.String("manifest", name),
				zap.Int("missing", len(report.Missing)),
				zap.Int("errors", len(report.Errors)))
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// CheckSchema verifies the database schema.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db)
}

func (s *Service) locations() checks.Locations {
	return checks.Locations{
		Client:  s.client,
		Bucket:  s.bucket,
		Files:   s.files,
		BaseDir: s.baseDir,
	}
}
