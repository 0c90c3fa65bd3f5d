package assets

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrRunInProgress is returned when a load is started while another is running.
	ErrRunInProgress = errors.New("assets: a load is already running")
	// ErrUnknownKind is returned for an asset kind that does not exist.
	ErrUnknownKind = errors.New("assets: unknown kind")
	// ErrNoStore is returned for stored-manifest operations without a database.
	ErrNoStore = errors.New("assets: manifest store unavailable")
)

// Run states.
const (
	StateIdle    = "idle"
	StateRunning = "running"
	StateDone    = "done"
	StateFailed  = "failed"
)

// RunStatus describes the latest pipeline run.
type RunStatus struct {
	ID         string    `json:"id,omitempty"`
	Manifest   string    `json:"manifest,omitempty"`
	State      string    `json:"state"`
	Progress   float64   `json:"progress"`
	Total      int       `json:"total"`
	Error      string    `json:"error,omitempty"`
	StartedAt  time.Time `json:"started_at,omitempty"`
	FinishedAt time.Time `json:"finished_at,omitempty"`
}

// Service runs manifests through the pipeline and tracks the latest run.
type Service struct {
	pipeline *Pipeline
	store    *ManifestStore
	logger   *zap.Logger

	mu     sync.Mutex
	status RunStatus
	done   chan struct{}
}

// NewService creates a service. store may be nil when no database is configured.
func NewService(pipeline *Pipeline, store *ManifestStore, logger *zap.Logger) *Service {
	return &Service{
		pipeline: pipeline,
		store:    store,
		logger:   logger,
		status:   RunStatus{State: StateIdle},
	}
}

// Registries returns the registries filled by the pipeline.
func (s *Service) Registries() *Registries {
	return s.pipeline.Registries()
}

// Load runs m synchronously.
func (s *Service) Load(ctx context.Context, m *Manifest, onProgress ProgressFunc) (*Result, error) {
	return s.pipeline.Load(ctx, m.Assets, onProgress)
}

// Start runs m in the background and returns the initial status.
func (s *Service) Start(m *Manifest) (RunStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status.State == StateRunning {
		return s.status, ErrRunInProgress
	}

	s.status = RunStatus{
		ID:        uuid.NewString(),
		Manifest:  m.Name,
		State:     StateRunning,
		Total:     m.Assets.Total(),
		StartedAt: time.Now(),
	}
	s.done = make(chan struct{})
	status, done := s.status, s.done

	log := s.logger.With(zap.String("run_id", status.ID), zap.String("manifest", m.Name))
	log.Info("Asset load started", zap.Int("total", status.Total))

	go func() {
		defer close(done)

		_, err := s.pipeline.Load(context.Background(), m.Assets, func(f float64) {
			s.mu.Lock()
			s.status.Progress = f
			s.mu.Unlock()
		})

		s.mu.Lock()
		defer s.mu.Unlock()
		s.status.FinishedAt = time.Now()
		if err != nil {
			s.status.State = StateFailed
			s.status.Error = err.Error()
			log.Error("Asset load failed", zap.Error(err))
			return
		}
		s.status.State = StateDone
		s.status.Progress = 1
		log.Info("Asset load finished", zap.Duration("took", s.status.FinishedAt.Sub(s.status.StartedAt)))
	}()

	return status, nil
}

// StartStored runs the stored manifest called name in the background.
func (s *Service) StartStored(ctx context.Context, name string) (RunStatus, error) {
	if s.store == nil {
		return RunStatus{}, ErrNoStore
	}
	m, err := s.store.Load(ctx, name)
	if err != nil {
		return RunStatus{}, err
	}
	return s.Start(m)
}

// Wait blocks until the current run finishes or ctx is done.
func (s *Service) Wait(ctx context.Context) error {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()

	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Status returns the latest run's status.
func (s *Service) Status() RunStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// IDs returns the registered ids of kind.
func (s *Service) IDs(kind Kind) ([]string, error) {
	for _, k := range Kinds {
		if k == kind {
			return s.Registries().IDs(kind), nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
}

// DisposeAll disposes every loaded asset.
func (s *Service) DisposeAll() {
	s.Registries().DisposeAll()
	s.logger.Info("All assets disposed")
}

// SaveManifest stores m.
func (s *Service) SaveManifest(ctx context.Context, m *Manifest) error {
	if s.store == nil {
		return ErrNoStore
	}
	return s.store.Save(ctx, m)
}

// Manifests lists the stored manifest names.
func (s *Service) Manifests(ctx context.Context) ([]string, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}
	return s.store.List(ctx)
}
