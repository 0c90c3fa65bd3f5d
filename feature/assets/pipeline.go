package assets

import (
	"context"
	"fmt"

	"scene-toolkit/core/fetch"
	"scene-toolkit/core/pool"
	"scene-toolkit/core/scene"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// loader fetches an item and decodes it into T. Each pool slot owns one.
type loader[T any] struct {
	fetcher fetch.Fetcher
	decode  func(Item, []byte) (T, error)
}

func (l *loader[T]) load(ctx context.Context, item Item) (T, error) {
	var zero T
	data, err := l.fetcher.Fetch(ctx, item.URL)
	if err != nil {
		return zero, err
	}
	return l.decode(item, data)
}

func newLoaderPool[T any](size int, f fetch.Fetcher, decode func(Item, []byte) (T, error)) (*pool.Pool[*loader[T]], error) {
	return pool.NewN(size, func(int) *loader[T] {
		return &loader[T]{fetcher: f, decode: decode}
	})
}

// Pipeline loads batches of assets into Registries.
type Pipeline struct {
	registries *Registries
	logger     *zap.Logger
	materials  *materializer

	textures *pool.Pool[*loader[*scene.Texture]]
	gltf     *pool.Pool[*loader[*GLTFModel]]
	fbx      *pool.Pool[*loader[*scene.Object3D]]
	audio    *pool.Pool[*loader[*scene.AudioBuffer]]
}

// NewPipeline creates a pipeline that reads asset bytes through f.
func NewPipeline(cfg Config, f fetch.Fetcher, registries *Registries, logger *zap.Logger) (*Pipeline, error) {
	p := &Pipeline{
		registries: registries,
		logger:     logger,
		materials:  &materializer{textures: registries.Textures, factories: DefaultFactories()},
	}

	var err error
	if p.textures, err = newLoaderPool(cfg.TexturePoolSize, f, DecodeTexture); err != nil {
		return nil, fmt.Errorf("texture pool: %w", err)
	}
	if p.gltf, err = newLoaderPool(cfg.GLTFPoolSize, f, DecodeGLTF); err != nil {
		return nil, fmt.Errorf("gltf pool: %w", err)
	}
	if p.fbx, err = newLoaderPool(cfg.FBXPoolSize, f, DecodeFBX); err != nil {
		return nil, fmt.Errorf("fbx pool: %w", err)
	}
	if p.audio, err = newLoaderPool(cfg.AudioPoolSize, f, DecodeAudio); err != nil {
		return nil, fmt.Errorf("audio pool: %w", err)
	}
	return p, nil
}

// RegisterMaterialFactory makes a material type available to configs by name.
func (p *Pipeline) RegisterMaterialFactory(name string, f MaterialFactory) {
	p.materials.factories[name] = f
}

// Registries returns the registries the pipeline writes to.
func (p *Pipeline) Registries() *Registries {
	return p.registries
}

// stage is one step of a run.
type stage struct {
	name string
	run  func(ctx context.Context) (int, error)
}

// Load runs every stage in order and reports progress after each item.
// Material types are checked against the registered factories before any
// stage starts.
// The first failing item stops the run with a *LoadError; stages that already
// finished stay registered.
func (p *Pipeline) Load(ctx context.Context, b Batches, onProgress ProgressFunc) (*Result, error) {
	for _, c := range []struct {
		kind   Kind
		models []ModelItem
	}{{KindGLTF, b.GLTFModels}, {KindFBX, b.FBXModels}} {
		if err := p.materials.check(c.kind, c.models); err != nil {
			p.logger.Error("Invalid material configuration", zap.Error(err))
			return nil, err
		}
	}

	prog := newProgress(b.Total(), onProgress)
	result := &Result{}

	stages := []stage{
		{"Textures", func(ctx context.Context) (int, error) {
			textures, err := loadAll(ctx, p.textures, KindTexture, b.Textures, prog)
			for i, t := range textures {
				p.registries.Textures.Register(b.Textures[i].ID, t)
			}
			return len(textures), err
		}},
		{"GLTF Models", func(ctx context.Context) (int, error) {
			models, err := loadAll(ctx, p.gltf, KindGLTF, itemsOf(b.GLTFModels), prog)
			for i, m := range models {
				p.materials.applyGLTF(m, b.GLTFModels[i])
				p.registries.GLTFModels.Register(b.GLTFModels[i].ID, m)
			}
			return len(models), err
		}},
		{"FBX Skeleton Animations", func(ctx context.Context) (int, error) {
			models, err := loadAll(ctx, p.fbx, KindAnimation, b.FBXSkeletonAnimations, prog)
			for i, m := range models {
				item := b.FBXSkeletonAnimations[i]
				if len(m.Animations) == 0 {
					p.logger.Warn("FBX file has no animation", zap.String("id", item.ID), zap.String("url", item.URL))
					continue
				}
				p.registries.Animations.Register(item.ID, m.Animations[0])
			}
			return len(models), err
		}},
		{"FBX Models", func(ctx context.Context) (int, error) {
			models, err := loadAll(ctx, p.fbx, KindFBX, itemsOf(b.FBXModels), prog)
			for i, m := range models {
				item := b.FBXModels[i]
				p.materials.applyFBX(m, item)
				p.registries.FBXModels.Register(item.ID, m)
				result.FBXModels = append(result.FBXModels, LoadedModel{Item: item.Item, Model: m})
			}
			return len(models), err
		}},
		{"Audio files", func(ctx context.Context) (int, error) {
			buffers, err := loadAll(ctx, p.audio, KindAudio, b.Audio, prog)
			for i, buf := range buffers {
				p.registries.AudioBuffers.Register(b.Audio[i].ID, buf)
			}
			return len(buffers), err
		}},
	}

	for _, s := range stages {
		n, err := s.run(ctx)
		if err != nil {
			p.logger.Error("Fatal error during preloader phase", zap.String("stage", s.name), zap.Error(err))
			return nil, err
		}
		p.logger.Info(fmt.Sprintf("%s(%d) are loaded", s.name, n))
	}
	return result, nil
}

// loadAll loads items concurrently through the kind's pool. On success it
// returns the values in item order; on failure it returns nil and the first
// error, wrapped in a *LoadError.
func loadAll[T any](ctx context.Context, lp *pool.Pool[*loader[T]], kind Kind, items []Item, prog *progress) ([]T, error) {
	if len(items) == 0 {
		return nil, nil
	}

	out := make([]T, len(items))
	g, gctx := errgroup.WithContext(ctx)
	for i, item := range items {
		g.Go(func() error {
			l, err := lp.Get(gctx)
			if err != nil {
				return &LoadError{Kind: kind, ID: item.ID, URL: item.URL, Err: err}
			}
			defer func() { _ = lp.Release(l) }()

			v, err := l.load(gctx, item)
			if err != nil {
				return &LoadError{Kind: kind, ID: item.ID, URL: item.URL, Err: err}
			}
			out[i] = v
			prog.step()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func itemsOf(models []ModelItem) []Item {
	items := make([]Item, len(models))
	for i, m := range models {
		items[i] = m.Item
	}
	return items
}
