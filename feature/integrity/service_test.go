package integrity

import (
	"context"
	"testing"

	"scene-toolkit/core/database"
	"scene-toolkit/core/storage/mocks"
	"scene-toolkit/feature/assets"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/minio/minio-go/v7"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// setupMockDB creates a mock GORM DB for testing.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

// setupStoreDB returns an in-memory database holding the forest manifest.
func setupStoreDB(t *testing.T) *gorm.DB {
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	store := assets.NewManifestStore(db)
	require.NoError(t, store.Migrate())
	require.NoError(t, store.Save(context.Background(), &assets.Manifest{
		Name: "forest",
		Assets: assets.Batches{
			Textures: []assets.Item{{ID: "bark", URL: "textures/bark.png"}},
			Audio:    []assets.Item{{ID: "wind", URL: "s3://audio/wind.ogg"}},
		},
	}))
	return db
}

func emptyObjects() <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo)
	close(ch)
	return ch
}

func TestService_Structure(t *testing.T) {
	mockClient := new(mocks.Client)
	logger := zap.NewNop()
	svc := NewService(mockClient, "test-bucket", logger, nil, nil, "")

	t.Run("CheckStructure", func(t *testing.T) {
		mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(true, nil)
		mockClient.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return(emptyObjects())

		missing, err := svc.CheckStructure(context.Background())
		assert.NoError(t, err)
		assert.NotEmpty(t, missing)
	})

	t.Run("FixStructure", func(t *testing.T) {
		mockClient.On("PutObject", mock.Anything, "test-bucket", mock.Anything, mock.Anything, int64(0), mock.Anything).Return(minio.UploadInfo{}, nil)
		err := svc.FixStructure(context.Background(), []string{"textures"})
		assert.NoError(t, err)
	})

	t.Run("NoStorage", func(t *testing.T) {
		bare := NewService(nil, "", logger, nil, nil, "")

		_, err := bare.CheckStructure(context.Background())
		assert.ErrorIs(t, err, ErrNoStorage)
		assert.ErrorIs(t, bare.FixStructure(context.Background(), []string{"audio"}), ErrNoStorage)
	})
}

func TestService_Manifests(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	t.Run("NoStore", func(t *testing.T) {
		svc := NewService(nil, "", logger, nil, nil, "")

		_, err := svc.CheckStoredManifest(ctx, "forest")
		assert.ErrorIs(t, err, assets.ErrNoStore)
		_, err = svc.CheckStoredManifests(ctx)
		assert.ErrorIs(t, err, assets.ErrNoStore)
	})

	t.Run("Stored", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return(emptyObjects())

		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/data/textures/bark.png", []byte("png"), 0o644))

		svc := NewService(mockClient, "test-bucket", logger, setupStoreDB(t), fs, "/data")

		report, err := svc.CheckStoredManifest(ctx, "forest")
		require.NoError(t, err)
		assert.Equal(t, 2, report.Checked)
		require.Len(t, report.Missing, 1)
		assert.Equal(t, "wind", report.Missing[0].ID)

		reports, err := svc.CheckStoredManifests(ctx)
		require.NoError(t, err)
		require.Len(t, reports, 1)
		assert.Equal(t, "forest", reports[0].Manifest)
	})

	t.Run("UnknownManifest", func(t *testing.T) {
		svc := NewService(nil, "", logger, setupStoreDB(t), nil, "")

		_, err := svc.CheckStoredManifest(ctx, "desert")
		assert.ErrorIs(t, err, assets.ErrManifestNotFound)
	})
}

func TestService_Schema(t *testing.T) {
	logger := zap.NewNop()

	t.Run("NilDB", func(t *testing.T) {
		svc := NewService(nil, "", logger, nil, nil, "")
		_, err := svc.CheckSchema()
		assert.Error(t, err)
	})

	t.Run("Migrated", func(t *testing.T) {
		svc := NewService(nil, "", logger, setupStoreDB(t), nil, "")
		report, err := svc.CheckSchema()
		require.NoError(t, err)
		assert.True(t, report.Matched)
	})
}
