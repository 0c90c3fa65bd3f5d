package assets_test

import (
	"context"
	"errors"
	"testing"

	"scene-toolkit/core/database"
	"scene-toolkit/feature/assets"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newStore(t *testing.T) *assets.ManifestStore {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	store := assets.NewManifestStore(db)
	require.NoError(t, store.Migrate())
	return store
}

func TestManifestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	m, err := assets.ParseManifest([]byte(forestYAML), assets.FormatYAML)
	require.NoError(t, err)
	m.Assets.GLTFModels = []assets.ModelItem{{
		Item:      assets.Item{ID: "rock", URL: "models/rock.glb"},
		Materials: []assets.MaterialConfig{{Type: "basic"}, {Color: 0x808080}},
	}}
	m.Assets.Textures = append(m.Assets.Textures, assets.Item{ID: "moss", URL: "tex/moss.png"})
	require.NoError(t, store.Save(ctx, m))

	loaded, err := store.Load(ctx, "forest")
	require.NoError(t, err)
	assert.Equal(t, m, loaded)

	t.Run("SaveReplaces", func(t *testing.T) {
		small := &assets.Manifest{Name: "forest", Assets: assets.Batches{
			Audio: []assets.Item{{ID: "birds", URL: "sfx/birds.ogg"}},
		}}
		require.NoError(t, store.Save(ctx, small))

		loaded, err := store.Load(ctx, "forest")
		require.NoError(t, err)
		assert.Equal(t, small, loaded)
	})
}

func TestManifestStoreListDelete(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	for _, name := range []string{"town", "cave"} {
		require.NoError(t, store.Save(ctx, &assets.Manifest{Name: name, Assets: assets.Batches{
			Textures: []assets.Item{{ID: "t", URL: "t.png"}},
		}}))
	}

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"cave", "town"}, names)

	require.NoError(t, store.Delete(ctx, "cave"))
	assert.ErrorIs(t, store.Delete(ctx, "cave"), assets.ErrManifestNotFound)

	_, err = store.Load(ctx, "cave")
	assert.ErrorIs(t, err, assets.ErrManifestNotFound)
}

func TestManifestStoreDatabaseError(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{})
	require.NoError(t, err)

	mock.ExpectQuery("SELECT \\* FROM `asset_manifest_entries`").
		WillReturnError(errors.New("connection lost"))

	_, err = assets.NewManifestStore(db).Load(context.Background(), "forest")
	assert.ErrorContains(t, err, "connection lost")
	assert.NoError(t, mock.ExpectationsWereMet())
}
