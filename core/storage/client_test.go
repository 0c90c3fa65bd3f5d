package storage_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"scene-toolkit/core/storage"
	"scene-toolkit/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func objects(infos ...minio.ObjectInfo) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(infos))
	for _, info := range infos {
		ch <- info
	}
	close(ch)
	return ch
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		useSSL   bool
	}{
		{"PlainHost", "localhost:9000", false},
		{"EndpointWithHTTP", "http://localhost:9000", false},
		{"EndpointWithHTTPS", "https://s3.amazonaws.com", false},
		{"ExplicitSSL", "s3.amazonaws.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := storage.NewClient(storage.Config{
				Endpoint:  tt.endpoint,
				AccessKey: "testkey",
				SecretKey: "testsecret",
				UseSSL:    tt.useSSL,
				Region:    "us-east-1",
			})
			assert.NoError(t, err)
			assert.NotNil(t, client)
		})
	}
}

func TestConfig_Timeout(t *testing.T) {
	assert.Equal(t, 30*time.Second, storage.Config{}.Timeout())
	assert.Equal(t, 5*time.Second, storage.Config{TimeoutSeconds: 5}.Timeout())
}

func TestObjectExists(t *testing.T) {
	ctx := context.Background()

	t.Run("ExactKey", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("ListObjects", ctx, "assets", mock.Anything).
			Return(objects(minio.ObjectInfo{Key: "textures/bark.png"}))

		ok, err := storage.ObjectExists(ctx, client, "assets", "textures/bark.png")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("LongerKeyOnly", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("ListObjects", ctx, "assets", mock.Anything).
			Return(objects(minio.ObjectInfo{Key: "textures/bark.png.bak"}))

		ok, err := storage.ObjectExists(ctx, client, "assets", "textures/bark.png")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Empty", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("ListObjects", ctx, "assets", mock.Anything).Return(objects())

		ok, err := storage.ObjectExists(ctx, client, "assets", "textures/bark.png")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("ListingError", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("ListObjects", ctx, "assets", mock.Anything).
			Return(objects(minio.ObjectInfo{Err: errors.New("denied")}))

		_, err := storage.ObjectExists(ctx, client, "assets", "textures/bark.png")
		assert.EqualError(t, err, "denied")
	})
}

func TestPrefixExists(t *testing.T) {
	ctx := context.Background()

	client := new(mocks.Client)
	client.On("ListObjects", ctx, "assets", minio.ListObjectsOptions{Prefix: "audio/", MaxKeys: 1}).
		Return(objects(minio.ObjectInfo{Key: "audio/wind.ogg"}))
	client.On("ListObjects", ctx, "assets", minio.ListObjectsOptions{Prefix: "models/", MaxKeys: 1}).
		Return(objects())

	ok, err := storage.PrefixExists(ctx, client, "assets", "audio/")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = storage.PrefixExists(ctx, client, "assets", "models/")
	require.NoError(t, err)
	assert.False(t, ok)
}
