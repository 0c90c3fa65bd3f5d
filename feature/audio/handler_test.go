package audio

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"scene-toolkit/core/scene"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T) (*fiber.App, *Mixer) {
	t.Helper()
	m, _ := newTestMixer(t)
	feature := NewFeature(m, zap.NewNop())

	app := fiber.New()
	require.NoError(t, feature.Load(app))
	return app, m
}

func send(t *testing.T, app *fiber.App, method, target, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	var out map[string]any
	if resp.StatusCode != fiber.StatusNoContent {
		_ = json.NewDecoder(resp.Body).Decode(&out)
	}
	return resp.StatusCode, out
}

func TestHandlePlay(t *testing.T) {
	app, m := setupTestApp(t)

	t.Run("Plain", func(t *testing.T) {
		status, body := send(t, app, "POST", "/audio/play", `{"audio_id":"theme","cache_id":"bgm"}`)
		assert.Equal(t, 200, status)
		assert.Equal(t, "bgm", body["cache_id"])
		assert.Equal(t, "theme", body["audio_id"])
		assert.Equal(t, true, body["playing"])
		assert.Equal(t, false, body["positional"])
	})

	t.Run("Positional", func(t *testing.T) {
		status, body := send(t, app, "POST", "/audio/play", `{"audio_id":"shot","position":{"x":0,"y":0,"z":4},"radius":2}`)
		assert.Equal(t, 200, status)
		assert.Equal(t, true, body["positional"])
		assert.InDelta(t, 0.5, voiceOf(t, m, "shot").Volume(), 1e-6)
	})

	t.Run("Missing", func(t *testing.T) {
		status, _ := send(t, app, "POST", "/audio/play", `{"audio_id":"nope"}`)
		assert.Equal(t, 404, status)
	})

	t.Run("NoAudioID", func(t *testing.T) {
		status, _ := send(t, app, "POST", "/audio/play", `{}`)
		assert.Equal(t, 400, status)
	})

	t.Run("DeviceError", func(t *testing.T) {
		status, _ := send(t, app, "POST", "/audio/play", `{"audio_id":"empty"}`)
		assert.Equal(t, 500, status)
	})
}

func TestHandleStopAndCache(t *testing.T) {
	app, _ := setupTestApp(t)
	status, _ := send(t, app, "POST", "/audio/play", `{"audio_id":"theme","cache_id":"bgm"}`)
	require.Equal(t, 200, status)

	status, _ = send(t, app, "POST", "/audio/stop/bgm", "")
	assert.Equal(t, 204, status)

	status, body := send(t, app, "GET", "/audio/cache/bgm", "")
	assert.Equal(t, 200, status)
	assert.Equal(t, false, body["playing"])

	status, _ = send(t, app, "GET", "/audio/cache/other", "")
	assert.Equal(t, 404, status)
}

func TestHandleVolume(t *testing.T) {
	app, m := setupTestApp(t)

	status, body := send(t, app, "PUT", "/audio/volume", `{"master":0.5,"effects":0.25}`)
	assert.Equal(t, 200, status)
	assert.Equal(t, 0.5, body["master"])
	assert.Equal(t, 1.0, body["music"])
	assert.Equal(t, 0.25, body["effects"])
	assert.Equal(t, Volumes{Master: 0.5, Music: 1, Effects: 0.25}, m.Volumes())

	status, _ = send(t, app, "PUT", "/audio/volume", `not json`)
	assert.Equal(t, 400, status)
}

func TestHandleConfig(t *testing.T) {
	app, m := setupTestApp(t)

	status, _ := send(t, app, "PUT", "/audio/config", `{"theme":{"loop":true,"volume":0.5,"is_music":true}}`)
	assert.Equal(t, 204, status)
	assert.InDelta(t, 0.5, m.EffectiveVolume("theme"), 1e-9)

	_, _ = send(t, app, "POST", "/audio/play", `{"audio_id":"theme"}`)
	assert.True(t, voiceOf(t, m, "theme").Loop())
}

func TestHandleListener(t *testing.T) {
	app, m := setupTestApp(t)
	_, _ = send(t, app, "POST", "/audio/play", `{"audio_id":"shot","position":{"x":4,"y":0,"z":0}}`)
	assert.InDelta(t, 0.25, voiceOf(t, m, "shot").Volume(), 1e-6)

	status, body := send(t, app, "PUT", "/audio/listener", `{"x":2,"y":0,"z":0}`)
	assert.Equal(t, 200, status)
	assert.Equal(t, 2.0, body["x"])
	assert.InDelta(t, 0.5, voiceOf(t, m, "shot").Volume(), 1e-6)
}

func TestLoader(t *testing.T) {
	m, _ := newTestMixer(t)
	feature := NewFeature(m, zap.NewNop())

	assert.Equal(t, "audio", feature.Name())
	assert.True(t, feature.IsEnabled())
	assert.False(t, NewFeature(nil, zap.NewNop()).IsEnabled())
}

func TestDescribe(t *testing.T) {
	c := scene.NewObject3D("c")
	c.Position = scene.Vec3(1, 2, 3)
	resp := describe("k", CacheEntry{Voice: &NullVoice{}, AudioID: "a", Container: c})
	require.NotNil(t, resp.Position)
	assert.Equal(t, scene.Vec3(1, 2, 3), *resp.Position)
	assert.True(t, resp.Positional)
}
