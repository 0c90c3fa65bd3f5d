package assets_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"scene-toolkit/feature/assets"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const sfxJSON = `{"name":"sfx","assets":{"textures":[{"id":"grass","url":"tex/grass.png"}],"audio":[{"id":"step","url":"sfx/step.wav"}]}}`

func setupTestApp(svc *assets.Service) *fiber.App {
	app := fiber.New()
	assets.NewHandler(svc).RegisterRoutes(app)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, target, body string) (int, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func TestHandleLoad(t *testing.T) {
	t.Run("JSONBody", func(t *testing.T) {
		svc := newService(t, fullFetcher(t), nil)
		app := setupTestApp(svc)

		code, body := doRequest(t, app, "POST", "/assets/load", sfxJSON)
		assert.Equal(t, fiber.StatusAccepted, code)
		assert.Equal(t, "sfx", body["manifest"])
		assert.Equal(t, float64(2), body["total"])

		waitDone(t, svc)
		code, body = doRequest(t, app, "GET", "/assets/progress", "")
		assert.Equal(t, fiber.StatusOK, code)
		assert.Equal(t, assets.StateDone, body["state"])
		assert.Equal(t, float64(1), body["progress"])
	})

	t.Run("YAMLBody", func(t *testing.T) {
		svc := newService(t, fullFetcher(t), nil)
		app := setupTestApp(svc)

		code, body := doRequest(t, app, "POST", "/assets/load?format=yaml", forestYAML)
		assert.Equal(t, fiber.StatusAccepted, code)
		assert.Equal(t, "forest", body["manifest"])

		// forest's sources are not served, so the run fails in the background.
		waitDone(t, svc)
		assert.Equal(t, assets.StateFailed, svc.Status().State)
	})

	t.Run("InvalidBody", func(t *testing.T) {
		app := setupTestApp(newService(t, fullFetcher(t), nil))

		code, body := doRequest(t, app, "POST", "/assets/load", `{"name":"x","assets":{"textures":[{"id":"a"}]}}`)
		assert.Equal(t, fiber.StatusBadRequest, code)
		assert.Contains(t, body["error"], "needs id and url")
	})

	t.Run("UnknownFormat", func(t *testing.T) {
		app := setupTestApp(newService(t, fullFetcher(t), nil))

		code, _ := doRequest(t, app, "POST", "/assets/load?format=xml", "<x/>")
		assert.Equal(t, fiber.StatusBadRequest, code)
	})

	t.Run("StoredWithoutDatabase", func(t *testing.T) {
		app := setupTestApp(newService(t, fullFetcher(t), nil))

		code, _ := doRequest(t, app, "POST", "/assets/load?name=forest", "")
		assert.Equal(t, fiber.StatusServiceUnavailable, code)
	})

	t.Run("StoredNotFound", func(t *testing.T) {
		app := setupTestApp(newService(t, fullFetcher(t), newStore(t)))

		code, _ := doRequest(t, app, "POST", "/assets/load?name=forest", "")
		assert.Equal(t, fiber.StatusNotFound, code)
	})

	t.Run("Conflict", func(t *testing.T) {
		gate := &gateFetcher{memFetcher: fullFetcher(t), release: make(chan struct{})}
		p, err := assets.NewPipeline(testConfig, gate, assets.NewRegistries(), zap.NewNop())
		require.NoError(t, err)
		svc := assets.NewService(p, nil, zap.NewNop())
		app := setupTestApp(svc)

		code, _ := doRequest(t, app, "POST", "/assets/load", sfxJSON)
		require.Equal(t, fiber.StatusAccepted, code)

		code, _ = doRequest(t, app, "POST", "/assets/load", sfxJSON)
		assert.Equal(t, fiber.StatusConflict, code)

		code, _ = doRequest(t, app, "DELETE", "/assets", "")
		assert.Equal(t, fiber.StatusConflict, code)

		close(gate.release)
		waitDone(t, svc)
	})
}

func TestHandleListKind(t *testing.T) {
	svc := newService(t, fullFetcher(t), nil)
	app := setupTestApp(svc)

	code, _ := doRequest(t, app, "POST", "/assets/load", sfxJSON)
	require.Equal(t, fiber.StatusAccepted, code)
	waitDone(t, svc)

	code, body := doRequest(t, app, "GET", "/assets/texture", "")
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "texture", body["kind"])
	assert.Equal(t, []any{"grass"}, body["ids"])

	code, _ = doRequest(t, app, "GET", "/assets/mesh", "")
	assert.Equal(t, fiber.StatusNotFound, code)

	code, body = doRequest(t, app, "DELETE", "/assets", "")
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, true, body["disposed"])

	ids, err := svc.IDs(assets.KindTexture)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestHandleListManifests(t *testing.T) {
	t.Run("NoDatabase", func(t *testing.T) {
		app := setupTestApp(newService(t, fullFetcher(t), nil))

		code, _ := doRequest(t, app, "GET", "/assets/manifests", "")
		assert.Equal(t, fiber.StatusServiceUnavailable, code)
	})

	t.Run("Stored", func(t *testing.T) {
		svc := newService(t, fullFetcher(t), newStore(t))
		require.NoError(t, svc.SaveManifest(context.Background(), &assets.Manifest{Name: "forest", Assets: fullBatches()}))
		app := setupTestApp(svc)

		code, body := doRequest(t, app, "GET", "/assets/manifests", "")
		assert.Equal(t, fiber.StatusOK, code)
		assert.Equal(t, []any{"forest"}, body["manifests"])
	})
}
