package assets_test

import (
	"net/http/httptest"
	"testing"

	"scene-toolkit/feature/assets"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeature(t *testing.T) {
	feature := assets.NewFeature(newService(t, fullFetcher(t), nil))

	assert.Equal(t, "assets", feature.Name())
	assert.True(t, feature.IsEnabled())

	app := fiber.New()
	require.NoError(t, feature.Load(app))

	resp, err := app.Test(httptest.NewRequest("GET", "/assets/progress", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
