package bootstrap

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_InMemory(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("VALUATION_MODE", "")

	app, err := New()
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("GET", "/assets", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}
