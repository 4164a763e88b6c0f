package renderer

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dvanenk/bookery/internal/app/models"
)

func TestGetIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("AnonymousWhenUnset", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		assert.True(t, GetIdentity(c).Anonymous())
	})

	t.Run("ReturnsStoredIdentity", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Set(IdentityKey, models.Identity{Username: "alice"})

		id := GetIdentity(c)
		assert.False(t, id.Anonymous())
		assert.Equal(t, "alice", id.Username)
	})

	t.Run("AnonymousOnWrongType", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Set(IdentityKey, 42)
		assert.True(t, GetIdentity(c).Anonymous())
	})
}

func TestNavbar(t *testing.T) {
	r := New(zap.NewNop())

	links := r.Navbar()
	require.Len(t, links, 2)
	assert.Equal(t, "/", links[0].Path)
	assert.Equal(t, "Home", links[0].Label)
	assert.False(t, links[0].LoginRequired)
	assert.Equal(t, "/search", links[1].Path)
	assert.Equal(t, "Search", links[1].Label)
	assert.True(t, links[1].LoginRequired)

	// Second call serves the memoized slice.
	assert.Equal(t, links, r.Navbar())
}

func TestLoadTemplates(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	require.NoError(t, LoadTemplates(engine))
}
