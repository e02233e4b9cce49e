package actor

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter() (*gin.Engine, *string) {
	gin.SetMode(gin.TestMode)

	var captured string
	r := gin.New()
	r.GET("/probe", Required(), func(c *gin.Context) {
		captured = UserID(c)
		c.Status(http.StatusNoContent)
	})
	return r, &captured
}

func TestRequired(t *testing.T) {
	const validID = "11111111-1111-1111-1111-111111111111"

	t.Run("Valid header passes through", func(t *testing.T) {
		r, captured := newTestRouter()

		req := httptest.NewRequest("GET", "/probe", nil)
		req.Header.Set(Header, validID)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, validID, *captured)
	})

	t.Run("Missing header aborts with 400", func(t *testing.T) {
		r, captured := newTestRouter()

		req := httptest.NewRequest("GET", "/probe", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, *captured, "the handler must not run")
	})

	t.Run("Malformed header aborts with 400", func(t *testing.T) {
		r, _ := newTestRouter()

		req := httptest.NewRequest("GET", "/probe", nil)
		req.Header.Set(Header, "42")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUserIDWithoutMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Empty(t, UserID(c))
}
