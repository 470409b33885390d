package category

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(NewService(NewStaticRepository(), zap.NewNop()), zap.NewNop())
	h.RegisterRoutes(r.Group(""))
	return r
}

func TestHandlerRoutes(t *testing.T) {
	r := newTestRouter()

	t.Run("normalize", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/categories/normalize?q=Computer%20Repair", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Data NormalizeResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "computer-repair", body.Data.ID)
		assert.True(t, body.Data.Known)
	})

	t.Run("normalize without q", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/categories/normalize", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("bad group", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/categories?group=space", nil))
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("unknown id", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/categories/astronaut", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
