package util

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func runHandler(t *testing.T, handler Handler) (int, map[string]interface{}) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	HandlerWrapper(handler, &HandlerOpts{})(c)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestHandlerWrapperSuccessEnvelope(t *testing.T) {
	status, body := runHandler(t, func(c *gin.Context) (interface{}, *HTTPError) {
		return gin.H{"id": 7}, nil
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, map[string]interface{}{"id": float64(7)}, body["data"])
}

func TestHandlerWrapperNilData(t *testing.T) {
	status, body := runHandler(t, func(c *gin.Context) (interface{}, *HTTPError) {
		return nil, nil
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Nil(t, body["data"])
}

func TestHandlerWrapperErrorEnvelope(t *testing.T) {
	status, body := runHandler(t, func(c *gin.Context) (interface{}, *HTTPError) {
		return nil, BuildNotFoundHTTPErr("post")
	})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "post not found", body["message"])
	assert.NotContains(t, body, "data")
}
