package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func get(router http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestModelServesAsset(t *testing.T) {
	router := setupRouter(t, routerOptions{})

	resp := get(router, "/model/dummy_chair_id")
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, "model/gltf-binary", resp.Header().Get("Content-Type"))
	require.Equal(t, "glTF-binary", resp.Body.String())
}

func TestModelErrors(t *testing.T) {
	router := setupRouter(t, routerOptions{})

	resp := get(router, "/model/dummy_couch_id")
	require.Equal(t, http.StatusNotFound, resp.Code)
	require.Equal(t, "Model not found", resp.Body.String())

	for _, path := range []string{"/model/..", "/model/a..b", "/model/a/b", "/model/%2E%2E%2Fsecret", "/model/a%5Cb"} {
		resp = get(router, path)
		require.Equal(t, http.StatusBadRequest, resp.Code, path)
		require.Equal(t, "Invalid ID", resp.Body.String(), path)
	}
}

func TestPagesAndTags(t *testing.T) {
	router := setupRouter(t, routerOptions{})

	resp := get(router, "/")
	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Header().Get("Content-Type"), "text/html")
	require.Contains(t, resp.Body.String(), "/prompt")

	resp = get(router, "/tags")
	require.Equal(t, http.StatusOK, resp.Code)
	var tags struct {
		Tags []string `json:"tags"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &tags))
	require.Equal(t, []string{"Chair", "Couch", "Living", "Office"}, tags.Tags)

	resp = get(router, "/healthz")
	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), `"rows":2`)

	resp = get(router, "/metrics")
	require.Equal(t, http.StatusOK, resp.Code)
	require.NotEmpty(t, resp.Header().Get("X-Request-Id"))
}
