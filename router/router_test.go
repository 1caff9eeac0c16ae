package router

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, h http.Handler, path string) (*http.Response, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	resp := rec.Result()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestSPA(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>app</html>"), 0o600))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "assets"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assets", "app.js"), []byte("console.log(1)"), 0o600))

	h := SPA(dir, "/api")

	resp, body := get(t, h, "/assets/app.js")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "console.log(1)", body)

	for _, path := range []string{"/", "/admin", "/obrigado/123", "/assets"} {
		resp, body = get(t, h, path)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.Equal(t, "<html>app</html>", body, path)
	}

	resp, _ = get(t, h, "/api/unknown")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestNew(t *testing.T) {
	type pingOutput struct {
		Body struct {
			Pong bool `json:"pong"`
		}
	}
	var order []string
	h := New("Test", "0.0.0",
		func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusServiceUnavailable) },
		func(w http.ResponseWriter, _ *http.Request) { io.WriteString(w, "up 1\n") },
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { io.WriteString(w, "fallback") }),
		OptGroup("/api",
			OptUseMiddleware(func(ctx huma.Context, next func(huma.Context)) {
				order = append(order, "middleware")
				next(ctx)
			}),
			OptGroup("/ping", OptWith(func(huma.API) func(huma.API) {
				return func(api huma.API) {
					huma.Get(api, "/", func(context.Context, *struct{}) (*pingOutput, error) {
						order = append(order, "handler")
						out := &pingOutput{}
						out.Body.Pong = true
						return out, nil
					})
				}
			})),
		),
	)

	resp, _ := get(t, h, "/liveness")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = get(t, h, "/readiness")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	_, body := get(t, h, "/metrics")
	assert.Equal(t, "up 1\n", body)
	_, body = get(t, h, "/somewhere")
	assert.Equal(t, "fallback", body)

	resp, body = get(t, h, "/api/ping/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"pong":true`)
	assert.Equal(t, []string{"middleware", "handler"}, order)
}
