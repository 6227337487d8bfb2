//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/harvest/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_Render_ReturnsRenderedHTML(t *testing.T) {
	t.Parallel()

	srv := serveHTML(t, func(*http.Request) string {
		return `<!DOCTYPE html>
<html>
<head><title>Test Page</title></head>
<body>
<div id="content">Loading...</div>
<script>
document.getElementById('content').textContent = 'JavaScript Rendered';
</script>
</body>
</html>`
	})
	renderer := rod.NewRenderer(newBrowser(t))

	snap, err := renderer.Render(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Equal(t, srv.URL, snap.URL)
	assert.Contains(t, snap.HTML, "JavaScript Rendered")
	assert.NotContains(t, snap.HTML, "Loading...")
	assert.Contains(t, snap.UserAgent, "Chrome")
}

func TestRenderer_Render_ContextCancellation(t *testing.T) {
	t.Parallel()

	renderer := rod.NewRenderer(newBrowser(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := renderer.Render(ctx, "http://example.com")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRenderer_Render_TimeoutTriggersOnSlowPage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body>delayed</body></html>`))
	}))
	defer srv.Close()

	renderer := rod.NewRenderer(newBrowser(t), rod.WithRenderTimeout(100*time.Millisecond))

	_, err := renderer.Render(context.Background(), srv.URL)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
