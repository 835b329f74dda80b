package remote

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The embedded client is the other half of the wire contract; these checks
// pin the endpoints and timing constants it must keep using.
func TestEmbeddedClient(t *testing.T) {
	html := string(clientHTML)
	require.NotEmpty(t, html)

	t.Run("declares itself as html", func(t *testing.T) {
		assert.True(t, strings.Contains(html, "<!DOCTYPE html>") || strings.Contains(html, "<html"))
	})

	t.Run("targets every control endpoint", func(t *testing.T) {
		for _, id := range []string{"next", "prev", "play", "stop", "zoomin", "zoomout"} {
			assert.Contains(t, html, `"`+id+`"`, id)
		}
	})

	t.Run("scroll endpoint carries dy", func(t *testing.T) {
		assert.Contains(t, html, "/scroll?dy=")
	})

	t.Run("polls status once a second", func(t *testing.T) {
		assert.Contains(t, html, "/status")
		assert.Contains(t, html, "POLL_INTERVAL_MS = 1000")
	})

	t.Run("coalesces touch scrolls for 50ms", func(t *testing.T) {
		assert.Contains(t, html, "FLUSH_INTERVAL_MS = 50")
		assert.Contains(t, html, "SCROLL_SENSITIVITY = 2")
	})
}
