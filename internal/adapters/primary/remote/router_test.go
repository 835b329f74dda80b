package remote

import (
	"fmt"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/webdeck/internal/domain/entities"
	"github.com/fredcamaral/webdeck/internal/domain/ports"
	"github.com/fredcamaral/webdeck/internal/domain/services"
)

// recordingBus captures every published event for inspection
type recordingBus struct {
	events []entities.RemoteEvent
}

func (b *recordingBus) Publish(event entities.RemoteEvent) {
	b.events = append(b.events, event)
}

func (b *recordingBus) Subscribe(entities.EventKind, func(entities.RemoteEvent)) ports.Subscription {
	return nil
}

func newTestRouter(t *testing.T) (*Router, *services.Controller, *recordingBus) {
	t.Helper()

	slides := make([]entities.Slide, 3)
	for i := range slides {
		slides[i] = entities.Slide{URL: fmt.Sprintf("https://slide%d.example.com", i+1)}
	}
	controller := services.NewController(
		&entities.Deck{Slides: slides},
		entities.ZoomConfig{Step: 0.25, Min: 0.5, Max: 3.0},
	)
	bus := &recordingBus{}

	return NewRouter(controller, bus), controller, bus
}

func request(path string) Request {
	p, raw, _ := strings.Cut(path, "?")
	q, _ := url.ParseQuery(raw)
	return Request{Path: p, Query: q}
}

func TestRouterActions(t *testing.T) {
	t.Run("next advances the slide", func(t *testing.T) {
		router, controller, _ := newTestRouter(t)

		resp := router.Dispatch(request("/next"))

		assert.Equal(t, "application/json", resp.ContentType)
		assert.Equal(t, statusOK, string(resp.Body))
		assert.Equal(t, 1, controller.CurrentIndex())
	})

	t.Run("prev retreats the slide", func(t *testing.T) {
		router, controller, _ := newTestRouter(t)
		router.Dispatch(request("/next"))

		router.Dispatch(request("/prev"))

		assert.Equal(t, 0, controller.CurrentIndex())
	})

	t.Run("zoom routes adjust the level", func(t *testing.T) {
		router, controller, _ := newTestRouter(t)

		router.Dispatch(request("/zoomin"))
		assert.InDelta(t, 1.25, controller.Zoom(), 1e-9)

		router.Dispatch(request("/zoomout"))
		router.Dispatch(request("/zoomout"))
		assert.InDelta(t, 0.75, controller.Zoom(), 1e-9)
	})

	t.Run("navigation publishes nothing", func(t *testing.T) {
		router, _, bus := newTestRouter(t)

		router.Dispatch(request("/next"))
		router.Dispatch(request("/prev"))
		router.Dispatch(request("/zoomin"))

		assert.Empty(t, bus.events)
	})
}

func TestRouterNotifications(t *testing.T) {
	t.Run("play publishes a play event", func(t *testing.T) {
		router, _, bus := newTestRouter(t)

		resp := router.Dispatch(request("/play"))

		assert.Equal(t, statusOK, string(resp.Body))
		require.Len(t, bus.events, 1)
		assert.Equal(t, entities.EventPlay, bus.events[0].Kind)
	})

	t.Run("stop publishes a stop event", func(t *testing.T) {
		router, _, bus := newTestRouter(t)

		router.Dispatch(request("/stop"))

		require.Len(t, bus.events, 1)
		assert.Equal(t, entities.EventStop, bus.events[0].Kind)
	})
}

func TestRouterScroll(t *testing.T) {
	t.Run("valid dy publishes one scroll event", func(t *testing.T) {
		router, _, bus := newTestRouter(t)

		resp := router.Dispatch(request("/scroll?dy=12.7"))

		assert.Equal(t, statusOK, string(resp.Body))
		require.Len(t, bus.events, 1)
		assert.Equal(t, entities.EventScrollBy, bus.events[0].Kind)
		assert.InDelta(t, 12.7, bus.events[0].DeltaY, 1e-9)
	})

	t.Run("negative dy is carried through", func(t *testing.T) {
		router, _, bus := newTestRouter(t)

		router.Dispatch(request("/scroll?dy=-80"))

		require.Len(t, bus.events, 1)
		assert.InDelta(t, -80.0, bus.events[0].DeltaY, 1e-9)
	})

	t.Run("missing dy still answers ok without publishing", func(t *testing.T) {
		router, _, bus := newTestRouter(t)

		resp := router.Dispatch(request("/scroll"))

		assert.Equal(t, statusOK, string(resp.Body))
		assert.Empty(t, bus.events)
	})

	t.Run("unparseable dy still answers ok without publishing", func(t *testing.T) {
		router, _, bus := newTestRouter(t)

		resp := router.Dispatch(request("/scroll?dy=abc"))

		assert.Equal(t, statusOK, string(resp.Body))
		assert.Empty(t, bus.events)
	})

	t.Run("prefix match covers trailing segments", func(t *testing.T) {
		router, _, bus := newTestRouter(t)

		router.Dispatch(request("/scrollwhatever?dy=5"))

		require.Len(t, bus.events, 1)
	})
}

func TestRouterStatus(t *testing.T) {
	t.Run("body reflects current state", func(t *testing.T) {
		router, _, _ := newTestRouter(t)
		router.Dispatch(request("/next"))
		router.Dispatch(request("/next"))

		resp := router.Dispatch(request("/status"))

		assert.Equal(t, "application/json", resp.ContentType)
		assert.Equal(t,
			`{"slide":3,"total":3,"presenting":false,"url":"https://slide3.example.com"}`,
			string(resp.Body))
	})

	t.Run("presenting follows controller state", func(t *testing.T) {
		router, controller, _ := newTestRouter(t)
		controller.SetPresenting(true)

		resp := router.Dispatch(request("/status"))

		assert.Contains(t, string(resp.Body), `"presenting":true`)
	})
}

func TestRouterFallback(t *testing.T) {
	t.Run("unknown path serves the client", func(t *testing.T) {
		router, _, bus := newTestRouter(t)

		resp := router.Dispatch(request("/does-not-exist"))

		assert.Equal(t, "text/html; charset=utf-8", resp.ContentType)
		assert.Equal(t, clientHTML, resp.Body)
		assert.Empty(t, bus.events)
	})

	t.Run("root serves the client", func(t *testing.T) {
		router, _, _ := newTestRouter(t)

		resp := router.Dispatch(request("/"))

		assert.Equal(t, clientHTML, resp.Body)
	})

	t.Run("near miss does not match", func(t *testing.T) {
		router, controller, _ := newTestRouter(t)

		resp := router.Dispatch(request("/nextt"))

		assert.Equal(t, clientHTML, resp.Body)
		assert.Equal(t, 0, controller.CurrentIndex())
	})
}
