package remote

import (
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/webdeck/internal/domain/entities"
	"github.com/fredcamaral/webdeck/internal/domain/services"
	"github.com/fredcamaral/webdeck/internal/logging"
)

type serverFixture struct {
	server     *Server
	controller *services.Controller
	bus        *services.Bus
	dispatcher *services.SerialDispatcher
}

func startTestServer(t *testing.T) *serverFixture {
	t.Helper()

	slides := make([]entities.Slide, 4)
	for i := range slides {
		slides[i] = entities.Slide{URL: fmt.Sprintf("https://slide%d.example.com", i+1)}
	}
	controller := services.NewController(
		&entities.Deck{Slides: slides},
		entities.ZoomConfig{Step: 0.25, Min: 0.5, Max: 3.0},
	)
	bus := services.NewBus()
	dispatcher := services.NewSerialDispatcher()
	logger := logging.New("remote", false, entities.LogLevelError)

	server := NewServer("127.0.0.1:0", NewRouter(controller, bus), dispatcher, logger)
	require.NoError(t, server.Start())

	t.Cleanup(func() {
		server.Stop()
		dispatcher.Stop()
	})

	return &serverFixture{
		server:     server,
		controller: controller,
		bus:        bus,
		dispatcher: dispatcher,
	}
}

// roundTrip sends one raw payload and returns everything the server wrote
// before closing the connection
func roundTrip(t *testing.T, addr net.Addr, payload string) string {
	t.Helper()

	conn, err := net.Dial("tcp", addr.String())
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte(payload))
	require.NoError(t, err)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	data, err := io.ReadAll(conn)
	require.NoError(t, err)

	return string(data)
}

func TestServerRoundTrip(t *testing.T) {
	t.Run("status request gets the full wire envelope", func(t *testing.T) {
		f := startTestServer(t)

		raw := roundTrip(t, f.server.Addr(), "GET /status HTTP/1.1\r\nHost: x\r\n\r\n")

		assert.True(t, strings.HasPrefix(raw, "HTTP/1.1 200 OK\r\n"), raw)
		assert.Contains(t, raw, "Content-Type: application/json\r\n")
		assert.Contains(t, raw, "Connection: close\r\n")

		body := raw[strings.Index(raw, "\r\n\r\n")+4:]
		assert.Equal(t,
			`{"slide":1,"total":4,"presenting":false,"url":"https://slide1.example.com"}`,
			body)
		assert.Contains(t, raw, fmt.Sprintf("Content-Length: %d\r\n", len(body)))
	})

	t.Run("next mutates state and answers ok", func(t *testing.T) {
		f := startTestServer(t)

		raw := roundTrip(t, f.server.Addr(), "GET /next HTTP/1.1\r\n\r\n")

		assert.Contains(t, raw, statusOK)
		var index int
		f.dispatcher.Do(func() { index = f.controller.CurrentIndex() })
		assert.Equal(t, 1, index)
	})

	t.Run("method is irrelevant", func(t *testing.T) {
		f := startTestServer(t)

		raw := roundTrip(t, f.server.Addr(), "POST /next HTTP/1.1\r\n\r\n")

		assert.Contains(t, raw, statusOK)
		var index int
		f.dispatcher.Do(func() { index = f.controller.CurrentIndex() })
		assert.Equal(t, 1, index)
	})

	t.Run("sequential requests apply in order", func(t *testing.T) {
		f := startTestServer(t)

		for i := 0; i < 3; i++ {
			roundTrip(t, f.server.Addr(), "GET /next HTTP/1.1\r\n\r\n")
		}
		roundTrip(t, f.server.Addr(), "GET /prev HTTP/1.1\r\n\r\n")

		var index int
		f.dispatcher.Do(func() { index = f.controller.CurrentIndex() })
		assert.Equal(t, 2, index)
	})

	t.Run("unknown path serves the embedded client", func(t *testing.T) {
		f := startTestServer(t)

		raw := roundTrip(t, f.server.Addr(), "GET /nope HTTP/1.1\r\n\r\n")

		assert.Contains(t, raw, "Content-Type: text/html; charset=utf-8\r\n")
		assert.Contains(t, raw, "<html")
	})

	t.Run("garbage request is dropped silently", func(t *testing.T) {
		f := startTestServer(t)

		raw := roundTrip(t, f.server.Addr(), "garbage\r\n")

		assert.Empty(t, raw)
	})
}

func TestServerLifecycle(t *testing.T) {
	t.Run("bind failure surfaces as BindError", func(t *testing.T) {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		defer ln.Close()

		dispatcher := services.NewSerialDispatcher()
		defer dispatcher.Stop()
		logger := logging.New("remote", false, entities.LogLevelError)
		controller := services.NewController(&entities.Deck{}, entities.ZoomConfig{Step: 0.25, Min: 0.5, Max: 3.0})
		server := NewServer(ln.Addr().String(), NewRouter(controller, services.NewBus()), dispatcher, logger)

		err = server.Start()

		require.Error(t, err)
		var bindErr *BindError
		require.True(t, errors.As(err, &bindErr))
		assert.Equal(t, ln.Addr().String(), bindErr.Addr)
	})

	t.Run("stop is idempotent", func(t *testing.T) {
		f := startTestServer(t)

		f.server.Stop()
		f.server.Stop()
	})

	t.Run("double start is rejected", func(t *testing.T) {
		f := startTestServer(t)

		err := f.server.Start()

		require.Error(t, err)
	})
}
