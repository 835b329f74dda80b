package remote

import (
	"strconv"
	"strings"

	"github.com/fredcamaral/webdeck/internal/domain/entities"
	"github.com/fredcamaral/webdeck/internal/domain/ports"
)

// Router maps request paths to state mutations, notifications, or bodies.
// The table is first-match-wins; anything unmatched, including /, gets the
// embedded remote client rather than an error. Actions that can be resolved
// against shared state (navigation, zoom) mutate it synchronously; actions
// that need a UI-owned surface (stage open/close, scroll injection) are only
// ever published to the bus, which keeps the router UI-agnostic.
type Router struct {
	controller ports.PresentationController
	bus        ports.NotificationBus
	routes     []route
}

// route is one dispatch table entry
type route struct {
	path   string
	prefix bool
	handle func(Request) Response
}

// NewRouter builds the dispatch table over a controller and a bus
func NewRouter(controller ports.PresentationController, bus ports.NotificationBus) *Router {
	r := &Router{
		controller: controller,
		bus:        bus,
	}

	r.routes = []route{
		{path: "/next", handle: r.action(controller.GoToNext)},
		{path: "/prev", handle: r.action(controller.GoToPrevious)},
		{path: "/play", handle: r.publish(entities.PlayEvent())},
		{path: "/stop", handle: r.publish(entities.StopEvent())},
		{path: "/zoomin", handle: r.action(controller.ZoomIn)},
		{path: "/zoomout", handle: r.action(controller.ZoomOut)},
		{path: "/scroll", prefix: true, handle: r.handleScroll},
		{path: "/status", handle: r.handleStatus},
	}

	return r
}

// Dispatch resolves one request to its response, applying any side effect.
// Must run on the owning serial context.
func (r *Router) Dispatch(req Request) Response {
	for _, rt := range r.routes {
		if rt.prefix {
			if strings.HasPrefix(req.Path, rt.path) {
				return rt.handle(req)
			}
		} else if req.Path == rt.path {
			return rt.handle(req)
		}
	}

	return Response{ContentType: "text/html; charset=utf-8", Body: clientHTML}
}

// action wraps a synchronous state mutation
func (r *Router) action(fn func()) func(Request) Response {
	return func(Request) Response {
		fn()
		return okResponse()
	}
}

// publish wraps a bus notification
func (r *Router) publish(event entities.RemoteEvent) func(Request) Response {
	return func(Request) Response {
		r.bus.Publish(event)
		return okResponse()
	}
}

// handleScroll publishes a ScrollBy when dy parses as a float and answers ok
// either way: the client fires and forgets, so a parse failure has no useful
// recipient.
func (r *Router) handleScroll(req Request) Response {
	if dy, err := strconv.ParseFloat(req.Query.Get("dy"), 64); err == nil {
		r.bus.Publish(entities.ScrollByEvent(dy))
	}
	return okResponse()
}

// handleStatus answers a poll with a fresh snapshot
func (r *Router) handleStatus(Request) Response {
	return Response{
		ContentType: "application/json",
		Body:        r.controller.Snapshot().EncodeJSON(),
	}
}
