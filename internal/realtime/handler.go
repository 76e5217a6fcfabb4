package realtime

import (
	"net/http"
	"strings"

	"bakery-be/internal/logger"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Filter reports whether one event may be delivered to a connection.
type Filter func(Event) bool

// Authorizer reports whether the request may follow resource. The returned filter, when
// not nil, narrows the events that connection receives.
type Authorizer func(r *http.Request, resource string) (Filter, bool)

// FeedHandler streams change events for the resources named in ?resources=a,b.
// Every subscription is removed when the connection ends.
type FeedHandler struct {
	hub       *Hub
	upgrader  *websocket.Upgrader
	authorize Authorizer
}

func NewFeedHandler(hub *Hub, allowedOrigin string, authorize Authorizer) *FeedHandler {
	if authorize == nil {
		authorize = func(*http.Request, string) (Filter, bool) { return nil, true }
	}
	return &FeedHandler{hub: hub, upgrader: NewUpgrader(allowedOrigin), authorize: authorize}
}

func (h *FeedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resources, filters, status := h.resolve(r)
	if status != http.StatusOK {
		http.Error(w, http.StatusText(status), status)
		return
	}

	sess, err := Upgrade(h.upgrader, w, r)
	if err != nil {
		logger.FromCtx(r.Context()).Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	unsubs := make([]func(), 0, len(resources))
	for _, res := range resources {
		allow := filters[res]
		unsubs = append(unsubs, h.hub.Subscribe(res, func(ev Event) {
			if allow != nil && !allow(ev) {
				return
			}
			sess.Send(ev)
		}))
	}
	defer func() {
		for _, u := range unsubs {
			u()
		}
	}()

	sess.Run()
}

func (h *FeedHandler) resolve(r *http.Request) ([]string, map[string]Filter, int) {
	raw := r.URL.Query().Get("resources")
	if raw == "" {
		return nil, nil, http.StatusBadRequest
	}

	var out []string
	seen := map[string]bool{}
	filters := map[string]Filter{}
	for _, part := range strings.Split(raw, ",") {
		res := strings.ToLower(strings.TrimSpace(part))
		if res == "" || seen[res] {
			continue
		}
		if !IsKnownResource(res) {
			return nil, nil, http.StatusBadRequest
		}
		filter, ok := h.authorize(r, res)
		if !ok {
			return nil, nil, http.StatusForbidden
		}
		seen[res] = true
		filters[res] = filter
		out = append(out, res)
	}
	if len(out) == 0 {
		return nil, nil, http.StatusBadRequest
	}
	return out, filters, http.StatusOK
}
