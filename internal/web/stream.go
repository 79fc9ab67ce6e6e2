package web

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/starfederation/datastar-go/datastar"
)

// resourceHub fans out change notifications to SSE subscribers.
// Sends never block; a full buffer coalesces notifications.
type resourceHub struct {
	mu   sync.Mutex
	subs map[chan struct{}]struct{}
}

func newResourceHub() *resourceHub {
	return &resourceHub{subs: map[chan struct{}]struct{}{}}
}

func (h *resourceHub) subscribe() (ch chan struct{}, cancel func()) {
	ch = make(chan struct{}, 8)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch, func() {
		h.mu.Lock()
		delete(h.subs, ch)
		h.mu.Unlock()
		close(ch)
	}
}

func (h *resourceHub) broadcast() {
	h.mu.Lock()
	for ch := range h.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	h.mu.Unlock()
}

// serveDatastarElementsStream patches selector with render() once on connect
// and again after every broadcast.
func (s *Server) serveDatastarElementsStream(w http.ResponseWriter, r *http.Request, selector string, mode datastar.ElementPatchMode, render func() (string, error)) {
	ch, cancel := s.hub.subscribe()
	defer cancel()

	sse := datastar.NewSSE(w, r)

	keepAlive := time.NewTicker(25 * time.Second)
	defer keepAlive.Stop()

	patch := func() {
		html, err := render()
		if err != nil {
			s.log.Error("render stream patch", "err", err)
			_ = sse.ExecuteScript(fmt.Sprintf(`console.error(%q)`, err.Error()))
			return
		}
		if strings.TrimSpace(html) == "" {
			return
		}
		_ = sse.PatchElements(html, datastar.WithSelector(selector), datastar.WithMode(mode))
	}

	patch()
	for {
		select {
		case <-sse.Context().Done():
			return
		case <-keepAlive.C:
			_ = sse.PatchSignals([]byte(`{}`))
		case <-ch:
			patch()
		}
	}
}
