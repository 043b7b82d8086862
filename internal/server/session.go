package server

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tatianab/edge-trail/internal/engine"
)

// entry guards one controller. Every read or write of ctrl, including timer
// fires, happens under mu.
type entry struct {
	mu         sync.Mutex
	ctrl       *engine.Controller
	lastAccess time.Time
	closed     bool
	clients    map[*client]struct{}
	log        *zap.Logger
	render     func(engine.Snapshot, *engine.Outcome) snapshotResponse
}

func (e *entry) touch() { e.lastAccess = time.Now() }

// schedule arms host timers for the engine's requests. Fires are applied
// under the entry lock and pushed to subscribers.
func (e *entry) schedule(timers []engine.Timer) {
	for _, t := range timers {
		t := t
		time.AfterFunc(t.Delay, func() {
			e.mu.Lock()
			defer e.mu.Unlock()
			if e.closed {
				return
			}
			next := e.ctrl.Fire(context.Background(), t)
			e.broadcastLocked(nil)
			e.schedule(next)
		})
	}
}

func (e *entry) broadcastLocked(out *engine.Outcome) {
	if len(e.clients) == 0 {
		return
	}
	msg, err := json.Marshal(e.render(e.ctrl.Snapshot(), out))
	if err != nil {
		e.log.Error("Failed to encode snapshot", zap.Error(err))
		return
	}
	for cl := range e.clients {
		select {
		case cl.send <- msg:
		default:
			e.log.Warn("Client send queue full, dropping update")
		}
	}
}

func (e *entry) subscribeLocked(cl *client) {
	if e.clients == nil {
		e.clients = make(map[*client]struct{})
	}
	e.clients[cl] = struct{}{}
}

func (e *entry) unsubscribe(cl *client) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.clients[cl]; ok {
		delete(e.clients, cl)
		close(cl.send)
	}
}

func (e *entry) closeLocked() {
	e.closed = true
	for cl := range e.clients {
		delete(e.clients, cl)
		close(cl.send)
	}
}
