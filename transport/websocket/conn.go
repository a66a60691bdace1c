package websocket

import (
	"bufio"
	"sync"
)

// conn is one hijacked client connection together with the sessions it has
// scheduled advisor moves for. Tracking per connection means a disconnect
// only drops this client's pending moves, never another client's.
type conn struct {
	bufrw *bufio.ReadWriter

	// writeMu serializes frame writes; the advisor timer fires on its own
	// goroutine and shares the connection with the reader loop.
	writeMu sync.Mutex

	mu        sync.Mutex
	scheduled map[string]struct{}
}

func newConn(bufrw *bufio.ReadWriter) *conn {
	return &conn{
		bufrw:     bufrw,
		scheduled: make(map[string]struct{}),
	}
}

func (that *conn) trackSession(id string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.scheduled[id] = struct{}{}
}

// trackedSessions - lists the sessions this connection scheduled moves for.
func (that *conn) trackedSessions() []string {
	that.mu.Lock()
	defer that.mu.Unlock()

	ids := make([]string, 0, len(that.scheduled))
	for id := range that.scheduled {
		ids = append(ids, id)
	}

	return ids
}
