package websocket

import (
	"sync"
	"time"
)

// Scheduler delays the computer's move so the UI shows it "thinking".
// A reset, a mode change, or a disconnect must cancel the pending move:
// a move computed for a session that was reset in the meantime is dropped,
// never applied.
type Scheduler struct {
	mu     sync.Mutex
	timers map[string]*time.Timer
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		timers: make(map[string]*time.Timer),
	}
}

// Schedule - runs fn after delay, keyed by session ID. A second Schedule
// for the same session replaces the pending one.
func (that *Scheduler) Schedule(sessionID string, delay time.Duration, fn func()) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if timer, ok := that.timers[sessionID]; ok {
		timer.Stop()
	}

	that.timers[sessionID] = time.AfterFunc(delay, func() {
		that.mu.Lock()
		delete(that.timers, sessionID)
		that.mu.Unlock()

		fn()
	})
}

// Cancel - drops the pending move for the session, if any. Stop is a no-op
// on a timer that already fired, so a callback past the delay can still run
// after Cancel returns; callers pin the move to the board it was scheduled
// for and the service refuses it once the board has moved on.
func (that *Scheduler) Cancel(sessionID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if timer, ok := that.timers[sessionID]; ok {
		timer.Stop()
		delete(that.timers, sessionID)
	}
}
