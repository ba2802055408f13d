package realtime

import (
	"sync"
	"time"
)

// Event is one "something changed, refetch" notification for a table.
// The event type (insert/update/delete) is deliberately not carried:
// subscribers treat every event the same way.
type Event struct {
	Table string    `json:"table"`
	At    time.Time `json:"at"`
}

// Coalescer folds bursts of change notifications into at most one event
// per table per debounce window, so N rapid writes trigger one refetch
// instead of N.
type Coalescer struct {
	window time.Duration

	in   chan string
	out  chan Event
	done chan struct{}
	once sync.Once
}

func NewCoalescer(window time.Duration) *Coalescer {
	c := &Coalescer{
		window: window,
		in:     make(chan string, 64),
		out:    make(chan Event, 16),
		done:   make(chan struct{}),
	}
	go c.run()
	return c
}

// Notify records a change for a table. Safe to call after Close (no-op).
func (c *Coalescer) Notify(table string) {
	select {
	case <-c.done:
	case c.in <- table:
	}
}

// Events delivers coalesced notifications. Closed after Close.
func (c *Coalescer) Events() <-chan Event {
	return c.out
}

// Close stops the coalescer; pending notifications are dropped.
func (c *Coalescer) Close() {
	c.once.Do(func() {
		close(c.done)
	})
}

func (c *Coalescer) run() {
	pending := make(map[string]struct{})
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case table := <-c.in:
			pending[table] = struct{}{}
			if timerC == nil {
				timer = time.NewTimer(c.window)
				timerC = timer.C
			}

		case <-timerC:
			now := time.Now()
			for table := range pending {
				select {
				case c.out <- Event{Table: table, At: now}:
				case <-c.done:
					close(c.out)
					return
				}
			}
			pending = make(map[string]struct{})
			timerC = nil

		case <-c.done:
			if timer != nil {
				timer.Stop()
			}
			close(c.out)
			return
		}
	}
}
