// Package observability aggregates runtime counters for the telemetry
// worker. It observes the event stream; it never participates in it.
package observability

import (
	"sync"
	"time"
)

// Monitor counts broadcast events per outbound name.
// Safe for concurrent use.
type Monitor struct {
	mu       sync.RWMutex
	counters map[string]uint64
	started  time.Time
}

func NewMonitor() *Monitor {
	return &Monitor{
		counters: make(map[string]uint64),
		started:  time.Now(),
	}
}

func (m *Monitor) Record(eventName string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[eventName]++
}

// Snapshot copies the current counters.
func (m *Monitor) Snapshot() map[string]uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]uint64, len(m.counters))
	for name, count := range m.counters {
		out[name] = count
	}
	return out
}

func (m *Monitor) Uptime() time.Duration {
	return time.Since(m.started)
}
