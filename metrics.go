package main

import (
	"sync"
)

// Metrics counts what the server did since startup.
type Metrics struct {
	mu sync.RWMutex

	sessions  int64
	completed int64
	aborted   int64
	bytesSent int64
}

// NewMetrics creates a new metrics instance
func NewMetrics() *Metrics {
	return &Metrics{}
}

// IncrementSessions counts a session that reached a connected client
func (m *Metrics) IncrementSessions() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions++
}

// IncrementCompleted counts a fully sent file
func (m *Metrics) IncrementCompleted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.completed++
}

// IncrementAborted counts a session that ended on an error
func (m *Metrics) IncrementAborted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.aborted++
}

// AddBytesSent adds file bytes written to clients
func (m *Metrics) AddBytesSent(n int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bytesSent += n
}

// Snapshot returns a snapshot of all metrics
func (m *Metrics) Snapshot() map[string]int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]int64{
		"sessions":   m.sessions,
		"completed":  m.completed,
		"aborted":    m.aborted,
		"bytes_sent": m.bytesSent,
	}
}
