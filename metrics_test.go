package main

import (
	"sync"
	"testing"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics()
	m.IncrementSessions()
	m.IncrementSessions()
	m.IncrementCompleted()
	m.IncrementAborted()
	m.AddBytesSent(1000)
	m.AddBytesSent(24)

	snapshot := m.Snapshot()

	expected := map[string]int64{
		"sessions":   2,
		"completed":  1,
		"aborted":    1,
		"bytes_sent": 1024,
	}

	for key, expectedValue := range expected {
		if snapshot[key] != expectedValue {
			t.Errorf("expected %s %d, got %d", key, expectedValue, snapshot[key])
		}
	}
}

func TestMetrics_ConcurrentAccess(t *testing.T) {
	m := NewMetrics()
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.IncrementSessions()
			m.IncrementCompleted()
			m.AddBytesSent(10)
		}()
	}

	wg.Wait()

	snapshot := m.Snapshot()
	if snapshot["sessions"] != 100 {
		t.Errorf("expected sessions 100, got %d", snapshot["sessions"])
	}
	if snapshot["bytes_sent"] != 1000 {
		t.Errorf("expected bytes_sent 1000, got %d", snapshot["bytes_sent"])
	}
}
