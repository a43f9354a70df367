package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics provides basic in-memory counters keyed per message pattern.
type Metrics struct {
	mu           sync.Mutex
	messageCount map[string]int64
	errorCount   map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		messageCount: make(map[string]int64),
		errorCount:   make(map[string]int64),
	}
}

// RecordMessage increments counters for handled messages.
func (m *Metrics) RecordMessage(pattern string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := pattern + "|" + strconv.Itoa(status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messageCount[key]++
}

// RecordError increments error counters.
func (m *Metrics) RecordError(pattern, code string) {
	if m == nil {
		return
	}
	key := pattern + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// Snapshot returns copies of the current counters.
func (m *Metrics) Snapshot() (messages map[string]int64, errors map[string]int64) {
	messages = make(map[string]int64)
	errors = make(map[string]int64)
	if m == nil {
		return messages, errors
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range m.messageCount {
		messages[k] = v
	}
	for k, v := range m.errorCount {
		errors[k] = v
	}
	return messages, errors
}
