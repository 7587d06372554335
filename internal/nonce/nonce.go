// Package nonce provides replay-guard values for signed exchange requests.
package nonce

import (
	"strconv"
	"sync"
	"time"
)

// Source yields the nonce for the next signed request.
type Source interface {
	Next() string
}

// WallClock returns the current epoch time in milliseconds. Two calls within
// the same millisecond return the same value.
type WallClock struct {
	Now func() time.Time
}

// Next implements Source.
func (w WallClock) Next() string {
	now := time.Now
	if w.Now != nil {
		now = w.Now
	}
	return strconv.FormatInt(now().UnixMilli(), 10)
}

// Monotonic returns epoch milliseconds, bumped past the previous value when
// the clock has not advanced or has moved backwards.
type Monotonic struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewMonotonic creates a Monotonic source reading the system clock.
func NewMonotonic() *Monotonic {
	return &Monotonic{now: time.Now}
}

// Next implements Source.
func (m *Monotonic) Next() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	ms := m.now().UnixMilli()
	if ms <= m.last {
		ms = m.last + 1
	}
	m.last = ms
	return strconv.FormatInt(ms, 10)
}

var (
	perKeyMu sync.Mutex
	perKey   = make(map[string]*Monotonic)
)

// ForKey returns the process-wide Monotonic source for apiKey. Clients that
// sign with the same key share it, so their nonces never repeat.
func ForKey(apiKey string) *Monotonic {
	perKeyMu.Lock()
	defer perKeyMu.Unlock()

	src, ok := perKey[apiKey]
	if !ok {
		src = NewMonotonic()
		perKey[apiKey] = src
	}
	return src
}

// Fixed always returns the same value.
type Fixed string

// Next implements Source.
func (f Fixed) Next() string {
	return string(f)
}
