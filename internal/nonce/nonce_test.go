package nonce

import (
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWallClock_Milliseconds(t *testing.T) {
	at := time.UnixMilli(1620000000123)
	src := WallClock{Now: func() time.Time { return at }}

	assert.Equal(t, "1620000000123", src.Next())
}

func TestWallClock_CollidesWithinMillisecond(t *testing.T) {
	at := time.UnixMilli(1620000000123)
	src := WallClock{Now: func() time.Time { return at }}

	assert.Equal(t, src.Next(), src.Next())
}

func TestWallClock_SystemClock(t *testing.T) {
	before := time.Now().UnixMilli()
	got, err := strconv.ParseInt(WallClock{}.Next(), 10, 64)
	require.NoError(t, err)
	after := time.Now().UnixMilli()

	assert.GreaterOrEqual(t, got, before)
	assert.LessOrEqual(t, got, after)
}

func TestMonotonic_StrictlyIncreasing(t *testing.T) {
	at := time.UnixMilli(1620000000123)
	src := &Monotonic{now: func() time.Time { return at }}

	assert.Equal(t, "1620000000123", src.Next())
	assert.Equal(t, "1620000000124", src.Next())
	assert.Equal(t, "1620000000125", src.Next())
}

func TestMonotonic_ClockMovesBackwards(t *testing.T) {
	clock := time.UnixMilli(2000)
	src := &Monotonic{now: func() time.Time { return clock }}

	assert.Equal(t, "2000", src.Next())
	clock = time.UnixMilli(1000)
	assert.Equal(t, "2001", src.Next())
	clock = time.UnixMilli(5000)
	assert.Equal(t, "5000", src.Next())
}

func TestMonotonic_Concurrent(t *testing.T) {
	src := NewMonotonic()

	const n = 200
	seen := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seen <- src.Next()
		}()
	}
	wg.Wait()
	close(seen)

	unique := make(map[string]struct{}, n)
	for v := range seen {
		unique[v] = struct{}{}
	}
	assert.Len(t, unique, n)
}

func TestForKey_SharedPerKey(t *testing.T) {
	a := ForKey("shared-key")
	b := ForKey("shared-key")
	other := ForKey("other-key")

	assert.Same(t, a, b)
	assert.NotSame(t, a, other)
}

func TestForKey_NoRepeatAcrossClients(t *testing.T) {
	first := ForKey("two-clients-key")
	second := ForKey("two-clients-key")

	const n = 100
	seen := make(map[string]struct{}, 2*n)
	for i := 0; i < n; i++ {
		seen[first.Next()] = struct{}{}
		seen[second.Next()] = struct{}{}
	}
	assert.Len(t, seen, 2*n)
}

func TestFixed(t *testing.T) {
	src := Fixed("42")
	assert.Equal(t, "42", src.Next())
	assert.Equal(t, "42", src.Next())
}
