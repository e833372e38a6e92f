// SPDX-License-Identifier: EPL-2.0

package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiterStore_PerClient(t *testing.T) {
	t.Parallel()

	l := newLimiterStore(0.001, 1)

	assert.True(t, l.get("10.0.0.1").Allow())
	assert.False(t, l.get("10.0.0.1").Allow())
	assert.True(t, l.get("10.0.0.2").Allow(), "clients have separate buckets")
}

func TestLimiterStore_Sweep(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l := newLimiterStore(1, 1)
	l.now = func() time.Time { return now }

	l.get("old")
	now = now.Add(8 * time.Minute)
	l.get("fresh")
	now = now.Add(3 * time.Minute)

	assert.Equal(t, 1, l.sweep(10*time.Minute))

	l.mu.Lock()
	_, hasOld := l.clients["old"]
	_, hasFresh := l.clients["fresh"]
	l.mu.Unlock()

	assert.False(t, hasOld)
	assert.True(t, hasFresh)
}

func TestLimiterStore_ZeroBurst(t *testing.T) {
	t.Parallel()

	l := newLimiterStore(1, 0)
	assert.True(t, l.get("client").Allow(), "burst is at least one")
}
