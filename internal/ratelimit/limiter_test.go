package ratelimit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLimiter_BlocksAfterMaxHits(t *testing.T) {
	l := New(3, 100)

	require.True(t, l.Allowed("alice"))
	l.Hit("alice")
	l.Hit("alice")
	require.True(t, l.Allowed("alice"))

	l.Hit("alice")
	require.False(t, l.Allowed("alice"))
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	l := New(1, 100)

	l.Hit("alice")
	require.False(t, l.Allowed("alice"))
	require.True(t, l.Allowed("bob"))
}

func TestLimiter_ResetUnblocks(t *testing.T) {
	l := New(1, 100)

	l.Hit("alice")
	require.False(t, l.Allowed("alice"))

	l.Reset("alice")
	require.True(t, l.Allowed("alice"))
}

func TestLimiter_CountersDecayWithActivity(t *testing.T) {
	// Each Hit ticks the clock twice (Get then Insert) and Allowed once, so a
	// short lifetime lets a stale counter fall away under unrelated traffic.
	l := New(1, 3)

	l.Hit("alice")
	require.False(t, l.Allowed("alice"))

	l.Hit("bob")
	l.Hit("carol")

	require.True(t, l.Allowed("alice"), "stale counter should have expired")
}
