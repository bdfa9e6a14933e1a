package testkit

import (
	"sync"
	"testing"
)

var seams sync.Mutex

// Swap points *target at v until the test ends
func Swap[T any](t *testing.T, target *T, v T) {
	t.Helper()
	prev := *target
	*target = v
	t.Cleanup(func() { *target = prev })
}

// Serial holds a process wide lock until the test ends.
// Tests that Swap package level seams call it first
func Serial(t *testing.T) {
	t.Helper()
	seams.Lock()
	t.Cleanup(seams.Unlock)
}
