// Package testkit holds helpers shared by package tests.
package testkit

import "testing"

// MustPanic fails t unless fn panics, and returns the recovered value
func MustPanic(t *testing.T, fn func()) (v any) {
	t.Helper()
	defer func() {
		v = recover()
		if v == nil {
			t.Fatalf("expected panic, got none")
		}
	}()
	fn()
	return nil
}
