package testkit

import "testing"

func TestMustPanic_ReturnsValue(t *testing.T) {
	t.Parallel()
	if v := MustPanic(t, func() { panic("model not loaded") }); v != "model not loaded" {
		t.Fatalf("recovered %v", v)
	}
}
