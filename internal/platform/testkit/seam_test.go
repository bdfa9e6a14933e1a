package testkit

import (
	"testing"
	"time"
)

var openPool = func(url string) string { return "pool:" + url }

func TestSwap_RestoresAfterSubtest(t *testing.T) {
	t.Run("swapped", func(t *testing.T) {
		Swap(t, &openPool, func(string) string { return "fake" })
		if got := openPool("postgres://x"); got != "fake" {
			t.Fatalf("got %q", got)
		}
	})
	if got := openPool("postgres://x"); got != "pool:postgres://x" {
		t.Fatalf("not restored: %q", got)
	}
}

func TestSerial_BlocksUntilCleanup(t *testing.T) {
	released := make(chan struct{})
	t.Run("holder", func(t *testing.T) {
		Serial(t)
		go func() {
			seams.Lock()
			close(released)
			seams.Unlock()
		}()
		select {
		case <-released:
			t.Fatalf("lock acquired while held")
		case <-time.After(20 * time.Millisecond):
		}
	})
	select {
	case <-released:
	case <-time.After(time.Second):
		t.Fatalf("lock not released by cleanup")
	}
}
