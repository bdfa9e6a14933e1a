package modkit

import (
	"net/http"
	"testing"
)

func TestBuild(t *testing.T) {
	t.Parallel()
	var calls []string
	mw := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			calls = append(calls, name)
			return next
		}
	}
	type ports struct{ N int }

	b := Build(
		WithName("predict"),
		WithPrefix("/device"),
		WithMiddlewares(mw("ratelimit")),
		WithMiddlewares(mw("audit")),
		WithPorts(ports{N: 2}),
		WithName("devices"),
	)
	if b.Name != "devices" || b.Prefix != "/device" {
		t.Fatalf("built = %+v", b)
	}
	if p, ok := b.Ports.(ports); !ok || p.N != 2 {
		t.Fatalf("ports = %#v", b.Ports)
	}
	if len(b.Mw) != 2 {
		t.Fatalf("mw = %d", len(b.Mw))
	}
	for _, m := range b.Mw {
		m(http.NotFoundHandler())
	}
	if calls[0] != "ratelimit" || calls[1] != "audit" {
		t.Fatalf("order = %v", calls)
	}

	if z := Build(); z.Name != "" || z.Mw != nil || z.Ports != nil {
		t.Fatalf("zero build = %+v", z)
	}
}
