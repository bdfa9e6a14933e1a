package module

import (
	"strings"
	"testing"

	phttp "reviewsentry/internal/platform/net/http"
	kit "reviewsentry/internal/platform/testkit"
)

type Counter interface{ Len() int }
type Loaded interface{ ModelLoaded() bool }

type counter int

func (c counter) Len() int { return int(c) }

type status bool

func (s status) ModelLoaded() bool { return bool(s) }

type ports struct {
	Events Counter
	Model  Loaded
	hidden Loaded
}

type stub struct{ ports any }

func (stub) MountRoutes(phttp.Router) {}
func (s stub) Ports() any             { return s.ports }
func (stub) Name() string             { return "predict" }

func TestPortsOf(t *testing.T) {
	t.Parallel()
	m := stub{ports: ports{Events: counter(3), Model: status(true)}}

	c, ok := PortsOf[Counter](m)
	if !ok || c.Len() != 3 {
		t.Fatalf("counter = %v, %v", c, ok)
	}
	if l := MustPortsOf[Loaded](m); !l.ModelLoaded() {
		t.Fatalf("loaded = false")
	}

	// pointer bundles and direct values both resolve
	if _, ok := PortsOf[Counter](stub{ports: &ports{Events: counter(1)}}); !ok {
		t.Fatalf("pointer bundle not walked")
	}
	if _, ok := PortsOf[Counter](stub{ports: counter(1)}); !ok {
		t.Fatalf("direct value not matched")
	}
}

func TestPortsOf_Missing(t *testing.T) {
	t.Parallel()
	if _, ok := PortsOf[Counter](stub{}); ok {
		t.Fatalf("nil ports matched")
	}
	if _, ok := PortsOf[Loaded](stub{ports: ports{hidden: status(true)}}); ok {
		t.Fatalf("unexported field matched")
	}
	if _, ok := PortsOf[Counter](stub{ports: (*ports)(nil)}); ok {
		t.Fatalf("nil pointer matched")
	}

	msg, _ := kit.MustPanic(t, func() { MustPortsOf[Counter](stub{ports: ports{}}) }).(string)
	if !strings.Contains(msg, "predict") || !strings.Contains(msg, "Counter") {
		t.Fatalf("panic = %q", msg)
	}
}
