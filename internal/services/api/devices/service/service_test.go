package service

import (
	"testing"
	"time"

	"reviewsentry/internal/core/analytics"
	perr "reviewsentry/internal/platform/errors"
	kit "reviewsentry/internal/platform/testkit"
	"reviewsentry/internal/services/api/devices/domain"
)

func TestRegister_IssuesDistinctIDs(t *testing.T) {
	t.Parallel()
	at := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	eng := analytics.New(analytics.Options{Clock: func() time.Time { return at }})
	s := New(eng)

	a, b := s.Register(), s.Register()
	if a.DeviceID == "" || a.DeviceID == b.DeviceID {
		t.Fatalf("ids = %q %q", a.DeviceID, b.DeviceID)
	}
	if a.Status != domain.StatusRegistered || !a.Timestamp.Equal(at) {
		t.Fatalf("resp = %+v", a)
	}
	if _, ok := eng.Device(a.DeviceID); !ok {
		t.Fatalf("device not in registry")
	}
}

func TestStats_UnknownIsNotFound(t *testing.T) {
	t.Parallel()
	s := New(analytics.New(analytics.Options{}))

	_, err := s.Stats("never-issued")
	if perr.HTTPStatus(err) != 404 {
		t.Fatalf("err = %v", err)
	}
	if w := perr.WireFrom(err); w.Message != "Device not found" || w.Field != "device_id" {
		t.Fatalf("wire = %+v", w)
	}
}

func TestStats_TrimsID(t *testing.T) {
	t.Parallel()
	eng := analytics.New(analytics.Options{})
	s := New(eng)
	d := s.Register()

	st, err := s.Stats("  " + d.DeviceID + " ")
	if err != nil || st.DeviceID != d.DeviceID || st.TotalEvents != 0 {
		t.Fatalf("stats = %+v, %v", st, err)
	}
}

func TestNew_NilRegistryPanics(t *testing.T) {
	t.Parallel()
	kit.MustPanic(t, func() { New(nil) })
}
