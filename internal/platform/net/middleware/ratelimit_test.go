package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	perr "reviewsentry/internal/platform/errors"
	pnet "reviewsentry/internal/platform/net"
	"reviewsentry/internal/platform/net/middleware"
)

func TestRateLimitByIP_RejectsOverLimit(t *testing.T) {
	h := middleware.RateLimitByIP(2, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/predict", nil)
		req.RemoteAddr = ip + ":1234"
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr
	}

	for i := range 2 {
		if rr := do("10.0.0.1"); rr.Code != http.StatusOK {
			t.Fatalf("request %d: got %d", i, rr.Code)
		}
	}
	rr := do("10.0.0.1")
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 got %d", rr.Code)
	}
	var w pnet.Wire
	if err := json.Unmarshal(rr.Body.Bytes(), &w); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if w.Code != perr.ErrorCodeTooManyRequests || w.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("unexpected envelope %+v", w)
	}

	// other clients keep their own budget
	if rr := do("10.0.0.2"); rr.Code != http.StatusOK {
		t.Fatalf("other ip got %d", rr.Code)
	}
}

func TestRateLimitByIP_DisabledIsPassThrough(t *testing.T) {
	h := middleware.RateLimitByIP(0, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	for range 10 {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
		if rr.Code != http.StatusNoContent {
			t.Fatalf("got %d", rr.Code)
		}
	}
}
