package net_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "reviewsentry/internal/platform/errors"
	pnet "reviewsentry/internal/platform/net"
)

func TestReply(t *testing.T) {
	status, w := pnet.Reply(0, map[string]int{"total_predictions": 3}, "req-1")
	if status != http.StatusOK || w.StatusCode != http.StatusOK || w.Status != "OK" {
		t.Fatalf("status = %d %+v", status, w)
	}
	if w.RequestID != "req-1" || w.Code != perr.ErrorCodeUnknown || w.Error != "" {
		t.Fatalf("unexpected envelope %+v", w)
	}

	status, w = pnet.Reply(http.StatusCreated, nil, "")
	if status != http.StatusCreated || w.Status != "Created" {
		t.Fatalf("status = %d %+v", status, w)
	}
}

func TestError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   perr.ErrorCode
	}{
		{"validation", perr.Validationf("No review text provided."), http.StatusBadRequest, perr.ErrorCodeValidation},
		{"not found", perr.New(perr.ErrorCodeNotFound, "Device not found"), http.StatusNotFound, perr.ErrorCodeNotFound},
		{"model", perr.ModelUnavailablef("Model not loaded"), http.StatusInternalServerError, perr.ErrorCodeModelUnavailable},
		{"plain", errors.New("boom"), http.StatusInternalServerError, perr.ErrorCodeUnknown},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			status, w := pnet.Error(c.err, "rid")
			if status != c.status || w.StatusCode != c.status {
				t.Fatalf("status = %d want %d", status, c.status)
			}
			if w.Code != c.code {
				t.Fatalf("code = %q want %q", w.Code, c.code)
			}
			if w.Error == "" || w.Data != nil || w.RequestID != "rid" {
				t.Fatalf("unexpected envelope %+v", w)
			}
		})
	}

	if status, w := pnet.Error(nil, ""); status != http.StatusOK || w.Error != "" {
		t.Fatalf("nil error = %d %+v", status, w)
	}
}

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	status, body := pnet.Error(perr.Validationf("Review text too short."), "rid")
	pnet.WriteJSON(rr, status, body)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("code = %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Fatalf("content type = %q", ct)
	}
	var got pnet.Wire
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Error != "Review text too short." {
		t.Fatalf("body = %+v", got)
	}
}
