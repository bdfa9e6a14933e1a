package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	pnet "reviewsentry/internal/platform/net"
)

func TestRecoverJSON_WritesErrorEnvelope(t *testing.T) {
	h := RequestID()(RequestContext()(RecoverJSON(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	}))))

	req := httptest.NewRequest(http.MethodGet, "/api/predict", nil)
	req.Header.Set("X-Request-ID", "rid-1")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rr.Code)
	}
	var body pnet.Wire
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.StatusCode != 500 || body.RequestID != "rid-1" || body.Error == "" {
		t.Fatalf("body = %+v", body)
	}
	if body.Error == "kaboom" {
		t.Fatalf("panic value leaked to client")
	}
}

func TestRecoverJSON_AbortHandlerPropagates(t *testing.T) {
	h := RecoverJSON(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	defer func() {
		if v := recover(); v != http.ErrAbortHandler {
			t.Fatalf("recovered %v", v)
		}
	}()
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}
