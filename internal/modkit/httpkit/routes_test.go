package httpkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	perr "reviewsentry/internal/platform/errors"
	phttp "reviewsentry/internal/platform/net/http"
)

func tag(v string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("X-Tag", v)
			next.ServeHTTP(w, r)
		})
	}
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, Envelope) {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(method, path, strings.NewReader(body)))
	var env Envelope
	if strings.HasPrefix(rr.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode: %v", err)
		}
	}
	return rr, env
}

func TestMountAPIRoot_AndMountUnder(t *testing.T) {
	mux := chi.NewRouter()
	MountAPIRoot(phttp.AdaptChi(mux), []func(http.Handler) http.Handler{tag("api")}, func(api Router) {
		MountUnder(api, "", nil, func(r Router) {
			Get(r, "/health", func(*http.Request) (any, error) { return map[string]string{"status": "healthy"}, nil })
		})
		MountUnder(api, "/device", []func(http.Handler) http.Handler{tag("device")}, func(r Router) {
			Post(r, "/register", func(*http.Request) (any, error) { return map[string]string{"device_id": "d1"}, nil })
		})
	})

	rr, env := do(t, mux, http.MethodGet, "/api/health", "")
	if rr.Code != http.StatusOK || env.Data.(map[string]any)["status"] != "healthy" {
		t.Fatalf("health = %d %+v", rr.Code, env)
	}
	if got := rr.Header().Values("X-Tag"); len(got) != 1 || got[0] != "api" {
		t.Fatalf("health tags = %v", got)
	}

	rr, env = do(t, mux, http.MethodPost, "/api/device/register", "")
	if rr.Code != http.StatusOK || env.Data.(map[string]any)["device_id"] != "d1" {
		t.Fatalf("register = %d %+v", rr.Code, env)
	}
	if got := rr.Header().Values("X-Tag"); len(got) != 2 || got[1] != "device" {
		t.Fatalf("register tags = %v", got)
	}

	if rr, _ := do(t, mux, http.MethodGet, "/device/register", ""); rr.Code != http.StatusNotFound {
		t.Fatalf("unprefixed = %d", rr.Code)
	}
}

func TestMountAPI_Versioned(t *testing.T) {
	mux := chi.NewRouter()
	MountAPI(phttp.AdaptChi(mux), "/v2/", nil, func(api Router) {
		Get(api, "/version", func(*http.Request) (any, error) { return "2", nil })
	})
	if rr, _ := do(t, mux, http.MethodGet, "/api/v2/version", ""); rr.Code != http.StatusOK {
		t.Fatalf("versioned = %d", rr.Code)
	}
}

type predictIn struct {
	Review string `json:"review"`
}

func TestHandlers_EnvelopeAndErrors(t *testing.T) {
	mux := chi.NewRouter()
	r := phttp.AdaptChi(mux)
	r.Post("/predict", JSONLenient(func(_ *http.Request, in predictIn) (any, error) {
		if in.Review == "" {
			return nil, perr.Validationf("No review text provided.")
		}
		return map[string]int{"len": len(in.Review)}, nil
	}))
	Get(r, "/summary", func(*http.Request) (any, error) { return Message("No data available"), nil })

	// unknown fields pass the lenient binder
	rr, env := do(t, mux, http.MethodPost, "/predict", `{"review":"great","rating":5}`)
	if rr.Code != http.StatusOK || env.Data.(map[string]any)["len"] != float64(5) {
		t.Fatalf("predict = %d %+v", rr.Code, env)
	}

	rr, env = do(t, mux, http.MethodPost, "/predict", `{}`)
	if rr.Code != http.StatusBadRequest || env.Error != "No review text provided." {
		t.Fatalf("empty = %d %+v", rr.Code, env)
	}

	// messages are flat, so the envelope fields stay empty
	rr, env = do(t, mux, http.MethodGet, "/summary", "")
	if rr.Code != http.StatusOK || env.Data != nil || !strings.Contains(rr.Body.String(), `"message":"No data available"`) {
		t.Fatalf("summary = %d %s", rr.Code, rr.Body.String())
	}
}
