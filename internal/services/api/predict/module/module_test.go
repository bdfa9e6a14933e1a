package module

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"reviewsentry/internal/core/analytics"
	"reviewsentry/internal/modkit"
	"reviewsentry/internal/modkit/module"
	"reviewsentry/internal/platform/config"
	"reviewsentry/internal/services/api/predict/domain"
)

func writeArtifacts(t *testing.T) (model, vec string) {
	t.Helper()
	dir := t.TempDir()
	model = filepath.Join(dir, "model.json")
	vec = filepath.Join(dir, "vectorizer.json")
	if err := os.WriteFile(vec, []byte(`{"vocabulary":{"great":0,"awful":1},"idf":[1,1]}`), 0o600); err != nil {
		t.Fatal(err)
	}
	// two text columns plus auxiliary padding
	if err := os.WriteFile(model, []byte(`{"coef":[2,-2,0,0],"intercept":0,"n_features":4}`), 0o600); err != nil {
		t.Fatal(err)
	}
	return model, vec
}

func TestNew_LoadsArtifacts(t *testing.T) {
	model, vec := writeArtifacts(t)
	m := New(modkit.Deps{}, analytics.New(analytics.Options{}), Options{ModelPath: model, VectorizerPath: vec})

	if !module.MustPortsOf[domain.StatusPort](m).ModelLoaded() {
		t.Fatalf("model should be loaded")
	}
}

func TestNew_MissingArtifactsKeepServing(t *testing.T) {
	model, _ := writeArtifacts(t)
	m := New(modkit.Deps{}, analytics.New(analytics.Options{}), Options{ModelPath: model, VectorizerPath: "/nope.json"})

	if module.MustPortsOf[domain.StatusPort](m).ModelLoaded() {
		t.Fatalf("model should not be loaded")
	}
	if m.Name() != "predict" {
		t.Fatalf("name = %q", m.Name())
	}
}

func TestFromConfig(t *testing.T) {
	t.Setenv("RS_TEST_CORE_MODEL_PATH", "/m.json")
	t.Setenv("RS_TEST_CORE_API_RATE_LIMIT", "5")
	t.Setenv("RS_TEST_CORE_CLASSIFIER_BREAKER_TIMEOUT", "5s")

	o := FromConfig(config.New().Prefix("RS_TEST_"))
	if o.ModelPath != "/m.json" || o.VectorizerPath != "artifacts/vectorizer.json" {
		t.Fatalf("paths = %+v", o)
	}
	if o.RateLimit != 5 || o.RateWindow != time.Minute {
		t.Fatalf("rate = %d/%s", o.RateLimit, o.RateWindow)
	}
	if o.Breaker.Timeout != 5*time.Second || o.Breaker.MinRequests != 10 || o.Breaker.FailureRatio != 0.6 {
		t.Fatalf("breaker = %+v", o.Breaker)
	}
}
