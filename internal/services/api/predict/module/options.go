package module

import (
	"time"

	"reviewsentry/internal/core/classifier"
	"reviewsentry/internal/platform/config"
	"reviewsentry/internal/services/api/predict/domain"
)

// Options holds configuration settings for the predict module
type Options struct {
	ModelPath      string
	VectorizerPath string

	// RateLimit is requests per RateWindow per client ip, 0 disables
	RateLimit  int
	RateWindow time.Duration

	Breaker classifier.BreakerSettings

	// Classifier skips artifact loading when set
	Classifier domain.Classifier
}

// FromConfig extracts Options from the given config.Conf
func FromConfig(cfg config.Conf) Options {
	mc := cfg.Prefix("CORE_")
	bc := cfg.Prefix("CORE_CLASSIFIER_BREAKER_")
	return Options{
		ModelPath:      mc.MayString("MODEL_PATH", "artifacts/model.json"),
		VectorizerPath: mc.MayString("VECTORIZER_PATH", "artifacts/vectorizer.json"),
		RateLimit:      cfg.Prefix("CORE_API_").MayInt("RATE_LIMIT", 60),
		RateWindow:     time.Minute,
		Breaker: classifier.BreakerSettings{
			MaxRequests:  uint32(bc.MayInt("MAX_REQUESTS", 3)),
			Interval:     bc.MayDuration("INTERVAL", time.Minute),
			Timeout:      bc.MayDuration("TIMEOUT", 30*time.Second),
			MinRequests:  uint32(bc.MayInt("MIN_REQUESTS", 10)),
			FailureRatio: bc.MayFloat64("FAILURE_RATIO", 0.6),
		},
	}
}
