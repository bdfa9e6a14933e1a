// Package domain holds the prediction ports and payloads.
package domain

import (
	"context"

	"reviewsentry/internal/core/analytics"
	"reviewsentry/internal/core/classifier"
)

// Classifier turns review text into a decision
type Classifier interface {
	Classify(ctx context.Context, text string) (classifier.Decision, error)
}

// Recorder is the write side of the aggregation engine. *analytics.Engine satisfies it
type Recorder interface {
	Ingest(in analytics.IngestInput) (analytics.Event, error)
}

// StatusPort reports whether the model artifacts loaded
type StatusPort interface {
	ModelLoaded() bool
}

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	StatusPort
	Predict(ctx context.Context, in PredictRequest) (PredictResponse, error)
	BatchPredict(ctx context.Context, in BatchRequest) (BatchResponse, error)
}
