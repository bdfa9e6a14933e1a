package domain

import (
	"time"

	"reviewsentry/internal/core/analytics"
)

// Review text limits
const (
	MinReviewRunes = 10
	MaxBatch       = 100
)

// Client facing messages
const (
	MsgNoReview     = "No review text provided."
	MsgTooShort     = "Review text too short. Minimum 10 characters required."
	MsgNoReviews    = "No reviews provided."
	MsgModelMissing = "Model not loaded properly"
)

// PredictRequest is the body of POST /predict. Only review is required.
// A device_id the engine cannot key on is dropped rather than rejected
type PredictRequest struct {
	Review    string `json:"review"              example:"Great blender, crushed ice in seconds and easy to clean."`
	Rating    int    `json:"rating,omitempty"    validate:"omitempty,min=1,max=5" example:"5"`
	Category  string `json:"category,omitempty"  validate:"max=64" example:"Home_and_Kitchen_5"`
	DeviceID  string `json:"device_id,omitempty"`
	Timestamp string `json:"timestamp,omitempty" example:"2025-09-03T13:05:00Z"`
}

// PredictResponse is one classified review plus the temporal features stored with it
type PredictResponse struct {
	Prediction    string             `json:"prediction"    example:"Original"`
	Label         string             `json:"label"         example:"human-written"`
	Probabilities []float64          `json:"probabilities"`
	Confidence    float64            `json:"confidence"    example:"0.91"`
	Timestamp     time.Time          `json:"timestamp"`
	EventID       string             `json:"event_id"`
	DeviceID      string             `json:"device_id,omitempty"`
	Analytics     analytics.Features `json:"analytics"`
}

// BatchRequest is the body of POST /batch_predict
type BatchRequest struct {
	Reviews  []string `json:"reviews"             validate:"max=100"`
	Rating   int      `json:"rating,omitempty"    validate:"omitempty,min=1,max=5"`
	Category string   `json:"category,omitempty"  validate:"max=64"`
	DeviceID string   `json:"device_id,omitempty"`
}

// BatchItem is one batch result. Error is set instead of the prediction fields on failure
type BatchItem struct {
	Review        string    `json:"review"`
	Prediction    string    `json:"prediction,omitempty"`
	Label         string    `json:"label,omitempty"`
	Probabilities []float64 `json:"probabilities,omitempty"`
	Confidence    float64   `json:"confidence,omitempty"`
	EventID       string    `json:"event_id,omitempty"`
	Error         string    `json:"error,omitempty"`
}

// BatchResponse is the body returned by POST /batch_predict
type BatchResponse struct {
	Results        []BatchItem `json:"results"`
	TotalProcessed int         `json:"total_processed"`
	Failed         int         `json:"failed"`
	Timestamp      time.Time   `json:"timestamp"`
}
