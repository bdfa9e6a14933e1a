// Package service implements review classification and its hand off to the analytics engine.
package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"reviewsentry/internal/core/analytics"
	"reviewsentry/internal/core/classifier"
	perr "reviewsentry/internal/platform/errors"
	"reviewsentry/internal/platform/logger"
	"reviewsentry/internal/platform/metrics"
	pnet "reviewsentry/internal/platform/net"
	"reviewsentry/internal/services/api/predict/domain"
)

// Service is the predict service
type Service interface {
	domain.ServicePort
}

type svc struct {
	clf domain.Classifier // nil when the artifacts failed to load
	rec domain.Recorder
}

// New constructs the predict service. clf may be nil, in which case every prediction
// fails with ModelUnavailable and ModelLoaded reports false
func New(clf domain.Classifier, rec domain.Recorder) Service {
	if rec == nil {
		panic("predict service: nil recorder")
	}
	return &svc{clf: clf, rec: rec}
}

func (s *svc) ModelLoaded() bool { return s.clf != nil }

// Predict classifies one review and records it. Nothing is recorded unless
// classification succeeded
func (s *svc) Predict(ctx context.Context, in domain.PredictRequest) (domain.PredictResponse, error) {
	if s.clf == nil {
		return domain.PredictResponse{}, perr.ModelUnavailablef(domain.MsgModelMissing)
	}
	text, err := checkReview(in.Review)
	if err != nil {
		return domain.PredictResponse{}, err
	}
	var at time.Time
	if in.Timestamp != "" {
		at, err = time.Parse(time.RFC3339Nano, in.Timestamp)
		if err != nil {
			return domain.PredictResponse{}, perr.WithField(perr.Validationf("timestamp must be an RFC3339 timestamp"), "timestamp")
		}
	}

	d, err := s.classify(ctx, text)
	if err != nil {
		return domain.PredictResponse{}, err
	}

	ev, err := s.rec.Ingest(analytics.IngestInput{
		Text:          text,
		Label:         labelOf(d),
		Confidence:    d.Confidence,
		Probabilities: d.Probabilities,
		DeviceID:      deviceOf(ctx, in.DeviceID),
		Timestamp:     at,
		Rating:        in.Rating,
		Category:      in.Category,
	})
	if err != nil {
		return domain.PredictResponse{}, perr.Wrap(err, perr.ErrorCodeUnknown, "failed to record prediction")
	}

	return domain.PredictResponse{
		Prediction:    d.Prediction,
		Label:         ev.Label,
		Probabilities: ev.Probabilities,
		Confidence:    ev.Confidence,
		Timestamp:     ev.IngestedAt,
		EventID:       ev.ID,
		DeviceID:      ev.DeviceID,
		Analytics:     ev.Features,
	}, nil
}

// BatchPredict classifies each review independently. A failed item carries its error
// and the rest of the batch continues
func (s *svc) BatchPredict(ctx context.Context, in domain.BatchRequest) (domain.BatchResponse, error) {
	if s.clf == nil {
		return domain.BatchResponse{}, perr.ModelUnavailablef(domain.MsgModelMissing)
	}
	if len(in.Reviews) == 0 {
		return domain.BatchResponse{}, perr.WithField(perr.Validationf(domain.MsgNoReviews), "reviews")
	}
	if len(in.Reviews) > domain.MaxBatch {
		return domain.BatchResponse{}, perr.WithField(perr.Validationf("reviews must be at most %d", domain.MaxBatch), "reviews")
	}

	dev := deviceOf(ctx, in.DeviceID)
	out := domain.BatchResponse{Results: make([]domain.BatchItem, 0, len(in.Reviews))}
	for _, review := range in.Reviews {
		item := domain.BatchItem{Review: review}
		ev, d, err := s.one(ctx, review, dev, in)
		if err != nil {
			item.Error = perr.WireFrom(err).Message
			out.Failed++
		} else {
			item.Prediction = d.Prediction
			item.Label = ev.Label
			item.Probabilities = ev.Probabilities
			item.Confidence = ev.Confidence
			item.EventID = ev.ID
		}
		out.Results = append(out.Results, item)
	}
	out.TotalProcessed = len(out.Results)
	out.Timestamp = time.Now().UTC()

	logger.C(ctx).Info().
		Int("total", out.TotalProcessed).
		Int("failed", out.Failed).
		Msg("batch classified")
	return out, nil
}

func (s *svc) one(ctx context.Context, review, dev string, in domain.BatchRequest) (analytics.Event, classifier.Decision, error) {
	text, err := checkReview(review)
	if err != nil {
		return analytics.Event{}, classifier.Decision{}, err
	}
	d, err := s.classify(ctx, text)
	if err != nil {
		return analytics.Event{}, classifier.Decision{}, err
	}
	ev, err := s.rec.Ingest(analytics.IngestInput{
		Text:          text,
		Label:         labelOf(d),
		Confidence:    d.Confidence,
		Probabilities: d.Probabilities,
		DeviceID:      dev,
		Rating:        in.Rating,
		Category:      in.Category,
	})
	if err != nil {
		return analytics.Event{}, classifier.Decision{}, perr.Wrap(err, perr.ErrorCodeUnknown, "failed to record prediction")
	}
	return ev, d, nil
}

func (s *svc) classify(ctx context.Context, text string) (classifier.Decision, error) {
	start := time.Now()
	d, err := s.clf.Classify(ctx, text)
	if err != nil {
		metrics.RecordPrediction("error", time.Since(start))
		logger.C(ctx).Error().Err(err).Int("runes", utf8.RuneCountInString(text)).Msg("prediction failed")
		return classifier.Decision{}, perr.ClassificationFailed(err)
	}
	metrics.RecordPrediction(labelOf(d), time.Since(start))
	logger.C(ctx).Debug().
		Str("prediction", d.Prediction).
		Floats64("probabilities", d.Probabilities).
		Msg("prediction")
	return d, nil
}

// checkReview trims text and enforces the minimum length in runes
func checkReview(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", perr.WithField(perr.Validationf(domain.MsgNoReview), "review")
	}
	if utf8.RuneCountInString(text) < domain.MinReviewRunes {
		return "", perr.WithField(perr.Validationf(domain.MsgTooShort), "review")
	}
	return text, nil
}

func labelOf(d classifier.Decision) string {
	if d.Original {
		return analytics.LabelHuman
	}
	return analytics.LabelMachine
}

// deviceOf prefers the body field and falls back to the X-Device-ID header
func deviceOf(ctx context.Context, body string) string {
	if id := strings.TrimSpace(body); id != "" {
		return id
	}
	return pnet.DeviceID(ctx)
}
