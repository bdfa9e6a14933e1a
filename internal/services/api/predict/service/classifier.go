package service

import (
	"context"
	"fmt"

	"reviewsentry/internal/core/classifier"
	"reviewsentry/internal/core/textfeat"
	"reviewsentry/internal/services/api/predict/domain"
)

// pipeline vectorizes text, pads to the model width and scores through the breaker
type pipeline struct {
	vec    *textfeat.Vectorizer
	scorer classifier.Scorer
	width  int
}

// NewClassifier joins a vectorizer and a model behind a circuit breaker.
// The model may be wider than the vectorizer; extra columns are zero filled
func NewClassifier(vec *textfeat.Vectorizer, model *classifier.Model, bs classifier.BreakerSettings) (domain.Classifier, error) {
	if vec == nil || model == nil {
		return nil, fmt.Errorf("predict: vectorizer and model are both required")
	}
	if vec.Dim() > model.NFeatures() {
		return nil, fmt.Errorf("predict: vectorizer width %d exceeds model width %d", vec.Dim(), model.NFeatures())
	}
	return &pipeline{
		vec:    vec,
		scorer: classifier.NewGuarded(model, bs),
		width:  model.NFeatures(),
	}, nil
}

func (p *pipeline) Classify(ctx context.Context, text string) (classifier.Decision, error) {
	if err := ctx.Err(); err != nil {
		return classifier.Decision{}, err
	}
	x, err := textfeat.Pad(p.vec.Transform(text), p.width)
	if err != nil {
		return classifier.Decision{}, err
	}
	probs, err := p.scorer.PredictProba(x)
	if err != nil {
		return classifier.Decision{}, err
	}
	return classifier.Decide(probs)
}
