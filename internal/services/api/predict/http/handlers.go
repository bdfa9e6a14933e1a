// Package http provides http transport for review classification.
package http

import (
	stdhttp "net/http"

	"reviewsentry/internal/modkit/httpkit"
	"reviewsentry/internal/services/api/predict/domain"
	svc "reviewsentry/internal/services/api/predict/service"
)

// Register mounts prediction endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// clients send extra review metadata we do not model, so unknown fields are ignored
	r.Post("/predict", httpkit.JSONLenient(h.predict))
	r.Post("/batch_predict", httpkit.JSONLenient(h.batch))
}

type handlers struct{ svc svc.Service }

// swagger:route POST /predict Predict predict
// @Summary Classify one review as original or computer generated and record it
// @Tags Predict
// @Accept json
// @Produce json
// @Param payload body domain.PredictRequest true "Review"
// @Success 200 {object} domain.PredictResponse "ok"
// @Failure 400 {object} httpkit.Envelope "missing or short review"
// @Failure 429 {object} httpkit.Envelope "rate limited"
// @Failure 500 {object} httpkit.Envelope "model unavailable or prediction failed"
// @Router /predict [post]
func (h *handlers) predict(r *stdhttp.Request, in domain.PredictRequest) (any, error) {
	out, err := h.svc.Predict(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Flat(out), nil
}

// swagger:route POST /batch_predict Predict batchPredict
// @Summary Classify up to 100 reviews; failures are reported per item
// @Tags Predict
// @Accept json
// @Produce json
// @Param payload body domain.BatchRequest true "Reviews"
// @Success 200 {object} domain.BatchResponse "ok"
// @Failure 400 {object} httpkit.Envelope "no reviews"
// @Failure 500 {object} httpkit.Envelope "model unavailable"
// @Router /batch_predict [post]
func (h *handlers) batch(r *stdhttp.Request, in domain.BatchRequest) (any, error) {
	out, err := h.svc.BatchPredict(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Flat(out), nil
}
