package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/CardioRisk/internal/advice"
	"github.com/MikeSquared-Agency/CardioRisk/internal/assessment"
	"github.com/MikeSquared-Agency/CardioRisk/internal/classifier"
	"github.com/MikeSquared-Agency/CardioRisk/internal/features"
	"github.com/MikeSquared-Agency/CardioRisk/internal/hermes"
	"github.com/MikeSquared-Agency/CardioRisk/internal/metrics"
	"github.com/MikeSquared-Agency/CardioRisk/internal/scoring"
	"github.com/MikeSquared-Agency/CardioRisk/internal/store"
)

const maxRequestBytes = 64 << 10

type AssessmentsHandler struct {
	pipeline *assessment.Pipeline
	store    store.Store
	hermes   hermes.Client
	logger   *slog.Logger
}

func NewAssessmentsHandler(p *assessment.Pipeline, s store.Store, h hermes.Client, logger *slog.Logger) *AssessmentsHandler {
	return &AssessmentsHandler{pipeline: p, store: s, hermes: h, logger: logger}
}

type AssessmentResponse struct {
	ID             uuid.UUID          `json:"id"`
	Probability    float64            `json:"probability"`
	ProbabilityPct float64            `json:"probability_pct"`
	Tier           scoring.Tier       `json:"tier"`
	TierLabel      string             `json:"tier_label"`
	Advice         advice.Bundle      `json:"advice"`
	Disclaimer     string             `json:"disclaimer"`
	Features       map[string]float64 `json:"features"`
	ModelID        string             `json:"model_id"`
	AssessedAt     time.Time          `json:"assessed_at"`
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
	Value string `json:"value,omitempty"`
}

func (h *AssessmentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var in features.RawInput
	if err := dec.Decode(&in); err != nil {
		metrics.RejectionsTotal.WithLabelValues(metrics.ReasonBadRequest).Inc()
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		metrics.RejectionsTotal.WithLabelValues(metrics.ReasonBadRequest).Inc()
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: unexpected data after JSON object"})
		return
	}

	start := time.Now()
	result, err := h.pipeline.Assess(r.Context(), in)
	var mapErr *features.MappingError
	if !errors.As(err, &mapErr) {
		metrics.ScoreSeconds.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		h.reject(w, r, err)
		return
	}

	rec := &store.Assessment{
		ID:          uuid.New(),
		Probability: result.Probability,
		Tier:        string(result.Tier),
		ModelID:     result.ModelID,
		RequestID:   chiMiddleware.GetReqID(r.Context()),
		CreatedAt:   time.Now().UTC(),
	}
	if h.store != nil {
		if err := h.store.CreateAssessment(r.Context(), rec); err != nil {
			h.logger.Warn("failed to record assessment", "error", err, "id", rec.ID)
		}
	}
	metrics.AssessmentsTotal.WithLabelValues(string(result.Tier)).Inc()

	h.publish(hermes.SubjectAssessmentCompleted(rec.ID.String()), hermes.AssessmentCompletedEvent{
		AssessmentID: rec.ID.String(),
		Probability:  result.Probability,
		Tier:         string(result.Tier),
		ModelID:      result.ModelID,
		Timestamp:    rec.CreatedAt,
	})

	writeJSON(w, http.StatusOK, AssessmentResponse{
		ID:             rec.ID,
		Probability:    result.Probability,
		ProbabilityPct: percent(result.Probability),
		Tier:           result.Tier,
		TierLabel:      result.Tier.Label(),
		Advice:         result.Advice,
		Disclaimer:     advice.Disclaimer,
		Features:       result.Vector.Map(),
		ModelID:        result.ModelID,
		AssessedAt:     rec.CreatedAt,
	})
}

func (h *AssessmentsHandler) reject(w http.ResponseWriter, r *http.Request, err error) {
	var mapErr *features.MappingError
	var shapeErr *classifier.ValidationError
	switch {
	case errors.As(err, &mapErr):
		metrics.RejectionsTotal.WithLabelValues(metrics.ReasonMapping).Inc()
		h.publishRejected(metrics.ReasonMapping, mapErr.Field)
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error: err.Error(),
			Field: mapErr.Field,
			Value: mapErr.Value,
		})
	case errors.As(err, &shapeErr):
		metrics.RejectionsTotal.WithLabelValues(metrics.ReasonShape).Inc()
		h.publishRejected(metrics.ReasonShape, "")
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	default:
		metrics.RejectionsTotal.WithLabelValues(metrics.ReasonModel).Inc()
		h.logger.Error("scoring failed", "error", err, "request_id", chiMiddleware.GetReqID(r.Context()))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "risk model unavailable"})
	}
}

func (h *AssessmentsHandler) publishRejected(reason, field string) {
	h.publish(hermes.SubjectAssessmentRejected, hermes.AssessmentRejectedEvent{
		Reason:    reason,
		Field:     field,
		Timestamp: time.Now().UTC(),
	})
}

func (h *AssessmentsHandler) publish(subject string, event any) {
	if h.hermes == nil {
		return
	}
	if err := h.hermes.Publish(subject, event); err != nil {
		h.logger.Warn("failed to publish event", "error", err, "subject", subject)
	}
}

func (h *AssessmentsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid assessment id"})
		return
	}
	if h.store == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "assessment not found"})
		return
	}
	rec, err := h.store.GetAssessment(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	if rec == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "assessment not found"})
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *AssessmentsHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeJSON(w, http.StatusOK, []*store.Assessment{})
		return
	}
	var filter store.AssessmentFilter
	if t := r.URL.Query().Get("tier"); t != "" {
		tier, err := scoring.ParseTier(t)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		filter.Tier = string(tier)
	}
	filter.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	filter.Offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))

	recs, err := h.store.ListAssessments(r.Context(), filter)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	if recs == nil {
		recs = []*store.Assessment{}
	}
	writeJSON(w, http.StatusOK, recs)
}

// percent converts a probability to a percentage rounded to two decimals.
func percent(p float64) float64 {
	return math.Round(p*10000) / 100
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
