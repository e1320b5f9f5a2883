package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"tidv/internal/identity/kbv"
	"tidv/internal/identity/match"
	"tidv/internal/identity/reference"
	"tidv/internal/identity/session"
	"tidv/internal/verification"
	"tidv/pkg/platform/httputil"
	"tidv/pkg/requestcontext"
)

// Service defines the verification operations the handler exposes.
type Service interface {
	ValidateAll(ctx context.Context, fields match.Fields) (*verification.Outcome, error)
	ValidateDobPhone(ctx context.Context, fields match.Fields) (*verification.Outcome, error)
	ValidatePostcodeNino(ctx context.Context, fields match.Fields) (*verification.Outcome, error)
	ValidateSubmitted(ctx context.Context, fields match.Fields) (*verification.Outcome, error)
	ValidateKBVAnswer(ctx context.Context, benefitType, questionID string, answer any) (*kbv.AnswerResult, error)
	ValidateKBVBatch(ctx context.Context, benefitType string, answers []kbv.Answer) (*kbv.BatchResult, error)
	FailureDetail(ctx context.Context, code string) (*verification.FailureDetail, error)
}

type checkFunc func(ctx context.Context, fields match.Fields) (*verification.Outcome, error)

// Handler wires the field-check, KBV and failure endpoints to the service.
// Every route here sits behind the bearer gate.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a verification handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the endpoints on r.
func (h *Handler) Register(r chi.Router) {
	r.Post("/validate", h.check(match.AllFields, h.service.ValidateAll))
	r.Post("/validate/dob-phone", h.check(match.DobPhone, h.service.ValidateDobPhone))
	r.Post("/validate/postcode-nino", h.check(match.PostcodeNino, h.service.ValidatePostcodeNino))
	r.Post("/validate/submitted", h.check(match.Submitted, h.service.ValidateSubmitted))
	r.Post("/kbv/{benefitType}/answer", h.HandleKBVAnswer)
	r.Post("/kbv/{benefitType}/batch", h.HandleKBVBatch)
	r.Get("/idv-failure", h.HandleIDVFailure)
	r.Get("/failures/{code}", h.HandleFailure)
}

func (h *Handler) check(policy match.Policy, fn checkFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := requestcontext.RequestID(ctx)
		start := time.Now()

		req, err := httputil.DecodeObject[FieldsRequest](r, policy.FieldNames()...)
		if err != nil {
			h.logger.WarnContext(ctx, "rejected identity check payload",
				"request_id", requestID,
				"policy", policy.Name,
				"error", err,
			)
			httputil.WriteError(w, err)
			return
		}

		fields, err := req.Fields(policy.FieldNames()...)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}

		out, err := fn(ctx, fields)
		if err != nil {
			h.logger.WarnContext(ctx, "identity check failed",
				"request_id", requestID,
				"policy", policy.Name,
				"error", err,
			)
			httputil.WriteError(w, err)
			return
		}

		h.logger.InfoContext(ctx, "identity check completed",
			"request_id", requestID,
			"policy", policy.Name,
			"match", out.Match,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		httputil.WriteJSON(w, http.StatusOK, FromOutcome(out))
	}
}

// HandleKBVAnswer handles POST /kbv/{benefitType}/answer.
func (h *Handler) HandleKBVAnswer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	benefitType := chi.URLParam(r, "benefitType")
	if _, err := reference.ParseBenefitType(benefitType); err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, err := httputil.DecodeObject[KBVAnswerRequest](r, "questionId", "answer")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	res, err := h.service.ValidateKBVAnswer(ctx, benefitType, req.QuestionID, req.Answer)
	if err != nil {
		h.logger.WarnContext(ctx, "kbv answer rejected",
			"request_id", requestcontext.RequestID(ctx),
			"benefit_type", benefitType,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromAnswerResult(res))
}

// HandleKBVBatch handles POST /kbv/{benefitType}/batch.
func (h *Handler) HandleKBVBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	benefitType := chi.URLParam(r, "benefitType")
	if _, err := reference.ParseBenefitType(benefitType); err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, err := httputil.DecodeObject[KBVBatchRequest](r, "answers")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	res, err := h.service.ValidateKBVBatch(ctx, benefitType, req.ToAnswers())
	if err != nil {
		h.logger.WarnContext(ctx, "kbv batch rejected",
			"request_id", requestcontext.RequestID(ctx),
			"benefit_type", benefitType,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromBatchResult(res))
}

// HandleIDVFailure handles GET /idv-failure, the detail of the only failure
// the dialogue produces.
func (h *Handler) HandleIDVFailure(w http.ResponseWriter, r *http.Request) {
	h.writeFailure(w, r, session.FailureCode)
}

// HandleFailure handles GET /failures/{code}.
func (h *Handler) HandleFailure(w http.ResponseWriter, r *http.Request) {
	h.writeFailure(w, r, chi.URLParam(r, "code"))
}

func (h *Handler) writeFailure(w http.ResponseWriter, r *http.Request, code string) {
	detail, err := h.service.FailureDetail(r.Context(), code)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromFailureDetail(detail))
}
