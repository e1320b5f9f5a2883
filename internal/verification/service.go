// Package verification composes the normalizer, matcher and KBV bank into
// the graded outcomes returned to callers.
package verification

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"tidv/internal/identity/kbv"
	"tidv/internal/identity/match"
	"tidv/internal/identity/reference"
	"tidv/internal/identity/session"
	"tidv/internal/platform/metrics"
	dErrors "tidv/pkg/domain-errors"
	"tidv/pkg/requestcontext"
)

const tracerName = "tidv/internal/verification"

// Outcome messages.
const (
	MessageSuccess = "Validation successful"
	MessagePartial = "Validation partially matched"
	MessageFailed  = "Validation failed"
)

// Outcome is the composed result of a field check.
type Outcome struct {
	Match         bool
	Message       string
	Status        match.ErrorStatus
	Confidence    int
	Checks        map[match.Field]bool
	MatchedFields []match.Field
	FailedFields  []match.Field
	// MatchCount and TotalFields are reported for the four-field check only.
	MatchCount  *int
	TotalFields *int
	// GUID is handed out on a full match only.
	GUID string
}

// KBVOutcome is one question's entry in a failure detail.
type KBVOutcome struct {
	Question string
	Pass     bool
}

// FailureDetail describes why a dialogue ended in failure.
type FailureDetail struct {
	Code            string
	FailureReasons  []string
	KBV             []KBVOutcome
	ConfidenceLevel int
}

// Service evaluates submissions against the reference data.
type Service struct {
	data    *reference.Data
	bank    *kbv.Bank
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

// Option configures a Service.
type Option func(*Service)

// WithMetrics records outcomes on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithTracer overrides the tracer taken from the global provider.
func WithTracer(t trace.Tracer) Option {
	return func(s *Service) { s.tracer = t }
}

// New builds a Service over data. The bank is built from the same data.
func New(data *reference.Data, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		data:   data,
		bank:   kbv.NewBank(data),
		logger: logger,
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ValidateAll checks all four fields. Absent fields count as mismatches.
func (s *Service) ValidateAll(ctx context.Context, fields match.Fields) (*Outcome, error) {
	return s.check(ctx, match.AllFields, fields)
}

// ValidateDobPhone checks date of birth and phone.
func (s *Service) ValidateDobPhone(ctx context.Context, fields match.Fields) (*Outcome, error) {
	return s.check(ctx, match.DobPhone, fields)
}

// ValidatePostcodeNino checks postcode and National Insurance number.
func (s *Service) ValidatePostcodeNino(ctx context.Context, fields match.Fields) (*Outcome, error) {
	return s.check(ctx, match.PostcodeNino, fields)
}

// ValidateSubmitted checks only the fields that were sent. At least one of
// the four must be present.
func (s *Service) ValidateSubmitted(ctx context.Context, fields match.Fields) (*Outcome, error) {
	if !fields.Present(match.Submitted.Fields...) {
		return nil, dErrors.InvalidPayload("at least one identity field is required", match.Submitted.FieldNames()...)
	}
	return s.check(ctx, match.Submitted, fields)
}

func (s *Service) check(ctx context.Context, policy match.Policy, fields match.Fields) (*Outcome, error) {
	ctx, span := s.tracer.Start(ctx, "verification.check", trace.WithAttributes(
		attribute.String("policy", policy.Name),
	))
	defer span.End()

	res := match.Match(policy, fields, s.data.Subject)
	out := compose(policy, res)
	if res.Status == match.FullMatch {
		out.GUID = s.data.GUID
	}

	span.SetAttributes(
		attribute.String("status", res.Status.String()),
		attribute.Int("confidence", res.Confidence),
	)
	s.metrics.IncrementFieldCheck(policy.Name, res.Status.String())
	s.logger.InfoContext(ctx, "identity fields checked",
		"request_id", requestcontext.RequestID(ctx),
		"policy", policy.Name,
		"status", res.Status.String(),
		"failed_fields", res.FailedFields,
	)
	return out, nil
}

func compose(policy match.Policy, res match.Result) *Outcome {
	out := &Outcome{
		Match:         res.Status == match.FullMatch,
		Message:       message(res.Status),
		Status:        res.Status,
		Confidence:    res.Confidence,
		Checks:        res.Checks,
		MatchedFields: res.MatchedFields,
		FailedFields:  res.FailedFields,
	}
	if policy.HalfThreshold {
		matched, total := res.MatchCount, res.TotalFields
		out.MatchCount = &matched
		out.TotalFields = &total
	}
	return out
}

func message(status match.ErrorStatus) string {
	switch status {
	case match.FullMatch:
		return MessageSuccess
	case match.PartialMatch:
		return MessagePartial
	default:
		return MessageFailed
	}
}

// ValidateKBVAnswer grades a single KBV answer.
func (s *Service) ValidateKBVAnswer(ctx context.Context, benefitType, questionID string, answer any) (*kbv.AnswerResult, error) {
	ctx, span := s.tracer.Start(ctx, "verification.kbv_answer", trace.WithAttributes(
		attribute.String("benefit_type", benefitType),
		attribute.String("question_id", questionID),
	))
	defer span.End()

	res, err := s.bank.ValidateAnswer(benefitType, questionID, answer)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Bool("pass", res.Pass))
	s.metrics.IncrementKBVAnswer(string(mustBenefitType(benefitType)), res.Status.String())
	s.logger.InfoContext(ctx, "kbv answer graded",
		"request_id", requestcontext.RequestID(ctx),
		"benefit_type", benefitType,
		"question_id", questionID,
		"pass", res.Pass,
	)
	return res, nil
}

// ValidateKBVBatch grades a batch of KBV answers for one benefit type.
func (s *Service) ValidateKBVBatch(ctx context.Context, benefitType string, answers []kbv.Answer) (*kbv.BatchResult, error) {
	ctx, span := s.tracer.Start(ctx, "verification.kbv_batch", trace.WithAttributes(
		attribute.String("benefit_type", benefitType),
		attribute.Int("answers", len(answers)),
	))
	defer span.End()

	res, err := s.bank.ValidateBatch(benefitType, answers)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	for _, r := range res.Results {
		s.metrics.IncrementKBVAnswer(string(res.BenefitType), r.Status.String())
	}
	span.SetAttributes(
		attribute.String("status", res.Status.String()),
		attribute.Int("passed", res.PassedCount),
	)
	s.logger.InfoContext(ctx, "kbv batch graded",
		"request_id", requestcontext.RequestID(ctx),
		"benefit_type", string(res.BenefitType),
		"passed", res.PassedCount,
		"total", res.TotalCount,
		"status", res.Status.String(),
	)
	return res, nil
}

// FailureDetail returns the detail behind a dialogue failure code.
func (s *Service) FailureDetail(ctx context.Context, code string) (*FailureDetail, error) {
	if code != session.FailureCode {
		return nil, dErrors.New(dErrors.CodeNotFound, "unknown failure code")
	}
	s.logger.InfoContext(ctx, "failure detail served",
		"request_id", requestcontext.RequestID(ctx),
		"code", code,
	)
	return &FailureDetail{
		Code:           code,
		FailureReasons: []string{code},
		KBV: []KBVOutcome{
			{Question: "cis_childs_dob", Pass: false},
			{Question: "pip_components", Pass: false},
		},
		ConfidenceLevel: 0,
	}, nil
}

// mustBenefitType is only called after the bank accepted the benefit type.
func mustBenefitType(s string) reference.BenefitType {
	bt, _ := reference.ParseBenefitType(s)
	return bt
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
