package handler

import (
	"tidv/internal/identity/kbv"
	"tidv/internal/identity/match"
	"tidv/internal/verification"
)

// CheckResponse is the HTTP response for the /validate endpoints.
type CheckResponse struct {
	Match           bool            `json:"match"`
	Message         string          `json:"message"`
	ErrorStatus     int             `json:"errorStatus"`
	Status          string          `json:"status"`
	ConfidenceLevel int             `json:"confidenceLevel"`
	Checks          map[string]bool `json:"checks"`
	MatchedFields   []string        `json:"matchedFields"`
	FailedFields    []string        `json:"failedFields"`
	MatchCount      *int            `json:"matchCount,omitempty"`
	TotalFields     *int            `json:"totalFields,omitempty"`
	GUID            string          `json:"guid,omitempty"`
}

// FromOutcome converts a verification outcome to an HTTP response.
func FromOutcome(out *verification.Outcome) *CheckResponse {
	checks := make(map[string]bool, len(out.Checks))
	for f, ok := range out.Checks {
		checks[string(f)] = ok
	}
	return &CheckResponse{
		Match:           out.Match,
		Message:         out.Message,
		ErrorStatus:     int(out.Status),
		Status:          out.Status.String(),
		ConfidenceLevel: out.Confidence,
		Checks:          checks,
		MatchedFields:   fieldNames(out.MatchedFields),
		FailedFields:    fieldNames(out.FailedFields),
		MatchCount:      out.MatchCount,
		TotalFields:     out.TotalFields,
		GUID:            out.GUID,
	}
}

func fieldNames(fields []match.Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = string(f)
	}
	return out
}

// KBVAnswerResponse is one graded KBV answer.
type KBVAnswerResponse struct {
	QuestionID      string `json:"questionId"`
	Answer          any    `json:"answer"`
	Pass            bool   `json:"pass"`
	ErrorStatus     int    `json:"errorStatus"`
	Status          string `json:"status"`
	ConfidenceLevel int    `json:"confidenceLevel"`
}

// FromAnswerResult converts a graded answer to an HTTP response.
func FromAnswerResult(res *kbv.AnswerResult) *KBVAnswerResponse {
	return &KBVAnswerResponse{
		QuestionID:      res.QuestionID,
		Answer:          res.Answer,
		Pass:            res.Pass,
		ErrorStatus:     int(res.Status),
		Status:          res.Status.String(),
		ConfidenceLevel: res.Confidence,
	}
}

// KBVBatchResponse is the HTTP response for POST /kbv/{benefitType}/batch.
type KBVBatchResponse struct {
	BenefitType     string              `json:"benefitType"`
	Results         []KBVAnswerResponse `json:"results"`
	PassedCount     int                 `json:"passedCount"`
	TotalCount      int                 `json:"totalCount"`
	ErrorStatus     int                 `json:"errorStatus"`
	Status          string              `json:"status"`
	ConfidenceLevel int                 `json:"confidenceLevel"`
}

// FromBatchResult converts a graded batch to an HTTP response.
func FromBatchResult(res *kbv.BatchResult) *KBVBatchResponse {
	results := make([]KBVAnswerResponse, len(res.Results))
	for i := range res.Results {
		results[i] = *FromAnswerResult(&res.Results[i])
	}
	return &KBVBatchResponse{
		BenefitType:     string(res.BenefitType),
		Results:         results,
		PassedCount:     res.PassedCount,
		TotalCount:      res.TotalCount,
		ErrorStatus:     int(res.Status),
		Status:          res.Status.String(),
		ConfidenceLevel: res.Confidence,
	}
}

// FailureDetailResponse is the HTTP response for the failure endpoints.
type FailureDetailResponse struct {
	FailureReasons  []string              `json:"failureReasons"`
	KBV             []KBVQuestionResponse `json:"kbv"`
	ConfidenceLevel int                   `json:"confidenceLevel"`
}

// KBVQuestionResponse is one question's pass flag in a failure detail.
type KBVQuestionResponse struct {
	Question string `json:"question"`
	Pass     bool   `json:"pass"`
}

// FromFailureDetail converts a failure detail to an HTTP response.
func FromFailureDetail(d *verification.FailureDetail) *FailureDetailResponse {
	kbvs := make([]KBVQuestionResponse, len(d.KBV))
	for i, q := range d.KBV {
		kbvs[i] = KBVQuestionResponse{Question: q.Question, Pass: q.Pass}
	}
	return &FailureDetailResponse{
		FailureReasons:  d.FailureReasons,
		KBV:             kbvs,
		ConfidenceLevel: d.ConfidenceLevel,
	}
}
