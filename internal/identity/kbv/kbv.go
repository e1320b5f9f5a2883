// Package kbv evaluates knowledge-based verification answers against the
// per-benefit question bank.
package kbv

import (
	"fmt"
	"strconv"

	"tidv/internal/identity/match"
	"tidv/internal/identity/normalize"
	"tidv/internal/identity/reference"
	dErrors "tidv/pkg/domain-errors"
)

// Answer is one submitted answer. Value is the decoded JSON value: a string,
// a number or a list of strings.
type Answer struct {
	QuestionID string
	Value      any
}

// AnswerResult is the graded outcome for a single answer. Answer holds the
// normalized value: a string, or a sorted []string for component sets.
type AnswerResult struct {
	QuestionID string
	Answer     any
	Pass       bool
	Status     match.ErrorStatus
	Confidence int
}

// BatchResult aggregates a set of answers for one benefit type.
type BatchResult struct {
	BenefitType reference.BenefitType
	Results     []AnswerResult
	PassedCount int
	TotalCount  int
	Status      match.ErrorStatus
	Confidence  int
}

// Bank holds the canonical expected answers, normalized once at construction.
type Bank struct {
	sets map[reference.BenefitType]map[string]expected
}

type expected struct {
	kind  reference.QuestionKind
	value string
	set   []string
}

// NewBank builds a bank from reference data.
func NewBank(data *reference.Data) *Bank {
	b := &Bank{sets: make(map[reference.BenefitType]map[string]expected, len(data.KBV))}
	for bt, questions := range data.KBV {
		set := make(map[string]expected, len(questions))
		for id, q := range questions {
			e := expected{kind: q.Kind}
			if q.Kind == reference.KindComponentSet {
				e.set = normalize.ComponentSet(q.Answer)
			} else if len(q.Answer) > 0 {
				e.value = normalizeScalar(q.Kind, q.Answer[0])
			}
			set[id] = e
		}
		b.sets[bt] = set
	}
	return b
}

// ValidateAnswer grades one answer. An unknown benefit type or a missing
// question id / answer is an error; a wrong or unknown-question answer is a
// failed result.
func (b *Bank) ValidateAnswer(benefitType, questionID string, raw any) (*AnswerResult, error) {
	bt, err := reference.ParseBenefitType(benefitType)
	if err != nil {
		return nil, err
	}
	if err := requireAnswer(questionID, raw); err != nil {
		return nil, err
	}
	res := b.evaluate(bt, questionID, raw)
	return &res, nil
}

// ValidateBatch grades every answer. Validation errors abort the whole batch
// and no partial results are returned.
func (b *Bank) ValidateBatch(benefitType string, answers []Answer) (*BatchResult, error) {
	bt, err := reference.ParseBenefitType(benefitType)
	if err != nil {
		return nil, err
	}
	if len(answers) == 0 {
		return nil, dErrors.InvalidPayload("at least one answer is required", "answers")
	}
	for i, a := range answers {
		if err := requireAnswer(a.QuestionID, a.Value); err != nil {
			de, _ := dErrors.As(err)
			return nil, dErrors.New(de.Code, fmt.Sprintf("answers[%d]: %s", i, de.Message)).WithFields(de.Fields...)
		}
	}

	out := &BatchResult{
		BenefitType: bt,
		Results:     make([]AnswerResult, 0, len(answers)),
		TotalCount:  len(answers),
	}
	for _, a := range answers {
		res := b.evaluate(bt, a.QuestionID, a.Value)
		if res.Pass {
			out.PassedCount++
		}
		out.Results = append(out.Results, res)
	}
	out.Status = match.Classify(out.PassedCount, out.TotalCount, false)
	out.Confidence = match.Confidence(out.Status, false)
	return out, nil
}

func requireAnswer(questionID string, raw any) error {
	if questionID == "" {
		return dErrors.New(dErrors.CodeMissingField, "questionId is required").WithFields("questionId")
	}
	if raw == nil {
		return dErrors.New(dErrors.CodeMissingField, "answer is required").WithFields("answer")
	}
	return nil
}

func (b *Bank) evaluate(bt reference.BenefitType, questionID string, raw any) AnswerResult {
	res := AnswerResult{QuestionID: questionID}

	exp, known := b.sets[bt][questionID]
	switch {
	case !known:
		res.Answer = normalize.Scalar(stringify(raw))
	case exp.kind == reference.KindComponentSet:
		got := normalize.ComponentSet(raw)
		res.Answer = got
		res.Pass = match.SetEqual(got, exp.set)
	default:
		got := normalizeScalar(exp.kind, stringify(raw))
		res.Answer = got
		res.Pass = got == exp.value
	}

	res.Status = match.NoMatch
	if res.Pass {
		res.Status = match.FullMatch
	}
	res.Confidence = match.Confidence(res.Status, false)
	return res
}

func normalizeScalar(kind reference.QuestionKind, raw string) string {
	switch kind {
	case reference.KindDate:
		return normalize.DOB(normalize.Scalar(raw))
	case reference.KindPaymentDay:
		return normalize.PaymentDay(raw)
	default:
		return normalize.Scalar(raw)
	}
}

// stringify renders a decoded JSON scalar. Lists and objects have no scalar
// form and become empty, which never matches.
func stringify(raw any) string {
	switch v := raw.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}
