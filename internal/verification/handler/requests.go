package handler

import (
	"encoding/json"
	"fmt"

	"tidv/internal/identity/kbv"
	"tidv/internal/identity/match"
	dErrors "tidv/pkg/domain-errors"
)

// FieldsRequest is the body of the /validate endpoints. Values are decoded
// loosely so numeric phone numbers are accepted as sent.
type FieldsRequest struct {
	DOB      any `json:"dob"`
	Postcode any `json:"postcode"`
	NINO     any `json:"nino"`
	Phone    any `json:"phone"`
}

// Fields converts the request into matcher input. Null and absent values are
// both treated as not submitted. required is echoed on rejection.
func (r *FieldsRequest) Fields(required ...string) (match.Fields, error) {
	var out match.Fields
	for _, f := range []struct {
		name string
		raw  any
		dst  **string
	}{
		{"dob", r.DOB, &out.DOB},
		{"postcode", r.Postcode, &out.Postcode},
		{"nino", r.NINO, &out.NINO},
		{"phone", r.Phone, &out.Phone},
	} {
		v, ok, err := scalar(f.raw)
		if err != nil {
			return match.Fields{}, dErrors.InvalidPayload(fmt.Sprintf("%s must be a string", f.name), required...)
		}
		if ok {
			*f.dst = &v
		}
	}
	return out, nil
}

func scalar(raw any) (string, bool, error) {
	switch v := raw.(type) {
	case nil:
		return "", false, nil
	case string:
		return v, true, nil
	case json.Number:
		return v.String(), true, nil
	default:
		return "", false, fmt.Errorf("unsupported value %T", raw)
	}
}

// KBVAnswerRequest is the body of POST /kbv/{benefitType}/answer.
type KBVAnswerRequest struct {
	QuestionID string `json:"questionId"`
	Answer     any    `json:"answer"`
}

// KBVBatchRequest is the body of POST /kbv/{benefitType}/batch.
type KBVBatchRequest struct {
	Answers []KBVAnswerRequest `json:"answers"`
}

// ToAnswers converts the request into bank input, preserving order.
func (r *KBVBatchRequest) ToAnswers() []kbv.Answer {
	out := make([]kbv.Answer, len(r.Answers))
	for i, a := range r.Answers {
		out[i] = kbv.Answer{QuestionID: a.QuestionID, Value: a.Answer}
	}
	return out
}
