// Package match compares submitted identity fields with the reference record
// and grades the outcome.
package match

import (
	"tidv/internal/identity/normalize"
	"tidv/internal/identity/reference"
)

// ErrorStatus is the three-way aggregate classification of a check.
type ErrorStatus int

const (
	FullMatch    ErrorStatus = 0
	PartialMatch ErrorStatus = 1
	NoMatch      ErrorStatus = 2
)

func (s ErrorStatus) String() string {
	switch s {
	case FullMatch:
		return "FULL_MATCH"
	case PartialMatch:
		return "PARTIAL_MATCH"
	default:
		return "NO_MATCH"
	}
}

// Field names a comparable identity field. The value doubles as the JSON key.
type Field string

const (
	FieldDOB      Field = "dob"
	FieldPostcode Field = "postcode"
	FieldNINO     Field = "nino"
	FieldPhone    Field = "phone"
)

// Fields holds raw submitted values; nil means the caller did not send it.
type Fields struct {
	DOB      *string
	Postcode *string
	NINO     *string
	Phone    *string
}

func (f Fields) get(field Field) *string {
	switch field {
	case FieldDOB:
		return f.DOB
	case FieldPostcode:
		return f.Postcode
	case FieldNINO:
		return f.NINO
	case FieldPhone:
		return f.Phone
	}
	return nil
}

// Present reports whether any of the given fields was submitted.
func (f Fields) Present(fields ...Field) bool {
	for _, field := range fields {
		if f.get(field) != nil {
			return true
		}
	}
	return false
}

// Policy describes which fields a check covers and how it grades them.
type Policy struct {
	Name   string
	Fields []Field
	// AbsentIsMismatch counts a missing field as a failed comparison instead
	// of leaving it out of the check.
	AbsentIsMismatch bool
	// HalfThreshold raises the partial boundary from "any field matched" to
	// "at least half matched" and lets a partial result carry confidence.
	HalfThreshold bool
}

// FieldNames returns the policy's fields as strings, in order.
func (p Policy) FieldNames() []string {
	out := make([]string, len(p.Fields))
	for i, f := range p.Fields {
		out[i] = string(f)
	}
	return out
}

var (
	// AllFields requires all four fields and grades on the half threshold.
	AllFields = Policy{
		Name:             "all_fields",
		Fields:           []Field{FieldDOB, FieldPostcode, FieldNINO, FieldPhone},
		AbsentIsMismatch: true,
		HalfThreshold:    true,
	}
	DobPhone = Policy{
		Name:             "dob_phone",
		Fields:           []Field{FieldDOB, FieldPhone},
		AbsentIsMismatch: true,
	}
	PostcodeNino = Policy{
		Name:             "postcode_nino",
		Fields:           []Field{FieldPostcode, FieldNINO},
		AbsentIsMismatch: true,
	}
	// Submitted checks whichever of the four fields were sent.
	Submitted = Policy{
		Name:   "submitted",
		Fields: []Field{FieldDOB, FieldPostcode, FieldNINO, FieldPhone},
	}
)

// Result is the per-field and aggregate outcome of a check.
type Result struct {
	Policy        string
	Checks        map[Field]bool
	MatchedFields []Field
	FailedFields  []Field
	MatchCount    int
	TotalFields   int
	Status        ErrorStatus
	Confidence    int
}

// Match normalizes the submitted fields and compares them with ref under the
// given policy.
func Match(policy Policy, submitted Fields, ref reference.Record) Result {
	res := Result{
		Policy:        policy.Name,
		Checks:        make(map[Field]bool, len(policy.Fields)),
		MatchedFields: []Field{},
		FailedFields:  []Field{},
	}

	for _, field := range policy.Fields {
		raw := submitted.get(field)
		if raw == nil && !policy.AbsentIsMismatch {
			continue
		}
		ok := raw != nil && Canonical(field, *raw) == Canonical(field, refValue(field, ref))
		res.Checks[field] = ok
		res.TotalFields++
		if ok {
			res.MatchCount++
			res.MatchedFields = append(res.MatchedFields, field)
		} else {
			res.FailedFields = append(res.FailedFields, field)
		}
	}

	res.Status = Classify(res.MatchCount, res.TotalFields, policy.HalfThreshold)
	res.Confidence = Confidence(res.Status, policy.HalfThreshold)
	return res
}

// Canonical applies the field's normalizer.
func Canonical(field Field, raw string) string {
	switch field {
	case FieldDOB:
		return normalize.DOB(raw)
	case FieldPostcode:
		return normalize.Postcode(raw)
	case FieldNINO:
		return normalize.NINO(raw)
	case FieldPhone:
		return normalize.Phone(raw)
	}
	return raw
}

func refValue(field Field, ref reference.Record) string {
	switch field {
	case FieldDOB:
		return ref.DOB
	case FieldPostcode:
		return ref.Postcode
	case FieldNINO:
		return ref.NINO
	case FieldPhone:
		return ref.Phone
	}
	return ""
}

// Classify grades matched out of total. With half set, PARTIAL needs at least
// half of the fields; otherwise any single match is PARTIAL. A check with no
// fields is NO_MATCH.
func Classify(matched, total int, half bool) ErrorStatus {
	switch {
	case total == 0 || matched == 0:
		return NoMatch
	case matched >= total:
		return FullMatch
	case half && matched*2 < total:
		return NoMatch
	default:
		return PartialMatch
	}
}

// Confidence maps a status to a confidence level. PARTIAL carries confidence
// only under the half-threshold aggregate.
func Confidence(status ErrorStatus, half bool) int {
	switch status {
	case FullMatch:
		return 3
	case PartialMatch:
		if half {
			return 2
		}
		return 0
	default:
		return 0
	}
}

// SetEqual reports whether submitted holds exactly the reference elements,
// ignoring order.
func SetEqual(submitted, ref []string) bool {
	if len(submitted) != len(ref) {
		return false
	}
	have := make(map[string]struct{}, len(submitted))
	for _, s := range submitted {
		have[s] = struct{}{}
	}
	for _, r := range ref {
		if _, ok := have[r]; !ok {
			return false
		}
	}
	return true
}
