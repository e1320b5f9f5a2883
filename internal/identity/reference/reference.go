// Package reference holds the ground-truth identity profile, KBV answers and
// payment schedule that every check compares against. A Data value is built
// once at startup and only read afterwards.
package reference

import (
	"strings"

	dErrors "tidv/pkg/domain-errors"
)

// Record is the demo subject's identity profile.
type Record struct {
	DOB      string `yaml:"dob"`
	Postcode string `yaml:"postcode"`
	NINO     string `yaml:"nino"`
	Phone    string `yaml:"phone"`
}

// BenefitType selects the KBV question set and payment schedule.
type BenefitType string

const (
	BenefitPIP BenefitType = "PIP"
	BenefitESA BenefitType = "ESA"
)

var validBenefitTypes = map[BenefitType]bool{
	BenefitPIP: true,
	BenefitESA: true,
}

// ParseBenefitType accepts a benefit type in any case.
func ParseBenefitType(s string) (BenefitType, error) {
	bt := BenefitType(strings.ToUpper(strings.TrimSpace(s)))
	if !validBenefitTypes[bt] {
		return "", dErrors.New(dErrors.CodeUnknownBenefitType, "unknown benefit type: "+s)
	}
	return bt, nil
}

func (b BenefitType) String() string {
	return string(b)
}

// QuestionKind selects how a KBV answer is normalized before comparison.
type QuestionKind string

const (
	KindScalar       QuestionKind = "scalar"
	KindDate         QuestionKind = "date"
	KindPaymentDay   QuestionKind = "payment_day"
	KindComponentSet QuestionKind = "component_set"
)

var validKinds = map[QuestionKind]bool{
	KindScalar:       true,
	KindDate:         true,
	KindPaymentDay:   true,
	KindComponentSet: true,
}

// Question is one KBV challenge and its expected answer. Scalar kinds carry a
// single element in Answer; component sets carry one element per component.
type Question struct {
	ID     string       `yaml:"id"`
	Kind   QuestionKind `yaml:"kind"`
	Answer []string     `yaml:"answer"`
}

// AnswerSet maps question ids to questions for one benefit type.
type AnswerSet map[string]Question

// Payment is the next scheduled payment for a benefit type.
type Payment struct {
	Date   string  `yaml:"date"`
	Amount float64 `yaml:"amount"`
}

// Data is the complete reference configuration.
type Data struct {
	Subject  Record
	GUID     string
	KBV      map[BenefitType]AnswerSet
	Payments map[BenefitType]Payment
}

// Payment looks up the payment schedule for a benefit type.
func (d *Data) Payment(bt BenefitType) (Payment, bool) {
	p, ok := d.Payments[bt]
	return p, ok
}

// Default returns the built-in reference data for the demo subject.
func Default() *Data {
	childDOB := Question{ID: "cis_childs_dob", Kind: KindDate, Answer: []string{"14-03-2005"}}
	bankLast4 := Question{ID: "bank_account_last4", Kind: KindScalar, Answer: []string{"4821"}}

	return &Data{
		Subject: Record{
			DOB:      "01-05-1975",
			Postcode: "N22 5QH",
			NINO:     "JC735092A",
			Phone:    "07983215336",
		},
		GUID: "GUID_DEMO_001",
		KBV: map[BenefitType]AnswerSet{
			BenefitPIP: {
				"pip_components": {
					ID:     "pip_components",
					Kind:   KindComponentSet,
					Answer: []string{"STANDARD_DAILY_LIVING", "ENHANCED_MOBILITY"},
				},
				"pip_payment_day":    {ID: "pip_payment_day", Kind: KindPaymentDay, Answer: []string{"WEDNESDAY"}},
				"pip_payment_amount": {ID: "pip_payment_amount", Kind: KindScalar, Answer: []string{"184.30"}},
				"cis_childs_dob":     childDOB,
				"bank_account_last4": bankLast4,
			},
			BenefitESA: {
				"esa_payment_day":      {ID: "esa_payment_day", Kind: KindPaymentDay, Answer: []string{"TUESDAY"}},
				"esa_payment_amount":   {ID: "esa_payment_amount", Kind: KindScalar, Answer: []string{"210.75"}},
				"esa_award_start_date": {ID: "esa_award_start_date", Kind: KindDate, Answer: []string{"02-09-2019"}},
				"cis_childs_dob":       childDOB,
				"bank_account_last4":   bankLast4,
			},
		},
		Payments: map[BenefitType]Payment{
			BenefitESA: {Date: "2025-10-15", Amount: 210.75},
			BenefitPIP: {Date: "2025-10-22", Amount: 184.30},
		},
	}
}
