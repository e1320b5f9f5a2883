package reference

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// fileData mirrors the YAML fixture layout:
//
//	subject:
//	  dob: 01-05-1975
//	  postcode: N22 5QH
//	guid: GUID_DEMO_001
//	kbv:
//	  pip:
//	    - id: pip_components
//	      kind: component_set
//	      answer: [STANDARD_DAILY_LIVING, ENHANCED_MOBILITY]
//	payments:
//	  esa: {date: 2025-10-15, amount: 210.75}
type fileData struct {
	Subject  Record                `yaml:"subject"`
	GUID     string                `yaml:"guid"`
	KBV      map[string][]Question `yaml:"kbv"`
	Payments map[string]Payment    `yaml:"payments"`
}

// Load reads a YAML fixture and overlays it on the defaults. Subject fields
// left empty keep their default; a benefit type listed under kbv replaces
// that type's whole question set.
func Load(path string) (*Data, error) {
	raw, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read reference data %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse overlays YAML reference data on the defaults.
func Parse(raw []byte) (*Data, error) {
	var fd fileData
	if err := yaml.Unmarshal(raw, &fd); err != nil {
		return nil, fmt.Errorf("parse reference data: %w", err)
	}

	d := Default()
	overlay(&d.Subject.DOB, fd.Subject.DOB)
	overlay(&d.Subject.Postcode, fd.Subject.Postcode)
	overlay(&d.Subject.NINO, fd.Subject.NINO)
	overlay(&d.Subject.Phone, fd.Subject.Phone)
	overlay(&d.GUID, fd.GUID)

	for key, questions := range fd.KBV {
		bt, err := ParseBenefitType(key)
		if err != nil {
			return nil, fmt.Errorf("kbv: %w", err)
		}
		set := make(AnswerSet, len(questions))
		for i, q := range questions {
			if err := validateQuestion(bt, q); err != nil {
				return nil, fmt.Errorf("kbv %s[%d]: %w", bt, i, err)
			}
			set[q.ID] = Question{ID: q.ID, Kind: q.Kind, Answer: append([]string(nil), q.Answer...)}
		}
		d.KBV[bt] = set
	}

	for key, p := range fd.Payments {
		bt, err := ParseBenefitType(key)
		if err != nil {
			return nil, fmt.Errorf("payments: %w", err)
		}
		d.Payments[bt] = p
	}

	return d, nil
}

func validateQuestion(bt BenefitType, q Question) error {
	if q.ID == "" {
		return fmt.Errorf("question id is required")
	}
	if !validKinds[q.Kind] {
		return fmt.Errorf("question %s: unknown kind %q", q.ID, q.Kind)
	}
	if q.Kind == KindComponentSet && bt != BenefitPIP {
		return fmt.Errorf("question %s: component sets are only defined for %s", q.ID, BenefitPIP)
	}
	if len(q.Answer) == 0 {
		return fmt.Errorf("question %s: answer is required", q.ID)
	}
	if q.Kind != KindComponentSet && len(q.Answer) != 1 {
		return fmt.Errorf("question %s: %s answers take a single value", q.ID, q.Kind)
	}
	return nil
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
