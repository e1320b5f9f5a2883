// Package normalize turns raw identity input into the canonical form used for
// comparison. Every function is pure, never fails and is idempotent:
// normalizing an already-normalized value returns it unchanged.
package normalize

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/width"

	pstrings "tidv/pkg/platform/strings"
)

// DOBLayout is the canonical date-of-birth layout (DD-MM-YYYY).
const DOBLayout = "02-01-2006"

var (
	canonicalDOB = regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`)
	isoDatePart  = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})`)
	whitespace   = regexp.MustCompile(`\s+`)
)

// dobLayouts are tried in order for anything that is neither canonical nor
// ISO-prefixed. Slash dates are day-first, matching the DOB prompt.
var dobLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"02/01/2006",
	"2/1/2006",
	"02.01.2006",
	"2 January 2006",
	"2 Jan 2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"20060102",
	time.RFC1123Z,
	time.RFC1123,
}

// DOB canonicalizes a date of birth to DD-MM-YYYY.
//
// YYYY-MM-DD input is read as a real ISO date (year, month, day) and only the
// date prefix is used, so "1975-05-01T00:00:00Z" becomes "01-05-1975".
// Other parseable dates are converted to UTC first. Empty or unparsable input
// is returned as given.
func DOB(raw string) string {
	if raw == "" {
		return raw
	}
	s := strings.TrimSpace(width.Fold.String(raw))
	if canonicalDOB.MatchString(s) {
		return s
	}
	if m := isoDatePart.FindStringSubmatch(s); m != nil {
		if _, err := time.Parse("2006-01-02", m[0]); err == nil {
			return m[3] + "-" + m[2] + "-" + m[1]
		}
	}
	for _, layout := range dobLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Format(DOBLayout)
		}
	}
	return raw
}

// Postcode removes all whitespace and uppercases.
func Postcode(raw string) string {
	return compactUpper(raw)
}

// NINO removes all whitespace and uppercases.
func NINO(raw string) string {
	return compactUpper(raw)
}

// Phone trims surrounding whitespace; phone numbers compare exactly.
func Phone(raw string) string {
	return strings.TrimSpace(raw)
}

// PaymentDay trims and uppercases, e.g. "wednesday" -> "WEDNESDAY".
func PaymentDay(raw string) string {
	return upper(strings.TrimSpace(raw))
}

// Scalar trims a numeric or account-style answer.
func Scalar(raw string) string {
	return strings.TrimSpace(raw)
}

// Component canonicalizes one benefit component: trimmed, uppercased, and
// internal whitespace runs collapsed to a single underscore.
func Component(raw string) string {
	s := upper(strings.TrimSpace(raw))
	return whitespace.ReplaceAllString(s, "_")
}

// ComponentSet accepts a single component or a sequence of them and returns
// the canonical set as a sorted, de-duplicated slice. Blank entries are
// dropped. Non-string elements keep their printed form so they still count
// towards the set size and can never equal a reference component.
func ComponentSet(raw any) []string {
	var items []string
	switch v := raw.(type) {
	case nil:
		return nil
	case string:
		items = []string{v}
	case []string:
		items = v
	case []any:
		items = make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				items = append(items, s)
				continue
			}
			items = append(items, fmt.Sprintf("%T:%v", e, e))
		}
	default:
		return nil
	}

	out := pstrings.DedupeFunc(items, Component)
	sort.Strings(out)
	return out
}

func compactUpper(raw string) string {
	if raw == "" {
		return raw
	}
	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
	return upper(s)
}

// upper builds a fresh Caser per call; Casers are not safe for concurrent use.
func upper(s string) string {
	return cases.Upper(language.Und).String(s)
}
