package reference

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "tidv/pkg/domain-errors"
)

func TestParseBenefitType(t *testing.T) {
	for _, in := range []string{"PIP", "pip", " Esa "} {
		_, err := ParseBenefitType(in)
		assert.NoError(t, err, in)
	}

	_, err := ParseBenefitType("JSA")
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeUnknownBenefitType))
}

func TestDefaultComponentSetsArePIPOnly(t *testing.T) {
	d := Default()
	for bt, set := range d.KBV {
		for id, q := range set {
			assert.Equal(t, id, q.ID)
			if q.Kind == KindComponentSet {
				assert.Equal(t, BenefitPIP, bt, "question %s", id)
			}
		}
	}
}

func TestDefaultReturnsIndependentCopies(t *testing.T) {
	a := Default()
	a.Subject.DOB = "changed"
	a.KBV[BenefitPIP]["pip_payment_day"] = Question{}

	b := Default()
	assert.Equal(t, "01-05-1975", b.Subject.DOB)
	assert.Equal(t, KindPaymentDay, b.KBV[BenefitPIP]["pip_payment_day"].Kind)
}

func TestParse(t *testing.T) {
	t.Run("overlays subject and replaces kbv set", func(t *testing.T) {
		d, err := Parse([]byte(`
subject:
  postcode: SW1A 1AA
guid: GUID_TEST
kbv:
  esa:
    - id: esa_payment_day
      kind: payment_day
      answer: [friday]
payments:
  pip: {date: "2026-01-07", amount: 99.5}
`))
		require.NoError(t, err)
		assert.Equal(t, "SW1A 1AA", d.Subject.Postcode)
		assert.Equal(t, "01-05-1975", d.Subject.DOB)
		assert.Equal(t, "GUID_TEST", d.GUID)
		assert.Len(t, d.KBV[BenefitESA], 1)
		assert.Len(t, d.KBV[BenefitPIP], 5)

		p, ok := d.Payment(BenefitPIP)
		require.True(t, ok)
		assert.Equal(t, 99.5, p.Amount)
	})

	t.Run("rejects unknown benefit type", func(t *testing.T) {
		_, err := Parse([]byte("kbv:\n  jsa: []\n"))
		require.Error(t, err)
		assert.True(t, dErrors.Is(err, dErrors.CodeUnknownBenefitType))
	})

	t.Run("rejects component set outside PIP", func(t *testing.T) {
		_, err := Parse([]byte(`
kbv:
  esa:
    - id: components
      kind: component_set
      answer: [a]
`))
		assert.ErrorContains(t, err, "only defined for PIP")
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		_, err := Parse([]byte(`
kbv:
  pip:
    - id: q
      kind: colour
      answer: [red]
`))
		assert.ErrorContains(t, err, "unknown kind")
	})

	t.Run("rejects multi value scalar", func(t *testing.T) {
		_, err := Parse([]byte(`
kbv:
  pip:
    - id: q
      kind: scalar
      answer: ["1", "2"]
`))
		assert.ErrorContains(t, err, "single value")
	})
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reference.yaml")
	require.NoError(t, os.WriteFile(path, []byte("subject:\n  phone: \"07000000000\"\n"), 0o600))

	d, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "07000000000", d.Subject.Phone)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
