package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "tidv/pkg/domain-errors"
	"tidv/pkg/testutil"
)

func TestTokenMachineWalk(t *testing.T) {
	ctx := context.Background()
	m := NewTokenMachine()

	testutil.Given(t, "a fresh dialogue", func(t *testing.T) {
		first := m.Start(ctx)
		assert.Equal(t, "auth_001", first.AuthID)
		assert.Equal(t, AwaitingPhone, first.State)
		assert.Equal(t, "Enter CLI telephone number", first.Prompt)

		testutil.When(t, "each step is answered in turn", func(t *testing.T) {
			out := m.Advance(ctx, first.AuthID, Submission{"phone": "07983215336"})
			require.NotNil(t, out.Next)
			assert.Equal(t, AwaitingPhone, out.From)
			assert.Equal(t, AwaitingDOB, out.To)
			assert.Equal(t, "auth_002", out.Next.AuthID)
			assert.Equal(t, "Enter DOB dd/mm/yyyy", out.Next.Prompt)

			out = m.Advance(ctx, out.Next.AuthID, nil)
			require.NotNil(t, out.Next)
			assert.Equal(t, AwaitingKBV, out.To)
			assert.Equal(t, "auth_003", out.Next.AuthID)
			assert.Equal(t, "KBV: pip_components", out.Next.Prompt)

			out = m.Advance(ctx, out.Next.AuthID, nil)

			testutil.Then(t, "the dialogue completes with an authorization code", func(t *testing.T) {
				assert.Equal(t, Completed, out.To)
				assert.True(t, out.To.Terminal())
				assert.Nil(t, out.Next)
				assert.Nil(t, out.Failure)
				require.NotNil(t, out.Completion)
				assert.Equal(t, "code_demo_001", out.Completion.AuthorizationCode)
				assert.Equal(t, "abc123", out.Completion.State)
			})
		})
	})
}

func TestTokenMachineFailure(t *testing.T) {
	ctx := context.Background()
	m := NewTokenMachine()

	for _, token := range []string{"", "auth_004", "AUTH_001", "code_demo_001"} {
		t.Run("unrecognized token "+token, func(t *testing.T) {
			out := m.Advance(ctx, token, nil)
			assert.Equal(t, Failed, out.To)
			assert.Equal(t, State(""), out.From)
			assert.Nil(t, out.Next)
			assert.Nil(t, out.Completion)
			require.NotNil(t, out.Failure)
			assert.Equal(t, "NO_KBVS_CORRECT", out.Failure.Code)
			assert.Equal(t, "/failures/NO_KBVS_CORRECT", out.Failure.FailureURL)
		})
	}
}

func TestTokenMachineRules(t *testing.T) {
	ctx := context.Background()
	reject := RuleFunc(func(_ context.Context, _ State, sub Submission) bool {
		return sub["dob"] == "01-05-1975"
	})
	m := NewTokenMachine(WithRule(AwaitingDOB, reject), WithCompletion("code_x", "state_y"))

	t.Run("rejected submission fails from its state", func(t *testing.T) {
		out := m.Advance(ctx, "auth_002", Submission{"dob": "02-02-1980"})
		assert.Equal(t, AwaitingDOB, out.From)
		assert.Equal(t, Failed, out.To)
		require.NotNil(t, out.Failure)
		assert.Equal(t, FailureCode, out.Failure.Code)
	})

	t.Run("accepted submission advances", func(t *testing.T) {
		out := m.Advance(ctx, "auth_002", Submission{"dob": "01-05-1975"})
		assert.Equal(t, AwaitingKBV, out.To)
	})

	t.Run("completion override", func(t *testing.T) {
		out := m.Advance(ctx, "auth_003", nil)
		require.NotNil(t, out.Completion)
		assert.Equal(t, Completion{AuthorizationCode: "code_x", State: "state_y"}, *out.Completion)
	})

	t.Run("rule for unknown state is ignored", func(t *testing.T) {
		m := NewTokenMachine(WithRule(Completed, reject))
		out := m.Advance(ctx, "auth_003", nil)
		assert.Equal(t, Completed, out.To)
	})
}

func TestParseToken(t *testing.T) {
	for state := range DefaultTransitions() {
		got, err := ParseToken(stepFor(state).AuthID)
		require.NoError(t, err)
		assert.Equal(t, state, got)
	}

	_, err := ParseToken("auth_999")
	assert.True(t, dErrors.Is(err, dErrors.CodeUnrecognizedStep))

	_, err = ParseToken("")
	assert.Error(t, err)
}
