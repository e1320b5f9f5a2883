// Package session models the multi-step authentication dialogue as an
// explicit state machine. The position in the dialogue travels in an opaque
// step token (authId); no server-side state is kept.
package session

import (
	"context"

	dErrors "tidv/pkg/domain-errors"
)

// State is a position in the authentication dialogue.
type State string

const (
	AwaitingPhone State = "AWAITING_PHONE"
	AwaitingDOB   State = "AWAITING_DOB"
	AwaitingKBV   State = "AWAITING_KBV"
	Completed     State = "COMPLETED"
	Failed        State = "FAILED"
)

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == Completed || s == Failed
}

// FailureCode is the only failure reason the dialogue produces.
const FailureCode = "NO_KBVS_CORRECT"

// Submission is whatever the caller posted for the current step. The default
// rule ignores it.
type Submission map[string]any

// Step is an active prompt the caller must answer.
type Step struct {
	AuthID string
	State  State
	Prompt string
}

// Completion is the hand-off produced once the last step is accepted.
type Completion struct {
	AuthorizationCode string
	State             string
}

// Failure is the terminal failure reference.
type Failure struct {
	Code       string
	FailureURL string
}

// Outcome is the result of one transition. Exactly one of Next, Completion
// and Failure is set.
type Outcome struct {
	From       State
	To         State
	Next       *Step
	Completion *Completion
	Failure    *Failure
}

// StepRule decides whether a submission for the given state is accepted.
type StepRule interface {
	Accept(ctx context.Context, state State, sub Submission) bool
}

// RuleFunc adapts a function to StepRule.
type RuleFunc func(ctx context.Context, state State, sub Submission) bool

func (f RuleFunc) Accept(ctx context.Context, state State, sub Submission) bool {
	return f(ctx, state, sub)
}

// AlwaysAccept advances on any submission.
var AlwaysAccept StepRule = RuleFunc(func(context.Context, State, Submission) bool { return true })

// Machine drives the dialogue. Implementations may keep state server-side as
// long as the transition contract is unchanged.
type Machine interface {
	Start(ctx context.Context) Step
	Advance(ctx context.Context, authID string, sub Submission) Outcome
}

// Transition is one row of the transition table.
type Transition struct {
	Next State
	Rule StepRule
}

type stepDef struct {
	token  string
	prompt string
}

var steps = map[State]stepDef{
	AwaitingPhone: {token: "auth_001", prompt: "Enter CLI telephone number"},
	AwaitingDOB:   {token: "auth_002", prompt: "Enter DOB dd/mm/yyyy"},
	AwaitingKBV:   {token: "auth_003", prompt: "KBV: pip_components"},
}

var tokens = map[string]State{
	"auth_001": AwaitingPhone,
	"auth_002": AwaitingDOB,
	"auth_003": AwaitingKBV,
}

// DefaultTransitions is the linear simulator table: every step advances.
func DefaultTransitions() map[State]Transition {
	return map[State]Transition{
		AwaitingPhone: {Next: AwaitingDOB, Rule: AlwaysAccept},
		AwaitingDOB:   {Next: AwaitingKBV, Rule: AlwaysAccept},
		AwaitingKBV:   {Next: Completed, Rule: AlwaysAccept},
	}
}

// Defaults for the completion hand-off.
const (
	DefaultAuthorizationCode = "code_demo_001"
	DefaultOAuthState        = "abc123"
)

// TokenMachine is the stateless Machine: the step token alone encodes the
// position.
type TokenMachine struct {
	table      map[State]Transition
	completion Completion
}

// Option configures a TokenMachine.
type Option func(*TokenMachine)

// WithRule replaces the acceptance rule for one state.
func WithRule(state State, rule StepRule) Option {
	return func(m *TokenMachine) {
		if t, ok := m.table[state]; ok {
			t.Rule = rule
			m.table[state] = t
		}
	}
}

// WithCompletion overrides the authorization code and OAuth state handed out
// on completion.
func WithCompletion(code, oauthState string) Option {
	return func(m *TokenMachine) {
		m.completion = Completion{AuthorizationCode: code, State: oauthState}
	}
}

// NewTokenMachine builds a machine over DefaultTransitions.
func NewTokenMachine(opts ...Option) *TokenMachine {
	m := &TokenMachine{
		table:      DefaultTransitions(),
		completion: Completion{AuthorizationCode: DefaultAuthorizationCode, State: DefaultOAuthState},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start returns the first prompt.
func (m *TokenMachine) Start(_ context.Context) Step {
	return stepFor(AwaitingPhone)
}

// Advance applies the submission to the step identified by authID. Unknown
// tokens and rejected submissions end in FAILED; From is empty when the token
// was not recognized.
func (m *TokenMachine) Advance(ctx context.Context, authID string, sub Submission) Outcome {
	from, err := ParseToken(authID)
	if err != nil {
		return failed("")
	}

	t, ok := m.table[from]
	if !ok || (t.Rule != nil && !t.Rule.Accept(ctx, from, sub)) {
		return failed(from)
	}

	out := Outcome{From: from, To: t.Next}
	switch {
	case t.Next == Completed:
		c := m.completion
		out.Completion = &c
	case t.Next == Failed:
		out.Failure = failure()
	default:
		next := stepFor(t.Next)
		out.Next = &next
	}
	return out
}

// ParseToken maps a step token to its state.
func ParseToken(authID string) (State, error) {
	if s, ok := tokens[authID]; ok {
		return s, nil
	}
	return "", dErrors.New(dErrors.CodeUnrecognizedStep, "unrecognized step token")
}

func stepFor(s State) Step {
	d := steps[s]
	return Step{AuthID: d.token, State: s, Prompt: d.prompt}
}

func failed(from State) Outcome {
	return Outcome{From: from, To: Failed, Failure: failure()}
}

func failure() *Failure {
	return &Failure{Code: FailureCode, FailureURL: "/failures/" + FailureCode}
}
