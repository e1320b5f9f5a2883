package handler

import "tidv/internal/identity/session"

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
	Base    string `json:"base,omitempty"`
}

// StepResponse carries the next prompt of the dialogue in callback form.
type StepResponse struct {
	AuthID    string     `json:"authId"`
	Callbacks []Callback `json:"callbacks"`
}

type Callback struct {
	Output []NameValue `json:"output"`
}

type NameValue struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// FromStep converts a dialogue step to its wire form.
func FromStep(step session.Step) StepResponse {
	return StepResponse{
		AuthID: step.AuthID,
		Callbacks: []Callback{{
			Output: []NameValue{{Name: "prompt", Value: step.Prompt}},
		}},
	}
}

// FailureResponse is returned when the dialogue ends in failure.
type FailureResponse struct {
	Message string        `json:"message"`
	Detail  FailureDetail `json:"detail"`
	Code    string        `json:"code"`
}

type FailureDetail struct {
	FailureURL string `json:"failureUrl"`
}

// FromFailure converts a dialogue failure to its wire form.
func FromFailure(f *session.Failure) FailureResponse {
	if f == nil {
		f = &session.Failure{Code: session.FailureCode, FailureURL: "/failures/" + session.FailureCode}
	}
	return FailureResponse{
		Message: "Authentication failed",
		Detail:  FailureDetail{FailureURL: f.FailureURL},
		Code:    f.Code,
	}
}

type CodeResponse struct {
	Code string `json:"code"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	IDToken     string `json:"id_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type IntrospectResponse struct {
	AuthLevel int    `json:"auth_level"`
	GUID      string `json:"guid"`
	Active    bool   `json:"active"`
}

type PaymentResponse struct {
	PaymentDate   string  `json:"paymentDate"`
	PaymentAmount float64 `json:"paymentAmount"`
}
