package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"tidv/internal/identity/kbv"
	"tidv/internal/identity/match"
	"tidv/internal/verification"
	"tidv/internal/verification/handler/mocks"
	dErrors "tidv/pkg/domain-errors"
	"tidv/pkg/testutil"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service
type VerificationHandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	router  chi.Router
}

func TestVerificationHandlerSuite(t *testing.T) {
	suite.Run(t, new(VerificationHandlerSuite))
}

func (s *VerificationHandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.service = mocks.NewMockService(ctrl)
	s.router = chi.NewRouter()
	New(s.service, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(s.router)
}

func str(v string) *string { return &v }

func intPtr(v int) *int { return &v }

func (s *VerificationHandlerSuite) TestValidateAll() {
	s.Run("full match", func() {
		s.service.EXPECT().ValidateAll(gomock.Any(), match.Fields{
			DOB:      str("1975-05-01"),
			Postcode: str("N22 5QH"),
			NINO:     str("JC735092A"),
			Phone:    str("07983215336"),
		}).Return(&verification.Outcome{
			Match:         true,
			Message:       verification.MessageSuccess,
			Status:        match.FullMatch,
			Confidence:    3,
			Checks:        map[match.Field]bool{match.FieldDOB: true},
			MatchedFields: []match.Field{match.FieldDOB, match.FieldPostcode, match.FieldNINO, match.FieldPhone},
			FailedFields:  []match.Field{},
			MatchCount:    intPtr(4),
			TotalFields:   intPtr(4),
			GUID:          "GUID_DEMO_001",
		}, nil)

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/validate", map[string]string{
			"dob": "1975-05-01", "postcode": "N22 5QH", "nino": "JC735092A", "phone": "07983215336",
		})
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		resp := testutil.UnmarshalResponse[map[string]any](s.T(), rr)
		s.Equal(true, (*resp)["match"])
		s.Equal("Validation successful", (*resp)["message"])
		s.Equal(float64(0), (*resp)["errorStatus"])
		s.Equal("FULL_MATCH", (*resp)["status"])
		s.Equal(float64(3), (*resp)["confidenceLevel"])
		s.Equal(float64(4), (*resp)["matchCount"])
		s.Equal("GUID_DEMO_001", (*resp)["guid"])
	})

	s.Run("no match is still 200", func() {
		s.service.EXPECT().ValidateAll(gomock.Any(), gomock.Any()).Return(&verification.Outcome{
			Message:       verification.MessageFailed,
			Status:        match.NoMatch,
			MatchedFields: []match.Field{},
			FailedFields:  []match.Field{match.FieldDOB},
		}, nil)

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/validate", map[string]string{"dob": "02-02-1990"})
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		resp := testutil.UnmarshalResponse[CheckResponse](s.T(), rr)
		s.False(resp.Match)
		s.Equal(2, resp.ErrorStatus)
		s.Equal([]string{"dob"}, resp.FailedFields)
		s.Empty(resp.GUID)
	})

	s.Run("text plain body and numeric phone are accepted", func() {
		s.service.EXPECT().ValidateAll(gomock.Any(), match.Fields{Phone: str("7983215336")}).
			Return(&verification.Outcome{Status: match.NoMatch}, nil)

		req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/validate", "text/plain", `{"phone":7983215336}`)
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatus(s.T(), rr, http.StatusOK)
	})

	s.Run("double encoded body is accepted", func() {
		s.service.EXPECT().ValidateAll(gomock.Any(), match.Fields{NINO: str("JC735092A")}).
			Return(&verification.Outcome{Status: match.NoMatch}, nil)

		encoded, err := json.Marshal(`{"nino":"JC735092A"}`)
		s.Require().NoError(err)
		req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/validate", "application/json", string(encoded))
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatus(s.T(), rr, http.StatusOK)
	})

	s.Run("malformed json is rejected before the service", func() {
		req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/validate", "application/json", `{"dob":`)
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "invalid_payload")
		resp := testutil.UnmarshalResponse[map[string]any](s.T(), rr)
		s.Equal("Invalid JSON body", (*resp)["error_description"])
	})

	s.Run("non-object body names required fields", func() {
		req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/validate", "application/json", `["dob"]`)
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "invalid_payload")
		resp := testutil.UnmarshalResponse[map[string]any](s.T(), rr)
		s.Equal([]any{"dob", "postcode", "nino", "phone"}, (*resp)["required"])
	})

	s.Run("object field value is rejected", func() {
		req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/validate", "application/json", `{"dob":{"day":1}}`)
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "invalid_payload")
	})
}

func (s *VerificationHandlerSuite) TestTwoFieldRoutes() {
	s.service.EXPECT().ValidateDobPhone(gomock.Any(), match.Fields{DOB: str("01-05-1975"), Phone: str("07983215336")}).
		Return(&verification.Outcome{Match: true, Status: match.FullMatch, Confidence: 3}, nil)
	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/validate/dob-phone",
		map[string]string{"dob": "01-05-1975", "phone": "07983215336"}))
	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	resp := testutil.UnmarshalResponse[map[string]any](s.T(), rr)
	_, hasCount := (*resp)["matchCount"]
	s.False(hasCount)

	s.service.EXPECT().ValidatePostcodeNino(gomock.Any(), match.Fields{Postcode: str("N22 5QH")}).
		Return(&verification.Outcome{Status: match.PartialMatch}, nil)
	rr = testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/validate/postcode-nino",
		map[string]string{"postcode": "N22 5QH"}))
	testutil.AssertStatus(s.T(), rr, http.StatusOK)
}

func (s *VerificationHandlerSuite) TestValidateSubmittedWithoutFields() {
	s.service.EXPECT().ValidateSubmitted(gomock.Any(), match.Fields{}).
		Return(nil, dErrors.InvalidPayload("at least one identity field is required", "dob", "postcode", "nino", "phone"))

	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/validate/submitted", map[string]string{}))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "invalid_payload")
}

func (s *VerificationHandlerSuite) TestKBVAnswer() {
	s.Run("graded answer", func() {
		s.service.EXPECT().ValidateKBVAnswer(gomock.Any(), "pip", "pip_payment_amount", json.Number("184.30")).
			Return(&kbv.AnswerResult{QuestionID: "pip_payment_amount", Answer: "184.30", Pass: true, Status: match.FullMatch, Confidence: 3}, nil)

		req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/kbv/pip/answer", "application/json",
			`{"questionId":"pip_payment_amount","answer":184.30}`)
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		resp := testutil.UnmarshalResponse[KBVAnswerResponse](s.T(), rr)
		s.True(resp.Pass)
		s.Equal("FULL_MATCH", resp.Status)
		s.Equal(3, resp.ConfidenceLevel)
	})

	s.Run("unknown benefit type", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/kbv/DLA/answer", map[string]string{"questionId": "x", "answer": "y"})
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "unknown_benefit_type")
	})

	s.Run("unknown benefit type wins over a malformed body", func() {
		req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/kbv/JSA/answer", "application/json", `{"questionId":`)
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "unknown_benefit_type")
	})
}

func (s *VerificationHandlerSuite) TestKBVBatchUnknownBenefitType() {
	for _, body := range []string{"", "not json", `{"answers":[]}`} {
		req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/kbv/JSA/batch", "application/json", body)
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "unknown_benefit_type")
	}
}

func (s *VerificationHandlerSuite) TestKBVBatch() {
	s.service.EXPECT().ValidateKBVBatch(gomock.Any(), "PIP", []kbv.Answer{
		{QuestionID: "pip_components", Value: []any{"ENHANCED_MOBILITY", "STANDARD_DAILY_LIVING"}},
		{QuestionID: "pip_payment_day", Value: "monday"},
	}).Return(&kbv.BatchResult{
		BenefitType: "PIP",
		Results: []kbv.AnswerResult{
			{QuestionID: "pip_components", Pass: true, Status: match.FullMatch, Confidence: 3},
			{QuestionID: "pip_payment_day", Status: match.NoMatch},
		},
		PassedCount: 1,
		TotalCount:  2,
		Status:      match.PartialMatch,
	}, nil)

	req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/kbv/PIP/batch", "application/json",
		`{"answers":[{"questionId":"pip_components","answer":["ENHANCED_MOBILITY","STANDARD_DAILY_LIVING"]},{"questionId":"pip_payment_day","answer":"monday"}]}`)
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	resp := testutil.UnmarshalResponse[KBVBatchResponse](s.T(), rr)
	s.Equal("PIP", resp.BenefitType)
	s.Equal(1, resp.PassedCount)
	s.Equal(2, resp.TotalCount)
	s.Equal("PARTIAL_MATCH", resp.Status)
	s.Len(resp.Results, 2)
}

func (s *VerificationHandlerSuite) TestFailureEndpoints() {
	detail := &verification.FailureDetail{
		Code:           "NO_KBVS_CORRECT",
		FailureReasons: []string{"NO_KBVS_CORRECT"},
		KBV:            []verification.KBVOutcome{{Question: "cis_childs_dob"}, {Question: "pip_components"}},
	}
	s.service.EXPECT().FailureDetail(gomock.Any(), "NO_KBVS_CORRECT").Return(detail, nil).Times(2)

	for _, path := range []string{"/idv-failure", "/failures/NO_KBVS_CORRECT"} {
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodGet, path, nil))
		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		resp := testutil.UnmarshalResponse[FailureDetailResponse](s.T(), rr)
		s.Equal([]string{"NO_KBVS_CORRECT"}, resp.FailureReasons)
		s.Len(resp.KBV, 2)
		s.Zero(resp.ConfidenceLevel)
	}

	s.service.EXPECT().FailureDetail(gomock.Any(), "OTHER").Return(nil, dErrors.New(dErrors.CodeNotFound, "unknown failure code"))
	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodGet, "/failures/OTHER", nil))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
}
