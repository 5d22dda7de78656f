package service

import (
	"testing"
	"time"

	"github.com/pathways-hq/pathways/internal/api/dto"
	"github.com/pathways-hq/pathways/internal/domain/candidate"
	"github.com/pathways-hq/pathways/internal/domain/departure"
	"github.com/pathways-hq/pathways/internal/domain/remittance"
	ierr "github.com/pathways-hq/pathways/internal/errors"
	"github.com/pathways-hq/pathways/internal/testutil"
	"github.com/pathways-hq/pathways/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type RemittanceServiceSuite struct {
	testutil.BaseServiceTestSuite
	service RemittanceService
}

func TestRemittanceService(t *testing.T) {
	suite.Run(t, new(RemittanceServiceSuite))
}

func (s *RemittanceServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	stores := s.GetStores()
	s.service = NewRemittanceService(ServiceParams{
		Logger:              s.GetLogger(),
		Config:              s.GetConfig(),
		CandidateRepo:       stores.Candidate,
		DepartureRepo:       stores.Departure,
		RemittanceRepo:      stores.Remittance,
		RemittanceAlertRepo: stores.RemittanceAlert,
		ActivityPublisher:   s.GetPublisher(),
	})
}

// seedDepartedCandidate creates a departed candidate and the matching
// departure record.
func (s *RemittanceServiceSuite) seedDepartedCandidate(departed time.Time) *candidate.Candidate {
	ctx := s.GetContext()
	c := &candidate.Candidate{
		ID:              types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CANDIDATE),
		FullName:        "Bilal Hussain",
		CNIC:            "35202-7654321-1",
		Phone:           "+923007654321",
		Gender:          "male",
		District:        "Faisalabad",
		CandidateStatus: types.CandidateStatusDeparted,
		BaseModel:       types.GetDefaultBaseModel(ctx),
	}
	s.Require().NoError(s.GetStores().Candidate.Create(ctx, c))

	dep := &departure.Departure{
		ID:                 types.GenerateUUIDWithPrefix(types.UUID_PREFIX_DEPARTURE),
		CandidateID:        c.ID,
		DepartureDate:      departed,
		DestinationCountry: "Saudi Arabia",
		ComplianceStatus:   types.ComplianceStatusPending,
		BaseModel:          types.GetDefaultBaseModel(ctx),
	}
	s.Require().NoError(s.GetStores().Departure.Create(ctx, dep))
	return c
}

func (s *RemittanceServiceSuite) seedRemittance(candidateID string, amount int64, sentAt time.Time, withProof bool) *remittance.Remittance {
	r := &remittance.Remittance{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_REMITTANCE),
		CandidateID: candidateID,
		Amount:      decimal.NewFromInt(amount),
		Currency:    "PKR",
		SentAt:      sentAt,
		Channel:     "bank",
		BaseModel:   types.GetDefaultBaseModel(s.GetContext()),
	}
	if withProof {
		r.ProofDocumentID = lo.ToPtr("doc_proof")
	}
	s.Require().NoError(s.GetStores().Remittance.Create(s.GetContext(), r))
	return r
}

func (s *RemittanceServiceSuite) TestFirstRemittanceDelayAlertIsIdempotent() {
	now := time.Now().UTC()
	// Departed 70 days ago with no remittances; the 60 day first
	// remittance window has passed
	c := s.seedDepartedCandidate(now.AddDate(0, 0, -70))

	resp, err := s.service.GenerateAlerts(s.GetContext(), c.ID)
	s.Require().NoError(err)
	s.Equal(1, resp.Raised)
	s.Equal(0, resp.Skipped)
	s.Equal(1, resp.Breakdown[types.RemittanceAlertFirstDelay])

	alerts, err := s.GetStores().RemittanceAlert.ListOpenByCandidate(s.GetContext(), c.ID)
	s.Require().NoError(err)
	s.Require().Len(alerts, 1)
	s.Equal(types.RemittanceAlertFirstDelay, alerts[0].AlertType)
	s.Equal(types.AlertSeverityCritical, alerts[0].Severity)

	// A second scan must not raise a duplicate
	resp, err = s.service.GenerateAlerts(s.GetContext(), c.ID)
	s.Require().NoError(err)
	s.Equal(0, resp.Raised)
	s.Equal(1, resp.Skipped)

	alerts, err = s.GetStores().RemittanceAlert.ListOpenByCandidate(s.GetContext(), c.ID)
	s.Require().NoError(err)
	s.Len(alerts, 1)
}

func (s *RemittanceServiceSuite) TestClearedConditionResolvesOpenAlert() {
	now := time.Now().UTC()
	c := s.seedDepartedCandidate(now.AddDate(0, 0, -70))

	resp, err := s.service.GenerateAlerts(s.GetContext(), c.ID)
	s.Require().NoError(err)
	s.Equal(1, resp.Raised)

	// A remittance with proof arrives; the delay condition clears
	s.seedRemittance(c.ID, 50000, now.AddDate(0, 0, -1), true)

	resp, err = s.service.GenerateAlerts(s.GetContext(), c.ID)
	s.Require().NoError(err)
	s.Equal(0, resp.Raised)
	s.Equal(1, resp.Resolved)

	open, err := s.GetStores().RemittanceAlert.ListOpenByCandidate(s.GetContext(), c.ID)
	s.Require().NoError(err)
	s.Empty(open)
}

func (s *RemittanceServiceSuite) TestMissingProofAlert() {
	now := time.Now().UTC()
	c := s.seedDepartedCandidate(now.AddDate(0, 0, -30))
	s.seedRemittance(c.ID, 50000, now.AddDate(0, 0, -2), false)

	resp, err := s.service.GenerateAlerts(s.GetContext(), c.ID)
	s.Require().NoError(err)
	s.Equal(1, resp.Raised)
	s.Equal(1, resp.Breakdown[types.RemittanceAlertMissingProof])
}

func (s *RemittanceServiceSuite) TestUnusualAmountAlert() {
	now := time.Now().UTC()
	c := s.seedDepartedCandidate(now.AddDate(0, 0, -40))
	// 3000 deviates 200% from the 1000 average of prior remittances
	s.seedRemittance(c.ID, 1000, now.AddDate(0, 0, -35), true)
	s.seedRemittance(c.ID, 3000, now.AddDate(0, 0, -5), true)

	resp, err := s.service.GenerateAlerts(s.GetContext(), c.ID)
	s.Require().NoError(err)
	s.Equal(1, resp.Raised)
	s.Equal(1, resp.Breakdown[types.RemittanceAlertUnusualAmount])
}

func (s *RemittanceServiceSuite) TestMissingRemittanceAndLowFrequency() {
	now := time.Now().UTC()
	c := s.seedDepartedCandidate(now.AddDate(0, 0, -150))
	// 70 day gap between remittances, and the last one is 50 days old
	s.seedRemittance(c.ID, 1000, now.AddDate(0, 0, -120), true)
	s.seedRemittance(c.ID, 1000, now.AddDate(0, 0, -50), true)

	resp, err := s.service.GenerateAlerts(s.GetContext(), c.ID)
	s.Require().NoError(err)
	s.Equal(2, resp.Raised)
	s.Equal(1, resp.Breakdown[types.RemittanceAlertMissingRemittance])
	s.Equal(1, resp.Breakdown[types.RemittanceAlertLowFrequency])
}

func (s *RemittanceServiceSuite) TestGenerateAlertsRejectsNonDepartedCandidate() {
	ctx := s.GetContext()
	c := &candidate.Candidate{
		ID:              types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CANDIDATE),
		FullName:        "Still Training",
		CNIC:            "35202-1111111-1",
		Phone:           "+923001111111",
		Gender:          "female",
		District:        "Quetta",
		CandidateStatus: types.CandidateStatusTraining,
		BaseModel:       types.GetDefaultBaseModel(ctx),
	}
	s.Require().NoError(s.GetStores().Candidate.Create(ctx, c))

	_, err := s.service.GenerateAlerts(ctx, c.ID)
	s.Require().Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *RemittanceServiceSuite) TestRecordRemittanceRejectsNonPositiveAmount() {
	now := time.Now().UTC()
	c := s.seedDepartedCandidate(now.AddDate(0, 0, -30))

	_, err := s.service.RecordRemittance(s.GetContext(), dto.CreateRemittanceRequest{
		CandidateID: c.ID,
		Amount:      decimal.NewFromInt(-100),
		Currency:    "PKR",
		SentAt:      now,
		Channel:     "bank",
	})
	s.Require().Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *RemittanceServiceSuite) TestGenerateAllAlertsScansOnlyDeparted() {
	now := time.Now().UTC()
	s.seedDepartedCandidate(now.AddDate(0, 0, -70))

	ctx := s.GetContext()
	training := &candidate.Candidate{
		ID:              types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CANDIDATE),
		FullName:        "Not Departed",
		CNIC:            "35202-2222222-1",
		Phone:           "+923002222222",
		Gender:          "male",
		District:        "Karachi",
		CandidateStatus: types.CandidateStatusTraining,
		BaseModel:       types.GetDefaultBaseModel(ctx),
	}
	s.Require().NoError(s.GetStores().Candidate.Create(ctx, training))

	resp, err := s.service.GenerateAllAlerts(ctx, false, "", false)
	s.Require().NoError(err)
	s.Equal(1, resp.CandidatesScanned)
	s.Equal(1, resp.Raised)
}

func (s *RemittanceServiceSuite) TestGenerateAllAlertsDryRunWritesNothing() {
	now := time.Now().UTC()
	c := s.seedDepartedCandidate(now.AddDate(0, 0, -70))

	ctx := s.GetContext()
	resp, err := s.service.GenerateAllAlerts(ctx, false, "", true)
	s.Require().NoError(err)

	// The dry run reports what a real scan would raise
	s.True(resp.DryRun)
	s.Equal(1, resp.CandidatesScanned)
	s.Equal(1, resp.Raised)
	s.Equal(1, resp.Breakdown[types.RemittanceAlertFirstDelay])

	// But no alert row exists yet
	open, err := s.GetStores().RemittanceAlert.ListOpenByCandidate(ctx, c.ID)
	s.Require().NoError(err)
	s.Empty(open)

	// A real scan afterwards raises it for real
	resp, err = s.service.GenerateAllAlerts(ctx, false, "", false)
	s.Require().NoError(err)
	s.False(resp.DryRun)
	s.Equal(1, resp.Raised)

	open, err = s.GetStores().RemittanceAlert.ListOpenByCandidate(ctx, c.ID)
	s.Require().NoError(err)
	s.Len(open, 1)
}

func (s *RemittanceServiceSuite) TestGenerateAllAlertsDryRunLeavesOpenAlertsUnresolved() {
	now := time.Now().UTC()
	c := s.seedDepartedCandidate(now.AddDate(0, 0, -70))

	ctx := s.GetContext()
	resp, err := s.service.GenerateAllAlerts(ctx, false, "", false)
	s.Require().NoError(err)
	s.Equal(1, resp.Raised)

	// The delay condition clears
	s.seedRemittance(c.ID, 50000, now.AddDate(0, 0, -1), true)

	// A dry run counts the resolution but does not apply it
	resp, err = s.service.GenerateAllAlerts(ctx, false, "", true)
	s.Require().NoError(err)
	s.Equal(1, resp.Resolved)

	open, err := s.GetStores().RemittanceAlert.ListOpenByCandidate(ctx, c.ID)
	s.Require().NoError(err)
	s.Len(open, 1)
}
