package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/petroprice/fuel_pricing_app/internal/apperrors"
	"github.com/petroprice/fuel_pricing_app/internal/core/domain"
	portsrepo "github.com/petroprice/fuel_pricing_app/internal/core/ports/repositories"
	portssvc "github.com/petroprice/fuel_pricing_app/internal/core/ports/services"
	"github.com/petroprice/fuel_pricing_app/internal/core/services"
	"github.com/jackc/pgx/v5"
)

// --- Mock SuggestionRepository ---
type MockSuggestionRepository struct {
	mock.Mock
}

func (m *MockSuggestionRepository) FindSuggestionByID(ctx context.Context, suggestionID string) (*domain.PriceSuggestion, error) {
	args := m.Called(ctx, suggestionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PriceSuggestion), args.Error(1)
}

func (m *MockSuggestionRepository) ListSuggestions(ctx context.Context, filter portsrepo.ListSuggestionsFilter) ([]domain.PriceSuggestion, *string, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.PriceSuggestion), token, args.Error(2)
}

func (m *MockSuggestionRepository) SaveSuggestion(ctx context.Context, suggestion domain.PriceSuggestion) error {
	args := m.Called(ctx, suggestion)
	return args.Error(0)
}

func (m *MockSuggestionRepository) UpdateSuggestion(ctx context.Context, suggestion domain.PriceSuggestion) error {
	args := m.Called(ctx, suggestion)
	return args.Error(0)
}

func (m *MockSuggestionRepository) MarkSubmitted(ctx context.Context, suggestionID string, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, suggestionID, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockSuggestionRepository) ApplyReview(ctx context.Context, upd portsrepo.ReviewUpdate, entry domain.ApprovalHistoryEntry) error {
	args := m.Called(ctx, upd, entry)
	return args.Error(0)
}

func (m *MockSuggestionRepository) DeleteSuggestion(ctx context.Context, suggestionID string) error {
	args := m.Called(ctx, suggestionID)
	return args.Error(0)
}

func (m *MockSuggestionRepository) FindHistoryBySuggestionID(ctx context.Context, suggestionID string) ([]domain.ApprovalHistoryEntry, error) {
	args := m.Called(ctx, suggestionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ApprovalHistoryEntry), args.Error(1)
}

func (m *MockSuggestionRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockSuggestionRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockSuggestionRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock PermissionService ---
type MockPermissionService struct {
	mock.Mock
}

func (m *MockPermissionService) GetApprovalAuthority(ctx context.Context, reviewerID string) (int64, domain.ReviewerRole, error) {
	args := m.Called(ctx, reviewerID)
	return args.Get(0).(int64), args.Get(1).(domain.ReviewerRole), args.Error(2)
}

// --- Mock AuditService ---
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) Record(ctx context.Context, action string, entityType string, entityID string, actorID string) {
	m.Called(ctx, action, entityType, entityID, actorID)
}

// --- Test Suite ---
type ApprovalServiceTestSuite struct {
	suite.Suite
	mockRepo       *MockSuggestionRepository
	mockPermission *MockPermissionService
	mockAudit      *MockAuditService
	service        portssvc.ApprovalSvcFacade
}

func (s *ApprovalServiceTestSuite) SetupTest() {
	s.mockRepo = new(MockSuggestionRepository)
	s.mockPermission = new(MockPermissionService)
	s.mockAudit = new(MockAuditService)
	s.service = services.NewApprovalService(s.mockRepo, s.mockPermission, s.mockAudit)
}

func pendingSuggestion(totalApprovers int) *domain.PriceSuggestion {
	return &domain.PriceSuggestion{
		SuggestionID:   uuid.NewString(),
		Status:         domain.StatusPending,
		SuggestedPrice: decimal.RequireFromString("3.80"),
		ApprovalLevel:  1,
		TotalApprovers: totalApprovers,
		MarginCents:    52,
		RequestedBy:    uuid.NewString(),
	}
}

func (s *ApprovalServiceTestSuite) allowApprover(approverID string) {
	s.mockPermission.On("GetApprovalAuthority", mock.Anything, approverID).
		Return(int64(0), domain.RoleUnrestricted, nil).Once()
}

// --- Approve ---

func (s *ApprovalServiceTestSuite) TestApprove_SingleApprovalFinalizes() {
	ctx := context.Background()
	suggestion := pendingSuggestion(3)
	approverID := uuid.NewString()
	s.allowApprover(approverID)

	s.mockRepo.On("FindSuggestionByID", ctx, suggestion.SuggestionID).Return(suggestion, nil).Once()
	s.mockRepo.On("ApplyReview", ctx, mock.MatchedBy(func(upd portsrepo.ReviewUpdate) bool {
		return upd.NewStatus == domain.StatusApproved &&
			upd.NewApprovals == 1 &&
			upd.NewApprovalLevel == 3 &&
			upd.ExpectedApprovals == 0 &&
			upd.NewFinalPrice != nil && upd.NewFinalPrice.Equal(suggestion.SuggestedPrice) &&
			upd.ApprovedAt != nil &&
			upd.ApprovedBy != nil && *upd.ApprovedBy == approverID
	}), mock.MatchedBy(func(entry domain.ApprovalHistoryEntry) bool {
		return entry.Action == domain.ActionApproved &&
			entry.ApproverID == approverID &&
			entry.ApprovalLevel == 1 &&
			entry.Observation == "margin acceptable"
	})).Return(nil).Once()

	result, err := s.service.Approve(ctx, suggestion.SuggestionID, approverID, "margin acceptable")

	s.Require().NoError(err)
	s.Equal(domain.StatusApproved, result.Status)
	s.Equal(3, result.ApprovalLevel)
	s.Equal(1, result.ApprovalsCount)
	s.True(result.FinalPrice.Equal(result.SuggestedPrice))
	s.NotNil(result.ApprovedAt)
	s.mockRepo.AssertExpectations(s.T())
	s.mockPermission.AssertExpectations(s.T())
}

func (s *ApprovalServiceTestSuite) TestApprove_EmptyObservationRejected() {
	ctx := context.Background()

	_, err := s.service.Approve(ctx, uuid.NewString(), uuid.NewString(), "   ")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockRepo.AssertNotCalled(s.T(), "ApplyReview", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ApprovalServiceTestSuite) TestApprove_TerminalStatusConflicts() {
	ctx := context.Background()
	suggestion := pendingSuggestion(3)
	suggestion.Status = domain.StatusApproved

	s.mockRepo.On("FindSuggestionByID", ctx, suggestion.SuggestionID).Return(suggestion, nil).Once()

	_, err := s.service.Approve(ctx, suggestion.SuggestionID, uuid.NewString(), "looks fine")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *ApprovalServiceTestSuite) TestApprove_DraftIsNotReviewable() {
	ctx := context.Background()
	suggestion := pendingSuggestion(3)
	suggestion.Status = domain.StatusDraft

	s.mockRepo.On("FindSuggestionByID", ctx, suggestion.SuggestionID).Return(suggestion, nil).Once()

	_, err := s.service.Approve(ctx, suggestion.SuggestionID, uuid.NewString(), "ok")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *ApprovalServiceTestSuite) TestApprove_MarginAboveCeilingForbidden() {
	ctx := context.Background()
	suggestion := pendingSuggestion(3)
	suggestion.MarginCents = 500
	approverID := uuid.NewString()

	s.mockRepo.On("FindSuggestionByID", ctx, suggestion.SuggestionID).Return(suggestion, nil).Once()
	s.mockPermission.On("GetApprovalAuthority", ctx, approverID).
		Return(int64(100), domain.RoleOrdinary, nil).Once()

	_, err := s.service.Approve(ctx, suggestion.SuggestionID, approverID, "approving anyway")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrForbidden)
	s.mockRepo.AssertNotCalled(s.T(), "ApplyReview", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ApprovalServiceTestSuite) TestApprove_UnrestrictedBypassesCeiling() {
	ctx := context.Background()
	suggestion := pendingSuggestion(3)
	suggestion.MarginCents = 1_000_000
	approverID := uuid.NewString()

	s.mockRepo.On("FindSuggestionByID", ctx, suggestion.SuggestionID).Return(suggestion, nil).Once()
	s.mockPermission.On("GetApprovalAuthority", ctx, approverID).
		Return(int64(0), domain.RoleUnrestricted, nil).Once()
	s.mockRepo.On("ApplyReview", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	result, err := s.service.Approve(ctx, suggestion.SuggestionID, approverID, "large but fine")

	s.Require().NoError(err)
	s.Equal(domain.StatusApproved, result.Status)
}

func (s *ApprovalServiceTestSuite) TestApprove_ConflictPropagated() {
	ctx := context.Background()
	suggestion := pendingSuggestion(3)
	approverID := uuid.NewString()
	s.allowApprover(approverID)

	s.mockRepo.On("FindSuggestionByID", ctx, suggestion.SuggestionID).Return(suggestion, nil).Once()
	s.mockRepo.On("ApplyReview", ctx, mock.Anything, mock.Anything).Return(apperrors.ErrConflict).Once()

	_, err := s.service.Approve(ctx, suggestion.SuggestionID, approverID, "race")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrConflict)
}

// --- Reject ---

func (s *ApprovalServiceTestSuite) TestReject_FirstRejectionStaysPending() {
	ctx := context.Background()
	suggestion := pendingSuggestion(3)
	approverID := uuid.NewString()

	s.mockRepo.On("FindSuggestionByID", ctx, suggestion.SuggestionID).Return(suggestion, nil).Once()
	s.mockRepo.On("ApplyReview", ctx, mock.MatchedBy(func(upd portsrepo.ReviewUpdate) bool {
		return upd.NewStatus == domain.StatusPending &&
			upd.NewRejections == 1 &&
			upd.NewApprovalLevel == 2 &&
			upd.NewFinalPrice == nil
	}), mock.MatchedBy(func(entry domain.ApprovalHistoryEntry) bool {
		return entry.Action == domain.ActionRejected && entry.ApprovalLevel == 1
	})).Return(nil).Once()

	result, err := s.service.Reject(ctx, suggestion.SuggestionID, approverID, "price too aggressive")

	s.Require().NoError(err)
	s.Equal(domain.StatusPending, result.Status)
	s.Equal(1, result.RejectionsCount)
	s.Equal(2, result.ApprovalLevel)
	s.Nil(result.ApprovedAt)
}

func (s *ApprovalServiceTestSuite) TestReject_SecondRejectionCapsLevel() {
	ctx := context.Background()
	suggestion := pendingSuggestion(3)
	suggestion.ApprovalLevel = 3
	suggestion.RejectionsCount = 1

	s.mockRepo.On("FindSuggestionByID", ctx, suggestion.SuggestionID).Return(suggestion, nil).Once()
	s.mockRepo.On("ApplyReview", ctx, mock.MatchedBy(func(upd portsrepo.ReviewUpdate) bool {
		// Level is already at the configured maximum and must not grow.
		return upd.NewStatus == domain.StatusPending &&
			upd.NewRejections == 2 &&
			upd.NewApprovalLevel == 3
	}), mock.Anything).Return(nil).Once()

	result, err := s.service.Reject(ctx, suggestion.SuggestionID, uuid.NewString(), "still not viable")

	s.Require().NoError(err)
	s.Equal(domain.StatusPending, result.Status)
	s.Equal(3, result.ApprovalLevel)
}

func (s *ApprovalServiceTestSuite) TestReject_FinalRejectionRejects() {
	ctx := context.Background()
	suggestion := pendingSuggestion(3)
	suggestion.ApprovalLevel = 3
	suggestion.RejectionsCount = 2

	s.mockRepo.On("FindSuggestionByID", ctx, suggestion.SuggestionID).Return(suggestion, nil).Once()
	s.mockRepo.On("ApplyReview", ctx, mock.MatchedBy(func(upd portsrepo.ReviewUpdate) bool {
		return upd.NewStatus == domain.StatusRejected &&
			upd.NewRejections == 3 &&
			upd.ExpectedRejections == 2
	}), mock.Anything).Return(nil).Once()

	result, err := s.service.Reject(ctx, suggestion.SuggestionID, uuid.NewString(), "unanimous no")

	s.Require().NoError(err)
	s.Equal(domain.StatusRejected, result.Status)
	s.Equal(3, result.RejectionsCount)
}

func (s *ApprovalServiceTestSuite) TestReject_QuorumForSingleApprover() {
	ctx := context.Background()
	suggestion := pendingSuggestion(1)

	s.mockRepo.On("FindSuggestionByID", ctx, suggestion.SuggestionID).Return(suggestion, nil).Once()
	s.mockRepo.On("ApplyReview", ctx, mock.MatchedBy(func(upd portsrepo.ReviewUpdate) bool {
		return upd.NewStatus == domain.StatusRejected && upd.NewRejections == 1
	}), mock.Anything).Return(nil).Once()

	result, err := s.service.Reject(ctx, suggestion.SuggestionID, uuid.NewString(), "sole approver rejects")

	s.Require().NoError(err)
	s.Equal(domain.StatusRejected, result.Status)
}

func (s *ApprovalServiceTestSuite) TestReject_QuorumForFiveApprovers() {
	ctx := context.Background()
	suggestion := pendingSuggestion(5)
	suggestion.RejectionsCount = 3
	suggestion.ApprovalLevel = 4

	s.mockRepo.On("FindSuggestionByID", ctx, suggestion.SuggestionID).Return(suggestion, nil).Once()
	s.mockRepo.On("ApplyReview", ctx, mock.MatchedBy(func(upd portsrepo.ReviewUpdate) bool {
		// 4 of 5 rejections: still pending, level advances to the cap.
		return upd.NewStatus == domain.StatusPending &&
			upd.NewRejections == 4 &&
			upd.NewApprovalLevel == 5
	}), mock.Anything).Return(nil).Once()

	result, err := s.service.Reject(ctx, suggestion.SuggestionID, uuid.NewString(), "fourth of five")

	s.Require().NoError(err)
	s.Equal(domain.StatusPending, result.Status)
}

func (s *ApprovalServiceTestSuite) TestReject_EmptyObservationRejected() {
	ctx := context.Background()

	_, err := s.service.Reject(ctx, uuid.NewString(), uuid.NewString(), "")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

// --- Submit / Delete ---

func (s *ApprovalServiceTestSuite) TestSubmit_DraftBecomesPending() {
	ctx := context.Background()
	requesterID := uuid.NewString()
	suggestion := pendingSuggestion(3)
	suggestion.Status = domain.StatusDraft
	suggestion.RequestedBy = requesterID

	s.mockRepo.On("FindSuggestionByID", ctx, suggestion.SuggestionID).Return(suggestion, nil).Once()
	s.mockRepo.On("MarkSubmitted", ctx, suggestion.SuggestionID, requesterID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	result, err := s.service.Submit(ctx, suggestion.SuggestionID, requesterID)

	s.Require().NoError(err)
	s.Equal(domain.StatusPending, result.Status)
}

func (s *ApprovalServiceTestSuite) TestSubmit_OnlyRequesterMaySubmit() {
	ctx := context.Background()
	suggestion := pendingSuggestion(3)
	suggestion.Status = domain.StatusDraft

	s.mockRepo.On("FindSuggestionByID", ctx, suggestion.SuggestionID).Return(suggestion, nil).Once()

	_, err := s.service.Submit(ctx, suggestion.SuggestionID, uuid.NewString())

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrForbidden)
}

func (s *ApprovalServiceTestSuite) TestDelete_RecordsAuditEntry() {
	ctx := context.Background()
	suggestion := pendingSuggestion(3)
	actorID := uuid.NewString()

	s.mockRepo.On("FindSuggestionByID", ctx, suggestion.SuggestionID).Return(suggestion, nil).Once()
	s.mockRepo.On("DeleteSuggestion", ctx, suggestion.SuggestionID).Return(nil).Once()
	s.mockAudit.On("Record", ctx, "suggestion.delete", "price_suggestion", suggestion.SuggestionID, actorID).Once()

	err := s.service.Delete(ctx, suggestion.SuggestionID, actorID)

	s.Require().NoError(err)
	s.mockAudit.AssertExpectations(s.T())
}

func (s *ApprovalServiceTestSuite) TestDelete_NotFound() {
	ctx := context.Background()
	suggestionID := uuid.NewString()

	s.mockRepo.On("FindSuggestionByID", ctx, suggestionID).Return(nil, apperrors.ErrNotFound).Once()

	err := s.service.Delete(ctx, suggestionID, uuid.NewString())

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.mockRepo.AssertNotCalled(s.T(), "DeleteSuggestion", mock.Anything, mock.Anything)
}

func TestApprovalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ApprovalServiceTestSuite))
}
