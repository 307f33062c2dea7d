package services_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/SscSPs/burnout_journal/internal/apperrors"
	"github.com/SscSPs/burnout_journal/internal/core/domain"
	portsrepo "github.com/SscSPs/burnout_journal/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/burnout_journal/internal/core/ports/services"
	"github.com/SscSPs/burnout_journal/internal/core/services"
	"github.com/SscSPs/burnout_journal/internal/dto"
	"github.com/SscSPs/burnout_journal/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

// Ensure MockJournalRepository implements portsrepo.JournalRepositoryWithTx
var _ portsrepo.JournalRepositoryWithTx = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) ListJournals(ctx context.Context, userID string, limit int, startAfter string) ([]domain.Journal, error) {
	args := m.Called(ctx, userID, limit, startAfter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) FindJournal(ctx context.Context, userID, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, userID, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) FindEntries(ctx context.Context, userID, journalID string) ([]domain.Entry, error) {
	args := m.Called(ctx, userID, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Entry), args.Error(1)
}

func (m *MockJournalRepository) LatestEntryCreatedAt(ctx context.Context, userID, journalID string) (time.Time, bool, error) {
	args := m.Called(ctx, userID, journalID)
	return args.Get(0).(time.Time), args.Bool(1), args.Error(2)
}

func (m *MockJournalRepository) EnsureJournal(ctx context.Context, userID, journalID string, now time.Time) error {
	return m.Called(ctx, userID, journalID, now).Error(0)
}

func (m *MockJournalRepository) SetJournalHidden(ctx context.Context, userID, journalID string, hidden bool) error {
	return m.Called(ctx, userID, journalID, hidden).Error(0)
}

func (m *MockJournalRepository) CreateJournalWithEntry(ctx context.Context, userID string, entry domain.Entry) error {
	return m.Called(ctx, userID, entry).Error(0)
}

func (m *MockJournalRepository) CreateEntry(ctx context.Context, userID string, entry domain.Entry) error {
	return m.Called(ctx, userID, entry).Error(0)
}

func (m *MockJournalRepository) UpdateEntryContent(ctx context.Context, userID, journalID, entryID, content string, now time.Time) (time.Time, error) {
	args := m.Called(ctx, userID, journalID, entryID, content, now)
	return args.Get(0).(time.Time), args.Error(1)
}

func (m *MockJournalRepository) DeleteEntry(ctx context.Context, userID, journalID, entryID string) error {
	return m.Called(ctx, userID, journalID, entryID).Error(0)
}

func (m *MockJournalRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockJournalRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockJournalRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

// --- Test Suite ---
type JournalServiceTestSuite struct {
	suite.Suite
	mockRepo *MockJournalRepository
	service  portssvc.JournalSvcFacade
	ctx      context.Context
	now      time.Time
	userID   string
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockJournalRepository)
	suite.ctx = context.Background()
	suite.now = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	suite.userID = uuid.NewString()
	suite.service = services.NewJournalService(
		suite.mockRepo,
		services.WithEntryCooldown(time.Minute),
		services.WithDefaultPageSize(2),
		services.WithJournalClock(func() time.Time { return suite.now }),
	)
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}

func journalsFor(ids ...string) []domain.Journal {
	out := make([]domain.Journal, len(ids))
	for i, id := range ids {
		out[i] = domain.Journal{JournalID: id}
	}
	return out
}

func (suite *JournalServiceTestSuite) TestListJournals_FullPageHasMore() {
	suite.mockRepo.On("ListJournals", suite.ctx, suite.userID, 3, "").
		Return(journalsFor("2025-03-14", "2025-03-13", "2025-03-12"), nil).Once()

	resp, err := suite.service.ListJournals(suite.ctx, suite.userID, dto.ListJournalsParams{})

	suite.Require().NoError(err)
	suite.Len(resp.Journals, 2)
	suite.True(resp.HasMore)
	suite.Require().NotNil(resp.NextToken)
	cursor, err := pagination.DecodeJournalCursor(*resp.NextToken)
	suite.NoError(err)
	suite.Equal("2025-03-13", cursor)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestListJournals_StartAfterExhausted() {
	suite.mockRepo.On("ListJournals", suite.ctx, suite.userID, 6, "2025-03-13").
		Return(journalsFor("2025-03-10"), nil).Once()

	resp, err := suite.service.ListJournals(suite.ctx, suite.userID, dto.ListJournalsParams{Limit: 5, StartAfter: "2025-03-13"})

	suite.Require().NoError(err)
	suite.Len(resp.Journals, 1)
	suite.False(resp.HasMore)
	suite.Nil(resp.NextToken)
}

func (suite *JournalServiceTestSuite) TestListJournals_NextToken() {
	token := pagination.EncodeJournalCursor("2025-01-31")
	suite.mockRepo.On("ListJournals", suite.ctx, suite.userID, 3, "2025-01-31").
		Return([]domain.Journal{}, nil).Once()

	resp, err := suite.service.ListJournals(suite.ctx, suite.userID, dto.ListJournalsParams{NextToken: token})

	suite.Require().NoError(err)
	suite.Empty(resp.Journals)
}

func (suite *JournalServiceTestSuite) TestListJournals_BadCursor() {
	_, err := suite.service.ListJournals(suite.ctx, suite.userID, dto.ListJournalsParams{NextToken: "%%%"})
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.ListJournals(suite.ctx, suite.userID, dto.ListJournalsParams{StartAfter: "yesterday"})
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "ListJournals", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestGetJournal_HiddenIsNotFound() {
	suite.mockRepo.On("FindJournal", suite.ctx, suite.userID, "2025-03-14").
		Return(&domain.Journal{JournalID: "2025-03-14", Hidden: true}, nil).Once()

	_, err := suite.service.GetJournal(suite.ctx, suite.userID, "2025-03-14")

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Equal(http.StatusNotFound, apperrors.StatusCode(err))
	suite.mockRepo.AssertNotCalled(suite.T(), "FindEntries", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestGetJournal_MissingIsNotFound() {
	suite.mockRepo.On("FindJournal", suite.ctx, suite.userID, "2025-03-14").
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetJournal(suite.ctx, suite.userID, "2025-03-14")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *JournalServiceTestSuite) TestGetJournal_Success() {
	entries := []domain.Entry{
		{EntryID: uuid.NewString(), Content: "first", CreatedAt: suite.now.Add(-time.Hour)},
		{EntryID: uuid.NewString(), Content: "second", CreatedAt: suite.now},
	}
	suite.mockRepo.On("FindJournal", suite.ctx, suite.userID, "2025-03-14").
		Return(&domain.Journal{JournalID: "2025-03-14"}, nil).Once()
	suite.mockRepo.On("FindEntries", suite.ctx, suite.userID, "2025-03-14").Return(entries, nil).Once()

	got, err := suite.service.GetJournal(suite.ctx, suite.userID, "2025-03-14")

	suite.Require().NoError(err)
	suite.Equal("2025-03-14", got.Journal.JournalID)
	suite.Equal(entries, got.Entries)
}

func (suite *JournalServiceTestSuite) TestEnsureJournal_RejectsBadDate() {
	err := suite.service.EnsureJournal(suite.ctx, suite.userID, "2025-02-30")
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "EnsureJournal", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestEnsureJournal_UsesServerClock() {
	suite.mockRepo.On("EnsureJournal", suite.ctx, suite.userID, "2025-03-14", suite.now).Return(nil).Once()
	suite.NoError(suite.service.EnsureJournal(suite.ctx, suite.userID, "2025-03-14"))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateEntry_NoPriorEntries() {
	suite.mockRepo.On("LatestEntryCreatedAt", suite.ctx, suite.userID, "2025-03-14").Return(time.Time{}, false, nil).Once()
	suite.mockRepo.On("CreateEntry", suite.ctx, suite.userID, mock.MatchedBy(func(e domain.Entry) bool {
		_, err := uuid.Parse(e.EntryID)
		return err == nil && e.Content == "" && e.JournalID == "2025-03-14" && e.CreatedAt.Equal(suite.now) && e.UpdatedAt.Equal(suite.now)
	})).Return(nil).Once()

	entry, err := suite.service.CreateEntry(suite.ctx, suite.userID, "2025-03-14")

	suite.Require().NoError(err)
	suite.Equal("", entry.Content)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateEntry_Cooldown() {
	suite.mockRepo.On("LatestEntryCreatedAt", suite.ctx, suite.userID, "2025-03-14").
		Return(suite.now.Add(-20*time.Second), true, nil).Once()

	_, err := suite.service.CreateEntry(suite.ctx, suite.userID, "2025-03-14")

	suite.ErrorIs(err, apperrors.ErrTooManyRequests)
	suite.Equal(http.StatusTooManyRequests, apperrors.StatusCode(err))
	suite.Contains(err.Error(), "40s")
	suite.mockRepo.AssertNotCalled(suite.T(), "CreateEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_CooldownElapsed() {
	suite.mockRepo.On("LatestEntryCreatedAt", suite.ctx, suite.userID, "2025-03-14").
		Return(suite.now.Add(-time.Minute), true, nil).Once()
	suite.mockRepo.On("CreateEntry", suite.ctx, suite.userID, mock.Anything).Return(nil).Once()

	_, err := suite.service.CreateEntry(suite.ctx, suite.userID, "2025-03-14")
	suite.NoError(err)
}

func (suite *JournalServiceTestSuite) TestCreateJournalWithEntry() {
	suite.mockRepo.On("LatestEntryCreatedAt", suite.ctx, suite.userID, "2025-03-14").Return(time.Time{}, false, nil).Once()
	suite.mockRepo.On("CreateJournalWithEntry", suite.ctx, suite.userID, mock.AnythingOfType("domain.Entry")).Return(nil).Once()
	suite.mockRepo.On("FindJournal", suite.ctx, suite.userID, "2025-03-14").
		Return(&domain.Journal{JournalID: "2025-03-14", CreatedAt: suite.now}, nil).Once()

	got, err := suite.service.CreateJournalWithEntry(suite.ctx, suite.userID, "2025-03-14")

	suite.Require().NoError(err)
	suite.Len(got.Entries, 1)
	suite.Equal("2025-03-14", got.Journal.JournalID)
}

func (suite *JournalServiceTestSuite) TestSaveEntry() {
	entryID := uuid.NewString()
	updatedAt := suite.now.Add(time.Second)
	suite.mockRepo.On("UpdateEntryContent", suite.ctx, suite.userID, "2025-03-14", entryID, "", suite.now).
		Return(updatedAt, nil).Once()

	resp, err := suite.service.SaveEntry(suite.ctx, suite.userID, "2025-03-14", entryID, "")

	suite.Require().NoError(err)
	suite.Equal(entryID, resp.EntryID)
	suite.Equal(updatedAt, resp.UpdatedAt)
}

func (suite *JournalServiceTestSuite) TestSaveEntry_Errors() {
	_, err := suite.service.SaveEntry(suite.ctx, suite.userID, "2025-03-14", "not-a-uuid", "x")
	suite.ErrorIs(err, apperrors.ErrValidation)

	entryID := uuid.NewString()
	suite.mockRepo.On("UpdateEntryContent", suite.ctx, suite.userID, "2025-03-14", entryID, "x", suite.now).
		Return(time.Time{}, apperrors.ErrNotFound).Once()
	_, err = suite.service.SaveEntry(suite.ctx, suite.userID, "2025-03-14", entryID, "x")
	suite.ErrorIs(err, apperrors.ErrNotFound)

	otherID := uuid.NewString()
	suite.mockRepo.On("UpdateEntryContent", suite.ctx, suite.userID, "2025-03-14", otherID, "y", suite.now).
		Return(time.Time{}, errors.New("connection reset")).Once()
	_, err = suite.service.SaveEntry(suite.ctx, suite.userID, "2025-03-14", otherID, "y")
	suite.Error(err)
	suite.Equal(http.StatusInternalServerError, apperrors.StatusCode(err))
}

func (suite *JournalServiceTestSuite) TestHideAndUnhide() {
	suite.mockRepo.On("SetJournalHidden", suite.ctx, suite.userID, "2025-03-14", true).Return(nil).Once()
	suite.mockRepo.On("SetJournalHidden", suite.ctx, suite.userID, "2025-03-13", false).Return(apperrors.ErrNotFound).Once()

	suite.NoError(suite.service.HideJournal(suite.ctx, suite.userID, "2025-03-14"))
	suite.ErrorIs(suite.service.UnhideJournal(suite.ctx, suite.userID, "2025-03-13"), apperrors.ErrNotFound)
}

func (suite *JournalServiceTestSuite) TestDeleteEntry() {
	entryID := uuid.NewString()
	suite.mockRepo.On("DeleteEntry", suite.ctx, suite.userID, "2025-03-14", entryID).Return(nil).Once()
	suite.NoError(suite.service.DeleteEntry(suite.ctx, suite.userID, "2025-03-14", entryID))
}

func TestJournalService_CooldownDisabled(t *testing.T) {
	repo := new(MockJournalRepository)
	svc := services.NewJournalService(repo, services.WithEntryCooldown(0))
	repo.On("CreateEntry", mock.Anything, "u1", mock.Anything).Return(nil).Once()

	_, err := svc.CreateEntry(context.Background(), "u1", "2025-03-14")

	assert.NoError(t, err)
	repo.AssertNotCalled(t, "LatestEntryCreatedAt", mock.Anything, mock.Anything, mock.Anything)
}
