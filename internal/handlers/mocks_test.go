package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/burnout_journal/internal/core/domain"
	portssvc "github.com/SscSPs/burnout_journal/internal/core/ports/services"
	"github.com/SscSPs/burnout_journal/internal/dto"
	"github.com/stretchr/testify/mock"
)

type MockUserService struct{ mock.Mock }

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockUserService) SignUp(ctx context.Context, req dto.SignUpRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) UpsertGoogleUser(ctx context.Context, identity domain.GoogleIdentity) (*domain.User, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*domain.Profile, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockUserService) DeleteUser(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockUserService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockTokenService struct{ mock.Mock }

var _ portssvc.TokenSvcFacade = (*MockTokenService)(nil)

func (m *MockTokenService) GenerateSessionToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenService) ParseSessionToken(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

type MockGoogleService struct{ mock.Mock }

var _ portssvc.GoogleOAuthSvcFacade = (*MockGoogleService)(nil)

func (m *MockGoogleService) ValidateGoogleIDToken(ctx context.Context, idToken string) (*domain.GoogleIdentity, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GoogleIdentity), args.Error(1)
}

func (m *MockGoogleService) ExchangeCode(ctx context.Context, code string) (*domain.GoogleIdentity, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GoogleIdentity), args.Error(1)
}

type MockJournalService struct{ mock.Mock }

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

func (m *MockJournalService) ListJournals(ctx context.Context, userID string, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListJournalsResponse), args.Error(1)
}

func (m *MockJournalService) GetJournal(ctx context.Context, userID, journalID string) (*domain.JournalWithEntries, error) {
	args := m.Called(ctx, userID, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalWithEntries), args.Error(1)
}

func (m *MockJournalService) EnsureJournal(ctx context.Context, userID, journalID string) error {
	return m.Called(ctx, userID, journalID).Error(0)
}

func (m *MockJournalService) CreateJournalWithEntry(ctx context.Context, userID, journalID string) (*domain.JournalWithEntries, error) {
	args := m.Called(ctx, userID, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalWithEntries), args.Error(1)
}

func (m *MockJournalService) HideJournal(ctx context.Context, userID, journalID string) error {
	return m.Called(ctx, userID, journalID).Error(0)
}

func (m *MockJournalService) UnhideJournal(ctx context.Context, userID, journalID string) error {
	return m.Called(ctx, userID, journalID).Error(0)
}

func (m *MockJournalService) CreateEntry(ctx context.Context, userID, journalID string) (*domain.Entry, error) {
	args := m.Called(ctx, userID, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *MockJournalService) SaveEntry(ctx context.Context, userID, journalID, entryID, content string) (*dto.SaveEntryResponse, error) {
	args := m.Called(ctx, userID, journalID, entryID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SaveEntryResponse), args.Error(1)
}

func (m *MockJournalService) DeleteEntry(ctx context.Context, userID, journalID, entryID string) error {
	return m.Called(ctx, userID, journalID, entryID).Error(0)
}

type MockQuizService struct{ mock.Mock }

var _ portssvc.QuizSvcFacade = (*MockQuizService)(nil)

func (m *MockQuizService) SubmitQuiz(ctx context.Context, userID string, responses map[int]int) (*domain.QuizResult, error) {
	args := m.Called(ctx, userID, responses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuizResult), args.Error(1)
}

func (m *MockQuizService) GetQuizStats(ctx context.Context, userID string) ([]domain.QuizStat, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.QuizStat), args.Error(1)
}

type MockAnalysisGateway struct{ mock.Mock }

func (m *MockAnalysisGateway) Analyze(ctx context.Context, text, sessionToken string) (*domain.AnalysisResult, error) {
	args := m.Called(ctx, text, sessionToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnalysisResult), args.Error(1)
}

type MockLiveSessionService struct{ mock.Mock }

func (m *MockLiveSessionService) CreateLiveSession(ctx context.Context) (*domain.LiveSession, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LiveSession), args.Error(1)
}

type MockMediaService struct{ mock.Mock }

func (m *MockMediaService) CreateUploadURL(ctx context.Context, userID, filename, contentType string) (*domain.UploadTicket, error) {
	args := m.Called(ctx, userID, filename, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UploadTicket), args.Error(1)
}
