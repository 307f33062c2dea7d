package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/burnout_journal/internal/apperrors"
	"github.com/SscSPs/burnout_journal/internal/core/domain"
	portsrepo "github.com/SscSPs/burnout_journal/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/burnout_journal/internal/core/ports/services"
	"github.com/SscSPs/burnout_journal/internal/core/services"
	"github.com/SscSPs/burnout_journal/internal/dto"
	"github.com/SscSPs/burnout_journal/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByProviderDetails(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error) {
	args := m.Called(ctx, provider, providerUserID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, userID string, profile domain.Profile, updatedAt time.Time) error {
	args := m.Called(ctx, userID, profile, updatedAt)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time) error {
	args := m.Called(ctx, userID, deletedAt)
	return args.Error(0)
}

// --- Test Suite ---
type UserServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	service  portssvc.UserSvcFacade
	ctx      context.Context
	now      time.Time
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockUserRepository)
	suite.ctx = context.Background()
	suite.now = time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	suite.service = services.NewUserService(suite.mockRepo, services.WithUserClock(func() time.Time { return suite.now }))
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func (suite *UserServiceTestSuite) TestSignUp_Success() {
	req := dto.SignUpRequest{Email: "  Ada@Example.com ", Password: "correct horse", DisplayName: " Ada "}
	suite.mockRepo.On("SaveUser", suite.ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Email == "ada@example.com" &&
			u.AuthProvider == domain.ProviderLocal &&
			u.Profile.DisplayName == "Ada" &&
			u.Profile.Timezone == "UTC" &&
			u.CreatedAt.Equal(suite.now) &&
			utils.CheckPasswordHash("correct horse", u.PasswordHash)
	})).Return(nil).Once()

	user, err := suite.service.SignUp(suite.ctx, req)

	suite.Require().NoError(err)
	_, parseErr := uuid.Parse(user.UserID)
	suite.NoError(parseErr)
	suite.NotEqual("correct horse", user.PasswordHash)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestSignUp_DuplicateEmail() {
	suite.mockRepo.On("SaveUser", suite.ctx, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.SignUp(suite.ctx, dto.SignUpRequest{Email: "a@b.co", Password: "password1"})

	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Equal(409, apperrors.StatusCode(err))
}

func (suite *UserServiceTestSuite) TestAuthenticateUser() {
	hash, err := utils.HashPassword("s3cret-pass")
	suite.Require().NoError(err)
	stored := &domain.User{UserID: "u1", Email: "ada@example.com", PasswordHash: hash, AuthProvider: domain.ProviderLocal}

	suite.mockRepo.On("FindUserByEmail", suite.ctx, "ada@example.com").Return(stored, nil)

	user, err := suite.service.AuthenticateUser(suite.ctx, "ADA@example.com", "s3cret-pass")
	suite.Require().NoError(err)
	suite.Equal("u1", user.UserID)

	_, err = suite.service.AuthenticateUser(suite.ctx, "ada@example.com", "wrong")
	suite.ErrorIs(err, services.ErrInvalidCredentials)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_UnknownOrGoogleOnly() {
	suite.mockRepo.On("FindUserByEmail", suite.ctx, "nobody@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindUserByEmail", suite.ctx, "g@example.com").
		Return(&domain.User{UserID: "g1", AuthProvider: domain.ProviderGoogle}, nil).Once()

	_, err := suite.service.AuthenticateUser(suite.ctx, "nobody@example.com", "x")
	suite.ErrorIs(err, services.ErrInvalidCredentials)

	_, err = suite.service.AuthenticateUser(suite.ctx, "g@example.com", "")
	suite.ErrorIs(err, services.ErrInvalidCredentials)
}

func (suite *UserServiceTestSuite) TestUpsertGoogleUser_Existing() {
	existing := &domain.User{UserID: "u-google", AuthProvider: domain.ProviderGoogle, ProviderUserID: "sub-1"}
	suite.mockRepo.On("FindUserByProviderDetails", suite.ctx, domain.ProviderGoogle, "sub-1").Return(existing, nil).Once()

	user, err := suite.service.UpsertGoogleUser(suite.ctx, domain.GoogleIdentity{Subject: "sub-1"})

	suite.Require().NoError(err)
	suite.Equal(existing, user)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestUpsertGoogleUser_CreatesOnFirstSignIn() {
	suite.mockRepo.On("FindUserByProviderDetails", suite.ctx, domain.ProviderGoogle, "sub-2").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveUser", suite.ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.ProviderUserID == "sub-2" && u.Email == "grace@example.com" && u.Profile.DisplayName == "Grace" && u.PasswordHash == ""
	})).Return(nil).Once()

	user, err := suite.service.UpsertGoogleUser(suite.ctx, domain.GoogleIdentity{
		Subject: "sub-2", Email: "Grace@example.com", Name: "Grace", EmailVerified: true,
	})

	suite.Require().NoError(err)
	suite.Equal(domain.ProviderGoogle, user.AuthProvider)
}

func (suite *UserServiceTestSuite) TestUpsertGoogleUser_UnverifiedEmail() {
	suite.mockRepo.On("FindUserByProviderDetails", suite.ctx, domain.ProviderGoogle, "sub-3").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.UpsertGoogleUser(suite.ctx, domain.GoogleIdentity{Subject: "sub-3", Email: "x@example.com"})

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestGetProfile_FillsDefaults() {
	suite.mockRepo.On("FindUserByID", suite.ctx, "u1").
		Return(&domain.User{UserID: "u1", Profile: domain.Profile{DisplayName: "Ada"}}, nil).Once()

	profile, err := suite.service.GetProfile(suite.ctx, "u1")

	suite.Require().NoError(err)
	suite.Equal(domain.Profile{DisplayName: "Ada", Timezone: "UTC", DateFormat: domain.DateFormatISO, TimeFormat: domain.TimeFormat24h}, *profile)
}

func (suite *UserServiceTestSuite) TestUpdateProfile_MergesFields() {
	tz := "Europe/Berlin"
	format := domain.TimeFormat12h
	suite.mockRepo.On("FindUserByID", suite.ctx, "u1").
		Return(&domain.User{UserID: "u1", Profile: domain.DefaultProfile()}, nil).Once()
	want := domain.DefaultProfile()
	want.Timezone = tz
	want.TimeFormat = format
	suite.mockRepo.On("UpdateProfile", suite.ctx, "u1", want, suite.now).Return(nil).Once()

	profile, err := suite.service.UpdateProfile(suite.ctx, "u1", dto.UpdateProfileRequest{Timezone: &tz, TimeFormat: &format})

	suite.Require().NoError(err)
	suite.Equal(want, *profile)
}

func (suite *UserServiceTestSuite) TestUpdateProfile_UnknownTimezone() {
	tz := "Mars/Olympus_Mons"
	suite.mockRepo.On("FindUserByID", suite.ctx, "u1").Return(&domain.User{UserID: "u1"}, nil).Once()

	_, err := suite.service.UpdateProfile(suite.ctx, "u1", dto.UpdateProfileRequest{Timezone: &tz})

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateProfile", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestDeleteUser() {
	suite.mockRepo.On("MarkUserDeleted", suite.ctx, "u1", suite.now).Return(nil).Once()
	suite.mockRepo.On("MarkUserDeleted", suite.ctx, "missing", suite.now).Return(apperrors.ErrNotFound).Once()

	suite.NoError(suite.service.DeleteUser(suite.ctx, "u1"))
	suite.ErrorIs(suite.service.DeleteUser(suite.ctx, "missing"), apperrors.ErrNotFound)
}

func TestGetUserByID_NotFound(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("FindUserByID", mock.Anything, "ghost").Return(nil, apperrors.ErrNotFound)

	_, err := services.NewUserService(repo).GetUserByID(context.Background(), "ghost")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, 404, apperrors.StatusCode(err))
}
