package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/apperrors"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/domain"
	portssvc "github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/ports/services"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/services"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/dto"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/utils"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	mockAudit    *MockAuditSvc
	service      portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockAudit = new(MockAuditSvc)
	suite.service = services.NewUserService(suite.mockUserRepo, suite.mockAudit)
}

func (suite *UserServiceTestSuite) TestCreateUser_HashesPassword() {
	ctx := context.Background()
	actorID := uuid.NewString()
	req := dto.CreateUserRequest{Name: "Ana", Email: "ana@example.com", Password: "hunter2hunter2"}

	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Email == "ana@example.com" &&
			u.PasswordHash != "hunter2hunter2" &&
			utils.CheckPasswordHash("hunter2hunter2", u.PasswordHash)
	})).Return(nil).Once()
	suite.mockAudit.On("Record", ctx, domain.AuditActionCreate, domain.AuditModelUser, mock.AnythingOfType("string"), nil, mock.Anything, &actorID).Once()

	user, err := suite.service.CreateUser(ctx, req, actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.NotEmpty(user.UserID)
	suite.mockUserRepo.AssertExpectations(suite.T())
	suite.mockAudit.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_BootstrapHasNoActor() {
	ctx := context.Background()
	req := dto.CreateUserRequest{Name: "Ana", Email: "ana@example.com", Password: "hunter2hunter2"}

	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(nil).Once()
	suite.mockAudit.On("Record", ctx, domain.AuditActionCreate, domain.AuditModelUser, mock.AnythingOfType("string"), nil, mock.Anything, (*string)(nil)).Once()

	_, err := suite.service.CreateUser(ctx, req, "")

	suite.Require().NoError(err)
	suite.mockAudit.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_DuplicateEmail() {
	ctx := context.Background()
	req := dto.CreateUserRequest{Name: "Ana", Email: "ana@example.com", Password: "hunter2hunter2"}

	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(apperrors.ErrDuplicate).Once()

	user, err := suite.service.CreateUser(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(user)
	suite.mockAudit.AssertNotCalled(suite.T(), "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestAuthenticate_Success() {
	ctx := context.Background()
	hash, err := utils.HashPassword("hunter2hunter2")
	suite.Require().NoError(err)
	user := &domain.User{UserID: uuid.NewString(), Email: "ana@example.com", PasswordHash: hash}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "ana@example.com").Return(user, nil).Once()

	got, err := suite.service.Authenticate(ctx, "ana@example.com", "hunter2hunter2")

	suite.Require().NoError(err)
	suite.Equal(user.UserID, got.UserID)
}

func (suite *UserServiceTestSuite) TestAuthenticate_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("hunter2hunter2")
	suite.Require().NoError(err)
	user := &domain.User{UserID: uuid.NewString(), Email: "ana@example.com", PasswordHash: hash}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "ana@example.com").Return(user, nil).Once()

	got, err := suite.service.Authenticate(ctx, "ana@example.com", "wrong")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(got)
}

func (suite *UserServiceTestSuite) TestAuthenticate_UnknownEmailLooksTheSame() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByEmail", ctx, "ghost@example.com").Return(nil, apperrors.ErrNotFound).Once()

	got, err := suite.service.Authenticate(ctx, "ghost@example.com", "whatever")

	suite.Require().Error(err)
	// Same error as a wrong password, so the response does not leak which
	// part of the credentials failed.
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(got)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
