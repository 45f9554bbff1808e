package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/apperrors"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/domain"
	portsrepo "github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/ports/repositories"
	portssvc "github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/ports/services"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/dto"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/middleware"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/utils"
)

// UserService manages backoffice users.
type UserService struct {
	userRepo portsrepo.UserRepository
	audit    portssvc.AuditSvcFacade
	now      func() time.Time
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepository, audit portssvc.AuditSvcFacade) *UserService {
	return &UserService{userRepo: userRepo, audit: audit, now: time.Now}
}

var _ portssvc.UserSvcFacade = (*UserService)(nil)

// CreateUser registers a user with a bcrypt-hashed password. actorID may be
// empty during bootstrap; the audit entry then has no actor.
func (s *UserService) CreateUser(ctx context.Context, req dto.CreateUserRequest, actorID string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", slog.String("error", err.Error()))
		return nil, err
	}

	now := s.now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: email already registered", apperrors.ErrDuplicate)
		}
		logger.Error("Failed to save user", slog.String("error", err.Error()))
		return nil, err
	}

	var auditActor *string
	if actorID != "" {
		auditActor = &actorID
	}
	s.audit.Record(ctx, domain.AuditActionCreate, domain.AuditModelUser, user.UserID, nil, user, auditActor)

	logger.Info("User created", slog.String("user_id", user.UserID))
	return &user, nil
}

// Authenticate verifies the credentials and returns the user. Unknown email
// and wrong password both come back as ErrForbidden so the response does not
// reveal which part failed.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrForbidden)
		}
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrForbidden)
	}
	return user, nil
}

// GetUserByID returns a user by ID.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}
