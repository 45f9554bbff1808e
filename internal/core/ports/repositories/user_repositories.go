package repositories

import (
	"context"

	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/domain"
)

// UserRepository owns the users and user_capabilities tables.
type UserRepository interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// FindUserByID retrieves a user by ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by email.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUserSummaries resolves a set of user IDs to actor summaries.
	// Unknown IDs are simply absent from the result map.
	FindUserSummaries(ctx context.Context, userIDs []string) (map[string]domain.ActorSummary, error)

	// FindCapabilities returns the capability names granted to a user.
	FindCapabilities(ctx context.Context, userID string) ([]string, error)

	// FindUserIDsWithCapability returns the IDs of all users holding a capability.
	FindUserIDsWithCapability(ctx context.Context, capability string) ([]string, error)
}
