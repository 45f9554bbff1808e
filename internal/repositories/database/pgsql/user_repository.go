package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/apperrors"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/domain"
	portsrepo "github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/ports/repositories"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/models"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/utils/mapping"
)

type PgxUserRepository struct {
	BaseRepository
}

// NewPgxUserRepository creates the repository for users and their capabilities.
func NewPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepository {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.UserRepository = (*PgxUserRepository)(nil)

const userColumns = `user_id, name, email, password_hash, created_at, created_by, last_updated_at, last_updated_by`

// SaveUser persists a new user.
func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.UserID,
		m.Name,
		m.Email,
		m.PasswordHash,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "user with email "+user.Email+" already exists", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert user "+user.UserID, err)
	}
	return nil
}

// FindUserByID retrieves a user by ID.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`
	return r.scanUser(ctx, query, userID)
}

// FindUserByEmail retrieves a user by email.
func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1;`
	return r.scanUser(ctx, query, email)
}

func (r *PgxUserRepository) scanUser(ctx context.Context, query string, arg any) (*domain.User, error) {
	var m models.User
	err := r.Pool.QueryRow(ctx, query, arg).Scan(
		&m.UserID,
		&m.Name,
		&m.Email,
		&m.PasswordHash,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find user", err)
	}
	user := mapping.ToDomainUser(m)
	return &user, nil
}

// FindUserSummaries resolves user IDs to actor summaries. Unknown IDs are
// absent from the result map.
func (r *PgxUserRepository) FindUserSummaries(ctx context.Context, userIDs []string) (map[string]domain.ActorSummary, error) {
	if len(userIDs) == 0 {
		return map[string]domain.ActorSummary{}, nil
	}

	query := `SELECT user_id, name, email FROM users WHERE user_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, userIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query user summaries", err)
	}
	defer rows.Close()

	summaries := make(map[string]domain.ActorSummary, len(userIDs))
	for rows.Next() {
		var s domain.ActorSummary
		if err := rows.Scan(&s.UserID, &s.Name, &s.Email); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan user summary row", err)
		}
		summaries[s.UserID] = s
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating user summary rows", err)
	}

	return summaries, nil
}

// FindCapabilities returns the capability names granted to a user.
func (r *PgxUserRepository) FindCapabilities(ctx context.Context, userID string) ([]string, error) {
	query := `SELECT capability FROM user_capabilities WHERE user_id = $1;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query capabilities for user "+userID, err)
	}
	defer rows.Close()

	capabilities := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan capability row for user "+userID, err)
		}
		capabilities = append(capabilities, c)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating capability rows for user "+userID, err)
	}

	return capabilities, nil
}

// FindUserIDsWithCapability returns the IDs of all users holding a capability.
func (r *PgxUserRepository) FindUserIDsWithCapability(ctx context.Context, capability string) ([]string, error) {
	query := `SELECT user_id FROM user_capabilities WHERE capability = $1;`
	rows, err := r.Pool.Query(ctx, query, capability)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query users with capability "+capability, err)
	}
	defer rows.Close()

	userIDs := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan user ID row for capability "+capability, err)
		}
		userIDs = append(userIDs, id)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating user ID rows for capability "+capability, err)
	}

	return userIDs, nil
}
