// Package users provides a PostgreSQL-backed repository for user records.
// Plaintext passwords are bcrypt-hashed here, at the point of persistence,
// so callers never deal with hashing.
package users

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/alexkarev/taskboard/internal/common"
	"github.com/alexkarev/taskboard/internal/dbx"
	"github.com/alexkarev/taskboard/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique constraint errors.
const uniqueViolation = "23505"

const bcryptCost = 12

// bcryptHashPattern matches values that are already bcrypt hashes, so a
// re-save of a loaded user does not hash the hash.
var bcryptHashPattern = regexp.MustCompile(`^\$2[aby]\$\d{2}\$`)

const userColumns = `id, name, email, password, is_email_verified, email_verification_token, last_login_at, role, position, team, created_at, updated_at`

// PostgresRepository implements Repository over dbx.DBTX (satisfied by
// *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// hashPassword hashes plaintext passwords at write time. Values that are
// already bcrypt hashes pass through unchanged.
func hashPassword(password string) (string, error) {
	if password == "" || bcryptHashPattern.MatchString(password) {
		return password, nil
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func marshalStrings(in []string) (any, error) {
	if in == nil {
		return nil, nil
	}
	b, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func unmarshalStrings(raw []byte) ([]string, error) {
	if raw == nil {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var (
		user              models.User
		verificationToken sql.NullString
		lastLoginAt       sql.NullTime
		position, team    []byte
	)

	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Password,
		&user.IsEmailVerified,
		&verificationToken,
		&lastLoginAt,
		&user.Role,
		&position,
		&team,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if verificationToken.Valid {
		user.EmailVerificationToken = &verificationToken.String
	}
	if lastLoginAt.Valid {
		t := lastLoginAt.Time
		user.LastLoginAt = &t
	}
	if user.Position, err = unmarshalStrings(position); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if user.Team, err = unmarshalStrings(team); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return &user, nil
}

// Create inserts a new user. The email unique index maps to
// common.ErrDuplicateEmail so callers that lose the duplicate-email race
// still see the typed conflict.
func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	password, err := hashPassword(user.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	position, err := marshalStrings(user.Position)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	team, err := marshalStrings(user.Team)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	role := user.Role
	if role == "" {
		role = models.RoleUser
	}

	query := `INSERT INTO users (name, email, password, email_verification_token, role, position, team)
	 VALUES ($1, $2, $3, $4, $5, $6, $7)
	 RETURNING ` + userColumns

	created, err := scanUser(r.db.QueryRowContext(ctx, query,
		user.Name, user.Email, password, user.EmailVerificationToken, role, position, team))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return created, nil
}

// GetByID returns the user with the given id, or common.ErrorNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

// GetByEmail returns the user with the given email (case-sensitive match),
// or common.ErrorNotFound.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

// List returns all users ordered by creation time.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return users, nil
}

// Update persists the mutable fields of user. A changed plaintext password
// is hashed; a value that is already a hash is stored as-is.
func (r *PostgresRepository) Update(ctx context.Context, user *models.User) (*models.User, error) {

	password, err := hashPassword(user.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	position, err := marshalStrings(user.Position)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	team, err := marshalStrings(user.Team)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	query := `UPDATE users
	 SET name = $1, email = $2, password = $3, role = $4, position = $5, team = $6, updated_at = now()
	 WHERE id = $7
	 RETURNING ` + userColumns

	updated, err := scanUser(r.db.QueryRowContext(ctx, query,
		user.Name, user.Email, password, user.Role, position, team, user.ID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return updated, nil
}

// UpdateLastLogin stamps last_login_at. Used on login and on a sliding
// token refresh; the last writer wins.
func (r *PostgresRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	query := `UPDATE users SET last_login_at = $1, updated_at = now() WHERE id = $2`

	if _, err := r.db.ExecContext(ctx, query, at, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// MarkEmailVerified flips is_email_verified and clears the stored
// verification token. The guard keeps a concurrent double-verify from
// re-running the transition.
func (r *PostgresRepository) MarkEmailVerified(ctx context.Context, id string) error {
	query := `UPDATE users
	 SET is_email_verified = TRUE, email_verification_token = NULL, updated_at = now()
	 WHERE id = $1 AND is_email_verified = FALSE`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Delete removes a user by id.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM users WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
