// Package services implements the application logic on top of the
// repository layer: authentication and the user/task/project operations.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexkarev/taskboard/internal/common"
	"github.com/alexkarev/taskboard/internal/logging"
	"github.com/alexkarev/taskboard/internal/server/auth"
	"github.com/alexkarev/taskboard/internal/server/config"
	"github.com/alexkarev/taskboard/internal/server/mail"
	"github.com/alexkarev/taskboard/internal/server/models"
	"github.com/alexkarev/taskboard/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

// TokenStatus is the result of a validity check. It is always populated,
// even for garbage input.
type TokenStatus struct {
	IsValid       bool
	ExpiresAt     time.Time
	TimeRemaining time.Duration
}

// RefreshResult carries the outcome of a sliding refresh attempt. Token is
// the refreshed token when Refreshed is true, otherwise the original one.
type RefreshResult struct {
	Token     string
	Refreshed bool
	Message   string
}

// VerifyEmailResult reports the outcome of an email verification attempt.
type VerifyEmailResult struct {
	Success bool
	Message string
}

// AuthService implements registration, login and the JWT session lifecycle.
type AuthService struct {
	db                 *sql.DB
	repomanager        repomanager.RepositoryManager
	mailer             mail.Mailer
	logger             logging.Logger
	sessionSecret      []byte
	verificationSecret []byte
	tokenValidity      time.Duration
	refreshWindow      time.Duration
	baseURL            string
}

// NewAuthService wires the auth service from configuration.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, mailer mail.Mailer, logger logging.Logger, cfg *config.Config) *AuthService {
	return &AuthService{
		db:                 db,
		repomanager:        m,
		mailer:             mailer,
		logger:             logger,
		sessionSecret:      []byte(cfg.SessionSecretKey),
		verificationSecret: []byte(cfg.VerificationSecretKey),
		tokenValidity:      cfg.TokenValidityDuration,
		refreshWindow:      cfg.TokenRefreshWindow,
		baseURL:            cfg.BaseURL,
	}
}

// Register creates a new user with an unverified email and dispatches the
// verification email in the background. The plaintext password is hashed by
// the users repository at write time.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, error) {

	repo := s.repomanager.Users(s.db)

	// Pre-check keeps the common case off the unique index; the index still
	// backstops a lost race inside Create.
	if _, err := repo.GetByEmail(ctx, email); err == nil {
		return nil, common.ErrDuplicateEmail
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrorInternal
	}

	verificationToken, err := auth.GenerateToken(email, auth.PurposeEmailVerification, s.verificationSecret, s.tokenValidity)
	if err != nil {
		return nil, fmt.Errorf("error generating verification token: %v", err)
	}

	user := &models.User{
		Name:                   name,
		Email:                  email,
		Password:               password,
		EmailVerificationToken: &verificationToken,
	}

	created, err := repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %v", err)
	}

	// Registration succeeds even when the mail cannot be sent; the failure
	// only gets logged.
	go s.sendVerificationEmail(created.Email, verificationToken)

	return created.Public(), nil
}

func (s *AuthService) sendVerificationEmail(email, token string) {
	if !s.mailer.IsEnabled() {
		return
	}
	if err := s.mailer.Send(mail.VerificationEmail(email, token, s.baseURL)); err != nil {
		s.logger.Error(context.Background(), "error sending verification email", "email", email, "error", err)
	}
}

// Login checks the credentials and issues a session token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrInvalidCredentials
		}
		return nil, "", common.ErrorInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", common.ErrInvalidCredentials
	}

	now := time.Now()
	if err := repo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, "", common.ErrorInternal
	}
	user.LastLoginAt = &now

	token, err := auth.GenerateToken(user.ID, auth.PurposeSession, s.sessionSecret, s.tokenValidity)
	if err != nil {
		return nil, "", fmt.Errorf("error generating session token: %v", err)
	}

	return user.Public(), token, nil
}

// VerifyEmail consumes a verification token. Re-verifying an already
// verified address is a soft no-op, not an error.
func (s *AuthService) VerifyEmail(ctx context.Context, tokenString string) (*VerifyEmailResult, error) {

	claims, err := auth.ParseToken(tokenString, s.verificationSecret)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			return nil, common.ErrVerificationTokenExpired
		}
		return nil, common.ErrInvalidVerificationToken
	}
	if claims.Purpose != auth.PurposeEmailVerification {
		return nil, common.ErrInvalidVerificationToken
	}

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	if user.IsEmailVerified {
		return &VerifyEmailResult{Success: false, Message: "Email already verified"}, nil
	}

	if err := repo.MarkEmailVerified(ctx, user.ID); err != nil {
		return nil, common.ErrorInternal
	}

	return &VerifyEmailResult{Success: true, Message: "Email verified successfully"}, nil
}

// CheckTokenValidity reports whether a session token is currently valid and
// how long it has left. It never returns an error: garbage input is simply
// an invalid token.
func (s *AuthService) CheckTokenValidity(tokenString string) *TokenStatus {

	claims, err := auth.ParseToken(tokenString, s.sessionSecret)
	if err != nil || claims.Purpose != auth.PurposeSession {
		return &TokenStatus{}
	}

	expiresAt := claims.ExpiresAt.Time
	remaining := time.Until(expiresAt)
	if remaining < 0 {
		remaining = 0
	}

	return &TokenStatus{IsValid: true, ExpiresAt: expiresAt, TimeRemaining: remaining}
}

// ResetTokenIfActive implements the sliding session: a valid token inside
// the refresh window is replaced with a fresh full-validity one and the
// user's last_login_at is stamped. A token outside the window is returned
// unchanged. Anything unparseable, expired included, is rejected.
func (s *AuthService) ResetTokenIfActive(ctx context.Context, tokenString string) (*RefreshResult, error) {

	claims, err := auth.ParseToken(tokenString, s.sessionSecret)
	if err != nil || claims.Purpose != auth.PurposeSession {
		return nil, common.ErrInvalidToken
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining <= 0 {
		return nil, common.ErrInvalidToken
	}

	if remaining > s.refreshWindow {
		return &RefreshResult{Token: tokenString, Refreshed: false, Message: "Token is still valid, no refresh needed"}, nil
	}

	newToken, err := auth.GenerateToken(claims.Subject, auth.PurposeSession, s.sessionSecret, s.tokenValidity)
	if err != nil {
		return nil, fmt.Errorf("error generating session token: %v", err)
	}

	if err := s.repomanager.Users(s.db).UpdateLastLogin(ctx, claims.Subject, time.Now()); err != nil {
		return nil, common.ErrorInternal
	}

	return &RefreshResult{Token: newToken, Refreshed: true, Message: "Token refreshed successfully"}, nil
}

// VerifyToken validates a session token and resolves its subject to a full
// user record.
func (s *AuthService) VerifyToken(ctx context.Context, tokenString string) (*models.User, error) {

	claims, err := auth.ParseToken(tokenString, s.sessionSecret)
	if err != nil {
		return nil, err
	}
	if claims.Purpose != auth.PurposeSession {
		return nil, common.ErrInvalidToken
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, common.ErrorInternal
	}

	return user, nil
}
