package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/safestep/safestep-api/internal/models"
	"github.com/safestep/safestep-api/internal/repository"
	"github.com/safestep/safestep-api/internal/session"
	appErrors "github.com/safestep/safestep-api/pkg/errors"
)

type authUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id string, ts time.Time) error
}

type authSessionRepository interface {
	Create(ctx context.Context, s *models.Session) error
	Close(ctx context.Context, id string, logoutTime time.Time) error
}

// AuthConfig tunes the session lifecycle.
type AuthConfig struct {
	SessionTTL time.Duration
}

// AuthService owns credentials and the session lifecycle. It never reads
// ambient request state; callers pass client metadata and tokens explicitly.
type AuthService struct {
	users     authUserRepository
	sessions  authSessionRepository
	tokens    session.Store
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(users authUserRepository, sessions authSessionRepository, tokens session.Store, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.SessionTTL <= 0 {
		config.SessionTTL = 24 * time.Hour
	}
	return &AuthService{users: users, sessions: sessions, tokens: tokens, validator: validate, logger: logger, config: config}
}

// Register creates an account and opens a session for it, mirroring the
// login flow. The password is hashed with bcrypt before anything is stored.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResult, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)
	req.State = strings.TrimSpace(req.State)
	if req.Role == "" {
		req.Role = models.RoleParticipant
	}

	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "all fields required")
	}
	if req.Password != req.ConfirmPassword {
		return nil, appErrors.Clone(appErrors.ErrValidation, "passwords do not match")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		State:        req.State,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, appErrors.ErrDuplicateEmail
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create user")
	}

	token, err := s.startSession(ctx, user, req.IP, req.UserAgent)
	if err != nil {
		return nil, err
	}
	return &models.AuthResult{User: user.Info(), Token: token}, nil
}

// Login verifies credentials and opens a session. A missing account and a
// wrong password produce the same failure so neither case is distinguishable
// to the caller.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResult, error) {
	req.Email = normalizeEmail(req.Email)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "email and password required")
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, appErrors.ErrInvalidCredentials
	}

	token, err := s.startSession(ctx, user, req.IP, req.UserAgent)
	if err != nil {
		return nil, err
	}
	return &models.AuthResult{User: user.Info(), Token: token}, nil
}

// Logout invalidates the session token. Deleting the server-side binding is
// the security control; stamping the session row's logout time is audit
// trail and must not fail the request.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return appErrors.ErrUnauthorized
	}
	binding, err := s.tokens.Resolve(ctx, token)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve session")
	}
	if binding == nil {
		return appErrors.ErrUnauthorized
	}

	if err := s.tokens.Delete(ctx, token); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to end session")
	}

	if err := s.sessions.Close(ctx, binding.SessionID, time.Now().UTC()); err != nil {
		s.logger.Warn("failed to stamp session logout", zap.String("session_id", binding.SessionID), zap.Error(err))
	}
	return nil
}

// CurrentUser resolves a token to the user it belongs to. An unknown or
// expired token yields (nil, nil): anonymous, not an error.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, nil
	}
	binding, err := s.tokens.Resolve(ctx, token)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve session")
	}
	if binding == nil {
		return nil, nil
	}

	user, err := s.users.FindByID(ctx, binding.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}
	return user, nil
}

func (s *AuthService) startSession(ctx context.Context, user *models.User, ip, agent string) (string, error) {
	sess := &models.Session{
		UserID:    user.ID,
		IPAddress: ip,
		UserAgent: agent,
		LoginTime: time.Now().UTC(),
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record session")
	}

	token, err := session.NewToken()
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create session token")
	}
	binding := session.Binding{UserID: user.ID, SessionID: sess.ID}
	if err := s.tokens.Save(ctx, token, binding, s.config.SessionTTL); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store session token")
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID, sess.LoginTime); err != nil {
		s.logger.Warn("failed to update last login", zap.String("user_id", user.ID), zap.Error(err))
	}
	return token, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
