package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adithyanarayan/stockline-backend/internal/session"
	"github.com/adithyanarayan/stockline-backend/internal/users"
	pkgauth "github.com/adithyanarayan/stockline-backend/pkg/auth"
	authsession "github.com/adithyanarayan/stockline-backend/pkg/auth/session"
	"github.com/adithyanarayan/stockline-backend/pkg/config"
	"github.com/adithyanarayan/stockline-backend/pkg/db/models"
	"github.com/adithyanarayan/stockline-backend/pkg/enums"
	pkgerrors "github.com/adithyanarayan/stockline-backend/pkg/errors"
	"github.com/adithyanarayan/stockline-backend/pkg/logger"
	"github.com/adithyanarayan/stockline-backend/pkg/security"
)

// LoginInput carries the credential payload.
type LoginInput struct {
	Email    string
	Password string
}

// TokenPair is returned on login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// LoginResult is the API response for a successful login.
type LoginResult struct {
	TokenPair
	UserID     uuid.UUID      `json:"user_id"`
	Name       string         `json:"name"`
	Role       enums.UserRole `json:"role"`
	SalesmanID *uuid.UUID     `json:"salesman_id,omitempty"`
}

// CreateUserInput holds the payload to provision an account.
type CreateUserInput struct {
	Name       string
	Email      string
	Phone      *string
	Password   string
	Role       enums.UserRole
	SalesmanID *uuid.UUID
	Address    *string
}

// Service exposes authentication and account provisioning.
type Service interface {
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
	Refresh(ctx context.Context, accessToken, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, claims *pkgauth.AccessTokenClaims) error
	CreateUser(ctx context.Context, actorID uuid.UUID, actorRole enums.UserRole, input CreateUserInput) (*models.User, error)
}

type sessionManager interface {
	Generate(ctx context.Context, accessID string) (string, error)
	Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error)
	Revoke(ctx context.Context, accessID string) error
}

type service struct {
	users    users.Repository
	sessions sessionManager
	registry *session.Registry
	cfg      *config.Config
	logg     *logger.Logger
	now      func() time.Time
}

// NewService constructs an auth service instance.
func NewService(userRepo users.Repository, sessions sessionManager, registry *session.Registry, cfg *config.Config, logg *logger.Logger) (Service, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session manager required")
	}
	if registry == nil {
		return nil, fmt.Errorf("session registry required")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		users:    userRepo,
		sessions: sessions,
		registry: registry,
		cfg:      cfg,
		logg:     logg,
		now:      time.Now,
	}, nil
}

func (s *service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" || input.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading user")
	}
	if !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	ok, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verifying password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	accessID := authsession.NewAccessID()
	accessToken, err := pkgauth.MintAccessToken(s.cfg.JWT, s.now(), pkgauth.AccessTokenPayload{
		UserID:     user.ID,
		Role:       user.Role,
		SalesmanID: user.SalesmanID,
		JTI:        accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting access token")
	}

	refreshToken, err := s.sessions.Generate(ctx, accessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "storing session")
	}

	if err := s.users.TouchLastLogin(ctx, user.ID, s.now()); err != nil {
		s.logg.Warn(s.logg.WithUserID(ctx, user.ID.String()), "failed to record last login")
	}

	logCtx := s.logg.WithUserID(ctx, user.ID.String())
	s.logg.Info(logCtx, "user logged in")

	return &LoginResult{
		TokenPair:  TokenPair{AccessToken: accessToken, RefreshToken: refreshToken},
		UserID:     user.ID,
		Name:       user.Name,
		Role:       user.Role,
		SalesmanID: user.SalesmanID,
	}, nil
}

func (s *service) Refresh(ctx context.Context, accessToken, refreshToken string) (*TokenPair, error) {
	claims, err := pkgauth.ParseAccessTokenAllowExpired(s.cfg.JWT, accessToken)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid access token")
	}

	newAccessID, newRefresh, err := s.sessions.Rotate(ctx, claims.ID, refreshToken)
	if err != nil {
		if errors.Is(err, authsession.ErrInvalidRefreshToken) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid refresh token")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rotating session")
	}

	newAccess, err := pkgauth.MintAccessToken(s.cfg.JWT, s.now(), pkgauth.AccessTokenPayload{
		UserID:     claims.UserID,
		Role:       claims.Role,
		SalesmanID: claims.SalesmanID,
		JTI:        newAccessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting access token")
	}

	return &TokenPair{AccessToken: newAccess, RefreshToken: newRefresh}, nil
}

func (s *service) Logout(ctx context.Context, claims *pkgauth.AccessTokenClaims) error {
	if claims == nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	if err := s.sessions.Revoke(ctx, claims.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoking session")
	}
	s.registry.NotifyRevoked(claims.UserID)

	logCtx := s.logg.WithUserID(ctx, claims.UserID.String())
	s.logg.Info(logCtx, "user logged out")
	return nil
}

func (s *service) CreateUser(ctx context.Context, actorID uuid.UUID, actorRole enums.UserRole, input CreateUserInput) (*models.User, error) {
	if !input.Role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role")
	}
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Email) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name and email are required")
	}

	salesmanID := input.SalesmanID
	switch actorRole {
	case enums.UserRoleAdmin:
		// admins can provision any role
	case enums.UserRoleSalesman:
		if input.Role != enums.UserRoleCustomer && input.Role != enums.UserRoleWorker {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "salesmen can only create customers and workers")
		}
		id := actorID
		salesmanID = &id
	default:
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "role cannot create users")
	}

	if (input.Role == enums.UserRoleCustomer || input.Role == enums.UserRoleWorker) && salesmanID == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "salesman id is required for customers and workers")
	}

	password := input.Password
	if password == "" {
		generated, err := security.GenerateTempPassword(12)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generating password")
		}
		password = generated
	}
	hash, err := security.HashPassword(password, s.cfg.Password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hashing password")
	}

	user := &models.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:        input.Phone,
		PasswordHash: hash,
		Role:         input.Role,
		SalesmanID:   salesmanID,
		Address:      input.Address,
		IsActive:     true,
	}
	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "creating user")
	}
	return created, nil
}
