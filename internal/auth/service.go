package auth

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/frahmantamala/kpi-portal/internal"
	"github.com/frahmantamala/kpi-portal/internal/core/common/validation"
	userDatamodel "github.com/frahmantamala/kpi-portal/internal/core/datamodel/user"
)

// RepositoryAPI returns (nil, nil) when no user matches.
type RepositoryAPI interface {
	GetByEmail(ctx context.Context, email string) (*userDatamodel.User, error)
	GetByID(ctx context.Context, id int64) (*userDatamodel.User, error)
}

type ServiceAPI interface {
	Authenticate(ctx context.Context, dto LoginDTO) (*LoginResult, error)
	RefreshTokens(ctx context.Context, refreshToken string) (AuthTokens, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	LoadPrincipal(ctx context.Context, userID int64) (*internal.User, error)
}

type Service struct {
	repo           RepositoryAPI
	tokenGenerator TokenGenerator
	logger         *slog.Logger
}

func NewService(repo RepositoryAPI, tokenGen TokenGenerator, logger *slog.Logger) *Service {
	return &Service{
		repo:           repo,
		tokenGenerator: tokenGen,
		logger:         logger,
	}
}

// Authenticate validates credentials and returns tokens
func (s *Service) Authenticate(ctx context.Context, dto LoginDTO) (*LoginResult, error) {
	dto.Email = strings.ToLower(strings.TrimSpace(dto.Email))
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}

	u, err := s.repo.GetByEmail(ctx, dto.Email)
	if err != nil {
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}
	if u == nil || VerifyPassword(u.PasswordHash, dto.Password) != nil {
		s.logger.Warn("login rejected", "email", dto.Email)
		return nil, internal.ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, internal.ErrUserInactive
	}

	tokens, err := s.issue(u)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", "user_id", u.ID)
	return &LoginResult{AuthTokens: tokens, User: ToPrincipal(u)}, nil
}

// RefreshTokens exchanges a valid refresh token for a new pair. The user is
// re-read so that deactivated accounts cannot keep refreshing.
func (s *Service) RefreshTokens(ctx context.Context, refreshToken string) (AuthTokens, error) {
	if err := validation.Struct(RefreshTokenDTO{RefreshToken: refreshToken}); err != nil {
		return AuthTokens{}, err
	}

	claims, err := s.tokenGenerator.ValidateRefreshToken(refreshToken)
	if err != nil {
		return AuthTokens{}, err
	}
	userID, err := claims.ID()
	if err != nil {
		return AuthTokens{}, err
	}

	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return AuthTokens{}, internal.NewInternalError(internal.MsgInternal, err)
	}
	if u == nil {
		return AuthTokens{}, internal.ErrInvalidToken
	}
	if !u.IsActive {
		return AuthTokens{}, internal.ErrUserInactive
	}

	return s.issue(u)
}

func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.ValidateAccessToken(tokenString)
}

// LoadPrincipal reloads the session user from storage.
func (s *Service) LoadPrincipal(ctx context.Context, userID int64) (*internal.User, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}
	if u == nil {
		return nil, internal.ErrUnauthenticated
	}
	if !u.IsActive {
		return nil, internal.ErrUserInactive
	}
	return ToPrincipal(u), nil
}

func (s *Service) issue(u *userDatamodel.User) (AuthTokens, error) {
	accessToken, err := s.tokenGenerator.GenerateAccessToken(u.ID, u.Email)
	if err != nil {
		return AuthTokens{}, internal.NewInternalError(internal.MsgInternal, err)
	}
	refreshToken, err := s.tokenGenerator.GenerateRefreshToken(u.ID, u.Email)
	if err != nil {
		return AuthTokens{}, internal.NewInternalError(internal.MsgInternal, err)
	}
	return AuthTokens{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func ToPrincipal(u *userDatamodel.User) *internal.User {
	return &internal.User{
		ID:                u.ID,
		Email:             u.Email,
		Name:              u.Name,
		IsAdmin:           u.IsAdmin,
		IsTechnicalDeputy: u.IsTechnicalDeputy,
	}
}

func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
