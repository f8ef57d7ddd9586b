package user

import (
	"context"
	"log/slog"
	"strings"

	"github.com/frahmantamala/kpi-portal/internal"
	"github.com/frahmantamala/kpi-portal/internal/auth"
	"github.com/frahmantamala/kpi-portal/internal/core/common/validation"
	userDatamodel "github.com/frahmantamala/kpi-portal/internal/core/datamodel/user"
	"github.com/frahmantamala/kpi-portal/internal/core/dberr"
	"github.com/frahmantamala/kpi-portal/internal/core/events"
)

const (
	msgDuplicateEmail = "این ایمیل قبلا ثبت شده است"
	msgSelfDemotion   = "نمی‌توانید دسترسی مدیریت خود را حذف کنید"
	msgSelfDelete     = "نمی‌توانید حساب کاربری خود را حذف کنید"
	msgSelfDeactivate = "نمی‌توانید حساب کاربری خود را غیرفعال کنید"
)

// RepositoryAPI returns (nil, nil) from single-row getters when nothing matches.
type RepositoryAPI interface {
	List(ctx context.Context) ([]*userDatamodel.User, error)
	GetByID(ctx context.Context, id int64) (*userDatamodel.User, error)
	Create(ctx context.Context, u *userDatamodel.User) error
	Update(ctx context.Context, u *userDatamodel.User) error
	UpdateRoles(ctx context.Context, id int64, isAdmin, isTechnicalDeputy bool) error
	Delete(ctx context.Context, id int64) error
	NamesByIDs(ctx context.Context, ids []int64) (map[int64]string, error)
}

type Service struct {
	repo       RepositoryAPI
	publisher  events.Publisher
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, publisher events.Publisher, bcryptCost int, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		publisher:  publisher,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

func (s *Service) GetByID(ctx context.Context, userID int64) (*User, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}
	if u == nil {
		return nil, internal.ErrUserNotFound
	}
	return FromDataModel(u), nil
}

func (s *Service) ListUsers(ctx context.Context) ([]*User, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}
	out := make([]*User, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row))
	}
	return out, nil
}

func (s *Service) CreateUser(ctx context.Context, dto CreateUserDTO) (*User, error) {
	dto.Name = strings.TrimSpace(dto.Name)
	dto.Email = normalizeEmail(dto.Email)
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}

	row := &userDatamodel.User{
		Name:              dto.Name,
		Email:             dto.Email,
		PasswordHash:      hash,
		IsAdmin:           dto.IsAdmin,
		IsTechnicalDeputy: dto.IsTechnicalDeputy,
		IsActive:          true,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		if dberr.IsUniqueViolation(err) {
			return nil, internal.NewDuplicateError(msgDuplicateEmail, internal.ErrCodeDuplicateEmail)
		}
		s.logger.Error("failed to create user", "error", err)
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}

	s.logger.Info("user created", "user_id", row.ID)
	return FromDataModel(row), nil
}

// UpdateUser edits any account. Deactivating the caller's own account is
// rejected.
func (s *Service) UpdateUser(ctx context.Context, principal *internal.User, dto UpdateUserDTO) (*User, error) {
	if principal == nil {
		return nil, internal.ErrUnauthenticated
	}
	dto.Name = strings.TrimSpace(dto.Name)
	dto.Email = normalizeEmail(dto.Email)
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}
	if dto.ID == principal.ID && dto.IsActive != nil && !*dto.IsActive {
		return nil, internal.NewValidationError(msgSelfDeactivate, internal.ErrCodeSelfDeactivate)
	}

	row, err := s.repo.GetByID(ctx, dto.ID)
	if err != nil {
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}
	if row == nil {
		return nil, internal.ErrUserNotFound
	}

	row.Name = dto.Name
	row.Email = dto.Email
	if dto.IsActive != nil {
		row.IsActive = *dto.IsActive
	}
	if dto.Password != "" {
		hash, err := auth.HashPassword(dto.Password, s.bcryptCost)
		if err != nil {
			return nil, internal.NewInternalError(internal.MsgInternal, err)
		}
		row.PasswordHash = hash
	}

	if err := s.repo.Update(ctx, row); err != nil {
		if dberr.IsUniqueViolation(err) {
			return nil, internal.NewDuplicateError(msgDuplicateEmail, internal.ErrCodeDuplicateEmail)
		}
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}
	return FromDataModel(row), nil
}

func (s *Service) DeleteUser(ctx context.Context, principal *internal.User, id int64) error {
	if principal == nil {
		return internal.ErrUnauthenticated
	}
	if principal.ID == id {
		return internal.NewValidationError(msgSelfDelete, internal.ErrCodeSelfDelete)
	}

	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return internal.NewInternalError(internal.MsgInternal, err)
	}
	if row == nil {
		return internal.ErrUserNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return internal.NewInternalError(internal.MsgInternal, err)
	}

	s.logger.Info("user deleted", "user_id", id, "deleted_by", principal.ID)
	return nil
}

// UpdateRoles toggles the role flags of any user. An admin clearing their own
// admin flag is rejected rather than ignored.
func (s *Service) UpdateRoles(ctx context.Context, principal *internal.User, dto UpdateRolesDTO) (*User, error) {
	if principal == nil {
		return nil, internal.ErrUnauthenticated
	}
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}
	if dto.UserID == principal.ID && dto.IsAdmin != nil && !*dto.IsAdmin {
		return nil, internal.NewValidationError(msgSelfDemotion, internal.ErrCodeSelfDemotion)
	}

	row, err := s.repo.GetByID(ctx, dto.UserID)
	if err != nil {
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}
	if row == nil {
		return nil, internal.ErrUserNotFound
	}

	if dto.IsAdmin != nil {
		row.IsAdmin = *dto.IsAdmin
	}
	if dto.IsTechnicalDeputy != nil {
		row.IsTechnicalDeputy = *dto.IsTechnicalDeputy
	}
	if err := s.repo.UpdateRoles(ctx, row.ID, row.IsAdmin, row.IsTechnicalDeputy); err != nil {
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}

	s.logger.Info("roles updated",
		"user_id", row.ID,
		"is_admin", row.IsAdmin,
		"is_technical_deputy", row.IsTechnicalDeputy,
		"changed_by", principal.ID)
	_ = s.publisher.Publish(ctx, events.NewRolesUpdatedEvent(row.ID, principal.ID, row.IsAdmin, row.IsTechnicalDeputy))

	return FromDataModel(row), nil
}

func (s *Service) NamesByIDs(ctx context.Context, ids []int64) (map[int64]string, error) {
	return s.repo.NamesByIDs(ctx, ids)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
