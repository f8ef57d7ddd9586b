// Package profile lets a signed-in user maintain their own account details
// and profile image. Admins may do the same for any account.
package profile

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/frahmantamala/kpi-portal/internal"
	"github.com/frahmantamala/kpi-portal/internal/auth"
	"github.com/frahmantamala/kpi-portal/internal/core/common/validation"
	userDatamodel "github.com/frahmantamala/kpi-portal/internal/core/datamodel/user"
	"github.com/frahmantamala/kpi-portal/internal/core/dberr"
	"github.com/frahmantamala/kpi-portal/internal/user"
)

const (
	msgDuplicateEmail  = "این ایمیل قبلا ثبت شده است"
	msgWrongPassword   = "رمز عبور فعلی اشتباه است"
	msgPasswordConfirm = "تکرار رمز عبور با رمز جدید یکسان نیست"
	msgNoImage         = "تصویر پروفایلی برای حذف وجود ندارد"
)

type UserStore interface {
	GetByID(ctx context.Context, id int64) (*userDatamodel.User, error)
	Update(ctx context.Context, u *userDatamodel.User) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	UpdateProfileImage(ctx context.Context, id int64, image *string) error
}

type ImageStore interface {
	SaveImage(ctx context.Context, filename string, r io.Reader) (string, error)
	Remove(ctx context.Context, publicPath string) error
}

type Authorizer interface {
	Authorize(ctx context.Context, principal *internal.User, action auth.Action, target auth.Target) error
}

type Service struct {
	users      UserStore
	images     ImageStore
	gate       Authorizer
	bcryptCost int
	logger     *slog.Logger
}

func NewService(users UserStore, images ImageStore, gate Authorizer, bcryptCost int, logger *slog.Logger) *Service {
	return &Service{
		users:      users,
		images:     images,
		gate:       gate,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

func (s *Service) Update(ctx context.Context, principal *internal.User, dto UpdateProfileDTO) (*user.User, error) {
	row, err := s.load(ctx, principal, dto.UserID)
	if err != nil {
		return nil, err
	}
	dto.Name = strings.TrimSpace(dto.Name)
	dto.Email = strings.ToLower(strings.TrimSpace(dto.Email))
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}

	row.Name = dto.Name
	row.Email = dto.Email
	if err := s.users.Update(ctx, row); err != nil {
		if dberr.IsUniqueViolation(err) {
			return nil, internal.NewDuplicateError(msgDuplicateEmail, internal.ErrCodeDuplicateEmail)
		}
		s.logger.Error("failed to update profile", "user_id", row.ID, "error", err)
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}

	s.logger.Info("profile updated", "user_id", row.ID, "by", principal.ID)
	return user.FromDataModel(row), nil
}

func (s *Service) ChangePassword(ctx context.Context, principal *internal.User, dto ChangePasswordDTO) error {
	row, err := s.load(ctx, principal, dto.UserID)
	if err != nil {
		return err
	}
	if err := validation.Struct(dto); err != nil {
		return err
	}
	if row.ID == principal.ID && auth.VerifyPassword(row.PasswordHash, dto.CurrentPassword) != nil {
		return internal.NewValidationFieldError("currentPassword", msgWrongPassword, internal.ErrCodeInvalidCredentials)
	}
	confirm := validation.NewValidator()
	confirm.Field("confirmPassword", dto.ConfirmPassword).
		Custom(func(v interface{}) *internal.AppError {
			if v.(string) != dto.NewPassword {
				return internal.NewValidationError(msgPasswordConfirm, internal.ErrCodePasswordMismatch)
			}
			return nil
		})
	if err := confirm.Validate(); err != nil {
		return err
	}

	hash, err := auth.HashPassword(dto.NewPassword, s.bcryptCost)
	if err != nil {
		return internal.NewInternalError(internal.MsgInternal, err)
	}
	if err := s.users.UpdatePassword(ctx, row.ID, hash); err != nil {
		return internal.NewInternalError(internal.MsgInternal, err)
	}

	s.logger.Info("password changed", "user_id", row.ID, "by", principal.ID)
	return nil
}

// UploadImage stores a new profile image for userID, or the caller when
// userID is zero, and drops the previous one.
func (s *Service) UploadImage(ctx context.Context, principal *internal.User, userID int64, filename string, r io.Reader) (*user.User, error) {
	row, err := s.load(ctx, principal, userID)
	if err != nil {
		return nil, err
	}

	publicPath, err := s.images.SaveImage(ctx, filename, r)
	if err != nil {
		return nil, err
	}
	if err := s.users.UpdateProfileImage(ctx, row.ID, &publicPath); err != nil {
		_ = s.images.Remove(ctx, publicPath)
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}
	if row.ProfileImage != nil {
		if err := s.images.Remove(ctx, *row.ProfileImage); err != nil {
			s.logger.Warn("failed to remove previous profile image", "user_id", row.ID, "error", err)
		}
	}

	s.logger.Info("profile image uploaded", "user_id", row.ID)
	row.ProfileImage = &publicPath
	return user.FromDataModel(row), nil
}

func (s *Service) DeleteImage(ctx context.Context, principal *internal.User, userID int64) (*user.User, error) {
	row, err := s.load(ctx, principal, userID)
	if err != nil {
		return nil, err
	}
	if row.ProfileImage == nil {
		return nil, internal.NewNotFoundError(msgNoImage, internal.ErrCodeImageNotFound)
	}

	if err := s.users.UpdateProfileImage(ctx, row.ID, nil); err != nil {
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}
	if err := s.images.Remove(ctx, *row.ProfileImage); err != nil {
		s.logger.Warn("failed to remove profile image", "user_id", row.ID, "error", err)
	}

	row.ProfileImage = nil
	return user.FromDataModel(row), nil
}

// load authorizes the caller against the target account and fetches it.
func (s *Service) load(ctx context.Context, principal *internal.User, userID int64) (*userDatamodel.User, error) {
	if principal == nil {
		return nil, internal.ErrUnauthenticated
	}
	if userID == 0 {
		userID = principal.ID
	}
	if err := s.gate.Authorize(ctx, principal, auth.ActionMutateProfile, auth.Target{UserID: userID}); err != nil {
		return nil, err
	}
	row, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}
	if row == nil {
		return nil, internal.ErrUserNotFound
	}
	return row, nil
}
