package profile

type UpdateProfileDTO struct {
	// UserID selects the account to edit; zero means the caller.
	UserID int64  `json:"userId" validate:"omitempty,gt=0"`
	Name   string `json:"name" validate:"notblank,max=100"`
	Email  string `json:"email" validate:"required,email,max=255"`
}

// CurrentPassword is only checked when callers change their own password.
type ChangePasswordDTO struct {
	UserID          int64  `json:"userId" validate:"omitempty,gt=0"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}
