package user

import (
	"time"

	userDatamodel "github.com/frahmantamala/kpi-portal/internal/core/datamodel/user"
)

type User struct {
	ID                int64     `json:"id"`
	Email             string    `json:"email"`
	Name              string    `json:"name"`
	PasswordHash      string    `json:"-"`
	IsAdmin           bool      `json:"isAdmin"`
	IsTechnicalDeputy bool      `json:"isTechnicalDeputy"`
	IsActive          bool      `json:"isActive"`
	ProfileImage      *string   `json:"profileImage"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func ToDataModel(u *User) *userDatamodel.User {
	return &userDatamodel.User{
		ID:                u.ID,
		Email:             u.Email,
		Name:              u.Name,
		PasswordHash:      u.PasswordHash,
		IsAdmin:           u.IsAdmin,
		IsTechnicalDeputy: u.IsTechnicalDeputy,
		IsActive:          u.IsActive,
		ProfileImage:      u.ProfileImage,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}

func FromDataModel(u *userDatamodel.User) *User {
	return &User{
		ID:                u.ID,
		Email:             u.Email,
		Name:              u.Name,
		PasswordHash:      u.PasswordHash,
		IsAdmin:           u.IsAdmin,
		IsTechnicalDeputy: u.IsTechnicalDeputy,
		IsActive:          u.IsActive,
		ProfileImage:      u.ProfileImage,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}
