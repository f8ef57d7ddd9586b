package user

type CreateUserDTO struct {
	Name              string `json:"name" validate:"notblank,max=100"`
	Email             string `json:"email" validate:"required,email,max=255"`
	Password          string `json:"password" validate:"required,min=8,max=72"`
	IsAdmin           bool   `json:"isAdmin"`
	IsTechnicalDeputy bool   `json:"isTechnicalDeputy"`
}

// UpdateUserDTO leaves the password unchanged when it is empty.
type UpdateUserDTO struct {
	ID       int64  `json:"id" validate:"required,gt=0"`
	Name     string `json:"name" validate:"notblank,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	IsActive *bool  `json:"isActive"`
	Password string `json:"password" validate:"omitempty,min=8,max=72"`
}

type UpdateRolesDTO struct {
	UserID            int64 `json:"userId" validate:"required,gt=0"`
	IsAdmin           *bool `json:"isAdmin"`
	IsTechnicalDeputy *bool `json:"isTechnicalDeputy"`
}
