package workgroup

type CreateWorkgroupDTO struct {
	Name        string `json:"name" validate:"notblank,max=100"`
	Description string `json:"description" validate:"max=1000"`
}

type UpdateWorkgroupDTO struct {
	ID          int64  `json:"id" validate:"required,gt=0"`
	Name        string `json:"name" validate:"notblank,max=100"`
	Description string `json:"description" validate:"max=1000"`
	IsActive    *bool  `json:"isActive"`
}

type AddMemberDTO struct {
	WorkgroupID int64  `json:"workgroupId" validate:"required,gt=0"`
	UserID      int64  `json:"userId" validate:"required,gt=0"`
	Role        string `json:"role" validate:"member_role"`
}

type UpdateMemberDTO struct {
	ID   int64  `json:"id" validate:"required,gt=0"`
	Role string `json:"role" validate:"member_role"`
}
