package workgroup

import (
	"time"

	workgroupDatamodel "github.com/frahmantamala/kpi-portal/internal/core/datamodel/workgroup"
)

type Workgroup struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"isActive"`
	Members     []Member  `json:"members"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Member struct {
	ID          int64     `json:"id"`
	WorkgroupID int64     `json:"workgroupId"`
	UserID      int64     `json:"userId"`
	UserName    string    `json:"userName"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (w *Workgroup) Strategists() []Member {
	return w.membersWithRole(workgroupDatamodel.RoleStrategist)
}

func (w *Workgroup) Writers() []Member {
	return w.membersWithRole(workgroupDatamodel.RoleWriter)
}

func (w *Workgroup) membersWithRole(role string) []Member {
	var out []Member
	for _, m := range w.Members {
		if m.Role == role {
			out = append(out, m)
		}
	}
	return out
}

func ToDataModel(w *Workgroup) *workgroupDatamodel.Workgroup {
	return &workgroupDatamodel.Workgroup{
		ID:          w.ID,
		Name:        w.Name,
		Description: w.Description,
		IsActive:    w.IsActive,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

func FromDataModel(w *workgroupDatamodel.Workgroup) *Workgroup {
	return &Workgroup{
		ID:          w.ID,
		Name:        w.Name,
		Description: w.Description,
		IsActive:    w.IsActive,
		Members:     []Member{},
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

func MemberFromDataModel(m *workgroupDatamodel.WorkgroupMember, userName string) Member {
	return Member{
		ID:          m.ID,
		WorkgroupID: m.WorkgroupID,
		UserID:      m.UserID,
		UserName:    userName,
		Role:        m.Role,
		CreatedAt:   m.CreatedAt,
	}
}
