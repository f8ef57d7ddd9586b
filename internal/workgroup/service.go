package workgroup

import (
	"context"
	"log/slog"
	"strings"

	"github.com/frahmantamala/kpi-portal/internal"
	"github.com/frahmantamala/kpi-portal/internal/core/common/validation"
	workgroupDatamodel "github.com/frahmantamala/kpi-portal/internal/core/datamodel/workgroup"
	"github.com/frahmantamala/kpi-portal/internal/core/dberr"
)

const (
	msgDuplicateWorkgroup = "کارگروهی با این نام وجود دارد"
	msgDuplicateMember    = "این کاربر قبلا با همین نقش در کارگروه عضو شده است"
)

// RepositoryAPI returns (nil, nil) from single-row getters when nothing matches.
type RepositoryAPI interface {
	List(ctx context.Context) ([]*workgroupDatamodel.Workgroup, error)
	GetByID(ctx context.Context, id int64) (*workgroupDatamodel.Workgroup, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*workgroupDatamodel.Workgroup, error)
	Create(ctx context.Context, w *workgroupDatamodel.Workgroup) error
	Update(ctx context.Context, w *workgroupDatamodel.Workgroup) error
	Delete(ctx context.Context, id int64) error

	MembersOf(ctx context.Context, workgroupIDs []int64) ([]*workgroupDatamodel.WorkgroupMember, error)
	GetMember(ctx context.Context, id int64) (*workgroupDatamodel.WorkgroupMember, error)
	AddMember(ctx context.Context, m *workgroupDatamodel.WorkgroupMember) error
	UpdateMemberRole(ctx context.Context, id int64, role string) error
	RemoveMember(ctx context.Context, id int64) error

	HasRole(ctx context.Context, userID, workgroupID int64, role string) (bool, error)
	HasRoleAnywhere(ctx context.Context, userID int64, role string) (bool, error)
	WorkgroupIDsForUser(ctx context.Context, userID int64, roles ...string) ([]int64, error)
}

// UserDirectory resolves display names. Missing ids are absent from the map.
type UserDirectory interface {
	NamesByIDs(ctx context.Context, ids []int64) (map[int64]string, error)
}

type Service struct {
	repo   RepositoryAPI
	users  UserDirectory
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, users UserDirectory, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		users:  users,
		logger: logger,
	}
}

func (s *Service) ListWorkgroups(ctx context.Context) ([]*Workgroup, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list workgroups", "error", err)
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}
	return s.withMembers(ctx, rows)
}

func (s *Service) GetWorkgroup(ctx context.Context, id int64) (*Workgroup, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}
	if row == nil {
		return nil, internal.ErrWorkgroupNotFound
	}
	out, err := s.withMembers(ctx, []*workgroupDatamodel.Workgroup{row})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

func (s *Service) CreateWorkgroup(ctx context.Context, dto CreateWorkgroupDTO) (*Workgroup, error) {
	dto.Name = strings.TrimSpace(dto.Name)
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}

	row := &workgroupDatamodel.Workgroup{
		Name:        dto.Name,
		Description: strings.TrimSpace(dto.Description),
		IsActive:    true,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		if dberr.IsUniqueViolation(err) {
			return nil, internal.NewDuplicateError(msgDuplicateWorkgroup, internal.ErrCodeDuplicateWorkgroup)
		}
		s.logger.Error("failed to create workgroup", "error", err)
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}

	s.logger.Info("workgroup created", "workgroup_id", row.ID)
	return FromDataModel(row), nil
}

func (s *Service) UpdateWorkgroup(ctx context.Context, dto UpdateWorkgroupDTO) (*Workgroup, error) {
	dto.Name = strings.TrimSpace(dto.Name)
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}

	row, err := s.repo.GetByID(ctx, dto.ID)
	if err != nil {
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}
	if row == nil {
		return nil, internal.ErrWorkgroupNotFound
	}

	row.Name = dto.Name
	row.Description = strings.TrimSpace(dto.Description)
	if dto.IsActive != nil {
		row.IsActive = *dto.IsActive
	}
	if err := s.repo.Update(ctx, row); err != nil {
		if dberr.IsUniqueViolation(err) {
			return nil, internal.NewDuplicateError(msgDuplicateWorkgroup, internal.ErrCodeDuplicateWorkgroup)
		}
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}
	return s.GetWorkgroup(ctx, row.ID)
}

// DeleteWorkgroup removes the workgroup together with its memberships.
func (s *Service) DeleteWorkgroup(ctx context.Context, id int64) error {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return internal.NewInternalError(internal.MsgInternal, err)
	}
	if row == nil {
		return internal.ErrWorkgroupNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return internal.NewInternalError(internal.MsgInternal, err)
	}
	s.logger.Info("workgroup deleted", "workgroup_id", id)
	return nil
}

func (s *Service) AddMember(ctx context.Context, dto AddMemberDTO) (*Member, error) {
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}

	wg, err := s.repo.GetByID(ctx, dto.WorkgroupID)
	if err != nil {
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}
	if wg == nil {
		return nil, internal.ErrWorkgroupNotFound
	}
	names, err := s.users.NamesByIDs(ctx, []int64{dto.UserID})
	if err != nil {
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}
	name, ok := names[dto.UserID]
	if !ok {
		return nil, internal.ErrUserNotFound
	}

	row := &workgroupDatamodel.WorkgroupMember{
		WorkgroupID: dto.WorkgroupID,
		UserID:      dto.UserID,
		Role:        dto.Role,
	}
	if err := s.repo.AddMember(ctx, row); err != nil {
		if dberr.IsUniqueViolation(err) {
			return nil, internal.NewDuplicateError(msgDuplicateMember, internal.ErrCodeDuplicateMember)
		}
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}

	s.logger.Info("member added", "workgroup_id", row.WorkgroupID, "user_id", row.UserID, "role", row.Role)
	m := MemberFromDataModel(row, name)
	return &m, nil
}

func (s *Service) UpdateMemberRole(ctx context.Context, dto UpdateMemberDTO) (*Member, error) {
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}

	row, err := s.repo.GetMember(ctx, dto.ID)
	if err != nil {
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}
	if row == nil {
		return nil, internal.ErrMemberNotFound
	}
	if row.Role == dto.Role {
		return s.member(ctx, row)
	}

	if err := s.repo.UpdateMemberRole(ctx, dto.ID, dto.Role); err != nil {
		if dberr.IsUniqueViolation(err) {
			return nil, internal.NewDuplicateError(msgDuplicateMember, internal.ErrCodeDuplicateMember)
		}
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}
	row.Role = dto.Role
	return s.member(ctx, row)
}

func (s *Service) RemoveMember(ctx context.Context, id int64) error {
	row, err := s.repo.GetMember(ctx, id)
	if err != nil {
		return internal.NewInternalError(internal.MsgInternal, err)
	}
	if row == nil {
		return internal.ErrMemberNotFound
	}
	if err := s.repo.RemoveMember(ctx, id); err != nil {
		return internal.NewInternalError(internal.MsgInternal, err)
	}
	return nil
}

// WorkgroupsForUser lists the workgroups where the user holds any of roles.
func (s *Service) WorkgroupsForUser(ctx context.Context, userID int64, roles ...string) ([]*Workgroup, error) {
	ids, err := s.repo.WorkgroupIDsForUser(ctx, userID, roles...)
	if err != nil {
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}
	if len(ids) == 0 {
		return []*Workgroup{}, nil
	}
	rows, err := s.repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}
	out := make([]*Workgroup, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row))
	}
	return out, nil
}

// NamesByIDs resolves workgroup names for views.
func (s *Service) NamesByIDs(ctx context.Context, ids []int64) (map[int64]string, error) {
	names := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	rows, err := s.repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		names[row.ID] = row.Name
	}
	return names, nil
}

func (s *Service) member(ctx context.Context, row *workgroupDatamodel.WorkgroupMember) (*Member, error) {
	names, err := s.users.NamesByIDs(ctx, []int64{row.UserID})
	if err != nil {
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}
	m := MemberFromDataModel(row, names[row.UserID])
	return &m, nil
}

func (s *Service) withMembers(ctx context.Context, rows []*workgroupDatamodel.Workgroup) ([]*Workgroup, error) {
	out := make([]*Workgroup, 0, len(rows))
	if len(rows) == 0 {
		return out, nil
	}

	ids := make([]int64, 0, len(rows))
	byID := make(map[int64]*Workgroup, len(rows))
	for _, row := range rows {
		w := FromDataModel(row)
		out = append(out, w)
		byID[w.ID] = w
		ids = append(ids, w.ID)
	}

	members, err := s.repo.MembersOf(ctx, ids)
	if err != nil {
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}
	userIDs := make([]int64, 0, len(members))
	for _, m := range members {
		userIDs = append(userIDs, m.UserID)
	}
	names, err := s.users.NamesByIDs(ctx, userIDs)
	if err != nil {
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}
	for _, m := range members {
		if w, ok := byID[m.WorkgroupID]; ok {
			w.Members = append(w.Members, MemberFromDataModel(m, names[m.UserID]))
		}
	}
	return out, nil
}
