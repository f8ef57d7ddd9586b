package auth

import (
	"context"

	workgroupDatamodel "github.com/frahmantamala/kpi-portal/internal/core/datamodel/workgroup"
)

// MembershipReader answers workgroup membership questions from storage.
type MembershipReader interface {
	HasRole(ctx context.Context, userID, workgroupID int64, role string) (bool, error)
	HasRoleAnywhere(ctx context.Context, userID int64, role string) (bool, error)
}

// MembershipPolicy holds the rules that depend on who belongs to which
// workgroup. Admin overrides are applied by the Gate, not here.
type MembershipPolicy struct {
	members MembershipReader
}

func NewMembershipPolicy(members MembershipReader) *MembershipPolicy {
	return &MembershipPolicy{members: members}
}

// CanEvaluateWriters requires STRATEGIST membership in the workgroup.
func (p *MembershipPolicy) CanEvaluateWriters(ctx context.Context, userID, workgroupID int64) Decision {
	if workgroupID <= 0 {
		return deny(ReasonNotStrategist)
	}
	ok, err := p.members.HasRole(ctx, userID, workgroupID, workgroupDatamodel.RoleStrategist)
	if err != nil {
		return Decision{Reason: ReasonLookupFailed, Err: err}
	}
	if !ok {
		return deny(ReasonNotStrategist)
	}
	return allow()
}

// CanSubmitFeedback accepts WRITER or STRATEGIST membership. Without a
// workgroup it asks whether the user belongs to any workgroup at all.
func (p *MembershipPolicy) CanSubmitFeedback(ctx context.Context, userID, workgroupID int64) Decision {
	for _, role := range []string{workgroupDatamodel.RoleWriter, workgroupDatamodel.RoleStrategist} {
		var (
			ok  bool
			err error
		)
		if workgroupID > 0 {
			ok, err = p.members.HasRole(ctx, userID, workgroupID, role)
		} else {
			ok, err = p.members.HasRoleAnywhere(ctx, userID, role)
		}
		if err != nil {
			return Decision{Reason: ReasonLookupFailed, Err: err}
		}
		if ok {
			return allow()
		}
	}
	return deny(ReasonNotMember)
}
