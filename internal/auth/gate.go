package auth

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/kpi-portal/internal"
)

type Action string

const (
	ActionManageUsers                Action = "manage_users"
	ActionManageWorkgroups           Action = "manage_workgroups"
	ActionCreateGoal                 Action = "create_goal"
	ActionCreateTask                 Action = "create_task"
	ActionUpdateRoles                Action = "update_roles"
	ActionViewDashboard              Action = "view_dashboard"
	ActionCreateStrategistEvaluation Action = "create_strategist_evaluation"
	ActionCreateWriterEvaluation     Action = "create_writer_evaluation"
	ActionSubmitFeedback             Action = "submit_feedback"
	ActionMutateProfile              Action = "mutate_profile"
	ActionUpdateTaskStatus           Action = "update_task_status"
	ActionCommentOnEvaluation        Action = "comment_on_evaluation"
)

// Denial reasons.
const (
	ReasonUnauthenticated = "unauthenticated"
	ReasonNotAdmin        = "admin_required"
	ReasonNotDeputy       = "technical_deputy_required"
	ReasonNotStrategist   = "strategist_membership_required"
	ReasonNotMember       = "workgroup_membership_required"
	ReasonNotOwner        = "owner_required"
	ReasonNotParty        = "evaluation_party_required"
	ReasonUnknownAction   = "unknown_action"
	ReasonLookupFailed    = "membership_lookup_failed"
)

// Target carries the attributes a context-dependent rule inspects. Unused
// fields are zero.
type Target struct {
	WorkgroupID int64
	UserID      int64
	UserIDs     []int64
}

type Decision struct {
	Allowed bool
	Reason  string
	Err     error
}

// Error converts a denial into the AppError a handler should surface: 401 for
// a missing principal, 500 for lookup failures, 403 otherwise.
func (d Decision) Error() error {
	switch {
	case d.Allowed:
		return nil
	case d.Err != nil:
		return internal.NewInternalError(internal.MsgInternal, d.Err)
	case d.Reason == ReasonUnauthenticated:
		return internal.ErrUnauthenticated
	default:
		return internal.ErrForbidden
	}
}

func allow() Decision { return Decision{Allowed: true} }

func deny(reason string) Decision { return Decision{Reason: reason} }

var adminOnly = map[Action]bool{
	ActionManageUsers:      true,
	ActionManageWorkgroups: true,
	ActionCreateGoal:       true,
	ActionCreateTask:       true,
	ActionUpdateRoles:      true,
	ActionViewDashboard:    true,
}

// Gate answers whether a principal may perform an action. It never writes.
type Gate struct {
	policy *MembershipPolicy
	logger *slog.Logger
}

func NewGate(members MembershipReader, logger *slog.Logger) *Gate {
	return &Gate{
		policy: NewMembershipPolicy(members),
		logger: logger,
	}
}

func (g *Gate) Decide(ctx context.Context, principal *internal.User, action Action, target Target) Decision {
	d := g.decide(ctx, principal, action, target)
	if !d.Allowed {
		var userID int64
		if principal != nil {
			userID = principal.ID
		}
		g.logger.WarnContext(ctx, "access denied",
			"user_id", userID,
			"action", action,
			"reason", d.Reason,
			"error", d.Err)
	}
	return d
}

// Authorize is Decide reduced to an error.
func (g *Gate) Authorize(ctx context.Context, principal *internal.User, action Action, target Target) error {
	return g.Decide(ctx, principal, action, target).Error()
}

func (g *Gate) decide(ctx context.Context, principal *internal.User, action Action, target Target) Decision {
	if principal == nil {
		return deny(ReasonUnauthenticated)
	}

	if adminOnly[action] {
		if principal.IsAdmin {
			return allow()
		}
		return deny(ReasonNotAdmin)
	}

	switch action {
	case ActionCreateStrategistEvaluation:
		if principal.IsAdmin || principal.IsTechnicalDeputy {
			return allow()
		}
		return deny(ReasonNotDeputy)

	case ActionCreateWriterEvaluation:
		if principal.IsAdmin {
			return allow()
		}
		return g.policy.CanEvaluateWriters(ctx, principal.ID, target.WorkgroupID)

	case ActionSubmitFeedback:
		return g.policy.CanSubmitFeedback(ctx, principal.ID, target.WorkgroupID)

	case ActionMutateProfile, ActionUpdateTaskStatus:
		if principal.IsAdmin || target.UserID == principal.ID {
			return allow()
		}
		return deny(ReasonNotOwner)

	case ActionCommentOnEvaluation:
		if principal.IsAdmin {
			return allow()
		}
		for _, id := range target.UserIDs {
			if id == principal.ID {
				return allow()
			}
		}
		return deny(ReasonNotParty)
	}

	return deny(ReasonUnknownAction)
}
