package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/frahmantamala/kpi-portal/internal"
)

type fakeMembers struct {
	roles      map[string]bool // "user:workgroup:role"
	shouldFail bool
}

func (f *fakeMembers) add(userID, workgroupID int64, role string) {
	f.roles[fmt.Sprintf("%d:%d:%s", userID, workgroupID, role)] = true
}

func (f *fakeMembers) HasRole(ctx context.Context, userID, workgroupID int64, role string) (bool, error) {
	if f.shouldFail {
		return false, errors.New("lookup failed")
	}
	return f.roles[fmt.Sprintf("%d:%d:%s", userID, workgroupID, role)], nil
}

func (f *fakeMembers) HasRoleAnywhere(ctx context.Context, userID int64, role string) (bool, error) {
	if f.shouldFail {
		return false, errors.New("lookup failed")
	}
	for key := range f.roles {
		var u, w int64
		var r string
		fmt.Sscanf(key, "%d:%d:%s", &u, &w, &r)
		if u == userID && r == role {
			return true, nil
		}
	}
	return false, nil
}

var _ = ginkgo.Describe("Gate", func() {
	var (
		members    *fakeMembers
		gate       *Gate
		ctx        = context.Background()
		admin      = &internal.User{ID: 1, IsAdmin: true}
		deputy     = &internal.User{ID: 2, IsTechnicalDeputy: true}
		strategist = &internal.User{ID: 3}
		writer     = &internal.User{ID: 4}
		outsider   = &internal.User{ID: 5}
	)

	ginkgo.BeforeEach(func() {
		members = &fakeMembers{roles: map[string]bool{}}
		members.add(3, 10, "STRATEGIST")
		members.add(4, 10, "WRITER")
		gate = NewGate(members, discardLogger)
	})

	ginkgo.It("denies a missing principal as unauthenticated", func() {
		d := gate.Decide(ctx, nil, ActionManageUsers, Target{})
		gomega.Expect(d.Allowed).To(gomega.BeFalse())
		gomega.Expect(d.Reason).To(gomega.Equal(ReasonUnauthenticated))
		gomega.Expect(d.Error()).To(gomega.MatchError(internal.ErrUnauthenticated))
	})

	ginkgo.DescribeTable("admin-only actions",
		func(action Action) {
			gomega.Expect(gate.Decide(ctx, admin, action, Target{}).Allowed).To(gomega.BeTrue())
			d := gate.Decide(ctx, deputy, action, Target{})
			gomega.Expect(d.Allowed).To(gomega.BeFalse())
			gomega.Expect(d.Error()).To(gomega.MatchError(internal.ErrForbidden))
		},
		ginkgo.Entry("manage users", ActionManageUsers),
		ginkgo.Entry("manage workgroups", ActionManageWorkgroups),
		ginkgo.Entry("create goal", ActionCreateGoal),
		ginkgo.Entry("create task", ActionCreateTask),
		ginkgo.Entry("update roles", ActionUpdateRoles),
		ginkgo.Entry("view dashboard", ActionViewDashboard),
	)

	ginkgo.It("lets deputies and admins evaluate strategists", func() {
		gomega.Expect(gate.Decide(ctx, deputy, ActionCreateStrategistEvaluation, Target{}).Allowed).To(gomega.BeTrue())
		gomega.Expect(gate.Decide(ctx, admin, ActionCreateStrategistEvaluation, Target{}).Allowed).To(gomega.BeTrue())
		gomega.Expect(gate.Decide(ctx, strategist, ActionCreateStrategistEvaluation, Target{}).Allowed).To(gomega.BeFalse())
	})

	ginkgo.It("requires STRATEGIST membership of the target workgroup for writer evaluations", func() {
		gomega.Expect(gate.Decide(ctx, strategist, ActionCreateWriterEvaluation, Target{WorkgroupID: 10}).Allowed).To(gomega.BeTrue())
		gomega.Expect(gate.Decide(ctx, strategist, ActionCreateWriterEvaluation, Target{WorkgroupID: 11}).Allowed).To(gomega.BeFalse())
		gomega.Expect(gate.Decide(ctx, writer, ActionCreateWriterEvaluation, Target{WorkgroupID: 10}).Allowed).To(gomega.BeFalse())
		gomega.Expect(gate.Decide(ctx, admin, ActionCreateWriterEvaluation, Target{WorkgroupID: 11}).Allowed).To(gomega.BeTrue())
	})

	ginkgo.It("accepts either membership kind for feedback", func() {
		gomega.Expect(gate.Decide(ctx, writer, ActionSubmitFeedback, Target{WorkgroupID: 10}).Allowed).To(gomega.BeTrue())
		gomega.Expect(gate.Decide(ctx, strategist, ActionSubmitFeedback, Target{WorkgroupID: 10}).Allowed).To(gomega.BeTrue())
		gomega.Expect(gate.Decide(ctx, strategist, ActionSubmitFeedback, Target{}).Allowed).To(gomega.BeTrue())
		gomega.Expect(gate.Decide(ctx, outsider, ActionSubmitFeedback, Target{}).Allowed).To(gomega.BeFalse())
		gomega.Expect(gate.Decide(ctx, admin, ActionSubmitFeedback, Target{WorkgroupID: 10}).Allowed).To(gomega.BeFalse())
	})

	ginkgo.It("limits profile and task mutations to the owner or an admin", func() {
		gomega.Expect(gate.Decide(ctx, writer, ActionMutateProfile, Target{UserID: 4}).Allowed).To(gomega.BeTrue())
		gomega.Expect(gate.Decide(ctx, writer, ActionMutateProfile, Target{UserID: 3}).Allowed).To(gomega.BeFalse())
		gomega.Expect(gate.Decide(ctx, admin, ActionUpdateTaskStatus, Target{UserID: 3}).Allowed).To(gomega.BeTrue())
	})

	ginkgo.It("lets parties comment on an evaluation", func() {
		target := Target{UserIDs: []int64{3, 4}}
		gomega.Expect(gate.Decide(ctx, writer, ActionCommentOnEvaluation, target).Allowed).To(gomega.BeTrue())
		gomega.Expect(gate.Decide(ctx, outsider, ActionCommentOnEvaluation, target).Allowed).To(gomega.BeFalse())
	})

	ginkgo.It("turns membership lookup failures into server errors", func() {
		members.shouldFail = true
		d := gate.Decide(ctx, strategist, ActionCreateWriterEvaluation, Target{WorkgroupID: 10})
		gomega.Expect(d.Allowed).To(gomega.BeFalse())
		appErr, ok := internal.IsAppError(d.Error())
		gomega.Expect(ok).To(gomega.BeTrue())
		gomega.Expect(appErr.StatusCode).To(gomega.Equal(500))
	})

	ginkgo.It("denies unknown actions", func() {
		gomega.Expect(gate.Decide(ctx, admin, Action("launch_rockets"), Target{}).Allowed).To(gomega.BeFalse())
	})
})
