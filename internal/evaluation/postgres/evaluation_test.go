package postgres_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/frahmantamala/kpi-portal/internal"
	"github.com/frahmantamala/kpi-portal/internal/auth"
	evaluationDatamodel "github.com/frahmantamala/kpi-portal/internal/core/datamodel/evaluation"
	userDatamodel "github.com/frahmantamala/kpi-portal/internal/core/datamodel/user"
	workgroupDatamodel "github.com/frahmantamala/kpi-portal/internal/core/datamodel/workgroup"
	"github.com/frahmantamala/kpi-portal/internal/core/events"
	"github.com/frahmantamala/kpi-portal/internal/core/testdb"
	"github.com/frahmantamala/kpi-portal/internal/evaluation"
	"github.com/frahmantamala/kpi-portal/internal/evaluation/postgres"
	"github.com/frahmantamala/kpi-portal/internal/transport"
	userPostgres "github.com/frahmantamala/kpi-portal/internal/user/postgres"
	"github.com/frahmantamala/kpi-portal/internal/workgroup"
	workgroupPostgres "github.com/frahmantamala/kpi-portal/internal/workgroup/postgres"
)

func TestEvaluationRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Evaluation Repository Suite")
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type fixture struct {
	db        *gorm.DB
	repo      *postgres.EvaluationRepository
	service   *evaluation.Service
	handler   *evaluation.Handler
	deputy    *userDatamodel.User
	leadA     *userDatamodel.User
	leadB     *userDatamodel.User
	writer    *userDatamodel.User
	groupA    *workgroupDatamodel.Workgroup
	groupB    *workgroupDatamodel.Workgroup
	principal func(u *userDatamodel.User) *internal.User
}

func newFixture() *fixture {
	ctx := context.Background()
	db, err := testdb.Open()
	Expect(err).NotTo(HaveOccurred())

	f := &fixture{db: db, repo: postgres.NewEvaluationRepository(db)}
	users := userPostgres.NewUserRepository(db)
	mk := func(name, email string, deputy bool) *userDatamodel.User {
		u := &userDatamodel.User{Name: name, Email: email, PasswordHash: "x", IsActive: true, IsTechnicalDeputy: deputy}
		Expect(users.Create(ctx, u)).To(Succeed())
		return u
	}
	f.deputy = mk("معاون", "deputy@example.com", true)
	f.leadA = mk("راهبر الف", "a@example.com", false)
	f.leadB = mk("راهبر ب", "b@example.com", false)
	f.writer = mk("نویسنده", "w@example.com", false)

	groups := workgroupPostgres.NewWorkgroupRepository(db)
	f.groupA = &workgroupDatamodel.Workgroup{Name: "الف", IsActive: true}
	f.groupB = &workgroupDatamodel.Workgroup{Name: "ب", IsActive: true}
	Expect(groups.Create(ctx, f.groupA)).To(Succeed())
	Expect(groups.Create(ctx, f.groupB)).To(Succeed())
	for _, m := range []*workgroupDatamodel.WorkgroupMember{
		{WorkgroupID: f.groupA.ID, UserID: f.leadA.ID, Role: workgroupDatamodel.RoleStrategist},
		{WorkgroupID: f.groupB.ID, UserID: f.leadB.ID, Role: workgroupDatamodel.RoleStrategist},
		{WorkgroupID: f.groupA.ID, UserID: f.writer.ID, Role: workgroupDatamodel.RoleWriter},
		{WorkgroupID: f.groupB.ID, UserID: f.writer.ID, Role: workgroupDatamodel.RoleWriter},
	} {
		Expect(groups.AddMember(ctx, m)).To(Succeed())
	}

	f.service = evaluation.NewService(
		f.repo,
		auth.NewGate(groups, discardLogger),
		users,
		groups,
		workgroup.NewService(groups, users, discardLogger),
		events.NewEventBus(discardLogger),
		discardLogger,
	)
	f.handler = evaluation.NewHandler(transport.NewBaseHandler(discardLogger), f.service)
	f.principal = func(u *userDatamodel.User) *internal.User {
		return &internal.User{ID: u.ID, IsTechnicalDeputy: u.IsTechnicalDeputy, IsAdmin: u.IsAdmin}
	}
	return f
}

func writerDTO(writerID, workgroupID int64, year, month, score int) evaluation.SubmitWriterEvaluationDTO {
	return evaluation.SubmitWriterEvaluationDTO{
		WriterID: writerID, WorkgroupID: workgroupID, Year: year, Month: month,
		WritingQuality: score, Creativity: score, Research: score,
		DeadlineAdherence: score, SEOCompliance: score, Teamwork: score,
	}
}

var _ = Describe("EvaluationRepository", func() {
	var (
		f   *fixture
		ctx = context.Background()
	)

	BeforeEach(func() {
		f = newFixture()
	})

	It("enforces one strategist evaluation per period at the storage level", func() {
		row := func(planning int) *evaluationDatamodel.StrategistEvaluation {
			return &evaluationDatamodel.StrategistEvaluation{
				StrategistID: f.leadA.ID, EvaluatorID: f.deputy.ID, Year: 1403, Month: 7,
				Planning: planning, ContentQuality: 5, TeamLeadership: 5, Communication: 5,
				Innovation: 5, DeadlineAdherence: 5, Reporting: 5, Status: evaluationDatamodel.StatusCompleted,
			}
		}
		Expect(f.repo.CreateStrategist(ctx, row(9))).To(Succeed())
		Expect(f.repo.CreateStrategist(ctx, row(1))).To(MatchError(gorm.ErrDuplicatedKey))

		list, err := f.repo.ListStrategist(ctx, evaluation.ListFilter{})
		Expect(err).NotTo(HaveOccurred())
		Expect(list).To(HaveLen(1))
		Expect(list[0].Planning).To(Equal(9))
	})

	It("turns a duplicate submission into a duplicate error", func() {
		dto := evaluation.SubmitStrategistEvaluationDTO{
			StrategistID: f.leadA.ID, Year: 1403, Month: 7,
			Planning: 8, ContentQuality: 8, TeamLeadership: 8, Communication: 8,
			Innovation: 8, DeadlineAdherence: 8, Reporting: 8,
		}
		_, err := f.service.SubmitStrategistEvaluation(ctx, f.principal(f.deputy), dto)
		Expect(err).NotTo(HaveOccurred())

		_, err = f.service.SubmitStrategistEvaluation(ctx, f.principal(f.deputy), dto)
		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Code).To(Equal(internal.ErrCodeDuplicateEvaluation))
	})

	It("accepts exactly one of two concurrent submissions for the same period", func() {
		dto := evaluation.SubmitStrategistEvaluationDTO{
			StrategistID: f.leadA.ID, Year: 1403, Month: 8,
			Planning: 7, ContentQuality: 7, TeamLeadership: 7, Communication: 7,
			Innovation: 7, DeadlineAdherence: 7, Reporting: 7,
		}
		deputy := f.principal(f.deputy)

		var (
			wg    sync.WaitGroup
			start = make(chan struct{})
			errs  = make([]error, 2)
		)
		for i := range errs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				<-start
				_, errs[i] = f.service.SubmitStrategistEvaluation(ctx, deputy, dto)
			}(i)
		}
		close(start)
		wg.Wait()

		var succeeded, duplicates int
		for _, err := range errs {
			if err == nil {
				succeeded++
				continue
			}
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue(), "unexpected error: %v", err)
			Expect(appErr.Code).To(Equal(internal.ErrCodeDuplicateEvaluation))
			duplicates++
		}
		Expect(succeeded).To(Equal(1))
		Expect(duplicates).To(Equal(1))

		var count int64
		Expect(f.db.Model(&evaluationDatamodel.StrategistEvaluation{}).
			Where("strategist_id = ? AND year = ? AND month = ?", f.leadA.ID, 1403, 8).
			Count(&count).Error).To(Succeed())
		Expect(count).To(Equal(int64(1)))
	})

	It("lists only the caller's writer evaluations, most recent period first", func() {
		otherWriter := &userDatamodel.User{Name: "نویسنده دوم", Email: "w2@example.com", PasswordHash: "x", IsActive: true}
		Expect(f.db.Create(otherWriter).Error).To(Succeed())
		Expect(f.db.Create(&workgroupDatamodel.WorkgroupMember{WorkgroupID: f.groupA.ID, UserID: otherWriter.ID, Role: workgroupDatamodel.RoleWriter}).Error).To(Succeed())

		leadA := f.principal(f.leadA)
		_, err := f.service.SubmitWriterEvaluation(ctx, leadA, writerDTO(f.writer.ID, f.groupA.ID, 1402, 12, 6))
		Expect(err).NotTo(HaveOccurred())
		_, err = f.service.SubmitWriterEvaluation(ctx, leadA, writerDTO(f.writer.ID, f.groupA.ID, 1403, 2, 6))
		Expect(err).NotTo(HaveOccurred())
		_, err = f.service.SubmitWriterEvaluation(ctx, leadA, writerDTO(otherWriter.ID, f.groupA.ID, 1403, 1, 6))
		Expect(err).NotTo(HaveOccurred())
		_, err = f.service.SubmitWriterEvaluation(ctx, f.principal(f.leadB), writerDTO(f.writer.ID, f.groupB.ID, 1403, 5, 6))
		Expect(err).NotTo(HaveOccurred())

		list, err := f.service.ListWriterEvaluations(ctx, leadA, evaluation.ListFilter{})
		Expect(err).NotTo(HaveOccurred())
		Expect(list).To(HaveLen(3))
		for _, e := range list {
			Expect(e.StrategistID).To(Equal(f.leadA.ID))
		}
		Expect([]int{list[0].Year*100 + list[0].Month, list[1].Year*100 + list[1].Month, list[2].Year*100 + list[2].Month}).
			To(Equal([]int{140302, 140301, 140212}))

		mine, err := f.service.ListOwnWriterEvaluations(ctx, f.principal(f.writer), evaluation.ListFilter{Year: 1403})
		Expect(err).NotTo(HaveOccurred())
		Expect(mine).To(HaveLen(2))
		Expect(mine[0].WorkgroupName).To(Equal("ب"))
	})

	It("does not let a strategist evaluate writers of another workgroup", func() {
		_, err := f.service.SubmitWriterEvaluation(ctx, f.principal(f.leadB), writerDTO(f.writer.ID, f.groupA.ID, 1403, 7, 6))
		Expect(err).To(MatchError(internal.ErrForbidden))

		var count int64
		Expect(f.db.Model(&evaluationDatamodel.WriterEvaluation{}).Count(&count).Error).To(Succeed())
		Expect(count).To(BeZero())
	})
})

var _ = Describe("Evaluation Handler", func() {
	var f *fixture

	BeforeEach(func() {
		f = newFixture()
	})

	withPrincipal := func(req *http.Request, u *userDatamodel.User) *http.Request {
		return req.WithContext(internal.ContextWithUser(req.Context(), f.principal(u)))
	}

	It("returns 201 with the computed summary", func() {
		body := `{"writerId":` + itoa(f.writer.ID) + `,"workgroupId":` + itoa(f.groupA.ID) +
			`,"year":1403,"month":7,"writingQuality":7,"creativity":7,"research":7,"deadlineAdherence":7,"seoCompliance":7,"teamwork":6}`
		req := withPrincipal(httptest.NewRequest(http.MethodPost, "/api/evaluations/writer", bytes.NewBufferString(body)), f.leadA)
		rec := httptest.NewRecorder()

		f.handler.SubmitWriterEvaluation(rec, req)

		Expect(rec.Code).To(Equal(http.StatusCreated))
		var resp struct {
			Success    bool                         `json:"success"`
			Evaluation *evaluation.WriterEvaluation `json:"evaluation"`
		}
		Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.Success).To(BeTrue())
		Expect(resp.Evaluation.Average).To(Equal(7))
		Expect(resp.Evaluation.Grade).To(Equal(evaluation.GradeGood))
		Expect(resp.Evaluation.PeriodLabel).To(Equal("مهر ۱۴۰۳"))
	})

	It("returns 400 with the localized message for an out of range score", func() {
		body := `{"strategistId":` + itoa(f.leadA.ID) + `,"year":1403,"month":7,"planning":11,"contentQuality":5,"teamLeadership":5,"communication":5,"innovation":5,"deadlineAdherence":5,"reporting":5}`
		req := withPrincipal(httptest.NewRequest(http.MethodPost, "/api/evaluations/strategist", bytes.NewBufferString(body)), f.deputy)
		rec := httptest.NewRecorder()

		f.handler.SubmitStrategistEvaluation(rec, req)

		Expect(rec.Code).To(Equal(http.StatusBadRequest))
		var resp map[string]interface{}
		Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp["code"]).To(Equal(string(internal.ErrCodeInvalidScore)))
		Expect(resp["error"]).To(ContainSubstring("۱ تا ۱۰"))
	})

	It("returns 403 for strategists of other workgroups", func() {
		body := `{"writerId":` + itoa(f.writer.ID) + `,"workgroupId":` + itoa(f.groupA.ID) +
			`,"year":1403,"month":7,"writingQuality":7,"creativity":7,"research":7,"deadlineAdherence":7,"seoCompliance":7,"teamwork":7}`
		req := withPrincipal(httptest.NewRequest(http.MethodPost, "/api/evaluations/writer", bytes.NewBufferString(body)), f.leadB)
		rec := httptest.NewRecorder()

		f.handler.SubmitWriterEvaluation(rec, req)

		Expect(rec.Code).To(Equal(http.StatusForbidden))
	})

	It("rejects a malformed period filter", func() {
		req := withPrincipal(httptest.NewRequest(http.MethodGet, "/api/evaluations/writer?year=abc", nil), f.leadA)
		rec := httptest.NewRecorder()

		f.handler.ListWriterEvaluations(rec, req)

		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})
})

func itoa(v int64) string {
	b, _ := json.Marshal(v)
	return string(b)
}
