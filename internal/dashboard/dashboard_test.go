package dashboard_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/frahmantamala/kpi-portal/internal"
	"github.com/frahmantamala/kpi-portal/internal/auth"
	"github.com/frahmantamala/kpi-portal/internal/calendar"
	evaluationDatamodel "github.com/frahmantamala/kpi-portal/internal/core/datamodel/evaluation"
	messageDatamodel "github.com/frahmantamala/kpi-portal/internal/core/datamodel/message"
	userDatamodel "github.com/frahmantamala/kpi-portal/internal/core/datamodel/user"
	workgroupDatamodel "github.com/frahmantamala/kpi-portal/internal/core/datamodel/workgroup"
	"github.com/frahmantamala/kpi-portal/internal/core/testdb"
	"github.com/frahmantamala/kpi-portal/internal/dashboard"
	"github.com/frahmantamala/kpi-portal/internal/transport"
	workgroupPostgres "github.com/frahmantamala/kpi-portal/internal/workgroup/postgres"
)

func TestDashboard(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Dashboard Suite")
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func strategistEvaluation(strategistID, evaluatorID int64, p calendar.Period, status string) *evaluationDatamodel.StrategistEvaluation {
	return &evaluationDatamodel.StrategistEvaluation{
		StrategistID: strategistID, EvaluatorID: evaluatorID, Year: p.Year, Month: p.Month,
		Planning: 5, ContentQuality: 5, TeamLeadership: 5, Communication: 5,
		Innovation: 5, DeadlineAdherence: 5, Reporting: 5, Status: status,
	}
}

var _ = Describe("Dashboard", func() {
	var (
		ctx     = context.Background()
		db      *gorm.DB
		service *dashboard.Service
		admin   = &internal.User{ID: 1, IsAdmin: true}
	)

	BeforeEach(func() {
		var err error
		db, err = testdb.Open()
		Expect(err).NotTo(HaveOccurred())
		sqlxDB, err := testdb.SQLX(db)
		Expect(err).NotTo(HaveOccurred())

		gate := auth.NewGate(workgroupPostgres.NewWorkgroupRepository(db), discardLogger)
		service = dashboard.NewService(sqlxDB, gate, discardLogger)
	})

	It("is admin only", func() {
		_, err := service.Stats(ctx, &internal.User{ID: 2})
		Expect(err).To(MatchError(internal.ErrForbidden))
	})

	It("counts an empty database as zeroes", func() {
		stats, err := service.Stats(ctx, admin)
		Expect(err).NotTo(HaveOccurred())
		Expect(stats.Users).To(BeZero())
		Expect(stats.PeriodLabel).NotTo(BeEmpty())
	})

	It("counts users, workgroups, current evaluations and unread messages", func() {
		current, err := calendar.CurrentPeriod(time.Now())
		Expect(err).NotTo(HaveOccurred())
		previous := calendar.Period{Year: current.Year - 1, Month: current.Month}

		users := []*userDatamodel.User{
			{Name: "a", Email: "a@example.com", PasswordHash: "x", IsActive: true},
			{Name: "b", Email: "b@example.com", PasswordHash: "x", IsActive: true},
			{Name: "c", Email: "c@example.com", PasswordHash: "x"},
		}
		Expect(db.Create(&users).Error).To(Succeed())
		Expect(db.Model(&userDatamodel.User{}).Where("id = ?", users[2].ID).Update("is_active", false).Error).To(Succeed())

		Expect(db.Create(&workgroupDatamodel.Workgroup{Name: "on", IsActive: true}).Error).To(Succeed())
		off := &workgroupDatamodel.Workgroup{Name: "off", IsActive: true}
		Expect(db.Create(off).Error).To(Succeed())
		Expect(db.Model(off).Update("is_active", false).Error).To(Succeed())

		Expect(db.Create(strategistEvaluation(users[0].ID, users[1].ID, current, evaluationDatamodel.StatusPending)).Error).To(Succeed())
		Expect(db.Create(strategistEvaluation(users[0].ID, users[1].ID, previous, evaluationDatamodel.StatusCompleted)).Error).To(Succeed())

		Expect(db.Create(&messageDatamodel.Message{SenderID: users[0].ID, ReceiverID: users[1].ID, Content: "hi"}).Error).To(Succeed())
		Expect(db.Create(&messageDatamodel.Message{SenderID: users[1].ID, ReceiverID: users[0].ID, Content: "ok", IsRead: true}).Error).To(Succeed())

		stats, err := service.Stats(ctx, admin)
		Expect(err).NotTo(HaveOccurred())
		Expect(stats.Users).To(BeEquivalentTo(3))
		Expect(stats.ActiveUsers).To(BeEquivalentTo(2))
		Expect(stats.ActiveWorkgroups).To(BeEquivalentTo(1))
		Expect(stats.StrategistEvaluations).To(BeEquivalentTo(1))
		Expect(stats.WriterEvaluations).To(BeZero())
		Expect(stats.PendingStrategistEvaluations).To(BeEquivalentTo(1))
		Expect(stats.UnreadMessages).To(BeEquivalentTo(1))
	})

	It("serves the stats through the handler", func() {
		handler := dashboard.NewHandler(transport.NewBaseHandler(discardLogger), service)
		req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil)
		req = req.WithContext(internal.ContextWithUser(req.Context(), admin))
		rec := httptest.NewRecorder()

		handler.Stats(rec, req)

		Expect(rec.Code).To(Equal(http.StatusOK))
		var resp map[string]interface{}
		Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp["success"]).To(BeTrue())
		Expect(resp).To(HaveKey("stats"))
	})
})
