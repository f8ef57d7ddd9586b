// Package dashboard computes the admin overview counters with plain SQL.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/frahmantamala/kpi-portal/internal"
	"github.com/frahmantamala/kpi-portal/internal/auth"
	"github.com/frahmantamala/kpi-portal/internal/calendar"
	evaluationDatamodel "github.com/frahmantamala/kpi-portal/internal/core/datamodel/evaluation"
)

type Stats struct {
	PeriodLabel                  string `json:"periodLabel"`
	Users                        int64  `json:"users"`
	ActiveUsers                  int64  `json:"activeUsers"`
	ActiveWorkgroups             int64  `json:"activeWorkgroups"`
	StrategistEvaluations        int64  `json:"strategistEvaluations"`
	WriterEvaluations            int64  `json:"writerEvaluations"`
	PendingStrategistEvaluations int64  `json:"pendingStrategistEvaluations"`
	UnreadMessages               int64  `json:"unreadMessages"`
}

type Authorizer interface {
	Authorize(ctx context.Context, principal *internal.User, action auth.Action, target auth.Target) error
}

type Service struct {
	db     *sqlx.DB
	gate   Authorizer
	logger *slog.Logger
	now    func() time.Time
}

func NewService(db *sqlx.DB, gate Authorizer, logger *slog.Logger) *Service {
	return &Service{db: db, gate: gate, logger: logger, now: time.Now}
}

type counter struct {
	dst   *int64
	query string
	args  []interface{}
}

// Stats counts evaluations for the current Persian period only.
func (s *Service) Stats(ctx context.Context, principal *internal.User) (*Stats, error) {
	if err := s.gate.Authorize(ctx, principal, auth.ActionViewDashboard, auth.Target{}); err != nil {
		return nil, err
	}
	period, err := calendar.CurrentPeriod(s.now())
	if err != nil {
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}

	out := &Stats{PeriodLabel: period.Label()}
	counters := []counter{
		{&out.Users, `SELECT COUNT(*) FROM users`, nil},
		{&out.ActiveUsers, `SELECT COUNT(*) FROM users WHERE is_active = ?`, []interface{}{true}},
		{&out.ActiveWorkgroups, `SELECT COUNT(*) FROM workgroups WHERE is_active = ?`, []interface{}{true}},
		{&out.StrategistEvaluations, `SELECT COUNT(*) FROM strategist_evaluations WHERE year = ? AND month = ?`, []interface{}{period.Year, period.Month}},
		{&out.WriterEvaluations, `SELECT COUNT(*) FROM writer_evaluations WHERE year = ? AND month = ?`, []interface{}{period.Year, period.Month}},
		{&out.PendingStrategistEvaluations, `SELECT COUNT(*) FROM strategist_evaluations WHERE status = ?`, []interface{}{evaluationDatamodel.StatusPending}},
		{&out.UnreadMessages, `SELECT COUNT(*) FROM messages WHERE is_read = ?`, []interface{}{false}},
	}
	for _, c := range counters {
		if err := s.db.GetContext(ctx, c.dst, s.db.Rebind(c.query), c.args...); err != nil {
			s.logger.Error("dashboard query failed", "query", c.query, "error", err)
			return nil, internal.NewInternalError(internal.MsgInternal, fmt.Errorf("dashboard: %w", err))
		}
	}
	return out, nil
}
