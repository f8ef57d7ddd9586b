// Package periodmigration rewrites periods that were stored as Gregorian
// (year, month) pairs into Persian periods.
package periodmigration

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/frahmantamala/kpi-portal/internal/calendar"
)

// MinGregorianYear separates Gregorian years from Persian ones. Rows below it
// are already Persian and are never touched.
const MinGregorianYear = 1900

const (
	ReasonCollision     = "collision"
	ReasonInvalidPeriod = "invalid_period"
)

// Table names a period-keyed table and the columns that, with year and month,
// form its unique key.
type Table struct {
	Name string
	Keys []string
}

var DefaultTables = []Table{
	{Name: "strategist_evaluations", Keys: []string{"strategist_id"}},
	{Name: "writer_evaluations", Keys: []string{"writer_id"}},
	{Name: "writer_feedbacks", Keys: []string{"writer_id", "workgroup_id"}},
}

type Skipped struct {
	ID     int64           `json:"id"`
	From   calendar.Period `json:"from"`
	To     calendar.Period `json:"to"`
	Reason string          `json:"reason"`
}

type TableReport struct {
	Table    string    `json:"table"`
	Scanned  int       `json:"scanned"`
	Migrated int       `json:"migrated"`
	Skipped  []Skipped `json:"skipped"`
}

type Report struct {
	DryRun bool          `json:"dryRun"`
	Tables []TableReport `json:"tables"`
}

func (r *Report) Migrated() int {
	n := 0
	for _, t := range r.Tables {
		n += t.Migrated
	}
	return n
}

type row struct {
	ID    int64 `db:"id"`
	Year  int   `db:"year"`
	Month int   `db:"month"`
	Key1  int64 `db:"key1"`
	Key2  int64 `db:"key2"`
}

type Migrator struct {
	db     *sqlx.DB
	tables []Table
	logger *slog.Logger
}

func New(db *sqlx.DB, logger *slog.Logger) *Migrator {
	return &Migrator{db: db, tables: DefaultTables, logger: logger}
}

// Run migrates every table in its own transaction. With dryRun set the
// report is computed and every transaction is rolled back.
func (m *Migrator) Run(ctx context.Context, dryRun bool) (*Report, error) {
	report := &Report{DryRun: dryRun}
	for _, t := range m.tables {
		tr, err := m.migrateTable(ctx, t, dryRun)
		if err != nil {
			return report, fmt.Errorf("migrate %s: %w", t.Name, err)
		}
		m.logger.Info("period migration table done",
			"table", t.Name,
			"scanned", tr.Scanned,
			"migrated", tr.Migrated,
			"skipped", len(tr.Skipped),
			"dry_run", dryRun)
		report.Tables = append(report.Tables, *tr)
	}
	return report, nil
}

func (m *Migrator) migrateTable(ctx context.Context, t Table, dryRun bool) (_ *TableReport, err error) {
	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil || dryRun {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	var rows []row
	if err := tx.SelectContext(ctx, &rows, tx.Rebind(selectQuery(t)), MinGregorianYear); err != nil {
		return nil, err
	}

	report := &TableReport{Table: t.Name, Scanned: len(rows), Skipped: []Skipped{}}
	claimed := make(map[string]bool, len(rows))
	for _, r := range rows {
		from := calendar.Period{Year: r.Year, Month: r.Month}
		to, convErr := calendar.FromGregorianMonth(r.Year, r.Month)
		if convErr != nil {
			report.Skipped = append(report.Skipped, Skipped{ID: r.ID, From: from, Reason: ReasonInvalidPeriod})
			continue
		}

		key := fmt.Sprintf("%d/%d/%s", r.Key1, r.Key2, to)
		taken := claimed[key]
		if !taken {
			var n int
			if err := tx.GetContext(ctx, &n, tx.Rebind(collisionQuery(t)), collisionArgs(t, r, to)...); err != nil {
				return nil, err
			}
			taken = n > 0
		}
		if taken {
			m.logger.Warn("period migration collision", "table", t.Name, "id", r.ID, "from", from.String(), "to", to.String())
			report.Skipped = append(report.Skipped, Skipped{ID: r.ID, From: from, To: to, Reason: ReasonCollision})
			continue
		}

		claimed[key] = true
		if !dryRun {
			update := fmt.Sprintf("UPDATE %s SET year = ?, month = ? WHERE id = ?", t.Name)
			if _, err := tx.ExecContext(ctx, tx.Rebind(update), to.Year, to.Month, r.ID); err != nil {
				return nil, err
			}
		}
		report.Migrated++
	}
	return report, nil
}

func selectQuery(t Table) string {
	key2 := "0"
	if len(t.Keys) > 1 {
		key2 = t.Keys[1]
	}
	return fmt.Sprintf("SELECT id, year, month, %s AS key1, %s AS key2 FROM %s WHERE year >= ? ORDER BY id",
		t.Keys[0], key2, t.Name)
}

func collisionQuery(t Table) string {
	conds := make([]string, 0, len(t.Keys)+3)
	for _, k := range t.Keys {
		conds = append(conds, k+" = ?")
	}
	conds = append(conds, "year = ?", "month = ?", "id <> ?")
	return fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s", t.Name, strings.Join(conds, " AND "))
}

func collisionArgs(t Table, r row, to calendar.Period) []interface{} {
	args := []interface{}{r.Key1}
	if len(t.Keys) > 1 {
		args = append(args, r.Key2)
	}
	return append(args, to.Year, to.Month, r.ID)
}
