// Package report_repo aggregates print history for the statistics endpoints.
package report_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"labelprint/internal/domain"
	"labelprint/internal/domain/reports"
	"labelprint/internal/infrastructure/storage/postgres"
)

const historyTable = "print_history"

var _ reports.Repository = (*ReportRepo)(nil)

// ReportRepo implements reports.Repository.
type ReportRepo struct {
	txm *postgres.TxManager
}

// NewReportRepo creates a new report repository.
func NewReportRepo(txm *postgres.TxManager) *ReportRepo {
	return &ReportRepo{txm: txm}
}

// TotalsQuery builds the summary aggregate.
func TotalsQuery(r domain.TimeRange) squirrel.SelectBuilder {
	q := postgres.Builder().
		Select(
			"COUNT(*) AS total_prints",
			"COALESCE(SUM(quantity), 0) AS total_labels",
			"COUNT(*) FILTER (WHERE status = 'success') AS successful_prints",
			"COUNT(*) FILTER (WHERE status = 'failed') AS failed_prints",
			"COUNT(*) FILTER (WHERE connection_type = 'bluetooth') AS bluetooth_prints",
			"COUNT(*) FILTER (WHERE connection_type = 'serial') AS serial_prints",
			"COUNT(*) FILTER (WHERE connection_type = 'usb') AS usb_prints",
			"COUNT(*) FILTER (WHERE connection_type = 'network') AS network_prints",
			"COUNT(*) FILTER (WHERE connection_type = 'download') AS downloads",
			"COALESCE(AVG(duration_ms), 0)::float8 AS avg_duration_ms",
		).
		From(historyTable)
	if r.From != nil {
		q = q.Where(squirrel.GtOrEq{"created_at": *r.From})
	}
	if r.To != nil {
		q = q.Where(squirrel.LtOrEq{"created_at": *r.To})
	}
	return q
}

// Totals computes the summary counters.
func (r *ReportRepo) Totals(ctx context.Context, tr domain.TimeRange) (reports.Totals, error) {
	sql, args, err := TotalsQuery(tr).ToSql()
	if err != nil {
		return reports.Totals{}, fmt.Errorf("build totals query: %w", err)
	}

	var t reports.Totals
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &t, sql, args...); err != nil {
		return reports.Totals{}, fmt.Errorf("print totals: %w", err)
	}
	return t, nil
}

// DailyQuery groups jobs by UTC calendar day.
func DailyQuery(since time.Time) squirrel.SelectBuilder {
	day := "to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD')"
	return postgres.Builder().
		Select(
			day+" AS date",
			"COUNT(*) AS total_prints",
			"COALESCE(SUM(quantity), 0) AS total_labels",
			"COUNT(*) FILTER (WHERE status = 'success') AS successful_prints",
			"COUNT(*) FILTER (WHERE status = 'failed') AS failed_prints",
		).
		From(historyTable).
		Where(squirrel.GtOrEq{"created_at": since}).
		GroupBy(day).
		OrderBy("date ASC")
}

// Daily returns per-day counters since the given instant.
func (r *ReportRepo) Daily(ctx context.Context, since time.Time) ([]reports.DailyStat, error) {
	sql, args, err := DailyQuery(since).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build daily query: %w", err)
	}

	var out []reports.DailyStat
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &out, sql, args...); err != nil {
		return nil, fmt.Errorf("daily stats: %w", err)
	}
	return out, nil
}

// TopLabelsQuery ranks base names by printed quantity.
func TopLabelsQuery(limit int) squirrel.SelectBuilder {
	return postgres.Builder().
		Select(
			"base_name",
			"COUNT(*) AS total_prints",
			"COALESCE(SUM(quantity), 0) AS total_quantity",
			"MAX(created_at) AS last_printed",
		).
		From(historyTable).
		GroupBy("base_name").
		OrderBy("total_quantity DESC", "base_name ASC").
		Limit(uint64(limit))
}

// TopLabels returns the most printed base names.
func (r *ReportRepo) TopLabels(ctx context.Context, limit int) ([]reports.TopLabel, error) {
	sql, args, err := TopLabelsQuery(limit).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build top labels query: %w", err)
	}

	var out []reports.TopLabel
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &out, sql, args...); err != nil {
		return nil, fmt.Errorf("top labels: %w", err)
	}
	return out, nil
}
