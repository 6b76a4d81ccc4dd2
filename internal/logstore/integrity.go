package logstore

import (
	"context"
	"fmt"

	"github.com/saadjs/kcal-trends/internal/log"
)

// IntegrityReport counts rows the trends engine cannot read cleanly.
type IntegrityReport struct {
	Total             int `json:"total"`
	InvalidDates      int `json:"invalid_dates"`
	InvalidTimestamps int `json:"invalid_timestamps"`
}

// Check scans food_logs for dates that are not real YYYY-MM-DD days and
// created_at values SQLite cannot parse.
func (s *Store) Check(ctx context.Context) (IntegrityReport, error) {
	var r IntegrityReport
	err := s.db.QueryRowContext(ctx, `
SELECT
  COUNT(1),
  IFNULL(SUM(CASE WHEN date(log_date) IS NULL OR date(log_date) <> log_date THEN 1 ELSE 0 END), 0),
  IFNULL(SUM(CASE WHEN datetime(created_at) IS NULL THEN 1 ELSE 0 END), 0)
FROM food_logs
`).Scan(&r.Total, &r.InvalidDates, &r.InvalidTimestamps)
	if err != nil {
		return r, fmt.Errorf("doctor food log check: %w", err)
	}
	if r.InvalidDates > 0 || r.InvalidTimestamps > 0 {
		s.logger.WarnContext(ctx, "food logs failed integrity check",
			"invalid_dates", r.InvalidDates,
			"invalid_timestamps", r.InvalidTimestamps,
			log.FieldCount, r.Total,
		)
	}
	return r, nil
}
