// Package logstore persists food logs in SQLite and serves per-day totals
// to the trends engine.
package logstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/saadjs/kcal-trends/internal/calendar"
	"github.com/saadjs/kcal-trends/internal/log"
	"github.com/saadjs/kcal-trends/internal/model"
)

const defaultListLimit = 50

type AddInput struct {
	Name      string
	Grams     float64
	ProteinG  float64
	FatG      float64
	CarbsG    float64
	Calories  float64
	Date      civil.Date
	CreatedAt time.Time
}

// ListFilter bounds are inclusive; a zero date leaves that side open.
type ListFilter struct {
	From  civil.Date
	To    civil.Date
	Limit int
}

type ImportResult struct {
	BatchID int64
	Count   int
}

type Store struct {
	db     *sql.DB
	logger *log.Logger
	now    func() time.Time
}

func New(db *sql.DB, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Discard()
	}
	return &Store{
		db:     db,
		logger: logger.WithComponent(log.ComponentStorage),
		now:    time.Now,
	}
}

func (s *Store) Add(ctx context.Context, in AddInput) (int64, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return 0, fmt.Errorf("log name is required")
	}
	if err := validateMacros(in.Grams, in.ProteinG, in.FatG, in.CarbsG, in.Calories); err != nil {
		return 0, err
	}
	if !in.Date.IsValid() {
		return 0, fmt.Errorf("log date is required")
	}
	if in.CreatedAt.IsZero() {
		in.CreatedAt = s.now()
	}

	id, err := insertLog(ctx, s.db, in, nil)
	if err != nil {
		return 0, err
	}
	s.logger.DebugContext(ctx, "food log added", log.FieldOperation, log.OpCreate, "id", id, "date", in.Date.String())
	return id, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertLog(ctx context.Context, db execer, in AddInput, batchID *int64) (int64, error) {
	res, err := db.ExecContext(ctx, `
INSERT INTO food_logs(name, grams, protein_g, fat_g, carbs_g, calories, log_date, created_at, import_batch_id)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)
`, in.Name, in.Grams, in.ProteinG, in.FatG, in.CarbsG, in.Calories, in.Date.String(), in.CreatedAt.UTC().Format(time.RFC3339), batchID)
	if err != nil {
		return 0, fmt.Errorf("insert food log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve inserted food log id: %w", err)
	}
	return id, nil
}

// List returns logs newest first.
func (s *Store) List(ctx context.Context, f ListFilter) ([]model.FoodLog, error) {
	if f.From.IsValid() && f.To.IsValid() {
		if _, err := calendar.NewRange(f.From, f.To); err != nil {
			return nil, err
		}
	}

	query := `
SELECT id, name, grams, protein_g, fat_g, carbs_g, calories, log_date, created_at
FROM food_logs
WHERE 1=1`
	args := make([]any, 0)
	if f.From.IsValid() {
		query += ` AND log_date >= ?`
		args = append(args, f.From.String())
	}
	if f.To.IsValid() {
		query += ` AND log_date <= ?`
		args = append(args, f.To.String())
	}
	query += ` ORDER BY log_date DESC, created_at DESC, id DESC LIMIT ?`
	if f.Limit <= 0 {
		f.Limit = defaultListLimit
	}
	args = append(args, f.Limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list food logs: %w", err)
	}
	defer rows.Close()

	items := make([]model.FoodLog, 0)
	for rows.Next() {
		var l model.FoodLog
		var dateRaw, createdRaw string
		if err := rows.Scan(&l.ID, &l.Name, &l.Grams, &l.ProteinG, &l.FatG, &l.CarbsG, &l.Calories, &dateRaw, &createdRaw); err != nil {
			return nil, fmt.Errorf("scan food log: %w", err)
		}
		if l.Date, err = civil.ParseDate(dateRaw); err != nil {
			return nil, fmt.Errorf("parse log_date for food log %d: %w", l.ID, err)
		}
		if l.CreatedAt, err = time.Parse(time.RFC3339, createdRaw); err != nil {
			return nil, fmt.Errorf("parse created_at for food log %d: %w", l.ID, err)
		}
		items = append(items, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate food logs: %w", err)
	}
	s.logger.DebugContext(ctx, "food logs listed", log.FieldOperation, log.OpList, log.FieldCount, len(items))
	return items, nil
}

// Import stores entries as one batch. Either every entry is stored or none.
func (s *Store) Import(ctx context.Context, source string, entries []model.LogEntry) (ImportResult, error) {
	for i, e := range entries {
		e = e.Sanitized()
		if !e.Date.IsValid() {
			return ImportResult{}, fmt.Errorf("entry %d: invalid date", i+1)
		}
		if err := validateMacros(0, e.Protein, e.Fat, e.Carbs, e.Calories); err != nil {
			return ImportResult{}, fmt.Errorf("entry %d: %w", i+1, err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ImportResult{}, fmt.Errorf("begin import tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `INSERT INTO import_batches(source, entry_count, imported_at) VALUES(?, ?, ?)`,
		strings.TrimSpace(source), len(entries), s.now().UTC().Format(time.RFC3339))
	if err != nil {
		return ImportResult{}, fmt.Errorf("insert import batch: %w", err)
	}
	batchID, err := res.LastInsertId()
	if err != nil {
		return ImportResult{}, fmt.Errorf("resolve import batch id: %w", err)
	}

	for i, e := range entries {
		e = e.Sanitized()
		created := s.now()
		if e.CreatedAt != nil {
			created = *e.CreatedAt
		}
		in := AddInput{
			Name:      "imported",
			ProteinG:  e.Protein,
			FatG:      e.Fat,
			CarbsG:    e.Carbs,
			Calories:  e.Calories,
			Date:      e.Date,
			CreatedAt: created,
		}
		if _, err := insertLog(ctx, tx, in, &batchID); err != nil {
			return ImportResult{}, fmt.Errorf("entry %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return ImportResult{}, fmt.Errorf("commit import: %w", err)
	}
	s.logger.InfoContext(ctx, "food logs imported",
		log.FieldOperation, log.OpImport,
		log.FieldCount, len(entries),
		log.FieldPath, source,
	)
	return ImportResult{BatchID: batchID, Count: len(entries)}, nil
}

// FetchEntriesForRange returns one summed entry per day that has logs,
// ordered by date. Days without logs are omitted.
func (s *Store) FetchEntriesForRange(ctx context.Context, start, end civil.Date) ([]model.LogEntry, error) {
	rng, err := calendar.NewRange(start, end)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT log_date, IFNULL(SUM(protein_g), 0), IFNULL(SUM(fat_g), 0), IFNULL(SUM(carbs_g), 0), IFNULL(SUM(calories), 0)
FROM food_logs
WHERE log_date >= ? AND log_date <= ?
GROUP BY log_date
ORDER BY log_date ASC
`, rng.Start.String(), rng.End.String())
	if err != nil {
		return nil, fmt.Errorf("query day totals: %w", err)
	}
	defer rows.Close()

	items := make([]model.LogEntry, 0)
	for rows.Next() {
		var e model.LogEntry
		var dateRaw string
		if err := rows.Scan(&dateRaw, &e.Protein, &e.Fat, &e.Carbs, &e.Calories); err != nil {
			return nil, fmt.Errorf("scan day totals: %w", err)
		}
		if e.Date, err = civil.ParseDate(dateRaw); err != nil {
			return nil, fmt.Errorf("parse log_date %q: %w", dateRaw, err)
		}
		items = append(items, e.Sanitized())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate day totals: %w", err)
	}
	s.logger.DebugContext(ctx, "day totals fetched",
		log.FieldOperation, log.OpFetch,
		log.FieldRange, rng.String(),
		log.FieldCount, len(items),
	)
	return items, nil
}

func validateMacros(grams, protein, fat, carbs, calories float64) error {
	checks := []struct {
		name  string
		value float64
	}{
		{"grams", grams},
		{"protein", protein},
		{"fat", fat},
		{"carbs", carbs},
		{"calories", calories},
	}
	for _, c := range checks {
		if c.value < 0 {
			return fmt.Errorf("%s must be >= 0", c.name)
		}
	}
	return nil
}
