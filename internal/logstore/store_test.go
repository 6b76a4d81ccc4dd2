package logstore_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/saadjs/kcal-trends/internal/calendar"
	"github.com/saadjs/kcal-trends/internal/db"
	"github.com/saadjs/kcal-trends/internal/logstore"
	"github.com/saadjs/kcal-trends/internal/model"
	"github.com/saadjs/kcal-trends/internal/trends"
)

var _ trends.EntryFetcher = (*logstore.Store)(nil)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kcal.db")
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	t.Cleanup(func() { _ = sqldb.Close() })
	return sqldb
}

func date(y int, m time.Month, d int) civil.Date {
	return civil.Date{Year: y, Month: m, Day: d}
}

func mustAdd(t *testing.T, s *logstore.Store, in logstore.AddInput) int64 {
	t.Helper()
	id, err := s.Add(context.Background(), in)
	if err != nil {
		t.Fatalf("add log %q: %v", in.Name, err)
	}
	return id
}

func TestFetchEntriesForRangeSumsPerDay(t *testing.T) {
	t.Parallel()
	s := logstore.New(newTestDB(t), nil)

	mustAdd(t, s, logstore.AddInput{Name: "oats", ProteinG: 10, FatG: 5, CarbsG: 50, Calories: 300, Date: date(2024, 1, 2)})
	mustAdd(t, s, logstore.AddInput{Name: "eggs", ProteinG: 12, FatG: 10, CarbsG: 1, Calories: 150, Date: date(2024, 1, 2)})
	mustAdd(t, s, logstore.AddInput{Name: "rice", ProteinG: 4, CarbsG: 45, Calories: 200, Date: date(2024, 1, 4)})
	mustAdd(t, s, logstore.AddInput{Name: "late", Calories: 999, Date: date(2024, 1, 9)})

	got, err := s.FetchEntriesForRange(context.Background(), date(2024, 1, 1), date(2024, 1, 7))
	if err != nil {
		t.Fatalf("fetch entries: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 days with data, got %d", len(got))
	}
	if got[0].Date != date(2024, 1, 2) || got[0].Calories != 450 || got[0].Protein != 22 || got[0].Fat != 15 || got[0].Carbs != 51 {
		t.Fatalf("unexpected first day: %+v", got[0])
	}
	if got[1].Date != date(2024, 1, 4) || got[1].Calories != 200 {
		t.Fatalf("unexpected second day: %+v", got[1])
	}
}

func TestFetchEntriesForRangeFeedsTrends(t *testing.T) {
	t.Parallel()
	s := logstore.New(newTestDB(t), nil)
	mustAdd(t, s, logstore.AddInput{Name: "lunch", ProteinG: 10, FatG: 5, CarbsG: 20, Calories: 160, Date: date(2024, 1, 2)})

	rng := calendar.DateRange{Start: date(2024, 1, 1), End: date(2024, 1, 3)}
	entries, err := s.FetchEntriesForRange(context.Background(), rng.Start, rng.End)
	if err != nil {
		t.Fatalf("fetch entries: %v", err)
	}
	days := trends.FillDaily(entries, rng)
	if len(days) != 3 {
		t.Fatalf("expected 3 buckets, got %d", len(days))
	}
	if days[0].Calories != 0 || days[1].Calories != 160 || days[2].Calories != 0 {
		t.Fatalf("unexpected buckets: %+v", days)
	}
}

func TestFetchEntriesForRangeRejectsInvertedRange(t *testing.T) {
	t.Parallel()
	s := logstore.New(newTestDB(t), nil)

	_, err := s.FetchEntriesForRange(context.Background(), date(2024, 2, 1), date(2024, 1, 1))
	var invalid *calendar.InvalidRangeError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidRangeError, got %v", err)
	}
}

func TestAddValidates(t *testing.T) {
	t.Parallel()
	s := logstore.New(newTestDB(t), nil)
	ctx := context.Background()

	if _, err := s.Add(ctx, logstore.AddInput{Name: " ", Date: date(2024, 1, 1)}); err == nil {
		t.Fatalf("expected name validation error")
	}
	if _, err := s.Add(ctx, logstore.AddInput{Name: "x", Calories: -5, Date: date(2024, 1, 1)}); err == nil {
		t.Fatalf("expected negative calories error")
	}
	if _, err := s.Add(ctx, logstore.AddInput{Name: "x"}); err == nil {
		t.Fatalf("expected date validation error")
	}
}

func TestListFiltersAndOrders(t *testing.T) {
	t.Parallel()
	s := logstore.New(newTestDB(t), nil)
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	mustAdd(t, s, logstore.AddInput{Name: "a", Calories: 100, Date: date(2024, 3, 1), CreatedAt: base})
	mustAdd(t, s, logstore.AddInput{Name: "b", Calories: 200, Date: date(2024, 3, 2), CreatedAt: base.Add(24 * time.Hour)})
	mustAdd(t, s, logstore.AddInput{Name: "c", Calories: 300, Date: date(2024, 3, 3), CreatedAt: base.Add(48 * time.Hour)})

	items, err := s.List(context.Background(), logstore.ListFilter{From: date(2024, 3, 2), To: date(2024, 3, 3)})
	if err != nil {
		t.Fatalf("list logs: %v", err)
	}
	if len(items) != 2 || items[0].Name != "c" || items[1].Name != "b" {
		t.Fatalf("unexpected list result: %+v", items)
	}
	if !items[1].CreatedAt.Equal(base.Add(24 * time.Hour)) {
		t.Fatalf("unexpected created_at: %s", items[1].CreatedAt)
	}

	limited, err := s.List(context.Background(), logstore.ListFilter{Limit: 1})
	if err != nil {
		t.Fatalf("list with limit: %v", err)
	}
	if len(limited) != 1 || limited[0].Name != "c" {
		t.Fatalf("unexpected limited result: %+v", limited)
	}

	if _, err := s.List(context.Background(), logstore.ListFilter{From: date(2024, 3, 3), To: date(2024, 3, 1)}); err == nil {
		t.Fatalf("expected inverted range error")
	}
}

func TestImportStoresBatch(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	s := logstore.New(sqldb, nil)

	var entries []model.LogEntry
	raw := `[
  {"date":"2024-05-01","protein":"20","fat":null,"carbs":"abc","calories":500},
  {"date":"2024-05-01","protein":5,"calories":100,"created_at":"2024-05-01T12:30:00Z"},
  {"date":"2024-05-03","calories":"750.5"}
]`
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		t.Fatalf("decode entries: %v", err)
	}

	res, err := s.Import(context.Background(), "export.json", entries)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if res.Count != 3 || res.BatchID <= 0 {
		t.Fatalf("unexpected import result: %+v", res)
	}

	var batchCount int
	if err := sqldb.QueryRow(`SELECT COUNT(1) FROM food_logs WHERE import_batch_id = ?`, res.BatchID).Scan(&batchCount); err != nil {
		t.Fatalf("count batch rows: %v", err)
	}
	if batchCount != 3 {
		t.Fatalf("expected 3 rows in batch, got %d", batchCount)
	}

	got, err := s.FetchEntriesForRange(context.Background(), date(2024, 5, 1), date(2024, 5, 3))
	if err != nil {
		t.Fatalf("fetch entries: %v", err)
	}
	if len(got) != 2 || got[0].Protein != 25 || got[0].Carbs != 0 || got[0].Calories != 600 || got[1].Calories != 750.5 {
		t.Fatalf("unexpected day totals: %+v", got)
	}
}

func TestImportIsAllOrNothing(t *testing.T) {
	t.Parallel()
	s := logstore.New(newTestDB(t), nil)

	entries := []model.LogEntry{
		{Date: date(2024, 6, 1), Calories: 100},
		{Date: date(2024, 6, 2), Calories: -100},
	}
	if _, err := s.Import(context.Background(), "bad.json", entries); err == nil {
		t.Fatalf("expected import error")
	}

	got, err := s.FetchEntriesForRange(context.Background(), date(2024, 6, 1), date(2024, 6, 2))
	if err != nil {
		t.Fatalf("fetch entries: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no rows after failed import, got %+v", got)
	}
}
