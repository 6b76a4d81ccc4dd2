package db_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/saadjs/kcal-trends/internal/db"
)

func TestBackupAndRestoreRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src, err := db.Open(filepath.Join(dir, "kcal.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer src.Close()
	if err := db.ApplyMigrations(src); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if _, err := src.Exec(`INSERT INTO food_logs(name, calories, log_date, created_at) VALUES('toast', 180, '2024-01-01', '2024-01-01T08:00:00Z')`); err != nil {
		t.Fatalf("insert log: %v", err)
	}

	backupPath := filepath.Join(dir, "backups", "kcal-1.db")
	info, err := db.Backup(context.Background(), src, backupPath)
	if err != nil {
		t.Fatalf("backup: %v", err)
	}
	if info.Checksum == "" || info.SizeBytes == 0 {
		t.Fatalf("unexpected backup info: %+v", info)
	}
	if _, err := db.Backup(context.Background(), src, backupPath); err == nil {
		t.Fatalf("expected second backup to the same path to fail")
	}

	items, err := db.ListBackups(filepath.Dir(backupPath))
	if err != nil {
		t.Fatalf("list backups: %v", err)
	}
	if len(items) != 1 || items[0].Checksum != info.Checksum || !items[0].Verified {
		t.Fatalf("unexpected backups: %+v", items)
	}

	restored := filepath.Join(dir, "restored", "kcal.db")
	if err := db.Restore(backupPath, restored, false); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if err := db.Restore(backupPath, restored, false); err == nil {
		t.Fatalf("expected restore over existing db to require force")
	}

	dst, err := db.Open(restored)
	if err != nil {
		t.Fatalf("open restored db: %v", err)
	}
	defer dst.Close()
	var count int
	if err := dst.QueryRow(`SELECT COUNT(1) FROM food_logs`).Scan(&count); err != nil {
		t.Fatalf("count restored logs: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 restored log, got %d", count)
	}
}

func TestRestoreRejectsChecksumMismatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	backupPath := filepath.Join(dir, "kcal.db")
	if err := os.WriteFile(backupPath, []byte("not really sqlite"), 0o644); err != nil {
		t.Fatalf("write backup: %v", err)
	}
	if err := os.WriteFile(backupPath+".sha256", []byte("deadbeef\n"), 0o644); err != nil {
		t.Fatalf("write checksum: %v", err)
	}
	if err := db.Restore(backupPath, filepath.Join(dir, "out.db"), false); err == nil {
		t.Fatalf("expected checksum mismatch")
	}
}

func TestListBackupsFlagsTamperedSnapshot(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := filepath.Join(dir, "a.db")
	bare := filepath.Join(dir, "b.db")
	for _, p := range []string{good, bare} {
		if err := os.WriteFile(p, []byte("snapshot"), 0o644); err != nil {
			t.Fatalf("write %s: %v", p, err)
		}
	}
	if err := os.WriteFile(good+".sha256", []byte("deadbeef\n"), 0o644); err != nil {
		t.Fatalf("write checksum: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write notes: %v", err)
	}

	items, err := db.ListBackups(dir)
	if err != nil {
		t.Fatalf("list backups: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected only .db files, got %+v", items)
	}
	for _, it := range items {
		if it.Verified {
			t.Fatalf("expected %s to be unverified", it.Path)
		}
		if it.Path == good && it.Checksum != "deadbeef" {
			t.Fatalf("expected recorded checksum, got %q", it.Checksum)
		}
	}
}
