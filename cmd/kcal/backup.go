package kcal

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	"github.com/saadjs/kcal-trends/internal/db"
	"github.com/saadjs/kcal-trends/internal/log"
	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Snapshot, list and restore the food log database",
}

var (
	backupOut    string
	backupDir    string
	restoreFile  string
	restoreForce bool
)

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Write a consistent snapshot of the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveDBPath()
		if err != nil {
			return err
		}
		out := backupOut
		if out == "" {
			out = filepath.Join(backupDirFor(path), fmt.Sprintf("kcal-%s.db", time.Now().Format("20060102-150405")))
		}
		return withDB(func(sqldb *sql.DB) error {
			info, err := db.Backup(cmd.Context(), sqldb, out)
			if err != nil {
				return err
			}
			runtimeLogger().InfoContext(cmd.Context(), "backup created", log.FieldPath, info.Path)
			fmt.Fprintf(cmd.OutOrStdout(), "Created backup: %s\n", info.Path)
			fmt.Fprintf(cmd.OutOrStdout(), "Checksum: %s\n", info.Checksum)
			return nil
		})
	},
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List snapshots",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveDBPath()
		if err != nil {
			return err
		}
		items, err := db.ListBackups(backupDirFor(path))
		if err != nil {
			return err
		}
		t := newTable("FILE", "SIZE", "CREATED", "CHECKSUM", "VERIFIED")
		for _, it := range items {
			verified := "no"
			if it.Verified {
				verified = "yes"
			}
			t.Row(it.Path, fmt.Sprintf("%d", it.SizeBytes), it.CreatedAt.Format(time.RFC3339), displayOr(it.Checksum, "-"), verified)
		}
		fmt.Fprintln(cmd.OutOrStdout(), t.String())
		return nil
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore the database from a snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		if restoreFile == "" {
			return fmt.Errorf("--file is required")
		}
		path, err := resolveDBPath()
		if err != nil {
			return err
		}
		if err := db.Restore(restoreFile, path, restoreForce); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Restored backup from %s\n", restoreFile)
		return nil
	},
}

func backupDirFor(dbFile string) string {
	if backupDir != "" {
		return backupDir
	}
	return filepath.Join(filepath.Dir(dbFile), "backups")
}

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.AddCommand(backupCreateCmd, backupListCmd, backupRestoreCmd)

	backupCreateCmd.Flags().StringVar(&backupOut, "out", "", "Backup output file path")
	backupCreateCmd.Flags().StringVar(&backupDir, "dir", "", "Backup directory (used when --out is empty)")
	backupListCmd.Flags().StringVar(&backupDir, "dir", "", "Backup directory (default: alongside DB under backups/)")
	backupRestoreCmd.Flags().StringVar(&restoreFile, "file", "", "Backup .db file path")
	backupRestoreCmd.Flags().BoolVar(&restoreForce, "force", false, "Overwrite existing DB if present")
}
