// Copyright (c) 2026 Flowerpass Team
// Flowerpass - deterministic password generator
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/spf13/cobra"

	"github.com/xlsdg/flowerpass/internal/db"
	"github.com/xlsdg/flowerpass/internal/i18n"
	"github.com/xlsdg/flowerpass/internal/model"
)

var assumeYes bool

// readCompressedBackup handles reading and decoding a zstd-compressed JSON
// backup file.
func readCompressedBackup(filename string) (*model.BackupData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	zstdReader, err := zstd.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("could not create zstd reader: %w", err)
	}
	defer zstdReader.Close()

	var backupData model.BackupData
	if err := json.NewDecoder(zstdReader).Decode(&backupData); err != nil {
		return nil, fmt.Errorf("could not decode json from zstd reader: %w", err)
	}

	return &backupData, nil
}

// writeCompressedBackup streams the JSON encoding of the backup data
// directly into a zstd writer.
func writeCompressedBackup(filename string, data *model.BackupData) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("could not create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	zstdWriter, err := zstd.NewWriter(file)
	if err != nil {
		return fmt.Errorf("could not create zstd writer: %w", err)
	}
	defer func() { _ = zstdWriter.Close() }()

	encoder := json.NewEncoder(zstdWriter)
	encoder.SetIndent("", "  ") // Pretty-print the JSON inside the compressed file

	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("could not encode json to zstd writer: %w", err)
	}

	return nil
}

// backupCmd dumps the site registry into a zstd-compressed JSON file.
var backupCmd = &cobra.Command{
	Use:   "backup [output-file]",
	Short: "Create a compressed (zstd) JSON backup of the site registry",
	Long: `Dumps the site registry and the audit log into a single,
Zstandard-compressed JSON file. Passwords are not part of the data and are
never backed up.

If no output file is given, a default filename
'flowerpass-backup-YYYY-MM-DD.json.zst' is used.`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: setupDefaultServices,
	RunE: func(cmd *cobra.Command, args []string) error {
		var outputFile string
		if len(args) == 0 {
			outputFile = fmt.Sprintf("flowerpass-backup-%s.json.zst", time.Now().Format("2006-01-02"))
		} else {
			outputFile = args[0]
			if !strings.HasSuffix(outputFile, ".zst") {
				outputFile += ".zst"
			}
		}
		fmt.Println(i18n.T("backup.cli_starting"))
		data, err := db.ExportDataForBackup()
		if err != nil {
			return errors.New(i18n.T("backup.cli_error_export", err))
		}
		if err := writeCompressedBackup(outputFile, data); err != nil {
			return errors.New(i18n.T("backup.cli_error_write", err))
		}
		fmt.Println(i18n.T("backup.cli_success", outputFile))
		return nil
	},
}

// restoreCmd replaces the registry contents with a backup file.
var restoreCmd = &cobra.Command{
	Use:     "restore <backup-file>",
	Short:   "Restore the site registry from a backup",
	Long:    `Replaces the entire site registry and audit log with the contents of a backup file created by 'flowerpass backup'.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: setupDefaultServices,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readCompressedBackup(args[0])
		if err != nil {
			return errors.New(i18n.T("restore.cli_error_read", err))
		}
		if !assumeYes && !confirm(cmd, i18n.T("restore.cli_confirm")) {
			fmt.Println(i18n.T("restore.cli_aborted"))
			return nil
		}
		if err := db.ImportDataFromBackup(data); err != nil {
			return errors.New(i18n.T("restore.cli_error_import", err))
		}
		fmt.Println(i18n.T("restore.cli_success"))
		return nil
	},
}

// migrateCmd moves all data from the configured database to a new one.
var migrateCmd = &cobra.Command{
	Use:   "migrate --target-type <db-type> --target-dsn <target-dsn>",
	Short: "Migrate data from the current database to a new one",
	Long: `Exports all data from the currently configured database and imports it
into the target database given by --target-type and --target-dsn, applying
schema migrations to the target first.

Example:
  flowerpass migrate --target-type postgres --target-dsn "host=localhost user=flowerpass dbname=flowerpass"`,
	PreRunE: setupDefaultServices,
	RunE: func(cmd *cobra.Command, args []string) error {
		targetType, _ := cmd.Flags().GetString("target-type")
		targetDsn, _ := cmd.Flags().GetString("target-dsn")
		if targetType == "" || targetDsn == "" {
			return errors.New(i18n.T("migrate.cli_error_flags"))
		}

		fmt.Println(i18n.T("migrate.cli_starting_backup"))
		data, err := db.ExportDataForBackup()
		if err != nil {
			return errors.New(i18n.T("backup.cli_error_export", err))
		}

		fmt.Println(i18n.T("migrate.cli_starting_restore"))
		target, err := db.NewStoreFromDSN(targetType, targetDsn)
		if err != nil {
			return errors.New(i18n.T("config.error_init_db", err))
		}
		if err := target.ImportDataFromBackup(data); err != nil {
			return errors.New(i18n.T("restore.cli_error_import", err))
		}

		fmt.Println(i18n.T("migrate.cli_success"))
		return nil
	},
}
