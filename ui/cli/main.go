// Copyright (c) 2026 Flowerpass Team
// Flowerpass - deterministic password generator
// This source code is licensed under the MIT license found in the LICENSE file.

// main.go sets up the command-line interface (CLI) for Flowerpass using the
// Cobra library. It defines the root command, subcommands (code, site,
// audit, backup, ...) and the main entry point for execution.

package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/xlsdg/flowerpass/fpcode"
	"github.com/xlsdg/flowerpass/internal/config"
	"github.com/xlsdg/flowerpass/internal/db"
	"github.com/xlsdg/flowerpass/internal/i18n"
	"github.com/xlsdg/flowerpass/internal/logging"
	"github.com/xlsdg/flowerpass/internal/tui"
)

var version = "dev" // this will be set by the linker

var (
	cfgFile      string
	verbose      bool
	copyFlag     bool
	showPassword bool
	lengthFlag   int
)

// appConfig holds the resolved configuration for the current invocation.
var appConfig config.Config

// configDefaults are the baseline settings used before any config file,
// environment variable or flag is applied.
var configDefaults = map[string]any{
	"database.type":   "sqlite",
	"database.dsn":    "./flowerpass.db",
	"language":        "en",
	"defaults.length": 16,
	"defaults.copy":   false,
}

// setupDefaultServices loads the configuration, initializes i18n and opens
// the site registry database. It backs every command that needs services.
func setupDefaultServices(cmd *cobra.Command, args []string) error {
	optionalConfigPath, err := getConfigPathFromCli(cmd)
	if err != nil {
		return err
	}

	appConfig, err = config.LoadConfig(cmd, configDefaults, optionalConfigPath)
	// A "file not found" error is expected on first run; create a default
	// config so subsequent runs have a persisted file to inspect.
	if errors.As(err, &viper.ConfigFileNotFoundError{}) {
		if writeErr := config.WriteConfigFile(&appConfig, false); writeErr != nil {
			logging.Warnf("could not write default config file: %v", writeErr)
		}
	} else if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	// Guard against empty values from a hand-edited config file.
	if appConfig.Database.Type == "" {
		appConfig.Database.Type = configDefaults["database.type"].(string)
	}
	if appConfig.Database.Dsn == "" {
		appConfig.Database.Dsn = configDefaults["database.dsn"].(string)
	}
	if appConfig.Language == "" {
		appConfig.Language = configDefaults["language"].(string)
	}
	if appConfig.Defaults.Length == 0 {
		appConfig.Defaults.Length = configDefaults["defaults.length"].(int)
	}

	i18n.Init(appConfig.Language)

	if !db.IsInitialized() {
		if err := db.InitDB(appConfig.Database.Type, appConfig.Database.Dsn); err != nil {
			return errors.New(i18n.T("config.error_init_db", err))
		}
	}

	return nil
}

// Execute runs the CLI entrypoint. The root main package should call this
// function and handle process exit.
func Execute() error {
	return NewRootCmd().Execute()
}

func getConfigPathFromCli(cmd *cobra.Command) (*string, error) {
	// Only proceed if the user has explicitly set the --config flag.
	if !cmd.Flags().Changed("config") {
		return nil, nil
	}
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("could not read --config flag: %w", err)
	}
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file specified via --config flag not found or is not accessible: %w", err)
	}
	return &path, nil
}

// NewRootCmd creates and configures a new root cobra command. This function
// is used to create the main application command as well as fresh instances
// for isolated testing.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flowerpass",
		Short: "Flowerpass derives per-site passwords from one master password.",
		Long: `Flowerpass is a stateless password generator: it derives a
deterministic, human-typeable password for each site from a single master
password and the site's key (e.g. github.com). The same inputs always
reproduce the same password, so nothing secret is ever stored.

The optional site registry only remembers per-site settings (key, length,
label) - never passwords.

Running without a subcommand launches the interactive TUI.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				logging.SetDebug(true)
			}
			return setupDefaultServices(cmd, args)
		},
		Run: func(cmd *cobra.Command, args []string) {
			// Config, i18n and the database are ready; just run the TUI.
			if err := tui.Run(appConfig.Defaults.Length); err != nil {
				logging.Errorf("TUI error: %v", err)
			}
		},
	}

	cmd.Version = version

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file")
	cmd.PersistentFlags().String("language", "en", `Interface language ("en", "de")`)
	applyDefaultFlags(cmd)


	if codeCmd.Flags().Lookup("length") == nil {
		codeCmd.Flags().IntVarP(&lengthFlag, "length", "l", 0, "Output length (2-32); overrides the registered site length")
		codeCmd.Flags().BoolVarP(&copyFlag, "copy", "c", false, "Copy the derived password to the clipboard instead of printing it")
		codeCmd.Flags().BoolVar(&showPassword, "show-password", false, "Echo the master password while typing")
	}
	cmd.AddCommand(codeCmd)
	cmd.AddCommand(newSiteCmd())
	cmd.AddCommand(auditCmd)
	if restoreCmd.Flags().Lookup("yes") == nil {
		restoreCmd.Flags().BoolVar(&assumeYes, "yes", false, "Do not ask for confirmation before overwriting data")
	}
	if migrateCmd.Flags().Lookup("target-type") == nil {
		migrateCmd.Flags().String("target-type", "", "Target database type (sqlite, postgres, mysql)")
		migrateCmd.Flags().String("target-dsn", "", "Target database connection string (DSN)")
	}
	cmd.AddCommand(backupCmd)
	cmd.AddCommand(restoreCmd)
	cmd.AddCommand(migrateCmd)
	cmd.AddCommand(maintainCmd)
	cmd.AddCommand(examplesCmd)

	return cmd
}

func applyDefaultFlags(cmd *cobra.Command) {
	// Persistent so every subcommand can point at a different database.
	// Cobra merges these into each subcommand's flag set before
	// PersistentPreRunE runs, which is where viper binds them.
	if cmd.PersistentFlags().Lookup("database.type") == nil {
		cmd.PersistentFlags().String("database.type", "sqlite", "Database type (sqlite, postgres, mysql)")
	}
	if cmd.PersistentFlags().Lookup("database.dsn") == nil {
		cmd.PersistentFlags().String("database.dsn", "./flowerpass.db", "Database connection string (DSN)")
	}
}

// codeCmd derives the password for one key and prints (or copies) it.
var codeCmd = &cobra.Command{
	Use:   "code <key> [length]",
	Short: "Derive the password for a key",
	Long: `Derives the deterministic password for the given key. The master
password is prompted for and never echoed or stored.

The output length is resolved in this order: the [length] argument or
--length flag, the registered site's length, then defaults.length from the
config file.

Examples:
  flowerpass code github.com
  flowerpass code github.com 20
  flowerpass code --copy github.com`,
	Args:    cobra.RangeArgs(1, 2),
	PreRunE: setupDefaultServices,
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]

		length := appConfig.Defaults.Length
		explicit := false
		if lengthFlag != 0 {
			length = lengthFlag
			explicit = true
		}
		if len(args) == 2 {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("length must be a number, got %q", args[1])
			}
			length = n
			explicit = true
		}
		if !explicit {
			if site, err := db.GetSiteByKey(key); err == nil && site != nil {
				length = site.Length
				logging.Debugf("%s", i18n.T("code.registered_length", site.Length, key))
			}
		}

		master, err := promptMasterPassword(cmd)
		if err != nil {
			return errors.New(i18n.T("code.error_read_password", err))
		}
		defer master.Zero()

		var derived string
		err = master.Use(func(b []byte) error {
			var derr error
			derived, derr = fpcode.Code(string(b), key, length)
			return derr
		})
		if err != nil {
			return errors.New(i18n.T("code.error_derive", err))
		}

		if copyFlag || appConfig.Defaults.Copy {
			if err := clipboard.WriteAll(derived); err != nil {
				return errors.New(i18n.T("code.error_clipboard", err))
			}
			fmt.Println(i18n.T("code.copied", key))
			return nil
		}
		fmt.Println(derived)
		return nil
	},
}

// auditCmd prints the registry audit log.
var auditCmd = &cobra.Command{
	Use:     "audit",
	Short:   "Show the site registry audit log",
	Long:    `Prints every recorded change to the site registry, most recent first. Passwords are never part of the log.`,
	PreRunE: setupDefaultServices,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := db.GetAllAuditLogEntries()
		if err != nil {
			return errors.New(i18n.T("audit.error_read", err))
		}
		if len(entries) == 0 {
			fmt.Println(i18n.T("audit.empty"))
			return nil
		}
		for _, e := range entries {
			fmt.Printf("%s  %-12s %s\n", e.Timestamp, e.Action, e.Details)
		}
		return nil
	},
}

// maintainCmd runs engine-specific database maintenance.
var maintainCmd = &cobra.Command{
	Use:     "db-maintain",
	Short:   "Run database maintenance (vacuum, optimize)",
	PreRunE: setupDefaultServices,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(i18n.T("maintain.cli_starting"))
		if err := db.RunDBMaintenance(appConfig.Database.Type, appConfig.Database.Dsn); err != nil {
			return errors.New(i18n.T("maintain.cli_error", err))
		}
		fmt.Println(i18n.T("maintain.cli_success"))
		return nil
	},
}

// examplesCmd prints the fixed compatibility vectors. Useful to eyeball that
// a build (or a port in another language) derives identical passwords.
var examplesCmd = &cobra.Command{
	Use:   "examples",
	Short: "Print known derivation vectors for compatibility checks",
	Run: func(cmd *cobra.Command, args []string) {
		type vector struct {
			password, key string
			length        int
		}
		vectors := []vector{
			{"test", "github.com", 16},
			{"password", "key", 16},
			{"password", "key", 2},
			{"password", "key", 32},
			{"test", "example.com", 16},
			{"mypass", "github.com", 16},
			{"secret", "google.com", 16},
			{"12345", "site", 16},
			{"", "", 16},
			{"密码", "网站.com", 16},
		}
		fmt.Printf("%-10s %-14s %-6s %s\n", "password", "key", "length", "result")
		for _, v := range vectors {
			result, err := fpcode.Code(v.password, v.key, v.length)
			if err != nil {
				result = "error: " + err.Error()
			}
			fmt.Printf("%-10s %-14s %-6d %s\n", v.password, v.key, v.length, result)
		}
	},
}
