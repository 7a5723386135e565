// Copyright (c) 2026 Flowerpass Team
// Flowerpass - deterministic password generator
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/xlsdg/flowerpass/internal/db"
	"github.com/xlsdg/flowerpass/internal/i18n"
)

// newSiteCmd builds the `site` command group for managing the registry.
func newSiteCmd() *cobra.Command {
	siteCmd := &cobra.Command{
		Use:   "site",
		Short: "Manage the site registry",
		Long: `The site registry remembers per-site derivation settings (key, output
length, label, notes) so you only have to remember the master password.
Derived passwords themselves are never stored.`,
	}

	var addLabel, addNotes string
	addCmd := &cobra.Command{
		Use:     "add <key> [length]",
		Short:   "Register a site",
		Args:    cobra.RangeArgs(1, 2),
		PreRunE: setupDefaultServices,
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			length := appConfig.Defaults.Length
			if len(args) == 2 {
				n, err := strconv.Atoi(args[1])
				if err != nil {
					return fmt.Errorf("length must be a number, got %q", args[1])
				}
				length = n
			}
			if _, err := db.AddSite(key, length, addLabel, addNotes); err != nil {
				if errors.Is(err, db.ErrDuplicate) {
					return errors.New(i18n.T("site.duplicate", key))
				}
				return errors.New(i18n.T("site.error_add", err))
			}
			fmt.Println(i18n.T("site.added", key))
			return nil
		},
	}
	addCmd.Flags().StringVar(&addLabel, "label", "", "Human-readable label for the site")
	addCmd.Flags().StringVar(&addNotes, "notes", "", "Free-form notes (e.g. which username to use)")

	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "List registered sites",
		PreRunE: setupDefaultServices,
		RunE: func(cmd *cobra.Command, args []string) error {
			sites, err := db.GetAllSites()
			if err != nil {
				return err
			}
			if len(sites) == 0 {
				fmt.Println(i18n.T("site.list_empty"))
				return nil
			}
			for _, s := range sites {
				line := fmt.Sprintf("%-30s length %-3d", s.Key, s.Length)
				if s.Label != "" {
					line += "  " + s.Label
				}
				fmt.Println(line)
			}
			return nil
		},
	}

	rmCmd := &cobra.Command{
		Use:     "rm <key>",
		Short:   "Remove a site from the registry",
		Args:    cobra.ExactArgs(1),
		PreRunE: setupDefaultServices,
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			site, err := db.GetSiteByKey(key)
			if err != nil {
				return errors.New(i18n.T("site.error_remove", err))
			}
			if site == nil {
				return errors.New(i18n.T("site.not_found", key))
			}
			if err := db.DeleteSite(site.ID); err != nil {
				return errors.New(i18n.T("site.error_remove", err))
			}
			fmt.Println(i18n.T("site.removed", key))
			return nil
		},
	}

	var setLength int
	var setLabel, setNotes string
	setCmd := &cobra.Command{
		Use:     "set <key>",
		Short:   "Update a registered site's settings",
		Args:    cobra.ExactArgs(1),
		PreRunE: setupDefaultServices,
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			site, err := db.GetSiteByKey(key)
			if err != nil {
				return errors.New(i18n.T("site.error_update", err))
			}
			if site == nil {
				return errors.New(i18n.T("site.not_found", key))
			}
			changed := false
			if cmd.Flags().Changed("length") {
				if err := db.UpdateSiteLength(site.ID, setLength); err != nil {
					return errors.New(i18n.T("site.error_update", err))
				}
				changed = true
			}
			if cmd.Flags().Changed("label") {
				if err := db.UpdateSiteLabel(site.ID, setLabel); err != nil {
					return errors.New(i18n.T("site.error_update", err))
				}
				changed = true
			}
			if cmd.Flags().Changed("notes") {
				if err := db.UpdateSiteNotes(site.ID, setNotes); err != nil {
					return errors.New(i18n.T("site.error_update", err))
				}
				changed = true
			}
			if !changed {
				return cmd.Help()
			}
			fmt.Println(i18n.T("site.updated", key))
			return nil
		},
	}
	setCmd.Flags().IntVar(&setLength, "length", 0, "New output length (2-32)")
	setCmd.Flags().StringVar(&setLabel, "label", "", "New label")
	setCmd.Flags().StringVar(&setNotes, "notes", "", "New notes")

	siteCmd.AddCommand(addCmd, listCmd, rmCmd, setCmd)
	return siteCmd
}
