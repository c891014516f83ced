package cli

import (
	"github.com/spf13/cobra"
)

type MigrateOptions struct {
	SettingsFile string
	LogFile      string
	DryRun       bool
	CleanFirst   bool
}

func NewMigrateCmd() *cobra.Command {
	opts := &MigrateOptions{}

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run the full Kaiten to Planka migration",
		Long: `Runs the complete pipeline: users, then every space with its
boards, lists, cards, checklists, attachments, comments and links.
Re-running against a target that was not cleaned first will duplicate
boards, lists and cards; pass --clean-first for a fresh target.`,
		RunE: func(c *cobra.Command, args []string) error {
			return runMigration(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.SettingsFile, "settings", "s", "", "Path to the YAML migration settings file")
	cmd.Flags().StringVarP(&opts.LogFile, "log-file", "l", "", "Also write logs to this file")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Traverse and report without writing to Planka")
	cmd.Flags().BoolVar(&opts.CleanFirst, "clean-first", false, "Delete all existing Planka projects before migrating")

	return cmd
}

func NewCleanupCmd() *cobra.Command {
	var settingsFile string

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete all projects, boards, lists and cards from Planka",
		RunE: func(c *cobra.Command, args []string) error {
			return runCleanup(settingsFile)
		},
	}

	cmd.Flags().StringVarP(&settingsFile, "settings", "s", "", "Path to the YAML migration settings file")
	return cmd
}

func NewCheckCmd() *cobra.Command {
	var settingsFile string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify connectivity and credentials for both APIs",
		RunE: func(c *cobra.Command, args []string) error {
			return runCheck(settingsFile)
		},
	}

	cmd.Flags().StringVarP(&settingsFile, "settings", "s", "", "Path to the YAML migration settings file")
	return cmd
}
