package cli

import (
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "kaiten2planka",
		Short: "kaiten2planka - migrate boards from Kaiten to Planka",
		Long: `kaiten2planka is a CLI tool for a one-directional migration of
project-management data (spaces, boards, lists, cards, checklists,
attachments, comments, labels, users) from Kaiten to Planka.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	rootCmd.AddCommand(NewMigrateCmd())
	rootCmd.AddCommand(NewCleanupCmd())
	rootCmd.AddCommand(NewCheckCmd())

	return rootCmd
}
