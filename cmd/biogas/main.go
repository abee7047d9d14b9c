package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootFlags are the persistent flags shared by every subcommand.
type rootFlags struct {
	user     int64
	noPrompt bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	rootCmd := &cobra.Command{
		Use:           "biogas",
		Short:         "Manage biogas plants, substrates and service logs",
		Long:          "Biogas: plant owner accounts, service logs and a methane yield calculator over SQLite or MySQL.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().Int64Var(&flags.user, "user", 0, "user ID to log in as (default BIOGAS_USER)")
	rootCmd.PersistentFlags().BoolVar(&flags.noPrompt, "no-prompt", false, "never prompt; fail on invalid configuration or missing password")

	rootCmd.AddCommand(newMigrateCmd(flags))
	rootCmd.AddCommand(newLoginCmd(flags))
	rootCmd.AddCommand(newProfileCmd(flags))
	rootCmd.AddCommand(newPasswordCmd(flags))
	rootCmd.AddCommand(newAddressCmd(flags))
	rootCmd.AddCommand(newPhonesCmd(flags))
	rootCmd.AddCommand(newPlantsCmd(flags))
	rootCmd.AddCommand(newServicesCmd(flags))
	rootCmd.AddCommand(newCalcCmd(flags))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}
