package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "lexdesk",
		Short: "Lexdesk - case management for a small law office",
		Long: `Lexdesk keeps the clients, case files, agenda, accounts and documents
of a law office in one embedded database. The same service layer backs the
local API started by "serve" and every command below.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().String("username", "", "user to log in as")
	rootCmd.PersistentFlags().String("password", "", "password (defaults to $LEXDESK_PASSWORD)")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(userCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(remindersCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(reportCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
