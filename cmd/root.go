package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "directory",
	Short: "Workshop directory API service",
	Long:  `A multi-tenant directory API serving workshop and management-change lookups with API key quotas and a contact-form mailer.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
