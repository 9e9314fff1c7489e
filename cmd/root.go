/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/members-club/webserver/internal/logger"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "webserver",
	Short: "The members-only club web server",
	Long: `The members-only club web server. Members sign up, log in and
share text posts with each other. See the subcommands for running the
server and managing the database schema.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	logger.Init()

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
