// Package main is the entry point for the bank-skd-cli application.
// It registers the operator commands (migrations, admin bootstrap, question
// import and expired session cleanup) and executes the command-line interface.
package main

import (
	"fmt"
	"log"
	"os"

	commands "github.com/turrs/bank-skd/cmd/bank-skd-cli/internal/commands"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "bank-skd-cli",
		Short: "Operator tool for the bank-skd backend",
		Long: `bank-skd-cli runs maintenance tasks against the bank-skd database.
It reads the same configuration as the REST API: a YAML file passed with
--config plus BANKSKD_ prefixed environment overrides.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringP("config", "c", os.Getenv("CONFIG_PATH"), "Path to the YAML configuration file")

	if err := initializeCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// initializeCommands registers all command groups with the root command.
func initializeCommands(rootCmd *cobra.Command) error {
	if err := commands.InitAdminCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize admin commands: %w", err)
	}

	if err := commands.InitQuestionCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize question commands: %w", err)
	}

	return nil
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stderr)
}
