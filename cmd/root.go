// =============================================================================
// Booking Invoicer - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (invoicer)
//   ├── initCmd     (invoicer init)
//   ├── importCmd   (invoicer import <file>...)
//   ├── scanCmd     (invoicer scan)
//   ├── processCmd  (invoicer process [file...])
//   ├── validateCmd (invoicer validate)
//   ├── reportCmd   (invoicer report <report.xlsx>)
//   └── versionCmd  (invoicer version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose)
//   2. Loading a .env file into the environment before any command runs
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the application configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose forces debug logging when set to true.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "invoicer",
	Short: "Booking Invoicer - Turn booking exports into submitted invoices",
	Long: `Booking Invoicer reads semicolon-separated booking exports, builds one JSON
invoice per booking from a payload template, saves it, and submits it to the
invoicing API.

Workflow:
  invoicer init                 # Create directories and default config files
  invoicer import export.csv    # Copy an export into the incoming directory
  invoicer scan                 # List exports waiting in incoming
  invoicer process              # Process every export in incoming
  invoicer process export.csv   # Process a single export

Every processed export is moved to the processed directory, and a results
report is written to the reports directory.`,

	SilenceUsage:  true,
	SilenceErrors: true,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"app.yaml",
		"Path to the application configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging",
	)

	cobra.OnInitialize(loadDotEnv)
}

// loadDotEnv loads ./.env into the process environment. Variables that are
// already set win over the file. A missing file is not an error.
func loadDotEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env: %v\n", err)
	}
}
