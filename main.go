package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ajkula/projectlockutility/cmd/report"
	"github.com/ajkula/projectlockutility/pkg/config"
)

var (
	// Version information
	Version   = "1.0.0"
	BuildTime = "development"
	GitCommit = "unknown"

	// Global flags
	configFile string
	verbose    bool
	noColor    bool
)

// Colors for terminal output
const (
	ColorReset = "\033[0m"
	ColorRed   = "\033[31m"
	ColorGreen = "\033[32m"
	ColorBold  = "\033[1m"
)

// printError prints error messages with proper formatting
func printError(err error) {
	color, reset := "", ""
	if !noColor {
		color, reset = ColorRed+ColorBold, ColorReset
	}
	fmt.Fprintf(os.Stderr, color+"[ERROR] %v"+reset+"\n", err)
}

// printSuccess prints success messages with proper formatting
func printSuccess(message string) {
	color, reset := "", ""
	if !noColor {
		color, reset = ColorGreen+ColorBold, ColorReset
	}
	fmt.Printf(color+"[SUCCESS] %s"+reset+"\n", message)
}

// rootCmd represents the report invoked by Code Insight for a project
var rootCmd = &cobra.Command{
	Use:     "projectlockutility",
	Short:   "Project Lock Utility report for Code Insight",
	Version: Version,
	Long: `Project Lock Utility creates the lock status report of a Code Insight project
and uploads it to the report slot it was started from.

The report lists the project and, when requested, every child project below it
together with whether each one is locked. Invalid options and unknown projects
produce an error report instead, which is uploaded the same way.

Example usage:
  projectlockutility -pid 42 -rid 7 -authToken <token> -reportOpts '{"includeChildProjects":"true"}'`,

	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if initConfig, _ := cmd.Flags().GetBool("init-config"); initConfig {
			return createDefaultConfig()
		}
		return nil
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		if initConfig, _ := cmd.Flags().GetBool("init-config"); initConfig {
			return nil
		}
		return report.Execute(cmd, args)
	},
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version information",
	Long:  `Display detailed version and build information for the Project Lock Utility.`,

	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Project Lock Utility\n")
		fmt.Fprintf(out, "Version: %s\n", Version)
		fmt.Fprintf(out, "Build Time: %s\n", BuildTime)
		fmt.Fprintf(out, "Git Commit: %s\n", GitCommit)
		fmt.Fprintf(out, "Built with %s\n", runtime.Version())
	},
}

// shortFlags maps the single dash flags Code Insight passes to report scripts
var shortFlags = map[string]string{
	"-pid":        "--projectID",
	"-rid":        "--reportID",
	"-authToken":  "--authToken",
	"-baseURL":    "--baseURL",
	"-reportOpts": "--reportOptions",
}

// normalizeArgs rewrites the platform's single dash flags to their long form.
// Both "-pid 42" and "-pid=42" are accepted; the value of a rewritten flag is kept as is.
func normalizeArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		name, value, hasValue := strings.Cut(args[i], "=")
		long, ok := shortFlags[name]
		switch {
		case !ok:
			out = append(out, args[i])
		case hasValue:
			out = append(out, long+"="+value)
		default:
			out = append(out, long)
			if i+1 < len(args) {
				i++
				out = append(out, args[i])
			}
		}
	}
	return out
}

// setupCommands configures all CLI commands and flags
func setupCommands() {
	rootCmd.AddCommand(versionCmd)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "",
		"settings file (default is project_lock_utility.yaml next to the executable)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"log at debug level regardless of the settings file")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"disable colored output")
	rootCmd.PersistentFlags().Bool("init-config", false,
		"create default settings file (project_lock_utility.yaml)")

	// Report flags
	rootCmd.Flags().String("projectID", "", "Code Insight project ID")
	rootCmd.Flags().String("reportID", "", "Code Insight report ID")
	rootCmd.Flags().String("authToken", "", "Code Insight API token")
	rootCmd.Flags().String("baseURL", "", "Code Insight server URL, used when server_properties.json has none")
	rootCmd.Flags().String("reportOptions", "", "report options as a JSON object")
}

// main is the entry point for the Project Lock Utility
func main() {
	setupCommands()
	rootCmd.SetArgs(normalizeArgs(os.Args[1:]))

	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}

// createDefaultConfig writes the default settings file
func createDefaultConfig() error {
	filename := configFile
	if filename == "" {
		filename = config.DefaultConfigFilename
	}

	if _, err := os.Stat(filename); err == nil {
		return fmt.Errorf("settings file %s already exists", filename)
	}

	if err := config.SaveConfig(config.CreateDefaultConfig(), filename); err != nil {
		return fmt.Errorf("failed to create settings file: %w", err)
	}

	abs, err := filepath.Abs(filename)
	if err != nil {
		abs = filename
	}
	printSuccess(fmt.Sprintf("Default settings file created: %s", abs))
	return nil
}
