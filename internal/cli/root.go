// Package cli implements the textable command line.
package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tsawler/textable"
	"github.com/tsawler/textable/internal/config"
)

var (
	cfgFile string
	verbose bool

	// set by initConfig
	cfg    *config.Config
	cfgErr error
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "textable",
	Short: "Parse whitespace-aligned command output into records",
	Long: `textable turns the column-aligned output of tools such as ps and lsof
into structured records. Columns are inferred from the header line, so
captures with unusual or custom column sets parse without configuration.

Configuration is read from .textable.yaml in the working directory or your
home directory, and from TEXTABLE_* environment variables.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. It is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./.textable.yaml or $HOME/.textable.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig loads the configuration file and environment.
func initConfig() {
	log.SetFlags(0)
	log.SetPrefix("textable: ")

	if cfgFile != "" {
		cfg, cfgErr = config.NewFileLoader(cfgFile).Load()
	} else {
		cfg, cfgErr = config.LoadConfig()
	}

	if cfgErr == nil && viper.GetBool("verbose") {
		if cfgFile != "" {
			log.Printf("using config file %s", cfgFile)
		}
		log.Printf("tab width %d, output %s", cfg.Parse.TabWidth, cfg.Output.Format)
	}
}

// loadedConfig returns the configuration read by initConfig.
func loadedConfig() (*config.Config, error) {
	if cfgErr != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", cfgErr)
	}
	if cfg == nil {
		return config.Default(), nil
	}
	return cfg, nil
}

// signalContext returns a context cancelled on interrupt or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// logWarnings prints warnings to the log, or only their number unless
// verbose output is on.
func logWarnings(source string, warnings []textable.Warning) {
	if len(warnings) == 0 {
		return
	}
	if !verbose {
		log.Printf("%s: %d warnings (use -v to show)", source, len(warnings))
		return
	}
	for _, w := range warnings {
		log.Printf("warning: %s", w)
	}
}
