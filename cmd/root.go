package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/conneroisu/inkit/internal/config"
	"github.com/conneroisu/inkit/internal/logging"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "inkit",
	Short: "Style-driven button component for templ",
	Long: `inkit renders a templ Button whose look is driven entirely by style
props mapped onto "in-button" CSS classes, and ships the tooling around it.

Quick Start:
  inkit classes --appearance solid --size m   Print the class string
  inkit render --color interactive --body Go  Render a button
  inkit tokens --format yaml                  List every class token
  inkit css generate -o styles/button.css     Write a stylesheet skeleton
  inkit css lint styles/button.css            Check a stylesheet covers every token
  inkit serve                                 Live preview with hot reload`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .inkit.yml, can also use INKIT_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// initConfig initializes the configuration system.
//
// Configuration Loading Priority (highest to lowest):
//  1. --config flag: Explicitly specified config file path
//  2. INKIT_CONFIG_FILE environment variable: Custom config file path
//  3. Default: .inkit.yml in current directory
//
// Every value can also be overridden with an INKIT_ environment variable
// (INKIT_SERVER_PORT, INKIT_PREVIEW_STYLESHEET). A missing file is not an
// error.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("INKIT_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".inkit")
	}

	viper.SetEnvPrefix("INKIT")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig loads the configuration and a logger writing to w.
func loadConfig(w io.Writer) (*config.Config, logging.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger, err := newLogger(cfg, w)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func newLogger(cfg *config.Config, w io.Writer) (logging.Logger, error) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	return logging.NewLogger(&logging.LoggerConfig{
		Level:     level,
		Format:    cfg.Log.Format,
		Output:    w,
		Component: "cli",
	}), nil
}
