// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the dblp CLI.
package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// log is configured in PersistentPreRunE; it writes to stderr only so that
// stdout carries nothing but rendered output.
var log = logrus.New()

// configErr holds a failure to read an explicitly requested config file.
var configErr error

// rootCmd is the base command for the dblp CLI.
var rootCmd = &cobra.Command{
	Use:   "dblp",
	Short: "Search the DBLP computer science bibliography",
	Long: `dblp sends one query to the DBLP search API (publications, authors, or
venues) and prints the results as readable text, JSON, or CSL-YAML.

Settings can also come from a config file (./dblp.yaml or
~/.config/dblp/config.yaml) or DBLP_* environment variables.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configureLogger(log, cmd.ErrOrStderr(), viper.GetBool("verbose"))
		if configErr != nil {
			return configErr
		}
		if f := viper.ConfigFileUsed(); f != "" {
			log.WithField("file", f).Debug("using config file")
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./dblp.yaml or ~/.config/dblp/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log request diagnostics to stderr")
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("dblp")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "dblp"))
		}
	}

	viper.SetEnvPrefix("DBLP")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil && cfgFile != "" {
		configErr = err
	}
}

// configureLogger sends text logs to w (the command's stderr) at warn
// level, or debug when verbose is set.
func configureLogger(l *logrus.Logger, w io.Writer, verbose bool) {
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.SetLevel(logrus.WarnLevel)
	if verbose {
		l.SetLevel(logrus.DebugLevel)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
