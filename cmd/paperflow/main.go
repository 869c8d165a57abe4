// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the paperflow CLI, which converts
// note exports into PDFs and uploads them to a Paperless-ngx instance.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paperflow/internal/dotenv"
)

// version is set at build time via ldflags.
var version = "dev"

// dotenvFile is the credentials file loaded at startup.
const dotenvFile = ".env"

// loadedEnv holds key/value pairs loaded from the .env file at startup.
var loadedEnv map[string]string

// envDefault returns fallback when non-empty, otherwise the value of key
// from the process environment, otherwise from the loaded .env file.
func envDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v := os.Getenv(key); v != "" {
		return v
	}
	if v, ok := loadedEnv[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the paperflow CLI.
var rootCmd = &cobra.Command{
	Use:   "paperflow",
	Short: "Move a personal note archive into Paperless-ngx",
	Long: `paperflow turns a "Markdown + Front Matter" note export into PDF files
and uploads them to a Paperless-ngx instance with their original creation
dates preserved.

Each stage is a subcommand: convert scans the export and produces one or
more PDFs per note from its linked attachments; upload posts a folder of
PDFs to the Paperless API, deriving each document's creation date from the
file's filesystem birth time.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		env, err := dotenv.Load(dotenvFile)
		if err != nil {
			return err
		}
		loadedEnv = env
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./paperflow.yaml or ~/.config/paperflow/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("paperflow")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "paperflow"))
		}
	}

	viper.SetEnvPrefix("PAPERFLOW")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
