/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "0.1.0"

var (
	cfgFile string
	v       = viper.New()
)

var rootCmd = &cobra.Command{
	Use:   "translay",
	Short: "Translation relay with provider fallback",
	Long: `An HTTP relay that forwards translation requests to LibreTranslate, falls back
to MyMemory, and answers with a placeholder translation when every provider fails.

Supported providers: libretranslate, mymemory, systran and google (optional)

Use "translay serve --help" for server options.`,
	Version:      version,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (yaml, json or toml)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Per-provider timeout (default 10s)")
	rootCmd.PersistentFlags().StringSlice("providers", nil, "Provider chain in fallback order (default libretranslate,mymemory)")
	rootCmd.PersistentFlags().String("libretranslate-url", "", "LibreTranslate base URL")
	rootCmd.PersistentFlags().String("libretranslate-key", "", "LibreTranslate API key")
	rootCmd.PersistentFlags().String("mymemory-url", "", "MyMemory base URL")
	rootCmd.PersistentFlags().String("mymemory-email", "", "MyMemory email (for higher limits)")
	rootCmd.PersistentFlags().String("systran-key", "", "Systran API key")
	rootCmd.PersistentFlags().StringP("credentials", "c", "", "Path to Google Cloud credentials")
	rootCmd.PersistentFlags().StringP("project", "p", "", "Google Cloud Project ID")

	bindFlags(rootCmd, map[string]string{
		"log_level":              "log-level",
		"timeout":                "timeout",
		"providers":              "providers",
		"libretranslate.url":     "libretranslate-url",
		"libretranslate.api_key": "libretranslate-key",
		"mymemory.url":           "mymemory-url",
		"mymemory.email":         "mymemory-email",
		"systran.api_key":        "systran-key",
		"google.credentials":     "credentials",
		"google.project_id":      "project",
	})
}
