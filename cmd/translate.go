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
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/valpere/translay/internal"
	"github.com/valpere/translay/internal/app"
	"github.com/valpere/translay/pkg/logger"
)

var (
	sourceLang string
	targetLang string
	verbose    bool
)

var translateCmd = &cobra.Command{
	Use:   "translate [text]",
	Short: "Translate text once through the provider chain",
	Long: `Run one request through the same fallback chain the server uses and print
the JSON response. Text is taken from the arguments, or from stdin when none are given.

Example:
  translay translate --to fr Hello`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		text := strings.Join(args, " ")
		if text == "" {
			in, err := readAll(cmd)
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			text = strings.TrimRight(in, "\r\n")
		}

		var l logger.Interface = logger.Nop()
		if verbose {
			l = logger.NewWithWriter(cfg.LogLevel, os.Stderr)
		}

		orch, err := app.NewOrchestrator(cfg, l, nil)
		if err != nil {
			return err
		}

		var out interface{}
		res, err := orch.Translate(context.Background(), internal.TranslationRequest{
			Text: text,
			From: sourceLang,
			To:   targetLang,
		})
		if err != nil {
			var e *internal.Error
			if errors.As(err, &e) {
				out = e.Result()
			} else {
				return err
			}
		} else {
			out = res
			if verbose {
				fmt.Fprintf(os.Stderr, "Served by: %s\n", res.Stage)
			}
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return err
		}
		if res == nil {
			return fmt.Errorf("invalid request")
		}
		return nil
	},
}

func readAll(cmd *cobra.Command) (string, error) {
	var sb strings.Builder
	if _, err := io.Copy(&sb, cmd.InOrStdin()); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().StringVarP(&sourceLang, "from", "s", "", "Source language code (provider default when empty)")
	translateCmd.Flags().StringVarP(&targetLang, "to", "t", "", "Target language code (required)")
	translateCmd.Flags().BoolVar(&verbose, "verbose", false, "Log provider attempts to stderr")
}
