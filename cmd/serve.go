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
	"github.com/spf13/cobra"

	"github.com/valpere/translay/internal/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the translation relay HTTP server",
	Long: `Run the HTTP server exposing:

  GET  /           service identity
  GET  /health     liveness with timestamp
  POST /translate  {"text": "...", "from": "en", "to": "fr"}
  GET  /metrics    prometheus metrics

The listening port comes from --port, then PORT, then 3000.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return app.Run(cfg)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("port", "", "Port to listen on")
	if err := v.BindPFlag("port", serveCmd.Flags().Lookup("port")); err != nil {
		panic(err)
	}
}
