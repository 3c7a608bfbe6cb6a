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
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/valpere/translay/internal/config"
)

// bindFlags maps viper keys to persistent flags. Flags only override when set explicitly,
// so environment and config file values survive an untouched flag default.
func bindFlags(cmd *cobra.Command, keys map[string]string) {
	for key, flag := range keys {
		if err := v.BindPFlag(key, cmd.PersistentFlags().Lookup(flag)); err != nil {
			fmt.Fprintf(os.Stderr, "failed to bind flag %s: %v\n", flag, err)
		}
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
