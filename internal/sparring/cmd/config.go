// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"laptudirm.com/x/sparring/pkg/config"
)

// sparring config
func Config() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the configuration, or create the configuration file",
		Args:  cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")

			if initialize, _ := cmd.Flags().GetBool("init"); initialize {
				force, _ := cmd.Flags().GetBool("force")
				if _, err := os.Stat(path); !force && !errors.Is(err, fs.ErrNotExist) {
					return fmt.Errorf("config file %s already exists, use --force to replace it", path)
				}

				if err := config.Default().Save(path); err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "\x1b[32mCreated\x1b[0m %s\n", path)
				return nil
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", path, data)
			return nil
		},
	}

	cmd.Flags().Bool("init", false, "Write the default configuration file")
	cmd.Flags().BoolP("force", "f", false, "Replace an existing configuration file")

	return cmd
}
