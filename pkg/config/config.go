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

// Package config loads sparring's YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"laptudirm.com/x/sparring/pkg/common"
	"laptudirm.com/x/sparring/pkg/rules"
	"laptudirm.com/x/sparring/pkg/search"
)

// Config is sparring's configuration. Every field has a default, so the
// configuration file only needs to list what it changes.
type Config struct {
	// Search depth of the automated player, in plys.
	Depth int `yaml:"depth"`

	// Delay before the automated player moves, as a Go duration.
	Delay string `yaml:"delay"`

	// FEN of the position games start from.
	Start string `yaml:"start"`

	Match Match `yaml:"match"`
}

// Match configures engine vs engine matches.
type Match struct {
	// Search depths of the two players.
	Depths []int `yaml:"depths"`

	// Number of games, rounded up to colour swapped pairs.
	Games int `yaml:"games"`

	// Number of games played concurrently.
	Concurrency int `yaml:"concurrency"`

	// Games longer than this many plys are adjudicated draws.
	MaxPlies int `yaml:"max-plies"`

	// File with one starting FEN per line, the start position if empty.
	Positions string `yaml:"positions,omitempty"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Depth: search.DefaultDepth,
		Delay: "300ms",
		Start: rules.StartFEN,

		Match: Match{
			Depths:      []int{search.DefaultDepth, search.DefaultDepth - 1},
			Games:       10,
			Concurrency: 2,
			MaxPlies:    200,
		},
	}
}

// Load reads the configuration file at the given path on top of the
// defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	config := Default()

	file, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return config, nil
	case err != nil:
		return config, err
	}

	if err := yaml.Unmarshal(file, &config); err != nil {
		return config, fmt.Errorf("config %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("config %s: %w", path, err)
	}

	return config, nil
}

// Save writes the configuration to the given path.
func (config Config) Save(path string) error {
	if err := common.TryMkdir(filepath.Dir(path)); err != nil {
		return err
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, common.FilePermissions)
}

// Validate checks the configuration for invalid values.
func (config Config) Validate() error {
	if config.Depth < 1 {
		return fmt.Errorf("depth must be at least 1, found %d", config.Depth)
	}

	if delay, err := time.ParseDuration(config.Delay); err != nil {
		return fmt.Errorf("delay: %w", err)
	} else if delay < 0 {
		return fmt.Errorf("delay must not be negative, found %s", delay)
	}

	if _, err := rules.NormalizeFEN(config.Start); err != nil {
		return fmt.Errorf("start: %w", err)
	}

	match := config.Match
	if len(match.Depths) != 2 || match.Depths[0] < 1 || match.Depths[1] < 1 {
		return fmt.Errorf("match depths must be two depths of at least 1, found %v", match.Depths)
	}

	if match.Games < 1 || match.Concurrency < 1 || match.MaxPlies < 1 {
		return errors.New("match games, concurrency and max-plies must be positive")
	}

	return nil
}

// AutomatedDelay returns the parsed Delay, zero if it is invalid.
func (config Config) AutomatedDelay() time.Duration {
	delay, _ := time.ParseDuration(config.Delay)
	return delay
}
