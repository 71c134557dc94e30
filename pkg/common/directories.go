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

package common

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	DirPermissions  = 0755
	FilePermissions = 0644
)

// Directory is where sparring keeps its configuration.
var Directory = filepath.Join(xdg.ConfigHome, "sparring")

// ConfigFile is the default configuration file.
var ConfigFile = filepath.Join(Directory, "config.yaml")

// TryMkdir creates the given directory if it doesn't exist.
func TryMkdir(dir string) error {
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return os.MkdirAll(dir, DirPermissions)
	}

	return nil
}
