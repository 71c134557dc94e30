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
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// SPIN is the spinner character set shown while the engine thinks.
const SPIN = 11

// thinking runs fn with a spinner running on the given writer.
func thinking(w io.Writer, suffix string, fn func() error) error {
	s := spinner.New(spinner.CharSets[SPIN], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " " + suffix

	s.Start()      // Start the ~thinking~ spinner.
	defer s.Stop() // Stop the ~thinking~ spinner.

	return fn()
}
