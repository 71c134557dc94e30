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

package match

import (
	"fmt"
	"os"
	"strings"

	"laptudirm.com/x/sparring/pkg/rules"
)

// Book is a list of positions to start games from, used in order.
type Book struct {
	entries []string
	current int
}

// NewBook reads the positions file with the given name, one FEN string
// per line. An empty name gives a Book with just the start position.
func NewBook(name string) (*Book, error) {
	if name == "" {
		return &Book{entries: []string{rules.StartFEN}, current: -1}, nil
	}

	file, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}

	return ParseBook(string(file))
}

// ParseBook parses a positions list, skipping blank lines.
func ParseBook(data string) (*Book, error) {
	book := Book{current: -1}
	for i, line := range strings.Split(data, "\n") {
		line = strings.Trim(line, "\n\r\t ")
		if line == "" {
			continue
		}

		fen, err := rules.NormalizeFEN(line)
		if err != nil {
			return nil, fmt.Errorf("positions line %d: %w", i+1, err)
		}

		book.entries = append(book.entries, fen)
	}

	if len(book.entries) == 0 {
		return nil, fmt.Errorf("positions: no positions found")
	}

	return &book, nil
}

// Next moves to the next position, wrapping around at the end.
func (book *Book) Next() string {
	book.current = (book.current + 1) % len(book.entries)
	return book.Current()
}

func (book *Book) Current() string {
	return book.entries[max(book.current, 0)]
}

func (book *Book) Len() int {
	return len(book.entries)
}
