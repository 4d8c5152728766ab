// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ingestion

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// LoadCatalog reads a CSV catalog fully into memory and flattens each data
// row into one text document: a "column: value" line per non-empty cell, in
// header order. The first row is treated as the header.
func LoadCatalog(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // tolerate ragged rows

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrMissingHeader
	}

	header := records[0]
	docs := make([]string, 0, len(records)-1)

	for _, row := range records[1:] {
		var sb strings.Builder
		for i, cell := range row {
			if i >= len(header) {
				break
			}
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			if sb.Len() > 0 {
				sb.WriteByte('\n')
			}
			sb.WriteString(header[i])
			sb.WriteString(": ")
			sb.WriteString(cell)
		}
		if sb.Len() == 0 {
			continue
		}
		docs = append(docs, sb.String())
	}

	return docs, nil
}
