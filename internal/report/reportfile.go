/*
 * Copyright 2021-2025 JetBrains s.r.o.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 * https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package report

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/adnankoroth/cliflow-sub000/internal/platform/fsutil"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// File is the persisted form of a report pass.
type File struct {
	RunID     string      `json:"runId" yaml:"runId"`
	Timestamp time.Time   `json:"timestamp" yaml:"timestamp"`
	Kinds     []KindCount `json:"kinds" yaml:"kinds"`
	Result    `yaml:",inline"`
}

// NewFile stamps result with a fresh run id.
func NewFile(result Result, now time.Time) File {
	return File{
		RunID:     uuid.NewString(),
		Timestamp: now.UTC(),
		Kinds:     result.Kinds(),
		Result:    result,
	}
}

// Marshal encodes the report as YAML for .yaml/.yml paths and as JSON otherwise.
func (f File) Marshal(path string) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Marshal(f)
	default:
		data, err := json.MarshalIndent(f, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
}

// WriteFile writes the report of result to path.
func WriteFile(path string, result Result) error {
	data, err := NewFile(result, time.Now()).Marshal(path)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := fsutil.WriteFile(path, data); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return nil
}
