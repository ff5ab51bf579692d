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

package sanitizer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adnankoroth/cliflow-sub000/internal/platform/commoncontext"
	log "github.com/sirupsen/logrus"
)

// FileError is a per-file failure of the sanitize pass.
type FileError struct {
	File string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %s", e.File, e.Err)
}

func (e FileError) Unwrap() error {
	return e.Err
}

// Summary describes one sanitize pass over the community tree.
type Summary struct {
	Processed    int
	Changed      int
	Skipped      int
	Failed       int
	Bytes        int64
	ChangedFiles []string
	Errors       []FileError
}

// Sanitizer runs the per-file repair pipeline for one community tree.
type Sanitizer struct {
	ctx      commoncontext.Context
	shims    ShimTable
	resolver *ImportResolver
}

// New creates a sanitizer for the community tree of ctx.
func New(ctx commoncontext.Context, shims ShimTable) *Sanitizer {
	return &Sanitizer{
		ctx:      ctx,
		shims:    shims,
		resolver: NewImportResolver(),
	}
}

// InstallShims writes the shim table into the community tree.
func (s *Sanitizer) InstallShims() (int, error) {
	return s.shims.Install(s.ctx.CommunityDir)
}

// IsShim reports whether path is covered by the shim table.
func (s *Sanitizer) IsShim(path string) bool {
	return s.shims.IsShim(s.ctx.Rel(path))
}

// SanitizeText runs the whole pipeline on the text of the module at path: shebang split, pattern repair,
// transpile, import rewrite, completionSpec fixes, default export, shebang restore.
func (s *Sanitizer) SanitizeText(path string, text string) string {
	shebang, body := SplitShebang(text)

	body = Repair(body, filepath.Base(path))

	transpiled, err := Transpile(body, virtualTypeScriptName(filepath.Base(path)))
	if err != nil {
		log.Debugf("Transpile skipped for %s: %s", s.ctx.Rel(path), err)
	}
	body = transpiled

	body = s.resolver.RewriteImports(path, body)
	body = FixDanglingDefaultExport(body)
	body = FixDanglingCompletionSpec(body)
	body = EnsureDefaultExport(body)

	return shebang + body
}

// SanitizeFile repairs the module at path in place. Shims are never read nor written. The file is only written when
// its content changes.
func (s *Sanitizer) SanitizeFile(path string) (bool, error) {
	if s.IsShim(path) {
		log.Debugf("Skipping shim %s", s.ctx.Rel(path))
		return false, nil
	}
	original, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read: %w", err)
	}
	sanitized := s.SanitizeText(path, string(original))
	if sanitized == string(original) {
		return false, nil
	}
	if err := os.WriteFile(path, []byte(sanitized), 0o644); err != nil {
		return false, fmt.Errorf("write: %w", err)
	}
	return true, nil
}

// SanitizeAll processes files one at a time. A failing file is logged and counted; the pass continues.
// progress, when not nil, is called before each file.
func (s *Sanitizer) SanitizeAll(files []string, progress func(done int, total int, rel string)) Summary {
	summary := Summary{}
	for i, file := range files {
		rel := s.ctx.Rel(file)
		if progress != nil {
			progress(i, len(files), rel)
		}
		if s.IsShim(file) {
			summary.Skipped++
			continue
		}
		summary.Processed++
		changed, err := s.SanitizeFile(file)
		if err != nil {
			log.Errorf("Failed to sanitize %s: %s", rel, err)
			summary.Failed++
			summary.Errors = append(summary.Errors, FileError{File: rel, Err: err})
			continue
		}
		if changed {
			summary.Changed++
			summary.ChangedFiles = append(summary.ChangedFiles, rel)
			if info, err := os.Stat(file); err == nil {
				summary.Bytes += info.Size()
			}
		}
	}
	return summary
}
