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
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"

	"github.com/adnankoroth/cliflow-sub000/internal/platform/fsutil"
	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/maps"
)

//go:embed shims
var shimFiles embed.FS

const shimRoot = "shims"

// ShimTable maps a path relative to the community directory (forward slashes) to the literal module text that
// replaces it. Shims are known-good, hand-written modules for conversions that pattern repair cannot fix.
type ShimTable map[string]string

var defaultShims = mustLoadShims(shimFiles)

// DefaultShims returns the shim table compiled into the binary.
func DefaultShims() ShimTable {
	return defaultShims
}

func mustLoadShims(fsys fs.FS) ShimTable {
	table, err := LoadShims(fsys, shimRoot)
	if err != nil {
		panic(fmt.Sprintf("invalid embedded shim table: %s", err))
	}
	return table
}

// LoadShims reads every file under root of fsys into a table keyed by the path relative to root.
func LoadShims(fsys fs.FS, root string) (ShimTable, error) {
	table := ShimTable{}
	err := fs.WalkDir(
		fsys, root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			data, err := fs.ReadFile(fsys, p)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", p, err)
			}
			rel := p
			if root != "." {
				rel = p[len(root)+1:]
			}
			if !filepath.IsLocal(filepath.FromSlash(rel)) {
				return fmt.Errorf("shim path %q is not a local relative path", rel)
			}
			table[rel] = string(data)
			return nil
		},
	)
	if err != nil {
		return nil, err
	}
	return table, nil
}

// Paths returns the shim paths in sorted order.
func (t ShimTable) Paths() []string {
	keys := maps.Keys(t)
	sort.Strings(keys)
	return keys
}

// IsShim reports whether rel (relative to the community directory) is covered by the table, either by its full
// relative path or by basename.
func (t ShimTable) IsShim(rel string) bool {
	rel = filepath.ToSlash(rel)
	if _, ok := t[rel]; ok {
		return true
	}
	base := path.Base(rel)
	for key := range t {
		if path.Base(key) == base {
			return true
		}
	}
	return false
}

// Install writes every shim under root, unconditionally overwriting existing files. A failing entry does not stop
// the others; all failures are joined into the returned error.
func (t ShimTable) Install(root string) (int, error) {
	var errs []error
	written := 0
	for _, rel := range t.Paths() {
		target := filepath.Join(root, filepath.FromSlash(rel))
		if err := fsutil.WriteFile(target, []byte(t[rel])); err != nil {
			log.Errorf("Failed to install shim %s: %s", rel, err)
			errs = append(errs, fmt.Errorf("shim %s: %w", rel, err))
			continue
		}
		log.Debugf("Installed shim %s", rel)
		written++
	}
	return written, errors.Join(errs...)
}
