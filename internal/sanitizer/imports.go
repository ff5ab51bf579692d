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
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/adnankoroth/cliflow-sub000/internal/platform/fsutil"
	"github.com/adnankoroth/cliflow-sub000/internal/platform/strutil"
	lru "github.com/hashicorp/golang-lru/v2"
	log "github.com/sirupsen/logrus"
)

type importKind string

const (
	importFrom       importKind = "from"
	importSideEffect importKind = "side-effect"
	importDynamic    importKind = "dynamic"
)

var importPatterns = []struct {
	kind    importKind
	pattern *regexp.Regexp
}{
	{importFrom, regexp.MustCompile(`\bfrom\s*(['"])([^'"\r\n]+)(['"])`)},
	{importSideEffect, regexp.MustCompile(`\bimport\s*(['"])([^'"\r\n]+)(['"])`)},
	{importDynamic, regexp.MustCompile(`\bimport\s*\(\s*(['"])([^'"\r\n]+)(['"])\s*\)`)},
}

// knownExtensions are specifier endings that are never rewritten.
var knownExtensions = []string{".mjs", ".cjs", ".js", ".json", ".ts", ".mts", ".cts", ".jsx", ".tsx", ".node", ".wasm"}

// importEdit replaces text[start:end] (the specifier, quotes excluded) with replacement.
type importEdit struct {
	start       int
	end         int
	kind        importKind
	quote       string
	specifier   string
	replacement string
}

// ImportResolver rewrites extension-less relative specifiers to the file that exists on disk.
type ImportResolver struct {
	probes *lru.Cache[string, bool]
}

const probeCacheSize = 8192

// NewImportResolver creates a resolver with an empty probe cache.
func NewImportResolver() *ImportResolver {
	cache, err := lru.New[string, bool](probeCacheSize)
	if err != nil {
		log.Fatalf("Failed to create probe cache: %s", err)
	}
	return &ImportResolver{probes: cache}
}

func (r *ImportResolver) isFile(path string) bool {
	if exists, ok := r.probes.Get(path); ok {
		return exists
	}
	exists := fsutil.IsFile(path)
	r.probes.Add(path, exists)
	return exists
}

// isCandidate reports whether a specifier is relative and lacks an extension.
func isCandidate(specifier string) bool {
	if !strings.HasPrefix(specifier, "./") && !strings.HasPrefix(specifier, "../") {
		return false
	}
	if strings.HasSuffix(specifier, "/") {
		return false
	}
	base, _ := splitSuffix(specifier)
	return !strutil.HasAnySuffix(strings.ToLower(base), knownExtensions...)
}

// splitSuffix separates a trailing query or hash ("?raw", "#x") from a specifier.
func splitSuffix(specifier string) (string, string) {
	if i := strings.IndexAny(specifier, "?#"); i >= 0 {
		return specifier[:i], specifier[i:]
	}
	return specifier, ""
}

// Resolve returns the specifier to use for an import in the module at importer, and whether it differs.
// Probe order: as written, ".mjs", ".js", "/index.mjs", "/index.js". Only regular files count.
func (r *ImportResolver) Resolve(importer string, specifier string) (string, bool) {
	if !isCandidate(specifier) {
		return specifier, false
	}
	base, suffix := splitSuffix(specifier)
	target := filepath.Join(filepath.Dir(importer), filepath.FromSlash(base))
	candidates := []struct {
		path      string
		specifier string
	}{
		{target, base},
		{target + ".mjs", base + ".mjs"},
		{target + ".js", base + ".js"},
		{filepath.Join(target, "index.mjs"), base + "/index.mjs"},
		{filepath.Join(target, "index.js"), base + "/index.js"},
	}
	for i, c := range candidates {
		if !r.isFile(c.path) {
			continue
		}
		if i == 0 {
			return specifier, false
		}
		return c.specifier + suffix, true
	}
	return specifier, false
}

// collectEdits scans the text with every import pattern and resolves each candidate specifier.
func (r *ImportResolver) collectEdits(importer string, text string) []importEdit {
	var edits []importEdit
	seen := map[int]bool{}
	for _, p := range importPatterns {
		for _, m := range p.pattern.FindAllStringSubmatchIndex(text, -1) {
			opening, closing := text[m[2]:m[3]], text[m[6]:m[7]]
			if opening != closing || seen[m[4]] {
				continue
			}
			specifier := text[m[4]:m[5]]
			replacement, changed := r.Resolve(importer, specifier)
			if !changed {
				continue
			}
			seen[m[4]] = true
			edits = append(
				edits, importEdit{
					start:       m[4],
					end:         m[5],
					kind:        p.kind,
					quote:       opening,
					specifier:   specifier,
					replacement: replacement,
				},
			)
		}
	}
	return edits
}

// RewriteImports rewrites the relative import, re-export and dynamic-import specifiers of the module at importer.
// Edits are applied from the highest offset down, so pending offsets stay valid.
func (r *ImportResolver) RewriteImports(importer string, text string) string {
	edits := r.collectEdits(importer, text)
	if len(edits) == 0 {
		return text
	}
	sort.Slice(edits, func(i, j int) bool { return edits[i].start > edits[j].start })
	for _, e := range edits {
		log.Debugf("%s: %s import %s -> %s", filepath.Base(importer), e.kind, e.specifier, e.replacement)
		text = text[:e.start] + e.replacement + text[e.end:]
	}
	return text
}
