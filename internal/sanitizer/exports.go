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
	"regexp"
	"strings"
)

const conventionalSpecName = "completionSpec"

var (
	defaultExportPattern     = regexp.MustCompile(`\bexport\s+default\b|\bexport\s*\{[^}]*\bas\s+default\b`)
	specConstPattern         = regexp.MustCompile(`(?m)^[ \t]*export\s+const\s+([A-Za-z_$][\w$]*Spec)\s*=`)
	danglingDefaultPattern   = regexp.MustCompile(`\bexport\s+default\s+completionSpec\s*;`)
	completionSpecUsePattern = regexp.MustCompile(`\bcompletionSpec\b`)
	completionSpecBinding    = regexp.MustCompile(
		`\b(?:const|let|var|class)\s+completionSpec\b` +
			`|\bfunction\s*\*?\s*completionSpec\b` +
			`|\bimport\s+completionSpec\b` +
			`|\bas\s+completionSpec\b` +
			`|\bimport\s*\{[^}]*\bcompletionSpec\b[^}]*\}`,
	)
)

// HasDefaultExport reports whether the module exports a default value in any form.
func HasDefaultExport(text string) bool {
	return defaultExportPattern.MatchString(text)
}

// ExportedSpecName returns the name of the first top-level `export const <Name>Spec = ...`, or "".
func ExportedSpecName(text string) string {
	if m := specConstPattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

func hasCompletionSpecBinding(text string) bool {
	return completionSpecBinding.MatchString(text)
}

// exportedSpecReplacement returns the exported *Spec constant that may stand in for an unbound completionSpec.
func exportedSpecReplacement(text string) string {
	if hasCompletionSpecBinding(text) {
		return ""
	}
	name := ExportedSpecName(text)
	if name == conventionalSpecName {
		return ""
	}
	return name
}

// FixDanglingDefaultExport points `export default completionSpec;` at the exported *Spec constant when the module
// never declares completionSpec.
func FixDanglingDefaultExport(text string) string {
	if !danglingDefaultPattern.MatchString(text) {
		return text
	}
	name := exportedSpecReplacement(text)
	if name == "" {
		return text
	}
	return danglingDefaultPattern.ReplaceAllLiteralString(text, "export default "+name+";")
}

// FixDanglingCompletionSpec renames every use of an undeclared completionSpec (e.g.
// `completionSpec.subcommands.push(...)`) to the exported *Spec constant.
func FixDanglingCompletionSpec(text string) string {
	if !completionSpecUsePattern.MatchString(text) {
		return text
	}
	name := exportedSpecReplacement(text)
	if name == "" {
		return text
	}
	return completionSpecUsePattern.ReplaceAllLiteralString(text, name)
}

// EnsureDefaultExport appends `export default <Name>Spec;` when the module has no default export but exports a
// conventionally named spec constant.
func EnsureDefaultExport(text string) string {
	if HasDefaultExport(text) {
		return text
	}
	name := ExportedSpecName(text)
	if name == "" {
		return text
	}
	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	return text + "export default " + name + ";\n"
}
