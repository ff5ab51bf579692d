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
	"github.com/dlclark/regexp2"
	log "github.com/sirupsen/logrus"
)

// identifier matches a JavaScript identifier.
const identifier = `[A-Za-z_$][\w$]*`

// lineEnd consumes the line break of a removed line, or the end of the text.
const lineEnd = `(?:\r?\n|\z)`

// repairRule is a single textual repair. Rules never parse: each one targets one corruption class produced by the
// automated conversion of community specs, and each one is idempotent on its own output.
type repairRule struct {
	name        string
	pattern     *regexp2.Regexp
	replacement string
}

func rule(name string, pattern string, replacement string) repairRule {
	return repairRule{
		name:        name,
		pattern:     regexp2.MustCompile(pattern, regexp2.Multiline),
		replacement: replacement,
	}
}

// repairRules run in order. The nullish-coalescing repair must stay ahead of the ternary fixes.
var repairRules = []repairRule{
	rule(
		"duplicate-export",
		`\bexport(?:[ \t]+export)+\b`,
		"export",
	),
	rule(
		"leftover-statement",
		`(\A|(?:[;{}]|\n)[ \t]*\r?\n)(?:[ \t]*(?:>|\[\]|(?!(?:return|break|continue|debugger)\b)`+identifier+`)?[ \t]*;[ \t]*`+lineEnd+`)+`,
		"${1}",
	),
	rule(
		"optional-property-typed",
		`^[ \t]*`+identifier+`\?:[^;\r\n]*;[ \t]*`+lineEnd,
		"",
	),
	rule(
		"optional-property-bare",
		`^[ \t]*`+identifier+`\?;[ \t]*`+lineEnd,
		"",
	),
	rule(
		"dangling-union",
		`^[ \t]*`+identifier+`:[ \t]*\r?\n(?:[ \t]*\|[^\r\n]*`+lineEnd+`)+(?:[ \t]*(?:;|>;|\[\];)[ \t]*`+lineEnd+`)?`,
		"",
	),
	rule(
		"corrupted-nullish",
		`\?\?(\s*)(\{\}|\[\])(?:\s*[:,]\s*undefined\b){2,}`,
		"??${1}${2}",
	),
	rule(
		"ternary-missing-else",
		`(?<!\?)\?(\s*)(\{\}|\[\])(?=\s*[,);])`,
		"?${1}${2} : undefined",
	),
	rule(
		"ternary-empty-else",
		`(?<!\?)\?(\s*)(\{\}|\[\])(\s*):(?=\s*[,);])`,
		"?${1}${2}${3}: undefined",
	),
	rule(
		"dangling-colon",
		`(?<![:?]):[ \t]*(?:\r?\n[ \t]*)?;`,
		": undefined;",
	),
}

// apply runs the rule over text. regexp2 only fails on match timeouts, which are not configured; the text is
// returned unchanged in that case.
func (r repairRule) apply(text string) string {
	out, err := r.pattern.Replace(text, r.replacement, -1, -1)
	if err != nil {
		log.Debugf("Repair rule %s skipped: %s", r.name, err)
		return text
	}
	return out
}

// Repair applies the ordered pattern repairs to a module body, then the one-off fixes registered for basename.
func Repair(body string, basename string) string {
	for _, r := range repairRules {
		body = r.apply(body)
	}
	return applyOneOffFixes(body, basename)
}
