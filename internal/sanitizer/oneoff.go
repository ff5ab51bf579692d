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
	"strings"

	"github.com/dlclark/regexp2"
	log "github.com/sirupsen/logrus"
)

// oneOffFix repairs a single corruption observed in one specific file.
type oneOffFix struct {
	description string
	apply       func(string) string
}

func patternFix(description string, pattern string, replacement string) oneOffFix {
	re := regexp2.MustCompile(pattern, regexp2.Multiline)
	return oneOffFix{
		description: description,
		apply: func(text string) string {
			out, err := re.Replace(text, replacement, -1, -1)
			if err != nil {
				return text
			}
			return out
		},
	}
}

func literalFix(description string, old string, replacement string) oneOffFix {
	return oneOffFix{
		description: description,
		apply: func(text string) string {
			return strings.Replace(text, old, replacement, 1)
		},
	}
}

// Known one-off fixes, keyed by exact basename.
var knownOneOffFixes = map[string][]oneOffFix{
	"aws.mjs": {
		patternFix(
			"shorthand description property without a binding",
			`^([ \t]*)description,([ \t]*\r?)$`,
			`${1}description: "",${2}`,
		),
	},
	"make.mjs": {
		patternFix(
			"continue statement merged into the following declaration",
			`^([ \t]*)if \((.+)\)[ \t]*const\b`,
			"${1}if (${2}) continue;\n${1}const",
		),
	},
	"snaplet.mjs": {
		literalFix(
			"stray undefined after the snapshot-id argument",
			`args: { name: "snapshot-id", isOptional: true }, undefined,`,
			`args: { name: "snapshot-id", isOptional: true },`,
		),
	},
}

func applyOneOffFixes(text string, basename string) string {
	for _, fix := range knownOneOffFixes[basename] {
		fixed := fix.apply(text)
		if fixed != text {
			log.Debugf("Applied one-off fix to %s: %s", basename, fix.description)
		}
		text = fixed
	}
	return text
}
