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
	"strings"

	"github.com/adnankoroth/cliflow-sub000/internal/platform/strutil"
)

const (
	KindMissingPackage             = "missing_package"
	KindMissingModule              = "missing_module"
	KindMissingNamedExport         = "missing_named_export"
	KindSyntaxUnexpectedIdentifier = "syntax_unexpected_identifier"
	KindSyntaxUnexpectedEnd        = "syntax_unexpected_end"
	KindSyntaxError                = "syntax_error"

	maxKindLength = 120
)

// signatures are checked in order, the first match wins.
var signatures = []struct {
	needle string
	kind   string
}{
	{"Cannot find package", KindMissingPackage},
	{"Cannot find module", KindMissingModule},
	{"does not provide an export named", KindMissingNamedExport},
	{"Unexpected identifier", KindSyntaxUnexpectedIdentifier},
	{"Unexpected end of input", KindSyntaxUnexpectedEnd},
	{"Unexpected token", KindSyntaxError},
}

// Classify maps an import error message to a failure kind.
// Unknown messages fall back to their first line, cut to 120 characters.
func Classify(message string) string {
	for _, s := range signatures {
		if strings.Contains(message, s.needle) {
			return s.kind
		}
	}
	return strutil.Truncate(strings.TrimSpace(strutil.FirstLine(message)), maxKindLength)
}
