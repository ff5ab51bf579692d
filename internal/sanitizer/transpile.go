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
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

// verbatimTsconfig keeps every import that is not explicitly type-only.
const verbatimTsconfig = `{"compilerOptions":{"verbatimModuleSyntax":true}}`

// Transpile strips TypeScript-only syntax (annotations, interfaces, type aliases, type-only imports). Module syntax
// is printed as written, so `export const` and `export default` statements survive for the export fixes that run
// afterwards. No type checking happens and warnings are never reported. Only legal comments (`//!`, `/*!`,
// `@license`, `@preserve`) are kept; every other comment is dropped. Hard syntax errors are returned together with
// the unmodified source, so callers may keep going with it.
func Transpile(source string, virtualName string) (string, error) {
	if strings.TrimSpace(source) == "" {
		return source, nil
	}
	result := api.Transform(
		source, api.TransformOptions{
			Loader:        api.LoaderTS,
			Target:        api.ESNext,
			Charset:       api.CharsetUTF8,
			LegalComments: api.LegalCommentsInline,
			LogLevel:      api.LogLevelSilent,
			TsconfigRaw:   verbatimTsconfig,
			Sourcefile:    virtualName,
		},
	)
	if len(result.Errors) > 0 {
		first := result.Errors[0]
		if first.Location != nil {
			return source, fmt.Errorf("%s:%d:%d: %s", virtualName, first.Location.Line, first.Location.Column, first.Text)
		}
		return source, fmt.Errorf("%s: %s", virtualName, first.Text)
	}
	return string(result.Code), nil
}

// virtualTypeScriptName maps a module path to the name esbuild sees, so diagnostics point at the real file.
func virtualTypeScriptName(path string) string {
	return strings.TrimSuffix(path, ".mjs") + ".mts"
}
