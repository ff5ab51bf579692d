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

package msg

import (
	"fmt"
	"io"
	"strings"

	"github.com/adnankoroth/cliflow-sub000/internal/platform/cienv"
)

// Annotation levels understood by GitHub Actions workflow commands.
const (
	LevelNotice  = "notice"
	LevelWarning = "warning"
	LevelError   = "error"
)

// EscapeData escapes a workflow command message.
func EscapeData(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	s = strings.ReplaceAll(s, "\n", "%0A")
	return s
}

// EscapeProperty escapes a workflow command property value (file=, title=, ...).
func EscapeProperty(s string) string {
	s = EscapeData(s)
	s = strings.ReplaceAll(s, ":", "%3A")
	s = strings.ReplaceAll(s, ",", "%2C")
	return s
}

// FormatAnnotation renders a single-line workflow command, e.g. "::warning file=a.mjs::message".
// Properties are given as alternating key/value pairs.
func FormatAnnotation(level string, message string, properties ...string) string {
	var props []string
	for i := 0; i+1 < len(properties); i += 2 {
		if properties[i+1] == "" {
			continue
		}
		props = append(props, properties[i]+"="+EscapeProperty(properties[i+1]))
	}
	if len(props) == 0 {
		return fmt.Sprintf("::%s::%s", level, EscapeData(message))
	}
	return fmt.Sprintf("::%s %s::%s", level, strings.Join(props, ","), EscapeData(message))
}

// WriteAnnotation writes an annotation line to w.
func WriteAnnotation(w io.Writer, level string, message string, properties ...string) error {
	_, err := fmt.Fprintln(w, FormatAnnotation(level, message, properties...))
	return err
}

// formatMessageForCI formats the message for the CI environment.
func formatMessageForCI(level, format string, a ...interface{}) string {
	message := fmt.Sprintf(format, a...)
	name := cienv.Name()
	if name == cienv.GitHubActions {
		return FormatAnnotation(level, message)
	} else if strings.HasPrefix(name, "azure") {
		return fmt.Sprintf("##vso[task.logissue type=%s]%s", level, message)
	}
	return fmt.Sprintf("!  %s", message)
}

// WarningMessageCI prints a warning message to the CI environment (additional highlighting).
func WarningMessageCI(message string, a ...interface{}) {
	fmt.Println(formatMessageForCI(LevelWarning, message, a...))
}
