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

package strutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetLines(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, GetLines("a\nb\n"))
	assert.Equal(t, []string{"a", "b"}, GetLines("a\nb"))
	assert.Equal(t, []string{""}, GetLines(""))
}

func TestFirstLine(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"single", "single"},
		{"first\nsecond", "first"},
		{"first\r\nsecond", "first"},
		{"\nleading", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, FirstLine(tt.input))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "ab", Truncate("abc", 2))
	assert.Equal(t, "", Truncate("abc", 0))
	assert.Equal(t, "žš", Truncate("žšč", 2))
}

func TestHasAnySuffix(t *testing.T) {
	assert.True(t, HasAnySuffix("file.mjs", ".js", ".mjs"))
	assert.False(t, HasAnySuffix("file.ts", ".js", ".mjs"))
	assert.False(t, HasAnySuffix("file.ts"))
}
