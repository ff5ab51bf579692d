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
	"github.com/adnankoroth/cliflow-sub000/internal/platform/algorithm"
)

// Select picks the working set of the import report.
// With all set every file is returned. With a seed the files are shuffled deterministically before truncation,
// otherwise the first sample files in discovery order are used.
func Select(files []string, all bool, sample int, seed *uint32) []string {
	if all {
		return files
	}
	if sample < 0 {
		sample = 0
	}
	selected := files
	if seed != nil {
		selected = algorithm.Shuffle(files, algorithm.NewLCG(*seed).Next)
	}
	if len(selected) > sample {
		selected = selected[:sample]
	}
	return selected
}
