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
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adnankoroth/cliflow-sub000/internal/platform/cienv"
	"github.com/adnankoroth/cliflow-sub000/internal/platform/commoncontext"
	"github.com/adnankoroth/cliflow-sub000/internal/platform/msg"
	"github.com/pterm/pterm"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultSample           = 200
	DefaultAnnotationsLimit = 50

	topKinds      = 12
	kindExamples  = 5
	annotationFmt = "Import failed (%s): %s"
)

// Options configure a single report pass.
type Options struct {
	All               bool
	Sample            int
	Seed              *uint32
	GitHubAnnotations bool
	AnnotationsLimit  int
}

// DefaultOptions returns the options used when no flag is given.
func DefaultOptions() Options {
	return Options{Sample: DefaultSample, AnnotationsLimit: DefaultAnnotationsLimit}
}

// Failure is one module that threw on import.
type Failure struct {
	File    string `json:"file" yaml:"file"`
	Kind    string `json:"kind" yaml:"kind"`
	Message string `json:"message" yaml:"message"`
}

// Result is the outcome of a report pass.
type Result struct {
	Total    int       `json:"total" yaml:"total"`
	OK       int       `json:"ok" yaml:"ok"`
	Fail     int       `json:"fail" yaml:"fail"`
	Failures []Failure `json:"failures" yaml:"failures"`
}

// HasFailures reports whether at least one import failed.
func (r Result) HasFailures() bool {
	return r.Fail > 0
}

// KindCount is a failure kind with its frequency and a few example files.
type KindCount struct {
	Kind     string   `json:"kind" yaml:"kind"`
	Count    int      `json:"count" yaml:"count"`
	Examples []string `json:"examples" yaml:"examples"`
}

// Kinds groups failures by kind, most frequent first, ties broken by kind name.
func (r Result) Kinds() []KindCount {
	groups := lo.GroupBy(r.Failures, func(f Failure) string { return f.Kind })
	kinds := lo.MapToSlice(
		groups, func(kind string, failures []Failure) KindCount {
			examples := lo.Map(failures, func(f Failure, _ int) string { return f.File })
			if len(examples) > kindExamples {
				examples = examples[:kindExamples]
			}
			return KindCount{Kind: kind, Count: len(failures), Examples: examples}
		},
	)
	sort.Slice(
		kinds, func(i, j int) bool {
			if kinds[i].Count != kinds[j].Count {
				return kinds[i].Count > kinds[j].Count
			}
			return kinds[i].Kind < kinds[j].Kind
		},
	)
	return kinds
}

// Reporter runs the import health check over sanitized modules.
type Reporter struct {
	ctx      commoncontext.Context
	importer Importer
	out      io.Writer
}

// New creates a reporter writing its summary and annotations to out.
func New(ctx commoncontext.Context, importer Importer, out io.Writer) *Reporter {
	return &Reporter{ctx: ctx, importer: importer, out: out}
}

// Run imports the selected files one after another and prints the summary.
func (r *Reporter) Run(files []string, opts Options) Result {
	selected := Select(files, opts.All, opts.Sample, opts.Seed)
	log.Debugf("Importing %d of %d modules", len(selected), len(files))

	result := Result{Total: len(selected)}
	msg.PrintProcess(
		func(spinner *pterm.SpinnerPrinter) {
			for i, file := range selected {
				rel := r.ctx.Rel(file)
				msg.UpdateText(spinner, fmt.Sprintf("Importing %s (%d/%d)", rel, i+1, len(selected)))
				if err := r.importer.Import(file); err != nil {
					failure := Failure{File: rel, Kind: Classify(err.Error()), Message: err.Error()}
					log.Debugf("%s: %s", rel, failure.Kind)
					result.Failures = append(result.Failures, failure)
					continue
				}
				result.OK++
			}
		}, "Importing modules", "",
	)
	result.Fail = len(result.Failures)

	r.printSummary(result)
	if opts.GitHubAnnotations && result.HasFailures() && cienv.IsGitHubActions() {
		r.annotate(result, opts.AnnotationsLimit)
	}
	return result
}

func (r *Reporter) printSummary(result Result) {
	_, _ = fmt.Fprintf(r.out, "Imported: %d. OK: %d. FAIL: %d.\n", result.Total, result.OK, result.Fail)
	if !result.HasFailures() {
		return
	}
	_, _ = fmt.Fprintln(r.out, msg.Separator())
	kinds := result.Kinds()
	if len(kinds) > topKinds {
		kinds = kinds[:topKinds]
	}
	for _, k := range kinds {
		_, _ = fmt.Fprintf(r.out, "  %s %s\n", msg.PrimaryBold("%d", k.Count), k.Kind)
		for _, example := range k.Examples {
			_, _ = fmt.Fprintf(r.out, "    %s\n", msg.Misc("%s", example))
		}
	}
}

// annotationPath returns the failing file relative to the project directory, as GitHub expects.
func (r *Reporter) annotationPath(rel string) string {
	abs := filepath.Join(r.ctx.CommunityDir, filepath.FromSlash(rel))
	if p, err := filepath.Rel(r.ctx.ProjectDir, abs); err == nil && !strings.HasPrefix(p, "..") {
		return filepath.ToSlash(p)
	}
	return rel
}

func (r *Reporter) annotate(result Result, limit int) {
	if limit < 0 {
		limit = 0
	}
	for i, f := range result.Failures {
		if i >= limit {
			break
		}
		message := fmt.Sprintf(annotationFmt, f.Kind, f.Message)
		if err := msg.WriteAnnotation(r.out, msg.LevelWarning, message, "file", r.annotationPath(f.File)); err != nil {
			log.Errorf("Failed to write annotation: %s", err)
			return
		}
	}
	if len(result.Failures) > limit {
		message := fmt.Sprintf("Showing %d of %d import failures. Raise --annotations-limit to see more.", limit, len(result.Failures))
		if err := msg.WriteAnnotation(r.out, msg.LevelNotice, message); err != nil {
			log.Errorf("Failed to write annotation: %s", err)
		}
	}
}
