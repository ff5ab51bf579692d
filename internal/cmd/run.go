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

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/adnankoroth/cliflow-sub000/internal/platform/commoncontext"
	"github.com/adnankoroth/cliflow-sub000/internal/platform/msg"
	"github.com/adnankoroth/cliflow-sub000/internal/platform/utils"
	"github.com/adnankoroth/cliflow-sub000/internal/report"
	"github.com/adnankoroth/cliflow-sub000/internal/sanitizer"
	"github.com/dustin/go-humanize"
	cp "github.com/otiai10/copy"
	"github.com/pterm/pterm"
	log "github.com/sirupsen/logrus"
)

// RunResult is the outcome of a run. Either part is nil when it did not run.
type RunResult struct {
	Sanitize *sanitizer.Summary
	Report   *report.Result
}

// ExitCode maps a run to the process exit code: failures only count in strict mode.
func ExitCode(result RunResult, strict bool) int {
	if strict && result.Report != nil && result.Report.HasFailures() {
		return utils.FailureExitCode
	}
	return utils.SuccessExitCode
}

// ImporterFactory creates the importer used by the report.
type ImporterFactory func(ctx commoncontext.Context, opts CliOptions) (report.Importer, error)

// newNodeImporter is the production ImporterFactory.
func newNodeImporter(ctx commoncontext.Context, opts CliOptions) (report.Importer, error) {
	helpers := ""
	if ctx.HasHelpers() {
		helpers = ctx.HelpersPath
	} else {
		log.Infof("Helper module %s not found, importing specs without helpers", ctx.HelpersPath)
	}
	importer, err := report.NewNodeImporter(opts.Node, helpers, ctx.ProjectDir, opts.ImportTimeout)
	if err != nil {
		return nil, err
	}
	version, err := importer.Version()
	if err != nil {
		log.Warnf("Unable to determine the node version: %s", err)
	} else {
		log.Debugf("Using node %s (helpers: %t)", version, importer.HasHelpers())
	}
	return importer, nil
}

// Run discovers the community modules, installs the shims, sanitizes every module and optionally reports.
func Run(opts CliOptions, newImporter ImporterFactory, out io.Writer) (RunResult, error) {
	result := RunResult{}
	ctx := commoncontext.Compute(opts.ProjectDir, opts.CommunityDir, opts.HelpersPath)
	if !ctx.HasCommunityDir() {
		msg.WarningMessageCI("Community directory %s not found, nothing to do", ctx.CommunityDir)
		return result, nil
	}

	reportOptions, err := opts.ReportOptions()
	if err != nil {
		return result, err
	}

	work := ctx
	if opts.DryRun {
		copied, cleanup, err := copyCommunityDir(ctx)
		if err != nil {
			return result, err
		}
		defer cleanup()
		work = copied
	}

	files, err := work.FindSpecs()
	if err != nil {
		return result, fmt.Errorf("failed to list %s: %w", work.CommunityDir, err)
	}
	log.Debugf("Found %d modules in %s", len(files), work.CommunityDir)

	if !opts.ReportOnly {
		summary := sanitize(work, files)
		result.Sanitize = &summary
		printSummary(summary, opts.DryRun)
	}

	if opts.Reporting() {
		if result.Sanitize != nil {
			msg.EmptyMessage()
		}
		importer, err := newImporter(work, opts)
		if err != nil {
			return result, fmt.Errorf("failed to prepare the import report: %w", err)
		}
		res := report.New(work, importer, out).Run(files, reportOptions)
		result.Report = &res
		if opts.ReportFile != "" {
			if err := report.WriteFile(opts.ReportFile, res); err != nil {
				msg.ErrorMessage("%s", err)
			} else {
				msg.SuccessMessage("Report written to %s", opts.ReportFile)
			}
		}
	}
	return result, nil
}

func sanitize(ctx commoncontext.Context, files []string) sanitizer.Summary {
	s := sanitizer.New(ctx, sanitizer.DefaultShims())
	installed, err := s.InstallShims()
	if err != nil {
		msg.ErrorMessage("Some shims could not be installed: %s", err)
	}
	log.Debugf("Installed %d shims", installed)

	var summary sanitizer.Summary
	msg.PrintProcess(
		func(spinner *pterm.SpinnerPrinter) {
			summary = s.SanitizeAll(
				files, func(done int, total int, rel string) {
					msg.UpdateText(spinner, fmt.Sprintf("Sanitizing %s (%d/%d)", rel, done+1, total))
				},
			)
		}, "Sanitizing community specs", "sanitizing community specs",
	)
	return summary
}

func printSummary(summary sanitizer.Summary, dryRun bool) {
	verb := "changed"
	if dryRun {
		verb = "would change"
	}
	msg.SuccessMessage(
		"Processed %d files: %d %s (%s), %d shims skipped",
		summary.Processed,
		summary.Changed,
		verb,
		humanize.Bytes(uint64(summary.Bytes)),
		summary.Skipped,
	)
	if summary.Failed > 0 {
		msg.ErrorMessage("%d files failed to sanitize", summary.Failed)
		for _, e := range summary.Errors {
			pterm.Println("  " + msg.Misc("%s", e.Error()))
		}
	}
	if dryRun {
		for _, rel := range summary.ChangedFiles {
			pterm.Println("  " + msg.Misc("%s", rel))
		}
	}
}

// copyCommunityDir copies the community tree to a temporary directory for a dry run.
func copyCommunityDir(ctx commoncontext.Context) (commoncontext.Context, func(), error) {
	dir, err := os.MkdirTemp("", "specsanitize-dry-run")
	if err != nil {
		return ctx, nil, fmt.Errorf("failed to create a temporary directory: %w", err)
	}
	cleanup := func() {
		if err := os.RemoveAll(dir); err != nil {
			log.Warnf("Failed to remove %s: %s", dir, err)
		}
	}
	if err := cp.Copy(ctx.CommunityDir, dir); err != nil {
		cleanup()
		return ctx, nil, fmt.Errorf("failed to copy %s: %w", ctx.CommunityDir, err)
	}
	log.Debugf("Dry run in %s", dir)
	return ctx.WithCommunityDir(dir), cleanup, nil
}
