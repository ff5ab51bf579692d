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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adnankoroth/cliflow-sub000/internal/platform/cienv"
	"github.com/adnankoroth/cliflow-sub000/internal/platform/commoncontext"
	"github.com/adnankoroth/cliflow-sub000/internal/report"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// CliOptions holds every option of a run, after flags, environment and config file are merged.
type CliOptions struct {
	ProjectDir        string
	CommunityDir      string
	HelpersPath       string
	Node              string
	ImportTimeout     time.Duration
	Report            bool
	ReportOnly        bool
	All               bool
	Sample            int
	Seed              string
	ExitCode          bool
	GitHubAnnotations bool
	AnnotationsLimit  int
	DryRun            bool
	ReportFile        string
	LogLevel          string
}

// ComputePersistentFlags registers the options shared by every command.
func ComputePersistentFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.SortFlags = false

	flags.StringP("project-dir", "i", ".", "Root directory of the project")
	flags.String("community-dir", commoncontext.DefaultCommunityDir, "Directory with the community spec modules, relative to the project directory")
	flags.String("helpers", commoncontext.DefaultHelpersPath, "Helper module injected before each import in the report, relative to the project directory")
	flags.String("log-level", "error", "Set log-level for output")
}

// ComputeFlags registers the options of the sanitize run.
func ComputeFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.SortFlags = false

	flags.Bool("report", false, "Import the sanitized modules afterwards and report failures")
	flags.Bool("report-only", false, "Skip sanitizing and only run the import report")
	flags.Bool("all", false, "Report on every module instead of a sample")
	flags.Int("sample", report.DefaultSample, "Number of modules to import in the report")
	flags.String("seed", "", "Shuffle the report sample deterministically with this 32-bit seed")
	flags.Bool("exit-code", false, "Exit with code 1 when the report found import failures")
	flags.Bool("github-annotations", false, "Emit GitHub Actions warning annotations for import failures")
	flags.Int("annotations-limit", report.DefaultAnnotationsLimit, "Maximum number of annotations to emit")
	flags.String("node", "node", "Command used to import modules in the report")
	flags.Duration("import-timeout", 0, "Timeout for a single module import (0 means no timeout)")
	flags.Bool("dry-run", false, "Sanitize a temporary copy of the community directory and list what would change")
	flags.String("report-file", "", "Write the report to a .json or .yaml file")
}

// newConfig prepares a viper instance reading SPECSANITIZE_* variables.
func newConfig() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(cienv.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// loadConfig binds the parsed flags and reads the optional .env and .specsanitize.yaml of the project.
// Explicit flags win over environment variables, which win over the config file.
func loadConfig(v *viper.Viper, flags *pflag.FlagSet) error {
	if err := v.BindPFlags(flags); err != nil {
		return err
	}
	projectDir := v.GetString("project-dir")

	dotenv := filepath.Join(projectDir, ".env")
	if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warnf("Failed to load %s: %s", dotenv, err)
	}

	v.SetConfigName(commoncontext.ConfigName)
	v.SetConfigType("yaml")
	v.AddConfigPath(projectDir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read %s.yaml: %w", commoncontext.ConfigName, err)
		}
	} else {
		log.Debugf("Using config file %s", v.ConfigFileUsed())
	}

	level, err := log.ParseLevel(v.GetString("log-level"))
	if err != nil {
		return err
	}
	log.SetLevel(level)
	return nil
}

// resolveOptions reads the merged configuration.
func resolveOptions(v *viper.Viper) CliOptions {
	return CliOptions{
		ProjectDir:        v.GetString("project-dir"),
		CommunityDir:      v.GetString("community-dir"),
		HelpersPath:       v.GetString("helpers"),
		Node:              v.GetString("node"),
		ImportTimeout:     v.GetDuration("import-timeout"),
		Report:            v.GetBool("report"),
		ReportOnly:        v.GetBool("report-only"),
		All:               v.GetBool("all"),
		Sample:            v.GetInt("sample"),
		Seed:              v.GetString("seed"),
		ExitCode:          v.GetBool("exit-code"),
		GitHubAnnotations: v.GetBool("github-annotations"),
		AnnotationsLimit:  v.GetInt("annotations-limit"),
		DryRun:            v.GetBool("dry-run"),
		ReportFile:        v.GetString("report-file"),
		LogLevel:          v.GetString("log-level"),
	}
}

// Reporting tells whether the import report runs.
func (o CliOptions) Reporting() bool {
	return o.Report || o.ReportOnly
}

// ParsedSeed returns the shuffle seed, or nil when none is configured.
func (o CliOptions) ParsedSeed() (*uint32, error) {
	if o.Seed == "" {
		return nil, nil
	}
	value, err := strconv.ParseUint(o.Seed, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid --seed %q: %w", o.Seed, err)
	}
	seed := uint32(value)
	return &seed, nil
}

// ReportOptions converts the CLI options to report options.
func (o CliOptions) ReportOptions() (report.Options, error) {
	seed, err := o.ParsedSeed()
	if err != nil {
		return report.Options{}, err
	}
	return report.Options{
		All:               o.All,
		Sample:            o.Sample,
		Seed:              seed,
		GitHubAnnotations: o.GitHubAnnotations,
		AnnotationsLimit:  o.AnnotationsLimit,
	}, nil
}
