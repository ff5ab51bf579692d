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

package cienv

import (
	"os"
	"strings"

	cienvironment "github.com/cucumber/ci-environment/go"
	log "github.com/sirupsen/logrus"
)

const (
	EnvPrefix        = "SPECSANITIZE"
	NonInteractive   = "NONINTERACTIVE"
	GitHubActionsEnv = "GITHUB_ACTIONS"
	GitHubActions    = "github-actions"
)

// Detect returns the CI environment the process runs in, or nil outside of CI.
func Detect() *cienvironment.CiEnvironment {
	return cienvironment.DetectCIEnvironment()
}

// GetCIName returns a normalized CI name, e.g. "github-actions" or "azure-pipelines".
func GetCIName(ci *cienvironment.CiEnvironment) string {
	return strings.ReplaceAll(strings.ToLower(ci.Name), " ", "-")
}

// Name returns the normalized name of the detected CI, or an empty string.
func Name() string {
	if os.Getenv(GitHubActionsEnv) == "true" {
		return GitHubActions
	}
	if ci := Detect(); ci != nil {
		return GetCIName(ci)
	}
	return ""
}

// IsGitHubActions returns true if the current environment is GitHub Actions.
func IsGitHubActions() bool {
	if os.Getenv(GitHubActionsEnv) == "true" {
		return true
	}
	ci := Detect()
	if ci == nil {
		return false
	}
	name := GetCIName(ci)
	log.Debugf("Detected CI environment: %s", name)
	return name == GitHubActions
}

// IsCI returns true when any recognized CI environment is detected.
func IsCI() bool {
	return Detect() != nil || os.Getenv("CI") == "true"
}
