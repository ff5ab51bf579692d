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
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/adnankoroth/cliflow-sub000/internal/platform/algorithm"
	"github.com/adnankoroth/cliflow-sub000/internal/platform/strutil"
	"github.com/adnankoroth/cliflow-sub000/internal/platform/utils"
	log "github.com/sirupsen/logrus"
	"mvdan.cc/sh/v3/shell"
)

// Importer loads a single module and reports the import failure, if any.
type Importer interface {
	Import(path string) error
}

// MinimumNodeVersion is the oldest runtime known to accept the loader script.
const MinimumNodeVersion = ">= 18.0.0"

const helperWarningPrefix = "warning: helpers not installed: "

// loaderScript runs inside node: it installs the optional helpers and then imports the module.
// argv[1] is the helper module URL (may be empty), argv[2] the module URL.
// A failing helper only produces a warning on stderr; the module import still decides the exit code.
const loaderScript = `const [helpers, target] = process.argv.slice(1);
const describe = (err) => String(err && err.message !== undefined ? err.message : err);
if (helpers) {
  try {
    const mod = await import(helpers);
    const install = mod.installHelpers ?? mod.default;
    if (typeof install === "function") await install(globalThis);
  } catch (err) {
    process.stderr.write("` + helperWarningPrefix + `" + describe(err) + "\n");
  }
}
try {
  await import(target);
} catch (err) {
  process.stderr.write(describe(err) + "\n");
  process.exit(1);
}
`

// NodeImporter imports every module in a fresh node process, one at a time.
type NodeImporter struct {
	command    []string
	helpersURL string
	cwd        string
	timeout    time.Duration
}

// NewNodeImporter prepares an importer running `command` (split with shell rules, e.g. "node --no-warnings").
// helpersPath, when not empty, is imported and installed before each module.
func NewNodeImporter(command string, helpersPath string, cwd string, timeout time.Duration) (*NodeImporter, error) {
	fields, err := shell.Fields(command, os.Getenv)
	if err != nil {
		return nil, fmt.Errorf("invalid node command %q: %w", command, err)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("node command is empty")
	}
	importer := &NodeImporter{
		command: fields,
		cwd:     cwd,
		timeout: timeout,
	}
	if helpersPath != "" {
		abs, err := filepath.Abs(helpersPath)
		if err != nil {
			return nil, err
		}
		importer.helpersURL = FileURL(abs)
	}
	return importer, nil
}

// HasHelpers reports whether the helper module will be injected.
func (n *NodeImporter) HasHelpers() bool {
	return n.helpersURL != ""
}

func (n *NodeImporter) run(args ...string) (string, string, int, error) {
	argv := append(append([]string{}, n.command[1:]...), args...)
	return utils.ExecRedirectOutput(n.cwd, n.timeout, n.command[0], argv...)
}

// Version returns the node version, warning when it is older than MinimumNodeVersion.
func (n *NodeImporter) Version() (*semver.Version, error) {
	stdout, stderr, code, err := n.run("--version")
	if err != nil {
		return nil, err
	}
	if code != utils.SuccessExitCode {
		return nil, fmt.Errorf("%s --version exited with %d: %s", n.command[0], code, strings.TrimSpace(stderr))
	}
	version, err := semver.NewVersion(strings.TrimSpace(stdout))
	if err != nil {
		return nil, fmt.Errorf("unexpected node version %q: %w", strings.TrimSpace(stdout), err)
	}
	constraint, err := semver.NewConstraint(MinimumNodeVersion)
	if err != nil {
		return version, err
	}
	if !constraint.Check(version) {
		log.Warnf("node %s is older than %s, import results may be unreliable", version, MinimumNodeVersion)
	}
	return version, nil
}

// Import loads path in a new node process.
func (n *NodeImporter) Import(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	_, stderr, code, err := n.run("--input-type=module", "-e", loaderScript, n.helpersURL, FileURL(abs))
	if err != nil {
		return err
	}
	switch code {
	case utils.SuccessExitCode:
		if warning := strings.TrimSpace(stderr); warning != "" {
			log.Debugf("%s: %s", path, warning)
		}
		return nil
	case utils.TimeoutExitCodePlaceholder:
		return fmt.Errorf("import timed out after %s", n.timeout)
	}
	message := strings.TrimSpace(stderr)
	if message == "" {
		return fmt.Errorf("import exited with code %d", code)
	}
	return errors.New(stripRuntimeWarnings(message))
}

// stripRuntimeWarnings drops the process and helper warnings printed ahead of the error.
func stripRuntimeWarnings(stderr string) string {
	lines := algorithm.Filter(
		strutil.GetLines(stderr), func(line string) bool {
			return !strings.HasPrefix(line, "(node:") &&
				!strings.HasPrefix(line, "(Use `node") &&
				!strings.HasPrefix(line, helperWarningPrefix)
		},
	)
	if message := strings.TrimSpace(strings.Join(lines, "\n")); message != "" {
		return message
	}
	return stderr
}

// FileURL converts a filesystem path to a file:// URL.
func FileURL(path string) string {
	p := filepath.ToSlash(path)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return (&url.URL{Scheme: "file", Path: p}).String()
}
