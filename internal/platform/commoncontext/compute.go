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

package commoncontext

import (
	"path/filepath"

	"github.com/adnankoroth/cliflow-sub000/internal/platform/fsutil"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultCommunityDir = "dist/completions/community"
	DefaultHelpersPath  = "dist/runtime/helpers.mjs"
	ModuleExtension     = ".mjs"
	ConfigName          = ".specsanitize"
)

// Context holds the resolved directory layout of a single run.
type Context struct {
	ProjectDir   string
	CommunityDir string
	HelpersPath  string
}

// Compute resolves the run layout. Relative community and helper paths are taken relative to projectDir.
func Compute(projectDir string, communityDir string, helpersPath string) Context {
	if projectDir == "" {
		projectDir = "."
	}
	abs, err := filepath.Abs(projectDir)
	if err != nil {
		log.Warnf("Unable to resolve %s: %s", projectDir, err)
		abs = projectDir
	}
	if communityDir == "" {
		communityDir = DefaultCommunityDir
	}
	if helpersPath == "" {
		helpersPath = DefaultHelpersPath
	}
	return Context{
		ProjectDir:   abs,
		CommunityDir: resolve(abs, communityDir),
		HelpersPath:  resolve(abs, helpersPath),
	}
}

func resolve(base string, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}

// WithCommunityDir returns a copy of the context pointing at another community tree (used by dry runs).
func (c Context) WithCommunityDir(dir string) Context {
	c.CommunityDir = dir
	return c
}

// Rel returns path relative to the community directory, with forward slashes.
func (c Context) Rel(path string) string {
	rel, err := filepath.Rel(c.CommunityDir, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// HasCommunityDir reports whether the community directory exists.
func (c Context) HasCommunityDir() bool {
	return fsutil.IsDir(c.CommunityDir)
}

// HasHelpers reports whether the optional helper-injection module exists.
func (c Context) HasHelpers() bool {
	return fsutil.IsFile(c.HelpersPath)
}

// FindSpecs lists every module file of the community tree in discovery order.
func (c Context) FindSpecs() ([]string, error) {
	return fsutil.FindFiles(c.CommunityDir, ModuleExtension)
}
