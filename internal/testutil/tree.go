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

// Package testutil provides shared test utilities for module trees on disk.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// Tree is a temporary directory of module files addressed by slash-separated relative paths.
type Tree struct {
	t   *testing.T
	dir string
}

// NewTree creates a tree in a fresh temporary directory and writes files into it.
func NewTree(t *testing.T, files map[string]string) *Tree {
	t.Helper()
	tree := &Tree{t: t, dir: t.TempDir()}
	tree.WriteFiles(files)
	return tree
}

// TreeAt creates a Tree for an existing directory.
func TreeAt(t *testing.T, dir string) *Tree {
	t.Helper()
	return &Tree{t: t, dir: dir}
}

// Dir returns the root of the tree.
func (tr *Tree) Dir() string {
	return tr.dir
}

// Path returns the absolute path of rel.
func (tr *Tree) Path(rel string) string {
	return filepath.Join(tr.dir, filepath.FromSlash(rel))
}

// Sub returns the tree rooted at rel.
func (tr *Tree) Sub(rel string) *Tree {
	return &Tree{t: tr.t, dir: tr.Path(rel)}
}

// WriteFile writes content to rel, creating parent directories.
func (tr *Tree) WriteFile(rel string, content string) {
	tr.t.Helper()
	path := tr.Path(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		tr.t.Fatalf("Failed to create directory for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		tr.t.Fatalf("Failed to write file %s: %v", rel, err)
	}
}

// WriteFiles writes every entry of files.
func (tr *Tree) WriteFiles(files map[string]string) {
	tr.t.Helper()
	for rel, content := range files {
		tr.WriteFile(rel, content)
	}
}

// ReadFile reads a file from the tree.
func (tr *Tree) ReadFile(rel string) string {
	tr.t.Helper()
	content, err := os.ReadFile(tr.Path(rel))
	if err != nil {
		tr.t.Fatalf("Failed to read file %s: %v", rel, err)
	}
	return string(content)
}

// Exists reports whether rel exists.
func (tr *Tree) Exists(rel string) bool {
	_, err := os.Stat(tr.Path(rel))
	return err == nil
}
