// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/theclinic/clinic-tui/internal/util"
)

// FileScope is the durable scope: one file per key under a state directory,
// surviving process restarts. Values are written atomically with 0600
// permissions since the token lives here when "remember me" is chosen.
type FileScope struct {
	dir string
}

// NewFileScope creates a durable scope rooted at dir, creating it if
// needed.
func NewFileScope(dir string) (*FileScope, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}
	return &FileScope{dir: dir}, nil
}

// Get implements Scope. Unreadable files count as absent; convenience
// state never blocks usability.
func (s *FileScope) Get(key string) (string, bool) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return "", false
	}
	return strings.TrimRight(string(data), "\n"), true
}

// Set implements Scope.
func (s *FileScope) Set(key, value string) error {
	return util.AtomicWriteFile(s.path(key), []byte(value), 0600)
}

// Delete implements Scope.
func (s *FileScope) Delete(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}

// path maps a key to its backing file. Path separators in keys are
// flattened so a key can never escape the state directory.
func (s *FileScope) path(key string) string {
	safe := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(key)
	return filepath.Join(s.dir, safe)
}
