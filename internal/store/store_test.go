// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// =============================================================================
// MEMORY SCOPE TESTS
// =============================================================================

func TestMemoryScope_RoundTrip(t *testing.T) {
	s := NewMemoryScope()

	if _, ok := s.Get(KeyToken); ok {
		t.Error("empty scope should miss")
	}

	if err := s.Set(KeyToken, "tok-1"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	v, ok := s.Get(KeyToken)
	if !ok || v != "tok-1" {
		t.Errorf("Get = %q, %v", v, ok)
	}

	if err := s.Delete(KeyToken); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok := s.Get(KeyToken); ok {
		t.Error("key should be gone after Delete")
	}

	// Deleting an absent key is not an error.
	if err := s.Delete("missing"); err != nil {
		t.Errorf("Delete(missing) = %v", err)
	}
}

// =============================================================================
// FILE SCOPE TESTS
// =============================================================================

func TestFileScope_RoundTrip(t *testing.T) {
	s, err := NewFileScope(filepath.Join(t.TempDir(), "state"))
	if err != nil {
		t.Fatalf("NewFileScope failed: %v", err)
	}

	if err := s.Set(KeyToken, "tok-2"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	v, ok := s.Get(KeyToken)
	if !ok || v != "tok-2" {
		t.Errorf("Get = %q, %v", v, ok)
	}

	// Value survives a fresh scope over the same directory (process restart).
	s2, err := NewFileScope(s.dir)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	v, ok = s2.Get(KeyToken)
	if !ok || v != "tok-2" {
		t.Errorf("reopened Get = %q, %v", v, ok)
	}

	if err := s.Delete(KeyToken); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok := s.Get(KeyToken); ok {
		t.Error("key should be gone after Delete")
	}
	if err := s.Delete(KeyToken); err != nil {
		t.Errorf("second Delete = %v", err)
	}
}

func TestFileScope_Permissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not meaningful on windows")
	}
	s, err := NewFileScope(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileScope failed: %v", err)
	}
	if err := s.Set(KeyToken, "secret"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	info, err := os.Stat(s.path(KeyToken))
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("token file mode = %o, want 0600", info.Mode().Perm())
	}
}

func TestFileScope_KeyCannotEscapeDir(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileScope(dir)
	if err != nil {
		t.Fatalf("NewFileScope failed: %v", err)
	}
	if err := s.Set("../escape", "x"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "..", "escape")); err == nil {
		t.Error("key escaped the state directory")
	}
}

func TestTabsKey(t *testing.T) {
	if TabsKey("maria") != "tabs.maria" {
		t.Errorf("TabsKey = %q", TabsKey("maria"))
	}
}
