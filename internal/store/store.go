// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"sync"
)

// Well-known storage keys.
const (
	// KeyToken holds the bearer credential, in either scope depending on
	// the "remember me" choice at login.
	KeyToken = "token"
)

// TabsKey returns the session-scope key holding an operator's pinned tabs.
// Scoping by username keeps one operator's tabs invisible to another on a
// shared machine.
func TabsKey(username string) string {
	return "tabs." + username
}

// Scope is a flat string key/value store. Implementations differ only in
// lifetime: durable scopes outlive the process, session scopes do not.
type Scope interface {
	// Get returns the stored value and whether the key was present.
	Get(key string) (string, bool)

	// Set stores a value under the key, replacing any previous value.
	Set(key, value string) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(key string) error
}

// =============================================================================
// SESSION SCOPE
// =============================================================================

// MemoryScope is the session-only scope: it lives for the process lifetime
// and is discarded on exit, matching session storage semantics.
type MemoryScope struct {
	mu sync.Mutex
	m  map[string]string
}

// NewMemoryScope creates an empty session scope.
func NewMemoryScope() *MemoryScope {
	return &MemoryScope{m: make(map[string]string)}
}

// Get implements Scope.
func (s *MemoryScope) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[key]
	return v, ok
}

// Set implements Scope.
func (s *MemoryScope) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}

// Delete implements Scope.
func (s *MemoryScope) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}
