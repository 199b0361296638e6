// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// notice.go - Non-blocking transient notices for the clinic TUI.
//
// Notices appear above the status bar and auto-dismiss. The workspace
// uses them for access denials, tab capacity and session messages, so
// the operator is never blocked by a modal.
package components

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theclinic/clinic-tui/internal/ui/styles"
)

// =============================================================================
// NOTICE TYPES
// =============================================================================

// NoticeKind represents the type of notice.
type NoticeKind int

const (
	// NoticeInfo is an informational notice
	NoticeInfo NoticeKind = iota
	// NoticeWarning is a warning notice (denied access, capacity)
	NoticeWarning
	// NoticeError is an error notice (failed requests)
	NoticeError
	// NoticeSuccess is a confirmation notice
	NoticeSuccess
)

// Auto-dismiss durations per kind. Warnings stay longer than
// confirmations because they carry the access-denial text the operator
// needs time to read.
const (
	InfoNoticeDuration    = 4 * time.Second
	WarningNoticeDuration = 6 * time.Second
	ErrorNoticeDuration   = 8 * time.Second
)

// Notice is a single transient message.
type Notice struct {
	ID        int
	Message   string
	Kind      NoticeKind
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired returns true if the notice should be dismissed.
func (n *Notice) IsExpired() bool {
	return time.Since(n.CreatedAt) >= n.Duration
}

// =============================================================================
// NOTICE MANAGER
// =============================================================================

// maxNotices bounds how many notices are visible at once; older ones
// are dropped first.
const maxNotices = 3

// NoticeManager holds the active notices, newest first.
type NoticeManager struct {
	mu      sync.Mutex
	notices []Notice
	nextID  int
}

// NewNoticeManager creates an empty notice manager.
func NewNoticeManager() *NoticeManager {
	return &NoticeManager{nextID: 1}
}

// Add appends a notice with the default duration for its kind.
func (m *NoticeManager) Add(kind NoticeKind, message string) int {
	duration := InfoNoticeDuration
	switch kind {
	case NoticeWarning:
		duration = WarningNoticeDuration
	case NoticeError:
		duration = ErrorNoticeDuration
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	notice := Notice{
		ID:        m.nextID,
		Message:   message,
		Kind:      kind,
		CreatedAt: time.Now(),
		Duration:  duration,
	}
	m.nextID++

	m.notices = append([]Notice{notice}, m.notices...)
	if len(m.notices) > maxNotices {
		m.notices = m.notices[:maxNotices]
	}
	return notice.ID
}

// Warn is a convenience method for warning notices.
func (m *NoticeManager) Warn(message string) int {
	return m.Add(NoticeWarning, message)
}

// Error is a convenience method for error notices.
func (m *NoticeManager) Error(message string) int {
	return m.Add(NoticeError, message)
}

// Tick drops expired notices and reports whether any remain.
func (m *NoticeManager) Tick() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	active := m.notices[:0]
	for _, n := range m.notices {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	m.notices = active
	return len(m.notices) > 0
}

// Active returns a copy of the current notices.
func (m *NoticeManager) Active() []Notice {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Notice, len(m.notices))
	copy(out, m.notices)
	return out
}

// Clear removes all notices.
func (m *NoticeManager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notices = nil
}

// =============================================================================
// MESSAGES AND RENDERING
// =============================================================================

// NoticeTickMsg drives notice expiry while any notice is visible.
type NoticeTickMsg struct{}

// NoticeTickCmd schedules the next expiry check.
func NoticeTickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(time.Time) tea.Msg {
		return NoticeTickMsg{}
	})
}

// RenderNotices renders the active notices stacked newest first,
// truncated to the given width.
func RenderNotices(theme *styles.Theme, notices []Notice, width int) string {
	if len(notices) == 0 {
		return ""
	}

	var lines []string
	for _, n := range notices {
		style := theme.NoticeInfo
		switch n.Kind {
		case NoticeWarning:
			style = theme.NoticeWarning
		case NoticeError:
			style = theme.NoticeError
		case NoticeSuccess:
			style = theme.NoticeSuccess
		}
		lines = append(lines, style.MaxWidth(width).Render(n.Message))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
