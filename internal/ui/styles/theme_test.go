// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "testing"

func TestNewTheme_ForcedPreference(t *testing.T) {
	if !NewTheme("dark").IsDark {
		t.Error("dark preference should force IsDark")
	}
	if NewTheme("light").IsDark {
		t.Error("light preference should clear IsDark")
	}
}

func TestNewTheme_StylesInitialized(t *testing.T) {
	th := NewTheme("dark")
	if th.TabActive.GetPaddingLeft() == 0 {
		t.Error("TabActive style not initialized")
	}
	if !th.HeaderBrand.GetBold() {
		t.Error("HeaderBrand should be bold")
	}
	if !th.TabBar.GetBorderBottom() {
		t.Error("TabBar should carry a bottom border")
	}
}
