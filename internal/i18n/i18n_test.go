// Copyright (c) 2026 Mealdeck Team
// Mealdeck - food delivery operations consoles
// This source code is licensed under the MIT license found in the LICENSE file.

package i18n

import (
	"strings"
	"testing"
)

func TestTranslateKnownID(t *testing.T) {
	Init("en")
	got := T("menu.orders")
	if got == "menu.orders" || got == "" {
		t.Fatalf("expected a translation for menu.orders, got %q", got)
	}
}

func TestUnknownIDFallsBackToID(t *testing.T) {
	Init("en")
	if got := T("no.such.key"); got != "no.such.key" {
		t.Fatalf("fallback = %q, want the message ID", got)
	}
}

func TestSprintfArgsApplied(t *testing.T) {
	Init("en")
	got := T("table.page_status", 2, 5)
	if !strings.Contains(got, "2") || !strings.Contains(got, "5") {
		t.Fatalf("page status should carry both numbers: %q", got)
	}
}

func TestGermanLocale(t *testing.T) {
	SetLang("de")
	defer SetLang("en")
	got := T("confirm.no")
	if got == "confirm.no" || got == "" {
		t.Fatalf("expected a German translation for confirm.no, got %q", got)
	}
}

func TestUninitializedDefaultsToEnglish(t *testing.T) {
	localizer = nil
	got := T("menu.quit")
	if got == "menu.quit" || got == "" {
		t.Fatalf("lazy init should produce an English label, got %q", got)
	}
}
