package i18n

import "testing"

func TestTFallback(t *testing.T) {
	if got := T("ja", "login"); got != "ログイン" {
		t.Errorf("T(ja, login) = %q", got)
	}
	if got := T("en", "login"); got != "Log in" {
		t.Errorf("T(en, login) = %q", got)
	}
	// Unknown language falls back to English.
	if got := T("fr", "login"); got != "Log in" {
		t.Errorf("T(fr, login) = %q, want English", got)
	}
	// Unknown key falls back to the key itself.
	if got := T("ja", "no_such_key"); got != "no_such_key" {
		t.Errorf("T(ja, no_such_key) = %q, want key", got)
	}
}

func TestStringsMerged(t *testing.T) {
	ja := Strings("ja")
	if ja["login"] != "ログイン" {
		t.Errorf("ja login = %q", ja["login"])
	}
	// Mutating the returned map must not leak into the tables.
	ja["login"] = "changed"
	if T("ja", "login") != "ログイン" {
		t.Error("Strings() returned a shared map")
	}
}

func TestEveryJapaneseKeyHasEnglish(t *testing.T) {
	for k := range tables["ja"] {
		if _, ok := tables["en"][k]; !ok {
			t.Errorf("key %q present in ja but missing from en", k)
		}
	}
}

func TestStatusLabel(t *testing.T) {
	if got := StatusLabel("ja", "in_progress"); got != "作業中" {
		t.Errorf("StatusLabel(ja, in_progress) = %q", got)
	}
	if got := StatusLabel("en", "open"); got != "Open" {
		t.Errorf("StatusLabel(en, open) = %q", got)
	}
	if got := StatusLabel("en", "weird"); got != "weird" {
		t.Errorf("StatusLabel(en, weird) = %q, want passthrough", got)
	}
}

func TestValidators(t *testing.T) {
	if !ValidLanguage("ja") || ValidLanguage("de") {
		t.Error("ValidLanguage wrong")
	}
	if !ValidTheme("night") || ValidTheme("neon") {
		t.Error("ValidTheme wrong")
	}
	if !ValidFont("serif") || ValidFont("comic") {
		t.Error("ValidFont wrong")
	}
	if FontStack("comic") != FontStacks["modern"] {
		t.Error("FontStack should default to modern")
	}
}
