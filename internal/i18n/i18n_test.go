package i18n

import "testing"

func TestResolveHonorsQValues(t *testing.T) {
	b, err := Load("../../locales", "si", []string{"si", "ta", "en"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	got := b.Resolve("si;q=0.8, ta;q=0.9")
	if got != "ta" {
		t.Fatalf("expected ta, got %s", got)
	}
}

func TestResolveUnsupportedFallsBack(t *testing.T) {
	b, err := Load("../../locales", "si", nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := b.Resolve("fr-FR, de;q=0.9"); got != "si" {
		t.Fatalf("expected fallback si, got %s", got)
	}
}

func TestNormalizeRejectsUnsupported(t *testing.T) {
	b, err := Load("../../locales", "si", nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cases := map[string]string{
		"TA":  "ta",
		" en": "en",
		"fr":  "",
		"":    "",
		"sii": "",
	}
	for in, want := range cases {
		if got := b.Normalize(in); got != want {
			t.Fatalf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLabelUsesOwnScript(t *testing.T) {
	b, err := Load("../../locales", "si", nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := b.Label("ta"); got != "தமிழ்" {
		t.Fatalf("expected Tamil label in Tamil script, got %q", got)
	}
	if got := b.Label("en"); got != "English" {
		t.Fatalf("expected English, got %q", got)
	}
}
