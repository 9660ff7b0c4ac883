package i18n

import (
	"errors"
	"math/rand"
	"net/url"
	"strings"
	"testing"
)

func TestDefaultTableIsComplete(t *testing.T) {
	if err := Validate(Default); err != nil {
		t.Fatal(err)
	}
	for _, lang := range Languages {
		for c, want := range map[Category]int{Start: 4, Good: 5, Bad: 5, End: 5} {
			if got := len(Default.Lines(lang, c)); got != want {
				t.Errorf("%s/%s: %d lines, want %d", lang, c, got, want)
			}
		}
	}
}

func TestValidateReportsMissingCategory(t *testing.T) {
	tbl := Table{English: Default[English]}
	cats := Default[English]
	cats[Bad] = nil
	tbl[Russian] = cats

	err := Validate(tbl)
	if !errors.Is(err, ErrMissingLines) {
		t.Fatalf("Validate = %v, want ErrMissingLines", err)
	}
	if !strings.Contains(err.Error(), "russian/bad") {
		t.Errorf("error %q does not name the gap", err)
	}

	if err := Validate(Table{Russian: Default[Russian]}); !errors.Is(err, ErrMissingLines) {
		t.Errorf("table without fallback: %v", err)
	}
}

func TestLinesFallBack(t *testing.T) {
	got := Default.Lines("klingon", Start)
	if got[0] != Default[English][Start][0] {
		t.Errorf("unknown language returned %q", got[0])
	}

	tbl := Table{English: Default[English], Hebrew: {Start: {"שלום"}}}
	if got := tbl.Lines(Hebrew, Good); got[0] != Default[English][Good][0] {
		t.Errorf("missing category returned %q", got[0])
	}
	if got := tbl.Lines(Hebrew, Start); got[0] != "שלום" {
		t.Errorf("present category returned %q", got[0])
	}
}

func TestFormatEndMessage(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		rng := rand.New(rand.NewSource(seed))
		msg := Default.FormatEndMessage(rng, 7, Russian)
		if !strings.Contains(msg, "7") {
			t.Errorf("seed %d: %q has no score", seed, msg)
		}
		if strings.Contains(msg, ScorePlaceholder) {
			t.Errorf("seed %d: %q kept the placeholder", seed, msg)
		}
	}
}

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		in   string
		want Language
		ok   bool
	}{
		{"english", English, true},
		{"RU", Russian, true},
		{" hebrew ", Hebrew, true},
		{"he", Hebrew, true},
		{"french", Fallback, false},
		{"", Fallback, false},
	}
	for _, tt := range tests {
		got, ok := ParseLanguage(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseLanguage(%q) = %s, %v; want %s, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
	if English.Next() != Russian || Hebrew.Next() != English {
		t.Error("Next does not cycle")
	}
}

func TestShare(t *testing.T) {
	msg := ShareMessage(12, Hebrew)
	if !strings.Contains(msg, "12") || strings.Contains(msg, "http") {
		t.Errorf("share message %q", msg)
	}
	if ShareMessage(3, "klingon") != ShareMessage(3, English) {
		t.Error("unknown language did not fall back")
	}

	link, err := url.Parse(ShareURL(msg, ""))
	if err != nil {
		t.Fatal(err)
	}
	if link.Host != "t.me" {
		t.Errorf("host = %q", link.Host)
	}
	if got := link.Query().Get("text"); got != msg {
		t.Errorf("text = %q", got)
	}
	if got := link.Query().Get("url"); got != DefaultGameURL {
		t.Errorf("url = %q", got)
	}
}

func TestUIFallback(t *testing.T) {
	if UI("klingon").Score != UI(English).Score {
		t.Error("UI did not fall back")
	}
	if UI(Russian).Score == UI(English).Score {
		t.Error("russian labels not used")
	}
}
