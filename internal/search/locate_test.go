package search

import (
	"reflect"
	"testing"

	"github.com/kk-code-lab/runmark/internal/document"
)

func page(texts ...string) document.Page {
	runs := make([]document.Run, len(texts))
	for i, t := range texts {
		runs[i] = document.Run{ID: t, Text: t}
	}
	return document.Page{Runs: runs}
}

func TestLocateFlexibleWhitespaceAcrossRuns(t *testing.T) {
	got := Locate(page("ab", "  cd"), "abcd", DefaultOptions())
	want := []document.Range{{
		{Run: 0, Start: 0, End: 2},
		{Run: 1, Start: 0, End: 4},
	}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Locate = %+v, want %+v", got, want)
	}
}

func TestLocateBlankQuery(t *testing.T) {
	for _, q := range []string{"", "  ", "\n"} {
		if got := Locate(page("abc"), q, DefaultOptions()); got != nil {
			t.Fatalf("Locate(%q) = %+v, want nil", q, got)
		}
	}
}

func TestLocateEmptyPage(t *testing.T) {
	if got := Locate(page(), "x", DefaultOptions()); got != nil {
		t.Fatalf("expected no ranges on empty page, got %+v", got)
	}
	opts := DefaultOptions()
	opts.Fuzzy = true
	if got := Locate(page("   ", " "), "x", opts); got != nil {
		t.Fatalf("expected no fuzzy ranges on whitespace page, got %+v", got)
	}
}

func TestLocateTrimsQuery(t *testing.T) {
	opts := DefaultOptions()
	opts.FlexibleWhitespace = false
	got := Locate(page("one two"), "  two ", opts)
	want := []document.Range{{{Run: 0, Start: 4, End: 7}}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Locate = %+v, want %+v", got, want)
	}
}

func TestLocateFuzzyMapsStrippedOffsetsBack(t *testing.T) {
	opts := DefaultOptions()
	opts.Fuzzy = true

	// "hal lo" is "hallo" once whitespace is stripped: distance 1 from "hello".
	got := Locate(page("say ", "hal", " lo", " there"), "hello", opts)
	want := []document.Range{{
		{Run: 1, Start: 0, End: 3},
		{Run: 2, Start: 0, End: 3},
	}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Locate = %+v, want %+v", got, want)
	}
}

func TestLocateFuzzyIgnoresFlexibleFlag(t *testing.T) {
	opts := DefaultOptions()
	opts.Fuzzy = true
	opts.FlexibleWhitespace = false

	got := Locate(page("he llo"), "h e l l o", opts)
	if len(got) != 1 {
		t.Fatalf("fuzzy mode should strip query and text whitespace, got %+v", got)
	}
}

func TestLocateFuzzyCaseFolding(t *testing.T) {
	opts := DefaultOptions()
	opts.Fuzzy = true
	opts.FuzzyThreshold = 1

	if got := Locate(page("HELLO"), "hello", opts); len(got) != 1 {
		t.Fatalf("case-insensitive exact fuzzy should match, got %+v", got)
	}
	opts.CaseSensitive = true
	if got := Locate(page("HELLO"), "hello", opts); len(got) != 0 {
		t.Fatalf("case-sensitive exact fuzzy should not match, got %+v", got)
	}
}

func TestLocateIsDeterministic(t *testing.T) {
	p := page("the quick ", "bro", "wn fox jumps over the ", "lazy dog the end")
	first := Locate(p, "the", DefaultOptions())
	second := Locate(p, "the", DefaultOptions())
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated Locate differs: %+v vs %+v", first, second)
	}
	if len(first) != 3 {
		t.Fatalf("expected three hits of 'the', got %d", len(first))
	}
}

func TestFindHitsDispatch(t *testing.T) {
	text := []rune("alpha beta")
	if hits := FindHits(text, "beta", DefaultOptions()); len(hits) != 1 || hits[0].Start != 6 {
		t.Fatalf("literal dispatch failed: %+v", hits)
	}
	opts := DefaultOptions()
	opts.Fuzzy = true
	if hits := FindHits(text, "betta", opts); len(hits) != 1 || hits[0].Distance != 1 {
		t.Fatalf("fuzzy dispatch failed: %+v", hits)
	}
}

func TestOptionsMerge(t *testing.T) {
	yes := true
	threshold := 0.9
	base := DefaultOptions()

	merged := base.Merge(Overrides{CaseSensitive: &yes, FuzzyThreshold: &threshold})
	if !merged.CaseSensitive || merged.FuzzyThreshold != 0.9 {
		t.Fatalf("overrides not applied: %+v", merged)
	}
	if !merged.FlexibleWhitespace || merged.Fuzzy || !merged.AutoScroll {
		t.Fatalf("unset overrides must inherit: %+v", merged)
	}
	if base.CaseSensitive {
		t.Fatalf("Merge must not mutate the receiver")
	}
	if !(Overrides{}).Empty() || (Overrides{Fuzzy: &yes}).Empty() {
		t.Fatalf("Overrides.Empty mismatch")
	}
}
