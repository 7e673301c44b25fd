package textutil

import (
	"reflect"
	"strings"
	"testing"
)

func TestDisplayWidthGraphemeClusters(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"ascii", "abc", 3},
		{"warning emoji with VS16", "⚠️", 2},
		{"thumbs up with skin tone", "\U0001f44d\U0001f3fb", 2},
		{"flag regional indicators", "\U0001f1f5\U0001f1f1", 2},
		{"cjk", "中文", 4},
		{"combining accent", "é", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DisplayWidth(tt.text); got != tt.want {
				t.Fatalf("DisplayWidth(%q)=%d want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestExpandTabs(t *testing.T) {
	if got := ExpandTabs("a\tb", 4); got != "a   b" {
		t.Fatalf("ExpandTabs = %q", got)
	}
	if got := ExpandTabs("none", 4); got != "none" {
		t.Fatalf("ExpandTabs changed tab-free text: %q", got)
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{"fits", "short line", 20, []string{"short line"}},
		{"word break", "the quick brown fox", 10, []string{"the quick ", "brown fox"}},
		{"hard break", "abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"long word after space", "ab cdefghij", 4, []string{"ab ", "cdef", "ghij"}},
		{"wide runes", "中文字", 4, []string{"中文", "字"}},
		{"no width", "anything goes", 0, []string{"anything goes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.text, tt.width)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Wrap(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
			if joined := strings.Join(got, ""); joined != tt.text {
				t.Fatalf("wrapped pieces join to %q, want %q", joined, tt.text)
			}
		})
	}
}

func TestFragment(t *testing.T) {
	got := Fragment("zażółć gęślą", 5)
	want := []string{"zażół", "ć gęś", "lą"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Fragment = %q, want %q", got, want)
	}
	if got := Fragment("abc", 0); !reflect.DeepEqual(got, []string{"abc"}) {
		t.Fatalf("Fragment with n=0 = %q", got)
	}
}
