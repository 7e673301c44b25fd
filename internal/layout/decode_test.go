package layout

import "testing"

func TestIsTextDetectsUTF16LE(t *testing.T) {
	content := []byte{0xFF, 0xFE, 0x41, 0x00, 0x0D, 0x00, 0x0A, 0x00}
	if !IsText("notes.txt", content) {
		t.Fatalf("expected UTF-16 LE content to be treated as text")
	}
}

func TestIsTextRejects(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content []byte
	}{
		{"pdf extension", "report.PDF", []byte("%PDF-1.7")},
		{"nul byte", "dump.txt", []byte{'a', 0x00, 'b'}},
		{"control noise", "", []byte{0x01, 0x02, 0x03, 0x04, 0xC3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if IsText(tt.file, tt.content) {
				t.Fatalf("IsText(%q) = true, want false", tt.file)
			}
		})
	}
}

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
		want    string
	}{
		{"plain", []byte("a\nb"), "a\nb"},
		{"utf8 bom", []byte{0xEF, 0xBB, 0xBF, 'h', 'i'}, "hi"},
		{"utf16 le crlf", []byte{0xFF, 0xFE, 0x41, 0x00, 0x0D, 0x00, 0x0A, 0x00}, "A\n"},
		{"utf16 be", []byte{0xFE, 0xFF, 0x00, 0x7A, 0x00, 0x0C, 0x00, 0x62}, "z\fb"},
		{"empty", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeText(tt.content); got != tt.want {
				t.Fatalf("NormalizeText() = %q, want %q", got, tt.want)
			}
		})
	}
}
