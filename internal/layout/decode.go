package layout

import (
	"bytes"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

const (
	textDetectionSampleSize      = 4096
	nonPrintableThresholdPercent = 30
)

type unicodeEncoding int

const (
	encodingUnknown unicodeEncoding = iota
	encodingUTF8BOM
	encodingUTF16LE
	encodingUTF16BE
)

// Extracted text never arrives in these containers; the loader refuses them
// instead of sniffing.
var binaryExtensions = map[string]struct{}{
	".bin":  {},
	".bmp":  {},
	".doc":  {},
	".docx": {},
	".exe":  {},
	".gif":  {},
	".gz":   {},
	".jpeg": {},
	".jpg":  {},
	".pdf":  {},
	".png":  {},
	".zip":  {},
}

// IsText reports whether content looks like text. The name, when given,
// short-circuits obvious binary extensions before sniffing.
func IsText(name string, content []byte) bool {
	if looksBinaryByExtension(name) {
		return false
	}
	if len(content) == 0 {
		return true
	}

	sample := content
	if len(sample) > textDetectionSampleSize {
		sample = sample[:textDetectionSampleSize]
	}
	if detectUnicodeEncoding(sample) != encodingUnknown {
		return true
	}
	if bytes.IndexByte(sample, 0x00) != -1 {
		return false
	}
	if utf8.Valid(sample) {
		return true
	}

	printable := 0
	for _, b := range sample {
		if isCommonTextByte(b) {
			printable++
		}
	}
	if printable == 0 {
		return false
	}
	return (len(sample)-printable)*100/len(sample) < nonPrintableThresholdPercent
}

// NormalizeText converts BOM-prefixed UTF-8 and UTF-16 content to a UTF-8
// string. CRLF line endings become LF.
func NormalizeText(content []byte) string {
	var text string
	switch detectUnicodeEncoding(content) {
	case encodingUTF8BOM:
		text = string(content[3:])
	case encodingUTF16LE:
		text = decodeUTF16(content, unicode.LittleEndian)
	case encodingUTF16BE:
		text = decodeUTF16(content, unicode.BigEndian)
	default:
		text = string(content)
	}
	return strings.ReplaceAll(text, "\r\n", "\n")
}

func looksBinaryByExtension(name string) bool {
	if name == "" {
		return false
	}
	_, ok := binaryExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

func isCommonTextByte(b byte) bool {
	switch {
	case b == '\t' || b == '\n' || b == '\r' || b == '\f':
		return true
	case b >= 0x20 && b <= 0x7E:
		return true
	case b >= 0x80:
		return true
	default:
		return false
	}
}

func detectUnicodeEncoding(sample []byte) unicodeEncoding {
	if len(sample) >= 3 && sample[0] == 0xEF && sample[1] == 0xBB && sample[2] == 0xBF {
		return encodingUTF8BOM
	}
	if len(sample) >= 2 {
		switch {
		case sample[0] == 0xFF && sample[1] == 0xFE:
			return encodingUTF16LE
		case sample[0] == 0xFE && sample[1] == 0xFF:
			return encodingUTF16BE
		}
	}
	return encodingUnknown
}

func decodeUTF16(content []byte, endian unicode.Endianness) string {
	out, err := unicode.UTF16(endian, unicode.ExpectBOM).NewDecoder().Bytes(content)
	if err != nil {
		return string(content)
	}
	return string(out)
}
