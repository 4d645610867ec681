package util

import "strings"

func IsASCII(s string) bool {
	for _, r := range s {
		if r > 127 {
			return false
		}
	}
	return true
}

// AddSpace Adds a space, if not present, between ASCII Characters and Non-ASCII Characters.
// Notice that Non-ASCII characters could be multi-byte unicode sequence.
// For example, "日本語english" -> "日本語 english"
func AddSpace(s string) string {
	var b strings.Builder
	var prev rune
	for i, r := range s {
		if i > 0 && (r > 127) != (prev > 127) && prev != ' ' && r != ' ' {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}
