package core

import "strings"

const pathSeparators = "/\\"

// SanitizeName makes a service-provided name safe to use as a single path
// element. Path separators become dashes and control characters are dropped.
//
//	"Face/Off" -> "Face-Off"
func SanitizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	for _, r := range name {
		switch {
		case r < 32 || r == 127:
			continue
		case strings.ContainsRune(pathSeparators, r):
			b.WriteRune('-')
		default:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
