package config

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// BlockName converts a display name into a resource-location path segment.
// It strips accents, lowercases the input, replaces spaces and hyphens with
// underscores, drops every other character outside [a-z0-9_], collapses
// runs of underscores and trims them from both ends.
//
//	BlockName("Wasteland Dirt")  == "wasteland_dirt"
//	BlockName("Pierre  Brûlée") == "pierre_brulee"
func BlockName(name string) string {
	// Decompose, drop combining marks, recompose: "û" becomes "u".
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(t, name)
	if err != nil {
		s = name
	}
	s = strings.ToLower(s)

	var buf strings.Builder
	lastUnderscore := true // suppresses a leading underscore
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			buf.WriteRune(r)
			lastUnderscore = false
		case r == '_' || r == ' ' || r == '-':
			if !lastUnderscore {
				buf.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.TrimRight(buf.String(), "_")
}
