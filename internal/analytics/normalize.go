package analytics

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	ordinalGlyphs = strings.NewReplacer("º", "o", "°", "o")

	dashRun       = regexp.MustCompile(`[-–—]+`)
	ordinalSuffix = regexp.MustCompile(`(\d+)[oO]\b`)
)

// Normalize canonicalizes a free-text label so that "9º Ano" and "9o ano" compare equal.
// Normalize(Normalize(s)) == Normalize(s) for every s.
func Normalize(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))

	// transform chains keep state, so one is built per call.
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if stripped, _, err := transform.String(stripMarks, s); err == nil {
		s = stripped
	}

	s = ordinalGlyphs.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// FormatTitle turns a series key into a caption such as "SAEB – 9º ANO – MATEMATICA".
// It is for display only and must not be used to compare labels.
func FormatTitle(key string) string {
	s := strings.TrimSpace(key)
	s = dashRun.ReplaceAllString(s, " - ")
	s = strings.Join(strings.Fields(s), " ")
	s = strings.ToUpper(s)
	s = strings.ReplaceAll(s, " - ", " – ")
	return ordinalSuffix.ReplaceAllString(s, "${1}º")
}
