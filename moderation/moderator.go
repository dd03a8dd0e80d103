// Package moderation masks unwanted words in rendered dialogue content.
// Local models are untrusted; the renderer can pass turns through here
// before printing them. The transcript itself is never modified.
package moderation

import (
	"log/slog"
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"
)

type Moderator struct {
	matcher     *goahocorasick.Machine
	replacement rune
	log         *slog.Logger
}

// indexedText is a normalized view of an input string, keeping for each
// normalized rune the index of the original rune it came from.
type indexedText struct {
	runes  []rune
	origin []int
}

// NewModerator builds the Aho-Corasick automaton over a normalized version
// of the word list.
func NewModerator(words []string, replacement rune, log *slog.Logger) (Moderator, error) {
	patterns := make([][]rune, len(words))
	for i, word := range words {
		patterns[i] = normalizeRunes([]rune(word))
	}

	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return Moderator{}, err
	}
	return Moderator{matcher: m, replacement: replacement, log: log}, nil
}

// Censor replaces every match with the replacement rune, preserving spacing
// and punctuation, and returns the normalized words that matched.
func (m *Moderator) Censor(original string) (string, []string) {
	text := normalize(original)
	if len(text.runes) == 0 {
		return original, nil
	}

	spans := m.matcher.MultiPatternSearch(text.runes, false)
	if len(spans) == 0 {
		return original, nil
	}

	origRunes := []rune(original)
	var found []string
	for _, span := range spans {
		start := span.Pos
		end := start + len(span.Word)
		if start < 0 || end > len(text.origin) {
			continue
		}
		found = append(found, string(span.Word))

		// Mask every original rune between the first and last matched one,
		// noise characters included.
		for i := text.origin[start]; i <= text.origin[end-1]; i++ {
			origRunes[i] = m.replacement
		}
	}

	m.log.Debug("Censored content", "matches", len(found))
	return string(origRunes), found
}

func normalize(input string) indexedText {
	origRunes := []rune(input)
	text := indexedText{
		runes:  make([]rune, 0, len(origRunes)),
		origin: make([]int, 0, len(origRunes)),
	}

	for i, r := range origRunes {
		clean := simplifyRune(r)
		if isNoise(clean) {
			continue
		}
		text.runes = append(text.runes, unicode.ToLower(clean))
		text.origin = append(text.origin, i)
	}
	return text
}

func normalizeRunes(input []rune) []rune {
	out := make([]rune, 0, len(input))
	for _, r := range input {
		clean := simplifyRune(r)
		if isNoise(clean) {
			continue
		}
		out = append(out, unicode.ToLower(clean))
	}
	return out
}

// simplifyRune maps common leet-speak characters back to their standard
// alphabet counterparts.
func simplifyRune(r rune) rune {
	switch r {
	case '4', '@':
		return 'a'
	case '3', '€':
		return 'e'
	case '1', '!', '|':
		return 'i'
	case '0':
		return 'o'
	case '5', '$':
		return 's'
	default:
		return r
	}
}

// isNoise identifies characters ignored during pattern matching.
func isNoise(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r)
}
