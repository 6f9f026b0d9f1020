// Package dictation implements the typed answer-checking engine: answer
// segmentation, live input tracking, per-word matching and the question
// sequencing state machine.
package dictation

import (
	"unicode"
	"unicode/utf8"
)

// isSeparator is the single whitespace rule shared by Segment and the input
// tracker. Expected and typed tokens are compared by position, so both sides
// must split identically.
func isSeparator(r rune) bool { return unicode.IsSpace(r) }

// splitRuns splits s on runs of whitespace and keeps empty tokens, so the
// result always holds one more element than there are separator runs.
func splitRuns(s string) []string {
	tokens := make([]string, 0, 4)
	start := 0
	inSep := false
	for i, r := range s {
		sep := isSeparator(r)
		switch {
		case sep && !inSep:
			tokens = append(tokens, s[start:i])
			inSep = true
		case !sep && inSep:
			start = i
			inSep = false
		}
	}
	if inSep {
		tokens = append(tokens, "")
	} else {
		tokens = append(tokens, s[start:])
	}
	return tokens
}

// Segment splits an answer into its expected word tokens. Empty tokens are
// dropped, so a blank answer yields an empty slice.
func Segment(answer string) []string {
	runs := splitRuns(answer)
	out := make([]string, 0, len(runs))
	for _, tok := range runs {
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// separatorsBefore counts the whitespace runs that start strictly before the
// rune offset caret.
func separatorsBefore(s string, caret int) int {
	count := 0
	inSep := false
	pos := 0
	for _, r := range s {
		if pos >= caret {
			break
		}
		sep := isSeparator(r)
		if sep && !inSep {
			count++
		}
		inSep = sep
		pos++
	}
	return count
}

func runeLen(s string) int { return utf8.RuneCountInString(s) }
