package dictation

import (
	"strings"

	"github.com/antzucaro/matchr"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Verdict classifies one word slot after normalization.
type Verdict int

const (
	Incorrect Verdict = iota
	Correct
)

func (v Verdict) String() string {
	if v == Correct {
		return "correct"
	}
	return "incorrect"
}

// ignoredPunctuation is stripped from both sides before comparing.
const ignoredPunctuation = ".,?!"

// Normalize folds case and removes ignored punctuation. Input is converted to
// NFC first so composed and decomposed accents compare equal.
func Normalize(token string) string {
	folded := cases.Fold().String(norm.NFC.String(token))
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(ignoredPunctuation, r) {
			return -1
		}
		return r
	}, folded)
}

// Compare returns one verdict per expected slot. A missing typed token
// compares as the empty string; typed tokens past the expected count are
// ignored.
func Compare(expected, typed []string) []Verdict {
	verdicts := make([]Verdict, len(expected))
	for i, want := range expected {
		if Normalize(want) == Normalize(tokenAt(typed, i)) {
			verdicts[i] = Correct
		}
	}
	return verdicts
}

// AllCorrect reports whether every verdict is Correct. It is vacuously true
// for an empty slice.
func AllCorrect(verdicts []Verdict) bool {
	for _, v := range verdicts {
		if v != Correct {
			return false
		}
	}
	return true
}

// SlotResult is the detailed outcome of one slot.
type SlotResult struct {
	Expected string
	Typed    string
	Verdict  Verdict
	// Distance is the edit distance between the normalized forms; 0 when correct.
	Distance int
}

// Result is the outcome of checking a whole submission.
type Result struct {
	Slots      []SlotResult
	Extra      []string
	AllCorrect bool
}

// Check compares expected and typed tokens and reports per-slot details.
// Non-empty typed tokens beyond the expected count are reported in Extra but
// do not affect AllCorrect.
func Check(expected, typed []string) Result {
	verdicts := Compare(expected, typed)
	res := Result{
		Slots:      make([]SlotResult, len(expected)),
		AllCorrect: AllCorrect(verdicts),
	}
	for i, want := range expected {
		got := tokenAt(typed, i)
		slot := SlotResult{Expected: want, Typed: got, Verdict: verdicts[i]}
		if slot.Verdict == Incorrect {
			slot.Distance = matchr.Levenshtein(Normalize(want), Normalize(got))
		}
		res.Slots[i] = slot
	}
	for i := len(expected); i < len(typed); i++ {
		if typed[i] != "" {
			res.Extra = append(res.Extra, typed[i])
		}
	}
	return res
}

func tokenAt(tokens []string, i int) string {
	if i < len(tokens) {
		return tokens[i]
	}
	return ""
}
