package vocabulary

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ContainsAny reports whether any term is a substring of text.
func ContainsAny(text string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}

// ContainsWord reports whether term occurs in text delimited on both sides
// by a non-word character or the string boundary.
func ContainsWord(text, term string) bool {
	return indexTerm(text, term, true) >= 0
}

// HasWordPrefix reports whether term occurs at the start of a word in text.
// "hat" matches "hats" but not "what".
func HasWordPrefix(text, term string) bool {
	return indexTerm(text, term, false) >= 0
}

// AnyWord returns the first term found as a whole word.
func AnyWord(text string, terms []string) (string, bool) {
	for _, t := range terms {
		if ContainsWord(text, t) {
			return t, true
		}
	}
	return "", false
}

func indexTerm(text, term string, whole bool) int {
	if term == "" {
		return -1
	}
	offset := 0
	for {
		i := strings.Index(text[offset:], term)
		if i < 0 {
			return -1
		}
		start := offset + i
		end := start + len(term)
		if boundaryBefore(text, start) && (!whole || boundaryAfter(text, end)) {
			return start
		}
		offset = start + 1
		if offset >= len(text) {
			return -1
		}
	}
}

func boundaryBefore(text string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return !isWordRune(r)
}

func boundaryAfter(text string, i int) bool {
	if i >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
