package moderation

import (
	"fmt"
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"
)

// Filter is the profanity-detection capability consumed by the policy.
type Filter interface {
	IsProfane(text string) bool
	Clean(text string) string
}

// WordFilter detects forbidden words with an Aho-Corasick automaton built
// over a normalized alphabet, so spacing, punctuation and common character
// substitutions do not defeat the match.
type WordFilter struct {
	machine *goahocorasick.Machine
	mask    rune
	empty   bool
}

// NewWordFilter builds a filter from a word list. An empty list yields a
// filter that flags nothing.
func NewWordFilter(words []string, mask rune) (*WordFilter, error) {
	if len(words) == 0 {
		return &WordFilter{mask: mask, empty: true}, nil
	}

	patterns := make([][]rune, 0, len(words))
	for _, w := range words {
		norm, _ := normalize(w)
		if len(norm) == 0 {
			continue
		}
		patterns = append(patterns, norm)
	}
	if len(patterns) == 0 {
		return &WordFilter{mask: mask, empty: true}, nil
	}

	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, fmt.Errorf("build word automaton: %w", err)
	}
	return &WordFilter{machine: m, mask: mask}, nil
}

// IsProfane reports whether text contains at least one forbidden word.
func (f *WordFilter) IsProfane(text string) bool {
	if f.empty {
		return false
	}
	norm, _ := normalize(text)
	if len(norm) == 0 {
		return false
	}
	return len(f.machine.MultiPatternSearch(norm, false)) > 0
}

// Clean replaces every matched span with the mask rune, preserving the
// original spacing and punctuation around it.
func (f *WordFilter) Clean(text string) string {
	if f.empty {
		return text
	}

	norm, origIdx := normalize(text)
	if len(norm) == 0 {
		return text
	}

	matches := f.machine.MultiPatternSearch(norm, false)
	if len(matches) == 0 {
		return text
	}

	out := []rune(text)
	for _, m := range matches {
		start := m.Pos
		end := start + len(m.Word)
		if start < 0 || end > len(origIdx) {
			continue
		}
		// Mask the original span covered by the normalized match.
		for i := origIdx[start]; i <= origIdx[end-1]; i++ {
			out[i] = f.mask
		}
	}
	return string(out)
}

// normalize lowercases, undoes common leet substitutions and strips
// punctuation, spacing and symbols. The second return value maps every
// normalized rune back to its index in the original text.
func normalize(text string) ([]rune, []int) {
	orig := []rune(text)
	norm := make([]rune, 0, len(orig))
	origIdx := make([]int, 0, len(orig))

	for i, r := range orig {
		r = unleet(r)
		if unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r) {
			continue
		}
		norm = append(norm, unicode.ToLower(r))
		origIdx = append(origIdx, i)
	}
	return norm, origIdx
}

func unleet(r rune) rune {
	switch r {
	case '4', '@':
		return 'a'
	case '3':
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
