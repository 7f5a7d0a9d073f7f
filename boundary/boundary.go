// Package boundary classifies punctuation into delimiter tiers and
// computes the spans detectors are allowed to emit.
//
// Tiers:
//
//	sentence unit: . ? !
//	segment:       . ; : ? !
//	comma:         ,
//
// A construction may never pair two tokens across a segment delimiter;
// discourse search crosses ; and : but never . ? !.
package boundary

import (
	sent "github.com/cours-de-latin/constructio/sentence"
)

func isOneOf(s string, set string) bool {
	if len(s) != 1 {
		return false
	}
	for i := 0; i < len(set); i++ {
		if s[0] == set[i] {
			return true
		}
	}
	return false
}

// IsStrong reports whether the token is a segment delimiter (. ; : ? !).
// Only PUNCT tokens qualify; a colon inside a word form does not.
func IsStrong(t sent.Token) bool {
	return t.Upos == "PUNCT" && isOneOf(t.Text, ".;:?!")
}

// IsSentenceEnd reports whether the token ends a sentence unit (. ? !).
func IsSentenceEnd(t sent.Token) bool {
	return t.Upos == "PUNCT" && isOneOf(t.Text, ".?!")
}

// IsComma reports whether the token is a comma.
func IsComma(t sent.Token) bool {
	return t.Upos == "PUNCT" && t.Text == ","
}

// CrossesStrong reports whether any segment delimiter lies strictly
// between a and b. Order of a and b does not matter.
func CrossesStrong(tokens []sent.Token, a, b int) bool {
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	for k := lo + 1; k < hi; k++ {
		if IsStrong(tokens[k]) {
			return true
		}
	}
	return false
}

// SegmentBounds returns the maximal [start, end] run around i that does
// not cross a segment delimiter.
func SegmentBounds(tokens []sent.Token, i int) (int, int) {
	return bounds(tokens, i, IsStrong)
}

// SentenceBounds returns the maximal [start, end] run around i bounded
// only by . ? ! since semicolons and colons do not break it.
func SentenceBounds(tokens []sent.Token, i int) (int, int) {
	return bounds(tokens, i, IsSentenceEnd)
}

func bounds(tokens []sent.Token, i int, isBoundary func(sent.Token) bool) (int, int) {
	n := len(tokens)
	left := i
	for left > 0 && !isBoundary(tokens[left-1]) {
		left--
	}
	right := i
	for right < n-1 && !isBoundary(tokens[right+1]) {
		right++
	}
	return left, right
}

// CommaClauseBounds bounds a clause around center using commas as the
// cutoff, within [segStart, segEnd]. The clause may include its trailing
// comma when includeTrailingComma is set. If the walk degenerates the
// bounds collapse onto center.
func CommaClauseBounds(tokens []sent.Token, center, segStart, segEnd int, includeTrailingComma bool) (int, int) {
	left := segStart
	for k := center - 1; k >= segStart; k-- {
		if IsComma(tokens[k]) {
			left = k + 1
			break
		}
	}

	right := segEnd
	for k := center + 1; k <= segEnd; k++ {
		if IsComma(tokens[k]) {
			if includeTrailingComma {
				right = k
			} else {
				right = k - 1
			}
			break
		}
	}

	if left < segStart {
		left = segStart
	}
	if right > segEnd {
		right = segEnd
	}
	if left > right {
		return center, center
	}
	return left, right
}

// NextBoundary scans forward from start and returns the last index before
// the next punctuation token or before a parataxis/root relation change.
// Used as a generic clause-end heuristic for constructions without
// comma-bounding.
func NextBoundary(tokens []sent.Token, start int) int {
	for i := start; i < len(tokens); i++ {
		t := tokens[i]
		if t.IsPunct() {
			if i-1 > start {
				return i - 1
			}
			return start
		}
		if (t.Deprel == "parataxis" || t.Deprel == "root") && i != start {
			return i - 1
		}
	}
	return len(tokens) - 1
}
