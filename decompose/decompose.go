// Package decompose breaks text into the ordered multi-resolution levels that
// FSBI hashes: characters, per-token bigrams, tokens, and sliding phrase
// windows. Decomposition is a pure function of its input.
package decompose

import (
	"strings"
	"unicode"
)

// DefaultMaxPhraseLen is the default longest phrase window, in tokens.
const DefaultMaxPhraseLen = 3

// Level numbers. Phrase levels continue upward from LevelToken: a phrase of
// L tokens lives at level LevelToken + L - 1.
const (
	LevelChar   = 1
	LevelBigram = 2
	LevelToken  = 3
)

// Decompose splits text into ordered subsequences per level:
//
//	level 1             every non-whitespace rune of the normalized text
//	level 2             per-token rune bigrams; bigrams never span tokens
//	level 3             whitespace-separated tokens
//	level 3+L-1         sliding windows of L tokens joined by one space,
//	                    for L = 2..maxPhraseLen
//
// The text is trimmed and lowercased first. Duplicates and left-to-right
// order are preserved within each level, and every level up to
// 3+maxPhraseLen-1 is present in the result even when empty.
func Decompose(text string, maxPhraseLen int) map[int][]string {
	text = strings.ToLower(strings.TrimSpace(text))
	tokens := strings.Fields(text)

	levels := make(map[int][]string)

	chars := []string{}
	for _, r := range text {
		if !unicode.IsSpace(r) {
			chars = append(chars, string(r))
		}
	}
	levels[LevelChar] = chars

	bigrams := []string{}
	for _, tok := range tokens {
		runes := []rune(tok)
		for i := 0; i+1 < len(runes); i++ {
			bigrams = append(bigrams, string(runes[i:i+2]))
		}
	}
	levels[LevelBigram] = bigrams

	levels[LevelToken] = append([]string{}, tokens...)

	for l := 2; l <= maxPhraseLen; l++ {
		lvl := LevelToken + l - 1
		phrases := []string{}
		for i := 0; i+l <= len(tokens); i++ {
			phrases = append(phrases, strings.Join(tokens[i:i+l], " "))
		}
		levels[lvl] = phrases
	}

	return levels
}
